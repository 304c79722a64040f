// Package pricing combines offer matching, promotional rules, category
// bundles, and the loyalty multiplier into one quote.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/offer"
	"github.com/noah-isme/bundle-api/internal/profile"
	"github.com/noah-isme/bundle-api/internal/promo"
	"github.com/noah-isme/bundle-api/internal/selection"
)

// ErrUnknownService is returned when a selection reaches the engine with an id
// the catalog does not know. The HTTP boundary filters stale ids, so seeing
// this error means the caller is misconfigured, not that the user typed a bad
// link.
var ErrUnknownService = errors.New("unknown service id")

// Category bundle thresholds. Subtotal percentages are basis points.
const (
	streamingBundleMin = 3
	streamingBundleBps = 1000
	musicBundleMin     = 2
	musicBundleBps     = 1500
	platinumBundleMin  = 4
	platinumBundleFlat = catalog.Money(50)
)

// DiscountResult is a pure projection over one selection: recomputed on every
// call, never stored.
type DiscountResult struct {
	TotalOriginal catalog.Money       `json:"totalOriginal"`
	TotalCurrent  catalog.Money       `json:"totalCurrent"`
	ListPrice     catalog.Money       `json:"listPrice"`
	FinalPrice    catalog.Money       `json:"finalPrice"`
	TotalSavings  catalog.Money       `json:"totalSavings"`
	AppliedRules  []string            `json:"appliedRules"`
	RoiPercent    float64             `json:"roiPercent"`
	ExactOffer    *catalog.OfferGroup `json:"exactOffer,omitempty"`
	NextBestOffer *catalog.OfferGroup `json:"nextBestOffer,omitempty"`
}

// Quote prices a selection. Deterministic over its inputs: identical calls
// yield identical results.
//
// The list price is the bundle-picker surface: the exact offer's selling
// price when one matches, the current-price sum otherwise. The final price is
// the advanced surface after the full promotional, bundle, and loyalty stack.
func Quote(sel selection.Set, cat *catalog.Snapshot, rules []promo.Rule, prof profile.Profile, now time.Time) (DiscountResult, error) {
	if sel.Len() == 0 {
		return DiscountResult{AppliedRules: []string{}}, nil
	}

	result := DiscountResult{AppliedRules: []string{}}
	for _, id := range sel.IDs() {
		svc, ok := cat.Service(id)
		if !ok {
			return DiscountResult{}, fmt.Errorf("%w: %s", ErrUnknownService, id)
		}
		result.TotalOriginal += svc.BasePrice
		result.TotalCurrent += svc.CurrentPrice
	}

	offers := cat.Offers()
	result.ExactOffer = offer.FindExact(sel, offers)
	result.NextBestOffer = offer.FindNextBest(sel, offers)

	var offerSavings catalog.Money
	if result.ExactOffer != nil {
		offerSavings = result.ExactOffer.Savings()
		result.TotalCurrent = result.ExactOffer.SellingPrice
	}
	result.ListPrice = result.TotalCurrent

	loyalty := result.TotalCurrent * catalog.Money(prof.LoyaltyTier.MultiplierBps()-10000) / 10000

	var promoDiscount catalog.Money
	for _, rule := range promo.Applicable(rules, sel, cat, prof, now) {
		amount := promo.DiscountFor(rule, sel.Len(), result.TotalCurrent)
		if amount == 0 {
			continue
		}
		promoDiscount += amount
		result.AppliedRules = append(result.AppliedRules, rule.ID)
	}

	bundle := bundleDiscount(sel, cat, prof)

	result.FinalPrice = result.TotalCurrent - promoDiscount - bundle - loyalty
	if result.FinalPrice < 0 {
		result.FinalPrice = 0
	}
	result.TotalSavings = offerSavings + promoDiscount + bundle + loyalty
	if result.TotalOriginal > 0 {
		result.RoiPercent = float64(result.TotalSavings) / float64(result.TotalOriginal) * 100
	}
	return result, nil
}

// bundleDiscount applies the category thresholds: three streaming services
// earn 10% of the streaming subtotal, two music services 15% of the music
// subtotal, and platinum members with a full selection a flat bonus.
func bundleDiscount(sel selection.Set, cat *catalog.Snapshot, prof profile.Profile) catalog.Money {
	var streamingCount, musicCount int
	var streamingSubtotal, musicSubtotal catalog.Money
	for id := range sel {
		svc, ok := cat.Service(id)
		if !ok {
			continue
		}
		switch svc.Category {
		case catalog.CategoryStreaming:
			streamingCount++
			streamingSubtotal += svc.CurrentPrice
		case catalog.CategoryMusic:
			musicCount++
			musicSubtotal += svc.CurrentPrice
		}
	}

	var discount catalog.Money
	if streamingCount >= streamingBundleMin {
		discount += streamingSubtotal * streamingBundleBps / 10000
	}
	if musicCount >= musicBundleMin {
		discount += musicSubtotal * musicBundleBps / 10000
	}
	if prof.LoyaltyTier == profile.TierPlatinum && sel.Len() >= platinumBundleMin {
		discount += platinumBundleFlat
	}
	return discount
}
