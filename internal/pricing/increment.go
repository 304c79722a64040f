package pricing

import (
	"fmt"
	"time"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/offer"
	"github.com/noah-isme/bundle-api/internal/profile"
	"github.com/noah-isme/bundle-api/internal/promo"
	"github.com/noah-isme/bundle-api/internal/selection"
)

// IncrementKind classifies how an incremental price was derived.
type IncrementKind string

const (
	// KindTierDelta is the signed difference between two mutually exclusive
	// tiers. Shown instead of an absolute price so switching tiers never looks
	// like buying a second subscription.
	KindTierDelta IncrementKind = "tier-delta"
	// KindOfferMarginal is the cost of growing the current bundle into an
	// exact offer, relative to the current list price.
	KindOfferMarginal IncrementKind = "offer-marginal"
	// KindStandalone is the candidate's own price, discounted by a
	// single-service offer when one exists.
	KindStandalone IncrementKind = "standalone"
)

// Increment is the per-candidate price shown next to an unselected service in
// the picker.
type Increment struct {
	ServiceID string        `json:"serviceId"`
	Price     catalog.Money `json:"price"`
	Kind      IncrementKind `json:"kind"`
}

// PriceIfAdded computes what selecting the candidate would cost on top of the
// current selection. The tier-delta price may be negative: downgrading a tier
// gives money back.
func PriceIfAdded(candidateID string, sel selection.Set, cat *catalog.Snapshot, rules []promo.Rule, prof profile.Profile, now time.Time) (Increment, error) {
	candidate, ok := cat.Service(candidateID)
	if !ok {
		return Increment{}, fmt.Errorf("%w: %s", ErrUnknownService, candidateID)
	}

	if otherID, clash := selection.ConflictingWith(sel, candidateID); clash {
		other, ok := cat.Service(otherID)
		if !ok {
			return Increment{}, fmt.Errorf("%w: %s", ErrUnknownService, otherID)
		}
		return Increment{
			ServiceID: candidateID,
			Price:     candidate.CurrentPrice - other.CurrentPrice,
			Kind:      KindTierDelta,
		}, nil
	}

	offers := cat.Offers()
	if sel.Len() > 0 && sel.Len() < selection.MaxSelectionLimit && !sel.Has(candidateID) {
		grown := sel.Clone()
		grown[candidateID] = struct{}{}
		if match := offer.FindExact(grown, offers); match != nil {
			current, err := Quote(sel, cat, rules, prof, now)
			if err != nil {
				return Increment{}, err
			}
			return Increment{
				ServiceID: candidateID,
				Price:     match.SellingPrice - current.ListPrice,
				Kind:      KindOfferMarginal,
			}, nil
		}
	}

	price := candidate.CurrentPrice
	if solo := offer.FindExact(selection.New(candidateID), offers); solo != nil && solo.SellingPrice < price {
		price = solo.SellingPrice
	}
	return Increment{ServiceID: candidateID, Price: price, Kind: KindStandalone}, nil
}
