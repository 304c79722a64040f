// Package recommend scores unselected services into a ranked upsell list.
package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/profile"
	"github.com/noah-isme/bundle-api/internal/promo"
	"github.com/noah-isme/bundle-api/internal/selection"
)

const (
	urgencyBase       = 5.0
	urgencyPopularity = 0.3
	urgencySeasonal   = 2.0
	urgencyPreferred  = 1.0
	urgencyNewUser    = 1.0
	urgencyMax        = 10.0

	weightSavings = 0.7
	weightUrgency = 0.3

	popularityHighlight = 8.0
)

// Recommendation is one ranked upsell candidate.
type Recommendation struct {
	Service          catalog.Service `json:"service"`
	PotentialSavings catalog.Money   `json:"potentialSavings"`
	Urgency          float64         `json:"urgency"`
	Score            float64         `json:"score"`
	Reason           string          `json:"reason"`
}

// Rank scores every service the user could still add: not selected, not
// excluded by a conflict group. Sorted by score descending; the sort is stable
// so catalog order breaks ties. Empty when the selection is already full.
func Rank(cat *catalog.Snapshot, sel selection.Set, rules []promo.Rule, prof profile.Profile, now time.Time) []Recommendation {
	if sel.Len() >= selection.MaxSelectionLimit {
		return []Recommendation{}
	}

	currentPromo := promoSum(rules, sel, cat, prof, now)

	recs := make([]Recommendation, 0, cat.Len())
	for _, svc := range cat.Services() {
		if sel.Has(svc.ID) {
			continue
		}
		if _, clash := selection.ConflictingWith(sel, svc.ID); clash {
			continue
		}

		grown := sel.Clone()
		grown[svc.ID] = struct{}{}
		savings := promoSum(rules, grown, cat, prof, now) - currentPromo
		if savings < 0 {
			savings = 0
		}

		urgency := urgencyFor(svc, prof)
		recs = append(recs, Recommendation{
			Service:          svc,
			PotentialSavings: savings,
			Urgency:          urgency,
			Score:            weightSavings*float64(savings) + weightUrgency*urgency,
			Reason:           reasonFor(svc, sel, prof),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	return recs
}

// promoSum is the marginal-gain probe: the promotional discount total for a
// hypothetical selection, priced over current-price sums without offer
// overrides.
func promoSum(rules []promo.Rule, sel selection.Set, cat *catalog.Snapshot, prof profile.Profile, now time.Time) catalog.Money {
	var total catalog.Money
	for id := range sel {
		if svc, ok := cat.Service(id); ok {
			total += svc.CurrentPrice
		}
	}
	return promo.Total(rules, sel, cat, prof, now, total)
}

func urgencyFor(svc catalog.Service, prof profile.Profile) float64 {
	urgency := urgencyBase + urgencyPopularity*svc.Popularity
	if svc.Seasonal {
		urgency += urgencySeasonal
	}
	if prof.Prefers(svc.Category) {
		urgency += urgencyPreferred
	}
	if prof.NewCustomer {
		urgency += urgencyNewUser
	}
	if urgency > urgencyMax {
		urgency = urgencyMax
	}
	return urgency
}

// reasonFor picks the single justification shown next to a recommendation.
func reasonFor(svc catalog.Service, sel selection.Set, prof profile.Profile) string {
	switch {
	case prof.Prefers(svc.Category):
		return fmt.Sprintf("matches your %s preference", svc.Category)
	case svc.Seasonal:
		return "seasonal discount running now"
	case svc.Popularity >= popularityHighlight:
		return "popular with subscribers"
	case sel.Len()+1 == selection.MaxSelectionLimit:
		return "completes the maximum bundle"
	default:
		return "pairs well with your bundle"
	}
}
