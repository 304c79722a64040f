package promo

import (
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/profile"
	"github.com/noah-isme/bundle-api/internal/selection"
)

// Applicable filters the rule set down to the rules that hold for the given
// selection and profile, sorted by priority descending. The sort is stable so
// equal-priority rules keep their load order. Rules may stack: no category or
// kind deduplication happens here or anywhere downstream.
func Applicable(rules []Rule, sel selection.Set, cat *catalog.Snapshot, prof profile.Profile, now time.Time) []Rule {
	matched := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.AppliesTo(sel, cat, prof, now) {
			matched = append(matched, rule)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority > matched[j].Priority
	})
	return matched
}

// AppliesTo reports whether every condition of the rule holds.
func (r Rule) AppliesTo(sel selection.Set, cat *catalog.Snapshot, prof profile.Profile, now time.Time) bool {
	size := sel.Len()
	if size < r.Conditions.MinServices {
		return false
	}
	if r.Conditions.MaxServices > 0 && size > r.Conditions.MaxServices {
		return false
	}
	if baseTotal(sel, cat) < r.Conditions.MinTotal {
		return false
	}
	if len(r.Conditions.Categories) > 0 && !anyCategory(sel, cat, r.Conditions.Categories) {
		return false
	}
	if len(r.Conditions.LoyaltyTiers) > 0 && !containsFold(r.Conditions.LoyaltyTiers, string(prof.LoyaltyTier)) {
		return false
	}
	if r.Window != nil && !r.Window.Active(now) {
		return false
	}
	return true
}

// DiscountFor computes the amount a single applicable rule takes off the
// current total. Tiered schedules index by selection size and reuse the last
// tier beyond the schedule, so the discount never regresses as the bundle
// grows. Results are clamped at zero.
func DiscountFor(r Rule, selectionSize int, currentTotal catalog.Money) catalog.Money {
	var amount catalog.Money
	switch r.Discount.Kind {
	case KindPercentage:
		amount = currentTotal * catalog.Money(r.Discount.PercentBps) / 10000
		if r.Discount.MaxAmount != nil && amount > *r.Discount.MaxAmount {
			amount = *r.Discount.MaxAmount
		}
	case KindFixed:
		amount = r.Discount.Value
	case KindTiered:
		if len(r.Discount.Tiers) == 0 || selectionSize < 1 {
			return 0
		}
		idx := selectionSize
		if idx > len(r.Discount.Tiers) {
			idx = len(r.Discount.Tiers)
		}
		amount = r.Discount.Tiers[idx-1]
	}
	if amount < 0 {
		return 0
	}
	return amount
}

// Total sums DiscountFor over every applicable rule. This is the promotional
// stack used by the pricing aggregator and the recommendation ranker.
func Total(rules []Rule, sel selection.Set, cat *catalog.Snapshot, prof profile.Profile, now time.Time, currentTotal catalog.Money) catalog.Money {
	var sum catalog.Money
	for _, rule := range Applicable(rules, sel, cat, prof, now) {
		sum += DiscountFor(rule, sel.Len(), currentTotal)
	}
	return sum
}

func baseTotal(sel selection.Set, cat *catalog.Snapshot) catalog.Money {
	var total catalog.Money
	for id := range sel {
		if svc, ok := cat.Service(id); ok {
			total += svc.BasePrice
		}
	}
	return total
}

func anyCategory(sel selection.Set, cat *catalog.Snapshot, categories []string) bool {
	for id := range sel {
		svc, ok := cat.Service(id)
		if !ok {
			continue
		}
		if containsFold(categories, svc.Category) {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
