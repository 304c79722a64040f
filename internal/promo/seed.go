package promo

import (
	"time"

	"github.com/noah-isme/bundle-api/internal/catalog"
)

func money(v catalog.Money) *catalog.Money { return &v }

// DefaultRules is the built-in rule set used when no rules file is configured.
// It exercises every discount kind and mirrors the launch promotion sheet.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:       "multi-service-5pct",
			Priority: 10,
			Conditions: Conditions{
				MinServices: 2,
			},
			Discount: Discount{
				Kind:       KindPercentage,
				PercentBps: 500,
				MaxAmount:  money(60),
			},
		},
		{
			ID:       "big-basket-30",
			Priority: 20,
			Conditions: Conditions{
				MinServices: 2,
				MinTotal:    400,
			},
			Discount: Discount{
				Kind:  KindFixed,
				Value: 30,
			},
		},
		{
			ID:       "size-ladder",
			Priority: 5,
			Conditions: Conditions{
				MinServices: 1,
			},
			Discount: Discount{
				Kind:  KindTiered,
				Tiers: []catalog.Money{0, 10, 25, 45},
			},
		},
		{
			ID:       "streaming-fan",
			Priority: 15,
			Conditions: Conditions{
				MinServices: 2,
				Categories:  []string{catalog.CategoryStreaming},
			},
			Discount: Discount{
				Kind:       KindPercentage,
				PercentBps: 300,
			},
		},
		{
			ID:       "upper-tier-thanks",
			Priority: 12,
			Conditions: Conditions{
				MinServices:  1,
				LoyaltyTiers: []string{"gold", "platinum"},
			},
			Discount: Discount{
				Kind:       KindPercentage,
				PercentBps: 200,
				MaxAmount:  money(40),
			},
		},
		{
			ID:       "summer-splash",
			Priority: 25,
			Conditions: Conditions{
				MinServices: 2,
			},
			Discount: Discount{
				Kind:  KindFixed,
				Value: 15,
			},
			Window: &Window{
				Start: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, time.August, 31, 23, 59, 59, 0, time.UTC),
			},
		},
	}
}
