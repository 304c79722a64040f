package profile

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/noah-isme/bundle-api/internal/catalog"
)

// Tier identifies a loyalty tier.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// MultiplierBps returns the loyalty multiplier in basis points over 10000.
// The excess over 10000 is the loyalty accrual rate applied to a quote.
func (t Tier) MultiplierBps() int32 {
	switch t {
	case TierSilver:
		return 10500
	case TierGold:
		return 11000
	case TierPlatinum:
		return 11500
	default:
		return 10000
	}
}

// ParseTier normalises a raw tier value, defaulting to bronze.
func ParseTier(raw string) Tier {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "silver":
		return TierSilver
	case "gold":
		return TierGold
	case "platinum":
		return TierPlatinum
	default:
		return TierBronze
	}
}

// Profile is the read-only user context consumed by the engine. The engine
// never mutates it.
type Profile struct {
	LoyaltyTier         Tier
	NewCustomer         bool
	PreferredCategories []string
	TotalSpent          catalog.Money
	HistoryMonths       int
}

// Prefers reports whether the given category is among the user's preferences.
func (p Profile) Prefers(category string) bool {
	for _, preferred := range p.PreferredCategories {
		if strings.EqualFold(preferred, category) {
			return true
		}
	}
	return false
}

// FromQuery builds a profile from request query parameters. Absent or
// malformed values fall back to the zero profile (bronze, no preferences).
func FromQuery(values url.Values) Profile {
	p := Profile{LoyaltyTier: ParseTier(values.Get("tier"))}
	switch strings.ToLower(strings.TrimSpace(values.Get("new"))) {
	case "1", "true", "yes":
		p.NewCustomer = true
	}
	for _, raw := range strings.Split(values.Get("prefer"), ",") {
		trimmed := strings.ToLower(strings.TrimSpace(raw))
		if trimmed != "" {
			p.PreferredCategories = append(p.PreferredCategories, trimmed)
		}
	}
	if spent, err := strconv.ParseInt(strings.TrimSpace(values.Get("spent")), 10, 64); err == nil && spent >= 0 {
		p.TotalSpent = spent
	}
	if months, err := strconv.Atoi(strings.TrimSpace(values.Get("months"))); err == nil && months >= 0 {
		p.HistoryMonths = months
	}
	return p
}
