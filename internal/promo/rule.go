// Package promo implements the layered promotional rule engine: rule
// applicability, discount computation, and the swappable rule set source.
package promo

import (
	"time"

	"github.com/noah-isme/bundle-api/internal/catalog"
)

// Kind enumerates discount formulas.
type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
	KindTiered     Kind = "tiered"
)

// Conditions gate a rule's applicability. All populated conditions must hold.
// MaxServices zero means unbounded.
type Conditions struct {
	MinServices  int           `json:"minServices" validate:"gte=0"`
	MaxServices  int           `json:"maxServices,omitempty" validate:"omitempty,gtefield=MinServices"`
	MinTotal     catalog.Money `json:"minTotal" validate:"gte=0"`
	Categories   []string      `json:"categories,omitempty"`
	LoyaltyTiers []string      `json:"loyaltyTiers,omitempty"`
}

// Discount describes how much an applicable rule takes off.
type Discount struct {
	Kind       Kind            `json:"kind" validate:"required,oneof=percentage fixed tiered"`
	PercentBps int32           `json:"percentBps,omitempty" validate:"gte=0,lte=10000"`
	Value      catalog.Money   `json:"value,omitempty" validate:"gte=0"`
	Tiers      []catalog.Money `json:"tiers,omitempty"`
	MaxAmount  *catalog.Money  `json:"maxAmount,omitempty"`
}

// Window bounds a seasonal rule. Both ends are inclusive.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Active reports whether now falls within the window.
func (w Window) Active(now time.Time) bool {
	return !now.Before(w.Start) && !now.After(w.End)
}

// Rule is one promotional rule. Rules are data: loaded once, never mutated,
// evaluated fresh on every call.
type Rule struct {
	ID         string     `json:"id" validate:"required"`
	Priority   int        `json:"priority"`
	Conditions Conditions `json:"conditions"`
	Discount   Discount   `json:"discount"`
	Window     *Window    `json:"seasonalWindow,omitempty"`
}
