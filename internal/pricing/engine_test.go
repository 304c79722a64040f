package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/pricing"
	"github.com/noah-isme/bundle-api/internal/profile"
	"github.com/noah-isme/bundle-api/internal/promo"
	"github.com/noah-isme/bundle-api/internal/selection"
)

var noon = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestQuoteEmptySelection(t *testing.T) {
	got, err := pricing.Quote(selection.New(), catalog.Seed(), nil, profile.Profile{}, noon)
	require.NoError(t, err)
	require.Zero(t, got.FinalPrice)
	require.Zero(t, got.TotalOriginal)
	require.Zero(t, got.TotalSavings)
	require.Zero(t, got.RoiPercent)
	require.Empty(t, got.AppliedRules)
	require.Nil(t, got.ExactOffer)
}

func TestQuoteDuoMatchesExactOffer(t *testing.T) {
	got, err := pricing.Quote(selection.New("viu", "wetv"), catalog.Seed(), nil, profile.Profile{}, noon)
	require.NoError(t, err)

	require.NotNil(t, got.ExactOffer)
	require.Equal(t, "offerGroup12", got.ExactOffer.ID)
	require.EqualValues(t, 278, got.TotalOriginal)
	require.EqualValues(t, 119, got.ListPrice)
	require.EqualValues(t, 119, got.FinalPrice)
	require.EqualValues(t, 159, got.TotalSavings)
	require.InDelta(t, 57.19, got.RoiPercent, 0.01)
}

func TestQuoteTrioPrefersExactOverSuperset(t *testing.T) {
	got, err := pricing.Quote(selection.New("viu", "wetv", "iqiyi"), catalog.Seed(), nil, profile.Profile{}, noon)
	require.NoError(t, err)

	require.NotNil(t, got.ExactOffer)
	require.Equal(t, "offerGroup118", got.ExactOffer.ID)
	require.EqualValues(t, 159, got.ListPrice)
	// Three streaming services: the category bundle takes 10% of the
	// 149+129+125 streaming subtotal off the advanced surface.
	require.EqualValues(t, 119, got.FinalPrice)
	require.EqualValues(t, 298, got.TotalSavings)
}

func TestQuoteUnknownServiceID(t *testing.T) {
	_, err := pricing.Quote(selection.New("ghost"), catalog.Seed(), nil, profile.Profile{}, noon)
	require.ErrorIs(t, err, pricing.ErrUnknownService)
}

func TestQuoteLoyaltyAccrual(t *testing.T) {
	gold := profile.Profile{LoyaltyTier: profile.TierGold}
	got, err := pricing.Quote(selection.New("viu"), catalog.Seed(), nil, gold, noon)
	require.NoError(t, err)

	require.Nil(t, got.ExactOffer)
	require.EqualValues(t, 149, got.ListPrice)
	require.EqualValues(t, 14, got.TotalSavings)
	require.EqualValues(t, 135, got.FinalPrice)
}

func TestQuoteMusicBundle(t *testing.T) {
	got, err := pricing.Quote(selection.New("spotify", "kkbox"), catalog.Seed(), nil, profile.Profile{}, noon)
	require.NoError(t, err)

	require.Nil(t, got.ExactOffer)
	require.EqualValues(t, 107, got.ListPrice)
	require.EqualValues(t, 16, got.TotalSavings)
	require.EqualValues(t, 91, got.FinalPrice)
}

func TestQuotePlatinumFullSelectionBonus(t *testing.T) {
	platinum := profile.Profile{LoyaltyTier: profile.TierPlatinum}
	got, err := pricing.Quote(selection.New("viu", "wetv", "iqiyi", "spotify"), catalog.Seed(), nil, platinum, noon)
	require.NoError(t, err)

	require.Nil(t, got.ExactOffer)
	require.EqualValues(t, 461, got.TotalCurrent)
	// Streaming bundle 40 + platinum flat 50 + loyalty 69.
	require.EqualValues(t, 159, got.TotalSavings)
	require.EqualValues(t, 302, got.FinalPrice)
}

func TestQuoteStacksOverlappingRules(t *testing.T) {
	rules := []promo.Rule{
		{
			ID:         "five-pct",
			Priority:   1,
			Conditions: promo.Conditions{MinServices: 2},
			Discount:   promo.Discount{Kind: promo.KindPercentage, PercentBps: 500},
		},
		{
			ID:         "streaming-pair",
			Priority:   2,
			Conditions: promo.Conditions{MinServices: 2, Categories: []string{catalog.CategoryStreaming}},
			Discount:   promo.Discount{Kind: promo.KindFixed, Value: 10},
		},
	}
	got, err := pricing.Quote(selection.New("viu", "wetv"), catalog.Seed(), rules, profile.Profile{}, noon)
	require.NoError(t, err)

	// Both rules apply to the same pair and both contribute: 5% of the
	// overridden 119 selling price (5) plus the fixed 10.
	require.Equal(t, []string{"streaming-pair", "five-pct"}, got.AppliedRules)
	require.EqualValues(t, 104, got.FinalPrice)
	require.EqualValues(t, 174, got.TotalSavings)
}

func TestQuoteExactOfferBoundsFinalPrice(t *testing.T) {
	rules := promo.DefaultRules()
	got, err := pricing.Quote(selection.New("viu", "wetv"), catalog.Seed(), rules, profile.Profile{LoyaltyTier: profile.TierGold}, noon)
	require.NoError(t, err)

	require.NotNil(t, got.ExactOffer)
	require.EqualValues(t, got.ExactOffer.SellingPrice, got.ListPrice)
	require.LessOrEqual(t, got.FinalPrice, got.ExactOffer.SellingPrice)
	require.GreaterOrEqual(t, got.FinalPrice, catalog.Money(0))
}

func TestQuoteFinalPriceNeverNegative(t *testing.T) {
	rules := []promo.Rule{{
		ID:       "absurd",
		Discount: promo.Discount{Kind: promo.KindFixed, Value: 100000},
	}}
	got, err := pricing.Quote(selection.New("viu", "wetv"), catalog.Seed(), rules, profile.Profile{}, noon)
	require.NoError(t, err)
	require.Zero(t, got.FinalPrice)
}

func TestQuoteIdempotent(t *testing.T) {
	sel := selection.New("viu", "wetv", "iqiyi")
	prof := profile.Profile{LoyaltyTier: profile.TierGold, NewCustomer: true}
	rules := promo.DefaultRules()

	first, err := pricing.Quote(sel, catalog.Seed(), rules, prof, noon)
	require.NoError(t, err)
	second, err := pricing.Quote(sel, catalog.Seed(), rules, prof, noon)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
