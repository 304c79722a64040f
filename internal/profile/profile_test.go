package profile_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bundle-api/internal/profile"
)

func TestParseTierDefaultsToBronze(t *testing.T) {
	require.Equal(t, profile.TierBronze, profile.ParseTier(""))
	require.Equal(t, profile.TierBronze, profile.ParseTier("unknown"))
	require.Equal(t, profile.TierPlatinum, profile.ParseTier(" Platinum "))
}

func TestMultiplierBps(t *testing.T) {
	require.EqualValues(t, 10000, profile.TierBronze.MultiplierBps())
	require.EqualValues(t, 10500, profile.TierSilver.MultiplierBps())
	require.EqualValues(t, 11000, profile.TierGold.MultiplierBps())
	require.EqualValues(t, 11500, profile.TierPlatinum.MultiplierBps())
}

func TestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("tier", "gold")
	values.Set("new", "1")
	values.Set("prefer", "music, Streaming ,")
	values.Set("spent", "1200")
	values.Set("months", "18")

	p := profile.FromQuery(values)
	require.Equal(t, profile.TierGold, p.LoyaltyTier)
	require.True(t, p.NewCustomer)
	require.Equal(t, []string{"music", "streaming"}, p.PreferredCategories)
	require.EqualValues(t, 1200, p.TotalSpent)
	require.Equal(t, 18, p.HistoryMonths)
	require.True(t, p.Prefers("MUSIC"))
	require.False(t, p.Prefers("gaming"))
}

func TestFromQueryMalformed(t *testing.T) {
	values := url.Values{}
	values.Set("spent", "not-a-number")
	values.Set("months", "-3")

	p := profile.FromQuery(values)
	require.Equal(t, profile.TierBronze, p.LoyaltyTier)
	require.Zero(t, p.TotalSpent)
	require.Zero(t, p.HistoryMonths)
}
