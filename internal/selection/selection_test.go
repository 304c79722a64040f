package selection_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/selection"
)

func TestParseFiltersUnknownIDs(t *testing.T) {
	cat := catalog.Seed()
	sel := selection.Parse("viu, iqiyi ,ghost,,viu", cat)
	require.Equal(t, 2, sel.Len())
	require.True(t, sel.Has("viu"))
	require.True(t, sel.Has("iqiyi"))
	require.False(t, sel.Has("ghost"))
}

func TestParseOrderIrrelevant(t *testing.T) {
	cat := catalog.Seed()
	a := selection.Parse("viu,wetv", cat)
	b := selection.Parse("wetv,viu", cat)
	require.Equal(t, a.IDs(), b.IDs())
	require.Equal(t, "viu,wetv", selection.Format(a))
}

func TestToggleAddRemove(t *testing.T) {
	cat := catalog.Seed()
	sel := selection.New()

	sel, err := selection.Toggle(sel, "viu", cat)
	require.NoError(t, err)
	require.True(t, sel.Has("viu"))

	sel, err = selection.Toggle(sel, "viu", cat)
	require.NoError(t, err)
	require.False(t, sel.Has("viu"))
	require.Zero(t, sel.Len())
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	cat := catalog.Seed()
	original := selection.New("viu")
	_, err := selection.Toggle(original, "wetv", cat)
	require.NoError(t, err)
	require.Equal(t, 1, original.Len())
}

func TestToggleRejectsUnknownService(t *testing.T) {
	cat := catalog.Seed()
	_, err := selection.Toggle(selection.New(), "ghost", cat)
	var conflict *selection.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, selection.ReasonUnknownService, conflict.Reason)
}

func TestToggleRejectsFifthService(t *testing.T) {
	cat := catalog.Seed()
	sel := selection.New("viu", "wetv", "iqiyi", "spotify")
	_, err := selection.Toggle(sel, "joox", cat)
	var conflict *selection.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, selection.ReasonSelectionFull, conflict.Reason)
}

func TestToggleRejectsSecondNetflixTier(t *testing.T) {
	cat := catalog.Seed()
	sel := selection.New("netflix-mobile")
	_, err := selection.Toggle(sel, "netflix-basic", cat)
	var conflict *selection.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, selection.ReasonTierConflict, conflict.Reason)
	require.Equal(t, "netflix-mobile", conflict.ConflictsWith)
}

func TestToggleAllowsRemovalWhenFull(t *testing.T) {
	cat := catalog.Seed()
	sel := selection.New("viu", "wetv", "iqiyi", "spotify")
	next, err := selection.Toggle(sel, "spotify", cat)
	require.NoError(t, err)
	require.Equal(t, 3, next.Len())
}

func TestConflictingWith(t *testing.T) {
	sel := selection.New("netflix-standard", "viu")
	other, clash := selection.ConflictingWith(sel, "netflix-premium")
	require.True(t, clash)
	require.Equal(t, "netflix-standard", other)

	_, clash = selection.ConflictingWith(sel, "wetv")
	require.False(t, clash)
}
