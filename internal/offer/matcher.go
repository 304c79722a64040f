// Package offer implements exact and superset matching over the catalog's
// pre-priced offer groups.
package offer

import (
	"github.com/noah-isme/bundle-api/internal/catalog"
	"github.com/noah-isme/bundle-api/internal/selection"
)

// FindExact returns the offer group whose service set equals the selection,
// compared as sets. When duplicate rows share the same membership the lowest
// selling price wins: ties always favor the customer. Absence of a match is a
// valid outcome, reported as nil.
func FindExact(sel selection.Set, offers []catalog.OfferGroup) *catalog.OfferGroup {
	if sel.Len() == 0 {
		return nil
	}
	var best *catalog.OfferGroup
	for i := range offers {
		if !equalSet(sel, offers[i]) {
			continue
		}
		if best == nil || offers[i].SellingPrice < best.SellingPrice {
			match := offers[i]
			best = &match
		}
	}
	return best
}

// FindNextBest returns the upsell candidate: the offer group whose services
// strictly contain the selection, maximising absolute savings. Nil when the
// selection is empty, already at the limit, or no superset exists.
func FindNextBest(sel selection.Set, offers []catalog.OfferGroup) *catalog.OfferGroup {
	if sel.Len() == 0 || sel.Len() >= selection.MaxSelectionLimit {
		return nil
	}
	var best *catalog.OfferGroup
	for i := range offers {
		if len(offers[i].ServiceIDs) <= sel.Len() {
			continue
		}
		if !containsAll(offers[i], sel) {
			continue
		}
		if best == nil || offers[i].Savings() > best.Savings() {
			match := offers[i]
			best = &match
		}
	}
	return best
}

func equalSet(sel selection.Set, offer catalog.OfferGroup) bool {
	if len(offer.ServiceIDs) != sel.Len() {
		return false
	}
	return containsAll(offer, sel)
}

func containsAll(offer catalog.OfferGroup, sel selection.Set) bool {
	for id := range sel {
		if !offer.Contains(id) {
			return false
		}
	}
	return true
}
