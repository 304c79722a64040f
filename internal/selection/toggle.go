package selection

import (
	"fmt"

	"github.com/noah-isme/bundle-api/internal/catalog"
)

// Conflict reasons reported when a toggle is refused.
const (
	ReasonUnknownService = "unknown_service"
	ReasonSelectionFull  = "selection_full"
	ReasonTierConflict   = "tier_conflict"
)

// conflictGroups lists sets of mutually exclusive service ids. Adding a group
// here is all that is needed to enforce a new exclusivity constraint; pricing
// never inspects ids directly.
var conflictGroups = [][]string{
	{"netflix-mobile", "netflix-basic", "netflix-standard", "netflix-premium"},
}

// ConflictError reports why a toggle was refused.
type ConflictError struct {
	ServiceID     string
	ConflictsWith string
	Reason        string
}

func (e *ConflictError) Error() string {
	switch e.Reason {
	case ReasonSelectionFull:
		return fmt.Sprintf("selection already holds %d services", MaxSelectionLimit)
	case ReasonTierConflict:
		return fmt.Sprintf("%s conflicts with selected %s", e.ServiceID, e.ConflictsWith)
	default:
		return fmt.Sprintf("unknown service %s", e.ServiceID)
	}
}

// ConflictingWith returns the already-selected id that excludes the candidate,
// if any. Used by incremental pricing to detect tier switches.
func ConflictingWith(s Set, candidateID string) (string, bool) {
	for _, group := range conflictGroups {
		inGroup := false
		for _, id := range group {
			if id == candidateID {
				inGroup = true
				break
			}
		}
		if !inGroup {
			continue
		}
		for _, id := range group {
			if id != candidateID && s.Has(id) {
				return id, true
			}
		}
	}
	return "", false
}

// Toggle returns a new selection with the given service added or removed.
// It is the single mutation boundary: the cap and the conflict groups are
// enforced here so the pricing engine can always assume a valid selection.
func Toggle(s Set, id string, cat *catalog.Snapshot) (Set, error) {
	if s.Has(id) {
		next := s.Clone()
		delete(next, id)
		return next, nil
	}
	if cat == nil || !cat.Has(id) {
		return s, &ConflictError{ServiceID: id, Reason: ReasonUnknownService}
	}
	if s.Len() >= MaxSelectionLimit {
		return s, &ConflictError{ServiceID: id, Reason: ReasonSelectionFull}
	}
	if other, clash := ConflictingWith(s, id); clash {
		return s, &ConflictError{ServiceID: id, ConflictsWith: other, Reason: ReasonTierConflict}
	}
	next := s.Clone()
	next[id] = struct{}{}
	return next, nil
}
