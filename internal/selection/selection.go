package selection

import (
	"sort"
	"strings"

	"github.com/noah-isme/bundle-api/internal/catalog"
)

// MaxSelectionLimit caps how many services one bundle may hold.
const MaxSelectionLimit = 4

// Set is the caller-owned selection of service ids. The pricing engine only
// ever reads it; mutations go through Toggle.
type Set map[string]struct{}

// New builds a set from the given ids.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the selection size.
func (s Set) Len() int { return len(s) }

// IDs returns the member ids sorted for deterministic output.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	clone := make(Set, len(s))
	for id := range s {
		clone[id] = struct{}{}
	}
	return clone
}

// Parse decodes the comma-separated bundle query parameter into a set.
// Unknown ids are dropped silently: user-supplied links may be stale, and a
// stale id must not fail the whole request. Ordering and duplicates are
// irrelevant.
func Parse(raw string, cat *catalog.Snapshot) Set {
	s := make(Set)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if cat != nil && !cat.Has(id) {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// Format encodes a set back into the bundle query parameter value.
func Format(s Set) string {
	return strings.Join(s.IDs(), ",")
}
