package promo

import (
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// LoadFile reads and validates a rule set from a JSON file. A rule set must be
// internally consistent before it can be swapped in: percentage rules carry a
// bps share, tiered rules a non-empty ascending schedule, seasonal windows a
// start no later than their end.
func LoadFile(path string) ([]Rule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var rules []Rule
	if err := json.Unmarshal(raw, &rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := Validate(rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate checks a rule set without installing it.
func Validate(rules []Rule) error {
	seen := make(map[string]struct{}, len(rules))
	for _, rule := range rules {
		if err := validate.Struct(rule); err != nil {
			return fmt.Errorf("rule %q: %w", rule.ID, err)
		}
		if _, dup := seen[rule.ID]; dup {
			return fmt.Errorf("rule %q: duplicate id", rule.ID)
		}
		seen[rule.ID] = struct{}{}
		if err := checkDiscount(rule); err != nil {
			return fmt.Errorf("rule %q: %w", rule.ID, err)
		}
		if rule.Window != nil && rule.Window.End.Before(rule.Window.Start) {
			return fmt.Errorf("rule %q: seasonal window ends before it starts", rule.ID)
		}
	}
	return nil
}

func checkDiscount(rule Rule) error {
	switch rule.Discount.Kind {
	case KindPercentage:
		if rule.Discount.PercentBps <= 0 {
			return fmt.Errorf("percentage rule needs percentBps > 0")
		}
	case KindFixed:
		if rule.Discount.Value <= 0 {
			return fmt.Errorf("fixed rule needs value > 0")
		}
	case KindTiered:
		if len(rule.Discount.Tiers) == 0 {
			return fmt.Errorf("tiered rule needs at least one tier")
		}
		for i := 1; i < len(rule.Discount.Tiers); i++ {
			if rule.Discount.Tiers[i] < rule.Discount.Tiers[i-1] {
				return fmt.Errorf("tiered schedule must be non-decreasing")
			}
		}
	}
	return nil
}

// Source holds the live rule set behind an atomic pointer so quotes always see
// a complete set while reloads swap in a new one. Readers never block writers
// and a failed reload leaves the previous set untouched.
type Source struct {
	rules atomic.Pointer[[]Rule]
	path  string
}

// NewSource installs an initial rule set. The path is remembered for Reload.
func NewSource(path string, rules []Rule) *Source {
	s := &Source{path: path}
	s.rules.Store(&rules)
	return s
}

// Rules returns the current rule set. The returned slice must not be mutated.
func (s *Source) Rules() []Rule {
	return *s.rules.Load()
}

// Reload re-reads the rule file and swaps the set in atomically. On any error
// the live set is left as it was.
func (s *Source) Reload() (int, error) {
	rules, err := LoadFile(s.path)
	if err != nil {
		return 0, err
	}
	s.rules.Store(&rules)
	return len(rules), nil
}
