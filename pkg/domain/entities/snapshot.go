package entities

import (
	"fmt"
	"strings"
)

// EvaluationMode selects how pasture dry matter relates to the energy balance
type EvaluationMode int

const (
	// FixedIntake treats pasture dry matter intake as a direct input
	FixedIntake EvaluationMode = iota
	// GapToPasture derives the pasture intake needed to close the energy gap
	GapToPasture
)

// String method for EvaluationMode enum
func (m EvaluationMode) String() string {
	switch m {
	case FixedIntake:
		return "fixed"
	case GapToPasture:
		return "gap"
	default:
		return "unknown"
	}
}

// ParseEvaluationMode accepts "fixed"/"fixed-intake" and "gap"/"gap-to-pasture"
func ParseEvaluationMode(s string) (EvaluationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "fixed-intake", "fixed_intake":
		return FixedIntake, nil
	case "gap", "gap-to-pasture", "gap_to_pasture":
		return GapToPasture, nil
	default:
		return 0, fmt.Errorf("unknown evaluation mode: %q", s)
	}
}

// InputSnapshot is the immutable set of inputs for one evaluation pass
type InputSnapshot struct {
	Cow     CowProfile
	Pasture PastureProfile
	Feeds   []FeedItem
	Mode    EvaluationMode
	Herd    *HerdContext
}

// Validate checks every component and that feed names are unique
func (s InputSnapshot) Validate() error {
	if err := s.Cow.Validate(); err != nil {
		return fmt.Errorf("cow: %w", err)
	}
	if err := s.Pasture.Validate(); err != nil {
		return err
	}
	seen := make(map[FeedName]bool, len(s.Feeds))
	for _, feed := range s.Feeds {
		if seen[feed.Name] {
			return fmt.Errorf("duplicate feed: %s", feed.Name)
		}
		seen[feed.Name] = true
		if err := feed.Validate(); err != nil {
			return fmt.Errorf("feed %w", err)
		}
	}
	if s.Mode != FixedIntake && s.Mode != GapToPasture {
		return fmt.Errorf("unknown evaluation mode: %d", s.Mode)
	}
	if s.Herd != nil {
		if err := s.Herd.Validate(); err != nil {
			return fmt.Errorf("herd: %w", err)
		}
	}
	return nil
}
