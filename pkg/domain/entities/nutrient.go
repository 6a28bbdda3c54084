package entities

import (
	"fmt"
	"math"
	"strings"
)

// Nutrient identifies one of the tracked diet components
type Nutrient int

const (
	CP Nutrient = iota
	NDF
	Starch
	Sugar
	Fat
)

// Nutrients lists every tracked nutrient in report order
var Nutrients = [...]Nutrient{CP, NDF, Starch, Sugar, Fat}

// String method for Nutrient enum
func (n Nutrient) String() string {
	switch n {
	case CP:
		return "CP"
	case NDF:
		return "NDF"
	case Starch:
		return "Starch"
	case Sugar:
		return "Sugar"
	case Fat:
		return "Fat"
	default:
		return "Unknown"
	}
}

// ParseNutrient converts a nutrient label (case-insensitive) to a Nutrient
func ParseNutrient(s string) (Nutrient, error) {
	for _, n := range Nutrients {
		if strings.EqualFold(s, n.String()) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("unknown nutrient: %q", s)
}

// NutrientProfile holds each nutrient as a percentage of dry matter.
// Indexed by Nutrient.
type NutrientProfile [len(Nutrients)]float64

// NewNutrientProfile builds a profile from percentages in CP, NDF, Starch, Sugar, Fat order
func NewNutrientProfile(cp, ndf, starch, sugar, fat float64) NutrientProfile {
	return NutrientProfile{cp, ndf, starch, sugar, fat}
}

// Pct returns the percentage of dry matter for a nutrient
func (p NutrientProfile) Pct(n Nutrient) float64 {
	return p[n]
}

// With returns a copy of the profile with one nutrient replaced
func (p NutrientProfile) With(n Nutrient, pct float64) NutrientProfile {
	p[n] = pct
	return p
}

// Validate checks every percentage lies within 0-100
func (p NutrientProfile) Validate() error {
	for _, n := range Nutrients {
		pct := p[n]
		if !isFinite(pct) {
			return fmt.Errorf("%s percentage must be a finite number", n)
		}
		if pct < 0 || pct > 100 {
			return fmt.Errorf("%s percentage must be between 0 and 100, got %v", n, pct)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type namedValue struct {
	name  string
	value float64
}

// requireFinite rejects NaN and infinite inputs before any range check
func requireFinite(values ...namedValue) error {
	for _, v := range values {
		if !isFinite(v.value) {
			return fmt.Errorf("%s must be a finite number", v.name)
		}
	}
	return nil
}
