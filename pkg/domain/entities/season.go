package entities

import (
	"fmt"
	"strings"
)

// Season selects the pasture nutrient defaults
type Season int

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
)

// Seasons lists every season in selector order
var Seasons = [...]Season{Spring, Summer, Autumn, Winter}

// String method for Season enum
func (s Season) String() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Winter:
		return "Winter"
	default:
		return "Unknown"
	}
}

// ParseSeason converts a season name (case-insensitive) to a Season
func ParseSeason(s string) (Season, error) {
	for _, season := range Seasons {
		if strings.EqualFold(strings.TrimSpace(s), season.String()) {
			return season, nil
		}
	}
	return 0, fmt.Errorf("unknown season: %q", s)
}

var seasonDefaults = map[Season]NutrientProfile{
	Spring: NewNutrientProfile(25, 38, 1.5, 12, 4.5),
	Summer: NewNutrientProfile(18, 50, 1.0, 8, 3.5),
	Autumn: NewNutrientProfile(22, 45, 1.2, 10, 4.0),
	Winter: NewNutrientProfile(20, 48, 1.0, 9, 3.8),
}

// DefaultPastureNutrients returns the seed nutrient profile for a season.
// These are starting values for a pasture form; they never override user input.
func (s Season) DefaultPastureNutrients() NutrientProfile {
	return seasonDefaults[s]
}
