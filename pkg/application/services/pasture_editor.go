package services

import "github.com/npcunard/herdfeed/pkg/domain/entities"

// PastureEditor holds the mutable pasture form state of an interactive
// session. Season defaults seed nutrient values only when the season
// selection changes, and never replace a nutrient the user has edited.
type PastureEditor struct {
	season    entities.Season
	seeded    bool
	dmIntake  float64
	mePerKg   float64
	nutrients entities.NutrientProfile
	edited    [len(entities.Nutrients)]bool
}

// NewPastureEditor creates an editor seeded from the given season
func NewPastureEditor(season entities.Season, dmIntakeKg, mePerKg float64) *PastureEditor {
	e := &PastureEditor{dmIntake: dmIntakeKg, mePerKg: mePerKg}
	e.SelectSeason(season)
	return e
}

// SelectSeason changes the season. Unedited nutrients take the new
// season's defaults; selecting the current season again changes nothing.
func (e *PastureEditor) SelectSeason(season entities.Season) {
	if e.seeded && season == e.season {
		return
	}
	defaults := season.DefaultPastureNutrients()
	for _, n := range entities.Nutrients {
		if !e.edited[n] {
			e.nutrients[n] = defaults.Pct(n)
		}
	}
	e.season = season
	e.seeded = true
}

// SetNutrient records a user-entered percentage for a nutrient
func (e *PastureEditor) SetNutrient(n entities.Nutrient, pct float64) {
	e.nutrients[n] = pct
	e.edited[n] = true
}

// Snapshot returns the current pasture values as an immutable profile
func (e *PastureEditor) Snapshot() entities.PastureProfile {
	return entities.PastureProfile{
		Season:            e.season,
		DryMatterIntakeKg: e.dmIntake,
		MEPerKg:           e.mePerKg,
		Nutrients:         e.nutrients,
	}
}
