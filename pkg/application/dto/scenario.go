package dto

import "github.com/npcunard/herdfeed/pkg/domain/entities"

// Scenario is the externally supplied description of one ration to evaluate.
// Scenario files (YAML) and HTTP requests (JSON) share this shape.
type Scenario struct {
	Mode    string       `yaml:"mode" json:"mode"`
	Cow     CowInput     `yaml:"cow" json:"cow"`
	Pasture PastureInput `yaml:"pasture" json:"pasture"`
	Feeds   []FeedInput  `yaml:"feeds" json:"feeds"`
	Herd    *HerdInput   `yaml:"herd" json:"herd"`
}

// CowInput carries the per-animal requirement inputs
type CowInput struct {
	LiveweightKg           float64 `yaml:"liveweight_kg" json:"liveweight_kg"`
	MilkSolidsKgPerDay     float64 `yaml:"milk_solids_kg_per_day" json:"milk_solids_kg_per_day"`
	WalkingKmPerDay        float64 `yaml:"walking_km_per_day" json:"walking_km_per_day"`
	PregnantLastTrimester  bool    `yaml:"pregnant_last_trimester" json:"pregnant_last_trimester"`
	LiveweightGainEnergyMJ float64 `yaml:"liveweight_gain_energy_mj" json:"liveweight_gain_energy_mj"`
	EnvironmentalBufferPct float64 `yaml:"environmental_buffer_pct" json:"environmental_buffer_pct"`
}

// PastureInput carries pasture values. Nutrients left unset take the
// season's defaults.
type PastureInput struct {
	Season            string        `yaml:"season" json:"season"`
	DryMatterIntakeKg float64       `yaml:"dm_intake_kg" json:"dm_intake_kg"`
	MEPerKg           float64       `yaml:"me_mj_per_kg" json:"me_mj_per_kg"`
	Nutrients         NutrientInput `yaml:"nutrients" json:"nutrients"`
}

// NutrientInput holds optional percentage-of-DM overrides
type NutrientInput struct {
	CP     *float64 `yaml:"cp,omitempty" json:"cp,omitempty"`
	NDF    *float64 `yaml:"ndf,omitempty" json:"ndf,omitempty"`
	Starch *float64 `yaml:"starch,omitempty" json:"starch,omitempty"`
	Sugar  *float64 `yaml:"sugar,omitempty" json:"sugar,omitempty"`
	Fat    *float64 `yaml:"fat,omitempty" json:"fat,omitempty"`
}

// Get returns the override for a nutrient, if one was supplied
func (n NutrientInput) Get(nutrient entities.Nutrient) (float64, bool) {
	var v *float64
	switch nutrient {
	case entities.CP:
		v = n.CP
	case entities.NDF:
		v = n.NDF
	case entities.Starch:
		v = n.Starch
	case entities.Sugar:
		v = n.Sugar
	case entities.Fat:
		v = n.Fat
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// FeedInput selects a catalog feed and optionally overrides its values
type FeedInput struct {
	Name               string        `yaml:"name" json:"name"`
	DryMatterOfferedKg float64       `yaml:"dm_offered_kg" json:"dm_offered_kg"`
	MEPerKg            *float64      `yaml:"me_mj_per_kg,omitempty" json:"me_mj_per_kg,omitempty"`
	Nutrients          NutrientInput `yaml:"nutrients,omitempty" json:"nutrients,omitempty"`
	CostPerTonneDM     *float64      `yaml:"cost_per_tonne_dm,omitempty" json:"cost_per_tonne_dm,omitempty"`
}

// HerdInput enables herd scaling and costing
type HerdInput struct {
	NumCows          int     `yaml:"num_cows" json:"num_cows"`
	MilkPricePerKgMS float64 `yaml:"milk_price_per_kg_ms" json:"milk_price_per_kg_ms"`
}
