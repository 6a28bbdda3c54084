package entities

// EnergyBreakdown itemises the per-cow daily ME requirement in MJ
type EnergyBreakdown struct {
	MaintenanceMJ    float64 `json:"maintenance_mj"`
	MilkMJ           float64 `json:"milk_mj"`
	WalkingMJ        float64 `json:"walking_mj"`
	PregnancyMJ      float64 `json:"pregnancy_mj"`
	LiveweightGainMJ float64 `json:"liveweight_gain_mj"`
	BaseMJ           float64 `json:"base_mj"`
	BufferMJ         float64 `json:"buffer_mj"`
}

// FeedContribution is one supplement's share of the per-cow ration
type FeedContribution struct {
	Name             FeedName `json:"name"`
	DryMatterKg      float64  `json:"dry_matter_kg"`
	MEMJ             float64  `json:"me_mj"`
	CostPerCowPerDay float64  `json:"cost_per_cow_per_day"`
}

// NutrientTotal reports one nutrient's mass and share of dry matter
type NutrientTotal struct {
	Nutrient Nutrient `json:"-"`
	Name     string   `json:"nutrient"`
	KgPerCow float64  `json:"kg_per_cow"`
	KgHerd   float64  `json:"kg_herd,omitempty"`
	PctOfDM  float64  `json:"pct_of_dm"`
}

// HerdTotals holds herd-scaled figures and the feed cost block
type HerdTotals struct {
	NumCows          int     `json:"num_cows"`
	MERequiredMJ     float64 `json:"me_required_mj"`
	MESuppliedMJ     float64 `json:"me_supplied_mj"`
	EnergyGapMJ      float64 `json:"energy_gap_mj"`
	DryMatterKg      float64 `json:"dry_matter_kg"`
	CostPerCowPerDay float64 `json:"cost_per_cow_per_day"`
	TotalCostPerDay  float64 `json:"total_cost_per_day"`
	CostPerKgMS      float64 `json:"cost_per_kg_ms"`
	MilkPricePerKgMS float64 `json:"milk_price_per_kg_ms"`
	MarginPerKgMS    float64 `json:"margin_per_kg_ms"`
}

// ResultSnapshot is the read-only output of one evaluation pass.
// All per-cow figures are daily.
type ResultSnapshot struct {
	Mode string `json:"mode"`

	Energy              EnergyBreakdown `json:"energy"`
	MERequiredPerCowMJ  float64         `json:"me_required_per_cow_mj"`
	MEFromPastureMJ     float64         `json:"me_from_pasture_mj"`
	MEFromSupplementsMJ float64         `json:"me_from_supplements_mj"`
	TotalMESuppliedMJ   float64         `json:"total_me_supplied_mj"`
	EnergyGapMJ         float64         `json:"energy_gap_mj"`

	// Gap-to-pasture mode only; zero in fixed-intake mode
	PastureMEStillNeededMJ float64 `json:"pasture_me_still_needed_mj"`
	PastureDMRequiredKg    float64 `json:"pasture_dm_required_kg"`

	PastureDMKg      float64 `json:"pasture_dm_kg"`
	SupplementDMKg   float64 `json:"supplement_dm_kg"`
	TotalDryMatterKg float64 `json:"total_dry_matter_kg"`

	Feeds     []FeedContribution `json:"feeds"`
	Nutrients []NutrientTotal    `json:"nutrients"`

	Herd *HerdTotals `json:"herd,omitempty"`
}

// Nutrient returns the total for one nutrient
func (r *ResultSnapshot) Nutrient(n Nutrient) NutrientTotal {
	for _, total := range r.Nutrients {
		if total.Nutrient == n {
			return total
		}
	}
	return NutrientTotal{Nutrient: n, Name: n.String()}
}
