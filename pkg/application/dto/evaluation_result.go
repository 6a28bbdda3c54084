package dto

import "github.com/npcunard/herdfeed/pkg/domain/entities"

// EvaluationResponse pairs a result with the resolved inputs it was computed from
type EvaluationResponse struct {
	Season           string                  `json:"season"`
	PastureNutrients map[string]float64      `json:"pasture_nutrients"`
	Result           entities.ResultSnapshot `json:"result"`
}

// FeedView is the JSON form of a catalog feed
type FeedView struct {
	Name           entities.FeedName  `json:"name"`
	MEPerKg        float64            `json:"me_mj_per_kg"`
	Nutrients      map[string]float64 `json:"nutrients"`
	CostPerTonneDM float64            `json:"cost_per_tonne_dm"`
}

// NewFeedView converts a catalog feed for display
func NewFeedView(feed entities.FeedItem) FeedView {
	return FeedView{
		Name:           feed.Name,
		MEPerKg:        feed.MEPerKg,
		Nutrients:      NutrientMap(feed.Nutrients),
		CostPerTonneDM: feed.CostPerTonneDM,
	}
}

// NutrientMap keys a nutrient profile by nutrient name
func NutrientMap(p entities.NutrientProfile) map[string]float64 {
	m := make(map[string]float64, len(entities.Nutrients))
	for _, n := range entities.Nutrients {
		m[n.String()] = p.Pct(n)
	}
	return m
}
