package entities

import "fmt"

// FeedName is the fixed catalog key of a supplement
type FeedName string

// Catalog entries
const (
	MaizeSilage FeedName = "Maize Silage"
	PKE         FeedName = "PKE"
	MilledMaize FeedName = "Milled Maize"
	GrassSilage FeedName = "Grass Silage"
	Custom1     FeedName = "Custom 1"
	Custom2     FeedName = "Custom 2"
)

// FeedItem is a purchased supplement fed per cow per day
type FeedItem struct {
	Name               FeedName
	DryMatterOfferedKg float64
	MEPerKg            float64
	Nutrients          NutrientProfile
	CostPerTonneDM     float64
}

// NewFeedItem creates a validated FeedItem
func NewFeedItem(name FeedName, dmOfferedKg, mePerKg float64, nutrients NutrientProfile, costPerTonneDM float64) (*FeedItem, error) {
	feed := &FeedItem{
		Name:               name,
		DryMatterOfferedKg: dmOfferedKg,
		MEPerKg:            mePerKg,
		Nutrients:          nutrients,
		CostPerTonneDM:     costPerTonneDM,
	}
	if err := feed.Validate(); err != nil {
		return nil, err
	}
	return feed, nil
}

// Validate checks the feed's ranges
func (f FeedItem) Validate() error {
	if string(f.Name) == "" {
		return fmt.Errorf("feed name cannot be empty")
	}
	if err := requireFinite(
		namedValue{"dry matter offered", f.DryMatterOfferedKg},
		namedValue{"ME", f.MEPerKg},
		namedValue{"cost per tonne", f.CostPerTonneDM},
	); err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	if f.DryMatterOfferedKg < 0 {
		return fmt.Errorf("%s: dry matter offered cannot be negative, got %v", f.Name, f.DryMatterOfferedKg)
	}
	if f.MEPerKg <= 0 {
		return fmt.Errorf("%s: ME must be positive, got %v", f.Name, f.MEPerKg)
	}
	if f.CostPerTonneDM < 0 {
		return fmt.Errorf("%s: cost per tonne cannot be negative, got %v", f.Name, f.CostPerTonneDM)
	}
	if err := f.Nutrients.Validate(); err != nil {
		return fmt.Errorf("%s: %w", f.Name, err)
	}
	return nil
}

// DefaultFeedCatalog returns the fixed supplement catalog with zero dry matter offered
func DefaultFeedCatalog() []FeedItem {
	return []FeedItem{
		{Name: MaizeSilage, MEPerKg: 10.5, Nutrients: NewNutrientProfile(8.5, 38, 25, 4, 3), CostPerTonneDM: 150},
		{Name: PKE, MEPerKg: 10.0, Nutrients: NewNutrientProfile(16.0, 60, 1.5, 8, 8), CostPerTonneDM: 300},
		{Name: MilledMaize, MEPerKg: 13.0, Nutrients: NewNutrientProfile(9.0, 12, 65, 2, 3.5), CostPerTonneDM: 450},
		{Name: GrassSilage, MEPerKg: 10.0, Nutrients: NewNutrientProfile(16.0, 50, 2.0, 8, 3.0), CostPerTonneDM: 180},
		{Name: Custom1, MEPerKg: 10.0, Nutrients: NewNutrientProfile(10.0, 30, 10, 10, 3.0), CostPerTonneDM: 350},
		{Name: Custom2, MEPerKg: 10.0, Nutrients: NewNutrientProfile(10.0, 30, 10, 10, 3.0), CostPerTonneDM: 350},
	}
}
