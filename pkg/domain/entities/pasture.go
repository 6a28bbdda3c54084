package entities

import "fmt"

// PastureProfile describes grazed pasture on offer to each cow
type PastureProfile struct {
	Season            Season
	DryMatterIntakeKg float64
	MEPerKg           float64
	Nutrients         NutrientProfile
}

// NewPastureProfile creates a validated PastureProfile
func NewPastureProfile(season Season, dmIntakeKg, mePerKg float64, nutrients NutrientProfile) (*PastureProfile, error) {
	pasture := &PastureProfile{
		Season:            season,
		DryMatterIntakeKg: dmIntakeKg,
		MEPerKg:           mePerKg,
		Nutrients:         nutrients,
	}
	if err := pasture.Validate(); err != nil {
		return nil, err
	}
	return pasture, nil
}

// Validate checks the profile's ranges
func (p PastureProfile) Validate() error {
	if err := requireFinite(
		namedValue{"pasture dry matter intake", p.DryMatterIntakeKg},
		namedValue{"pasture ME", p.MEPerKg},
	); err != nil {
		return err
	}
	if p.DryMatterIntakeKg < 0 {
		return fmt.Errorf("pasture dry matter intake cannot be negative, got %v", p.DryMatterIntakeKg)
	}
	if p.MEPerKg <= 0 {
		return fmt.Errorf("pasture ME must be positive, got %v", p.MEPerKg)
	}
	if err := p.Nutrients.Validate(); err != nil {
		return fmt.Errorf("pasture: %w", err)
	}
	return nil
}
