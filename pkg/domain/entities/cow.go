package entities

import "fmt"

// MaxEnvironmentalBufferPct is the upper bound for the requirement safety margin
const MaxEnvironmentalBufferPct = 20

// CowProfile describes a single animal's daily energy demands
type CowProfile struct {
	LiveweightKg           float64
	MilkSolidsKgPerDay     float64
	WalkingKmPerDay        float64
	PregnantLastTrimester  bool
	LiveweightGainEnergyMJ float64
	EnvironmentalBufferPct float64
}

// NewCowProfile creates a validated CowProfile
func NewCowProfile(liveweightKg, milkSolidsKg, walkingKm float64, pregnant bool, gainEnergyMJ, bufferPct float64) (*CowProfile, error) {
	cow := &CowProfile{
		LiveweightKg:           liveweightKg,
		MilkSolidsKgPerDay:     milkSolidsKg,
		WalkingKmPerDay:        walkingKm,
		PregnantLastTrimester:  pregnant,
		LiveweightGainEnergyMJ: gainEnergyMJ,
		EnvironmentalBufferPct: bufferPct,
	}
	if err := cow.Validate(); err != nil {
		return nil, err
	}
	return cow, nil
}

// Validate checks the profile's ranges
func (c CowProfile) Validate() error {
	if err := requireFinite(
		namedValue{"liveweight", c.LiveweightKg},
		namedValue{"milk solids", c.MilkSolidsKgPerDay},
		namedValue{"walking distance", c.WalkingKmPerDay},
		namedValue{"liveweight gain energy", c.LiveweightGainEnergyMJ},
		namedValue{"environmental buffer", c.EnvironmentalBufferPct},
	); err != nil {
		return err
	}
	if c.LiveweightKg <= 0 {
		return fmt.Errorf("liveweight must be positive, got %v", c.LiveweightKg)
	}
	if c.MilkSolidsKgPerDay < 0 {
		return fmt.Errorf("milk solids cannot be negative, got %v", c.MilkSolidsKgPerDay)
	}
	if c.WalkingKmPerDay < 0 {
		return fmt.Errorf("walking distance cannot be negative, got %v", c.WalkingKmPerDay)
	}
	if c.LiveweightGainEnergyMJ < 0 {
		return fmt.Errorf("liveweight gain energy cannot be negative, got %v", c.LiveweightGainEnergyMJ)
	}
	if c.EnvironmentalBufferPct < 0 || c.EnvironmentalBufferPct > MaxEnvironmentalBufferPct {
		return fmt.Errorf("environmental buffer must be between 0 and %d, got %v",
			MaxEnvironmentalBufferPct, c.EnvironmentalBufferPct)
	}
	return nil
}
