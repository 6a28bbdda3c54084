package entities

import "fmt"

// HerdContext scales per-cow figures to the herd and enables costing
type HerdContext struct {
	NumCows          int
	MilkPricePerKgMS float64
}

// NewHerdContext creates a validated HerdContext
func NewHerdContext(numCows int, milkPricePerKgMS float64) (*HerdContext, error) {
	herd := &HerdContext{NumCows: numCows, MilkPricePerKgMS: milkPricePerKgMS}
	if err := herd.Validate(); err != nil {
		return nil, err
	}
	return herd, nil
}

// Validate checks the herd's ranges
func (h HerdContext) Validate() error {
	if h.NumCows < 1 {
		return fmt.Errorf("number of cows must be at least 1, got %d", h.NumCows)
	}
	if err := requireFinite(namedValue{"milk price", h.MilkPricePerKgMS}); err != nil {
		return err
	}
	if h.MilkPricePerKgMS < 0 {
		return fmt.Errorf("milk price cannot be negative, got %v", h.MilkPricePerKgMS)
	}
	return nil
}
