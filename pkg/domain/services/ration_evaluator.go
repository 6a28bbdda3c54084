package services

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/npcunard/herdfeed/pkg/domain/entities"
)

// Fixed energy coefficients. Changing any of these changes the meaning of
// the requirement figure.
const (
	maintenanceCoefficient = 0.55
	metabolicWeightPower   = 0.75
	milkSolidsEnergyMJ     = 82.0 // MJ per kg MS
	walkingEnergyMJPerKm   = 0.75
	pregnancyLoadingMJ     = 20.0
)

// RationEvaluator computes energy, dry matter, nutrient and cost figures for a ration.
// It holds no state and is safe for concurrent use.
type RationEvaluator struct{}

// NewRationEvaluator creates a new ration evaluator
func NewRationEvaluator() *RationEvaluator {
	return &RationEvaluator{}
}

// Evaluate produces a fresh ResultSnapshot from the given inputs.
// Out-of-range numbers are not rejected; any ratio with a zero or negative
// denominator resolves to 0.
func (e *RationEvaluator) Evaluate(in entities.InputSnapshot) entities.ResultSnapshot {
	result := entities.ResultSnapshot{Mode: in.Mode.String()}

	// Stage A: requirement
	result.Energy = energyRequirement(in.Cow)
	result.MERequiredPerCowMJ = result.Energy.BaseMJ + result.Energy.BufferMJ

	// Stage B: supply
	dm := make([]float64, len(in.Feeds))
	me := make([]float64, len(in.Feeds))
	cost := make([]float64, len(in.Feeds))
	for i, feed := range in.Feeds {
		dm[i] = feed.DryMatterOfferedKg
		me[i] = feed.MEPerKg
		cost[i] = feed.CostPerTonneDM
	}
	result.MEFromSupplementsMJ = floats.Dot(dm, me)
	result.SupplementDMKg = floats.Sum(dm)

	switch in.Mode {
	case entities.GapToPasture:
		stillNeeded := result.MERequiredPerCowMJ - result.MEFromSupplementsMJ
		result.PastureMEStillNeededMJ = stillNeeded
		result.PastureDMRequiredKg = safeDiv(stillNeeded, in.Pasture.MEPerKg)
		if result.PastureDMRequiredKg < 0 {
			result.PastureDMRequiredKg = 0
		}
		result.PastureDMKg = result.PastureDMRequiredKg
	default:
		result.PastureDMKg = in.Pasture.DryMatterIntakeKg
	}

	result.MEFromPastureMJ = result.PastureDMKg * in.Pasture.MEPerKg
	result.TotalMESuppliedMJ = result.MEFromPastureMJ + result.MEFromSupplementsMJ
	result.TotalDryMatterKg = result.PastureDMKg + result.SupplementDMKg
	result.EnergyGapMJ = result.MERequiredPerCowMJ - result.TotalMESuppliedMJ

	result.Feeds = make([]entities.FeedContribution, len(in.Feeds))
	for i, feed := range in.Feeds {
		result.Feeds[i] = entities.FeedContribution{
			Name:             feed.Name,
			DryMatterKg:      dm[i],
			MEMJ:             dm[i] * me[i],
			CostPerCowPerDay: dm[i] * cost[i] / 1000,
		}
	}

	// Stage C: nutrients
	numCows := 0
	if in.Herd != nil {
		numCows = in.Herd.NumCows
	}
	pct := make([]float64, len(in.Feeds))
	result.Nutrients = make([]entities.NutrientTotal, 0, len(entities.Nutrients))
	for _, n := range entities.Nutrients {
		for i, feed := range in.Feeds {
			pct[i] = feed.Nutrients.Pct(n)
		}
		kg := result.PastureDMKg*in.Pasture.Nutrients.Pct(n)/100 + floats.Dot(dm, pct)/100
		total := entities.NutrientTotal{
			Nutrient: n,
			Name:     n.String(),
			KgPerCow: kg,
			PctOfDM:  safeDiv(kg, result.TotalDryMatterKg) * 100,
		}
		if in.Herd != nil {
			total.KgHerd = kg * float64(numCows)
		}
		result.Nutrients = append(result.Nutrients, total)
	}

	// Stage D: herd scaling and cost
	if in.Herd != nil {
		result.Herd = herdTotals(&result, in.Cow, *in.Herd, floats.Dot(dm, cost)/1000)
	}

	return result
}

// energyRequirement applies the fixed requirement model for one cow
func energyRequirement(cow entities.CowProfile) entities.EnergyBreakdown {
	var b entities.EnergyBreakdown
	if cow.LiveweightKg > 0 {
		b.MaintenanceMJ = maintenanceCoefficient * math.Pow(cow.LiveweightKg, metabolicWeightPower)
	}
	b.MilkMJ = cow.MilkSolidsKgPerDay * milkSolidsEnergyMJ
	b.WalkingMJ = walkingEnergyMJPerKm * cow.WalkingKmPerDay
	if cow.PregnantLastTrimester {
		b.PregnancyMJ = pregnancyLoadingMJ
	}
	b.LiveweightGainMJ = cow.LiveweightGainEnergyMJ
	b.BaseMJ = b.MaintenanceMJ + b.MilkMJ + b.WalkingMJ + b.PregnancyMJ + b.LiveweightGainMJ
	b.BufferMJ = b.BaseMJ * (cow.EnvironmentalBufferPct / 100)
	return b
}

// herdTotals scales the per-cow figures and prices the purchased feed.
// Pasture carries no cost.
func herdTotals(r *entities.ResultSnapshot, cow entities.CowProfile, herd entities.HerdContext, costPerCow float64) *entities.HerdTotals {
	cows := float64(herd.NumCows)
	totals := &entities.HerdTotals{
		NumCows:          herd.NumCows,
		MERequiredMJ:     r.MERequiredPerCowMJ * cows,
		MESuppliedMJ:     r.TotalMESuppliedMJ * cows,
		EnergyGapMJ:      r.EnergyGapMJ * cows,
		DryMatterKg:      r.TotalDryMatterKg * cows,
		CostPerCowPerDay: costPerCow,
		TotalCostPerDay:  costPerCow * cows,
		MilkPricePerKgMS: herd.MilkPricePerKgMS,
	}
	if cow.MilkSolidsKgPerDay > 0 && herd.NumCows > 0 {
		totals.CostPerKgMS = totals.TotalCostPerDay / (cow.MilkSolidsKgPerDay * cows)
	}
	totals.MarginPerKgMS = herd.MilkPricePerKgMS - totals.CostPerKgMS
	return totals
}

// safeDiv returns 0 when the denominator is zero or negative
func safeDiv(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
