package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/npcunard/herdfeed/pkg/domain/entities"
	"github.com/npcunard/herdfeed/pkg/domain/services"
)

func main() {
	// A mid-lactation cow walking to an autumn paddock
	cow, err := entities.NewCowProfile(520, 1.9, 2.5, false, 0, 5)
	if err != nil {
		fmt.Printf("❌ Invalid cow: %v\n", err)
		return
	}

	pasture, err := entities.NewPastureProfile(entities.Autumn, 11, 10.5, entities.Autumn.DefaultPastureNutrients())
	if err != nil {
		fmt.Printf("❌ Invalid pasture: %v\n", err)
		return
	}

	herd, err := entities.NewHerdContext(420, 8.20)
	if err != nil {
		fmt.Printf("❌ Invalid herd: %v\n", err)
		return
	}

	// Offer silage and PKE from the default catalog
	feeds := entities.DefaultFeedCatalog()
	for i := range feeds {
		switch feeds[i].Name {
		case entities.MaizeSilage:
			feeds[i].DryMatterOfferedKg = 3
		case entities.PKE:
			feeds[i].DryMatterOfferedKg = 1.5
		}
	}

	evaluator := services.NewRationEvaluator()

	for _, mode := range []entities.EvaluationMode{entities.FixedIntake, entities.GapToPasture} {
		snapshot := entities.InputSnapshot{
			Cow:     *cow,
			Pasture: *pasture,
			Feeds:   feeds,
			Mode:    mode,
			Herd:    herd,
		}
		if err := snapshot.Validate(); err != nil {
			fmt.Printf("❌ Invalid snapshot: %v\n", err)
			return
		}

		result := evaluator.Evaluate(snapshot)

		fmt.Printf("🐄 Mode: %s\n", result.Mode)
		fmt.Printf("  ME required:   %s MJ/cow/day\n", round(result.MERequiredPerCowMJ, 1))
		fmt.Printf("  ME supplied:   %s MJ/cow/day\n", round(result.TotalMESuppliedMJ, 1))
		fmt.Printf("  Energy gap:    %s MJ/cow/day\n", round(result.EnergyGapMJ, 1))
		fmt.Printf("  Pasture DM:    %s kg/cow/day\n", round(result.PastureDMKg, 2))
		fmt.Printf("  Crude protein: %s %% of DM\n", round(result.Nutrient(entities.CP).PctOfDM, 1))
		fmt.Printf("  Feed cost:     $%s/kg MS (margin $%s)\n",
			round(result.Herd.CostPerKgMS, 2), round(result.Herd.MarginPerKgMS, 2))
		fmt.Println()
	}
}

func round(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
