package testing

import (
	"github.com/npcunard/herdfeed/pkg/application/dto"
	"github.com/npcunard/herdfeed/pkg/domain/entities"
	"github.com/npcunard/herdfeed/pkg/infrastructure/repositories/memory"
)

func float(v float64) *float64 {
	return &v
}

// BuildSimpleTestData returns the default catalog and a pasture-only scenario
func BuildSimpleTestData() (*memory.FeedCatalogRepository, dto.Scenario) {
	return memory.NewDefaultFeedCatalogRepository(), dto.Scenario{
		Mode: entities.FixedIntake.String(),
		Cow: dto.CowInput{
			LiveweightKg:           500,
			MilkSolidsKgPerDay:     2.0,
			WalkingKmPerDay:        3.0,
			LiveweightGainEnergyMJ: 50,
			EnvironmentalBufferPct: 5,
		},
		Pasture: dto.PastureInput{Season: entities.Spring.String(), DryMatterIntakeKg: 12, MEPerKg: 11},
		Herd:    &dto.HerdInput{NumCows: 600, MilkPricePerKgMS: 7.5},
	}
}

// BuildSeasonalTestData returns a catalog with adjusted prices and one
// supplemented scenario per season and mode
func BuildSeasonalTestData() (*memory.FeedCatalogRepository, []dto.Scenario) {
	catalog := memory.NewDefaultFeedCatalogRepository()
	custom := entities.FeedItem{
		Name:           entities.Custom1,
		MEPerKg:        12.5,
		Nutrients:      entities.NewNutrientProfile(14, 25, 35, 6, 5),
		CostPerTonneDM: 520,
	}
	if err := catalog.UpdateFeed(custom); err != nil {
		panic(err)
	}

	offers := map[entities.Season][]dto.FeedInput{
		entities.Spring: {
			{Name: string(entities.PKE), DryMatterOfferedKg: 1},
		},
		entities.Summer: {
			{Name: string(entities.MaizeSilage), DryMatterOfferedKg: 4},
			{Name: string(entities.PKE), DryMatterOfferedKg: 2},
		},
		entities.Autumn: {
			{Name: string(entities.GrassSilage), DryMatterOfferedKg: 3},
			{Name: string(entities.Custom1), DryMatterOfferedKg: 1.5},
		},
		entities.Winter: {
			{Name: string(entities.MaizeSilage), DryMatterOfferedKg: 5},
			{Name: string(entities.MilledMaize), DryMatterOfferedKg: 2, CostPerTonneDM: float(480)},
			{Name: string(entities.GrassSilage), DryMatterOfferedKg: 2},
		},
	}

	var scenarios []dto.Scenario
	for _, season := range entities.Seasons {
		for _, mode := range []entities.EvaluationMode{entities.FixedIntake, entities.GapToPasture} {
			_, sc := BuildSimpleTestData()
			sc.Mode = mode.String()
			sc.Pasture.Season = season.String()
			sc.Pasture.DryMatterIntakeKg = 10
			sc.Pasture.MEPerKg = 10.5
			sc.Cow.PregnantLastTrimester = season == entities.Winter
			sc.Feeds = offers[season]
			scenarios = append(scenarios, sc)
		}
	}
	return catalog, scenarios
}
