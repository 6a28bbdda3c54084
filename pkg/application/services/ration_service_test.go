package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/npcunard/herdfeed/pkg/application/dto"
	"github.com/npcunard/herdfeed/pkg/domain/entities"
	"github.com/npcunard/herdfeed/pkg/infrastructure/repositories/memory"
)

func float(v float64) *float64 {
	return &v
}

func newTestRationService(t *testing.T) *RationService {
	t.Helper()
	return NewRationService(memory.NewDefaultFeedCatalogRepository(), zaptest.NewLogger(t))
}

func testScenario() dto.Scenario {
	return dto.Scenario{
		Mode: "fixed",
		Cow: dto.CowInput{
			LiveweightKg:           500,
			MilkSolidsKgPerDay:     2.0,
			WalkingKmPerDay:        3.0,
			LiveweightGainEnergyMJ: 50,
			EnvironmentalBufferPct: 5,
		},
		Pasture: dto.PastureInput{Season: "Spring", DryMatterIntakeKg: 12, MEPerKg: 11},
		Herd:    &dto.HerdInput{NumCows: 600, MilkPricePerKgMS: 7.5},
	}
}

func TestRationService_BuildSnapshot(t *testing.T) {
	service := newTestRationService(t)

	sc := testScenario()
	sc.Pasture.Season = "summer"
	sc.Pasture.Nutrients.CP = float(19)
	sc.Feeds = []dto.FeedInput{
		{Name: "PKE", DryMatterOfferedKg: 2},
		{Name: "Custom 2", DryMatterOfferedKg: 1, MEPerKg: float(12.5), CostPerTonneDM: float(520),
			Nutrients: dto.NutrientInput{Starch: float(45)}},
	}

	snapshot, err := service.BuildSnapshot(sc)
	if err != nil {
		t.Fatalf("BuildSnapshot failed: %v", err)
	}

	if snapshot.Mode != entities.FixedIntake {
		t.Errorf("Expected fixed mode, got %s", snapshot.Mode)
	}
	if snapshot.Pasture.Season != entities.Summer {
		t.Errorf("Expected Summer, got %s", snapshot.Pasture.Season)
	}
	if snapshot.Pasture.Nutrients.Pct(entities.CP) != 19 {
		t.Errorf("Expected pasture CP override 19, got %v", snapshot.Pasture.Nutrients.Pct(entities.CP))
	}
	if snapshot.Pasture.Nutrients.Pct(entities.NDF) != 50 {
		t.Errorf("Expected Summer NDF default 50, got %v", snapshot.Pasture.Nutrients.Pct(entities.NDF))
	}

	if len(snapshot.Feeds) != 6 {
		t.Fatalf("Expected the full catalog of 6 feeds, got %d", len(snapshot.Feeds))
	}
	for _, feed := range snapshot.Feeds {
		switch feed.Name {
		case entities.PKE:
			if feed.DryMatterOfferedKg != 2 || feed.MEPerKg != 10 {
				t.Errorf("Expected PKE 2 kg at catalog ME 10, got %+v", feed)
			}
		case entities.Custom2:
			if feed.MEPerKg != 12.5 || feed.CostPerTonneDM != 520 || feed.Nutrients.Pct(entities.Starch) != 45 {
				t.Errorf("Expected Custom 2 overrides applied, got %+v", feed)
			}
			if feed.Nutrients.Pct(entities.CP) != 10 {
				t.Errorf("Expected Custom 2 CP to keep catalog value 10, got %v", feed.Nutrients.Pct(entities.CP))
			}
		default:
			if feed.DryMatterOfferedKg != 0 {
				t.Errorf("Expected %s not offered, got %v", feed.Name, feed.DryMatterOfferedKg)
			}
		}
	}

	if snapshot.Herd == nil || snapshot.Herd.NumCows != 600 {
		t.Errorf("Expected herd of 600, got %+v", snapshot.Herd)
	}
}

func TestRationService_BuildSnapshot_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		modify      func(sc *dto.Scenario)
		expectError string
	}{
		{"unknown mode", func(sc *dto.Scenario) { sc.Mode = "optimise" }, "unknown evaluation mode"},
		{"unknown season", func(sc *dto.Scenario) { sc.Pasture.Season = "Dry" }, "unknown season"},
		{"unknown feed", func(sc *dto.Scenario) {
			sc.Feeds = []dto.FeedInput{{Name: "Barley", DryMatterOfferedKg: 1}}
		}, `feed not in catalog: "Barley"`},
		{"duplicate feed", func(sc *dto.Scenario) {
			sc.Feeds = []dto.FeedInput{{Name: "PKE"}, {Name: "PKE"}}
		}, "duplicate feed: PKE"},
		{"negative feed DM", func(sc *dto.Scenario) {
			sc.Feeds = []dto.FeedInput{{Name: "PKE", DryMatterOfferedKg: -1}}
		}, "dry matter offered cannot be negative"},
		{"bad cow", func(sc *dto.Scenario) { sc.Cow.EnvironmentalBufferPct = 35 }, "environmental buffer must be between 0 and 20"},
		{"bad pasture nutrient", func(sc *dto.Scenario) { sc.Pasture.Nutrients.Fat = float(-3) }, "Fat percentage"},
		{"bad herd", func(sc *dto.Scenario) { sc.Herd.NumCows = 0 }, "number of cows must be at least 1"},
	}

	service := newTestRationService(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sc := testScenario()
			tc.modify(&sc)

			_, err := service.BuildSnapshot(sc)
			if err == nil {
				t.Fatalf("Expected error for %s, got none", tc.name)
			}
			if !strings.Contains(err.Error(), tc.expectError) {
				t.Errorf("Expected error containing '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestRationService_Evaluate(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	service := NewRationService(memory.NewDefaultFeedCatalogRepository(), zap.New(core))

	sc := testScenario()
	sc.Feeds = []dto.FeedInput{{Name: "Maize Silage", DryMatterOfferedKg: 4}}

	resp, err := service.Evaluate(context.Background(), sc)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if resp.Season != "Spring" {
		t.Errorf("Expected Spring, got %s", resp.Season)
	}
	if resp.PastureNutrients["CP"] != 25 {
		t.Errorf("Expected pasture CP 25 in response, got %v", resp.PastureNutrients["CP"])
	}
	if resp.Result.Herd == nil || resp.Result.Herd.CostPerCowPerDay != 0.6 {
		t.Errorf("Expected cost per cow 0.60, got %+v", resp.Result.Herd)
	}
	if resp.Result.TotalDryMatterKg != 16 {
		t.Errorf("Expected total DM 16, got %v", resp.Result.TotalDryMatterKg)
	}

	entries := logs.FilterMessage("ration evaluated").All()
	if len(entries) != 1 {
		t.Fatalf("Expected one evaluation log entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["mode"] != "fixed" {
		t.Errorf("Expected mode field in log entry, got %v", entries[0].ContextMap())
	}
}

func TestRationService_Evaluate_GapMode(t *testing.T) {
	service := newTestRationService(t)

	sc := testScenario()
	sc.Mode = "gap-to-pasture"
	sc.Pasture.DryMatterIntakeKg = 0

	resp, err := service.Evaluate(context.Background(), sc)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if resp.Result.Mode != "gap" {
		t.Errorf("Expected gap mode, got %s", resp.Result.Mode)
	}
	if resp.Result.PastureDMRequiredKg <= 0 {
		t.Errorf("Expected positive pasture DM required, got %v", resp.Result.PastureDMRequiredKg)
	}
}

func TestRationService_Evaluate_InvalidScenario(t *testing.T) {
	service := newTestRationService(t)

	sc := testScenario()
	sc.Cow.LiveweightKg = 0

	_, err := service.Evaluate(context.Background(), sc)
	if !errors.Is(err, ErrInvalidScenario) {
		t.Errorf("Expected ErrInvalidScenario, got %v", err)
	}
}

func TestRationService_Evaluate_CancelledContext(t *testing.T) {
	service := newTestRationService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Evaluate(ctx, testScenario())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRationService_CatalogChangesApply(t *testing.T) {
	repo := memory.NewDefaultFeedCatalogRepository()
	service := NewRationService(repo, nil)

	pke, _ := repo.GetFeed(entities.PKE)
	pke.CostPerTonneDM = 400
	if err := repo.UpdateFeed(*pke); err != nil {
		t.Fatalf("Failed to update catalog: %v", err)
	}

	sc := testScenario()
	sc.Feeds = []dto.FeedInput{{Name: "PKE", DryMatterOfferedKg: 2}}

	resp, err := service.Evaluate(context.Background(), sc)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if resp.Result.Herd.CostPerCowPerDay != 0.8 {
		t.Errorf("Expected cost per cow 0.80 from updated catalog price, got %v", resp.Result.Herd.CostPerCowPerDay)
	}

	catalog, err := service.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if catalog[1].DryMatterOfferedKg != 0 {
		t.Errorf("Expected evaluation not to write offered DM back to the catalog")
	}
}

func TestRationService_SeasonDefaults(t *testing.T) {
	service := newTestRationService(t)

	season, profile, err := service.SeasonDefaults("winter")
	if err != nil {
		t.Fatalf("SeasonDefaults failed: %v", err)
	}
	if season != entities.Winter || profile.Pct(entities.Fat) != 3.8 {
		t.Errorf("Expected Winter Fat 3.8, got %s %v", season, profile.Pct(entities.Fat))
	}

	if _, _, err := service.SeasonDefaults("wet"); err == nil {
		t.Error("Expected error for unknown season")
	}
}
