package services

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/npcunard/herdfeed/pkg/domain/entities"
	testhelpers "github.com/npcunard/herdfeed/pkg/infrastructure/testing"
)

func BenchmarkRationService_PastureOnly(b *testing.B) {
	ctx := context.Background()
	catalog, sc := testhelpers.BuildSimpleTestData()
	service := NewRationService(catalog, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Evaluate(ctx, sc); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
	}
}

func BenchmarkRationService_Seasonal(b *testing.B) {
	ctx := context.Background()
	catalog, scenarios := testhelpers.BuildSeasonalTestData()
	service := NewRationService(catalog, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Evaluate(ctx, scenarios[i%len(scenarios)]); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
	}
}

func TestRationService_ConcurrentEvaluation(t *testing.T) {
	ctx := context.Background()
	catalog, scenarios := testhelpers.BuildSeasonalTestData()
	service := NewRationService(catalog, nil)

	expected := make([]entities.ResultSnapshot, len(scenarios))
	for i, sc := range scenarios {
		resp, err := service.Evaluate(ctx, sc)
		if err != nil {
			t.Fatalf("Scenario %d failed: %v", i, err)
		}
		expected[i] = resp.Result
	}

	var wg sync.WaitGroup
	errs := make(chan string, len(scenarios)*8)
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, sc := range scenarios {
				resp, err := service.Evaluate(ctx, sc)
				if err != nil {
					errs <- err.Error()
					continue
				}
				if !reflect.DeepEqual(expected[i], resp.Result) {
					errs <- "result differs from sequential evaluation for " + sc.Pasture.Season + " " + sc.Mode
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestRationService_SeasonalScenarios(t *testing.T) {
	catalog, scenarios := testhelpers.BuildSeasonalTestData()
	service := NewRationService(catalog, nil)

	if len(scenarios) != 8 {
		t.Fatalf("Expected 8 seasonal scenarios, got %d", len(scenarios))
	}

	for _, sc := range scenarios {
		t.Run(sc.Pasture.Season+"/"+sc.Mode, func(t *testing.T) {
			resp, err := service.Evaluate(context.Background(), sc)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			r := resp.Result

			if r.Mode == "gap" && r.PastureDMRequiredKg > 0 && r.EnergyGapMJ*r.EnergyGapMJ > 1e-18 {
				t.Errorf("Expected gap-to-pasture to close the energy gap, got %v", r.EnergyGapMJ)
			}
			if r.Herd == nil || r.Herd.CostPerCowPerDay <= 0 {
				t.Errorf("Expected a priced supplement ration, got %+v", r.Herd)
			}
		})
	}
}
