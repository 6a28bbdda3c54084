package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/npcunard/herdfeed/pkg/application/dto"
	"github.com/npcunard/herdfeed/pkg/domain/entities"
	"github.com/npcunard/herdfeed/pkg/domain/repositories"
	domainservices "github.com/npcunard/herdfeed/pkg/domain/services"
)

// ErrInvalidScenario marks scenarios rejected at the input boundary
var ErrInvalidScenario = errors.New("invalid scenario")

// RationService turns scenarios into validated input snapshots and evaluates them
type RationService struct {
	catalog   repositories.FeedCatalogRepository
	evaluator *domainservices.RationEvaluator
	logger    *zap.Logger
}

// NewRationService creates a ration service over a feed catalog
func NewRationService(catalog repositories.FeedCatalogRepository, logger *zap.Logger) *RationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RationService{
		catalog:   catalog,
		evaluator: domainservices.NewRationEvaluator(),
		logger:    logger,
	}
}

// BuildSnapshot resolves a scenario against the feed catalog and validates it.
// Pasture nutrients not given in the scenario take the season's defaults.
func (s *RationService) BuildSnapshot(sc dto.Scenario) (entities.InputSnapshot, error) {
	mode, err := entities.ParseEvaluationMode(sc.Mode)
	if err != nil {
		return entities.InputSnapshot{}, err
	}
	season, err := entities.ParseSeason(sc.Pasture.Season)
	if err != nil {
		return entities.InputSnapshot{}, err
	}

	editor := NewPastureEditor(season, sc.Pasture.DryMatterIntakeKg, sc.Pasture.MEPerKg)
	for _, n := range entities.Nutrients {
		if pct, ok := sc.Pasture.Nutrients.Get(n); ok {
			editor.SetNutrient(n, pct)
		}
	}

	feeds, err := s.resolveFeeds(sc.Feeds)
	if err != nil {
		return entities.InputSnapshot{}, err
	}

	snapshot := entities.InputSnapshot{
		Cow: entities.CowProfile{
			LiveweightKg:           sc.Cow.LiveweightKg,
			MilkSolidsKgPerDay:     sc.Cow.MilkSolidsKgPerDay,
			WalkingKmPerDay:        sc.Cow.WalkingKmPerDay,
			PregnantLastTrimester:  sc.Cow.PregnantLastTrimester,
			LiveweightGainEnergyMJ: sc.Cow.LiveweightGainEnergyMJ,
			EnvironmentalBufferPct: sc.Cow.EnvironmentalBufferPct,
		},
		Pasture: editor.Snapshot(),
		Feeds:   feeds,
		Mode:    mode,
	}
	if sc.Herd != nil {
		snapshot.Herd = &entities.HerdContext{
			NumCows:          sc.Herd.NumCows,
			MilkPricePerKgMS: sc.Herd.MilkPricePerKgMS,
		}
	}

	if err := snapshot.Validate(); err != nil {
		return entities.InputSnapshot{}, err
	}
	return snapshot, nil
}

// resolveFeeds starts from the full catalog with nothing offered and applies
// the scenario's feed entries by name
func (s *RationService) resolveFeeds(inputs []dto.FeedInput) ([]entities.FeedItem, error) {
	feeds, err := s.catalog.GetAllFeeds()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed catalog: %w", err)
	}

	index := make(map[entities.FeedName]int, len(feeds))
	for i := range feeds {
		feeds[i].DryMatterOfferedKg = 0
		index[feeds[i].Name] = i
	}

	seen := make(map[entities.FeedName]bool, len(inputs))
	for _, in := range inputs {
		name := entities.FeedName(strings.TrimSpace(in.Name))
		i, exists := index[name]
		if !exists {
			return nil, fmt.Errorf("feed not in catalog: %q", in.Name)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate feed: %s", name)
		}
		seen[name] = true

		feed := &feeds[i]
		feed.DryMatterOfferedKg = in.DryMatterOfferedKg
		if in.MEPerKg != nil {
			feed.MEPerKg = *in.MEPerKg
		}
		if in.CostPerTonneDM != nil {
			feed.CostPerTonneDM = *in.CostPerTonneDM
		}
		for _, n := range entities.Nutrients {
			if pct, ok := in.Nutrients.Get(n); ok {
				feed.Nutrients = feed.Nutrients.With(n, pct)
			}
		}
	}
	return feeds, nil
}

// Evaluate builds a snapshot from the scenario and evaluates it
func (s *RationService) Evaluate(ctx context.Context, sc dto.Scenario) (*dto.EvaluationResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshot, err := s.BuildSnapshot(sc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	return s.EvaluateSnapshot(snapshot), nil
}

// EvaluateSnapshot evaluates an already validated snapshot
func (s *RationService) EvaluateSnapshot(snapshot entities.InputSnapshot) *dto.EvaluationResponse {
	result := s.evaluator.Evaluate(snapshot)

	fields := []zap.Field{
		zap.String("mode", result.Mode),
		zap.String("season", snapshot.Pasture.Season.String()),
		zap.Float64("me_required_mj", result.MERequiredPerCowMJ),
		zap.Float64("me_supplied_mj", result.TotalMESuppliedMJ),
		zap.Float64("energy_gap_mj", result.EnergyGapMJ),
		zap.Float64("dry_matter_kg", result.TotalDryMatterKg),
	}
	if result.Herd != nil {
		fields = append(fields,
			zap.Int("num_cows", result.Herd.NumCows),
			zap.Float64("cost_per_kg_ms", result.Herd.CostPerKgMS))
	}
	s.logger.Debug("ration evaluated", fields...)

	return &dto.EvaluationResponse{
		Season:           snapshot.Pasture.Season.String(),
		PastureNutrients: dto.NutrientMap(snapshot.Pasture.Nutrients),
		Result:           result,
	}
}

// Catalog returns the current feed catalog
func (s *RationService) Catalog() ([]entities.FeedItem, error) {
	feeds, err := s.catalog.GetAllFeeds()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed catalog: %w", err)
	}
	return feeds, nil
}

// SeasonDefaults returns the seed pasture nutrients for a season name
func (s *RationService) SeasonDefaults(name string) (entities.Season, entities.NutrientProfile, error) {
	season, err := entities.ParseSeason(name)
	if err != nil {
		return 0, entities.NutrientProfile{}, err
	}
	return season, season.DefaultPastureNutrients(), nil
}
