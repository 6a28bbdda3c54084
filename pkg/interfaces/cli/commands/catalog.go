package commands

import (
	"fmt"

	"github.com/npcunard/herdfeed/pkg/application/dto"
	"github.com/npcunard/herdfeed/pkg/domain/entities"
	"github.com/npcunard/herdfeed/pkg/infrastructure/repositories/csv"
	"github.com/npcunard/herdfeed/pkg/infrastructure/repositories/memory"
)

// loadCatalog builds the default feed catalog and applies the CSV at path, if any.
// It also returns the CSV rows that carried an offered dry matter amount.
func loadCatalog(path string) (*memory.FeedCatalogRepository, []dto.FeedInput, error) {
	repo := memory.NewDefaultFeedCatalogRepository()
	if path == "" {
		return repo, nil, nil
	}

	feeds, err := csv.NewLoader().LoadFeedCatalog(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading feed catalog: %w", err)
	}
	if err := repo.LoadFeeds(feeds); err != nil {
		return nil, nil, fmt.Errorf("failed to load feeds into catalog: %w", err)
	}

	var offered []dto.FeedInput
	for _, feed := range feeds {
		if feed.DryMatterOfferedKg > 0 {
			offered = append(offered, dto.FeedInput{Name: string(feed.Name), DryMatterOfferedKg: feed.DryMatterOfferedKg})
		}
	}
	return repo, offered, nil
}

// mergeOffers adds catalog offers for feeds the scenario does not already list
func mergeOffers(feeds []dto.FeedInput, offers []dto.FeedInput) []dto.FeedInput {
	listed := make(map[entities.FeedName]bool, len(feeds))
	for _, f := range feeds {
		listed[entities.FeedName(f.Name)] = true
	}
	for _, offer := range offers {
		if !listed[entities.FeedName(offer.Name)] {
			feeds = append(feeds, offer)
		}
	}
	return feeds
}
