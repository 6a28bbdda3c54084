package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npcunard/herdfeed/pkg/domain/entities"
	"github.com/npcunard/herdfeed/pkg/domain/repositories"
)

// FeedCatalogRepository provides in-memory storage for the fixed feed catalog
type FeedCatalogRepository struct {
	mu       sync.RWMutex
	feeds    []entities.FeedItem
	feedsMap map[entities.FeedName]int
}

// NewFeedCatalogRepository creates a catalog whose entry names are fixed to
// those of the given feeds, in the given order
func NewFeedCatalogRepository(catalog []entities.FeedItem) *FeedCatalogRepository {
	r := &FeedCatalogRepository{
		feeds:    make([]entities.FeedItem, 0, len(catalog)),
		feedsMap: make(map[entities.FeedName]int, len(catalog)),
	}
	for _, feed := range catalog {
		if _, exists := r.feedsMap[feed.Name]; exists {
			continue
		}
		r.feedsMap[feed.Name] = len(r.feeds)
		r.feeds = append(r.feeds, feed)
	}
	return r
}

// NewDefaultFeedCatalogRepository creates a catalog seeded with the standard supplements
func NewDefaultFeedCatalogRepository() *FeedCatalogRepository {
	return NewFeedCatalogRepository(entities.DefaultFeedCatalog())
}

// Verify interface compliance
var _ repositories.FeedCatalogRepository = (*FeedCatalogRepository)(nil)

// LoadFeeds replaces catalog values from the given feeds. Every name must
// already be in the catalog and appear at most once.
func (r *FeedCatalogRepository) LoadFeeds(feeds []*entities.FeedItem) error {
	seen := make(map[entities.FeedName]bool, len(feeds))
	var duplicates, unknown []string
	for _, feed := range feeds {
		if seen[feed.Name] {
			duplicates = append(duplicates, string(feed.Name))
		}
		seen[feed.Name] = true
		if _, exists := r.feedsMap[feed.Name]; !exists {
			unknown = append(unknown, string(feed.Name))
		}
	}
	if len(duplicates) > 0 {
		return fmt.Errorf("Duplicate feed names found: %s", strings.Join(duplicates, ", "))
	}
	if len(unknown) > 0 {
		return fmt.Errorf("feeds not in catalog: %s", strings.Join(unknown, ", "))
	}

	for _, feed := range feeds {
		if err := feed.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, feed := range feeds {
		r.feeds[r.feedsMap[feed.Name]] = *feed
	}
	return nil
}

// UpdateFeed replaces the values of an existing catalog entry
func (r *FeedCatalogRepository) UpdateFeed(feed entities.FeedItem) error {
	index, exists := r.feedsMap[feed.Name]
	if !exists {
		return fmt.Errorf("feed not in catalog: %s", feed.Name)
	}
	if err := feed.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.feeds[index] = feed
	return nil
}

// GetFeed returns a copy of the catalog entry for a feed name
func (r *FeedCatalogRepository) GetFeed(name entities.FeedName) (*entities.FeedItem, error) {
	index, exists := r.feedsMap[name]
	if !exists {
		return nil, fmt.Errorf("feed not found: %s", name)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	feed := r.feeds[index]
	return &feed, nil
}

// GetAllFeeds returns a copy of every catalog entry in catalog order
func (r *FeedCatalogRepository) GetAllFeeds() ([]entities.FeedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feeds := make([]entities.FeedItem, len(r.feeds))
	copy(feeds, r.feeds)
	return feeds, nil
}
