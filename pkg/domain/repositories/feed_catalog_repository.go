package repositories

import "github.com/npcunard/herdfeed/pkg/domain/entities"

// FeedCatalogRepository provides access to the fixed supplement catalog.
// Entry names are fixed; their values are editable.
type FeedCatalogRepository interface {
	GetFeed(name entities.FeedName) (*entities.FeedItem, error)
	GetAllFeeds() ([]entities.FeedItem, error)
	UpdateFeed(feed entities.FeedItem) error
	LoadFeeds(feeds []*entities.FeedItem) error
}
