package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/npcunard/herdfeed/pkg/domain/entities"
)

// FeedCatalogHeader lists the required feed catalog columns. A trailing
// dm_offered_kg column is optional.
var FeedCatalogHeader = []string{
	"name",
	"me_mj_per_kg",
	"cp_pct",
	"ndf_pct",
	"starch_pct",
	"sugar_pct",
	"fat_pct",
	"cost_per_tonne_dm",
}

// FeedRecord is one row of a feed catalog CSV
type FeedRecord struct {
	Name               string  `csv:"name"`
	MEPerKg            float64 `csv:"me_mj_per_kg"`
	CPPct              float64 `csv:"cp_pct"`
	NDFPct             float64 `csv:"ndf_pct"`
	StarchPct          float64 `csv:"starch_pct"`
	SugarPct           float64 `csv:"sugar_pct"`
	FatPct             float64 `csv:"fat_pct"`
	CostPerTonneDM     float64 `csv:"cost_per_tonne_dm"`
	DryMatterOfferedKg float64 `csv:"dm_offered_kg"`
}

// Loader handles loading feed catalog data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFeedCatalog loads feed catalog values from a CSV file
func (l *Loader) LoadFeedCatalog(filename string) ([]*entities.FeedItem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed catalog file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadFeedCatalog(file)
}

// ReadFeedCatalog parses feed catalog rows from a reader
func (l *Loader) ReadFeedCatalog(r io.Reader) ([]*entities.FeedItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed catalog CSV: %w", err)
	}

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, fmt.Errorf("feed catalog CSV must have header and at least one data row")
	}
	if !validateHeader(header, FeedCatalogHeader) {
		return nil, fmt.Errorf("feed catalog CSV header mismatch. Expected: %v, Got: %v", FeedCatalogHeader, header)
	}

	var records []FeedRecord
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("failed to read feed catalog CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("feed catalog CSV must have header and at least one data row")
	}

	feeds := make([]*entities.FeedItem, 0, len(records))
	for i, record := range records {
		feed, err := parseFeedRecord(record)
		if err != nil {
			return nil, fmt.Errorf("feed catalog CSV row %d: %w", i+2, err)
		}
		feeds = append(feeds, feed)
	}

	return feeds, nil
}

// WriteFeedCatalog writes feeds in the catalog CSV format
func (l *Loader) WriteFeedCatalog(w io.Writer, feeds []entities.FeedItem) error {
	records := make([]FeedRecord, len(feeds))
	for i, feed := range feeds {
		records[i] = FeedRecord{
			Name:               string(feed.Name),
			MEPerKg:            feed.MEPerKg,
			CPPct:              feed.Nutrients.Pct(entities.CP),
			NDFPct:             feed.Nutrients.Pct(entities.NDF),
			StarchPct:          feed.Nutrients.Pct(entities.Starch),
			SugarPct:           feed.Nutrients.Pct(entities.Sugar),
			FatPct:             feed.Nutrients.Pct(entities.Fat),
			CostPerTonneDM:     feed.CostPerTonneDM,
			DryMatterOfferedKg: feed.DryMatterOfferedKg,
		}
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("failed to write feed catalog CSV: %w", err)
	}
	return nil
}

// validateHeader checks the required columns lead the header in order
func validateHeader(actual, expected []string) bool {
	if len(actual) < len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseFeedRecord(record FeedRecord) (*entities.FeedItem, error) {
	name := strings.TrimSpace(record.Name)
	nutrients := entities.NewNutrientProfile(
		record.CPPct,
		record.NDFPct,
		record.StarchPct,
		record.SugarPct,
		record.FatPct,
	)
	return entities.NewFeedItem(
		entities.FeedName(name),
		record.DryMatterOfferedKg,
		record.MEPerKg,
		nutrients,
		record.CostPerTonneDM,
	)
}
