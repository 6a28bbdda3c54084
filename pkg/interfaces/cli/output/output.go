package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/npcunard/herdfeed/pkg/application/dto"
	"github.com/npcunard/herdfeed/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	// Writer receives console output. Defaults to os.Stdout.
	Writer io.Writer
}

func (c Config) writer() io.Writer {
	if c.Writer == nil {
		return os.Stdout
	}
	return c.Writer
}

// Generate renders an evaluation in the specified format
func Generate(resp *dto.EvaluationResponse, config Config) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(resp, config)
	case "json":
		return generateJSONOutput(resp, config)
	case "csv":
		return generateCSVOutput(resp, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// fixed rounds half away from zero to the given places, so tiny negative
// residues print as zero
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func gapLabel(gap float64) string {
	switch decimal.NewFromFloat(gap).Round(1).Sign() {
	case 1:
		return "deficit"
	case -1:
		return "surplus"
	default:
		return "balanced"
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(resp *dto.EvaluationResponse, config Config) error {
	w := config.writer()

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		filename := filepath.Join(config.OutputDir, "ration_results.txt")
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create text file: %w", err)
		}
		defer file.Close()

		writeTextReport(io.MultiWriter(w, file), resp)
		if config.Verbose {
			fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
		}
		return nil
	}

	writeTextReport(w, resp)
	return nil
}

func writeTextReport(w io.Writer, resp *dto.EvaluationResponse) {
	r := resp.Result

	fmt.Fprintf(w, "📊 Ration Evaluation (%s, %s)\n", r.Mode, resp.Season)
	fmt.Fprintf(w, "==============================\n\n")

	fmt.Fprintf(w, "Energy Requirement (MJ ME/cow/day):\n")
	fmt.Fprintf(w, "  %-22s %10s\n", "Maintenance", fixed(r.Energy.MaintenanceMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n", "Milk production", fixed(r.Energy.MilkMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n", "Walking", fixed(r.Energy.WalkingMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n", "Pregnancy", fixed(r.Energy.PregnancyMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n", "Liveweight gain", fixed(r.Energy.LiveweightGainMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n", "Environmental buffer", fixed(r.Energy.BufferMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n\n", "Total required", fixed(r.MERequiredPerCowMJ, 1))

	fmt.Fprintf(w, "Energy Supply (MJ ME/cow/day):\n")
	fmt.Fprintf(w, "  %-22s %10s\n", "Pasture", fixed(r.MEFromPastureMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n", "Supplements", fixed(r.MEFromSupplementsMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s\n", "Total supplied", fixed(r.TotalMESuppliedMJ, 1))
	fmt.Fprintf(w, "  %-22s %10s (%s)\n", "Energy gap", fixed(r.EnergyGapMJ, 1), gapLabel(r.EnergyGapMJ))
	if r.Mode == entities.GapToPasture.String() {
		fmt.Fprintf(w, "  %-22s %10s\n", "Pasture ME still needed", fixed(r.PastureMEStillNeededMJ, 1))
		fmt.Fprintf(w, "  %-22s %10s kg DM\n", "Pasture DM required", fixed(r.PastureDMRequiredKg, 2))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Dry Matter Intake (kg DM/cow/day):\n")
	fmt.Fprintf(w, "  %-22s %10s\n", "Pasture", fixed(r.PastureDMKg, 2))
	fmt.Fprintf(w, "  %-22s %10s\n", "Supplements", fixed(r.SupplementDMKg, 2))
	fmt.Fprintf(w, "  %-22s %10s\n\n", "Total", fixed(r.TotalDryMatterKg, 2))

	offered := 0
	for _, feed := range r.Feeds {
		if feed.DryMatterKg != 0 {
			offered++
		}
	}
	if offered > 0 {
		fmt.Fprintf(w, "🌽 Supplements:\n")
		fmt.Fprintf(w, "%-15s %-10s %-10s %-12s\n", "Feed", "DM (kg)", "ME (MJ)", "$/cow/day")
		fmt.Fprintf(w, "%-15s %-10s %-10s %-12s\n", "---------------", "----------", "----------", "------------")
		for _, feed := range r.Feeds {
			if feed.DryMatterKg == 0 {
				continue
			}
			fmt.Fprintf(w, "%-15s %-10s %-10s %-12s\n",
				feed.Name,
				fixed(feed.DryMatterKg, 2),
				fixed(feed.MEMJ, 1),
				fixed(feed.CostPerCowPerDay, 2))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "🧪 Nutrients:\n")
	fmt.Fprintf(w, "%-10s %-12s %-10s %-12s\n", "Nutrient", "kg/cow/day", "% of DM", "kg herd/day")
	fmt.Fprintf(w, "%-10s %-12s %-10s %-12s\n", "----------", "------------", "----------", "------------")
	for _, n := range r.Nutrients {
		herd := "-"
		if r.Herd != nil {
			herd = fixed(n.KgHerd, 1)
		}
		fmt.Fprintf(w, "%-10s %-12s %-10s %-12s\n", n.Name, fixed(n.KgPerCow, 2), fixed(n.PctOfDM, 1), herd)
	}
	fmt.Fprintln(w)

	if r.Herd != nil {
		h := r.Herd
		fmt.Fprintf(w, "🐄 Herd (%d cows):\n", h.NumCows)
		fmt.Fprintf(w, "  %-22s %12s MJ/day\n", "ME required", fixed(h.MERequiredMJ, 0))
		fmt.Fprintf(w, "  %-22s %12s MJ/day\n", "ME supplied", fixed(h.MESuppliedMJ, 0))
		fmt.Fprintf(w, "  %-22s %12s MJ/day\n", "Energy gap", fixed(h.EnergyGapMJ, 0))
		fmt.Fprintf(w, "  %-22s %12s kg/day\n", "Dry matter intake", fixed(h.DryMatterKg, 0))
		fmt.Fprintf(w, "  %-22s %12s\n", "Feed cost $/cow/day", fixed(h.CostPerCowPerDay, 2))
		fmt.Fprintf(w, "  %-22s %12s\n", "Feed cost $/day", fixed(h.TotalCostPerDay, 2))
		fmt.Fprintf(w, "  %-22s %12s\n", "Feed cost $/kg MS", fixed(h.CostPerKgMS, 2))
		fmt.Fprintf(w, "  %-22s %12s\n", "Milk price $/kg MS", fixed(h.MilkPricePerKgMS, 2))
		fmt.Fprintf(w, "  %-22s %12s\n", "Margin $/kg MS", fixed(h.MarginPerKgMS, 2))
	}
}

// generateJSONOutput creates JSON output
func generateJSONOutput(resp *dto.EvaluationResponse, config Config) error {
	jsonData, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	w := config.writer()
	if config.OutputDir == "" {
		fmt.Fprintln(w, string(jsonData))
		return nil
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(config.OutputDir, "ration_results.json")
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// SummaryRow is one line of summary.csv
type SummaryRow struct {
	Metric string `csv:"metric"`
	Value  string `csv:"value"`
	Unit   string `csv:"unit"`
}

// NutrientRow is one line of nutrients.csv
type NutrientRow struct {
	Nutrient string `csv:"nutrient"`
	KgPerCow string `csv:"kg_per_cow"`
	PctOfDM  string `csv:"pct_of_dm"`
	KgHerd   string `csv:"kg_herd"`
}

// FeedRow is one line of feeds.csv
type FeedRow struct {
	Feed             string `csv:"feed"`
	DryMatterKg      string `csv:"dm_kg"`
	MEMJ             string `csv:"me_mj"`
	CostPerCowPerDay string `csv:"cost_per_cow_per_day"`
}

// generateCSVOutput writes summary, nutrient and feed CSV files
func generateCSVOutput(resp *dto.EvaluationResponse, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	summaryFile := filepath.Join(config.OutputDir, "summary.csv")
	summary := SummaryRows(resp)
	if err := writeCSV(summaryFile, &summary); err != nil {
		return fmt.Errorf("failed to write summary CSV: %w", err)
	}

	nutrientsFile := filepath.Join(config.OutputDir, "nutrients.csv")
	nutrients := NutrientRows(resp.Result)
	if err := writeCSV(nutrientsFile, &nutrients); err != nil {
		return fmt.Errorf("failed to write nutrients CSV: %w", err)
	}

	feedsFile := filepath.Join(config.OutputDir, "feeds.csv")
	feeds := FeedRows(resp.Result)
	if err := writeCSV(feedsFile, &feeds); err != nil {
		return fmt.Errorf("failed to write feeds CSV: %w", err)
	}

	if config.Verbose {
		w := config.writer()
		fmt.Fprintf(w, "💾 CSV results saved to:\n")
		fmt.Fprintf(w, "  Summary: %s\n", summaryFile)
		fmt.Fprintf(w, "  Nutrients: %s\n", nutrientsFile)
		fmt.Fprintf(w, "  Feeds: %s\n", feedsFile)
	}

	return nil
}

func writeCSV(filename string, rows interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return gocsv.MarshalFile(rows, file)
}

// SummaryRows flattens the energy, dry matter and herd figures into rows
func SummaryRows(resp *dto.EvaluationResponse) []SummaryRow {
	r := resp.Result
	rows := []SummaryRow{
		{"mode", r.Mode, ""},
		{"season", resp.Season, ""},
		{"me_required_per_cow", fixed(r.MERequiredPerCowMJ, 2), "MJ"},
		{"me_from_pasture", fixed(r.MEFromPastureMJ, 2), "MJ"},
		{"me_from_supplements", fixed(r.MEFromSupplementsMJ, 2), "MJ"},
		{"total_me_supplied", fixed(r.TotalMESuppliedMJ, 2), "MJ"},
		{"energy_gap", fixed(r.EnergyGapMJ, 2), "MJ"},
	}
	if r.Mode == entities.GapToPasture.String() {
		rows = append(rows,
			SummaryRow{"pasture_me_still_needed", fixed(r.PastureMEStillNeededMJ, 2), "MJ"},
			SummaryRow{"pasture_dm_required", fixed(r.PastureDMRequiredKg, 2), "kg DM"})
	}
	rows = append(rows,
		SummaryRow{"pasture_dm", fixed(r.PastureDMKg, 2), "kg DM"},
		SummaryRow{"supplement_dm", fixed(r.SupplementDMKg, 2), "kg DM"},
		SummaryRow{"total_dm", fixed(r.TotalDryMatterKg, 2), "kg DM"})

	if h := r.Herd; h != nil {
		rows = append(rows,
			SummaryRow{"num_cows", fmt.Sprintf("%d", h.NumCows), "cows"},
			SummaryRow{"herd_me_required", fixed(h.MERequiredMJ, 0), "MJ/day"},
			SummaryRow{"herd_dm", fixed(h.DryMatterKg, 0), "kg DM/day"},
			SummaryRow{"cost_per_cow_per_day", fixed(h.CostPerCowPerDay, 2), "$"},
			SummaryRow{"total_cost_per_day", fixed(h.TotalCostPerDay, 2), "$"},
			SummaryRow{"cost_per_kg_ms", fixed(h.CostPerKgMS, 2), "$"},
			SummaryRow{"margin_per_kg_ms", fixed(h.MarginPerKgMS, 2), "$"})
	}
	return rows
}

// NutrientRows converts nutrient totals to CSV rows
func NutrientRows(r entities.ResultSnapshot) []NutrientRow {
	rows := make([]NutrientRow, len(r.Nutrients))
	for i, n := range r.Nutrients {
		rows[i] = NutrientRow{
			Nutrient: n.Name,
			KgPerCow: fixed(n.KgPerCow, 3),
			PctOfDM:  fixed(n.PctOfDM, 2),
		}
		if r.Herd != nil {
			rows[i].KgHerd = fixed(n.KgHerd, 1)
		}
	}
	return rows
}

// FeedRows converts per-feed contributions to CSV rows
func FeedRows(r entities.ResultSnapshot) []FeedRow {
	rows := make([]FeedRow, len(r.Feeds))
	for i, feed := range r.Feeds {
		rows[i] = FeedRow{
			Feed:             string(feed.Name),
			DryMatterKg:      fixed(feed.DryMatterKg, 2),
			MEMJ:             fixed(feed.MEMJ, 2),
			CostPerCowPerDay: fixed(feed.CostPerCowPerDay, 4),
		}
	}
	return rows
}
