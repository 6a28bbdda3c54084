package output

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/npcunard/herdfeed/pkg/application/dto"
	"github.com/npcunard/herdfeed/pkg/application/services"
	"github.com/npcunard/herdfeed/pkg/infrastructure/repositories/memory"
	"github.com/npcunard/herdfeed/pkg/infrastructure/scenario"
)

func evaluate(t *testing.T, mode string, feeds ...dto.FeedInput) *dto.EvaluationResponse {
	t.Helper()
	sc := scenario.MustDefaults()
	sc.Mode = mode
	sc.Feeds = feeds

	svc := services.NewRationService(memory.NewDefaultFeedCatalogRepository(), nil)
	resp, err := svc.Evaluate(context.Background(), sc)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	return resp
}

func TestGenerate_Text(t *testing.T) {
	resp := evaluate(t, "fixed", dto.FeedInput{Name: "Maize Silage", DryMatterOfferedKg: 4})

	var buf bytes.Buffer
	if err := Generate(resp, Config{Format: "text", Writer: &buf}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := buf.String()

	expected := []string{
		"Ration Evaluation (fixed, Spring)",
		"Total required",
		"288.1",
		"deficit",
		"Maize Silage",
		"Herd (600 cows)",
		"0.60",
	}
	for _, s := range expected {
		if !strings.Contains(out, s) {
			t.Errorf("Expected text output to contain %q", s)
		}
	}
	if strings.Contains(out, "PKE") {
		t.Error("Expected feeds with no dry matter offered to be omitted")
	}
	if strings.Contains(out, "Pasture DM required") {
		t.Error("Expected gap-to-pasture lines only in gap mode")
	}
}

func TestGenerate_TextGapMode(t *testing.T) {
	resp := evaluate(t, "gap")

	var buf bytes.Buffer
	if err := Generate(resp, Config{Format: "text", Writer: &buf}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Pasture DM required") {
		t.Error("Expected pasture DM required line in gap mode")
	}
	if !strings.Contains(out, "(balanced)") {
		t.Errorf("Expected balanced energy gap in gap mode, got:\n%s", out)
	}
}

func TestGenerate_TextToFile(t *testing.T) {
	resp := evaluate(t, "fixed")
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := Generate(resp, Config{Format: "text", OutputDir: dir, Writer: &buf}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	saved, err := os.ReadFile(filepath.Join(dir, "ration_results.txt"))
	if err != nil {
		t.Fatalf("Expected text results file: %v", err)
	}
	if !bytes.Equal(saved, buf.Bytes()) {
		t.Error("Expected saved report to match console output")
	}
}

func TestGenerate_JSON(t *testing.T) {
	resp := evaluate(t, "fixed", dto.FeedInput{Name: "PKE", DryMatterOfferedKg: 2})

	var buf bytes.Buffer
	if err := Generate(resp, Config{Format: "json", Writer: &buf}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var decoded dto.EvaluationResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Expected valid JSON: %v", err)
	}
	if decoded.Result.MEFromSupplementsMJ != 20 {
		t.Errorf("Expected supplement ME 20, got %v", decoded.Result.MEFromSupplementsMJ)
	}

	dir := t.TempDir()
	if err := Generate(resp, Config{Format: "json", OutputDir: dir}); err != nil {
		t.Fatalf("Generate to dir failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ration_results.json")); err != nil {
		t.Errorf("Expected JSON results file: %v", err)
	}
}

func TestGenerate_CSV(t *testing.T) {
	resp := evaluate(t, "gap", dto.FeedInput{Name: "Milled Maize", DryMatterOfferedKg: 3})
	dir := t.TempDir()

	if err := Generate(resp, Config{Format: "csv", OutputDir: dir}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nutrients.csv"))
	if err != nil {
		t.Fatalf("Expected nutrients CSV: %v", err)
	}
	var nutrients []NutrientRow
	if err := gocsv.UnmarshalBytes(data, &nutrients); err != nil {
		t.Fatalf("Failed to parse nutrients CSV: %v", err)
	}
	if len(nutrients) != 5 || nutrients[0].Nutrient != "CP" {
		t.Errorf("Expected five nutrient rows starting with CP, got %+v", nutrients)
	}

	data, err = os.ReadFile(filepath.Join(dir, "feeds.csv"))
	if err != nil {
		t.Fatalf("Expected feeds CSV: %v", err)
	}
	var feeds []FeedRow
	if err := gocsv.UnmarshalBytes(data, &feeds); err != nil {
		t.Fatalf("Failed to parse feeds CSV: %v", err)
	}
	if len(feeds) != 6 || feeds[2].Feed != "Milled Maize" || feeds[2].MEMJ != "39.00" {
		t.Errorf("Unexpected feed rows: %+v", feeds)
	}

	data, err = os.ReadFile(filepath.Join(dir, "summary.csv"))
	if err != nil {
		t.Fatalf("Expected summary CSV: %v", err)
	}
	if !strings.Contains(string(data), "pasture_dm_required") {
		t.Error("Expected gap-to-pasture rows in summary CSV")
	}
}

func TestGenerate_Errors(t *testing.T) {
	resp := evaluate(t, "fixed")

	if err := Generate(resp, Config{Format: "csv"}); err == nil {
		t.Error("Expected error for CSV output without a directory")
	}
	if err := Generate(resp, Config{Format: "xml"}); err == nil || !strings.Contains(err.Error(), "unsupported output format") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestFixed(t *testing.T) {
	testCases := []struct {
		value    float64
		places   int32
		expected string
	}{
		{288.1257, 1, "288.1"},
		{0.6, 2, "0.60"},
		{-1e-12, 2, "0.00"},
		{2.005, 2, "2.01"},
	}

	for _, tc := range testCases {
		if got := fixed(tc.value, tc.places); got != tc.expected {
			t.Errorf("Expected fixed(%v, %d) = %s, got %s", tc.value, tc.places, tc.expected, got)
		}
	}

	if gapLabel(0.04) != "balanced" || gapLabel(3) != "deficit" || gapLabel(-3) != "surplus" {
		t.Error("Unexpected energy gap labels")
	}
}
