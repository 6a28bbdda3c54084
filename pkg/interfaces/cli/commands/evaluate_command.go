package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/npcunard/herdfeed/pkg/application/services"
	"github.com/npcunard/herdfeed/pkg/infrastructure/repositories/csv"
	"github.com/npcunard/herdfeed/pkg/infrastructure/scenario"
	"github.com/npcunard/herdfeed/pkg/interfaces/cli/output"
)

// Config holds configuration for the evaluate command
type Config struct {
	ScenarioFile  string
	CatalogFile   string
	Mode          string
	Season        string
	DefaultMode   string
	OutputDir     string
	Format        string
	Verbose       bool
	Init          bool
	ExportCatalog bool
	Help          bool
	Stdout        io.Writer
}

// EvaluateCommand evaluates one ration scenario and renders the result
type EvaluateCommand struct {
	config Config
	logger *zap.Logger
	out    io.Writer
}

// NewEvaluateCommand creates a new evaluate command with the given configuration
func NewEvaluateCommand(config Config, logger *zap.Logger) *EvaluateCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := config.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &EvaluateCommand{
		config: config,
		logger: logger,
		out:    out,
	}
}

// Execute runs the evaluate command
func (c *EvaluateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if c.config.Init {
		return c.writeDefaults()
	}

	if c.config.ExportCatalog {
		return c.writeCatalog()
	}

	if c.config.Verbose {
		c.printHeader()
	}

	sc, err := scenario.Defaults()
	if err != nil {
		return err
	}
	if c.config.DefaultMode != "" {
		sc.Mode = c.config.DefaultMode
	}
	sc, err = scenario.Load(sc, c.config.ScenarioFile)
	if err != nil {
		return fmt.Errorf("error loading scenario %s: %w", c.config.ScenarioFile, err)
	}

	// Command-line flags win over the scenario file
	if c.config.Mode != "" {
		sc.Mode = c.config.Mode
	}
	if c.config.Season != "" {
		sc.Pasture.Season = c.config.Season
	}

	catalog, offers, err := loadCatalog(c.config.CatalogFile)
	if err != nil {
		return err
	}
	sc.Feeds = mergeOffers(sc.Feeds, offers)

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Scenario loaded: %d supplement(s) offered\n", len(sc.Feeds))
		fmt.Fprintln(c.out, "🔄 Evaluating ration...")
	}

	svc := services.NewRationService(catalog, c.logger.Named("svc.ration"))

	startTime := time.Now()
	resp, err := svc.Evaluate(ctx, sc)
	if err != nil {
		return fmt.Errorf("error evaluating ration: %w", err)
	}

	if c.config.Verbose {
		fmt.Fprintf(c.out, "✅ Evaluation completed in %v\n\n", time.Since(startTime))
	}

	outputConfig := output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    c.out,
	}
	if err := output.Generate(resp, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	return nil
}

// writeDefaults prints the built-in scenario as a starting YAML file
func (c *EvaluateCommand) writeDefaults() error {
	sc, err := scenario.Defaults()
	if err != nil {
		return err
	}
	data, err := scenario.Marshal(sc)
	if err != nil {
		return err
	}
	_, err = c.out.Write(data)
	return err
}

// writeCatalog prints the effective feed catalog as CSV
func (c *EvaluateCommand) writeCatalog() error {
	catalog, _, err := loadCatalog(c.config.CatalogFile)
	if err != nil {
		return err
	}
	feeds, err := catalog.GetAllFeeds()
	if err != nil {
		return err
	}
	return csv.NewLoader().WriteFeedCatalog(c.out, feeds)
}

// printHeader prints the command header information
func (c *EvaluateCommand) printHeader() {
	fmt.Fprintf(c.out, "🚀 Herd Feed CLI\n")
	if c.config.ScenarioFile != "" {
		fmt.Fprintf(c.out, "Scenario: %s\n", c.config.ScenarioFile)
	} else {
		fmt.Fprintf(c.out, "Scenario: built-in defaults\n")
	}
	if c.config.CatalogFile != "" {
		fmt.Fprintf(c.out, "Feed catalog: %s\n", c.config.CatalogFile)
	}
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.out)
}

// showHelp displays the help message
func (c *EvaluateCommand) showHelp() {
	fmt.Fprintf(c.out, `Herd Feed CLI - daily energy, dry matter, nutrient and cost balance for a dairy herd

USAGE:
    herdfeed [-scenario <file>] [-catalog <file>] [options]
    herdfeed -serve [-catalog <file>]
    herdfeed -init > scenario.yaml

OPTIONS:
    -scenario <file>    Scenario YAML; omitted fields keep the built-in defaults
    -catalog <file>     Feed catalog CSV overriding the default feed values
    -mode <mode>        Evaluation mode: fixed or gap (default: fixed)
    -season <season>    Pasture season: Spring, Summer, Autumn, Winter
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv (default: text)
    -verbose            Enable verbose output
    -init               Print the default scenario YAML and exit
    -export-catalog     Print the effective feed catalog CSV and exit
    -serve              Run the HTTP evaluation API
    -env <file>         Environment file to load (default: .env)
    -help               Show this help message

MODES:
    fixed   Pasture intake is entered; reports the energy surplus or deficit
    gap     Pasture intake is solved for the energy supplements leave uncovered

SCENARIO FILE (YAML):
    mode: gap
    cow:
      liveweight_kg: 520
      milk_solids_kg_per_day: 2.1
    pasture:
      season: Autumn
      me_mj_per_kg: 10.8
      nutrients:
        cp: 21
    feeds:
      - name: PKE
        dm_offered_kg: 2
      - name: Custom 1
        dm_offered_kg: 1.5
        me_mj_per_kg: 12
        cost_per_tonne_dm: 520
    herd:
      num_cows: 450
      milk_price_per_kg_ms: 8.10

FEED CATALOG (CSV):
    name,me_mj_per_kg,cp_pct,ndf_pct,starch_pct,sugar_pct,fat_pct,cost_per_tonne_dm,dm_offered_kg
    Maize Silage,10.8,8,40,28,3,3,165,4

    Names must match the catalog: Maize Silage, PKE, Milled Maize, Grass Silage,
    Custom 1, Custom 2. The dm_offered_kg column is optional.

EXAMPLES:
    # Evaluate the built-in defaults
    herdfeed

    # Autumn gap-to-pasture with a custom catalog
    herdfeed -scenario farm.yaml -catalog feeds.csv -mode gap -season autumn

    # Write CSV results
    herdfeed -scenario farm.yaml -format csv -output results/
`)
}
