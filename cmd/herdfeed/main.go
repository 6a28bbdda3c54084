package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/npcunard/herdfeed/pkg/config"
	"github.com/npcunard/herdfeed/pkg/interfaces/cli/commands"
	"github.com/npcunard/herdfeed/pkg/logger"
)

func main() {
	// Command line flags
	var (
		scenarioFile  = flag.String("scenario", "", "Path to scenario YAML file")
		catalogFile   = flag.String("catalog", "", "Path to feed catalog CSV file")
		mode          = flag.String("mode", "", "Evaluation mode: fixed, gap")
		season        = flag.String("season", "", "Pasture season: Spring, Summer, Autumn, Winter")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json, csv")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		initScenario  = flag.Bool("init", false, "Print the default scenario YAML")
		exportCatalog = flag.Bool("export-catalog", false, "Print the effective feed catalog CSV")
		serve         = flag.Bool("serve", false, "Run the HTTP evaluation API")
		envFile       = flag.String("env", "", "Environment file to load")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Log.Level
	if *verbose {
		level = "debug"
	}
	baseLogger := logger.Must(logger.New(level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	catalog := *catalogFile
	if catalog == "" {
		catalog = cfg.Ration.CatalogPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *serve {
		cmd := commands.NewServeCommand(commands.ServeConfig{
			Port:        cfg.Server.Port,
			CatalogFile: catalog,
			DefaultMode: cfg.Ration.DefaultMode,
		}, logger.Named(baseLogger, "serve"))

		if err := cmd.Execute(ctx); err != nil {
			baseLogger.Fatal("server stopped", zap.Error(err))
		}
		return
	}

	// Create command configuration
	cmdConfig := commands.Config{
		ScenarioFile:  *scenarioFile,
		CatalogFile:   catalog,
		Mode:          *mode,
		Season:        *season,
		DefaultMode:   cfg.Ration.DefaultMode,
		OutputDir:     *outputDir,
		Format:        *format,
		Verbose:       *verbose,
		Init:          *initScenario,
		ExportCatalog: *exportCatalog,
		Help:          *help,
	}

	cmd := commands.NewEvaluateCommand(cmdConfig, logger.Named(baseLogger, "evaluate"))
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
