// Package main provides the election scraper: it fetches the published
// election JSON documents, normalizes them into results and turnout tables,
// builds Spanish-localized variants, and publishes all four to Google Sheets.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/ang-eichhorst/2025municipalelections/internal/config"
	"github.com/ang-eichhorst/2025municipalelections/internal/fetcher"
	"github.com/ang-eichhorst/2025municipalelections/internal/formatter"
	"github.com/ang-eichhorst/2025municipalelections/internal/localizer"
	"github.com/ang-eichhorst/2025municipalelections/internal/logger"
	"github.com/ang-eichhorst/2025municipalelections/internal/models"
	"github.com/ang-eichhorst/2025municipalelections/internal/normalizer"
	"github.com/ang-eichhorst/2025municipalelections/internal/publisher"
	"github.com/ang-eichhorst/2025municipalelections/internal/validator"
	"github.com/ang-eichhorst/2025municipalelections/pkg/runmeta"
)

const defaultConfigPath = "configs/scraper.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	electionID := flag.Int("election", 0, "Election identifier (overrides config)")
	spreadsheetID := flag.String("spreadsheet", "", "Destination spreadsheet id (overrides config)")
	credentialsFile := flag.String("credentials", "", "Service account credentials file (overrides config)")
	dryRun := flag.Bool("dry-run", false, "Build all tables but skip publishing; print previews instead")
	previewRows := flag.Int("preview", 5, "Rows per table to print in dry-run previews")

	flag.Parse()

	// .env is optional; it only supplies the overrides read below.
	_ = godotenv.Load()

	cfg := loadConfig(*configFile)
	applyOverrides(cfg, *electionID, *spreadsheetID, *credentialsFile)

	log := logger.NewLogger(cfg.Scraper.Logging.Level)

	log.Info("🗳️  Starting election scraper",
		"election", cfg.Scraper.ElectionID, "base_url", cfg.Scraper.BaseURL)

	ctx := context.Background()

	// Phase 1: Fetch
	// --------------
	log.Info("Phase 1: Fetching source documents...")

	fetchStart := time.Now()

	f := fetcher.New(cfg.Scraper.BaseURL, time.Duration(cfg.Scraper.Fetch.TimeoutSec)*time.Second, log)

	lookup, election, version, err := f.Fetch(ctx, cfg.Scraper.ElectionID)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Fetch failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Fetched documents in %v", time.Since(fetchStart)),
		"version", version, "towns", len(lookup.TownIDs))

	// Phase 2: Validate
	// -----------------
	check := validator.New(cfg.Scraper.Validation).Check(lookup, election)

	for _, warning := range check.Warnings {
		log.Warn("⚠️  " + warning)
	}

	if !check.IsValid() {
		for _, msg := range check.Errors {
			log.Error("❌ " + msg)
		}

		if cfg.Scraper.Validation.Strict {
			log.Error("❌ Document validation failed in strict mode")
			os.Exit(1)
		}
	}

	// Phase 3: Normalize
	// ------------------
	log.Info("Phase 2: Normalizing...")

	results := normalizer.BuildResults(lookup, election)
	turnout := normalizer.BuildTurnout(election)

	log.Info(fmt.Sprintf("✅ Built %d result rows, %d turnout rows", results.RowCount(), turnout.RowCount()))

	// Phase 4: Localize
	// -----------------
	log.Info("Phase 3: Localizing (Spanish)...")

	loc, err := localizer.New(language.Spanish, cfg.Localization.PartyOverrides)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Localizer setup failed: %v", err))
		os.Exit(1)
	}

	resultsES := loc.Results(results)
	turnoutES := loc.Turnout(turnout)

	// Phase 5: Stamp run metadata
	// ---------------------------
	stamp := runmeta.New(cfg.Scraper.ElectionID, version)
	for _, table := range []*models.Table{results, turnout, resultsES, turnoutES} {
		stamp.Apply(table)
	}

	tabs := cfg.Scraper.Sheet.Tabs
	tables := map[string]*models.Table{
		tabs.ResultsEN: results,
		tabs.TurnoutEN: turnout,
		tabs.ResultsES: resultsES,
		tabs.TurnoutES: turnoutES,
	}

	// Phase 6: Publish
	// ----------------
	if *dryRun {
		log.Info("Phase 4: Dry run, skipping publish")

		for _, tab := range cfg.TabNames() {
			fmt.Printf("\n📋 %s (%d rows)\n", tab, tables[tab].RowCount())
			fmt.Print(formatter.Render(tables[tab], *previewRows))
		}
	} else {
		log.Info("Phase 4: Publishing to Google Sheets...")

		if err := cfg.ValidateDestination(); err != nil {
			log.Error(fmt.Sprintf("❌ Destination not configured: %v", err))
			os.Exit(1)
		}

		pub, pubErr := publisher.NewSheetsPublisher(ctx,
			cfg.Scraper.Sheet.CredentialsFile,
			cfg.Scraper.Sheet.SpreadsheetID,
			cfg.Scraper.Publish.MaxAttempts,
			log)
		if pubErr != nil {
			log.Error(fmt.Sprintf("❌ Publisher setup failed: %v", pubErr))
			os.Exit(1)
		}

		for _, tab := range cfg.TabNames() {
			if err := pub.Publish(ctx, tab, tables[tab]); err != nil {
				log.Error(fmt.Sprintf("❌ Publish failed: %v", err))
				os.Exit(1)
			}

			log.Info(fmt.Sprintf("✅ Wrote %s (%d rows)", tab, tables[tab].RowCount()))
		}
	}

	// Run summary on stdout.
	fmt.Printf("✅ Election %d, version %s\n", cfg.Scraper.ElectionID, version)
	fmt.Printf("%s %d rows  %s %d rows  %s %d rows  %s %d rows\n",
		tabs.ResultsEN, results.RowCount(),
		tabs.TurnoutEN, turnout.RowCount(),
		tabs.ResultsES, resultsES.RowCount(),
		tabs.TurnoutES, turnoutES.RowCount())

	if *dryRun {
		fmt.Println("Dry run, nothing published")
	} else {
		fmt.Printf("Wrote to %s\n", cfg.Scraper.Sheet.SpreadsheetID)
	}
}

// loadConfig loads the named config file, falls back to configs/scraper.yaml
// when present, and otherwise uses the compiled-in defaults.
func loadConfig(path string) *config.Config {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path == "" {
		return config.Default()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config %s: %v\n", path, err)
		os.Exit(1)
	}

	return cfg
}

// applyOverrides layers flag and environment overrides onto the config.
// Flags win over environment, environment wins over file.
func applyOverrides(cfg *config.Config, electionID int, spreadsheetID, credentialsFile string) {
	if env := os.Getenv("SPREADSHEET_ID"); env != "" {
		cfg.Scraper.Sheet.SpreadsheetID = env
	}

	if env := os.Getenv("SHEETS_CREDENTIALS_FILE"); env != "" {
		cfg.Scraper.Sheet.CredentialsFile = env
	}

	if electionID > 0 {
		cfg.Scraper.ElectionID = electionID
	}

	if spreadsheetID != "" {
		cfg.Scraper.Sheet.SpreadsheetID = spreadsheetID
	}

	if credentialsFile != "" {
		cfg.Scraper.Sheet.CredentialsFile = credentialsFile
	}
}
