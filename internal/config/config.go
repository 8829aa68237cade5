// Package config provides configuration management for the election scraper.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL       = errors.New("scraper.base_url is required")
	ErrInvalidElectionID    = errors.New("scraper.election_id must be positive")
	ErrInvalidTimeout       = errors.New("fetch.timeout_sec must be at least 1")
	ErrMissingSpreadsheetID = errors.New("sheet.spreadsheet_id is required")
	ErrMissingCredentials   = errors.New("sheet.credentials_file is required")
	ErrMissingTabName       = errors.New("all four sheet.tabs names are required")
	ErrInvalidMaxAttempts   = errors.New("publish.max_attempts must be at least 1")
	ErrInvalidMinTowns      = errors.New("validation.min_towns must be non-negative")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete scraper configuration.
type Config struct {
	Scraper      ScraperConfig      `yaml:"scraper"`
	Localization LocalizationConfig `yaml:"localization"`
}

// ScraperConfig contains the run settings.
type ScraperConfig struct {
	BaseURL    string           `yaml:"base_url"`
	ElectionID int              `yaml:"election_id"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Sheet      SheetConfig      `yaml:"sheet"`
	Publish    PublishConfig    `yaml:"publish"`
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// FetchConfig bounds the source document requests.
type FetchConfig struct {
	TimeoutSec int `yaml:"timeout_sec"`
}

// SheetConfig identifies the destination spreadsheet.
type SheetConfig struct {
	SpreadsheetID   string     `yaml:"spreadsheet_id"`
	CredentialsFile string     `yaml:"credentials_file"`
	Tabs            TabsConfig `yaml:"tabs"`
}

// TabsConfig names the four destination tabs.
type TabsConfig struct {
	ResultsEN string `yaml:"results_en"`
	TurnoutEN string `yaml:"turnout_en"`
	ResultsES string `yaml:"results_es"`
	TurnoutES string `yaml:"turnout_es"`
}

// PublishConfig bounds retries on spreadsheet writes.
type PublishConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// ValidationConfig defines fetched-document sanity thresholds.
type ValidationConfig struct {
	MinTowns int  `yaml:"min_towns"`
	Strict   bool `yaml:"strict"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LocalizationConfig carries the Spanish party-name table. Overrides are
// merged over the built-in translations; an empty map keeps the defaults.
type LocalizationConfig struct {
	PartyOverrides map[string]string `yaml:"party_overrides"`
}

// Default returns a configuration with the compiled-in production defaults.
// The spreadsheet id and credentials still have to come from the config
// file, flags, or environment.
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			BaseURL:    "https://ctemsmedia.tgstg.net/ng-app/data/election",
			ElectionID: 97,
			Fetch: FetchConfig{
				TimeoutSec: 20,
			},
			Sheet: SheetConfig{
				CredentialsFile: "credentials.json",
				Tabs: TabsConfig{
					ResultsEN: "Results_EN",
					TurnoutEN: "Turnout_EN",
					ResultsES: "Results_ES",
					TurnoutES: "Turnout_ES",
				},
			},
			Publish: PublishConfig{
				MaxAttempts: 5,
			},
			Validation: ValidationConfig{
				MinTowns: 1,
				Strict:   false,
			},
			Logging: LoggingConfig{
				Level: "info",
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file, layered over Default.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration. The spreadsheet id is checked at
// publish time instead, so dry runs work without a destination.
func (c *Config) Validate() error {
	if c.Scraper.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if c.Scraper.ElectionID <= 0 {
		return ErrInvalidElectionID
	}

	if c.Scraper.Fetch.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	tabs := c.Scraper.Sheet.Tabs
	if tabs.ResultsEN == "" || tabs.TurnoutEN == "" || tabs.ResultsES == "" || tabs.TurnoutES == "" {
		return ErrMissingTabName
	}

	if c.Scraper.Publish.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if c.Scraper.Validation.MinTowns < 0 {
		return ErrInvalidMinTowns
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Scraper.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// ValidateDestination checks the fields a real publish needs.
func (c *Config) ValidateDestination() error {
	if c.Scraper.Sheet.SpreadsheetID == "" {
		return ErrMissingSpreadsheetID
	}

	if c.Scraper.Sheet.CredentialsFile == "" {
		return ErrMissingCredentials
	}

	return nil
}

// TabNames returns the tab names in publish order: results EN, turnout EN,
// results ES, turnout ES.
func (c *Config) TabNames() []string {
	tabs := c.Scraper.Sheet.Tabs

	return []string{tabs.ResultsEN, tabs.TurnoutEN, tabs.ResultsES, tabs.TurnoutES}
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Election: %d, BaseURL: %s, Spreadsheet: %s}",
		c.Scraper.ElectionID,
		c.Scraper.BaseURL,
		c.Scraper.Sheet.SpreadsheetID,
	)
}
