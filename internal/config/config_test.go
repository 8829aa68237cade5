package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	content := `
scraper:
  base_url: https://example.org/data/election
  election_id: 42
  sheet:
    spreadsheet_id: sheet-123
    tabs:
      results_en: R_EN
      turnout_en: T_EN
      results_es: R_ES
      turnout_es: T_ES
localization:
  party_overrides:
    Democratic Party: Custom
`

	path := filepath.Join(t.TempDir(), "scraper.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Scraper.ElectionID != 42 {
		t.Errorf("ElectionID = %d, want 42", cfg.Scraper.ElectionID)
	}

	if cfg.Scraper.BaseURL != "https://example.org/data/election" {
		t.Errorf("BaseURL = %q", cfg.Scraper.BaseURL)
	}

	// Defaults survive partial files.
	if cfg.Scraper.Fetch.TimeoutSec != 20 {
		t.Errorf("TimeoutSec = %d, want default 20", cfg.Scraper.Fetch.TimeoutSec)
	}

	if cfg.Scraper.Publish.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want default 5", cfg.Scraper.Publish.MaxAttempts)
	}

	if got := cfg.TabNames(); got[0] != "R_EN" || got[3] != "T_ES" {
		t.Errorf("TabNames = %v", got)
	}

	if cfg.Localization.PartyOverrides["Democratic Party"] != "Custom" {
		t.Errorf("PartyOverrides = %v", cfg.Localization.PartyOverrides)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadConfig succeeded for a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing base url", func(c *Config) { c.Scraper.BaseURL = "" }, ErrMissingBaseURL},
		{"zero election id", func(c *Config) { c.Scraper.ElectionID = 0 }, ErrInvalidElectionID},
		{"negative election id", func(c *Config) { c.Scraper.ElectionID = -1 }, ErrInvalidElectionID},
		{"zero timeout", func(c *Config) { c.Scraper.Fetch.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"missing tab name", func(c *Config) { c.Scraper.Sheet.Tabs.TurnoutES = "" }, ErrMissingTabName},
		{"zero max attempts", func(c *Config) { c.Scraper.Publish.MaxAttempts = 0 }, ErrInvalidMaxAttempts},
		{"negative min towns", func(c *Config) { c.Scraper.Validation.MinTowns = -1 }, ErrInvalidMinTowns},
		{"bad log level", func(c *Config) { c.Scraper.Logging.Level = "verbose" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDestination(t *testing.T) {
	cfg := Default()

	if err := cfg.ValidateDestination(); !errors.Is(err, ErrMissingSpreadsheetID) {
		t.Errorf("ValidateDestination() = %v, want ErrMissingSpreadsheetID", err)
	}

	cfg.Scraper.Sheet.SpreadsheetID = "sheet-123"
	cfg.Scraper.Sheet.CredentialsFile = ""

	if err := cfg.ValidateDestination(); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("ValidateDestination() = %v, want ErrMissingCredentials", err)
	}

	cfg.Scraper.Sheet.CredentialsFile = "credentials.json"

	if err := cfg.ValidateDestination(); err != nil {
		t.Errorf("ValidateDestination() = %v, want nil", err)
	}
}
