// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, if present, is loaded into the
// environment first, so both the path and individual overrides can live
// there during local development.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`

	// StorageKey names the row holding the roster blob.
	StorageKey string `yaml:"storage_key" env:"STORAGE_KEY" env-default:"crud_mahasiswa"`

	HTTPServer `yaml:"http_server"`

	Roster `yaml:"roster"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082"`
}

// Roster holds the domain rules that are deliberately configurable.
type Roster struct {
	// CohortPivot splits two-digit NIM year codes: codes at or above the
	// pivot are 19xx, codes below are 20xx.
	CohortPivot int `yaml:"cohort_pivot" env:"COHORT_PIVOT" env-default:"56"`

	// MinCohortYear and MaxCohortYear bound a cohort year declared in an
	// import file.
	MinCohortYear int `yaml:"min_cohort_year" env:"MIN_COHORT_YEAR" env-default:"2000"`
	MaxCohortYear int `yaml:"max_cohort_year" env:"MAX_COHORT_YEAR" env-default:"2025"`

	// ImportErrorLimit caps the detail lines of an import report.
	ImportErrorLimit int `yaml:"import_error_limit" env:"IMPORT_ERROR_LIMIT" env-default:"10"`

	// SeedOnEmpty fills an empty or corrupt roster with the demo records.
	SeedOnEmpty bool `yaml:"seed_on_empty" env:"SEED_ON_EMPTY" env-default:"true"`
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure. If this
// function returns, the config is valid.
func MustLoad() *Config {
	loadDotEnv()

	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return cfg
}

// Load reads the YAML file at path, applies env overrides and defaults,
// and validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a config from environment variables and defaults only.
// The CLI uses it when no config file is given.
func FromEnv() (*Config, error) {
	loadDotEnv()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config.FromEnv: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.FromEnv: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CohortPivot < 0 || c.CohortPivot > 100 {
		return fmt.Errorf("roster.cohort_pivot must be between 0 and 100, got %d", c.CohortPivot)
	}
	if c.MinCohortYear > c.MaxCohortYear {
		return fmt.Errorf("roster.min_cohort_year (%d) is after roster.max_cohort_year (%d)",
			c.MinCohortYear, c.MaxCohortYear)
	}
	if c.ImportErrorLimit < 0 {
		return errors.New("roster.import_error_limit must not be negative")
	}
	return nil
}

// loadDotEnv loads .env when present; a missing file is not an error.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("cannot load .env: %s", err.Error())
		}
	}
}
