// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Plain environment variables (and a .env file), with defaults
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// Storage is embedded (not a pointer) so its fields are accessible
	// directly on Config:  cfg.Storage.Path  or after promotion cfg.Path
	Storage `yaml:"storage"`
}

// Storage holds settings for the roster file.
// Nested under storage: in the YAML file.
type Storage struct {
	// Driver selects the backend: "json" (the default, a JSON array file)
	// or "sqlite" (a single-table SQLite database).
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"json" validate:"oneof=json sqlite"`

	// Path is the roster file. It must exist before the first load.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"Enrollments.json" validate:"required"`

	// ValidateOnLoad re-checks every persisted student when the roster is
	// loaded. Invalid records are dropped and reported.
	ValidateOnLoad bool `yaml:"validate_on_load" env:"STORAGE_VALIDATE_ON_LOAD" env-default:"false"`
}

// Load reads the config from configPath, or from the environment alone
// when configPath is empty, and validates the result.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		// Verify the file exists before trying to read it, for a clearer
		// message than cleanenv's "open: no such file".
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}
		// cleanenv.ReadConfig reads the YAML file, then overlays env:"..."
		// variables and fills env-default values.
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	// ── Source 3 prerequisite: optional .env file ─────────────────────
	// A missing .env is normal; only a malformed one is worth stopping for.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("cannot read .env file: %s", err.Error())
	}

	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/course-registration --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
