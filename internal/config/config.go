// Package config handles loading and parsing application configuration.
// It supports these sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Neither: values come from environment variables and the
//     env-default tags below, so the roster runs with no file at all.
//
// Individual environment variables (ENV, STORAGE_PATH, ...) override the
// values read from the YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend names accepted in storage.backend.
const (
	BackendText   = "text"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// validate:"..." rules are checked by go-playground/validator after
// loading, so a typo such as backend: "sqlite3" is caught at startup.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// LogFile, when set, receives the logs instead of stderr.
	LogFile string `yaml:"log_file" env:"LOG_FILE"`

	Storage Storage `yaml:"storage"`
	Export  Export  `yaml:"export"`
	Shell   Shell   `yaml:"shell"`
}

// Storage selects where the roster is saved.
type Storage struct {
	// Backend is one of "text" (comma-separated lines), "yaml" or "sqlite".
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"text" validate:"oneof=text yaml sqlite"`

	// Path is the file the backend reads and writes.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"students.txt" validate:"required"`
}

// Export holds settings for the spreadsheet export.
type Export struct {
	Path string `yaml:"path" env:"EXPORT_PATH" env-default:"students.xlsx" validate:"required"`
}

// Shell holds settings for the interactive menu.
type Shell struct {
	// cleanenv applies env-default to any zero value, so these booleans
	// must default to false.

	// SkipLoad starts with an empty roster instead of loading the saved one.
	SkipLoad bool `yaml:"skip_load" env:"SKIP_LOAD"`

	// SaveOnExit saves the roster when the menu is left.
	SaveOnExit bool `yaml:"save_on_exit" env:"SAVE_ON_EXIT"`
}

// Load reads the config from configPath, or from the environment alone
// when configPath is empty, and validates the result.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath == "" {
		// ReadEnv fills the struct from env vars and env-default tags.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it, for a clearer
		// message than a bare "open: no such file".
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", configPath)
		}

		// cleanenv.ReadConfig reads the YAML file and populates the struct.
		// It also reads any env:"..." tagged fields from the environment.
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", configPath, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad resolves the config path, loads the config, and returns it.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to fatal on failure. Callers do not need to check a
// returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/roster --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}
