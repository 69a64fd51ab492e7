// Package config reads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultPlanWindowDays is how many days on each side of the selected date
// are fetched when nothing else is configured.
const DefaultPlanWindowDays = 7

// Config holds the METAFIT_* environment settings. Empty strings and zero
// numbers mean the variable was not set.
type Config struct {
	APIURL         string        `env:"METAFIT_API_URL"`
	DBPath         string        `env:"METAFIT_DB"`
	Locale         string        `env:"METAFIT_LOCALE"`
	AgeMin         int           `env:"METAFIT_AGE_MIN"`
	AgeMax         int           `env:"METAFIT_AGE_MAX"`
	PlanWindowDays int           `env:"METAFIT_PLAN_WINDOW_DAYS"`
	RequestTimeout time.Duration `env:"METAFIT_REQUEST_TIMEOUT" envDefault:"12s"`
	Verbose        bool          `env:"METAFIT_VERBOSE"`
}

// Load reads the given dotenv files, skipping any that do not exist, and then
// parses the environment. Variables already set in the environment win over
// dotenv values.
func Load(dotenvFiles ...string) (Config, error) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PlanWindowDays < 0 {
		return Config{}, fmt.Errorf("METAFIT_PLAN_WINDOW_DAYS must be >= 0")
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("METAFIT_REQUEST_TIMEOUT must be > 0")
	}
	return cfg, nil
}

// First returns the first non-blank value, in precedence order.
func First(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
