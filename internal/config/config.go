package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"aoc-star-charts/internal/timerange"
)

type Config struct {
	Leaderboard string
	OutDir      string
	Timezone    string
	StartHour   int
	Locale      string

	Location *time.Location
}

// Load reads an optional .env file, then the AOC_* environment variables, and
// fills defaults. Commands call Validate once flags have overridden the values.
func Load() (*Config, error) {
	// .env is optional when the variables come from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		Leaderboard: os.Getenv("AOC_LEADERBOARD"),
		OutDir:      os.Getenv("AOC_OUT_DIR"),
		Timezone:    os.Getenv("AOC_TIMEZONE"),
		Locale:      os.Getenv("AOC_LOCALE"),
		StartHour:   timerange.DefaultStartHour,
	}

	if v := strings.TrimSpace(os.Getenv("AOC_START_HOUR")); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config: AOC_START_HOUR must be an integer (%q): %w", v, err)
		}
		cfg.StartHour = h
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Leaderboard) == "" {
		c.Leaderboard = "data/leaderboard.json"
	}
	if strings.TrimSpace(c.OutDir) == "" {
		c.OutDir = "out"
	}
	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = "en"
	}
}

// Validate fills defaults, checks the start hour and resolves the time zone.
func (c *Config) Validate() error {
	c.applyDefaults()

	if c.StartHour < 0 || c.StartHour > 23 {
		return fmt.Errorf("config: start hour must be within 0..23, got %d", c.StartHour)
	}

	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		c.Location = time.Local
		return nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("config: time zone invalid (%q): %w", tz, err)
	}
	c.Location = loc
	return nil
}
