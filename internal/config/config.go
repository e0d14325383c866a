package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Log     LogConfig
	Catalog CatalogConfig
	Clock   ClockConfig
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type CatalogConfig struct {
	// Path to a directory of form definitions; empty means the builtin catalog.
	Path string
}

type ClockConfig struct {
	// Location "today" is evaluated in.
	Location *time.Location
}

// Load reads the environment, after merging a .env file from the working
// directory if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []string
	cfg := &Config{
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "console"),
			OutputPath: getEnv("LOG_OUTPUT", "stderr"),
		},
		Catalog: CatalogConfig{
			Path: getEnv("MEDFORMS_CATALOG_PATH", ""),
		},
		Clock: ClockConfig{Location: time.Local},
	}

	if tz := getEnv("MEDFORMS_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			errs = append(errs, fmt.Sprintf("MEDFORMS_TIMEZONE %q: %v", tz, err))
		} else {
			cfg.Clock.Location = loc
		}
	}

	switch cfg.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be json or console, got %q", cfg.Log.Format))
	}

	if cfg.Catalog.Path != "" {
		if fi, err := os.Stat(cfg.Catalog.Path); err != nil || !fi.IsDir() {
			errs = append(errs, fmt.Sprintf("MEDFORMS_CATALOG_PATH %q is not a directory", cfg.Catalog.Path))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
