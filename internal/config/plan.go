package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "horizon")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "horizon")
}

// StorePath returns the plan database path, honoring the configured override.
func StorePath(cfg Config) string {
	if cfg.General.StorePath != "" {
		return cfg.General.StorePath
	}
	return filepath.Join(DataDir(), "plans.db")
}

// PlanDir returns the directory scanned for TOML plan documents.
func PlanDir(cfg Config) string {
	if cfg.General.PlanDir != "" {
		return cfg.General.PlanDir
	}
	return filepath.Join(ConfigDir(), "plans")
}

// Horizon returns the default projection window starting at startYear.
func Horizon(cfg Config, startYear int) (int, int) {
	years := cfg.General.HorizonYears
	if years < 1 {
		years = DefaultConfig().General.HorizonYears
	}
	return startYear, startYear + years - 1
}
