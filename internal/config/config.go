package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all horizon configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Projection ProjectionConfig `toml:"projection"`
	Appearance AppearanceConfig `toml:"appearance"`
	Display    DisplayConfig    `toml:"display"`
	Serve      ServeConfig      `toml:"serve"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultPlan  string `toml:"default_plan"`
	HorizonYears int    `toml:"horizon_years"`
	StorePath    string `toml:"store_path,omitempty"`
	PlanDir      string `toml:"plan_dir,omitempty"`
}

// ProjectionConfig holds defaults applied to newly created plans.
type ProjectionConfig struct {
	InflationRate float64 `toml:"inflation_rate"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DisplayConfig controls how money is printed.
type DisplayConfig struct {
	Currency  string `toml:"currency"`
	ShowCents bool   `toml:"show_cents"`
}

// ServeConfig holds settings for the background service.
type ServeConfig struct {
	Addr         string   `toml:"addr"`
	PollInterval Duration `toml:"poll_interval"`
	LogFormat    string   `toml:"log_format"`
}

// Duration is a time.Duration that reads and writes as a TOML string
// such as "2s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultPlan:  "default",
			HorizonYears: 36,
		},
		Projection: ProjectionConfig{
			InflationRate: 0.03,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Display: DisplayConfig{
			Currency: "USD",
		},
		Serve: ServeConfig{
			Addr:         "127.0.0.1:8787",
			PollInterval: Duration{2 * time.Second},
			LogFormat:    "text",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "horizon")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "horizon")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HORIZON_STORE"); v != "" {
		cfg.General.StorePath = v
	}
	if v := os.Getenv("HORIZON_THEME"); v != "" {
		cfg.Appearance.Theme = v
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
