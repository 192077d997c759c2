package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a roadline session.
// Values are populated from .roadline.yaml, ROADLINE_* env vars, and CLI flags.
type Config struct {
	DBPath            string `mapstructure:"db_path"`
	DefaultZoom       string `mapstructure:"default_zoom"`
	AutosaveDebounce  string `mapstructure:"autosave_debounce"`
	ShowMonthColors   bool   `mapstructure:"show_month_colors"`
	WatchExternalEdit bool   `mapstructure:"watch_external_edit"`
	Verbose           bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("db_path", defaultDBPath())
	viper.SetDefault("default_zoom", "week")
	viper.SetDefault("autosave_debounce", "2s")
	viper.SetDefault("show_month_colors", true)
	viper.SetDefault("watch_external_edit", true)
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// AutosaveInterval parses the configured debounce, falling back to 2s when
// the value is unparsable or non-positive.
func (c Config) AutosaveInterval() time.Duration {
	d, err := time.ParseDuration(c.AutosaveDebounce)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// defaultDBPath puts the database under the user config dir, falling back to
// the working directory when that cannot be resolved.
func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "roadline.db"
	}
	return filepath.Join(dir, "roadline", "roadline.db")
}
