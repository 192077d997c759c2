package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DefaultZoom", cfg.DefaultZoom, "week"},
		{"AutosaveDebounce", cfg.AutosaveDebounce, "2s"},
		{"ShowMonthColors", cfg.ShowMonthColors, true},
		{"WatchExternalEdit", cfg.WatchExternalEdit, true},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if cfg.DBPath == "" {
		t.Error("DBPath should not be empty")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetViper()

	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "db_path",
			envKey: "ROADLINE_DB_PATH",
			envVal: "/tmp/custom.db",
			field:  func(c Config) any { return c.DBPath },
			want:   "/tmp/custom.db",
		},
		{
			name:   "default_zoom",
			envKey: "ROADLINE_DEFAULT_ZOOM",
			envVal: "month",
			field:  func(c Config) any { return c.DefaultZoom },
			want:   "month",
		},
		{
			name:   "autosave_debounce",
			envKey: "ROADLINE_AUTOSAVE_DEBOUNCE",
			envVal: "5s",
			field:  func(c Config) any { return c.AutosaveDebounce },
			want:   "5s",
		},
		{
			name:   "verbose",
			envKey: "ROADLINE_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so ROADLINE_* env vars map to config keys.
			viper.SetEnvPrefix("ROADLINE")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg := Load()
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestAutosaveInterval(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"valid", "500ms", 500 * time.Millisecond},
		{"unparsable", "soon", 2 * time.Second},
		{"negative", "-1s", 2 * time.Second},
		{"empty", "", 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{AutosaveDebounce: tt.value}
			if got := cfg.AutosaveInterval(); got != tt.want {
				t.Errorf("AutosaveInterval(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
