package config

import (
	"strings"
	"testing"
	"time"
)

var configVars = []string{
	"PORT", "ENV", "SHUTDOWN_TIMEOUT", "DATABASE_PATH", "API_KEY",
	"LOG_LEVEL", "LOG_FORMAT", "CALCULATOR", "USE_ELEVATION", "MAX_RANGE_DAYS",
}

// unsetEnv blanks every config variable for the duration of the test.
// getEnv treats empty values as unset.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, v := range configVars {
		t.Setenv(v, "")
	}
}

func validConfig() Config {
	return Config{
		Port:            8080,
		Env:             EnvDevelopment,
		ShutdownTimeout: 30 * time.Second,
		DatabasePath:    "./data/test.db",
		LogLevel:        "info",
		LogFormat:       "text",
		Calculator:      "noaa",
		UseElevation:    true,
		MaxRangeDays:    31,
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	want := validConfig()
	want.DatabasePath = "./data/zmanim.db"
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	unsetEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("DATABASE_PATH", "/data/test.db")
	t.Setenv("API_KEY", "secret-key-123")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("CALCULATOR", "USNO")
	t.Setenv("USE_ELEVATION", "false")
	t.Setenv("MAX_RANGE_DAYS", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := Config{
		Port:            3000,
		Env:             EnvProduction,
		ShutdownTimeout: 5 * time.Second,
		DatabasePath:    "/data/test.db",
		APIKey:          "secret-key-123",
		LogLevel:        "debug",
		LogFormat:       "json",
		Calculator:      "usno",
		UseElevation:    false,
		MaxRangeDays:    7,
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	unsetEnv(t)
	t.Setenv("CALCULATOR", "sundial")
	t.Setenv("ENV", "production")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
	// every problem is reported at once
	for _, want := range []string{"CALCULATOR", "API_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Load() error %q does not mention %s", err, want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"valid production config", func(c *Config) { c.Env = EnvProduction; c.APIKey = "required-in-prod" }, false},
		{"production requires API key", func(c *Config) { c.Env = EnvProduction }, true},
		{"invalid port - too low", func(c *Config) { c.Port = 0 }, true},
		{"invalid port - too high", func(c *Config) { c.Port = 70000 }, true},
		{"invalid environment", func(c *Config) { c.Env = "invalid" }, true},
		{"invalid log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"invalid log format", func(c *Config) { c.LogFormat = "xml" }, true},
		{"empty database path", func(c *Config) { c.DatabasePath = "" }, true},
		{"unknown calculator", func(c *Config) { c.Calculator = "sundial" }, true},
		{"zero range", func(c *Config) { c.MaxRangeDays = 0 }, true},
		{"range over a year", func(c *Config) { c.MaxRangeDays = 400 }, true},
		{"no shutdown grace", func(c *Config) { c.ShutdownTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Environment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("development config misreported")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() || !cfg.IsProduction() {
		t.Error("production config misreported")
	}
}
