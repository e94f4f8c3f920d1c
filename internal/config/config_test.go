package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
[server]
port = 9090
host = "127.0.0.1"

[logging]
level = "debug"

[provider]
forecast_url = "http://localhost:9999/onecall"
current_api_key = "file-current"
forecast_api_key = "file-forecast"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func validDirs(t *testing.T, cfg *Config) {
	t.Helper()
	dir := t.TempDir()
	cfg.Server.TemplatesDir = filepath.Join(dir, "templates")
	cfg.Server.StaticFilesDir = filepath.Join(dir, "static")
	os.MkdirAll(cfg.Server.TemplatesDir, 0755)
	os.MkdirAll(cfg.Server.StaticFilesDir, 0755)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Setenv(EnvCurrentAPIKey, "")
	t.Setenv(EnvForecastAPIKey, "")
	path := writeFile(t, t.TempDir(), "config.toml", sampleConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Provider.ForecastURL != "http://localhost:9999/onecall" {
		t.Errorf("forecast url = %q", cfg.Provider.ForecastURL)
	}
	if cfg.Provider.CurrentWeatherURL != "https://api.openweathermap.org/data/2.5/weather" {
		t.Errorf("current url default lost: %q", cfg.Provider.CurrentWeatherURL)
	}
	if cfg.Provider.CurrentAPIKey != "file-current" || cfg.Provider.ForecastAPIKey != "file-forecast" {
		t.Errorf("keys = %q / %q", cfg.Provider.CurrentAPIKey, cfg.Provider.ForecastAPIKey)
	}
}

func TestEnvironmentOverridesCredentials(t *testing.T) {
	t.Setenv(EnvCurrentAPIKey, "env-current")
	t.Setenv(EnvForecastAPIKey, "env-forecast")
	t.Setenv(EnvPort, "7000")
	path := writeFile(t, t.TempDir(), "config.toml", sampleConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.CurrentAPIKey != "env-current" || cfg.Provider.ForecastAPIKey != "env-forecast" {
		t.Errorf("keys = %q / %q", cfg.Provider.CurrentAPIKey, cfg.Provider.ForecastAPIKey)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}

	wx := cfg.WeatherConfig()
	if wx.CurrentAPIKey != "env-current" || wx.ForecastAPIKey != "env-forecast" {
		t.Errorf("weather config keys not propagated: %+v", wx)
	}
}

func TestInvalidPortFromEnvironment(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	path := writeFile(t, t.TempDir(), "config.toml", sampleConfig)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadWithFallback(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}

func TestLoadWithFallbackUsesDefaults(t *testing.T) {
	t.Setenv(EnvCurrentAPIKey, "a")
	t.Setenv(EnvForecastAPIKey, "b")

	cfg, err := LoadWithFallback("")
	if err != nil {
		t.Fatalf("LoadWithFallback: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.Provider.CurrentAPIKey != "a" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"missing current key", func(c *Config) { c.Provider.CurrentAPIKey = "" }, EnvCurrentAPIKey},
		{"missing forecast key", func(c *Config) { c.Provider.ForecastAPIKey = "" }, EnvForecastAPIKey},
		{"relative url", func(c *Config) { c.Provider.ForecastURL = "/onecall" }, "forecast_url"},
		{"icon template", func(c *Config) { c.Provider.IconURLTemplate = "https://x/icon.png" }, "icon_url_template"},
		{"timeout", func(c *Config) { c.Provider.RequestTimeoutSeconds = 0 }, "request_timeout_seconds"},
		{"templates dir", func(c *Config) { c.Server.TemplatesDir = "/does/not/exist" }, "templates directory"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Provider.CurrentAPIKey = "k1"
			cfg.Provider.ForecastAPIKey = "k2"
			validDirs(t, cfg)
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}
