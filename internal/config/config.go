package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/yegors/wxpanel/internal/weather"
)

// Environment variables that override file settings
const (
	EnvCurrentAPIKey  = "OWM_CURRENT_API_KEY"
	EnvForecastAPIKey = "OWM_FORECAST_API_KEY"
	EnvPort           = "WXPANEL_PORT"
	EnvLogLevel       = "WXPANEL_LOG_LEVEL"
)

// Config represents the main application configuration structure
type Config struct {
	Server   ServerConfig   `toml:"server"`   // HTTP server settings
	Logging  LoggingConfig  `toml:"logging"`  // Application logging settings
	Provider ProviderConfig `toml:"provider"` // Weather provider endpoints and credentials
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port             int    `toml:"port"`                  // HTTP port for the server
	Host             string `toml:"host"`                  // Host address to bind to (0.0.0.0 for all interfaces)
	ReadTimeoutSecs  int    `toml:"read_timeout_seconds"`  // Maximum duration for reading the entire request
	WriteTimeoutSecs int    `toml:"write_timeout_seconds"` // Maximum duration for writing the response
	IdleTimeoutSecs  int    `toml:"idle_timeout_seconds"`  // Keep-alive idle timeout
	StaticFilesDir   string `toml:"static_files_dir"`      // Directory served under /static
	TemplatesDir     string `toml:"templates_dir"`         // Directory holding the page templates
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
}

// ProviderConfig contains the OpenWeatherMap settings
type ProviderConfig struct {
	CurrentWeatherURL     string `toml:"current_weather_url"`     // Current weather endpoint
	ForecastURL           string `toml:"forecast_url"`            // One Call hourly forecast endpoint
	IconURLTemplate       string `toml:"icon_url_template"`       // fmt template taking the icon code
	CurrentAPIKey         string `toml:"current_api_key"`         // Key for the current weather endpoint (prefer OWM_CURRENT_API_KEY)
	ForecastAPIKey        string `toml:"forecast_api_key"`        // Key for the forecast endpoint (prefer OWM_FORECAST_API_KEY)
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"` // HTTP timeout per provider request
}

// Default returns a configuration with every field set to its default value
func Default() *Config {
	wx := weather.DefaultWeatherConfig()
	return &Config{
		Server: ServerConfig{
			Port:             8080,
			Host:             "0.0.0.0",
			ReadTimeoutSecs:  15,
			WriteTimeoutSecs: 30,
			IdleTimeoutSecs:  60,
			StaticFilesDir:   "www/static",
			TemplatesDir:     "www/templates",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Provider: ProviderConfig{
			CurrentWeatherURL:     wx.CurrentWeatherURL,
			ForecastURL:           wx.ForecastURL,
			IconURLTemplate:       wx.IconURLTemplate,
			RequestTimeoutSeconds: wx.RequestTimeoutSeconds,
		},
	}
}

// Load loads the configuration from the specified file path on top of the defaults
func Load(path string) (*Config, error) {
	config := Default()

	// Check if the file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadWithFallback loads the configuration by checking multiple locations in order of preference.
// When no file exists anywhere, defaults plus environment are used.
func LoadWithFallback(preferredPath string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	// A path given explicitly must exist
	if preferredPath != "" {
		return Load(preferredPath)
	}

	searchPaths := []string{
		"configs/config.toml",
		"config.toml",
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			return config, nil
		}
	}

	config := Default()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCurrentAPIKey); v != "" {
		c.Provider.CurrentAPIKey = v
	}
	if v := os.Getenv(EnvForecastAPIKey); v != "" {
		c.Provider.ForecastAPIKey = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.TemplatesDir == "" {
		c.Server.TemplatesDir = "www/templates"
	}
	if _, err := os.Stat(c.Server.TemplatesDir); os.IsNotExist(err) {
		return fmt.Errorf("templates directory does not exist: %s", c.Server.TemplatesDir)
	}

	if c.Server.StaticFilesDir == "" {
		c.Server.StaticFilesDir = "www/static"
	}
	if _, err := os.Stat(c.Server.StaticFilesDir); os.IsNotExist(err) {
		return fmt.Errorf("static files directory does not exist: %s", c.Server.StaticFilesDir)
	}

	return c.ValidateProvider()
}

// ValidateProvider validates the weather provider configuration
func (c *Config) ValidateProvider() error {
	for name, raw := range map[string]string{
		"current_weather_url": c.Provider.CurrentWeatherURL,
		"forecast_url":        c.Provider.ForecastURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("provider %s must be an absolute URL: %q", name, raw)
		}
	}

	if strings.Count(c.Provider.IconURLTemplate, "%s") != 1 {
		return fmt.Errorf("provider icon_url_template must contain exactly one %%s: %q", c.Provider.IconURLTemplate)
	}

	if c.Provider.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("provider request_timeout_seconds must be greater than 0: %d", c.Provider.RequestTimeoutSeconds)
	}

	if c.Provider.CurrentAPIKey == "" {
		return fmt.Errorf("no current weather API key: set %s or provider.current_api_key", EnvCurrentAPIKey)
	}
	if c.Provider.ForecastAPIKey == "" {
		return fmt.Errorf("no forecast API key: set %s or provider.forecast_api_key", EnvForecastAPIKey)
	}

	return nil
}

// WeatherConfig converts the provider section for the weather package
func (c *Config) WeatherConfig() weather.WeatherConfig {
	return weather.WeatherConfig{
		CurrentWeatherURL:     c.Provider.CurrentWeatherURL,
		ForecastURL:           c.Provider.ForecastURL,
		IconURLTemplate:       c.Provider.IconURLTemplate,
		CurrentAPIKey:         c.Provider.CurrentAPIKey,
		ForecastAPIKey:        c.Provider.ForecastAPIKey,
		RequestTimeoutSeconds: c.Provider.RequestTimeoutSeconds,
	}
}
