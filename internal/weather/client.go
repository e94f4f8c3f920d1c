package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	owm "github.com/briandowns/openweathermap"
	"github.com/yegors/wxpanel/pkg/logger"
)

// forecastExclude drops the One Call blocks we never read
const forecastExclude = "current,minutely,daily,alerts"

// Client handles HTTP requests to the weather provider
type Client struct {
	config     WeatherConfig
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new weather API client
func NewClient(config WeatherConfig, logger *logger.Logger) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.RequestTimeoutSeconds) * time.Second,
		},
		logger: logger.Named("weather-client"),
	}
}

// FetchCurrent fetches current conditions for a city
func (c *Client) FetchCurrent(ctx context.Context, city string, unit Unit) (*CurrentConditions, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrInvalidCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.config.CurrentAPIKey)
	params.Set("units", unit.Token())

	var resp owm.CurrentWeatherData
	if err := c.getJSON(ctx, "current", c.config.CurrentWeatherURL, params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Weather) == 0 {
		return nil, fmt.Errorf("%w: no weather entries for %s", ErrMalformedResponse, city)
	}

	conditions := &CurrentConditions{
		City:        resp.Name,
		General:     resp.Weather[0].Main,
		Description: resp.Weather[0].Description,
		Temperature: int(resp.Main.Temp),
		FeelsLike:   resp.Main.FeelsLike,
		WindSpeed:   resp.Wind.Speed,
		Humidity:    resp.Main.Humidity,
		IconURL:     fmt.Sprintf(c.config.IconURLTemplate, resp.Weather[0].Icon),
		Longitude:   resp.GeoPos.Longitude,
		Latitude:    resp.GeoPos.Latitude,
	}
	if conditions.City == "" {
		conditions.City = city
	}

	c.logger.Debug("Current conditions fetched",
		logger.String("city", conditions.City),
		logger.String("units", unit.Token()),
		logger.Int("temperature", conditions.Temperature))

	return conditions, nil
}

// FetchForecast fetches the hourly forecast at the given coordinates and
// returns the window starting at the hour containing now
func (c *Client) FetchForecast(ctx context.Context, unit Unit, lon, lat float64, now time.Time) (*ForecastWindow, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("exclude", forecastExclude)
	params.Set("appid", c.config.ForecastAPIKey)
	params.Set("units", unit.Token())

	var resp hourlyForecastResponse
	if err := c.getJSON(ctx, "forecast", c.config.ForecastURL, params, &resp); err != nil {
		return nil, err
	}

	window, err := selectWindow(resp.Hourly, now)
	if err != nil {
		return nil, err
	}
	if loc := resp.location(); loc != nil {
		window.inZone(loc)
	}

	c.logger.Debug("Hourly forecast fetched",
		logger.Float64("lat", lat),
		logger.Float64("lon", lon),
		logger.Int("hourly_entries", len(resp.Hourly)))

	return window, nil
}

// getJSON issues a single GET and decodes a 200 response into target
func (c *Client) getJSON(ctx context.Context, kind, endpoint string, params url.Values, target any) error {
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid %s endpoint %q: %w", kind, endpoint, err)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", kind, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Weather API request failed",
			logger.String("type", kind),
			logger.Error(err))
		return fmt.Errorf("%w: %s request failed: %v", ErrWeatherDataUnavailable, kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("Weather API returned non-OK status",
			logger.String("type", kind),
			logger.Int("status_code", resp.StatusCode),
			logger.Duration("duration", time.Since(start)))
		return fmt.Errorf("%w: %s endpoint returned status %d", ErrWeatherDataUnavailable, kind, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", ErrMalformedResponse, kind, err)
	}

	c.logger.Debug("Weather API request complete",
		logger.String("type", kind),
		logger.Duration("duration", time.Since(start)))
	return nil
}
