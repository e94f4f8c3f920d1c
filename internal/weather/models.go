package weather

import (
	"fmt"
	"strings"
	"time"
)

// Unit is the temperature scale chosen for a lookup
type Unit string

const (
	Celsius    Unit = "Celsius"
	Fahrenheit Unit = "Fahrenheit"
)

// Units lists the selectable units in display order
var Units = []Unit{Celsius, Fahrenheit}

// ParseUnit accepts "Celsius"/"Fahrenheit" in any case, or "C"/"F".
// An empty value selects Celsius.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "c", "celsius", "metric":
		return Celsius, nil
	case "f", "fahrenheit", "imperial":
		return Fahrenheit, nil
	default:
		return "", fmt.Errorf("unknown temperature unit: %q", s)
	}
}

// Token returns the provider's unit-system token
func (u Unit) Token() string {
	if u == Fahrenheit {
		return "imperial"
	}
	return "metric"
}

// Symbol returns the temperature symbol shown next to values
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// WindUnit returns the speed unit the provider uses for this unit system
func (u Unit) WindUnit() string {
	if u == Fahrenheit {
		return "mph"
	}
	return "m/s"
}

// CurrentConditions is what the current-weather endpoint tells us about a city
type CurrentConditions struct {
	City        string  `json:"city"`
	General     string  `json:"general"`
	Description string  `json:"description"`
	Temperature int     `json:"temperature"` // truncated toward zero
	FeelsLike   float64 `json:"feels_like"`
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    int     `json:"humidity"` // percentage
	IconURL     string  `json:"icon_url"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
}

// ForecastWindow is the current hour plus the next five hours of the hourly forecast
type ForecastWindow struct {
	CurrentTemperature float64     `json:"current_temperature"`
	HourlyTemperatures []int       `json:"hourly_temperatures"`
	Hours              []time.Time `json:"hours"`
	FeelsLike          float64     `json:"feels_like"`
	WindSpeed          float64     `json:"wind_speed"`
	Humidity           int         `json:"humidity"`
}

// Deltas are current values minus the forecast for the current hour, rounded to one decimal
type Deltas struct {
	Temperature float64 `json:"temperature"` // computed, not displayed
	FeelsLike   float64 `json:"feels_like"`
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    float64 `json:"humidity"`
}

// Report is the complete result of one lookup
type Report struct {
	Unit      Unit              `json:"unit"`
	Current   CurrentConditions `json:"current"`
	Forecast  ForecastWindow    `json:"forecast"`
	Deltas    Deltas            `json:"deltas"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// WeatherConfig holds provider endpoints and credentials
type WeatherConfig struct {
	CurrentWeatherURL     string
	ForecastURL           string
	IconURLTemplate       string
	CurrentAPIKey         string
	ForecastAPIKey        string
	RequestTimeoutSeconds int
}

// DefaultWeatherConfig returns the OpenWeatherMap endpoints without credentials
func DefaultWeatherConfig() WeatherConfig {
	return WeatherConfig{
		CurrentWeatherURL:     "https://api.openweathermap.org/data/2.5/weather",
		ForecastURL:           "https://api.openweathermap.org/data/2.5/onecall",
		IconURLTemplate:       "https://openweathermap.org/img/wn/%s@2x.png",
		RequestTimeoutSeconds: 10,
	}
}

// hourlyForecastResponse is the subset of the One Call response we read
type hourlyForecastResponse struct {
	Lat            float64       `json:"lat"`
	Lon            float64       `json:"lon"`
	Timezone       string        `json:"timezone"`
	TimezoneOffset *int          `json:"timezone_offset"` // seconds east of UTC
	Hourly         []hourlyEntry `json:"hourly"`
}

// location returns the city's clock, or nil when the response carries no offset
func (r *hourlyForecastResponse) location() *time.Location {
	if r.TimezoneOffset == nil {
		return nil
	}
	name := r.Timezone
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, *r.TimezoneOffset)
}

type hourlyEntry struct {
	Dt        int64   `json:"dt"`
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	WindSpeed float64 `json:"wind_speed"`
	Humidity  int     `json:"humidity"`
}
