package weather

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/yegors/wxpanel/pkg/logger"
)

// Fetcher is the provider-facing half of a lookup
type Fetcher interface {
	FetchCurrent(ctx context.Context, city string, unit Unit) (*CurrentConditions, error)
	FetchForecast(ctx context.Context, unit Unit, lon, lat float64, now time.Time) (*ForecastWindow, error)
}

// Service sequences the current-conditions and forecast calls for a lookup
type Service struct {
	fetcher Fetcher
	now     func() time.Time
	logger  *logger.Logger
}

// NewService creates a lookup service backed by the given fetcher
func NewService(fetcher Fetcher, logger *logger.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		now:     time.Now,
		logger:  logger.Named("weather-service"),
	}
}

// SetClock overrides the wall clock used to pick the current forecast hour
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Lookup fetches current conditions for city, then the forecast at its
// coordinates. Any failure is returned as a *LookupError and nothing
// further is fetched.
func (s *Service) Lookup(ctx context.Context, city string, unit Unit) (*Report, error) {
	start := s.now()

	current, err := s.fetcher.FetchCurrent(ctx, city, unit)
	if err != nil {
		stage := StageCurrent
		if errors.Is(err, ErrInvalidCity) {
			stage = StageInput
		}
		s.logger.Info("Current conditions lookup failed",
			logger.String("city", city),
			logger.String("unit", string(unit)),
			logger.Error(err))
		return nil, newLookupError(stage, err)
	}

	forecast, err := s.fetcher.FetchForecast(ctx, unit, current.Longitude, current.Latitude, start)
	if err != nil {
		s.logger.Warn("Forecast lookup failed",
			logger.String("city", current.City),
			logger.Float64("lat", current.Latitude),
			logger.Float64("lon", current.Longitude),
			logger.Error(err))
		return nil, newLookupError(StageForecast, err)
	}

	report := &Report{
		Unit:      unit,
		Current:   *current,
		Forecast:  *forecast,
		Deltas:    computeDeltas(current, forecast),
		FetchedAt: start,
	}

	s.logger.Info("Weather lookup complete",
		logger.String("city", current.City),
		logger.String("unit", string(unit)),
		logger.Duration("duration", s.now().Sub(start)))

	return report, nil
}

func computeDeltas(current *CurrentConditions, forecast *ForecastWindow) Deltas {
	return Deltas{
		Temperature: round1(float64(current.Temperature) - forecast.CurrentTemperature),
		FeelsLike:   round1(current.FeelsLike - forecast.FeelsLike),
		WindSpeed:   round1(current.WindSpeed - forecast.WindSpeed),
		Humidity:    round1(float64(current.Humidity - forecast.Humidity)),
	}
}

// round1 rounds to one decimal place, never returning negative zero
func round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}
