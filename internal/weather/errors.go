package weather

import "errors"

var (
	// ErrWeatherDataUnavailable means the provider did not answer with success
	ErrWeatherDataUnavailable = errors.New("weather data unavailable")
	// ErrMalformedResponse means the provider answered but the expected fields were missing
	ErrMalformedResponse = errors.New("malformed weather response")
	// ErrInvalidCity means no city name was given
	ErrInvalidCity = errors.New("city name is required")
)

// Stage identifies which step of a lookup failed
type Stage string

const (
	StageInput    Stage = "input"
	StageCurrent  Stage = "current"
	StageForecast Stage = "forecast"
)

// LookupError carries the single user-facing message for a failed lookup
type LookupError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the lookup failed because the provider did not know the city
func (e *LookupError) NotFound() bool {
	return e.Stage == StageCurrent && errors.Is(e.Err, ErrWeatherDataUnavailable)
}

func newLookupError(stage Stage, err error) *LookupError {
	le := &LookupError{Stage: stage, Err: err}
	switch {
	case stage == StageInput:
		le.Message = "Please enter a city name"
	case stage == StageCurrent && errors.Is(err, ErrWeatherDataUnavailable):
		le.Message = "Error fetching weather data - City not found"
	case stage == StageCurrent:
		le.Message = "Error reading weather data"
	default:
		le.Message = "Error fetching forecast data - Forecast unavailable"
	}
	return le
}
