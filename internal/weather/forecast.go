package weather

import (
	"fmt"
	"time"
)

// WindowHours is the number of hourly readings shown: now plus the next five hours
const WindowHours = 6

// currentHourIndex finds the entry for the hour containing now. The One Call
// hourly array begins at the top of the current hour, but entries are matched
// by their dt timestamp rather than assumed to line up with the clock.
// Entries without timestamps are taken to start at now. Returns -1 when no
// entry falls inside the current hour.
func currentHourIndex(hourly []hourlyEntry, now time.Time) int {
	if len(hourly) == 0 {
		return -1
	}
	if hourly[0].Dt == 0 {
		return 0
	}

	hourStart := now.Truncate(time.Hour).Unix()
	hourEnd := hourStart + int64(time.Hour/time.Second)
	for i, h := range hourly {
		if h.Dt < hourStart {
			continue
		}
		if h.Dt < hourEnd {
			return i
		}
		return -1
	}
	return -1
}

// selectWindow builds the six-hour window from the hourly array
func selectWindow(hourly []hourlyEntry, now time.Time) (*ForecastWindow, error) {
	idx := currentHourIndex(hourly, now)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no hourly entry for %s (%d entries)",
			ErrMalformedResponse, now.Truncate(time.Hour).Format(time.RFC3339), len(hourly))
	}
	if idx+WindowHours > len(hourly) {
		return nil, fmt.Errorf("%w: need %d hourly entries from index %d, got %d",
			ErrMalformedResponse, WindowHours, idx, len(hourly))
	}

	window := &ForecastWindow{
		HourlyTemperatures: make([]int, 0, WindowHours),
		Hours:              make([]time.Time, 0, WindowHours),
	}
	for i, h := range hourly[idx : idx+WindowHours] {
		window.HourlyTemperatures = append(window.HourlyTemperatures, int(h.Temp))
		if h.Dt != 0 {
			window.Hours = append(window.Hours, time.Unix(h.Dt, 0).In(now.Location()))
		} else {
			window.Hours = append(window.Hours, now.Truncate(time.Hour).Add(time.Duration(i)*time.Hour))
		}
	}

	current := hourly[idx]
	window.CurrentTemperature = current.Temp
	window.FeelsLike = current.FeelsLike
	window.WindSpeed = current.WindSpeed
	window.Humidity = current.Humidity

	return window, nil
}

// inZone shows the window's hours on the given clock
func (w *ForecastWindow) inZone(loc *time.Location) {
	for i := range w.Hours {
		w.Hours[i] = w.Hours[i].In(loc)
	}
}
