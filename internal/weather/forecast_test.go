package weather

import (
	"errors"
	"testing"
	"time"
)

func entries(start time.Time, n int) []hourlyEntry {
	base := start.Truncate(time.Hour)
	out := make([]hourlyEntry, n)
	for i := range out {
		out[i] = hourlyEntry{
			Dt:        base.Add(time.Duration(i) * time.Hour).Unix(),
			Temp:      float64(i) + 0.7,
			FeelsLike: float64(i),
			WindSpeed: 2,
			Humidity:  40 + i,
		}
	}
	return out
}

func TestSelectWindowAlwaysSixHours(t *testing.T) {
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)
	for hour := 0; hour < 24; hour++ {
		now := day.Add(time.Duration(hour)*time.Hour + 42*time.Minute)
		w, err := selectWindow(entries(now, 48), now)
		if err != nil {
			t.Fatalf("hour %d: %v", hour, err)
		}
		if len(w.HourlyTemperatures) != WindowHours || len(w.Hours) != WindowHours {
			t.Fatalf("hour %d: window length %d", hour, len(w.HourlyTemperatures))
		}
	}
}

func TestSelectWindowAtHour23(t *testing.T) {
	now := time.Date(2026, 10, 18, 23, 50, 0, 0, time.UTC)
	w, err := selectWindow(entries(now, 48), now)
	if err != nil {
		t.Fatalf("selectWindow: %v", err)
	}
	want := []int{0, 1, 2, 3, 4, 5}
	for i, v := range want {
		if w.HourlyTemperatures[i] != v {
			t.Fatalf("hourly = %v, want %v", w.HourlyTemperatures, want)
		}
	}
	if !w.Hours[1].Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("second hour = %v, want midnight", w.Hours[1])
	}
}

func TestSelectWindowSkipsPastEntries(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 5, 0, 0, time.UTC)
	// array starts two hours before the current hour
	hourly := entries(now.Add(-2*time.Hour), 10)

	w, err := selectWindow(hourly, now)
	if err != nil {
		t.Fatalf("selectWindow: %v", err)
	}
	if w.HourlyTemperatures[0] != 2 {
		t.Errorf("first reading = %d, want entry 2", w.HourlyTemperatures[0])
	}
	if w.Humidity != 42 || w.FeelsLike != 2 || w.CurrentTemperature != 2.7 {
		t.Errorf("current-hour metrics from wrong entry: %+v", w)
	}
}

func TestSelectWindowRejectsFutureStart(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 5, 0, 0, time.UTC)

	cases := map[string][]hourlyEntry{
		"next hour":      entries(now.Add(time.Hour), 12),
		"five hours out": entries(now.Add(5*time.Hour), 12),
		"next day":       entries(now.Add(26*time.Hour), 48),
	}
	for name, hourly := range cases {
		w, err := selectWindow(hourly, now)
		if !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("%s: expected ErrMalformedResponse, got window %+v err %v", name, w, err)
		}
	}
}

func TestSelectWindowCurrentHourEdges(t *testing.T) {
	hourStart := time.Date(2026, 10, 18, 14, 0, 0, 0, time.UTC)
	hourly := entries(hourStart, 8)

	for _, now := range []time.Time{hourStart, hourStart.Add(59*time.Minute + 59*time.Second)} {
		w, err := selectWindow(hourly, now)
		if err != nil {
			t.Fatalf("now %v: %v", now, err)
		}
		if !w.Hours[0].Equal(hourStart) {
			t.Errorf("now %v: first hour = %v", now, w.Hours[0])
		}
	}
}

func TestForecastWindowInZone(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 5, 0, 0, time.UTC)
	w, err := selectWindow(entries(now, 6), now)
	if err != nil {
		t.Fatalf("selectWindow: %v", err)
	}

	w.inZone(time.FixedZone("Asia/Tokyo", 9*3600))
	if got := w.Hours[0].Format("15:04"); got != "23:00" {
		t.Errorf("first label = %s, want 23:00", got)
	}
	if !w.Hours[0].Equal(now.Truncate(time.Hour)) {
		t.Errorf("instant changed: %v", w.Hours[0])
	}
}

func TestSelectWindowWithoutTimestamps(t *testing.T) {
	now := time.Date(2026, 10, 18, 23, 5, 0, 0, time.UTC)
	hourly := entries(now, 6)
	for i := range hourly {
		hourly[i].Dt = 0
	}

	w, err := selectWindow(hourly, now)
	if err != nil {
		t.Fatalf("selectWindow: %v", err)
	}
	if w.HourlyTemperatures[0] != 0 || w.HourlyTemperatures[5] != 5 {
		t.Errorf("hourly = %v", w.HourlyTemperatures)
	}
}

func TestSelectWindowRejectsShortAndStale(t *testing.T) {
	now := time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC)

	cases := map[string][]hourlyEntry{
		"empty":          nil,
		"too short":      entries(now, 5),
		"runs out":       entries(now.Add(-20*time.Hour), 24),
		"entirely stale": entries(now.Add(-48*time.Hour), 24),
	}
	for name, hourly := range cases {
		if _, err := selectWindow(hourly, now); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("%s: expected ErrMalformedResponse, got %v", name, err)
		}
	}
}
