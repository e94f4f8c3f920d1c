package weather

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/yegors/wxpanel/pkg/logger"
)

// fakeProvider serves both endpoints and records the queries it saw
type fakeProvider struct {
	mu            sync.Mutex
	currentStatus int
	currentBody   map[string]any
	forecastBody  map[string]any
	currentHits   []url.Values
	forecastHits  []url.Values
}

func (p *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch r.URL.Path {
	case "/weather":
		p.currentHits = append(p.currentHits, r.URL.Query())
		status := p.currentStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(p.currentBody)
		} else {
			json.NewEncoder(w).Encode(map[string]any{"cod": "404", "message": "city not found"})
		}
	case "/onecall":
		p.forecastHits = append(p.forecastHits, r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p.forecastBody)
	default:
		http.NotFound(w, r)
	}
}

func (p *fakeProvider) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.currentHits), len(p.forecastHits)
}

func newFakeProvider(t *testing.T, p *fakeProvider) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(p)
	t.Cleanup(srv.Close)

	cfg := DefaultWeatherConfig()
	cfg.CurrentWeatherURL = srv.URL + "/weather"
	cfg.ForecastURL = srv.URL + "/onecall"
	cfg.CurrentAPIKey = "current-key"
	cfg.ForecastAPIKey = "forecast-key"
	return NewClient(cfg, logger.NewNop()), srv
}

func currentBody(temp, feelsLike, wind float64, humidity int) map[string]any {
	return map[string]any{
		"coord":   map[string]any{"lon": -0.1257, "lat": 51.5085},
		"weather": []map[string]any{{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}},
		"main":    map[string]any{"temp": temp, "feels_like": feelsLike, "humidity": humidity},
		"wind":    map[string]any{"speed": wind},
		"name":    "London",
		"cod":     200,
	}
}

// hourlyBody returns n hourly entries starting at the hour containing start
func hourlyBody(start time.Time, n int, fill func(i int) map[string]any) map[string]any {
	base := start.Truncate(time.Hour)
	hourly := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		entry := map[string]any{
			"dt":         base.Add(time.Duration(i) * time.Hour).Unix(),
			"temp":       10.0 + float64(i),
			"feels_like": 9.0,
			"wind_speed": 3.0,
			"humidity":   50,
		}
		if fill != nil {
			for k, v := range fill(i) {
				entry[k] = v
			}
		}
		hourly = append(hourly, entry)
	}
	return map[string]any{"lat": 51.5085, "lon": -0.1257, "hourly": hourly}
}
