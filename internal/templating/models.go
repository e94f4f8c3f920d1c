package templating

// PageView is everything the page template needs: the form state plus either
// a report or an error message
type PageView struct {
	Title  string      `json:"title"`
	City   string      `json:"city"`
	Unit   string      `json:"unit"`
	Units  []string    `json:"units"`
	Report *ReportView `json:"report,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// ReportView is a weather report formatted for display
type ReportView struct {
	City        string       `json:"city"`
	General     string       `json:"general"`
	Description string       `json:"description"`
	IconURL     string       `json:"icon_url"`
	Hours       []HourView   `json:"hours"`
	Metrics     []MetricView `json:"metrics"`
	FetchedAt   string       `json:"fetched_at"`
}

// HourView is one hourly temperature readout
type HourView struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// MetricView is a current value with its delta against the forecast hour
type MetricView struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Delta     string `json:"delta"`
	Direction string `json:"direction"` // "up", "down" or "flat"
}

// FormattingOptions controls how values are presented
type FormattingOptions struct {
	Title      string
	HourFormat string
	TimeFormat string
}

// DefaultFormattingOptions returns the page defaults
func DefaultFormattingOptions() FormattingOptions {
	return FormattingOptions{
		Title:      "Find the Weather for today",
		HourFormat: "15:04",
		TimeFormat: "Monday, January 2, 2006 at 15:04",
	}
}
