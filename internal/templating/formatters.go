package templating

import (
	"fmt"
	"strconv"

	"github.com/yegors/wxpanel/internal/weather"
)

// FormatReport converts a weather report into display strings
func FormatReport(report *weather.Report, opts FormattingOptions) *ReportView {
	unit := report.Unit
	symbol := unit.Symbol()

	view := &ReportView{
		City:        report.Current.City,
		General:     report.Current.General,
		Description: report.Current.Description,
		IconURL:     report.Current.IconURL,
		Hours:       make([]HourView, 0, len(report.Forecast.HourlyTemperatures)),
		FetchedAt:   report.FetchedAt.Format(opts.TimeFormat),
	}

	for i, temp := range report.Forecast.HourlyTemperatures {
		label := "Temperature"
		if i < len(report.Forecast.Hours) {
			label = report.Forecast.Hours[i].Format(opts.HourFormat)
		}
		view.Hours = append(view.Hours, HourView{
			Label: label,
			Value: fmt.Sprintf("%d %s", temp, symbol),
		})
	}

	view.Metrics = []MetricView{
		{
			Label:     "Feels like",
			Value:     formatNumber(report.Current.FeelsLike) + " " + symbol,
			Delta:     formatDelta(report.Deltas.FeelsLike) + " " + symbol,
			Direction: direction(report.Deltas.FeelsLike),
		},
		{
			Label:     "Humidity",
			Value:     fmt.Sprintf("%d %%", report.Current.Humidity),
			Delta:     formatDelta(report.Deltas.Humidity) + " %",
			Direction: direction(report.Deltas.Humidity),
		},
		{
			Label:     "Wind",
			Value:     formatNumber(report.Current.WindSpeed) + " " + unit.WindUnit(),
			Delta:     formatDelta(report.Deltas.WindSpeed),
			Direction: direction(report.Deltas.WindSpeed),
		},
	}

	return view
}

// formatNumber prints the shortest representation, e.g. 4.1 or 20
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatDelta prints a signed delta, e.g. +1.5, -5 or 0
func formatDelta(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}

func direction(v float64) string {
	switch {
	case v > 0:
		return "up"
	case v < 0:
		return "down"
	default:
		return "flat"
	}
}
