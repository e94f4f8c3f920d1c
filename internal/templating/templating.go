package templating

import (
	"io"

	"github.com/yegors/wxpanel/internal/weather"
	"github.com/yegors/wxpanel/pkg/logger"
)

const (
	pageFile     = "index.html"
	pageTemplate = "page"
	// resultsTemplate is the results panel alone, used for live updates
	resultsTemplate = "results"
)

// Service renders weather pages
type Service struct {
	engine *Engine
	opts   FormattingOptions
	logger *logger.Logger
}

// NewService creates a templating service over the templates in dir
func NewService(dir string, logger *logger.Logger) *Service {
	return &Service{
		engine: NewEngine(dir, logger),
		opts:   DefaultFormattingOptions(),
		logger: logger.Named("templating-service"),
	}
}

// NewPage builds a page view holding the form state
func (s *Service) NewPage(city string, unit weather.Unit) *PageView {
	units := make([]string, 0, len(weather.Units))
	for _, u := range weather.Units {
		units = append(units, string(u))
	}
	return &PageView{
		Title: s.opts.Title,
		City:  city,
		Unit:  string(unit),
		Units: units,
	}
}

// WithReport attaches a formatted report to the page
func (s *Service) WithReport(page *PageView, report *weather.Report) *PageView {
	page.Report = FormatReport(report, s.opts)
	page.Error = ""
	return page
}

// WithError attaches a single user-facing error to the page
func (s *Service) WithError(page *PageView, message string) *PageView {
	page.Report = nil
	page.Error = message
	return page
}

// RenderPage writes the full page
func (s *Service) RenderPage(w io.Writer, page *PageView) error {
	return s.engine.Render(w, pageFile, pageTemplate, page)
}

// RenderResults writes only the results panel (report or error)
func (s *Service) RenderResults(w io.Writer, page *PageView) error {
	return s.engine.Render(w, pageFile, resultsTemplate, page)
}

// Reload re-reads templates from disk
func (s *Service) Reload() error {
	return s.engine.ReloadAllTemplates()
}

// GetCacheStats returns statistics about the template cache
func (s *Service) GetCacheStats() map[string]any {
	return s.engine.GetCacheStats()
}
