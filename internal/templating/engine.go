package templating

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/yegors/wxpanel/pkg/logger"
)

// Engine handles template loading, caching, and rendering
type Engine struct {
	dir           string
	templateCache map[string]*template.Template
	cacheMutex    sync.RWMutex
	logger        *logger.Logger
}

// NewEngine creates a new template engine reading templates from dir
func NewEngine(dir string, logger *logger.Logger) *Engine {
	return &Engine{
		dir:           dir,
		templateCache: make(map[string]*template.Template),
		logger:        logger.Named("template-engine"),
	}
}

// Render executes the named template defined in file and writes it to w.
// Output is buffered so a failed execution writes nothing.
func (e *Engine) Render(w io.Writer, file, name string, data any) error {
	tmpl, err := e.getTemplate(file)
	if err != nil {
		return fmt.Errorf("failed to get template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s/%s: %w", file, name, err)
	}

	e.logger.Debug("Template rendered",
		logger.String("file", file),
		logger.String("name", name),
		logger.Int("rendered_length", buf.Len()))

	_, err = buf.WriteTo(w)
	return err
}

// getTemplate retrieves a template from cache or loads it from file
func (e *Engine) getTemplate(file string) (*template.Template, error) {
	e.cacheMutex.RLock()
	if tmpl, exists := e.templateCache[file]; exists {
		e.cacheMutex.RUnlock()
		return tmpl, nil
	}
	e.cacheMutex.RUnlock()

	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	// Another goroutine may have loaded it while we waited
	if tmpl, exists := e.templateCache[file]; exists {
		return tmpl, nil
	}

	tmpl, err := e.loadTemplate(file)
	if err != nil {
		return nil, err
	}

	e.templateCache[file] = tmpl
	e.logger.Debug("Template loaded and cached", logger.String("file", file))

	return tmpl, nil
}

// loadTemplate parses a template file from the template directory
func (e *Engine) loadTemplate(file string) (*template.Template, error) {
	path := filepath.Join(e.dir, file)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file '%s': %w", path, err)
	}

	tmpl, err := template.New(file).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file '%s': %w", path, err)
	}

	return tmpl, nil
}

// ReloadAllTemplates re-reads every cached template from disk
func (e *Engine) ReloadAllTemplates() error {
	e.cacheMutex.Lock()
	defer e.cacheMutex.Unlock()

	var errors []string
	reloadedCount := 0

	for file := range e.templateCache {
		tmpl, err := e.loadTemplate(file)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", file, err))
			continue
		}
		e.templateCache[file] = tmpl
		reloadedCount++
	}

	if len(errors) > 0 {
		e.logger.Error("Some templates failed to reload",
			logger.Int("successful", reloadedCount),
			logger.Int("failed", len(errors)))
		return fmt.Errorf("failed to reload %d templates: %v", len(errors), errors)
	}

	e.logger.Info("All templates reloaded successfully",
		logger.Int("count", reloadedCount))

	return nil
}

// GetCacheStats returns statistics about the template cache
func (e *Engine) GetCacheStats() map[string]any {
	e.cacheMutex.RLock()
	defer e.cacheMutex.RUnlock()

	templates := make([]string, 0, len(e.templateCache))
	for file := range e.templateCache {
		templates = append(templates, file)
	}

	return map[string]any{
		"cached_template_count": len(e.templateCache),
		"cached_templates":      templates,
	}
}
