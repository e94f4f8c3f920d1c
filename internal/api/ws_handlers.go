package api

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yegors/wxpanel/internal/templating"
	"github.com/yegors/wxpanel/internal/weather"
	"github.com/yegors/wxpanel/internal/websocket"
	"github.com/yegors/wxpanel/pkg/logger"
)

// LookupMessageHandler answers lookup messages arriving over the websocket
type LookupMessageHandler struct {
	lookup    Lookuper
	templates *templating.Service
	logger    *logger.Logger
}

// NewLookupMessageHandler creates the websocket lookup handler
func NewLookupMessageHandler(lookup Lookuper, templates *templating.Service, logger *logger.Logger) *LookupMessageHandler {
	return &LookupMessageHandler{
		lookup:    lookup,
		templates: templates,
		logger:    logger.Named("ws-lookup"),
	}
}

// HandleMessage runs one lookup and replies with the report and its
// rendered results panel, or with the single user-facing error
func (h *LookupMessageHandler) HandleMessage(client *websocket.Client, messageType string, data map[string]any) error {
	if messageType != websocket.MessageTypeLookup {
		return fmt.Errorf("unknown message type: %s", messageType)
	}

	city, _ := data["city"].(string)
	rawUnit, _ := data["unit"].(string)
	city = normaliseCity(city)

	unit, err := weather.ParseUnit(rawUnit)
	if err != nil {
		return h.sendError(client, h.templates.NewPage(city, weather.Celsius), "Unknown temperature unit")
	}

	page := h.templates.NewPage(city, unit)
	report, err := h.lookup.Lookup(client.Context(), city, unit)
	if err != nil {
		message := "Something went wrong"
		var lookupErr *weather.LookupError
		if errors.As(err, &lookupErr) {
			message = lookupErr.Message
		}
		return h.sendError(client, page, message)
	}

	html, err := h.renderResults(h.templates.WithReport(page, report))
	if err != nil {
		return err
	}

	h.logger.Debug("Lookup answered over websocket", logger.String("city", city))

	client.SendMessage(&websocket.Message{
		Type: websocket.MessageTypeWeatherReport,
		Data: map[string]any{"report": report, "html": html},
	})
	return nil
}

// sendError replies with the single error banner for a failed lookup
func (h *LookupMessageHandler) sendError(client *websocket.Client, page *templating.PageView, message string) error {
	html, err := h.renderResults(h.templates.WithError(page, message))
	if err != nil {
		return err
	}
	client.SendMessage(&websocket.Message{
		Type: websocket.MessageTypeLookupError,
		Data: map[string]any{"message": message, "html": html},
	})
	return nil
}

func (h *LookupMessageHandler) renderResults(page *templating.PageView) (string, error) {
	var buf bytes.Buffer
	if err := h.templates.RenderResults(&buf, page); err != nil {
		return "", fmt.Errorf("failed to render results: %w", err)
	}
	return buf.String(), nil
}
