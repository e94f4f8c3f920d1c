package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/yegors/wxpanel/internal/templating"
	"github.com/yegors/wxpanel/internal/weather"
	"github.com/yegors/wxpanel/internal/websocket"
	"github.com/yegors/wxpanel/pkg/logger"
)

// Lookuper runs a single weather lookup
type Lookuper interface {
	Lookup(ctx context.Context, city string, unit weather.Unit) (*weather.Report, error)
}

// Handler contains the API handlers
type Handler struct {
	lookup    Lookuper
	templates *templating.Service
	wsServer  *websocket.Server
	started   time.Time
	logger    *logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(lookup Lookuper, templates *templating.Service, wsServer *websocket.Server, logger *logger.Logger) *Handler {
	return &Handler{
		lookup:    lookup,
		templates: templates,
		wsServer:  wsServer,
		started:   time.Now(),
		logger:    logger.Named("api-handler"),
	}
}

// lookupRequest is a parsed city/unit pair
type lookupRequest struct {
	City string
	Unit weather.Unit
}

// parseLookup reads city and unit from the query string. The city is
// normalised the way the form submits it: trimmed and lowercased.
func parseLookup(r *http.Request) (lookupRequest, error) {
	q := r.URL.Query()
	unit, err := weather.ParseUnit(q.Get("unit"))
	req := lookupRequest{
		City: normaliseCity(q.Get("city")),
		Unit: unit,
	}
	if err != nil {
		req.Unit = weather.Celsius
	}
	return req, err
}

func normaliseCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// GetIndex renders the empty lookup form
func (h *Handler) GetIndex(w http.ResponseWriter, r *http.Request) {
	page := h.templates.NewPage("", weather.Celsius)
	h.writePage(w, http.StatusOK, page)
}

// GetWeatherPage runs a lookup and renders the results panel, or the form
// with a single error message
func (h *Handler) GetWeatherPage(w http.ResponseWriter, r *http.Request) {
	req, err := parseLookup(r)
	page := h.templates.NewPage(req.City, req.Unit)
	if err != nil {
		h.writePage(w, http.StatusBadRequest, h.templates.WithError(page, "Unknown temperature unit"))
		return
	}

	report, err := h.lookup.Lookup(r.Context(), req.City, req.Unit)
	if err != nil {
		status, message := h.lookupFailure(err)
		h.writePage(w, status, h.templates.WithError(page, message))
		return
	}

	h.writePage(w, http.StatusOK, h.templates.WithReport(page, report))
}

// GetWeatherData runs a lookup and returns the report as JSON
func (h *Handler) GetWeatherData(w http.ResponseWriter, r *http.Request) {
	req, err := parseLookup(r)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown temperature unit"})
		return
	}

	report, err := h.lookup.Lookup(r.Context(), req.City, req.Unit)
	if err != nil {
		status, message := h.lookupFailure(err)
		WriteJSON(w, status, map[string]string{"error": message})
		return
	}

	WriteJSON(w, http.StatusOK, report)
}

// GetHealth returns the health status of the API
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":            "ok",
		"uptime":            time.Since(h.started).Round(time.Second).String(),
		"websocket_clients": h.wsServer.ClientCount(),
		"templates":         h.templates.GetCacheStats(),
	}

	WriteJSON(w, http.StatusOK, response)
}

// lookupFailure maps a lookup error to a status code and one user-facing message
func (h *Handler) lookupFailure(err error) (int, string) {
	var lookupErr *weather.LookupError
	if !errors.As(err, &lookupErr) {
		h.logger.Error("Unexpected lookup failure", logger.Error(err))
		return http.StatusInternalServerError, "Something went wrong"
	}

	switch {
	case lookupErr.Stage == weather.StageInput:
		return http.StatusBadRequest, lookupErr.Message
	case lookupErr.NotFound():
		return http.StatusNotFound, lookupErr.Message
	default:
		return http.StatusBadGateway, lookupErr.Message
	}
}

func (h *Handler) writePage(w http.ResponseWriter, status int, page *templating.PageView) {
	var buf bytes.Buffer
	if err := h.templates.RenderPage(&buf, page); err != nil {
		h.logger.Error("Failed to render page", logger.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
