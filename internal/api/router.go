package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yegors/wxpanel/internal/templating"
	"github.com/yegors/wxpanel/internal/websocket"
	"github.com/yegors/wxpanel/pkg/logger"
)

// Router wires handlers to routes
type Router struct {
	handler   *Handler
	wsServer  *websocket.Server
	staticDir string
	logger    *logger.Logger
}

// NewRouter creates a router and registers the websocket lookup handler
func NewRouter(lookup Lookuper, templates *templating.Service, wsServer *websocket.Server, staticDir string, logger *logger.Logger) *Router {
	wsServer.SetMessageHandler(NewLookupMessageHandler(lookup, templates, logger))

	return &Router{
		handler:   NewHandler(lookup, templates, wsServer, logger),
		wsServer:  wsServer,
		staticDir: staticDir,
		logger:    logger.Named("router"),
	}
}

// Routes returns the HTTP handler for the whole application
func (rt *Router) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(rt.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", rt.handler.GetIndex)
	r.Get("/weather", rt.handler.GetWeatherPage)
	r.Get("/ws", rt.wsServer.HandleConnection)

	r.Route("/api", func(r chi.Router) {
		r.Get("/weather", rt.handler.GetWeatherData)
		r.Get("/health", rt.handler.GetHealth)
	})

	r.Handle("/static/*", http.StripPrefix("/static", NewStaticFileHandler(rt.staticDir, rt.logger)))

	return r
}

// requestLogger logs each request once it completes
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		rt.logger.Debug("HTTP request",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", ww.Status()),
			logger.Int("bytes", ww.BytesWritten()),
			logger.Duration("duration", time.Since(start)),
			logger.String("request_id", middleware.GetReqID(r.Context())))
	})
}
