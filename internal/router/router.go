package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shaibs3/election-api/internal/telemetry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Handler is implemented by every resource handler mounted on the router
type Handler interface {
	RegisterRoutes(router *mux.Router, logger *zap.Logger)
}

// Router represents the HTTP router
type Router struct {
	router    *mux.Router
	limiter   *rate.Limiter
	telemetry *telemetry.Telemetry
	logger    *zap.Logger
}

// NewRouter creates a router with the operational endpoints, the middleware
// chain and the routes of every handler. A nil limiter or telemetry disables
// the corresponding middleware.
func NewRouter(limiter *rate.Limiter, tel *telemetry.Telemetry, logger *zap.Logger, handlers []Handler) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		limiter:   limiter,
		telemetry: tel,
		logger:    logger.Named("router"),
	}

	// Unmatched paths and methods both answer 404 with an empty body
	r.router.NotFoundHandler = http.HandlerFunc(notFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	r.router.Use(requestIDMiddleware)
	r.router.Use(r.loggingMiddleware)
	if tel != nil {
		r.router.Use(newMetricsMiddleware(tel.Meter, r.logger))
	}
	if limiter != nil {
		r.router.Use(r.rateLimitMiddleware)
	}

	r.router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	if tel != nil {
		r.router.Handle("/metrics", tel.Handler).Methods(http.MethodGet)
	}

	for _, h := range handlers {
		h.RegisterRoutes(r.router, logger)
	}

	return r
}

// CreateServer builds an HTTP server serving this router on addr
func (r *Router) CreateServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
