package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/chatvault/internal/transport/middleware"
)

// RateLimits is the per-minute request allowance for each route group.
// Zero disables limiting for that group.
type RateLimits struct {
	API     int
	Batch   int
	Cleanup int
}

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Health  *HealthHandler
	Chats   *ChatHandler
	Data    *DataHandler
	Metrics http.Handler // nil disables /metrics
	// MetricsPath defaults to /metrics.
	MetricsPath string

	// Global wraps the whole router (request id, logging, recovery, CORS).
	Global middleware.Middleware
	// Auth guards everything under /api.
	Auth     middleware.Middleware
	HTTPStat mux.MiddlewareFunc
	Limiter  *middleware.RateLimiter
	Limits   RateLimits
}

// NewRouter builds the HTTP handler tree.
func NewRouter(d RouterDeps) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	if d.HTTPStat != nil {
		r.Use(d.HTTPStat)
	}

	r.HandleFunc("/live", d.Health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", d.Health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", d.Health.Health).Methods(http.MethodGet)
	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, d.Metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	if d.Auth != nil {
		api.Use(mux.MiddlewareFunc(d.Auth))
	}
	if d.Limiter != nil {
		api.Use(mux.MiddlewareFunc(d.Limiter.Limit("api", d.Limits.API)))
	}

	batch := http.Handler(http.HandlerFunc(d.Chats.Batch))
	cleanup := http.Handler(http.HandlerFunc(d.Data.Cleanup))
	if d.Limiter != nil {
		batch = d.Limiter.Limit("batch", d.Limits.Batch)(batch)
		cleanup = d.Limiter.Limit("cleanup", d.Limits.Cleanup)(cleanup)
	}

	// /chats/batch must be registered before /chats/{id}.
	api.Handle("/chats/batch", batch).Methods(http.MethodPost)
	api.HandleFunc("/chats", d.Chats.List).Methods(http.MethodGet)
	api.HandleFunc("/chats", d.Chats.Create).Methods(http.MethodPost)
	api.HandleFunc("/chats/{id}", d.Chats.Get).Methods(http.MethodGet)
	api.HandleFunc("/chats/{id}", d.Chats.Rename).Methods(http.MethodPatch)
	api.HandleFunc("/chats/{id}", d.Chats.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/chats/{id}/favorite", d.Chats.ToggleFavorite).Methods(http.MethodPost)
	api.HandleFunc("/chats/{id}/protect", d.Chats.ToggleProtect).Methods(http.MethodPost)
	api.HandleFunc("/chats/{id}/messages", d.Chats.Messages).Methods(http.MethodGet)
	api.HandleFunc("/chats/{id}/messages", d.Chats.AppendMessage).Methods(http.MethodPost)

	api.HandleFunc("/data/settings", d.Data.GetSettings).Methods(http.MethodGet)
	api.HandleFunc("/data/settings", d.Data.UpdateSettings).Methods(http.MethodPut)
	api.HandleFunc("/data/quota", d.Data.Quota).Methods(http.MethodGet)
	api.Handle("/data/cleanup", cleanup).Methods(http.MethodPost)
	api.HandleFunc("/data/export", d.Data.Export).Methods(http.MethodGet)
	api.HandleFunc("/data/all", d.Data.DeleteAll).Methods(http.MethodDelete)

	if d.Global != nil {
		return d.Global(r)
	}
	return r
}
