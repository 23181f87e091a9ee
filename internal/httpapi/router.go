// Package httpapi exposes results, reports, places and the catalog over
// JSON/HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/ecocafe/internal/catalog"
	"github.com/alexanderramin/ecocafe/internal/places"
	"github.com/alexanderramin/ecocafe/internal/service"
	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router.
type Container struct {
	Catalog     *catalog.Catalog
	Submissions service.SubmissionService
	Reports     service.ReportService
	Map         service.MapService
	Places      places.Searcher
	Logger      *slog.Logger
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{c: c, log: logger}

	r.Use(corsMiddleware)
	r.Use(requestLogger(logger))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/catalog", h.getCatalog).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/results", h.listPoints).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/results", h.submitResult).Methods(http.MethodPost, http.MethodOptions)
	v1.HandleFunc("/tags", h.listTags).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/reports", h.listReports).Methods(http.MethodGet, http.MethodOptions)
	v1.HandleFunc("/reports", h.submitReport).Methods(http.MethodPost, http.MethodOptions)
	v1.HandleFunc("/places", h.searchPlaces).Methods(http.MethodGet, http.MethodOptions)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.InfoContext(r.Context(), "http_request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}
