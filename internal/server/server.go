package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"weather-mcp-client/internal/session"
	"weather-mcp-client/internal/telemetry"
)

// New creates the HTTP handler serving the weather form.
func New(client session.Client, metrics *telemetry.Metrics, gatherer prometheus.Gatherer, logger zerolog.Logger) (http.Handler, error) {
	formHandler, err := NewFormHandler(client, logger)
	if err != nil {
		return nil, err
	}

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(telemetry.HTTPMetricsMiddleware(metrics))

	// Enable CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}))

	// Add routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Get("/", formHandler.Page)
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", formHandler.Status)
		r.Get("/examples", formHandler.Examples)
		r.Post("/connect", formHandler.Connect)
		r.Post("/weather", formHandler.GetWeather)
	})

	return r, nil
}

// requestLogger logs each request through zerolog once it completes
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := middleware.GetReqID(r.Context())

			defer func() {
				logger.Debug().
					Str("request_id", t1).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Msg("Request handled")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
