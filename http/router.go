package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Simulations    *SimulationHandler
	Analyses       *AnalysisHandler
	Limiter        *RateLimiter
	AllowedOrigins []string
	Log            zerolog.Logger
}

// NewRouter wires every endpoint. Only analysis submission is rate limited
// since it is the one that reaches the external model.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Location", "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, cfg.Log)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/spot-price", cfg.Simulations.SpotPrice)

		r.Route("/simulations", func(r chi.Router) {
			r.Post("/", cfg.Simulations.Simulate)
			r.Get("/defaults", cfg.Simulations.Defaults)
			r.Get("/chart.png", cfg.Simulations.Chart)
			r.Post("/scenarios", cfg.Simulations.Scenarios)
			r.Post("/compare", cfg.Simulations.Compare)
		})

		r.Route("/analyses", func(r chi.Router) {
			r.With(RateLimitMiddleware(cfg.Limiter)).Post("/", cfg.Analyses.Submit)
			r.Get("/{id}", cfg.Analyses.Get)
		})
	})

	return r
}

// RequestLogger logs one line per request once it has been served.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request served")
		})
	}
}
