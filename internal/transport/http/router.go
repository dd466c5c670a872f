package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires the public endpoints with the middleware stack. The attempt
// endpoint additionally sits behind a per-IP token bucket; the lockout policy
// is the real defense, the bucket just keeps request floods off the bcrypt
// verifier.
func NewRouter(h *Handler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(Recovery(logger))
	r.Use(RequestID)
	r.Use(RequestTime)
	r.Use(Device)
	r.Use(Logger(logger))
	r.Use(RequestMetrics)
	r.Use(Timeout(10 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(RateLimit(rate.Limit(10), 20))
			r.Post("/attempt", h.HandleAttempt)
		})
		r.Post("/reset", h.HandleReset)
		r.Get("/status", h.HandleStatus)
	})

	return r
}
