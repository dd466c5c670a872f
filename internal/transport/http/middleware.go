package httptransport

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

type contextKeyRequestTime struct{}
type contextKeyRequestID struct{}
type contextKeyDevice struct{}

// RequestTime captures the current time at the start of the request and
// stores it in the context, so the attempt pipeline and the activity throttle
// all see the same "now" for one request.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyRequestTime{}, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestTimeFrom retrieves the request-scoped time from context, falling
// back to time.Now for non-HTTP callers.
func RequestTimeFrom(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithRequestTime injects a specific time into a context. Used by tests that
// bypass the middleware chain.
func WithRequestTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}

// RequestID adds a unique request ID to the context and response headers.
// A client-provided X-Request-ID is honored, otherwise a new UUID is issued.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), contextKeyRequestID{}, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID{}).(string); ok {
		return id
	}
	return ""
}

// DeviceInfo summarizes the client platform parsed from the User-Agent.
type DeviceInfo struct {
	Platform string
	OS       string
	Mobile   bool
	Bot      bool
}

// Device parses the User-Agent header once per request and stores the result
// in the context for handlers and access logs.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		info := DeviceInfo{
			Platform: ua.Platform(),
			OS:       ua.OS(),
			Mobile:   ua.Mobile(),
			Bot:      ua.Bot(),
		}
		ctx := context.WithValue(r.Context(), contextKeyDevice{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDeviceInfo retrieves the parsed device info from the context.
func GetDeviceInfo(ctx context.Context) DeviceInfo {
	if info, ok := ctx.Value(contextKeyDevice{}).(DeviceInfo); ok {
		return info
	}
	return DeviceInfo{}
}

// Recovery recovers from panics and returns a 500, preventing server crashes.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"stack", string(debug.Stack()),
						"path", r.URL.Path,
						"method", r.Method,
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// Logger logs HTTP requests with method, path, status, duration and device.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			device := GetDeviceInfo(r.Context())
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", GetRequestID(r.Context()),
				"remote_addr", r.RemoteAddr,
				"device_os", device.OS,
				"device_mobile", device.Mobile,
			)
		})
	}
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "keygate_http_request_duration_seconds",
	Help:    "HTTP request latency by method, path and status",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "path", "status"})

// RequestMetrics records per-request latency. Paths here are the static route
// set of this daemon, so label cardinality stays bounded.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		requestDuration.WithLabelValues(
			r.Method,
			r.URL.Path,
			strconv.Itoa(wrapped.statusCode),
		).Observe(time.Since(start).Seconds())
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RateLimit applies a per-client-IP token bucket in front of the attempt
// endpoints. This is coarse transport protection; the real brute-force
// defense is the lockout policy behind it.
func RateLimit(rps rate.Limit, burst int) func(http.Handler) http.Handler {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[ip]; ok {
			return l
		}
		l := rate.NewLimiter(rps, burst)
		limiters[ip] = l
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiterFor(ip).Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout wraps the handler with a timeout.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request Timeout")
	}
}
