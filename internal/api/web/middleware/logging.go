package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkozyrev/sneakershop/internal/logger"
	"github.com/dkozyrev/sneakershop/internal/metrics"
)

// Logging logs every HTTP request and records its metrics.
type Logging struct {
	logger  *logger.Logger
	metrics *metrics.ServerMetrics
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger, metrics *metrics.ServerMetrics) *Logging {
	return &Logging{logger: logger, metrics: metrics}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Handle logs method, path, duration and status for each request.
func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		handler := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				handler = tmpl
			}
		}

		if l.metrics != nil {
			l.metrics.Requests.WithLabelValues(handler, http.StatusText(recorder.status)).Inc()
			l.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(duration.Milliseconds()))
		}

		l.logger.Info("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"status", recorder.status)
	})
}
