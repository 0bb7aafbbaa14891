package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/foodgram/pkg/logger"
)

// MiddlewareConfig toggles the observability middlewares.
type MiddlewareConfig struct {
	EnableLogging bool
	EnableTracing bool
}

func DefaultMiddlewareConfig() MiddlewareConfig {
	return MiddlewareConfig{EnableLogging: true, EnableTracing: true}
}

// RegisterMiddlewares installs tracing and request logging on the router.
// Tracing runs first so log lines carry the trace id.
func RegisterMiddlewares(router *mux.Router, config MiddlewareConfig) {
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "user-service.http")
		})
	}
	if config.EnableLogging {
		router.Use(requestLogging)
	}
}

// requestLogging writes one structured line per completed request.
func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(sw, r)

		event := logger.Info(r.Context())
		if sw.statusCode >= http.StatusBadRequest {
			event = logger.Warn(r.Context())
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.statusCode).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("request completed")
	})
}
