package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/foodgram/pkg/logger"
)

// RequestLogger writes one structured completion line per request,
// correlated with the request id and the active trace.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ctx := c.UserContext()
		var event *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error(ctx)
		case status >= fiber.StatusBadRequest:
			event = logger.Warn(ctx)
		default:
			event = logger.Info(ctx)
		}

		if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
			event = event.Str("trace_id", span.SpanContext().TraceID().String())
		}
		if requestID, ok := c.Locals("requestid").(string); ok {
			event = event.Str("request_id", requestID)
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request completed")

		return err
	}
}
