package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/rs/zerolog"
)

type contextKey string

const LoggerKey contextKey = "logger"

// GetLogger extracts the request-scoped logger from the request context,
// falling back to fallback when none was attached.
func GetLogger(r *http.Request, fallback zerolog.Logger) zerolog.Logger {
	if val, ok := r.Context().Value(LoggerKey).(zerolog.Logger); ok {
		return val
	}
	return fallback
}

// RequestLogMiddleware attaches a logger carrying the method and path to the
// request context and logs each request once it has been handled.
func RequestLogMiddleware(log zerolog.Logger) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		start := time.Now()
		reqLog := log.With().
			Str("method", e.Request.Method).
			Str("path", e.Request.URL.Path).
			Logger()

		ctx := context.WithValue(e.Request.Context(), LoggerKey, reqLog)
		e.Request = e.Request.WithContext(ctx)

		err := e.Next()

		entry := reqLog.Debug()
		if err != nil {
			entry = reqLog.Warn().Err(err)
		}
		entry.Int("status", e.Status()).Dur("duration", time.Since(start)).Msg("request")
		return err
	}
}
