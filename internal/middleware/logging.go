// Package middleware holds HTTP middleware shared by skyplan servers.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// LogErrors logs every request answered with a 5xx status, and 4xx at debug.
func LogErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", time.Since(start),
			"requestID", chimiddleware.GetReqID(r.Context()),
		}

		switch {
		case status >= http.StatusInternalServerError:
			slog.ErrorContext(r.Context(), "request failed", attrs...)
		case status >= http.StatusBadRequest:
			slog.DebugContext(r.Context(), "request rejected", attrs...)
		}
	})
}
