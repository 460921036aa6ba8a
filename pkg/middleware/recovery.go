package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// panicBody matches the service's standard error envelope; the middleware
// cannot import httputil without a cycle, so the envelope is spelled out.
const panicBody = `{"error":{"code":"INTERNAL_ERROR","message":"Something went wrong. Please try again."}}`

// Recovery converts a handler panic into a 500 response with the standard
// error envelope instead of tearing down the connection. The panic value and
// stack are logged; the client sees only the generic message.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(panicBody + "\n"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
