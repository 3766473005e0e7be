package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the id assigned to the request by LoggingMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggingMiddleware returns a middleware that writes one log entry per request.
// An incoming X-Request-ID is kept, otherwise a new one is generated. Server
// errors are logged at error level, client errors at warn.
func LoggingMiddleware(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				reqID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, reqID)

			rw := newResponseWriter(w)
			r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID))

			next.ServeHTTP(rw, r)

			fields := []any{
				"request_id", reqID,
				"method", r.Method,
				"uri", r.RequestURI,
				"route", routePattern(r),
				"status", rw.statusCode,
				"size", rw.size,
				"duration", time.Since(start),
			}

			switch {
			case rw.statusCode >= http.StatusInternalServerError:
				log.Errorw("request", fields...)
			case rw.statusCode >= http.StatusBadRequest:
				log.Warnw("request", fields...)
			default:
				log.Infow("request", fields...)
			}
		})
	}
}

// routePattern returns the matched chi pattern such as /posts/{id}, or "" outside a chi router.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

// responseWriter records the status code and body size of a response.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
