package middleware

import (
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/stays-web/internal/observability"
)

// Logger emits a structured log per request and makes a request-scoped logger available
// through observability.FromContext.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rid := chiMid.GetReqID(r.Context())
			logger := base
			ctx := r.Context()
			if rid != "" {
				logger = logger.With(zap.String("requestId", rid))
				ctx = WithRequestID(ctx, rid)
			}
			if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
				logger = logger.With(zap.String("traceId", sc.TraceID().String()))
			}
			ctx = observability.WithLogger(ctx, logger)

			// wrap writer to capture status
			rw := NewResponseRecorder(w)
			next.ServeHTTP(rw, r.WithContext(ctx))

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remoteIp", clientIP(r)),
				zap.Bool("htmx", r.Header.Get("HX-Request") == "true"),
			}
			switch {
			case rw.Status() >= 500:
				logger.Error("request", fields...)
			case rw.Status() >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
		})
	}
}

func clientIP(r *http.Request) string {
	// chi's RealIP has already folded X-Forwarded-For / X-Real-IP into RemoteAddr
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
