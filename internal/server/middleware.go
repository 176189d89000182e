package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iamsaumya/Trivia/internal/config"
	"github.com/iamsaumya/Trivia/internal/logging"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// CORS stamps the cross-origin headers on every response and short-circuits
// OPTIONS preflight requests.
func CORS(cfg config.CORS) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigin)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Observe assigns a request id, attaches a request-scoped logger to the
// context, and records request metrics plus an access log line.
func Observe(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-ID", requestID)

			reqLogger := logger.With().
				Str("request_id", requestID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()

			next.ServeHTTP(recorder, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))

			duration := time.Since(start)
			observeRequest(r.Method, r.URL.Path, recorder.status, duration)
			reqLogger.Info().
				Int("status", recorder.status).
				Dur("duration", duration).
				Msg("request handled")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
