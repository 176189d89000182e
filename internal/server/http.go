package server

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iamsaumya/Trivia/internal/config"
	"github.com/iamsaumya/Trivia/internal/trivia"
	httperrors "github.com/iamsaumya/Trivia/pkg/http/errors"
)

// NewHTTPServer wires the trivia routes plus health and metrics endpoints.
// Method dispatch happens inside the handlers so that unsupported methods
// get the JSON 405 body the error contract requires.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, handlers *trivia.HTTPHandlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	mux.HandleFunc("/categories", handlers.Categories)
	mux.HandleFunc("/categories/{id}/questions", handlers.CategoryQuestions)
	mux.HandleFunc("/questions", handlers.Questions)
	mux.HandleFunc("/questions/{id}", handlers.DeleteQuestion)
	mux.HandleFunc("/quizzes", handlers.Quizzes)

	// Unmatched paths get the JSON 404 body rather than the mux default.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})

	handler := CORS(cfg.CORS)(Observe(logger)(mux))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler,
	}
}
