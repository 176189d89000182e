package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iamsaumya/Trivia/internal/config"
	"github.com/iamsaumya/Trivia/internal/db/repository"
	"github.com/iamsaumya/Trivia/internal/logging"
	"github.com/iamsaumya/Trivia/internal/server"
	"github.com/iamsaumya/Trivia/internal/trivia"
)

// Application aggregates shared infrastructure (DB pool, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool *pgxpool.Pool
	http *http.Server
}

// New bootstraps config, logger, Postgres and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	questionRepo := repository.NewQuestionRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)

	triviaSvc := trivia.NewService(questionRepo, categoryRepo, logger)
	triviaHandlers := trivia.NewHTTPHandlers(triviaSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, triviaHandlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()

	a.logger.Info().Msg("shutdown complete")
	return nil
}
