package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/constants"
	fxmodules "cricket-scorer/internal/fx"
	"cricket-scorer/internal/middleware"
	"cricket-scorer/internal/server"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	scorerServer *server.ScorerServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()

	path, handler := scorerServer.Handler()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"X-Request-ID"},
	})

	requestIDMiddleware := middleware.RequestID(logger)
	mux.Handle(path, c.Handler(requestIDMiddleware(handler)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           mux,
		ReadHeaderTimeout: constants.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Str("service", path).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			// the in-memory store goes with its last connection
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing session store")
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
