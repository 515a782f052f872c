package fx

import (
	"context"
	"database/sql"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/database"
	"cricket-scorer/internal/db"
	"cricket-scorer/internal/logger"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/server"
	"cricket-scorer/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// RunJanitor ties the idle-session sweeper to the app lifecycle.
func RunJanitor(lc fx.Lifecycle, j *service.SessionJanitor) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			j.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return j.Stop()
		},
	})
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewSessionRepository),
	fx.Provide(repository.NewTournamentRepository),
	// svc
	fx.Provide(service.NewScorerService),
	fx.Provide(service.NewTournamentService),
	fx.Provide(service.NewSessionJanitor),
	fx.Invoke(RunJanitor),
	// server
	fx.Provide(server.NewScorerServer),
)
