package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cricket-scorer/internal/db"
	"cricket-scorer/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type TournamentRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTournamentRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TournamentRepository {
	return &TournamentRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *TournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	return r.queries.CreateTournament(ctx, db.CreateTournamentParams{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	})
}

// Get returns the tournament row without its teams.
func (r *TournamentRepository) Get(ctx context.Context, id string) (*domain.Tournament, error) {
	row, err := r.queries.GetTournament(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	t := &domain.Tournament{
		ID:        row.ID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.CurrentSessionID != nil {
		t.CurrentSessionID = *row.CurrentSessionID
	}
	return t, nil
}

// Teams lists team names in registration order.
func (r *TournamentRepository) Teams(ctx context.Context, id string) ([]string, error) {
	rows, err := r.queries.ListTournamentTeams(ctx, id)
	if err != nil {
		return nil, err
	}

	teams := make([]string, len(rows))
	for i, row := range rows {
		teams[i] = row.Name
	}
	return teams, nil
}

// AddTeam appends name to the tournament's teams unless it already holds
// limit teams. The count and the insert share one transaction.
func (r *TournamentRepository) AddTeam(ctx context.Context, id, name string, limit int, at time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	q := r.queries.WithTx(tx)

	n, err := q.CountTournamentTeams(ctx, id)
	if err != nil {
		return err
	}
	if n >= int64(limit) {
		return fmt.Errorf("%w: %d teams", domain.ErrTooManyTeams, n)
	}

	err = q.AddTournamentTeam(ctx, db.AddTournamentTeamParams{
		TournamentID: id,
		Name:         name,
		CreatedAt:    at,
	})

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return fmt.Errorf("%w: %s", domain.ErrTournamentNotFound, id)
		}
		return fmt.Errorf("%w: %s", domain.ErrDuplicateTeam, name)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TournamentRepository) SetCurrentSession(ctx context.Context, id, sessionID string, at time.Time) error {
	return r.queries.SetTournamentSession(ctx, db.SetTournamentSessionParams{
		CurrentSessionID: &sessionID,
		UpdatedAt:        at,
		ID:               id,
	})
}
