package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/db"
	"cricket-scorer/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type SessionRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewSessionRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *SessionRepository {
	return &SessionRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Create stores a new session, generating its id when empty.
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		id, err := gonanoid.New(constants.SessionIDLength)
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		session.ID = id
	}

	state, err := json.Marshal(session.State)
	if err != nil {
		return fmt.Errorf("failed to encode match state: %w", err)
	}

	var tournamentID *string
	if session.TournamentID != "" {
		tournamentID = &session.TournamentID
	}

	return r.queries.CreateMatchSession(ctx, db.CreateMatchSessionParams{
		ID:           session.ID,
		State:        string(state),
		IsTournament: session.IsTournament,
		TournamentID: tournamentID,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	})
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	row, err := r.queries.GetMatchSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	var state domain.MatchState
	if err := json.Unmarshal([]byte(row.State), &state); err != nil {
		r.logger.Error().Err(err).Str("session_id", id).Msg("stored match state is corrupt")
		return nil, fmt.Errorf("failed to decode match state: %w", err)
	}

	session := &domain.Session{
		ID:           row.ID,
		State:        state,
		IsTournament: row.IsTournament,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.TournamentID != nil {
		session.TournamentID = *row.TournamentID
	}
	return session, nil
}

func (r *SessionRepository) SaveState(ctx context.Context, id string, state domain.MatchState, updatedAt time.Time) error {
	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode match state: %w", err)
	}

	n, err := r.queries.UpdateMatchSessionState(ctx, db.UpdateMatchSessionStateParams{
		State:     string(encoded),
		UpdatedAt: updatedAt,
		ID:        id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return nil
}

// DeleteIdle removes sessions not touched since cutoff and unlinks any
// tournament still pointing at one of them.
func (r *SessionRepository) DeleteIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()
	q := r.queries.WithTx(tx)

	n, err := q.DeleteMatchSessionsIdleSince(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete idle sessions: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	unlinked, err := q.ClearDanglingTournamentSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to unlink swept tournament sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session sweep: %w", err)
	}

	if unlinked > 0 {
		r.logger.Debug().Int64("tournaments", unlinked).Msg("cleared swept tournament sessions")
	}
	return n, nil
}

func (r *SessionRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountMatchSessions(ctx)
}
