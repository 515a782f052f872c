package db

import (
	"context"
	"time"
)

const createMatchSession = `
INSERT INTO match_sessions (id, state, is_tournament, tournament_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateMatchSessionParams struct {
	ID           string
	State        string
	IsTournament bool
	TournamentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateMatchSession(ctx context.Context, arg CreateMatchSessionParams) error {
	_, err := q.db.ExecContext(ctx, createMatchSession,
		arg.ID,
		arg.State,
		arg.IsTournament,
		arg.TournamentID,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getMatchSession = `
SELECT id, state, is_tournament, tournament_id, created_at, updated_at
FROM match_sessions
WHERE id = ?
`

func (q *Queries) GetMatchSession(ctx context.Context, id string) (MatchSession, error) {
	row := q.db.QueryRowContext(ctx, getMatchSession, id)
	var i MatchSession
	err := row.Scan(
		&i.ID,
		&i.State,
		&i.IsTournament,
		&i.TournamentID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateMatchSessionState = `
UPDATE match_sessions
SET state = ?, updated_at = ?
WHERE id = ?
`

type UpdateMatchSessionStateParams struct {
	State     string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateMatchSessionState(ctx context.Context, arg UpdateMatchSessionStateParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateMatchSessionState, arg.State, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteMatchSessionsIdleSince = `
DELETE FROM match_sessions
WHERE updated_at < ?
`

func (q *Queries) DeleteMatchSessionsIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMatchSessionsIdleSince, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countMatchSessions = `
SELECT COUNT(*) FROM match_sessions
`

func (q *Queries) CountMatchSessions(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMatchSessions)
	var count int64
	err := row.Scan(&count)
	return count, err
}
