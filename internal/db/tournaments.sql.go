package db

import (
	"context"
	"time"
)

const createTournament = `
INSERT INTO tournaments (id, name, created_at, updated_at)
VALUES (?, ?, ?, ?)
`

type CreateTournamentParams struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateTournament(ctx context.Context, arg CreateTournamentParams) error {
	_, err := q.db.ExecContext(ctx, createTournament, arg.ID, arg.Name, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getTournament = `
SELECT id, name, current_session_id, created_at, updated_at
FROM tournaments
WHERE id = ?
`

func (q *Queries) GetTournament(ctx context.Context, id string) (Tournament, error) {
	row := q.db.QueryRowContext(ctx, getTournament, id)
	var i Tournament
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.CurrentSessionID,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const setTournamentSession = `
UPDATE tournaments
SET current_session_id = ?, updated_at = ?
WHERE id = ?
`

type SetTournamentSessionParams struct {
	CurrentSessionID *string
	UpdatedAt        time.Time
	ID               string
}

func (q *Queries) SetTournamentSession(ctx context.Context, arg SetTournamentSessionParams) error {
	_, err := q.db.ExecContext(ctx, setTournamentSession, arg.CurrentSessionID, arg.UpdatedAt, arg.ID)
	return err
}

const addTournamentTeam = `
INSERT INTO tournament_teams (tournament_id, position, name, created_at)
VALUES (?, (SELECT COUNT(*) FROM tournament_teams WHERE tournament_id = ?), ?, ?)
`

type AddTournamentTeamParams struct {
	TournamentID string
	Name         string
	CreatedAt    time.Time
}

func (q *Queries) AddTournamentTeam(ctx context.Context, arg AddTournamentTeamParams) error {
	_, err := q.db.ExecContext(ctx, addTournamentTeam,
		arg.TournamentID,
		arg.TournamentID,
		arg.Name,
		arg.CreatedAt,
	)
	return err
}

const countTournamentTeams = `
SELECT COUNT(*) FROM tournament_teams
WHERE tournament_id = ?
`

func (q *Queries) CountTournamentTeams(ctx context.Context, tournamentID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTournamentTeams, tournamentID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const clearDanglingTournamentSessions = `
UPDATE tournaments
SET current_session_id = NULL
WHERE current_session_id IS NOT NULL
  AND current_session_id NOT IN (SELECT id FROM match_sessions)
`

func (q *Queries) ClearDanglingTournamentSessions(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, clearDanglingTournamentSessions)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listTournamentTeams = `
SELECT tournament_id, position, name, created_at
FROM tournament_teams
WHERE tournament_id = ?
ORDER BY position
`

func (q *Queries) ListTournamentTeams(ctx context.Context, tournamentID string) ([]TournamentTeam, error) {
	rows, err := q.db.QueryContext(ctx, listTournamentTeams, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TournamentTeam
	for rows.Next() {
		var i TournamentTeam
		if err := rows.Scan(
			&i.TournamentID,
			&i.Position,
			&i.Name,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
