package domain

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrEmptyTeamName      = errors.New("team name cannot be empty")
	ErrDuplicateTeam      = errors.New("team already added")
	ErrNotEnoughTeams     = errors.New("add at least 2 teams to start the tournament")
	ErrTooManyTeams       = errors.New("tournament is full")
)

// Session is one scorer's live match. It exists only for the lifetime of
// the process.
type Session struct {
	ID           string
	State        MatchState
	IsTournament bool
	TournamentID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Tournament struct {
	ID               string
	Name             string
	Teams            []string
	CurrentSessionID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
