package db

import (
	"time"
)

type MatchSession struct {
	ID           string
	State        string
	IsTournament bool
	TournamentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Tournament struct {
	ID               string
	Name             string
	CurrentSessionID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type TournamentTeam struct {
	TournamentID string
	Position     int64
	Name         string
	CreatedAt    time.Time
}
