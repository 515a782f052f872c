package server

import (
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/service"
)

type StartMatchRequest struct {
	Team1Name    string `json:"team1Name" validate:"max=64"`
	Team2Name    string `json:"team2Name" validate:"max=64"`
	TotalOvers   int    `json:"totalOvers" validate:"min=0,max=50"`
	MaxWickets   int    `json:"maxWickets" validate:"min=0,max=10"`
	RotateStrike bool   `json:"rotateStrike"`
	IsTournament bool   `json:"isTournament"`
}

type SessionRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type AddRunsRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Runs      int    `json:"runs" validate:"min=0,max=6"`
}

type AddExtraRequest struct {
	SessionID string           `json:"sessionId" validate:"required"`
	Kind      domain.ExtraKind `json:"kind" validate:"required,oneof=wide no_ball"`
}

type AddWicketRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	PlayerID  string `json:"playerId"`
	HowOut    string `json:"howOut" validate:"max=64"`
}

type ChangeBowlerRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	BowlerID  string `json:"bowlerId"`
}

type MatchResponse = service.Snapshot

type CreateTournamentRequest struct {
	Name string `json:"name" validate:"max=64"`
}

type TournamentRequest struct {
	TournamentID string `json:"tournamentId" validate:"required"`
}

type AddTournamentTeamRequest struct {
	TournamentID string `json:"tournamentId" validate:"required"`
	Name         string `json:"name" validate:"max=64"`
}

type TournamentResponse struct {
	TournamentID     string   `json:"tournamentId"`
	Name             string   `json:"name"`
	Teams            []string `json:"teams"`
	CurrentSessionID string   `json:"currentSessionId,omitempty"`
}
