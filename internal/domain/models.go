package domain

import (
	"fmt"
	"slices"
)

const (
	SquadSize     = 11
	BallsPerOver  = 6
	DefaultOvers  = 10
	DefaultWicket = 10
)

type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Runs       int    `json:"runs"`
	BallsFaced int    `json:"ballsFaced"`
	IsOut      bool   `json:"isOut"`
	HowOut     string `json:"howOut,omitempty"`
}

// TeamInnings is one team's batting record. Players are kept in batting order.
type TeamInnings struct {
	Name      string   `json:"name"`
	Players   []Player `json:"players"`
	TotalRuns int      `json:"totalRuns"`
	Wickets   int      `json:"wickets"`
	Overs     int      `json:"overs"`
	Balls     int      `json:"balls"` // 0..5, legal balls in the current over
	IsBatting bool     `json:"isBatting"`
}

type MatchSettings struct {
	TotalOvers     int      `json:"totalOvers"`
	MaxWickets     int      `json:"maxWickets"`
	IsTournament   bool     `json:"isTournament"`
	TournamentName string   `json:"tournamentName,omitempty"`
	CurrentMatch   int      `json:"currentMatch,omitempty"`
	TotalMatches   int      `json:"totalMatches,omitempty"`
	Teams          []string `json:"teams,omitempty"`

	// RotateStrike swaps the batsmen on odd runs and at the end of each over.
	RotateStrike bool `json:"rotateStrike"`
}

type MatchState struct {
	Team1          TeamInnings   `json:"team1"`
	Team2          TeamInnings   `json:"team2"`
	CurrentBowler  string        `json:"currentBowler,omitempty"`
	CurrentBatsmen [2]string     `json:"currentBatsmen"` // striker first
	MatchSettings  MatchSettings `json:"matchSettings"`
	IsFirstInnings bool          `json:"isFirstInnings"`

	// IsMatchComplete blocks further balls until the next transition. It is
	// also set at the end of the first innings and cleared by TOGGLE_INNINGS.
	IsMatchComplete bool `json:"isMatchComplete"`
	Target          int  `json:"target,omitempty"`
}

func DefaultSettings() MatchSettings {
	return MatchSettings{
		TotalOvers:   DefaultOvers,
		MaxWickets:   DefaultWicket,
		CurrentMatch: 1,
		TotalMatches: 1,
	}
}

func (s MatchSettings) Validate() error {
	if s.TotalOvers < 1 {
		return fmt.Errorf("%w: total overs must be at least 1, got %d", ErrInvalidSettings, s.TotalOvers)
	}
	// an innings ends at MaxWickets-1, so one wicket would end it before the first ball
	if s.MaxWickets < 2 || s.MaxWickets > SquadSize-1 {
		return fmt.Errorf("%w: max wickets must be between 2 and %d, got %d", ErrInvalidSettings, SquadSize-1, s.MaxWickets)
	}
	return nil
}

func (s MatchSettings) TotalBalls() int {
	return s.TotalOvers * BallsPerOver
}

func (t TeamInnings) BallsBowled() int {
	return t.Overs*BallsPerOver + t.Balls
}

func (t TeamInnings) Player(id string) (Player, bool) {
	for _, p := range t.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (m MatchState) BattingTeam() TeamInnings {
	if m.Team1.IsBatting {
		return m.Team1
	}
	return m.Team2
}

func (m MatchState) BowlingTeam() TeamInnings {
	if m.Team1.IsBatting {
		return m.Team2
	}
	return m.Team1
}

// Clone returns a deep copy so callers can mutate without touching m.
func (m MatchState) Clone() MatchState {
	out := m
	out.Team1.Players = slices.Clone(m.Team1.Players)
	out.Team2.Players = slices.Clone(m.Team2.Players)
	out.MatchSettings.Teams = slices.Clone(m.MatchSettings.Teams)
	return out
}
