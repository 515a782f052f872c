package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"
	"cricket-scorer/internal/stats"

	"github.com/rs/zerolog"
)

type AlertKind string

const (
	AlertInningsComplete AlertKind = "innings_complete"
	AlertMatchComplete   AlertKind = "match_complete"
)

type Alert struct {
	Kind    AlertKind `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

// Snapshot is a session's state together with everything derived from it.
type Snapshot struct {
	SessionID  string            `json:"sessionId"`
	State      domain.MatchState `json:"state"`
	Scoreboard stats.Scoreboard  `json:"scoreboard"`
	Result     *domain.Result    `json:"result,omitempty"`
	Alerts     []Alert           `json:"alerts,omitempty"`
}

type StartOptions struct {
	Team1Name    string
	Team2Name    string
	TotalOvers   int // zero keeps the configured default
	MaxWickets   int // zero keeps the configured default
	RotateStrike bool

	IsTournament   bool
	TournamentID   string
	TournamentName string
	Teams          []string
}

// ScorerService owns the live match state of every session. It is the only
// writer: each dispatch loads, reduces and stores under one lock.
type ScorerService struct {
	sessions *repository.SessionRepository
	defaults domain.MatchSettings
	ttl      time.Duration
	logger   zerolog.Logger

	mu  sync.Mutex
	now func() time.Time
}

func NewScorerService(sessions *repository.SessionRepository, cfg *config.Config, logger zerolog.Logger) *ScorerService {
	return &ScorerService{
		sessions: sessions,
		defaults: cfg.MatchDefaults(),
		ttl:      cfg.SessionTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ScorerService) StartMatch(ctx context.Context, opts StartOptions) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	settings := s.defaults
	if opts.TotalOvers != 0 {
		settings.TotalOvers = opts.TotalOvers
	}
	if opts.MaxWickets != 0 {
		settings.MaxWickets = opts.MaxWickets
	}
	settings.RotateStrike = opts.RotateStrike
	settings.IsTournament = opts.IsTournament
	settings.TournamentName = opts.TournamentName
	settings.Teams = opts.Teams
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	state := newMatch(settings, opts.Team1Name, opts.Team2Name)

	now := s.now()
	session := &domain.Session{
		State:        state,
		IsTournament: opts.IsTournament,
		TournamentID: opts.TournamentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sessions.Create(ctx, session); err != nil {
		s.logger.Error().Err(err).Msg("failed to create session")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Bool("tournament", opts.IsTournament).
		Int("total_overs", settings.TotalOvers).
		Int("max_wickets", settings.MaxWickets).
		Msg("match started")
	return newSnapshot(session.ID, state), nil
}

func (s *ScorerService) Get(ctx context.Context, id string) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return newSnapshot(session.ID, session.State), nil
}

// Dispatch applies one action to a session's match.
func (s *ScorerService) Dispatch(ctx context.Context, id string, action domain.Action) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if action.Type == domain.ActionAddWicket && action.HowOut == "" {
		action.HowOut = constants.DefaultHowOut
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var next domain.MatchState
	if action.Type == domain.ActionResetMatch {
		next = restartMatch(session.State)
	} else if next, err = domain.Reduce(session.State, action); err != nil {
		s.logger.Warn().Err(err).Str("session_id", id).Str("action", string(action.Type)).Msg("action rejected")
		return nil, err
	}

	if err := s.sessions.SaveState(ctx, id, next, s.now()); err != nil {
		s.logger.Error().Err(err).Str("session_id", id).Msg("failed to save match state")
		return nil, fmt.Errorf("failed to save match state: %w", err)
	}

	batting := next.BattingTeam()
	s.logger.Debug().
		Str("session_id", id).
		Str("action", string(action.Type)).
		Int("runs", batting.TotalRuns).
		Int("wickets", batting.Wickets).
		Int("balls_bowled", batting.BallsBowled()).
		Bool("complete", next.IsMatchComplete).
		Msg("action applied")
	return newSnapshot(id, next), nil
}

// SweepIdle drops sessions nobody has touched within the configured TTL.
func (s *ScorerService) SweepIdle(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions.DeleteIdle(ctx, s.now().Add(-s.ttl))
}

// newMatch builds a fresh state, keeping the placeholder team names for
// blank ones.
func newMatch(settings domain.MatchSettings, team1, team2 string) domain.MatchState {
	state := domain.NewMatchState(settings)
	if name := strings.TrimSpace(team1); name != "" {
		state.Team1.Name = name
	}
	if name := strings.TrimSpace(team2); name != "" {
		state.Team2.Name = name
	}
	return state
}

// restartMatch resets a session's match to its first ball under the settings
// and team names it was started with.
func restartMatch(prev domain.MatchState) domain.MatchState {
	settings := prev.MatchSettings
	settings.Teams = slices.Clone(settings.Teams)
	return newMatch(settings, prev.Team1.Name, prev.Team2.Name)
}

func newSnapshot(id string, state domain.MatchState) *Snapshot {
	snap := &Snapshot{
		SessionID:  id,
		State:      state,
		Scoreboard: stats.NewScoreboard(state),
		Alerts:     alertsFor(state),
	}
	if res, ok := domain.MatchResult(state); ok {
		snap.Result = &res
	}
	return snap
}

func alertsFor(state domain.MatchState) []Alert {
	if !state.IsMatchComplete {
		return nil
	}

	batting, bowling := state.BattingTeam(), state.BowlingTeam()
	if state.IsFirstInnings {
		return []Alert{{
			Kind:  AlertInningsComplete,
			Title: "Innings Complete",
			Message: fmt.Sprintf("End of %s's innings. %s needs %d runs to win.",
				batting.Name, bowling.Name, batting.TotalRuns+1),
		}}
	}

	res, ok := domain.MatchResult(state)
	if !ok {
		return nil
	}
	msg := "Match tied"
	if !res.Tied {
		msg = fmt.Sprintf("%s won the match!", res.Winner)
	}
	return []Alert{{Kind: AlertMatchComplete, Title: "Match Complete", Message: msg}}
}
