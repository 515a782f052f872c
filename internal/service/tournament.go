package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"

	"github.com/gosimple/slug"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTournamentName = "Tournament"
	idSuffixAlphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// TournamentService registers teams and starts the opening match. Later
// fixtures are not scheduled.
type TournamentService struct {
	repo   *repository.TournamentRepository
	scorer *ScorerService
	logger zerolog.Logger
}

func NewTournamentService(repo *repository.TournamentRepository, scorer *ScorerService, logger zerolog.Logger) *TournamentService {
	return &TournamentService{repo: repo, scorer: scorer, logger: logger}
}

func (s *TournamentService) Create(ctx context.Context, name string) (*domain.Tournament, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultTournamentName
	}

	suffix, err := gonanoid.Generate(idSuffixAlphabet, constants.TournamentSuffixLen)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}

	now := s.scorer.now()
	t := &domain.Tournament{
		ID:        slug.Make(name) + "-" + suffix,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error().Err(err).Str("name", name).Msg("failed to create tournament")
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Info().Str("tournament_id", t.ID).Str("name", name).Msg("tournament created")
	return t, nil
}

// Get loads the tournament and its teams.
func (s *TournamentService) Get(ctx context.Context, id string) (*domain.Tournament, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var t *domain.Tournament
	var teams []string

	g.Go(func() error {
		var err error
		t, err = s.repo.Get(gCtx, id)
		return err
	})

	g.Go(func() error {
		var err error
		teams, err = s.repo.Teams(gCtx, id)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.Teams = teams
	return t, nil
}

func (s *TournamentService) AddTeam(ctx context.Context, id, name string) (*domain.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyTeamName
	}

	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if slices.Contains(t.Teams, name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTeam, name)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.repo.AddTeam(ctx, id, name, constants.MaxTournamentTeams, s.scorer.now()); err != nil {
		s.logger.Warn().Err(err).Str("tournament_id", id).Str("team", name).Msg("failed to add team")
		return nil, err
	}

	s.logger.Info().Str("tournament_id", id).Str("team", name).Int("teams", len(t.Teams)+1).Msg("team added")
	t.Teams = append(t.Teams, name)
	return t, nil
}

// StartMatch starts the first fixture: the first two registered teams.
func (s *TournamentService) StartMatch(ctx context.Context, id string) (*Snapshot, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(t.Teams) < constants.MinTournamentTeams {
		return nil, domain.ErrNotEnoughTeams
	}

	snap, err := s.scorer.StartMatch(ctx, StartOptions{
		Team1Name:      t.Teams[0],
		Team2Name:      t.Teams[1],
		IsTournament:   true,
		TournamentID:   t.ID,
		TournamentName: t.Name,
		Teams:          t.Teams,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.repo.SetCurrentSession(ctx, id, snap.SessionID, s.scorer.now()); err != nil {
		s.logger.Error().Err(err).Str("tournament_id", id).Msg("failed to record tournament session")
		return nil, fmt.Errorf("failed to record tournament session: %w", err)
	}

	s.logger.Info().
		Str("tournament_id", id).
		Str("session_id", snap.SessionID).
		Str("team1", t.Teams[0]).
		Str("team2", t.Teams[1]).
		Msg("tournament match started")
	return snap, nil
}
