package server

import (
	"context"
	"net/http"

	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/service"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const ScorerServicePath = "/cricket.v1.ScorerService/"

type ScorerServer struct {
	scorer      *service.ScorerService
	tournaments *service.TournamentService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewScorerServer(scorer *service.ScorerService, tournaments *service.TournamentService, logger zerolog.Logger) *ScorerServer {
	return &ScorerServer{
		scorer:      scorer,
		tournaments: tournaments,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Handler returns the service path prefix and the handler serving it.
func (s *ScorerServer) Handler() (string, http.Handler) {
	mux := http.NewServeMux()
	opts := connect.WithCodec(jsonCodec{})

	unary(mux, "StartMatch", s.StartMatch, opts)
	unary(mux, "GetMatch", s.GetMatch, opts)
	unary(mux, "AddRuns", s.AddRuns, opts)
	unary(mux, "AddExtra", s.AddExtra, opts)
	unary(mux, "AddWicket", s.AddWicket, opts)
	unary(mux, "ChangeBowler", s.ChangeBowler, opts)
	unary(mux, "ToggleInnings", s.ToggleInnings, opts)
	unary(mux, "ResetMatch", s.ResetMatch, opts)
	unary(mux, "CreateTournament", s.CreateTournament, opts)
	unary(mux, "GetTournament", s.GetTournament, opts)
	unary(mux, "AddTournamentTeam", s.AddTournamentTeam, opts)
	unary(mux, "StartTournamentMatch", s.StartTournamentMatch, opts)

	return ScorerServicePath, mux
}

func unary[Req, Res any](mux *http.ServeMux, method string, fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error), opts ...connect.HandlerOption) {
	procedure := ScorerServicePath + method
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

func (s *ScorerServer) StartMatch(ctx context.Context, req *connect.Request[StartMatchRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	snap, err := s.scorer.StartMatch(ctx, service.StartOptions{
		Team1Name:    req.Msg.Team1Name,
		Team2Name:    req.Msg.Team2Name,
		TotalOvers:   req.Msg.TotalOvers,
		MaxWickets:   req.Msg.MaxWickets,
		RotateStrike: req.Msg.RotateStrike,
		IsTournament: req.Msg.IsTournament,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(snap), nil
}

func (s *ScorerServer) GetMatch(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	snap, err := s.scorer.Get(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(snap), nil
}

func (s *ScorerServer) AddRuns(ctx context.Context, req *connect.Request[AddRunsRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}
	return s.dispatch(ctx, req.Msg.SessionID, domain.AddRuns(req.Msg.Runs))
}

func (s *ScorerServer) AddExtra(ctx context.Context, req *connect.Request[AddExtraRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}
	return s.dispatch(ctx, req.Msg.SessionID, domain.AddExtra(req.Msg.Kind))
}

func (s *ScorerServer) AddWicket(ctx context.Context, req *connect.Request[AddWicketRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}
	return s.dispatch(ctx, req.Msg.SessionID, domain.AddWicket(req.Msg.PlayerID, req.Msg.HowOut))
}

func (s *ScorerServer) ChangeBowler(ctx context.Context, req *connect.Request[ChangeBowlerRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}
	return s.dispatch(ctx, req.Msg.SessionID, domain.ChangeBowler(req.Msg.BowlerID))
}

func (s *ScorerServer) ToggleInnings(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}
	return s.dispatch(ctx, req.Msg.SessionID, domain.ToggleInnings())
}

func (s *ScorerServer) ResetMatch(ctx context.Context, req *connect.Request[SessionRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}
	return s.dispatch(ctx, req.Msg.SessionID, domain.ResetMatch())
}

func (s *ScorerServer) dispatch(ctx context.Context, sessionID string, action domain.Action) (*connect.Response[MatchResponse], error) {
	snap, err := s.scorer.Dispatch(ctx, sessionID, action)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(snap), nil
}

func (s *ScorerServer) CreateTournament(ctx context.Context, req *connect.Request[CreateTournamentRequest]) (*connect.Response[TournamentResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	t, err := s.tournaments.Create(ctx, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toTournamentResponse(t)), nil
}

func (s *ScorerServer) GetTournament(ctx context.Context, req *connect.Request[TournamentRequest]) (*connect.Response[TournamentResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	t, err := s.tournaments.Get(ctx, req.Msg.TournamentID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toTournamentResponse(t)), nil
}

func (s *ScorerServer) AddTournamentTeam(ctx context.Context, req *connect.Request[AddTournamentTeamRequest]) (*connect.Response[TournamentResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	t, err := s.tournaments.AddTeam(ctx, req.Msg.TournamentID, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(toTournamentResponse(t)), nil
}

func (s *ScorerServer) StartTournamentMatch(ctx context.Context, req *connect.Request[TournamentRequest]) (*connect.Response[MatchResponse], error) {
	if err := s.validate.Struct(req.Msg); err != nil {
		return nil, validationError(err)
	}

	snap, err := s.tournaments.StartMatch(ctx, req.Msg.TournamentID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(snap), nil
}

func toTournamentResponse(t *domain.Tournament) *TournamentResponse {
	teams := t.Teams
	if teams == nil {
		teams = []string{}
	}
	return &TournamentResponse{
		TournamentID:     t.ID,
		Name:             t.Name,
		Teams:            teams,
		CurrentSessionID: t.CurrentSessionID,
	}
}
