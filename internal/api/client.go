package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cricket-scorer/internal/constants"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/server"

	"github.com/valyala/fasthttp"
)

// ScorerClient calls the scorer service over its JSON connect protocol.
type ScorerClient struct {
	baseURL string
	client  *fasthttp.Client
}

// Error is a connect error returned by the server.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewScorerClient(baseURL string) *ScorerClient {
	return &ScorerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.ClientTimeout,
			WriteTimeout:        constants.ClientTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *ScorerClient) StartMatch(ctx context.Context, req server.StartMatchRequest) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "StartMatch", req)
}

func (c *ScorerClient) GetMatch(ctx context.Context, sessionID string) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "GetMatch", server.SessionRequest{SessionID: sessionID})
}

func (c *ScorerClient) AddRuns(ctx context.Context, sessionID string, runs int) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "AddRuns", server.AddRunsRequest{SessionID: sessionID, Runs: runs})
}

func (c *ScorerClient) AddExtra(ctx context.Context, sessionID string, kind domain.ExtraKind) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "AddExtra", server.AddExtraRequest{SessionID: sessionID, Kind: kind})
}

func (c *ScorerClient) AddWicket(ctx context.Context, sessionID, playerID, howOut string) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "AddWicket", server.AddWicketRequest{SessionID: sessionID, PlayerID: playerID, HowOut: howOut})
}

func (c *ScorerClient) ChangeBowler(ctx context.Context, sessionID, bowlerID string) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "ChangeBowler", server.ChangeBowlerRequest{SessionID: sessionID, BowlerID: bowlerID})
}

func (c *ScorerClient) ToggleInnings(ctx context.Context, sessionID string) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "ToggleInnings", server.SessionRequest{SessionID: sessionID})
}

func (c *ScorerClient) ResetMatch(ctx context.Context, sessionID string) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "ResetMatch", server.SessionRequest{SessionID: sessionID})
}

func (c *ScorerClient) CreateTournament(ctx context.Context, name string) (*server.TournamentResponse, error) {
	return call[server.TournamentResponse](ctx, c, "CreateTournament", server.CreateTournamentRequest{Name: name})
}

func (c *ScorerClient) GetTournament(ctx context.Context, id string) (*server.TournamentResponse, error) {
	return call[server.TournamentResponse](ctx, c, "GetTournament", server.TournamentRequest{TournamentID: id})
}

func (c *ScorerClient) AddTournamentTeam(ctx context.Context, id, name string) (*server.TournamentResponse, error) {
	return call[server.TournamentResponse](ctx, c, "AddTournamentTeam", server.AddTournamentTeamRequest{TournamentID: id, Name: name})
}

func (c *ScorerClient) StartTournamentMatch(ctx context.Context, id string) (*server.MatchResponse, error) {
	return call[server.MatchResponse](ctx, c, "StartTournamentMatch", server.TournamentRequest{TournamentID: id})
}

func call[T any](ctx context.Context, client *ScorerClient, method string, body any) (*T, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + server.ScorerServicePath + method)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Connect-Protocol-Version", "1")
	req.SetBody(payload)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &Error{Status: resp.StatusCode()}
		if err := json.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Code == "" {
			return nil, fmt.Errorf("API error: %d", resp.StatusCode())
		}
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
