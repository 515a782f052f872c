package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cricket-scorer/internal/config"
	"cricket-scorer/internal/database"
	"cricket-scorer/internal/db"
	"cricket-scorer/internal/domain"
	"cricket-scorer/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func newTestServices(t *testing.T) (*ScorerService, *TournamentService) {
	t.Helper()
	cfg := &config.Config{DBPath: ":memory:", SessionTTL: time.Hour, DefaultOvers: 2, DefaultWickets: 10}
	sqlDB, err := database.New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	q := db.New(sqlDB)
	scorer := NewScorerService(repository.NewSessionRepository(sqlDB, q, zerolog.Nop()), cfg, zerolog.Nop())
	tournaments := NewTournamentService(repository.NewTournamentRepository(sqlDB, q, zerolog.Nop()), scorer, zerolog.Nop())
	return scorer, tournaments
}

func dispatch(t *testing.T, s *ScorerService, id string, actions ...domain.Action) *Snapshot {
	t.Helper()
	var snap *Snapshot
	for _, a := range actions {
		var err error
		snap, err = s.Dispatch(context.Background(), id, a)
		if err != nil {
			t.Fatalf("Dispatch(%s): %v", a.Type, err)
		}
	}
	return snap
}

func TestStartMatchUsesDefaultsAndOverrides(t *testing.T) {
	scorer, _ := newTestServices(t)
	ctx := context.Background()

	snap, err := scorer.StartMatch(ctx, StartOptions{})
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	if snap.State.MatchSettings.TotalOvers != 2 || snap.State.Team1.Name != "Team 1" {
		t.Errorf("defaults not applied: %+v", snap.State.MatchSettings)
	}

	snap, err = scorer.StartMatch(ctx, StartOptions{Team1Name: " Lions ", Team2Name: "Tigers", TotalOvers: 5, MaxWickets: 4, RotateStrike: true})
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	st := snap.State
	if st.Team1.Name != "Lions" || st.Team2.Name != "Tigers" {
		t.Errorf("names = %q, %q", st.Team1.Name, st.Team2.Name)
	}
	if st.MatchSettings.TotalOvers != 5 || st.MatchSettings.MaxWickets != 4 || !st.MatchSettings.RotateStrike {
		t.Errorf("settings = %+v", st.MatchSettings)
	}

	if _, err := scorer.StartMatch(ctx, StartOptions{MaxWickets: 20}); !errors.Is(err, domain.ErrInvalidSettings) {
		t.Errorf("err = %v, want ErrInvalidSettings", err)
	}
}

func TestDispatchPersistsState(t *testing.T) {
	scorer, _ := newTestServices(t)
	ctx := context.Background()
	snap, err := scorer.StartMatch(ctx, StartOptions{})
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}

	dispatch(t, scorer, snap.SessionID, domain.AddRuns(4), domain.AddRuns(6), domain.AddWicket("", ""))

	got, err := scorer.Get(ctx, snap.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Scoreboard.Score != "10/1" || got.Scoreboard.Overs != "0.5" {
		t.Errorf("scoreboard = %s (%s)", got.Scoreboard.Score, got.Scoreboard.Overs)
	}
	p, _ := got.State.Team1.Player("p1-1")
	if p.HowOut != "Bowled" {
		t.Errorf("default dismissal = %q, want Bowled", p.HowOut)
	}

	if _, err := scorer.Dispatch(ctx, "missing", domain.AddRuns(1)); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRejectedActionLeavesSessionUntouched(t *testing.T) {
	scorer, _ := newTestServices(t)
	ctx := context.Background()
	snap, _ := scorer.StartMatch(ctx, StartOptions{})
	before := dispatch(t, scorer, snap.SessionID, domain.AddRuns(2))

	if _, err := scorer.Dispatch(ctx, snap.SessionID, domain.AddRuns(9)); !errors.Is(err, domain.ErrInvalidRuns) {
		t.Fatalf("err = %v, want ErrInvalidRuns", err)
	}
	after, _ := scorer.Get(ctx, snap.SessionID)
	if diff := cmp.Diff(before.State, after.State); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
}

func TestFullMatchAlerts(t *testing.T) {
	scorer, _ := newTestServices(t)
	ctx := context.Background()
	snap, _ := scorer.StartMatch(ctx, StartOptions{Team1Name: "Lions", Team2Name: "Tigers", TotalOvers: 1})
	id := snap.SessionID
	initial := snap.State

	for i := 0; i < 5; i++ {
		snap = dispatch(t, scorer, id, domain.AddRuns(2))
		if len(snap.Alerts) != 0 {
			t.Fatalf("alert before innings end: %+v", snap.Alerts)
		}
	}
	snap = dispatch(t, scorer, id, domain.AddRuns(2))
	if len(snap.Alerts) != 1 || snap.Alerts[0].Kind != AlertInningsComplete {
		t.Fatalf("alerts = %+v", snap.Alerts)
	}
	if want := "End of Lions's innings. Tigers needs 13 runs to win."; snap.Alerts[0].Message != want {
		t.Errorf("message = %q, want %q", snap.Alerts[0].Message, want)
	}

	snap = dispatch(t, scorer, id, domain.ToggleInnings())
	if snap.Scoreboard.Target != 13 || len(snap.Alerts) != 0 {
		t.Fatalf("after toggle target=%d alerts=%v", snap.Scoreboard.Target, snap.Alerts)
	}

	snap = dispatch(t, scorer, id, domain.AddRuns(6), domain.AddExtra(domain.ExtraWide), domain.AddRuns(6))
	if snap.Result == nil || snap.Result.Winner != "Tigers" {
		t.Fatalf("result = %+v", snap.Result)
	}
	if len(snap.Alerts) != 1 || snap.Alerts[0].Message != "Tigers won the match!" {
		t.Errorf("alerts = %+v", snap.Alerts)
	}
	if snap.Scoreboard.ChaseSummary != "Target achieved" {
		t.Errorf("summary = %q", snap.Scoreboard.ChaseSummary)
	}

	if _, err := scorer.Dispatch(ctx, id, domain.AddRuns(1)); !errors.Is(err, domain.ErrMatchComplete) {
		t.Errorf("err = %v, want ErrMatchComplete", err)
	}

	snap = dispatch(t, scorer, id, domain.ResetMatch())
	if diff := cmp.Diff(initial, snap.State); diff != "" {
		t.Errorf("reset (-want +got):\n%s", diff)
	}
}

func TestToggleRejectedMidInnings(t *testing.T) {
	scorer, _ := newTestServices(t)
	ctx := context.Background()
	snap, _ := scorer.StartMatch(ctx, StartOptions{})
	dispatch(t, scorer, snap.SessionID, domain.AddRuns(4))

	if _, err := scorer.Dispatch(ctx, snap.SessionID, domain.ToggleInnings()); !errors.Is(err, domain.ErrInningsInProgress) {
		t.Fatalf("err = %v, want ErrInningsInProgress", err)
	}
	got, _ := scorer.Get(ctx, snap.SessionID)
	if !got.State.IsFirstInnings || got.State.Target != 0 {
		t.Errorf("innings switched: first=%v target=%d", got.State.IsFirstInnings, got.State.Target)
	}
}

func TestResetKeepsTournamentFixture(t *testing.T) {
	_, tournaments := newTestServices(t)
	ctx := context.Background()

	tour, err := tournaments.Create(ctx, "Summer Cup")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, name := range []string{"Lions", "Tigers"} {
		if _, err := tournaments.AddTeam(ctx, tour.ID, name); err != nil {
			t.Fatalf("AddTeam(%s): %v", name, err)
		}
	}
	snap, err := tournaments.StartMatch(ctx, tour.ID)
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	initial := snap.State

	dispatch(t, tournaments.scorer, snap.SessionID, domain.AddRuns(4), domain.AddWicket("", ""))
	snap = dispatch(t, tournaments.scorer, snap.SessionID, domain.ResetMatch())

	if diff := cmp.Diff(initial, snap.State); diff != "" {
		t.Errorf("reset (-want +got):\n%s", diff)
	}
	ms := snap.State.MatchSettings
	if ms.TotalOvers != 2 || !ms.IsTournament || ms.TournamentName != "Summer Cup" {
		t.Errorf("settings after reset = %+v", ms)
	}
	if snap.State.Team1.Name != "Lions" || snap.State.Team2.Name != "Tigers" {
		t.Errorf("teams after reset = %s vs %s", snap.State.Team1.Name, snap.State.Team2.Name)
	}
}

func TestSweepUnlinksTournamentSession(t *testing.T) {
	scorer, tournaments := newTestServices(t)
	ctx := context.Background()

	clock := time.Now().UTC()
	scorer.now = func() time.Time { return clock }

	tour, _ := tournaments.Create(ctx, "Cup")
	for _, name := range []string{"Lions", "Tigers"} {
		if _, err := tournaments.AddTeam(ctx, tour.ID, name); err != nil {
			t.Fatalf("AddTeam(%s): %v", name, err)
		}
	}
	if _, err := tournaments.StartMatch(ctx, tour.ID); err != nil {
		t.Fatalf("StartMatch: %v", err)
	}

	clock = clock.Add(2 * time.Hour)
	if n, err := scorer.SweepIdle(ctx); err != nil || n != 1 {
		t.Fatalf("SweepIdle = %d, %v; want 1", n, err)
	}

	got, err := tournaments.Get(ctx, tour.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.CurrentSessionID != "" {
		t.Errorf("tournament still points at swept session %q", got.CurrentSessionID)
	}
}

func TestSweepIdle(t *testing.T) {
	scorer, _ := newTestServices(t)
	ctx := context.Background()

	clock := time.Now().UTC()
	scorer.now = func() time.Time { return clock }
	old, _ := scorer.StartMatch(ctx, StartOptions{})

	clock = clock.Add(2 * time.Hour)
	fresh, _ := scorer.StartMatch(ctx, StartOptions{})

	n, err := scorer.SweepIdle(ctx)
	if err != nil {
		t.Fatalf("SweepIdle: %v", err)
	}
	if n != 1 {
		t.Errorf("removed %d, want 1", n)
	}
	if _, err := scorer.Get(ctx, old.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("old session err = %v", err)
	}
	if _, err := scorer.Get(ctx, fresh.SessionID); err != nil {
		t.Errorf("fresh session: %v", err)
	}
}

func TestSessionJanitorSweep(t *testing.T) {
	scorer, _ := newTestServices(t)
	j, err := NewSessionJanitor(scorer, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSessionJanitor: %v", err)
	}
	j.Start()
	defer j.Stop()

	clock := time.Now().UTC()
	scorer.now = func() time.Time { return clock }
	snap, _ := scorer.StartMatch(context.Background(), StartOptions{})
	clock = clock.Add(3 * time.Hour)

	j.Sweep()
	if _, err := scorer.Get(context.Background(), snap.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("session survived sweep: %v", err)
	}
}

func TestTournamentRegistrationAndStart(t *testing.T) {
	_, tournaments := newTestServices(t)
	ctx := context.Background()

	tour, err := tournaments.Create(ctx, "  Summer Cup ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(tour.ID, "summer-cup-") || tour.Name != "Summer Cup" {
		t.Errorf("tournament = %+v", tour)
	}

	if _, err := tournaments.AddTeam(ctx, tour.ID, "Lions"); err != nil {
		t.Fatalf("AddTeam: %v", err)
	}
	if _, err := tournaments.StartMatch(ctx, tour.ID); !errors.Is(err, domain.ErrNotEnoughTeams) {
		t.Errorf("start with one team err = %v", err)
	}
	if _, err := tournaments.AddTeam(ctx, tour.ID, "   "); !errors.Is(err, domain.ErrEmptyTeamName) {
		t.Errorf("empty team err = %v", err)
	}
	if _, err := tournaments.AddTeam(ctx, tour.ID, " Lions"); !errors.Is(err, domain.ErrDuplicateTeam) {
		t.Errorf("duplicate err = %v", err)
	}
	got, err := tournaments.AddTeam(ctx, tour.ID, "Tigers")
	if err != nil {
		t.Fatalf("AddTeam: %v", err)
	}
	if diff := cmp.Diff([]string{"Lions", "Tigers"}, got.Teams); diff != "" {
		t.Errorf("teams (-want +got):\n%s", diff)
	}
	if _, err := tournaments.AddTeam(ctx, tour.ID, "Eagles"); err != nil {
		t.Fatalf("AddTeam: %v", err)
	}

	snap, err := tournaments.StartMatch(ctx, tour.ID)
	if err != nil {
		t.Fatalf("StartMatch: %v", err)
	}
	st := snap.State
	if st.Team1.Name != "Lions" || st.Team2.Name != "Tigers" {
		t.Errorf("fixture = %s vs %s", st.Team1.Name, st.Team2.Name)
	}
	ms := st.MatchSettings
	if !ms.IsTournament || ms.TournamentName != "Summer Cup" || ms.CurrentMatch != 1 || len(ms.Teams) != 3 {
		t.Errorf("settings = %+v", ms)
	}

	reloaded, err := tournaments.Get(ctx, tour.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if reloaded.CurrentSessionID != snap.SessionID {
		t.Errorf("current session = %q, want %q", reloaded.CurrentSessionID, snap.SessionID)
	}

	if _, err := tournaments.Get(ctx, "missing"); !errors.Is(err, domain.ErrTournamentNotFound) {
		t.Errorf("missing err = %v", err)
	}
}
