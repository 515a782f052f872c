package stats

import (
	"testing"

	"cricket-scorer/internal/domain"
)

func TestFormatOvers(t *testing.T) {
	tests := []struct {
		overs, balls int
		want         string
	}{
		{0, 0, "0.0"},
		{4, 3, "4.5"},
		{9, 5, "9.8"},
		{10, 0, "10.0"},
	}
	for _, tt := range tests {
		if got := FormatOvers(tt.overs, tt.balls); got != tt.want {
			t.Errorf("FormatOvers(%d, %d) = %q, want %q", tt.overs, tt.balls, got, tt.want)
		}
	}
}

func TestFormatBallsLeft(t *testing.T) {
	tests := map[int]string{0: "0.0", 5: "0.5", 6: "1.0", 59: "9.5", 60: "10.0"}
	for balls, want := range tests {
		if got := FormatBallsLeft(balls); got != want {
			t.Errorf("FormatBallsLeft(%d) = %q, want %q", balls, got, want)
		}
	}
}

func TestRunRate(t *testing.T) {
	tests := []struct {
		name        string
		runs, balls int
		want        float64
	}{
		{"no balls no runs", 0, 0, 0},
		{"extras before any ball", 50, 0, 0},
		{"one over", 9, 6, 9},
		{"rounded", 10, 7, 8.57},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunRate(tt.runs, tt.balls); got != tt.want {
				t.Errorf("RunRate(%d, %d) = %v, want %v", tt.runs, tt.balls, got, tt.want)
			}
		})
	}
}

// Zero balls bowled must never divide by zero.
func TestRunRateZeroBallsIsFinite(t *testing.T) {
	sb := NewScoreboard(domain.NewMatchState(domain.DefaultSettings()))
	if sb.RunRate != 0 {
		t.Fatalf("fresh match run rate = %v, want 0", sb.RunRate)
	}
}

func TestRequiredRunRate(t *testing.T) {
	tests := []struct {
		name            string
		runsToWin, left int
		want            float64
		ok              bool
	}{
		{"chasing", 30, 30, 6, true},
		{"rounded", 10, 7, 8.57, true},
		{"target reached", 0, 30, 0, false},
		{"no balls left", 5, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RequiredRunRate(tt.runsToWin, tt.left)
			if got != tt.want || ok != tt.ok {
				t.Errorf("RequiredRunRate(%d, %d) = %v, %v; want %v, %v", tt.runsToWin, tt.left, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestProjectedScore(t *testing.T) {
	tests := []struct {
		runs, balls, overs int
		want               int
	}{
		{0, 0, 10, 0},
		{12, 0, 10, 0},
		{30, 30, 10, 60},
		{7, 6, 20, 140},
		{10, 7, 10, 86}, // 85.71
	}
	for _, tt := range tests {
		if got := ProjectedScore(tt.runs, tt.balls, tt.overs); got != tt.want {
			t.Errorf("ProjectedScore(%d, %d, %d) = %d, want %d", tt.runs, tt.balls, tt.overs, got, tt.want)
		}
	}
}

func TestRunsToWinAndBallsLeftClamp(t *testing.T) {
	if got := RunsToWin(150, 160); got != 0 {
		t.Errorf("RunsToWin past target = %d, want 0", got)
	}
	if got := RunsToWin(150, 120); got != 30 {
		t.Errorf("RunsToWin = %d, want 30", got)
	}
	if got := BallsLeft(60, 66); got != 0 {
		t.Errorf("BallsLeft past limit = %d, want 0", got)
	}
	if got := BallsLeft(60, 45); got != 15 {
		t.Errorf("BallsLeft = %d, want 15", got)
	}
}

func TestScoreboardChase(t *testing.T) {
	m := domain.NewMatchState(domain.DefaultSettings())
	m.Team1.Name, m.Team2.Name = "Lions", "Tigers"
	m.Team1.TotalRuns = 80
	m, err := domain.Reduce(m, domain.ToggleInnings())
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	m.Team2.TotalRuns, m.Team2.Wickets = 51, 3
	m.Team2.Overs, m.Team2.Balls = 5, 0

	sb := NewScoreboard(m)
	if sb.BattingTeam != "Tigers" || sb.BowlingTeam != "Lions" {
		t.Errorf("teams = %s vs %s", sb.BattingTeam, sb.BowlingTeam)
	}
	if sb.Score != "51/3" || sb.Overs != "5.0" {
		t.Errorf("score = %s (%s)", sb.Score, sb.Overs)
	}
	if sb.Target != 81 || sb.RunsToWin != 30 || sb.BallsLeft != 30 {
		t.Errorf("target=%d runsToWin=%d ballsLeft=%d", sb.Target, sb.RunsToWin, sb.BallsLeft)
	}
	if sb.RequiredRate != "6.00" {
		t.Errorf("required rate = %s, want 6.00", sb.RequiredRate)
	}
	if sb.ChaseSummary != "Need 30 runs in 5.0 overs" {
		t.Errorf("summary = %q", sb.ChaseSummary)
	}
	if sb.RunRate != 10.2 || sb.ProjectedScore != 102 {
		t.Errorf("rr=%v projected=%d", sb.RunRate, sb.ProjectedScore)
	}
}

func TestScoreboardFirstInningsHasNoChase(t *testing.T) {
	m := domain.NewMatchState(domain.DefaultSettings())
	sb := NewScoreboard(m)
	if sb.Target != 0 || sb.RequiredRate != "" || sb.ChaseSummary != "" {
		t.Fatalf("first innings scoreboard has chase figures: %+v", sb)
	}
	if sb.BallsLeft != 60 || sb.InningsComplete {
		t.Errorf("ballsLeft=%d complete=%v", sb.BallsLeft, sb.InningsComplete)
	}
}
