package stats

import (
	"fmt"

	"cricket-scorer/internal/domain"
)

// Scoreboard is what a scorer sees for the side currently batting.
type Scoreboard struct {
	BattingTeam    string  `json:"battingTeam"`
	BowlingTeam    string  `json:"bowlingTeam"`
	Score          string  `json:"score"`
	Overs          string  `json:"overs"`
	TotalOvers     int     `json:"totalOvers"`
	BallsBowled    int     `json:"ballsBowled"`
	BallsLeft      int     `json:"ballsLeft"`
	RunRate        float64 `json:"runRate"`
	ProjectedScore int     `json:"projectedScore"`

	// chase figures, set in the second innings only
	Target          int    `json:"target,omitempty"`
	RunsToWin       int    `json:"runsToWin,omitempty"`
	RequiredRate    string `json:"requiredRunRate,omitempty"`
	ChaseSummary    string `json:"chaseSummary,omitempty"`
	InningsComplete bool   `json:"inningsComplete"`
}

func NewScoreboard(m domain.MatchState) Scoreboard {
	batting := m.BattingTeam()
	settings := m.MatchSettings
	bowled := batting.BallsBowled()
	left := BallsLeft(settings.TotalBalls(), bowled)

	sb := Scoreboard{
		BattingTeam:     batting.Name,
		BowlingTeam:     m.BowlingTeam().Name,
		Score:           fmt.Sprintf("%d/%d", batting.TotalRuns, batting.Wickets),
		Overs:           FormatOvers(batting.Overs, batting.Balls),
		TotalOvers:      settings.TotalOvers,
		BallsBowled:     bowled,
		BallsLeft:       left,
		RunRate:         RunRate(batting.TotalRuns, bowled),
		ProjectedScore:  ProjectedScore(batting.TotalRuns, bowled, settings.TotalOvers),
		InningsComplete: domain.InningsComplete(m),
	}
	if m.IsFirstInnings {
		return sb
	}

	sb.Target = m.Target
	sb.RunsToWin = RunsToWin(m.Target, batting.TotalRuns)
	sb.RequiredRate = NotApplicable
	if rate, ok := RequiredRunRate(sb.RunsToWin, left); ok {
		sb.RequiredRate = fmt.Sprintf("%.2f", rate)
	}
	if sb.RunsToWin > 0 {
		sb.ChaseSummary = fmt.Sprintf("Need %d runs in %s overs", sb.RunsToWin, FormatBallsLeft(left))
	} else {
		sb.ChaseSummary = "Target achieved"
	}
	return sb
}
