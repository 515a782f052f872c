package domain

import "fmt"

const (
	MarginRuns    = "runs"
	MarginWickets = "wickets"
)

type Result struct {
	Winner     string `json:"winner,omitempty"`
	Tied       bool   `json:"tied"`
	Margin     int    `json:"margin,omitempty"`
	MarginUnit string `json:"marginUnit,omitempty"`
}

// MatchResult returns the outcome once the second innings is over.
func MatchResult(m MatchState) (Result, bool) {
	if m.IsFirstInnings || !m.IsMatchComplete {
		return Result{}, false
	}

	chasing := m.BattingTeam()
	defending := m.BowlingTeam()
	switch {
	case chasing.TotalRuns >= m.Target:
		return Result{
			Winner:     chasing.Name,
			Margin:     m.MatchSettings.MaxWickets - chasing.Wickets,
			MarginUnit: MarginWickets,
		}, true
	case chasing.TotalRuns == m.Target-1:
		return Result{Tied: true}, true
	default:
		return Result{
			Winner:     defending.Name,
			Margin:     m.Target - 1 - chasing.TotalRuns,
			MarginUnit: MarginRuns,
		}, true
	}
}

func (r Result) String() string {
	if r.Tied {
		return "Match tied"
	}
	return fmt.Sprintf("%s won by %d %s", r.Winner, r.Margin, r.MarginUnit)
}
