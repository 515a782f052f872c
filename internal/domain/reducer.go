package domain

import "fmt"

type ActionType string

const (
	ActionAddRuns       ActionType = "ADD_RUNS"
	ActionAddWicket     ActionType = "ADD_WICKET"
	ActionAddExtra      ActionType = "ADD_EXTRA"
	ActionChangeBowler  ActionType = "CHANGE_BOWLER"
	ActionToggleInnings ActionType = "TOGGLE_INNINGS"
	ActionResetMatch    ActionType = "RESET_MATCH"
)

type ExtraKind string

const (
	ExtraWide   ExtraKind = "wide"
	ExtraNoBall ExtraKind = "no_ball"
)

// Action is a single scoring event. Only the fields for Type are read.
type Action struct {
	Type     ActionType `json:"type"`
	Runs     int        `json:"runs,omitempty"`
	PlayerID string     `json:"playerId,omitempty"`
	HowOut   string     `json:"howOut,omitempty"`
	Extra    ExtraKind  `json:"extra,omitempty"`
	BowlerID string     `json:"bowlerId,omitempty"`
}

func AddRuns(n int) Action { return Action{Type: ActionAddRuns, Runs: n} }

func AddWicket(playerID, howOut string) Action {
	return Action{Type: ActionAddWicket, PlayerID: playerID, HowOut: howOut}
}

func AddExtra(kind ExtraKind) Action { return Action{Type: ActionAddExtra, Extra: kind} }

func ChangeBowler(id string) Action { return Action{Type: ActionChangeBowler, BowlerID: id} }

func ToggleInnings() Action { return Action{Type: ActionToggleInnings} }

func ResetMatch() Action { return Action{Type: ActionResetMatch} }

// Reduce applies action to state and returns the next state. state is never
// modified; on error the returned state is state itself.
func Reduce(state MatchState, action Action) (MatchState, error) {
	switch action.Type {
	case ActionAddRuns:
		return addRuns(state, action.Runs)
	case ActionAddWicket:
		return addWicket(state, action.PlayerID, action.HowOut)
	case ActionAddExtra:
		return addExtra(state, action.Extra)
	case ActionChangeBowler:
		// bowler figures are not tracked
		return state, nil
	case ActionToggleInnings:
		return toggleInnings(state)
	case ActionResetMatch:
		return NewMatchState(DefaultSettings()), nil
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}
}

func (m *MatchState) batting() *TeamInnings {
	if m.Team1.IsBatting {
		return &m.Team1
	}
	return &m.Team2
}

func (m *MatchState) swapStrike() {
	m.CurrentBatsmen[0], m.CurrentBatsmen[1] = m.CurrentBatsmen[1], m.CurrentBatsmen[0]
}

func addRuns(state MatchState, runs int) (MatchState, error) {
	if state.IsMatchComplete {
		return state, ErrMatchComplete
	}
	if runs < 0 || runs > 6 {
		return state, fmt.Errorf("%w: got %d", ErrInvalidRuns, runs)
	}

	next := state.Clone()
	team := next.batting()
	team.TotalRuns += runs
	if i := team.indexOf(next.CurrentBatsmen[0]); i >= 0 {
		team.Players[i].Runs += runs
		team.Players[i].BallsFaced++
	}
	overComplete := team.advanceBall()

	if next.MatchSettings.RotateStrike {
		if runs%2 == 1 {
			next.swapStrike()
		}
		if overComplete {
			next.swapStrike()
		}
	}

	next.IsMatchComplete = InningsComplete(next)
	return next, nil
}

func addWicket(state MatchState, playerID, howOut string) (MatchState, error) {
	if state.IsMatchComplete {
		return state, ErrMatchComplete
	}

	next := state.Clone()
	team := next.batting()
	if team.Wickets >= next.MatchSettings.MaxWickets {
		return state, ErrAllOut
	}
	if playerID == "" {
		playerID = next.CurrentBatsmen[0]
	}

	idx := team.indexOf(playerID)
	if idx < 0 {
		return state, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if team.Players[idx].IsOut {
		return state, fmt.Errorf("%w: %s", ErrPlayerAlreadyOut, playerID)
	}
	slot := -1
	for i, id := range next.CurrentBatsmen {
		if id == playerID {
			slot = i
		}
	}
	if slot < 0 {
		return state, fmt.Errorf("%w: %s", ErrNotAtCrease, playerID)
	}

	team.Players[idx].IsOut = true
	team.Players[idx].HowOut = howOut
	team.Wickets++
	overComplete := team.advanceBall()

	// the last wicket leaves nobody to come in; the slot keeps the dismissed id
	if incoming, ok := team.nextBatsman(next.CurrentBatsmen); ok {
		next.CurrentBatsmen[slot] = incoming
	}
	if next.MatchSettings.RotateStrike && overComplete {
		next.swapStrike()
	}

	next.IsMatchComplete = InningsComplete(next)
	return next, nil
}

func addExtra(state MatchState, kind ExtraKind) (MatchState, error) {
	if state.IsMatchComplete {
		return state, ErrMatchComplete
	}
	if kind != ExtraWide && kind != ExtraNoBall {
		return state, fmt.Errorf("%w: got %q", ErrInvalidExtra, kind)
	}

	next := state.Clone()
	next.batting().TotalRuns++
	next.IsMatchComplete = InningsComplete(next)
	return next, nil
}

func toggleInnings(state MatchState) (MatchState, error) {
	if !state.IsFirstInnings {
		return state, ErrSecondInnings
	}
	if !InningsComplete(state) {
		return state, ErrInningsInProgress
	}

	next := state.Clone()
	next.Target = next.batting().TotalRuns + 1
	next.Team1.IsBatting = !next.Team1.IsBatting
	next.Team2.IsBatting = !next.Team2.IsBatting
	next.IsFirstInnings = false
	next.IsMatchComplete = false

	chasing := next.batting()
	next.CurrentBatsmen = [2]string{}
	for i := range next.CurrentBatsmen {
		if id, ok := chasing.nextBatsman(next.CurrentBatsmen); ok {
			next.CurrentBatsmen[i] = id
		}
	}
	return next, nil
}

// InningsComplete reports whether the batting side's innings is over: the
// wicket limit (reached one wicket early, at MaxWickets-1), the overs, or in
// the second innings a successful chase.
func InningsComplete(m MatchState) bool {
	team := m.BattingTeam()
	if team.Wickets >= m.MatchSettings.MaxWickets-1 {
		return true
	}
	if team.BallsBowled() >= m.MatchSettings.TotalBalls() {
		return true
	}
	return !m.IsFirstInnings && m.Target > 0 && team.TotalRuns >= m.Target
}
