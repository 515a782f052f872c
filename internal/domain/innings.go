package domain

import "fmt"

func newTeamInnings(prefix, name string, batting bool) TeamInnings {
	players := make([]Player, SquadSize)
	for i := range players {
		players[i] = Player{
			ID:   fmt.Sprintf("%s-%d", prefix, i+1),
			Name: fmt.Sprintf("Player %d", i+1),
		}
	}
	return TeamInnings{
		Name:      name,
		Players:   players,
		IsBatting: batting,
	}
}

// NewMatchState returns a fresh match with team1 batting first and the
// openers p1-1 and p1-2 at the crease.
func NewMatchState(settings MatchSettings) MatchState {
	return MatchState{
		Team1:          newTeamInnings("p1", "Team 1", true),
		Team2:          newTeamInnings("p2", "Team 2", false),
		CurrentBatsmen: [2]string{"p1-1", "p1-2"},
		MatchSettings:  settings,
		IsFirstInnings: true,
	}
}

// advanceBall records one legal delivery on t.
func (t *TeamInnings) advanceBall() (overComplete bool) {
	overComplete = t.Balls >= BallsPerOver-1
	t.Balls = (t.Balls + 1) % BallsPerOver
	if overComplete {
		t.Overs++
	}
	return overComplete
}

func (t *TeamInnings) indexOf(id string) int {
	for i, p := range t.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextBatsman is the first player in batting order who is neither out nor
// already at the crease.
func (t *TeamInnings) nextBatsman(crease [2]string) (string, bool) {
	for _, p := range t.Players {
		if p.IsOut || p.ID == crease[0] || p.ID == crease[1] {
			continue
		}
		return p.ID, true
	}
	return "", false
}
