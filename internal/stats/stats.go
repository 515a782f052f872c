// Package stats derives display figures from a match state. Everything here
// is a pure function of its arguments.
package stats

import (
	"fmt"
	"math"

	"cricket-scorer/internal/domain"
)

const NotApplicable = "-"

// OversDecimal is overs plus the fraction of the current over, so 4 overs
// and 3 balls is 4.5.
func OversDecimal(overs, balls int) float64 {
	return float64(overs) + float64(balls)/domain.BallsPerOver
}

func FormatOvers(overs, balls int) string {
	return fmt.Sprintf("%.1f", OversDecimal(overs, balls))
}

// FormatBallsLeft renders a ball count in overs.balls notation.
func FormatBallsLeft(ballsLeft int) string {
	return fmt.Sprintf("%d.%d", ballsLeft/domain.BallsPerOver, ballsLeft%domain.BallsPerOver)
}

// perBall is the scoring rate per legal ball. Runs scored before the first
// legal ball (extras only) give no rate.
func perBall(runs, ballsBowled int) float64 {
	if ballsBowled <= 0 {
		return 0
	}
	return float64(runs) / float64(ballsBowled)
}

func RunRate(runs, ballsBowled int) float64 {
	return round2(perBall(runs, ballsBowled) * domain.BallsPerOver)
}

// RequiredRunRate is the rate needed over the remaining balls. ok is false
// when nothing is left to chase or no balls remain.
func RequiredRunRate(runsToWin, ballsLeft int) (rate float64, ok bool) {
	if runsToWin <= 0 || ballsLeft <= 0 {
		return 0, false
	}
	return round2(float64(runsToWin) / (float64(ballsLeft) / domain.BallsPerOver)), true
}

// ProjectedScore extrapolates the current scoring rate linearly over the
// full allocation of overs. Before the first legal ball it is 0 rather than
// runs*totalBalls (a max(ballsBowled, 1) divisor), matching RunRate.
func ProjectedScore(runs, ballsBowled, totalOvers int) int {
	return int(math.Round(perBall(runs, ballsBowled) * float64(totalOvers*domain.BallsPerOver)))
}

func RunsToWin(target, runs int) int {
	return max(0, target-runs)
}

func BallsLeft(totalBalls, ballsBowled int) int {
	return max(0, totalBalls-ballsBowled)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
