package domain

import "errors"

var (
	ErrInvalidSettings   = errors.New("invalid match settings")
	ErrUnknownAction     = errors.New("unknown action")
	ErrMatchComplete     = errors.New("match already complete")
	ErrInvalidRuns       = errors.New("runs must be between 0 and 6")
	ErrInvalidExtra      = errors.New("extra must be wide or no_ball")
	ErrUnknownPlayer     = errors.New("player not in batting side")
	ErrPlayerAlreadyOut  = errors.New("player already out")
	ErrNotAtCrease       = errors.New("player not at the crease")
	ErrAllOut            = errors.New("no wickets left")
	ErrSecondInnings     = errors.New("second innings already under way")
	ErrInningsInProgress = errors.New("first innings still in progress")
)
