package service

import (
	"context"
	"fmt"

	"cricket-scorer/internal/constants"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// SessionJanitor periodically drops idle sessions so an abandoned match does
// not hold memory for the life of the process.
type SessionJanitor struct {
	scorer    *ScorerService
	scheduler gocron.Scheduler
	logger    zerolog.Logger
}

func NewSessionJanitor(scorer *ScorerService, logger zerolog.Logger) (*SessionJanitor, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	j := &SessionJanitor{scorer: scorer, scheduler: sched, logger: logger}
	_, err = sched.NewJob(
		gocron.DurationJob(constants.SessionSweepInterval),
		gocron.NewTask(j.Sweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	return j, nil
}

func (j *SessionJanitor) Start() {
	j.scheduler.Start()
	j.logger.Info().Dur("interval", constants.SessionSweepInterval).Msg("session janitor started")
}

func (j *SessionJanitor) Stop() error {
	return j.scheduler.Shutdown()
}

func (j *SessionJanitor) Sweep() {
	n, err := j.scorer.SweepIdle(context.Background())
	if err != nil {
		j.logger.Error().Err(err).Msg("session sweep failed")
		return
	}
	if n > 0 {
		j.logger.Info().Int64("removed", n).Msg("idle sessions removed")
	}
}
