package jobs

import (
	"context"
	"time"

	"sovest/internal/services"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EvaluationJob periodically sweeps matured active predictions through
// the scoring engine. Re-running is safe: evaluated predictions fall
// out of the candidate set, so overlap with a manual sweep is harmless.
type EvaluationJob struct {
	scoringService *services.ScoringService
	interval       time.Duration
	stopChan       chan struct{}
	logger         zerolog.Logger
}

// NewEvaluationJob creates a new evaluation job
func NewEvaluationJob(scoringService *services.ScoringService, interval time.Duration) *EvaluationJob {
	return &EvaluationJob{
		scoringService: scoringService,
		interval:       interval,
		stopChan:       make(chan struct{}),
		logger:         log.With().Str("component", "evaluation_job").Logger(),
	}
}

// Start begins the evaluation loop; call it in its own goroutine
func (j *EvaluationJob) Start() {
	j.logger.Info().Dur("interval", j.interval).Msg("Starting evaluation job")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.runSweep()
		case <-j.stopChan:
			j.logger.Info().Msg("Stopping evaluation job")
			return
		}
	}
}

// Stop stops the evaluation loop
func (j *EvaluationJob) Stop() {
	close(j.stopChan)
}

func (j *EvaluationJob) runSweep() {
	report, err := j.scoringService.EvaluateActivePredictions(context.Background())
	if err != nil {
		j.logger.Error().Err(err).Msg("Sweep failed")
		return
	}

	if report.Total > 0 {
		j.logger.Info().
			Int("total", report.Total).
			Int("evaluated", report.Evaluated).
			Int("errors", report.Errors).
			Msg("Sweep completed")
	}
}
