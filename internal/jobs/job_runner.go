package jobs

import (
	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/config"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/session"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	checkouts *checkout.Manager
	sessions  *session.Manager
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(checkouts *checkout.Manager, sessions *session.Manager, cfg *config.Config) *JobRunner {
	return &JobRunner{
		checkouts: checkouts,
		sessions:  sessions,
		config:    cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllSweeps runs every sweep job (for manual execution)
func (jr *JobRunner) RunAllSweeps() {
	jr.SweepIdleCheckouts()
	jr.SweepExpiredSessions()
}
