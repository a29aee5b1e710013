package jobs

import (
	"rentflow-backend/internal/logger"
)

// SweepIdleCheckouts drops checkout contexts untouched beyond the idle
// TTL. Contexts with a submission in flight are never swept.
func (jr *JobRunner) SweepIdleCheckouts() {
	jr.runWithRecovery("SweepIdleCheckouts", func() {
		ttl := jr.config.CheckoutIdleTTL()
		removed := jr.checkouts.SweepIdle(ttl)
		logger.Info("Idle checkout sweep finished", "removed", removed, "remaining", jr.checkouts.Len())
	})
}

// SweepExpiredSessions drops sessions whose owner went away without
// logging out.
func (jr *JobRunner) SweepExpiredSessions() {
	jr.runWithRecovery("SweepExpiredSessions", func() {
		removed := jr.sessions.SweepExpired()
		logger.Info("Session sweep finished", "removed", removed, "remaining", jr.sessions.Len())
	})
}
