package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentflow-backend/internal/checkout"
	"rentflow-backend/internal/config"
	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/pricing"
	"rentflow-backend/internal/security"
	"rentflow-backend/internal/session"
)

func newTestRunner(t *testing.T) (*JobRunner, *checkout.Manager, *session.Manager) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Checkout.IdleTTLMinutes = 1
	sessions := session.NewManager(time.Minute)
	checkouts := checkout.NewManager(pricing.DayRateWithSurcharge{SurchargePerDay: pricing.DefaultDailySurcharge})
	return NewJobRunner(checkouts, sessions, cfg), checkouts, sessions
}

func TestSweepIdleCheckouts(t *testing.T) {
	t.Run("fresh contexts survive the sweep", func(t *testing.T) {
		jr, checkouts, _ := newTestRunner(t)
		checkouts.GetOrCreate("user-1").AddItem(domain.BasketItem{Name: "Camera", SerialNumber: "SN-001"})

		jr.SweepIdleCheckouts()
		assert.Equal(t, 1, checkouts.Len())
	})
}

func TestSweepExpiredSessions(t *testing.T) {
	t.Run("fresh sessions survive the sweep", func(t *testing.T) {
		jr, _, sessions := newTestRunner(t)
		sessions.Init(&security.UserClaims{UserID: "user-1", Role: domain.RoleUser})

		jr.SweepExpiredSessions()
		assert.Equal(t, 1, sessions.Len())
	})
}

func TestRunWithRecovery(t *testing.T) {
	t.Run("a panicking job does not take the runner down", func(t *testing.T) {
		jr, _, _ := newTestRunner(t)
		assert.NotPanics(t, func() {
			jr.runWithRecovery("ExplodingJob", func() { panic("boom") })
		})
	})
}
