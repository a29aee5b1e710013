package checkout

import (
	"sync"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/pricing"
)

// Manager owns one checkout context per user and sweeps contexts that
// have been idle past their time-to-live.
type Manager struct {
	mu       sync.Mutex
	policy   pricing.Policy
	contexts map[string]*Context
}

func NewManager(policy pricing.Policy) *Manager {
	return &Manager{
		policy:   policy,
		contexts: make(map[string]*Context),
	}
}

// GetOrCreate returns the checkout context for the given user, creating
// an empty one on first use.
func (m *Manager) GetOrCreate(userID string) *Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cc, ok := m.contexts[userID]; ok {
		return cc
	}
	cc := NewContext(m.policy)
	m.contexts[userID] = cc
	return cc
}

// Remove drops the context for a user, typically on credential loss.
func (m *Manager) Remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.contexts, userID)
}

// SweepIdle removes contexts untouched for longer than ttl. Contexts
// with a submission in flight are skipped. Returns the number removed.
func (m *Manager) SweepIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for userID, cc := range m.contexts {
		if cc.State() == domain.CheckoutStateSubmitting {
			continue
		}
		if cc.LastActive().Before(cutoff) {
			delete(m.contexts, userID)
			removed++
		}
	}
	if removed > 0 {
		logger.Info("Swept idle checkout contexts", "removed", removed)
	}
	return removed
}

// Len reports the number of live contexts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.contexts)
}
