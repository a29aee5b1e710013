package session

import (
	"sync"
	"time"

	"rentflow-backend/internal/domain"
	"rentflow-backend/internal/logger"
	"rentflow-backend/internal/security"
)

// Session is the process-wide per-user session state: the display-only
// profile fields cached while a valid credential exists. Sessions
// handed out by the Manager are point-in-time copies; the record the
// Manager keeps is only ever touched under its mutex and never escapes,
// so concurrent requests for the same user cannot race on these fields.
type Session struct {
	UserID    string
	Email     string
	Role      domain.Role
	CreatedOn time.Time
	LastSeen  time.Time
}

// Profile returns the cached display fields.
func (s *Session) Profile() domain.UserProfile {
	return domain.UserProfile{
		UserID: s.UserID,
		Email:  s.Email,
		Role:   s.Role,
	}
}

// Manager owns session lifecycle: Init on credential acquisition,
// Teardown on credential loss, and an expiry sweep for sessions whose
// owner went away without logging out.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Init creates or refreshes the session for validated token claims and
// returns a copy of it.
func (m *Manager) Init(claims *security.UserClaims) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if s, ok := m.sessions[claims.UserID]; ok {
		s.Email = claims.Email
		s.Role = claims.Role
		s.LastSeen = now
		copied := *s
		return &copied
	}

	s := &Session{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		CreatedOn: now,
		LastSeen:  now,
	}
	m.sessions[claims.UserID] = s
	logger.Debug("Session initialized", "user_id", claims.UserID, "role", claims.Role)
	copied := *s
	return &copied
}

// Get returns a copy of the live session for a user, touching its
// last-seen time.
func (m *Manager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, false
	}
	s.LastSeen = time.Now()
	copied := *s
	return &copied, true
}

// Teardown drops the session for a user on credential loss.
func (m *Manager) Teardown(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[userID]; ok {
		delete(m.sessions, userID)
		logger.Debug("Session torn down", "user_id", userID)
	}
}

// SweepExpired removes sessions not seen within the TTL. Returns the
// number removed.
func (m *Manager) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for userID, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, userID)
			removed++
		}
	}
	if removed > 0 {
		logger.Info("Swept expired sessions", "removed", removed)
	}
	return removed
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
