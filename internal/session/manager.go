package session

import (
	"sync"
	"time"

	"github.com/Vineet-Sharma1927/InkSight/internal/analyzer"

	"go.uber.org/zap"
)

// Manager hands out one controller/guard pair per examiner session token
// and expires pairs that have been idle past the TTL. An expired session is
// the server-side equivalent of closing the capture page: the in-progress
// aggregate is destroyed, never auto-submitted.
type Manager struct {
	mu sync.Mutex

	log          *zap.Logger
	analyzer     analyzer.Analyzer
	submitter    Submitter
	totalImages  int
	guardMessage string
	ttl          time.Duration

	sessions map[string]*managedSession
}

type managedSession struct {
	controller *Controller
	guard      *Guard
	lastSeen   time.Time
}

// NewManager builds a manager that creates controllers with the given
// collaborators.
func NewManager(log *zap.Logger, an analyzer.Analyzer, sub Submitter, totalImages int, guardMessage string, ttl time.Duration) *Manager {
	return &Manager{
		log:          log,
		analyzer:     an,
		submitter:    sub,
		totalImages:  totalImages,
		guardMessage: guardMessage,
		ttl:          ttl,
		sessions:     make(map[string]*managedSession),
	}
}

// Get returns the controller and guard for token, creating them on first
// use and refreshing the idle clock on every call.
func (m *Manager) Get(token string) (*Controller, *Guard) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms, ok := m.sessions[token]
	if !ok {
		ctrl := NewController(m.log, m.analyzer, m.submitter, m.totalImages)
		ms = &managedSession{
			controller: ctrl,
			guard:      NewGuard(ctrl.Dirty, m.guardMessage),
		}
		m.sessions[token] = ms
		m.log.Debug("Created capture session", zap.String("token", token))
	}
	ms.lastSeen = time.Now()
	return ms.controller, ms.guard
}

// Discard drops the session for token, abandoning any in-progress data.
func (m *Manager) Discard(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes sessions idle past the TTL and returns how many were
// dropped.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	dropped := 0
	for token, ms := range m.sessions {
		if ms.lastSeen.Before(cutoff) {
			delete(m.sessions, token)
			dropped++
		}
	}
	return dropped
}
