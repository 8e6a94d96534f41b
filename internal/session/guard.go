package session

import (
	"strings"
	"sync"
)

// Decision is the guard's verdict on a navigation intent.
type Decision string

const (
	// DecisionAllow lets the navigation proceed untouched.
	DecisionAllow Decision = "allow"
	// DecisionAsk suppresses the navigation and requests a stay/leave
	// confirmation from the examiner.
	DecisionAsk Decision = "ask"
	// DecisionDeny drops the attempt because another confirmation is
	// already pending; the first destination wins until resolved.
	DecisionDeny Decision = "deny"
)

// Guard watches the session's dirty flag and arbitrates navigation away
// from an in-progress capture. It never touches response data.
type Guard struct {
	mu sync.Mutex

	dirty   func() bool
	message string

	pending    string
	hasPending bool
}

// NewGuard builds a guard over the given dirty probe. The message is shown
// with every confirmation request.
func NewGuard(dirty func() bool, message string) *Guard {
	return &Guard{dirty: dirty, message: message}
}

// Message returns the human-readable warning for the confirmation dialog.
func (g *Guard) Message() string { return g.message }

// BeforeUnload reports whether the browser-native unload prompt should be
// armed: only while unsaved data exists.
func (g *Guard) BeforeUnload() bool {
	return g.dirty()
}

// Decide arbitrates an intent to navigate from one location to another.
// Fragment targets and same-page destinations always pass. With unsaved
// data the destination is parked as pending and a confirmation is
// requested; while one is pending, further attempts are dropped.
func (g *Guard) Decide(from, to string) Decision {
	if strings.HasPrefix(to, "#") || samePath(from, to) {
		return DecisionAllow
	}
	if !g.dirty() {
		return DecisionAllow
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.hasPending {
		return DecisionDeny
	}
	g.pending = to
	g.hasPending = true
	return DecisionAsk
}

// Pending returns the parked destination, if any.
func (g *Guard) Pending() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending, g.hasPending
}

// Resolve settles the pending confirmation. On leave the parked destination
// is returned for the caller to navigate to; on stay it is discarded and
// nothing else changes. Either way the guard is ready for a new intent.
func (g *Guard) Resolve(leave bool) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hasPending {
		return "", false
	}
	dest := g.pending
	g.pending = ""
	g.hasPending = false
	if !leave {
		return "", false
	}
	return dest, true
}

// samePath compares two destinations by path alone, ignoring query strings
// and fragments.
func samePath(from, to string) bool {
	return stripExtras(from) == stripExtras(to)
}

func stripExtras(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return s
}
