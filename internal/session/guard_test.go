package session

import "testing"

func newTestGuard(dirty bool) (*Guard, *bool) {
	flag := dirty
	g := NewGuard(func() bool { return flag }, "unsaved data")
	return g, &flag
}

func TestGuardAllowsWhenClean(t *testing.T) {
	g, _ := newTestGuard(false)
	if d := g.Decide("/capture", "/patients"); d != DecisionAllow {
		t.Errorf("Decide = %q, want allow for a clean session", d)
	}
	if _, ok := g.Pending(); ok {
		t.Error("clean navigation parked a destination")
	}
}

func TestGuardAllowsFragments(t *testing.T) {
	g, _ := newTestGuard(true)
	if d := g.Decide("/capture", "#metadata"); d != DecisionAllow {
		t.Errorf("Decide = %q, want allow for a fragment target", d)
	}
}

func TestGuardAllowsSamePath(t *testing.T) {
	g, _ := newTestGuard(true)
	cases := [][2]string{
		{"/capture", "/capture"},
		{"/capture?image=3", "/capture?image=4"},
		{"/capture#top", "/capture?foo=1"},
	}
	for _, tc := range cases {
		if d := g.Decide(tc[0], tc[1]); d != DecisionAllow {
			t.Errorf("Decide(%q, %q) = %q, want allow", tc[0], tc[1], d)
		}
	}
}

func TestGuardAsksWhenDirty(t *testing.T) {
	g, _ := newTestGuard(true)
	if d := g.Decide("/capture", "/patients"); d != DecisionAsk {
		t.Fatalf("Decide = %q, want ask", d)
	}
	dest, ok := g.Pending()
	if !ok || dest != "/patients" {
		t.Errorf("Pending = %q, %v; want /patients parked", dest, ok)
	}
}

func TestGuardFirstDestinationWins(t *testing.T) {
	g, _ := newTestGuard(true)
	if d := g.Decide("/capture", "/patients"); d != DecisionAsk {
		t.Fatal("first intent should ask")
	}
	if d := g.Decide("/capture", "/somewhere-else"); d != DecisionDeny {
		t.Fatalf("second intent = %q, want deny while one is pending", d)
	}
	dest, _ := g.Pending()
	if dest != "/patients" {
		t.Errorf("pending destination = %q, want the first one", dest)
	}
}

func TestGuardResolveLeave(t *testing.T) {
	g, _ := newTestGuard(true)
	g.Decide("/capture", "/patients")

	dest, navigate := g.Resolve(true)
	if !navigate || dest != "/patients" {
		t.Errorf("Resolve(leave) = %q, %v; want /patients, true", dest, navigate)
	}
	if _, ok := g.Pending(); ok {
		t.Error("resolve left a destination parked")
	}
}

func TestGuardResolveStay(t *testing.T) {
	g, _ := newTestGuard(true)
	g.Decide("/capture", "/patients")

	if dest, navigate := g.Resolve(false); navigate || dest != "" {
		t.Errorf("Resolve(stay) = %q, %v; want no navigation", dest, navigate)
	}

	// The guard is ready for a fresh intent afterwards.
	if d := g.Decide("/capture", "/patients"); d != DecisionAsk {
		t.Errorf("Decide after stay = %q, want ask", d)
	}
}

func TestGuardResolveWithoutPending(t *testing.T) {
	g, _ := newTestGuard(true)
	if dest, navigate := g.Resolve(true); navigate || dest != "" {
		t.Errorf("Resolve with nothing pending = %q, %v", dest, navigate)
	}
}

func TestGuardBeforeUnloadTracksDirty(t *testing.T) {
	g, flag := newTestGuard(false)
	if g.BeforeUnload() {
		t.Error("BeforeUnload armed for a clean session")
	}
	*flag = true
	if !g.BeforeUnload() {
		t.Error("BeforeUnload not armed for a dirty session")
	}
}

func TestGuardDirtyCheckedPerIntent(t *testing.T) {
	g, flag := newTestGuard(true)
	if d := g.Decide("/capture", "/patients"); d != DecisionAsk {
		t.Fatal("dirty intent should ask")
	}
	g.Resolve(false)

	// After the data is saved, the same navigation passes.
	*flag = false
	if d := g.Decide("/capture", "/patients"); d != DecisionAllow {
		t.Errorf("Decide after save = %q, want allow", d)
	}
}
