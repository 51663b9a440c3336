package session

import (
	"sync"
	"time"
)

// defaultGuardReset bounds how long a transition can suppress routing if
// the caller never calls End. 500ms comfortably covers a screen replace.
const defaultGuardReset = 500 * time.Millisecond

// Guard suspends automatic routing while a user-initiated transition is
// in flight. Without it, completing onboarding writes the cache flag and
// the next snapshot rebuild races the explicit navigation the onboarding
// screen already issued, overriding it with a stale recomputation.
//
// The guard owns a cancellable reset timer so a forgotten End cannot
// block routing forever.
type Guard struct {
	mu      sync.Mutex
	active  bool
	timer   *time.Timer
	reset   time.Duration
	onReset func()
}

// NewGuard creates a Guard. onReset, if non-nil, is invoked after the
// timer expires a transition, so the owner can re-evaluate routing.
// resetAfter <= 0 selects the default.
func NewGuard(resetAfter time.Duration, onReset func()) *Guard {
	if resetAfter <= 0 {
		resetAfter = defaultGuardReset
	}
	return &Guard{reset: resetAfter, onReset: onReset}
}

// Begin suppresses routing until End is called or the reset timer fires.
// Calling Begin while active restarts the timer.
func (g *Guard) Begin() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = true
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.reset, g.expire)
}

// End lifts the suppression and cancels the pending reset timer.
func (g *Guard) End() {
	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.active = false
	g.mu.Unlock()
}

// Active reports whether routing is currently suppressed.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Close cancels any pending timer. The guard must not be used after.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.active = false
}

func (g *Guard) expire() {
	g.mu.Lock()
	wasActive := g.active
	g.active = false
	g.timer = nil
	g.mu.Unlock()
	if wasActive && g.onReset != nil {
		g.onReset()
	}
}
