// Package session implements the session-resolution core of the client:
// it derives a snapshot of the persisted auth/onboarding signals, runs a
// pure state machine over snapshot plus current navigation segment, and
// applies the resulting routing decision through a Navigator.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ridecircle/sessionkit/authapi"
	"github.com/ridecircle/sessionkit/cache"
)

// AuthService is the slice of the auth client the controller drives for
// credential-mutating flows. *authapi.Client satisfies it.
type AuthService interface {
	ProfileFetcher
	Login(ctx context.Context, email, password string) (*authapi.AuthData, error)
	Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.AuthData, error)
	VerifyOTP(ctx context.Context, email, code string) (*authapi.AuthData, error)
	Logout(ctx context.Context, token string) error
}

// Controller is the composition root of the session core. It owns the
// cache, the loader, the transition guard, and the navigator, and
// serializes every evaluation so decisions are computed one at a time
// even though segment reports, snapshot rebuilds, and guard expiry all
// arrive asynchronously.
//
// An evaluation runs only once both asynchronous sources have reported
// at least once: a navigation segment and a completed signal load. It
// never runs while a load is in flight or the guard is up.
type Controller struct {
	cache  cache.Cache
	svc    AuthService
	loader *Loader
	guard  *Guard
	nav    Navigator
	logger *slog.Logger

	mu          sync.Mutex
	segment     string
	haveSegment bool
	snap        Snapshot
	haveSnap    bool
	loadGen     uint64
	loading     int
	lastIssued  Decision
	haveIssued  bool
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the structured logger. If not set, a JSON logger
// writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithGuardReset overrides the transition guard's auto-reset delay.
func WithGuardReset(d time.Duration) Option {
	return func(c *Controller) {
		c.guard = NewGuard(d, nil)
	}
}

// NewController wires the session core together. svc may be nil for
// offline use; nav must not be nil.
func NewController(store cache.Cache, svc AuthService, nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		cache: store,
		svc:   svc,
		nav:   nav,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	c.logger = c.logger.With("component", "session")
	if c.guard == nil {
		c.guard = NewGuard(0, nil)
	}
	c.guard.onReset = c.evaluate
	var remote ProfileFetcher
	if svc != nil {
		remote = svc
	}
	c.loader = NewLoader(store, remote, c.logger)
	return c
}

// Start performs the initial signal load. Until it completes, the
// onboarding state is Unknown and no decisions are produced.
func (c *Controller) Start(ctx context.Context) {
	c.Refresh(ctx)
}

// Close releases the guard's timer. The controller must not be used
// after Close.
func (c *Controller) Close() {
	c.guard.Close()
}

// SetSegment records the segment the navigation layer currently shows
// and re-evaluates. Safe to call before Start: evaluation is gated until
// the first load completes.
func (c *Controller) SetSegment(segment string) {
	c.mu.Lock()
	c.segment = segment
	c.haveSegment = true
	c.mu.Unlock()
	c.evaluate()
}

// Refresh rebuilds the snapshot from the cache (and remote service, if
// needed) and re-evaluates. Concurrent refreshes are resolved
// last-write-wins: a load that finishes after a newer one started is
// discarded without touching the snapshot.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.loading++
	c.mu.Unlock()

	snap := c.loader.Load(ctx)

	c.mu.Lock()
	c.loading--
	if gen == c.loadGen {
		c.snap = snap
		c.haveSnap = true
	}
	c.mu.Unlock()
	c.evaluate()
}

// Snapshot returns the current snapshot. Onboarding is Unknown until the
// first load completes.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.haveSnap {
		return Snapshot{Onboarding: Unknown}
	}
	return c.snap
}

// Onboarding reports the tri-state onboarding signal.
func (c *Controller) Onboarding() Tristate {
	return c.Snapshot().Onboarding
}

// SetOnboardingComplete persists the onboarding flag and rebuilds the
// snapshot. Callers finishing the onboarding flow should wrap this and
// their explicit navigation in BeginTransition/EndTransition.
func (c *Controller) SetOnboardingComplete(ctx context.Context, complete bool) error {
	var err error
	if complete {
		err = c.cache.Set(cache.KeyOnboardingComplete, "true")
	} else {
		err = c.cache.Remove(cache.KeyOnboardingComplete)
	}
	if err != nil {
		return err
	}
	c.Refresh(ctx)
	return nil
}

// BeginTransition suppresses automatic routing until EndTransition or
// the guard's bounded auto-reset.
func (c *Controller) BeginTransition() {
	c.guard.Begin()
}

// EndTransition lifts the suppression and re-evaluates immediately.
func (c *Controller) EndTransition() {
	c.guard.End()
	c.evaluate()
}

// Transitioning reports whether routing is currently suppressed.
func (c *Controller) Transitioning() bool {
	return c.guard.Active()
}

// Login authenticates, persists the credentials, and rebuilds the
// snapshot.
func (c *Controller) Login(ctx context.Context, email, password string) (*authapi.User, error) {
	if c.svc == nil {
		return nil, errNoService
	}
	data, err := c.svc.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := c.storeCredentials(data); err != nil {
		return nil, err
	}
	c.Refresh(ctx)
	return &data.User, nil
}

// Register creates an account. The stored user is unverified, so the
// next evaluation routes to OTP verification.
func (c *Controller) Register(ctx context.Context, req authapi.RegisterRequest) (*authapi.User, error) {
	if c.svc == nil {
		return nil, errNoService
	}
	data, err := c.svc.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.storeCredentials(data); err != nil {
		return nil, err
	}
	c.Refresh(ctx)
	return &data.User, nil
}

// VerifyOTP confirms the email code and persists the now-verified user
// and refreshed token.
func (c *Controller) VerifyOTP(ctx context.Context, email, code string) (*authapi.User, error) {
	if c.svc == nil {
		return nil, errNoService
	}
	data, err := c.svc.VerifyOTP(ctx, email, code)
	if err != nil {
		return nil, err
	}
	if err := c.storeCredentials(data); err != nil {
		return nil, err
	}
	c.Refresh(ctx)
	return &data.User, nil
}

// Logout invalidates the session server-side on a best-effort basis and
// always clears the local credentials.
func (c *Controller) Logout(ctx context.Context) error {
	token, err := c.cache.Get(cache.KeyAuthToken)
	if err == nil && token != "" && c.svc != nil {
		if err := c.svc.Logout(ctx, token); err != nil {
			c.logger.Warn("server-side logout failed", "error", err)
		}
	}
	if err := c.cache.Remove(cache.KeyAuthToken); err != nil {
		c.logger.Warn("token remove failed", "error", err)
	}
	if err := c.cache.Remove(cache.KeyUserData); err != nil {
		c.logger.Warn("user remove failed", "error", err)
	}
	c.Refresh(ctx)
	return nil
}

// storeCredentials persists a fresh token and user. The two keys are
// written independently; the loader tolerates observing the token
// without the user mid-write.
func (c *Controller) storeCredentials(data *authapi.AuthData) error {
	if err := c.cache.Set(cache.KeyAuthToken, data.Token); err != nil {
		return err
	}
	userJSON, err := json.Marshal(data.User)
	if err != nil {
		return err
	}
	return c.cache.Set(cache.KeyUserData, string(userJSON))
}

// evaluate runs the state machine if every gate is open, and issues the
// decision through the navigator unless it repeats the last issued
// target. The navigator is invoked outside the lock so it may feed a new
// segment straight back via SetSegment.
func (c *Controller) evaluate() {
	if c.guard.Active() {
		return
	}

	c.mu.Lock()
	if !c.haveSegment || !c.haveSnap || c.loading > 0 {
		c.mu.Unlock()
		return
	}
	d := Decide(c.snap, c.segment)
	if d.Stay {
		c.mu.Unlock()
		return
	}
	if c.haveIssued && c.lastIssued == d {
		c.mu.Unlock()
		return
	}
	c.lastIssued = d
	c.haveIssued = true
	segment := c.segment
	c.mu.Unlock()

	c.logger.Info("routing", "from", segment, "to", string(d.Target))
	c.nav.Replace(d)
}

var errNoService = errors.New("no auth service configured")
