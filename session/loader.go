package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ridecircle/sessionkit/authapi"
	"github.com/ridecircle/sessionkit/cache"
)

// ProfileFetcher is the slice of the auth client the loader needs.
type ProfileFetcher interface {
	Profile(ctx context.Context, token string) (*authapi.User, error)
}

// Loader builds session snapshots from the persistent cache, consulting
// the remote service when a token is cached without a profile.
//
// Loading is deliberately side-effecting: it promotes the onboarding flag
// for verified users and clears credentials that fail validation. Both
// effects are part of the contract, not incidental, and tests assert them.
type Loader struct {
	cache  cache.Cache
	remote ProfileFetcher
	logger *slog.Logger
}

// NewLoader creates a Loader. remote may be nil, in which case a cached
// token without a cached profile is treated as invalid and cleared.
func NewLoader(c cache.Cache, remote ProfileFetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cache: c, remote: remote, logger: logger.With("component", "session-loader")}
}

// Load reads the persisted signals and returns a snapshot. It never
// fails: every error degrades to the logged-out shape of the snapshot,
// so callers always receive something the state machine can act on.
func (l *Loader) Load(ctx context.Context) Snapshot {
	snap := Snapshot{Onboarding: False}

	if v, err := l.cache.Get(cache.KeyOnboardingComplete); err == nil && v == "true" {
		snap.Onboarding = True
	} else if err != nil && !errors.Is(err, cache.ErrNotFound) {
		l.logger.Warn("onboarding flag read failed", "error", err)
	}

	token, err := l.cache.Get(cache.KeyAuthToken)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			l.logger.Warn("token read failed", "error", err)
		}
		return snap
	}
	snap.Token = token

	userJSON, err := l.cache.Get(cache.KeyUserData)
	if err == nil {
		var user authapi.User
		if jsonErr := json.Unmarshal([]byte(userJSON), &user); jsonErr != nil {
			// Corrupt entry: clear it and fall through to the remote
			// fetch, same as if it had never been written.
			l.logger.Warn("cached user is malformed, clearing", "error", jsonErr)
			l.removeQuiet(cache.KeyUserData)
		} else {
			snap.CachedUser = &user
			l.promoteOnboarding(&snap)
			return snap
		}
	} else if !errors.Is(err, cache.ErrNotFound) {
		l.logger.Warn("user read failed", "error", err)
	}

	// Token present without a usable profile: validate against the
	// remote service. The cache writes token and user under separate
	// keys, so this branch also absorbs the window where a login has
	// written the token but not yet the user.
	return l.validateToken(ctx, snap)
}

func (l *Loader) validateToken(ctx context.Context, snap Snapshot) Snapshot {
	if l.remote == nil || authapi.TokenExpired(snap.Token) {
		return l.clearCredentials(snap, errors.New("token expired or unverifiable"))
	}
	user, err := l.remote.Profile(ctx, snap.Token)
	if err != nil {
		return l.clearCredentials(snap, err)
	}

	if data, err := json.Marshal(user); err == nil {
		if err := l.cache.Set(cache.KeyUserData, string(data)); err != nil {
			l.logger.Warn("persisting fetched user failed", "error", err)
		}
	}
	// No onboarding promotion here: a token restored from a device
	// backup belongs to a user this install has never onboarded, and
	// they still get the intro slides. Promotion only applies to
	// profiles this install has already cached.
	snap.CachedUser = user
	return snap
}

// clearCredentials treats the session as logged out: both credential
// keys are removed and the snapshot loses its token.
func (l *Loader) clearCredentials(snap Snapshot, cause error) Snapshot {
	l.logger.Info("clearing invalid credentials", "error", cause)
	l.removeQuiet(cache.KeyAuthToken)
	l.removeQuiet(cache.KeyUserData)
	snap.Token = ""
	snap.CachedUser = nil
	snap.RemoteErr = cause
	return snap
}

// promoteOnboarding marks onboarding complete for a verified cached
// user: someone with a confirmed account has no use for the intro
// slides, even if the flag was never explicitly written on this device.
func (l *Loader) promoteOnboarding(snap *Snapshot) {
	if snap.CachedUser == nil || !snap.CachedUser.IsVerified || snap.Onboarding == True {
		return
	}
	if err := l.cache.Set(cache.KeyOnboardingComplete, "true"); err != nil {
		l.logger.Warn("onboarding promotion write failed", "error", err)
	}
	snap.Onboarding = True
}

func (l *Loader) removeQuiet(key string) {
	if err := l.cache.Remove(key); err != nil {
		l.logger.Warn("cache remove failed", "key", key, "error", err)
	}
}
