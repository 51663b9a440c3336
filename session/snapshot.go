package session

import "github.com/ridecircle/sessionkit/authapi"

// Snapshot is the in-memory derived view of the persisted session
// signals. It has no independent persistence: the cache is the durable
// store, and a snapshot is rebuilt on startup and after every mutating
// auth action.
type Snapshot struct {
	// Onboarding is Unknown only before the first cache read completes.
	Onboarding Tristate
	// Token is the cached bearer credential, if any. Presence does not
	// imply validity.
	Token string
	// CachedUser mirrors the last server-confirmed profile, if any.
	CachedUser *authapi.User
	// RemoteErr records the failure of a profile fetch attempted while
	// building this snapshot. Informational only: the loader has already
	// degraded the snapshot to logged-out by the time it is set.
	RemoteErr error
}

// HasToken reports whether a cached credential is present.
func (s Snapshot) HasToken() bool {
	return s.Token != ""
}
