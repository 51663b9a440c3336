// Package cache provides the persistent key-value store used for session
// signals. Entries are opaque strings; durability is the backend's concern.
package cache

import "errors"

// ErrNotFound is returned when a key has no entry.
var ErrNotFound = errors.New("key not found")

// Well-known keys for the session signals. The values are opaque to the
// cache: the onboarding flag is the literal string "true", the token is a
// bearer credential, and the user entry is a JSON-encoded profile.
const (
	KeyOnboardingComplete = "onboarding-complete"
	KeyAuthToken          = "auth-token"
	KeyUserData           = "user-data"
)

// Cache defines the interface for the durable session-signal store.
// Writes are atomic per key; no multi-key transaction is assumed.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Remove(key string) error
	Close() error
}
