package session

import (
	"testing"

	"github.com/ridecircle/sessionkit/authapi"
)

func verified(email string) *authapi.User {
	return &authapi.User{ID: "u1", Email: email, IsVerified: true}
}

func unverified(email string) *authapi.User {
	return &authapi.User{ID: "u1", Email: email, IsVerified: false}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		segment string
		want    Decision
	}{
		{
			name:    "fresh install routes to onboarding",
			snap:    Snapshot{Onboarding: False},
			segment: "index",
			want:    Goto(RouteOnboarding),
		},
		{
			name:    "onboarding unknown routes to onboarding",
			snap:    Snapshot{Onboarding: Unknown},
			segment: "index",
			want:    Goto(RouteOnboarding),
		},
		{
			name:    "already on onboarding stays",
			snap:    Snapshot{Onboarding: False},
			segment: "onboarding",
			want:    Stay,
		},
		{
			name:    "onboarding beats a verified session",
			snap:    Snapshot{Onboarding: False, Token: "tok", CachedUser: verified("a@b.com")},
			segment: "(tabs)",
			want:    Goto(RouteOnboarding),
		},
		{
			name:    "onboarded without credentials routes to login",
			snap:    Snapshot{Onboarding: True},
			segment: "index",
			want:    Goto(RouteLogin),
		},
		{
			name:    "no credentials stays on login",
			snap:    Snapshot{Onboarding: True},
			segment: "login",
			want:    Stay,
		},
		{
			name:    "no credentials stays on register",
			snap:    Snapshot{Onboarding: True},
			segment: "register",
			want:    Stay,
		},
		{
			name:    "no credentials stays on forgot-password",
			snap:    Snapshot{Onboarding: True},
			segment: "forgot-password",
			want:    Stay,
		},
		{
			name:    "no credentials stays on verify-otp",
			snap:    Snapshot{Onboarding: True},
			segment: "verify-otp",
			want:    Stay,
		},
		{
			name:    "unverified user routes to otp with email",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: unverified("a@b.com")},
			segment: "index",
			want:    Decision{Target: RouteVerifyOTP, Email: "a@b.com"},
		},
		{
			name:    "unverified user already on otp stays",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: unverified("a@b.com")},
			segment: "verify-otp",
			want:    Stay,
		},
		{
			name:    "unverified user without email degrades to login",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: unverified("")},
			segment: "index",
			want:    Goto(RouteLogin),
		},
		{
			name:    "unverified user without email on login stays",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: unverified("")},
			segment: "login",
			want:    Stay,
		},
		{
			name:    "verified session on register routes to main",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: verified("a@b.com")},
			segment: "register",
			want:    Goto(RouteMain),
		},
		{
			name:    "verified session on index routes to main",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: verified("a@b.com")},
			segment: "index",
			want:    Goto(RouteMain),
		},
		{
			name:    "verified session stays on tabs",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: verified("a@b.com")},
			segment: "(tabs)",
			want:    Stay,
		},
		{
			name:    "verified session stays on settings",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: verified("a@b.com")},
			segment: "settings",
			want:    Stay,
		},
		{
			name:    "verified session stays on ride",
			snap:    Snapshot{Onboarding: True, Token: "abc", CachedUser: verified("a@b.com")},
			segment: "ride",
			want:    Stay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.snap, tt.segment)
			if got != tt.want {
				t.Errorf("Decide() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Recomputing with identical inputs must yield the identical decision.
func TestDecideIdempotent(t *testing.T) {
	snaps := []Snapshot{
		{Onboarding: False},
		{Onboarding: True},
		{Onboarding: True, Token: "t", CachedUser: unverified("a@b.com")},
		{Onboarding: True, Token: "t", CachedUser: verified("a@b.com")},
	}
	segments := []string{"index", "onboarding", "login", "register", "verify-otp", "(tabs)", "settings", "ride"}

	for _, snap := range snaps {
		for _, segment := range segments {
			first := Decide(snap, segment)
			second := Decide(snap, segment)
			if first != second {
				t.Errorf("Decide(%+v, %q) not idempotent: %+v then %+v", snap, segment, first, second)
			}
		}
	}
}

// Whatever the other signals say, an incomplete onboarding always wins
// off the onboarding screen, and a decision targeting the current
// segment is never produced.
func TestDecideNoRedirectLoop(t *testing.T) {
	snaps := []Snapshot{
		{Onboarding: False},
		{Onboarding: True},
		{Onboarding: True, Token: "t", CachedUser: unverified("a@b.com")},
		{Onboarding: True, Token: "t", CachedUser: verified("a@b.com")},
	}
	segments := []string{"index", "onboarding", "login", "register", "forgot-password", "verify-otp", "(tabs)", "settings", "ride"}

	for _, snap := range snaps {
		for _, segment := range segments {
			d := Decide(snap, segment)
			if d.Stay {
				continue
			}
			if string(d.Target) == segment {
				t.Errorf("Decide(%+v, %q) redirects to the current segment", snap, segment)
			}
			if snap.Onboarding != True && d.Target != RouteOnboarding {
				t.Errorf("Decide(%+v, %q) = %+v, want onboarding to take priority", snap, segment, d)
			}
		}
	}
}
