package memory

import (
	"errors"
	"testing"

	"github.com/ridecircle/sessionkit/cache"
)

func TestMemoryCache(t *testing.T) {
	s := New()

	t.Run("SetAndGet", func(t *testing.T) {
		if err := s.Set(cache.KeyAuthToken, "tok"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := s.Get(cache.KeyAuthToken)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got != "tok" {
			t.Errorf("expected %q, got %q", "tok", got)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get("missing")
		if !errors.Is(err, cache.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		s.Set("k", "v")
		s.Remove("k")
		_, err := s.Get("k")
		if !errors.Is(err, cache.ErrNotFound) {
			t.Errorf("expected ErrNotFound after Remove, got %v", err)
		}
	})

	t.Run("Snapshot", func(t *testing.T) {
		s.Set(cache.KeyOnboardingComplete, "true")
		snap := s.Snapshot()
		if snap[cache.KeyOnboardingComplete] != "true" {
			t.Errorf("snapshot missing entry: %+v", snap)
		}
		// Mutating the copy must not affect the store.
		snap[cache.KeyOnboardingComplete] = "false"
		got, _ := s.Get(cache.KeyOnboardingComplete)
		if got != "true" {
			t.Errorf("snapshot mutation leaked into store")
		}
	})
}
