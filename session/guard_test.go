package session

import (
	"testing"
	"time"
)

func TestGuardBeginEnd(t *testing.T) {
	g := NewGuard(time.Hour, nil)
	defer g.Close()

	if g.Active() {
		t.Fatal("new guard should be inactive")
	}
	g.Begin()
	if !g.Active() {
		t.Fatal("guard should be active after Begin")
	}
	g.End()
	if g.Active() {
		t.Fatal("guard should be inactive after End")
	}
}

func TestGuardAutoReset(t *testing.T) {
	fired := make(chan struct{}, 1)
	g := NewGuard(10*time.Millisecond, func() {
		fired <- struct{}{}
	})
	defer g.Close()

	g.Begin()
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("guard never auto-reset")
	}
	if g.Active() {
		t.Fatal("guard should be inactive after auto-reset")
	}
}

func TestGuardEndCancelsReset(t *testing.T) {
	fired := make(chan struct{}, 1)
	g := NewGuard(20*time.Millisecond, func() {
		fired <- struct{}{}
	})
	defer g.Close()

	g.Begin()
	g.End()
	select {
	case <-fired:
		t.Fatal("onReset fired after explicit End")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestGuardBeginRestartsTimer(t *testing.T) {
	g := NewGuard(200*time.Millisecond, nil)
	defer g.Close()

	g.Begin()
	time.Sleep(120 * time.Millisecond)
	g.Begin()
	time.Sleep(120 * time.Millisecond)
	// 240ms after the first Begin, but only 120ms after the second.
	if !g.Active() {
		t.Fatal("second Begin should have restarted the reset timer")
	}
}
