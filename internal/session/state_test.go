package session_test

import (
	"sync"
	"testing"

	"github.com/zmux-dev/zmux/internal/session"
)

func TestAttachDetachTransitions(t *testing.T) {
	s := session.New(session.Detached)
	if s.IsAttached() {
		t.Fatal("new state should start detached")
	}
	if !s.Attach() {
		t.Error("Attach() from detached should report a change")
	}
	if !s.IsAttached() {
		t.Error("IsAttached() after Attach() = false")
	}
	if s.Attach() {
		t.Error("Attach() while already attached should report no change")
	}
	if !s.Detach() {
		t.Error("Detach() from attached should report a change")
	}
	if s.IsAttached() {
		t.Error("IsAttached() after Detach() = true")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := session.New(session.Attached)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Attach()
		}()
		go func() {
			defer wg.Done()
			_ = s.Status()
		}()
	}
	wg.Wait()
}
