package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

type countingEvicter struct {
	calls atomic.Int32
	n     int
}

func (e *countingEvicter) Evict() int {
	e.calls.Add(1)
	return e.n
}

func TestScheduler_Sweep(t *testing.T) {
	target := &countingEvicter{n: 3}
	s := New(target, time.Minute, nil)

	s.sweep()
	s.sweep()

	if got := target.calls.Load(); got != 2 {
		t.Fatalf("expected 2 evict calls, got %d", got)
	}
}

func TestScheduler_StartRunsSweep(t *testing.T) {
	target := &countingEvicter{}
	s := New(target, 50*time.Millisecond, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for target.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweep never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_StopIsSafe(t *testing.T) {
	s := New(&countingEvicter{}, 0, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
}
