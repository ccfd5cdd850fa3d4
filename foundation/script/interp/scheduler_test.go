// File: scheduler_test.go
// Title: Scheduler Unit Tests
// Description: FIFO order, tasks queued while draining, re-entrancy and
//              cancellation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17

package interp

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
)

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler(0, cslog.Discard())
	var got []string

	s.Schedule(func() {
		got = append(got, "a")
		s.Schedule(func() { got = append(got, "c") })
	})
	s.Schedule(func() { got = append(got, "b") })

	if s.Pending() != 2 {
		t.Fatalf("Pending() = %d; want 2", s.Pending())
	}
	if err := s.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("task order mismatch (-want +got):\n%s", diff)
	}
	if s.Executed() != 3 {
		t.Errorf("Executed() = %d; want 3", s.Executed())
	}
	if s.IsDraining() {
		t.Error("IsDraining() = true after Drain returned")
	}
}

func TestSchedulerRejectsReentrantDrain(t *testing.T) {
	s := NewScheduler(0, cslog.Discard())
	var inner error
	s.Schedule(func() { inner = s.Drain(context.Background()) })

	if err := s.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if !cserror.HasCode(inner, cserror.CodeInternal) {
		t.Errorf("nested Drain() error = %v; want code %s", inner, cserror.CodeInternal)
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler(0, cslog.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	ran := 0
	s.Schedule(func() {
		ran++
		cancel()
	})
	s.Schedule(func() { ran++ })

	err := s.Drain(ctx)
	if !cserror.HasCode(err, cserror.CodeCancelled) {
		t.Fatalf("Drain() error = %v; want code %s", err, cserror.CodeCancelled)
	}
	if ran != 1 {
		t.Errorf("ran %d tasks; want 1", ran)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel; want 0", s.Pending())
	}
}

func TestSchedulerStepDelay(t *testing.T) {
	s := NewScheduler(5*time.Millisecond, cslog.Discard())
	for i := 0; i < 3; i++ {
		s.Schedule(func() {})
	}

	start := time.Now()
	if err := s.Drain(context.Background()); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("Drain() took %v; want at least 15ms", elapsed)
	}
}

func TestSchedulerDelayHonorsCancel(t *testing.T) {
	s := NewScheduler(time.Hour, cslog.Discard())
	s.Schedule(func() { t.Error("task should not run") })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Drain(ctx); !cserror.HasCode(err, cserror.CodeCancelled) {
		t.Errorf("Drain() error = %v; want code %s", err, cserror.CodeCancelled)
	}
}
