// File: scheduler.go
// Title: Cooperative Task Scheduler
// Description: FIFO task queue drained by a single goroutine. Runners never
//              call each other directly; every hand-off is a queued task.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation

package interp

import (
	"context"
	"sync"
	"time"

	"github.com/edwingeng/deque"
	"github.com/tevino/abool/v2"

	cserror "github.com/msto63/cmdscript/foundation/core/error"
	cslog "github.com/msto63/cmdscript/foundation/core/log"
)

// Task is a unit of queued work
type Task func()

// Scheduler queues tasks and runs them one at a time
type Scheduler struct {
	mu       sync.Mutex
	queue    deque.Deque
	draining *abool.AtomicBool
	delay    time.Duration
	logger   *cslog.Logger
	executed int
}

// NewScheduler creates a scheduler. A positive delay is waited before each
// task.
func NewScheduler(delay time.Duration, logger *cslog.Logger) *Scheduler {
	if logger == nil {
		logger = cslog.GetDefault()
	}
	return &Scheduler{
		queue:    deque.NewDeque(),
		draining: abool.NewBool(false),
		delay:    delay,
		logger:   logger.WithField("component", "scheduler"),
	}
}

// Schedule appends a task. It is safe to call from any goroutine.
func (s *Scheduler) Schedule(task Task) {
	s.mu.Lock()
	s.queue.PushBack(task)
	s.mu.Unlock()
}

// Pending returns the number of queued tasks
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Executed returns the number of tasks run so far
func (s *Scheduler) Executed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executed
}

func (s *Scheduler) pop() (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queue.Empty() {
		return nil, false
	}
	task := s.queue.PopFront().(Task)
	s.executed++
	return task, true
}

func (s *Scheduler) clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.queue.Len()
	for !s.queue.Empty() {
		s.queue.PopFront()
	}
	return n
}

// Drain runs queued tasks, including tasks they queue, until the queue is
// empty. When ctx ends first the remaining tasks are discarded. Only one
// Drain may run at a time.
func (s *Scheduler) Drain(ctx context.Context) error {
	if !s.draining.SetToIf(false, true) {
		return cserror.New("scheduler is already draining").
			WithCode(cserror.CodeInternal).
			WithOperation("scheduler.Drain")
	}
	defer s.draining.UnSet()

	for {
		if err := s.wait(ctx); err != nil {
			dropped := s.clear()
			s.logger.Debug("Drain cancelled", cslog.Fields{"dropped": dropped})
			return cserror.Wrap(err, "script run cancelled").
				WithCode(cserror.CodeCancelled).
				WithOperation("scheduler.Drain")
		}

		task, ok := s.pop()
		if !ok {
			return nil
		}
		s.logger.Trace("Running task", cslog.Fields{"pending": s.Pending()})
		task()
	}
}

// IsDraining reports whether a Drain is in progress
func (s *Scheduler) IsDraining() bool {
	return s.draining.IsSet()
}

func (s *Scheduler) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
