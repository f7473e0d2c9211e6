package store

import (
	"sync"

	"tracker-client/internal/domain"
)

// TimerState is the coarse state of the timer.
type TimerState int

const (
	// Idle means no timer is active or the active timer is paused.
	Idle TimerState = iota
	// Running means the active timer is counting.
	Running
)

func (s TimerState) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// TimerSnapshot is a consistent view of the timer store.
type TimerSnapshot struct {
	IsRunning      bool
	ElapsedSeconds int64
	ActiveTimer    *domain.ActiveTimer
}

// TimerStore tracks the local running timer. It is not REST-backed and all
// operations are synchronous.
type TimerStore struct {
	notifier
	mu        sync.RWMutex
	isRunning bool
	elapsed   int64
	active    *domain.ActiveTimer
}

// NewTimerStore returns an idle timer.
func NewTimerStore() *TimerStore {
	return &TimerStore{}
}

// SetActiveTimer attaches timer and starts running, or with nil detaches
// and stops.
func (s *TimerStore) SetActiveTimer(timer *domain.ActiveTimer) {
	s.mu.Lock()
	s.active = copyTimer(timer)
	s.isRunning = timer != nil
	s.mu.Unlock()
	s.notify()
}

// SetIsRunning overrides the running flag only; the active timer is kept,
// which is how a timer is paused.
func (s *TimerStore) SetIsRunning(running bool) {
	s.mu.Lock()
	s.isRunning = running
	s.mu.Unlock()
	s.notify()
}

// UpdateElapsed overwrites the elapsed seconds.
func (s *TimerStore) UpdateElapsed(seconds int64) {
	s.mu.Lock()
	s.elapsed = seconds
	s.mu.Unlock()
	s.notify()
}

// Reset returns to idle with no timer and zero elapsed.
func (s *TimerStore) Reset() {
	s.mu.Lock()
	s.isRunning = false
	s.elapsed = 0
	s.active = nil
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns the current state.
func (s *TimerStore) Snapshot() TimerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TimerSnapshot{
		IsRunning:      s.isRunning,
		ElapsedSeconds: s.elapsed,
		ActiveTimer:    copyTimer(s.active),
	}
}

// State returns Running when the running flag is set.
func (s *TimerStore) State() TimerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.isRunning {
		return Running
	}
	return Idle
}

func copyTimer(timer *domain.ActiveTimer) *domain.ActiveTimer {
	if timer == nil {
		return nil
	}
	var taskID *int64
	if timer.TaskID != nil {
		id := *timer.TaskID
		taskID = &id
	}
	return domain.NewActiveTimer(taskID, timer.StartTime)
}
