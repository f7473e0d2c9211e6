package domain

import "time"

// ActiveTimer describes a running timer. TaskID is nil for a timer that is
// not attached to any task.
type ActiveTimer struct {
	TaskID    *int64
	StartTime time.Time
}

// NewActiveTimer creates a timer descriptor started at startTime.
func NewActiveTimer(taskID *int64, startTime time.Time) *ActiveTimer {
	return &ActiveTimer{
		TaskID:    taskID,
		StartTime: startTime,
	}
}

// Elapsed returns whole seconds between the timer start and now.
func (a ActiveTimer) Elapsed(now time.Time) int64 {
	return DurationBetween(a.StartTime, now)
}
