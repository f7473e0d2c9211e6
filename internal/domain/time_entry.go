package domain

import (
	"time"
)

// TimeEntry is a span of tracked time, optionally attached to a task.
// A nil EndTime means the entry is still running.
type TimeEntry struct {
	ID              int64      `json:"id"`
	Task            *int64     `json:"task"`
	TaskName        *string    `json:"task_name,omitempty"`
	Project         *int64     `json:"project"`
	Name            *string    `json:"name,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds *int64     `json:"duration_seconds"`
	CreatedAt       time.Time  `json:"created_at"`
}

// GetID implements Record.
func (te TimeEntry) GetID() int64 {
	return te.ID
}

// IsRunning returns true if the time entry is currently running (no end time).
func (te TimeEntry) IsRunning() bool {
	return te.EndTime == nil
}

// Duration returns the duration of the time entry.
// If the entry is still running, it returns the duration up to now.
func (te TimeEntry) Duration(now time.Time) time.Duration {
	if te.EndTime == nil {
		return now.Sub(te.StartTime)
	}
	return te.EndTime.Sub(te.StartTime)
}

// DurationBetween returns the whole seconds between start and end.
func DurationBetween(start, end time.Time) int64 {
	return int64(end.Sub(start) / time.Second)
}

// TimeEntryInput is a partial time entry sent on create or update.
type TimeEntryInput struct {
	Task      Field[int64]     `json:"task,omitzero"`
	Project   Field[int64]     `json:"project,omitzero"`
	Name      Field[string]    `json:"name,omitzero"`
	StartTime Field[time.Time] `json:"start_time,omitzero"`
	EndTime   Field[time.Time] `json:"end_time,omitzero"`
}
