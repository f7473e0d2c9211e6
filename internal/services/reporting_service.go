// Package services holds read-side computations over cached store data.
package services

import (
	"regexp"
	"sort"
	"strconv"
	"time"

	"tracker-client/internal/domain"
	"tracker-client/internal/errors"
)

var shorthandPattern = regexp.MustCompile(`^(\d+)(mo|m|h|d|w|y)$`)

// TimeRange is a half-open interval [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// TaskActivity is the time spent on one task, or on entries without a task
// that share a name
type TaskActivity struct {
	TaskID        *int64
	Label         string
	TotalDuration time.Duration
	SessionCount  int
	LastWorked    time.Time
	IsRunning     bool
}

// Summary aggregates a set of time entries
type Summary struct {
	Range         *TimeRange
	Tasks         []TaskActivity
	TotalDuration time.Duration
	SessionCount  int
}

// ReportingService summarizes time entries
type ReportingService struct {
	now func() time.Time
}

// NewReportingService creates a new ReportingService instance. Running
// entries are measured up to now.
func NewReportingService(now func() time.Time) *ReportingService {
	if now == nil {
		now = time.Now
	}
	return &ReportingService{now: now}
}

// ParseTimeRange converts time shorthand ("30m", "2h", "1d", "2w", "3mo",
// "1y") into the range ending now
func (r *ReportingService) ParseTimeRange(shorthand string) (*TimeRange, error) {
	matches := shorthandPattern.FindStringSubmatch(shorthand)
	if matches == nil {
		return nil, errors.NewInvalidInputError("range", shorthand, "expected a number followed by m, h, d, w, mo or y")
	}
	value, err := strconv.Atoi(matches[1])
	if err != nil || value <= 0 {
		return nil, errors.NewInvalidInputError("range", shorthand, "must be a positive amount")
	}

	var unit time.Duration
	switch matches[2] {
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	case "mo":
		unit = 30 * 24 * time.Hour
	case "y":
		unit = 365 * 24 * time.Hour
	}

	end := r.now()
	return &TimeRange{Start: end.Add(-time.Duration(value) * unit), End: end}, nil
}

// Summarize groups entries by task, keeping only entries that start inside
// rng when it is non-nil. Tasks are ordered by total time, longest first.
func (r *ReportingService) Summarize(entries []domain.TimeEntry, rng *TimeRange) Summary {
	now := r.now()
	summary := Summary{Range: rng}
	byKey := make(map[string]*TaskActivity)
	var order []string

	for _, entry := range entries {
		if rng != nil && !rng.Contains(entry.StartTime) {
			continue
		}

		key, label := activityKey(entry)
		activity, ok := byKey[key]
		if !ok {
			activity = &TaskActivity{TaskID: entry.Task, Label: label, LastWorked: entry.StartTime}
			byKey[key] = activity
			order = append(order, key)
		}

		duration := entry.Duration(now)
		activity.TotalDuration += duration
		activity.SessionCount++
		if entry.StartTime.After(activity.LastWorked) {
			activity.LastWorked = entry.StartTime
		}
		if entry.IsRunning() {
			activity.IsRunning = true
		}

		summary.TotalDuration += duration
		summary.SessionCount++
	}

	summary.Tasks = make([]TaskActivity, 0, len(order))
	for _, key := range order {
		summary.Tasks = append(summary.Tasks, *byKey[key])
	}
	sort.SliceStable(summary.Tasks, func(i, j int) bool {
		return summary.Tasks[i].TotalDuration > summary.Tasks[j].TotalDuration
	})
	return summary
}

func activityKey(entry domain.TimeEntry) (key, label string) {
	if entry.Task != nil {
		label = "Task " + strconv.FormatInt(*entry.Task, 10)
		if entry.TaskName != nil && *entry.TaskName != "" {
			label = *entry.TaskName
		}
		return "task:" + strconv.FormatInt(*entry.Task, 10), label
	}
	label = "(untitled)"
	if entry.Name != nil && *entry.Name != "" {
		label = *entry.Name
	}
	return "name:" + label, label
}
