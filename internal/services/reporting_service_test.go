package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-client/internal/domain"
	"tracker-client/internal/errors"
)

var now = time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)

func newService() *ReportingService {
	return NewReportingService(func() time.Time { return now })
}

func ptr[T any](v T) *T {
	return &v
}

func entry(id int64, task *int64, name string, start time.Time, minutes int) domain.TimeEntry {
	e := domain.TimeEntry{ID: id, Task: task, StartTime: start}
	if name != "" {
		e.Name = ptr(name)
	}
	if minutes >= 0 {
		end := start.Add(time.Duration(minutes) * time.Minute)
		e.EndTime = &end
	}
	return e
}

func TestReportingService_ParseTimeRange(t *testing.T) {
	s := newService()

	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30m", 30 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"3mo", 90 * 24 * time.Hour},
		{"1y", 365 * 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rng, err := s.ParseTimeRange(tt.input)
			require.NoError(t, err)
			assert.Equal(t, now, rng.End)
			assert.Equal(t, now.Add(-tt.want), rng.Start)
		})
	}

	for _, bad := range []string{"", "m", "0d", "5x", "1 d", "-1h"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := s.ParseTimeRange(bad)
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		})
	}
}

func TestReportingService_Summarize(t *testing.T) {
	s := newService()
	entries := []domain.TimeEntry{
		entry(1, ptr(int64(1)), "", now.Add(-5*time.Hour), 60),
		entry(2, ptr(int64(2)), "", now.Add(-4*time.Hour), 30),
		entry(3, ptr(int64(1)), "", now.Add(-3*time.Hour), 45),
		entry(4, nil, "Standup", now.Add(-2*time.Hour), 15),
		entry(5, nil, "", now.Add(-30*time.Minute), -1),
	}
	entries[0].TaskName = ptr("Write report")

	summary := s.Summarize(entries, nil)

	assert.Equal(t, 5, summary.SessionCount)
	assert.Equal(t, 180*time.Minute, summary.TotalDuration)
	require.Len(t, summary.Tasks, 4)

	first := summary.Tasks[0]
	assert.Equal(t, "Write report", first.Label)
	assert.Equal(t, 105*time.Minute, first.TotalDuration)
	assert.Equal(t, 2, first.SessionCount)
	assert.Equal(t, now.Add(-3*time.Hour), first.LastWorked)
	assert.False(t, first.IsRunning)

	var labels []string
	for _, a := range summary.Tasks {
		labels = append(labels, a.Label)
	}
	assert.Equal(t, []string{"Write report", "Task 2", "(untitled)", "Standup"}, labels)
	assert.True(t, summary.Tasks[2].IsRunning)
	assert.Equal(t, 30*time.Minute, summary.Tasks[2].TotalDuration)
}

func TestReportingService_SummarizeWithinRange(t *testing.T) {
	s := newService()
	entries := []domain.TimeEntry{
		entry(1, ptr(int64(1)), "", now.Add(-26*time.Hour), 60),
		entry(2, ptr(int64(1)), "", now.Add(-1*time.Hour), 20),
	}

	rng, err := s.ParseTimeRange("1d")
	require.NoError(t, err)
	summary := s.Summarize(entries, rng)

	assert.Equal(t, 1, summary.SessionCount)
	assert.Equal(t, 20*time.Minute, summary.TotalDuration)
	assert.Same(t, rng, summary.Range)

	empty := s.Summarize(nil, rng)
	assert.Empty(t, empty.Tasks)
	assert.NotNil(t, empty.Tasks)
}
