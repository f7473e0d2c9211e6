package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeEntry_IsRunning(t *testing.T) {
	end := time.Now()
	tests := []struct {
		name     string
		entry    TimeEntry
		expected bool
	}{
		{
			name:     "running entry with nil end time",
			entry:    TimeEntry{ID: 1, StartTime: time.Now()},
			expected: true,
		},
		{
			name:     "stopped entry with end time",
			entry:    TimeEntry{ID: 1, StartTime: end.Add(-time.Hour), EndTime: &end},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.IsRunning())
		})
	}
}

func TestTimeEntry_Duration(t *testing.T) {
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 1, 10, 30, 0, 0, time.UTC)

	stopped := TimeEntry{ID: 1, StartTime: start, EndTime: &end}
	assert.Equal(t, 90*time.Minute, stopped.Duration(time.Now()))

	running := TimeEntry{ID: 2, StartTime: start}
	assert.Equal(t, 2*time.Hour, running.Duration(start.Add(2*time.Hour)))
}

func TestDurationBetween(t *testing.T) {
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, int64(3600), DurationBetween(start, start.Add(time.Hour)))
	assert.Equal(t, int64(1), DurationBetween(start, start.Add(1500*time.Millisecond)))
}

func TestActiveTimer_Elapsed(t *testing.T) {
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	timer := NewActiveTimer(nil, start)

	assert.Nil(t, timer.TaskID)
	assert.Equal(t, int64(90), timer.Elapsed(start.Add(90*time.Second)))
}
