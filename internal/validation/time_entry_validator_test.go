package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-client/internal/domain"
)

func TestTimeEntryValidator_ValidateForCreation(t *testing.T) {
	tev := NewTimeEntryValidator()
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, tev.ValidateForCreation(domain.TimeEntryInput{StartTime: domain.Set(start)}))
	assert.NoError(t, tev.ValidateForCreation(domain.TimeEntryInput{
		Task:      domain.Set[int64](1),
		StartTime: domain.Set(start),
		EndTime:   domain.Set(start.Add(time.Hour)),
	}))

	err := tev.ValidateForCreation(domain.TimeEntryInput{})
	require.Error(t, err)
	assert.NotEmpty(t, err.(*ValidationError).GetFieldErrors("start_time"))

	err = tev.ValidateForCreation(domain.TimeEntryInput{
		StartTime: domain.Set(start),
		EndTime:   domain.Set(start.Add(-time.Second)),
	})
	require.Error(t, err)
	assert.NotEmpty(t, err.(*ValidationError).GetFieldErrors("end_time"))
}

func TestTimeEntryValidator_ValidateForUpdate(t *testing.T) {
	tev := NewTimeEntryValidator()
	current := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	// stopping a running entry checks against the stored start
	assert.NoError(t, tev.ValidateForUpdate(1, domain.TimeEntryInput{EndTime: domain.Set(current.Add(time.Minute))}, current))
	assert.Error(t, tev.ValidateForUpdate(1, domain.TimeEntryInput{EndTime: domain.Set(current.Add(-time.Minute))}, current))

	// resuming clears the end time
	assert.NoError(t, tev.ValidateForUpdate(1, domain.TimeEntryInput{EndTime: domain.Null[time.Time]()}, current))

	assert.Error(t, tev.ValidateForUpdate(1, domain.TimeEntryInput{StartTime: domain.Null[time.Time]()}, current))
}

func TestTimeEntryValidator_ValidateTimeRange(t *testing.T) {
	tev := NewTimeEntryValidator()
	start := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	assert.NoError(t, tev.ValidateTimeRange(start, nil))
	assert.Error(t, tev.ValidateTimeRange(start, &end))
}
