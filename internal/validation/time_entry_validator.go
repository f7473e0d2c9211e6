package validation

import (
	"time"

	"tracker-client/internal/domain"
)

// TimeEntryValidator provides validation for TimeEntry-related operations
type TimeEntryValidator struct {
	validator *Validator
}

// NewTimeEntryValidator creates a new time entry validator
func NewTimeEntryValidator() *TimeEntryValidator {
	return &TimeEntryValidator{
		validator: NewValidator(),
	}
}

// ValidateForCreation requires a start time
func (tev *TimeEntryValidator) ValidateForCreation(in domain.TimeEntryInput) error {
	ve := NewValidationError()
	start, ok := in.StartTime.Get()
	if !ok || start.IsZero() {
		ve.AddRequiredError("start_time")
	}
	tev.check(ve, in, start)
	return ve.OrNil()
}

// ValidateForUpdate checks the sent fields against the entry's current start
// time, which the range check falls back to when start_time is not sent.
func (tev *TimeEntryValidator) ValidateForUpdate(id int64, in domain.TimeEntryInput, currentStart time.Time) error {
	ve := NewValidationError()
	if !tev.validator.IsValidID(id) {
		ve.AddInvalidValueError("id", id, "must be a positive integer")
	}
	if in.StartTime.IsNull() {
		ve.AddRequiredError("start_time")
	}
	start := currentStart
	if s, ok := in.StartTime.Get(); ok {
		start = s
	}
	tev.check(ve, in, start)
	return ve.OrNil()
}

// ValidateTimeRange checks that end, when present, is not before start
func (tev *TimeEntryValidator) ValidateTimeRange(start time.Time, end *time.Time) error {
	if tev.validator.IsValidTimeRange(start, end) {
		return nil
	}
	ve := NewValidationError()
	ve.AddInvalidRangeError("end_time", *end, "end time must not be before start time")
	return ve
}

func (tev *TimeEntryValidator) check(ve *ValidationError, in domain.TimeEntryInput, start time.Time) {
	if task, ok := in.Task.Get(); ok && !tev.validator.IsValidID(task) {
		ve.AddInvalidValueError("task", task, "must be a positive integer")
	}
	if project, ok := in.Project.Get(); ok && !tev.validator.IsValidID(project) {
		ve.AddInvalidValueError("project", project, "must be a positive integer")
	}
	if end := in.EndTime.Ptr(); end != nil && !start.IsZero() && !tev.validator.IsValidTimeRange(start, end) {
		ve.AddInvalidRangeError("end_time", *end, "end time must not be before start time")
	}
}
