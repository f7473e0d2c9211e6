package validation

import (
	"tracker-client/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateForCreation requires a name and checks every other sent field
func (tv *TaskValidator) ValidateForCreation(in domain.TaskInput) error {
	ve := NewValidationError()
	name, _ := in.Name.Get()
	tv.validator.checkName(ve, "name", name, TaskNameMaxLength)
	tv.checkReferences(ve, in)
	return ve.OrNil()
}

// ValidateForUpdate checks only the fields that are being sent
func (tv *TaskValidator) ValidateForUpdate(id int64, in domain.TaskInput) error {
	ve := NewValidationError()
	if !tv.validator.IsValidID(id) {
		ve.AddInvalidValueError("id", id, "must be a positive integer")
	}
	if in.Name.IsSet() {
		name, _ := in.Name.Get()
		tv.validator.checkName(ve, "name", name, TaskNameMaxLength)
	}
	tv.checkReferences(ve, in)
	return ve.OrNil()
}

func (tv *TaskValidator) checkReferences(ve *ValidationError, in domain.TaskInput) {
	if project, ok := in.Project.Get(); ok && !tv.validator.IsValidID(project) {
		ve.AddInvalidValueError("project", project, "must be a positive integer")
	}
	if parent, ok := in.Parent.Get(); ok && !tv.validator.IsValidID(parent) {
		ve.AddInvalidValueError("parent", parent, "must be a positive integer")
	}
	if tags, ok := in.Tags.Get(); ok {
		for _, tag := range tags {
			if !tv.validator.IsValidID(tag) {
				ve.AddInvalidValueError("tags", tag, "must be a positive integer")
			}
		}
	}
	if estimate, ok := in.EstimateMinutes.Get(); ok && estimate < 0 {
		ve.AddInvalidValueError("estimate_minutes", estimate, "must not be negative")
	}
}
