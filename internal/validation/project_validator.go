package validation

import (
	"tracker-client/internal/domain"
)

// ProjectValidator validates project and tag inputs
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{
		validator: NewValidator(),
	}
}

// ValidateForCreation requires a name; color is optional
func (pv *ProjectValidator) ValidateForCreation(in domain.ProjectInput) error {
	ve := NewValidationError()
	name, _ := in.Name.Get()
	pv.validator.checkName(ve, "name", name, ProjectNameMaxLength)
	pv.checkColor(ve, in)
	return ve.OrNil()
}

// ValidateForUpdate checks only the fields that are being sent
func (pv *ProjectValidator) ValidateForUpdate(id int64, in domain.ProjectInput) error {
	ve := NewValidationError()
	if !pv.validator.IsValidID(id) {
		ve.AddInvalidValueError("id", id, "must be a positive integer")
	}
	if in.Name.IsSet() {
		name, _ := in.Name.Get()
		pv.validator.checkName(ve, "name", name, ProjectNameMaxLength)
	}
	pv.checkColor(ve, in)
	return ve.OrNil()
}

// ValidateTag requires a tag name of at most TagNameMaxLength characters
func (pv *ProjectValidator) ValidateTag(in domain.TagInput) error {
	ve := NewValidationError()
	name, _ := in.Name.Get()
	pv.validator.checkName(ve, "name", name, TagNameMaxLength)
	return ve.OrNil()
}

func (pv *ProjectValidator) checkColor(ve *ValidationError, in domain.ProjectInput) {
	if in.Color.IsNull() {
		ve.AddRequiredError("color")
		return
	}
	if color, ok := in.Color.Get(); ok && !pv.validator.IsValidColor(color) {
		ve.AddInvalidFormatError("color", color, "#RRGGBB")
	}
}
