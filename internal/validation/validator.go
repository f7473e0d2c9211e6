package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits enforced by the tracker service.
const (
	ProjectNameMaxLength = 100
	TagNameMaxLength     = 50
	TaskNameMaxLength    = 100
	// MaxTaskLevel is the deepest level a task may sit at (root is 0).
	MaxTaskLevel = 2
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed rune count is within [min, max]
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidColor checks for a #RRGGBB hex color
func (v *Validator) IsValidColor(color string) bool {
	return colorPattern.MatchString(color)
}

// IsValidTimeRange checks that end, when present, is not before start
func (v *Validator) IsValidTimeRange(startTime time.Time, endTime *time.Time) bool {
	if endTime == nil {
		return true
	}
	return !endTime.Before(startTime)
}

// IsValidID checks if a record identifier is positive
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// checkName validates a required, length-limited name field into ve.
func (v *Validator) checkName(ve *ValidationError, field, name string, max int) {
	if !v.IsNonEmptyString(name) {
		ve.AddRequiredError(field)
		return
	}
	if !v.IsValidStringLength(name, 1, max) {
		ve.AddInvalidLengthError(field, name, 1, max)
	}
}
