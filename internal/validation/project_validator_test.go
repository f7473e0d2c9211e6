package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-client/internal/domain"
)

func TestProjectValidator_ValidateForCreation(t *testing.T) {
	pv := NewProjectValidator()

	tests := []struct {
		name    string
		input   domain.ProjectInput
		field   string
		wantErr bool
	}{
		{"name only", domain.ProjectInput{Name: domain.Set("Website")}, "", false},
		{"name and color", domain.ProjectInput{Name: domain.Set("Website"), Color: domain.Set("#FF5733")}, "", false},
		{"missing name", domain.ProjectInput{}, "name", true},
		{"long name", domain.ProjectInput{Name: domain.Set(strings.Repeat("p", 101))}, "name", true},
		{"bad color", domain.ProjectInput{Name: domain.Set("Website"), Color: domain.Set("orange")}, "color", true},
		{"null color", domain.ProjectInput{Name: domain.Set("Website"), Color: domain.Null[string]()}, "color", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pv.ValidateForCreation(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve := err.(*ValidationError)
			assert.NotEmpty(t, ve.GetFieldErrors(tt.field))
		})
	}
}

func TestProjectValidator_ValidateForUpdate(t *testing.T) {
	pv := NewProjectValidator()

	assert.NoError(t, pv.ValidateForUpdate(1, domain.ProjectInput{Color: domain.Set("#000000")}))
	assert.NoError(t, pv.ValidateForUpdate(1, domain.ProjectInput{}))
	assert.Error(t, pv.ValidateForUpdate(0, domain.ProjectInput{}))
	assert.Error(t, pv.ValidateForUpdate(1, domain.ProjectInput{Name: domain.Set(" ")}))
}

func TestProjectValidator_ValidateTag(t *testing.T) {
	pv := NewProjectValidator()

	assert.NoError(t, pv.ValidateTag(domain.TagInput{Name: domain.Set("urgent")}))
	assert.Error(t, pv.ValidateTag(domain.TagInput{}))
	assert.Error(t, pv.ValidateTag(domain.TagInput{Name: domain.Set(strings.Repeat("t", 51))}))
}
