package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestTask_InProject(t *testing.T) {
	tests := []struct {
		name      string
		task      Task
		projectID *int64
		expected  bool
	}{
		{
			name:      "matching project",
			task:      Task{ID: 1, Project: int64Ptr(1)},
			projectID: int64Ptr(1),
			expected:  true,
		},
		{
			name:      "different project",
			task:      Task{ID: 1, Project: int64Ptr(2)},
			projectID: int64Ptr(1),
			expected:  false,
		},
		{
			name:      "inbox task matches nil",
			task:      Task{ID: 1},
			projectID: nil,
			expected:  true,
		},
		{
			name:      "project task does not match nil",
			task:      Task{ID: 1, Project: int64Ptr(1)},
			projectID: nil,
			expected:  false,
		},
		{
			name:      "inbox task does not match a project",
			task:      Task{ID: 1},
			projectID: int64Ptr(1),
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.InProject(tt.projectID))
		})
	}
}

func TestTask_HasAllTags(t *testing.T) {
	task := Task{ID: 1, Tags: []int64{1, 3}}

	tests := []struct {
		name     string
		tagIDs   []int64
		expected bool
	}{
		{"empty filter matches", nil, true},
		{"single present tag", []int64{1}, true},
		{"all present tags", []int64{3, 1}, true},
		{"one missing tag", []int64{1, 2}, false},
		{"absent tag", []int64{2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, task.HasAllTags(tt.tagIDs))
		})
	}
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "My Task", Task{ID: 1, Name: "My Task"}.String())
	assert.True(t, Task{ID: 1}.IsRoot())
	assert.False(t, Task{ID: 2, Parent: int64Ptr(1)}.IsRoot())
}
