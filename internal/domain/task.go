package domain

import "time"

// Task is a unit of work, optionally filed under a project and nested under
// a parent task (at most three levels deep).
type Task struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Project         *int64    `json:"project"`
	ProjectName     string    `json:"project_name,omitempty"`
	Parent          *int64    `json:"parent"`
	ParentName      string    `json:"parent_name,omitempty"`
	Tags            []int64   `json:"tags"`
	TagNames        []string  `json:"tag_names,omitempty"`
	Level           int       `json:"level"`
	Root            *int64    `json:"root"`
	EstimateMinutes *int      `json:"estimate_minutes"`
	DurationSeconds int64     `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// GetID implements Record.
func (t Task) GetID() int64 {
	return t.ID
}

// InProject reports whether the task belongs to projectID. A nil projectID
// matches tasks without a project (the inbox).
func (t Task) InProject(projectID *int64) bool {
	if projectID == nil || t.Project == nil {
		return projectID == nil && t.Project == nil
	}
	return *t.Project == *projectID
}

// HasTag reports whether tagID is in the task's tag set.
func (t Task) HasTag(tagID int64) bool {
	for _, id := range t.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// HasAllTags reports whether every id in tagIDs is in the task's tag set.
// An empty tagIDs matches every task.
func (t Task) HasAllTags(tagIDs []int64) bool {
	for _, id := range tagIDs {
		if !t.HasTag(id) {
			return false
		}
	}
	return true
}

// IsRoot reports whether the task has no parent.
func (t Task) IsRoot() bool {
	return t.Parent == nil
}

// String returns the task name for display purposes.
func (t Task) String() string {
	return t.Name
}

// TaskInput is a partial task sent on create or update.
type TaskInput struct {
	Name            Field[string]  `json:"name,omitzero"`
	Project         Field[int64]   `json:"project,omitzero"`
	Parent          Field[int64]   `json:"parent,omitzero"`
	Tags            Field[[]int64] `json:"tags,omitzero"`
	EstimateMinutes Field[int]     `json:"estimate_minutes,omitzero"`
}
