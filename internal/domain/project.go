package domain

import "time"

// DefaultProjectColor is used when a project is created without a color.
const DefaultProjectColor = "#B29632"

// Project groups tasks.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetID implements Record.
func (p Project) GetID() int64 {
	return p.ID
}

// ProjectInput is a partial project sent on create or update.
type ProjectInput struct {
	Name  Field[string] `json:"name,omitzero"`
	Color Field[string] `json:"color,omitzero"`
}

// Tag labels tasks.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// GetID implements Record.
func (t Tag) GetID() int64 {
	return t.ID
}

// TagInput is a partial tag sent on create or update.
type TagInput struct {
	Name Field[string] `json:"name,omitzero"`
}

// User is the authenticated account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
