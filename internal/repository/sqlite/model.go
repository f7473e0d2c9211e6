package sqlite

import "time"

// Setting is one persisted key/value pair
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
