package domain

import (
	"bytes"
	"encoding/json"
)

// Field is one attribute of a partial record sent on create or update.
// The zero value means "not sent"; Null sends an explicit JSON null so a
// nullable reference (for example a task's project) can be cleared.
type Field[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns a field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Null returns a field that is sent as JSON null.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsZero reports whether the field was left unset. It lets `omitzero`
// drop unset fields from the request body.
func (f Field[T]) IsZero() bool {
	return !f.set
}

// IsSet reports whether the field carries a value or an explicit null.
func (f Field[T]) IsSet() bool {
	return f.set
}

// IsNull reports whether the field is an explicit null.
func (f Field[T]) IsNull() bool {
	return f.set && f.null
}

// Get returns the value and whether a non-null value is present.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set && !f.null
}

// Ptr returns nil for unset or null fields and a pointer to a copy of the
// value otherwise.
func (f Field[T]) Ptr() *T {
	if !f.set || f.null {
		return nil
	}
	v := f.value
	return &v
}

// MarshalJSON implements json.Marshaler.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// UnmarshalJSON implements json.Unmarshaler. A literal null marks the field
// as an explicit null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Set(v)
	return nil
}
