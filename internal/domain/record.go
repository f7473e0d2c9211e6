package domain

// Record is any entity addressed by a unique numeric identifier.
type Record interface {
	GetID() int64
}

// Page is the list envelope returned by every collection endpoint.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// IndexOf returns the position of the record with the given id, or -1.
func IndexOf[T Record](records []T, id int64) int {
	for i, r := range records {
		if r.GetID() == id {
			return i
		}
	}
	return -1
}

// ReplaceByID returns a copy of records with the record matching id replaced
// by updated. Order is preserved; records without a match are returned as-is.
func ReplaceByID[T Record](records []T, id int64, updated T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		if r.GetID() == id {
			out[i] = updated
			continue
		}
		out[i] = r
	}
	return out
}

// RemoveByID returns a copy of records without the record matching id.
func RemoveByID[T Record](records []T, id int64) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.GetID() != id {
			out = append(out, r)
		}
	}
	return out
}
