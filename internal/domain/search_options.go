package domain

import (
	"net/url"
	"strconv"
)

// ListOptions are the query parameters understood by collection endpoints.
type ListOptions struct {
	// Ordering is a field name, prefixed with "-" for descending order.
	Ordering string
	// Limit caps the number of results server-side; zero means no limit.
	Limit int
}

// Query renders the options as URL query parameters.
func (o ListOptions) Query() url.Values {
	q := url.Values{}
	if o.Ordering != "" {
		q.Set("ordering", o.Ordering)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}
