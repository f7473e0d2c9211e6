package api

import (
	"context"
	"net/http"
	"strconv"

	"tracker-client/internal/domain"
)

// Collection endpoints.
const (
	EndpointProjects    = "projects"
	EndpointTags        = "tags"
	EndpointTasks       = "tasks"
	EndpointTimeEntries = "time-entries"
	CurrentUserPath     = "/auth/user/"
)

// CollectionPath returns "/<endpoint>/".
func CollectionPath(endpoint string) string {
	return "/" + endpoint + "/"
}

// ItemPath returns "/<endpoint>/<id>/".
func ItemPath(endpoint string, id int64) string {
	return "/" + endpoint + "/" + strconv.FormatInt(id, 10) + "/"
}

// List fetches the first page of a collection.
func List[T any](ctx context.Context, r Requester, endpoint string, opts domain.ListOptions) (*domain.Page[T], error) {
	var page domain.Page[T]
	if err := r.Do(ctx, http.MethodGet, CollectionPath(endpoint), opts.Query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create posts input to a collection and returns the stored record.
func Create[T, P any](ctx context.Context, r Requester, endpoint string, input P) (T, error) {
	var record T
	err := r.Do(ctx, http.MethodPost, CollectionPath(endpoint), nil, input, &record)
	return record, err
}

// Update patches one record and returns it as stored.
func Update[T, P any](ctx context.Context, r Requester, endpoint string, id int64, input P) (T, error) {
	var record T
	err := r.Do(ctx, http.MethodPatch, ItemPath(endpoint, id), nil, input, &record)
	return record, err
}

// Delete removes one record.
func Delete(ctx context.Context, r Requester, endpoint string, id int64) error {
	return r.Do(ctx, http.MethodDelete, ItemPath(endpoint, id), nil, nil, nil)
}

// CurrentUser returns the authenticated account.
func CurrentUser(ctx context.Context, r Requester) (domain.User, error) {
	var user domain.User
	err := r.Do(ctx, http.MethodGet, CurrentUserPath, nil, nil, &user)
	return user, err
}
