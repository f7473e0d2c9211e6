// Package store holds the client-side caches of the tracker collections.
// Each REST-backed operation returns immediately with a pending Result; the
// request runs on its own goroutine and the cache is updated when it
// settles. Reads log and swallow failures, writes log and return them.
package store

import (
	"context"
	"slices"

	"tracker-client/internal/api"
	"tracker-client/internal/domain"
	"tracker-client/internal/logging"
)

// crudHooks let specialized stores keep derived views in step with the
// primary collection. They run while the store lock is held.
type crudHooks[T any] struct {
	fetched func(records []T)
	created func(record T)
	updated func(record T)
	deleted func(id int64)
	reset   func()
}

// CrudStore caches one REST collection of records with unique ids.
type CrudStore[T domain.Record, P any] struct {
	state
	client   api.Requester
	endpoint string
	records  []T
	// insert places a created record; append by default.
	insert func(records []T, record T) []T
	hooks  crudHooks[T]
}

// NewCrudStore creates a store for the collection at /<endpoint>/.
func NewCrudStore[T domain.Record, P any](client api.Requester, endpoint string) *CrudStore[T, P] {
	return &CrudStore[T, P]{
		client:   client,
		endpoint: endpoint,
		records:  []T{},
		insert:   func(records []T, record T) []T { return append(records, record) },
	}
}

// Records returns a copy of the cached collection in fetch order.
func (s *CrudStore[T, P]) Records() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Find returns the cached record with the given id.
func (s *CrudStore[T, P]) Find(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := domain.IndexOf(s.records, id); i >= 0 {
		return s.records[i], true
	}
	var zero T
	return zero, false
}

// Fetch replaces the collection with the first page of the server's list.
// Failures are logged and leave the cache untouched; the result never
// carries an error.
func (s *CrudStore[T, P]) Fetch(ctx context.Context) *Pending {
	s.begin()
	return run(func() (struct{}, error) {
		page, err := api.List[T](ctx, s.client, s.endpoint, domain.ListOptions{})
		if err != nil {
			s.settle(nil)
			logging.Errorf("Failed to fetch %s: %v", s.endpoint, err)
			return struct{}{}, nil
		}

		results := page.Results
		if results == nil {
			results = []T{}
		}
		s.settle(func() {
			s.records = results
			if s.hooks.fetched != nil {
				s.hooks.fetched(results)
			}
		})
		return struct{}{}, nil
	})
}

// Create posts input and caches the returned record.
func (s *CrudStore[T, P]) Create(ctx context.Context, input P) *Result[T] {
	s.begin()
	return run(func() (T, error) {
		record, err := api.Create[T](ctx, s.client, s.endpoint, input)
		if err != nil {
			s.settle(nil)
			logging.Errorf("Failed to create %s: %v", s.endpoint, err)
			return record, err
		}

		s.settle(func() {
			s.records = s.insert(slices.Clone(s.records), record)
			if s.hooks.created != nil {
				s.hooks.created(record)
			}
		})
		return record, nil
	})
}

// Update patches one record and replaces it in place.
func (s *CrudStore[T, P]) Update(ctx context.Context, id int64, input P) *Result[T] {
	s.begin()
	return run(func() (T, error) {
		record, err := api.Update[T](ctx, s.client, s.endpoint, id, input)
		if err != nil {
			s.settle(nil)
			logging.Errorf("Failed to update %s %d: %v", s.endpoint, id, err)
			return record, err
		}

		s.settle(func() {
			s.records = domain.ReplaceByID(s.records, id, record)
			if s.hooks.updated != nil {
				s.hooks.updated(record)
			}
		})
		return record, nil
	})
}

// Delete removes one record on the server and from the cache.
func (s *CrudStore[T, P]) Delete(ctx context.Context, id int64) *Pending {
	s.begin()
	return run(func() (struct{}, error) {
		if err := api.Delete(ctx, s.client, s.endpoint, id); err != nil {
			s.settle(nil)
			logging.Errorf("Failed to delete %s %d: %v", s.endpoint, id, err)
			return struct{}{}, err
		}

		s.settle(func() {
			s.records = domain.RemoveByID(s.records, id)
			if s.hooks.deleted != nil {
				s.hooks.deleted(id)
			}
		})
		return struct{}{}, nil
	})
}

// Reset empties the cache and clears the loading flag.
func (s *CrudStore[T, P]) Reset() {
	s.mu.Lock()
	s.records = []T{}
	s.loading = false
	if s.hooks.reset != nil {
		s.hooks.reset()
	}
	s.mu.Unlock()
	s.notify()
}

// ProjectStore caches /projects/.
type ProjectStore = CrudStore[domain.Project, domain.ProjectInput]

// TagStore caches /tags/.
type TagStore = CrudStore[domain.Tag, domain.TagInput]

// NewProjectStore creates the project store.
func NewProjectStore(client api.Requester) *ProjectStore {
	return NewCrudStore[domain.Project, domain.ProjectInput](client, api.EndpointProjects)
}

// NewTagStore creates the tag store.
func NewTagStore(client api.Requester) *TagStore {
	return NewCrudStore[domain.Tag, domain.TagInput](client, api.EndpointTags)
}
