package store

import (
	"context"
	"slices"

	"tracker-client/internal/api"
	"tracker-client/internal/domain"
	"tracker-client/internal/logging"
)

// DefaultRecentLimit caps the recent-entries view.
const DefaultRecentLimit = 10

// TimeEntryStore caches /time-entries/ newest first, plus a bounded view of
// the most recent entries.
type TimeEntryStore struct {
	*CrudStore[domain.TimeEntry, domain.TimeEntryInput]
	recent      []domain.TimeEntry
	recentLimit int
}

// NewTimeEntryStore creates the time entry store. recentLimit <= 0 selects
// DefaultRecentLimit.
func NewTimeEntryStore(client api.Requester, recentLimit int) *TimeEntryStore {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	s := &TimeEntryStore{
		CrudStore:   NewCrudStore[domain.TimeEntry, domain.TimeEntryInput](client, api.EndpointTimeEntries),
		recent:      []domain.TimeEntry{},
		recentLimit: recentLimit,
	}
	s.insert = prepend[domain.TimeEntry]
	s.hooks = crudHooks[domain.TimeEntry]{
		created: func(record domain.TimeEntry) {
			recent := prepend(slices.Clone(s.recent), record)
			if len(recent) > s.recentLimit {
				recent = recent[:s.recentLimit]
			}
			s.recent = recent
		},
		updated: func(record domain.TimeEntry) {
			s.recent = domain.ReplaceByID(s.recent, record.ID, record)
		},
		deleted: func(id int64) {
			s.recent = domain.RemoveByID(s.recent, id)
		},
		reset: func() {
			s.recent = []domain.TimeEntry{}
		},
	}
	return s
}

// RecentEntries returns a copy of the recent view, newest first.
func (s *TimeEntryStore) RecentEntries() []domain.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recent)
}

// RecentLimit returns the cap applied on create.
func (s *TimeEntryStore) RecentLimit() int {
	return s.recentLimit
}

// FetchRecent replaces the recent view with the newest entries by start
// time. limit <= 0 selects the store's cap. Failures are logged and leave
// the view untouched.
func (s *TimeEntryStore) FetchRecent(ctx context.Context, limit int) *Pending {
	if limit <= 0 {
		limit = s.recentLimit
	}
	opts := domain.ListOptions{Ordering: "-start_time", Limit: limit}

	s.begin()
	return run(func() (struct{}, error) {
		page, err := api.List[domain.TimeEntry](ctx, s.client, s.endpoint, opts)
		if err != nil {
			s.settle(nil)
			logging.Errorf("Failed to fetch recent %s: %v", s.endpoint, err)
			return struct{}{}, nil
		}

		results := page.Results
		if results == nil {
			results = []domain.TimeEntry{}
		}
		s.settle(func() {
			s.recent = results
		})
		return struct{}{}, nil
	})
}

// Running returns the newest cached entry without an end time.
func (s *TimeEntryStore) Running() (domain.TimeEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range [][]domain.TimeEntry{s.recent, s.records} {
		for _, entry := range list {
			if entry.IsRunning() {
				return entry, true
			}
		}
	}
	return domain.TimeEntry{}, false
}

func prepend[T any](records []T, record T) []T {
	return append([]T{record}, records...)
}
