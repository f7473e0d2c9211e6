package store

import (
	"slices"

	"tracker-client/internal/api"
	"tracker-client/internal/domain"
)

// TaskStore caches /tasks/ and a filtered view of it.
//
// Fetch and Create reset the view to the full collection. Update and
// Delete apply to both collections by id without re-running the last
// filter, so an updated task stays in the view even if it no longer
// matches.
type TaskStore struct {
	*CrudStore[domain.Task, domain.TaskInput]
	filtered []domain.Task
}

// NewTaskStore creates the task store.
func NewTaskStore(client api.Requester) *TaskStore {
	s := &TaskStore{
		CrudStore: NewCrudStore[domain.Task, domain.TaskInput](client, api.EndpointTasks),
		filtered:  []domain.Task{},
	}
	s.hooks = crudHooks[domain.Task]{
		fetched: func(records []domain.Task) {
			s.filtered = slices.Clone(records)
		},
		created: func(domain.Task) {
			s.filtered = slices.Clone(s.records)
		},
		updated: func(record domain.Task) {
			s.filtered = domain.ReplaceByID(s.filtered, record.ID, record)
		},
		deleted: func(id int64) {
			s.filtered = domain.RemoveByID(s.filtered, id)
		},
		reset: func() {
			s.filtered = []domain.Task{}
		},
	}
	return s
}

// FilteredRecords returns a copy of the filtered view.
func (s *TaskStore) FilteredRecords() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.filtered)
}

// FilterByProject keeps the tasks in projectID; nil keeps unassigned tasks.
func (s *TaskStore) FilterByProject(projectID *int64) {
	s.filter(func(t domain.Task) bool { return t.InProject(projectID) })
}

// FilterByTags keeps the tasks carrying every id in tagIDs. An empty set
// keeps every task.
func (s *TaskStore) FilterByTags(tagIDs []int64) {
	s.filter(func(t domain.Task) bool { return t.HasAllTags(tagIDs) })
}

// ClearFilters makes the view equal to the full collection.
func (s *TaskStore) ClearFilters() {
	s.filter(func(domain.Task) bool { return true })
}

func (s *TaskStore) filter(keep func(domain.Task) bool) {
	s.mu.Lock()
	filtered := make([]domain.Task, 0, len(s.records))
	for _, task := range s.records {
		if keep(task) {
			filtered = append(filtered, task)
		}
	}
	s.filtered = filtered
	s.mu.Unlock()
	s.notify()
}
