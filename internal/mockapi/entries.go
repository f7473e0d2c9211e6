package mockapi

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"tracker-client/internal/domain"
)

var entryOrderings = map[string]func(a, b domain.TimeEntry) int{
	"start_time": func(a, b domain.TimeEntry) int { return compareTime(a.StartTime, b.StartTime) },
	"created_at": func(a, b domain.TimeEntry) int { return compareTime(a.CreatedAt, b.CreatedAt) },
}

func (s *Server) handleListEntries(c *gin.Context) {
	s.mu.Lock()
	items := make([]domain.TimeEntry, len(s.store.entries))
	for i, entry := range s.store.entries {
		items[i] = s.decorateEntry(entry)
	}
	s.mu.Unlock()

	orderBy(items, c.Query("ordering"), "-start_time", entryOrderings)
	respondPage(c, items)
}

func (s *Server) handleGetEntry(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.entries, id)
	if i < 0 {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.decorateEntry(s.store.entries[i]))
}

func (s *Server) handleCreateEntry(c *gin.Context) {
	var in domain.TimeEntryInput
	if !bind(c, &in) {
		return
	}
	if err := s.entry.ValidateForCreation(in); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start, _ := in.StartTime.Get()
	entry := domain.TimeEntry{
		StartTime: start.UTC(),
		Name:      in.Name.Ptr(),
		CreatedAt: s.now(),
	}
	if end := in.EndTime.Ptr(); end != nil {
		utc := end.UTC()
		entry.EndTime = &utc
	}
	if err := s.applyEntryRefs(&entry, in); err != nil {
		badRequest(c, err)
		return
	}

	entry.ID = s.allocID("time-entries")
	deriveDuration(&entry)
	s.store.entries = append(s.store.entries, entry)
	c.JSON(http.StatusCreated, s.decorateEntry(entry))
}

func (s *Server) handleUpdateEntry(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in domain.TimeEntryInput
	if !bind(c, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.entries, id)
	if i < 0 {
		notFound(c)
		return
	}
	entry := s.store.entries[i]
	if err := s.entry.ValidateForUpdate(id, in, entry.StartTime); err != nil {
		badRequest(c, err)
		return
	}

	if start, ok := in.StartTime.Get(); ok {
		entry.StartTime = start.UTC()
	}
	if in.EndTime.IsSet() {
		entry.EndTime = nil
		if end := in.EndTime.Ptr(); end != nil {
			utc := end.UTC()
			entry.EndTime = &utc
		}
	}
	if in.Name.IsSet() {
		entry.Name = in.Name.Ptr()
	}
	if err := s.entry.ValidateTimeRange(entry.StartTime, entry.EndTime); err != nil {
		badRequest(c, err)
		return
	}
	if err := s.applyEntryRefs(&entry, in); err != nil {
		badRequest(c, err)
		return
	}

	deriveDuration(&entry)
	s.store.entries[i] = entry
	c.JSON(http.StatusOK, s.decorateEntry(entry))
}

func (s *Server) handleDeleteEntry(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.IndexOf(s.store.entries, id) < 0 {
		notFound(c)
		return
	}
	s.store.entries = domain.RemoveByID(s.store.entries, id)
	c.Status(http.StatusNoContent)
}

// applyEntryRefs resolves task and project. An entry attached to a task
// takes the task's project.
func (s *Server) applyEntryRefs(entry *domain.TimeEntry, in domain.TimeEntryInput) error {
	if in.Task.IsSet() {
		entry.Task = nil
		if task := in.Task.Ptr(); task != nil {
			if domain.IndexOf(s.store.tasks, *task) < 0 {
				return invalidPK("task", *task)
			}
			entry.Task = task
		}
	}

	if entry.Task != nil {
		i := domain.IndexOf(s.store.tasks, *entry.Task)
		entry.Project = copyRef(s.store.tasks[i].Project)
		return nil
	}

	if in.Project.IsSet() {
		project := in.Project.Ptr()
		if project != nil && domain.IndexOf(s.store.projects, *project) < 0 {
			return invalidPK("project", *project)
		}
		entry.Project = project
	}
	return nil
}

func (s *Server) decorateEntry(entry domain.TimeEntry) domain.TimeEntry {
	entry.TaskName = nil
	if entry.Task != nil {
		if i := domain.IndexOf(s.store.tasks, *entry.Task); i >= 0 {
			name := s.store.tasks[i].Name
			entry.TaskName = &name
		}
	}
	return entry
}

// deriveDuration sets duration_seconds for completed entries and clears it
// for running ones.
func deriveDuration(entry *domain.TimeEntry) {
	entry.DurationSeconds = nil
	if entry.EndTime != nil {
		d := domain.DurationBetween(entry.StartTime, *entry.EndTime)
		entry.DurationSeconds = &d
	}
}

// Entries returns a snapshot of the stored time entries.
func (s *Server) Entries() []domain.TimeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.store.entries)
}
