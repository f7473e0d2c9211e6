package mockapi

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"tracker-client/internal/domain"
	"tracker-client/internal/validation"
)

var taskOrderings = map[string]func(a, b domain.Task) int{
	"name":       func(a, b domain.Task) int { return strings.Compare(a.Name, b.Name) },
	"created_at": func(a, b domain.Task) int { return compareTime(a.CreatedAt, b.CreatedAt) },
	"updated_at": func(a, b domain.Task) int { return compareTime(a.UpdatedAt, b.UpdatedAt) },
}

func (s *Server) handleListTasks(c *gin.Context) {
	s.mu.Lock()
	items := make([]domain.Task, len(s.store.tasks))
	for i, task := range s.store.tasks {
		items[i] = s.decorateTask(task)
	}
	s.mu.Unlock()

	orderBy(items, c.Query("ordering"), "-created_at", taskOrderings)
	respondPage(c, items)
}

func (s *Server) handleGetTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.tasks, id)
	if i < 0 {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.decorateTask(s.store.tasks[i]))
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var in domain.TaskInput
	if !bind(c, &in) {
		return
	}
	if err := s.task.ValidateForCreation(in); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, _ := in.Name.Get()
	task := domain.Task{
		Name:            strings.TrimSpace(name),
		Tags:            []int64{},
		EstimateMinutes: in.EstimateMinutes.Ptr(),
	}
	if err := s.applyTaskRefs(&task, in); err != nil {
		badRequest(c, err)
		return
	}

	now := s.now()
	task.ID = s.allocID("tasks")
	task.CreatedAt = now
	task.UpdatedAt = now
	s.store.tasks = append(s.store.tasks, task)
	c.JSON(http.StatusCreated, s.decorateTask(task))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in domain.TaskInput
	if !bind(c, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.tasks, id)
	if i < 0 {
		notFound(c)
		return
	}
	if err := s.task.ValidateForUpdate(id, in); err != nil {
		badRequest(c, err)
		return
	}

	task := s.store.tasks[i]
	task.Tags = slices.Clone(task.Tags)
	if name, ok := in.Name.Get(); ok {
		task.Name = strings.TrimSpace(name)
	}
	if in.EstimateMinutes.IsSet() {
		task.EstimateMinutes = in.EstimateMinutes.Ptr()
	}
	if err := s.applyTaskRefs(&task, in); err != nil {
		badRequest(c, err)
		return
	}

	task.UpdatedAt = s.now()
	s.store.tasks[i] = task
	s.refreshDescendants(task)
	c.JSON(http.StatusOK, s.decorateTask(task))
}

// handleDeleteTask removes the task with its subtasks and detaches their
// time entries.
func (s *Server) handleDeleteTask(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.IndexOf(s.store.tasks, id) < 0 {
		notFound(c)
		return
	}
	removed := s.subtree(id)
	s.store.tasks = slices.DeleteFunc(slices.Clone(s.store.tasks), func(t domain.Task) bool {
		return slices.Contains(removed, t.ID)
	})
	for i := range s.store.entries {
		if task := s.store.entries[i].Task; task != nil && slices.Contains(removed, *task) {
			s.store.entries[i].Task = nil
		}
	}
	c.Status(http.StatusNoContent)
}

// applyTaskRefs resolves the tag, parent and project references in in.
// Subtasks take their project from the hierarchy; project is only honored
// on root tasks.
func (s *Server) applyTaskRefs(task *domain.Task, in domain.TaskInput) error {
	if tags, ok := in.Tags.Get(); ok {
		unique := make([]int64, 0, len(tags))
		for _, tag := range tags {
			if domain.IndexOf(s.store.tags, tag) < 0 {
				return invalidPK("tags", tag)
			}
			if !slices.Contains(unique, tag) {
				unique = append(unique, tag)
			}
		}
		task.Tags = unique
	} else if in.Tags.IsNull() {
		task.Tags = []int64{}
	}

	if in.Parent.IsSet() {
		if err := s.placeUnder(task, in.Parent.Ptr()); err != nil {
			return err
		}
	}

	if task.Parent == nil && in.Project.IsSet() {
		project := in.Project.Ptr()
		if project != nil && domain.IndexOf(s.store.projects, *project) < 0 {
			return invalidPK("project", *project)
		}
		task.Project = project
	}
	return nil
}

// placeUnder moves task below parentID, or to the top level when nil.
func (s *Server) placeUnder(task *domain.Task, parentID *int64) error {
	if parentID == nil {
		task.Parent = nil
		task.Level = 0
		task.Root = nil
		return nil
	}

	i := domain.IndexOf(s.store.tasks, *parentID)
	if i < 0 {
		return invalidPK("parent", *parentID)
	}
	parent := s.store.tasks[i]

	height := 0
	if task.ID != 0 {
		if slices.Contains(s.subtree(task.ID), parent.ID) {
			return fieldError("parent", "A task cannot be nested under itself or its subtasks.")
		}
		height = s.subtreeHeight(task.ID)
	}
	if parent.Level+1+height > validation.MaxTaskLevel {
		return fieldError("parent", fmt.Sprintf("Maximum nesting depth is %d levels.", validation.MaxTaskLevel+1))
	}

	parentRef := parent.ID
	root := parent.ID
	if parent.Root != nil {
		root = *parent.Root
	}
	task.Parent = &parentRef
	task.Level = parent.Level + 1
	task.Root = &root
	task.Project = copyRef(parent.Project)
	return nil
}

// refreshDescendants pushes level, root and project down from task.
func (s *Server) refreshDescendants(task domain.Task) {
	root := task.ID
	if task.Root != nil {
		root = *task.Root
	}
	for i := range s.store.tasks {
		child := &s.store.tasks[i]
		if child.Parent == nil || *child.Parent != task.ID {
			continue
		}
		childRoot := root
		child.Level = task.Level + 1
		child.Root = &childRoot
		child.Project = copyRef(task.Project)
		s.refreshDescendants(*child)
	}
}

// subtree returns id followed by every descendant id.
func (s *Server) subtree(id int64) []int64 {
	ids := []int64{id}
	for _, task := range s.store.tasks {
		if task.Parent != nil && *task.Parent == id {
			ids = append(ids, s.subtree(task.ID)...)
		}
	}
	return ids
}

func (s *Server) subtreeHeight(id int64) int {
	height := 0
	for _, task := range s.store.tasks {
		if task.Parent != nil && *task.Parent == id {
			height = max(height, 1+s.subtreeHeight(task.ID))
		}
	}
	return height
}

// decorateTask fills the display names and the tracked duration, which sums
// the completed entries of the task and all of its subtasks.
func (s *Server) decorateTask(task domain.Task) domain.Task {
	task.Tags = slices.Clone(task.Tags)
	task.ProjectName = ""
	if task.Project != nil {
		if i := domain.IndexOf(s.store.projects, *task.Project); i >= 0 {
			task.ProjectName = s.store.projects[i].Name
		}
	}
	task.ParentName = ""
	if task.Parent != nil {
		if i := domain.IndexOf(s.store.tasks, *task.Parent); i >= 0 {
			task.ParentName = s.store.tasks[i].Name
		}
	}
	task.TagNames = make([]string, 0, len(task.Tags))
	for _, tag := range task.Tags {
		if i := domain.IndexOf(s.store.tags, tag); i >= 0 {
			task.TagNames = append(task.TagNames, s.store.tags[i].Name)
		}
	}

	ids := s.subtree(task.ID)
	var total int64
	for _, entry := range s.store.entries {
		if entry.Task != nil && entry.DurationSeconds != nil && slices.Contains(ids, *entry.Task) {
			total += *entry.DurationSeconds
		}
	}
	task.DurationSeconds = total
	return task
}

func invalidPK(field string, id int64) error {
	return fieldError(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

func copyRef(ref *int64) *int64 {
	if ref == nil {
		return nil
	}
	v := *ref
	return &v
}
