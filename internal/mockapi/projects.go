package mockapi

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"tracker-client/internal/domain"
)

var projectOrderings = map[string]func(a, b domain.Project) int{
	"name":       func(a, b domain.Project) int { return strings.Compare(a.Name, b.Name) },
	"created_at": func(a, b domain.Project) int { return compareTime(a.CreatedAt, b.CreatedAt) },
}

var tagOrderings = map[string]func(a, b domain.Tag) int{
	"name":       func(a, b domain.Tag) int { return strings.Compare(a.Name, b.Name) },
	"created_at": func(a, b domain.Tag) int { return compareTime(a.CreatedAt, b.CreatedAt) },
}

func (s *Server) handleListProjects(c *gin.Context) {
	s.mu.Lock()
	items := slices.Clone(s.store.projects)
	s.mu.Unlock()

	orderBy(items, c.Query("ordering"), "name", projectOrderings)
	respondPage(c, items)
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.projects, id)
	if i < 0 {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.store.projects[i])
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var in domain.ProjectInput
	if !bind(c, &in) {
		return
	}
	if err := s.project.ValidateForCreation(in); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, _ := in.Name.Get()
	color, ok := in.Color.Get()
	if !ok {
		color = domain.DefaultProjectColor
	}
	now := s.now()
	project := domain.Project{
		ID:        s.allocID("projects"),
		Name:      strings.TrimSpace(name),
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.projects = append(s.store.projects, project)
	c.JSON(http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in domain.ProjectInput
	if !bind(c, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.projects, id)
	if i < 0 {
		notFound(c)
		return
	}
	if err := s.project.ValidateForUpdate(id, in); err != nil {
		badRequest(c, err)
		return
	}

	project := s.store.projects[i]
	if name, ok := in.Name.Get(); ok {
		project.Name = strings.TrimSpace(name)
	}
	if color, ok := in.Color.Get(); ok {
		project.Color = color
	}
	project.UpdatedAt = s.now()
	s.store.projects[i] = project
	c.JSON(http.StatusOK, project)
}

// handleDeleteProject detaches the project's tasks and entries.
func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.IndexOf(s.store.projects, id) < 0 {
		notFound(c)
		return
	}
	s.store.projects = domain.RemoveByID(s.store.projects, id)
	for i := range s.store.tasks {
		if s.store.tasks[i].Project != nil && *s.store.tasks[i].Project == id {
			s.store.tasks[i].Project = nil
		}
	}
	for i := range s.store.entries {
		if s.store.entries[i].Project != nil && *s.store.entries[i].Project == id {
			s.store.entries[i].Project = nil
		}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleListTags(c *gin.Context) {
	s.mu.Lock()
	items := slices.Clone(s.store.tags)
	s.mu.Unlock()

	orderBy(items, c.Query("ordering"), "name", tagOrderings)
	respondPage(c, items)
}

func (s *Server) handleGetTag(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.tags, id)
	if i < 0 {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, s.store.tags[i])
}

func (s *Server) handleCreateTag(c *gin.Context) {
	var in domain.TagInput
	if !bind(c, &in) {
		return
	}
	if err := s.project.ValidateTag(in); err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name, _ := in.Name.Get()
	name = strings.TrimSpace(name)
	if s.tagNamed(name, 0) {
		badRequest(c, fieldError("name", "tag with this name already exists."))
		return
	}
	tag := domain.Tag{ID: s.allocID("tags"), Name: name, CreatedAt: s.now()}
	s.store.tags = append(s.store.tags, tag)
	c.JSON(http.StatusCreated, tag)
}

func (s *Server) handleUpdateTag(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in domain.TagInput
	if !bind(c, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := domain.IndexOf(s.store.tags, id)
	if i < 0 {
		notFound(c)
		return
	}
	if !in.Name.IsSet() {
		c.JSON(http.StatusOK, s.store.tags[i])
		return
	}
	if err := s.project.ValidateTag(in); err != nil {
		badRequest(c, err)
		return
	}
	name, _ := in.Name.Get()
	name = strings.TrimSpace(name)
	if s.tagNamed(name, id) {
		badRequest(c, fieldError("name", "tag with this name already exists."))
		return
	}
	s.store.tags[i].Name = name
	c.JSON(http.StatusOK, s.store.tags[i])
}

// handleDeleteTag also removes the tag from every task carrying it.
func (s *Server) handleDeleteTag(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.IndexOf(s.store.tags, id) < 0 {
		notFound(c)
		return
	}
	s.store.tags = domain.RemoveByID(s.store.tags, id)
	for i := range s.store.tasks {
		s.store.tasks[i].Tags = slices.DeleteFunc(slices.Clone(s.store.tasks[i].Tags), func(t int64) bool { return t == id })
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) tagNamed(name string, except int64) bool {
	for _, tag := range s.store.tags {
		if tag.ID != except && strings.EqualFold(tag.Name, name) {
			return true
		}
	}
	return false
}
