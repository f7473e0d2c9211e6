// Package mockapi is an in-process tracker backend for local development
// and tests. It keeps every collection in memory and follows the REST
// conventions of the real service: list envelopes, 201 on create, 204 on
// delete, 404 for unknown ids, 400 with a field map on invalid input and
// 401 {"detail": ...} when token checking is enabled.
package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tracker-client/internal/domain"
	"tracker-client/internal/validation"
)

// Options configures a Server.
type Options struct {
	// Tokens enables credential checking when non-empty.
	Tokens []string
	// Seed preloads the fixture user, projects, tags, tasks and entries.
	Seed bool
	// Now replaces the clock used for created_at/updated_at stamps.
	Now func() time.Time
}

// Server is the mock backend
type Server struct {
	mu      sync.Mutex
	router  *gin.Engine
	tokens  map[string]bool
	now     func() time.Time
	user    domain.User
	nextID  map[string]int64
	store   dataset
	project *validation.ProjectValidator
	task    *validation.TaskValidator
	entry   *validation.TimeEntryValidator
}

type dataset struct {
	projects []domain.Project
	tags     []domain.Tag
	tasks    []domain.Task
	entries  []domain.TimeEntry
}

// New creates a mock backend
func New(opts Options) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		router:  router,
		tokens:  make(map[string]bool, len(opts.Tokens)),
		now:     func() time.Time { return now().UTC() },
		user:    domain.User{ID: 1, Username: "testuser", Email: "test@example.com"},
		nextID:  map[string]int64{},
		project: validation.NewProjectValidator(),
		task:    validation.NewTaskValidator(),
		entry:   validation.NewTimeEntryValidator(),
	}
	for _, token := range opts.Tokens {
		s.tokens[token] = true
	}
	if opts.Seed {
		s.seed()
	}

	api := router.Group("/api", s.authenticate)
	{
		api.GET("/auth/user/", s.handleCurrentUser)

		api.GET("/projects/", s.handleListProjects)
		api.POST("/projects/", s.handleCreateProject)
		api.GET("/projects/:id/", s.handleGetProject)
		api.PATCH("/projects/:id/", s.handleUpdateProject)
		api.DELETE("/projects/:id/", s.handleDeleteProject)

		api.GET("/tags/", s.handleListTags)
		api.POST("/tags/", s.handleCreateTag)
		api.GET("/tags/:id/", s.handleGetTag)
		api.PATCH("/tags/:id/", s.handleUpdateTag)
		api.DELETE("/tags/:id/", s.handleDeleteTag)

		api.GET("/tasks/", s.handleListTasks)
		api.POST("/tasks/", s.handleCreateTask)
		api.GET("/tasks/:id/", s.handleGetTask)
		api.PATCH("/tasks/:id/", s.handleUpdateTask)
		api.DELETE("/tasks/:id/", s.handleDeleteTask)

		api.GET("/time-entries/", s.handleListEntries)
		api.POST("/time-entries/", s.handleCreateEntry)
		api.GET("/time-entries/:id/", s.handleGetEntry)
		api.PATCH("/time-entries/:id/", s.handleUpdateEntry)
		api.DELETE("/time-entries/:id/", s.handleDeleteEntry)
	}

	return s
}

// Handler returns the HTTP handler serving the API under /api.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the mock backend
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) authenticate(c *gin.Context) {
	if len(s.tokens) == 0 {
		c.Next()
		return
	}
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}
	scheme, token, _ := strings.Cut(header, " ")
	if scheme != "Token" || !s.tokens[token] {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
		return
	}
	c.Next()
}

func (s *Server) handleCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, s.user)
}

// allocID returns the next identifier for a collection.
func (s *Server) allocID(collection string) int64 {
	s.nextID[collection]++
	return s.nextID[collection]
}

// respondPage writes the list envelope, applying ?limit.
func respondPage[T any](c *gin.Context, items []T) {
	page := domain.Page[T]{Count: len(items), Results: items}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit >= 0 && limit < len(items) {
		page.Results = items[:limit]
		next := c.Request.URL.Path + "?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(limit)
		page.Next = &next
	}
	if page.Results == nil {
		page.Results = []T{}
	}
	c.JSON(http.StatusOK, page)
}

// orderBy sorts items by the named key, descending when ordering starts
// with "-". Unknown keys keep the fallback ordering.
func orderBy[T any](items []T, ordering, fallback string, keys map[string]func(a, b T) int) {
	if ordering == "" {
		ordering = fallback
	}
	desc := strings.HasPrefix(ordering, "-")
	cmp, ok := keys[strings.TrimPrefix(ordering, "-")]
	if !ok {
		desc = strings.HasPrefix(fallback, "-")
		if cmp, ok = keys[strings.TrimPrefix(fallback, "-")]; !ok {
			return
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return cmp(items[j], items[i]) < 0
		}
		return cmp(items[i], items[j]) < 0
	})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// badRequest writes a field map such as {"name": ["name is required"]}.
func badRequest(c *gin.Context, err error) {
	if ve, ok := err.(*validation.ValidationError); ok {
		c.JSON(http.StatusBadRequest, ve.Fields())
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
}

func fieldError(field, message string) error {
	ve := validation.NewValidationError()
	ve.AddError(field, validation.ErrorTypeInvalidValue, message, nil)
	return ve
}

// bind decodes the JSON body into in, answering 400 on malformed input.
func bind(c *gin.Context, in any) bool {
	if err := c.ShouldBindJSON(in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error - " + err.Error()})
		return false
	}
	return true
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}
