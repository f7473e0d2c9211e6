package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-client/internal/domain"
)

var fixedNow = time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC)

func newTestServer(opts Options) *Server {
	opts.Seed = true
	if opts.Now == nil {
		opts.Now = func() time.Time { return fixedNow }
	}
	return New(opts)
}

func do(t *testing.T, s *Server, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(Options{Tokens: []string{"secret"}})

	w := do(t, s, http.MethodGet, "/api/auth/user/", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/auth/user/", "", "Authorization", "Token wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid token."}`, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/auth/user/", "", "Authorization", "Token secret")
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[domain.User](t, w)
	assert.Equal(t, "testuser", user.Username)
}

func TestProjects_CRUD(t *testing.T) {
	s := newTestServer(Options{})

	w := do(t, s, http.MethodGet, "/api/projects/", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[domain.Page[domain.Project]](t, w)
	assert.Equal(t, 2, page.Count)
	assert.Nil(t, page.Next)

	w = do(t, s, http.MethodPost, "/api/projects/", `{"name":"Website"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[domain.Project](t, w)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, domain.DefaultProjectColor, created.Color)
	assert.True(t, fixedNow.Equal(created.CreatedAt))

	w = do(t, s, http.MethodPatch, "/api/projects/3/", `{"color":"#000000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "#000000", decode[domain.Project](t, w).Color)

	w = do(t, s, http.MethodDelete, "/api/projects/3/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(t, s, http.MethodDelete, "/api/projects/3/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjects_ValidationErrors(t *testing.T) {
	s := newTestServer(Options{})

	w := do(t, s, http.MethodPost, "/api/projects/", `{"color":"red"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode[map[string][]string](t, w)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "color")

	w = do(t, s, http.MethodPost, "/api/projects/", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodGet, "/api/projects/abc/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProject_DetachesTasks(t *testing.T) {
	s := newTestServer(Options{})

	require.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/projects/1/", "").Code)

	task := decode[domain.Task](t, do(t, s, http.MethodGet, "/api/tasks/1/", ""))
	assert.Nil(t, task.Project)
	assert.Empty(t, task.ProjectName)
}

func TestTags_UniqueNameAndCascade(t *testing.T) {
	s := newTestServer(Options{})

	w := do(t, s, http.MethodPost, "/api/tags/", `{"name":"tag 1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/tags/", `{"name":"urgent"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(3), decode[domain.Tag](t, w).ID)

	require.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/tags/1/", "").Code)
	task := decode[domain.Task](t, do(t, s, http.MethodGet, "/api/tasks/1/", ""))
	assert.Empty(t, task.Tags)
}

func TestTasks_ListDecoratesNamesAndDuration(t *testing.T) {
	s := newTestServer(Options{})

	page := decode[domain.Page[domain.Task]](t, do(t, s, http.MethodGet, "/api/tasks/", ""))
	require.Len(t, page.Results, 2)

	// newest first
	first := page.Results[0]
	assert.Equal(t, int64(2), first.ID)
	assert.Equal(t, "Project 2", first.ProjectName)
	assert.Equal(t, []string{"Tag 2"}, first.TagNames)
	assert.Equal(t, int64(1800), first.DurationSeconds)
}

func TestTasks_Hierarchy(t *testing.T) {
	s := newTestServer(Options{})

	w := do(t, s, http.MethodPost, "/api/tasks/", `{"name":"Child","parent":1,"project":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	child := decode[domain.Task](t, w)
	assert.Equal(t, 1, child.Level)
	require.NotNil(t, child.Root)
	assert.Equal(t, int64(1), *child.Root)
	require.NotNil(t, child.Project)
	assert.Equal(t, int64(1), *child.Project, "subtasks inherit the root project")
	assert.Equal(t, "Task 1", child.ParentName)

	w = do(t, s, http.MethodPost, "/api/tasks/", `{"name":"Grandchild","parent":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	grandchild := decode[domain.Task](t, w)
	assert.Equal(t, 2, grandchild.Level)
	assert.Equal(t, int64(1), *grandchild.Root)

	w = do(t, s, http.MethodPost, "/api/tasks/", `{"name":"Too deep","parent":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string][]string](t, w), "parent")

	// moving the root to another project carries its subtree along
	w = do(t, s, http.MethodPatch, "/api/tasks/1/", `{"project":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	moved := decode[domain.Task](t, do(t, s, http.MethodGet, "/api/tasks/4/", ""))
	assert.Equal(t, int64(2), *moved.Project)

	// a task cannot become its own descendant
	w = do(t, s, http.MethodPatch, "/api/tasks/1/", `{"parent":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTasks_DurationIncludesSubtasks(t *testing.T) {
	s := newTestServer(Options{})

	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/tasks/", `{"name":"Child","parent":1}`).Code)
	w := do(t, s, http.MethodPost, "/api/time-entries/", `{"task":3,"start_time":"2025-10-03T09:00:00Z","end_time":"2025-10-03T09:10:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	task := decode[domain.Task](t, do(t, s, http.MethodGet, "/api/tasks/1/", ""))
	assert.Equal(t, int64(3600+600), task.DurationSeconds)
}

func TestTasks_DeleteCascades(t *testing.T) {
	s := newTestServer(Options{})

	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/api/tasks/", `{"name":"Child","parent":1}`).Code)
	require.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/api/tasks/1/", "").Code)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/api/tasks/3/", "").Code)
	entry := decode[domain.TimeEntry](t, do(t, s, http.MethodGet, "/api/time-entries/1/", ""))
	assert.Nil(t, entry.Task)
	assert.Nil(t, entry.TaskName)
}

func TestTimeEntries_OrderingAndLimit(t *testing.T) {
	s := newTestServer(Options{})

	page := decode[domain.Page[domain.TimeEntry]](t, do(t, s, http.MethodGet, "/api/time-entries/?ordering=-start_time&limit=1", ""))
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(2), page.Results[0].ID)
	assert.NotNil(t, page.Next)

	page = decode[domain.Page[domain.TimeEntry]](t, do(t, s, http.MethodGet, "/api/time-entries/?ordering=start_time", ""))
	require.Len(t, page.Results, 2)
	assert.Equal(t, int64(1), page.Results[0].ID)
	assert.Equal(t, "Task 1", *page.Results[0].TaskName)
}

func TestTimeEntries_CreateAndStop(t *testing.T) {
	s := newTestServer(Options{})

	w := do(t, s, http.MethodPost, "/api/time-entries/", `{"task":2,"start_time":"2025-10-05T11:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	entry := decode[domain.TimeEntry](t, w)
	assert.True(t, entry.IsRunning())
	assert.Nil(t, entry.DurationSeconds)
	require.NotNil(t, entry.Project)
	assert.Equal(t, int64(2), *entry.Project)

	w = do(t, s, http.MethodPatch, "/api/time-entries/3/", `{"end_time":"2025-10-05T11:30:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)
	stopped := decode[domain.TimeEntry](t, w)
	require.NotNil(t, stopped.DurationSeconds)
	assert.Equal(t, int64(1800), *stopped.DurationSeconds)

	w = do(t, s, http.MethodPatch, "/api/time-entries/3/", `{"end_time":"2025-10-05T10:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/time-entries/", `{"task":99,"start_time":"2025-10-05T11:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodPost, "/api/time-entries/", `{"task":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Len(t, s.Entries(), 3)
}
