package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"tracker-client/internal/api"
	"tracker-client/internal/config"
	"tracker-client/internal/credentials"
	"tracker-client/internal/repository/sqlite"
	"tracker-client/internal/store"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App wires the credential store, API client and every resource store for
// one command invocation.
type App struct {
	config   *config.Config
	repo     sqlite.Repository
	client   *api.Client
	navigate *commandNavigator

	Auth     *store.AuthStore
	Projects *store.ProjectStore
	Tags     *store.TagStore
	Tasks    *store.TaskStore
	Entries  *store.TimeEntryStore
	Timer    *store.TimerStore
}

// NewApp opens the credential database named by cfg and builds the stores.
// path is the navigation path of the running command; errOut receives the
// re-login hint when the server rejects the credential.
func NewApp(ctx context.Context, cfg *config.Config, path string, errOut io.Writer) (*App, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	app, err := NewAppWithRepository(ctx, cfg, repo, path, errOut)
	if err != nil {
		repo.Close()
		return nil, err
	}
	return app, nil
}

// NewAppWithRepository builds the stores over an already open repository.
func NewAppWithRepository(ctx context.Context, cfg *config.Config, repo sqlite.Repository, path string, errOut io.Writer) (*App, error) {
	creds := credentials.New(repo)
	nav := &commandNavigator{path: path, out: errOut}
	client := api.New(creds, api.Options{
		BaseURL:   cfg.GetAPIBaseURL(),
		Timeout:   cfg.API.Timeout,
		LoginPath: cfg.API.LoginPath,
		Navigator: nav,
	})

	auth, err := store.NewAuthStore(ctx, client, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to restore credential: %w", err)
	}

	return &App{
		config:   cfg,
		repo:     repo,
		client:   client,
		navigate: nav,
		Auth:     auth,
		Projects: store.NewProjectStore(client),
		Tags:     store.NewTagStore(client),
		Tasks:    store.NewTaskStore(client),
		Entries:  store.NewTimeEntryStore(client, cfg.Stores.RecentLimit),
		Timer:    store.NewTimerStore(),
	}, nil
}

// Close releases the credential database.
func (a *App) Close() error {
	return a.repo.Close()
}

// formatTime renders t in the configured display format and local zone.
func (a *App) formatTime(t time.Time) string {
	return t.Local().Format(a.config.Display.TimeFormat)
}

// commandNavigator maps the client's login redirect onto the terminal: the
// command cannot move anywhere, so it tells the user how to sign in again.
type commandNavigator struct {
	mu         sync.Mutex
	path       string
	out        io.Writer
	redirected bool
}

func (n *commandNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path
}

func (n *commandNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.path = path
	if n.redirected {
		return
	}
	n.redirected = true
	fmt.Fprintln(n.out, warningStyle.Render("Your session has expired. Run `trk login` to sign in again."))
}
