package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tracker-client/internal/config"
	"tracker-client/internal/logging"
)

// RootCommand represents the root cobra command
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	config *config.Config
	app    *App
}

// NewRootCommand creates the trk command tree. Configuration is read from
// loader when a command runs, with persistent flags applied on top.
func NewRootCommand(loader *config.Loader) *RootCommand {
	root := &RootCommand{loader: loader}

	root.cmd = &cobra.Command{
		Use:   "trk",
		Short: "A terminal client for the tracker service",
		Long: `trk talks to a tracker REST service: it signs you in, manages projects,
tags and hierarchical tasks, records time entries and runs a live timer.

AUTHENTICATION:
  trk login <token>                         # Store the API token and verify it
  trk whoami                                # Show the signed-in user
  trk logout                                # Forget the stored token

PROJECTS AND TAGS:
  trk projects list                         # List projects
  trk projects create "Website" --color "#FF5733"
  trk tags create urgent                    # Create a tag

TASKS:
  trk tasks list --project 1 --tag 2        # Filter by project and tags
  trk tasks list --inbox                    # Tasks without a project
  trk tasks create "Write report" --project 1 --estimate 90
  trk tasks create "Outline" --parent 3     # Subtask (at most three levels)

TIME ENTRIES:
  trk entries recent                        # Newest entries first
  trk entries create --task 1 --start 2025-10-01T09:00:00Z --end 2025-10-01T10:00:00Z
  trk entries stop                          # Stop the running entry
  trk timer --task 1                        # Live timer with pause and stop

DEVELOPMENT:
  trk mock-server                           # Serve a seeded in-memory backend

GETTING HELP:
  trk [command] --help                      # Get help for any specific command
  trk completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.loadConfig()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return root.Close()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as every command's parent context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args[1:] for the next Execute
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// SetOutput sends command output and errors to the given writers
func (r *RootCommand) SetOutput(out, errOut io.Writer) {
	r.cmd.SetOut(out)
	r.cmd.SetErr(errOut)
}

// Close releases the App built for the last command, if any
func (r *RootCommand) Close() error {
	if r.app == nil {
		return nil
	}
	err := r.app.Close()
	r.app = nil
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// API configuration
	flags.String("api-url", "", "Tracker service URL (overrides TRK_API_URL)")
	flags.Duration("api-timeout", 0, "Per-request timeout (overrides TRK_API_TIMEOUT)")

	// Credential storage
	flags.String("credentials-dir", "", "Credential database directory (overrides TRK_CREDENTIALS_DIR)")

	// Stores and display
	flags.Int("recent-limit", 0, "Size of the recent entries view (overrides TRK_RECENT_LIMIT)")
	flags.String("time-format", "", "Time display layout (overrides TRK_TIME_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides TRK_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Log every request (overrides TRK_VERBOSE)")

	// Development server
	flags.String("mock-addr", "", "Mock server listen address (overrides TRK_MOCK_ADDR)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.newLoginCommand(),
		r.newLogoutCommand(),
		r.newWhoamiCommand(),
		r.newProjectsCommand(),
		r.newTagsCommand(),
		r.newTasksCommand(),
		r.newEntriesCommand(),
		r.newTimerCommand(),
		r.newMockServerCommand(),
	)
}

// overrides collects the persistent flags the user actually set
func (r *RootCommand) overrides() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	if flags.Changed("api-url") {
		v, _ := flags.GetString("api-url")
		o.APIURL = &v
	}
	if flags.Changed("api-timeout") {
		v, _ := flags.GetDuration("api-timeout")
		o.APITimeout = &v
	}
	if flags.Changed("credentials-dir") {
		v, _ := flags.GetString("credentials-dir")
		o.CredentialsDir = &v
	}
	if flags.Changed("recent-limit") {
		v, _ := flags.GetInt("recent-limit")
		o.RecentLimit = &v
	}
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		o.TimeFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		o.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	if flags.Changed("mock-addr") {
		v, _ := flags.GetString("mock-addr")
		o.MockAddr = &v
	}
	return o
}

// loadConfig resolves the configuration for the command about to run
func (r *RootCommand) loadConfig() error {
	cfg, err := r.loader.LoadWithOverrides(r.overrides())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg
	logging.SetVerbose(cfg.Application.Verbose)
	return nil
}

// appFor builds the App for cmd on first use
func (r *RootCommand) appFor(cmd *cobra.Command) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.config == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	app, err := NewApp(cmd.Context(), r.config, r.navigationPath(cmd), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

// navigationPath names cmd the way the login redirect compares paths:
// "trk projects list" is /projects/list and login is the login path.
func (r *RootCommand) navigationPath(cmd *cobra.Command) string {
	if cmd.Name() == "login" {
		return r.config.API.LoginPath
	}
	path := strings.TrimPrefix(cmd.CommandPath(), r.cmd.Name())
	return "/" + strings.Join(strings.Fields(path), "/")
}

// withTimeout bounds ctx by the configured application timeout
func (r *RootCommand) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.config.Application.Timeout)
}

// run wraps a handler with the App, a timeout and the error handler
func (r *RootCommand) run(operation string, fn func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.appFor(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := r.withTimeout(cmd.Context())
		defer cancel()

		return NewErrorHandler().Handle(operation, fn(ctx, app, cmd, args))
	}
}
