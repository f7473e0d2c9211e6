package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tracker-client/internal/domain"
	"tracker-client/internal/errors"
	"tracker-client/internal/services"
	"tracker-client/internal/validation"
)

func (r *RootCommand) newEntriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Manage time entries",
		Long: `Manage time entries. Times are RFC 3339 (2025-10-01T09:00:00Z), the
configured display format in local time, or "now".`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List time entries, newest first",
		Args:  cobra.NoArgs,
		RunE: r.run("list time entries", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if _, err := app.Entries.Fetch(ctx).Wait(); err != nil {
				return err
			}
			app.printEntries(cmd.OutOrStdout(), app.Entries.Records())
			return nil
		}),
	}

	recent := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent time entries",
		Args:  cobra.NoArgs,
		RunE: r.run("list recent time entries", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			if _, err := app.Entries.FetchRecent(ctx, limit).Wait(); err != nil {
				return err
			}
			app.printEntries(cmd.OutOrStdout(), app.Entries.RecentEntries())
			return nil
		}),
	}
	recent.Flags().Int("limit", 0, "Number of entries (defaults to the configured recent limit)")

	create := &cobra.Command{
		Use:   "create",
		Short: "Record a time entry",
		Args:  cobra.NoArgs,
		RunE:  r.run("create time entry", createEntry),
	}
	addEntryFlags(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a time entry",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("update time entry", updateEntry),
	}
	addEntryFlags(update)
	update.Flags().Bool("running", false, "Clear the end time so the entry runs again")
	update.MarkFlagsMutuallyExclusive("end", "running")

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a time entry",
		Args:    cobra.ExactArgs(1),
		RunE: r.run("delete time entry", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if _, err := app.Entries.Delete(ctx, id).Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted time entry %d\n", id)
			return nil
		}),
	}

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running time entry",
		Args:  cobra.NoArgs,
		RunE:  r.run("stop time entry", stopEntry),
	}

	summary := &cobra.Command{
		Use:   "summary [range]",
		Short: "Total time per task",
		Long: `Total the time spent per task across the listed entries, optionally only
entries that started within a range: 30m, 2h, 1d, 2w, 3mo, 1y.`,
		Args: cobra.MaximumNArgs(1),
		RunE: r.run("summarize time entries", summarizeEntries),
	}

	cmd.AddCommand(list, recent, create, update, remove, stop, summary)
	return cmd
}

func addEntryFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("task", 0, "Task id")
	cmd.Flags().Int64("project", 0, "Project id (taken from the task when omitted)")
	cmd.Flags().String("name", "", "Description for entries without a task")
	cmd.Flags().String("start", "", "Start time")
	cmd.Flags().String("end", "", "End time; omit to leave the entry running")
}

// parseTime accepts RFC 3339, the display layout in local time, or "now"
func parseTime(layout, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, "now") {
		return timeNow().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("expected RFC 3339 or %q", layout)
}

// entryInput collects the entry flags the user set
func (a *App) entryInput(cmd *cobra.Command) (domain.TimeEntryInput, error) {
	flags := cmd.Flags()
	var input domain.TimeEntryInput

	if flags.Changed("task") {
		task, _ := flags.GetInt64("task")
		input.Task = domain.Set(task)
	}
	if flags.Changed("project") {
		project, _ := flags.GetInt64("project")
		input.Project = domain.Set(project)
	}
	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		input.Name = domain.Set(name)
	}
	for _, field := range []struct {
		flag   string
		target *domain.Field[time.Time]
	}{
		{"start", &input.StartTime},
		{"end", &input.EndTime},
	} {
		if !flags.Changed(field.flag) {
			continue
		}
		value, _ := flags.GetString(field.flag)
		t, err := parseTime(a.config.Display.TimeFormat, value)
		if err != nil {
			return input, errors.NewInvalidInputError(field.flag, value, err.Error())
		}
		*field.target = domain.Set(t)
	}
	if running, _ := flags.GetBool("running"); running {
		input.EndTime = domain.Null[time.Time]()
	}
	return input, nil
}

func createEntry(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	input, err := app.entryInput(cmd)
	if err != nil {
		return err
	}
	if !input.StartTime.IsSet() {
		input.StartTime = domain.Set(timeNow().UTC())
	}
	if err := validation.NewTimeEntryValidator().ValidateForCreation(input); err != nil {
		return err
	}

	entry, err := app.Entries.Create(ctx, input).Wait()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Created time entry %d", entry.ID)))
	app.printEntries(cmd.OutOrStdout(), []domain.TimeEntry{entry})
	return nil
}

func updateEntry(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	id, err := parseID("id", args[0])
	if err != nil {
		return err
	}
	input, err := app.entryInput(cmd)
	if err != nil {
		return err
	}

	// The range check needs the stored start when only the end moves.
	var currentStart time.Time
	if input.EndTime.IsSet() && !input.StartTime.IsSet() {
		if _, err := app.Entries.Fetch(ctx).Wait(); err != nil {
			return err
		}
		if current, ok := app.Entries.Find(id); ok {
			currentStart = current.StartTime
		}
	}
	if err := validation.NewTimeEntryValidator().ValidateForUpdate(id, input, currentStart); err != nil {
		return err
	}

	entry, err := app.Entries.Update(ctx, id, input).Wait()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Updated time entry %d", entry.ID)))
	app.printEntries(cmd.OutOrStdout(), []domain.TimeEntry{entry})
	return nil
}

func stopEntry(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	if _, err := app.Entries.FetchRecent(ctx, 0).Wait(); err != nil {
		return err
	}
	running, ok := app.Entries.Running()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No time entry is running"))
		return nil
	}

	end := timeNow().UTC()
	if err := validation.NewTimeEntryValidator().ValidateTimeRange(running.StartTime, &end); err != nil {
		return err
	}
	entry, err := app.Entries.Update(ctx, running.ID, domain.TimeEntryInput{EndTime: domain.Set(end)}).Wait()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s after %s\n", entryLabel(entry), formatDuration(entry.Duration(end)))
	return nil
}

func summarizeEntries(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	reporting := services.NewReportingService(timeNow)

	var rng *services.TimeRange
	if len(args) == 1 {
		parsed, err := reporting.ParseTimeRange(args[0])
		if err != nil {
			return err
		}
		rng = parsed
	}
	if _, err := app.Entries.Fetch(ctx).Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	summary := reporting.Summarize(app.Entries.Records(), rng)
	if len(summary.Tasks) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No time entries found"))
		return nil
	}
	for _, activity := range summary.Tasks {
		label := activity.Label
		if activity.IsRunning {
			label += " " + runningStyle.Render("(running)")
		}
		sessions := "sessions"
		if activity.SessionCount == 1 {
			sessions = "session"
		}
		fmt.Fprintf(out, "%10s  %s %s\n", formatDuration(activity.TotalDuration), label,
			mutedStyle.Render(fmt.Sprintf("%d %s, last %s", activity.SessionCount, sessions, app.formatTime(activity.LastWorked))))
	}
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%10s  Total", formatDuration(summary.TotalDuration))))
	return nil
}
