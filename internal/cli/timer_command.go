package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tracker-client/internal/errors"
	"tracker-client/internal/tui"
)

// runTimer is replaced in tests so the program runs without a terminal
var runTimer = func(m tui.TimerModel, cmd *cobra.Command) error {
	return tui.Run(m, tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()), tea.WithContext(cmd.Context()))
}

func (r *RootCommand) newTimerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a live timer",
		Long: `Start a running time entry and show a live clock. Pausing stops the
clock without ending the entry; stopping sets the entry's end time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.appFor(cmd)
			if err != nil {
				return err
			}
			handler := NewErrorHandler()

			var taskID *int64
			taskName := "Untitled"
			if cmd.Flags().Changed("task") {
				id, _ := cmd.Flags().GetInt64("task")
				ctx, cancel := r.withTimeout(cmd.Context())
				_, err := app.Tasks.Fetch(ctx).Wait()
				cancel()
				if err != nil {
					return handler.Handle("start timer", err)
				}
				task, ok := app.Tasks.Find(id)
				if !ok {
					return handler.Handle("start timer", errors.NewNotFoundError("task", fmt.Sprint(id)))
				}
				taskID, taskName = &task.ID, task.Name
			}

			// The session lasts as long as the user keeps it open.
			model := tui.NewTimerModel(cmd.Context(), app.Entries, app.Timer, taskID, taskName)
			return handler.Handle("run timer", runTimer(model, cmd))
		},
	}
	cmd.Flags().Int64("task", 0, "Task to track")
	return cmd
}
