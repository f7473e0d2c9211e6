package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tracker-client/internal/domain"
	"tracker-client/internal/errors"
	"tracker-client/internal/validation"
)

func (r *RootCommand) newTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage tasks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, optionally narrowed to one project (or the inbox of tasks
without a project) and to tasks carrying every given tag.`,
		Args: cobra.NoArgs,
		RunE: r.run("list tasks", listTasks),
	}
	list.Flags().Int64("project", 0, "Only tasks in this project")
	list.Flags().Bool("inbox", false, "Only tasks without a project")
	list.Flags().Int64Slice("tag", nil, "Only tasks carrying this tag (repeatable)")
	list.MarkFlagsMutuallyExclusive("project", "inbox")

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a task",
		Long: `Create a task. A subtask (--parent) takes its parent's project; tasks
nest at most three levels deep.`,
		Args: cobra.ExactArgs(1),
		RunE: r.run("create task", createTask),
	}
	addTaskFlags(create)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a task",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("update task", updateTask),
	}
	update.Flags().String("name", "", "New task name")
	addTaskFlags(update)
	update.Flags().Bool("no-project", false, "Move the task to the inbox")
	update.Flags().Bool("no-parent", false, "Make the task a root task")
	update.Flags().Bool("no-estimate", false, "Clear the estimate")
	update.MarkFlagsMutuallyExclusive("project", "no-project")
	update.MarkFlagsMutuallyExclusive("parent", "no-parent")
	update.MarkFlagsMutuallyExclusive("estimate", "no-estimate")

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task and its subtasks",
		Args:    cobra.ExactArgs(1),
		RunE: r.run("delete task", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if _, err := app.Tasks.Delete(ctx, id).Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
			return nil
		}),
	}

	cmd.AddCommand(list, create, update, remove)
	return cmd
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("project", 0, "Project id")
	cmd.Flags().Int64("parent", 0, "Parent task id")
	cmd.Flags().Int64Slice("tag", nil, "Tag id (repeatable); replaces the task's tags")
	cmd.Flags().Int("estimate", 0, "Estimate in minutes")
}

func listTasks(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	if _, err := app.Tasks.Fetch(ctx).Wait(); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("project") {
		projectID, _ := flags.GetInt64("project")
		app.Tasks.FilterByProject(&projectID)
	} else if inbox, _ := flags.GetBool("inbox"); inbox {
		app.Tasks.FilterByProject(nil)
	}
	if flags.Changed("tag") {
		tagIDs, _ := flags.GetInt64Slice("tag")
		app.Tasks.FilterByTags(tagIDs)
	}

	printTasks(cmd.OutOrStdout(), app.Tasks.FilteredRecords())
	return nil
}

// taskInput collects the task flags the user set
func taskInput(cmd *cobra.Command) domain.TaskInput {
	flags := cmd.Flags()
	var input domain.TaskInput

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		input.Name = domain.Set(name)
	}
	if flags.Changed("project") {
		project, _ := flags.GetInt64("project")
		input.Project = domain.Set(project)
	}
	if flags.Changed("parent") {
		parent, _ := flags.GetInt64("parent")
		input.Parent = domain.Set(parent)
	}
	if flags.Changed("tag") {
		tags, _ := flags.GetInt64Slice("tag")
		input.Tags = domain.Set(tags)
	}
	if flags.Changed("estimate") {
		estimate, _ := flags.GetInt("estimate")
		input.EstimateMinutes = domain.Set(estimate)
	}

	if unset, _ := flags.GetBool("no-project"); unset {
		input.Project = domain.Null[int64]()
	}
	if unset, _ := flags.GetBool("no-parent"); unset {
		input.Parent = domain.Null[int64]()
	}
	if unset, _ := flags.GetBool("no-estimate"); unset {
		input.EstimateMinutes = domain.Null[int]()
	}
	return input
}

func createTask(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	input := taskInput(cmd)
	input.Name = domain.Set(args[0])
	if err := validation.NewTaskValidator().ValidateForCreation(input); err != nil {
		return err
	}

	task, err := app.Tasks.Create(ctx, input).Wait()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Created task %d: %s", task.ID, task.Name)))
	return nil
}

func updateTask(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	id, err := parseID("id", args[0])
	if err != nil {
		return err
	}

	input := taskInput(cmd)
	if !input.Name.IsSet() && !input.Project.IsSet() && !input.Parent.IsSet() && !input.Tags.IsSet() && !input.EstimateMinutes.IsSet() {
		return errors.NewInvalidInputError("flags", "", "nothing to update")
	}
	if err := validation.NewTaskValidator().ValidateForUpdate(id, input); err != nil {
		return err
	}

	task, err := app.Tasks.Update(ctx, id, input).Wait()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Updated task %d: %s", task.ID, task.Name)))
	return nil
}
