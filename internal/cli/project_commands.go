package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tracker-client/internal/domain"
	"tracker-client/internal/errors"
	"tracker-client/internal/validation"
)

// parseID reads a positive record id from a positional argument
func parseID(field, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewInvalidInputError(field, arg, "must be a positive integer")
	}
	return id, nil
}

func (r *RootCommand) newProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: r.run("list projects", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if _, err := app.Projects.Fetch(ctx).Wait(); err != nil {
				return err
			}
			printProjects(cmd.OutOrStdout(), app.Projects.Records())
			return nil
		}),
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("create project", createProject),
	}
	create.Flags().String("color", domain.DefaultProjectColor, "Project color as #RRGGBB")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename or recolor a project",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run("update project", updateProject),
	}
	update.Flags().String("name", "", "New project name")
	update.Flags().String("color", "", "New project color as #RRGGBB")

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project",
		Long:    "Delete a project. Its tasks and time entries are kept without a project.",
		Args:    cobra.ExactArgs(1),
		RunE: r.run("delete project", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if _, err := app.Projects.Delete(ctx, id).Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %d\n", id)
			return nil
		}),
	}

	cmd.AddCommand(list, create, update, remove)
	return cmd
}

func createProject(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	color, _ := cmd.Flags().GetString("color")
	input := domain.ProjectInput{
		Name:  domain.Set(args[0]),
		Color: domain.Set(color),
	}
	if err := validation.NewProjectValidator().ValidateForCreation(input); err != nil {
		return err
	}

	project, err := app.Projects.Create(ctx, input).Wait()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Created project %d: %s", project.ID, project.Name)))
	return nil
}

func updateProject(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	id, err := parseID("id", args[0])
	if err != nil {
		return err
	}

	var input domain.ProjectInput
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		input.Name = domain.Set(name)
	}
	if cmd.Flags().Changed("color") {
		color, _ := cmd.Flags().GetString("color")
		input.Color = domain.Set(color)
	}
	if err := validation.NewProjectValidator().ValidateForUpdate(id, input); err != nil {
		return err
	}

	project, err := app.Projects.Update(ctx, id, input).Wait()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Updated project %d: %s", project.ID, project.Name)))
	return nil
}

func (r *RootCommand) newTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: r.run("list tags", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			if _, err := app.Tags.Fetch(ctx).Wait(); err != nil {
				return err
			}
			printTags(cmd.OutOrStdout(), app.Tags.Records())
			return nil
		}),
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: r.run("create tag", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			input := domain.TagInput{Name: domain.Set(args[0])}
			if err := validation.NewProjectValidator().ValidateTag(input); err != nil {
				return err
			}
			tag, err := app.Tags.Create(ctx, input).Wait()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Created tag %d: #%s", tag.ID, tag.Name)))
			return nil
		}),
	}

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a tag",
		Args:  cobra.ExactArgs(2),
		RunE: r.run("rename tag", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			input := domain.TagInput{Name: domain.Set(args[1])}
			if err := validation.NewProjectValidator().ValidateTag(input); err != nil {
				return err
			}
			tag, err := app.Tags.Update(ctx, id, input).Wait()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Renamed tag %d to #%s", tag.ID, tag.Name)))
			return nil
		}),
	}

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a tag",
		Args:    cobra.ExactArgs(1),
		RunE: r.run("delete tag", func(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			if _, err := app.Tags.Delete(ctx, id).Wait(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %d\n", id)
			return nil
		}),
	}

	cmd.AddCommand(list, create, rename, remove)
	return cmd
}
