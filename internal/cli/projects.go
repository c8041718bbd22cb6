package cli

import (
	"fmt"
	"strings"

	"tm-cli/internal/model"
	"tm-cli/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsNewCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			projects, err := v.ListProjects()
			if err != nil {
				return err
			}
			var b strings.Builder
			for _, p := range projects {
				fmt.Fprintf(&b, "%s\t%s\n", p.Key, p.Title)
			}
			return writeOut(cmd, app, projects, b.String())
		},
	}
}

func newProjectsNewCmd(app *App) *cobra.Command {
	var tags string

	cmd := &cobra.Command{
		Use:   "new <title>",
		Short: "Create a project (the key is the slug of the title)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			key, err := v.CreateProject(model.ProjectNew{
				Title: strings.Join(args, " "),
				Tags:  store.ParseTagList(tags),
			})
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"key": key}, "created project "+key)
		},
	}

	cmd.Flags().StringVar(&tags, "tags", "", "Comma or space separated tags")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <key>",
		Short: "Show a project and its task counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			p, err := v.GetProject(args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return &store.NotFoundError{Kind: "project", ID: args[0]}
			}
			tasks, err := v.ListTasks(p.Key)
			if err != nil {
				return err
			}
			counts := map[model.Status]int{}
			for _, t := range tasks {
				counts[t.Status]++
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s (%s)\n", p.Title, p.Key)
			fmt.Fprintf(&b, "status: %s\n", p.Status)
			if len(p.Tags) > 0 {
				fmt.Fprintf(&b, "tags: %s\n", strings.Join(p.Tags, ", "))
			}
			fmt.Fprintf(&b, "tasks: %d todo, %d doing, %d done\n",
				counts[model.StatusTodo], counts[model.StatusDoing], counts[model.StatusDone])
			if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
				b.WriteString("\n" + strings.TrimSpace(*p.Description) + "\n")
			}

			return writeOut(cmd, app, map[string]any{
				"project": p,
				"counts": map[string]int{
					"todo":  counts[model.StatusTodo],
					"doing": counts[model.StatusDoing],
					"done":  counts[model.StatusDone],
				},
			}, b.String())
		},
	}
}
