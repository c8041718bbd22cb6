package cli

import (
	"fmt"
	"strings"
	"time"

	"tm-cli/internal/model"
	"tm-cli/internal/statusutil"
	"tm-cli/internal/store"

	"github.com/spf13/cobra"
)

func newLsCmd(app *App) *cobra.Command {
	var (
		project string
		status  string
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			tasks, err := v.ListTasks(strings.TrimSpace(project))
			if err != nil {
				return err
			}
			if status != "" {
				want, err := statusutil.ParseStrict(status)
				if err != nil {
					return err
				}
				kept := tasks[:0]
				for _, t := range tasks {
					if t.Status == want {
						kept = append(kept, t)
					}
				}
				tasks = kept
			}

			var b strings.Builder
			for _, t := range tasks {
				fmt.Fprintf(&b, "%s [%s] %s\n", t.ID, t.Status, t.Title)
			}
			return writeOut(cmd, app, tasks, b.String())
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Only tasks in this project")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status (todo|doing|done)")
	return cmd
}

func newAddCmd(app *App) *cobra.Command {
	var (
		project string
		due     string
		tags    string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			in := model.TaskNew{
				Title:   strings.Join(args, " "),
				Project: strings.TrimSpace(project),
				Tags:    store.ParseTagList(tags),
			}
			if in.Project == "" {
				in.Project = model.DefaultProject
			}
			if cmd.Flags().Changed("due") {
				in.Due = &due
			}
			id, err := v.CreateTask(in)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"id": id, "project": in.Project}, "Created task "+id)
		},
	}

	cmd.Flags().StringVar(&project, "project", model.DefaultProject, "Project key")
	cmd.Flags().StringVar(&due, "due", "", "Due date (free text, e.g. 2025-10-01)")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma or space separated tags")
	return cmd
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <todo|doing|done>",
		Short: "Set a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := statusutil.ParseStrict(args[1])
			if err != nil {
				return err
			}
			return setStatus(cmd, app, args[0], st)
		},
	}
}

func newStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Set a task's status to doing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(cmd, app, args[0], model.StatusDoing)
		},
	}
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Set a task's status to done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(cmd, app, args[0], model.StatusDone)
		},
	}
}

func setStatus(cmd *cobra.Command, app *App, id string, st model.Status) error {
	v, err := openVault(app)
	if err != nil {
		return err
	}
	if err := v.SetStatus(id, st); err != nil {
		return err
	}
	return writeOut(cmd, app, map[string]any{"id": id, "status": st}, "status set: "+st.String())
}

func newCycleCmd(app *App) *cobra.Command {
	var back bool

	cmd := &cobra.Command{
		Use:   "cycle <id>",
		Short: "Advance a task's status (todo -> doing -> done -> todo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			dir := model.Forward
			if back {
				dir = model.Backward
			}
			st, err := v.CycleStatus(args[0], dir)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"id": args[0], "status": st}, "status -> "+st.String())
		},
	}

	cmd.Flags().BoolVar(&back, "back", false, "Cycle backwards")
	return cmd
}

type taskView struct {
	model.Task
	Body string `json:"body"`
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task's fields and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			t, body, err := v.GetTask(args[0])
			if err != nil {
				return err
			}
			return writeOut(cmd, app, taskView{Task: t, Body: body}, taskText(t, body))
		},
	}
}

func taskText(t model.Task, body string) string {
	var b strings.Builder
	field := func(k, v string) { fmt.Fprintf(&b, "%-9s %s\n", k+":", v) }
	field("id", t.ID)
	field("title", t.Title)
	field("status", t.Status.String())
	field("project", t.Project)
	field("priority", t.Priority)
	if t.Due != nil {
		field("due", *t.Due)
	}
	if len(t.Tags) > 0 {
		field("tags", strings.Join(t.Tags, ", "))
	}
	if t.Parent != nil {
		field("parent", *t.Parent)
	}
	field("created", t.Created.Format(time.RFC3339))
	field("updated", t.Updated.Format(time.RFC3339))
	field("path", t.Path)
	if body = strings.TrimSpace(body); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

func newDueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "due <id> [text]",
		Short: "Set a task's due date; omit text to clear it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := v.SetDue(args[0], text); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"id": args[0], "due": strings.TrimSpace(text)}, "saved")
		},
	}
}

func newTagsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tags <id> [list]",
		Short: "Replace a task's tags (comma or space separated; omit to clear)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if err := v.SetTagsFromDelimitedList(args[0], text); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"id": args[0], "tags": store.ParseTagList(text)}, "saved")
		},
	}
}

func newRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change a task's title (the file is renamed to match)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if err := v.RenameTitle(args[0], title); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"id": args[0], "title": strings.TrimSpace(title)}, "saved")
		},
	}
}
