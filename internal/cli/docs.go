package cli

import (
	"fmt"
	"strings"

	"tm-cli/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show reference pages (vault layout, keymap, ex-commands)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				topics := docs.Topics()
				return writeOut(cmd, app, topics, strings.Join(topics, "\n"))
			}
			md, ok := docs.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q (available: %s)", args[0], strings.Join(docs.Topics(), ", "))
			}
			text := md
			if !raw {
				// WithAutoStyle falls back to plain output when stdout is not a terminal.
				r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
				if err == nil {
					if out, err := r.Render(md); err == nil {
						text = out
					}
				}
			}
			return writeOut(cmd, app, map[string]any{"topic": strings.ToLower(args[0]), "markdown": md}, text)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the Markdown source")
	return cmd
}

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the vault for unreadable or inconsistent records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			rep, err := v.Doctor()
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%d tasks, %d projects, %d issues\n", rep.Tasks, rep.Projects, len(rep.Issues))
			for _, it := range rep.Issues {
				fmt.Fprintf(&b, "%-5s %s: %s", it.Level, it.Code, it.Message)
				if it.Path != "" {
					fmt.Fprintf(&b, " (%s)", it.Path)
				}
				b.WriteString("\n")
			}
			if err := writeOut(cmd, app, rep, b.String()); err != nil {
				return err
			}
			if rep.HasErrors() {
				return errDoctorFailed
			}
			return nil
		},
	}
}
