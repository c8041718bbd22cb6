package cli

import (
	"os"
	"path/filepath"
	"strings"

	"tm-cli/internal/format"
	"tm-cli/internal/logging"
	"tm-cli/internal/store"
	"tm-cli/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type App struct {
	Vault      string
	Format     string
	PrettyJSON bool
	LogLevel   string

	logger *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tm",
		Short:        "Flat-file task tracker (Markdown vault, CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tm

  # Scriptable commands
  tm add "Buy milk" --project home --tags errand,quick
  tm ls -p home
  tm start <task-id>
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}
	cmd.SetErrPrefix("tm:")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.logger = logging.New(cmd.ErrOrStderr(), app.LogLevel)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Vault, "vault", "", "Vault directory (default: $TM_VAULT, then config.json vaultPath, then ~/TasksVault)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TM_FORMAT", "text"), "Output format (text|json|edn|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON and EDN output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TM_LOG_LEVEL", logging.DefaultLevel), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newLsCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newStartCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newCycleCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDueCmd(app))
	cmd.AddCommand(newTagsCmd(app))
	cmd.AddCommand(newRenameCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

// openVault resolves the vault root and returns a Vault logging through the app logger.
func openVault(app *App) (store.Vault, error) {
	dir, err := store.ResolveVaultDir(app.Vault)
	if err != nil {
		return store.Vault{}, err
	}
	return store.Vault{Dir: dir, Logger: app.log()}, nil
}

func (app *App) log() *log.Logger {
	if app.logger == nil {
		return logging.Discard()
	}
	return app.logger
}

func runTUI(app *App) error {
	v, err := openVault(app)
	if err != nil {
		return err
	}
	cfgDir, err := store.ConfigDir()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logger := logging.Discard()
	if l, closer, err := logging.OpenFile(filepath.Join(cfgDir, "tm.log"), app.LogLevel); err == nil {
		defer closer.Close()
		logger = l
	}
	v.Logger = logger

	return tui.Run(tui.Options{Vault: v, ConfigDir: cfgDir, Logger: logger})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// result is the {"data": ...} envelope for structured formats; text is the human rendering.
type result struct {
	Data any `json:"data"`
	text string
}

func (r result) Text() string { return r.text }

func writeOut(cmd *cobra.Command, app *App, data any, text string) error {
	return format.Write(cmd.OutOrStdout(), result{Data: data, text: text}, app.Format, app.PrettyJSON)
}
