package cli

import (
	"fmt"
	"path/filepath"

	"tm-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the vault directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := openVault(app)
			if err != nil {
				return err
			}
			if err := v.InitDirs(); err != nil {
				return err
			}

			// Remember the first vault initialized so later runs find it without --vault.
			remembered := false
			if cfg, err := store.LoadConfig(); err == nil && cfg.VaultPath == "" {
				abs, err := filepath.Abs(v.Dir)
				if err != nil {
					return err
				}
				cfg.VaultPath = abs
				if err := store.SaveConfig(cfg); err != nil {
					app.log().Warn("could not record vault in config", "err", err)
				} else {
					remembered = true
				}
			}

			return writeOut(cmd, app, map[string]any{
				"vault":      v.Dir,
				"remembered": remembered,
			}, fmt.Sprintf("Initialized vault at %s", v.Dir))
		},
	}
	return cmd
}
