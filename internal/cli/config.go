package cli

import (
	"fmt"
	"strings"

	"tm-cli/internal/keymap"
	"tm-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
	}
	cmd.AddCommand(newConfigPathCmd(app))
	cmd.AddCommand(newConfigKeysCmd(app))
	return cmd
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved vault, config dir and keymap file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vault, err := store.ResolveVaultDir(app.Vault)
			if err != nil {
				return err
			}
			cfgDir, err := store.ConfigDir()
			if err != nil {
				return err
			}
			cfgPath, err := store.ConfigPath()
			if err != nil {
				return err
			}
			keymapPath := store.KeymapPath(cfgDir)

			text := fmt.Sprintf("vault:  %s\nconfig: %s\nkeymap: %s\n", vault, cfgPath, orNone(keymapPath))
			return writeOut(cmd, app, map[string]any{
				"vault":      vault,
				"configDir":  cfgDir,
				"configPath": cfgPath,
				"keymapPath": keymapPath,
			}, text)
		},
	}
}

// newConfigKeysCmd prints the effective browse-mode keymap, after user overrides.
func newConfigKeysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the effective keymap (token -> action)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := store.ConfigDir()
			if err != nil {
				return err
			}
			km := keymap.LoadUser(cfgDir, app.log())

			data := map[string]string{}
			var b strings.Builder
			for _, a := range keymap.Actions() {
				toks := km.Tokens(a)
				for _, tok := range toks {
					data[tok] = a.String()
				}
				if len(toks) > 0 {
					fmt.Fprintf(&b, "%-16s %s\n", a.String(), strings.Join(toks, " "))
				}
			}
			return writeOut(cmd, app, data, b.String())
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
