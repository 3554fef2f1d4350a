// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/handlr-go/handlr/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `handlr config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage handlr configuration",
		Long: `Manage handlr configuration.

Configuration is stored in $XDG_CONFIG_HOME/handlr/handlr.toml and is
created with default values on first use. HANDLR_* environment variables
override file values, e.g. HANDLR_ENABLE_SELECTOR=true.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Settings(cmd.Context())
			if err != nil {
				return err
			}
			content, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, content)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig(app.loadOptions(), force)
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file with defaults")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration and mimeapps.list paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path(app.loadOptions())
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Config file: %s\n", path)
			fmt.Fprintf(app.stdout, "Mimeapps file: %s\n", app.mimeappsPath)
			return nil
		},
	})

	return cfgCmd
}
