// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gamesync/gamesync/internal/config"
)

// newConfigCommand creates the `gamesync config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect gamesync configuration",
		Long: `Inspect gamesync configuration.

Settings are layered, later sources winning:
  1. built-in defaults
  2. the config file (--config, else the user config directory, else ./gamesync.cue)
  3. GAMESYNC_* entries in ./.env
  4. GAMESYNC_* environment variables

User config directory:
  - Linux: ~/.config/gamesync/config.cue
  - macOS: ~/Library/Application Support/gamesync/config.cue
  - Windows: %APPDATA%\gamesync\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, opts)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, app, opts)
			if err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show where configuration is looked up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return app.fail(cmd, err, opts.verbose)
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
			fmt.Fprintf(app.stdout, "Local config file: %s\n", config.LocalConfigFile)
			fmt.Fprintf(app.stdout, "Env file: %s\n", config.DefaultEnvFile)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, opts *rootOptions) error {
	cfg, path, err := loadConfig(cmd, app, opts)
	if err != nil {
		return app.fail(cmd, err, opts.verbose)
	}

	w := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("discovery"))
	fmt.Fprintf(w, "  pattern: %s\n", valueStyle.Render(cfg.Discovery.Pattern))
	fmt.Fprintf(w, "  strip_token: %s\n", valueStyle.Render(cfg.Discovery.StripToken))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("build"))
	fmt.Fprintf(w, "  extension: %s\n", valueStyle.Render(cfg.Build.Extension))
	fmt.Fprintf(w, "  command: %s\n", valueStyle.Render(strings.Join(cfg.Build.Command, " ")))
	fmt.Fprintf(w, "  fail_on_error: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Build.FailOnError)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("metadata"))
	fmt.Fprintf(w, "  file_name: %s\n", valueStyle.Render(cfg.Metadata.FileName))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("collision_policy"), valueStyle.Render(string(cfg.CollisionPolicy)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}
