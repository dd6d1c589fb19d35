// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gamesync/gamesync/internal/issue"
	"github.com/gamesync/gamesync/internal/metadata"
)

// newInspectCommand creates `gamesync inspect <target>`, which reads the
// metadata file left by a previous run.
func newInspectCommand(app *App, opts *rootOptions) *cobra.Command {
	var (
		fileName string
		asJSON   bool
	)

	inspectCmd := &cobra.Command{
		Use:   "inspect <target>",
		Short: "List the games recorded in a target directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileName == "" {
				cfg, _, err := loadConfig(cmd, app, opts)
				if err != nil {
					return app.fail(cmd, err, opts.verbose)
				}
				fileName = cfg.Metadata.FileName
			}

			path := filepath.Join(args[0], fileName)
			rec, err := metadata.Read(path)
			if err != nil {
				return app.fail(cmd, issue.NewErrorContext().
					WithOperation("inspect metadata").
					WithResource(path).
					WithSuggestion("Run 'gamesync <source> "+args[0]+"' first").
					Wrap(err).
					BuildError(), opts.verbose)
			}

			if asJSON {
				out, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return app.fail(cmd, err, opts.verbose)
				}
				fmt.Fprintln(app.stdout, string(out))
				return nil
			}

			fmt.Fprintln(app.stdout, TitleStyle.Render("Games")+" "+SubtitleStyle.Render(path))
			if len(rec.GameNames) == 0 {
				fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none)"))
			}
			for i, name := range rec.GameNames {
				fmt.Fprintf(app.stdout, "  %d. %s\n", i+1, CmdStyle.Render(displayName(name)))
			}
			fmt.Fprintf(app.stdout, "%s %d\n", SubtitleStyle.Render("numberOfGames:"), rec.NumberOfGames)
			if rec.NumberOfGames != len(rec.GameNames) {
				fmt.Fprintf(app.stderr, "%s numberOfGames is %d but %d names are listed\n",
					WarningStyle.Render(warningIcon), rec.NumberOfGames, len(rec.GameNames))
			}
			return nil
		},
	}

	inspectCmd.Flags().StringVar(&fileName, "file", "", "metadata file name inside the target (default from config)")
	inspectCmd.Flags().BoolVar(&asJSON, "json", false, "print the record as indented JSON")

	return inspectCmd
}
