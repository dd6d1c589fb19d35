// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gamesync/gamesync/internal/pipeline"
	"github.com/gamesync/gamesync/pkg/types"
)

// runSync loads configuration and runs one synchronization of args[0] into args[1].
func runSync(cmd *cobra.Command, app *App, opts *rootOptions, args []string) error {
	cfg, cfgPath, err := loadConfig(cmd, app, opts)
	if err != nil {
		return app.fail(cmd, err, opts.verbose)
	}

	logger := app.newLogger(cfg.UI.Verbose)
	if cfgPath != "" {
		logger.Debug("loaded configuration", "file", cfgPath)
	}

	summary, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Source: types.FilesystemPath(args[0]),
		Target: types.FilesystemPath(args[1]),
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		logger.Debug("run stopped", "stage", summary.Stage, "games", len(summary.Games))
		return app.fail(cmd, err, cfg.UI.Verbose)
	}

	printSummary(app.stdout, summary)
	return nil
}

func printSummary(w io.Writer, s *pipeline.Summary) {
	fmt.Fprintf(w, "%s Synchronized %d game(s) into %s\n",
		SuccessStyle.Render(successIcon), len(s.Names), CmdStyle.Render(s.TargetRoot))

	for _, g := range s.Games {
		fmt.Fprintf(w, "  %s %s %s\n", CmdStyle.Render(displayName(g.Name)), SubtitleStyle.Render("<-"), g.Source.Base())
		switch {
		case g.Dest == "":
			fmt.Fprintf(w, "      %s\n", WarningStyle.Render(warningIcon+" not copied (unusable name)"))
		case g.Build == nil || g.Build.Skipped:
			fmt.Fprintf(w, "      %s\n", SubtitleStyle.Render("no source file, nothing to build"))
		case g.Build.Failed():
			fmt.Fprintf(w, "      %s\n", WarningStyle.Render(fmt.Sprintf("%s build of %s failed (exit code %s)", warningIcon, g.Build.SourceFile, g.Build.ExitCode)))
		default:
			fmt.Fprintf(w, "      %s\n", SuccessStyle.Render(fmt.Sprintf("%s built %s", successIcon, g.Build.SourceFile)))
		}
	}

	if n := len(s.BuildFailures()); n > 0 {
		fmt.Fprintf(w, "%s %d build(s) failed; rerun with -v for compiler output\n", WarningStyle.Render(warningIcon), n)
	}
	fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render("Metadata:"), s.MetadataPath)
}

func displayName(name string) string {
	if name == "" {
		return `""`
	}
	return name
}
