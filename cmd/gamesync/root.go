// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gamesync/gamesync/internal/config"
	"github.com/gamesync/gamesync/internal/issue"
	"github.com/gamesync/gamesync/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds flag values shared by the root command and its children.
type rootOptions struct {
	verbose          bool
	configFile       string
	failOnBuildError bool
	collisionPolicy  string
	metadataFile     string
}

// NewRootCommand creates the gamesync command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gamesync <source> <target>",
		Short: "Copy and build game directories",
		Long: TitleStyle.Render("gamesync") + SubtitleStyle.Render(" - copy and build game directories") + `

gamesync looks for directories directly inside <source> whose name contains
"game" (in any case), copies each one to <target>/<name> with "_game" removed
from the name, builds the first Go file found in every copy, and writes
<target>/metadata.json listing the games.

A first argument named "config" or "inspect" selects that subcommand. To
synchronize a source directory with one of those names, pass it as a path,
e.g. "gamesync ./config ./out".

` + SubtitleStyle.Render("Examples:") + `
  gamesync ./data ./out                        Synchronize all games
  gamesync -v ./data ./out                     Show each stage and build output
  gamesync --collision-policy error ./data ./out
  gamesync inspect ./out                       List the games of the last run
  gamesync config show                         Show the effective configuration`,
		Args: sourceAndTarget,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, app, opts, args)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/gamesync/config.cue, then ./gamesync.cue)")

	rootCmd.Flags().BoolVar(&opts.failOnBuildError, "fail-on-build-error", false, "abort the run when a build fails")
	rootCmd.Flags().StringVar(&opts.collisionPolicy, "collision-policy", "", `what to do when names collide: "last_wins" or "error"`)
	rootCmd.Flags().StringVar(&opts.metadataFile, "metadata-file", "", "name of the metadata file written to the target (default metadata.json)")

	rootCmd.AddCommand(newConfigCommand(app, opts))
	rootCmd.AddCommand(newInspectCommand(app, opts))

	return rootCmd
}

// sourceAndTarget rejects anything but two positional arguments before any
// filesystem access happens.
func sourceAndTarget(_ *cobra.Command, args []string) error {
	if len(args) == 2 {
		return nil
	}
	return usageErrorf("expected 2 arguments (<source> <target>), got %d", len(args))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(int(Run(context.Background(), NewApp(Dependencies{}), os.Args[1:])))
}

// Run executes the command tree with args and returns the process exit code.
func Run(ctx context.Context, app *App, args []string) types.ExitCode {
	rootCmd := NewRootCommand(app)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	// A nil slice would make cobra fall back to os.Args.
	rootCmd.SetArgs(append([]string{}, args...))

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	return exitCodeOf(err)
}

// fail prints err with its remediation hints and catalog entry, then returns
// an ExitError that cobra and fang will not print again.
func (a *App) fail(cmd *cobra.Command, err error, verbose bool) error {
	reportError(a.stderr, err, verbose)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: exitCodeOf(err), Err: err}
}

func reportError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, ErrorStyle.Render(errorIcon+" Error: ")+formatErrorForDisplay(err, verbose))

	id, ok := issue.IssueOf(err)
	if !ok {
		return
	}
	if iss := issue.Get(id); iss != nil {
		if rendered, renderErr := iss.Render("dark"); renderErr == nil {
			fmt.Fprint(w, rendered)
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// loadConfig resolves the layered configuration and applies flag overrides.
// It returns the config file used ("" for defaults).
func loadConfig(cmd *cobra.Command, app *App, opts *rootOptions) (*config.Config, string, error) {
	cfg, path, err := app.Config.Resolve(cmd.Context(), config.LoadOptions{
		ConfigFilePath: opts.configFile,
		EnvFilePath:    config.DefaultEnvFile,
	})
	if err != nil {
		return nil, "", err
	}

	if opts.verbose {
		cfg.UI.Verbose = true
	}
	flags := cmd.Flags()
	if flags.Lookup("fail-on-build-error") != nil && flags.Changed("fail-on-build-error") {
		cfg.Build.FailOnError = opts.failOnBuildError
	}
	if flags.Lookup("collision-policy") != nil && flags.Changed("collision-policy") {
		cfg.CollisionPolicy = config.CollisionPolicy(opts.collisionPolicy)
	}
	if flags.Lookup("metadata-file") != nil && flags.Changed("metadata-file") {
		cfg.Metadata.FileName = opts.metadataFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("apply command-line flags").
			WithIssue(issue.UsageId).
			WithSuggestion("Run 'gamesync --help' to see accepted flag values").
			Wrap(err).
			BuildError()
	}
	return cfg, path, nil
}
