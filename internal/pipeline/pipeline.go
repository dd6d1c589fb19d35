// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/gamesync/gamesync/internal/build"
	"github.com/gamesync/gamesync/internal/config"
	"github.com/gamesync/gamesync/internal/discovery"
	"github.com/gamesync/gamesync/internal/issue"
	"github.com/gamesync/gamesync/internal/metadata"
	"github.com/gamesync/gamesync/internal/syncdir"
	"github.com/gamesync/gamesync/pkg/types"
)

// buildTailLines bounds how much compiler output a failed-build warning carries.
const buildTailLines = 10

// ErrNameCollision is returned when the collision policy is "error" and
// two games normalize to the same name, or a game normalizes to nothing.
var ErrNameCollision = errors.New("game name collision")

type (
	// Options configures a run.
	Options struct {
		Source types.FilesystemPath
		Target types.FilesystemPath
		// Config defaults to config.DefaultConfig().
		Config *config.Config
		// Logger defaults to a logger that discards everything.
		Logger *log.Logger
		// Invoker overrides the build invoker derived from Config.
		Invoker *build.Invoker
	}

	// GameResult is the outcome for one discovered game.
	GameResult struct {
		Source discovery.GamePath
		Name   string
		// Dest is empty when the game was not copied.
		Dest  string
		Build *build.Result
	}

	// Summary describes a finished run, successful or not.
	Summary struct {
		SourceRoot   string
		TargetRoot   string
		Games        []GameResult
		Names        []string
		MetadataPath string
		Stage        Stage
		Diagnostics  []discovery.Diagnostic
	}

	runner struct {
		cfg     *config.Config
		logger  *log.Logger
		invoker *build.Invoker
		summary *Summary
	}
)

// BuildFailures returns the games whose build ran and failed.
func (s *Summary) BuildFailures() []GameResult {
	var failed []GameResult
	for _, g := range s.Games {
		if g.Build != nil && g.Build.Failed() {
			failed = append(failed, g)
		}
	}
	return failed
}

// Run executes one synchronization. The returned Summary is never nil; on
// error its Stage is StageFailed and it reflects the work done so far.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	r := newRunner(opts)
	err := r.run(ctx, opts)
	if err != nil {
		r.transition(StageFailed)
		r.logger.Debug("run failed", "error", err)
	}
	return r.summary, err
}

func newRunner(opts Options) *runner {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	invoker := opts.Invoker
	if invoker == nil {
		invoker = build.NewInvoker(cfg.Build.Command, cfg.Build.Extension)
	}
	return &runner{
		cfg:     cfg,
		logger:  logger,
		invoker: invoker,
		summary: &Summary{Stage: StageInit},
	}
}

func (r *runner) run(ctx context.Context, opts Options) error {
	if err := r.cfg.Validate(); err != nil {
		return err
	}

	source, err := opts.Source.Abs()
	if err != nil {
		return fmt.Errorf("source directory: %w", err)
	}
	target, err := opts.Target.Abs()
	if err != nil {
		return fmt.Errorf("target directory: %w", err)
	}
	r.summary.SourceRoot = source
	r.summary.TargetRoot = target

	r.transition(StageDiscovering)
	games, err := r.discover(source)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return issue.NewErrorContext().
			WithOperation("create target directory").
			WithResource(target).
			WithIssue(issue.CopyFailedId).
			WithSuggestion("Check that the parent of the target directory is writable").
			Wrap(err).
			BuildError()
	}

	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted before %s: %w", game.Path.Base(), err)
		}
		if err := r.process(ctx, target, game); err != nil {
			return err
		}
	}

	r.transition(StageWritingMetadata)
	metaPath := filepath.Join(target, r.cfg.Metadata.FileName)
	if err := metadata.Write(metaPath, r.summary.Names); err != nil {
		return err
	}
	r.summary.MetadataPath = metaPath
	r.logger.Info("wrote metadata", "file", metaPath, "games", len(r.summary.Names))

	r.transition(StageDone)
	return nil
}

// discover lists, names and checks the games. Under the "error" collision
// policy any diagnostic aborts here, before the target tree is touched.
func (r *runner) discover(source string) ([]discovery.Game, error) {
	paths, err := discovery.Discover(source, r.cfg.Discovery.Pattern)
	if err != nil {
		return nil, err
	}
	names := discovery.NormalizeNames(paths, r.cfg.Discovery.StripToken)
	games := discovery.Pair(paths, names)

	r.summary.Names = names
	r.logger.Debug("discovered games", "source", source, "count", len(games))
	if len(games) == 0 {
		r.logger.Warn("no game directories found", "source", source, "pattern", r.cfg.Discovery.Pattern)
	}

	severity := discovery.SeverityWarning
	if r.cfg.CollisionPolicy == config.CollisionError {
		severity = discovery.SeverityError
	}
	diags := discovery.Check(games, severity)
	r.summary.Diagnostics = diags

	if severity == discovery.SeverityError && len(diags) > 0 {
		msgs := make([]string, 0, len(diags))
		for _, d := range diags {
			msgs = append(msgs, d.Message)
		}
		return nil, issue.NewErrorContext().
			WithOperation("check game names").
			WithResource(source).
			WithIssue(issue.NameCollisionId).
			WithSuggestion("Rename the source directories so each normalizes to a distinct name other than \"\", \".\" or \"..\"").
			WithSuggestion("Use --collision-policy last_wins to let later directories overwrite earlier ones").
			Wrap(fmt.Errorf("%w: %s", ErrNameCollision, strings.Join(msgs, "; "))).
			BuildError()
	}
	for _, d := range diags {
		r.logger.Warn(d.Message, "code", d.Code)
	}
	return games, nil
}

// process copies and builds one game.
func (r *runner) process(ctx context.Context, target string, game discovery.Game) error {
	result := GameResult{Source: game.Path, Name: game.Name}

	// "", "." and ".." would resolve to the target root or its parent.
	if discovery.Unusable(game.Name) {
		r.logger.Warn("skipping game with unusable name", "game", game.Path.Base(), "name", game.Name)
		r.summary.Games = append(r.summary.Games, result)
		return nil
	}

	r.transition(StageCopying)
	dest := filepath.Join(target, game.Name)
	if err := syncdir.Sync(game.Path.String(), dest); err != nil {
		r.summary.Games = append(r.summary.Games, result)
		return err
	}
	result.Dest = dest
	r.logger.Info("copied game", "game", game.Path.Base(), "dest", dest)

	r.transition(StageBuilding)
	res := r.invoker.Build(ctx, dest)
	result.Build = res
	r.summary.Games = append(r.summary.Games, result)

	switch {
	case res.Skipped:
		r.logger.Debug("no source file, build skipped", "game", game.Name)
	case res.Failed():
		kv := []any{"game", game.Name, "file", res.SourceFile, "exit_code", res.ExitCode}
		if res.Error != nil {
			kv = append(kv, "error", res.Error)
		}
		if tail := res.Tail(buildTailLines); tail != "" {
			kv = append(kv, "output", tail)
		}
		r.logger.Warn("build failed", kv...)
		if r.cfg.Build.FailOnError {
			return issue.NewErrorContext().
				WithOperation("build game").
				WithResource(dest).
				WithIssue(issue.BuildFailedId).
				WithSuggestion("Fix the compiler errors logged above, or rerun without --fail-on-build-error").
				Wrap(res.Err()).
				BuildError()
		}
	default:
		r.logger.Info("built game", "game", game.Name, "file", res.SourceFile)
		if out := strings.TrimSpace(res.Output + res.ErrOutput); out != "" {
			r.logger.Debug("build output", "game", game.Name, "output", out)
		}
	}
	return nil
}

func (r *runner) transition(next Stage) {
	prev := r.summary.Stage
	if !prev.canTransition(next) {
		r.logger.Debug("ignoring invalid stage transition", "from", prev, "to", next)
		return
	}
	r.summary.Stage = next
	r.logger.Debug("stage", "from", prev, "to", next)
}
