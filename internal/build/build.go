// SPDX-License-Identifier: MPL-2.0

package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gamesync/gamesync/internal/issue"
	"github.com/gamesync/gamesync/pkg/types"
)

// DefaultExtension is the source suffix that triggers a build.
const DefaultExtension = ".go"

// ErrBuildFailed is the sentinel wrapped by Result.Err.
var ErrBuildFailed = errors.New("build failed")

// DefaultCommand returns the build command used when none is configured.
func DefaultCommand() []string { return []string{"go", "build"} }

type (
	// Invoker runs a build command inside game directories.
	Invoker struct {
		// Command is the program and leading arguments; the source file name
		// is appended as the final argument.
		Command []string
		// Extension selects the source file.
		Extension string
	}

	// Result describes one build attempt.
	Result struct {
		// Dir is the directory the command ran in.
		Dir string
		// SourceFile is the base name of the file handed to the command.
		SourceFile string
		ExitCode   types.ExitCode
		Output     string
		ErrOutput  string
		// Error is set when the command could not be started or its exit
		// status could not be represented.
		Error error
		// Skipped is true when the directory holds no source file.
		Skipped bool
	}
)

// NewInvoker returns an Invoker, substituting defaults for empty arguments.
func NewInvoker(command []string, extension string) *Invoker {
	if len(command) == 0 {
		command = DefaultCommand()
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return &Invoker{Command: append([]string(nil), command...), Extension: extension}
}

// FindSource returns the base name of the first regular file in dir, in
// lexical order, whose name ends with ext. Subdirectories are not searched.
// It returns "" when no file matches.
func FindSource(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan %s for sources: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return entry.Name(), nil
	}
	return "", nil
}

// Build runs the configured command on the source file found in dir. The
// returned Result is never nil.
func (i *Invoker) Build(ctx context.Context, dir string) *Result {
	source, err := FindSource(dir, i.Extension)
	if err != nil {
		return &Result{Dir: dir, ExitCode: types.ExitFailure, Error: err}
	}
	if source == "" {
		return &Result{Dir: dir, Skipped: true}
	}

	command := i.Command
	if len(command) == 0 {
		command = DefaultCommand()
	}
	args := append(append([]string(nil), command[1:]...), source)
	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := exitResult(cmd.Run(), command[0])
	result.Dir = dir
	result.SourceFile = source
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func exitResult(err error, program string) *Result {
	if err == nil {
		return &Result{ExitCode: types.ExitSuccess}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := types.ExitCode(exitErr.ExitCode())
		if validateErr := code.Validate(); validateErr != nil {
			// Killed by a signal; ExitCode() reports -1.
			return &Result{ExitCode: types.ExitFailure, Error: fmt.Errorf("%s: %w", exitErr, validateErr)}
		}
		return &Result{ExitCode: code}
	}

	if errors.Is(err, exec.ErrNotFound) {
		err = issue.NewErrorContext().
			WithOperation("run build command").
			WithResource(program).
			WithIssue(issue.CompilerNotFoundId).
			WithSuggestion(fmt.Sprintf("Install %s or add it to PATH", program)).
			WithSuggestion("Set build.command in the config file to use a different compiler").
			Wrap(err).
			BuildError()
	}
	return &Result{ExitCode: types.ExitFailure, Error: err}
}

// Failed reports whether a build was attempted and did not succeed.
func (r *Result) Failed() bool {
	return !r.Skipped && (r.Error != nil || !r.ExitCode.IsSuccess())
}

// Err returns nil unless the build failed, in which case the error wraps
// ErrBuildFailed and, when present, the start error.
func (r *Result) Err() error {
	if !r.Failed() {
		return nil
	}
	if r.Error != nil {
		return fmt.Errorf("%w: %s in %s: %w", ErrBuildFailed, r.SourceFile, r.Dir, r.Error)
	}
	return fmt.Errorf("%w: %s in %s exited with code %s", ErrBuildFailed, r.SourceFile, r.Dir, r.ExitCode)
}

// Tail returns the last n non-empty lines of the captured stderr followed by
// stdout, for log messages about failed builds.
func (r *Result) Tail(n int) string {
	combined := strings.TrimSpace(r.ErrOutput + "\n" + r.Output)
	if combined == "" || n <= 0 {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(combined, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
