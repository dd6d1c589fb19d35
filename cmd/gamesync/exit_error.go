// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/gamesync/gamesync/internal/issue"
	"github.com/gamesync/gamesync/pkg/types"
)

// ExitError carries the process exit code out of a RunE handler. Errors
// returned by App.fail have already been printed.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

func usageErrorf(format string, args ...any) *ExitError {
	return &ExitError{Code: types.ExitUsage, Err: fmt.Errorf(format, args...)}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeOf maps a command error to the process exit code. Argument and
// flag-value problems exit with ExitUsage, everything else with ExitFailure.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code.Validate() == nil {
		return exitErr.Code
	}
	if id, ok := issue.IssueOf(err); ok && id == issue.UsageId {
		return types.ExitUsage
	}
	return types.ExitFailure
}
