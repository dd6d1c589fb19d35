// SPDX-License-Identifier: MPL-2.0

package syncdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"

	"github.com/gamesync/gamesync/internal/issue"
)

const operation = "synchronize game directory"

// Sync removes dst if present and copies src into it. Structure, contents
// and permission bits are kept. A symlinked src is resolved so dst is always
// a real directory; symlinks inside src are recreated instead of followed.
// Nothing of the previous dst survives, including files absent from src.
func Sync(src, dst string) error {
	root, err := filepath.EvalSymlinks(src)
	if err != nil {
		return syncError(src, dst, fmt.Errorf("resolve source: %w", err))
	}

	if err := os.RemoveAll(dst); err != nil {
		return syncError(src, dst, fmt.Errorf("remove previous copy: %w", err))
	}

	opts := copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Shallow },
	}
	if err := copy.Copy(root, dst, opts); err != nil {
		return syncError(src, dst, err)
	}
	return nil
}

func syncError(src, dst string, err error) error {
	return issue.NewErrorContext().
		WithOperation(operation).
		WithResource(src+" -> "+dst).
		WithIssue(issue.CopyFailedId).
		WithSuggestion("Check that the source is readable and the target is writable").
		WithSuggestion("Make sure no other process holds files open inside the target directory").
		Wrap(err).
		BuildError()
}
