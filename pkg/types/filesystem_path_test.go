// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/srv/games"), false},
		{"relative path", FilesystemPath("games"), false},
		{"path with spaces", FilesystemPath("my games/out"), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
		{"tab only is invalid", FilesystemPath("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FilesystemPath(%q).Validate() error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFilesystemPath) {
					t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
				}
				var fpErr *InvalidFilesystemPathError
				if !errors.As(err, &fpErr) {
					t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
				}
			}
		})
	}
}

func TestFilesystemPath_Abs(t *testing.T) {
	t.Parallel()

	abs, err := FilesystemPath("games").Abs()
	if err != nil {
		t.Fatalf("Abs() returned error: %v", err)
	}
	if !filepath.IsAbs(abs) {
		t.Errorf("Abs() = %q, want an absolute path", abs)
	}
	if filepath.Base(abs) != "games" {
		t.Errorf("Abs() = %q, want last segment %q", abs, "games")
	}

	if _, err := FilesystemPath("").Abs(); !errors.Is(err, ErrInvalidFilesystemPath) {
		t.Errorf("Abs() on empty path error = %v, want ErrInvalidFilesystemPath", err)
	}
}
