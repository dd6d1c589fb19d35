// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/gamesync/gamesync/internal/issue"
	"github.com/gamesync/gamesync/internal/testutil"
)

func bases(paths []GamePath) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.Base())
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tree map[string]string
		want []string
	}{
		{
			name: "matches substring anywhere",
			tree: map[string]string{"foo_game/": "", "bargame2/": "", "gameboy/": ""},
			want: []string{"bargame2", "foo_game", "gameboy"},
		},
		{
			name: "case insensitive",
			tree: map[string]string{"Pong_GAME/": "", "TETRIS_Game/": ""},
			want: []string{"Pong_GAME", "TETRIS_Game"},
		},
		{
			name: "non matching directories excluded",
			tree: map[string]string{"not_a_match/": "", "gam_e/": "", "snake_game/": ""},
			want: []string{"snake_game"},
		},
		{
			name: "files are never games",
			tree: map[string]string{"notes_game.txt": "x", "real_game/": ""},
			want: []string{"real_game"},
		},
		{
			name: "only immediate children are scanned",
			tree: map[string]string{"levels/deep_game/": "", "top_game/nested_game/": ""},
			want: []string{"top_game"},
		},
		{
			name: "no matches",
			tree: map[string]string{"not_a_match/": ""},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			testutil.WriteTree(t, root, tt.tree)

			paths, err := Discover(root, "game")
			if err != nil {
				t.Fatalf("Discover() returned error: %v", err)
			}
			if got := bases(paths); !reflect.DeepEqual(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
			for _, p := range paths {
				if !filepath.IsAbs(p.String()) {
					t.Errorf("Discover() returned relative path %q", p)
				}
				if filepath.Dir(p.String()) != root {
					t.Errorf("Discover() returned %q, not an immediate child of %q", p, root)
				}
			}
		})
	}
}

func TestDiscover_MissingRootIsEmpty(t *testing.T) {
	t.Parallel()

	paths, err := Discover(filepath.Join(t.TempDir(), "does-not-exist"), "game")
	if err != nil {
		t.Fatalf("Discover() returned error for missing root: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Discover() = %v, want empty", paths)
	}
}

func TestDiscover_RootIsFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "games_game")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Discover(file, "game")
	if err == nil {
		t.Fatal("Discover() on a file should fail")
	}
	if id, ok := issue.IssueOf(err); !ok || id != issue.SourceUnreadableId {
		t.Errorf("IssueOf(err) = (%d, %v), want SourceUnreadableId", id, ok)
	}
}

func TestDiscover_FollowsDirectorySymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}
	t.Parallel()

	root := t.TempDir()
	elsewhere := t.TempDir()
	testutil.WriteTree(t, elsewhere, map[string]string{"real/": "", "file.txt": "x"})

	if err := os.Symlink(filepath.Join(elsewhere, "real"), filepath.Join(root, "linked_game")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(elsewhere, "file.txt"), filepath.Join(root, "file_game")); err != nil {
		t.Fatal(err)
	}

	paths, err := Discover(root, "game")
	if err != nil {
		t.Fatalf("Discover() returned error: %v", err)
	}
	if got := bases(paths); !reflect.DeepEqual(got, []string{"linked_game"}) {
		t.Errorf("Discover() = %v, want [linked_game]", got)
	}
}

func TestDiscover_RelativeRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{"src/pong_game/": ""})
	defer testutil.MustChdir(t, root)()

	paths, err := Discover("src", "game")
	if err != nil {
		t.Fatalf("Discover() returned error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("Discover() = %v, want one path", paths)
	}
	if !filepath.IsAbs(paths[0].String()) {
		t.Errorf("Discover() = %q, want an absolute path", paths[0])
	}
}
