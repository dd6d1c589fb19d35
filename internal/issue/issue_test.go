// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		UsageId,
		ConfigLoadFailedId,
		SourceUnreadableId,
		NameCollisionId,
		CopyFailedId,
		CompilerNotFoundId,
		BuildFailedId,
		MetadataWriteFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if UsageId != 1 {
		t.Errorf("UsageId = %d, want 1", UsageId)
	}
}

func TestIssue_Render(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(NameCollisionId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "Game names collide") {
		t.Errorf("Render() output missing title:\n%s", rendered)
	}
}

func TestIssue_LinksAreCloned(t *testing.T) {
	is := Get(CompilerNotFoundId)

	links := is.Links()
	if len(links) == 0 {
		t.Fatal("CompilerNotFound should carry an install link")
	}
	links[0] = "modified"
	if is.Links()[0] != "https://go.dev/doc/install" {
		t.Error("Links() should return a clone")
	}
}

func TestIssue_RenderSeeAlso(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	tests := []struct {
		id      Id
		want    string
		hasLink bool
	}{
		{CompilerNotFoundId, "- <https://go.dev/doc/install>", true},
		{ConfigLoadFailedId, "- <https://cuelang.org/docs/>", true},
		{BuildFailedId, "- <https://pkg.go.dev/cmd/go#hdr-Compile_packages_and_dependencies>", true},
		{NameCollisionId, "", false},
	}
	for _, tt := range tests {
		rendered, err := Get(tt.id).Render("")
		if err != nil {
			t.Fatalf("Render(%d) returned error: %v", tt.id, err)
		}
		if got := strings.Contains(rendered, "## See also"); got != tt.hasLink {
			t.Errorf("issue %d: See also section present = %v, want %v", tt.id, got, tt.hasLink)
		}
		if tt.hasLink && !strings.Contains(rendered, tt.want) {
			t.Errorf("issue %d: rendered output missing %q", tt.id, tt.want)
		}
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{UsageId, false, "Wrong number of arguments"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{SourceUnreadableId, false, "Source directory could not be read"},
		{NameCollisionId, false, "Game names collide"},
		{CopyFailedId, false, "Failed to copy a game directory"},
		{CompilerNotFoundId, false, "Compiler not found"},
		{BuildFailedId, false, "Game build failed"},
		{MetadataWriteFailedId, false, "Failed to write the metadata file"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			is := Get(tt.id)
			if tt.wantNil {
				if is != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}
			if is == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if !strings.Contains(string(is.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), len(issues))
	}
	for i := 1; i < len(values); i++ {
		if values[i-1].Id() >= values[i].Id() {
			t.Errorf("Values() not ordered by Id at %d", i)
		}
	}
}
