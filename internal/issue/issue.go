// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	UsageId Id = iota + 1
	ConfigLoadFailedId
	SourceUnreadableId
	NameCollisionId
	CopyFailedId
	CompilerNotFoundId
	BuildFailedId
	MetadataWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id    Id          // ID used to lookup the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
	links []HttpLink  // external references appended under "See also"
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Links() []HttpLink {
	return slices.Clone(i.links)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.links) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also\n"
		for _, link := range i.links {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	usageIssue = &Issue{
		id: UsageId,
		mdMsg: `
# Wrong number of arguments or invalid flag value!

gamesync takes exactly two arguments: the source tree to scan and the
target tree to populate. Flags such as --collision-policy only accept the
values listed in --help.

## Usage
~~~
$ gamesync <source> <target>
~~~

Both paths may be relative; they are resolved against the current directory.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show the effective configuration:
~~~
$ gamesync config show
~~~
- Check the CUE syntax of your config file
- Remove the file to fall back to defaults`,
		links: []HttpLink{"https://cuelang.org/docs/"},
	}

	sourceUnreadableIssue = &Issue{
		id: SourceUnreadableId,
		mdMsg: `
# Source directory could not be read!

gamesync lists the immediate children of the source directory to find games.

## Things you can try:
- Check that the path is a directory and not a file
- Check the directory permissions:
~~~
$ ls -ld <source>
~~~`,
	}

	nameCollisionIssue = &Issue{
		id: NameCollisionId,
		mdMsg: `
# Game names collide!

Two or more game directories normalize to the same target name, for example
` + "`pong_game`" + ` and ` + "`pong`" + ` both become ` + "`pong`" + `.

## Things you can try:
- Rename one of the source directories
- Allow the later directory to overwrite the earlier one:
~~~
$ gamesync --collision-policy last_wins <source> <target>
~~~`,
	}

	copyFailedIssue = &Issue{
		id: CopyFailedId,
		mdMsg: `
# Failed to copy a game directory!

The target copy of a game could not be replaced. Games copied before the
failure remain in the target directory; no metadata file was written.

## Things you can try:
- Check free disk space on the target volume
- Check write permissions on the target directory
- Re-run gamesync; every run replaces the target copies from scratch`,
	}

	compilerNotFoundIssue = &Issue{
		id: CompilerNotFoundId,
		mdMsg: `
# Compiler not found!

The build command could not be started. By default gamesync runs
` + "`go build <file>`" + ` inside each copied game directory.

## Things you can try:
- Install Go and make sure it is on your PATH:
~~~
$ go version
~~~
- Configure a different build command in your config file:
~~~cue
build: command: ["tinygo", "build"]
~~~`,
		links: []HttpLink{"https://go.dev/doc/install"},
	}

	buildFailedIssue = &Issue{
		id: BuildFailedId,
		mdMsg: `
# Game build failed!

The build command exited with a non-zero status and
` + "`build.fail_on_error`" + ` is enabled.

## Things you can try:
- Run with ` + "`--verbose`" + ` to see the full compiler output
- Build the game by hand from its copied directory
- Disable ` + "`--fail-on-build-error`" + ` to treat failed builds as warnings`,
		links: []HttpLink{"https://pkg.go.dev/cmd/go#hdr-Compile_packages_and_dependencies"},
	}

	metadataWriteFailedIssue = &Issue{
		id: MetadataWriteFailedId,
		mdMsg: `
# Failed to write the metadata file!

All games were copied, but the summary file could not be written.

## Things you can try:
- Check write permissions on the target directory
- Check that no directory exists with the metadata file name`,
	}

	issues = map[Id]*Issue{
		usageIssue.Id():               usageIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		sourceUnreadableIssue.Id():    sourceUnreadableIssue,
		nameCollisionIssue.Id():       nameCollisionIssue,
		copyFailedIssue.Id():          copyFailedIssue,
		compilerNotFoundIssue.Id():    compilerNotFoundIssue,
		buildFailedIssue.Id():         buildFailedIssue,
		metadataWriteFailedIssue.Id(): metadataWriteFailedIssue,
	}
)

// Values returns every registered issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, is := range issues {
		values = append(values, is)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
