// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

// Id identifies a catalog issue.
type Id int

const (
	NoHandlerId Id = iota + 1
	HandlerNotInstalledId
	InvalidMimeTypeId
	SelectorFailedId
	MimeappsAccessFailedId
	ConfigLoadFailedId
	NoTerminalId
	LaunchFailedId
)

const docsURL HttpLink = "https://specifications.freedesktop.org/mime-apps-spec/latest/"

type (
	MarkdownMsg string

	HttpLink string

	// Issue is a long-form, markdown explanation of a common failure.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue as terminal markdown using the glamour style at
// stylePath (a built-in style name such as "dark" or "notty", or a JSON file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	noHandlerIssue = &Issue{
		id: NoHandlerId,
		mdMsg: `
# No handler found

Nothing is configured for this MIME type and no installed application
declares support for it.

## Things you can try
- Pick one interactively:
~~~
$ handlr ask <file>
~~~
- Or set one explicitly:
~~~
$ handlr set text/plain org.gnome.TextEditor.desktop
~~~`,
		docLinks: []HttpLink{docsURL},
	}

	handlerNotInstalledIssue = &Issue{
		id: HandlerNotInstalledId,
		mdMsg: `
# Handler not installed

The desktop file could not be found in any applications directory
(` + "`$XDG_DATA_HOME/applications`" + `, ` + "`$XDG_DATA_DIRS/*/applications`" + `).

## Things you can try
- List what is installed:
~~~
$ handlr list --all
~~~
- Check the spelling, including the ` + "`.desktop`" + ` suffix`,
	}

	invalidMimeTypeIssue = &Issue{
		id: InvalidMimeTypeId,
		mdMsg: `
# Invalid MIME type

MIME types look like ` + "`type/subtype`" + `, e.g. ` + "`video/mp4`" + ` or the
wildcard ` + "`video/*`" + `. File extensions such as ` + "`.mp4`" + ` are accepted too.

## Things you can try
- Ask handlr what a file is:
~~~
$ handlr mime ./movie.mkv
~~~`,
	}

	selectorFailedIssue = &Issue{
		id: SelectorFailedId,
		mdMsg: `
# Selector failed

The external selector command could not be started.

## Things you can try
- Check the ` + "`selector`" + ` value in your config:
~~~
$ handlr config show
~~~
- Install the selector (rofi, fzf, dmenu, ...) or disable prompting with
  ` + "`enable_selector = false`",
	}

	mimeappsAccessFailedIssue = &Issue{
		id: MimeappsAccessFailedId,
		mdMsg: `
# Cannot access mimeapps.list

handlr could not read or write the user override file.

## Things you can try
- Check the permissions of ` + "`$XDG_CONFIG_HOME/mimeapps.list`" + `
- Make sure the config directory is not read-only`,
		docLinks: []HttpLink{docsURL},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The handlr configuration file is not valid TOML or has unexpected values.

## Things you can try
- Show the effective configuration:
~~~
$ handlr config show
~~~
- Recreate the default file after moving yours aside:
~~~
$ handlr config init
~~~`,
	}

	noTerminalIssue = &Issue{
		id: NoTerminalId,
		mdMsg: `
# No terminal emulator

This application must run in a terminal, but none is configured and no
installed application is categorized as a ` + "`TerminalEmulator`" + `.

## Things you can try
~~~
$ handlr set x-scheme-handler/terminal kitty.desktop
~~~`,
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Failed to launch application

The handler's ` + "`Exec`" + ` line could not be started.

## Things you can try
- Inspect the desktop file:
~~~
$ handlr cat <handler>
~~~
- Check that the program in ` + "`Exec`" + ` is on your PATH`,
	}

	issues = map[Id]*Issue{
		noHandlerIssue.Id():            noHandlerIssue,
		handlerNotInstalledIssue.Id():  handlerNotInstalledIssue,
		invalidMimeTypeIssue.Id():      invalidMimeTypeIssue,
		selectorFailedIssue.Id():       selectorFailedIssue,
		mimeappsAccessFailedIssue.Id(): mimeappsAccessFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		noTerminalIssue.Id():           noTerminalIssue,
		launchFailedIssue.Id():         launchFailedIssue,
	}
)

// Values returns every catalog issue ordered by id.
func Values() []*Issue {
	out := slices.Collect(maps.Values(issues))
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
