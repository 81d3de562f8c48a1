// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	ConfigLoadFailedId
	DocsDirNotFoundId
	NoDocumentationFilesId
	InvalidPatternId
	ManifestLoadFailedId
	ImportAbortedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

A file named on the command line does not exist.

## Things you can try:
- Check the path for typos
- Use an absolute path, or run the command from the directory the path is relative to`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the expected schema.

## Things you can try:
- Show where the configuration is read from:
~~~
$ docimport config path
~~~

- Recreate a default configuration file:
~~~
$ docimport config init
~~~

## Example config.cue:
~~~cue
docs: {
	dir: "ref/xml"
	patterns: ["**/*.xml"]
}
format: line_ending: "lf"
import: {
	on_malformed: "skip-site"
	workers: 4
}
~~~`,
	}

	docsDirNotFoundIssue = &Issue{
		id: DocsDirNotFoundId,
		mdMsg: `
# Documentation directory not found!

docimport reads IntelliSense documentation files from a directory, but the
configured directory does not exist.

## Things you can try:
- Pass the directory explicitly:
~~~
$ docimport render --docs ./ref/xml --manifest sites.yaml
~~~

- Or set it once in your configuration:
~~~cue
docs: dir: "ref/xml"
~~~`,
		extLinks: []HttpLink{"https://learn.microsoft.com/dotnet/csharp/language-reference/xmldoc/"},
	}

	noDocumentationFilesIssue = &Issue{
		id: NoDocumentationFilesId,
		mdMsg: `
# No documentation files matched!

The documentation directory exists but none of its files match the configured
patterns, so every lookup will miss.

## Things you can try:
- List what the loader sees:
~~~
$ docimport lookup --docs ./ref/xml --list
~~~

- Widen the patterns, for example ` + "`**/*.xml`" + `, with ` + "`--pattern`" + ` or ` + "`docs.patterns`" + ``,
	}

	invalidPatternIssue = &Issue{
		id: InvalidPatternId,
		mdMsg: `
# Invalid file pattern!

A documentation file pattern is not a valid glob.

## Things you can try:
- Use ` + "`*`" + ` to match within one directory and ` + "`**`" + ` to match across directories
- Quote patterns on the command line so your shell does not expand them`,
		extLinks: []HttpLink{"https://github.com/bmatcuk/doublestar#patterns"},
	}

	manifestLoadFailedIssue = &Issue{
		id: ManifestLoadFailedId,
		mdMsg: `
# Failed to load the site manifest!

The manifest lists the declaration sites to document. It could not be read or
one of its entries is invalid.

## Example manifest:
~~~yaml
sites:
  - kind: method
    key: "M:System.Globalization.Calendar.AddDays(System.DateTime,System.Int32)"
    accessibility: public
    file: src/Calendar.cs
    line: 120
~~~

## Things you can try:
- Every entry needs a ` + "`kind`" + ` and a ` + "`key`" + ` whose prefix letter matches the kind
- Keys must not contain whitespace`,
	}

	importAbortedIssue = &Issue{
		id: ImportAbortedId,
		mdMsg: `
# Import aborted on malformed markup!

A documentation entry contains markup that cannot be reflowed, and the
malformed markup policy is ` + "`abort`" + `.

## Things you can try:
- Fix the entry named in the error in the source documentation file
- Skip just the broken element:
~~~
$ docimport render --on-malformed skip-element --manifest sites.yaml
~~~

- Or leave the whole site undocumented and continue:
~~~
$ docimport render --on-malformed skip-site --manifest sites.yaml
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A documentation, manifest or configuration file could not be read.

## Things you can try:
- Check the file permissions:
~~~
$ ls -la <path>
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():         fileNotFoundIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		docsDirNotFoundIssue.Id():      docsDirNotFoundIssue,
		noDocumentationFilesIssue.Id(): noDocumentationFilesIssue,
		invalidPatternIssue.Id():       invalidPatternIssue,
		manifestLoadFailedIssue.Id():   manifestLoadFailedIssue,
		importAbortedIssue.Id():        importAbortedIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every known issue ordered by ID.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
