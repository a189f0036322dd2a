// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	SteamNotFoundId Id = iota + 1
	GameContentUnavailableId
	ConfigLoadFailedId
	SourcePathInvalidId
	OutputPathInvalidId
	MapParseFailedId
	ModelParseFailedId
	TargetExistsId
)

type HttpLink string

// Issue is a known failure condition with remediation guidance. Issues are
// rendered as a card below the error message when the failure is one the
// user can usually fix themselves.
type Issue struct {
	id       Id
	title    string
	body     string     // remediation text shown under the title
	docLinks []HttpLink // must never be empty; every issue is documented
	extLinks []HttpLink // external references that might help
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Title() string {
	return i.title
}

func (i *Issue) Body() string {
	return i.body
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

var (
	issueTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))
	issueLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Underline(true)
)

// Render formats the issue for terminal output. A width of 0 leaves the
// body unwrapped.
func (i *Issue) Render(width int) string {
	var sb strings.Builder
	sb.WriteString(issueTitleStyle.Render(i.title))
	sb.WriteString("\n\n")

	body := strings.TrimSpace(i.body)
	if width > 0 {
		body = lipgloss.NewStyle().Width(width).Render(body)
	}
	sb.WriteString(body)

	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\nSee also:")
		for _, link := range i.docLinks {
			sb.WriteString("\n  " + issueLinkStyle.Render(string(link)))
		}
		for _, link := range i.extLinks {
			sb.WriteString("\n  " + issueLinkStyle.Render(string(link)))
		}
	}
	return sb.String()
}

var (
	steamNotFoundIssue = &Issue{
		id:    SteamNotFoundId,
		title: "Garry's Mod installation not found!",
		body: `The Steam library was searched but no Garry's Mod installation (app 4000)
turned up, so collected content cannot be checked against the game's own files.

Search locations:
  1. game_dir in your gmdev config
  2. The default Steam root for your platform
  3. Every library listed in steamapps/libraryfolders.vdf

Things you can try:
  - Set the install directory explicitly:
      game_dir = "/path/to/steamapps/common/GarrysMod"
    in your config file (see 'gmdev config path')
  - Verify the game is installed through Steam
  - Continue without it: assets the game ships will then be reported missing`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#game-content"},
	}

	gameContentUnavailableIssue = &Issue{
		id:    GameContentUnavailableId,
		title: "Game content could not be indexed!",
		body: `A Garry's Mod installation was found but its content index could not be
built from gameinfo.txt, so the game fallback is unavailable for this run.

Common causes:
  - gameinfo.txt is missing or was edited by hand
  - A SearchPaths entry points at a VPK that no longer exists
  - The installation is mid-update or corrupted

Things you can try:
  - Verify the game files through Steam
  - Point game_dir at a clean installation
  - Re-run with --verbose to see which search path failed`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#game-content"},
		extLinks: []HttpLink{"https://developer.valvesoftware.com/wiki/Gameinfo.txt"},
	}

	configLoadFailedIssue = &Issue{
		id:    ConfigLoadFailedId,
		title: "Failed to load configuration!",
		body: `Could not load the gmdev configuration file.

Configuration file locations:
  - Linux: ~/.config/gmdev/config.toml
  - macOS: ~/Library/Application Support/gmdev/config.toml
  - Windows: %APPDATA%\gmdev\config.toml
  - Per project: gmdev.toml in the working directory

Things you can try:
  - Create a fresh default configuration: gmdev config init
  - Check the TOML syntax near the line the error names
  - Remove the config file to fall back to built-in defaults

Example configuration:
  game_dir = "/home/user/.steam/steam/steamapps/common/GarrysMod"
  source_paths = ["/home/user/mapping/content"]

  [ui]
  verbose = false`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#configuration"},
	}

	sourcePathInvalidIssue = &Issue{
		id:    SourcePathInvalidId,
		title: "Source path is not a readable directory!",
		body: `Every content source must be an existing, readable directory; the
collection aborts rather than silently produce an incomplete output.

Things you can try:
  - Check the spelling of the --source-path flag values
  - Check the source_paths entries in your config file
  - Make sure the directory is readable by your user`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#collecting-content"},
	}

	outputPathInvalidIssue = &Issue{
		id:    OutputPathInvalidId,
		title: "Output directory cannot be written!",
		body: `The output directory could not be created or written to. Nothing was
collected.

Common causes:
  - The parent directory does not exist or is read-only
  - The path points at an existing file
  - The disk is full

Things you can try:
  - Pass a different --output-path
  - Check permissions on the parent directory`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#collecting-content"},
	}

	mapParseFailedIssue = &Issue{
		id:    MapParseFailedId,
		title: "Failed to parse the map file!",
		body: `The VMF document could not be decoded, so no references were extracted.

Common causes:
  - The file is a compiled .bsp, not a Hammer .vmf source
  - The file was truncated by a crashed editor session
  - Unbalanced braces from manual edits

Things you can try:
  - Re-save the map from Hammer
  - Check the reported line for unbalanced braces or quotes
  - Run with --verbose for the full parse error`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#collecting-content"},
		extLinks: []HttpLink{"https://developer.valvesoftware.com/wiki/VMF_(Valve_Map_Format)"},
	}

	modelParseFailedIssue = &Issue{
		id:    ModelParseFailedId,
		title: "Failed to decode the model file!",
		body: `The .mdl header could not be decoded, so its materials are unknown.

Common causes:
  - The file is not a compiled studiomdl model
  - The model uses an unsupported studiomdl version (44 through 49 are supported)
  - The file was only partially downloaded or extracted

Things you can try:
  - Recompile the model with studiomdl
  - Check the file actually begins with the IDST magic
  - Run with --verbose for the decode error`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#collecting-content"},
		extLinks: []HttpLink{"https://developer.valvesoftware.com/wiki/MDL_(Source)"},
	}

	targetExistsIssue = &Issue{
		id:    TargetExistsId,
		title: "Target directory already exists!",
		body: `Scaffolding refuses to write into an existing directory so it never
overwrites work you already have.

Things you can try:
  - Pick a different name
  - Remove or rename the existing directory first`,
		docLinks: []HttpLink{"https://github.com/luca1197/gmod-developer-cli#scaffolding"},
	}

	issues = map[Id]*Issue{
		steamNotFoundIssue.Id():          steamNotFoundIssue,
		gameContentUnavailableIssue.Id(): gameContentUnavailableIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
		sourcePathInvalidIssue.Id():      sourcePathInvalidIssue,
		outputPathInvalidIssue.Id():      outputPathInvalidIssue,
		mapParseFailedIssue.Id():         mapParseFailedIssue,
		modelParseFailedIssue.Id():       modelParseFailedIssue,
		targetExistsIssue.Id():           targetExistsIssue,
	}
)

// Values returns every registered issue, ordered by id.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}
