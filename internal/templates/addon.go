// SPDX-License-Identifier: MPL-2.0

// Package templates holds the file scaffolds the init and create commands
// write out.
package templates

import "strings"

// addonJSON is the addon.json skeleton the Workshop publisher reads. The
// ignore list mirrors the wildcards gmad refuses to pack anyway.
const addonJSON = `{
	"title": "%NAME%",
	"type":	"%TYPE%",
	"tags":	[ %TAGS% ],
	"ignore":
	[
		"*.psd",
		"*.vcproj",
		"*.svn*",
		"*.db",
		"thumbs.db",
		"Thumbs.db",
		"*.ini",
		"desktop.ini",
		"Desktop.ini",
		"*.log",
		"*.prt",
		"*.vmf",
		"*.vmx",
		"*.bat",
		"*.txt"
	]
}
`

// AddonJSON renders the addon.json for a new addon.
func AddonJSON(title, addonType string, tags []string) string {
	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = `"` + tag + `"`
	}
	return strings.NewReplacer(
		"%NAME%", title,
		"%TYPE%", addonType,
		"%TAGS%", strings.Join(quoted, ", "),
	).Replace(addonJSON)
}
