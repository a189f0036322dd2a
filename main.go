// SPDX-License-Identifier: MPL-2.0

// gmdev is a developer multitool for Garry's Mod: content collection for
// maps and models, map statistics, and addon/entity scaffolding.
package main

import cmd "github.com/luca1197/gmod-developer-cli/cmd/gmdev"

func main() {
	cmd.Execute()
}
