// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for gmdev.
//
// This package implements the Cobra command hierarchy for the gmdev CLI:
// the root command, the content collection commands for maps and models,
// the addon and entity scaffolding commands, and configuration management.
package cmd
