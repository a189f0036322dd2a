// SPDX-License-Identifier: MPL-2.0

// Package tui provides terminal UI components built on Charm libraries.
//
// This package implements the interactive prompts (input, choose, confirm)
// the scaffolding commands use, wrapping charmbracelet/huh so callers deal
// with plain values instead of form plumbing.
package tui
