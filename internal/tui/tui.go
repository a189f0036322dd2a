// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt (Ctrl+C or Esc).
var ErrAborted = huh.ErrUserAborted

// Theme represents the visual theme for TUI components.
type Theme string

const (
	// ThemeDefault uses the default huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

// Config holds common configuration for TUI components.
type Config struct {
	// Theme specifies the visual theme to use.
	Theme Theme
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// Width specifies the width of the component (0 for auto).
	Width int
	// Output specifies where to write the component output.
	Output io.Writer
}

// DefaultConfig returns the default configuration for TUI components.
// It automatically enables accessible mode when:
// - Running inside command substitution ($()) where stdin is not a terminal
// - The ACCESSIBLE environment variable is set
//
// When accessible mode is needed, output is directed to stderr so prompts
// aren't captured by command substitution ($() or backticks), which would
// prevent the user from seeing the prompt.
func DefaultConfig() Config {
	noTTY := !isInputTerminal()
	accessible := noTTY || os.Getenv("ACCESSIBLE") != ""

	// When accessible mode is needed, use stderr for output so prompts
	// aren't captured by $() command substitution
	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}

	return Config{
		Theme:      ThemeDefault,
		Accessible: accessible,
		Width:      0,
		Output:     output,
	}
}

// isInputTerminal returns true if stdin is connected to a terminal.
// Returns false when running inside command substitution ($()) or pipes.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// shouldUseAccessible returns true if accessible mode should be used.
// Even if config.Accessible is false, this returns true when stdin is not
// a terminal (e.g., inside $() command substitution).
func shouldUseAccessible(cfg Config) bool {
	return cfg.Accessible || !isInputTerminal()
}

// getOutputWriter returns the appropriate output writer for the current context.
// Returns stderr when accessible mode is needed to prevent prompts from being
// captured by command substitution ($()).
// If cfg.Output is already set, it's returned as-is.
func getOutputWriter(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}
	if shouldUseAccessible(cfg) {
		return os.Stderr
	}
	return os.Stdout
}

// getHuhTheme converts a Theme to a huh.Theme.
func getHuhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}

// runForm applies the shared configuration to a form and runs it.
func runForm(form *huh.Form, cfg Config) error {
	form = form.
		WithTheme(getHuhTheme(cfg.Theme)).
		WithAccessible(shouldUseAccessible(cfg)).
		WithOutput(getOutputWriter(cfg))

	if cfg.Width > 0 {
		form = form.WithWidth(cfg.Width)
	}

	return form.Run()
}
