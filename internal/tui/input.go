// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// InputOptions configures the Input component.
type InputOptions struct {
	// Title is the title/prompt displayed above the input.
	Title string
	// Description provides additional context below the title.
	Description string
	// Placeholder is the placeholder text shown when input is empty.
	Placeholder string
	// Value is the initial value of the input.
	Value string
	// Required rejects empty (or whitespace-only) input.
	Required bool
	// Validate is an optional validation function run on submit.
	Validate func(string) error
	// Config holds common TUI configuration.
	Config Config
}

// Input prompts the user for a single line of text.
// Returns the entered value or an error if the prompt was cancelled.
func Input(opts InputOptions) (string, error) {
	result := opts.Value

	in := huh.NewInput().
		Title(opts.Title).
		Description(opts.Description).
		Placeholder(opts.Placeholder).
		Value(&result)

	if validate := buildValidator(opts); validate != nil {
		in = in.Validate(validate)
	}

	form := huh.NewForm(huh.NewGroup(in))
	if err := runForm(form, opts.Config); err != nil {
		return "", err
	}

	return result, nil
}

func buildValidator(opts InputOptions) func(string) error {
	if !opts.Required {
		return opts.Validate
	}

	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("This field is required!")
		}
		if opts.Validate != nil {
			return opts.Validate(s)
		}
		return nil
	}
}
