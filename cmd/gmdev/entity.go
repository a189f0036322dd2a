// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/luca1197/gmod-developer-cli/internal/issue"
	"github.com/luca1197/gmod-developer-cli/internal/templates"
	"github.com/luca1197/gmod-developer-cli/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// entityCmd groups scripted-entity scaffolding operations.
	entityCmd = &cobra.Command{
		Use:   "entity",
		Short: "Scaffold scripted entities",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	entityCreateCmd = &cobra.Command{
		Use:   "create <name>",
		Short: "Create a scripted entity skeleton",
		Long: `Create a scripted entity skeleton.

Prompts for the entity's metadata and writes cl_init.lua, init.lua and
shared.lua into a new directory named after the entity class.`,
		Args: cobra.ExactArgs(1),
		RunE: runEntityCreate,
	}
)

func init() {
	entityCmd.AddCommand(entityCreateCmd)
}

// entityFileOrder keeps scaffold writes and failure reports deterministic.
var entityFileOrder = []string{"cl_init.lua", "init.lua", "shared.lua"}

func runEntityCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validateScaffoldName(name); err != nil {
		if errors.Is(err, errTargetExists) {
			fmt.Fprintln(os.Stderr, issue.Get(issue.TargetExistsId).Render(0))
		}
		return issue.WrapWithContext(err, "create entity directory", name)
	}

	fmt.Println(SubtitleStyle.Render("Cancel anytime with Ctrl+C."))
	fmt.Println()

	tcfg := tui.DefaultConfig()

	kind, err := tui.Choose(tui.ChooseOptions[templates.EntityKind]{
		Title: "Select entity type",
		Options: []tui.Option[templates.EntityKind]{
			{Title: templates.EntityBasic.String(), Value: templates.EntityBasic},
			{Title: templates.EntityNPC.String(), Value: templates.EntityNPC},
		},
		Config: tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	printName, err := tui.Input(tui.InputOptions{
		Title:    "Print name for the entity:",
		Required: true,
		Config:   tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	category, err := tui.Input(tui.InputOptions{
		Title:  "Spawnmenu category:",
		Value:  "Other",
		Config: tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	defaultAuthor := ""
	if cfg != nil {
		defaultAuthor = cfg.Addon.DefaultAuthor
	}
	author, err := tui.Input(tui.InputOptions{
		Title:  "Author:",
		Value:  defaultAuthor,
		Config: tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	model, err := tui.Input(tui.InputOptions{
		Title:       "Model path:",
		Placeholder: "models/props_c17/oildrum001.mdl",
		Required:    true,
		Config:      tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	spawnable, err := tui.Confirm(tui.ConfirmOptions{
		Title:   "Show in the spawnmenu?",
		Default: true,
		Config:  tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	if err := os.Mkdir(name, 0o755); err != nil {
		return issue.WrapWithContext(err, "create entity directory", name)
	}

	files := templates.EntityFiles(kind, templates.EntityData{
		PrintName: printName,
		Category:  category,
		Author:    author,
		Model:     model,
		Spawnable: spawnable,
	})
	for _, fileName := range entityFileOrder {
		p := filepath.Join(name, fileName)
		if err := os.WriteFile(p, []byte(files[fileName]), 0o644); err != nil {
			return issue.WrapWithOperation(err, "write entity files")
		}
	}

	absPath, _ := filepath.Abs(name)
	fmt.Println()
	fmt.Printf("%s Created entity %q at %s\n", SuccessStyle.Render("✓"), name, absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Printf("  1. Move the directory into your addon under lua/entities/%s\n", name)
	fmt.Println("  2. Adjust the generated Lua to taste")
	fmt.Println("  3. Spawn it in-game from the Entities tab to test")

	return nil
}
