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

// addonTypes are the Workshop addon types, as addon.json accepts them.
var addonTypes = []string{
	"ServerContent", "gamemode", "map", "weapon", "vehicle",
	"npc", "tool", "effects", "model", "entity",
}

// addonTags are the Workshop addon tags. Uploads take one or two.
var addonTags = []string{
	"fun", "roleplay", "scenic", "movie", "realism",
	"cartoon", "water", "comic", "build",
}

var (
	// addonCmd groups addon scaffolding operations.
	addonCmd = &cobra.Command{
		Use:   "addon",
		Short: "Scaffold Garry's Mod addons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addonInitCmd = &cobra.Command{
		Use:   "init <target-directory>",
		Short: "Create a new addon directory with an addon.json",
		Long: `Create a new addon directory with an addon.json.

Prompts for the addon's pretty name, type and Workshop tags, then writes
an addon.json ready for gmad/gmpublish into the new directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runAddonInit,
	}
)

func init() {
	addonCmd.AddCommand(addonInitCmd)
}

// promptAborted turns a cancelled prompt into a quiet non-zero exit.
func promptAborted(err error) error {
	if errors.Is(err, tui.ErrAborted) {
		fmt.Println(WarningStyle.Render("Cancelled."))
		return &ExitError{Code: 1}
	}
	return err
}

// validateTagCount enforces the Workshop rule of one or two tags.
func validateTagCount(sel []string) error {
	if len(sel) < 1 || len(sel) > 2 {
		return fmt.Errorf("%d tags selected, but 1-2 are required.", len(sel))
	}
	return nil
}

func runAddonInit(cmd *cobra.Command, args []string) error {
	target := args[0]
	if err := validateScaffoldName(target); err != nil {
		if errors.Is(err, errTargetExists) {
			fmt.Fprintln(os.Stderr, issue.Get(issue.TargetExistsId).Render(0))
		}
		return issue.WrapWithContext(err, "create addon directory", target)
	}

	fmt.Println(SubtitleStyle.Render("Cancel anytime with Ctrl+C."))
	fmt.Println()

	tcfg := tui.DefaultConfig()

	prettyName, err := tui.Input(tui.InputOptions{
		Title:    "Pretty name for the addon:",
		Required: true,
		Config:   tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	addonType, err := tui.ChooseStrings("Select addon type", addonTypes, tcfg)
	if err != nil {
		return promptAborted(err)
	}

	tagOpts := make([]tui.Option[string], len(addonTags))
	for i, tag := range addonTags {
		tagOpts[i] = tui.Option[string]{Title: tag, Value: tag}
	}
	tags, err := tui.MultiChoose(tui.MultiChooseOptions[string]{
		Title:    "Select 1-2 addon tags:",
		Options:  tagOpts,
		Limit:    2,
		Validate: validateTagCount,
		Config:   tcfg,
	})
	if err != nil {
		return promptAborted(err)
	}

	if err := os.Mkdir(target, 0o755); err != nil {
		return issue.WrapWithContext(err, "create addon directory", target)
	}

	jsonPath := filepath.Join(target, "addon.json")
	if err := os.WriteFile(jsonPath, []byte(templates.AddonJSON(prettyName, addonType, tags)), 0o644); err != nil {
		return issue.WrapWithContext(err, "write addon.json", jsonPath)
	}

	absPath, _ := filepath.Abs(target)
	fmt.Println()
	fmt.Printf("%s Created addon %q at %s\n", SuccessStyle.Render("✓"), prettyName, absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Drop your content into the addon (lua/, materials/, models/)")
	fmt.Println("  2. Collect map or model content straight into it with 'gmdev vmf collect-content'")
	fmt.Println("  3. Pack and publish with gmad and gmpublish when ready")

	return nil
}
