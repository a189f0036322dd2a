// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/luca1197/gmod-developer-cli/internal/config"
	"github.com/luca1197/gmod-developer-cli/internal/issue"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration. Stays nil when loading failed, so
	// commands fall back to flags and defaults.
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "gmdev",
		Short: "A developer multitool for Garry's Mod",
		Long: TitleStyle.Render("gmdev") + SubtitleStyle.Render(" - A developer multitool for Garry's Mod") + `

gmdev bundles the tedious parts of Garry's Mod content development:
collecting every material and model a map or model depends on,
inspecting compiled maps, and scaffolding addons and scripted
entities.

Content collection resolves assets against your source directories
first and falls back to the game's own mounted content, so the output
directory ends up with exactly the custom files a release needs.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'gmdev config init' and point game_dir at Garry's Mod
  2. Add your content roots to source_paths
  3. Collect a map's content with: gmdev vmf collect-content

` + SubtitleStyle.Render("Examples:") + `
  gmdev vmf collect-content maps/gm_flatgrass.vmf -s ./content -o ./out
  gmdev vmf stats maps/gm_flatgrass.vmf
  gmdev model collect-content models/props/crate.mdl -s ./content -o ./out
  gmdev addon init my-addon
  gmdev entity create ent_jumppad
  gmdev config show`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gmdev/config.toml)")

	// Add subcommands
	rootCmd.AddCommand(vmfCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(addonCmd)
	rootCmd.AddCommand(entityCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	loaded, err := config.NewProvider().Load(context.Background(), config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		// Surface config loading errors, but keep running on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	cfg = loaded

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// newLogger builds the logger commands report progress through. Debug level
// is gated on --verbose (or ui.verbose from the config file).
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
