// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/luca1197/gmod-developer-cli/internal/config"
	"github.com/luca1197/gmod-developer-cli/internal/issue"
	"github.com/spf13/cobra"
)

var (
	// configCmd manages the gmdev configuration file.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage gmdev configuration",
		Long: `Manage gmdev configuration.

Configuration is stored in:
  - Linux: ~/.config/gmdev/config.toml
  - macOS: ~/Library/Application Support/gmdev/config.toml
  - Windows: %APPDATA%\gmdev\config.toml

A gmdev.toml in the working directory is picked up when no global file
exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context())
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	}

	configSetCmd = &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), args[0], args[1])
		},
	}

	configDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfigForCmd(cmd.Context())
			if err != nil {
				return err
			}

			content, err := config.GenerateTOML(loaded)
			if err != nil {
				return err
			}
			fmt.Print(content)
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configDumpCmd)
}

// loadConfigForCmd loads the configuration for a config subcommand, printing
// the remediation card before surfacing the error.
func loadConfigForCmd(ctx context.Context) (*config.Config, error) {
	loaded, err := config.NewProvider().Load(ctx, config.LoadOptions{
		ConfigFilePath: cfgFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, issue.Get(issue.ConfigLoadFailedId).Render(0))
		return nil, err
	}
	return loaded, nil
}

func showConfig(ctx context.Context) error {
	loaded, err := loadConfigForCmd(ctx)
	if err != nil {
		return err
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), configFileDisplay())
	fmt.Println()

	if loaded.GameDir == "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("game_dir"), SubtitleStyle.Render("(auto-detect via Steam)"))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("game_dir"), valueStyle.Render(loaded.GameDir))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("source_paths"))
	if len(loaded.SourcePaths) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, p := range loaded.SourcePaths {
			fmt.Printf("  - %s\n", valueStyle.Render(p))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", loaded.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("addon"))
	if loaded.Addon.DefaultAuthor == "" {
		fmt.Printf("  default_author: %s\n", SubtitleStyle.Render("(not set)"))
	} else {
		fmt.Printf("  default_author: %s\n", valueStyle.Render(loaded.Addon.DefaultAuthor))
	}

	return nil
}

// configFileDisplay resolves the file `gmdev config show` reports, following
// the same order loading does: --config, the global file, then gmdev.toml in
// the working directory.
func configFileDisplay() string {
	if cfgFile != "" {
		return cfgFile
	}
	if cfgPath, err := config.FilePath(); err == nil && fileExistsCheck(cfgPath) {
		return cfgPath
	}
	if fileExistsCheck(config.LocalConfigFileName) {
		return config.LocalConfigFileName
	}
	return SubtitleStyle.Render("(using defaults)")
}

func initConfig() error {
	cfgPath, err := config.FilePath()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.FilePath()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgPath)
	return nil
}

func setConfigValue(ctx context.Context, key, value string) error {
	loaded, err := loadConfigForCmd(ctx)
	if err != nil {
		return err
	}

	switch key {
	case "game_dir":
		loaded.GameDir = value

	case "ui.verbose":
		loaded.UI.Verbose = value == "true" || value == "1"

	case "addon.default_author":
		loaded.Addon.DefaultAuthor = value

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: game_dir, ui.verbose, addon.default_author", key)
	}

	if err := config.Save(loaded); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
