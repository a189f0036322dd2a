// SPDX-License-Identifier: MPL-2.0

package config

// Config is the persisted gmdev configuration.
type Config struct {
	// GameDir points at the Garry's Mod installation directory. Empty means
	// auto-detect through the Steam library folders.
	GameDir string `toml:"game_dir" mapstructure:"game_dir"`

	// SourcePaths are content roots appended after any --source-path flags,
	// in order, when collecting content.
	SourcePaths []string `toml:"source_paths" mapstructure:"source_paths"`

	// UI holds output preferences.
	UI UIConfig `toml:"ui" mapstructure:"ui"`

	// Addon holds scaffolding defaults.
	Addon AddonConfig `toml:"addon" mapstructure:"addon"`
}

// UIConfig holds output preferences.
type UIConfig struct {
	// Verbose enables debug logging without passing --verbose.
	Verbose bool `toml:"verbose" mapstructure:"verbose"`
}

// AddonConfig holds scaffolding defaults.
type AddonConfig struct {
	// DefaultAuthor prefills the author prompt when creating entities.
	DefaultAuthor string `toml:"default_author" mapstructure:"default_author"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		GameDir:     "",
		SourcePaths: []string{},
		UI:          UIConfig{Verbose: false},
		Addon:       AddonConfig{DefaultAuthor: ""},
	}
}
