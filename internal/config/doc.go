// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as
// the file format.
//
// Configuration is loaded from ~/.config/gmdev/config.toml (or the XDG
// equivalent on Linux, ~/Library/Application Support/gmdev/config.toml on
// macOS, %APPDATA%\gmdev\config.toml on Windows), falling back to a
// gmdev.toml in the working directory for per-project settings. GMDEV_*
// environment variables override file values. It covers the Garry's Mod
// install location, default content source paths, UI verbosity, and
// scaffolding defaults.
package config
