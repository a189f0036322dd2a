// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/luca1197/gmod-developer-cli/internal/collect"
	"github.com/luca1197/gmod-developer-cli/internal/gamefs"
	"github.com/luca1197/gmod-developer-cli/internal/issue"
	"github.com/luca1197/gmod-developer-cli/internal/steam"
)

// collectEnv holds everything a collection run needs: the resolved search
// path, the output filesystem and the logger.
type collectEnv struct {
	search *collect.SearchPath
	output billy.Filesystem
	logger *log.Logger
}

// newCollectEnv validates the source directories, indexes them, mounts the
// game content fallback and prepares the output directory.
func newCollectEnv(sourceDirs []string, outputDir string, logger *log.Logger) (*collectEnv, error) {
	if len(sourceDirs) == 0 {
		logger.Warn("no source paths were provided, only game content will be searched")
	}

	roots := make([]*collect.SearchRoot, 0, len(sourceDirs))
	for _, dir := range sourceDirs {
		if err := validateSourceDir(dir); err != nil {
			fmt.Fprintln(os.Stderr, issue.Get(issue.SourcePathInvalidId).Render(0))
			return nil, issue.NewErrorContext().
				WithOperation("index source path").
				WithResource(dir).
				WithSuggestion("Check the path for typos").
				WithSuggestion("Pass source paths with -s/--source-path or set source_paths in the config file").
				Wrap(err).
				BuildError()
		}

		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, issue.WrapWithContext(err, "resolve source path", dir)
		}

		root, err := collect.NewSearchRoot(osfs.New(abs), dir)
		if err != nil {
			return nil, issue.WrapWithContext(err, "index source path", dir)
		}
		roots = append(roots, root)
	}

	search := &collect.SearchPath{
		Roots: roots,
		Game:  locateGameIndex(logger),
	}
	logger.Info("indexed source paths", "files", search.TotalFiles())

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, issue.Get(issue.OutputPathInvalidId).Render(0))
		return nil, issue.WrapWithContext(err, "create output directory", outputDir)
	}

	return &collectEnv{
		search: search,
		output: osfs.New(outputDir),
		logger: logger,
	}, nil
}

// locateGameIndex mounts Garry's Mod's own content as the lowest-priority
// fallback. Failures here are not fatal: collection still runs against the
// source paths alone, with the relevant issue card explaining what happened.
func locateGameIndex(logger *log.Logger) collect.GameIndex {
	installDir := ""
	if cfg != nil {
		installDir = cfg.GameDir
	}
	if installDir == "" {
		located, err := steam.Locate()
		if err != nil {
			logger.Warn("could not locate a Garry's Mod install, game content will not be searched", "err", err)
			fmt.Fprintln(os.Stderr, issue.Get(issue.SteamNotFoundId).Render(0))
			return nil
		}
		installDir = located
	}
	logger.Info("found Garry's Mod install", "dir", installDir)

	idx, err := gamefs.Build(installDir, logger)
	if err != nil {
		logger.Warn("could not index game content, it will not be searched", "err", err)
		fmt.Fprintln(os.Stderr, issue.Get(issue.GameContentUnavailableId).Render(0))
		return nil
	}
	logger.Info("indexed game content", "files", idx.Len())
	return idx
}

// effectiveSourceDirs merges the -s/--source-path flags with the configured
// source_paths. Flag values come first so they win during resolution.
func effectiveSourceDirs(flagDirs []string) []string {
	dirs := make([]string, 0, len(flagDirs))
	dirs = append(dirs, flagDirs...)
	if cfg != nil {
		dirs = append(dirs, cfg.SourcePaths...)
	}
	return dirs
}
