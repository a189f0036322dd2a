// SPDX-License-Identifier: MPL-2.0

// Package gamefs indexes the content Garry's Mod itself ships: the loose
// directories and VPK archives reachable from the game's gameinfo.txt
// search paths. The collector consults the index so assets the game already
// provides are not reported missing or copied into addon output.
package gamefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.lubar.me/ben/valve/vpk"
	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/luca1197/gmod-developer-cli/internal/keyvalues"
)

// Index is a case-insensitive set of the files the game ships.
type Index struct {
	files map[string]string // normalized path → display location
}

// Contains reports whether the game ships the given path and where.
func (ix *Index) Contains(p string) (string, bool) {
	display, ok := ix.files[normalize(p)]
	return display, ok
}

// Len returns the number of indexed files.
func (ix *Index) Len() int { return len(ix.files) }

func (ix *Index) add(rel, display string) {
	key := normalize(rel)
	if _, exists := ix.files[key]; exists {
		return
	}
	ix.files[key] = display
}

func normalize(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
}

// Build scans a game install directory: it finds the gameinfo.txt in the
// game's content subdirectory, resolves the FileSystem.SearchPaths entries,
// and indexes every mounted loose directory and VPK archive. Mounted
// directories also contribute their top-level *_dir.vpk archives, which the
// engine loads without listing them in gameinfo.txt.
func Build(installDir string, logger *log.Logger) (*Index, error) {
	gameDir, err := findGameInfoDir(installDir)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(gameDir, "gameinfo.txt"))
	if err != nil {
		return nil, fmt.Errorf("open gameinfo.txt: %w", err)
	}
	doc, err := keyvalues.Parse(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parse gameinfo.txt: %w", err)
	}
	locations, err := contentSearchPaths(installDir, gameDir, doc)
	if err != nil {
		return nil, err
	}

	ix := &Index{files: map[string]string{}}
	for _, loc := range locations {
		display := displayName(installDir, loc)
		if strings.HasSuffix(strings.ToLower(loc), ".vpk") {
			ix.addArchive(resolveVPKPath(loc), display, logger)
			continue
		}
		ix.addDirectory(loc, display, logger)
	}
	logger.Debug("indexed game content", "files", ix.Len(), "searchpaths", len(locations))
	return ix, nil
}

// findGameInfoDir locates the subdirectory of the install holding
// gameinfo.txt (garrysmod/ for Garry's Mod).
func findGameInfoDir(installDir string) (string, error) {
	entries, err := os.ReadDir(installDir)
	if err != nil {
		return "", fmt.Errorf("read game install directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		candidate := filepath.Join(installDir, name)
		if _, err := os.Stat(filepath.Join(candidate, "gameinfo.txt")); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no gameinfo.txt found under %s", installDir)
}

// contentSearchPaths resolves the FileSystem.SearchPaths block to absolute
// locations. Only paths qualified as game, mod or platform content are
// mounted; gamebin and pure write paths carry no assets.
func contentSearchPaths(installDir, gameDir string, doc *keyvalues.Object) ([]string, error) {
	info := doc.Child("GameInfo")
	if info == nil {
		return nil, fmt.Errorf("gameinfo.txt has no GameInfo block")
	}
	fsBlock := info.Child("FileSystem")
	if fsBlock == nil {
		return nil, fmt.Errorf("gameinfo.txt has no FileSystem block")
	}
	sp := fsBlock.Child("SearchPaths")
	if sp == nil {
		return nil, fmt.Errorf("gameinfo.txt has no SearchPaths block")
	}

	var out []string
	seen := map[string]bool{}
	for _, pair := range sp.Pairs {
		if pair.HasChild() || pair.Value == "" {
			continue
		}
		if !isContentQualifier(pair.Key) {
			continue
		}
		loc := resolveLocation(installDir, gameDir, pair.Value)
		key := normalize(loc)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, loc)
	}
	return out, nil
}

func isContentQualifier(key string) bool {
	for _, q := range strings.Split(strings.ToLower(key), "+") {
		switch q {
		case "game", "mod", "platform":
			return true
		}
	}
	return false
}

func resolveLocation(installDir, gameDir, value string) string {
	const (
		gameinfoToken = "|gameinfo_path|"
		engineToken   = "|all_source_engine_paths|"
	)
	v := strings.ReplaceAll(value, "\\", "/")
	switch {
	case strings.HasPrefix(strings.ToLower(v), gameinfoToken):
		return filepath.Clean(filepath.Join(gameDir, v[len(gameinfoToken):]))
	case strings.HasPrefix(strings.ToLower(v), engineToken):
		return filepath.Clean(filepath.Join(installDir, v[len(engineToken):]))
	case filepath.IsAbs(v):
		return filepath.Clean(v)
	default:
		return filepath.Clean(filepath.Join(installDir, v))
	}
}

// resolveVPKPath maps a gameinfo VPK entry to the on-disk directory archive:
// "hl2/hl2_misc.vpk" ships as "hl2/hl2_misc_dir.vpk".
func resolveVPKPath(loc string) string {
	if _, err := os.Stat(loc); err == nil {
		return loc
	}
	return strings.TrimSuffix(loc, ".vpk") + "_dir.vpk"
}

func (ix *Index) addDirectory(dir, display string, logger *log.Logger) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		logger.Debug("skipping absent game search path", "path", dir)
		return
	}

	fsys := osfs.New(dir)
	err := util.Walk(fsys, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(filepath.ToSlash(p), "/")
		ix.add(rel, display+"/"+rel)
		return nil
	})
	if err != nil {
		logger.Warn("failed to scan game search path", "path", dir, "err", err)
	}

	entries, err := fsys.ReadDir("/")
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), "_dir.vpk") {
			continue
		}
		ix.addArchive(filepath.Join(dir, e.Name()), display+"/"+e.Name(), logger)
	}
}

func (ix *Index) addArchive(vpkPath, display string, logger *log.Logger) {
	if _, err := os.Stat(vpkPath); err != nil {
		logger.Debug("skipping absent game archive", "path", vpkPath)
		return
	}
	opener := vpk.Single(vpkPath)
	defer opener.Close()

	archive, err := opener.ReadArchive()
	if err != nil {
		logger.Warn("failed to read game archive", "path", vpkPath, "err", err)
		return
	}
	for _, file := range archive.Files {
		name := file.Name()
		ix.add(name, display+":"+name)
	}
}

func displayName(installDir, loc string) string {
	rel, err := filepath.Rel(installDir, loc)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(loc)
	}
	return filepath.ToSlash(rel)
}
