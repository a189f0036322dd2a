// SPDX-License-Identifier: MPL-2.0

// Package steam locates the Garry's Mod installation through Steam's
// library metadata, without talking to Steam itself.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/luca1197/gmod-developer-cli/internal/keyvalues"
)

// AppID is Garry's Mod's Steam application id.
const AppID = 4000

// Locate finds the Garry's Mod install directory: it picks the first Steam
// root that exists for this platform, reads steamapps/libraryfolders.vdf for
// every library, and follows the app manifest to the install directory.
func Locate() (string, error) {
	root, err := findRoot(defaultRoots())
	if err != nil {
		return "", err
	}
	return locateApp(root)
}

func defaultRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	switch runtime.GOOS {
	case "windows":
		candidates := []string{`C:\Program Files (x86)\Steam`, `C:\Program Files\Steam`}
		if pf := os.Getenv("ProgramFiles(x86)"); pf != "" {
			candidates[0] = filepath.Join(pf, "Steam")
		}
		return candidates
	case "darwin":
		return []string{filepath.Join(home, "Library", "Application Support", "Steam")}
	default:
		return []string{
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		}
	}
}

func findRoot(candidates []string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(filepath.Join(c, "steamapps")); err == nil && info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("no Steam installation found (looked in %s)", strings.Join(candidates, ", "))
}

func locateApp(root string) (string, error) {
	for _, lib := range libraryPaths(root) {
		manifest := filepath.Join(lib, "steamapps", "appmanifest_"+strconv.Itoa(AppID)+".acf")
		f, err := os.Open(manifest)
		if err != nil {
			continue
		}
		doc, err := keyvalues.Parse(f)
		f.Close()
		if err != nil {
			continue
		}
		state := doc.Child("AppState")
		if state == nil {
			continue
		}
		installDir := state.Value("installdir")
		if installDir == "" {
			continue
		}
		dir := filepath.Join(lib, "steamapps", "common", installDir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("Garry's Mod (app %d) not found in any Steam library under %s", AppID, root)
}

// libraryPaths lists every Steam library, the root included. Both
// libraryfolders.vdf layouts are read: the old one maps numeric keys to
// path strings, the current one maps them to blocks with a "path" value.
func libraryPaths(root string) []string {
	paths := []string{root}
	f, err := os.Open(filepath.Join(root, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		return paths
	}
	defer f.Close()
	doc, err := keyvalues.Parse(f)
	if err != nil {
		return paths
	}
	folders := doc.Child("libraryfolders")
	if folders == nil {
		return paths
	}
	for _, p := range folders.Pairs {
		if _, err := strconv.Atoi(p.Key); err != nil {
			continue
		}
		var lib string
		if p.HasChild() {
			lib = p.Child.Value("path")
		} else {
			lib = p.Value
		}
		if lib == "" || sameDir(lib, root) {
			continue
		}
		paths = append(paths, lib)
	}
	return paths
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
