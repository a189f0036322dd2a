// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/luca1197/gmod-developer-cli/internal/config"
	"github.com/luca1197/gmod-developer-cli/internal/issue"
)

const testGameInfo = `"GameInfo"
{
	game	"Garry's Mod"

	FileSystem
	{
		SteamAppId	4000

		SearchPaths
		{
			"game+mod+mod_write+default_write_path"	"|gameinfo_path|."
		}
	}
}
`

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNewCollectEnv(t *testing.T) {
	// Not parallel: reads the package-level cfg var.
	origCfg := cfg
	t.Cleanup(func() { cfg = origCfg })

	dir := t.TempDir()
	src := filepath.Join(dir, "content")
	if err := os.MkdirAll(filepath.Join(src, "materials"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "materials", "concrete.vmt"), []byte(`"LightmappedGeneric"{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	// Point game_dir at an empty directory so the game index
	// deterministically fails to mount.
	noGame := filepath.Join(dir, "nogame")
	if err := os.Mkdir(noGame, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg = &config.Config{GameDir: noGame}

	env, err := newCollectEnv([]string{src}, out, discardLogger())
	if err != nil {
		t.Fatalf("newCollectEnv() error = %v", err)
	}

	if got := env.search.TotalFiles(); got != 1 {
		t.Errorf("TotalFiles() = %d, want 1", got)
	}
	if env.search.Game != nil {
		t.Error("Game index = non-nil, want nil when the install dir holds no gameinfo.txt")
	}
	if fi, statErr := os.Stat(out); statErr != nil || !fi.IsDir() {
		t.Errorf("output directory was not created: %v", statErr)
	}
}

func TestNewCollectEnv_MissingSource(t *testing.T) {
	// Not parallel: reads the package-level cfg var.
	origCfg := cfg
	t.Cleanup(func() { cfg = origCfg })
	cfg = nil

	dir := t.TempDir()

	_, err := newCollectEnv([]string{filepath.Join(dir, "missing")}, filepath.Join(dir, "out"), discardLogger())
	if err == nil {
		t.Fatal("newCollectEnv() = nil, want error for missing source path")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error %v is not an ActionableError", err)
	}
	if ae.Operation != "index source path" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "index source path")
	}

	// The output directory must not be created when validation fails.
	if _, statErr := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(statErr) {
		t.Error("output directory was created despite the validation failure")
	}
}

func TestNewCollectEnv_SourceIsFile(t *testing.T) {
	// Not parallel: reads the package-level cfg var.
	origCfg := cfg
	t.Cleanup(func() { cfg = origCfg })
	cfg = nil

	dir := t.TempDir()
	filePath := filepath.Join(dir, "not-a-dir.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := newCollectEnv([]string{filePath}, filepath.Join(dir, "out"), discardLogger())
	if err == nil {
		t.Fatal("newCollectEnv() = nil, want error for file passed as source path")
	}
}

func TestLocateGameIndex_ConfiguredInstall(t *testing.T) {
	// Not parallel: mutates the package-level cfg var.
	origCfg := cfg
	t.Cleanup(func() { cfg = origCfg })

	install := t.TempDir()
	files := map[string]string{
		"garrysmod/gameinfo.txt":                      testGameInfo,
		"garrysmod/materials/metal/metalwall048b.vmt": "a",
	}
	for rel, content := range files {
		path := filepath.Join(install, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg = &config.Config{GameDir: install}

	idx := locateGameIndex(discardLogger())
	if idx == nil {
		t.Fatal("locateGameIndex() = nil, want index for a valid install")
	}
	if _, ok := idx.Contains("materials/metal/metalwall048b.vmt"); !ok {
		t.Error("Contains() = false, want true for a mounted file")
	}
}
