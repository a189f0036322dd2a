// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Status classifies how a reference resolved.
type Status int

const (
	// StatusMissing means no source root and not the game provides the file.
	StatusMissing Status = iota
	// StatusFound means a source root provides the file; it will be copied.
	StatusFound
	// StatusFoundInGame means only the installed game provides the file.
	// Game content ships with every player, so it is reported but never
	// copied or parsed further.
	StatusFoundInGame
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusFoundInGame:
		return "found in game"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// SearchRoot is one user content directory with a prebuilt index of every
// file underneath it. The index maps normalized relative paths to their
// as-on-disk spelling so copies preserve the original casing.
type SearchRoot struct {
	// Dir is the root as the user provided it, for display.
	Dir string

	fs    billy.Filesystem
	index map[string]string
}

// NewSearchRoot walks fsys once and indexes every file under it. Entries
// that cannot be read are skipped.
func NewSearchRoot(fsys billy.Filesystem, dir string) (*SearchRoot, error) {
	r := &SearchRoot{Dir: dir, fs: fsys, index: map[string]string{}}
	err := util.Walk(fsys, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(filepath.ToSlash(p), "/")
		key := normalizePath(rel)
		if _, exists := r.index[key]; !exists {
			r.index[key] = rel
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("indexing source path %s: %w", dir, err)
	}
	return r, nil
}

// Len returns the number of indexed files.
func (r *SearchRoot) Len() int { return len(r.index) }

// Lookup maps a normalized path to its as-on-disk relative path.
func (r *SearchRoot) Lookup(norm string) (string, bool) {
	rel, ok := r.index[norm]
	return rel, ok
}

// Open opens an indexed file by its as-on-disk relative path.
func (r *SearchRoot) Open(rel string) (billy.File, error) {
	return r.fs.Open(rel)
}

// ReadFile reads an indexed file by its as-on-disk relative path.
func (r *SearchRoot) ReadFile(rel string) ([]byte, error) {
	return util.ReadFile(r.fs, rel)
}

// GameIndex reports whether the installed game ships a path, and where.
type GameIndex interface {
	Contains(path string) (display string, ok bool)
}

// Resolution is the outcome of resolving one reference.
type Resolution struct {
	Status Status
	// Root and RelPath locate the file for StatusFound.
	Root    *SearchRoot
	RelPath string
	// Location is the game-side display location for StatusFoundInGame.
	Location string
}

// SearchPath is the ordered set of user roots plus the optional game
// fallback. Roots earlier in the slice win.
type SearchPath struct {
	Roots []*SearchRoot
	Game  GameIndex
}

// Resolve probes the roots in priority order and returns the first hit. The
// game content is consulted only after every root misses.
func (sp *SearchPath) Resolve(p string) Resolution {
	norm := normalizePath(p)
	for _, root := range sp.Roots {
		if rel, ok := root.Lookup(norm); ok {
			return Resolution{Status: StatusFound, Root: root, RelPath: rel}
		}
	}
	if sp.Game != nil {
		if display, ok := sp.Game.Contains(norm); ok {
			return Resolution{Status: StatusFoundInGame, Location: display}
		}
	}
	return Resolution{Status: StatusMissing}
}

// TotalFiles sums the index sizes of all roots.
func (sp *SearchPath) TotalFiles() int {
	n := 0
	for _, root := range sp.Roots {
		n += root.Len()
	}
	return n
}
