// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"fmt"
	"io"
	"path"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"
)

// CopyResult tallies one copy pass over a manifest.
type CopyResult struct {
	Copied  int
	Skipped int
	// Failed records source files the index saw but that could not be read
	// back at copy time. They do not abort the pass.
	Failed []Diagnostic
}

// Copier writes the resolved closure into the output filesystem, mirroring
// each file's source-relative path. Only Found entries are written: game
// content is present in every installation and missing entries have nothing
// to copy.
type Copier struct {
	out    billy.Filesystem
	logger *log.Logger

	// copied guards against writing the same relative path twice when two
	// entries resolve to it.
	copied map[string]bool
}

// NewCopier returns a Copier writing into out.
func NewCopier(out billy.Filesystem, logger *log.Logger) *Copier {
	return &Copier{out: out, logger: logger, copied: make(map[string]bool)}
}

// Copy writes every Found entry of m, model siblings included. A failure to
// write into the output filesystem aborts the pass and is returned; source
// read failures are recorded in the result and skipped over.
func (c *Copier) Copy(m *Manifest) (CopyResult, error) {
	var result CopyResult
	for _, entry := range m.Entries() {
		if err := c.copyOne(entry.Resolution, &result); err != nil {
			return result, err
		}
		for _, sibling := range entry.Siblings {
			if err := c.copyOne(sibling.Resolution, &result); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

func (c *Copier) copyOne(res Resolution, result *CopyResult) error {
	if res.Status != StatusFound {
		return nil
	}
	key := normalizePath(res.RelPath)
	if c.copied[key] {
		result.Skipped++
		return nil
	}

	src, err := res.Root.Open(res.RelPath)
	if err != nil {
		// Indexed at startup but gone or unreadable now.
		result.Failed = append(result.Failed, Diagnostic{
			Level:   DiagError,
			Message: fmt.Sprintf("read %s: %v", res.RelPath, err),
		})
		c.logger.Error("copy failed", "path", res.RelPath, "err", err)
		return nil
	}
	defer src.Close()

	if err := c.write(src, res.RelPath); err != nil {
		return fmt.Errorf("write %s: %w", res.RelPath, err)
	}
	c.copied[key] = true
	result.Copied++
	c.logger.Debug("copied", "path", res.RelPath, "from", res.Root.Dir)
	return nil
}

func (c *Copier) write(src io.Reader, rel string) error {
	if dir := path.Dir(rel); dir != "." {
		if err := c.out.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	dst, err := c.out.Create(rel)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
