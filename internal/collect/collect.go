// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-billy/v5"

	"github.com/luca1197/gmod-developer-cli/internal/vmf"
)

// Collector wires the full pipeline: reference extraction, the graph walk,
// the copy stage and the end-of-run report.
type Collector struct {
	Search *SearchPath
	Output billy.Filesystem
	Logger *log.Logger
}

// Result is the outcome of one collection run.
type Result struct {
	Manifest *Manifest
	Copy     CopyResult
}

// CollectMap collects every asset a map document references.
func (c *Collector) CollectMap(doc *vmf.Map) (*Result, error) {
	seeds := MapSeeds(doc)
	c.Logger.Info("extracted map references", "count", len(seeds))
	return c.run(seeds)
}

// CollectModel collects a model's files and every asset the model
// references.
func (c *Collector) CollectModel(ref Ref) (*Result, error) {
	return c.run([]Seed{{Ref: ref, Origin: "Root model"}})
}

func (c *Collector) run(seeds []Seed) (*Result, error) {
	walker := NewWalker(c.Search, c.Logger)
	walker.Enqueue(seeds...)
	manifest := walker.Walk()

	copier := NewCopier(c.Output, c.Logger)
	copyResult, err := copier.Copy(manifest)
	if err != nil {
		return nil, err
	}

	c.reportMissing(manifest)
	for _, d := range manifest.Diagnostics() {
		switch d.Level {
		case DiagError:
			c.Logger.Error(d.Message)
		default:
			c.Logger.Warn(d.Message)
		}
	}
	c.summarize(manifest, copyResult)

	return &Result{Manifest: manifest, Copy: copyResult}, nil
}

var reportOrder = []Kind{KindMaterial, KindTexture, KindModel}

func (c *Collector) reportMissing(m *Manifest) {
	for _, kind := range reportOrder {
		missing := m.MissingOf(kind)
		if len(missing) == 0 {
			continue
		}
		c.Logger.Warn(fmt.Sprintf("%d %s(s) missing from source paths and game content:", len(missing), kind))
		for _, e := range missing {
			c.Logger.Warn("  - " + e.Ref.Path)
			c.Logger.Warn("    ↳ " + e.Origin)
			if e.Note != "" {
				c.Logger.Warn("    ↳ " + e.Note)
			}
		}
	}
}

func (c *Collector) summarize(m *Manifest, cr CopyResult) {
	s := m.Summary()
	for _, kind := range reportOrder {
		counts, ok := s.ByKind[kind]
		if !ok {
			continue
		}
		c.Logger.Info(kind.String()+"s",
			"found", counts.Found,
			"fromGame", counts.FoundInGame,
			"missing", counts.Missing)
	}
	c.Logger.Info("copy complete", "copied", cr.Copied, "skipped", cr.Skipped, "failed", len(cr.Failed))
}
