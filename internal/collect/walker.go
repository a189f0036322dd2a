// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"github.com/charmbracelet/log"
)

// Seed is one reference to resolve together with the human-readable origin
// shown next to it in the missing-asset report.
type Seed struct {
	Ref    Ref
	Origin string
}

// Walker drives the breadth-first traversal of the reference graph. Each
// reference is resolved at most once, in discovery order; references found
// during resolution (textures, patch bases, model materials) join the back
// of the queue.
type Walker struct {
	sp     *SearchPath
	logger *log.Logger

	manifest  *Manifest
	materials *materialResolver
	models    *modelResolver
	queue     []Seed
}

// NewWalker returns a Walker resolving against sp.
func NewWalker(sp *SearchPath, logger *log.Logger) *Walker {
	m := NewManifest()
	return &Walker{
		sp:        sp,
		logger:    logger,
		manifest:  m,
		materials: newMaterialResolver(sp, m),
		models:    &modelResolver{sp: sp, manifest: m},
	}
}

// Enqueue appends seeds to the work queue.
func (w *Walker) Enqueue(seeds ...Seed) {
	w.queue = append(w.queue, seeds...)
}

// Walk drains the queue and returns the completed manifest. The manifest
// must not be mutated afterwards; the copy stage reads it as-is.
func (w *Walker) Walk() *Manifest {
	for len(w.queue) > 0 {
		next := w.queue[0]
		w.queue = w.queue[1:]
		if w.manifest.Has(next.Ref) {
			continue
		}
		w.logger.Debug("resolving", "kind", next.Ref.Kind.String(), "path", next.Ref.Path)

		switch next.Ref.Kind {
		case KindMaterial:
			w.Enqueue(w.materials.resolve(next.Ref, next.Origin)...)
		case KindModel:
			w.Enqueue(w.models.resolve(next.Ref, next.Origin)...)
		case KindTexture:
			// Textures are leaves; nothing references onwards from a VTF.
			w.manifest.Add(next.Ref, w.sp.Resolve(next.Ref.Path), next.Origin)
		}
	}
	return w.manifest
}
