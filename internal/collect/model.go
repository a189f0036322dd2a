// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"fmt"
	"strings"

	"github.com/luca1197/gmod-developer-cli/internal/mdl"
)

// ModelSuffix is the extension of the studiomdl container itself.
const ModelSuffix = ".mdl"

// ModelSiblingSuffixes are the companion files a compiled model ships with,
// swapped in for the .mdl extension. The engine tolerates their absence (a
// model without collision geometry has no .phy), so a missing sibling is a
// warning rather than a missing asset.
var ModelSiblingSuffixes = []string{".dx90.vtx", ".phy", ".vvd"}

// modelResolver resolves model references: the .mdl and its sibling files
// against the search path, plus the material references packed into the
// studiomdl header.
type modelResolver struct {
	sp       *SearchPath
	manifest *Manifest
}

// resolve records ref and its siblings in the manifest and returns the
// material references the model header names.
func (r *modelResolver) resolve(ref Ref, origin string) []Seed {
	res := r.sp.Resolve(ref.Path)
	entry := r.manifest.Add(ref, res, origin)

	// Entity model properties occasionally name sprites or other loose
	// files. Only studiomdl containers carry siblings and materials.
	if !strings.HasSuffix(ref.Path, ModelSuffix) {
		return nil
	}

	// Game models ship complete with their own siblings and materials, and
	// a missing model has nothing to probe.
	if res.Status != StatusFound {
		return nil
	}

	stem := strings.TrimSuffix(ref.Path, ModelSuffix)
	for _, suffix := range ModelSiblingSuffixes {
		sres := r.sp.Resolve(stem + suffix)
		if sres.Status == StatusMissing {
			r.manifest.Warnf("model %q has no %s file", ref.Path, suffix)
			continue
		}
		entry.Siblings = append(entry.Siblings, Sibling{Suffix: suffix, Resolution: sres})
	}

	data, err := res.Root.ReadFile(res.RelPath)
	if err != nil {
		entry.Status = StatusMissing
		entry.Note = err.Error()
		r.manifest.Warnf("unreadable model %q: %v", ref.Path, err)
		return nil
	}
	model, err := mdl.DecodeBytes(data)
	if err != nil {
		entry.Status = StatusMissing
		entry.Note = err.Error()
		r.manifest.Warnf("malformed model %q: %v", ref.Path, err)
		return nil
	}

	// Every search directory is paired with every texture name; the engine
	// probes the same product at load time, so unused pairs simply resolve
	// as missing.
	var found []Seed
	origin = fmt.Sprintf("Used by model %q", ref.Path)
	for _, dir := range model.TextureDirs {
		for _, name := range model.Textures {
			found = append(found, Seed{
				Ref:    MaterialRef(joinMaterialDir(dir, name)),
				Origin: origin,
			})
		}
	}
	return found
}

// joinMaterialDir joins a cdmaterials directory with a texture name. The
// directory comes from the compiler verbatim: backslashed, with or without a
// trailing separator, possibly empty for materials rooted at the top.
func joinMaterialDir(dir, name string) string {
	dir = strings.ReplaceAll(dir, `\`, "/")
	if dir != "" && !strings.HasSuffix(dir, "/") {
		dir += "/"
	}
	return dir + name
}
