// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"fmt"

	"github.com/luca1197/gmod-developer-cli/internal/vmt"
)

// materialResolver resolves material references. It locates each VMT in the
// search path, follows patch chains down to their base material, and reports
// the textures and further materials the effective parameter set names.
type materialResolver struct {
	sp       *SearchPath
	manifest *Manifest

	// params memoizes the effective parameter set per resolved material so
	// overlapping patch chains never re-read or re-parse a VMT. A material
	// that resolved but could not be inspected memoizes nil.
	params map[Ref]map[string]string
}

func newMaterialResolver(sp *SearchPath, manifest *Manifest) *materialResolver {
	return &materialResolver{
		sp:       sp,
		manifest: manifest,
		params:   make(map[Ref]map[string]string),
	}
}

// resolve records ref in the manifest and returns the references discovered
// inside it. Patch bases are resolved eagerly here rather than queued, since
// the patch's effective parameters cannot be known without them.
func (r *materialResolver) resolve(ref Ref, origin string) []Seed {
	var found []Seed
	r.resolveChain(ref, origin, map[Ref]bool{}, &found)
	return found
}

// resolveChain resolves one link of a patch chain and returns its effective
// parameter set for enclosing patches to merge, or nil when the material has
// no parameters to offer (missing, game content, or unreadable). ancestors
// holds the refs currently being resolved above this link.
func (r *materialResolver) resolveChain(ref Ref, origin string, ancestors map[Ref]bool, found *[]Seed) map[string]string {
	if r.manifest.Has(ref) {
		// Resolved through an earlier chain; its discoveries were reported
		// then. Enclosing patches still need the memoized parameters.
		return r.params[ref]
	}

	res := r.sp.Resolve(ref.Path)
	entry := r.manifest.Add(ref, res, origin)
	if res.Status != StatusFound {
		// Missing yields nothing, and game content ships alongside its own
		// dependencies on every installation.
		return nil
	}

	data, err := res.Root.ReadFile(res.RelPath)
	if err != nil {
		entry.Status = StatusMissing
		entry.Note = err.Error()
		r.manifest.Warnf("unreadable material %q: %v", ref.Path, err)
		return nil
	}
	mat, err := vmt.ParseString(string(data))
	if err != nil {
		entry.Status = StatusMissing
		entry.Note = err.Error()
		r.manifest.Warnf("malformed material %q: %v", ref.Path, err)
		return nil
	}

	effective := mat.Params
	if mat.IsPatch() {
		effective = r.resolvePatch(ref, mat, ancestors, found)
	}
	r.params[ref] = effective

	for _, use := range vmt.TextureUses(effective) {
		*found = append(*found, Seed{
			Ref:    TextureRef(use.Value),
			Origin: fmt.Sprintf("Used by material %q in %s", ref.Path, use.Param),
		})
	}
	if bottom, ok := vmt.BottomMaterial(effective); ok {
		*found = append(*found, Seed{
			Ref:    MaterialRef(bottom),
			Origin: fmt.Sprintf("Used by material %q in %s", ref.Path, vmt.BottomMaterialParam),
		})
	}
	return effective
}

// resolvePatch resolves a patch material's base and merges the patch
// overrides on top of the base's effective parameters. A base that is
// already being resolved higher up the chain is a cycle; the chain is cut
// there and the patch keeps only its own overrides.
func (r *materialResolver) resolvePatch(ref Ref, mat *vmt.Material, ancestors map[Ref]bool, found *[]Seed) map[string]string {
	effective := make(map[string]string)

	if mat.Include == "" {
		r.manifest.Warnf("patch material %q names no include", ref.Path)
	} else if base := MaterialRef(mat.Include); base == ref || ancestors[base] {
		r.manifest.Warnf("circular patch reference: %q includes %q", ref.Path, base.Path)
	} else {
		ancestors[ref] = true
		baseParams := r.resolveChain(base, fmt.Sprintf("Included by patch material %q", ref.Path), ancestors, found)
		delete(ancestors, ref)
		for k, v := range baseParams {
			effective[k] = v
		}
	}

	for k, v := range mat.Overrides {
		effective[k] = v
	}
	return effective
}
