// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/luca1197/gmod-developer-cli/internal/vmf"
)

// MapSeeds extracts the raw asset references of a map document, each paired
// with an origin string describing where in the map it was used.
func MapSeeds(doc *vmf.Map) []Seed {
	var seeds []Seed

	for _, solid := range doc.World.Solids {
		for _, side := range solid.Sides {
			if side.Material == "" {
				continue
			}
			seeds = append(seeds, Seed{
				Ref:    MaterialRef(side.Material),
				Origin: fmt.Sprintf("Used by world brush / solid %d", solid.ID),
			})
		}
	}

	for _, ent := range doc.Entities {
		for _, solid := range ent.Solids {
			for _, side := range solid.Sides {
				if side.Material == "" {
					continue
				}
				seeds = append(seeds, Seed{
					Ref:    MaterialRef(side.Material),
					Origin: fmt.Sprintf("Used by brush / solid %d in entity %d (%s)", solid.ID, ent.ID, ent.ClassName),
				})
			}
		}
		seeds = append(seeds, entitySeeds(ent)...)
	}
	return seeds
}

// entitySeeds extracts the asset references of a single entity's properties.
func entitySeeds(ent vmf.Entity) []Seed {
	var seeds []Seed

	if material := ent.Properties["material"]; material != "" {
		seeds = append(seeds, Seed{
			Ref:    MaterialRef(material),
			Origin: fmt.Sprintf("Entity %d (%s) \"material\" property", ent.ID, ent.ClassName),
		})
	}
	if texture := ent.Properties["texture"]; texture != "" {
		seeds = append(seeds, Seed{
			Ref:    MaterialRef(texture),
			Origin: fmt.Sprintf("Entity %d (%s) \"texture\" property", ent.ID, ent.ClassName),
		})
	}

	model := ent.Properties["model"]
	switch {
	case model == "":
	case strings.HasPrefix(model, "*"):
		// "*N" points at brush geometry compiled into the map itself.
	case strings.EqualFold(ent.ClassName, "env_sprite"):
		// Sprites are materials; the engine resolves the legacy .spr
		// extension to a VMT and so do we.
		seeds = append(seeds, Seed{
			Ref:    MaterialRef(trimSpriteExt(model)),
			Origin: fmt.Sprintf("Sprite material for entity %d (%s)", ent.ID, ent.ClassName),
		})
	default:
		seeds = append(seeds, Seed{
			Ref:    ModelRef(model),
			Origin: fmt.Sprintf("Entity %d (%s)", ent.ID, ent.ClassName),
		})
	}
	return seeds
}

func trimSpriteExt(p string) string {
	if strings.HasSuffix(strings.ToLower(p), ".spr") {
		return p[:len(p)-len(".spr")]
	}
	return p
}

// DeriveModelRef maps a model file path from the command line to reference
// form: the path made relative to the source root that contains it. Paths
// outside every root keep their models/-rooted tail so the in-game location
// stays intact, or degrade to the bare file name.
func DeriveModelRef(sourceDirs []string, modelPath string) Ref {
	for _, dir := range sourceDirs {
		rel, err := filepath.Rel(dir, modelPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		return ModelRef(filepath.ToSlash(rel))
	}
	norm := normalizePath(modelPath)
	if strings.HasPrefix(norm, "models/") {
		return ModelRef(norm)
	}
	if i := strings.Index(norm, "/models/"); i >= 0 {
		return ModelRef(norm[i+1:])
	}
	return ModelRef(path.Base(norm))
}
