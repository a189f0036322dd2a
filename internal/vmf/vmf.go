// SPDX-License-Identifier: MPL-2.0

// Package vmf decodes Hammer map source (VMF) documents into the world
// brushes and entities the content collector walks for asset references.
package vmf

import (
	"io"
	"strconv"
	"strings"

	"github.com/luca1197/gmod-developer-cli/internal/keyvalues"
)

// Side is a single brush face.
type Side struct {
	ID       int
	Material string
	// Plane holds the three defining points as written, e.g.
	// "(-64 -64 0) (64 -64 0) (64 64 0)".
	Plane string
}

// Solid is a convex brush made of sides.
type Solid struct {
	ID    int
	Sides []Side
}

// Entity is a point or brush entity.
type Entity struct {
	ID        int
	ClassName string
	// Properties holds the entity's value pairs with lowercased keys.
	Properties map[string]string
	// Solids is non-empty for brush entities (triggers, water, ...).
	Solids []Solid
}

// Map is a decoded VMF document.
type Map struct {
	World    World
	Entities []Entity
}

// World holds the worldspawn geometry.
type World struct {
	Solids []Solid
}

// Stats summarizes a map's world geometry.
type Stats struct {
	Solids   int
	Faces    int
	Vertices int // plane points, three per face
	Entities int
	// Materials counts distinct brush face materials across world and
	// entity solids, compared case-insensitively.
	Materials int
}

// Stats counts the world's brushes and faces.
func (m *Map) Stats() Stats {
	s := Stats{Solids: len(m.World.Solids), Entities: len(m.Entities)}
	materials := map[string]struct{}{}
	for _, solid := range m.World.Solids {
		s.Faces += len(solid.Sides)
		for _, side := range solid.Sides {
			materials[strings.ToLower(side.Material)] = struct{}{}
		}
	}
	for _, ent := range m.Entities {
		for _, solid := range ent.Solids {
			for _, side := range solid.Sides {
				materials[strings.ToLower(side.Material)] = struct{}{}
			}
		}
	}
	s.Vertices = s.Faces * 3
	s.Materials = len(materials)
	return s
}

// Parse decodes a VMF document. Documents without a world block decode to an
// empty world rather than failing; a syntactically broken document fails
// with the underlying keyvalues error.
func Parse(r io.Reader) (*Map, error) {
	root, err := keyvalues.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromObject(root), nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Map, error) {
	root, err := keyvalues.ParseString(s)
	if err != nil {
		return nil, err
	}
	return fromObject(root), nil
}

func fromObject(root *keyvalues.Object) *Map {
	m := &Map{}
	if world := root.Child("world"); world != nil {
		m.World.Solids = solidsOf(world)
	}
	collectEntities(root, &m.Entities)
	return m
}

// collectEntities gathers root-level entity blocks. Hammer wraps geometry
// hidden in the editor in "hidden" blocks, which still ships in the
// compiled map, so those are walked too.
func collectEntities(obj *keyvalues.Object, out *[]Entity) {
	for _, p := range obj.Pairs {
		if !p.HasChild() {
			continue
		}
		switch {
		case strings.EqualFold(p.Key, "entity"):
			*out = append(*out, entityOf(p.Child))
		case strings.EqualFold(p.Key, "hidden"):
			collectEntities(p.Child, out)
		}
	}
}

func entityOf(obj *keyvalues.Object) Entity {
	e := Entity{Properties: map[string]string{}}
	for _, p := range obj.Pairs {
		if p.HasChild() {
			continue
		}
		e.Properties[strings.ToLower(p.Key)] = p.Value
	}
	e.ID = atoi(e.Properties["id"])
	e.ClassName = e.Properties["classname"]
	e.Solids = solidsOf(obj)
	return e
}

func solidsOf(obj *keyvalues.Object) []Solid {
	var solids []Solid
	for _, p := range obj.Pairs {
		if !p.HasChild() {
			continue
		}
		switch {
		case strings.EqualFold(p.Key, "solid"):
			solids = append(solids, solidOf(p.Child))
		case strings.EqualFold(p.Key, "hidden"):
			solids = append(solids, solidsOf(p.Child)...)
		}
	}
	return solids
}

func solidOf(obj *keyvalues.Object) Solid {
	s := Solid{ID: atoi(obj.Value("id"))}
	for _, p := range obj.All("side") {
		if !p.HasChild() {
			continue
		}
		s.Sides = append(s.Sides, Side{
			ID:       atoi(p.Child.Value("id")),
			Material: p.Child.Value("material"),
			Plane:    p.Child.Value("plane"),
		})
	}
	return s
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
