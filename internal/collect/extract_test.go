// SPDX-License-Identifier: MPL-2.0

package collect

import (
	"reflect"
	"testing"

	"github.com/luca1197/gmod-developer-cli/internal/vmf"
)

func TestMapSeeds(t *testing.T) {
	t.Parallel()

	doc := &vmf.Map{
		World: vmf.World{Solids: []vmf.Solid{{
			ID: 4,
			Sides: []vmf.Side{
				{ID: 5, Material: "BRICK/FLOOR01"},
				{ID: 6, Material: ""},
			},
		}}},
		Entities: []vmf.Entity{
			{ID: 10, ClassName: "prop_physics", Properties: map[string]string{"model": "models/props/crate.mdl"}},
			{ID: 11, ClassName: "env_sprite", Properties: map[string]string{"model": "sprites/glow01.SPR"}},
			{ID: 12, ClassName: "func_breakable", Properties: map[string]string{"model": "*4"}},
			{ID: 13, ClassName: "func_detail", Solids: []vmf.Solid{{
				ID:    14,
				Sides: []vmf.Side{{ID: 15, Material: "METAL/WALL"}},
			}}},
			{ID: 16, ClassName: "env_screenoverlay", Properties: map[string]string{"material": "effects/overlay"}},
			{ID: 17, ClassName: "infodecal", Properties: map[string]string{"texture": "decals/decalgraffiti001a"}},
		},
	}

	want := []Seed{
		{Ref: MaterialRef("brick/floor01"), Origin: "Used by world brush / solid 4"},
		{Ref: ModelRef("models/props/crate.mdl"), Origin: "Entity 10 (prop_physics)"},
		{Ref: MaterialRef("sprites/glow01"), Origin: "Sprite material for entity 11 (env_sprite)"},
		{Ref: MaterialRef("metal/wall"), Origin: "Used by brush / solid 14 in entity 13 (func_detail)"},
		{Ref: MaterialRef("effects/overlay"), Origin: `Entity 16 (env_screenoverlay) "material" property`},
		{Ref: MaterialRef("decals/decalgraffiti001a"), Origin: `Entity 17 (infodecal) "texture" property`},
	}
	got := MapSeeds(doc)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MapSeeds() =\n%v\nwant\n%v", got, want)
	}
}

func TestMapSeedsEmptyMap(t *testing.T) {
	t.Parallel()

	if got := MapSeeds(&vmf.Map{}); len(got) != 0 {
		t.Errorf("MapSeeds(empty) = %v", got)
	}
}

func TestDeriveModelRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sourceDirs []string
		modelPath  string
		want       string
	}{
		{
			name:       "inside first source dir",
			sourceDirs: []string{"/home/u/addon"},
			modelPath:  "/home/u/addon/models/props/crate.mdl",
			want:       "models/props/crate.mdl",
		},
		{
			name:       "inside second source dir",
			sourceDirs: []string{"/home/u/other", "/home/u/addon"},
			modelPath:  "/home/u/addon/models/props/crate.mdl",
			want:       "models/props/crate.mdl",
		},
		{
			name:       "casing normalized",
			sourceDirs: []string{"/home/u/addon"},
			modelPath:  "/home/u/addon/Models/Props/Crate.MDL",
			want:       "models/props/crate.mdl",
		},
		{
			name:      "outside roots with models segment",
			modelPath: "/downloads/pack/models/weapons/shotgun.mdl",
			want:      "models/weapons/shotgun.mdl",
		},
		{
			name:      "models-like directory name does not match",
			modelPath: "/downloads/mymodels/shotgun.mdl",
			want:      "shotgun.mdl",
		},
		{
			name:      "bare file",
			modelPath: "/tmp/crate.mdl",
			want:      "crate.mdl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DeriveModelRef(tt.sourceDirs, tt.modelPath)
			if got.Kind != KindModel || got.Path != tt.want {
				t.Errorf("DeriveModelRef() = %v %q, want model %q", got.Kind, got.Path, tt.want)
			}
		})
	}
}
