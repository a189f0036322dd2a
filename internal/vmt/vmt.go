// SPDX-License-Identifier: MPL-2.0

// Package vmt decodes Valve material (VMT) documents into the parts the
// content collector cares about: the shader name, the string parameters,
// and for patch shaders the base material plus its parameter overrides.
package vmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/luca1197/gmod-developer-cli/internal/keyvalues"
)

// TextureParams is the set of material parameters whose values name VTF
// textures under materials/. Parameters outside this set never contribute
// texture dependencies.
var TextureParams = []string{
	"$basetexture",
	"$basetexture2",
	"$detail",
	"$detail1",
	"$detail2",
	"$bumpmap",
	"$bumpmap2",
	"$bumpmask",
	"$selfillummask",
	"$selfillumtexture",
	"$ambientoccltexture",
	"$lightmap",
	"$phongexponenttexture",
	"$phongwarptexture",
	"$envmap",
	"$envmapmask",
	"$tintmasktexture",
	"$blendmodulatetexture",
	"$normalmap",
	"$lightwarptexture",
}

// BottomMaterialParam names the parameter whose value is another material
// rather than a texture (the below-surface material of water shaders).
const BottomMaterialParam = "$bottommaterial"

// EnvCubemap is the sentinel parameter value meaning "sample the map's own
// cubemap". It is not a texture file and must never be resolved as one.
const EnvCubemap = "env_cubemap"

// Material is a decoded VMT document.
type Material struct {
	// Shader is the root shader name, e.g. "LightmappedGeneric" or "patch".
	Shader string
	// Params holds the shader block's string parameters with lowercased
	// keys. For a patch shader these are the patch block's own parameters,
	// not the base material's.
	Params map[string]string
	// Include is the base material path of a patch shader, empty otherwise.
	Include string
	// Overrides merges a patch shader's insert and replace blocks, with
	// replace winning. Empty for non-patch shaders.
	Overrides map[string]string
}

// IsPatch reports whether the material uses the patch shader, which splices
// parameter overrides onto another material named by Include.
func (m *Material) IsPatch() bool {
	return strings.EqualFold(m.Shader, "patch")
}

// Parse decodes a VMT document. The shader block is the first block in the
// file; a document without one is malformed.
func Parse(r io.Reader) (*Material, error) {
	root, err := keyvalues.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromObject(root)
}

// ParseString is Parse over a string.
func ParseString(s string) (*Material, error) {
	root, err := keyvalues.ParseString(s)
	if err != nil {
		return nil, err
	}
	return fromObject(root)
}

func fromObject(root *keyvalues.Object) (*Material, error) {
	var shader keyvalues.Pair
	for _, p := range root.Pairs {
		if p.HasChild() {
			shader = p
			break
		}
	}
	if shader.Child == nil {
		return nil, fmt.Errorf("material has no shader block")
	}

	m := &Material{
		Shader: shader.Key,
		Params: stringParams(shader.Child),
	}
	if !m.IsPatch() {
		return m, nil
	}

	m.Include = shader.Child.Value("include")
	m.Overrides = map[string]string{}
	if insert := shader.Child.Child("insert"); insert != nil {
		for k, v := range stringParams(insert) {
			m.Overrides[k] = v
		}
	}
	if replace := shader.Child.Child("replace"); replace != nil {
		for k, v := range stringParams(replace) {
			m.Overrides[k] = v
		}
	}
	return m, nil
}

// stringParams flattens the value pairs of a block, lowercasing keys. Nested
// blocks (proxies, DX fallbacks, patch insert/replace) are not descended.
func stringParams(obj *keyvalues.Object) map[string]string {
	params := map[string]string{}
	for _, p := range obj.Pairs {
		if p.HasChild() {
			continue
		}
		params[strings.ToLower(p.Key)] = p.Value
	}
	return params
}

// TextureUse is one texture reference found in a parameter set, with the
// parameter that carries it.
type TextureUse struct {
	Param string
	Value string
}

// TextureUses returns the texture references in an effective parameter set,
// in the fixed order of TextureParams. The env_cubemap sentinel is skipped.
// Values are returned as written; path normalization is the caller's concern.
func TextureUses(params map[string]string) []TextureUse {
	var out []TextureUse
	for _, key := range TextureParams {
		v, ok := params[key]
		if !ok || v == "" {
			continue
		}
		if strings.EqualFold(v, EnvCubemap) {
			continue
		}
		out = append(out, TextureUse{Param: key, Value: v})
	}
	return out
}

// BottomMaterial returns the water bottom material referenced by an
// effective parameter set, if any.
func BottomMaterial(params map[string]string) (string, bool) {
	v, ok := params[BottomMaterialParam]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
