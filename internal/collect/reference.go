// SPDX-License-Identifier: MPL-2.0

// Package collect implements the asset dependency engine: it resolves the
// materials, textures and models a map or model references across
// prioritized source directories with the installed game as fallback, and
// copies the resolved closure into an output directory.
package collect

import "strings"

// Kind classifies an asset reference.
type Kind int

const (
	// KindMaterial is a VMT document under materials/.
	KindMaterial Kind = iota
	// KindTexture is a VTF image under materials/. Textures resolve like
	// materials but are never parsed for further references.
	KindTexture
	// KindModel is a compiled model under models/, or any other file an
	// entity's model property points at.
	KindModel
)

// String returns the kind's singular name.
func (k Kind) String() string {
	switch k {
	case KindMaterial:
		return "material"
	case KindTexture:
		return "texture"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Ref identifies one asset by kind and normalized path. Two references to
// the same asset always compare equal, whatever casing or slashes the
// source documents used.
type Ref struct {
	Kind Kind
	Path string
}

// String returns the normalized path.
func (r Ref) String() string { return r.Path }

// normalizePath lowercases a path and flips backslashes, the canonical form
// every index and manifest key uses.
func normalizePath(p string) string {
	p = strings.ToLower(strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}

// MaterialRef builds the reference for a material name as maps, models and
// other materials spell it. Names are rooted under materials/ unless
// already rooted (patch includes carry the prefix) and default to the .vmt
// extension.
func MaterialRef(name string) Ref {
	p := normalizePath(name)
	if !strings.HasPrefix(p, "materials/") {
		p = "materials/" + p
	}
	if !strings.HasSuffix(p, ".vmt") {
		p += ".vmt"
	}
	return Ref{Kind: KindMaterial, Path: p}
}

// TextureRef builds the reference for a texture parameter value. Texture
// names live under materials/ next to the materials that use them and
// default to the .vtf extension.
func TextureRef(name string) Ref {
	p := normalizePath(name)
	if !strings.HasPrefix(p, "materials/") {
		p = "materials/" + p
	}
	if !strings.HasSuffix(p, ".vtf") {
		p += ".vtf"
	}
	return Ref{Kind: KindTexture, Path: p}
}

// ModelRef builds the reference for an entity model value. Model values
// already carry their full path (models/...); only normalization applies.
func ModelRef(name string) Ref {
	return Ref{Kind: KindModel, Path: normalizePath(name)}
}
