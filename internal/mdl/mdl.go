// SPDX-License-Identifier: MPL-2.0

// Package mdl reads the header of compiled Source engine model (MDL) files
// far enough to list the material names and search directories the model
// references. Geometry, bones and animations are never decoded.
package mdl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	mdlMagic = "IDST"

	// studiohdr_t field offsets. The header layout is stable across the
	// model versions Garry's Mod mounts (44 through 49).
	ofsVersion        = 4
	ofsName           = 12 // char[64]
	ofsNumTextures    = 204
	ofsTextureIndex   = 208
	ofsNumCDTextures  = 212
	ofsCDTextureIndex = 216

	headerSize = 232

	// mstudiotexture_t is 64 bytes; its first int is the name offset,
	// relative to the entry itself.
	textureEntrySize = 64

	versionMin = 44
	versionMax = 49

	// maxTableLen guards against garbage counts in truncated or corrupt
	// files before any per-entry reads happen.
	maxTableLen = 1 << 14
)

// Model is the decoded header of a studiomdl binary.
type Model struct {
	// Name is the model's internal path, e.g. "props_junk/wood_crate001a.mdl".
	Name    string
	Version int
	// Textures holds the material names from the texture table. The skin
	// table only permutes indices into this table, so it already covers
	// every skin's materials.
	Textures []string
	// TextureDirs holds the cdmaterials search prefixes the engine joins
	// with each texture name, e.g. "models/props_junk/".
	TextureDirs []string
}

// Decode reads a model header from r.
func Decode(r io.ReaderAt, size int64) (*Model, error) {
	if size < headerSize {
		return nil, fmt.Errorf("mdl too small: %d bytes", size)
	}
	header := make([]byte, headerSize)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("read mdl header: %w", err)
	}
	if string(header[0:4]) != mdlMagic {
		return nil, fmt.Errorf("invalid mdl magic: %q", header[0:4])
	}

	m := &Model{
		Version: int(i32(header, ofsVersion)),
		Name:    readNullTerminated(header[ofsName : ofsName+64]),
	}
	if m.Version < versionMin || m.Version > versionMax {
		return nil, fmt.Errorf("unsupported mdl version: %d", m.Version)
	}

	numTextures := i32(header, ofsNumTextures)
	textureIndex := int64(i32(header, ofsTextureIndex))
	if numTextures < 0 || numTextures > maxTableLen {
		return nil, fmt.Errorf("implausible texture count: %d", numTextures)
	}
	for i := int32(0); i < numTextures; i++ {
		entryOfs := textureIndex + int64(i)*textureEntrySize
		if entryOfs < 0 || entryOfs+textureEntrySize > size {
			return nil, fmt.Errorf("texture entry %d out of bounds", i)
		}
		entry := make([]byte, 4)
		if _, err := r.ReadAt(entry, entryOfs); err != nil {
			return nil, fmt.Errorf("read texture entry %d: %w", i, err)
		}
		nameOfs := entryOfs + int64(i32(entry, 0))
		name, err := readCString(r, nameOfs, size)
		if err != nil {
			return nil, fmt.Errorf("texture name %d: %w", i, err)
		}
		m.Textures = append(m.Textures, name)
	}

	numCD := i32(header, ofsNumCDTextures)
	cdIndex := int64(i32(header, ofsCDTextureIndex))
	if numCD < 0 || numCD > maxTableLen {
		return nil, fmt.Errorf("implausible cdmaterials count: %d", numCD)
	}
	for i := int32(0); i < numCD; i++ {
		ptrOfs := cdIndex + int64(i)*4
		if ptrOfs < 0 || ptrOfs+4 > size {
			return nil, fmt.Errorf("cdmaterials entry %d out of bounds", i)
		}
		ptr := make([]byte, 4)
		if _, err := r.ReadAt(ptr, ptrOfs); err != nil {
			return nil, fmt.Errorf("read cdmaterials entry %d: %w", i, err)
		}
		dir, err := readCString(r, int64(i32(ptr, 0)), size)
		if err != nil {
			return nil, fmt.Errorf("cdmaterials dir %d: %w", i, err)
		}
		m.TextureDirs = append(m.TextureDirs, dir)
	}

	return m, nil
}

// DecodeBytes is Decode over an in-memory file.
func DecodeBytes(data []byte) (*Model, error) {
	return Decode(bytes.NewReader(data), int64(len(data)))
}

func i32(b []byte, ofs int) int32 {
	return int32(binary.LittleEndian.Uint32(b[ofs : ofs+4]))
}

func readNullTerminated(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

// readCString reads a null-terminated string at an absolute file offset.
// Strings in the texture tables are short paths; the cap catches pointers
// into binary data.
func readCString(r io.ReaderAt, ofs, size int64) (string, error) {
	const maxLen = 260
	if ofs < 0 || ofs >= size {
		return "", fmt.Errorf("string offset %d out of bounds", ofs)
	}
	var out []byte
	buf := make([]byte, 64)
	for pos := ofs; pos < size && len(out) < maxLen; {
		n := int64(len(buf))
		if pos+n > size {
			n = size - pos
		}
		read, err := r.ReadAt(buf[:n], pos)
		if read == 0 && err != nil && err != io.EOF {
			return "", err
		}
		chunk := buf[:read]
		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			return string(append(out, chunk[:i]...)), nil
		}
		out = append(out, chunk...)
		pos += int64(read)
		if err == io.EOF {
			break
		}
	}
	if len(out) >= maxLen {
		return "", fmt.Errorf("unterminated string at offset %d", ofs)
	}
	return string(out), nil
}
