// SPDX-License-Identifier: MPL-2.0

package mdl

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"
)

// buildModel assembles a minimal studiomdl binary: header, texture table,
// cdmaterials pointer table, then the string pool.
func buildModel(tb testing.TB, version int, name string, textures, dirs []string) []byte {
	tb.Helper()

	texTableOfs := headerSize
	cdTableOfs := texTableOfs + len(textures)*textureEntrySize
	poolOfs := cdTableOfs + len(dirs)*4

	var pool bytes.Buffer
	texNameOfs := make([]int, len(textures))
	for i, s := range textures {
		texNameOfs[i] = poolOfs + pool.Len()
		pool.WriteString(s)
		pool.WriteByte(0)
	}
	dirOfs := make([]int, len(dirs))
	for i, s := range dirs {
		dirOfs[i] = poolOfs + pool.Len()
		pool.WriteString(s)
		pool.WriteByte(0)
	}

	buf := make([]byte, poolOfs+pool.Len())
	putI32 := func(ofs, v int) {
		binary.LittleEndian.PutUint32(buf[ofs:ofs+4], uint32(v))
	}

	copy(buf[0:4], mdlMagic)
	putI32(ofsVersion, version)
	copy(buf[ofsName:ofsName+64], name)
	putI32(76, len(buf)) // length field
	putI32(ofsNumTextures, len(textures))
	putI32(ofsTextureIndex, texTableOfs)
	putI32(ofsNumCDTextures, len(dirs))
	putI32(ofsCDTextureIndex, cdTableOfs)

	for i := range textures {
		entryOfs := texTableOfs + i*textureEntrySize
		putI32(entryOfs, texNameOfs[i]-entryOfs) // sznameindex is entry-relative
	}
	for i := range dirs {
		putI32(cdTableOfs+i*4, dirOfs[i])
	}
	copy(buf[poolOfs:], pool.Bytes())
	return buf
}

func TestDecode(t *testing.T) {
	t.Parallel()

	data := buildModel(t, 48, "props_junk/wood_crate001a.mdl",
		[]string{"wood_crate001a", "wood_crate001a_damaged"},
		[]string{`models\props_junk\`})

	m, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if m.Name != "props_junk/wood_crate001a.mdl" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Version != 48 {
		t.Errorf("Version = %d, want 48", m.Version)
	}
	wantTex := []string{"wood_crate001a", "wood_crate001a_damaged"}
	if !reflect.DeepEqual(m.Textures, wantTex) {
		t.Errorf("Textures = %v, want %v", m.Textures, wantTex)
	}
	wantDirs := []string{`models\props_junk\`}
	if !reflect.DeepEqual(m.TextureDirs, wantDirs) {
		t.Errorf("TextureDirs = %v, want %v", m.TextureDirs, wantDirs)
	}
}

func TestDecodeNoTextures(t *testing.T) {
	t.Parallel()

	m, err := DecodeBytes(buildModel(t, 44, "error.mdl", nil, nil))
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if len(m.Textures) != 0 || len(m.TextureDirs) != 0 {
		t.Errorf("empty tables decoded to %v / %v", m.Textures, m.TextureDirs)
	}
}

func TestDecodeRejects(t *testing.T) {
	t.Parallel()

	valid := buildModel(t, 48, "x.mdl", []string{"a"}, []string{"models/"})

	badMagic := bytes.Clone(valid)
	copy(badMagic[0:4], "IDSQ")

	badVersion := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(badVersion[ofsVersion:], 99)

	badCount := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(badCount[ofsNumTextures:], 1<<20)

	badOffset := bytes.Clone(valid)
	binary.LittleEndian.PutUint32(badOffset[ofsTextureIndex:], uint32(len(valid)))

	tests := []struct {
		name string
		data []byte
	}{
		{"too small", valid[:60]},
		{"bad magic", badMagic},
		{"unsupported version", badVersion},
		{"implausible texture count", badCount},
		{"texture table out of bounds", badOffset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := DecodeBytes(tt.data); err == nil {
				t.Fatal("DecodeBytes() succeeded, want error")
			}
		})
	}
}
