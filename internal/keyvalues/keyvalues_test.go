// SPDX-License-Identifier: MPL-2.0

package keyvalues

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSimplePairs(t *testing.T) {
	t.Parallel()

	obj, err := ParseString(`
"LightmappedGeneric"
{
	"$basetexture" "brick/brickfloor001a"
	$surfaceprop concrete
}
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	mat := obj.Child("LightmappedGeneric")
	if mat == nil {
		t.Fatal("Child(LightmappedGeneric) = nil, want block")
	}
	if got := mat.Value("$basetexture"); got != "brick/brickfloor001a" {
		t.Errorf("Value($basetexture) = %q, want %q", got, "brick/brickfloor001a")
	}
	if got := mat.Value("$surfaceprop"); got != "concrete" {
		t.Errorf("Value($surfaceprop) = %q, want %q", got, "concrete")
	}
}

func TestParseDuplicateKeysPreserveOrder(t *testing.T) {
	t.Parallel()

	obj, err := ParseString(`
world
{
	solid { id 1 }
	solid { id 2 }
	solid { id 3 }
}
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	solids := obj.Child("world").All("solid")
	if len(solids) != 3 {
		t.Fatalf("All(solid) returned %d pairs, want 3", len(solids))
	}
	for i, p := range solids {
		want := string(rune('1' + i))
		if got := p.Child.Value("id"); got != want {
			t.Errorf("solid[%d] id = %q, want %q", i, got, want)
		}
	}
}

func TestParseCaseInsensitiveLookup(t *testing.T) {
	t.Parallel()

	obj, err := ParseString(`"GameInfo" { "FileSystem" { "SteamAppId" "4000" } }`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	fs := obj.Child("gameinfo").Child("filesystem")
	if fs == nil {
		t.Fatal("case-insensitive Child lookup failed")
	}
	if got := fs.Value("steamappid"); got != "4000" {
		t.Errorf("Value(steamappid) = %q, want %q", got, "4000")
	}
}

func TestParseCommentsAndConditionals(t *testing.T) {
	t.Parallel()

	obj, err := ParseString(`
// file header comment
"patch"
{
	include "materials/base.vmt" // trailing comment
	"$detail" "detail/noise" [$WIN32]
	"$unused" "x" [!$X360]
}
`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	patch := obj.Child("patch")
	if got := patch.Value("include"); got != "materials/base.vmt" {
		t.Errorf("Value(include) = %q, want %q", got, "materials/base.vmt")
	}
	if got := patch.Value("$detail"); got != "detail/noise" {
		t.Errorf("Value($detail) = %q, want %q", got, "detail/noise")
	}
	if got := patch.Value("$unused"); got != "x" {
		t.Errorf("conditional should not swallow the following pair, got %q", got)
	}
}

func TestParseEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline", `k "a\nb"`, "a\nb"},
		{"tab", `k "a\tb"`, "a\tb"},
		{"quote", `k "say \"hi\""`, `say "hi"`},
		{"backslash", `k "a\\b"`, `a\b`},
		{"windows path kept verbatim", `k "materials\brick\wall"`, `materials\brick\wall`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			obj, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) error = %v", tt.input, err)
			}
			if got := obj.Value("k"); got != tt.want {
				t.Errorf("Value(k) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"unterminated string", "\n\"open", 2},
		{"unclosed block", "a\n{\nb c\n", 4},
		{"stray close", "\n\n}", 3},
		{"key without value", "block {\nkey }", 2},
		{"block as key", "{ }", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) succeeded, want error", tt.input)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("error line = %d, want %d (err: %v)", perr.Line, tt.wantLine, perr)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	t.Parallel()

	obj, err := Parse(strings.NewReader(`root { leaf value }`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := obj.Child("root").Value("leaf"); got != "value" {
		t.Errorf("Value(leaf) = %q, want %q", got, "value")
	}
}

func TestValueOnBlockReturnsEmpty(t *testing.T) {
	t.Parallel()

	obj, err := ParseString(`root { child { } }`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if got := obj.Child("root").Value("child"); got != "" {
		t.Errorf("Value on a block key = %q, want empty", got)
	}
	if c := obj.Child("root").Child("missing"); c != nil {
		t.Errorf("Child(missing) = %v, want nil", c)
	}
}
