// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateScaffoldName(t *testing.T) {
	// Not parallel: subtests change the working directory.

	tests := []struct {
		name    string
		input   string
		setup   func(t *testing.T, dir string)
		wantErr string // substring, "" means no error
	}{
		{
			name:  "valid name",
			input: "my-addon_2",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: "must not be empty",
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: "must not be empty",
		},
		{
			name:    "space",
			input:   "my addon",
			wantErr: "letters, numbers, dashes and underscores",
		},
		{
			name:    "dot",
			input:   "ent.jumppad",
			wantErr: "letters, numbers, dashes and underscores",
		},
		{
			name:    "path separator",
			input:   "foo/bar",
			wantErr: "letters, numbers, dashes and underscores",
		},
		{
			name:  "existing directory",
			input: "taken",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				if err := os.Mkdir(filepath.Join(dir, "taken"), 0o755); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: "already exists",
		},
		{
			name:  "existing file",
			input: "occupied",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				if err := os.WriteFile(filepath.Join(dir, "occupied"), []byte("x"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: "already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			t.Chdir(dir)

			err := validateScaffoldName(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validateScaffoldName(%q) = %v, want nil", tt.input, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateScaffoldName(%q) = nil, want error containing %q", tt.input, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateScaffoldName(%q) = %v, want error containing %q", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScaffoldName_ExistsSentinel(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "taken"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	err := validateScaffoldName("taken")
	if !errors.Is(err, errTargetExists) {
		t.Errorf("validateScaffoldName() = %v, want errTargetExists in chain", err)
	}
}

func TestValidateInputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	vmfPath := filepath.Join(dir, "gm_test.vmf")
	if err := os.WriteFile(vmfPath, []byte("versioninfo{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	upperPath := filepath.Join(dir, "GM_UPPER.VMF")
	if err := os.WriteFile(upperPath, []byte("versioninfo{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	dirPath := filepath.Join(dir, "folder.vmf")
	if err := os.Mkdir(dirPath, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		ext     string
		wantErr string
	}{
		{
			name: "matching extension",
			path: vmfPath,
			ext:  "vmf",
		},
		{
			name: "extension matches case-insensitively",
			path: upperPath,
			ext:  "vmf",
		},
		{
			name:    "wrong extension",
			path:    vmfPath,
			ext:     "mdl",
			wantErr: "expected a .mdl file",
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "nope.vmf"),
			ext:     "vmf",
			wantErr: "no such file",
		},
		{
			name:    "directory",
			path:    dirPath,
			ext:     "vmf",
			wantErr: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateInputFile(tt.path, tt.ext)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validateInputFile(%q, %q) = %v, want nil", tt.path, tt.ext, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateInputFile(%q, %q) = nil, want error containing %q", tt.path, tt.ext, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateInputFile(%q, %q) = %v, want error containing %q", tt.path, tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSourceDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		if err := validateSourceDir(dir); err != nil {
			t.Errorf("validateSourceDir(%q) = %v, want nil", dir, err)
		}
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		err := validateSourceDir(filePath)
		if err == nil || !strings.Contains(err.Error(), "is not a directory") {
			t.Errorf("validateSourceDir(%q) = %v, want not-a-directory error", filePath, err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		if err := validateSourceDir(filepath.Join(dir, "missing")); err == nil {
			t.Error("validateSourceDir() = nil, want error for missing path")
		}
	})
}
