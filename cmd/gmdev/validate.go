// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// nameRe matches any character that is not allowed in scaffold names.
var nameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// errTargetExists indicates the scaffold target directory already exists.
var errTargetExists = errors.New("target already exists")

// validateScaffoldName checks that name is usable as a new directory in the
// working directory: non-empty, restricted to a filesystem-safe character set,
// and not already present on disk.
func validateScaffoldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name must not be empty")
	}
	if nameRe.MatchString(name) {
		return errors.New("name should only contain letters, numbers, dashes and underscores")
	}
	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("%w: %s", errTargetExists, name)
	}
	return nil
}

// validateInputFile checks that path exists, is a regular file and carries the
// expected extension (matched case-insensitively, without the leading dot).
func validateInputFile(path, ext string) error {
	got := strings.TrimPrefix(filepath.Ext(path), ".")
	if !strings.EqualFold(got, ext) {
		return fmt.Errorf("expected a .%s file, got %q", ext, filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// validateSourceDir checks that path exists and is a directory.
func validateSourceDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
