// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/luca1197/gmod-developer-cli/internal/config"
	"github.com/luca1197/gmod-developer-cli/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "plain error",
			err:      errors.New("boom"),
			contains: []string{"boom"},
		},
		{
			name: "actionable error with suggestions",
			err: issue.NewErrorContext().
				WithOperation("parse map file").
				WithResource("maps/gm_test.vmf").
				WithSuggestion("Re-save the map from Hammer").
				Wrap(errors.New("unexpected token")).
				BuildError(),
			contains: []string{"failed to parse map file", "maps/gm_test.vmf", "Re-save the map from Hammer"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "actionable error verbose shows chain",
			err: issue.WrapWithContext(
				fmt.Errorf("open file: %w", errors.New("permission denied")),
				"read map file", "maps/gm_test.vmf",
			),
			verbose:  true,
			contains: []string{"Error chain:", "permission denied"},
		},
		{
			name:     "wrapped actionable error is unwrapped",
			err:      fmt.Errorf("while collecting: %w", issue.WrapWithOperation(errors.New("disk full"), "copy assets")),
			contains: []string{"failed to copy assets", "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatErrorForDisplay(tt.err, tt.verbose)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatErrorForDisplay() = %q, want it to contain %q", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("formatErrorForDisplay() = %q, want it to exclude %q", got, unwanted)
				}
			}
		})
	}
}

func TestEffectiveSourceDirs(t *testing.T) {
	// Not parallel: subtests mutate the package-level cfg var.

	t.Run("nil config keeps flags only", func(t *testing.T) {
		origCfg := cfg
		t.Cleanup(func() { cfg = origCfg })
		cfg = nil

		got := effectiveSourceDirs([]string{"a", "b"})
		want := []string{"a", "b"}
		if len(got) != len(want) {
			t.Fatalf("effectiveSourceDirs() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("effectiveSourceDirs()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("flags come before configured paths", func(t *testing.T) {
		origCfg := cfg
		t.Cleanup(func() { cfg = origCfg })
		cfg = &config.Config{SourcePaths: []string{"cfg1", "cfg2"}}

		got := effectiveSourceDirs([]string{"flag1"})
		want := []string{"flag1", "cfg1", "cfg2"}
		if len(got) != len(want) {
			t.Fatalf("effectiveSourceDirs() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("effectiveSourceDirs()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("no flags uses configured paths", func(t *testing.T) {
		origCfg := cfg
		t.Cleanup(func() { cfg = origCfg })
		cfg = &config.Config{SourcePaths: []string{"cfg1"}}

		got := effectiveSourceDirs(nil)
		if len(got) != 1 || got[0] != "cfg1" {
			t.Errorf("effectiveSourceDirs(nil) = %v, want [cfg1]", got)
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	t.Run("message from wrapped error", func(t *testing.T) {
		t.Parallel()
		err := &ExitError{Code: 1, Err: errors.New("prompt cancelled")}
		if got := err.Error(); got != "prompt cancelled" {
			t.Errorf("Error() = %q, want %q", got, "prompt cancelled")
		}
	})

	t.Run("message from code alone", func(t *testing.T) {
		t.Parallel()
		err := &ExitError{Code: 3}
		if got := err.Error(); got != "exit status 3" {
			t.Errorf("Error() = %q, want %q", got, "exit status 3")
		}
	})

	t.Run("unwrap exposes cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("cause")
		err := &ExitError{Code: 1, Err: cause}
		if !errors.Is(err, cause) {
			t.Error("errors.Is() = false, want true for wrapped cause")
		}
	})

	t.Run("errors.As finds it through wrapping", func(t *testing.T) {
		t.Parallel()
		wrapped := fmt.Errorf("outer: %w", &ExitError{Code: 2})
		var exitErr *ExitError
		if !errors.As(wrapped, &exitErr) {
			t.Fatal("errors.As() = false, want true")
		}
		if exitErr.Code != 2 {
			t.Errorf("Code = %d, want 2", exitErr.Code)
		}
	})
}
