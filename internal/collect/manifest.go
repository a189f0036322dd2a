// SPDX-License-Identifier: MPL-2.0

package collect

import "fmt"

// Entry is one resolved reference in the manifest.
type Entry struct {
	Ref Ref
	Resolution
	// Origin describes where the reference came from, e.g.
	// `Used by world brush / solid 4` or `Entity 12 (prop_physics)`.
	Origin string
	// Note carries a failure detail when resolution succeeded but the file
	// turned out unreadable or malformed.
	Note string
	// Siblings holds a model's companion files (.phy, .vvd, .dx90.vtx).
	// Only set on found studiomdl entries.
	Siblings []Sibling
}

// Sibling is one companion file of a model.
type Sibling struct {
	Suffix string
	Resolution
}

// DiagLevel grades a diagnostic.
type DiagLevel int

const (
	// DiagWarn marks conditions the run tolerates: missing optional
	// companions, malformed assets, circular patches.
	DiagWarn DiagLevel = iota
	// DiagError marks per-item failures that cost output files, like a
	// file that vanished between indexing and copying.
	DiagError
)

// Diagnostic is one reportable condition encountered during a run.
type Diagnostic struct {
	Level   DiagLevel
	Message string
}

// Manifest is the insertion-ordered record of every resolution in a run.
// A reference is resolved at most once; later discoveries of the same
// reference are deduplicated against it.
type Manifest struct {
	order   []Ref
	entries map[Ref]*Entry
	diags   []Diagnostic
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{entries: map[Ref]*Entry{}}
}

// Has reports whether ref already resolved.
func (m *Manifest) Has(ref Ref) bool {
	_, ok := m.entries[ref]
	return ok
}

// Get returns the entry for ref, or nil.
func (m *Manifest) Get(ref Ref) *Entry {
	return m.entries[ref]
}

// Add records a resolution. Adding an already-present reference returns the
// existing entry unchanged.
func (m *Manifest) Add(ref Ref, res Resolution, origin string) *Entry {
	if e, ok := m.entries[ref]; ok {
		return e
	}
	e := &Entry{Ref: ref, Resolution: res, Origin: origin}
	m.entries[ref] = e
	m.order = append(m.order, ref)
	return e
}

// Entries returns every entry in insertion order.
func (m *Manifest) Entries() []*Entry {
	out := make([]*Entry, 0, len(m.order))
	for _, ref := range m.order {
		out = append(out, m.entries[ref])
	}
	return out
}

// MissingOf returns the missing entries of one kind, in insertion order.
func (m *Manifest) MissingOf(kind Kind) []*Entry {
	var out []*Entry
	for _, ref := range m.order {
		e := m.entries[ref]
		if e.Ref.Kind == kind && e.Status == StatusMissing {
			out = append(out, e)
		}
	}
	return out
}

// Warnf appends a warning diagnostic.
func (m *Manifest) Warnf(format string, args ...any) {
	m.diags = append(m.diags, Diagnostic{Level: DiagWarn, Message: fmt.Sprintf(format, args...)})
}

// Errorf appends an error diagnostic.
func (m *Manifest) Errorf(format string, args ...any) {
	m.diags = append(m.diags, Diagnostic{Level: DiagError, Message: fmt.Sprintf(format, args...)})
}

// Diagnostics returns the run's diagnostics in the order they occurred.
func (m *Manifest) Diagnostics() []Diagnostic {
	return m.diags
}

// StatusCounts tallies one kind's entries by status.
type StatusCounts struct {
	Found       int
	FoundInGame int
	Missing     int
}

// Summary tallies the manifest by kind.
type Summary struct {
	ByKind map[Kind]StatusCounts
}

// Summary computes the per-kind tallies.
func (m *Manifest) Summary() Summary {
	s := Summary{ByKind: map[Kind]StatusCounts{}}
	for _, e := range m.entries {
		c := s.ByKind[e.Ref.Kind]
		switch e.Status {
		case StatusFound:
			c.Found++
		case StatusFoundInGame:
			c.FoundInGame++
		case StatusMissing:
			c.Missing++
		}
		s.ByKind[e.Ref.Kind] = c
	}
	return s
}
