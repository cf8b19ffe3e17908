// Package shelflife maps (label, ripeness) pairs to a human readable shelf life estimate
// The table is static data: an embedded default that a YAML file on disk can replace
package shelflife

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"producescan/internal/core/produce"
	perr "producescan/internal/platform/errors"
)

//go:embed shelflife.yaml
var embedded []byte

// Table is the lookup surface the scan pipeline depends on
type Table interface {
	Lookup(label produce.Label, r produce.Ripeness) string
}

type key struct {
	label    produce.Label
	ripeness produce.Ripeness
}

type rawTable struct {
	Version int                          `yaml:"version"`
	Entries map[string]map[string]string `yaml:"entries"`
}

// Map is an immutable in-memory Table
// the zero value and a nil *Map both answer every lookup with ""
type Map struct {
	version int
	m       map[key]string
}

var _ Table = (*Map)(nil)

// Lookup returns the estimate for the pair or "" when the table has none
func (t *Map) Lookup(label produce.Label, r produce.Ripeness) string {
	if t == nil || t.m == nil {
		return ""
	}
	return t.m[key{label: label, ripeness: r}]
}

// Len is the number of pairs held
func (t *Map) Len() int {
	if t == nil {
		return 0
	}
	return len(t.m)
}

// Version is the table format version read from the source
func (t *Map) Version() int {
	if t == nil {
		return 0
	}
	return t.version
}

// Empty returns a table that never matches
func Empty() *Map { return &Map{} }

// Load parses the embedded default table
func Load() (*Map, error) { return Parse(embedded) }

// LoadFile parses the YAML table at path
func LoadFile(path string) (*Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "read shelf life table %s", path)
	}
	t, err := Parse(b)
	if err != nil {
		return nil, perr.WithOp(err, path)
	}
	return t, nil
}

// Parse decodes a YAML table
// ripeness keys must be Ripe, Rotten or Unripe; blank estimates are skipped
func Parse(b []byte) (*Map, error) {
	var raw rawTable
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "parse shelf life table")
	}
	if raw.Version != 1 {
		return nil, perr.InvalidArgf("unsupported shelf life table version %d", raw.Version)
	}
	t := &Map{version: raw.Version, m: make(map[key]string, len(raw.Entries)*produce.NumRipenessClasses)}
	for label, states := range raw.Entries {
		for state, estimate := range states {
			r, ok := produce.ParseRipeness(state)
			if !ok || r == produce.Unknown {
				return nil, perr.WithField(
					perr.InvalidArgf("entry %q has unsupported ripeness %q", label, state),
					fmt.Sprintf("entries.%s.%s", label, state),
				)
			}
			if estimate == "" {
				continue
			}
			t.m[key{label: produce.Label(label), ripeness: r}] = estimate
		}
	}
	return t, nil
}
