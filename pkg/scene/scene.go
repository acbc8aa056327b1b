// Package scene partitions a script event stream into scenes.
//
// One Accumulator implementation holds the open scene; a Rule decides where
// boundaries fall. Three rules are provided: location changes, cast turnover
// (constellation) and cast turnover combined with recent location changes.
package scene

import (
	"sort"

	"github.com/kittclouds/scenekitt/pkg/script"
)

// LocationMode selects how an accumulator tracks setting.
type LocationMode uint8

const (
	// LocationNone ignores location changes (other than absorbing them).
	LocationNone LocationMode = 0
	// LocationSingle keeps the most recent place.
	LocationSingle LocationMode = 1
	// LocationSet accumulates every place seen.
	LocationSet LocationMode = 2
)

// Scene is a closed, contiguous run of events.
type Scene struct {
	Location   string         `json:"location,omitempty" yaml:"location,omitempty"`
	Locations  []string       `json:"locations,omitempty" yaml:"locations,omitempty"`
	Characters []string       `json:"characters" yaml:"characters"`
	Content    []script.Event `json:"content" yaml:"content"`
	Summary    string         `json:"summary" yaml:"summary"`
}

// Len is the number of events in the scene.
func (s Scene) Len() int {
	return len(s.Content)
}

// FirstLine returns the first character line in the scene.
func (s Scene) FirstLine() (script.Event, bool) {
	for _, ev := range s.Content {
		if ev.IsLine() {
			return ev, true
		}
	}
	return script.Event{}, false
}

// LastLine returns the last character line in the scene.
func (s Scene) LastLine() (script.Event, bool) {
	for i := len(s.Content) - 1; i >= 0; i-- {
		if s.Content[i].IsLine() {
			return s.Content[i], true
		}
	}
	return script.Event{}, false
}

// Normalizer resolves raw speaker labels to canonical names.
// *alias.Table satisfies it.
type Normalizer interface {
	Normalize(raw string) string
}

type identity struct{}

func (identity) Normalize(raw string) string { return raw }

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
