// Package store persists segmentation runs and their scenes.
package store

import (
	"github.com/kittclouds/scenekitt/pkg/scene"
	"github.com/kittclouds/scenekitt/pkg/script"
)

// NoAct marks a scene that has not been assigned to an act.
const NoAct = -1

// Run is one segmentation rule applied to one corpus.
type Run struct {
	ID         string         `json:"id" yaml:"id"`
	Corpus     string         `json:"corpus" yaml:"corpus"`
	Rule       string         `json:"rule" yaml:"rule"`
	Params     map[string]int `json:"params" yaml:"params"`
	SceneCount int            `json:"sceneCount" yaml:"sceneCount"`
	ActBudget  int            `json:"actBudget,omitempty" yaml:"actBudget,omitempty"` // 0 until acts are assigned
	CreatedAt  int64          `json:"createdAt" yaml:"createdAt"`
}

// SceneRecord is a stored scene, addressed by run and position.
type SceneRecord struct {
	RunID      string         `json:"runId" yaml:"runId"`
	Seq        int            `json:"seq" yaml:"seq"`
	Act        int            `json:"act" yaml:"act"`
	Location   string         `json:"location,omitempty" yaml:"location,omitempty"`
	Locations  []string       `json:"locations,omitempty" yaml:"locations,omitempty"`
	Characters []string       `json:"characters" yaml:"characters"`
	Content    []script.Event `json:"content" yaml:"content"`
	Summary    string         `json:"summary" yaml:"summary"`
	Lines      int            `json:"lines" yaml:"lines"`
}

// Storer defines the interface for run persistence.
// This allows swapping between MemStore (testing) and SQLiteStore (production).
type Storer interface {
	// Runs
	CreateRun(run *Run, scenes []*SceneRecord) error
	GetRun(id string) (*Run, error)
	ListRuns(corpus string) ([]*Run, error)
	DeleteRun(id string) error
	CountRuns() (int, error)

	// Scenes
	ListScenes(runID string) ([]*SceneRecord, error)
	AssignActs(runID string, budget int, acts []int) error

	// Lifecycle
	Close() error
}

// NewRun builds a run and its scene records from a finished segmentation.
// IDs and timestamps are filled in by CreateRun.
func NewRun(corpus string, rule scene.Rule, scenes []scene.Scene) (*Run, []*SceneRecord) {
	run := &Run{
		Corpus:     corpus,
		Rule:       rule.Name(),
		Params:     RuleParams(rule),
		SceneCount: len(scenes),
	}
	records := make([]*SceneRecord, len(scenes))
	for i, s := range scenes {
		records[i] = &SceneRecord{
			Seq:        i,
			Act:        NoAct,
			Location:   s.Location,
			Locations:  s.Locations,
			Characters: s.Characters,
			Content:    s.Content,
			Summary:    s.Summary,
			Lines:      countLines(s.Content),
		}
	}
	return run, records
}

// RuleParams returns the numeric parameters of the built-in rules.
func RuleParams(rule scene.Rule) map[string]int {
	switch r := rule.(type) {
	case scene.ConstellationRule:
		return map[string]int{"inactivity_threshold": r.Inactivity}
	case scene.CombinedRule:
		return map[string]int{"char_threshold": r.CharThreshold, "location_threshold": r.LocationThreshold}
	}
	return map[string]int{}
}

// Scene converts the record back into a scene.
func (r *SceneRecord) Scene() scene.Scene {
	return scene.Scene{
		Location:   r.Location,
		Locations:  r.Locations,
		Characters: r.Characters,
		Content:    r.Content,
		Summary:    r.Summary,
	}
}

func countLines(events []script.Event) int {
	n := 0
	for _, ev := range events {
		if ev.IsLine() {
			n++
		}
	}
	return n
}
