package scene

import "github.com/kittclouds/scenekitt/pkg/script"

// Segment runs rule over events in one forward pass and returns the closed
// scenes in order. Every event lands in exactly one scene and no scene is
// empty. names may be nil, in which case speakers are used as given.
//
// Segment does not mutate events or names, so several calls may run
// concurrently over the same inputs.
func Segment(events []script.Event, names Normalizer, rule Rule) ([]Scene, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	s := rule.Settings()
	acc := NewAccumulator(names, NewRecency(), s.Window, s.Locations)

	var scenes []Scene
	for _, ev := range events {
		if ev.Kind == script.KindLocation && rule.SplitAtLocation() && !acc.Empty() {
			scenes = append(scenes, acc.Close())
		}
		st, isLine := acc.Absorb(ev)
		if isLine && acc.Len() > 1 && rule.SplitAtLine(st) {
			scenes = append(scenes, acc.Cut())
		}
	}
	if !acc.Empty() {
		scenes = append(scenes, acc.Close())
	}
	return scenes, nil
}
