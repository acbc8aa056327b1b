package scene

import "github.com/kittclouds/scenekitt/pkg/script"

// Step describes the state right after a line was absorbed. Rules decide
// boundaries from it.
type Step struct {
	// Speaker is the canonical name of the line's speaker.
	Speaker string
	// Counter is the dialogue index of the line (0 for the first line).
	Counter int
	// Active is the open scene's cast size after pruning.
	Active int
	// Pruned is the number of characters inactive at this step, i.e. the
	// set removed from the open scene's cast.
	Pruned int
	// SinceLocation is Counter minus the dialogue index of the latest
	// location change (0 when none occurred yet).
	SinceLocation int
}

// Accumulator holds the scene under construction. It is owned by one
// segmentation run and must not be shared between goroutines.
type Accumulator struct {
	names   Normalizer
	recency *Recency
	window  int
	mode    LocationMode

	counter            int
	lastLocationChange int
	lastSpeaker        string

	location  string
	locations map[string]struct{}
	active    map[string]struct{}
	spoken    map[string]int
	content   []script.Event
}

// NewAccumulator creates an empty accumulator. recency is the run-wide map;
// window is the inactivity window (0 disables pruning).
func NewAccumulator(names Normalizer, recency *Recency, window int, mode LocationMode) *Accumulator {
	if names == nil {
		names = identity{}
	}
	if recency == nil {
		recency = NewRecency()
	}
	a := &Accumulator{
		names:   names,
		recency: recency,
		window:  window,
		mode:    mode,
	}
	a.reset()
	return a
}

func (a *Accumulator) reset() {
	a.location = ""
	a.locations = make(map[string]struct{})
	a.active = make(map[string]struct{})
	a.spoken = make(map[string]int)
	a.content = nil
}

// Len returns the number of events in the open scene.
func (a *Accumulator) Len() int {
	return len(a.content)
}

// Empty reports whether the open scene holds no events.
func (a *Accumulator) Empty() bool {
	return len(a.content) == 0
}

// Absorb appends ev to the open scene. For a line it updates cast and
// recency, prunes inactive characters and returns the resulting Step with
// ok set; other events return ok false. A line whose speaker is empty or
// normalizes to a reserved label is kept as content only.
func (a *Accumulator) Absorb(ev script.Event) (Step, bool) {
	a.content = append(a.content, ev)

	switch ev.Kind {
	case script.KindLocation:
		switch a.mode {
		case LocationSingle:
			a.location = ev.Place()
		case LocationSet:
			a.locations[ev.Place()] = struct{}{}
		}
		a.lastLocationChange = a.counter
		return Step{}, false
	case script.KindLine:
		speaker := a.names.Normalize(ev.Speaker)
		if speaker == "" || script.IsReserved(speaker) {
			return Step{}, false
		}
		return a.absorbLine(speaker), true
	default:
		return Step{}, false
	}
}

func (a *Accumulator) absorbLine(speaker string) Step {
	a.active[speaker] = struct{}{}
	a.spoken[speaker]++
	a.lastSpeaker = speaker
	a.recency.Touch(speaker, a.counter)

	pruned := 0
	if a.window > 0 {
		for name, at := range a.recency.last {
			if a.counter-at > a.window {
				delete(a.active, name)
				pruned++
			}
		}
	}

	st := Step{
		Speaker:       speaker,
		Counter:       a.counter,
		Active:        len(a.active),
		Pruned:        pruned,
		SinceLocation: a.counter - a.lastLocationChange,
	}
	a.counter++
	return st
}

// Close finalizes the open scene and starts an empty one.
func (a *Accumulator) Close() Scene {
	s := a.build(a.content)
	a.reset()
	return s
}

// Cut closes the open scene without its last event, which must be the line
// just absorbed, and starts a new scene from that line. The new scene's cast
// is seeded with only that speaker and it inherits the closing scene's
// location state.
func (a *Accumulator) Cut() Scene {
	n := len(a.content)
	trigger := a.content[n-1]
	speaker := a.lastSpeaker

	a.spoken[speaker]--
	s := a.build(a.content[:n-1:n-1])

	location := a.location
	locations := make(map[string]struct{}, len(a.locations))
	for place := range a.locations {
		locations[place] = struct{}{}
	}

	a.reset()
	a.location = location
	a.locations = locations
	a.active[speaker] = struct{}{}
	a.spoken[speaker] = 1
	a.content = []script.Event{trigger}
	return s
}

func (a *Accumulator) build(content []script.Event) Scene {
	cast := make(map[string]struct{}, len(a.active))
	for name := range a.active {
		if a.spoken[name] > 0 {
			cast[name] = struct{}{}
		}
	}

	s := Scene{
		Characters: sortedKeys(cast),
		Content:    content,
	}
	switch a.mode {
	case LocationSingle:
		s.Location = a.location
	case LocationSet:
		s.Locations = sortedKeys(a.locations)
	}
	s.Summary = Summarize(s)
	return s
}
