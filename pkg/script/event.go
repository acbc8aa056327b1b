// Package script models a linearized game script as an ordered stream of
// typed events: location changes, character lines and narrative markers.
package script

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Reserved record labels. They are never character identities.
const (
	LabelAction   = "ACTION"
	LabelComment  = "COMMENT"
	LabelLocation = "LOCATION"
	LabelSystem   = "SYSTEM"
)

// IsReserved reports whether label is one of the reserved category labels.
func IsReserved(label string) bool {
	switch label {
	case LabelAction, LabelComment, LabelLocation, LabelSystem:
		return true
	}
	return false
}

// Kind tags an Event.
type Kind uint8

const (
	// KindLine is a character line; the zero Kind.
	KindLine Kind = 0
	// KindLocation moves the script to a new place.
	KindLocation Kind = 1
	// KindAction is a narrative action marker.
	KindAction Kind = 2
	// KindComment is an editorial comment.
	KindComment Kind = 3
	// KindSystem is a game system message.
	KindSystem Kind = 4
)

// String returns a readable name.
func (k Kind) String() string {
	switch k {
	case KindLine:
		return "LINE"
	case KindLocation:
		return "LOCATION"
	case KindAction:
		return "ACTION"
	case KindComment:
		return "COMMENT"
	case KindSystem:
		return "SYSTEM"
	default:
		return "UNKNOWN"
	}
}

// Event is one beat of the script. The kind is decided once at ingestion;
// Speaker is set only for lines, Text carries the payload (the place name for
// location changes).
type Event struct {
	Kind    Kind
	Speaker string
	Text    string
}

// Line builds a character line.
func Line(speaker, text string) Event {
	return Event{Kind: KindLine, Speaker: speaker, Text: text}
}

// LocationChange builds a move to place.
func LocationChange(place string) Event {
	return Event{Kind: KindLocation, Text: place}
}

// Action builds an action marker.
func Action(text string) Event {
	return Event{Kind: KindAction, Text: text}
}

// Comment builds a comment marker.
func Comment(text string) Event {
	return Event{Kind: KindComment, Text: text}
}

// System builds a system marker.
func System(text string) Event {
	return Event{Kind: KindSystem, Text: text}
}

// IsLine reports whether the event is attributable to a speaker. A zero
// Event, or a line labelled with a reserved category, is not.
func (e Event) IsLine() bool {
	return e.Kind == KindLine && e.Speaker != "" && !IsReserved(e.Speaker)
}

// Place returns the destination of a location change, or "".
func (e Event) Place() string {
	if e.Kind != KindLocation {
		return ""
	}
	return e.Text
}

// Label returns the record key the event serializes under: the speaker for
// lines, the reserved label otherwise.
func (e Event) Label() string {
	switch e.Kind {
	case KindLine:
		return e.Speaker
	case KindLocation:
		return LabelLocation
	case KindAction:
		return LabelAction
	case KindComment:
		return LabelComment
	case KindSystem:
		return LabelSystem
	default:
		return ""
	}
}

// MarshalJSON writes the corpus record shape {"<label>": "<text>"}.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{e.Label(): e.Text})
}

// UnmarshalJSON accepts a single corpus record. Multi-key records are
// rejected; use Decode to apply a lenient policy.
func (e *Event) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return &MalformedEventError{Reason: "invalid JSON"}
	}
	events, bad := decodeRecord(gjson.ParseBytes(data), 0)
	if bad != nil {
		return bad
	}
	if len(events) != 1 {
		return &MalformedEventError{Reason: "record must carry exactly one payload string"}
	}
	*e = events[0]
	return nil
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (e Event) MarshalYAML() (any, error) {
	return map[string]string{e.Label(): e.Text}, nil
}
