package script

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrMalformedEvent matches every MalformedEventError.
	ErrMalformedEvent = errors.New("script: malformed event")

	// ErrInvalidDocument is returned when the input is neither a record list
	// nor an object holding one under "text".
	ErrInvalidDocument = errors.New("script: document is not a record list")
)

// MalformedEventError flags a raw record that does not map cleanly onto one
// event kind. Index is the record position in the source document.
type MalformedEventError struct {
	Index  int
	Keys   []string
	Reason string
}

func (e *MalformedEventError) Error() string {
	if len(e.Keys) == 0 {
		return fmt.Sprintf("script: record %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("script: record %d [%s]: %s", e.Index, strings.Join(e.Keys, ", "), e.Reason)
}

// Is lets errors.Is match ErrMalformedEvent.
func (e *MalformedEventError) Is(target error) bool {
	return target == ErrMalformedEvent
}

// DecodeOptions controls how irregular records are handled.
type DecodeOptions struct {
	// Strict aborts on the first malformed record. Otherwise the record is
	// flagged, and a multi-key record contributes its first key only.
	Strict bool

	// Logger receives a warning per flagged record. Nil disables logging.
	Logger *slog.Logger
}

// Decoded is the result of ingesting a corpus document.
type Decoded struct {
	Events    []Event
	Malformed []*MalformedEventError
}

// Decode turns a corpus document into an event stream. The document is
// either a JSON array of records or an object with the array under "text".
// Each record carries one key (a reserved label or a speaker) mapped to a
// string or a list of strings; a list yields one event per string.
func Decode(data []byte, opts DecodeOptions) (*Decoded, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrInvalidDocument)
	}
	doc := gjson.ParseBytes(data)
	if doc.IsObject() {
		doc = doc.Get("text")
	}
	if !doc.IsArray() {
		return nil, ErrInvalidDocument
	}

	out := &Decoded{}
	index := 0
	var failed error
	doc.ForEach(func(_, rec gjson.Result) bool {
		events, bad := decodeRecord(rec, index)
		index++
		if bad != nil {
			if opts.Strict {
				failed = bad
				return false
			}
			out.Malformed = append(out.Malformed, bad)
			if opts.Logger != nil {
				opts.Logger.Warn("malformed script record", "index", bad.Index, "keys", bad.Keys, "reason", bad.Reason)
			}
		}
		out.Events = append(out.Events, events...)
		return true
	})
	if failed != nil {
		return nil, failed
	}
	return out, nil
}

// decodeRecord maps one raw record to events. A non-nil flag may accompany
// usable events (first-key resolution of a multi-key record).
func decodeRecord(rec gjson.Result, index int) ([]Event, *MalformedEventError) {
	if !rec.IsObject() {
		return nil, &MalformedEventError{Index: index, Reason: "record is not an object"}
	}

	var keys []string
	var payload gjson.Result
	rec.ForEach(func(key, value gjson.Result) bool {
		if len(keys) == 0 {
			payload = value
		}
		keys = append(keys, key.String())
		return true
	})

	if len(keys) == 0 {
		return nil, &MalformedEventError{Index: index, Reason: "record has no keys"}
	}

	var flag *MalformedEventError
	if len(keys) > 1 {
		flag = &MalformedEventError{
			Index:  index,
			Keys:   keys,
			Reason: fmt.Sprintf("record has %d keys, using %q", len(keys), keys[0]),
		}
	}

	label := keys[0]
	switch {
	case payload.Type == gjson.String:
		return []Event{newEvent(label, payload.String())}, flag
	case payload.IsArray():
		var events []Event
		for _, v := range payload.Array() {
			if v.Type != gjson.String {
				flag = &MalformedEventError{Index: index, Keys: keys, Reason: "list payload holds a non-string value"}
				continue
			}
			events = append(events, newEvent(label, v.String()))
		}
		return events, flag
	default:
		return nil, &MalformedEventError{Index: index, Keys: keys, Reason: "payload is not a string or list of strings"}
	}
}

func newEvent(label, text string) Event {
	switch label {
	case LabelLocation:
		return LocationChange(text)
	case LabelAction:
		return Action(text)
	case LabelComment:
		return Comment(text)
	case LabelSystem:
		return System(text)
	default:
		return Line(label, text)
	}
}
