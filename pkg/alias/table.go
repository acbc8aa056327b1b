// Package alias resolves raw speaker labels to canonical character names.
//
// A table maps each canonical name either to a flat list of aliases or to a
// nested set of forms (disguises, party names), each with its own aliases.
// For a nested entry the form name is the identity returned, not the outer
// name. Unknown labels resolve to themselves.
package alias

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidTable is returned by Parse for documents that are not alias tables.
var ErrInvalidTable = errors.New("alias: invalid alias table")

// Form is one named sub-identity of a nested entry.
type Form struct {
	Name    string
	Aliases []string
}

// Entry is one canonical character. Exactly one of Aliases or Forms is used.
type Entry struct {
	Name    string
	Aliases []string
	Forms   []Form
}

// Table is an immutable alias lookup, safe for concurrent use.
type Table struct {
	// alias -> canonical name; first entry in table order wins
	index   map[string]string
	entries []Entry
}

// NewTable compiles entries in order. When an alias appears under several
// entries the earliest one wins.
func NewTable(entries []Entry) *Table {
	t := &Table{
		index:   make(map[string]string),
		entries: entries,
	}
	for _, e := range entries {
		if len(e.Forms) == 0 {
			t.add(e.Name, e.Aliases)
			continue
		}
		for _, f := range e.Forms {
			t.add(f.Name, f.Aliases)
		}
	}
	return t
}

func (t *Table) add(name string, aliases []string) {
	for _, a := range aliases {
		if _, exists := t.index[a]; !exists {
			t.index[a] = name
		}
	}
}

// Normalize returns the canonical name for raw, or raw itself when no alias
// matches. A nil table resolves every label to itself.
func (t *Table) Normalize(raw string) string {
	if t == nil {
		return raw
	}
	if name, ok := t.index[raw]; ok {
		return name
	}
	return raw
}

// Normalize resolves raw against t.
func Normalize(raw string, t *Table) string {
	return t.Normalize(raw)
}

// Entries returns the entries the table was built from.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

// Size returns the number of distinct aliases.
func (t *Table) Size() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}

// Parse reads an alias table from JSON. The table may be the whole document
// or sit under an "aliases" key (the corpus meta file layout). Document
// order is preserved.
func Parse(data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrInvalidTable)
	}
	doc := gjson.ParseBytes(data)
	if a := doc.Get("aliases"); a.Exists() {
		doc = a
	}
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidTable)
	}

	var entries []Entry
	var err error
	doc.ForEach(func(key, value gjson.Result) bool {
		e := Entry{Name: key.String()}
		switch {
		case value.IsArray():
			e.Aliases = stringList(value)
		case value.IsObject():
			value.ForEach(func(sub, list gjson.Result) bool {
				if !list.IsArray() {
					err = fmt.Errorf("%w: form %q of %q is not a list", ErrInvalidTable, sub.String(), e.Name)
					return false
				}
				e.Forms = append(e.Forms, Form{Name: sub.String(), Aliases: stringList(list)})
				return true
			})
		default:
			err = fmt.Errorf("%w: entry %q is neither a list nor an object", ErrInvalidTable, e.Name)
		}
		if err != nil {
			return false
		}
		entries = append(entries, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return NewTable(entries), nil
}

func stringList(list gjson.Result) []string {
	arr := list.Array()
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if v.Type == gjson.String {
			out = append(out, v.String())
		}
	}
	return out
}
