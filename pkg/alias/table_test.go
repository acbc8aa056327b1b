package alias

import (
	"errors"
	"testing"
)

func TestNormalizeFlat(t *testing.T) {
	table := NewTable([]Entry{
		{Name: "Locke", Aliases: []string{"LOCKE", "Thief"}},
	})

	if got := table.Normalize("Thief"); got != "Locke" {
		t.Errorf("Normalize(Thief) = %q, want Locke", got)
	}
	if got := table.Normalize("Edgar"); got != "Edgar" {
		t.Errorf("unknown label should pass through, got %q", got)
	}
}

func TestNormalizeNestedReturnsForm(t *testing.T) {
	table := NewTable([]Entry{
		{Name: "Terra", Forms: []Form{{Name: "Celes", Aliases: []string{"Imperial"}}}},
	})

	if got := table.Normalize("Imperial"); got != "Celes" {
		t.Errorf("Normalize(Imperial) = %q, want Celes", got)
	}
	if got := Normalize("Imperial", table); got != "Celes" {
		t.Errorf("Normalize(Imperial, table) = %q, want Celes", got)
	}
	if got := Normalize("Terra", table); got != "Terra" {
		t.Errorf("Normalize(Terra) = %q, want Terra", got)
	}
}

func TestNormalizeFirstEntryWins(t *testing.T) {
	table := NewTable([]Entry{
		{Name: "Sabin", Aliases: []string{"Monk"}},
		{Name: "Yang", Aliases: []string{"Monk"}},
	})
	if got := table.Normalize("Monk"); got != "Sabin" {
		t.Errorf("expected earliest entry to win, got %q", got)
	}
	if table.Size() != 1 {
		t.Errorf("expected 1 alias, got %d", table.Size())
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if got := table.Normalize("Kefka"); got != "Kefka" {
		t.Errorf("nil table should pass through, got %q", got)
	}
	if got := Normalize("Kefka", nil); got != "Kefka" {
		t.Errorf("Normalize with nil table = %q", got)
	}
	if table.Size() != 0 || table.Entries() != nil {
		t.Error("nil table should be empty")
	}
}

func TestParseMetaDocument(t *testing.T) {
	data := []byte(`{
		"aliases": {
			"Terra": {"Celes": ["Imperial", "General"], "Tina": ["TINA"]},
			"Locke": ["LOCKE", "Thief"]
		}
	}`)

	table, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		raw  string
		want string
	}{
		{"Imperial", "Celes"},
		{"General", "Celes"},
		{"TINA", "Tina"},
		{"Thief", "Locke"},
		{"Banon", "Banon"},
	}
	for _, tc := range tests {
		if got := table.Normalize(tc.raw); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}

	entries := table.Entries()
	if len(entries) != 2 || entries[0].Name != "Terra" || entries[1].Name != "Locke" {
		t.Errorf("expected document order Terra, Locke; got %+v", entries)
	}
}

func TestParseBareTable(t *testing.T) {
	table, err := Parse([]byte(`{"Kefka": ["Clown"]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := table.Normalize("Clown"); got != "Kefka" {
		t.Errorf("got %q", got)
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		`not json`,
		`["a", "b"]`,
		`{"Kefka": "Clown"}`,
		`{"Terra": {"Celes": "Imperial"}}`,
	}
	for _, in := range inputs {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("Parse(%s): expected ErrInvalidTable, got %v", in, err)
		}
	}
}
