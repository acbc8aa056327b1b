package scene

import (
	"testing"

	"github.com/kittclouds/scenekitt/pkg/script"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  string
	}{
		{
			name: "single location",
			scene: Scene{
				Location:   "Inn",
				Characters: []string{"A", "B"},
				Content: []script.Event{
					script.LocationChange("Inn"),
					script.Line("A", "hi"),
					script.Action("B waves."),
					script.Line("B", "bye"),
					script.Comment("fade out"),
				},
			},
			want: "Location: Inn. Characters: A, B. Starts with: hi... Ends with: bye",
		},
		{
			name: "location set",
			scene: Scene{
				Locations:  []string{"Cave", "Inn"},
				Characters: []string{"E"},
				Content:    []script.Event{script.Line("E", "yo")},
			},
			want: "Locations: Cave, Inn. Characters: E. Starts with: yo... Ends with: yo",
		},
		{
			name: "no location",
			scene: Scene{
				Characters: []string{"Kefka"},
				Content:    []script.Event{script.Line("Kefka", "Ha ha ha!")},
			},
			want: "Characters: Kefka. Starts with: Ha ha ha!... Ends with: Ha ha ha!",
		},
		{
			name: "no lines",
			scene: Scene{
				Location: "Zozo",
				Content:  []script.Event{script.LocationChange("Zozo"), script.Action("Rain.")},
			},
			want: "Location: Zozo. Characters: none.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Summarize(tc.scene); got != tc.want {
				t.Errorf("Summarize() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFirstAndLastLine(t *testing.T) {
	s := Scene{Content: []script.Event{
		script.Action("x"),
		script.Line("A", "first"),
		script.Line("B", "last"),
		script.Comment("y"),
	}}

	first, ok := s.FirstLine()
	if !ok || first.Text != "first" {
		t.Errorf("FirstLine() = %+v, %v", first, ok)
	}
	last, ok := s.LastLine()
	if !ok || last.Text != "last" {
		t.Errorf("LastLine() = %+v, %v", last, ok)
	}

	empty := Scene{Content: []script.Event{script.Action("x")}}
	if _, ok := empty.FirstLine(); ok {
		t.Error("expected no first line")
	}
	if _, ok := empty.LastLine(); ok {
		t.Error("expected no last line")
	}
}
