package corpus

import (
	"fmt"
	"sort"
	"strings"
)

// SpeakerCount is the number of lines one character speaks.
type SpeakerCount struct {
	Name  string `json:"name" yaml:"name"`
	Lines int    `json:"lines" yaml:"lines"`
}

// Stats summarizes a corpus.
type Stats struct {
	Corpus   string         `json:"corpus" yaml:"corpus"`
	Events   int            `json:"events" yaml:"events"`
	Lines    int            `json:"lines" yaml:"lines"`
	Speakers int            `json:"speakers" yaml:"speakers"`
	Top      []SpeakerCount `json:"top" yaml:"top"`
}

// Stats counts events, lines and distinct canonical speakers, and ranks the
// top n speakers by line count (ties broken by name).
func (c *Corpus) Stats(top int) Stats {
	counts := make(map[string]int)
	lines := 0
	for _, ev := range c.Events {
		if !ev.IsLine() {
			continue
		}
		lines++
		counts[c.Aliases.Normalize(ev.Speaker)]++
	}

	ranked := make([]SpeakerCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, SpeakerCount{Name: name, Lines: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Lines != ranked[j].Lines {
			return ranked[i].Lines > ranked[j].Lines
		}
		return ranked[i].Name < ranked[j].Name
	})
	if top >= 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	return Stats{
		Corpus:   c.Name,
		Events:   len(c.Events),
		Lines:    lines,
		Speakers: len(counts),
		Top:      ranked,
	}
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Statistics for %s:\n", s.Corpus)
	fmt.Fprintf(&b, "Total number of events: %d\n", s.Events)
	fmt.Fprintf(&b, "Number of lines: %d\n", s.Lines)
	fmt.Fprintf(&b, "Number of unique characters: %d\n", s.Speakers)
	if len(s.Top) > 0 {
		fmt.Fprintf(&b, "Top %d characters by line count:\n", len(s.Top))
		for _, sc := range s.Top {
			fmt.Fprintf(&b, "%s: %d\n", sc.Name, sc.Lines)
		}
	}
	return b.String()
}
