package scene

import "strings"

// Summarize renders a one-line digest of s: place(s), cast, then the first
// and last character lines. Line clauses are omitted when s has no lines.
func Summarize(s Scene) string {
	var parts []string

	switch {
	case len(s.Locations) > 0:
		parts = append(parts, "Locations: "+strings.Join(s.Locations, ", ")+".")
	case s.Location != "":
		parts = append(parts, "Location: "+s.Location+".")
	}

	cast := "none"
	if len(s.Characters) > 0 {
		cast = strings.Join(s.Characters, ", ")
	}
	parts = append(parts, "Characters: "+cast+".")

	if first, ok := s.FirstLine(); ok {
		parts = append(parts, "Starts with: "+first.Text+"...")
	}
	if last, ok := s.LastLine(); ok {
		parts = append(parts, "Ends with: "+last.Text)
	}
	return strings.Join(parts, " ")
}
