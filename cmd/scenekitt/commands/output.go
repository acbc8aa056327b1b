package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kittclouds/scenekitt/internal/store"
	"github.com/kittclouds/scenekitt/pkg/corpus"
	"github.com/kittclouds/scenekitt/pkg/scene"
)

const summaryWidth = 60

var (
	primary = lipgloss.Color("#00ff9f")
	dim     = lipgloss.Color("#6e7681")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(dim)
)

// writeDoc encodes v as JSON or YAML. It reports false for the table format
// so the caller renders instead.
func writeDoc(w io.Writer, format string, v any) (bool, error) {
	if format == "table" {
		return false, nil
	}
	f, err := corpus.ParseFormat(format)
	if err != nil {
		return false, err
	}
	data, err := corpus.Encode(v, f)
	if err != nil {
		return false, err
	}
	_, err = w.Write(data)
	return true, err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// sceneTable renders one row per scene. acts may be nil.
func sceneTable(title string, scenes []scene.Scene, acts []int) string {
	headers := []string{"#", "Events", "Place", "Characters", "Summary"}
	if acts != nil {
		headers = append([]string{"Act"}, headers...)
	}
	t := newTable(headers...)
	for i, s := range scenes {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(s.Len()),
			place(s),
			strings.Join(s.Characters, ", "),
			truncate(s.Summary, summaryWidth),
		}
		if acts != nil {
			row = append([]string{strconv.Itoa(acts[i])}, row...)
		}
		t.Row(row...)
	}
	return titleStyle.Render(title) + "\n" + t.String() + "\n"
}

func runTable(runs []*store.Run) string {
	t := newTable("ID", "Corpus", "Rule", "Scenes", "Act budget", "Created")
	for _, r := range runs {
		budget := "-"
		if r.ActBudget > 0 {
			budget = strconv.Itoa(r.ActBudget)
		}
		t.Row(
			r.ID,
			r.Corpus,
			r.Rule,
			strconv.Itoa(r.SceneCount),
			budget,
			time.UnixMilli(r.CreatedAt).UTC().Format(time.DateTime),
		)
	}
	return t.String() + "\n"
}

func place(s scene.Scene) string {
	if len(s.Locations) > 0 {
		return strings.Join(s.Locations, ", ")
	}
	return s.Location
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
