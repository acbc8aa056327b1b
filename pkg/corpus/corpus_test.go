package corpus

import (
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/scenekitt/pkg/scene"
	"github.com/kittclouds/scenekitt/pkg/script"
)

const testScript = `{"text": [
	{"LOCATION": "Narshe"},
	{"Wedge": "Not much farther."},
	{"Vicks": "Imperial soldiers ahead."},
	{"ACTION": ["The guards attack.", "Terra steps forward."]},
	{"Imperial": "Halt!"},
	{"SYSTEM": "Terra joined the party."},
	{"Wedge": "Go!", "Vicks": "Now!"}
]}`

const testMeta = `{"aliases": {
	"Terra": ["Girl"],
	"Celes": {"General": ["Imperial"]}
}}`

func newTestFS(t *testing.T) *mem.FS {
	t.Helper()
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.MkdirAll(fsys, "FFVI", 0o755))
	require.NoError(t, hackpadfs.WriteFullFile(fsys, "FFVI/data-ff6.json", []byte(testScript), 0o644))
	require.NoError(t, hackpadfs.WriteFullFile(fsys, "FFVI/meta-ff6.json", []byte(testMeta), 0o644))
	return fsys
}

func TestLoad(t *testing.T) {
	fsys := newTestFS(t)

	c, err := Load(fsys, "FFVI/data-ff6.json", "FFVI/meta-ff6.json", script.DecodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ff6", c.Name)
	require.Len(t, c.Events, 8)
	assert.Equal(t, script.LocationChange("Narshe"), c.Events[0])
	assert.Equal(t, script.Action("Terra steps forward."), c.Events[4])
	assert.Equal(t, script.Line("Wedge", "Go!"), c.Events[7])
	require.Len(t, c.Malformed, 1)
	assert.Equal(t, 6, c.Malformed[0].Index)
	assert.Equal(t, "General", c.Aliases.Normalize("Imperial"))
}

func TestLoadStrict(t *testing.T) {
	fsys := newTestFS(t)

	_, err := Load(fsys, "FFVI/data-ff6.json", "", script.DecodeOptions{Strict: true})
	assert.ErrorIs(t, err, script.ErrMalformedEvent)
}

func TestLoadWithoutAliases(t *testing.T) {
	fsys := newTestFS(t)

	c, err := Load(fsys, "FFVI/data-ff6.json", "", script.DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Imperial", c.Aliases.Normalize("Imperial"))
}

func TestLoadMissingFile(t *testing.T) {
	fsys := newTestFS(t)

	_, err := Load(fsys, "FFVI/data-missing.json", "", script.DecodeOptions{})
	assert.ErrorIs(t, err, hackpadfs.ErrNotExist)

	_, err = Load(fsys, "FFVI/data-ff6.json", "FFVI/meta-missing.json", script.DecodeOptions{})
	assert.ErrorIs(t, err, hackpadfs.ErrNotExist)
}

func TestStats(t *testing.T) {
	fsys := newTestFS(t)
	c, err := Load(fsys, "FFVI/data-ff6.json", "FFVI/meta-ff6.json", script.DecodeOptions{})
	require.NoError(t, err)

	st := c.Stats(2)
	assert.Equal(t, 8, st.Events)
	assert.Equal(t, 4, st.Lines)
	assert.Equal(t, 3, st.Speakers)
	assert.Equal(t, []SpeakerCount{{Name: "Wedge", Lines: 2}, {Name: "General", Lines: 1}}, st.Top)
	assert.Contains(t, st.String(), "Number of unique characters: 3\n")
	assert.Contains(t, st.String(), "Wedge: 2\n")
}

func TestWriteAndReadScenes(t *testing.T) {
	fsys := newTestFS(t)
	c, err := Load(fsys, "FFVI/data-ff6.json", "FFVI/meta-ff6.json", script.DecodeOptions{})
	require.NoError(t, err)

	scenes, err := scene.Segment(c.Events, c.Aliases, scene.ByLocation())
	require.NoError(t, err)

	p, err := WriteResult(fsys, "results", "ff6_location", scenes, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "results/ff6_location.json", p)

	back, err := ReadScenes(fsys, p)
	require.NoError(t, err)
	assert.Equal(t, scenes, back)
}

func TestWriteYAML(t *testing.T) {
	fsys := newTestFS(t)
	scenes := []scene.Scene{{
		Location:   "Narshe",
		Characters: []string{"Wedge"},
		Content:    []script.Event{script.LocationChange("Narshe"), script.Line("Wedge", "Hi")},
		Summary:    "Location: Narshe. Characters: Wedge. Starts with: Hi... Ends with: Hi",
	}}

	p, err := WriteResult(fsys, "", "out", scenes, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "out.yaml", p)

	data, err := hackpadfs.ReadFile(fsys, p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "location: Narshe")
	assert.Contains(t, string(data), "- Wedge: Hi")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatJSON, "json": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNameOf(t *testing.T) {
	assert.Equal(t, "ff6", NameOf("FinalFantasy/FFVI/data-ff6.json"))
	assert.Equal(t, "script", NameOf("script.json"))
}
