package corpus

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/goccy/go-yaml"
	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/scenekitt/pkg/scene"
)

// Format selects the encoding of result documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Encode renders v in format f. JSON is indented by two spaces.
func Encode(v any, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// WriteResult encodes v into dir/name.<ext>, creating dir as needed, and
// returns the written path.
func WriteResult(fsys hackpadfs.FS, dir, name string, v any, f Format) (string, error) {
	data, err := Encode(v, f)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}
	if dir != "" && dir != "." {
		if err := hackpadfs.MkdirAll(fsys, dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}
	p := path.Join(dir, name+"."+f.Ext())
	if err := hackpadfs.WriteFullFile(fsys, p, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	return p, nil
}

// ReadScenes loads a JSON scene document written by WriteResult.
func ReadScenes(fsys hackpadfs.FS, p string) ([]scene.Scene, error) {
	data, err := hackpadfs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	var scenes []scene.Scene
	if err := json.Unmarshal(data, &scenes); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return scenes, nil
}
