// Package corpus loads game scripts and their alias tables from a
// filesystem and writes segmentation results back to it.
package corpus

import (
	"fmt"
	"path"
	"strings"

	"github.com/hack-pad/hackpadfs"

	"github.com/kittclouds/scenekitt/pkg/alias"
	"github.com/kittclouds/scenekitt/pkg/script"
)

// Corpus is one decoded game script.
type Corpus struct {
	Name      string
	Events    []script.Event
	Aliases   *alias.Table
	Malformed []*script.MalformedEventError
}

// Load reads the script at dataPath and, when metaPath is not empty, the
// alias table at metaPath. Paths are slash-separated and relative to fsys.
func Load(fsys hackpadfs.FS, dataPath, metaPath string, opts script.DecodeOptions) (*Corpus, error) {
	raw, err := hackpadfs.ReadFile(fsys, dataPath)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	decoded, err := script.Decode(raw, opts)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", dataPath, err)
	}

	c := &Corpus{
		Name:      NameOf(dataPath),
		Events:    decoded.Events,
		Malformed: decoded.Malformed,
		Aliases:   alias.NewTable(nil),
	}
	if metaPath == "" {
		return c, nil
	}

	meta, err := hackpadfs.ReadFile(fsys, metaPath)
	if err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	if c.Aliases, err = alias.Parse(meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", metaPath, err)
	}
	return c, nil
}

// NameOf derives a corpus name from a script path: "FFVI/data-ff6.json"
// becomes "ff6".
func NameOf(dataPath string) string {
	name := path.Base(dataPath)
	name = strings.TrimSuffix(name, path.Ext(name))
	return strings.TrimPrefix(name, "data-")
}
