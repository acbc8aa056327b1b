package config

import (
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/scenekitt/pkg/act"
	"github.com/kittclouds/scenekitt/pkg/scene"
)

func TestLoadDefaults(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	cfg, err := Load(fsys, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, []int{25, 50, 100}, cfg.InactivityThresholds)
	assert.Equal(t, 5000, cfg.ActBudget)
}

func TestLoadFileThenEnv(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.WriteFullFile(fsys, "scenekitt.yaml", []byte(`
inactivity_thresholds: [10, 20]
char_threshold: 4
database: runs.db
`), 0o644))
	t.Setenv("SCENEKITT_CHAR_THRESHOLD", "2")
	t.Setenv("SCENEKITT_STRICT", "true")

	cfg, err := Load(fsys, "scenekitt.yaml")
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, cfg.InactivityThresholds)
	assert.Equal(t, 2, cfg.CharThreshold)
	assert.Equal(t, 50, cfg.LocationThreshold)
	assert.Equal(t, "runs.db", cfg.Database)
	assert.True(t, cfg.Strict)
}

func TestLoadEnvList(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	t.Setenv("SCENEKITT_INACTIVITY_THRESHOLDS", "5,15")

	cfg, err := Load(fsys, "")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 15}, cfg.InactivityThresholds)
}

func TestLoadEnvError(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)
	t.Setenv("SCENEKITT_ACT_BUDGET", "lots")

	_, err = Load(fsys, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestLoadMissingFile(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	_, err = Load(fsys, "missing.yaml")
	assert.ErrorIs(t, err, hackpadfs.ErrNotExist)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.InactivityThresholds = []int{25, 0}
	assert.ErrorIs(t, cfg.Validate(), scene.ErrInvalidThreshold)

	cfg = Default()
	cfg.LocationThreshold = -1
	assert.ErrorIs(t, cfg.Validate(), scene.ErrInvalidThreshold)

	cfg = Default()
	cfg.ActBudget = 0
	err := cfg.Validate()
	assert.ErrorIs(t, err, act.ErrInvalidBudget)
	assert.NotErrorIs(t, err, scene.ErrInvalidThreshold)
}
