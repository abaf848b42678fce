package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formedit/form"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formeditrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
grid_unit = 5.0
confirmations = false
save_directory = "out"
output_name = "form.xml"
`)
	config, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, config.GridUnit)
	assert.False(t, config.Confirmations)
	assert.True(t, config.StartMenu)
	assert.True(t, filepath.IsAbs(config.SaveDirectory))
	assert.Equal(t, "out", filepath.Base(config.SaveDirectory))
	assert.Equal(t, "form.xml", config.OutputName)
	assert.Equal(t, 8.0, config.CellWidth)
	assert.Equal(t, 16.0, config.CellHeight)
}

func TestLoadConfigMissing(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), config)

	config, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, float64(form.DefaultGridUnit), config.GridUnit)
}

func TestLoadConfigBroken(t *testing.T) {
	config, err := loadConfig(writeConfig(t, "grid_unit = [oops"))
	assert.Error(t, err)
	require.NotNil(t, config)
	assert.Equal(t, defaultConfig(), config)
}

func TestConfigFixup(t *testing.T) {
	config, err := loadConfig(writeConfig(t, `
cell_width = -1.0
scale_step = 0.0
output_name = "  "
grid_unit = 0.0
`))
	require.NoError(t, err)
	assert.Equal(t, 8.0, config.CellWidth)
	assert.Equal(t, 0.1, config.ScaleStep)
	assert.Equal(t, form.DefaultOutputName, config.OutputName)
	assert.Equal(t, 0.0, config.GridUnit, "zero disables snapping")
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	assert.Equal(t, "a.xml", config.GetSavePath("a.xml"))

	dir := filepath.Join(t.TempDir(), "sub")
	config.SaveDirectory = dir
	assert.Equal(t, filepath.Join(dir, "a.xml"), config.GetSavePath("a.xml"))
	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}
