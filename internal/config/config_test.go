package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "> ", cfg.Prompt)
	assert.True(t, cfg.Color)
	assert.Equal(t, 1000, cfg.MaxCallDepth)
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysPresentFields(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"prompt": "ember> ", "color": false}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "ember> ", cfg.Prompt)
	assert.False(t, cfg.Color)
	assert.Equal(t, Default().MaxCallDepth, cfg.MaxCallDepth, "absent field keeps default")
}

func TestLoad_MaxCallDepthOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"maxCallDepth": 42}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.MaxCallDepth)
}

func TestLoad_InvalidJSONIsError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{not json`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_UnknownFieldFailsSchemaValidation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"nonsense": true}`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_ZeroMaxCallDepthFailsSchemaValidation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"maxCallDepth": 0}`)

	_, err := Load(dir)
	assert.Error(t, err)
}

func writeConfig(t *testing.T, dir, contents string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644)
	require.NoError(t, err)
}
