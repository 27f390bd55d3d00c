package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_MissingFileYieldsBuiltinAliases(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, "macos", d.CanonicalOS("darwin"))
	assert.Equal(t, "linux", d.CanonicalOS("linux"))
}

func TestLoad_MergesValuesAndAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluefront.yaml")
	content := "values:\n  BUILD: release\nos_aliases:\n  windows: win32\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "release", d.Values["BUILD"])
	assert.Equal(t, "win32", d.CanonicalOS("windows"))
	assert.Equal(t, "macos", d.CanonicalOS("darwin"))
}
