package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Bundled(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 56)

	capacity, ok := c.Lookup("chevrolet", " ONIX ")
	require.True(t, ok)
	assert.Equal(t, 44, capacity)

	capacity, ok = c.Lookup("Volkswagen", "Gol")
	require.True(t, ok)
	assert.Equal(t, 55, capacity)

	_, ok = c.Lookup("Tesla", "Model 3")
	assert.False(t, ok)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": 2, "make": "Fiat", "model": "Uno", "tank_capacity": 48},
		{"id": 1, "make": "Fiat", "model": "Argo", "tank_capacity": 47}
	]`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Argo", entries[0].Model)

	capacity, ok := c.Lookup("FIAT", "uno")
	require.True(t, ok)
	assert.Equal(t, 48, capacity)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Parse([]byte("{not json"))
	assert.Error(t, err)
}
