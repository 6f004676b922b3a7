package gazetteer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsKnownCity(t *testing.T) {
	g := New([]string{"Houston", "San Francisco"})

	assert.True(t, g.IsKnownCity("Houston"))
	assert.True(t, g.IsKnownCity("houston"))
	assert.True(t, g.IsKnownCity("  SAN FRANCISCO  "))
	assert.False(t, g.IsKnownCity("Atlantis"))
	assert.False(t, g.IsKnownCity(""))
}

func TestValidateRoute(t *testing.T) {
	g := New([]string{"Houston", "San Francisco"})

	assert.NoError(t, g.ValidateRoute("Houston", "San Francisco"))

	err := g.ValidateRoute("Atlantis", "San Francisco")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin")

	err = g.ValidateRoute("Houston", "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	data := `[{"name": "Houston"}, {"name": "San Francisco"}, {"name": "  "}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	g, err := Load(path)
	require.NoError(t, err)

	// Blank records are dropped during load.
	assert.Equal(t, 2, g.Size())
	assert.True(t, g.IsKnownCity("houston"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
