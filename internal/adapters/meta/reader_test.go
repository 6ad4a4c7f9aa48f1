package meta_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/logger"
	"go.trai.ch/mason/internal/adapters/meta"
	"go.trai.ch/mason/internal/core/domain"
)

func newTestReader() *meta.Reader {
	return meta.NewReader(logger.NewWithOutput(io.Discard))
}

func writeRecipe(t *testing.T, root, dir, content string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(path, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(path, meta.MetaFilename), []byte(content), 0o600))
	return path
}

const scipyMeta = `
package:
  name: SciPy
  version: "0.16.0"
requirements:
  build:
    - python >=2.7
    - numpy x.x
    - setuptools
  run:
    - python
    - numpy
test:
  requires:
    - nose >=1.0
`

func TestRead_Success(t *testing.T) {
	tmp := t.TempDir()
	dir := writeRecipe(t, tmp, "scipy", scipyMeta)

	recipe, err := newTestReader().Read(dir)
	require.NoError(t, err)

	assert.Equal(t, "scipy", recipe.Name, "names are normalized to lower case")
	assert.True(t, filepath.IsAbs(recipe.Path))
	assert.Equal(t, domain.NewStringSet("python", "numpy", "setuptools"), recipe.BuildDeps)
	assert.Equal(t, domain.NewStringSet("python", "numpy"), recipe.RunDeps)
	assert.Equal(t, domain.NewStringSet("nose"), recipe.TestDeps)
}

func TestRead_InvalidLocations(t *testing.T) {
	tmp := t.TempDir()
	reader := newTestReader()

	t.Run("missing directory", func(t *testing.T) {
		_, err := reader.Read(filepath.Join(tmp, "nope"))
		require.Error(t, err)
	})

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(tmp, "afile")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
		_, err := reader.Read(file)
		require.Error(t, err)
	})

	t.Run("missing metadata", func(t *testing.T) {
		dir := filepath.Join(tmp, "empty")
		require.NoError(t, os.MkdirAll(dir, 0o750))
		_, err := reader.Read(dir)
		require.Error(t, err)
	})

	t.Run("unparsable metadata", func(t *testing.T) {
		dir := writeRecipe(t, tmp, "broken", "package: [not: valid")
		_, err := reader.Read(dir)
		require.Error(t, err)
	})

	t.Run("missing package name", func(t *testing.T) {
		dir := writeRecipe(t, tmp, "anon", "package:\n  version: \"1.0\"\n")
		_, err := reader.Read(dir)
		require.Error(t, err)
	})
}

func TestDiscover_SilentlyExcludesInvalid(t *testing.T) {
	tmp := t.TempDir()
	writeRecipe(t, tmp, "numpy", "package:\n  name: numpy\n")
	writeRecipe(t, tmp, "scipy", scipyMeta)
	// A directory with no metadata sits among the candidates.
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "notarecipe"), 0o750))

	recipes, err := newTestReader().Discover([]string{filepath.Join(tmp, "*")})
	require.NoError(t, err)

	names := make([]string, len(recipes))
	for i, r := range recipes {
		names[i] = r.Name
	}
	assert.ElementsMatch(t, []string{"numpy", "scipy"}, names)
}

func TestDiscover_DuplicateNames(t *testing.T) {
	tmp := t.TempDir()
	writeRecipe(t, tmp, "one", "package:\n  name: numpy\n")
	writeRecipe(t, tmp, "two", "package:\n  name: numpy\n")

	_, err := newTestReader().Discover([]string{filepath.Join(tmp, "*")})
	require.ErrorIs(t, err, domain.ErrRecipeAlreadyExists)
}

func TestDiscover_NothingFound(t *testing.T) {
	tmp := t.TempDir()
	_, err := newTestReader().Discover([]string{filepath.Join(tmp, "*")})
	require.ErrorIs(t, err, domain.ErrNoRecipesFound)
}
