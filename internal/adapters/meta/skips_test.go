package meta_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/adapters/meta"
	"go.trai.ch/mason/internal/core/domain"
)

func recipeWithSkips(t *testing.T, lines string) *domain.Recipe {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, meta.SkipFilename), []byte(lines), 0o600))
	return &domain.Recipe{Name: "pkg", Path: dir}
}

func TestSkipRules_Load(t *testing.T) {
	recipe := recipeWithSkips(t, `
# never build on 32-bit windows
win-32

linux-64_py34
`)

	rules, err := meta.NewReader(nil).SkipRules(recipe, []string{"py27", "py34"})
	require.NoError(t, err)
	require.Len(t, rules, 2, "comments and blank lines are ignored")

	assert.True(t, rules[0].Matches("win-32", "py27"))
	assert.True(t, rules[1].Matches("linux-64", "py34"))
	assert.False(t, rules[1].Matches("linux-64", "py27"))
}

func TestSkipRules_MissingFileMeansNoRules(t *testing.T) {
	recipe := &domain.Recipe{Name: "pkg", Path: t.TempDir()}
	rules, err := meta.NewReader(nil).SkipRules(recipe, []string{"py27"})
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestSkipRules_InvalidSpecifierAborts(t *testing.T) {
	recipe := recipeWithSkips(t, "linux-64\nbogus-spec\n")

	_, err := meta.NewReader(nil).SkipRules(recipe, []string{"py27"})
	require.ErrorIs(t, err, domain.ErrInvalidSkipSpecifier)
}
