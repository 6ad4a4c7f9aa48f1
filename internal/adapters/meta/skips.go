package meta

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

// SkipFilename is the per-recipe skip declaration file. Each non-comment
// line is one specifier set, components separated by underscores.
const SkipFilename = "build-skip.txt"

// SkipRules loads and eagerly validates the recipe's skip declarations.
// A missing file means no rules. Any specifier that names neither a known
// platform nor one of the configured runtime tags aborts with
// domain.ErrInvalidSkipSpecifier.
func (r *Reader) SkipRules(recipe *domain.Recipe, runtimeTags []string) ([]domain.SkipRule, error) {
	path := filepath.Join(recipe.Path, SkipFilename)
	f, err := os.Open(path) //nolint:gosec // path derives from a discovered recipe dir
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open skip file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var rules []domain.SkipRule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule, err := domain.ParseSkipRule(line, runtimeTags)
		if err != nil {
			return nil, zerr.With(err, "recipe", recipe.Name)
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read skip file"), "path", path)
	}
	return rules, nil
}
