// Package meta provides the recipe metadata reader.
package meta

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.MetadataReader = (*Reader)(nil)

// MetaFilename is the recipe descriptor file inside a recipe directory.
const MetaFilename = "meta.yaml"

// Reader implements ports.MetadataReader for YAML recipe descriptors.
type Reader struct {
	logger ports.Logger
}

// NewReader creates a new Reader.
func NewReader(logger ports.Logger) *Reader {
	return &Reader{logger: logger}
}

// metaFile mirrors the YAML structure of a recipe descriptor.
type metaFile struct {
	Package struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"package"`
	Requirements struct {
		Build []string `yaml:"build"`
		Run   []string `yaml:"run"`
	} `yaml:"requirements"`
	Test struct {
		Requires []string `yaml:"requires"`
	} `yaml:"test"`
}

// Read parses the recipe descriptor in the given directory.
func (r *Reader) Read(dir string) (*domain.Recipe, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat recipe location"), "path", dir)
	}
	if !info.IsDir() {
		return nil, zerr.With(zerr.New("recipe location is not a directory"), "path", dir)
	}

	path := filepath.Join(dir, MetaFilename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read recipe metadata"), "path", path)
	}

	var mf metaFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse recipe metadata"), "path", path)
	}
	if mf.Package.Name == "" {
		return nil, zerr.With(zerr.New("recipe metadata missing package name"), "path", path)
	}

	// Builds run from a scratch working directory, so the recipe path must
	// survive a chdir.
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve recipe path"), "path", dir)
	}

	return &domain.Recipe{
		Name:      strings.ToLower(mf.Package.Name),
		Path:      abs,
		BuildDeps: stripConstraints(mf.Requirements.Build),
		RunDeps:   stripConstraints(mf.Requirements.Run),
		TestDeps:  stripConstraints(mf.Test.Requires),
	}, nil
}

// Discover expands the given path patterns and reads every candidate
// directory. Locations that fail metadata parsing are excluded from the
// build set with a warning; they never abort discovery. Duplicate package
// names are an error.
func (r *Reader) Discover(patterns []string) ([]*domain.Recipe, error) {
	seen := make(map[string]string)
	var recipes []*domain.Recipe

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "bad recipe pattern"), "pattern", pattern)
		}
		if matches == nil {
			// Not a glob; let Read report the problem for the literal path.
			matches = []string{pattern}
		}

		for _, dir := range matches {
			recipe, err := r.Read(dir)
			if err != nil {
				r.logger.Warn("skipping invalid recipe location", "path", dir, "reason", err.Error())
				continue
			}
			if prev, dup := seen[recipe.Name]; dup {
				err := zerr.With(domain.ErrRecipeAlreadyExists, "name", recipe.Name)
				err = zerr.With(err, "first", prev)
				return nil, zerr.With(err, "second", dir)
			}
			seen[recipe.Name] = dir
			recipes = append(recipes, recipe)
		}
	}

	if len(recipes) == 0 {
		return nil, domain.ErrNoRecipesFound
	}
	return recipes, nil
}

// stripConstraints reduces requirement entries like "numpy >=1.7" to bare
// package names.
func stripConstraints(entries []string) domain.StringSet {
	set := make(domain.StringSet, len(entries))
	for _, entry := range entries {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		set[strings.ToLower(fields[0])] = struct{}{}
	}
	return set
}
