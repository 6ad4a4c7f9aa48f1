// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/mason/internal/core/domain"

// MetadataReader loads recipe descriptors from disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=metadata.go -destination=mocks/mock_metadata.go -package=mocks
type MetadataReader interface {
	// Read parses the recipe at the given directory and returns its
	// descriptor. It returns an error when the location is not a valid
	// recipe; callers decide whether that is fatal.
	Read(dir string) (*domain.Recipe, error)

	// Discover expands path patterns into the recipe build set. Invalid
	// locations are excluded silently; duplicate package names are an
	// error.
	Discover(patterns []string) ([]*domain.Recipe, error)

	// SkipRules loads and validates the recipe's skip declarations for the
	// given runtime tags. An invalid specifier is a configuration error.
	SkipRules(recipe *domain.Recipe, runtimeTags []string) ([]domain.SkipRule, error)
}
