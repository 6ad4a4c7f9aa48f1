package domain

import "go.trai.ch/zerr"

var (
	// ErrRecipeAlreadyExists is returned when two recipe directories declare the same package name.
	ErrRecipeAlreadyExists = zerr.New("recipe already exists")

	// ErrCyclicDependency is returned when the recipe set cannot be linearized.
	ErrCyclicDependency = zerr.New("cyclic dependency detected")

	// ErrInvalidSkipSpecifier is returned when a skip declaration names neither
	// a known platform nor a configured runtime version.
	ErrInvalidSkipSpecifier = zerr.New("invalid skip specifier")

	// ErrDistributionNotFound is returned by repository lookups when the
	// distribution has not been published.
	ErrDistributionNotFound = zerr.New("distribution not found")

	// ErrBuilderNotFound is returned when the builder executable cannot be located.
	ErrBuilderNotFound = zerr.New("builder executable not found")

	// ErrBuildFailed is returned when one or more build attempts exited non-zero.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoRecipesFound is returned when the given patterns match no valid recipes.
	ErrNoRecipesFound = zerr.New("no recipes found")
)
