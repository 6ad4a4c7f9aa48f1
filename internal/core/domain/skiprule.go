package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// SpecifierKind discriminates the two kinds of skip specifiers.
type SpecifierKind int

const (
	// SpecPlatform names a platform tag such as "linux-64".
	SpecPlatform SpecifierKind = iota
	// SpecRuntime names a runtime tag such as "py34".
	SpecRuntime
)

// Specifier is one validated component of a skip rule.
type Specifier struct {
	Kind SpecifierKind
	Tag  string
}

// Satisfied reports whether the specifier names the given platform or
// runtime tag.
func (s Specifier) Satisfied(platform, runtimeTag string) bool {
	switch s.Kind {
	case SpecPlatform:
		return s.Tag == platform
	case SpecRuntime:
		return s.Tag == runtimeTag
	}
	return false
}

// SkipRule is a declarative exclusion of platform/runtime combinations for
// one recipe. A rule with no specifiers never matches.
type SkipRule struct {
	Specifiers []Specifier
}

// Matches reports whether the rule excludes the given platform/runtime
// combination. Every specifier must be satisfied; an absent specifier kind
// acts as a wildcard.
func (r SkipRule) Matches(platform, runtimeTag string) bool {
	if len(r.Specifiers) == 0 {
		return false
	}
	for _, s := range r.Specifiers {
		if !s.Satisfied(platform, runtimeTag) {
			return false
		}
	}
	return true
}

// ParseSkipRule parses a delimited specifier set such as "linux-64_py34",
// "win-32" or "py27". Each component must name either a known platform or
// one of the configured runtime tags; anything else is a configuration
// error surfaced eagerly, before any build work starts.
func ParseSkipRule(decl string, runtimeTags []string) (SkipRule, error) {
	var rule SkipRule
	for part := range strings.SplitSeq(decl, "_") {
		switch {
		case KnownPlatforms.Contains(part):
			rule.Specifiers = append(rule.Specifiers, Specifier{Kind: SpecPlatform, Tag: part})
		case slices.Contains(runtimeTags, part):
			rule.Specifiers = append(rule.Specifiers, Specifier{Kind: SpecRuntime, Tag: part})
		default:
			err := zerr.With(ErrInvalidSkipSpecifier, "specifier", part)
			return SkipRule{}, zerr.With(err, "declaration", decl)
		}
	}
	return rule, nil
}
