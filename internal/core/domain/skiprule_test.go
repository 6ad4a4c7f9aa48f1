package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/zerr"
)

var runtimeTags = []string{"py27", "py34"}

func parseRules(t *testing.T, decls []string) []domain.SkipRule {
	t.Helper()
	rules := make([]domain.SkipRule, len(decls))
	for i, d := range decls {
		rule, err := domain.ParseSkipRule(d, runtimeTags)
		require.NoError(t, err)
		rules[i] = rule
	}
	return rules
}

func anyMatches(rules []domain.SkipRule, platform, runtime string) bool {
	for _, r := range rules {
		if r.Matches(platform, runtime) {
			return true
		}
	}
	return false
}

func TestSkipRules_MatchTable(t *testing.T) {
	rules := parseRules(t, []string{"win-32", "linux-64_py34"})

	tests := []struct {
		platform string
		runtime  string
		skip     bool
	}{
		{"win-32", "py27", true},    // platform-only rule is a runtime wildcard
		{"win-32", "py34", true},
		{"linux-64", "py34", true},  // both specifiers satisfied
		{"linux-64", "py27", false}, // py34 specifier unsatisfied
		{"osx-64", "py34", false},
		{"win-64", "py27", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.skip, anyMatches(rules, tt.platform, tt.runtime),
			"platform=%s runtime=%s", tt.platform, tt.runtime)
	}
}

func TestSkipRule_RuntimeOnly(t *testing.T) {
	rules := parseRules(t, []string{"py27"})

	assert.True(t, anyMatches(rules, "linux-64", "py27"))
	assert.True(t, anyMatches(rules, "win-32", "py27"))
	assert.False(t, anyMatches(rules, "linux-64", "py34"))
}

func TestParseSkipRule_InvalidSpecifier(t *testing.T) {
	tests := []string{
		"bogus-spec",
		"linux-64_bogus",
		"py99",
		"linux-128",
	}

	for _, decl := range tests {
		t.Run(decl, func(t *testing.T) {
			_, err := domain.ParseSkipRule(decl, runtimeTags)
			require.ErrorIs(t, err, domain.ErrInvalidSkipSpecifier)

			zErr, ok := err.(*zerr.Error)
			require.True(t, ok, "expected *zerr.Error, got %T", err)
			assert.Equal(t, decl, zErr.Metadata()["declaration"])
		})
	}
}

func TestSkipRule_EmptyNeverMatches(t *testing.T) {
	var rule domain.SkipRule
	assert.False(t, rule.Matches("linux-64", "py27"))
}
