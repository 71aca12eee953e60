// Package ignore filters collected files through gitignore-like rules from
// .docullimignore, with "last rule wins" behavior.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type rule struct {
	pattern  string
	negated  bool
	dirOnly  bool
	anchored bool
}

// Matcher applies ignore rules to slash-separated relative paths.
type Matcher struct {
	rules []rule
}

// NewMatcher builds a matcher from user-provided rule lines. Default
// excludes are prepended and can be overridden by user negation rules.
func NewMatcher(userRules []string) *Matcher {
	defaultRules := []string{
		".git/",
		".docullim/",
		"__pycache__/",
		".venv/",
		"venv/",
		"node_modules/",
	}

	all := make([]string, 0, len(defaultRules)+len(userRules))
	all = append(all, defaultRules...)
	all = append(all, userRules...)

	rules := make([]rule, 0, len(all))
	for _, line := range all {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}

	return &Matcher{rules: rules}
}

// ShouldIgnore returns true when relPath should be excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	ignored := false
	for _, r := range m.rules {
		if ruleMatches(r, relPath, isDir) {
			ignored = !r.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	if strings.HasPrefix(line, "/") {
		parsed.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if strings.HasSuffix(line, "/") {
		parsed.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	line = normalizePath(line)
	if line == "" {
		return rule{}, false
	}
	parsed.pattern = line
	return parsed, true
}

func ruleMatches(r rule, relPath string, isDir bool) bool {
	if r.dirOnly {
		// Match the directory itself or anything under it.
		if patternMatches(r, relPath) && isDir {
			return true
		}
		for _, prefix := range pathPrefixes(relPath) {
			if patternMatches(r, prefix) {
				return true
			}
		}
		return false
	}
	return patternMatches(r, relPath)
}

// patternMatches checks one path against a rule pattern. Unanchored patterns
// without a slash match any path segment, like gitignore.
func patternMatches(r rule, path string) bool {
	if r.anchored || strings.Contains(r.pattern, "/") {
		ok, err := doublestar.Match(r.pattern, path)
		return err == nil && ok
	}
	for _, segment := range strings.Split(path, "/") {
		if ok, err := doublestar.Match(r.pattern, segment); err == nil && ok {
			return true
		}
	}
	return false
}

// pathPrefixes returns every directory prefix of a path, excluding the path
// itself.
func pathPrefixes(path string) []string {
	parts := strings.Split(path, "/")
	prefixes := make([]string, 0, len(parts))
	for i := 1; i < len(parts); i++ {
		prefixes = append(prefixes, strings.Join(parts[:i], "/"))
	}
	return prefixes
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
