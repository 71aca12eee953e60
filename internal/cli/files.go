package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/shrynx/docullim/internal/ignore"
	"github.com/shrynx/docullim/internal/logging"
)

// CollectFiles expands file paths and glob patterns (** supported) into a
// deduplicated, sorted file list. Unmatched literal paths are warned about,
// not fatal; files matching .docullimignore rules are dropped.
func CollectFiles(patterns []string, ignoreRules []string) []string {
	matcher := ignore.NewMatcher(ignoreRules)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		if strings.ContainsAny(pattern, "*?[{") {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				logging.Warn("invalid glob pattern", "pattern", pattern, "error", err)
				continue
			}
			for _, match := range matches {
				if info, err := os.Stat(match); err == nil && !info.IsDir() {
					seen[match] = true
				}
			}
			continue
		}

		info, err := os.Stat(pattern)
		switch {
		case err != nil:
			logging.Warn("file or pattern does not exist", "pattern", pattern)
		case info.IsDir():
			logging.Warn("path is a directory, not a file; use a glob like dir/**/*.py", "path", pattern)
		default:
			seen[pattern] = true
		}
	}

	files := make([]string, 0, len(seen))
	for file := range seen {
		if matcher.ShouldIgnore(filepath.ToSlash(file), false) {
			logging.Debug("ignoring file", "file", file)
			continue
		}
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// LoadIgnoreRules reads .docullimignore from the working directory. A missing
// file simply means no user rules.
func LoadIgnoreRules(rootPath string) ([]string, error) {
	ignorePath := filepath.Join(rootPath, ".docullimignore")
	f, err := os.Open(ignorePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read .docullimignore: %w", err)
	}
	defer f.Close()

	rules := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse .docullimignore: %w", err)
	}

	return rules, nil
}
