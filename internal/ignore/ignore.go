// Package ignore reads gitignore-style files and turns their entries into
// glob patterns usable by the exclusion matcher.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFiles are the ignore file names consulted at the repository root.
var DefaultFiles = []string{".gitignore"}

// Patterns reads the ignore files under root and returns their combined
// patterns, normalized for doublestar matching. Missing files are not an
// error; an absent or empty set yields nil.
//
// Negation entries ("!pattern") are skipped: the rule set is a pure union
// and there is no re-include.
func Patterns(root string, files []string) ([]string, error) {
	if len(files) == 0 {
		files = DefaultFiles
	}

	var patterns []string
	for _, name := range files {
		filePatterns, err := parseFile(filepath.Join(root, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		patterns = append(patterns, filePatterns...)
	}
	return dedupe(patterns), nil
}

func parseFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p := parseLine(scanner.Text()); p != "" {
			patterns = append(patterns, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// parseLine parses one ignore-file line. Comments, blank lines, and
// negations yield the empty string.
func parseLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
		return ""
	}
	return toGlob(line)
}

// toGlob converts a gitignore entry into a doublestar glob.
func toGlob(pattern string) string {
	// A leading slash anchors to the root, which is where matching
	// starts anyway.
	pattern = strings.TrimPrefix(pattern, "/")

	// Trailing slash marks a directory: match everything beneath it.
	if strings.HasSuffix(pattern, "/") {
		pattern += "**"
	}

	// Entries without a slash match at any depth.
	if !strings.Contains(pattern, "/") && !strings.HasPrefix(pattern, "*") {
		pattern = "**/" + pattern
	}

	// Bare directory names also exclude their contents.
	if !strings.HasSuffix(pattern, "/**") && !strings.HasSuffix(pattern, "/*") && !strings.Contains(pattern, ".") {
		pattern += "/**"
	}

	return pattern
}

func dedupe(patterns []string) []string {
	if len(patterns) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(patterns))
	out := patterns[:0]
	for _, p := range patterns {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
