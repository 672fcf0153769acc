// Package exclude decides which paths are kept out of a digest.
//
// Exclusion is a pure OR across three rule sources: built-in defaults,
// user-supplied patterns, and gitignore rules when enabled. Any single
// matching rule excludes; there is no re-include. Defaults always apply
// and cannot be disabled.
package exclude

import (
	"bytes"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileSize is the size ceiling in bytes. Files larger than this
// are always excluded.
const DefaultMaxFileSize = 100 * 1024

// binarySniffLen is how many leading bytes are inspected for a NUL byte.
const binarySniffLen = 8000

// Source identifies where an exclusion rule came from.
type Source string

const (
	SourceDefault    Source = "default"
	SourceUser       Source = "user"
	SourceIgnoreFile Source = "ignore-file"
)

// Rule is one exclusion pattern with its provenance. Rules are transient:
// they drive traversal and never appear in the output.
type Rule struct {
	Pattern string
	Source  Source
}

// defaultDirs are directories that are always skipped. They typically hold
// generated code, dependencies, build output, or version control data.
var defaultDirs = []string{
	".git",
	".svn",
	".hg",
	"__pycache__",
	"node_modules",
	"vendor",
	".venv",
	"venv",
	"dist",
	"build",
	"target",
	".idea",
	".vscode",
	".cache",
}

// defaultFilePatterns are file glob patterns that are always excluded.
var defaultFilePatterns = []string{
	"*.pyc",
	"*.pyo",
	"*.egg-info",
	"*.so",
	"*.o",
	"*.class",
}

// Matcher evaluates candidate paths against the active rule set.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	rules       []Rule
	defaultDirs map[string]bool
	maxFileSize int64
}

// NewMatcher builds a matcher from user patterns and parsed ignore-file
// patterns. Defaults are always included. maxFileSize <= 0 selects
// DefaultMaxFileSize.
func NewMatcher(userPatterns, ignorePatterns []string, maxFileSize int64) *Matcher {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	dirs := make(map[string]bool, len(defaultDirs))
	rules := make([]Rule, 0, len(defaultFilePatterns)+len(userPatterns)+len(ignorePatterns))
	for _, d := range defaultDirs {
		dirs[d] = true
	}
	for _, p := range defaultFilePatterns {
		rules = append(rules, Rule{Pattern: p, Source: SourceDefault})
	}
	for _, p := range userPatterns {
		rules = append(rules, Rule{Pattern: p, Source: SourceUser})
	}
	for _, p := range ignorePatterns {
		rules = append(rules, Rule{Pattern: p, Source: SourceIgnoreFile})
	}

	return &Matcher{
		rules:       rules,
		defaultDirs: dirs,
		maxFileSize: maxFileSize,
	}
}

// MaxFileSize returns the active size ceiling in bytes.
func (m *Matcher) MaxFileSize() int64 {
	return m.maxFileSize
}

// Excluded reports whether the path, relative to the repository root and
// using forward slashes, matches any active rule. A matching directory
// excludes its entire subtree; the walker is expected to skip it.
func (m *Matcher) Excluded(relPath string, isDir bool) bool {
	if relPath == "" || relPath == "." {
		return false
	}

	base := path.Base(relPath)
	if isDir && m.defaultDirs[base] {
		return true
	}
	// A default directory anywhere on the path excludes the file too.
	for _, part := range strings.Split(relPath, "/") {
		if m.defaultDirs[part] {
			return true
		}
	}

	for _, rule := range m.rules {
		if matchPattern(rule.Pattern, relPath, base) {
			return true
		}
	}
	return false
}

// OverSize reports whether a file of the given size exceeds the ceiling.
// This is a resource limit, not an error condition.
func (m *Matcher) OverSize(size int64) bool {
	return size > m.maxFileSize
}

// matchPattern matches one glob pattern against the relative path, its
// base name, and each individual path component. Patterns are treated as
// doublestar globs, so "**" spans directories.
func matchPattern(pattern, relPath, base string) bool {
	if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
		return true
	}
	if ok, err := doublestar.Match(pattern, base); err == nil && ok {
		return true
	}
	// A bare name matches at any directory level and excludes the subtree.
	for _, part := range strings.Split(relPath, "/") {
		if ok, err := doublestar.Match(pattern, part); err == nil && ok {
			return true
		}
	}
	return false
}

// Binary reports whether content looks like a binary file: a NUL byte in
// the leading bytes, or bytes that do not decode as UTF-8. The walker uses
// this before classification, so binary files never reach the extractors.
func Binary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return true
	}
	return !utf8.Valid(content)
}
