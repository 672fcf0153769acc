// Package extract produces lightweight structural metadata per file type.
//
// Each extractor is a pure function selected from a closed lookup table
// keyed by language tag. Extraction stays syntactic: patterns anchored at
// line starts, no parsing beyond that. A tag without an extractor yields
// empty metadata, and a malformed file degrades to empty metadata rather
// than failing the run.
package extract

import (
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/repomind/internal/digest"
	"github.com/fyrsmithlabs/repomind/internal/language"
)

// Func is one metadata extractor.
type Func func(content string) digest.Metadata

// extractors is the dispatch table. Tags not present here get no metadata.
var extractors = map[language.Tag]Func{
	language.TagPython:     Python,
	language.TagMarkdown:   Markdown,
	language.TagDockerfile: Dockerfile,
	language.TagLicense:    License,
}

// Extract runs the extractor for tag over content. Unknown tags return
// empty metadata. A panicking extractor is contained to the file.
func Extract(tag language.Tag, content string) (meta digest.Metadata) {
	fn, ok := extractors[tag]
	if !ok {
		return digest.Metadata{}
	}
	defer func() {
		if recover() != nil {
			meta = digest.Metadata{}
		}
	}()
	return fn(content)
}

var (
	pyFuncRe  = regexp.MustCompile(`^(?:async\s+)?def\s+(\w+)\s*\(`)
	pyClassRe = regexp.MustCompile(`^class\s+(\w+)\s*[(:]`)
)

// Python collects top-level function and class names in line order.
// Only definitions at nesting depth zero count; indented (nested or
// method) definitions are intentionally omitted to keep the summary
// high-level. Duplicate names are preserved.
func Python(content string) digest.Metadata {
	var meta digest.Metadata
	for _, line := range strings.Split(content, "\n") {
		if m := pyFuncRe.FindStringSubmatch(line); m != nil {
			meta.Functions = append(meta.Functions, m[1])
			continue
		}
		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			meta.Classes = append(meta.Classes, m[1])
		}
	}
	return meta
}

// Markdown collects heading lines in document order, markers stripped.
func Markdown(content string) digest.Metadata {
	var meta digest.Metadata
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimLeft(line, "#")
		if trimmed == line || len(line)-len(trimmed) > 6 {
			continue
		}
		text := strings.TrimSpace(trimmed)
		if text != "" {
			meta.Headers = append(meta.Headers, text)
		}
	}
	return meta
}

// Dockerfile collects the leading keyword of each instruction line, one
// entry per non-comment, non-blank line, in document order.
func Dockerfile(content string) digest.Metadata {
	var meta digest.Metadata
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keyword, _, _ := strings.Cut(line, " ")
		meta.Instructions = append(meta.Instructions, strings.ToUpper(keyword))
	}
	return meta
}

// License records the first non-empty line, which is usually the license
// name.
func License(content string) digest.Metadata {
	for _, line := range strings.Split(content, "\n") {
		if text := strings.TrimSpace(line); text != "" {
			return digest.Metadata{LicenseHeader: text}
		}
	}
	return digest.Metadata{}
}
