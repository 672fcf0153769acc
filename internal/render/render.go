// Package render serializes a digest into Markdown, JSON, or XML.
//
// All three formats expose the same logical fields. JSON and XML are
// lossless structured encodings including full chunk contents; Markdown
// is a human-readable rendering that surfaces every non-empty metadata
// field and the chunk count. Rendering only formats values already
// computed by the walker; nothing is re-derived here.
package render

import (
	"fmt"

	"github.com/fyrsmithlabs/repomind/internal/digest"
)

// Format is an output format identifier.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatXML      Format = "xml"
)

// ParseFormat validates a format string from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatJSON, FormatXML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want md, json, or xml)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// Render produces the output byte stream for the digest.
func Render(summary digest.RepoSummary, records []digest.FileRecord, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return renderMarkdown(summary, records), nil
	case FormatJSON:
		return renderJSON(summary, records)
	case FormatXML:
		return renderXML(summary, records)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
