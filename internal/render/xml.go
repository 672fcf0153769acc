package render

import (
	"encoding/xml"
	"fmt"
	"sort"
	"time"

	"github.com/fyrsmithlabs/repomind/internal/digest"
)

// The XML document mirrors the JSON schema field for field: a root
// element wrapping a repo-metadata element and a files element with one
// child per file. encoding/xml cannot marshal maps, so contributors
// become an explicit element list sorted by name.

type xmlDocument struct {
	XMLName xml.Name  `xml:"repository"`
	Repo    xmlRepo   `xml:"repo"`
	Files   []xmlFile `xml:"files>file"`
}

type xmlRepo struct {
	Name           string      `xml:"name"`
	Path           string      `xml:"path"`
	GeneratedAt    string      `xml:"generated_at"`
	FilesProcessed int         `xml:"files_processed"`
	History        *xmlHistory `xml:"history,omitempty"`
}

type xmlHistory struct {
	CommitCount  int              `xml:"commit_count"`
	Commits      []xmlCommit      `xml:"commits>commit"`
	Branches     []string         `xml:"branches>branch"`
	Contributors []xmlContributor `xml:"contributors>contributor"`
}

type xmlCommit struct {
	ID        string `xml:"id"`
	Author    string `xml:"author"`
	Message   string `xml:"message"`
	Timestamp string `xml:"timestamp"`
}

type xmlContributor struct {
	Name    string `xml:"name,attr"`
	Commits int    `xml:"commits,attr"`
}

type xmlFile struct {
	Path      string      `xml:"path"`
	Language  string      `xml:"language"`
	SizeBytes int         `xml:"size_bytes"`
	Lines     int         `xml:"lines"`
	Metadata  xmlMetadata `xml:"metadata"`
	Chunks    []xmlChunk  `xml:"chunks>chunk"`
}

type xmlMetadata struct {
	Functions     []string `xml:"functions>name,omitempty"`
	Classes       []string `xml:"classes>name,omitempty"`
	Headers       []string `xml:"headers>header,omitempty"`
	Instructions  []string `xml:"instructions>instruction,omitempty"`
	LicenseHeader string   `xml:"license_header,omitempty"`
}

type xmlChunk struct {
	Index     int    `xml:"index,attr"`
	StartLine int    `xml:"start_line"`
	EndLine   int    `xml:"end_line"`
	Content   string `xml:"content"`
}

func renderXML(summary digest.RepoSummary, records []digest.FileRecord) ([]byte, error) {
	doc := xmlDocument{
		Repo: xmlRepo{
			Name:           summary.Name,
			Path:           summary.Path,
			GeneratedAt:    summary.GeneratedAt.Format(time.RFC3339),
			FilesProcessed: summary.FilesProcessed,
			History:        toXMLHistory(summary.History),
		},
	}
	for _, rec := range records {
		doc.Files = append(doc.Files, toXMLFile(rec))
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding xml: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func toXMLFile(rec digest.FileRecord) xmlFile {
	f := xmlFile{
		Path:      rec.Path,
		Language:  rec.Language,
		SizeBytes: rec.SizeBytes,
		Lines:     rec.Lines,
		Metadata: xmlMetadata{
			Functions:     rec.Metadata.Functions,
			Classes:       rec.Metadata.Classes,
			Headers:       rec.Metadata.Headers,
			Instructions:  rec.Metadata.Instructions,
			LicenseHeader: rec.Metadata.LicenseHeader,
		},
	}
	for _, c := range rec.Chunks {
		f.Chunks = append(f.Chunks, xmlChunk{
			Index:     c.Index,
			StartLine: c.StartLine,
			EndLine:   c.EndLine,
			Content:   c.Content,
		})
	}
	return f
}

func toXMLHistory(h *digest.HistorySummary) *xmlHistory {
	if h == nil {
		return nil
	}
	out := &xmlHistory{
		CommitCount: h.CommitCount,
		Branches:    h.Branches,
	}
	for _, c := range h.Commits {
		out.Commits = append(out.Commits, xmlCommit{
			ID:        c.ID,
			Author:    c.Author,
			Message:   c.Message,
			Timestamp: c.Timestamp.Format(time.RFC3339),
		})
	}

	names := make([]string, 0, len(h.Contributors))
	for name := range h.Contributors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.Contributors = append(out.Contributors, xmlContributor{
			Name:    name,
			Commits: h.Contributors[name],
		})
	}
	return out
}
