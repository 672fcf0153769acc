package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fyrsmithlabs/repomind/internal/digest"
)

// renderMarkdown writes the human-readable digest: a repo header section,
// the optional history section, then one subsection per file. Empty
// metadata sections are omitted rather than rendered as placeholders.
func renderMarkdown(summary digest.RepoSummary, records []digest.FileRecord) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Repo Summary: %s\n\n", summary.Name)
	fmt.Fprintf(&b, "**Path:** %s  \n", summary.Path)
	fmt.Fprintf(&b, "**Generated:** %s  \n", summary.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Files processed:** %d\n\n", summary.FilesProcessed)

	if summary.History != nil {
		writeHistory(&b, summary.History)
	}

	b.WriteString("## Files\n\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "### %s\n\n", rec.Path)
		fmt.Fprintf(&b, "*Language:* %s  \n", rec.Language)
		fmt.Fprintf(&b, "*Size:* %d bytes, %d lines  \n", rec.SizeBytes, rec.Lines)
		fmt.Fprintf(&b, "*Chunks:* %d  \n", len(rec.Chunks))
		writeMetadata(&b, rec.Metadata)
		b.WriteString("\n")
	}

	return []byte(b.String())
}

func writeMetadata(b *strings.Builder, meta digest.Metadata) {
	if len(meta.Functions) > 0 {
		fmt.Fprintf(b, "*Functions:* %s  \n", strings.Join(meta.Functions, ", "))
	}
	if len(meta.Classes) > 0 {
		fmt.Fprintf(b, "*Classes:* %s  \n", strings.Join(meta.Classes, ", "))
	}
	if len(meta.Headers) > 0 {
		fmt.Fprintf(b, "*Headers:* %s  \n", strings.Join(meta.Headers, ", "))
	}
	if len(meta.Instructions) > 0 {
		fmt.Fprintf(b, "*Instructions:* %s  \n", strings.Join(meta.Instructions, ", "))
	}
	if meta.LicenseHeader != "" {
		fmt.Fprintf(b, "*License:* %s  \n", meta.LicenseHeader)
	}
}

func writeHistory(b *strings.Builder, h *digest.HistorySummary) {
	b.WriteString("## History\n\n")
	fmt.Fprintf(b, "**Commits:** %d  \n", h.CommitCount)
	if len(h.Branches) > 0 {
		fmt.Fprintf(b, "**Branches:** %s  \n", strings.Join(h.Branches, ", "))
	}
	if len(h.Contributors) > 0 {
		fmt.Fprintf(b, "**Contributors:** %s  \n", formatContributors(h.Contributors))
	}
	b.WriteString("\n")
	for _, c := range h.Commits {
		fmt.Fprintf(b, "- `%s` %s (%s, %s)\n",
			c.ID, c.Message, c.Author, c.Timestamp.Format("2006-01-02"))
	}
	b.WriteString("\n")
}

// formatContributors renders the contributor map in sorted name order so
// output stays byte-identical across runs.
func formatContributors(contributors map[string]int) string {
	names := make([]string, 0, len(contributors))
	for name := range contributors {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s (%d)", name, contributors[name])
	}
	return strings.Join(parts, ", ")
}
