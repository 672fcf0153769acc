package digest

import "time"

// RepoSummary holds repository-level metadata for one run.
type RepoSummary struct {
	// Name is the base name of the repository directory.
	Name string `json:"name"`

	// Path is the absolute path to the repository root.
	Path string `json:"path"`

	// GeneratedAt is the timestamp when the digest was produced.
	GeneratedAt time.Time `json:"generated_at"`

	// FilesProcessed is the number of FileRecords in the digest.
	// Always equals the length of the files sequence.
	FilesProcessed int `json:"files_processed"`

	// History is the optional version-control summary. Nil when history
	// aggregation is disabled or the root is not a git repository.
	History *HistorySummary `json:"history,omitempty"`
}

// FileRecord describes one accepted file. Created once by the walker and
// never mutated afterwards.
type FileRecord struct {
	// Path is the file path relative to the repository root, using
	// forward slashes.
	Path string `json:"path"`

	// Language is the classifier's tag for the file.
	Language string `json:"language"`

	// SizeBytes is the byte length of the decoded content.
	SizeBytes int `json:"size_bytes"`

	// Lines is the number of content lines. A trailing newline does not
	// start a new line; an empty file has zero lines.
	Lines int `json:"lines"`

	// Metadata is the per-language structural summary. Exactly one
	// variant is populated, selected by Language.
	Metadata Metadata `json:"metadata"`

	// Chunks partition the file content into bounded, contiguous
	// segments in source order.
	Chunks []Chunk `json:"chunks"`
}

// Metadata is the closed set of per-language structural summaries.
// The active variant is determined by the owning record's Language tag;
// all other fields stay empty.
type Metadata struct {
	// Functions and Classes are top-level definition names in source
	// order. Duplicate names are preserved as separate entries.
	Functions []string `json:"functions,omitempty"`
	Classes   []string `json:"classes,omitempty"`

	// Headers are markdown heading texts with markers stripped, in
	// document order.
	Headers []string `json:"headers,omitempty"`

	// Instructions are the leading keywords of Dockerfile instruction
	// lines, one entry per line.
	Instructions []string `json:"instructions,omitempty"`

	// LicenseHeader is the first non-empty line of a license file.
	LicenseHeader string `json:"license_header,omitempty"`
}

// Empty reports whether no variant is populated.
func (m Metadata) Empty() bool {
	return len(m.Functions) == 0 &&
		len(m.Classes) == 0 &&
		len(m.Headers) == 0 &&
		len(m.Instructions) == 0 &&
		m.LicenseHeader == ""
}

// Chunk is one contiguous slice of a file's lines.
//
// Chunks of a file are sequential and non-overlapping: the end line of
// chunk i is immediately followed by the start line of chunk i+1, and the
// concatenation of all chunk contents reproduces the file exactly.
type Chunk struct {
	// Index is the 0-based position of the chunk within its file.
	Index int `json:"index"`

	// StartLine and EndLine are 1-based inclusive line numbers.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// Content is the raw chunk text with original line terminators.
	Content string `json:"content"`
}

// HistorySummary is the normalized version-control summary injected into
// the digest. The pipeline treats it as opaque; only the renderer reads it.
type HistorySummary struct {
	// CommitCount is the number of commits covered by the summary.
	CommitCount int `json:"commit_count"`

	// Commits are the most recent commits, newest first.
	Commits []Commit `json:"commits"`

	// Branches are the local branch names, sorted.
	Branches []string `json:"branches"`

	// Contributors maps author name to the number of commits observed
	// in the scanned window.
	Contributors map[string]int `json:"contributors"`
}

// Commit is one normalized commit record.
type Commit struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
