// Package chunk splits file content into bounded, contiguous line groups.
//
// Chunking is purely line-count based with no awareness of code structure.
// Each chunk keeps the original line terminators, so concatenating the
// chunks of a file in index order reproduces the content byte-for-byte.
package chunk

import (
	"strings"

	"github.com/fyrsmithlabs/repomind/internal/digest"
)

// Lines splits content after each newline, keeping terminators. A trailing
// newline does not produce an extra empty line; empty content has no lines.
func Lines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Split partitions content into chunks of at most size lines each. The
// final chunk may be shorter. Empty content yields no chunks.
//
// size must be >= 1; callers validate this before any file is processed.
func Split(content string, size int) []digest.Chunk {
	lines := Lines(content)
	if len(lines) == 0 {
		return nil
	}

	chunks := make([]digest.Chunk, 0, (len(lines)+size-1)/size)
	for start := 0; start < len(lines); start += size {
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, digest.Chunk{
			Index:     len(chunks),
			StartLine: start + 1,
			EndLine:   end,
			Content:   strings.Join(lines[start:end], ""),
		})
	}
	return chunks
}
