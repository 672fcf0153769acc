package walker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/repomind/internal/digest"
	"github.com/fyrsmithlabs/repomind/internal/exclude"
)

func newTestService() *Service {
	return NewService(zap.NewNop())
}

func defaultOpts() Options {
	return Options{
		Matcher:   exclude.NewMatcher(nil, nil, 0),
		ChunkSize: 50,
		MaxFiles:  1000,
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWalk_Scenario(t *testing.T) {
	// Directory with main.py (function main, class App, 10 lines) and
	// README.md (one "# Title" heading, 3 lines), chunk size 50.
	tmpDir := t.TempDir()
	mainPy := `"""Example app."""

def main():
    app = App()
    app.run()

class App:
    def run(self):
        print("running")
        return 0
`
	writeFile(t, tmpDir, "main.py", mainPy)
	writeFile(t, tmpDir, "README.md", "# Title\n\nHello.\n")

	summary, records, err := newTestService().Walk(context.Background(), tmpDir, defaultOpts())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FilesProcessed)
	assert.Equal(t, filepath.Base(tmpDir), summary.Name)
	assert.True(t, filepath.IsAbs(summary.Path))
	require.Len(t, records, 2)

	// Lexical order: README.md before main.py.
	readme, mainRec := records[0], records[1]
	require.Equal(t, "README.md", readme.Path)
	require.Equal(t, "main.py", mainRec.Path)

	assert.Equal(t, "python", mainRec.Language)
	assert.Equal(t, 10, mainRec.Lines)
	assert.Equal(t, []string{"main"}, mainRec.Metadata.Functions)
	assert.Equal(t, []string{"App"}, mainRec.Metadata.Classes)
	require.Len(t, mainRec.Chunks, 1)
	assert.Equal(t, 1, mainRec.Chunks[0].StartLine)
	assert.Equal(t, 10, mainRec.Chunks[0].EndLine)

	assert.Equal(t, "markdown", readme.Language)
	assert.Equal(t, 3, readme.Lines)
	assert.Equal(t, []string{"Title"}, readme.Metadata.Headers)
	require.Len(t, readme.Chunks, 1)
	assert.Equal(t, 3, readme.Chunks[0].EndLine)
}

func TestWalk_MaxFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		writeFile(t, tmpDir, name, "content\n")
	}

	opts := defaultOpts()
	opts.MaxFiles = 1

	summary, records, err := newTestService().Walk(context.Background(), tmpDir, opts)
	require.NoError(t, err, "hitting the ceiling is not an error")
	assert.Equal(t, 1, summary.FilesProcessed)
	assert.Len(t, records, 1)
	assert.Equal(t, "a.txt", records[0].Path, "first file in lexical order wins")
}

func TestWalk_ExcludesSubtree(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "keep.py", "def keep():\n    pass\n")
	writeFile(t, tmpDir, "node_modules/dep/index.js", "module.exports = {}\n")
	writeFile(t, tmpDir, ".git/config", "[core]\n")
	writeFile(t, tmpDir, "tests/test_keep.py", "def test():\n    pass\n")

	opts := defaultOpts()
	opts.Matcher = exclude.NewMatcher([]string{"tests"}, nil, 0)

	summary, records, err := newTestService().Walk(context.Background(), tmpDir, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesProcessed)
	require.Len(t, records, 1)
	assert.Equal(t, "keep.py", records[0].Path)
}

func TestWalk_SkipsBinaryAndOversized(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "text.txt", "fine\n")
	writeFile(t, tmpDir, "blob.bin", "abc\x00def")
	// 101 KB exceeds the default 100 KB ceiling regardless of patterns.
	writeFile(t, tmpDir, "big.txt", strings.Repeat("a", 101*1024))

	summary, records, err := newTestService().Walk(context.Background(), tmpDir, defaultOpts())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.FilesProcessed)
	require.Len(t, records, 1)
	assert.Equal(t, "text.txt", records[0].Path)
}

func TestWalk_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "empty.txt", "")

	_, records, err := newTestService().Walk(context.Background(), tmpDir, defaultOpts())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 0, records[0].Lines)
	assert.Empty(t, records[0].Chunks, "zero-length file yields zero chunks")
}

func TestWalk_InvalidRoot(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), defaultOpts())
	assert.ErrorContains(t, err, "does not exist")

	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "file.txt", "x\n")
	_, _, err = svc.Walk(context.Background(), filepath.Join(tmpDir, "file.txt"), defaultOpts())
	assert.ErrorContains(t, err, "must be a directory")

	_, _, err = svc.Walk(context.Background(), "", defaultOpts())
	assert.Error(t, err)
}

func TestWalk_InvalidChunkSize(t *testing.T) {
	opts := defaultOpts()
	opts.ChunkSize = 0

	_, _, err := newTestService().Walk(context.Background(), t.TempDir(), opts)
	assert.ErrorContains(t, err, "chunk size")
}

func TestWalk_Deterministic(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "b/two.py", "def two():\n    pass\n")
	writeFile(t, tmpDir, "a/one.py", "def one():\n    pass\n")
	writeFile(t, tmpDir, "zero.md", "# Zero\n")

	svc := newTestService()
	_, first, err := svc.Walk(context.Background(), tmpDir, defaultOpts())
	require.NoError(t, err)
	_, second, err := svc.Walk(context.Background(), tmpDir, defaultOpts())
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i], "unchanged tree must walk identically")
	}
	assert.Equal(t, []string{"a/one.py", "b/two.py", "zero.md"}, paths(first))
}

func TestWalk_Cancellation(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "file.txt", "x\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestService().Walk(ctx, tmpDir, defaultOpts())
	assert.ErrorIs(t, err, context.Canceled)
}

func paths(records []digest.FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}
