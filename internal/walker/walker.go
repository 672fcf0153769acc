package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/repomind/internal/chunk"
	"github.com/fyrsmithlabs/repomind/internal/digest"
	"github.com/fyrsmithlabs/repomind/internal/exclude"
	"github.com/fyrsmithlabs/repomind/internal/extract"
	"github.com/fyrsmithlabs/repomind/internal/language"
)

// Options configures one walk. The zero value is not usable; callers
// build it from a validated run configuration.
type Options struct {
	// Matcher is the active exclusion rule set. Required.
	Matcher *exclude.Matcher

	// ChunkSize is the number of lines per chunk. Must be >= 1;
	// validated before the walk starts.
	ChunkSize int

	// MaxFiles caps how many files are processed. Reaching the cap
	// stops traversal early; the partial result is still valid.
	MaxFiles int
}

// Service walks a repository tree and produces the digest records.
//
// Processing is sequential: one file is classified, extracted, and
// chunked before the next begins. The only state that spans files is the
// append-only record slice.
type Service struct {
	logger *zap.Logger
}

// NewService creates a walker. logger may be zap.NewNop() for tests.
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// errStopWalk terminates traversal once the file ceiling is reached.
var errStopWalk = errors.New("walk stopped")

// Walk traverses root and returns the repository summary plus one record
// per accepted file, in deterministic lexical order.
//
// Per-file errors (unreadable files, extraction failures) are isolated:
// the file is skipped or degraded and the walk continues. Only an invalid
// root or context cancellation fails the walk.
func (s *Service) Walk(ctx context.Context, root string, opts Options) (digest.RepoSummary, []digest.FileRecord, error) {
	absRoot, err := validateRoot(root)
	if err != nil {
		return digest.RepoSummary{}, nil, err
	}
	if opts.ChunkSize < 1 {
		return digest.RepoSummary{}, nil, fmt.Errorf("chunk size must be >= 1, got %d", opts.ChunkSize)
	}

	var records []digest.FileRecord
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			s.logger.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == absRoot {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return fmt.Errorf("computing relative path: %w", err)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if opts.Matcher.Excluded(rel, true) {
				s.logger.Debug("excluding directory", zap.String("path", rel))
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if opts.MaxFiles > 0 && len(records) >= opts.MaxFiles {
			s.logger.Warn("file ceiling reached, stopping early", zap.Int("max_files", opts.MaxFiles))
			return errStopWalk
		}

		if record, ok := s.processFile(path, rel, opts); ok {
			records = append(records, record)
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return digest.RepoSummary{}, nil, fmt.Errorf("walking file tree: %w", err)
	}

	summary := digest.RepoSummary{
		Name:           filepath.Base(absRoot),
		Path:           absRoot,
		GeneratedAt:    time.Now().UTC(),
		FilesProcessed: len(records),
	}
	return summary, records, nil
}

// processFile runs the per-file pipeline: exclusion by size and content,
// classification, extraction, chunking. Returns false when the file is
// skipped. All stages read the same decoded content; size and line count
// are computed from that one byte stream.
func (s *Service) processFile(path, rel string, opts Options) (digest.FileRecord, bool) {
	if opts.Matcher.Excluded(rel, false) {
		s.logger.Debug("excluding file", zap.String("path", rel))
		return digest.FileRecord{}, false
	}

	info, err := os.Stat(path)
	if err != nil {
		s.logger.Debug("skipping unreadable file", zap.String("path", rel), zap.Error(err))
		return digest.FileRecord{}, false
	}
	if opts.Matcher.OverSize(info.Size()) {
		s.logger.Debug("skipping oversized file",
			zap.String("path", rel), zap.Int64("size", info.Size()))
		return digest.FileRecord{}, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		s.logger.Debug("skipping unreadable file", zap.String("path", rel), zap.Error(err))
		return digest.FileRecord{}, false
	}
	if exclude.Binary(raw) {
		s.logger.Debug("skipping binary file", zap.String("path", rel))
		return digest.FileRecord{}, false
	}

	content := string(raw)
	tag := language.Classify(rel, content)

	record := digest.FileRecord{
		Path:      rel,
		Language:  string(tag),
		SizeBytes: len(raw),
		Lines:     len(chunk.Lines(content)),
		Metadata:  extract.Extract(tag, content),
		Chunks:    chunk.Split(content, opts.ChunkSize),
	}
	s.logger.Debug("processed file",
		zap.String("path", rel),
		zap.String("language", record.Language),
		zap.Int("lines", record.Lines),
		zap.Int("chunks", len(record.Chunks)))
	return record, true
}

// validateRoot checks the repository root before traversal begins.
func validateRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("repository path cannot be empty")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("path does not exist: %s", abs)
		}
		return "", fmt.Errorf("stat path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path must be a directory: %s", abs)
	}
	return abs, nil
}
