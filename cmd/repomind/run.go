package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/repomind/internal/exclude"
	"github.com/fyrsmithlabs/repomind/internal/history"
	"github.com/fyrsmithlabs/repomind/internal/ignore"
	"github.com/fyrsmithlabs/repomind/internal/logging"
	"github.com/fyrsmithlabs/repomind/internal/render"
	"github.com/fyrsmithlabs/repomind/internal/walker"
)

// runRoot executes the full pipeline: configure, walk, aggregate history,
// render, write. Configuration errors surface before any traversal; the
// output file is written once, at the end, unless --dry-run is set.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.NewDefaultConfig(cfg.Verbose))
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync errors are harmless
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	root := args[0]
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var ignorePatterns []string
	if cfg.Gitignore {
		ignorePatterns, err = ignore.Patterns(root, nil)
		if err != nil {
			return fmt.Errorf("reading ignore files: %w", err)
		}
		logger.Debug("loaded ignore rules", zap.Int("patterns", len(ignorePatterns)))
	}

	matcher := exclude.NewMatcher(cfg.Exclude, ignorePatterns, 0)
	svc := walker.NewService(logger)

	logger.Info("processing repository",
		zap.String("path", root),
		zap.String("format", cfg.Format))

	summary, records, err := svc.Walk(cmd.Context(), root, walker.Options{
		Matcher:   matcher,
		ChunkSize: cfg.ChunkSize,
		MaxFiles:  cfg.MaxFiles,
	})
	if err != nil {
		return err
	}
	logger.Info("walk complete", zap.Int("files_processed", summary.FilesProcessed))

	if cfg.GitHistory {
		hist, err := history.Aggregate(summary.Path, cfg.GitCommits)
		if err != nil {
			return fmt.Errorf("aggregating history: %w", err)
		}
		if hist == nil {
			logger.Warn("git history requested but path is not a git repository")
		}
		summary.History = hist
	}

	out, err := render.Render(summary, records, format)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		logger.Info("dry run, no output written")
		return nil
	}

	outputPath := cfg.OutputPath()
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("output written",
		zap.String("path", outputPath),
		zap.Int("bytes", len(out)))
	return nil
}
