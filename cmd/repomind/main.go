// Package main implements the repomind CLI.
//
// repomind turns a source repository on disk into a structured,
// size-bounded digest for LLM consumption, in Markdown, JSON, or XML.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/repomind/internal/config"
)

var version = "dev"

var flags = struct {
	configPath string
	format     string
	output     string
	exclude    []string
	gitignore  bool
	gitHistory bool
	gitCommits int
	chunkSize  int
	maxFiles   int
	dryRun     bool
	verbose    bool
}{}

var rootCmd = &cobra.Command{
	Use:   "repomind PATH",
	Short: "Turn a repository into an AI-friendly summary",
	Long: `repomind converts a source repository into a structured digest:
eligible files are discovered under exclusion rules, classified by type,
summarized (functions, classes, headers, instructions), and split into
bounded chunks. Output is Markdown, JSON, or XML under one shared schema.

Examples:
  # Summarize the current directory as Markdown
  repomind .

  # JSON output with custom exclusions
  repomind ./my-repo --format json --exclude 'tests' --exclude '*.log'

  # Respect .gitignore and include recent git history
  repomind . --gitignore --git-history --git-commits 10

  # Validate a run without writing anything
  repomind /path/to/repo --dry-run --verbose`,
	Version:      version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/repomind/config.yaml)")
	f.StringVarP(&flags.format, "format", "f", config.DefaultFormat, "output format: md, json, or xml")
	f.StringVarP(&flags.output, "output", "o", "", "output file path (default ./repomind_output.<ext>)")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "exclusion pattern, repeatable")
	f.BoolVar(&flags.gitignore, "gitignore", false, "also apply .gitignore rules")
	f.BoolVar(&flags.gitHistory, "git-history", false, "include a git history summary")
	f.IntVar(&flags.gitCommits, "git-commits", config.DefaultGitCommits, "max commits in the history summary")
	f.IntVar(&flags.chunkSize, "chunk-size", config.DefaultChunkSize, "lines per chunk (must be >= 1)")
	f.IntVar(&flags.maxFiles, "max-files", config.DefaultMaxFiles, "max files to process")
	f.BoolVar(&flags.dryRun, "dry-run", false, "do everything except writing output")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
}

// loadConfig merges file/env configuration with explicitly set flags.
// Flags take highest precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}

	set := cmd.Flags().Changed
	if set("format") {
		cfg.Format = flags.format
	}
	if set("output") {
		cfg.Output = flags.output
	}
	if set("exclude") {
		cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	}
	if set("gitignore") {
		cfg.Gitignore = flags.gitignore
	}
	if set("git-history") {
		cfg.GitHistory = flags.gitHistory
	}
	if set("git-commits") {
		cfg.GitCommits = flags.gitCommits
	}
	if set("chunk-size") {
		cfg.ChunkSize = flags.chunkSize
	}
	if set("max-files") {
		cfg.MaxFiles = flags.maxFiles
	}
	if set("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if set("verbose") {
		cfg.Verbose = flags.verbose
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
