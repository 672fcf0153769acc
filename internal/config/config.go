// Package config provides run configuration for repomind.
//
// Configuration precedence (highest to lowest):
//  1. Command-line flags
//  2. Environment variables (REPOMIND_FORMAT, REPOMIND_CHUNK_SIZE, ...)
//  3. YAML config file (~/.config/repomind/config.yaml)
//  4. Hardcoded defaults
//
// The resulting Config is an immutable value threaded into the walker and
// exclusion matcher at construction; its lifecycle is one run.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces repomind environment variables.
const envPrefix = "REPOMIND_"

// maxConfigFileSize caps the config file to keep loading bounded.
const maxConfigFileSize = 1024 * 1024

// Defaults mirrored in flag help text.
const (
	DefaultFormat     = "md"
	DefaultGitCommits = 20
	DefaultChunkSize  = 50
	DefaultMaxFiles   = 1000
)

// Config holds every knob for one run.
type Config struct {
	// Format is the output format: md, json, or xml.
	Format string `koanf:"format"`

	// Output is the output file path. Empty selects
	// ./repomind_output.<ext> at write time.
	Output string `koanf:"output"`

	// Exclude are user-supplied exclusion patterns, unioned with the
	// always-on defaults.
	Exclude []string `koanf:"exclude"`

	// Gitignore enables the ignore-file rule source.
	Gitignore bool `koanf:"gitignore"`

	// GitHistory enables the history aggregator.
	GitHistory bool `koanf:"git_history"`

	// GitCommits bounds the history summary size.
	GitCommits int `koanf:"git_commits"`

	// ChunkSize is lines per chunk. Must be >= 1.
	ChunkSize int `koanf:"chunk_size"`

	// MaxFiles is the traversal ceiling.
	MaxFiles int `koanf:"max_files"`

	// DryRun performs every step except the final write.
	DryRun bool `koanf:"dry_run"`

	// Verbose enables debug logging. Diagnostic only; it never changes
	// output content.
	Verbose bool `koanf:"verbose"`
}

// New returns a Config populated with defaults.
func New() Config {
	return Config{
		Format:     DefaultFormat,
		GitCommits: DefaultGitCommits,
		ChunkSize:  DefaultChunkSize,
		MaxFiles:   DefaultMaxFiles,
	}
}

// Validate checks the configuration before any traversal begins.
// Violations here are fatal configuration errors.
func (c Config) Validate() error {
	switch c.Format {
	case "md", "json", "xml":
	default:
		return fmt.Errorf("invalid format %q (want md, json, or xml)", c.Format)
	}
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be >= 1, got %d", c.ChunkSize)
	}
	if c.MaxFiles < 1 {
		return fmt.Errorf("max files must be >= 1, got %d", c.MaxFiles)
	}
	if c.GitCommits < 1 {
		return fmt.Errorf("git commits must be >= 1, got %d", c.GitCommits)
	}
	return nil
}

// OutputPath resolves the output destination for the run.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return fmt.Sprintf("./repomind_output.%s", c.Format)
}

// Load builds a Config from the YAML file at configPath (default path when
// empty), overridden by REPOMIND_* environment variables. A missing config
// file is fine; defaults apply.
func Load(configPath string) (Config, error) {
	k := koanf.New(".")

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolving home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "repomind", "config.yaml")
	}

	content, err := readConfigFile(configPath)
	if err != nil {
		return Config{}, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// REPOMIND_GIT_COMMITS -> git_commits, REPOMIND_FORMAT -> format.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment variables: %w", err)
	}

	cfg := New()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// readConfigFile returns the file content, or nil when the file does not
// exist. The file is opened once and validated through its descriptor.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return content, nil
}
