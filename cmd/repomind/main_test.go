package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagsTakePrecedence(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // avoid picking up a real config file

	require.NoError(t, rootCmd.ParseFlags([]string{
		"--format", "json",
		"--chunk-size", "5",
		"--exclude", "tests",
		"--dry-run",
	}))

	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 5, cfg.ChunkSize)
	assert.Contains(t, cfg.Exclude, "tests")
	assert.True(t, cfg.DryRun)
}

func TestLoadConfig_RejectsInvalidChunkSize(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, rootCmd.ParseFlags([]string{"--chunk-size", "0"}))

	_, err := loadConfig(rootCmd)
	assert.ErrorContains(t, err, "chunk size")
}
