package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juarezr/fd/internal/config"
	"github.com/juarezr/fd/internal/pattern"
)

func TestParseFlags_PatternAndRoot(t *testing.T) {
	cfg := config.DefaultConfig()

	opts, err := parseFlags([]string{"needle", "some/dir"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, "needle", opts.pattern)
	assert.Equal(t, "some/dir", opts.root)

	opts, err = parseFlags([]string{"needle"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, ".", opts.root, "root defaults to the working directory")
}

func TestParseFlags_PatternRequired(t *testing.T) {
	_, err := parseFlags(nil, config.DefaultConfig())
	assert.Error(t, err)
}

func TestParseFlags_ConfigProvidesDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.Workers = 3
	cfg.Search.IncludeHidden = true
	cfg.Output.Color = "never"

	opts, err := parseFlags([]string{"x"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.threads)
	assert.True(t, opts.hidden)
	assert.Equal(t, "never", opts.color)
}

func TestParseFlags_FlagsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.Workers = 3

	opts, err := parseFlags([]string{"-j", "16", "--color", "always", "-H", "x"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 16, opts.threads)
	assert.Equal(t, "always", opts.color)
	assert.True(t, opts.hidden)
}

func TestParseFlags_InvalidColor(t *testing.T) {
	_, err := parseFlags([]string{"--color", "rainbow", "x"}, config.DefaultConfig())
	assert.Error(t, err)
}

func TestCaseMode(t *testing.T) {
	assert.Equal(t, pattern.CaseSmart, caseMode(&cliOptions{}))
	assert.Equal(t, pattern.CaseSensitive, caseMode(&cliOptions{caseSens: true}))
	assert.Equal(t, pattern.CaseInsensitive, caseMode(&cliOptions{ignoreCase: true}))
}

func TestBuildFilters_Types(t *testing.T) {
	chain, err := buildFilters(&cliOptions{types: []string{"f", "directory"}})
	require.NoError(t, err)
	assert.Len(t, chain, 1)

	_, err = buildFilters(&cliOptions{types: []string{"z"}})
	assert.Error(t, err)
}

func TestBuildFilters_Sizes(t *testing.T) {
	chain, err := buildFilters(&cliOptions{sizes: []string{"+1k", "-1m"}})
	require.NoError(t, err)
	assert.Len(t, chain, 1)

	_, err = buildFilters(&cliOptions{sizes: []string{"huge"}})
	assert.Error(t, err)
}

func TestBuildFilters_DepthBoundsOnlyWhenSet(t *testing.T) {
	chain, err := buildFilters(&cliOptions{})
	require.NoError(t, err)
	assert.Empty(t, chain)

	chain, err = buildFilters(&cliOptions{minDepth: 2, maxDepth: 5})
	require.NoError(t, err)
	assert.Len(t, chain, 1)
}
