package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{}, // Empty - no config file
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Search.Workers)
	assert.Equal(t, 100000, cfg.Search.MaxResults)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.False(t, cfg.Search.IncludeHidden)
}

func TestLoad_PartialOverride_OtherValuesKeepDefaults(t *testing.T) {
	configJSON := `{"search": {"workers": 32}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/fd/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Search.Workers)
	assert.Equal(t, 100000, cfg.Search.MaxResults, "untouched keys keep defaults")
	assert.Equal(t, "auto", cfg.Output.Color)
}

func TestLoad_FullOverride_AllValuesReplaced(t *testing.T) {
	configJSON := `{
		"search": {"workers": 4, "include_hidden": true, "follow_links": true, "max_results": 500},
		"output": {"color": "never", "sort_results": true}
	}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/fd/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.True(t, cfg.Search.IncludeHidden)
	assert.True(t, cfg.Search.FollowLinks)
	assert.Equal(t, 500, cfg.Search.MaxResults)
	assert.Equal(t, "never", cfg.Output.Color)
	assert.True(t, cfg.Output.SortResults)
}

// --- ERROR PATH TESTS ---

func TestLoad_NoHomeDir_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Search.Workers)
}

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/fd/config.json": []byte(`{not json`),
		},
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoad_PermissionError_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValues_FailValidation(t *testing.T) {
	configJSON := `{"search": {"workers": 0}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/fd/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.workers")
}
