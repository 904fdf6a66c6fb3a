package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
		ok   bool
	}{
		{"plain file", "report.txt", "report.txt", true},
		{"nested file", "a/b/report.txt", "report.txt", true},
		{"trailing separator", "a/b/", "b", true},
		{"absolute", "/usr/bin/env", "env", true},
		{"dotfile", "a/.hidden", ".hidden", true},
		{"root", "/", "", false},
		{"empty", "", "", false},
		{"current dir", ".", "", false},
		{"parent dir", "..", "", false},
		{"parent suffix", "foo/bar/..", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FileName(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAbsoluteForm(t *testing.T) {
	abs, err := AbsoluteForm("/already/absolute/../absolute/file")
	require.NoError(t, err)
	assert.Equal(t, "/already/absolute/file", abs)

	rel, err := AbsoluteForm("some/file")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(rel))
	assert.Equal(t, "file", filepath.Base(rel))
}

func TestPathBytes_Lossless(t *testing.T) {
	raw := "dir/pre\xff\xfepost"
	assert.Equal(t, []byte(raw), PathBytes(raw))
	assert.Equal(t, raw, string(PathBytes(raw)))
}

func TestOSFileSystem_StatAndLstatDifferOnSymlinks(t *testing.T) {
	dir := t.TempDir()
	osFS := NewOSFileSystem()

	target := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(target, []byte("hello"), 0o644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	followed, err := osFS.Stat(link)
	require.NoError(t, err)
	assert.True(t, followed.Mode().IsRegular())

	notFollowed, err := osFS.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, notFollowed.Mode()&os.ModeSymlink)
}
