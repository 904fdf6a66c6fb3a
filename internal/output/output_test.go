package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juarezr/fd/internal/entry"
)

type nopStatter struct{}

func (nopStatter) Stat(path string) (os.FileInfo, error)  { return nil, os.ErrNotExist }
func (nopStatter) Lstat(path string) (os.FileInfo, error) { return nil, os.ErrNotExist }

func testEntry(path string) *entry.DirEntry {
	return entry.NewWalked(nopStatter{}, entry.WalkedHandle{Path: path, Depth: 1})
}

func TestPrinter_PlainPaths(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{})

	require.NoError(t, p.Print(testEntry("src/main.go")))
	require.NoError(t, p.Print(testEntry("README.md")))

	assert.Equal(t, "src/main.go\nREADME.md\n", buf.String())
}

func TestPrinter_NullSeparator(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{NullSeparator: true})

	require.NoError(t, p.Print(testEntry("a b.txt")))
	require.NoError(t, p.Print(testEntry("c.txt")))

	assert.Equal(t, "a b.txt\x00c.txt\x00", buf.String())
}

func TestPrinter_AbsolutePaths(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{AbsolutePaths: true})

	require.NoError(t, p.Print(testEntry("/var/log/../log/syslog")))
	assert.Equal(t, "/var/log/syslog\n", buf.String())
}

func TestPrinter_FormatHook(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{
		Format: func(e *entry.DirEntry) string { return "<" + e.Path() + ">" },
	})

	require.NoError(t, p.Print(testEntry("x.txt")))
	assert.Equal(t, "<x.txt>\n", buf.String())
}

func TestPrinter_ColorKeepsPathTextIntact(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Options{Color: true})

	require.NoError(t, p.Print(testEntry("src/main.go")))
	assert.Contains(t, buf.String(), "src/main.go")
}

func TestColorize(t *testing.T) {
	assert.True(t, Colorize(ColorAlways, os.Stdout))
	assert.False(t, Colorize(ColorNever, os.Stdout))
	// ColorAuto depends on whether the test runner's stdout is a terminal;
	// both outcomes are legal, the call just must not panic.
	_ = Colorize(ColorAuto, os.Stdout)
}
