// Package output renders matched entries to a stream: plain, colorized by
// file type, null-separated, or through a caller-supplied format function.
package output

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/juarezr/fd/internal/entry"
	"github.com/juarezr/fd/internal/filesystem"
)

// ColorMode selects when output is colorized.
type ColorMode int

const (
	// ColorAuto colorizes only when writing to a terminal.
	ColorAuto ColorMode = iota
	// ColorAlways colorizes unconditionally.
	ColorAlways
	// ColorNever disables colorization.
	ColorNever
)

// Per-filetype styles.
var (
	DirectoryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	SymlinkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	BrokenSymlinkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	ExecutableStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Colorize resolves a color mode against the destination stream.
func Colorize(mode ColorMode, dest *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isatty.IsTerminal(dest.Fd()) || isatty.IsCygwinTerminal(dest.Fd())
	}
}

// Options configures a Printer.
type Options struct {
	// Color enables per-filetype styling.
	Color bool
	// AbsolutePaths displays the absolute form of each path.
	AbsolutePaths bool
	// NullSeparator terminates lines with NUL instead of newline, for
	// consumption by xargs -0 and friends.
	NullSeparator bool
	// Format, when set, renders each entry instead of its path. Capture
	// substitution is wired through this hook.
	Format func(*entry.DirEntry) string
}

// Printer writes one line (or NUL-terminated record) per entry.
type Printer struct {
	w    io.Writer
	opts Options
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, opts Options) *Printer {
	return &Printer{w: w, opts: opts}
}

// Print renders one entry.
func (p *Printer) Print(e *entry.DirEntry) error {
	var text string
	switch {
	case p.opts.Format != nil:
		text = p.opts.Format(e)
	case p.opts.AbsolutePaths:
		abs, err := filesystem.AbsoluteForm(e.Path())
		if err != nil {
			return err
		}
		text = abs
	default:
		text = e.Path()
	}

	if p.opts.Color && p.opts.Format == nil {
		text = p.style(e).Render(text)
	}

	separator := "\n"
	if p.opts.NullSeparator {
		separator = "\x00"
	}

	_, err := fmt.Fprint(p.w, text, separator)
	return err
}

// style picks the style for an entry's file type. Symlinks without a
// traversal depth were recovered as dangling links and render as broken.
func (p *Printer) style(e *entry.DirEntry) lipgloss.Style {
	typ, ok := e.FileType()
	if !ok {
		return lipgloss.NewStyle()
	}

	switch {
	case typ.IsDir():
		return DirectoryStyle
	case typ&fs.ModeSymlink != 0:
		if _, walked := e.Depth(); !walked {
			return BrokenSymlinkStyle
		}
		return SymlinkStyle
	case typ.IsRegular() && isExecutable(e):
		return ExecutableStyle
	default:
		return lipgloss.NewStyle()
	}
}

func isExecutable(e *entry.DirEntry) bool {
	info := e.Metadata()
	return info != nil && info.Mode()&0o111 != 0
}
