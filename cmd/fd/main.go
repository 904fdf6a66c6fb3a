// Package main provides the fd command-line interface: walk a directory
// tree, match entries against a pattern, and print or act on the results.
package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/pflag"

	"github.com/juarezr/fd/internal/config"
	"github.com/juarezr/fd/internal/entry"
	"github.com/juarezr/fd/internal/execute"
	"github.com/juarezr/fd/internal/filesystem"
	"github.com/juarezr/fd/internal/filter"
	"github.com/juarezr/fd/internal/output"
	"github.com/juarezr/fd/internal/pattern"
	"github.com/juarezr/fd/internal/walk"
)

type cliOptions struct {
	pattern    string
	root       string
	fullPath   bool
	hidden     bool
	noIgnore   bool
	follow     bool
	maxDepth   int
	minDepth   int
	caseSens   bool
	ignoreCase bool
	fixed      bool
	types      []string
	extensions []string
	sizes      []string
	absolute   bool
	print0     bool
	color      string
	threads    int
	sorted     bool
	format     string
	execCmd    string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	re, err := pattern.Compile(opts.pattern, pattern.Options{
		Case:        caseMode(opts),
		FixedString: opts.fixed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	filters, err := buildFilters(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	osFS := filesystem.NewOSFileSystem()

	var ignore interface {
		ShouldIgnore(relativePath string, isDir bool) bool
	} = walk.NoOpIgnoreMatcher{}
	if !opts.noIgnore {
		matcher, err := walk.NewIgnoreMatcher(opts.root, osFS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load ignore rules: %v\n", err)
		} else {
			ignore = matcher
		}
	}

	walker := walk.NewWalker(osFS, ignore, walk.Options{
		MaxDepth:      opts.maxDepth,
		IncludeHidden: opts.hidden,
		FollowLinks:   opts.follow,
		Workers:       opts.threads,
	}, nil)

	printer := output.NewPrinter(os.Stdout, output.Options{
		Color:         output.Colorize(colorMode(opts.color), os.Stdout),
		AbsolutePaths: opts.absolute,
		NullSeparator: opts.print0,
		Format:        formatFunc(opts.format),
	})

	var template *execute.Template
	if opts.execCmd != "" {
		template, err = execute.NewTemplate(strings.Fields(opts.execCmd))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	return search(cfg, opts, re, filters, walker, printer, template)
}

// search runs the walk and consumes matched entries: sorted or streaming,
// printed or handed to the exec template.
func search(
	cfg *config.Config,
	opts *cliOptions,
	re *regexp.Regexp,
	filters filter.Chain,
	walker *walk.Walker,
	printer *output.Printer,
	template *execute.Template,
) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := execute.NewRunner(nil, nil)
	results := make(chan *entry.DirEntry, 256)

	consumeErr := make(chan int, 1)
	go func() {
		code := 0
		var sorted []*entry.DirEntry
		count := 0

		handle := func(e *entry.DirEntry) {
			if template != nil {
				if _, err := runner.Run(ctx, template.Expand(e)); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					code = 1
				}
				return
			}
			if err := printer.Print(e); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				code = 1
			}
		}

		for e := range results {
			if !filters.Keep(e) || !e.IsMatch(re, opts.fullPath) {
				continue
			}
			count++
			if count > cfg.Search.MaxResults {
				cancel()
				break
			}
			if opts.sorted {
				sorted = append(sorted, e)
				continue
			}
			handle(e)
		}
		for range results {
			// Drain after cancellation so workers never block.
		}

		if len(sorted) > 0 {
			entry.Sort(sorted)
			for _, e := range sorted {
				handle(e)
			}
		}
		consumeErr <- code
	}()

	err := walker.Walk(ctx, opts.root, func(e *entry.DirEntry) {
		select {
		case results <- e:
		case <-ctx.Done():
		}
	})
	close(results)
	code := <-consumeErr

	if err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

func parseFlags(args []string, cfg *config.Config) (*cliOptions, error) {
	opts := &cliOptions{
		hidden:  cfg.Search.IncludeHidden,
		follow:  cfg.Search.FollowLinks,
		threads: cfg.Search.Workers,
		color:   cfg.Output.Color,
		sorted:  cfg.Output.SortResults,
	}

	flags := pflag.NewFlagSet("fd", pflag.ContinueOnError)
	flags.BoolVarP(&opts.hidden, "hidden", "H", opts.hidden, "include hidden files and directories")
	flags.BoolVarP(&opts.noIgnore, "no-ignore", "I", false, "do not respect .gitignore rules")
	flags.BoolVarP(&opts.follow, "follow", "L", opts.follow, "follow symbolic links")
	flags.IntVarP(&opts.maxDepth, "max-depth", "d", 0, "maximum traversal depth")
	flags.IntVar(&opts.minDepth, "min-depth", 0, "minimum traversal depth")
	flags.BoolVarP(&opts.fullPath, "full-path", "p", false, "match the pattern against the full path")
	flags.BoolVarP(&opts.caseSens, "case-sensitive", "s", false, "case-sensitive matching")
	flags.BoolVarP(&opts.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	flags.BoolVarP(&opts.fixed, "fixed-strings", "F", false, "treat the pattern as a literal string")
	flags.StringSliceVarP(&opts.types, "type", "t", nil, "filter by type: f, d, l, x, e")
	flags.StringSliceVarP(&opts.extensions, "extension", "e", nil, "filter by file extension")
	flags.StringSliceVarP(&opts.sizes, "size", "S", nil, "filter by size, e.g. +1m or -500k")
	flags.BoolVarP(&opts.absolute, "absolute-path", "a", false, "print absolute paths")
	flags.BoolVarP(&opts.print0, "print0", "0", false, "separate results by the null character")
	flags.StringVarP(&opts.color, "color", "c", opts.color, "when to colorize: auto, always, never")
	flags.IntVarP(&opts.threads, "threads", "j", opts.threads, "number of traversal workers")
	flags.BoolVar(&opts.sorted, "sort", opts.sorted, "sort results by path")
	flags.StringVar(&opts.format, "format", "", "print entries with a placeholder template")
	flags.StringVarP(&opts.execCmd, "exec", "x", "", "execute a command template for each result")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	rest := flags.Args()
	if len(rest) < 1 {
		return nil, fmt.Errorf("a search pattern is required")
	}
	opts.pattern = rest[0]
	opts.root = "."
	if len(rest) > 1 {
		opts.root = rest[1]
	}

	switch opts.color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid --color value %q", opts.color)
	}

	return opts, nil
}

func caseMode(opts *cliOptions) pattern.CaseMode {
	switch {
	case opts.caseSens:
		return pattern.CaseSensitive
	case opts.ignoreCase:
		return pattern.CaseInsensitive
	default:
		return pattern.CaseSmart
	}
}

func colorMode(value string) output.ColorMode {
	switch value {
	case "always":
		return output.ColorAlways
	case "never":
		return output.ColorNever
	default:
		return output.ColorAuto
	}
}

func formatFunc(format string) func(*entry.DirEntry) string {
	if format == "" {
		return nil
	}
	return func(e *entry.DirEntry) string {
		return execute.ExpandFormat(format, e)
	}
}

func buildFilters(opts *cliOptions) (filter.Chain, error) {
	var chain filter.Chain

	if len(opts.types) > 0 {
		var tf filter.TypeFilter
		for _, t := range opts.types {
			switch t {
			case "f", "file":
				tf.File = true
			case "d", "directory":
				tf.Directory = true
			case "l", "symlink":
				tf.Symlink = true
			case "x", "executable":
				tf.Executable = true
			case "e", "empty":
				tf.Empty = true
			default:
				return nil, fmt.Errorf("invalid --type value %q", t)
			}
		}
		chain = append(chain, tf)
	}

	if len(opts.extensions) > 0 {
		chain = append(chain, filter.NewExtensionFilter(opts.extensions))
	}

	if len(opts.sizes) > 0 {
		constraints := make([]filter.SizeConstraint, 0, len(opts.sizes))
		for _, s := range opts.sizes {
			c, err := filter.ParseSizeConstraint(s)
			if err != nil {
				return nil, err
			}
			constraints = append(constraints, c)
		}
		chain = append(chain, filter.NewSizeFilter(constraints))
	}

	if opts.minDepth > 0 || opts.maxDepth > 0 {
		chain = append(chain, filter.DepthFilter{Min: opts.minDepth, Max: opts.maxDepth})
	}

	return chain, nil
}
