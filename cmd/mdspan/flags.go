package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags holds flags passed to the formatter.
type engineFlags struct {
	baseURL     string
	placeholder string
	noNormalize bool
}

// renderFlags holds output rendering flags.
type renderFlags struct {
	format string
	color  string
	lexer  string
}

// formatFlags holds all flags for the format command.
type formatFlags struct {
	common  commonFlags
	engine  engineFlags
	render  renderFlags
	output  string
	workers int
}

// listingFlags holds all flags for the listing command.
type listingFlags struct {
	common  commonFlags
	engine  engineFlags
	output  string
	fields  []string
	compact bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addEngineFlags adds formatter flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVar(&f.baseURL, "base-url", "", "base URL for /r/ and /u/ links")
	fs.StringVar(&f.placeholder, "placeholder", "", "text that replaces tables (default \"[Table]\")")
	fs.BoolVar(&f.noNormalize, "no-normalize", false, "keep CRLF and CR line endings")
}

// addRenderFlags adds output rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "output format: json, yaml, text, html")
	fs.StringVar(&f.color, "color", "", "color mode: auto, always, never")
	fs.StringVar(&f.lexer, "lexer", "", "lexer for code blocks in HTML (default: guess)")
}

// newFlagSet creates a FlagSet whose errors and usage go to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFormatFlags parses format command flags and returns positional args.
func parseFormatFlags(args []string, w io.Writer) (*formatFlags, []string, error) {
	f := &formatFlags{}
	fs := newFlagSet("format", w, printFormatUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	addRenderFlags(fs, &f.render)

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapParseError(err)
	}
	return f, fs.Args(), nil
}

// parseListingFlags parses listing command flags and returns positional args.
func parseListingFlags(args []string, w io.Writer) (*listingFlags, []string, error) {
	f := &listingFlags{}
	fs := newFlagSet("listing", w, printListingUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.StringSliceVar(&f.fields, "fields", nil, "listing fields to annotate (default: all)")
	fs.BoolVar(&f.compact, "compact", false, "write compact JSON")

	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapParseError(err)
	}
	return f, fs.Args(), nil
}

// wrapParseError tags flag errors as usage errors, leaving ErrHelp intact.
func wrapParseError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
