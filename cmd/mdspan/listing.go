package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdspan/internal/fileutil"
	"github.com/alnah/go-mdspan/internal/listing"
)

// runListing annotates the markdown fields of a listing document.
func runListing(ctx context.Context, args []string, env *Environment) error {
	flags, files, err := parseListingFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(files) > 1 {
		return fmt.Errorf("%w: listing takes one input, got %d", ErrUsage, len(files))
	}

	cfg, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	mergeEngineFlags(flags.engine, cfg)
	if len(flags.fields) > 0 {
		cfg.Listing.Fields = flags.fields
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	annotator, err := listing.NewAnnotator(formatter, cfg.Listing.Fields)
	if err != nil {
		return err
	}

	start := env.Now()
	name := "stdin"
	var doc []byte
	if len(files) == 0 || files[0] == "-" {
		doc, err = fileutil.ReadInput(env.Stdin)
	} else {
		name = files[0]
		doc, err = fileutil.ReadFile(name)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadInput, name, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	out, n, err := annotator.Annotate(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	color := flags.output == "" && colorEnabled(cfg.Output.Color, env.Stdout, env)
	out = prettyJSON(out, flags.compact, color)

	if flags.output == "" {
		if _, err := env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	} else {
		if err := writeOutputFile(flags.output, out); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
		}
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%s: %d field(s) annotated (%v)\n",
			name, n, env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}
