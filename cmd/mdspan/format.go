package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdspan"
	"github.com/alnah/go-mdspan/internal/config"
	"github.com/alnah/go-mdspan/internal/fileutil"
	"github.com/alnah/go-mdspan/internal/hints"
)

// runFormat annotates the given markdown files, or stdin when none is given.
func runFormat(ctx context.Context, args []string, env *Environment) error {
	flags, files, err := parseFormatFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	cfg, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	mergeEngineFlags(flags.engine, cfg)
	mergeRenderFlags(flags.render, cfg)
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return err
	}

	formatter, err := newFormatter(cfg)
	if err != nil {
		return err
	}

	var stream io.Writer
	if flags.output == "" {
		stream = env.Stdout
	}
	enc := newEncoder(cfg, stream, env)
	if flags.common.verbose && cfg.Output.Format == config.FormatText &&
		cfg.Output.Color == config.ColorAuto && !enc.color {
		fmt.Fprintf(env.Stderr, "color disabled: output is not a terminal%s\n", hints.ForColor())
	}

	if len(files) == 0 || (len(files) == 1 && files[0] == "-") {
		return formatStdin(formatter, flags, enc, env)
	}

	jobs, err := planJobs(files, flags.output, enc.Extension())
	if err != nil {
		return err
	}

	poolSize := resolvePoolSize(cfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", poolSize)
	}

	results := formatBatch(ctx, poolSize, formatter, enc, jobs)
	return reportResults(results, flags, enc, env)
}

// formatStdin annotates stdin and writes to --output or stdout.
func formatStdin(formatter *mdspan.Formatter, flags *formatFlags, enc *encoder, env *Environment) error {
	start := env.Now()

	content, err := fileutil.ReadInput(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}

	res, err := formatter.Format(string(content))
	if err != nil {
		return fmt.Errorf("stdin: %w", err)
	}
	out, err := enc.Encode(res)
	if err != nil {
		return err
	}

	if flags.output == "" {
		if _, err := env.Stdout.Write(out); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	} else if err := writeOutputFile(flags.output, out); err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "stdin: %d annotations (%v)\n",
			len(res.Annotations), env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// writeOutputFile writes out to path, creating its directory.
func writeOutputFile(path string, out []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err)
	}
	if err := fileutil.WriteFileAtomic(path, out); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// planJobs maps inputs to output paths.
//   - no output: results are streamed to stdout
//   - one input and output is not a directory: output is the file
//   - otherwise output is a directory holding <base>.<ext> per input
func planJobs(files []string, output, ext string) ([]Job, error) {
	jobs := make([]Job, 0, len(files))

	if output == "" {
		for _, f := range files {
			jobs = append(jobs, Job{InputPath: f})
		}
		return jobs, nil
	}

	asDir := len(files) > 1 || fileutil.DirExists(output) ||
		strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator))
	if !asDir {
		return []Job{{InputPath: files[0], OutputPath: output}}, nil
	}

	seen := make(map[string]string, len(files))
	for _, f := range files {
		out, err := fileutil.OutputPath(output, f, ext)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrUsage, prev, f, out)
		}
		seen[out] = f
		jobs = append(jobs, Job{InputPath: f, OutputPath: out})
	}
	return jobs, nil
}

// reportResults streams in-memory outputs to stdout in input order and
// prints per-input status. Returns an error wrapping the first failure.
func reportResults(results []JobResult, flags *formatFlags, enc *encoder, env *Environment) error {
	// Stdout carries data when no --output is set, so status goes to stderr.
	status := env.Stdout
	if flags.output == "" {
		status = env.Stderr
	}

	var succeeded, failed int
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.InputPath, r.Err)
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.OutputPath == "" {
			if succeeded > 0 {
				fmt.Fprint(env.Stdout, enc.Separator())
			}
			if _, err := env.Stdout.Write(r.Output); err != nil {
				return fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}
		}
		succeeded++

		switch {
		case flags.common.verbose:
			target := r.OutputPath
			if target == "" {
				target = "stdout"
			}
			fmt.Fprintf(status, "%s -> %s (%d annotations, %v)\n",
				r.InputPath, target, r.Annotations, r.Duration.Round(time.Millisecond))
		case !flags.common.quiet && r.OutputPath != "":
			fmt.Fprintf(status, "Created %s\n", r.OutputPath)
		}
	}

	if !flags.common.quiet && len(results) > 1 {
		fmt.Fprintf(status, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d input(s) failed: %w", failed, len(results), firstErr)
	}
	return nil
}
