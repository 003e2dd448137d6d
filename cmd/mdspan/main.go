package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// commands lists the first-argument verbs understood by run.
var commands = []string{"format", "listing", "version", "help"}

func main() {
	env := DefaultEnv()
	os.Exit(runMain(os.Args, env))
}

// runMain runs the CLI and reports the error, with a hint when one
// applies. Returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args[1:], env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	}
	return exitCodeFor(err)
}

// run dispatches to a command. A first argument that is not a command
// but looks like an input file is treated as "format <args>".
func run(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: no command given", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	if !isCommand(cmd) && (looksLikeInput(cmd) || strings.HasPrefix(cmd, "-")) {
		cmd, rest = "format", args
	}

	switch cmd {
	case "format":
		return runFormat(ctx, rest, env)
	case "listing":
		return runListing(ctx, rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-mdspan %s\n", Version)
		return nil
	case "help":
		return runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// isCommand reports whether s names a command (case sensitive).
func isCommand(s string) bool {
	for _, c := range commands {
		if s == c {
			return true
		}
	}
	return false
}

// looksLikeInput reports whether s has an extension the format command reads.
func looksLikeInput(s string) bool {
	switch strings.ToLower(filepath.Ext(s)) {
	case ".md", ".markdown", ".txt":
		return true
	}
	return false
}

// setMaxProcs configures GOMAXPROCS for the container quota, logging the
// adjustment to w only in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
