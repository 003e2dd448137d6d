package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdspan <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  format     Annotate markdown files or stdin")
	fmt.Fprintln(w, "  listing    Annotate the markdown fields of a listing JSON document")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdspan help <command>' for details on a specific command.")
}

// printFormatUsage prints usage for the format command.
func printFormatUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdspan format [files...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Annotate markdown. Reads stdin when no file is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, or directory for several inputs")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printEngineUsage(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: json, yaml, text, html")
	fmt.Fprintln(w, "      --color <s>           Color mode: auto, always, never")
	fmt.Fprintln(w, "      --lexer <s>           Code block lexer for HTML (default: guess)")
	fmt.Fprintln(w)
	printOutputControlUsage(w)
}

// printListingUsage prints usage for the listing command.
func printListingUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdspan listing [file.json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add <field>_annotated objects next to the markdown fields of every")
	fmt.Fprintln(w, "listing item. Reads stdin when no file is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --fields <list>       Fields to annotate: body, description,")
	fmt.Fprintln(w, "                            public_description, selftext, title")
	fmt.Fprintln(w, "      --compact             Write compact JSON")
	fmt.Fprintln(w)
	printEngineUsage(w)
	printOutputControlUsage(w)
}

func printEngineUsage(w io.Writer) {
	fmt.Fprintln(w, "Formatting:")
	fmt.Fprintln(w, "      --base-url <url>      Base URL for /r/ and /u/ links")
	fmt.Fprintln(w, "      --placeholder <s>     Text that replaces tables (default \"[Table]\")")
	fmt.Fprintln(w, "      --no-normalize        Keep CRLF and CR line endings")
	fmt.Fprintln(w)
}

func printOutputControlUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "format":
		printFormatUsage(env.Stdout)
	case "listing":
		printListingUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdspan version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdspan help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
