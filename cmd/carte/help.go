package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: carte <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export     Assemble technical dossiers from project records")
	fmt.Fprintln(w, "  init       Write a project record with the default checklists")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'carte help <command>' for details on a specific command.")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: carte export <record.yaml>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assemble one PDF dossier per project record (YAML or JSON).")
	fmt.Fprintln(w, "Relative attachment paths are resolved against the record's directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timings and debug logs")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "      --stdout              Write the PDF to stdout (one record only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Attachments:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-attachment timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --max-size <n>        Max bytes per attachment")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent exports (0 = auto)")
	fmt.Fprintln(w, "      --prefetch <n>        Parallel fetches per export")
	fmt.Fprintln(w, "      --rate-limit <f>      Remote fetches per second")
	fmt.Fprintln(w, "      --s3-region <s>       AWS region for s3:// attachments")
	fmt.Fprintln(w, "      --s3-endpoint <url>   S3-compatible endpoint")
	fmt.Fprintln(w, "      --strict              Exit 4 when an attachment is not embedded")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Title page:")
	fmt.Fprintln(w, "      --title <s>           Heading (default: CARTEA TEHNICA)")
	fmt.Fprintln(w, "      --subtitle <s>        Subheading (default: A CONSTRUCTIEI)")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets: iso, ro, european, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CARTE_* variables override the config file; flags override both.")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success, 1 error, 2 usage, 3 I/O, 4 attachment (--strict), 5 assembly")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: carte init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a project record listing every checklist item, all excluded.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --template <name>     Checklist template (default: standard)")
	fmt.Fprintln(w, "      --templates <dir>     Directory with custom templates/<name>.yaml")
	fmt.Fprintln(w, "      --name <s>            Project name")
	fmt.Fprintln(w, "  -o, --output <file>       Record file to write (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: carte version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: carte help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
