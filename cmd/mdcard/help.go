package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdcard <command> [flags] [args]")
	fmt.Fprintln(w, "       mdcard <file.md> [flags]      (same as: mdcard card <file.md>)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  card        Export markdown files as card images")
	fmt.Fprintln(w, "  text        Convert markdown to WeChat-ready plain text")
	fmt.Fprintln(w, "  themes      List or show card themes")
	fmt.Fprintln(w, "  doctor      Check system configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdcard help <command>' for details on a specific command.")
}

// printCardUsage prints usage for the card command.
func printCardUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdcard card <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export markdown files as PNG card images.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Appearance:")
	fmt.Fprintln(w, "      --theme <name>        Card theme (see 'mdcard themes')")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom themes, styles, and templates")
	fmt.Fprintln(w, "      --width <px>          Card width in CSS pixels (320-1600)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Watermark:")
	fmt.Fprintln(w, "      --wm-text <s>         Watermark text (max 50 characters)")
	fmt.Fprintln(w, "      --no-watermark        Disable watermark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export:")
	fmt.Fprintln(w, "      --pixel-ratio <f>     Device pixel ratio (1-4, default: 2)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                Also write the card HTML")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PNG")
	fmt.Fprintln(w, "      --text                Also write platform text (.txt)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Files are written as <name>@<ratio>x.png next to the input,")
	fmt.Fprintln(w, "or under --output when set.")
}

// printTextUsage prints usage for the text command.
func printTextUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdcard text [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown to plain text for WeChat. Reads stdin when input is")
	fmt.Fprintln(w, "omitted or \"-\".")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "      --copy                Also copy the text to the clipboard")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdcard themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available card themes. The default theme is marked with *.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --show <name>         Print a theme definition as YAML")
	fmt.Fprintln(w, "      --asset-path <dir>    Include themes from a custom asset directory")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "card":
		printCardUsage(env.Stdout)
	case "text":
		printTextUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdcard version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdcard help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

// printDoctorUsage prints the doctor command usage.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdcard doctor [--json] [--asset-path dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that this host can export cards: Chrome and its sandbox,")
	fmt.Fprintln(w, "temp directory, clipboard, MDCARD_CONFIG and every theme.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json              Print the report as JSON")
	fmt.Fprintln(w, "      --asset-path dir    Check custom themes under dir as well")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 1 when any error is found; warnings exit 0.")
}
