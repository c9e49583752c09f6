package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/fileutil"
	"github.com/jaydendev/mdcard/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Configure GOMAXPROCS before any pool is sized.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(hasVerboseFlag(os.Args[1:]), env.Stderr)))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// maxprocsLogger prints automaxprocs decisions only in verbose mode.
func maxprocsLogger(verbose bool, w io.Writer) func(string, ...interface{}) {
	if !verbose {
		return func(string, ...interface{}) {}
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// hasVerboseFlag reports whether -v or --verbose appears before a "--" terminator.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches to a command and returns the process exit code.
// A bare Markdown path is shorthand for "card <path>".
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && looksLikeMarkdown(cmd) {
		cmd, rest = "card", args[1:]
	}

	var err error
	switch cmd {
	case "text":
		err = runText(ctx, rest, env)
	case "card":
		err = runCard(ctx, rest, env)
	case "themes":
		err = runThemes(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdcard %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// commands lists every top-level command name.
var commands = []string{"text", "card", "themes", "doctor", "completion", "version", "help"}

// isCommand reports whether name is a known command.
func isCommand(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}

// looksLikeMarkdown reports whether arg names a Markdown file.
func looksLikeMarkdown(arg string) bool {
	return fileutil.IsMarkdown(arg)
}

// withBrowserHints appends environment-specific hints to browser and timeout errors.
func withBrowserHints(err error) error {
	switch {
	case errors.Is(err, mdcard.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect(os.Getenv, hints.InContainer()))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, mdcard.ErrPageLoad):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}
