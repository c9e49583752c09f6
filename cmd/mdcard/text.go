package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/jaydendev/mdcard"
	"github.com/jaydendev/mdcard/internal/hints"
)

// Sentinel errors for the text command.
var (
	ErrTerminalInput = errors.New("no input: stdin is a terminal")
	ErrClipboard     = errors.New("failed to copy to clipboard")
	ErrWriteOutput   = errors.New("failed to write output file")
)

// stdinArg selects stdin explicitly.
const stdinArg = "-"

// runText converts one Markdown file (or stdin) to platform text.
// The text is written before the clipboard copy is attempted.
func runText(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseTextFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: text takes at most one input, got %d", ErrUsage, len(positional))
	}

	cfg, _, err := loadSettings(flags.common.config, env)
	if err != nil {
		return err
	}

	var input string
	if len(positional) == 1 {
		input = positional[0]
	}
	markdown, err := readTextInput(input, env)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	text := mdcard.PlatformText(markdown)

	if err := writeTextOutput(flags.output, text, env); err != nil {
		return err
	}

	if !flags.copy && !cfg.Text.Copy {
		return nil
	}
	if err := env.Clipboard(text); err != nil {
		return fmt.Errorf("%w: %v%s", ErrClipboard, err, hints.ForClipboard())
	}
	if !flags.common.quiet {
		fmt.Fprintln(env.Stderr, "Copied to clipboard")
	}
	return nil
}

// readTextInput reads Markdown from a file, or from stdin for "" and "-".
// Reading an interactive terminal is refused instead of blocking.
func readTextInput(path string, env *Environment) (string, error) {
	if path != "" && path != stdinArg {
		content, err := os.ReadFile(path) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		return string(content), nil
	}

	if env.StdinIsTTY != nil && env.StdinIsTTY() {
		return "", fmt.Errorf("%w%s", ErrTerminalInput, hints.ForTerminalInput())
	}

	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}
	return string(content), nil
}

// writeTextOutput writes text to path, or to stdout when path is empty.
// A trailing newline is added on write.
func writeTextOutput(path, text string, env *Environment) error {
	if path == "" {
		_, err := fmt.Fprintln(env.Stdout, text)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
	}
	// #nosec G306 -- text output is meant to be readable
	if err := os.WriteFile(path, []byte(text+"\n"), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
