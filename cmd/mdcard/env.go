package main

import (
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"

	"github.com/jaydendev/mdcard"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, terminal detection, the clipboard and pool creation.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	StdinIsTTY func() bool
	Clipboard  func(text string) error
	NewPool    func(size int, opts ...mdcard.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Stdin:      os.Stdin,
		StdinIsTTY: stdinIsTerminal,
		Clipboard:  clipboard.WriteAll,
		NewPool:    newPoolAdapter,
	}
}

// stdinIsTerminal reports whether stdin is an interactive terminal.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
