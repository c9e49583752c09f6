// Package process terminates the headless browser used for card export
// together with its child processes.
package process
