package main

import (
	"errors"
	"fmt"
)

var (
	// errInputTooShort reports help text with no lines left after the
	// preamble is discarded and blank lines are dropped.
	errInputTooShort = errors.New("help text too short")

	// errEmptyName reports a missing program name.
	errEmptyName = errors.New("program name is required")

	// errInvalidPreamble reports a preamble that is negative or not an integer.
	errInvalidPreamble = errors.New("invalid preamble")

	// errInvalidTimeout reports a timeout that is negative or not a duration.
	errInvalidTimeout = errors.New("invalid timeout")

	// errCommandFailed reports that the target program could not produce
	// its help text.
	errCommandFailed = errors.New("command failed")
)

// inputTooShortError carries the line counts behind errInputTooShort.
type inputTooShortError struct {
	Lines    int
	Preamble int
}

func (e *inputTooShortError) Error() string {
	return fmt.Sprintf("help text too short: %d line(s), all consumed by the %d-line preamble or blank", e.Lines, e.Preamble)
}

func (e *inputTooShortError) Is(target error) bool {
	return target == errInputTooShort
}

// commandError describes a failed help invocation. ExitCode is -1 when the
// program never exited normally (not found, killed, timed out).
type commandError struct {
	Program  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *commandError) Error() string {
	msg := fmt.Sprintf("running %q", e.Program)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *commandError) Is(target error) bool {
	return target == errCommandFailed
}

func (e *commandError) Unwrap() error {
	return e.Err
}
