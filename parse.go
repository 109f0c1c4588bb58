package main

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// defaultPreamble is the banner length printed by VOTCA-style tools
	// ahead of the program description.
	defaultPreamble = 9

	// optionsHeader titles the literal block holding the option listing.
	optionsHeader = "Available Options"
)

// section is one titled block of the generated document.
type section struct {
	Header  string `yaml:"header"`
	Content string `yaml:"content"`
}

type parseOptions struct {
	// Preamble is the number of leading lines discarded unconditionally.
	Preamble int
}

func defaultParseOptions() parseOptions {
	return parseOptions{Preamble: defaultPreamble}
}

// parseHelp splits raw help output into a description section titled with
// name and an options section. After the preamble is dropped and empty lines
// are removed, the first line is the description and the rest is the option
// listing.
func parseHelp(text, name string, opts parseOptions) (section, section, error) {
	if name == "" {
		return section{}, section{}, errEmptyName
	}
	if opts.Preamble < 0 {
		return section{}, section{}, fmt.Errorf("%w: %d", errInvalidPreamble, opts.Preamble)
	}
	lines := splitLines(text)
	survivors := survivingLines(lines, opts.Preamble)
	if len(survivors) == 0 {
		return section{}, section{}, &inputTooShortError{Lines: len(lines), Preamble: opts.Preamble}
	}
	description := section{Header: name, Content: survivors[0]}
	options := section{Header: optionsHeader, Content: strings.Join(survivors[1:], "\n")}
	return description, options, nil
}

// survivingLines drops the first skip lines and every empty line after them.
// Lines holding only whitespace are kept.
func survivingLines(lines []string, skip int) []string {
	if skip >= len(lines) {
		return nil
	}
	var kept []string
	for _, line := range lines[skip:] {
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return kept
}

// splitLines breaks s at every line boundary, treating \r\n as one break.
// A trailing break does not yield a final empty line.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
