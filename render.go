package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// literalIndent marks every option line as part of an RST literal block.
const literalIndent = "  "

type rstRenderer struct {
	description section
	options     section
}

func (r *rstRenderer) render(w io.Writer) {
	r.renderTitle(w)
	fmt.Fprintln(w)
	r.renderLiteralBlock(w)
}

func (r *rstRenderer) renderTitle(w io.Writer) {
	fmt.Fprintln(w, r.description.Header)
	fmt.Fprintln(w, titleUnderline(r.description.Header))
	fmt.Fprintln(w, r.description.Content)
}

func (r *rstRenderer) renderLiteralBlock(w io.Writer) {
	fmt.Fprintf(w, "**%s**\n", r.options.Header)
	fmt.Fprintln(w, "::")
	lines := splitLines(r.options.Content)
	if len(lines) == 0 {
		// An empty listing still gets one indented line under the marker.
		fmt.Fprintln(w, literalIndent)
		return
	}
	for _, line := range lines {
		fmt.Fprintln(w, literalIndent+line)
	}
}

// titleUnderline returns a run of '#' as wide as title, counted in runes.
func titleUnderline(title string) string {
	return strings.Repeat("#", utf8.RuneCountInString(title))
}

// formatRST renders the description as a titled section followed by the
// options as a bold-labelled literal block.
func formatRST(description, options section) string {
	var buf strings.Builder
	r := rstRenderer{description: description, options: options}
	r.render(&buf)
	return buf.String()
}
