package normalizers

import (
	"strings"

	"github.com/muesli/reflow/dedent"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Indentation is the number of spaces every example line is shifted by.
const Indentation = 2

// HelpWidth is the column long descriptions are wrapped at.
const HelpWidth = 80

// LongDesc strips the indentation shared by the lines of a command's long
// description, as written in a raw string literal, and wraps it at
// HelpWidth. Blank lines between paragraphs are kept.
func LongDesc(s string) string {
	return wordwrap.String(normalize(s), HelpWidth)
}

// Examples strips the shared indentation of an example block and shifts
// every line by Indentation. Continuation lines keep their indentation
// relative to the command they belong to.
func Examples(s string) string {
	s = normalize(s)
	if s == "" {
		return s
	}
	return indent.String(s, Indentation)
}

func normalize(s string) string {
	lines := strings.Split(dedent.String(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
