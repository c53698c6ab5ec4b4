package iostreams

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var osStreams *IOStreams

type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Empty type to represent the _type_ IOStreams . Genesis is to support a key in a Context
type Key struct{}

// StreamsKey is a global instance of the Key type
var StreamsKey = Key{}

// Get a singleton instance of the OS IOStreams
func GetOSIOStreams() *IOStreams {
	if osStreams == nil {
		osStreams = &IOStreams{
			In:     os.Stdin,
			Out:    os.Stdout,
			ErrOut: os.Stderr,
		}
	}
	return osStreams
}

func NewTestIOStreams() (IOStreams, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return IOStreams{
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}, in, out, errOut
}

type fdWriter interface {
	Fd() uintptr
}

// terminalDetector is replaced in tests.
var terminalDetector = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminal reports whether w is connected to a terminal.
func IsTerminal(w io.Writer) bool {
	if fw, ok := w.(fdWriter); ok {
		return terminalDetector(fw.Fd())
	}
	return false
}

// IsOutputTTY reports whether the standard output of s is a terminal.
func (s *IOStreams) IsOutputTTY() bool {
	return IsTerminal(s.Out)
}

// TerminalWidth returns the number of columns available on the output
// stream. The terminal size is used when Out is a terminal, then the
// COLUMNS environment variable. It returns 0 when neither is known.
func (s *IOStreams) TerminalWidth() int {
	if fw, ok := s.Out.(fdWriter); ok && terminalDetector(fw.Fd()) {
		if w, _, err := term.GetSize(int(fw.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		return cols
	}
	return 0
}
