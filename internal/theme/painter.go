package theme

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// ColorContext names the purpose of a piece of colored text. Painters map
// each context to a palette token and emphasis.
type ColorContext int

const (
	Default ColorContext = iota
	Result
	MsgStatus
	MsgError
	MsgWarning
	Positive
	Change
	Negative
	Highlight
	Lowlight
	OSDebug
)

var colorContextNames = [...]string{
	Default:    "default",
	Result:     "result",
	MsgStatus:  "msg-status",
	MsgError:   "msg-error",
	MsgWarning: "msg-warning",
	Positive:   "positive",
	Change:     "change",
	Negative:   "negative",
	Highlight:  "highlight",
	Lowlight:   "lowlight",
	OSDebug:    "os-debug",
}

func (cc ColorContext) String() string {
	if cc < Default || cc > OSDebug {
		return fmt.Sprintf("ColorContext(%d)", int(cc))
	}
	return colorContextNames[cc]
}

// ParseColorContext maps a context name to its ColorContext.
func ParseColorContext(name string) (ColorContext, error) {
	normalized := strings.ReplaceAll(sanitizeName(name), "_", "-")
	for i, n := range colorContextNames {
		if n == normalized {
			return ColorContext(i), nil
		}
	}
	return Default, fmt.Errorf("invalid color context %q, must be one of %v", name, colorContextNames)
}

// ColorContextNames returns the names of every color context.
func ColorContextNames() []string {
	return append([]string(nil), colorContextNames[:]...)
}

type emphasis struct {
	token Token
	bold  bool
	faint bool
}

var contextEmphasis = map[ColorContext]emphasis{
	Result:     {token: ColorTextPrimary, bold: true},
	MsgStatus:  {token: ColorInfo},
	MsgError:   {token: ColorDanger, bold: true},
	MsgWarning: {token: ColorWarning},
	Positive:   {token: ColorSuccess},
	Change:     {token: ColorAccent},
	Negative:   {token: ColorDanger},
	Highlight:  {token: ColorHighlight, bold: true},
	Lowlight:   {token: ColorTextMuted, faint: true},
	OSDebug:    {token: ColorTextSecondary},
}

// Token returns the palette token used for the context. Default has none.
func (cc ColorContext) Token() (Token, bool) {
	e, ok := contextEmphasis[cc]
	return e.token, ok
}

// ColorMode controls whether a Painter emits escape sequences.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a color mode string. Empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(sanitizeName(s)); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q, must be one of auto, always, never", s)
	}
}

// Painter colors text for one output stream.
type Painter struct {
	renderer *lipgloss.Renderer
	palette  Palette
}

// NewPainter returns a Painter for out. With ColorAuto the color profile is
// detected from out; ColorNever disables escapes entirely and ColorAlways
// forces true color.
func NewPainter(out io.Writer, mode ColorMode, p Palette) *Painter {
	r := lipgloss.NewRenderer(out)
	switch mode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
		r.SetHasDarkBackground(true)
	case ColorAuto:
	}
	return &Painter{renderer: r, palette: p}
}

var plainPainter = &Painter{
	renderer: func() *lipgloss.Renderer {
		r := lipgloss.NewRenderer(io.Discard)
		r.SetColorProfile(termenv.Ascii)
		return r
	}(),
	palette: Palette{},
}

// PlainPainter returns a Painter that never emits escape sequences.
func PlainPainter() *Painter {
	return plainPainter
}

// Colored reports whether the painter emits escape sequences.
func (p *Painter) Colored() bool {
	return p.renderer.ColorProfile() != termenv.Ascii
}

// Paint returns text in the color of cc. Escape sequences already present in
// text are removed first, so painting is idempotent.
func (p *Painter) Paint(text string, cc ColorContext) string {
	text = ansi.Strip(text)
	e, ok := contextEmphasis[cc]
	if !ok || text == "" {
		return text
	}
	style := p.renderer.NewStyle().
		Foreground(p.palette.Adaptive(e.token)).
		Bold(e.bold).
		Faint(e.faint)
	return style.Render(text)
}
