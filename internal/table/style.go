package table

import (
	"fmt"
	"strings"
)

// LineStyle selects the glyphs used to draw rules, separators and junctions.
type LineStyle int

const (
	Ascii LineStyle = iota // | - +
	Light
	Heavy
	Double
	Light3
	Heavy3
	LightHeavy  // light vertical, heavy horizontal
	LightDouble // light vertical, double horizontal
	HeavyLight  // heavy vertical, light horizontal
	DoubleLight // double vertical, light horizontal
	Colon
	None
)

// DefaultStyle is the style used by tables created without WithStyle.
var DefaultStyle = Light

// junction holds the glyphs of one horizontal rule: the left corner, the
// crossing between two columns, and the right corner.
type junction struct {
	left, cross, right string
}

type glyphs struct {
	horizontal string
	vertical   string
	top        junction
	middle     junction
	bottom     junction
	// framed styles draw outer borders and horizontal rules
	framed bool
	// colonGap draws the vertical glyph only after the first column
	colonGap bool
}

var styleNames = [...]string{
	Ascii:       "ascii",
	Light:       "light",
	Heavy:       "heavy",
	Double:      "double",
	Light3:      "light3",
	Heavy3:      "heavy3",
	LightHeavy:  "light-heavy",
	LightDouble: "light-double",
	HeavyLight:  "heavy-light",
	DoubleLight: "double-light",
	Colon:       "colon",
	None:        "none",
}

var styleGlyphs = [...]glyphs{
	Ascii: {
		horizontal: "-", vertical: "|", framed: true,
		top:    junction{"+", "+", "+"},
		middle: junction{"+", "+", "+"},
		bottom: junction{"+", "+", "+"},
	},
	Light: {
		horizontal: "─", vertical: "│", framed: true,
		top:    junction{"┌", "┬", "┐"},
		middle: junction{"├", "┼", "┤"},
		bottom: junction{"└", "┴", "┘"},
	},
	Heavy: {
		horizontal: "━", vertical: "┃", framed: true,
		top:    junction{"┏", "┳", "┓"},
		middle: junction{"┣", "╋", "┫"},
		bottom: junction{"┗", "┻", "┛"},
	},
	Double: {
		horizontal: "═", vertical: "║", framed: true,
		top:    junction{"╔", "╦", "╗"},
		middle: junction{"╠", "╬", "╣"},
		bottom: junction{"╚", "╩", "╝"},
	},
	Light3: {
		horizontal: "┄", vertical: "┆", framed: true,
		top:    junction{"┌", "┬", "┐"},
		middle: junction{"├", "┼", "┤"},
		bottom: junction{"└", "┴", "┘"},
	},
	Heavy3: {
		horizontal: "┅", vertical: "┇", framed: true,
		top:    junction{"┏", "┳", "┓"},
		middle: junction{"┣", "╋", "┫"},
		bottom: junction{"┗", "┻", "┛"},
	},
	LightHeavy: {
		horizontal: "━", vertical: "│", framed: true,
		top:    junction{"┍", "┯", "┑"},
		middle: junction{"┝", "┿", "┥"},
		bottom: junction{"┕", "┷", "┙"},
	},
	LightDouble: {
		horizontal: "═", vertical: "│", framed: true,
		top:    junction{"╒", "╤", "╕"},
		middle: junction{"╞", "╪", "╡"},
		bottom: junction{"╘", "╧", "╛"},
	},
	HeavyLight: {
		horizontal: "─", vertical: "┃", framed: true,
		top:    junction{"┎", "┰", "┒"},
		middle: junction{"┠", "╂", "┨"},
		bottom: junction{"┖", "┸", "┚"},
	},
	DoubleLight: {
		horizontal: "─", vertical: "║", framed: true,
		top:    junction{"╓", "╥", "╖"},
		middle: junction{"╟", "╫", "╢"},
		bottom: junction{"╙", "╨", "╜"},
	},
	Colon: {
		vertical: ":", colonGap: true,
	},
	None: {
		vertical: "|",
	},
}

// String returns the name of the style as accepted by ParseLineStyle.
func (s LineStyle) String() string {
	if !s.valid() {
		return fmt.Sprintf("LineStyle(%d)", int(s))
	}
	return styleNames[s]
}

func (s LineStyle) valid() bool {
	return s >= Ascii && s <= None
}

func (s LineStyle) glyphs() glyphs {
	if !s.valid() {
		return styleGlyphs[Ascii]
	}
	return styleGlyphs[s]
}

// LineStyles returns every known style in declaration order.
func LineStyles() []LineStyle {
	styles := make([]LineStyle, 0, len(styleNames))
	for s := Ascii; s <= None; s++ {
		styles = append(styles, s)
	}
	return styles
}

// LineStyleNames returns the names of every known style.
func LineStyleNames() []string {
	return append([]string(nil), styleNames[:]...)
}

// ParseLineStyle maps a style name (case-insensitive, "_" and "-" are
// interchangeable) to its LineStyle.
func ParseLineStyle(name string) (LineStyle, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range styleNames {
		if n == normalized {
			return LineStyle(i), nil
		}
	}
	return Ascii, fmt.Errorf("invalid line style %q, must be one of %v", name, styleNames)
}

// gapWidth is the display width of every column gap: one glyph padded by a
// space on each side.
const gapWidth = 3

// borderWidth is the display width of an outer border with its padding.
const borderWidth = 2

// gap returns the separator placed before the column at position pos of a
// rendered block.
func (g glyphs) gap(pos int) string {
	if g.colonGap && pos > 1 {
		return "   "
	}
	return " " + g.vertical + " "
}
