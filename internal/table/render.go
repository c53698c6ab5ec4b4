package table

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/indent"
)

// detailIndent is how far detail lines are indented past the start of
// column 0's content.
const detailIndent = 4

// WriteTo renders the table to w. Write errors are returned unchanged.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}

// String renders the table.
func (t *Table) String() string {
	var b strings.Builder
	t.render(&b)
	return b.String()
}

// WritePlain writes the header and rows as tab separated cells, one row
// per line, without any layout.
func (t *Table) WritePlain(w io.Writer) error {
	var b strings.Builder
	if t.hasHeader {
		b.WriteString(strings.Join(t.header.columns, "\t"))
		b.WriteByte('\n')
	}
	for _, r := range t.rows {
		b.WriteString(strings.Join(r.columns, "\t"))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) render(b *strings.Builder) {
	if len(t.maxWidth) == 0 {
		return
	}
	l := t.layout()
	g := t.style.glyphs()
	for i, blk := range l.blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		t.renderBlock(b, g, blk.widths, blk.cols, i == 0)
	}
}

func (t *Table) renderBlock(b *strings.Builder, g glyphs, widths, cols []int, withDetails bool) {
	if g.framed {
		writeRule(b, g, g.top, widths, cols)
	}
	if t.hasHeader {
		t.writeRow(b, g, t.header, widths, cols, true)
		if g.framed {
			writeRule(b, g, g.middle, widths, cols)
		}
	}
	for _, r := range t.rows {
		t.writeRow(b, g, r, widths, cols, false)
		if withDetails {
			t.writeDetails(b, g, r)
		}
	}
	if g.framed {
		writeRule(b, g, g.bottom, widths, cols)
	}
}

func writeRule(b *strings.Builder, g glyphs, j junction, widths, cols []int) {
	b.WriteString(j.left)
	for i, c := range cols {
		if i > 0 {
			b.WriteString(j.cross)
		}
		b.WriteString(strings.Repeat(g.horizontal, widths[c]+2))
	}
	b.WriteString(j.right)
	b.WriteByte('\n')
}

// writeRow writes one line of a block. Borderless lines end at the last
// cell text or separator glyph; the padding after it is dropped but the
// cell text keeps its own trailing spaces.
func (t *Table) writeRow(b *strings.Builder, g glyphs, r Row, widths, cols []int, header bool) {
	var line strings.Builder
	end := 0
	if g.framed {
		line.WriteString(g.vertical + " ")
	}
	pad := strings.Repeat(" ", t.margin)
	for i, c := range cols {
		if i > 0 {
			gap := g.gap(i)
			if glyph := strings.TrimRight(gap, " "); glyph != "" {
				end = line.Len() + len(glyph)
			}
			line.WriteString(gap)
		}
		text, w := t.cellText(r.cell(c), widths[c], header)
		line.WriteString(pad)
		line.WriteString(text)
		if text != "" {
			end = line.Len()
		}
		line.WriteString(strings.Repeat(" ", max(widths[c]-2*t.margin-w, 0)))
		line.WriteString(pad)
	}
	if g.framed {
		line.WriteString(" " + g.vertical)
		b.WriteString(line.String())
	} else {
		b.WriteString(line.String()[:end])
	}
	b.WriteByte('\n')
}

// cellText returns text, abbreviated when it does not fit width, and its
// display width. Header cells are never abbreviated.
func (t *Table) cellText(text string, width int, header bool) (string, int) {
	avail := width - 2*t.margin
	w := displayWidth(text)
	if w > avail && !header {
		text = ansi.TruncateWc(text, avail, ellipsis)
		w = displayWidth(text)
	}
	return text, w
}

func (t *Table) writeDetails(b *strings.Builder, g glyphs, r Row) {
	if len(r.details) == 0 {
		return
	}
	start := t.margin + detailIndent
	if g.framed {
		start += borderWidth
	}
	for _, d := range r.details {
		b.WriteString(indent.String(d, uint(start)))
		b.WriteByte('\n')
	}
}
