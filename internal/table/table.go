// Package table lays out rows of text cells for terminal output. It
// computes column widths, draws borders in one of several line styles, and
// wraps or abbreviates tables that do not fit the available screen width.
//
// A Table is filled by a single writer and then rendered any number of
// times. Rendering does not modify the table, so concurrent renders of an
// unmodified table are safe; mutation must be serialized by the caller.
package table

import (
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// DefaultScreenWidth is the screen width assumed when none is configured.
const DefaultScreenWidth = 80

type wrapMode int

const (
	wrapNone wrapMode = iota
	wrapAuto
	wrapForced
)

// Table is an ordered collection of rows with an optional header.
type Table struct {
	header    Row
	hasHeader bool
	rows      []Row

	// maxWidth[i] is the widest display width seen in column i across the
	// header and all rows; len(maxWidth)-1 is the largest column index.
	maxWidth []int

	style       LineStyle
	margin      int
	abbrev      map[int]bool
	wrap        wrapMode
	breakAfter  int
	screenWidth int
}

// Option configures a Table at construction time.
type Option func(*Table)

// WithStyle sets the line style.
func WithStyle(s LineStyle) Option {
	return func(t *Table) { t.SetLineStyle(s) }
}

// WithMargin sets the left/right padding of every cell.
func WithMargin(n int) Option {
	return func(t *Table) { t.SetMargin(n) }
}

// WithAbbrev marks columns as eligible for abbreviation.
func WithAbbrev(columns ...int) Option {
	return func(t *Table) { t.AllowAbbrev(columns...) }
}

// WithWrap enables wrapping; see Table.Wrap.
func WithWrap(forceBreakAfter int) Option {
	return func(t *Table) { t.Wrap(forceBreakAfter) }
}

// WithScreenWidth sets the width available for rendering.
func WithScreenWidth(w int) Option {
	return func(t *Table) { t.SetScreenWidth(w) }
}

// New returns an empty table using DefaultStyle, no margin, no wrapping and
// DefaultScreenWidth, adjusted by opts.
func New(opts ...Option) *Table {
	t := &Table{
		style:       DefaultStyle,
		abbrev:      map[int]bool{},
		screenWidth: DefaultScreenWidth,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetHeader installs or replaces the header row.
func (t *Table) SetHeader(r Row) {
	replaced := t.hasHeader
	t.header = r.clone()
	t.hasHeader = true
	if replaced {
		t.rebuildWidths()
		return
	}
	t.fold(t.header)
}

// Header returns the header row and whether one was set.
func (t *Table) Header() (Row, bool) {
	return t.header.clone(), t.hasHeader
}

// Add appends rows to the table body.
func (t *Table) Add(rows ...Row) {
	for _, r := range rows {
		r = r.clone()
		t.rows = append(t.rows, r)
		t.fold(r)
	}
}

// Rows returns a copy of the body rows.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r.clone()
	}
	return rows
}

// Len returns the number of body rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table body has no rows. The header is not
// taken into account.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// MaxCol returns the largest column index seen in the header or any row,
// or -1 when the table has no cells.
func (t *Table) MaxCol() int {
	return len(t.maxWidth) - 1
}

// ColumnWidth returns the widest display width seen in column i, not
// including margins.
func (t *Table) ColumnWidth(i int) int {
	if i < 0 || i >= len(t.maxWidth) {
		return 0
	}
	return t.maxWidth[i]
}

// SetCell replaces the text of one cell of a body row, extending the row
// with empty cells when needed. Column widths are re-derived from all rows.
// It reports false when row is out of range.
func (t *Table) SetCell(row, col int, text string) bool {
	if row < 0 || row >= len(t.rows) || col < 0 {
		return false
	}
	r := &t.rows[row]
	for len(r.columns) <= col {
		r.columns = append(r.columns, "")
	}
	r.columns[col] = text
	t.rebuildWidths()
	return true
}

// Sort performs a stable sort of the body rows by the text of the given
// column. Rows without that column sort as if it were empty.
func (t *Table) Sort(column int) {
	t.SortBy(column)
}

// SortBy performs a stable sort of the body rows by several columns, the
// first column being the primary key. The header never moves.
func (t *Table) SortBy(columns ...int) {
	if len(columns) == 0 {
		return
	}
	slices.SortStableFunc(t.rows, func(a, b Row) int {
		for _, c := range columns {
			if d := strings.Compare(a.cell(c), b.cell(c)); d != 0 {
				return d
			}
		}
		return 0
	})
}

// SetLineStyle selects the border style. Unknown values fall back to Ascii.
func (t *Table) SetLineStyle(s LineStyle) {
	if !s.valid() {
		s = Ascii
	}
	t.style = s
}

// LineStyle returns the configured border style.
func (t *Table) LineStyle() LineStyle {
	return t.style
}

// AllowAbbrev marks columns as eligible for truncation when the table has
// to be narrowed to fit the screen.
func (t *Table) AllowAbbrev(columns ...int) {
	for _, c := range columns {
		if c >= 0 {
			t.abbrev[c] = true
		}
	}
}

// SetMargin sets the number of spaces added on both sides of every cell.
func (t *Table) SetMargin(n int) {
	t.margin = max(n, 0)
}

// Wrap enables wrapping of tables wider than the screen. A non-negative
// forceBreakAfter splits the first block after that column; a negative one
// picks the break columns automatically.
func (t *Table) Wrap(forceBreakAfter int) {
	if forceBreakAfter < 0 {
		t.wrap = wrapAuto
		t.breakAfter = -1
		return
	}
	t.wrap = wrapForced
	t.breakAfter = forceBreakAfter
}

// NoWrap disables wrapping; the table is always rendered as one block.
func (t *Table) NoWrap() {
	t.wrap = wrapNone
	t.breakAfter = -1
}

// SetScreenWidth sets the width available for rendering. Values below 1
// reset it to DefaultScreenWidth.
func (t *Table) SetScreenWidth(w int) {
	if w < 1 {
		w = DefaultScreenWidth
	}
	t.screenWidth = w
}

// fold widens the cached column widths to fit r.
func (t *Table) fold(r Row) {
	for i, c := range r.columns {
		w := displayWidth(c)
		if i >= len(t.maxWidth) {
			t.maxWidth = append(t.maxWidth, make([]int, i+1-len(t.maxWidth))...)
		}
		if w > t.maxWidth[i] {
			t.maxWidth[i] = w
		}
	}
}

func (t *Table) rebuildWidths() {
	t.maxWidth = nil
	if t.hasHeader {
		t.fold(t.header)
	}
	for _, r := range t.rows {
		t.fold(r)
	}
}

// displayWidth returns the number of terminal columns s occupies. Escape
// sequences are stripped first so colored text measures like plain text.
func displayWidth(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}
