package table

import (
	"io"
	"reflect"
	"strconv"

	"github.com/kong/tabulator/internal/theme"
	"github.com/kong/tabulator/internal/util/i18n"
)

// PropertyTable lays out key/value pairs, one pair per row, with the keys
// aligned in a colon separated column. Values holding several elements are
// rendered as their count followed by one detail line per element.
type PropertyTable struct {
	table   *Table
	painter *theme.Painter
}

// PropertyOption configures a PropertyTable.
type PropertyOption func(*PropertyTable)

// WithPainter sets the painter used by Paint. The default never emits
// escape sequences.
func WithPainter(p *theme.Painter) PropertyOption {
	return func(pt *PropertyTable) { pt.painter = p }
}

// WithTableOptions applies options to the underlying table. The line style
// is always reset to Colon afterwards.
func WithTableOptions(opts ...Option) PropertyOption {
	return func(pt *PropertyTable) {
		for _, opt := range opts {
			opt(pt.table)
		}
	}
}

// NewPropertyTable returns an empty property table in the Colon style.
func NewPropertyTable(opts ...PropertyOption) *PropertyTable {
	pt := &PropertyTable{
		table:   New(),
		painter: theme.PlainPainter(),
	}
	for _, opt := range opts {
		opt(pt)
	}
	pt.table.SetLineStyle(Colon)
	return pt
}

// Add appends one key/value row. Booleans render as a localized Yes or No,
// slices and arrays follow the rules of AddList, and everything else is
// converted with FormatValue.
func (pt *PropertyTable) Add(key string, value any) *PropertyTable {
	switch v := value.(type) {
	case bool:
		return pt.add(key, formatBool(v))
	case []string:
		return pt.AddList(key, v)
	case []byte, nil:
		return pt.add(key, FormatValue(v))
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		values := make([]string, rv.Len())
		for i := range values {
			values[i] = propertyValue(rv.Index(i).Interface())
		}
		return pt.AddList(key, values)
	}
	return pt.add(key, FormatValue(value))
}

// AddList appends a key with several values. No values leave the value
// empty, a single value is shown inline, and more values show their count
// with every value on a detail line of its own.
func (pt *PropertyTable) AddList(key string, values []string) *PropertyTable {
	switch len(values) {
	case 0:
		return pt.add(key, "")
	case 1:
		return pt.add(key, values[0])
	}
	r := NewRow(key, strconv.Itoa(len(values)))
	r.AddDetail(values...)
	pt.table.Add(r)
	return pt
}

// AddValues is AddList for any element type.
func AddValues[T any](pt *PropertyTable, key string, values ...T) *PropertyTable {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = propertyValue(v)
	}
	return pt.AddList(key, strs)
}

// Paint colors the value of the most recently added row when cond is true.
// Painting again replaces the previous color.
func (pt *PropertyTable) Paint(cc theme.ColorContext, cond bool) *PropertyTable {
	if !cond || pt.table.Empty() {
		return pt
	}
	last := pt.table.Len() - 1
	r := pt.table.rows[last]
	col := r.Cols() - 1
	if col < 0 {
		return pt
	}
	pt.table.SetCell(last, col, pt.painter.Paint(r.cell(col), cc))
	return pt
}

// Len returns the number of properties.
func (pt *PropertyTable) Len() int {
	return pt.table.Len()
}

// Table returns the underlying table.
func (pt *PropertyTable) Table() *Table {
	return pt.table
}

// WriteTo renders the properties to w. Write errors are returned unchanged.
func (pt *PropertyTable) WriteTo(w io.Writer) (int64, error) {
	return pt.table.WriteTo(w)
}

// String renders the properties.
func (pt *PropertyTable) String() string {
	return pt.table.String()
}

func (pt *PropertyTable) add(key, value string) *PropertyTable {
	pt.table.Add(NewRow(key, value))
	return pt
}

func formatBool(b bool) string {
	if b {
		return i18n.T("table.property.yes", "Yes")
	}
	return i18n.T("table.property.no", "No")
}

func propertyValue(v any) string {
	if b, ok := v.(bool); ok {
		return formatBool(b)
	}
	return FormatValue(v)
}
