package table

// Row is an ordered sequence of cells plus optional detail lines. Detail
// lines are rendered beneath the row, outside the column grid, and never
// take part in column width computation.
type Row struct {
	columns []string
	details []string
}

// NewRow returns a row holding the given cells.
func NewRow(cells ...string) Row {
	return Row{columns: append([]string(nil), cells...)}
}

// Add appends cells to the row. It returns the row so calls can be chained.
func (r *Row) Add(cells ...string) *Row {
	r.columns = append(r.columns, cells...)
	return r
}

// AddValue appends one cell per value, using FormatValue to obtain the
// canonical text of each value.
func (r *Row) AddValue(values ...any) *Row {
	for _, v := range values {
		r.columns = append(r.columns, FormatValue(v))
	}
	return r
}

// AddDetail appends detail lines to the row.
func (r *Row) AddDetail(lines ...string) *Row {
	r.details = append(r.details, lines...)
	return r
}

// Cols returns the number of cells in the row.
func (r Row) Cols() int {
	return len(r.columns)
}

// Columns returns a copy of the row's cells.
func (r Row) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Details returns a copy of the row's detail lines.
func (r Row) Details() []string {
	return append([]string(nil), r.details...)
}

// cell returns the text of column i, or "" when the row is too short.
func (r Row) cell(i int) string {
	if i < 0 || i >= len(r.columns) {
		return ""
	}
	return r.columns[i]
}

func (r Row) clone() Row {
	return Row{
		columns: append([]string(nil), r.columns...),
		details: append([]string(nil), r.details...),
	}
}
