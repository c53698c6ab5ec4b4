package input

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/kong/tabulator/internal/table"
	"sigs.k8s.io/yaml"
)

// Records is a decoded document: an optional header and rows of cells.
type Records struct {
	Header []string
	Rows   [][]string
}

// HasHeader reports whether the records carry column names.
func (r *Records) HasHeader() bool {
	return len(r.Header) > 0
}

// ReadDelimited reads CSV or TSV data. Rows may have differing lengths and
// stray quotes are kept as text.
func ReadDelimited(rd io.Reader, comma rune) ([][]string, error) {
	cr := csv.NewReader(rd)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited input: %w", err)
	}
	return rows, nil
}

// FromMatrix builds records from rows of cells, taking the first row as the
// header when hasHeader is set. An empty first row has no column names and
// stays a data row.
func FromMatrix(rows [][]string, hasHeader bool) *Records {
	if hasHeader && len(rows) > 0 && len(rows[0]) > 0 {
		return &Records{Header: rows[0], Rows: rows[1:]}
	}
	return &Records{Rows: rows}
}

// DecodeStructured decodes a JSON or YAML document. YAML is converted to
// JSON first, so both produce the same value types: maps with string keys,
// []any, float64, string, bool and nil.
func DecodeStructured(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	var v any
	if err := json.Unmarshal(js, &v); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return v, nil
}

// Tabulate flattens a decoded document. A list of objects yields the sorted
// union of their keys as the header and one row per object; a list of lists
// yields its rows, using the first one as header when hasHeader is set; a
// single object is one row; scalars end up in a "value" column.
func Tabulate(v any, hasHeader bool) *Records {
	switch val := v.(type) {
	case nil:
		return &Records{}
	case map[string]any:
		return tabulateObjects([]map[string]any{val})
	case []any:
		if len(val) == 0 {
			return &Records{}
		}
		if objs, ok := allObjects(val); ok {
			return tabulateObjects(objs)
		}
		if rows, ok := allLists(val); ok {
			return FromMatrix(rows, hasHeader)
		}
		rows := make([][]string, len(val))
		for i, e := range val {
			rows[i] = []string{CellText(e)}
		}
		return &Records{Header: []string{"value"}, Rows: rows}
	default:
		return &Records{Header: []string{"value"}, Rows: [][]string{{CellText(val)}}}
	}
}

func allObjects(list []any) ([]map[string]any, bool) {
	objs := make([]map[string]any, 0, len(list))
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, false
		}
		objs = append(objs, m)
	}
	return objs, true
}

func allLists(list []any) ([][]string, bool) {
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		l, ok := e.([]any)
		if !ok {
			return nil, false
		}
		row := make([]string, len(l))
		for i, c := range l {
			row[i] = CellText(c)
		}
		rows = append(rows, row)
	}
	return rows, true
}

func tabulateObjects(objs []map[string]any) *Records {
	keys := map[string]struct{}{}
	for _, o := range objs {
		for k := range o {
			keys[k] = struct{}{}
		}
	}
	header := slices.Sorted(maps.Keys(keys))

	rows := make([][]string, len(objs))
	for i, o := range objs {
		row := make([]string, len(header))
		for j, k := range header {
			row[j] = CellText(o[k])
		}
		rows[i] = row
	}
	return &Records{Header: header, Rows: rows}
}

// CellText renders a decoded value as cell text. Nested lists and objects
// are written as compact JSON.
func CellText(v any) string {
	switch val := v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return table.FormatValue(val)
	}
}

// ColumnIndex resolves a column reference: a header name (case-insensitive)
// or a zero based index.
func (r *Records) ColumnIndex(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, h := range r.Header {
		if strings.EqualFold(h, ref) {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 {
		return i, nil
	}
	if r.HasHeader() {
		return -1, fmt.Errorf("unknown column %q, must be one of %v or an index", ref, r.Header)
	}
	return -1, fmt.Errorf("unknown column %q, input has no header so columns are referenced by index", ref)
}

// ColumnIndexes resolves several column references.
func (r *Records) ColumnIndexes(refs []string) ([]int, error) {
	idx := make([]int, 0, len(refs))
	var errs []error
	for _, ref := range refs {
		i, err := r.ColumnIndex(ref)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		idx = append(idx, i)
	}
	return idx, errors.Join(errs...)
}

// Select keeps only the given columns, in the given order.
func (r *Records) Select(refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	idx, err := r.ColumnIndexes(refs)
	if err != nil {
		return err
	}
	pick := func(row []string) []string {
		out := make([]string, len(idx))
		for i, c := range idx {
			if c < len(row) {
				out[i] = row[c]
			}
		}
		return out
	}
	if r.HasHeader() {
		r.Header = pick(r.Header)
	}
	for i, row := range r.Rows {
		r.Rows[i] = pick(row)
	}
	return nil
}

// Objects returns the rows as maps keyed by header name. Without a header the
// keys are the column indexes.
func (r *Records) Objects() []map[string]string {
	out := make([]map[string]string, len(r.Rows))
	for i, row := range r.Rows {
		m := make(map[string]string, len(row))
		for j, c := range row {
			key := strconv.Itoa(j)
			if j < len(r.Header) {
				key = r.Header[j]
			}
			m[key] = c
		}
		out[i] = m
	}
	return out
}
