package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/kong/tabulator/internal/table"
	"github.com/kong/tabulator/internal/theme"
	"github.com/muesli/reflow/indent"
)

// Keys the console handler treats specially. The underlying error is shown
// as the cause and the hint is always the last property.
const (
	ErrorKey = "error"
	HintKey  = "hint"

	causeLabel = "cause"
	// propertyIndent shifts the property table under the "Error:" line.
	propertyIndent = 2
)

// NewFriendlyErrorHandler returns a slog.Handler for error records on a
// terminal. The message is printed after an "Error:" label, then the cause,
// the record context and the hint follow as an aligned property table.
// Records below slog.LevelError are dropped. A nil painter prints plain text.
func NewFriendlyErrorHandler(w io.Writer, p *theme.Painter) slog.Handler {
	if p == nil {
		p = theme.PlainPainter()
	}
	return &friendlyHandler{w: w, painter: p}
}

type field struct {
	key   string
	value string
}

type friendlyHandler struct {
	w       io.Writer
	painter *theme.Painter
	// prefix qualifies the keys of attributes added after WithGroup.
	prefix string
	fields []field
}

func (h *friendlyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *friendlyHandler) Handle(_ context.Context, record slog.Record) error {
	fields := slices.Clone(h.fields)
	record.Attrs(func(a slog.Attr) bool {
		fields = appendField(fields, h.prefix, a)
		return true
	})

	var cause, hint string
	var ctxFields []field
	for _, f := range fields {
		switch f.key {
		case ErrorKey:
			cause = f.value
		case HintKey:
			hint = f.value
		default:
			if f.value != "" {
				ctxFields = append(ctxFields, f)
			}
		}
	}

	summary := strings.TrimSpace(record.Message)
	if summary == "" {
		summary = cause
	}
	if summary == "" {
		summary = "an unknown error occurred"
	}
	if cause == summary {
		cause = ""
	}

	slices.SortStableFunc(ctxFields, func(a, b field) int {
		return strings.Compare(a.key, b.key)
	})

	pt := table.NewPropertyTable(table.WithPainter(h.painter))
	addProperty(pt, causeLabel, cause)
	for _, f := range ctxFields {
		addProperty(pt, f.key, f.value)
	}
	if addProperty(pt, HintKey, hint) {
		pt.Paint(theme.Highlight, true)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", h.painter.Paint("Error:", theme.MsgError), summary)
	if pt.Len() > 0 {
		sb.WriteString(indent.String(pt.String(), propertyIndent))
	}
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *friendlyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.fields = slices.Clone(h.fields)
	for _, a := range attrs {
		h2.fields = appendField(h2.fields, h.prefix, a)
	}
	return &h2
}

func (h *friendlyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// appendField flattens a into fields. Group members are qualified with the
// group key, empty keys and empty groups are dropped.
func appendField(fields []field, prefix string, a slog.Attr) []field {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, member := range v.Group() {
			fields = appendField(fields, prefix, member)
		}
		return fields
	}
	if a.Key == "" {
		return fields
	}
	return append(fields, field{key: prefix + a.Key, value: valueString(v)})
}

func valueString(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		switch x := v.Any().(type) {
		case nil:
			return ""
		case error:
			return x.Error()
		}
	}
	return strings.TrimSpace(v.String())
}

// addProperty adds one row to pt and reports whether it did. Multi-line
// values put their first line in the value column and the remaining non
// blank lines below it.
func addProperty(pt *table.PropertyTable, key, value string) bool {
	var lines []string
	for line := range strings.Lines(value) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return false
	}
	r := table.NewRow(key, lines[0])
	r.AddDetail(lines[1:]...)
	pt.Table().Add(r)
	return true
}
