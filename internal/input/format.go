// Package input decodes the documents accepted by the CLI into rows of text
// cells. Delimited files become rows as they are; JSON and YAML documents are
// flattened into a header of field names and one row per element.
package input

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats returns the names accepted by ParseFormat.
func Formats() []string {
	return []string{string(FormatAuto), string(FormatCSV), string(FormatTSV), string(FormatJSON), string(FormatYAML)}
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case "yml":
		return FormatYAML, nil
	case FormatAuto, FormatCSV, FormatTSV, FormatJSON, FormatYAML:
		return f, nil
	default:
		return FormatAuto, fmt.Errorf("invalid input format %q, must be one of %v", s, Formats())
	}
}

// Structured reports whether f is decoded as a JSON or YAML document.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Detect picks the format of a document from its file name, falling back to
// the content when the extension is not known.
func Detect(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV
	case ".tsv", ".tab":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FormatCSV
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormatJSON
	}

	first, _, _ := bytes.Cut(trimmed, []byte("\n"))
	switch {
	case bytes.HasPrefix(first, []byte("---")), bytes.HasPrefix(first, []byte("- ")):
		return FormatYAML
	case bytes.ContainsRune(first, '\t'):
		return FormatTSV
	case bytes.Contains(first, []byte(": ")) || bytes.HasSuffix(first, []byte(":")):
		return FormatYAML
	default:
		return FormatCSV
	}
}
