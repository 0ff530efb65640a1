// Package rows turns uploaded CSV, JSON or YAML documents into generic
// key/value rows for the importer. It knows nothing about students: column
// names are passed through untouched and values keep their decoded type
// (string, number, bool or nil).
package rows

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Row is one record of an import file.
type Row struct {
	// Label identifies the row in error messages, e.g. "Row 3" for the
	// third line of a CSV file or "Entry 2" for the second JSON object.
	Label  string
	Fields map[string]any
}

// Format is a supported input format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for unknown formats or extensions.
var ErrUnsupportedFormat = errors.New("unsupported format: use CSV, JSON or YAML")

// ParseFormat accepts a format name or file extension ("csv", ".json",
// "yml", ...).
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatForFile picks the format from a file name's extension.
func FormatForFile(name string) (Format, error) {
	return ParseFormat(filepath.Ext(name))
}

// Decode reads r in the given format.
func Decode(f Format, r io.Reader) ([]Row, error) {
	switch f {
	case FormatCSV:
		return DecodeCSV(r)
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// DecodeCSV reads a CSV document whose first line is the header. Rows are
// labelled with their 1-based line number, so the first data row is
// "Row 2". Blank lines are skipped; short rows leave missing columns empty.
func DecodeCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rows.DecodeCSV: header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	var out []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rows.DecodeCSV: %w", err)
		}

		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		fields := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(record) {
				fields[name] = record[i]
			} else {
				fields[name] = ""
			}
		}
		out = append(out, Row{Label: fmt.Sprintf("Row %d", line), Fields: fields})
	}
	return out, nil
}

// DecodeJSON reads either an array of objects or an object with a
// "students" array. Numbers are kept as json.Number so NIM-like digit
// strings and GPAs survive without float rounding.
func DecodeJSON(r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rows.DecodeJSON: read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var objects []map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] == '{' {
		var wrapper struct {
			Students []map[string]any `json:"students"`
		}
		if err := dec.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("rows.DecodeJSON: %w", err)
		}
		objects = wrapper.Students
	} else if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("rows.DecodeJSON: %w", err)
	}

	return entries(objects), nil
}

// DecodeYAML reads a YAML sequence of mappings, or a mapping with a
// "students" sequence.
func DecodeYAML(r io.Reader) ([]Row, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("rows.DecodeYAML: %w", err)
	}

	var objects []map[string]any
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&objects); err != nil {
			return nil, fmt.Errorf("rows.DecodeYAML: %w", err)
		}
	case yaml.MappingNode:
		var wrapper struct {
			Students []map[string]any `yaml:"students"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, fmt.Errorf("rows.DecodeYAML: %w", err)
		}
		objects = wrapper.Students
	default:
		return nil, errors.New("rows.DecodeYAML: expected a list of students")
	}

	return entries(objects), nil
}

func entries(objects []map[string]any) []Row {
	out := make([]Row, 0, len(objects))
	for i, obj := range objects {
		if obj == nil {
			obj = map[string]any{}
		}
		out = append(out, Row{Label: fmt.Sprintf("Entry %d", i+1), Fields: obj})
	}
	return out
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// String renders a decoded value as text. nil becomes "", json.Number and
// floats keep their shortest form, anything else goes through fmt.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	default:
		return fmt.Sprint(t)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
