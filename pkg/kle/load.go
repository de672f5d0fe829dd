package kle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klawa/kbgen/pkg/errors"
)

// Format is the encoding of a layout document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the document format from a file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Schema is one way of interpreting a decoded document.
type Schema struct {
	Name  string
	Parse func(doc any) (*Keyboard, error)
}

// Schemas lists the supported schemas in the order Parse tries them.
var Schemas = []Schema{
	{Name: "kle", Parse: ParseCompact},
	{Name: "model", Parse: ParseModel},
}

// Result is a loaded keyboard and the schema that accepted it.
type Result struct {
	Keyboard *Keyboard
	Schema   string
}

// Parse interprets doc with each schema in turn and returns the first
// success. When every schema fails the returned error has code
// INVALID_SCHEMA and lists each schema's failure.
func Parse(doc any, schemas ...Schema) (*Result, error) {
	if len(schemas) == 0 {
		schemas = Schemas
	}
	var failures []string
	for _, s := range schemas {
		kb, err := s.Parse(doc)
		if err == nil {
			return &Result{Keyboard: kb, Schema: s.Name}, nil
		}
		failures = append(failures, fmt.Sprintf("%s: %v", s.Name, err))
	}
	return nil, errors.New(errors.ErrCodeInvalidSchema,
		"no supported schema matched (%s)", strings.Join(failures, "; "))
}

// Decode reads a document tree from r.
func Decode(r io.Reader, format Format) (any, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
		if _, err := dec.Token(); err != io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidInput, "decode json: trailing data after document")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported format %q", format)
	}
	return doc, nil
}

// Read decodes a document from data and parses it.
func Read(data []byte, format Format) (*Result, error) {
	doc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// Load reads the layout file at path, choosing the format by extension.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Read(data, FormatForPath(path))
}

// toFloat converts a decoded number. Infinities and NaN are rejected.
func toFloat(v any) (float64, bool) {
	f, ok := anyFloat(v)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func anyFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if f, ok := anyFloat(v); ok {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "non-finite number"
		}
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
