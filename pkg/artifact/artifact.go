// Package artifact renders keyboard geometry and the keycode lookup table
// into a generated source file.
//
// The rows handed to templates are preformatted strings so that templates
// stay trivial: a key row is
//
//	x, y, 0, width, height, width2, height2
//
// with every number right-aligned in a 6-character field (the 0 initializes
// the visualizer's "pressed" flag), and a lookup row is 8 table entries each
// right-aligned in a 4-character field.
//
// [WriteFile] renders fully in memory before touching the file system and
// replaces the target with a rename, so a failed run never leaves a partial
// or truncated artifact behind.
package artifact

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/klawa/kbgen/pkg/errors"
	"github.com/klawa/kbgen/pkg/geometry"
	"github.com/klawa/kbgen/pkg/kle"
	"github.com/klawa/kbgen/pkg/lookup"
)

const (
	// LookupRowWidth is the number of table entries per emitted row.
	LookupRowWidth = 8

	keyFieldWidth    = 6
	lookupFieldWidth = 4
)

//go:embed templates/keyboard.h.tmpl
var defaultTemplate string

// Data is the template input.
type Data struct {
	Source   string   // base name of the layout file
	Width    int      // canvas width in pixels
	Height   int      // canvas height in pixels
	KeyCount int      // number of keys
	KeyData  []string // one formatted row per key, in key-index order
	Lookup   []string // formatted lookup rows
}

// NewData formats keys and table for a template.
func NewData(source string, keys []kle.Key, canvas geometry.Canvas, table lookup.Table) Data {
	rows := make([]string, len(keys))
	for i, k := range keys {
		rows[i] = KeyRow(k)
	}
	return Data{
		Source:   filepath.Base(source),
		Width:    canvas.Width,
		Height:   canvas.Height,
		KeyCount: len(keys),
		KeyData:  rows,
		Lookup:   LookupRows(table),
	}
}

// KeyRow formats a key's geometry row.
func KeyRow(k kle.Key) string {
	fields := []string{
		formatFloat(k.X),
		formatFloat(k.Y),
		"0",
		formatFloat(k.Width),
		formatFloat(k.Height),
		formatFloat(k.Width2),
		formatFloat(k.Height2),
	}
	for i, f := range fields {
		fields[i] = fmt.Sprintf("%*s", keyFieldWidth, f)
	}
	return strings.Join(fields, ", ")
}

// LookupRows formats the table in rows of LookupRowWidth entries.
func LookupRows(t lookup.Table) []string {
	rows := t.Rows(LookupRowWidth)
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%*d", lookupFieldWidth, v)
		}
		out[i] = strings.Join(cells, ", ")
	}
	return out
}

// formatFloat prints v in its shortest exact form and always keeps a
// fractional part, so whole numbers read as 1.0 rather than 1.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// DefaultTemplate returns the built-in C header template.
func DefaultTemplate() *template.Template {
	return template.Must(newTemplate("keyboard.h").Parse(defaultTemplate))
}

// LoadTemplate parses the template file at path. An empty path selects
// the built-in template.
func LoadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}
	text, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "read template %s", path)
	}
	tmpl, err := newTemplate(filepath.Base(path)).Parse(string(text))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTemplate, err, "parse template %s", path)
	}
	return tmpl, nil
}

func newTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=error")
}

// Render executes tmpl with d into w.
func Render(w io.Writer, tmpl *template.Template, d Data) error {
	if err := tmpl.Execute(w, d); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "render %s", tmpl.Name())
	}
	return nil
}

// WriteFile renders d and atomically replaces the file at path.
func WriteFile(path string, tmpl *template.Template, d Data) error {
	var buf bytes.Buffer
	if err := Render(&buf, tmpl, d); err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create temporary file in %s", dir)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeInternal, err, "close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeInternal, err, "chmod %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", path)
	}
	return nil
}
