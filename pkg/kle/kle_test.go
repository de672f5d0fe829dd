package kle

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klawa/kbgen/pkg/errors"
)

type pos struct{ x, y, w, h float64 }

func keyPos(k Key) pos { return pos{k.X, k.Y, k.Width, k.Height} }

func mustRead(t *testing.T, doc string, format Format) *Result {
	t.Helper()
	res, err := Read([]byte(doc), format)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	return res
}

func TestParseCompactPositions(t *testing.T) {
	res := mustRead(t, `[["Esc","1",{"w":2},"Bksp"],[{"x":0.5},"Tab"]]`, FormatJSON)
	if res.Schema != "kle" {
		t.Errorf("Schema = %q, want kle", res.Schema)
	}

	want := []pos{
		{0, 0, 1, 1},
		{1, 0, 1, 1},
		{2, 0, 2, 1},
		{0.5, 1, 1, 1},
	}
	keys := res.Keyboard.Keys
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, w := range want {
		if got := keyPos(keys[i]); got != w {
			t.Errorf("key %d = %+v, want %+v", i, got, w)
		}
	}
	if keys[2].Width2 != 2 || keys[2].Height2 != 1 {
		t.Errorf("key 2 secondary size = %vx%v, want 2x1", keys[2].Width2, keys[2].Height2)
	}
	if keys[3].Width2 != 1 {
		t.Errorf("width reset after key: key 3 Width2 = %v, want 1", keys[3].Width2)
	}
}

func TestParseCompactLabels(t *testing.T) {
	res := mustRead(t, `[["30,31\nA"]]`, FormatJSON)
	k := res.Keyboard.Keys[0]
	if got := k.Label(0); got != "30,31" {
		t.Errorf("Label(0) = %q, want %q", got, "30,31")
	}
	if got := k.Label(6); got != "A" {
		t.Errorf("Label(6) = %q, want %q", got, "A")
	}
	if got := k.Label(42); got != "" {
		t.Errorf("Label(42) = %q, want empty", got)
	}
}

func TestParseCompactAlignment(t *testing.T) {
	// Align 7 maps the first legend to the center slot.
	res := mustRead(t, `[[{"a":7},"X"]]`, FormatJSON)
	k := res.Keyboard.Keys[0]
	if k.Label(0) != "" || k.Label(4) != "X" {
		t.Errorf("labels = %q, want X in slot 4 only", k.Labels)
	}
}

func TestParseCompactRotation(t *testing.T) {
	res := mustRead(t, `[[{"r":15,"rx":1,"ry":2},"A","B"],["C"]]`, FormatJSON)
	keys := res.Keyboard.Keys

	want := []pos{{1, 2, 1, 1}, {2, 2, 1, 1}, {1, 3, 1, 1}}
	for i, w := range want {
		if got := keyPos(keys[i]); got != w {
			t.Errorf("key %d = %+v, want %+v", i, got, w)
		}
		if keys[i].RotationAngle != 15 || keys[i].RotationX != 1 || keys[i].RotationY != 2 {
			t.Errorf("key %d rotation = %v@(%v,%v), want 15@(1,2)",
				i, keys[i].RotationAngle, keys[i].RotationX, keys[i].RotationY)
		}
	}
}

func TestParseCompactISOEnter(t *testing.T) {
	res := mustRead(t, `[[{"x":0.25,"w":1.25,"h":2,"w2":1.5,"h2":1,"x2":-0.25},"Enter"]]`, FormatJSON)
	k := res.Keyboard.Keys[0]
	if k.X != 0.25 || k.Width != 1.25 || k.Height != 2 {
		t.Errorf("primary = %+v, want x=0.25 1.25x2", keyPos(k))
	}
	if k.X2 != -0.25 || k.Width2 != 1.5 || k.Height2 != 1 {
		t.Errorf("secondary = x2=%v %vx%v, want x2=-0.25 1.5x1", k.X2, k.Width2, k.Height2)
	}
}

func TestParseCompactMetadata(t *testing.T) {
	res := mustRead(t, `[{"name":"tiny","author":"me"},["A"]]`, FormatJSON)
	if res.Keyboard.Meta.Name != "tiny" || res.Keyboard.Meta.Author != "me" {
		t.Errorf("Meta = %+v", res.Keyboard.Meta)
	}
	if res.Keyboard.Len() != 1 {
		t.Errorf("Len() = %d, want 1", res.Keyboard.Len())
	}
}

func TestParseCompactErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		want string
	}{
		{"not an array", map[string]any{"a": 1.0}, "expected an array of rows"},
		{"rotation not first", []any{[]any{"A", map[string]any{"r": 10.0}}}, `"r" can only be used on the first key`},
		{"late metadata", []any{[]any{"A"}, map[string]any{"name": "x"}}, "metadata is only allowed"},
		{"bad row", []any{"A"}, "expected array or object"},
		{"bad item", []any{[]any{true}}, "expected label string or property object"},
		{"bad alignment", []any{[]any{map[string]any{"a": 9.0}, "A"}}, "invalid alignment"},
		{"wrong type", []any{[]any{map[string]any{"w": "2"}, "A"}}, `property "w": expected number`},
		{"infinite width", []any{[]any{map[string]any{"w": math.Inf(1)}, "A"}}, `property "w": expected number`},
		{"nan offset", []any{[]any{map[string]any{"x": math.NaN()}, "A"}}, `property "x": expected number`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompact(tt.doc)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParseModelFallback(t *testing.T) {
	res := mustRead(t, `{"meta":{"name":"m"},"keys":[{"x":1,"y":2,"labels":["5"]},{"x":2,"y":2,"width":1.5,"rotation_angle":30}]}`, FormatJSON)
	if res.Schema != "model" {
		t.Fatalf("Schema = %q, want model", res.Schema)
	}
	keys := res.Keyboard.Keys
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2", len(keys))
	}
	if got := keyPos(keys[0]); got != (pos{1, 2, 1, 1}) {
		t.Errorf("key 0 = %+v", got)
	}
	if keys[0].Width2 != 1 || keys[0].Height2 != 1 {
		t.Errorf("key 0 secondary defaults = %vx%v, want 1x1", keys[0].Width2, keys[0].Height2)
	}
	if keys[0].Label(0) != "5" {
		t.Errorf("key 0 Label(0) = %q, want 5", keys[0].Label(0))
	}
	if keys[1].Width != 1.5 || keys[1].RotationAngle != 30 {
		t.Errorf("key 1 = %+v", keys[1])
	}
	if res.Keyboard.Meta.Name != "m" {
		t.Errorf("Meta.Name = %q", res.Keyboard.Meta.Name)
	}
}

func TestParseModelErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing keys", `{"meta":{}}`},
		{"keys not array", `{"keys":{}}`},
		{"unknown top-level field", `{"keys":[],"rows":[]}`},
		{"unknown key field", `{"keys":[{"x":1,"bogus":2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode(strings.NewReader(tt.doc), FormatJSON)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := ParseModel(doc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseNoSchema(t *testing.T) {
	_, err := Read([]byte(`"just a string"`), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidSchema) {
		t.Fatalf("error = %v, want INVALID_SCHEMA", err)
	}
	for _, name := range []string{"kle:", "model:"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestParseSchemaOrder(t *testing.T) {
	var tried []string
	schema := func(name string, fail bool) Schema {
		return Schema{Name: name, Parse: func(any) (*Keyboard, error) {
			tried = append(tried, name)
			if fail {
				return nil, os.ErrInvalid
			}
			return &Keyboard{}, nil
		}}
	}

	res, err := Parse(nil, schema("a", true), schema("b", false), schema("c", false))
	if err != nil {
		t.Fatal(err)
	}
	if res.Schema != "b" {
		t.Errorf("Schema = %q, want b", res.Schema)
	}
	if strings.Join(tried, ",") != "a,b" {
		t.Errorf("tried = %v, want [a b]", tried)
	}
}

func TestReadYAML(t *testing.T) {
	doc := `
- ["4", "5"]
- [{w: 1.5}, "6"]
`
	res := mustRead(t, doc, FormatYAML)
	keys := res.Keyboard.Keys
	if len(keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(keys))
	}
	if got := keyPos(keys[2]); got != (pos{0, 1, 1.5, 1}) {
		t.Errorf("key 2 = %+v", got)
	}
	if keys[1].Label(0) != "5" {
		t.Errorf("key 1 Label(0) = %q", keys[1].Label(0))
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"truncated", `[["A"`},
		{"trailing text", `[["0"]] this is not json`},
		{"second document", `[["0"]] [["1"]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read([]byte(tt.doc), FormatJSON)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}

	if _, err := Read([]byte("[[\"0\"]]\n\n"), FormatJSON); err != nil {
		t.Errorf("trailing whitespace rejected: %v", err)
	}
}

func TestReadYAMLNonFinite(t *testing.T) {
	for _, doc := range []string{
		"- - {w: .inf}\n  - \"0\"\n",
		"- - {y: .nan}\n  - \"0\"\n",
	} {
		_, err := Read([]byte(doc), FormatYAML)
		if !errors.Is(err, errors.ErrCodeInvalidSchema) {
			t.Errorf("Read(%q) error = %v, want INVALID_SCHEMA", doc, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "layout.json")
	if err := os.WriteFile(jsonPath, []byte(`[["0","1"]]`), 0644); err != nil {
		t.Fatal(err)
	}
	res, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if res.Keyboard.Len() != 2 {
		t.Errorf("Len() = %d, want 2", res.Keyboard.Len())
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"a.json":      FormatJSON,
		"a.yaml":      FormatYAML,
		"a.YML":       FormatYAML,
		"layout":      FormatJSON,
		"dir.yaml/ab": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoadExampleLayouts(t *testing.T) {
	tests := []struct {
		file string
		keys int
		name string
	}{
		{"numpad.json", 17, "Numpad"},
		{"thumb-cluster.yaml", 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			res, err := Load(filepath.Join("..", "..", "examples", "layouts", tt.file))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if res.Schema != "kle" || res.Keyboard.Len() != tt.keys {
				t.Errorf("schema = %s, keys = %d, want kle/%d", res.Schema, res.Keyboard.Len(), tt.keys)
			}
			if res.Keyboard.Meta.Name != tt.name {
				t.Errorf("Meta.Name = %q, want %q", res.Keyboard.Meta.Name, tt.name)
			}
		})
	}
}
