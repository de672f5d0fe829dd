package kle

import (
	"fmt"
	"slices"
	"strings"
)

// defaultAlign centers the front legends, which is what keyboard-layout-editor
// assumes when a document never sets "a".
const defaultAlign = 4

// labelMap maps a legend's position in a label string to its slot, for each
// of the eight alignment modes. -1 drops the legend.
var labelMap = [8][LabelSlots]int{
	{0, 6, 2, 8, 9, 11, 3, 5, 1, 4, 7, 10},       // no centering
	{1, 7, -1, -1, 9, 11, 4, -1, -1, -1, -1, 10}, // center x
	{3, -1, 5, -1, 9, 11, -1, -1, 4, -1, -1, 10}, // center y
	{4, -1, -1, -1, 9, 11, -1, -1, -1, -1, -1, 10},
	{0, 6, 2, 8, 10, -1, 3, 5, 1, 4, 7, -1}, // center front
	{1, 7, -1, -1, 10, -1, 4, -1, -1, -1, -1, -1},
	{3, -1, 5, -1, 10, -1, -1, -1, 4, -1, -1, -1},
	{4, -1, -1, -1, 10, -1, -1, -1, -1, -1, -1, -1},
}

// ParseCompact builds a Keyboard from the keyboard-layout-editor row schema.
// doc is the decoded document tree: rows are []any, property objects and
// the optional leading metadata object are map[string]any.
func ParseCompact(doc any) (*Keyboard, error) {
	rows, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array of rows, got %s", typeName(doc))
	}

	p := compactParser{cur: defaultKey(), align: defaultAlign}
	kb := &Keyboard{}
	for r, row := range rows {
		switch row := row.(type) {
		case []any:
			for k, item := range row {
				if err := p.item(kb, k, item); err != nil {
					return nil, fmt.Errorf("row %d, item %d: %w", r, k, err)
				}
			}
			p.cur.Y++
			p.cur.X = p.cur.RotationX
		case map[string]any:
			if r != 0 {
				return nil, fmt.Errorf("row %d: metadata is only allowed before the first row", r)
			}
			if err := remarshal(row, &kb.Meta); err != nil {
				return nil, fmt.Errorf("metadata: %w", err)
			}
		default:
			return nil, fmt.Errorf("row %d: expected array or object, got %s", r, typeName(row))
		}
	}
	return kb, nil
}

// compactParser carries the running key state across a document. Every
// label string emits a copy of cur, and property objects modify cur.
type compactParser struct {
	cur      Key
	align    int
	clusterX float64
	clusterY float64
}

func (p *compactParser) item(kb *Keyboard, k int, item any) error {
	switch v := item.(type) {
	case string:
		p.emit(kb, v)
		return nil
	case map[string]any:
		return p.props(k, v)
	default:
		return fmt.Errorf("expected label string or property object, got %s", typeName(item))
	}
}

func (p *compactParser) emit(kb *Keyboard, label string) {
	key := p.cur
	if key.Width2 == 0 {
		key.Width2 = p.cur.Width
	}
	if key.Height2 == 0 {
		key.Height2 = p.cur.Height
	}
	key.Labels = reorder(strings.Split(label, "\n"), p.align)
	key.TextSize = reorder(p.cur.TextSize, p.align)
	key.TextColor = slices.Clone(p.cur.TextColor)
	kb.Keys = append(kb.Keys, key)

	p.cur.X += p.cur.Width
	p.cur.Width, p.cur.Height = 1, 1
	p.cur.X2, p.cur.Y2, p.cur.Width2, p.cur.Height2 = 0, 0, 0, 0
	p.cur.Nub, p.cur.Stepped, p.cur.Decal = false, false, false
}

// props applies a property object. Properties are applied in a fixed order
// so that rx/ry reset the position before x/y offsets are added.
func (p *compactParser) props(k int, m map[string]any) error {
	for _, name := range []string{"r", "rx", "ry"} {
		if _, ok := m[name]; ok && k != 0 {
			return fmt.Errorf("%q can only be used on the first key in a row", name)
		}
	}

	pr := propReader{m: m}
	if v, ok := pr.number("r"); ok {
		p.cur.RotationAngle = v
	}
	if v, ok := pr.number("rx"); ok {
		p.cur.RotationX = v
		p.clusterX = v
		p.cur.X, p.cur.Y = p.clusterX, p.clusterY
	}
	if v, ok := pr.number("ry"); ok {
		p.cur.RotationY = v
		p.clusterY = v
		p.cur.X, p.cur.Y = p.clusterX, p.clusterY
	}
	if v, ok := pr.number("a"); ok {
		a := int(v)
		if float64(a) != v || a < 0 || a >= len(labelMap) {
			return fmt.Errorf("invalid alignment %v", v)
		}
		p.align = a
	}
	if v, ok := pr.number("f"); ok && v != 0 {
		p.cur.Default.TextSize = v
		p.cur.TextSize = nil
	}
	if v, ok := pr.number("f2"); ok && v != 0 {
		sizes := make([]float64, LabelSlots)
		copy(sizes, p.cur.TextSize)
		for i := 1; i < LabelSlots; i++ {
			sizes[i] = v
		}
		p.cur.TextSize = sizes
	}
	if v, ok := pr.numbers("fa"); ok && len(v) > 0 {
		p.cur.TextSize = v
	}
	if v, ok := pr.str("p"); ok && v != "" {
		p.cur.Profile = v
	}
	if v, ok := pr.str("c"); ok && v != "" {
		p.cur.Color = v
	}
	if v, ok := pr.str("t"); ok && v != "" {
		split := strings.Split(v, "\n")
		if split[0] != "" {
			p.cur.Default.TextColor = split[0]
		}
		p.cur.TextColor = reorder(split, p.align)
	}
	if v, ok := pr.number("x"); ok {
		p.cur.X += v
	}
	if v, ok := pr.number("y"); ok {
		p.cur.Y += v
	}
	if v, ok := pr.number("w"); ok && v != 0 {
		p.cur.Width, p.cur.Width2 = v, v
	}
	if v, ok := pr.number("h"); ok && v != 0 {
		p.cur.Height, p.cur.Height2 = v, v
	}
	if v, ok := pr.number("x2"); ok && v != 0 {
		p.cur.X2 = v
	}
	if v, ok := pr.number("y2"); ok && v != 0 {
		p.cur.Y2 = v
	}
	if v, ok := pr.number("w2"); ok && v != 0 {
		p.cur.Width2 = v
	}
	if v, ok := pr.number("h2"); ok && v != 0 {
		p.cur.Height2 = v
	}
	if v, ok := pr.boolean("n"); ok && v {
		p.cur.Nub = v
	}
	if v, ok := pr.boolean("l"); ok && v {
		p.cur.Stepped = v
	}
	if v, ok := pr.boolean("d"); ok && v {
		p.cur.Decal = v
	}
	if v, ok := pr.boolean("g"); ok {
		p.cur.Ghost = v
	}
	if v, ok := pr.str("sm"); ok && v != "" {
		p.cur.SM = v
	}
	if v, ok := pr.str("sb"); ok && v != "" {
		p.cur.SB = v
	}
	if v, ok := pr.str("st"); ok && v != "" {
		p.cur.ST = v
	}
	return pr.err
}

// reorder places the i-th input legend into its slot for the given
// alignment. Empty legends and legends that map to no slot are dropped.
func reorder[T comparable](in []T, align int) []T {
	if len(in) == 0 {
		return nil
	}
	var zero T
	out := make([]T, LabelSlots)
	for i, v := range in {
		if i >= LabelSlots || v == zero {
			continue
		}
		if slot := labelMap[align][i]; slot >= 0 {
			out[slot] = v
		}
	}
	return out
}

// propReader extracts typed properties from an object and remembers the
// first type mismatch.
type propReader struct {
	m   map[string]any
	err error
}

func (r *propReader) fail(name string, v any, want string) {
	if r.err == nil {
		r.err = fmt.Errorf("property %q: expected %s, got %s", name, want, typeName(v))
	}
}

func (r *propReader) number(name string) (float64, bool) {
	v, ok := r.m[name]
	if !ok {
		return 0, false
	}
	n, ok := toFloat(v)
	if !ok {
		r.fail(name, v, "number")
		return 0, false
	}
	return n, true
}

func (r *propReader) numbers(name string) ([]float64, bool) {
	v, ok := r.m[name]
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	if !ok {
		r.fail(name, v, "array of numbers")
		return nil, false
	}
	out := make([]float64, len(list))
	for i, item := range list {
		n, ok := toFloat(item)
		if !ok {
			r.fail(name, item, "number")
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func (r *propReader) str(name string) (string, bool) {
	v, ok := r.m[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, v, "string")
		return "", false
	}
	return s, true
}

func (r *propReader) boolean(name string) (bool, bool) {
	v, ok := r.m[name]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(name, v, "boolean")
		return false, false
	}
	return b, true
}
