package pipeline

import (
	"github.com/klawa/kbgen/pkg/geometry"
	"github.com/klawa/kbgen/pkg/kle"
	"github.com/klawa/kbgen/pkg/lookup"
)

// Analyze computes the canvas size for kb.
func (r *Runner) Analyze(kb *kle.Keyboard, opts Options) geometry.Canvas {
	return geometry.CanvasSize(kb.Keys, opts.Geometry)
}

// Build creates the keycode lookup table for kb along with the list of
// keycodes claimed by more than one key.
func (r *Runner) Build(kb *kle.Keyboard) (lookup.Table, []lookup.Collision, error) {
	table, err := lookup.Build(kb.Keys)
	if err != nil {
		return lookup.Table{}, nil, err
	}
	return table, lookup.Collisions(kb.Keys), nil
}
