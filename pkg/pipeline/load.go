package pipeline

import (
	"context"

	"github.com/klawa/kbgen/pkg/kle"
)

// Load reads and parses the layout named by opts.Input.
func (r *Runner) Load(ctx context.Context, opts Options) (*kle.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return kle.Load(opts.Input)
}
