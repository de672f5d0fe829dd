package pipeline

import (
	"context"

	"github.com/klawa/kbgen/pkg/artifact"
)

// Emit renders the analyzed result into opts.Output.
func (r *Runner) Emit(ctx context.Context, result *Result, opts Options) error {
	tmpl, err := artifact.LoadTemplate(opts.Template)
	if err != nil {
		return err
	}
	data := artifact.NewData(opts.Input, result.Keyboard.Keys, result.Canvas, result.Lookup)
	if err := ctx.Err(); err != nil {
		return err
	}
	return artifact.WriteFile(opts.Output, tmpl, data)
}
