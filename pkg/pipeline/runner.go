package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/klawa/kbgen/pkg/observability"
)

// Runner executes the pipeline and logs each stage.
//
// The Runner holds no state besides its logger and can be reused for any
// number of runs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs load → analyze → build → emit. The context is checked
// between stages; a cancelled run never writes the artifact.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	result := &Result{RunID: uuid.NewString()}
	logger := r.logger(opts).With("run", result.RunID)
	logger.Debug("starting run", "input", opts.Input, "output", opts.Output, "dry_run", opts.DryRun)

	// Stage 1: Load
	start := time.Now()
	hooks.OnLoadStart(ctx, opts.Input)
	loaded, err := r.Load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Input, "", 0, time.Since(start), err)
		return nil, err
	}
	result.Schema = loaded.Schema
	result.Keyboard = loaded.Keyboard
	result.Stats.LoadTime = time.Since(start)
	result.Stats.KeyCount = loaded.Keyboard.Len()
	hooks.OnLoadComplete(ctx, opts.Input, result.Schema, result.Stats.KeyCount, result.Stats.LoadTime, nil)

	logger.Info("loaded layout",
		"keys", result.Stats.KeyCount,
		"schema", result.Schema,
		"duration", result.Stats.LoadTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Analyze
	start = time.Now()
	result.Canvas = r.Analyze(result.Keyboard, opts)
	result.Stats.AnalyzeTime = time.Since(start)
	hooks.OnAnalyzeComplete(ctx, result.Canvas.Width, result.Canvas.Height, result.Stats.AnalyzeTime)

	logger.Info("computed canvas",
		"width", result.Canvas.Width,
		"height", result.Canvas.Height,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Build
	start = time.Now()
	table, collisions, err := r.Build(result.Keyboard)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	result.Lookup = table
	result.Collisions = collisions
	result.Stats.BuildTime = time.Since(start)
	result.Stats.BoundCodes = table.Bound()
	hooks.OnBuildComplete(ctx, result.Stats.BoundCodes, len(collisions), result.Stats.BuildTime, nil)

	for _, c := range collisions {
		logger.Warn("keycode bound to more than one key",
			"code", c.Code, "previous", c.Previous, "winner", c.Winner)
	}
	logger.Info("built lookup table",
		"bound", result.Stats.BoundCodes,
		"collisions", len(collisions),
		"duration", result.Stats.BuildTime)

	if opts.DryRun {
		logger.Debug("dry run, skipping emit")
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Emit
	start = time.Now()
	hooks.OnEmitStart(ctx, opts.Output)
	err = r.Emit(ctx, result, opts)
	result.Stats.EmitTime = time.Since(start)
	hooks.OnEmitComplete(ctx, opts.Output, result.Stats.EmitTime, err)
	if err != nil {
		return nil, err
	}
	result.Output = opts.Output

	logger.Info("wrote artifact",
		"path", result.Output,
		"duration", result.Stats.EmitTime)

	return result, nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
