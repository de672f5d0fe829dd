// Package pipeline provides the keyboard generation pipeline for kbgen.
//
// The pipeline is a single linear pass with four stages:
//
//  1. Load: read the layout document and parse it into a keyboard, trying the
//     compact KLE schema and then the model schema
//  2. Analyze: compute the pixel canvas that contains every key
//  3. Build: build the 256-entry keycode to key-index lookup table
//  4. Emit: render key rows and lookup rows into the output artifact
//
// Every error is fatal and stops the run before the artifact is touched.
// Analyze and Build only read the loaded keyboard and do not depend on each
// other.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:  "layouts/60.json",
//	    Output: "src/keyboard.h",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("width=%d, height=%d\n", result.Canvas.Width, result.Canvas.Height)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/klawa/kbgen/pkg/config"
	"github.com/klawa/kbgen/pkg/errors"
	"github.com/klawa/kbgen/pkg/geometry"
	"github.com/klawa/kbgen/pkg/kle"
	"github.com/klawa/kbgen/pkg/lookup"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a generation run.
type Options struct {
	Input    string           `json:"input"`
	Output   string           `json:"output,omitempty"`
	Template string           `json:"template,omitempty"` // empty selects the built-in header template
	Geometry geometry.Options `json:"geometry"`
	DryRun   bool             `json:"dry_run,omitempty"` // analyze only, write nothing

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and validates the options.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Output == "" {
		o.Output = config.DefaultOutput
	}
	if o.Geometry.KeyWidth == 0 {
		o.Geometry.KeyWidth = geometry.DefaultKeyWidth
	}
	if o.Geometry.KeyHeight == 0 {
		o.Geometry.KeyHeight = geometry.DefaultKeyHeight
	}

	if err := errors.ValidateInputPath(o.Input); err != nil {
		return err
	}
	if !o.DryRun {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}
	if err := ValidateGeometry(o.Geometry); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateGeometry checks that key sizes are positive and margins are not
// negative.
func ValidateGeometry(g geometry.Options) error {
	if g.KeyWidth <= 0 || g.KeyHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"key size must be positive, got %vx%v", g.KeyWidth, g.KeyHeight)
	}
	if g.MarginX < 0 || g.MarginY < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"margins cannot be negative, got %d,%d", g.MarginX, g.MarginY)
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string

	// Schema is the name of the layout schema that accepted the input.
	Schema string

	// Keyboard is the loaded layout.
	Keyboard *kle.Keyboard

	// Canvas is the pixel size needed to draw every key.
	Canvas geometry.Canvas

	// Lookup maps keycodes to key indices.
	Lookup lookup.Table

	// Collisions lists keycodes claimed by more than one key.
	Collisions []lookup.Collision

	// Output is the path written, or empty for a dry run.
	Output string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	KeyCount    int
	BoundCodes  int
	LoadTime    time.Duration
	AnalyzeTime time.Duration
	BuildTime   time.Duration
	EmitTime    time.Duration
}
