package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/klawa/kbgen/pkg/config"
	"github.com/klawa/kbgen/pkg/geometry"
	"github.com/klawa/kbgen/pkg/pipeline"
)

// generateFlags holds the flags of the root command.
type generateFlags struct {
	input    string
	output   string
	template string
	dryRun   bool
	geometry geometryFlags
}

// geometryFlags holds the flags shared by every command that analyzes a
// layout. They are persistent so inspect sees them too.
type geometryFlags struct {
	config    string
	keyWidth  float64
	keyHeight float64
	marginX   int
	marginY   int
}

func addGeometryFlags(cmd *cobra.Command, g *geometryFlags) {
	def := geometry.DefaultOptions()
	pf := cmd.PersistentFlags()
	pf.StringVar(&g.config, "config", "", "config file (default ./"+config.DefaultFile+" if present)")
	pf.Float64Var(&g.keyWidth, "key-width", def.KeyWidth, "pixels per key unit, horizontal")
	pf.Float64Var(&g.keyHeight, "key-height", def.KeyHeight, "pixels per key unit, vertical")
	pf.IntVar(&g.marginX, "margin-x", def.MarginX, "extra pixels added to each side horizontally")
	pf.IntVar(&g.marginY, "margin-y", def.MarginY, "extra pixels added to each side vertically")
}

// resolve merges flags over the config file. Only flags the user actually set
// override the file.
func (g geometryFlags) resolve(flags *pflag.FlagSet) (config.Config, geometry.Options, error) {
	cfg, err := config.Load(g.config)
	if err != nil {
		return config.Config{}, geometry.Options{}, err
	}
	opts := cfg.GeometryOptions()
	if flags.Changed("key-width") {
		opts.KeyWidth = g.keyWidth
	}
	if flags.Changed("key-height") {
		opts.KeyHeight = g.keyHeight
	}
	if flags.Changed("margin-x") {
		opts.MarginX = g.marginX
	}
	if flags.Changed("margin-y") {
		opts.MarginY = g.marginY
	}
	if err := pipeline.ValidateGeometry(opts); err != nil {
		return config.Config{}, geometry.Options{}, err
	}
	return cfg, opts, nil
}

// options builds pipeline options with precedence flags, config, defaults.
func (gf generateFlags) options(flags *pflag.FlagSet) (pipeline.Options, error) {
	cfg, geo, err := gf.geometry.resolve(flags)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Input:    gf.input,
		Output:   cfg.Output,
		Template: cfg.Template,
		Geometry: geo,
		DryRun:   gf.dryRun,
	}
	if flags.Changed("out") {
		opts.Output = gf.output
	}
	if flags.Changed("template") {
		opts.Template = gf.template
	}
	return opts, nil
}

func (c *CLI) runGenerate(cmd *cobra.Command, gf generateFlags) error {
	opts, err := gf.options(cmd.Flags())
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	result, err := c.newRunner().Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	canvas := fmt.Sprintf("%dx%d", result.Canvas.Width, result.Canvas.Height)
	if result.Output != "" {
		prog.done("Generated "+result.Output, "keys", result.Stats.KeyCount, "canvas", canvas)
		printSuccess(cmd.ErrOrStderr(), "Generated %d keys (%d keycodes bound)",
			result.Stats.KeyCount, result.Stats.BoundCodes)
		printFile(cmd.ErrOrStderr(), result.Output)
	} else {
		prog.done("Dry run complete", "keys", result.Stats.KeyCount, "canvas", canvas)
	}
	for _, col := range result.Collisions {
		printWarning(cmd.ErrOrStderr(), "keycode %d: key %d overrides key %d",
			col.Code, col.Winner, col.Previous)
	}

	fmt.Fprintf(out, "width=%d, height=%d\n", result.Canvas.Width, result.Canvas.Height)
	return nil
}
