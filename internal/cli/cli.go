// Package cli implements the kbgen command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/klawa/kbgen/pkg/buildinfo"
	"github.com/klawa/kbgen/pkg/config"
	"github.com/klawa/kbgen/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself generates the keyboard header.
func (c *CLI) RootCommand() *cobra.Command {
	var gf generateFlags

	root := &cobra.Command{
		Use:   "kbgen",
		Short: "kbgen turns keyboard layouts into visualizer data",
		Long: `kbgen reads a keyboard-layout-editor layout and writes a C header with
per-key geometry, the canvas size and a keycode to key lookup table.`,
		Args:          cobra.NoArgs,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runGenerate(cmd, gf)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().StringVarP(&gf.input, "in", "i", "", "keyboard layout file (.json, .yaml)")
	root.Flags().StringVarP(&gf.output, "out", "o", "", "output header path (default "+config.DefaultOutput+")")
	root.Flags().StringVar(&gf.template, "template", "", "custom text/template for the header")
	root.Flags().BoolVar(&gf.dryRun, "dry-run", false, "analyze only, write nothing")
	_ = root.MarkFlagRequired("in")
	completeLayoutFiles(root)

	addGeometryFlags(root, &gf.geometry)

	root.AddCommand(c.inspectCommand(&gf.geometry))
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
