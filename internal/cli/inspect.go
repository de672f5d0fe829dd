package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/klawa/kbgen/pkg/errors"
	"github.com/klawa/kbgen/pkg/geometry"
	"github.com/klawa/kbgen/pkg/lookup"
	"github.com/klawa/kbgen/pkg/pipeline"
)

const (
	formatText = "text"
	formatJSON = "json"
)

// inspectReport is the machine-readable form of the inspect command.
type inspectReport struct {
	Input      string             `json:"input"`
	Schema     string             `json:"schema"`
	Canvas     geometry.Canvas    `json:"canvas"`
	Keys       []inspectKey       `json:"keys"`
	Bound      map[string]int     `json:"bound"`
	Collisions []lookup.Collision `json:"collisions"`
}

type inspectKey struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"rotation_angle,omitempty"`
	Codes  []int   `json:"codes"`
}

// inspectCommand creates the inspect command, which loads and analyzes a
// layout without writing anything.
func (c *CLI) inspectCommand(geo *geometryFlags) *cobra.Command {
	var input, format string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the canvas, keys and keycode bindings of a layout",
		Long: `Inspect loads a layout, computes the canvas and builds the keycode lookup
table exactly like generation does, then prints the result instead of
writing a header.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatText && format != formatJSON {
				return errors.New(errors.ErrCodeInvalidInput,
					"unknown format %q (want %s or %s)", format, formatText, formatJSON)
			}
			_, opts, err := geo.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			result, err := c.newRunner().Execute(cmd.Context(), pipeline.Options{
				Input:    input,
				Geometry: opts,
				DryRun:   true,
			})
			if err != nil {
				return err
			}
			report := newInspectReport(input, result)
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			printInspect(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "in", "i", "", "keyboard layout file (.json, .yaml)")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	_ = cmd.MarkFlagRequired("in")
	completeLayoutFiles(cmd)

	return cmd
}

func newInspectReport(input string, result *pipeline.Result) inspectReport {
	report := inspectReport{
		Input:      input,
		Schema:     result.Schema,
		Canvas:     result.Canvas,
		Keys:       make([]inspectKey, 0, result.Keyboard.Len()),
		Bound:      make(map[string]int),
		Collisions: result.Collisions,
	}
	if report.Collisions == nil {
		report.Collisions = []lookup.Collision{}
	}
	for i, k := range result.Keyboard.Keys {
		// Build already succeeded, so every label parses.
		codes, _ := lookup.ParseKeycodes(k.Label(lookup.KeycodeSlot))
		if codes == nil {
			codes = []int{}
		}
		report.Keys = append(report.Keys, inspectKey{
			Index:  i,
			X:      k.X,
			Y:      k.Y,
			Width:  k.Width,
			Height: k.Height,
			Angle:  k.RotationAngle,
			Codes:  codes,
		})
	}
	for code, idx := range result.Lookup {
		if idx != lookup.Unbound {
			report.Bound[strconv.Itoa(code)] = idx
		}
	}
	return report
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}
	return nil
}

func printInspect(w io.Writer, r inspectReport) {
	printTitle(w, r.Input)
	printKeyValue(w, "Schema", r.Schema)
	printKeyValue(w, "Canvas", fmt.Sprintf("%dx%d", r.Canvas.Width, r.Canvas.Height))
	printKeyValue(w, "Keys", strconv.Itoa(len(r.Keys)))
	printKeyValue(w, "Bound", strconv.Itoa(len(r.Bound)))
	fmt.Fprintln(w)

	for _, k := range r.Keys {
		codes := make([]string, len(k.Codes))
		for i, c := range k.Codes {
			codes[i] = strconv.Itoa(c)
		}
		line := fmt.Sprintf("%4d  %6.2f %6.2f  %5.2fx%-5.2f", k.Index, k.X, k.Y, k.Width, k.Height)
		if k.Angle != 0 {
			line += fmt.Sprintf("  r=%g", k.Angle)
		}
		fmt.Fprintln(w, StyleDim.Render(line)+"  "+StyleNumber.Render(strings.Join(codes, ",")))
	}

	for _, col := range r.Collisions {
		printWarning(w, "keycode %d: key %d overrides key %d", col.Code, col.Winner, col.Previous)
	}
}
