// Package geometry computes the pixel canvas needed to draw a keyboard.
//
// Key positions are in key units and are scaled to pixels by a fixed
// per-axis key size (64px by default). Pixel space is y-down, so positive
// rotation angles turn keys clockwise on screen.
//
// # Canvas size
//
// [CanvasSize] tracks the largest x and y reached by any key:
//
//   - An unrotated key contributes its bottom-right corner only. For an
//     axis-aligned rectangle anchored at its top-left that corner is always
//     the extreme one.
//   - A rotated key contributes all four corners of its primary rectangle,
//     each rotated about the key's pivot and truncated toward zero.
//
// Maxima start at zero and only grow, so the result does not depend on key
// order, and keys with zero or negative size never shrink the canvas. The
// configured margins are added on both sides of each axis.
package geometry

import (
	"math"

	"github.com/klawa/kbgen/pkg/kle"
)

const (
	// DefaultKeyWidth is the pixel width of one key unit.
	DefaultKeyWidth = 64.0

	// DefaultKeyHeight is the pixel height of one key unit.
	DefaultKeyHeight = 64.0
)

// Options controls the key-unit to pixel conversion.
type Options struct {
	KeyWidth  float64 // pixels per key unit along x
	KeyHeight float64 // pixels per key unit along y
	MarginX   int     // padding added to the left and right
	MarginY   int     // padding added to the top and bottom
}

// DefaultOptions returns 64x64 pixel keys with no margins.
func DefaultOptions() Options {
	return Options{KeyWidth: DefaultKeyWidth, KeyHeight: DefaultKeyHeight}
}

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Canvas is the size of the rendering surface in pixels.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rotate turns p about origin by angle degrees.
func Rotate(origin, p Point, angle float64) Point {
	rad := angle * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-origin.X, p.Y-origin.Y
	return Point{
		X: origin.X + cos*dx - sin*dy,
		Y: origin.Y + sin*dx + cos*dy,
	}
}

// Corners returns the pixel-space corners of k's primary rectangle in the
// order top-left, top-right, bottom-left, bottom-right (before rotation).
// For rotated keys each corner is rotated about the key's pivot and
// truncated toward zero.
func Corners(k kle.Key, opts Options) [4]Point {
	x1 := opts.KeyWidth * k.X
	x2 := opts.KeyWidth*k.X + opts.KeyWidth*k.Width
	y1 := opts.KeyHeight * k.Y
	y2 := opts.KeyHeight*k.Y + opts.KeyHeight*k.Height

	corners := [4]Point{{x1, y1}, {x2, y1}, {x1, y2}, {x2, y2}}
	if !k.Rotated() {
		return corners
	}

	pivot := Point{opts.KeyWidth * k.RotationX, opts.KeyHeight * k.RotationY}
	for i, c := range corners {
		r := Rotate(pivot, c, k.RotationAngle)
		corners[i] = Point{math.Trunc(r.X), math.Trunc(r.Y)}
	}
	return corners
}

// Extent returns the largest x and y that k reaches on the canvas.
func Extent(k kle.Key, opts Options) Point {
	corners := Corners(k, opts)
	if !k.Rotated() {
		return corners[3]
	}
	ext := corners[0]
	for _, c := range corners[1:] {
		ext.X = math.Max(ext.X, c.X)
		ext.Y = math.Max(ext.Y, c.Y)
	}
	return ext
}

// CanvasSize returns the canvas that contains every key plus margins.
func CanvasSize(keys []kle.Key, opts Options) Canvas {
	var maxX, maxY float64
	for _, k := range keys {
		ext := Extent(k, opts)
		maxX = math.Max(maxX, ext.X)
		maxY = math.Max(maxY, ext.Y)
	}
	return Canvas{
		Width:  int(maxX) + 2*opts.MarginX,
		Height: int(maxY) + 2*opts.MarginY,
	}
}
