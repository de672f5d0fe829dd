package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/klawa/kbgen/pkg/kle"
)

func key(x, y, w, h float64) kle.Key {
	return kle.Key{X: x, Y: y, Width: w, Height: h, Width2: w, Height2: h}
}

func rotated(k kle.Key, angle, rx, ry float64) kle.Key {
	k.RotationAngle, k.RotationX, k.RotationY = angle, rx, ry
	return k
}

func TestCanvasSizeSingleKey(t *testing.T) {
	got := CanvasSize([]kle.Key{key(0, 0, 1, 1)}, DefaultOptions())
	if got != (Canvas{64, 64}) {
		t.Errorf("CanvasSize() = %+v, want {64 64}", got)
	}
}

func TestCanvasSizeUnrotated(t *testing.T) {
	keys := []kle.Key{
		key(0, 0, 1, 1),
		key(1, 0, 2, 1),
		key(0, 1, 1.5, 1),
		key(0.25, 2, 1, 2),
	}
	got := CanvasSize(keys, DefaultOptions())
	// widest: 1+2 = 3 units; tallest: 2+2 = 4 units
	if got != (Canvas{192, 256}) {
		t.Errorf("CanvasSize() = %+v, want {192 256}", got)
	}

	opts := DefaultOptions()
	for _, k := range keys {
		if float64(got.Width) < (k.X+k.Width)*opts.KeyWidth || float64(got.Height) < (k.Y+k.Height)*opts.KeyHeight {
			t.Errorf("canvas %+v does not contain key %+v", got, k)
		}
	}
}

func TestCanvasSizeRotated(t *testing.T) {
	tests := []struct {
		name string
		key  kle.Key
		want Canvas
	}{
		// Rotating 90° about the key's own top-left swings it into negative
		// x, so only the height survives.
		{"90 about origin", rotated(key(0, 0, 1, 1), 90, 0, 0), Canvas{0, 64}},
		// The diagonal ends up pointing straight down: 64·√2 ≈ 90.5.
		{"45 about origin", rotated(key(0, 0, 1, 1), 45, 0, 0), Canvas{45, 90}},
		{"180 about center", rotated(key(1, 1, 1, 1), 180, 1.5, 1.5), Canvas{128, 128}},
		{"offset key 45 about origin", rotated(key(2, 0, 1, 1), 45, 0, 0), Canvas{135, 181}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanvasSize([]kle.Key{tt.key}, DefaultOptions())
			if got != tt.want {
				t.Errorf("CanvasSize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCanvasSizeRotatedExceedsUnrotated(t *testing.T) {
	k := key(0, 0, 1, 1)
	flat := CanvasSize([]kle.Key{k}, DefaultOptions())
	turned := CanvasSize([]kle.Key{rotated(k, 45, 0, 0)}, DefaultOptions())
	if turned.Width <= flat.Width && turned.Height <= flat.Height {
		t.Errorf("rotated canvas %+v does not exceed unrotated %+v on any axis", turned, flat)
	}
}

func TestCanvasSizeMargins(t *testing.T) {
	opts := DefaultOptions()
	opts.MarginX, opts.MarginY = 10, 4
	got := CanvasSize([]kle.Key{key(0, 0, 1, 1)}, opts)
	if got != (Canvas{84, 72}) {
		t.Errorf("CanvasSize() = %+v, want {84 72}", got)
	}
}

func TestCanvasSizeScale(t *testing.T) {
	opts := Options{KeyWidth: 50, KeyHeight: 40}
	got := CanvasSize([]kle.Key{key(1, 1, 2, 1)}, opts)
	if got != (Canvas{150, 80}) {
		t.Errorf("CanvasSize() = %+v, want {150 80}", got)
	}
}

func TestCanvasSizeEmptyAndDegenerate(t *testing.T) {
	if got := CanvasSize(nil, DefaultOptions()); got != (Canvas{}) {
		t.Errorf("CanvasSize(nil) = %+v, want zero", got)
	}
	keys := []kle.Key{key(0, 0, 1, 1), key(0.5, 0.5, 0, -1)}
	if got := CanvasSize(keys, DefaultOptions()); got != (Canvas{64, 64}) {
		t.Errorf("degenerate key changed canvas: %+v", got)
	}
}

func TestCanvasSizeOrderIndependent(t *testing.T) {
	keys := []kle.Key{
		key(0, 0, 1, 1),
		key(3, 0, 2.25, 1),
		rotated(key(5, 2, 1, 1), 30, 5, 2),
		rotated(key(1, 4, 1.5, 1), -15, 0, 4),
		key(0, 3, 1, 2),
	}
	want := CanvasSize(keys, DefaultOptions())

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		shuffled := append([]kle.Key(nil), keys...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := CanvasSize(shuffled, DefaultOptions()); got != want {
			t.Fatalf("shuffle %d: CanvasSize() = %+v, want %+v", i, got, want)
		}
	}
}

func TestRotateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		origin := Point{rng.Float64()*1000 - 500, rng.Float64()*1000 - 500}
		p := Point{rng.Float64()*1000 - 500, rng.Float64()*1000 - 500}
		angle := rng.Float64()*720 - 360

		back := Rotate(origin, Rotate(origin, p, angle), -angle)
		if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
			t.Fatalf("Rotate round trip %+v by %v about %+v = %+v", p, angle, origin, back)
		}
	}
}

func TestRotateClockwise(t *testing.T) {
	// y-down: a point to the right of the origin moves below it.
	got := Rotate(Point{}, Point{X: 10}, 90)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-10) > 1e-9 {
		t.Errorf("Rotate() = %+v, want {0 10}", got)
	}
}

func TestCornersTruncateTowardZero(t *testing.T) {
	corners := Corners(rotated(key(0, 0, 1, 1), 45, 0, 0), DefaultOptions())
	// bottom-left corner lands at (-45.25, 45.25)
	if corners[2] != (Point{-45, 45}) {
		t.Errorf("corners[2] = %+v, want {-45 45}", corners[2])
	}
	for i, c := range corners {
		if c.X != math.Trunc(c.X) || c.Y != math.Trunc(c.Y) {
			t.Errorf("corner %d = %+v is not integral", i, c)
		}
	}
}
