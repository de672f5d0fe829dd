// Package lookup builds the dense keycode to key-index table consumed by
// the visualizer.
//
// The table always has exactly [Size] entries. Entry c holds the index of
// the key bound to keycode c, or [Unbound] when no key claims it. Keys bind
// keycodes through label slot 0, a comma-separated list such as "36,104"
// (one physical key may answer to several raw codes).
//
// When two keys claim the same code the later key in the keyboard wins.
// This is not reported as an error; [Collisions] lists such codes for
// diagnostics.
package lookup

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/klawa/kbgen/pkg/errors"
	"github.com/klawa/kbgen/pkg/kle"
)

const (
	// Size is the number of keycodes the table covers.
	Size = 256

	// Unbound marks a keycode with no visual key.
	Unbound = -1

	// KeycodeSlot is the label slot that carries bound keycodes.
	KeycodeSlot = 0
)

// Table maps keycodes to key indices.
type Table [Size]int

// New returns a table with every entry Unbound.
func New() Table {
	var t Table
	for i := range t {
		t[i] = Unbound
	}
	return t
}

// ParseKeycodes parses a comma-separated keycode list. Whitespace around
// each item is ignored. An empty label yields no codes.
//
// A non-integer item is an INVALID_KEYCODE error; a code outside
// [0, Size) is a KEYCODE_RANGE error.
func ParseKeycodes(label string) ([]int, error) {
	codes, err := parseKeycodes(label)
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func parseKeycodes(label string) ([]int, *errors.Error) {
	if label == "" {
		return nil, nil
	}
	parts := strings.Split(label, ",")
	codes := make([]int, 0, len(parts))
	for _, part := range parts {
		code, err := strconv.Atoi(strings.TrimSpace(part))
		var numErr *strconv.NumError
		if stderrors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return nil, errors.Wrap(errors.ErrCodeKeycodeRange, err,
				"keycode %s out of range [0, %d]", strings.TrimSpace(part), Size-1)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidKeycode, err, "keycode %q in %q", part, label)
		}
		if code < 0 || code >= Size {
			return nil, errors.New(errors.ErrCodeKeycodeRange,
				"keycode %d out of range [0, %d]", code, Size-1)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// Build fills a table from keys in index order. The first invalid keycode
// aborts the build and no table is returned.
func Build(keys []kle.Key) (Table, error) {
	t := New()
	for i, k := range keys {
		codes, err := parseKeycodes(k.Label(KeycodeSlot))
		if err != nil {
			err.Message = fmt.Sprintf("key %d: %s", i, err.Message)
			return Table{}, err
		}
		for _, c := range codes {
			t[c] = i
		}
	}
	return t, nil
}

// Collision records a keycode claimed by more than one key.
type Collision struct {
	Code     int `json:"code"`
	Previous int `json:"previous"` // key index that loses the code
	Winner   int `json:"winner"`   // key index stored in the table
}

// Collisions lists, in encounter order, every time a key claims a keycode
// already claimed by an earlier key. Keys with invalid labels are skipped;
// Build reports those.
func Collisions(keys []kle.Key) []Collision {
	var out []Collision
	owner := New()
	for i, k := range keys {
		codes, err := ParseKeycodes(k.Label(KeycodeSlot))
		if err != nil {
			continue
		}
		for _, c := range codes {
			if prev := owner[c]; prev != Unbound && prev != i {
				out = append(out, Collision{Code: c, Previous: prev, Winner: i})
			}
			owner[c] = i
		}
	}
	return out
}

// Bound returns the number of keycodes that map to a key.
func (t *Table) Bound() int {
	n := 0
	for _, v := range t {
		if v != Unbound {
			n++
		}
	}
	return n
}

// Rows splits the table into consecutive rows of n entries. The last row is
// shorter when n does not divide Size.
func (t *Table) Rows(n int) [][]int {
	if n <= 0 {
		n = Size
	}
	rows := make([][]int, 0, (Size+n-1)/n)
	for i := 0; i < Size; i += n {
		end := min(i+n, Size)
		rows = append(rows, slices.Clone(t[i:end]))
	}
	return rows
}
