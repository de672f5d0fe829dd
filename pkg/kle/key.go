package kle

// LabelSlots is the number of legend positions on a key.
const LabelSlots = 12

// Key is one physical key.
type Key struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Secondary rectangle for stepped and non-rectangular keys (ISO enter).
	X2      float64 `json:"x2"`
	Y2      float64 `json:"y2"`
	Width2  float64 `json:"width2"`
	Height2 float64 `json:"height2"`

	RotationAngle float64 `json:"rotation_angle"`
	RotationX     float64 `json:"rotation_x"`
	RotationY     float64 `json:"rotation_y"`

	// Labels holds the legends in slot order. Slot 0 carries the
	// comma-separated keycodes bound to the key.
	Labels []string `json:"labels"`

	Color     string     `json:"color,omitempty"`
	TextColor []string   `json:"textColor,omitempty"`
	TextSize  []float64  `json:"textSize,omitempty"`
	Default   KeyDefault `json:"default"`
	Profile   string     `json:"profile,omitempty"`
	Nub       bool       `json:"nub,omitempty"`
	Stepped   bool       `json:"stepped,omitempty"`
	Decal     bool       `json:"decal,omitempty"`
	Ghost     bool       `json:"ghost,omitempty"`
	SM        string     `json:"sm,omitempty"`
	SB        string     `json:"sb,omitempty"`
	ST        string     `json:"st,omitempty"`
}

// KeyDefault holds the text defaults that apply to slots with no override.
type KeyDefault struct {
	TextColor string  `json:"textColor"`
	TextSize  float64 `json:"textSize"`
}

// Label returns the legend in slot i, or "" if the slot is empty.
func (k Key) Label(i int) string {
	if i < 0 || i >= len(k.Labels) {
		return ""
	}
	return k.Labels[i]
}

// Rotated reports whether the key has a non-zero rotation angle.
func (k Key) Rotated() bool { return k.RotationAngle != 0 }

// Meta is the keyboard-wide metadata.
type Meta struct {
	Author      string `json:"author,omitempty"`
	Backcolor   string `json:"backcolor,omitempty"`
	Background  any    `json:"background,omitempty"`
	Name        string `json:"name,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Radii       string `json:"radii,omitempty"`
	SwitchMount string `json:"switchMount,omitempty"`
	SwitchBrand string `json:"switchBrand,omitempty"`
	SwitchType  string `json:"switchType,omitempty"`
	CSS         string `json:"css,omitempty"`
	PCB         bool   `json:"pcb,omitempty"`
	Plate       bool   `json:"plate,omitempty"`
}

// Keyboard is an ordered sequence of keys. A key's index in Keys is its
// identity in generated artifacts.
type Keyboard struct {
	Meta Meta  `json:"meta"`
	Keys []Key `json:"keys"`
}

// Len returns the number of keys.
func (kb *Keyboard) Len() int { return len(kb.Keys) }

func defaultKey() Key {
	return Key{
		Width:  1,
		Height: 1,
		Color:  "#cccccc",
		Default: KeyDefault{
			TextColor: "#000000",
			TextSize:  3,
		},
	}
}
