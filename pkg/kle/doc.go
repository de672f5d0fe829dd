// Package kle loads keyboard-layout-editor (KLE) documents into a normalized
// in-memory model.
//
// # Model
//
// A [Keyboard] is an ordered list of [Key] values. The position of a key in
// [Keyboard.Keys] is its key index: generated artifacts use it as the key's
// identity and emit keys in that order. Loading never reorders keys, and
// nothing downstream mutates a loaded keyboard.
//
// Positions and sizes are in key units (1.0 is one standard key pitch).
// Rotation angles are in degrees, clockwise in screen coordinates, about the
// pivot (RotationX, RotationY).
//
// # Schemas
//
// Two document shapes are accepted and tried in order by [Parse]:
//
//  1. The compact row schema produced by keyboard-layout-editor.com "raw
//     data": an array of rows, each row an array of label strings and
//     property objects, optionally preceded by a metadata object.
//
//     [{"name": "60%"}, ["Esc", "1", {"w": 2}, "Backspace"]]
//
//  2. The model schema: a serialized, fully resolved keyboard.
//
//     {"meta": {"name": "60%"}, "keys": [{"x": 0, "y": 0, "width": 1, ...}]}
//
// The first schema that accepts the document wins. If neither does, Parse
// returns an INVALID_SCHEMA error that names both failures.
//
// # Documents
//
// [Load] reads a file and decodes it as JSON, or as YAML when the file has a
// .yaml or .yml extension. Both decoders produce the same generic tree, so
// schema handling is independent of the encoding.
package kle
