// Package pkg provides the libraries behind kbgen.
//
// kbgen turns a keyboard-layout-editor (KLE) layout into the data a keyboard
// visualizer needs at runtime: the position and size of every key, the pixel
// canvas that holds the whole board, and a table mapping each keycode to the
// key that produces it.
//
// # Architecture
//
//	layout.json / layout.yaml
//	         ↓
//	    [kle] package (compact schema, then model schema)
//	         ↓
//	    [geometry] package (canvas size, rotation)
//	    [lookup] package (keycode → key index table)
//	         ↓
//	    [artifact] package (template → src/keyboard.h)
//
// [pipeline] runs those stages in order, [config] supplies defaults from
// kbgen.toml and [errors] carries the error codes the CLI reports.
// [observability] lets an embedding program watch each stage.
//
// [kle]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/kle
// [geometry]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/geometry
// [lookup]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/lookup
// [artifact]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/artifact
// [pipeline]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/config
// [errors]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/errors
// [observability]: https://pkg.go.dev/github.com/klawa/kbgen/pkg/observability
package pkg
