// Package observability provides hooks for instrumenting kbgen runs.
//
// The pipeline reports each stage through a PipelineHooks value. The
// default is a no-op; an embedding program registers its own hooks once at
// startup to feed metrics or tracing without kbgen importing a backend.
//
//	func main() {
//	    observability.SetPipelineHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnLoadStart(ctx, path)
//	// ... load ...
//	observability.Pipeline().OnLoadComplete(ctx, path, schema, keys, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the generation pipeline.
type PipelineHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path, schema string, keyCount int, duration time.Duration, err error)

	// Analyze runs in memory and cannot fail.
	OnAnalyzeComplete(ctx context.Context, width, height int, duration time.Duration)

	// Build events. collisions counts keycodes claimed by more than one key.
	OnBuildComplete(ctx context.Context, bound, collisions int, duration time.Duration, err error)

	// Emit events
	OnEmitStart(ctx context.Context, path string)
	OnEmitComplete(ctx context.Context, path string, duration time.Duration, err error)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string) {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnAnalyzeComplete(context.Context, int, int, time.Duration)      {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnEmitStart(context.Context, string)                             {}
func (NoopPipelineHooks) OnEmitComplete(context.Context, string, time.Duration, error)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any run.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores the no-op hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
