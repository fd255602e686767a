package dout

import (
	"github.com/fresco-dev/dout/internal/safe"
	"github.com/fresco-dev/dout/internal/stack"
)

// StackOption adjusts a single trace emission.
type StackOption func(*stackConfig)

type stackConfig struct {
	maxFrames int
	compact   bool
	skip      int
}

// Depth caps the number of frames emitted for this trace.
func Depth(n int) StackOption {
	return func(c *stackConfig) { c.maxFrames = n }
}

// Compact switches to compact output: only function names, no header or
// offset metadata.
func Compact(on bool) StackOption {
	return func(c *stackConfig) { c.compact = on }
}

// Skip sets the number of innermost frames excluded from the trace. The
// default of 1 hides the Stack call itself; 0 includes it.
func Skip(n int) StackOption {
	return func(c *stackConfig) { c.skip = n }
}

// Stack captures and prints a stack trace of the calling goroutine.
// Defaults: up to 50 frames, verbose layout, the Stack call itself
// excluded.
//
//go:noinline
func (p *Printer) Stack(opts ...StackOption) {
	p.stackTrace(opts...)
}

// Func prints the name of the calling function, one compact frame.
//
//go:noinline
func (p *Printer) Func() {
	p.stackTrace(Depth(1), Compact(true), Skip(1))
}

// stackTrace runs the capture, resolve, parse, demangle, format pipeline.
// It must be called directly by an exported method (or package-level
// wrapper) so the skip arithmetic lands on the caller's frames. Inlining
// would collapse the frames that arithmetic relies on.
//
//go:noinline
func (p *Printer) stackTrace(opts ...StackOption) {
	cfg := stackConfig{maxFrames: p.maxFrames, skip: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.skip, _ = safe.ClampNonNegative(cfg.skip)

	if !stack.Available() {
		p.write(stack.UnavailableMessage + "\n")
		return
	}

	// One extra frame hides stackTrace itself, so a skip of zero starts
	// at the exported wrapper, matching the historical begin parameter.
	pcs := stack.Capture(cfg.maxFrames, cfg.skip+1)
	lines := stack.Resolve(pcs)
	for _, line := range p.formatter.Format(lines, stack.Options{
		MaxFrames: cfg.maxFrames,
		Compact:   cfg.compact,
	}) {
		p.write(line + "\n")
	}
}
