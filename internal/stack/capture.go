//go:build !noexecinfo
// +build !noexecinfo

package stack

import (
	"runtime"
)

// Available reports whether stack capture is compiled into this build.
func Available() bool {
	return true
}

// Capture returns the raw program counters of the current call stack,
// innermost first.
//
// At most maxFrames counters are returned, capped at MaxDepth. The first
// skip frames above Capture's caller are dropped; skip >= the actual stack
// depth yields nil. A skip of 0 starts at Capture's direct caller.
//
//go:noinline
func Capture(maxFrames, skip int) []uintptr {
	if maxFrames <= 0 {
		return nil
	}
	if maxFrames > MaxDepth {
		maxFrames = MaxDepth
	}
	if skip < 0 {
		skip = 0
	}

	// Request skip extra counters so dropping the innermost frames still
	// leaves maxFrames of them. The +2 excludes runtime.Callers and
	// Capture itself.
	pcs := make([]uintptr, maxFrames+skip)
	n := runtime.Callers(2, pcs)
	if n <= skip {
		return nil
	}
	return pcs[skip:n]
}
