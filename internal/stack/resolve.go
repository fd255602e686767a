package stack

import (
	"fmt"
	"os"
	"runtime"
)

const (
	// MaxDepth is the hard ceiling on captured frames, bounding the worst
	// case cost and output size of a single trace.
	MaxDepth = 50

	// UnavailableMessage is emitted instead of a trace on builds without
	// the runtime unwinder.
	UnavailableMessage = "stack trace not available"
)

// Resolve converts raw program counters into textual frame descriptions,
// one line per counter, same order.
//
// Lines follow the shape `module(symbol+0xOFF) [0xPC]` where OFF is the
// offset into the function and PC the raw counter. A counter the runtime
// has no function data for yields the address-only form `module() [0xPC]`.
// Resolution never fails; empty input yields nil.
func Resolve(pcs []uintptr) []string {
	if len(pcs) == 0 {
		return nil
	}

	module := moduleName()
	lines := make([]string, 0, len(pcs))
	for _, pc := range pcs {
		// pc is a return address; look up the call instruction so frames
		// sitting on a function's first column still resolve correctly.
		fn := runtime.FuncForPC(pc - 1)
		if fn == nil {
			lines = append(lines, fmt.Sprintf("%s() [%#x]", module, pc))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s(%s+%#x) [%#x]", module, fn.Name(), pc-fn.Entry(), pc))
	}
	return lines
}

// moduleName returns the path of the running binary for frame descriptions.
func moduleName() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "?"
}
