package dout

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/fresco-dev/dout/internal/sigtrap"
	"github.com/fresco-dev/dout/internal/stack"
)

// EnableCrashReports arms a trap for fatal signals (SIGABRT, SIGFPE,
// SIGSEGV, SIGSYS). When one is delivered, a stack trace and a dump of all
// goroutines are written to stderr, then the signal's default disposition
// is restored and the signal re-delivered so the process terminates with
// its usual exit semantics.
//
// The trap never reuses this Printer: the signal may have interrupted the
// program mid-mutation of shared printer state, so the report is emitted
// through a freshly constructed instance bound to stderr.
//
// Note that the Go runtime converts synchronous faults (a nil-pointer
// dereference, an integer divide by zero) into panics with their own
// traceback before a signal handler can see them; the trap reports the
// fatal signals that arrive asynchronously.
func (p *Printer) EnableCrashReports() {
	sigtrap.Install(crashHandler(p.logger), p.logger)
}

// crashHandler builds the sigtrap callback. Split out so the closure
// captures only the logger, not the originating Printer.
func crashHandler(logger zerolog.Logger) sigtrap.Handler {
	return func(sig os.Signal, w io.Writer) {
		crash := New(WithOutput(w), WithNoColor(), WithLogger(logger))
		crash.write(fmt.Sprintf("dout: caught %s, stack trace follows\n", sig))
		crash.stackTrace(Depth(stack.MaxDepth), Skip(1))
		crash.write("goroutine dump:\n")
		crash.write(string(allGoroutines()))
	}
}

// allGoroutines returns the runtime traceback of every goroutine. The trap
// goroutine's own stack says nothing about what the program was doing when
// the signal arrived; the full dump does.
func allGoroutines() []byte {
	buf := make([]byte, 64<<10)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}
