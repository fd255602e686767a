//go:build unix
// +build unix

// Package sigtrap installs handlers for fatal signals that emit a stack
// trace before the process dies with the signal's default disposition.
//
// The Go runtime turns synchronous SIGSEGV/SIGFPE/SIGBUS raised by faulting
// instructions into run-time panics before os/signal sees them, so the trap
// observes signals delivered asynchronously (kill(2), raise(2), SIGABRT
// from abort, SIGSYS from seccomp). That covers the crash-report cases a
// Go program cannot already diagnose through its own panic traceback.
package sigtrap

import (
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Handler emits a crash trace for sig to w. It runs on the trap's own
// goroutine with a writer it owns exclusively; it must not touch shared
// printer state that the interrupted program may have been mutating.
type Handler func(sig os.Signal, w io.Writer)

// fatalSignals are the trapped dispositions: abnormal termination,
// floating-point exception, segmentation violation, bad system call.
var fatalSignals = []os.Signal{
	unix.SIGABRT,
	unix.SIGFPE,
	unix.SIGSEGV,
	unix.SIGSYS,
}

var (
	mu        sync.Mutex
	installed bool
	notify    chan os.Signal
)

// Install arms the trap. The first fatal signal delivered runs handle with
// os.Stderr, then restores the default disposition for that signal and
// re-delivers it so the process terminates with the expected exit
// semantics (core dump included). Calling Install again while armed is a
// no-op.
func Install(handle Handler, logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if installed {
		return
	}
	installed = true

	log := logger.With().Str("component", "sigtrap").Logger()

	notify = make(chan os.Signal, 1)
	signal.Notify(notify, fatalSignals...)
	log.Debug().Msg("fatal signal trap armed")

	go monitor(notify, handle, log)
}

func monitor(ch chan os.Signal, handle Handler, log zerolog.Logger) {
	sig, ok := <-ch
	if !ok {
		return
	}

	log.Error().Str("signal", sig.String()).Msg("fatal signal received, emitting stack trace")
	handle(sig, os.Stderr)

	// Restore the default disposition and re-deliver, so exit status and
	// core dump behavior match an untrapped process.
	signal.Stop(ch)
	signal.Reset(sig)
	if s, isUnix := sig.(unix.Signal); isUnix {
		_ = unix.Kill(unix.Getpid(), s)
	}
}

// Installed reports whether the trap is currently armed.
func Installed() bool {
	mu.Lock()
	defer mu.Unlock()
	return installed
}

// Uninstall disarms the trap and restores default dispositions. Intended
// for tests; a normal process keeps the trap until exit.
func Uninstall() {
	mu.Lock()
	defer mu.Unlock()
	if !installed {
		return
	}
	installed = false

	signal.Stop(notify)
	signal.Reset(fatalSignals...)
	close(notify)
	notify = nil
}
