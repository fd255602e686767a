//go:build !unix
// +build !unix

package sigtrap

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Handler emits a crash trace for sig to w (stub for non-unix platforms).
type Handler func(sig os.Signal, w io.Writer)

// Install is a no-op on platforms without unix signal semantics.
func Install(handle Handler, logger zerolog.Logger) {
	logger.Debug().Msg("fatal signal trap not supported on this platform")
}

// Installed reports whether the trap is armed; always false here.
func Installed() bool {
	return false
}

// Uninstall is a no-op on platforms without unix signal semantics.
func Uninstall() {}
