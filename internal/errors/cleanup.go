// Package errors provides utilities for error handling in dout.
package errors

import (
	"io"

	"github.com/rs/zerolog"
)

// CloseQuietly closes an io.Closer, logging any error at warn level.
// Meant for inline use when replacing an owned resource with a new one,
// where a close failure must not interrupt the replacement.
func CloseQuietly(logger zerolog.Logger, closer io.Closer, what string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logger.Warn().Err(err).Str("resource", what).Msg("close failed")
	}
}
