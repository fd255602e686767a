package errors

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type trackedCloser struct {
	closed bool
	err    error
}

func (c *trackedCloser) Close() error {
	c.closed = true
	return c.err
}

func TestCloseQuietly(t *testing.T) {
	c := &trackedCloser{}
	CloseQuietly(zerolog.Nop(), c, "log file")
	assert.True(t, c.closed)
}

func TestCloseQuietlyNil(t *testing.T) {
	assert.NotPanics(t, func() {
		CloseQuietly(zerolog.Nop(), nil, "log file")
	})
}

func TestCloseQuietlyWithError(t *testing.T) {
	c := &trackedCloser{err: fmt.Errorf("disk gone")}
	assert.NotPanics(t, func() {
		CloseQuietly(zerolog.Nop(), c, "log file")
	})
	assert.True(t, c.closed)
}
