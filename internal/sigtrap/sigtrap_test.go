//go:build unix
// +build unix

package sigtrap

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/fresco-dev/dout/internal/testutil"
)

func TestInstallIdempotent(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	calls := 0

	Install(func(os.Signal, io.Writer) { calls++ }, logger)
	defer Uninstall()
	require.True(t, Installed())

	// Second install must not re-arm or spawn another monitor.
	Install(func(os.Signal, io.Writer) { calls++ }, logger)
	assert.True(t, Installed())
}

func TestUninstall(t *testing.T) {
	Install(func(os.Signal, io.Writer) {}, testutil.NewTestLogger(t))
	require.True(t, Installed())

	Uninstall()
	assert.False(t, Installed())

	// Disarming twice is harmless.
	assert.NotPanics(t, Uninstall)
}

// TestTrapEmitsTraceAndDies re-executes the test binary, raises SIGABRT in
// the child with the trap armed, and verifies both the emitted trace and
// the exit disposition.
func TestTrapEmitsTraceAndDies(t *testing.T) {
	if os.Getenv("SIGTRAP_TEST_CHILD") == "1" {
		runTrapChild()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestTrapEmitsTraceAndDies") // #nosec G204
	cmd.Env = append(os.Environ(), "SIGTRAP_TEST_CHILD=1")
	out, err := cmd.CombinedOutput()

	require.Error(t, err, "child must die from the re-raised signal")
	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok, "unexpected error type: %v", err)

	status, ok := exitErr.Sys().(syscall.WaitStatus)
	require.True(t, ok)
	require.True(t, status.Signaled(), "child exited normally: %s", out)
	assert.Equal(t, syscall.SIGABRT, status.Signal())

	// The handler ran before the default disposition took over.
	assert.Contains(t, string(out), "trace emitted by trap handler")
}

// runTrapChild arms the trap and raises SIGABRT; it never returns.
func runTrapChild() {
	Install(func(sig os.Signal, w io.Writer) {
		fmt.Fprintf(w, "trace emitted by trap handler: %s\n", strings.ToUpper(sig.String()))
	}, testutil.NewTestLogger(nil))

	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)

	// The monitor goroutine handles the signal and re-raises; block until
	// the process dies.
	select {}
}
