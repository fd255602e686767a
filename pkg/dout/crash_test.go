//go:build unix
// +build unix

package dout

import (
	"os"
	"os/exec"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/fresco-dev/dout/internal/sigtrap"
)

// TestCrashReportOnFatalSignal re-executes the test binary with crash
// reports enabled, delivers SIGSEGV, and verifies the report and the exit
// disposition.
func TestCrashReportOnFatalSignal(t *testing.T) {
	if os.Getenv("DOUT_CRASH_TEST_CHILD") == "1" {
		EnableCrashReports()
		_ = unix.Kill(unix.Getpid(), unix.SIGSEGV)
		select {}
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestCrashReportOnFatalSignal") // #nosec G204
	cmd.Env = append(os.Environ(), "DOUT_CRASH_TEST_CHILD=1")
	out, err := cmd.CombinedOutput()

	require.Error(t, err)
	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok, "unexpected error type: %v", err)

	status, ok := exitErr.Sys().(syscall.WaitStatus)
	require.True(t, ok)
	require.True(t, status.Signaled(), "child exited normally: %s", out)
	assert.Equal(t, syscall.SIGSEGV, status.Signal())

	text := string(out)
	assert.Contains(t, text, "dout: caught segmentation fault")
	assert.Contains(t, text, "stack frames:")
	assert.Contains(t, text, "goroutine dump:")
}

func TestEnableCrashReportsIdempotent(t *testing.T) {
	if sigtrap.Installed() {
		t.Skip("trap already armed by another test in this process")
	}

	p := New()
	p.EnableCrashReports()
	defer sigtrap.Uninstall()
	require.True(t, sigtrap.Installed())

	// Arming again is a no-op, not a second monitor.
	p.EnableCrashReports()
	assert.True(t, sigtrap.Installed())
}
