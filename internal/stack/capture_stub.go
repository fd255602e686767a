//go:build noexecinfo
// +build noexecinfo

package stack

// Available reports whether stack capture is compiled into this build.
func Available() bool {
	return false
}

// Capture returns nil on builds without the runtime unwinder. Callers emit
// UnavailableMessage instead of attempting resolution.
func Capture(maxFrames, skip int) []uintptr {
	return nil
}
