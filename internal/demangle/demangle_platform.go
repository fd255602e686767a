//go:build !nocxxabi
// +build !nocxxabi

package demangle

// Available reports whether ABI demangling is compiled into this build.
func Available() bool {
	return true
}

func newPlatform() Demangler {
	return abi{}
}
