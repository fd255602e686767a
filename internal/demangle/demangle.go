// Package demangle converts mangled symbol names into human-readable
// signatures.
//
// The Itanium C++ ABI backend handles symbols exported by C++ shared
// objects (frequently encountered when a cgo binary links against C++
// libraries). Go's own symbol names and C-linkage symbols are not mangled
// and pass through as usable fallback text.
package demangle

import (
	itanium "github.com/ianlancetaylor/demangle"
)

// Status classifies the outcome of a demangle attempt.
type Status int

const (
	// StatusOK means the name was demangled successfully.
	StatusOK Status = iota
	// StatusAllocFailure means the demangler could not complete; the
	// result carries no usable text.
	StatusAllocFailure
	// StatusInvalidInput means the name is not valid under the ABI
	// mangling rules. The result carries the original name as fallback
	// text; this is the expected outcome for C-linkage and Go symbols.
	StatusInvalidInput
	// StatusNotMangled means no demangling facility is in use and the
	// name was passed through unchanged. Callers treat this as OK.
	StatusNotMangled
)

// String returns a short name for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusAllocFailure:
		return "alloc_failure"
	case StatusInvalidInput:
		return "invalid_input"
	case StatusNotMangled:
		return "not_mangled"
	default:
		return "unknown"
	}
}

// Result is the outcome of demangling a single symbol name.
type Result struct {
	// Text is the demangled signature, or the original input when the
	// status indicates a usable fallback. Empty on StatusAllocFailure.
	Text string
	// Status classifies the outcome.
	Status Status
}

// Usable reports whether Text can be shown to the user.
func (r Result) Usable() bool {
	return r.Status != StatusAllocFailure
}

// Demangler converts a single mangled symbol name.
type Demangler interface {
	Demangle(name string) Result
}

// New returns the default demangler for this build.
// On builds with the nocxxabi tag this is the identity demangler.
func New() Demangler {
	return newPlatform()
}

// Identity returns a demangler that passes names through unchanged with
// StatusNotMangled. Used when the ABI facility is unavailable or disabled.
func Identity() Demangler {
	return identity{}
}

type identity struct{}

func (identity) Demangle(name string) Result {
	return Result{Text: name, Status: StatusNotMangled}
}

// abi demangles through the Itanium ABI rules.
type abi struct{}

func (abi) Demangle(name string) (res Result) {
	// The demangler is pure Go; a panic here is the analogue of the C
	// library reporting an internal failure. Degrade to a text-less
	// result rather than taking down the host program.
	defer func() {
		if r := recover(); r != nil {
			res = Result{Status: StatusAllocFailure}
		}
	}()

	text, err := itanium.ToString(name)
	if err != nil {
		// Not a mangled name, or truncated mangled input. Either way
		// the raw name is the best text available; C-linkage and Go
		// symbols land here routinely.
		return Result{Text: name, Status: StatusInvalidInput}
	}
	return Result{Text: text, Status: StatusOK}
}
