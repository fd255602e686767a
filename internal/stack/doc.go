// Package stack implements the trace pipeline: capturing raw program
// counters from the runtime unwinder, resolving them into textual frame
// descriptions, parsing those descriptions into fields, and formatting the
// result as verbose or compact trace output.
//
// Every stage is total over its input: a frame that cannot be resolved,
// parsed, or demangled degrades to partial text, never to an error seen by
// the host program.
package stack
