// Package dout is a debug-output printer for development-time diagnostics:
// highlighted variable dumps, type introspection, and stack traces with
// demangled symbol names, including automatic trace dumps on fatal signals.
//
// A process-wide Default printer mirrors the classic globally accessible
// debug object:
//
//	dout.Println("plain output")
//	dout.Highlight("velocity", v)       // colored label: value
//	dout.Here()                         // current function and line
//	dout.Func()                         // current function signature
//	dout.Stack()                        // full stack trace
//	dout.Type(obj)                      // runtime type of obj
//	dout.EnableCrashReports()           // trace dump on fatal signals
//
// Components accept their sink and configuration explicitly, so independent
// printers can be constructed for tests or for output redirection:
//
//	p := dout.New(dout.WithOwnedOutput(logFile), dout.WithNoColor())
//	p.Stack(dout.Compact(true))
//
// The printer is developer tooling, not a production logging facility; its
// failure mode is always a degraded or missing trace line, never an error
// surfaced to the host program.
package dout
