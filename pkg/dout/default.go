package dout

import (
	"io"

	"github.com/fresco-dev/dout/internal/config"
)

// Default is the process-wide printer, the analogue of the classic global
// debug object. It is constructed once at package initialization from the
// resolved configuration (config file and DOUT_* environment overrides).
//
// Like any Printer it is not internally synchronized; programs printing
// from multiple goroutines should construct per-goroutine printers or
// serialize externally.
var Default = newDefault()

func newDefault() *Printer {
	cfg, err := config.Load()
	if err != nil {
		// A broken config file must not break the host program; fall
		// back to built-ins and say so on the side channel.
		p := NewFromConfig(config.Default())
		p.logger.Warn().Err(err).Msg("falling back to default printer configuration")
		return p
	}
	return NewFromConfig(cfg)
}

// Print writes values through the Default printer.
func Print(values ...any) { Default.Print(values...) }

// Println writes values and a newline through the Default printer.
func Println(values ...any) { Default.Println(values...) }

// Highlight prints a colored label/value pair through the Default printer.
func Highlight(args ...any) { Default.Highlight(args...) }

// Here prints the calling function name and line through the Default
// printer.
//
//go:noinline
func Here() { Default.here() }

// Func prints the calling function name, one compact frame, through the
// Default printer.
//
//go:noinline
func Func() { Default.stackTrace(Depth(1), Compact(true), Skip(1)) }

// Stack prints a stack trace of the calling goroutine through the Default
// printer.
//
//go:noinline
func Stack(opts ...StackOption) { Default.stackTrace(opts...) }

// Type prints the runtime type of v through the Default printer.
func Type(v any) { Default.Type(v) }

// Pause prompts and blocks for one line of input through the Default
// printer.
func Pause(args ...any) { Default.Pause(args...) }

// SetOutput replaces the Default printer's sink with a borrowed writer.
func SetOutput(w io.Writer) { Default.SetOutput(w) }

// SetOwnedOutput replaces the Default printer's sink, taking ownership.
func SetOwnedOutput(w io.WriteCloser) { Default.SetOwnedOutput(w) }

// SetPrecision sets the Default printer's float display precision.
func SetPrecision(prec int) { Default.SetPrecision(prec) }

// SetColor sets the Default printer's highlight color code.
func SetColor(code string) error { return Default.SetColor(code) }

// ResetColor removes the Default printer's highlight colors.
func ResetColor() { Default.ResetColor() }

// EnableCrashReports arms the fatal-signal trace trap.
func EnableCrashReports() { Default.EnableCrashReports() }
