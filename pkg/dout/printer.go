package dout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/fresco-dev/dout/internal/config"
	"github.com/fresco-dev/dout/internal/demangle"
	"github.com/fresco-dev/dout/internal/errors"
	"github.com/fresco-dev/dout/internal/logging"
	"github.com/fresco-dev/dout/internal/safe"
	"github.com/fresco-dev/dout/internal/stack"
)

const (
	colorReset = "\033[0m"
	// highlightPrefix marks one-argument Highlight calls, matching the
	// historical DebugPrinter behavior.
	highlightPrefix = ">>> "
)

// Printer writes highlighted debug output, type information, and stack
// traces to a configurable sink.
//
// A Printer is not internally synchronized; concurrent use from multiple
// goroutines requires external serialization. The signal trap never touches
// an existing Printer for this reason (see EnableCrashReports).
type Printer struct {
	out   io.Writer
	owned io.Closer
	in    io.Reader

	precision int
	maxFrames int

	hcol          string
	hrst          string
	colorExplicit bool

	logger    zerolog.Logger
	dem       demangle.Demangler
	formatter *stack.Formatter
}

// Option configures a Printer at construction time.
type Option func(*Printer)

// WithOutput sets the output sink. The writer is borrowed; the caller
// keeps it alive and closes it.
func WithOutput(w io.Writer) Option {
	return func(p *Printer) { p.out = w }
}

// WithOwnedOutput sets the output sink and transfers ownership; the
// Printer closes it when the sink is replaced or the Printer is closed.
func WithOwnedOutput(w io.WriteCloser) Option {
	return func(p *Printer) {
		p.out = w
		p.owned = w
	}
}

// WithInput sets the reader used by Pause. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(p *Printer) { p.in = r }
}

// WithPrecision sets the number of decimal digits for float output.
func WithPrecision(prec int) Option {
	return func(p *Printer) {
		prec, _ = safe.ClampNonNegative(prec)
		p.precision = prec
	}
}

// WithColor sets the highlight color code (e.g. "36", "1;34"). An invalid
// code is reported on the side channel and the previous color kept.
func WithColor(code string) Option {
	return func(p *Printer) {
		if err := p.SetColor(code); err != nil {
			p.logger.Warn().Err(err).Msg("ignoring invalid highlight color")
		}
	}
}

// WithNoColor disables highlight colors, e.g. when writing to a file.
func WithNoColor() Option {
	return func(p *Printer) { p.ResetColor() }
}

// WithMaxFrames sets the default stack trace depth.
func WithMaxFrames(n int) Option {
	return func(p *Printer) {
		n, _ = safe.ClampRange(n, 0, stack.MaxDepth)
		p.maxFrames = n
	}
}

// WithLogger sets the side-channel diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Printer) { p.logger = logger }
}

// WithDemangler sets the symbol demangler. Useful for platforms without an
// ABI facility, where demangle.Identity applies.
func WithDemangler(d demangle.Demangler) Option {
	return func(p *Printer) { p.dem = d }
}

// New creates a Printer with built-in defaults (stdout sink, cyan
// highlights, five digits of precision) and the given options applied.
func New(opts ...Option) *Printer {
	return NewFromConfig(config.Default(), opts...)
}

// NewFromConfig creates a Printer from a resolved configuration. Options
// are applied after the configuration and take precedence.
func NewFromConfig(cfg config.Config, opts ...Option) *Printer {
	logCfg := logging.DefaultConfig()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}

	precision, _ := safe.ClampNonNegative(cfg.Precision)
	maxFrames, _ := safe.ClampRange(cfg.MaxFrames, 0, stack.MaxDepth)

	p := &Printer{
		out:       os.Stdout,
		in:        os.Stdin,
		precision: precision,
		maxFrames: maxFrames,
		logger:    logging.NewWithComponent(logCfg, "dout"),
		dem:       demangle.New(),
	}
	if !cfg.NoColor && cfg.Color != "" {
		p.hcol = "\033[0;" + cfg.Color + "m"
		p.hrst = colorReset
	}

	for _, opt := range opts {
		opt(p)
	}

	// Keep color escapes out of non-terminal sinks unless the caller
	// asked for them explicitly.
	if !p.colorExplicit && !isTerminal(p.out) {
		p.hcol, p.hrst = "", ""
	}

	p.formatter = stack.NewFormatter(p.dem, p.logger)
	return p
}

// SetOutput replaces the output sink with a borrowed writer. A previously
// owned sink is closed.
func (p *Printer) SetOutput(w io.Writer) {
	p.releaseOwned()
	p.out = w
	if !p.colorExplicit && !isTerminal(w) {
		p.hcol, p.hrst = "", ""
	}
}

// SetOwnedOutput replaces the output sink and takes ownership of it. A
// previously owned sink is closed.
func (p *Printer) SetOwnedOutput(w io.WriteCloser) {
	p.releaseOwned()
	p.out = w
	p.owned = w
	if !p.colorExplicit && !isTerminal(w) {
		p.hcol, p.hrst = "", ""
	}
}

// Close closes an owned output sink, if any. Borrowed sinks are untouched.
func (p *Printer) Close() error {
	if p.owned == nil {
		return nil
	}
	err := p.owned.Close()
	p.owned = nil
	return err
}

func (p *Printer) releaseOwned() {
	if p.owned != nil {
		errors.CloseQuietly(p.logger, p.owned, "output sink")
		p.owned = nil
	}
}

// SetPrecision sets the number of decimal digits for float output.
func (p *Printer) SetPrecision(prec int) {
	prec, _ = safe.ClampNonNegative(prec)
	p.precision = prec
}

// SetColor sets the highlight color to a bash-compatible SGR code such as
// "36" (cyan) or "1;34" (bold blue). An invalid code is rejected and the
// previous color stays in effect.
func (p *Printer) SetColor(code string) error {
	if err := config.ValidateColorCode(code); err != nil {
		return fmt.Errorf("invalid highlight color: %w", err)
	}
	p.hcol = "\033[0;" + code + "m"
	p.hrst = colorReset
	p.colorExplicit = true
	return nil
}

// ResetColor removes highlight colors, e.g. when writing to a file.
func (p *Printer) ResetColor() {
	p.hcol, p.hrst = "", ""
	p.colorExplicit = true
}

// Print writes the values back to back with the configured float
// precision, without separators or trailing newline.
func (p *Printer) Print(values ...any) {
	var b strings.Builder
	for _, v := range values {
		s, ok := p.render(v)
		if !ok {
			p.reportUnprintable(v)
			return
		}
		b.WriteString(s)
	}
	p.write(b.String())
}

// Println is Print with a trailing newline.
func (p *Printer) Println(values ...any) {
	p.Print(values...)
	p.write("\n")
}

// Highlight prints a colored label/value pair.
//
//	Highlight(value)              // ">>> value"
//	Highlight(label, value)       // "label: value"
//	Highlight(label, value, sep)  // custom separator
//
// A label or value without a usable text representation produces a
// diagnostic naming the offending type instead of the pair.
func (p *Printer) Highlight(args ...any) {
	var label, value any
	sep := ": "
	switch len(args) {
	case 0:
		return
	case 1:
		label, value, sep = highlightPrefix, args[0], ""
	case 2:
		label, value = args[0], args[1]
	default:
		label, value = args[0], args[1]
		if s, ok := args[2].(string); ok {
			sep = s
		}
	}

	labelText, ok := p.render(label)
	if !ok {
		p.reportUnprintable(label)
		return
	}
	valueText, ok := p.render(value)
	if !ok {
		p.reportUnprintable(value)
		return
	}

	p.write(p.hcol + labelText + sep + valueText + p.hrst + "\n")
}

// Here prints the enclosing function name and line, highlighted.
//
//go:noinline
func (p *Printer) Here() {
	p.here()
}

//go:noinline
func (p *Printer) here() {
	pc, _, line, ok := runtime.Caller(2)
	if !ok {
		p.Highlight("dout", "unknown location")
		return
	}
	name := "?"
	if fn := runtime.FuncForPC(pc); fn != nil {
		name = shortFuncName(fn.Name())
	}
	p.Highlight(name, line)
}

// Type prints the runtime type of v. Mangled type names are demangled when
// the facility is available.
func (p *Printer) Type(v any) {
	if v == nil {
		p.write("<nil>\n")
		return
	}
	name := reflect.TypeOf(v).String()
	if res := p.dem.Demangle(name); res.Status == demangle.StatusOK {
		name = res.Text
	}
	p.write(name + "\n")
}

// Pause prints a highlighted prompt and blocks until one line is read from
// the configured input.
//
//	Pause()                  // unconditional
//	Pause(cond)              // only when cond is true
//	Pause("message")         // with message
//	Pause(cond, "message")   // conditional with message
func (p *Printer) Pause(args ...any) {
	cond := true
	msg := ""
	for _, a := range args {
		switch x := a.(type) {
		case bool:
			cond = x
		case string:
			msg = x
		default:
			msg = fmt.Sprint(x)
		}
	}
	if !cond {
		return
	}

	prompt := "dout: paused"
	if msg != "" {
		prompt += " (" + msg + ")"
	}
	p.write(p.hcol + prompt + p.hrst + " [enter to continue]\n")

	in := p.in
	if in == nil {
		in = os.Stdin
	}
	_, _ = bufio.NewReader(in).ReadString('\n')
}

// render produces a textual form of v. A panicking String or Format
// method is reported as a failure; fmt recovers such panics itself and
// leaves a %!v(PANIC=...) marker in the output, which is detected here.
func (p *Printer) render(v any) (string, bool) {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', p.precision, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', p.precision, 32), true
	default:
		s := fmt.Sprint(v)
		if strings.Contains(s, "(PANIC=") {
			return "", false
		}
		return s, true
	}
}

func (p *Printer) reportUnprintable(v any) {
	p.write(fmt.Sprintf("dout error: object of type %T has no usable text representation\n", v))
	p.logger.Warn().Type("value_type", v).Msg("unprintable value passed to printer")
}

// write sends s to the sink and flushes when the sink supports it.
func (p *Printer) write(s string) {
	if _, err := io.WriteString(p.out, s); err != nil {
		p.logger.Warn().Err(err).Msg("write to output sink failed")
		return
	}
	if f, ok := p.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			p.logger.Warn().Err(err).Msg("flush of output sink failed")
		}
	}
}

// shortFuncName trims the package directory from a fully qualified
// function name: "github.com/x/pkg.Foo" becomes "pkg.Foo".
func shortFuncName(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
