package stack

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fresco-dev/dout/internal/demangle"
	"github.com/fresco-dev/dout/internal/safe"
)

// Options controls trace formatting.
type Options struct {
	// MaxFrames caps the number of frame lines emitted. Values <= 0 mean
	// MaxDepth.
	MaxFrames int
	// Compact emits only the demangled (or fallback) symbol name per
	// frame, without header, offsets, or separator line.
	Compact bool
}

// Formatter assembles parsed and demangled frame fields into output lines.
type Formatter struct {
	parser *Parser
	dem    demangle.Demangler
	logger zerolog.Logger
}

// NewFormatter creates a trace formatter using the given demangler.
func NewFormatter(dem demangle.Demangler, logger zerolog.Logger) *Formatter {
	return &Formatter{
		parser: NewParser(logger),
		dem:    dem,
		logger: logger.With().Str("component", "formatter").Logger(),
	}
}

// Format renders resolved frame description lines as trace output lines.
//
// Verbose mode produces a header stating the frame count, one line per
// frame with module, symbol, and offsets, and a trailing blank separator.
// Compact mode produces one symbol name per frame and nothing else. At most
// Options.MaxFrames frame lines are emitted. Empty input yields nil.
func (f *Formatter) Format(lines []string, opts Options) []string {
	if len(lines) == 0 {
		return nil
	}

	maxFrames := opts.MaxFrames
	if maxFrames <= 0 || maxFrames > MaxDepth {
		maxFrames = MaxDepth
	}

	count := len(lines)
	if count > maxFrames {
		count = maxFrames
	}
	count, _ = safe.ClampNonNegative(count)

	var out []string
	if !opts.Compact {
		out = append(out, fmt.Sprintf("dout obtained %d stack frames:", count))
	}

	for _, line := range lines[:count] {
		frame := f.parser.Parse(line)
		res := f.dem.Demangle(frame.Symbol)

		if !res.Usable() {
			// The frame's symbol is lost but the rest of the trace is
			// unaffected.
			f.logger.Debug().Str("status", res.Status.String()).Str("frame", line).
				Msg("demangle failed for frame")
			out = append(out, fmt.Sprintf(" error: demangle failed (%s)", res.Status))
			continue
		}

		if opts.Compact {
			out = append(out, res.Text)
			continue
		}
		out = append(out, verboseLine(frame, res.Text))
	}

	if !opts.Compact {
		out = append(out, "")
	}
	return out
}

// verboseLine renders one frame as `  module:  symbol  +off  [addr]`,
// omitting fields the description did not carry.
func verboseLine(frame ParsedFrame, symbol string) string {
	line := "  " + frame.Module + ":  " + symbol
	if frame.FuncOffset != "" {
		line += "  +" + frame.FuncOffset
	}
	if frame.ModuleOffset != "" {
		line += "  [" + frame.ModuleOffset + "]"
	}
	return line
}
