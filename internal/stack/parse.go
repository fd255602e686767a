package stack

import (
	"strings"

	"github.com/rs/zerolog"
)

// ParsedFrame holds the fields extracted from one textual frame
// description. Any field may be empty when the input line did not carry it.
type ParsedFrame struct {
	// Module is the binary or shared object path.
	Module string
	// Symbol is the mangled symbol name, empty when the frame has no
	// dynamic symbol.
	Symbol string
	// FuncOffset is the byte offset into the function, as written in the
	// frame text (usually hex).
	FuncOffset string
	// ModuleOffset is the module-relative address.
	ModuleOffset string
}

// Parser decomposes textual frame descriptions into fields.
//
// Parsing is a pure function of the input line and is total: missing
// delimiters degrade to empty fields, never errors.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a frame line parser. Diagnostics for frames without a
// dynamic symbol go to the given side-channel logger.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{
		logger: logger.With().Str("component", "frameparser").Logger(),
	}
}

// Parse extracts frame fields from one description line.
//
// The primary layout is `module(symbol+funcoffset) [moduleoffset]`, the
// convention used by glibc backtrace_symbols and by this package's own
// resolver. Lines without those delimiters are retried against the
// whitespace-tokenized layout some platform unwinders emit.
func (p *Parser) Parse(line string) ParsedFrame {
	if !strings.ContainsAny(line, "([") {
		if frame, ok := parseTokenized(line); ok {
			return frame
		}
	}

	var frame ParsedFrame

	// Module: everything before the first paren, or the whole line when
	// the symbol portion is absent entirely.
	paren := strings.Index(line, "(")
	if paren < 0 {
		frame.Module = line
	} else {
		frame.Module = line[:paren]

		rest := line[paren+1:]
		plus := strings.Index(rest, "+")
		if plus < 0 {
			// No dynamic symbol for this frame. Expected for stripped
			// binaries; surface it on the side channel and keep going.
			p.logger.Warn().Str("frame", line).Msg("no dynamic symbol in frame")
		} else {
			frame.Symbol = rest[:plus]
			after := rest[plus+1:]
			if end := strings.Index(after, ")"); end >= 0 {
				frame.FuncOffset = after[:end]
			}
		}
	}

	if open := strings.Index(line, "["); open >= 0 {
		after := line[open+1:]
		if end := strings.Index(after, "]"); end >= 0 {
			frame.ModuleOffset = after[:end]
		}
	}

	return frame
}

// parseTokenized handles the whitespace-delimited layout used by the darwin
// unwinder: `index module address symbol + offset`. Best effort only; the
// field count is not stable across platforms, so anything that does not
// look like an indexed frame line is left to the primary rules.
func parseTokenized(line string) (ParsedFrame, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || !isDigits(fields[0]) {
		return ParsedFrame{}, false
	}

	frame := ParsedFrame{
		Module:       fields[1],
		ModuleOffset: fields[2],
		Symbol:       fields[3],
	}
	if len(fields) >= 6 && fields[4] == "+" {
		frame.FuncOffset = fields[5]
	}
	return frame, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
