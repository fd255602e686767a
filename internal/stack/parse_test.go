package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fresco-dev/dout/internal/testutil"
)

func TestParsePrimaryLayout(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected ParsedFrame
	}{
		{
			name: "full frame line",
			line: "./prog(_Z3fooi+0x1a) [0x4005b2]",
			expected: ParsedFrame{
				Module:       "./prog",
				Symbol:       "_Z3fooi",
				FuncOffset:   "0x1a",
				ModuleOffset: "0x4005b2",
			},
		},
		{
			name: "absolute module path",
			line: "/usr/bin/prog(main.f3+0x25) [0x48a1b2]",
			expected: ParsedFrame{
				Module:       "/usr/bin/prog",
				Symbol:       "main.f3",
				FuncOffset:   "0x25",
				ModuleOffset: "0x48a1b2",
			},
		},
		{
			name: "no dynamic symbol",
			line: "./prog() [0x4005b2]",
			expected: ParsedFrame{
				Module:       "./prog",
				ModuleOffset: "0x4005b2",
			},
		},
		{
			name:     "no paren keeps whole line as module",
			line:     "garbage without delimiters here",
			expected: ParsedFrame{Module: "garbage without delimiters here"},
		},
		{
			name:     "empty string",
			line:     "",
			expected: ParsedFrame{},
		},
		{
			name: "missing close paren drops function offset",
			line: "./prog(_Z3fooi+0x1a [0x4005b2]",
			expected: ParsedFrame{
				Module:       "./prog",
				Symbol:       "_Z3fooi",
				ModuleOffset: "0x4005b2",
			},
		},
		{
			name: "missing close bracket drops module offset",
			line: "./prog(_Z3fooi+0x1a) [0x4005b2",
			expected: ParsedFrame{
				Module:     "./prog",
				Symbol:     "_Z3fooi",
				FuncOffset: "0x1a",
			},
		},
		{
			// The module field always covers everything up to the first
			// paren, even when that swallows the bracket section.
			name: "only brackets",
			line: "[0x4005b2]",
			expected: ParsedFrame{
				Module:       "[0x4005b2]",
				ModuleOffset: "0x4005b2",
			},
		},
		{
			name: "no paren keeps address text in module",
			line: "./prog [0x4005b2]",
			expected: ParsedFrame{
				Module:       "./prog [0x4005b2]",
				ModuleOffset: "0x4005b2",
			},
		},
		{
			name:     "delimiters only",
			line:     "(+)",
			expected: ParsedFrame{},
		},
	}

	parser := NewParser(testutil.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.Parse(tt.line))
		})
	}
}

func TestParseTokenizedLayout(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected ParsedFrame
	}{
		{
			name: "darwin frame with offset",
			line: "4   prog                                0x000000010dd0df57 _Z3fooi + 26",
			expected: ParsedFrame{
				Module:       "prog",
				ModuleOffset: "0x000000010dd0df57",
				Symbol:       "_Z3fooi",
				FuncOffset:   "26",
			},
		},
		{
			name: "darwin frame without offset tail",
			line: "0   libdyld.dylib   0x00007fff6c1a3cc9 start",
			expected: ParsedFrame{
				Module:       "libdyld.dylib",
				ModuleOffset: "0x00007fff6c1a3cc9",
				Symbol:       "start",
			},
		},
		{
			name:     "non numeric first token falls back to primary rules",
			line:     "this has no parens at all",
			expected: ParsedFrame{Module: "this has no parens at all"},
		},
		{
			name:     "too few tokens falls back to primary rules",
			line:     "3 prog 0x1234",
			expected: ParsedFrame{Module: "3 prog 0x1234"},
		},
	}

	parser := NewParser(testutil.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.Parse(tt.line))
		})
	}
}

// Parse must be total: any input yields a ParsedFrame, never a panic.
func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"", "(", ")", "[", "]", "+", "((((", "]]]]", "(+", "+)", "([)]",
		"a(b", "a)b(", "a[b", "\x00\xff", "   ", "(((+++)))[[[]]]",
	}

	parser := NewParser(testutil.NewTestLogger(t))
	for _, in := range inputs {
		assert.NotPanics(t, func() { parser.Parse(in) }, "input %q", in)
	}
}
