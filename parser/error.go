package parser

import (
	"strconv"
	"strings"

	"github.com/oarkflow/sql92/lexer"
)

// Code classifies the outcome of a parse.
type Code uint8

const (
	OK Code = iota
	SyntaxError
	LexError
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case SyntaxError:
		return "SYNTAX_ERROR"
	default:
		return "LEX_ERROR"
	}
}

// Diagnostic describes the first error encountered during a parse: the byte
// offset of the offending token, the set of symbols that were legal at that
// point, the token actually found, and a formatted message with a source
// marker line. Diagnostic implements error.
type Diagnostic struct {
	Code     Code
	Pos      int32
	Expected []lexer.Symbol
	Found    lexer.Token
	Msg      string
	// Marker is the source line containing Pos followed by a caret line
	// pointing at the offending byte.
	Marker string
}

func (d *Diagnostic) Error() string {
	if d.Marker == "" {
		return d.Msg
	}
	return d.Msg + "\n" + d.Marker
}

// expectedSet renders the expected-symbol set for the message,
// e.g. "COMMA or RPAREN".
func expectedSet(syms []lexer.Symbol) string {
	switch len(syms) {
	case 0:
		return ""
	case 1:
		return syms[0].String()
	}
	var b strings.Builder
	for i, s := range syms {
		switch {
		case i == 0:
		case i == len(syms)-1:
			b.WriteString(" or ")
		default:
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// syntaxDiagnostic builds the SYNTAX_ERROR diagnostic for an expected-symbol
// violation anchored at the found token (or the cursor at EOS).
func syntaxDiagnostic(src []byte, found lexer.Token, expected []lexer.Symbol) *Diagnostic {
	var b strings.Builder
	b.WriteString("Expected ")
	b.WriteString(expectedSet(expected))
	b.WriteString(" but found ")
	b.WriteString(found.String())
	return &Diagnostic{
		Code:     SyntaxError,
		Pos:      found.Pos,
		Expected: append([]lexer.Symbol(nil), expected...),
		Found:    found,
		Msg:      b.String(),
		Marker:   errorMarker(src, found.Pos),
	}
}

// lexDiagnostic wraps a lexer error.
func lexDiagnostic(src []byte, err *lexer.LexError) *Diagnostic {
	return &Diagnostic{
		Code:   LexError,
		Pos:    err.Pos,
		Msg:    err.Msg,
		Marker: errorMarker(src, err.Pos),
	}
}

// errorMarker extracts the source line containing pos and draws a caret
// under the offending byte:
//
//	CREATE TABLE t (x VARCHAR(10)
//	                             ^ at offset 29
func errorMarker(src []byte, pos int32) string {
	p := int(pos)
	if p > len(src) {
		p = len(src)
	}
	lineStart := p
	for lineStart > 0 && src[lineStart-1] != '\n' {
		lineStart--
	}
	lineEnd := p
	for lineEnd < len(src) && src[lineEnd] != '\n' {
		lineEnd++
	}
	var b strings.Builder
	b.Write(src[lineStart:lineEnd])
	b.WriteByte('\n')
	for i := lineStart; i < p; i++ {
		if src[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("^ at offset ")
	b.WriteString(strconv.Itoa(int(pos)))
	return b.String()
}
