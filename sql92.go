// Package sql92 is a SQL parser for Go implementing the ANSI SQL-92 grammar.
//
// The library is a two-stage pipeline: a hand-written streaming lexer that
// classifies source bytes into tokens, and a recursive-descent parser driven
// by explicit state machines that build a typed AST, producing byte-accurate
// diagnostics with expected-symbol sets on the first error.
//
// Usage:
//
//	res := sql92.Parse(buf, sql92.Options{})
//	if res.Code != sql92.OK {
//		return res.Diag
//	}
//	for _, stmt := range res.Statements { ... }
//
// Statements borrow identifier bytes from the input buffer, which must
// outlive the Result.
package sql92

import (
	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
	"github.com/oarkflow/sql92/parser"
)

// Re-export core types so callers only import this package.
type (
	Options    = parser.Options
	Result     = parser.Result
	Code       = parser.Code
	Dialect    = parser.Dialect
	Diagnostic = parser.Diagnostic
	Statement  = ast.Statement
	Expr       = ast.Expr
	Token      = lexer.Token
	Symbol     = lexer.Symbol
)

const (
	OK          = parser.OK
	SyntaxError = parser.SyntaxError
	LexError    = parser.LexError
)

const (
	ANSI1992   = parser.ANSI1992
	ANSI1999   = parser.ANSI1999
	ANSI2003   = parser.ANSI2003
	MySQL      = parser.MySQL
	PostgreSQL = parser.PostgreSQL
)

// Parse parses a buffer of zero or more semicolon-separated SQL statements.
// It is the sole entry point; everything else is convenience.
func Parse(src []byte, opts Options) Result {
	return parser.Parse(src, opts)
}

// ParseStatements parses a SQL string and returns the statements, or the
// diagnostic as an error.
func ParseStatements(sql string) ([]ast.Statement, error) {
	res := parser.ParseString(sql, Options{})
	if res.Code != OK {
		return nil, res.Diag
	}
	return res.Statements, nil
}

// ParseStatement parses a single SQL statement.
func ParseStatement(sql string) (ast.Statement, error) {
	stmts, err := ParseStatements(sql)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, nil
	}
	return stmts[0], nil
}

// Validate runs the full lexical and syntactic pipeline without building an
// AST. It returns nil when the input parses, the diagnostic otherwise.
func Validate(sql string, opts Options) error {
	opts.DisableStatementConstruction = true
	res := parser.ParseString(sql, opts)
	if res.Code != OK {
		return res.Diag
	}
	return nil
}

// Tokenize breaks SQL bytes into tokens. The returned tokens are backed by
// src; provide a pre-allocated buffer to avoid heap allocation:
//
//	buf := make([]sql92.Token, 0, 128)
//	tokens := sql92.Tokenize([]byte(sql), buf)
func Tokenize(src []byte, buf []Token) []Token {
	return lexer.Tokenize(src, buf)
}
