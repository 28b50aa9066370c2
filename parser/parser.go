// Package parser implements a recursive-descent parser for ANSI SQL-92.
// Each grammar production is an explicit state machine: every state either
// consumes a token and transitions, or records a diagnostic carrying the set
// of symbols that were legal at that point and halts. The first lex or
// syntax error stops the parse; remaining input is ignored.
package parser

import (
	"strconv"

	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
)

// Dialect selects the SQL grammar variant. Only ANSI1992 is fully
// implemented; the remaining values are hooks for later dialects.
type Dialect uint8

const (
	ANSI1992 Dialect = iota
	ANSI1999
	ANSI2003
	MySQL
	PostgreSQL
)

// Options configures a parse.
type Options struct {
	Dialect Dialect
	// DisableStatementConstruction performs all lexical and syntactic work
	// but allocates no AST nodes; a successful parse returns OK with an
	// empty statement list. Used for syntax validation and fuzzing.
	DisableStatementConstruction bool
}

// Result is the outcome of a parse: a code, the statements in source order,
// and the diagnostic when the code is not OK.
type Result struct {
	Code       Code
	Statements []ast.Statement
	Diag       *Diagnostic
}

// Parse parses a buffer of zero or more semicolon-separated SQL statements.
// It is the sole entry point; Result.Statements borrow identifier bytes from
// src, which must outlive them.
func Parse(src []byte, opts Options) Result {
	return New(src, opts).Run()
}

// ParseString parses a SQL string.
func ParseString(sql string, opts Options) Result {
	return Parse([]byte(sql), opts)
}

// Parser converts a token stream into statements. A Parser is owned by one
// call site and must not be shared across goroutines; distinct Parsers are
// fully independent.
type Parser struct {
	lex  *lexer.Lexer
	tok  lexer.Token
	opts Options

	arena arena
	diag  *Diagnostic
	// probes counts active speculative sub-parsers; while probing,
	// expected-symbol violations do not write a diagnostic so the caller
	// can rewind and try another production.
	probes int
}

// New creates a Parser for the given SQL bytes and primes the first token.
func New(src []byte, opts Options) *Parser {
	p := &Parser{lex: lexer.New(src), opts: opts}
	p.advance()
	return p
}

// Reset reuses the parser with new input, reusing arena memory.
// Statements from earlier Results become invalid.
func (p *Parser) Reset(src []byte) {
	p.lex.Reset(src)
	p.diag = nil
	p.probes = 0
	p.arena.reset()
	p.advance()
}

// Run drives the statement dispatcher until EOS or the first error.
func (p *Parser) Run() Result {
	var stmts []ast.Statement
	for p.diag == nil {
		if p.tok.Symbol == lexer.SymSemicolon {
			p.advance()
			continue
		}
		if p.tok.Kind == lexer.KindEOS || p.tok.Kind == lexer.KindError {
			break
		}
		stmt, ok := p.parseStatement()
		if !ok {
			break
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if !p.statementEnd() {
			break
		}
	}
	if p.diag != nil {
		return Result{Code: p.diag.Code, Statements: stmts, Diag: p.diag}
	}
	return Result{Code: OK, Statements: stmts}
}

// ---- token plumbing ----

// advance pumps the next token, filtering COMMENT tokens so sub-parsers
// never see them at decision points. A lexer error latches the diagnostic.
func (p *Parser) advance() {
	for {
		t := p.lex.Next()
		if t.Kind == lexer.KindComment {
			continue
		}
		if t.Kind == lexer.KindError && p.diag == nil {
			if le := p.lex.Err(); le != nil {
				p.diag = lexDiagnostic(p.lex.Source(), le)
			}
		}
		p.tok = t
		return
	}
}

type save struct {
	m   lexer.Mark
	tok lexer.Token
}

func (p *Parser) mark() save {
	return save{m: p.lex.Mark(), tok: p.tok}
}

func (p *Parser) restore(s save) {
	p.lex.Restore(s.m)
	p.tok = s.tok
}

func (p *Parser) is(sym lexer.Symbol) bool { return p.tok.Symbol == sym }

func (p *Parser) tryEat(sym lexer.Symbol) bool {
	if p.tok.Symbol == sym {
		p.advance()
		return true
	}
	return false
}

// eat consumes the expected symbol or records an expected-symbol error.
func (p *Parser) eat(sym lexer.Symbol) bool {
	if p.tok.Symbol == sym {
		p.advance()
		return true
	}
	return p.expect(sym)
}

// expect records a SYNTAX_ERROR diagnostic naming the set of symbols legal
// in the current state, anchored at the offending token. It never overwrites
// an earlier diagnostic and stays silent inside a speculative probe.
// It always returns false.
func (p *Parser) expect(expected ...lexer.Symbol) bool {
	if p.diag == nil && p.probes == 0 {
		p.diag = syntaxDiagnostic(p.lex.Source(), p.tok, expected)
	}
	return false
}

func (p *Parser) noBuild() bool { return p.opts.DisableStatementConstruction }

// node allocates an AST node in the parser's arena, or returns nil when
// statement construction is disabled.
func node[T any](p *Parser, v T) *T {
	if p.opts.DisableStatementConstruction {
		return nil
	}
	return arenaNode(&p.arena, v)
}

// peekSym returns the symbol after the current token without consuming it.
func (p *Parser) peekSym() lexer.Symbol {
	s := p.mark()
	p.advance()
	sym := p.tok.Symbol
	p.restore(s)
	return sym
}

// ---- statement dispatch ----

func (p *Parser) parseStatement() (ast.Statement, bool) {
	switch p.tok.Symbol {
	case lexer.SymCreate:
		return p.parseCreate()
	case lexer.SymInsert:
		return p.parseInsert()
	case lexer.SymSelect:
		sel, ok := p.parseQueryExpression()
		if !ok {
			return nil, false
		}
		if sel == nil {
			return nil, true
		}
		return sel, true
	case lexer.SymUpdate:
		return p.parseUpdate()
	case lexer.SymDelete:
		return p.parseDelete()
	case lexer.SymDrop:
		return p.parseDrop()
	default:
		return nil, p.expect(
			lexer.SymCreate, lexer.SymSelect, lexer.SymInsert,
			lexer.SymUpdate, lexer.SymDelete, lexer.SymDrop)
	}
}

// statementEnd expects the terminator after a statement: a semicolon
// (consumed) or end of stream.
func (p *Parser) statementEnd() bool {
	switch {
	case p.tok.Symbol == lexer.SymSemicolon:
		p.advance()
		return true
	case p.tok.Kind == lexer.KindEOS:
		return true
	case p.tok.Kind == lexer.KindError:
		return false
	default:
		return p.expect(lexer.SymEOS, lexer.SymSemicolon)
	}
}

// ---- identifier helpers ----

// identText strips the delimiters from a delimited identifier lexeme;
// regular identifiers are returned verbatim, preserving source case.
func identText(raw []byte) string {
	if len(raw) >= 2 {
		switch raw[0] {
		case '"', '`', '\'':
			if raw[len(raw)-1] == raw[0] {
				return string(raw[1 : len(raw)-1])
			}
		}
	}
	return string(raw)
}

func (p *Parser) parseIdent() (*ast.Ident, bool) {
	if p.tok.Kind != lexer.KindIdentifier {
		return nil, p.expect(lexer.SymIdentifier)
	}
	t := p.tok
	p.advance()
	return node(p, ast.Ident{Raw: t.Raw, Name: identText(t.Raw), TokPos: t.Pos}), true
}

func (p *Parser) parseQualifiedName() (*ast.QualifiedName, bool) {
	first, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	var parts []*ast.Ident
	if first != nil {
		parts = append(parts, first)
	}
	for p.is(lexer.SymPeriod) {
		p.advance()
		next, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if next != nil {
			parts = append(parts, next)
		}
	}
	return node(p, ast.QualifiedName{Parts: parts}), true
}

// parseIdentList parses a comma-separated identifier list; the caller has
// already consumed the opening LPAREN and eats the closing RPAREN.
func (p *Parser) parseIdentList() ([]*ast.Ident, bool) {
	var ids []*ast.Ident
	for {
		id, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if id != nil {
			ids = append(ids, id)
		}
		if !p.tryEat(lexer.SymComma) {
			break
		}
	}
	return ids, true
}

// parseUnsignedInt consumes an unsigned integer literal and decodes its
// base-10 value.
func (p *Parser) parseUnsignedInt() (int, bool) {
	if p.tok.Symbol != lexer.SymLitUnsignedInteger {
		return 0, p.expect(lexer.SymLitUnsignedInteger)
	}
	n, err := strconv.Atoi(string(p.tok.Raw))
	if err != nil {
		return 0, p.expect(lexer.SymLitUnsignedInteger)
	}
	p.advance()
	return n, true
}
