package lexer

import (
	"bytes"
	"testing"
)

func lexAll(t *testing.T, sql string) []Token {
	t.Helper()
	l := NewString(sql)
	var toks []Token
	for {
		tok := l.Next()
		if tok.Kind == KindEOS {
			break
		}
		if tok.Kind == KindError {
			t.Fatalf("unexpected lex error: %v\nSQL: %s", l.Err(), sql)
		}
		toks = append(toks, tok)
	}
	return toks
}

func symbols(toks []Token) []Symbol {
	syms := make([]Symbol, len(toks))
	for i, t := range toks {
		syms[i] = t.Symbol
	}
	return syms
}

func expectSymbols(t *testing.T, sql string, want ...Symbol) {
	t.Helper()
	got := symbols(lexAll(t, sql))
	if len(got) != len(want) {
		t.Fatalf("token count mismatch for %q: got %v want %v", sql, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d of %q: got %s want %s", i, sql, got[i], want[i])
		}
	}
}

func TestKeywords(t *testing.T) {
	expectSymbols(t, "CREATE SCHEMA TABLE INSERT INTO VALUES",
		SymCreate, SymSchema, SymTable, SymInsert, SymInto, SymValues)
}

func TestKeywordCaseInsensitive(t *testing.T) {
	for _, sql := range []string{"SELECT", "select", "Select", "sElEcT"} {
		toks := lexAll(t, sql)
		if len(toks) != 1 || toks[0].Symbol != SymSelect {
			t.Fatalf("%q did not lex as SELECT keyword: %v", sql, toks)
		}
		if toks[0].Kind != KindKeyword {
			t.Fatalf("%q kind = %s, want keyword", sql, toks[0].Kind)
		}
	}
}

func TestIdentifiers(t *testing.T) {
	toks := lexAll(t, "users _tmp x1 selection")
	for i, tok := range toks {
		if tok.Kind != KindIdentifier || tok.Symbol != SymIdentifier {
			t.Fatalf("token %d: got %s/%s, want identifier", i, tok.Kind, tok.Symbol)
		}
	}
	if string(toks[3].Raw) != "selection" {
		t.Fatalf("near-keyword lexeme = %q", toks[3].Raw)
	}
}

func TestIdentifierPreservesCase(t *testing.T) {
	toks := lexAll(t, "MyTable")
	if string(toks[0].Raw) != "MyTable" {
		t.Fatalf("identifier lexeme = %q, want MyTable", toks[0].Raw)
	}
}

func TestDelimitedIdentifier(t *testing.T) {
	toks := lexAll(t, `"has space"`)
	if len(toks) != 1 || toks[0].Kind != KindIdentifier {
		t.Fatalf("delimited identifier: %v", toks)
	}
	if string(toks[0].Raw) != `"has space"` {
		t.Fatalf("lexeme = %q", toks[0].Raw)
	}
}

func TestBacktickIdentifier(t *testing.T) {
	toks := lexAll(t, "`weird name`")
	if len(toks) != 1 || toks[0].Kind != KindIdentifier {
		t.Fatalf("backtick identifier: %v", toks)
	}
}

func TestUnterminatedDelimitedIdentifier(t *testing.T) {
	l := NewString(`"no closer`)
	tok := l.Next()
	if tok.Kind != KindError {
		t.Fatalf("got %s, want error token", tok.Kind)
	}
	if l.Err() == nil || l.Err().Pos != 0 {
		t.Fatalf("lex error = %v", l.Err())
	}
	if next := l.Next(); next.Kind != KindEOS {
		t.Fatalf("after error got %s, want EOS", next.Kind)
	}
}

func TestPunctuators(t *testing.T) {
	expectSymbols(t, "; , ( ) . * / = <> < > <= >= ||",
		SymSemicolon, SymComma, SymLParen, SymRParen, SymPeriod,
		SymAsterisk, SymSolidus, SymEqual, SymNotEqual, SymLT, SymGT,
		SymLTE, SymGTE, SymConcat)
}

func TestNumericLiterals(t *testing.T) {
	cases := []struct {
		sql string
		sym Symbol
	}{
		{"42", SymLitUnsignedInteger},
		{"-1", SymLitSignedInteger},
		{"+7", SymLitSignedInteger},
		{"3.14", SymLitUnsignedNumeric},
		{"-2.5", SymLitSignedNumeric},
		{"1e10", SymLitApproxNumeric},
		{"1.5E-3", SymLitApproxNumeric},
		{"-4e+2", SymLitApproxNumeric},
	}
	for _, c := range cases {
		toks := lexAll(t, c.sql)
		if len(toks) != 1 {
			t.Fatalf("%q: got %d tokens", c.sql, len(toks))
		}
		if toks[0].Symbol != c.sym {
			t.Fatalf("%q: got %s want %s", c.sql, toks[0].Symbol, c.sym)
		}
		if string(toks[0].Raw) != c.sql {
			t.Fatalf("%q: lexeme %q", c.sql, toks[0].Raw)
		}
	}
}

func TestSignedLiteralVsMinusPunctuator(t *testing.T) {
	// A sign directly followed by a digit is a literal; a standalone sign is
	// a punctuator.
	expectSymbols(t, "a - 1", SymIdentifier, SymMinus, SymLitUnsignedInteger)
	expectSymbols(t, "a -1", SymIdentifier, SymLitSignedInteger)
}

func TestMalformedExponent(t *testing.T) {
	l := NewString("1e")
	tok := l.Next()
	if tok.Kind != KindError {
		t.Fatalf("got %s, want error token", tok.Kind)
	}
}

func TestStringLiterals(t *testing.T) {
	toks := lexAll(t, "'x' 'it''s' N'nat' B'1010' X'AF'")
	want := []Symbol{
		SymLitCharString, SymLitCharString, SymLitNationalString,
		SymLitBitString, SymLitHexString,
	}
	got := symbols(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s want %s", i, got[i], want[i])
		}
	}
	if string(toks[1].Raw) != "'it''s'" {
		t.Fatalf("escaped string lexeme = %q", toks[1].Raw)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := NewString("'never ends")
	tok := l.Next()
	if tok.Kind != KindError {
		t.Fatalf("got %s, want error token", tok.Kind)
	}
	if l.Err() == nil {
		t.Fatal("expected lex error")
	}
}

func TestLineComment(t *testing.T) {
	expectSymbols(t, "-- a comment\nSELECT", SymSelect)
	expectSymbols(t, "SELECT -- trailing", SymSelect)
}

func TestBlockComment(t *testing.T) {
	toks := lexAll(t, "SELECT /* multi\nline */ 1")
	want := []Symbol{SymSelect, SymComment, SymLitUnsignedInteger}
	got := symbols(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s want %s", i, got[i], want[i])
		}
	}
	if !bytes.HasPrefix(toks[1].Raw, []byte("/*")) || !bytes.HasSuffix(toks[1].Raw, []byte("*/")) {
		t.Fatalf("comment lexeme = %q", toks[1].Raw)
	}
}

func TestCursorMonotonic(t *testing.T) {
	sql := "CREATE TABLE t (id INT, name VARCHAR(64)); INSERT INTO t VALUES (1, 'x') -- done"
	l := NewString(sql)
	last := l.Cursor()
	for {
		tok := l.Next()
		if cur := l.Cursor(); cur < last {
			t.Fatalf("cursor moved backwards: %d -> %d", last, cur)
		} else {
			last = cur
		}
		if tok.Kind == KindEOS || tok.Kind == KindError {
			break
		}
	}
}

func TestTokenPositions(t *testing.T) {
	sql := "SELECT  id"
	toks := lexAll(t, sql)
	if toks[0].Pos != 0 || toks[0].End() != 6 {
		t.Fatalf("SELECT lexeme range [%d,%d)", toks[0].Pos, toks[0].End())
	}
	if toks[1].Pos != 8 || string(sql[toks[1].Pos:toks[1].End()]) != "id" {
		t.Fatalf("id lexeme range [%d,%d)", toks[1].Pos, toks[1].End())
	}
}

func TestTokenize(t *testing.T) {
	buf := make([]Token, 0, 32)
	toks := Tokenize([]byte("SELECT 1;"), buf)
	if len(toks) != 4 { // SELECT, 1, ;, EOS
		t.Fatalf("got %d tokens: %v", len(toks), symbols(toks))
	}
	if toks[len(toks)-1].Kind != KindEOS {
		t.Fatal("last token is not EOS")
	}
}

func TestReset(t *testing.T) {
	l := NewString("'bad")
	if tok := l.Next(); tok.Kind != KindError {
		t.Fatalf("got %s, want error", tok.Kind)
	}
	l.Reset([]byte("SELECT"))
	if tok := l.Next(); tok.Symbol != SymSelect {
		t.Fatalf("after reset got %s", tok.Symbol)
	}
}

func BenchmarkLexer(b *testing.B) {
	src := []byte(`
		CREATE TABLE orders (
			id      INT NOT NULL PRIMARY KEY,
			total   NUMERIC(12,2) DEFAULT 0,
			created TIMESTAMP(3) WITH TIME ZONE
		);
		INSERT INTO orders (id, total) VALUES (1, 9.99), (2, -1.5);
		SELECT o.id, SUM(o.total) FROM orders o GROUP BY o.id HAVING SUM(o.total) > 0`)
	l := New(src)
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Reset(src)
		for {
			tok := l.Next()
			if tok.Kind == KindEOS || tok.Kind == KindError {
				break
			}
		}
	}
}
