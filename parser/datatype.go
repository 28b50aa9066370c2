package parser

import (
	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
)

// dataTypeLeading is the expected-symbol set reported when a data type is
// required but the current token opens none of the type families.
var dataTypeLeading = []lexer.Symbol{
	lexer.SymChar, lexer.SymCharacter, lexer.SymVarChar,
	lexer.SymNational, lexer.SymNChar, lexer.SymBit,
	lexer.SymInt, lexer.SymInteger, lexer.SymSmallInt,
	lexer.SymNumeric, lexer.SymDec, lexer.SymDecimal,
	lexer.SymFloat, lexer.SymReal, lexer.SymDouble,
	lexer.SymDate, lexer.SymTime, lexer.SymTimestamp, lexer.SymInterval,
}

// parseDataType dispatches on the leading symbol to the type family
// sub-parser. See the <data type> production of SQL-92.
func (p *Parser) parseDataType() (*ast.DataType, bool) {
	switch p.tok.Symbol {
	case lexer.SymChar, lexer.SymCharacter, lexer.SymVarChar,
		lexer.SymNational, lexer.SymNChar:
		return p.parseCharStringType()
	case lexer.SymBit:
		return p.parseBitStringType()
	case lexer.SymInt, lexer.SymInteger, lexer.SymSmallInt,
		lexer.SymNumeric, lexer.SymDec, lexer.SymDecimal:
		return p.parseExactNumericType()
	case lexer.SymFloat, lexer.SymReal, lexer.SymDouble:
		return p.parseApproximateNumericType()
	case lexer.SymDate, lexer.SymTime, lexer.SymTimestamp:
		return p.parseDatetimeType()
	case lexer.SymInterval:
		return p.parseIntervalType()
	default:
		return nil, p.expect(dataTypeLeading...)
	}
}

// parseCharStringType implements <character string type> and
// <national character string type>:
//
//	{CHAR | CHARACTER} [VARYING] [(length)] [CHARACTER SET <charset>]
//	| VARCHAR [(length)] [CHARACTER SET <charset>]
//	| NATIONAL {CHAR | CHARACTER} [VARYING] [(length)]
//	| NCHAR [VARYING] [(length)]
//
// The NATIONAL branch sets the national kind and then runs the same
// CHAR/CHARACTER consumption as the plain branch.
func (p *Parser) parseCharStringType() (*ast.DataType, bool) {
	pos := p.tok.Pos
	dt := ast.DataType{Kind: ast.TypeChar, TokPos: pos}

	switch p.tok.Symbol {
	case lexer.SymChar, lexer.SymCharacter:
		p.advance()
		if p.tryEat(lexer.SymVarying) {
			dt.Kind = ast.TypeVarChar
		}
	case lexer.SymVarChar:
		p.advance()
		dt.Kind = ast.TypeVarChar
	case lexer.SymNChar:
		p.advance()
		dt.Kind = ast.TypeNChar
		if p.tryEat(lexer.SymVarying) {
			dt.Kind = ast.TypeNVarChar
		}
	case lexer.SymNational:
		p.advance()
		dt.Kind = ast.TypeNChar
		switch p.tok.Symbol {
		case lexer.SymChar, lexer.SymCharacter:
			p.advance()
		default:
			return nil, p.expect(lexer.SymChar, lexer.SymCharacter)
		}
		if p.tryEat(lexer.SymVarying) {
			dt.Kind = ast.TypeNVarChar
		}
	}

	if p.tryEat(lexer.SymLParen) {
		n, ok := p.parseUnsignedInt()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		dt.Length = n
	}

	// Optional CHARACTER SET <charset> suffix. CHARACTER here cannot open
	// another data type, so the lookahead is unambiguous.
	if p.is(lexer.SymCharacter) {
		p.advance()
		if !p.eat(lexer.SymSet) {
			return nil, false
		}
		cs, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		dt.Charset = cs
	}
	return node(p, dt), true
}

// parseBitStringType implements:
//
//	BIT [VARYING] [(length)]
func (p *Parser) parseBitStringType() (*ast.DataType, bool) {
	pos := p.tok.Pos
	p.advance() // BIT
	dt := ast.DataType{Kind: ast.TypeBit, TokPos: pos}
	if p.tryEat(lexer.SymVarying) {
		dt.Kind = ast.TypeVarBit
	}
	if p.tryEat(lexer.SymLParen) {
		n, ok := p.parseUnsignedInt()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		dt.Length = n
	}
	return node(p, dt), true
}

// parseExactNumericType implements:
//
//	{NUMERIC | DEC | DECIMAL} [(precision [, scale])]
//	| INTEGER | INT | SMALLINT
func (p *Parser) parseExactNumericType() (*ast.DataType, bool) {
	pos := p.tok.Pos
	dt := ast.DataType{TokPos: pos}
	switch p.tok.Symbol {
	case lexer.SymInt, lexer.SymInteger:
		p.advance()
		dt.Kind = ast.TypeInt
		return node(p, dt), true
	case lexer.SymSmallInt:
		p.advance()
		dt.Kind = ast.TypeSmallInt
		return node(p, dt), true
	}
	p.advance() // NUMERIC | DEC | DECIMAL
	dt.Kind = ast.TypeNumeric
	if p.tryEat(lexer.SymLParen) {
		n, ok := p.parseUnsignedInt()
		if !ok {
			return nil, false
		}
		dt.Precision = n
		if p.tryEat(lexer.SymComma) {
			s, ok := p.parseUnsignedInt()
			if !ok {
				return nil, false
			}
			dt.Scale = s
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
	}
	return node(p, dt), true
}

// parseApproximateNumericType implements:
//
//	FLOAT [(precision)]
//	| REAL                 -- synonym for FLOAT(24)
//	| DOUBLE PRECISION
func (p *Parser) parseApproximateNumericType() (*ast.DataType, bool) {
	pos := p.tok.Pos
	dt := ast.DataType{TokPos: pos}
	switch p.tok.Symbol {
	case lexer.SymReal:
		p.advance()
		dt.Kind = ast.TypeFloat
		dt.Precision = 24
		return node(p, dt), true
	case lexer.SymDouble:
		p.advance()
		if !p.eat(lexer.SymPrecision) {
			return nil, false
		}
		dt.Kind = ast.TypeDouble
		return node(p, dt), true
	}
	p.advance() // FLOAT
	dt.Kind = ast.TypeFloat
	if p.tryEat(lexer.SymLParen) {
		n, ok := p.parseUnsignedInt()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		dt.Precision = n
	}
	return node(p, dt), true
}

// parseDatetimeType implements:
//
//	DATE
//	| {TIME | TIMESTAMP} [(precision)] [WITH TIME ZONE]
func (p *Parser) parseDatetimeType() (*ast.DataType, bool) {
	pos := p.tok.Pos
	dt := ast.DataType{TokPos: pos}
	switch p.tok.Symbol {
	case lexer.SymDate:
		p.advance()
		dt.Kind = ast.TypeDate
		return node(p, dt), true
	case lexer.SymTime:
		dt.Kind = ast.TypeTime
	default:
		dt.Kind = ast.TypeTimestamp
	}
	p.advance()
	if p.tryEat(lexer.SymLParen) {
		n, ok := p.parseUnsignedInt()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		dt.Precision = n
	}
	if p.tryEat(lexer.SymWith) {
		if !p.eat(lexer.SymTime) {
			return nil, false
		}
		if !p.eat(lexer.SymZone) {
			return nil, false
		}
		dt.WithTimeZone = true
	}
	return node(p, dt), true
}

// intervalUnits maps the datetime field keywords of an interval qualifier.
var intervalUnits = map[lexer.Symbol]ast.IntervalUnit{
	lexer.SymYear:   ast.UnitYear,
	lexer.SymMonth:  ast.UnitMonth,
	lexer.SymDay:    ast.UnitDay,
	lexer.SymHour:   ast.UnitHour,
	lexer.SymMinute: ast.UnitMinute,
	lexer.SymSecond: ast.UnitSecond,
}

// parseIntervalType implements the single-field form of:
//
//	INTERVAL <interval qualifier>
//
// Only SECOND accepts a fractional precision.
func (p *Parser) parseIntervalType() (*ast.DataType, bool) {
	pos := p.tok.Pos
	p.advance() // INTERVAL
	unit, ok := intervalUnits[p.tok.Symbol]
	if !ok {
		return nil, p.expect(
			lexer.SymYear, lexer.SymMonth, lexer.SymDay,
			lexer.SymHour, lexer.SymMinute, lexer.SymSecond)
	}
	sym := p.tok.Symbol
	p.advance()
	dt := ast.DataType{Kind: ast.TypeInterval, IntervalUnit: unit, TokPos: pos}
	if sym == lexer.SymSecond && p.tryEat(lexer.SymLParen) {
		n, ok := p.parseUnsignedInt()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		dt.Precision = n
	}
	return node(p, dt), true
}
