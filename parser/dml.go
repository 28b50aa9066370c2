package parser

import (
	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
)

// parseInsert implements:
//
//	<insert statement> ::= INSERT INTO <table name> <insert columns and source>
//
//	<insert columns and source> ::=
//	    [ ( <insert column list> ) ] { VALUES <value list> ... | <query expression> }
//	    | DEFAULT VALUES
//
// A VALUES source produces an InsertStmt; a query expression source produces
// an InsertSelectStmt.
func (p *Parser) parseInsert() (ast.Statement, bool) {
	pos := p.tok.Pos
	p.advance() // INSERT
	if !p.eat(lexer.SymInto) {
		return nil, false
	}
	table, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}

	var cols []*ast.Ident
	var rows [][]ast.Expr
	var query *ast.SelectStmt
	defaultValues := false

	switch p.tok.Symbol {
	case lexer.SymDefault:
		p.advance()
		if !p.eat(lexer.SymValues) {
			return nil, false
		}
		defaultValues = true

	case lexer.SymLParen:
		p.advance()
		cols, ok = p.parseIdentList()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		switch p.tok.Symbol {
		case lexer.SymValues:
			p.advance()
			rows, ok = p.parseValueLists()
			if !ok {
				return nil, false
			}
		case lexer.SymSelect:
			query, ok = p.parseQueryExpression()
			if !ok {
				return nil, false
			}
		default:
			return nil, p.expect(lexer.SymValues, lexer.SymSelect)
		}

	case lexer.SymValues:
		p.advance()
		rows, ok = p.parseValueLists()
		if !ok {
			return nil, false
		}

	case lexer.SymSelect:
		query, ok = p.parseQueryExpression()
		if !ok {
			return nil, false
		}

	default:
		return nil, p.expect(
			lexer.SymDefault, lexer.SymValues, lexer.SymLParen, lexer.SymSelect)
	}

	if p.noBuild() {
		return nil, true
	}
	if query != nil {
		return node(p, ast.InsertSelectStmt{
			Table:   table,
			Columns: cols,
			Query:   query,
			TokPos:  pos,
		}), true
	}
	return node(p, ast.InsertStmt{
		Table:         table,
		Columns:       cols,
		Rows:          rows,
		DefaultValues: defaultValues,
		TokPos:        pos,
	}), true
}

// parseValueLists parses one or more parenthesized value lists:
//
//	( <value list> ) [, ( <value list> )]*
func (p *Parser) parseValueLists() ([][]ast.Expr, bool) {
	var rows [][]ast.Expr
	for {
		if !p.eat(lexer.SymLParen) {
			return nil, false
		}
		var row []ast.Expr
		for {
			item, ok := p.parseRowValue()
			if !ok {
				return nil, false
			}
			if item != nil {
				row = append(row, item)
			}
			if p.tryEat(lexer.SymComma) {
				continue
			}
			if p.tryEat(lexer.SymRParen) {
				break
			}
			return nil, p.expect(lexer.SymComma, lexer.SymRParen)
		}
		if !p.noBuild() {
			rows = append(rows, row)
		}
		if !p.tryEat(lexer.SymComma) {
			break
		}
	}
	return rows, true
}

// parseRowValue implements:
//
//	<row value constructor element> ::= <value expression> | NULL | DEFAULT
func (p *Parser) parseRowValue() (ast.Expr, bool) {
	switch p.tok.Symbol {
	case lexer.SymNull:
		pos := p.tok.Pos
		p.advance()
		return exprNode(p, ast.NullValue{TokPos: pos}), true
	case lexer.SymDefault:
		pos := p.tok.Pos
		p.advance()
		return exprNode(p, ast.DefaultValue{TokPos: pos}), true
	default:
		return p.parseValueExpr()
	}
}

// parseUpdate implements:
//
//	UPDATE <table name>
//	    SET <column> = {<value expression> | NULL | DEFAULT} [, ...]
//	    [ WHERE <search condition> ]
func (p *Parser) parseUpdate() (ast.Statement, bool) {
	pos := p.tok.Pos
	p.advance() // UPDATE
	table, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}
	if !p.eat(lexer.SymSet) {
		return nil, false
	}

	var set []ast.Assignment
	for {
		col, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymEqual) {
			return nil, false
		}
		val, ok := p.parseRowValue()
		if !ok {
			return nil, false
		}
		if !p.noBuild() {
			set = append(set, ast.Assignment{Column: col, Value: val})
		}
		if !p.tryEat(lexer.SymComma) {
			break
		}
	}

	var where ast.Expr
	if p.tryEat(lexer.SymWhere) {
		where, ok = p.parseSearchCondition()
		if !ok {
			return nil, false
		}
	}

	if p.noBuild() {
		return nil, true
	}
	return node(p, ast.UpdateStmt{Table: table, Set: set, Where: where, TokPos: pos}), true
}

// parseDelete implements:
//
//	DELETE FROM <table name> [ WHERE <search condition> ]
func (p *Parser) parseDelete() (ast.Statement, bool) {
	pos := p.tok.Pos
	p.advance() // DELETE
	if !p.eat(lexer.SymFrom) {
		return nil, false
	}
	table, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}
	var where ast.Expr
	if p.tryEat(lexer.SymWhere) {
		where, ok = p.parseSearchCondition()
		if !ok {
			return nil, false
		}
	}
	if p.noBuild() {
		return nil, true
	}
	return node(p, ast.DeleteStmt{Table: table, Where: where, TokPos: pos}), true
}

// parseDrop routes DROP SCHEMA / TABLE / VIEW, each taking the SQL-92
// <drop behavior>.
func (p *Parser) parseDrop() (ast.Statement, bool) {
	pos := p.tok.Pos
	p.advance() // DROP
	switch p.tok.Symbol {
	case lexer.SymSchema:
		p.advance()
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		behavior, ok := p.parseDropBehavior()
		if !ok {
			return nil, false
		}
		if p.noBuild() {
			return nil, true
		}
		return node(p, ast.DropSchemaStmt{Name: name, Behavior: behavior, TokPos: pos}), true

	case lexer.SymTable:
		p.advance()
		name, ok := p.parseQualifiedName()
		if !ok {
			return nil, false
		}
		behavior, ok := p.parseDropBehavior()
		if !ok {
			return nil, false
		}
		if p.noBuild() {
			return nil, true
		}
		return node(p, ast.DropTableStmt{Name: name, Behavior: behavior, TokPos: pos}), true

	case lexer.SymView:
		p.advance()
		name, ok := p.parseQualifiedName()
		if !ok {
			return nil, false
		}
		behavior, ok := p.parseDropBehavior()
		if !ok {
			return nil, false
		}
		if p.noBuild() {
			return nil, true
		}
		return node(p, ast.DropViewStmt{Name: name, Behavior: behavior, TokPos: pos}), true

	default:
		return nil, p.expect(lexer.SymSchema, lexer.SymTable, lexer.SymView)
	}
}

func (p *Parser) parseDropBehavior() (ast.DropBehavior, bool) {
	switch p.tok.Symbol {
	case lexer.SymCascade:
		p.advance()
		return ast.DropCascade, true
	case lexer.SymRestrict:
		p.advance()
		return ast.DropRestrict, true
	}
	return ast.DropUnspecified, true
}
