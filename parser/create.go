package parser

import (
	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
)

// parseCreate routes a CREATE statement by its second token:
//
//	CREATE SCHEMA ...
//	CREATE [{GLOBAL|LOCAL} TEMPORARY] TABLE ...
//	CREATE VIEW ...
func (p *Parser) parseCreate() (ast.Statement, bool) {
	pos := p.tok.Pos
	p.advance() // CREATE
	switch p.tok.Symbol {
	case lexer.SymSchema:
		return p.parseCreateSchema(pos)
	case lexer.SymTable:
		p.advance()
		return p.parseCreateTable(pos, ast.TableTypeNormal)
	case lexer.SymView:
		return p.parseCreateView(pos)
	case lexer.SymGlobal:
		p.advance()
		if !p.eat(lexer.SymTemporary) {
			return nil, false
		}
		if !p.eat(lexer.SymTable) {
			return nil, false
		}
		return p.parseCreateTable(pos, ast.TableTypeTemporaryGlobal)
	case lexer.SymLocal:
		p.advance()
		if !p.eat(lexer.SymTemporary) {
			return nil, false
		}
		if !p.eat(lexer.SymTable) {
			return nil, false
		}
		return p.parseCreateTable(pos, ast.TableTypeTemporaryLocal)
	case lexer.SymTemporary:
		// Bare TEMPORARY defaults to a global temporary table.
		p.advance()
		if !p.eat(lexer.SymTable) {
			return nil, false
		}
		return p.parseCreateTable(pos, ast.TableTypeTemporaryGlobal)
	default:
		return nil, p.expect(
			lexer.SymSchema, lexer.SymTable, lexer.SymView,
			lexer.SymGlobal, lexer.SymLocal, lexer.SymTemporary)
	}
}

// parseCreateSchema implements:
//
//	<schema definition> ::=
//	    CREATE SCHEMA <schema name clause>
//	    [ DEFAULT CHARACTER SET <character set specification> ]
//
//	<schema name clause> ::=
//	    <schema name>
//	    | AUTHORIZATION <authorization identifier>
//	    | <schema name> AUTHORIZATION <authorization identifier>
//
// The schema element list is accepted as empty; elements are separate
// statements in this grammar.
func (p *Parser) parseCreateSchema(pos int32) (ast.Statement, bool) {
	p.advance() // SCHEMA

	var name, authz, charset *ast.Ident

	// We need either a schema name or the AUTHORIZATION clause here.
	switch {
	case p.tok.Kind == lexer.KindIdentifier:
		name, _ = p.parseIdent()
	case p.tok.Symbol == lexer.SymAuthorization:
	default:
		return nil, p.expect(lexer.SymIdentifier, lexer.SymAuthorization)
	}

	if p.tryEat(lexer.SymAuthorization) {
		id, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		authz = id
	}

	if p.tryEat(lexer.SymDefault) {
		if !p.eat(lexer.SymCharacter) {
			return nil, false
		}
		if !p.eat(lexer.SymSet) {
			return nil, false
		}
		id, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		charset = id
	}

	if p.noBuild() {
		return nil, true
	}
	return node(p, ast.CreateSchemaStmt{
		Name:           name,
		Authorization:  authz,
		DefaultCharset: charset,
		TokPos:         pos,
	}), true
}

// parseCreateTable implements the <table definition> body; the caller has
// consumed through the TABLE keyword and determined the table type.
//
//	CREATE [{GLOBAL|LOCAL} TEMPORARY] TABLE <table name>
//	    ( <table element> [, <table element>]* )
//	    [ ON COMMIT {DELETE|PRESERVE} ROWS ]
func (p *Parser) parseCreateTable(pos int32, ttype ast.TableType) (ast.Statement, bool) {
	name, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}
	if !p.eat(lexer.SymLParen) {
		return nil, false
	}

	var cols []*ast.ColumnDef
	var constraints []*ast.TableConstraint
	for {
		// A table element is a column definition or a table constraint.
		// Column definitions lead with an identifier; everything else must
		// open a constraint.
		if p.tok.Kind == lexer.KindIdentifier {
			col, ok := p.parseColumnDef()
			if !ok {
				return nil, false
			}
			if col != nil {
				cols = append(cols, col)
			}
		} else {
			c, ok := p.parseTableConstraint()
			if !ok {
				return nil, false
			}
			if c != nil {
				constraints = append(constraints, c)
			}
		}
		if p.tryEat(lexer.SymComma) {
			continue
		}
		if p.tryEat(lexer.SymRParen) {
			break
		}
		return nil, p.expect(lexer.SymComma, lexer.SymRParen)
	}

	onCommit := ast.CommitActionNone
	if p.is(lexer.SymOn) {
		p.advance()
		if !p.eat(lexer.SymCommit) {
			return nil, false
		}
		switch p.tok.Symbol {
		case lexer.SymDelete:
			onCommit = ast.CommitActionDelete
		case lexer.SymPreserve:
			onCommit = ast.CommitActionPreserve
		default:
			return nil, p.expect(lexer.SymDelete, lexer.SymPreserve)
		}
		p.advance()
		if !p.eat(lexer.SymRows) {
			return nil, false
		}
	}

	if p.noBuild() {
		return nil, true
	}
	return node(p, ast.CreateTableStmt{
		Type:        ttype,
		Name:        name,
		Columns:     cols,
		Constraints: constraints,
		OnCommit:    onCommit,
		TokPos:      pos,
	}), true
}

// parseColumnDef implements:
//
//	<column definition> ::=
//	    <column name> <data type>
//	    [ <default clause> ] [ <column constraint definition> ... ]
//	    [ <collate clause> ]
func (p *Parser) parseColumnDef() (*ast.ColumnDef, bool) {
	name, ok := p.parseIdent()
	if !ok {
		return nil, false
	}
	dt, ok := p.parseDataType()
	if !ok {
		return nil, false
	}

	var def *ast.DefaultClause
	var constraints []*ast.ColumnConstraint
	var collate *ast.Ident
	hasDefault := false
	for {
		switch p.tok.Symbol {
		case lexer.SymDefault:
			if hasDefault {
				return nil, p.expect(lexer.SymConstraint, lexer.SymComma, lexer.SymRParen)
			}
			hasDefault = true
			d, ok := p.parseDefaultClause()
			if !ok {
				return nil, false
			}
			def = d
		case lexer.SymConstraint, lexer.SymNot, lexer.SymUnique,
			lexer.SymPrimary, lexer.SymReferences, lexer.SymCheck:
			c, ok := p.parseColumnConstraint()
			if !ok {
				return nil, false
			}
			if c != nil {
				constraints = append(constraints, c)
			}
		case lexer.SymCollate:
			p.advance()
			id, ok := p.parseIdent()
			if !ok {
				return nil, false
			}
			collate = id
		default:
			if p.noBuild() {
				return nil, true
			}
			var npos int32
			if name != nil {
				npos = name.TokPos
			}
			return node(p, ast.ColumnDef{
				Name:        name,
				Type:        dt,
				Default:     def,
				Constraints: constraints,
				Collate:     collate,
				TokPos:      npos,
			}), true
		}
	}
}

// parseDefaultClause implements:
//
//	<default clause> ::= DEFAULT <default option>
//	<default option> ::=
//	    <literal> | NULL
//	    | USER | CURRENT_USER | SESSION_USER | SYSTEM_USER
//	    | CURRENT_DATE | CURRENT_TIME [(p)] | CURRENT_TIMESTAMP [(p)]
func (p *Parser) parseDefaultClause() (*ast.DefaultClause, bool) {
	pos := p.tok.Pos
	p.advance() // DEFAULT

	var value ast.Expr
	t := p.tok
	switch {
	case t.Kind == lexer.KindLiteral:
		p.advance()
		if lit := node(p, ast.Literal{Raw: t.Raw, Sym: t.Symbol, TokPos: t.Pos}); lit != nil {
			value = lit
		}
	case t.Symbol == lexer.SymNull:
		p.advance()
		if n := node(p, ast.NullValue{TokPos: t.Pos}); n != nil {
			value = n
		}
	case t.Symbol == lexer.SymUser || t.Symbol == lexer.SymCurrentUser ||
		t.Symbol == lexer.SymSessionUser || t.Symbol == lexer.SymSystemUser ||
		t.Symbol == lexer.SymCurrentDate:
		p.advance()
		if v := node(p, ast.ValueSpec{Sym: t.Symbol, TokPos: t.Pos}); v != nil {
			value = v
		}
	case t.Symbol == lexer.SymCurrentTime || t.Symbol == lexer.SymCurrentTimestamp:
		p.advance()
		prec := 0
		if p.tryEat(lexer.SymLParen) {
			n, ok := p.parseUnsignedInt()
			if !ok {
				return nil, false
			}
			if !p.eat(lexer.SymRParen) {
				return nil, false
			}
			prec = n
		}
		if v := node(p, ast.ValueSpec{Sym: t.Symbol, Precision: prec, TokPos: t.Pos}); v != nil {
			value = v
		}
	default:
		return nil, p.expect(
			lexer.SymLitUnsignedInteger, lexer.SymLitCharString, lexer.SymNull,
			lexer.SymUser, lexer.SymCurrentUser, lexer.SymSessionUser,
			lexer.SymSystemUser, lexer.SymCurrentDate, lexer.SymCurrentTime,
			lexer.SymCurrentTimestamp)
	}

	if p.noBuild() {
		return nil, true
	}
	return &ast.DefaultClause{Value: value, TokPos: pos}, true
}

// parseColumnConstraint implements:
//
//	[ CONSTRAINT <constraint name> ]
//	{ NOT NULL | UNIQUE | PRIMARY KEY
//	| <references specification> | CHECK ( <search condition> ) }
func (p *Parser) parseColumnConstraint() (*ast.ColumnConstraint, bool) {
	pos := p.tok.Pos
	var name *ast.Ident
	if p.tryEat(lexer.SymConstraint) {
		id, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		name = id
	}

	c := ast.ColumnConstraint{Name: name, TokPos: pos}
	switch p.tok.Symbol {
	case lexer.SymNot:
		p.advance()
		if !p.eat(lexer.SymNull) {
			return nil, false
		}
		c.Kind = ast.NotNullConstraint
	case lexer.SymUnique:
		p.advance()
		c.Kind = ast.UniqueConstraint
	case lexer.SymPrimary:
		p.advance()
		if !p.eat(lexer.SymKey) {
			return nil, false
		}
		c.Kind = ast.PrimaryKeyConstraint
	case lexer.SymReferences:
		refs, ok := p.parseReferences()
		if !ok {
			return nil, false
		}
		c.Kind = ast.ReferencesConstraint
		c.Refs = refs
	case lexer.SymCheck:
		p.advance()
		if !p.eat(lexer.SymLParen) {
			return nil, false
		}
		cond, ok := p.parseSearchCondition()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		c.Kind = ast.CheckConstraint
		c.Check = cond
	default:
		return nil, p.expect(
			lexer.SymNot, lexer.SymUnique, lexer.SymPrimary,
			lexer.SymReferences, lexer.SymCheck)
	}
	return node(p, c), true
}

// parseReferences implements:
//
//	REFERENCES <table name> [ ( <column list> ) ] [ MATCH {FULL|PARTIAL} ]
func (p *Parser) parseReferences() (*ast.References, bool) {
	p.advance() // REFERENCES
	table, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}
	var cols []*ast.Ident
	if p.tryEat(lexer.SymLParen) {
		cols, ok = p.parseIdentList()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
	}
	match := ast.MatchNone
	if p.tryEat(lexer.SymMatch) {
		switch p.tok.Symbol {
		case lexer.SymFull:
			match = ast.MatchFull
		case lexer.SymPartial:
			match = ast.MatchPartial
		default:
			return nil, p.expect(lexer.SymFull, lexer.SymPartial)
		}
		p.advance()
	}
	return node(p, ast.References{Table: table, Columns: cols, Match: match}), true
}

// parseTableConstraint implements:
//
//	[ CONSTRAINT <constraint name> ]
//	{ UNIQUE ( <column list> ) | PRIMARY KEY ( <column list> )
//	| FOREIGN KEY ( <column list> ) <references specification>
//	| CHECK ( <search condition> ) }
func (p *Parser) parseTableConstraint() (*ast.TableConstraint, bool) {
	pos := p.tok.Pos
	var name *ast.Ident
	if p.tryEat(lexer.SymConstraint) {
		id, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		name = id
	}

	c := ast.TableConstraint{Name: name, TokPos: pos}
	switch p.tok.Symbol {
	case lexer.SymUnique:
		p.advance()
		cols, ok := p.parseParenIdentList()
		if !ok {
			return nil, false
		}
		c.Kind = ast.UniqueConstraint
		c.Columns = cols
	case lexer.SymPrimary:
		p.advance()
		if !p.eat(lexer.SymKey) {
			return nil, false
		}
		cols, ok := p.parseParenIdentList()
		if !ok {
			return nil, false
		}
		c.Kind = ast.PrimaryKeyConstraint
		c.Columns = cols
	case lexer.SymForeign:
		p.advance()
		if !p.eat(lexer.SymKey) {
			return nil, false
		}
		cols, ok := p.parseParenIdentList()
		if !ok {
			return nil, false
		}
		if !p.is(lexer.SymReferences) {
			return nil, p.expect(lexer.SymReferences)
		}
		refs, ok := p.parseReferences()
		if !ok {
			return nil, false
		}
		c.Kind = ast.ForeignKeyConstraint
		c.Columns = cols
		c.Refs = refs
	case lexer.SymCheck:
		p.advance()
		if !p.eat(lexer.SymLParen) {
			return nil, false
		}
		cond, ok := p.parseSearchCondition()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		c.Kind = ast.CheckConstraint
		c.Check = cond
	default:
		return nil, p.expect(
			lexer.SymIdentifier, lexer.SymConstraint, lexer.SymUnique,
			lexer.SymPrimary, lexer.SymForeign, lexer.SymCheck)
	}
	return node(p, c), true
}

func (p *Parser) parseParenIdentList() ([]*ast.Ident, bool) {
	if !p.eat(lexer.SymLParen) {
		return nil, false
	}
	ids, ok := p.parseIdentList()
	if !ok {
		return nil, false
	}
	if !p.eat(lexer.SymRParen) {
		return nil, false
	}
	return ids, true
}

// parseCreateView implements:
//
//	CREATE VIEW <table name> [ ( <view column list> ) ]
//	    AS <query expression> [ WITH CHECK OPTION ]
func (p *Parser) parseCreateView(pos int32) (ast.Statement, bool) {
	p.advance() // VIEW
	name, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}
	var cols []*ast.Ident
	if p.tryEat(lexer.SymLParen) {
		cols, ok = p.parseIdentList()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
	}
	if !p.eat(lexer.SymAs) {
		return nil, false
	}
	if !p.is(lexer.SymSelect) {
		return nil, p.expect(lexer.SymSelect)
	}
	query, ok := p.parseQueryExpression()
	if !ok {
		return nil, false
	}
	check := false
	if p.tryEat(lexer.SymWith) {
		if !p.eat(lexer.SymCheck) {
			return nil, false
		}
		if !p.eat(lexer.SymOption) {
			return nil, false
		}
		check = true
	}

	if p.noBuild() {
		return nil, true
	}
	return node(p, ast.CreateViewStmt{
		Name:        name,
		Columns:     cols,
		Query:       query,
		CheckOption: check,
		TokPos:      pos,
	}), true
}
