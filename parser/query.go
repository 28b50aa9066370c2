package parser

import (
	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
)

// ---- query expressions ----

// parseQueryExpression implements:
//
//	<query expression> ::= <query term> { {UNION | EXCEPT} [ALL] <query term> }
//
// Set operations are recorded as a chain on the leftmost SelectStmt,
// appended at the tail so statement order equals source order.
func (p *Parser) parseQueryExpression() (*ast.SelectStmt, bool) {
	stmt, ok := p.parseQueryTerm()
	if !ok {
		return nil, false
	}
	for {
		var op ast.SetOp
		switch p.tok.Symbol {
		case lexer.SymUnion:
			op = ast.Union
		case lexer.SymExcept:
			op = ast.Except
		default:
			return stmt, true
		}
		p.advance()
		all := p.tryEat(lexer.SymAll)
		right, ok := p.parseQueryTerm()
		if !ok {
			return nil, false
		}
		appendSetOp(stmt, op, all, right)
	}
}

// parseQueryTerm implements:
//
//	<query term> ::= <query primary> { INTERSECT [ALL] <query primary> }
func (p *Parser) parseQueryTerm() (*ast.SelectStmt, bool) {
	stmt, ok := p.parseQueryPrimary()
	if !ok {
		return nil, false
	}
	for p.is(lexer.SymIntersect) {
		p.advance()
		all := p.tryEat(lexer.SymAll)
		right, ok := p.parseQueryPrimary()
		if !ok {
			return nil, false
		}
		appendSetOp(stmt, ast.Intersect, all, right)
	}
	return stmt, true
}

// parseQueryPrimary is a <select core> or a parenthesized query expression.
func (p *Parser) parseQueryPrimary() (*ast.SelectStmt, bool) {
	if p.is(lexer.SymLParen) {
		p.advance()
		stmt, ok := p.parseQueryExpression()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		return stmt, true
	}
	if !p.is(lexer.SymSelect) {
		return nil, p.expect(lexer.SymSelect, lexer.SymLParen)
	}
	return p.parseSelectCore()
}

func appendSetOp(stmt *ast.SelectStmt, op ast.SetOp, all bool, right *ast.SelectStmt) {
	if stmt == nil {
		return
	}
	cur := stmt
	for cur.SetOp != nil {
		cur = cur.SetOp.Right
	}
	cur.SetOp = &ast.SetOperation{Op: op, All: all, Right: right}
}

// parseSelectCore implements the body of a <query specification>:
//
//	SELECT [DISTINCT | ALL] <select list>
//	    [FROM <table reference> [, ...]]
//	    [WHERE <search condition>]
//	    [GROUP BY <grouping column> [, ...]]
//	    [HAVING <search condition>]
//	    [ORDER BY <sort key> [ASC|DESC] [, ...]]
func (p *Parser) parseSelectCore() (*ast.SelectStmt, bool) {
	pos := p.tok.Pos
	p.advance() // SELECT

	distinct := p.tryEat(lexer.SymDistinct)
	if !distinct {
		p.tryEat(lexer.SymAll)
	}

	var cols []ast.SelectColumn
	if p.is(lexer.SymAsterisk) {
		star := p.tok.Pos
		p.advance()
		if !p.noBuild() {
			cols = append(cols, ast.SelectColumn{Star: true, Expr: &ast.StarExpr{TokPos: star}})
		}
	} else {
		for {
			col, ok := p.parseSelectColumn()
			if !ok {
				return nil, false
			}
			if !p.noBuild() {
				cols = append(cols, col)
			}
			if !p.tryEat(lexer.SymComma) {
				break
			}
		}
	}

	stmt := node(p, ast.SelectStmt{Distinct: distinct, Columns: cols, TokPos: pos})

	if p.tryEat(lexer.SymFrom) {
		refs, ok := p.parseTableRefs()
		if !ok {
			return nil, false
		}
		if stmt != nil {
			stmt.From = refs
		}
	}

	if p.tryEat(lexer.SymWhere) {
		cond, ok := p.parseSearchCondition()
		if !ok {
			return nil, false
		}
		if stmt != nil {
			stmt.Where = cond
		}
	}

	if p.is(lexer.SymGroup) {
		p.advance()
		if !p.eat(lexer.SymBy) {
			return nil, false
		}
		exprs, ok := p.parseExprList()
		if !ok {
			return nil, false
		}
		if stmt != nil {
			stmt.GroupBy = exprs
		}
	}

	if p.tryEat(lexer.SymHaving) {
		cond, ok := p.parseSearchCondition()
		if !ok {
			return nil, false
		}
		if stmt != nil {
			stmt.Having = cond
		}
	}

	if p.is(lexer.SymOrder) {
		p.advance()
		if !p.eat(lexer.SymBy) {
			return nil, false
		}
		for {
			expr, ok := p.parseValueExpr()
			if !ok {
				return nil, false
			}
			item := ast.OrderByItem{Expr: expr}
			if p.tryEat(lexer.SymDesc) {
				item.Desc = true
			} else {
				p.tryEat(lexer.SymAsc)
			}
			if stmt != nil {
				stmt.OrderBy = append(stmt.OrderBy, item)
			}
			if !p.tryEat(lexer.SymComma) {
				break
			}
		}
	}

	return stmt, true
}

func (p *Parser) parseSelectColumn() (ast.SelectColumn, bool) {
	expr, ok := p.parseValueExpr()
	if !ok {
		return ast.SelectColumn{}, false
	}
	col := ast.SelectColumn{Expr: expr}
	if p.tryEat(lexer.SymAs) {
		alias, ok := p.parseIdent()
		if !ok {
			return ast.SelectColumn{}, false
		}
		col.Alias = alias
	} else if p.tok.Kind == lexer.KindIdentifier {
		alias, _ := p.parseIdent()
		col.Alias = alias
	}
	return col, true
}

// parseExprList parses a comma-separated value expression list.
func (p *Parser) parseExprList() ([]ast.Expr, bool) {
	var exprs []ast.Expr
	for {
		e, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		if e != nil {
			exprs = append(exprs, e)
		}
		if !p.tryEat(lexer.SymComma) {
			break
		}
	}
	return exprs, true
}

// ---- table references & joins ----

func (p *Parser) parseTableRefs() ([]ast.TableRef, bool) {
	var refs []ast.TableRef
	for {
		ref, ok := p.parseTableRef()
		if !ok {
			return nil, false
		}
		if ref != nil {
			refs = append(refs, ref)
		}
		if !p.tryEat(lexer.SymComma) {
			break
		}
	}
	return refs, true
}

// parseTableRef parses a primary reference then iteratively absorbs trailing
// join clauses, left-associatively.
func (p *Parser) parseTableRef() (ast.TableRef, bool) {
	left, ok := p.parseTablePrimary()
	if !ok {
		return nil, false
	}
	for {
		var kind ast.JoinKind
		pos := p.tok.Pos
		switch p.tok.Symbol {
		case lexer.SymJoin:
			p.advance()
			kind = ast.InnerJoin
		case lexer.SymInner:
			p.advance()
			if !p.eat(lexer.SymJoin) {
				return nil, false
			}
			kind = ast.InnerJoin
		case lexer.SymLeft:
			p.advance()
			p.tryEat(lexer.SymOuter)
			if !p.eat(lexer.SymJoin) {
				return nil, false
			}
			kind = ast.LeftJoin
		case lexer.SymRight:
			p.advance()
			p.tryEat(lexer.SymOuter)
			if !p.eat(lexer.SymJoin) {
				return nil, false
			}
			kind = ast.RightJoin
		case lexer.SymFull:
			p.advance()
			p.tryEat(lexer.SymOuter)
			if !p.eat(lexer.SymJoin) {
				return nil, false
			}
			kind = ast.FullJoin
		case lexer.SymCross:
			p.advance()
			if !p.eat(lexer.SymJoin) {
				return nil, false
			}
			kind = ast.CrossJoin
		case lexer.SymNatural:
			p.advance()
			if !p.eat(lexer.SymJoin) {
				return nil, false
			}
			kind = ast.NaturalJoin
		default:
			return left, true
		}

		right, ok := p.parseTablePrimary()
		if !ok {
			return nil, false
		}
		jt := node(p, ast.JoinTable{Left: left, Right: right, Kind: kind, TokPos: pos})

		// CROSS and NATURAL joins take no join specification.
		if kind != ast.CrossJoin && kind != ast.NaturalJoin {
			if p.tryEat(lexer.SymOn) {
				cond, ok := p.parseSearchCondition()
				if !ok {
					return nil, false
				}
				if jt != nil {
					jt.On = cond
				}
			} else if p.tryEat(lexer.SymUsing) {
				cols, ok := p.parseParenIdentList()
				if !ok {
					return nil, false
				}
				if jt != nil {
					jt.Using = cols
				}
			}
		}
		if jt != nil {
			left = jt
		} else {
			left = nil
		}
	}
}

// parseTablePrimary is a named table, a derived table, or a parenthesized
// joined table.
func (p *Parser) parseTablePrimary() (ast.TableRef, bool) {
	if p.is(lexer.SymLParen) {
		if p.peekSym() == lexer.SymSelect {
			pos := p.tok.Pos
			p.advance()
			q, ok := p.parseQueryExpression()
			if !ok {
				return nil, false
			}
			if !p.eat(lexer.SymRParen) {
				return nil, false
			}
			alias, ok := p.parseOptionalAlias()
			if !ok {
				return nil, false
			}
			dt := node(p, ast.DerivedTable{Query: q, Alias: alias, TokPos: pos})
			if dt == nil {
				return nil, true
			}
			return dt, true
		}
		p.advance()
		inner, ok := p.parseTableRef()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		return inner, true
	}

	if p.tok.Kind != lexer.KindIdentifier {
		return nil, p.expect(lexer.SymIdentifier, lexer.SymLParen)
	}
	name, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}
	alias, ok := p.parseOptionalAlias()
	if !ok {
		return nil, false
	}
	st := node(p, ast.SimpleTable{Name: name, Alias: alias})
	if st == nil {
		return nil, true
	}
	return st, true
}

func (p *Parser) parseOptionalAlias() (*ast.Ident, bool) {
	if p.tryEat(lexer.SymAs) {
		return p.parseIdent()
	}
	if p.tok.Kind == lexer.KindIdentifier {
		return p.parseIdent()
	}
	return nil, true
}

// ---- search conditions ----

// parseSearchCondition implements:
//
//	<search condition> ::= <boolean term> { OR <boolean term> }
func (p *Parser) parseSearchCondition() (ast.Expr, bool) {
	left, ok := p.parseBooleanTerm()
	if !ok {
		return nil, false
	}
	for p.is(lexer.SymOr) {
		pos := p.tok.Pos
		p.advance()
		right, ok := p.parseBooleanTerm()
		if !ok {
			return nil, false
		}
		left = exprNode(p, ast.BinaryExpr{Left: left, Right: right, Op: lexer.SymOr, TokPos: pos})
	}
	return left, true
}

func (p *Parser) parseBooleanTerm() (ast.Expr, bool) {
	left, ok := p.parseBooleanFactor()
	if !ok {
		return nil, false
	}
	for p.is(lexer.SymAnd) {
		pos := p.tok.Pos
		p.advance()
		right, ok := p.parseBooleanFactor()
		if !ok {
			return nil, false
		}
		left = exprNode(p, ast.BinaryExpr{Left: left, Right: right, Op: lexer.SymAnd, TokPos: pos})
	}
	return left, true
}

func (p *Parser) parseBooleanFactor() (ast.Expr, bool) {
	if p.is(lexer.SymNot) {
		pos := p.tok.Pos
		p.advance()
		inner, ok := p.parseBooleanFactor()
		if !ok {
			return nil, false
		}
		return exprNode(p, ast.UnaryExpr{Expr: inner, Op: lexer.SymNot, TokPos: pos}), true
	}
	return p.parseBooleanPrimary()
}

// parseBooleanPrimary handles EXISTS, a parenthesized search condition, or a
// predicate. A leading LPAREN is ambiguous between a grouped condition and a
// parenthesized value expression, so the grouped form is probed first and
// rewound if the parenthesis turns out to belong to an expression.
func (p *Parser) parseBooleanPrimary() (ast.Expr, bool) {
	if p.is(lexer.SymExists) {
		pos := p.tok.Pos
		p.advance()
		if !p.eat(lexer.SymLParen) {
			return nil, false
		}
		if !p.is(lexer.SymSelect) {
			return nil, p.expect(lexer.SymSelect)
		}
		q, ok := p.parseQueryExpression()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		return exprNode(p, ast.ExistsExpr{Query: q, TokPos: pos}), true
	}

	if p.is(lexer.SymLParen) && p.peekSym() != lexer.SymSelect {
		s := p.mark()
		p.probes++
		p.advance()
		cond, ok := p.parseSearchCondition()
		ok = ok && p.tryEat(lexer.SymRParen) && !continuesValueExpr(p.tok.Symbol)
		p.probes--
		if ok {
			return cond, true
		}
		p.restore(s)
	}

	return p.parsePredicate()
}

// continuesValueExpr reports whether sym can follow a parenthesized value
// expression, meaning the parenthesis did not close a grouped condition.
func continuesValueExpr(sym lexer.Symbol) bool {
	switch sym {
	case lexer.SymEqual, lexer.SymNotEqual, lexer.SymLT, lexer.SymGT,
		lexer.SymLTE, lexer.SymGTE, lexer.SymPlus, lexer.SymMinus,
		lexer.SymAsterisk, lexer.SymSolidus, lexer.SymConcat,
		lexer.SymBetween, lexer.SymIn, lexer.SymLike, lexer.SymIs, lexer.SymNot:
		return true
	}
	return false
}

// parsePredicate implements the SQL-92 predicate forms over a leading row
// value: comparison, BETWEEN, IN, LIKE, IS [NOT] NULL. A bare value
// expression is passed through for contexts like CHECK conditions.
func (p *Parser) parsePredicate() (ast.Expr, bool) {
	left, ok := p.parseValueExpr()
	if !ok {
		return nil, false
	}

	not := false
	if p.is(lexer.SymNot) {
		p.advance()
		not = true
	}

	switch p.tok.Symbol {
	case lexer.SymEqual, lexer.SymNotEqual, lexer.SymLT, lexer.SymGT,
		lexer.SymLTE, lexer.SymGTE:
		if not {
			return nil, p.expect(lexer.SymBetween, lexer.SymIn, lexer.SymLike)
		}
		op := p.tok.Symbol
		pos := p.tok.Pos
		p.advance()
		right, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		return exprNode(p, ast.BinaryExpr{Left: left, Right: right, Op: op, TokPos: pos}), true

	case lexer.SymBetween:
		pos := p.tok.Pos
		p.advance()
		lo, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymAnd) {
			return nil, false
		}
		hi, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		return exprNode(p, ast.BetweenExpr{Expr: left, Lo: lo, Hi: hi, Not: not, TokPos: pos}), true

	case lexer.SymIn:
		pos := p.tok.Pos
		p.advance()
		if !p.eat(lexer.SymLParen) {
			return nil, false
		}
		in := ast.InExpr{Expr: left, Not: not, TokPos: pos}
		if p.is(lexer.SymSelect) {
			q, ok := p.parseQueryExpression()
			if !ok {
				return nil, false
			}
			in.Query = q
		} else {
			list, ok := p.parseExprList()
			if !ok {
				return nil, false
			}
			in.List = list
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		return exprNode(p, in), true

	case lexer.SymLike:
		pos := p.tok.Pos
		p.advance()
		pattern, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		like := ast.LikeExpr{Expr: left, Pattern: pattern, Not: not, TokPos: pos}
		if p.tryEat(lexer.SymEscape) {
			esc, ok := p.parseValueExpr()
			if !ok {
				return nil, false
			}
			like.Escape = esc
		}
		return exprNode(p, like), true

	case lexer.SymIs:
		pos := p.tok.Pos
		p.advance()
		isNot := p.tryEat(lexer.SymNot)
		if !p.eat(lexer.SymNull) {
			return nil, false
		}
		return exprNode(p, ast.IsNullExpr{Expr: left, Not: isNot, TokPos: pos}), true
	}

	if not {
		return nil, p.expect(lexer.SymBetween, lexer.SymIn, lexer.SymLike)
	}
	return left, true
}

// ---- value expressions ----

// exprNode allocates an expression node unless construction is disabled,
// in which case it returns a nil interface rather than a typed nil.
func exprNode[T any](p *Parser, v T) ast.Expr {
	n := node(p, v)
	if n == nil {
		return nil
	}
	return any(n).(ast.Expr)
}

// parseValueExpr implements:
//
//	<value expression> ::= <term> { {+ | - | ||} <term> }
func (p *Parser) parseValueExpr() (ast.Expr, bool) {
	left, ok := p.parseValueTerm()
	if !ok {
		return nil, false
	}
	for {
		switch p.tok.Symbol {
		case lexer.SymPlus, lexer.SymMinus, lexer.SymConcat:
			op := p.tok.Symbol
			pos := p.tok.Pos
			p.advance()
			right, ok := p.parseValueTerm()
			if !ok {
				return nil, false
			}
			left = exprNode(p, ast.BinaryExpr{Left: left, Right: right, Op: op, TokPos: pos})
		default:
			return left, true
		}
	}
}

func (p *Parser) parseValueTerm() (ast.Expr, bool) {
	left, ok := p.parseValueFactor()
	if !ok {
		return nil, false
	}
	for {
		switch p.tok.Symbol {
		case lexer.SymAsterisk, lexer.SymSolidus:
			op := p.tok.Symbol
			pos := p.tok.Pos
			p.advance()
			right, ok := p.parseValueFactor()
			if !ok {
				return nil, false
			}
			left = exprNode(p, ast.BinaryExpr{Left: left, Right: right, Op: op, TokPos: pos})
		default:
			return left, true
		}
	}
}

func (p *Parser) parseValueFactor() (ast.Expr, bool) {
	switch p.tok.Symbol {
	case lexer.SymPlus, lexer.SymMinus:
		op := p.tok.Symbol
		pos := p.tok.Pos
		p.advance()
		inner, ok := p.parseValueFactor()
		if !ok {
			return nil, false
		}
		return exprNode(p, ast.UnaryExpr{Expr: inner, Op: op, TokPos: pos}), true
	}
	return p.parseValuePrimary()
}

var setFuncKinds = map[lexer.Symbol]ast.SetFuncKind{
	lexer.SymCount: ast.SetFuncCount,
	lexer.SymAvg:   ast.SetFuncAvg,
	lexer.SymMax:   ast.SetFuncMax,
	lexer.SymMin:   ast.SetFuncMin,
	lexer.SymSum:   ast.SetFuncSum,
}

func (p *Parser) parseValuePrimary() (ast.Expr, bool) {
	t := p.tok

	if t.Kind == lexer.KindLiteral {
		p.advance()
		return exprNode(p, ast.Literal{Raw: t.Raw, Sym: t.Symbol, TokPos: t.Pos}), true
	}

	if kind, ok := setFuncKinds[t.Symbol]; ok {
		return p.parseSetFunc(kind)
	}

	switch t.Symbol {
	case lexer.SymNull:
		p.advance()
		return exprNode(p, ast.NullValue{TokPos: t.Pos}), true

	case lexer.SymUser, lexer.SymCurrentUser, lexer.SymSessionUser,
		lexer.SymSystemUser, lexer.SymCurrentDate:
		p.advance()
		return exprNode(p, ast.ValueSpec{Sym: t.Symbol, TokPos: t.Pos}), true

	case lexer.SymCurrentTime, lexer.SymCurrentTimestamp:
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
		return exprNode(p, ast.ValueSpec{Sym: t.Symbol, Precision: prec, TokPos: t.Pos}), true

	case lexer.SymCast:
		return p.parseCast()

	case lexer.SymCase:
		return p.parseCaseExpr()

	case lexer.SymCoalesce, lexer.SymNullIf:
		p.advance()
		name := node(p, ast.Ident{Raw: t.Raw, Name: t.Symbol.String(), TokPos: t.Pos})
		if !p.eat(lexer.SymLParen) {
			return nil, false
		}
		args, ok := p.parseExprList()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		return exprNode(p, ast.FuncCall{Name: name, Args: args, TokPos: t.Pos}), true

	case lexer.SymLParen:
		if p.peekSym() == lexer.SymSelect {
			pos := t.Pos
			p.advance()
			q, ok := p.parseQueryExpression()
			if !ok {
				return nil, false
			}
			if !p.eat(lexer.SymRParen) {
				return nil, false
			}
			return exprNode(p, ast.SubqueryExpr{Query: q, TokPos: pos}), true
		}
		p.advance()
		inner, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymRParen) {
			return nil, false
		}
		return inner, true
	}

	if t.Kind == lexer.KindIdentifier {
		name, ok := p.parseQualifiedName()
		if !ok {
			return nil, false
		}
		if p.is(lexer.SymLParen) {
			p.advance()
			var args []ast.Expr
			if !p.is(lexer.SymRParen) {
				args, ok = p.parseExprList()
				if !ok {
					return nil, false
				}
			}
			if !p.eat(lexer.SymRParen) {
				return nil, false
			}
			var fn *ast.Ident
			if name != nil && len(name.Parts) > 0 {
				fn = name.Parts[len(name.Parts)-1]
			}
			return exprNode(p, ast.FuncCall{Name: fn, Args: args, TokPos: t.Pos}), true
		}
		if name == nil {
			return nil, true
		}
		if len(name.Parts) == 1 {
			return name.Parts[0], true
		}
		return name, true
	}

	return nil, p.expect(
		lexer.SymIdentifier, lexer.SymLitUnsignedInteger, lexer.SymLitCharString,
		lexer.SymNull, lexer.SymLParen, lexer.SymCase, lexer.SymCast)
}

// parseSetFunc implements:
//
//	COUNT ( * ) | {COUNT | AVG | MAX | MIN | SUM} ( [DISTINCT] <value expression> )
func (p *Parser) parseSetFunc(kind ast.SetFuncKind) (ast.Expr, bool) {
	pos := p.tok.Pos
	p.advance()
	if !p.eat(lexer.SymLParen) {
		return nil, false
	}
	sf := ast.SetFunc{Kind: kind, TokPos: pos}
	if kind == ast.SetFuncCount && p.is(lexer.SymAsterisk) {
		p.advance()
		sf.Star = true
	} else {
		sf.Distinct = p.tryEat(lexer.SymDistinct)
		arg, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		sf.Arg = arg
	}
	if !p.eat(lexer.SymRParen) {
		return nil, false
	}
	return exprNode(p, sf), true
}

func (p *Parser) parseCast() (ast.Expr, bool) {
	pos := p.tok.Pos
	p.advance() // CAST
	if !p.eat(lexer.SymLParen) {
		return nil, false
	}
	expr, ok := p.parseValueExpr()
	if !ok {
		return nil, false
	}
	if !p.eat(lexer.SymAs) {
		return nil, false
	}
	dt, ok := p.parseDataType()
	if !ok {
		return nil, false
	}
	if !p.eat(lexer.SymRParen) {
		return nil, false
	}
	return exprNode(p, ast.CastExpr{Expr: expr, Type: dt, TokPos: pos}), true
}

func (p *Parser) parseCaseExpr() (ast.Expr, bool) {
	pos := p.tok.Pos
	p.advance() // CASE
	c := ast.CaseExpr{TokPos: pos}
	if !p.is(lexer.SymWhen) {
		operand, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		c.Operand = operand
	}
	if !p.is(lexer.SymWhen) {
		return nil, p.expect(lexer.SymWhen)
	}
	for p.tryEat(lexer.SymWhen) {
		cond, ok := p.parseSearchCondition()
		if !ok {
			return nil, false
		}
		if !p.eat(lexer.SymThen) {
			return nil, false
		}
		res, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		c.Whens = append(c.Whens, ast.WhenClause{Cond: cond, Result: res})
	}
	if p.tryEat(lexer.SymElse) {
		el, ok := p.parseValueExpr()
		if !ok {
			return nil, false
		}
		c.Else = el
	}
	if !p.eat(lexer.SymEnd) {
		return nil, false
	}
	return exprNode(p, c), true
}
