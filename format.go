package sql92

import (
	"strconv"
	"strings"

	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
)

// Format renders a statement back to SQL text. The output is deterministic
// and re-parses to an equal AST (modulo lexeme byte ranges); it is what the
// CLI prints for each parsed statement.
func Format(stmt ast.Statement) string {
	var b strings.Builder
	writeStatement(&b, stmt)
	return b.String()
}

// FormatAll renders statements separated by "; ".
func FormatAll(stmts []ast.Statement) string {
	var b strings.Builder
	for i, s := range stmts {
		if i > 0 {
			b.WriteString("; ")
		}
		writeStatement(&b, s)
	}
	return b.String()
}

func writeStatement(b *strings.Builder, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CreateSchemaStmt:
		b.WriteString("CREATE SCHEMA")
		if s.Name != nil {
			b.WriteByte(' ')
			writeIdent(b, s.Name)
		}
		if s.Authorization != nil {
			b.WriteString(" AUTHORIZATION ")
			writeIdent(b, s.Authorization)
		}
		if s.DefaultCharset != nil {
			b.WriteString(" DEFAULT CHARACTER SET ")
			writeIdent(b, s.DefaultCharset)
		}
	case *ast.CreateTableStmt:
		writeCreateTable(b, s)
	case *ast.CreateViewStmt:
		b.WriteString("CREATE VIEW ")
		writeQualified(b, s.Name)
		if len(s.Columns) > 0 {
			b.WriteString(" (")
			writeIdentList(b, s.Columns)
			b.WriteByte(')')
		}
		b.WriteString(" AS ")
		writeSelect(b, s.Query)
		if s.CheckOption {
			b.WriteString(" WITH CHECK OPTION")
		}
	case *ast.DropSchemaStmt:
		b.WriteString("DROP SCHEMA ")
		writeIdent(b, s.Name)
		writeDropBehavior(b, s.Behavior)
	case *ast.DropTableStmt:
		b.WriteString("DROP TABLE ")
		writeQualified(b, s.Name)
		writeDropBehavior(b, s.Behavior)
	case *ast.DropViewStmt:
		b.WriteString("DROP VIEW ")
		writeQualified(b, s.Name)
		writeDropBehavior(b, s.Behavior)
	case *ast.InsertStmt:
		b.WriteString("INSERT INTO ")
		writeQualified(b, s.Table)
		if len(s.Columns) > 0 {
			b.WriteString(" (")
			writeIdentList(b, s.Columns)
			b.WriteByte(')')
		}
		if s.DefaultValues {
			b.WriteString(" DEFAULT VALUES")
			return
		}
		b.WriteString(" VALUES ")
		for i, row := range s.Rows {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('(')
			writeExprList(b, row)
			b.WriteByte(')')
		}
	case *ast.InsertSelectStmt:
		b.WriteString("INSERT INTO ")
		writeQualified(b, s.Table)
		if len(s.Columns) > 0 {
			b.WriteString(" (")
			writeIdentList(b, s.Columns)
			b.WriteByte(')')
		}
		b.WriteByte(' ')
		writeSelect(b, s.Query)
	case *ast.UpdateStmt:
		b.WriteString("UPDATE ")
		writeQualified(b, s.Table)
		b.WriteString(" SET ")
		for i, a := range s.Set {
			if i > 0 {
				b.WriteString(", ")
			}
			writeIdent(b, a.Column)
			b.WriteString(" = ")
			writeExpr(b, a.Value)
		}
		if s.Where != nil {
			b.WriteString(" WHERE ")
			writeExpr(b, s.Where)
		}
	case *ast.DeleteStmt:
		b.WriteString("DELETE FROM ")
		writeQualified(b, s.Table)
		if s.Where != nil {
			b.WriteString(" WHERE ")
			writeExpr(b, s.Where)
		}
	case *ast.SelectStmt:
		writeSelect(b, s)
	}
}

func writeDropBehavior(b *strings.Builder, behavior ast.DropBehavior) {
	switch behavior {
	case ast.DropCascade:
		b.WriteString(" CASCADE")
	case ast.DropRestrict:
		b.WriteString(" RESTRICT")
	}
}

func writeCreateTable(b *strings.Builder, s *ast.CreateTableStmt) {
	b.WriteString("CREATE ")
	switch s.Type {
	case ast.TableTypeTemporaryGlobal:
		b.WriteString("GLOBAL TEMPORARY ")
	case ast.TableTypeTemporaryLocal:
		b.WriteString("LOCAL TEMPORARY ")
	}
	b.WriteString("TABLE ")
	writeQualified(b, s.Name)
	b.WriteString(" (")
	first := true
	for _, col := range s.Columns {
		if !first {
			b.WriteString(", ")
		}
		first = false
		writeColumnDef(b, col)
	}
	for _, c := range s.Constraints {
		if !first {
			b.WriteString(", ")
		}
		first = false
		writeTableConstraint(b, c)
	}
	b.WriteByte(')')
	switch s.OnCommit {
	case ast.CommitActionDelete:
		b.WriteString(" ON COMMIT DELETE ROWS")
	case ast.CommitActionPreserve:
		b.WriteString(" ON COMMIT PRESERVE ROWS")
	}
}

func writeColumnDef(b *strings.Builder, col *ast.ColumnDef) {
	writeIdent(b, col.Name)
	b.WriteByte(' ')
	writeDataType(b, col.Type)
	if col.Default != nil {
		b.WriteString(" DEFAULT ")
		writeExpr(b, col.Default.Value)
	}
	for _, c := range col.Constraints {
		b.WriteByte(' ')
		if c.Name != nil {
			b.WriteString("CONSTRAINT ")
			writeIdent(b, c.Name)
			b.WriteByte(' ')
		}
		switch c.Kind {
		case ast.NotNullConstraint:
			b.WriteString("NOT NULL")
		case ast.UniqueConstraint:
			b.WriteString("UNIQUE")
		case ast.PrimaryKeyConstraint:
			b.WriteString("PRIMARY KEY")
		case ast.ReferencesConstraint:
			writeReferences(b, c.Refs)
		case ast.CheckConstraint:
			b.WriteString("CHECK (")
			writeExpr(b, c.Check)
			b.WriteByte(')')
		}
	}
	if col.Collate != nil {
		b.WriteString(" COLLATE ")
		writeIdent(b, col.Collate)
	}
}

func writeTableConstraint(b *strings.Builder, c *ast.TableConstraint) {
	if c.Name != nil {
		b.WriteString("CONSTRAINT ")
		writeIdent(b, c.Name)
		b.WriteByte(' ')
	}
	switch c.Kind {
	case ast.UniqueConstraint:
		b.WriteString("UNIQUE (")
		writeIdentList(b, c.Columns)
		b.WriteByte(')')
	case ast.PrimaryKeyConstraint:
		b.WriteString("PRIMARY KEY (")
		writeIdentList(b, c.Columns)
		b.WriteByte(')')
	case ast.ForeignKeyConstraint:
		b.WriteString("FOREIGN KEY (")
		writeIdentList(b, c.Columns)
		b.WriteString(") ")
		writeReferences(b, c.Refs)
	case ast.CheckConstraint:
		b.WriteString("CHECK (")
		writeExpr(b, c.Check)
		b.WriteByte(')')
	}
}

func writeReferences(b *strings.Builder, r *ast.References) {
	b.WriteString("REFERENCES ")
	writeQualified(b, r.Table)
	if len(r.Columns) > 0 {
		b.WriteString(" (")
		writeIdentList(b, r.Columns)
		b.WriteByte(')')
	}
	switch r.Match {
	case ast.MatchFull:
		b.WriteString(" MATCH FULL")
	case ast.MatchPartial:
		b.WriteString(" MATCH PARTIAL")
	}
}

func writeDataType(b *strings.Builder, dt *ast.DataType) {
	if dt == nil {
		return
	}
	switch dt.Kind {
	case ast.TypeChar, ast.TypeVarChar, ast.TypeNChar, ast.TypeNVarChar:
		b.WriteString(dt.Kind.String())
		if dt.Length > 0 {
			writeParenInt(b, dt.Length)
		}
		if dt.Charset != nil {
			b.WriteString(" CHARACTER SET ")
			writeIdent(b, dt.Charset)
		}
	case ast.TypeBit, ast.TypeVarBit:
		b.WriteString(dt.Kind.String())
		if dt.Length > 0 {
			writeParenInt(b, dt.Length)
		}
	case ast.TypeNumeric:
		b.WriteString("NUMERIC")
		if dt.Precision > 0 {
			b.WriteByte('(')
			b.WriteString(strconv.Itoa(dt.Precision))
			if dt.Scale > 0 {
				b.WriteByte(',')
				b.WriteString(strconv.Itoa(dt.Scale))
			}
			b.WriteByte(')')
		}
	case ast.TypeFloat:
		b.WriteString("FLOAT")
		if dt.Precision > 0 {
			writeParenInt(b, dt.Precision)
		}
	case ast.TypeTime, ast.TypeTimestamp:
		b.WriteString(dt.Kind.String())
		if dt.Precision > 0 {
			writeParenInt(b, dt.Precision)
		}
		if dt.WithTimeZone {
			b.WriteString(" WITH TIME ZONE")
		}
	case ast.TypeInterval:
		b.WriteString("INTERVAL ")
		b.WriteString(dt.IntervalUnit.String())
		if dt.Precision > 0 {
			writeParenInt(b, dt.Precision)
		}
	default:
		b.WriteString(dt.Kind.String())
	}
}

func writeParenInt(b *strings.Builder, n int) {
	b.WriteByte('(')
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(')')
}

func writeSelect(b *strings.Builder, s *ast.SelectStmt) {
	if s == nil {
		return
	}
	b.WriteString("SELECT ")
	if s.Distinct {
		b.WriteString("DISTINCT ")
	}
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		if c.Star {
			b.WriteByte('*')
			continue
		}
		writeExpr(b, c.Expr)
		if c.Alias != nil {
			b.WriteString(" AS ")
			writeIdent(b, c.Alias)
		}
	}
	if len(s.From) > 0 {
		b.WriteString(" FROM ")
		for i, tr := range s.From {
			if i > 0 {
				b.WriteString(", ")
			}
			writeTableRef(b, tr)
		}
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		writeExpr(b, s.Where)
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		writeExprList(b, s.GroupBy)
	}
	if s.Having != nil {
		b.WriteString(" HAVING ")
		writeExpr(b, s.Having)
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, item := range s.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, item.Expr)
			if item.Desc {
				b.WriteString(" DESC")
			}
		}
	}
	for op := s.SetOp; op != nil; op = op.Right.SetOp {
		b.WriteByte(' ')
		b.WriteString(op.Op.String())
		if op.All {
			b.WriteString(" ALL")
		}
		b.WriteByte(' ')
		right := *op.Right
		right.SetOp = nil
		writeSelect(b, &right)
		if op.Right.SetOp == nil {
			break
		}
	}
}

func writeTableRef(b *strings.Builder, tr ast.TableRef) {
	switch t := tr.(type) {
	case *ast.SimpleTable:
		writeQualified(b, t.Name)
		if t.Alias != nil {
			b.WriteByte(' ')
			writeIdent(b, t.Alias)
		}
	case *ast.DerivedTable:
		b.WriteByte('(')
		writeSelect(b, t.Query)
		b.WriteByte(')')
		if t.Alias != nil {
			b.WriteByte(' ')
			writeIdent(b, t.Alias)
		}
	case *ast.JoinTable:
		writeTableRef(b, t.Left)
		b.WriteByte(' ')
		b.WriteString(t.Kind.String())
		b.WriteByte(' ')
		writeTableRef(b, t.Right)
		if t.On != nil {
			b.WriteString(" ON ")
			writeExpr(b, t.On)
		} else if len(t.Using) > 0 {
			b.WriteString(" USING (")
			writeIdentList(b, t.Using)
			b.WriteByte(')')
		}
	}
}

// opText maps operator symbols to their SQL spelling.
func opText(sym lexer.Symbol) string {
	switch sym {
	case lexer.SymEqual:
		return "="
	case lexer.SymNotEqual:
		return "<>"
	case lexer.SymLT:
		return "<"
	case lexer.SymGT:
		return ">"
	case lexer.SymLTE:
		return "<="
	case lexer.SymGTE:
		return ">="
	case lexer.SymPlus:
		return "+"
	case lexer.SymMinus:
		return "-"
	case lexer.SymAsterisk:
		return "*"
	case lexer.SymSolidus:
		return "/"
	case lexer.SymConcat:
		return "||"
	case lexer.SymAnd:
		return "AND"
	case lexer.SymOr:
		return "OR"
	case lexer.SymNot:
		return "NOT"
	default:
		return sym.String()
	}
}

func writeExpr(b *strings.Builder, e ast.Expr) {
	switch x := e.(type) {
	case *ast.Ident:
		writeIdent(b, x)
	case *ast.QualifiedName:
		writeQualified(b, x)
	case *ast.Literal:
		b.Write(x.Raw)
	case *ast.NullValue:
		b.WriteString("NULL")
	case *ast.DefaultValue:
		b.WriteString("DEFAULT")
	case *ast.StarExpr:
		b.WriteByte('*')
	case *ast.ValueSpec:
		b.WriteString(x.Sym.String())
		if x.Precision > 0 {
			writeParenInt(b, x.Precision)
		}
	case *ast.BinaryExpr:
		// Nested binary operands are parenthesized so grouping survives a re-parse.
		for i, operand := range [2]ast.Expr{x.Left, x.Right} {
			if i == 1 {
				b.WriteString(" " + opText(x.Op) + " ")
			}
			_, nested := operand.(*ast.BinaryExpr)
			if nested {
				b.WriteByte('(')
			}
			writeExpr(b, operand)
			if nested {
				b.WriteByte(')')
			}
		}
	case *ast.UnaryExpr:
		b.WriteString(opText(x.Op))
		if x.Op == lexer.SymNot {
			b.WriteByte(' ')
		}
		if _, ok := x.Expr.(*ast.BinaryExpr); ok {
			b.WriteByte('(')
			writeExpr(b, x.Expr)
			b.WriteByte(')')
		} else {
			writeExpr(b, x.Expr)
		}
	case *ast.SetFunc:
		b.WriteString(x.Kind.String())
		b.WriteByte('(')
		if x.Star {
			b.WriteByte('*')
		} else {
			if x.Distinct {
				b.WriteString("DISTINCT ")
			}
			writeExpr(b, x.Arg)
		}
		b.WriteByte(')')
	case *ast.FuncCall:
		writeIdent(b, x.Name)
		b.WriteByte('(')
		writeExprList(b, x.Args)
		b.WriteByte(')')
	case *ast.CaseExpr:
		b.WriteString("CASE")
		if x.Operand != nil {
			b.WriteByte(' ')
			writeExpr(b, x.Operand)
		}
		for _, w := range x.Whens {
			b.WriteString(" WHEN ")
			writeExpr(b, w.Cond)
			b.WriteString(" THEN ")
			writeExpr(b, w.Result)
		}
		if x.Else != nil {
			b.WriteString(" ELSE ")
			writeExpr(b, x.Else)
		}
		b.WriteString(" END")
	case *ast.CastExpr:
		b.WriteString("CAST(")
		writeExpr(b, x.Expr)
		b.WriteString(" AS ")
		writeDataType(b, x.Type)
		b.WriteByte(')')
	case *ast.SubqueryExpr:
		b.WriteByte('(')
		writeSelect(b, x.Query)
		b.WriteByte(')')
	case *ast.ExistsExpr:
		b.WriteString("EXISTS (")
		writeSelect(b, x.Query)
		b.WriteByte(')')
	case *ast.BetweenExpr:
		writeExpr(b, x.Expr)
		if x.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" BETWEEN ")
		writeExpr(b, x.Lo)
		b.WriteString(" AND ")
		writeExpr(b, x.Hi)
	case *ast.InExpr:
		writeExpr(b, x.Expr)
		if x.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" IN (")
		if x.Query != nil {
			writeSelect(b, x.Query)
		} else {
			writeExprList(b, x.List)
		}
		b.WriteByte(')')
	case *ast.LikeExpr:
		writeExpr(b, x.Expr)
		if x.Not {
			b.WriteString(" NOT")
		}
		b.WriteString(" LIKE ")
		writeExpr(b, x.Pattern)
		if x.Escape != nil {
			b.WriteString(" ESCAPE ")
			writeExpr(b, x.Escape)
		}
	case *ast.IsNullExpr:
		writeExpr(b, x.Expr)
		b.WriteString(" IS ")
		if x.Not {
			b.WriteString("NOT ")
		}
		b.WriteString("NULL")
	}
}

func writeExprList(b *strings.Builder, exprs []ast.Expr) {
	for i, e := range exprs {
		if i > 0 {
			b.WriteString(", ")
		}
		writeExpr(b, e)
	}
}

func writeIdent(b *strings.Builder, id *ast.Ident) {
	if id == nil {
		return
	}
	if len(id.Raw) > 0 {
		b.Write(id.Raw)
		return
	}
	b.WriteString(id.Name)
}

func writeQualified(b *strings.Builder, q *ast.QualifiedName) {
	if q == nil {
		return
	}
	for i, part := range q.Parts {
		if i > 0 {
			b.WriteByte('.')
		}
		writeIdent(b, part)
	}
}

func writeIdentList(b *strings.Builder, ids []*ast.Ident) {
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		writeIdent(b, id)
	}
}
