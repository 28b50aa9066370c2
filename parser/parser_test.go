package parser_test

import (
	"testing"

	sql92 "github.com/oarkflow/sql92"
	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
	"github.com/oarkflow/sql92/parser"
)

// ---- helpers ----

func mustParse(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmt, err := sql92.ParseStatement(sql)
	if err != nil {
		t.Fatalf("parse error: %v\nSQL: %s", err, sql)
	}
	return stmt
}

func mustParseAll(t *testing.T, sql string) []ast.Statement {
	t.Helper()
	stmts, err := sql92.ParseStatements(sql)
	if err != nil {
		t.Fatalf("parse error: %v\nSQL: %s", err, sql)
	}
	return stmts
}

func mustFail(t *testing.T, sql string) *parser.Diagnostic {
	t.Helper()
	res := parser.ParseString(sql, parser.Options{})
	if res.Code == parser.OK {
		t.Fatalf("expected parse failure\nSQL: %s", sql)
	}
	if res.Diag == nil {
		t.Fatalf("failure without diagnostic\nSQL: %s", sql)
	}
	return res.Diag
}

func expectedContains(d *parser.Diagnostic, sym lexer.Symbol) bool {
	for _, s := range d.Expected {
		if s == sym {
			return true
		}
	}
	return false
}

// ---- CREATE SCHEMA ----

func TestCreateSchemaSimple(t *testing.T) {
	stmt := mustParse(t, "CREATE SCHEMA s1;")
	cs, ok := stmt.(*ast.CreateSchemaStmt)
	if !ok {
		t.Fatalf("expected *CreateSchemaStmt, got %T", stmt)
	}
	if cs.Name == nil || cs.Name.Name != "s1" {
		t.Fatalf("schema name = %v", cs.Name)
	}
	if cs.Authorization != nil || cs.DefaultCharset != nil {
		t.Fatal("unexpected authorization or charset")
	}
}

func TestCreateSchemaAuthorizationOnly(t *testing.T) {
	stmt := mustParse(t, "CREATE SCHEMA AUTHORIZATION alice")
	cs := stmt.(*ast.CreateSchemaStmt)
	if cs.Name != nil {
		t.Fatalf("schema name = %v, want nil", cs.Name)
	}
	if cs.Authorization == nil || cs.Authorization.Name != "alice" {
		t.Fatalf("authorization = %v", cs.Authorization)
	}
}

func TestCreateSchemaFull(t *testing.T) {
	stmt := mustParse(t, "CREATE SCHEMA s AUTHORIZATION u DEFAULT CHARACTER SET utf8")
	cs := stmt.(*ast.CreateSchemaStmt)
	if cs.Name.Name != "s" || cs.Authorization.Name != "u" || cs.DefaultCharset.Name != "utf8" {
		t.Fatalf("got name=%q authz=%q charset=%q", cs.Name.Name, cs.Authorization.Name, cs.DefaultCharset.Name)
	}
}

func TestCreateSchemaDelimitedIdentifier(t *testing.T) {
	stmt := mustParse(t, `CREATE SCHEMA "has space"`)
	cs := stmt.(*ast.CreateSchemaStmt)
	if cs.Name.Name != "has space" {
		t.Fatalf("schema name = %q, want %q", cs.Name.Name, "has space")
	}
}

// ---- CREATE TABLE ----

func TestCreateTableColumns(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (id INT, name VARCHAR(64), ts TIMESTAMP(3) WITH TIME ZONE)")
	ct, ok := stmt.(*ast.CreateTableStmt)
	if !ok {
		t.Fatalf("expected *CreateTableStmt, got %T", stmt)
	}
	if ct.Type != ast.TableTypeNormal {
		t.Fatalf("table type = %s", ct.Type)
	}
	if ct.Name.Name() != "t" {
		t.Fatalf("table name = %q", ct.Name.Name())
	}
	if len(ct.Columns) != 3 {
		t.Fatalf("column count = %d", len(ct.Columns))
	}
	if k := ct.Columns[0].Type.Kind; k != ast.TypeInt {
		t.Fatalf("col 0 kind = %s", k)
	}
	if c := ct.Columns[1]; c.Type.Kind != ast.TypeVarChar || c.Type.Length != 64 {
		t.Fatalf("col 1 = %s(%d)", c.Type.Kind, c.Type.Length)
	}
	if c := ct.Columns[2]; c.Type.Kind != ast.TypeTimestamp || c.Type.Precision != 3 || !c.Type.WithTimeZone {
		t.Fatalf("col 2 = %s(%d) tz=%v", c.Type.Kind, c.Type.Precision, c.Type.WithTimeZone)
	}
}

func TestCreateTableGlobalTemporary(t *testing.T) {
	stmt := mustParse(t, "CREATE GLOBAL TEMPORARY TABLE t (x NUMERIC(10,2))")
	ct := stmt.(*ast.CreateTableStmt)
	if ct.Type != ast.TableTypeTemporaryGlobal {
		t.Fatalf("table type = %s", ct.Type)
	}
	c := ct.Columns[0]
	if c.Type.Kind != ast.TypeNumeric || c.Type.Precision != 10 || c.Type.Scale != 2 {
		t.Fatalf("column type = %s(%d,%d)", c.Type.Kind, c.Type.Precision, c.Type.Scale)
	}
}

func TestCreateTableLocalTemporary(t *testing.T) {
	stmt := mustParse(t, "CREATE LOCAL TEMPORARY TABLE t (x INT) ON COMMIT PRESERVE ROWS")
	ct := stmt.(*ast.CreateTableStmt)
	if ct.Type != ast.TableTypeTemporaryLocal {
		t.Fatalf("table type = %s", ct.Type)
	}
	if ct.OnCommit != ast.CommitActionPreserve {
		t.Fatalf("on commit = %d", ct.OnCommit)
	}
}

func TestCreateTableBareTemporary(t *testing.T) {
	stmt := mustParse(t, "CREATE TEMPORARY TABLE t (x INT) ON COMMIT DELETE ROWS")
	ct := stmt.(*ast.CreateTableStmt)
	if ct.Type != ast.TableTypeTemporaryGlobal {
		t.Fatalf("bare TEMPORARY should default to global, got %s", ct.Type)
	}
	if ct.OnCommit != ast.CommitActionDelete {
		t.Fatalf("on commit = %d", ct.OnCommit)
	}
}

func TestCreateTableConstraints(t *testing.T) {
	stmt := mustParse(t, `
		CREATE TABLE orders (
			id      INT NOT NULL PRIMARY KEY,
			user_id INT REFERENCES users (id) MATCH FULL,
			total   NUMERIC(12,2) DEFAULT 0 CHECK (total >= 0),
			CONSTRAINT uq_user UNIQUE (user_id),
			FOREIGN KEY (user_id) REFERENCES users (id)
		)`)
	ct := stmt.(*ast.CreateTableStmt)
	if len(ct.Columns) != 3 || len(ct.Constraints) != 2 {
		t.Fatalf("got %d columns, %d constraints", len(ct.Columns), len(ct.Constraints))
	}
	id := ct.Columns[0]
	if len(id.Constraints) != 2 ||
		id.Constraints[0].Kind != ast.NotNullConstraint ||
		id.Constraints[1].Kind != ast.PrimaryKeyConstraint {
		t.Fatalf("id constraints = %v", id.Constraints)
	}
	uid := ct.Columns[1]
	if uid.Constraints[0].Kind != ast.ReferencesConstraint ||
		uid.Constraints[0].Refs.Match != ast.MatchFull {
		t.Fatalf("user_id constraint = %v", uid.Constraints[0])
	}
	total := ct.Columns[2]
	if total.Default == nil {
		t.Fatal("total has no default")
	}
	if total.Constraints[0].Kind != ast.CheckConstraint {
		t.Fatalf("total constraint = %v", total.Constraints[0])
	}
	if ct.Constraints[0].Kind != ast.UniqueConstraint || ct.Constraints[0].Name.Name != "uq_user" {
		t.Fatalf("table constraint 0 = %v", ct.Constraints[0])
	}
	if ct.Constraints[1].Kind != ast.ForeignKeyConstraint {
		t.Fatalf("table constraint 1 = %v", ct.Constraints[1])
	}
}

func TestCreateTableDefaults(t *testing.T) {
	stmt := mustParse(t, `
		CREATE TABLE t (
			a INT DEFAULT -1,
			b VARCHAR(10) DEFAULT 'none',
			c TIMESTAMP DEFAULT CURRENT_TIMESTAMP(3),
			d CHAR(8) DEFAULT USER,
			e INT DEFAULT NULL
		)`)
	ct := stmt.(*ast.CreateTableStmt)
	if _, ok := ct.Columns[0].Default.Value.(*ast.Literal); !ok {
		t.Fatalf("a default = %T", ct.Columns[0].Default.Value)
	}
	vs, ok := ct.Columns[2].Default.Value.(*ast.ValueSpec)
	if !ok || vs.Sym != lexer.SymCurrentTimestamp || vs.Precision != 3 {
		t.Fatalf("c default = %#v", ct.Columns[2].Default.Value)
	}
	if _, ok := ct.Columns[4].Default.Value.(*ast.NullValue); !ok {
		t.Fatalf("e default = %T", ct.Columns[4].Default.Value)
	}
}

// ---- data types ----

func TestDataTypes(t *testing.T) {
	cases := []struct {
		sql  string
		kind ast.DataTypeKind
		len  int
		prec int
	}{
		{"CHAR", ast.TypeChar, 0, 0},
		{"CHAR(10)", ast.TypeChar, 10, 0},
		{"CHARACTER(5)", ast.TypeChar, 5, 0},
		{"CHARACTER VARYING(20)", ast.TypeVarChar, 20, 0},
		{"VARCHAR(64)", ast.TypeVarChar, 64, 0},
		{"NCHAR(4)", ast.TypeNChar, 4, 0},
		{"NCHAR VARYING(4)", ast.TypeNVarChar, 4, 0},
		{"NATIONAL CHARACTER(4)", ast.TypeNChar, 4, 0},
		{"NATIONAL CHARACTER VARYING(10)", ast.TypeNVarChar, 10, 0},
		{"NATIONAL CHAR VARYING(6)", ast.TypeNVarChar, 6, 0},
		{"BIT(8)", ast.TypeBit, 8, 0},
		{"BIT VARYING(16)", ast.TypeVarBit, 16, 0},
		{"INT", ast.TypeInt, 0, 0},
		{"INTEGER", ast.TypeInt, 0, 0},
		{"SMALLINT", ast.TypeSmallInt, 0, 0},
		{"NUMERIC(10,2)", ast.TypeNumeric, 0, 10},
		{"DEC(6)", ast.TypeNumeric, 0, 6},
		{"DECIMAL", ast.TypeNumeric, 0, 0},
		{"FLOAT(53)", ast.TypeFloat, 0, 53},
		{"REAL", ast.TypeFloat, 0, 24},
		{"DOUBLE PRECISION", ast.TypeDouble, 0, 0},
		{"DATE", ast.TypeDate, 0, 0},
		{"TIME(6)", ast.TypeTime, 0, 6},
		{"TIMESTAMP", ast.TypeTimestamp, 0, 0},
		{"INTERVAL YEAR", ast.TypeInterval, 0, 0},
		{"INTERVAL SECOND(3)", ast.TypeInterval, 0, 3},
	}
	for _, c := range cases {
		stmt := mustParse(t, "CREATE TABLE t (x "+c.sql+")")
		dt := stmt.(*ast.CreateTableStmt).Columns[0].Type
		if dt.Kind != c.kind {
			t.Fatalf("%q: kind = %s, want %s", c.sql, dt.Kind, c.kind)
		}
		if dt.Length != c.len {
			t.Fatalf("%q: length = %d, want %d", c.sql, dt.Length, c.len)
		}
		if dt.Precision != c.prec {
			t.Fatalf("%q: precision = %d, want %d", c.sql, dt.Precision, c.prec)
		}
	}
}

func TestCharsetSuffix(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (x VARCHAR(10) CHARACTER SET utf8)")
	dt := stmt.(*ast.CreateTableStmt).Columns[0].Type
	if dt.Charset == nil || dt.Charset.Name != "utf8" {
		t.Fatalf("charset = %v", dt.Charset)
	}
}

func TestIntervalUnits(t *testing.T) {
	units := map[string]ast.IntervalUnit{
		"YEAR": ast.UnitYear, "MONTH": ast.UnitMonth, "DAY": ast.UnitDay,
		"HOUR": ast.UnitHour, "MINUTE": ast.UnitMinute, "SECOND": ast.UnitSecond,
	}
	for kw, want := range units {
		stmt := mustParse(t, "CREATE TABLE t (x INTERVAL "+kw+")")
		dt := stmt.(*ast.CreateTableStmt).Columns[0].Type
		if dt.IntervalUnit != want {
			t.Fatalf("INTERVAL %s: unit = %s", kw, dt.IntervalUnit)
		}
	}
}

// ---- INSERT ----

func TestInsertValues(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO t (a,b) VALUES (1, 'x')")
	ins, ok := stmt.(*ast.InsertStmt)
	if !ok {
		t.Fatalf("expected *InsertStmt, got %T", stmt)
	}
	if len(ins.Columns) != 2 || ins.Columns[0].Name != "a" || ins.Columns[1].Name != "b" {
		t.Fatalf("columns = %v", ins.Columns)
	}
	if len(ins.Rows) != 1 || len(ins.Rows[0]) != 2 {
		t.Fatalf("rows = %v", ins.Rows)
	}
}

func TestInsertMultiRow(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO t VALUES (1, 'a'), (2, 'b'), (3, NULL)")
	ins := stmt.(*ast.InsertStmt)
	if len(ins.Rows) != 3 {
		t.Fatalf("row count = %d", len(ins.Rows))
	}
	if _, ok := ins.Rows[2][1].(*ast.NullValue); !ok {
		t.Fatalf("row 2 item 1 = %T", ins.Rows[2][1])
	}
}

func TestInsertDefaultValues(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO t DEFAULT VALUES")
	ins := stmt.(*ast.InsertStmt)
	if !ins.DefaultValues {
		t.Fatal("DefaultValues flag not set")
	}
	if len(ins.Columns) != 0 || len(ins.Rows) != 0 {
		t.Fatalf("columns=%v rows=%v", ins.Columns, ins.Rows)
	}
}

func TestInsertRowValueDefault(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO t (a, b) VALUES (DEFAULT, 2)")
	ins := stmt.(*ast.InsertStmt)
	if _, ok := ins.Rows[0][0].(*ast.DefaultValue); !ok {
		t.Fatalf("row item 0 = %T", ins.Rows[0][0])
	}
}

func TestInsertSelect(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO archive (id, name) SELECT id, name FROM users WHERE active = 1")
	ins, ok := stmt.(*ast.InsertSelectStmt)
	if !ok {
		t.Fatalf("expected *InsertSelectStmt, got %T", stmt)
	}
	if ins.Query == nil || len(ins.Query.Columns) != 2 {
		t.Fatalf("query = %v", ins.Query)
	}
}

func TestInsertSelectNoColumnList(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO archive SELECT * FROM users")
	if _, ok := stmt.(*ast.InsertSelectStmt); !ok {
		t.Fatalf("expected *InsertSelectStmt, got %T", stmt)
	}
}

// ---- SELECT ----

func TestSelectSimple(t *testing.T) {
	stmt := mustParse(t, "SELECT 1")
	sel := stmt.(*ast.SelectStmt)
	if len(sel.Columns) != 1 {
		t.Fatalf("columns = %d", len(sel.Columns))
	}
}

func TestSelectStarFrom(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM users")
	sel := stmt.(*ast.SelectStmt)
	if !sel.Columns[0].Star {
		t.Fatal("star column not flagged")
	}
	if len(sel.From) != 1 {
		t.Fatalf("from = %v", sel.From)
	}
}

func TestSelectWhereOrderBy(t *testing.T) {
	stmt := mustParse(t, `
		SELECT u.id, u.name AS n
		FROM users u
		WHERE u.active = 1 AND u.age BETWEEN 18 AND 65
		ORDER BY u.name DESC, u.id`)
	sel := stmt.(*ast.SelectStmt)
	if sel.Columns[1].Alias == nil || sel.Columns[1].Alias.Name != "n" {
		t.Fatalf("alias = %v", sel.Columns[1].Alias)
	}
	if len(sel.OrderBy) != 2 || !sel.OrderBy[0].Desc || sel.OrderBy[1].Desc {
		t.Fatalf("order by = %v", sel.OrderBy)
	}
	and, ok := sel.Where.(*ast.BinaryExpr)
	if !ok || and.Op != lexer.SymAnd {
		t.Fatalf("where = %#v", sel.Where)
	}
	if _, ok := and.Right.(*ast.BetweenExpr); !ok {
		t.Fatalf("right of AND = %T", and.Right)
	}
}

func TestSelectGroupByHaving(t *testing.T) {
	stmt := mustParse(t, `
		SELECT dept, COUNT(*), AVG(salary)
		FROM employees
		GROUP BY dept
		HAVING COUNT(*) > 5`)
	sel := stmt.(*ast.SelectStmt)
	if len(sel.GroupBy) != 1 || sel.Having == nil {
		t.Fatalf("group by = %v having = %v", sel.GroupBy, sel.Having)
	}
	sf, ok := sel.Columns[1].Expr.(*ast.SetFunc)
	if !ok || sf.Kind != ast.SetFuncCount || !sf.Star {
		t.Fatalf("COUNT(*) = %#v", sel.Columns[1].Expr)
	}
}

func TestSelectDistinctAggregate(t *testing.T) {
	stmt := mustParse(t, "SELECT SUM(DISTINCT total) FROM orders")
	sf := stmt.(*ast.SelectStmt).Columns[0].Expr.(*ast.SetFunc)
	if sf.Kind != ast.SetFuncSum || !sf.Distinct {
		t.Fatalf("set func = %#v", sf)
	}
}

func TestSelectJoins(t *testing.T) {
	stmt := mustParse(t, `
		SELECT u.id, o.total
		FROM users u
		INNER JOIN orders o ON u.id = o.user_id
		WHERE o.total > 100`)
	sel := stmt.(*ast.SelectStmt)
	jt, ok := sel.From[0].(*ast.JoinTable)
	if !ok || jt.Kind != ast.InnerJoin || jt.On == nil {
		t.Fatalf("join = %#v", sel.From[0])
	}
}

func TestJoinLeftAssociative(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM a JOIN b ON a.x = b.x LEFT OUTER JOIN c ON b.y = c.y")
	sel := stmt.(*ast.SelectStmt)
	outer, ok := sel.From[0].(*ast.JoinTable)
	if !ok || outer.Kind != ast.LeftJoin {
		t.Fatalf("outer join = %#v", sel.From[0])
	}
	inner, ok := outer.Left.(*ast.JoinTable)
	if !ok || inner.Kind != ast.InnerJoin {
		t.Fatalf("inner join = %#v", outer.Left)
	}
}

func TestJoinVariants(t *testing.T) {
	mustParse(t, "SELECT * FROM a RIGHT JOIN b ON a.x = b.x")
	mustParse(t, "SELECT * FROM a FULL OUTER JOIN b ON a.x = b.x")
	mustParse(t, "SELECT * FROM a CROSS JOIN b")
	mustParse(t, "SELECT * FROM a NATURAL JOIN b")
	stmt := mustParse(t, "SELECT * FROM a JOIN b USING (id, ts)")
	jt := stmt.(*ast.SelectStmt).From[0].(*ast.JoinTable)
	if len(jt.Using) != 2 {
		t.Fatalf("using = %v", jt.Using)
	}
}

func TestDerivedTable(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM (SELECT id FROM users WHERE active = 1) sub")
	dt, ok := stmt.(*ast.SelectStmt).From[0].(*ast.DerivedTable)
	if !ok || dt.Alias == nil || dt.Alias.Name != "sub" {
		t.Fatalf("derived table = %#v", stmt.(*ast.SelectStmt).From[0])
	}
}

func TestSelectSetOperations(t *testing.T) {
	stmt := mustParse(t, `
		SELECT id FROM a
		UNION ALL
		SELECT id FROM b
		INTERSECT
		SELECT id FROM c`)
	sel := stmt.(*ast.SelectStmt)
	if sel.SetOp == nil || sel.SetOp.Op != ast.Union || !sel.SetOp.All {
		t.Fatalf("first set op = %#v", sel.SetOp)
	}
	if sel.SetOp.Right.SetOp == nil || sel.SetOp.Right.SetOp.Op != ast.Intersect {
		t.Fatalf("chained set op = %#v", sel.SetOp.Right.SetOp)
	}
}

func TestSelectPredicates(t *testing.T) {
	mustParse(t, "SELECT * FROM t WHERE id IN (1, 2, 3)")
	mustParse(t, "SELECT * FROM t WHERE id NOT IN (SELECT id FROM blocked)")
	mustParse(t, "SELECT * FROM t WHERE name LIKE 'A%' ESCAPE '!'")
	mustParse(t, "SELECT * FROM t WHERE name NOT LIKE '%x%'")
	mustParse(t, "SELECT * FROM t WHERE deleted_at IS NULL")
	mustParse(t, "SELECT * FROM t WHERE deleted_at IS NOT NULL")
	mustParse(t, "SELECT * FROM t WHERE EXISTS (SELECT 1 FROM other WHERE other.id = t.id)")
	mustParse(t, "SELECT * FROM t WHERE NOT (a = 1 OR b = 2)")
	mustParse(t, "SELECT * FROM t WHERE (a = 1 OR b = 2) AND c = 3")
}

func TestSelectScalarExpressions(t *testing.T) {
	mustParse(t, "SELECT price * quantity + tax FROM items")
	mustParse(t, "SELECT first || ' ' || last FROM people")
	mustParse(t, "SELECT CAST(price AS NUMERIC(10,2)) FROM items")
	mustParse(t, "SELECT COALESCE(nick, name, 'anon') FROM people")
	mustParse(t, "SELECT NULLIF(a, 0) FROM t")
	mustParse(t, "SELECT CASE status WHEN 1 THEN 'on' ELSE 'off' END FROM t")
	mustParse(t, "SELECT CASE WHEN a > b THEN a ELSE b END FROM t")
	mustParse(t, "SELECT (SELECT MAX(id) FROM other) FROM t")
}

// ---- UPDATE / DELETE ----

func TestUpdate(t *testing.T) {
	stmt := mustParse(t, "UPDATE users SET name = 'Bob', age = age + 1 WHERE id = 1")
	upd, ok := stmt.(*ast.UpdateStmt)
	if !ok {
		t.Fatalf("expected *UpdateStmt, got %T", stmt)
	}
	if len(upd.Set) != 2 || upd.Set[0].Column.Name != "name" {
		t.Fatalf("set = %v", upd.Set)
	}
	if upd.Where == nil {
		t.Fatal("missing WHERE")
	}
}

func TestUpdateDefault(t *testing.T) {
	stmt := mustParse(t, "UPDATE users SET flags = DEFAULT")
	upd := stmt.(*ast.UpdateStmt)
	if _, ok := upd.Set[0].Value.(*ast.DefaultValue); !ok {
		t.Fatalf("value = %T", upd.Set[0].Value)
	}
}

func TestDelete(t *testing.T) {
	stmt := mustParse(t, "DELETE FROM logs WHERE ts < 100")
	del, ok := stmt.(*ast.DeleteStmt)
	if !ok {
		t.Fatalf("expected *DeleteStmt, got %T", stmt)
	}
	if del.Where == nil {
		t.Fatal("missing WHERE")
	}
	mustParse(t, "DELETE FROM logs")
}

// ---- CREATE VIEW / DROP ----

func TestCreateView(t *testing.T) {
	stmt := mustParse(t, `
		CREATE VIEW active_users (id, name) AS
		SELECT id, name FROM users WHERE active = 1
		WITH CHECK OPTION`)
	cv, ok := stmt.(*ast.CreateViewStmt)
	if !ok {
		t.Fatalf("expected *CreateViewStmt, got %T", stmt)
	}
	if len(cv.Columns) != 2 || !cv.CheckOption || cv.Query == nil {
		t.Fatalf("view = %#v", cv)
	}
}

func TestDropStatements(t *testing.T) {
	stmt := mustParse(t, "DROP SCHEMA s CASCADE")
	ds := stmt.(*ast.DropSchemaStmt)
	if ds.Name.Name != "s" || ds.Behavior != ast.DropCascade {
		t.Fatalf("drop schema = %#v", ds)
	}
	stmt = mustParse(t, "DROP TABLE t RESTRICT")
	dt := stmt.(*ast.DropTableStmt)
	if dt.Behavior != ast.DropRestrict {
		t.Fatalf("drop table = %#v", dt)
	}
	stmt = mustParse(t, "DROP VIEW v")
	dv := stmt.(*ast.DropViewStmt)
	if dv.Behavior != ast.DropUnspecified {
		t.Fatalf("drop view = %#v", dv)
	}
}

// ---- multiple statements, comments, whitespace ----

func TestMultipleStatements(t *testing.T) {
	stmts := mustParseAll(t, `
		CREATE SCHEMA app;
		CREATE TABLE app.t (id INT);
		INSERT INTO app.t VALUES (1);
		SELECT * FROM app.t;
		DROP TABLE app.t;
	`)
	if len(stmts) != 5 {
		t.Fatalf("statement count = %d", len(stmts))
	}
}

func TestTrailingSemicolonOptional(t *testing.T) {
	if len(mustParseAll(t, "SELECT 1")) != 1 {
		t.Fatal("no trailing semicolon")
	}
	if len(mustParseAll(t, "SELECT 1;")) != 1 {
		t.Fatal("trailing semicolon")
	}
}

func TestCommentsIgnoredAtDecisionPoints(t *testing.T) {
	stmt := mustParse(t, "CREATE /* block */ SCHEMA -- line\n s1")
	cs := stmt.(*ast.CreateSchemaStmt)
	if cs.Name.Name != "s1" {
		t.Fatalf("schema name = %q", cs.Name.Name)
	}
}

func TestKeywordCaseFolding(t *testing.T) {
	a := mustParse(t, "create table t (id int, name varchar(8) not null)")
	b := mustParse(t, "CREATE TABLE t (id INT, name VARCHAR(8) NOT NULL)")
	if sql92.Format(a) != sql92.Format(b) {
		t.Fatalf("case variants differ:\n%s\n%s", sql92.Format(a), sql92.Format(b))
	}
}

func TestWhitespaceIrrelevance(t *testing.T) {
	a := mustParse(t, "SELECT id , name FROM users WHERE id = 1")
	b := mustParse(t, "SELECT\n\tid,name\nFROM users\nWHERE id=1")
	if sql92.Format(a) != sql92.Format(b) {
		t.Fatalf("whitespace variants differ:\n%s\n%s", sql92.Format(a), sql92.Format(b))
	}
}

// ---- error reporting ----

func TestMissingRParen(t *testing.T) {
	input := "CREATE TABLE t (x VARCHAR(10)"
	d := mustFail(t, input)
	if d.Code != parser.SyntaxError {
		t.Fatalf("code = %s", d.Code)
	}
	if !expectedContains(d, lexer.SymRParen) {
		t.Fatalf("expected set %v does not include RPAREN", d.Expected)
	}
	if d.Pos != int32(len(input)) {
		t.Fatalf("pos = %d, want %d (end of input)", d.Pos, len(input))
	}
}

func TestDoubleRequiresPrecision(t *testing.T) {
	d := mustFail(t, "CREATE TABLE t (x DOUBLE)")
	if d.Code != parser.SyntaxError {
		t.Fatalf("code = %s", d.Code)
	}
	if len(d.Expected) != 1 || d.Expected[0] != lexer.SymPrecision {
		t.Fatalf("expected set = %v, want {PRECISION}", d.Expected)
	}
}

func TestInsertSourceError(t *testing.T) {
	d := mustFail(t, "INSERT INTO t 42")
	if !expectedContains(d, lexer.SymValues) || !expectedContains(d, lexer.SymDefault) {
		t.Fatalf("expected set = %v", d.Expected)
	}
}

func TestUnexpectedLeadingToken(t *testing.T) {
	d := mustFail(t, "FROB everything")
	if !expectedContains(d, lexer.SymCreate) || !expectedContains(d, lexer.SymSelect) {
		t.Fatalf("expected set = %v", d.Expected)
	}
	if d.Pos != 0 {
		t.Fatalf("pos = %d", d.Pos)
	}
}

func TestLexErrorSurfaces(t *testing.T) {
	res := parser.ParseString("SELECT 'unterminated", parser.Options{})
	if res.Code != parser.LexError {
		t.Fatalf("code = %s, want LEX_ERROR", res.Code)
	}
	if res.Diag == nil || res.Diag.Pos != 7 {
		t.Fatalf("diag = %#v", res.Diag)
	}
}

func TestErrorDoesNotGetOverwritten(t *testing.T) {
	d := mustFail(t, "CREATE TABLE t (x DOUBLE); SELECT 1")
	if len(d.Expected) != 1 || d.Expected[0] != lexer.SymPrecision {
		t.Fatalf("first diagnostic was overwritten: %v", d.Expected)
	}
}

func TestDiagnosticMarker(t *testing.T) {
	d := mustFail(t, "CREATE TABLE t (x DOUBLE)")
	if d.Marker == "" {
		t.Fatal("missing marker line")
	}
}

// ---- construction toggle ----

var toggleInputs = []string{
	"CREATE SCHEMA s1;",
	"CREATE TABLE t (id INT, name VARCHAR(64), ts TIMESTAMP(3) WITH TIME ZONE)",
	"INSERT INTO t (a,b) VALUES (1, 'x')",
	"SELECT u.id FROM users u JOIN orders o ON u.id = o.user_id WHERE o.total > 0",
	"UPDATE t SET a = 1 WHERE b = 2",
	"DROP TABLE t CASCADE",
}

func TestDisableStatementConstruction(t *testing.T) {
	for _, sql := range toggleInputs {
		res := parser.ParseString(sql, parser.Options{DisableStatementConstruction: true})
		if res.Code != parser.OK {
			t.Fatalf("%q: code = %s", sql, res.Code)
		}
		if len(res.Statements) != 0 {
			t.Fatalf("%q: statements = %d, want 0", sql, len(res.Statements))
		}
	}
}

func TestToggleAgreesOnErrors(t *testing.T) {
	bad := []string{
		"CREATE TABLE t (x DOUBLE)",
		"CREATE TABLE t (x VARCHAR(10)",
		"INSERT INTO t 42",
		"SELECT 'unterminated",
	}
	for _, sql := range bad {
		plain := parser.ParseString(sql, parser.Options{})
		toggled := parser.ParseString(sql, parser.Options{DisableStatementConstruction: true})
		if plain.Code != toggled.Code {
			t.Fatalf("%q: plain=%s toggled=%s", sql, plain.Code, toggled.Code)
		}
	}
}

// ---- parser reuse ----

func TestParserReset(t *testing.T) {
	p := parser.New([]byte("SELECT 1"), parser.Options{})
	if res := p.Run(); res.Code != parser.OK || len(res.Statements) != 1 {
		t.Fatalf("first run: %#v", res)
	}
	p.Reset([]byte("DROP TABLE t"))
	res := p.Run()
	if res.Code != parser.OK || len(res.Statements) != 1 {
		t.Fatalf("second run: %#v", res)
	}
	if _, ok := res.Statements[0].(*ast.DropTableStmt); !ok {
		t.Fatalf("statement = %T", res.Statements[0])
	}
}

// ---- fuzz ----

func FuzzParse(f *testing.F) {
	for _, seed := range toggleInputs {
		f.Add(seed)
	}
	f.Add("CREATE TABLE t (x DOUBLE)")
	f.Add("'unterminated")
	f.Fuzz(func(t *testing.T, sql string) {
		plain := parser.ParseString(sql, parser.Options{})
		toggled := parser.ParseString(sql, parser.Options{DisableStatementConstruction: true})
		if plain.Code != toggled.Code {
			t.Fatalf("toggle changed outcome: %s vs %s", plain.Code, toggled.Code)
		}
		if len(toggled.Statements) != 0 {
			t.Fatal("toggle produced statements")
		}
	})
}

// ---- benchmarks ----

var benchDDL = `
CREATE TABLE orders (
	id       INT NOT NULL PRIMARY KEY,
	user_id  INT REFERENCES users (id),
	state    SMALLINT DEFAULT 0,
	total    NUMERIC(12,2) DEFAULT 0 CHECK (total >= 0),
	created  TIMESTAMP(3) WITH TIME ZONE,
	CONSTRAINT uq_user UNIQUE (user_id)
)`

var benchQuery = `
SELECT u.id, u.name, COUNT(*), SUM(o.total)
FROM users u
LEFT JOIN orders o ON u.id = o.user_id
WHERE u.active = 1 AND o.total BETWEEN 10 AND 1000
GROUP BY u.id, u.name
HAVING COUNT(*) > 0
ORDER BY u.name DESC`

func BenchmarkParseCreateTable(b *testing.B) {
	src := []byte(benchDDL)
	p := parser.New(src, parser.Options{})
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Reset(src)
		if res := p.Run(); res.Code != parser.OK {
			b.Fatal(res.Diag)
		}
	}
}

func BenchmarkParseSelect(b *testing.B) {
	src := []byte(benchQuery)
	p := parser.New(src, parser.Options{})
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Reset(src)
		if res := p.Run(); res.Code != parser.OK {
			b.Fatal(res.Diag)
		}
	}
}

func BenchmarkValidate(b *testing.B) {
	src := []byte(benchQuery)
	p := parser.New(src, parser.Options{DisableStatementConstruction: true})
	b.SetBytes(int64(len(src)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Reset(src)
		if res := p.Run(); res.Code != parser.OK {
			b.Fatal(res.Diag)
		}
	}
}
