// Package ast defines the SQL-92 Abstract Syntax Tree.
// Statements own their descendant nodes exclusively. Identifier nodes keep a
// borrowed view of the source bytes (Raw) plus an owned copy of the text
// (Name); literal nodes keep only the borrowed view, so the input buffer must
// outlive any use of a Raw field.
package ast

import "github.com/oarkflow/sql92/lexer"

// Node is implemented by every AST node.
type Node interface {
	node()
	// Pos returns the byte offset of the node's anchoring token: its first
	// token, except for binary expressions, BETWEEN/IN/LIKE/IS predicates
	// and joined tables, which are anchored at their operator or join
	// keyword.
	Pos() int32
}

// Statement is a top-level SQL statement.
type Statement interface {
	Node
	stmtNode()
}

// Expr is a value expression, predicate, or search condition.
type Expr interface {
	Node
	exprNode()
}

// ---- Identifiers & literals ----

// Ident is a regular or delimited identifier. Name holds the identifier text
// with delimiters stripped; source case is preserved.
type Ident struct {
	Raw    []byte
	Name   string
	TokPos int32
}

func (n *Ident) node()      {}
func (n *Ident) exprNode()  {}
func (n *Ident) Pos() int32 { return n.TokPos }

// QualifiedName is a dotted name, e.g. schema.table or table.column.
type QualifiedName struct {
	Parts []*Ident
}

func (n *QualifiedName) node()     {}
func (n *QualifiedName) exprNode() {}
func (n *QualifiedName) Pos() int32 {
	if len(n.Parts) > 0 {
		return n.Parts[0].TokPos
	}
	return -1
}

// Name returns the undelimited rightmost part of the qualified name.
func (n *QualifiedName) Name() string {
	if len(n.Parts) == 0 {
		return ""
	}
	return n.Parts[len(n.Parts)-1].Name
}

// Literal is a numeric or string literal; Sym carries the literal subkind.
type Literal struct {
	Raw    []byte
	Sym    lexer.Symbol
	TokPos int32
}

func (n *Literal) node()      {}
func (n *Literal) exprNode()  {}
func (n *Literal) Pos() int32 { return n.TokPos }

// NullValue is the NULL specification.
type NullValue struct{ TokPos int32 }

func (n *NullValue) node()      {}
func (n *NullValue) exprNode()  {}
func (n *NullValue) Pos() int32 { return n.TokPos }

// DefaultValue is the DEFAULT specification in a row value constructor or
// UPDATE assignment.
type DefaultValue struct{ TokPos int32 }

func (n *DefaultValue) node()      {}
func (n *DefaultValue) exprNode()  {}
func (n *DefaultValue) Pos() int32 { return n.TokPos }

// ValueSpec is one of the special value specifications: USER, CURRENT_USER,
// SESSION_USER, SYSTEM_USER, CURRENT_DATE, CURRENT_TIME, CURRENT_TIMESTAMP.
// Precision applies to the datetime functions.
type ValueSpec struct {
	Sym       lexer.Symbol
	Precision int
	TokPos    int32
}

func (n *ValueSpec) node()      {}
func (n *ValueSpec) exprNode()  {}
func (n *ValueSpec) Pos() int32 { return n.TokPos }

// StarExpr represents * in a select list or COUNT(*).
type StarExpr struct{ TokPos int32 }

func (n *StarExpr) node()      {}
func (n *StarExpr) exprNode()  {}
func (n *StarExpr) Pos() int32 { return n.TokPos }

// ---- Expressions ----

// BinaryExpr is left op right; Op is a punctuator or keyword symbol
// (arithmetic, concatenation, comparison, AND, OR).
type BinaryExpr struct {
	Left, Right Expr
	Op          lexer.Symbol
	TokPos      int32
}

func (n *BinaryExpr) node()      {}
func (n *BinaryExpr) exprNode()  {}
func (n *BinaryExpr) Pos() int32 { return n.TokPos }

// UnaryExpr is a prefix sign or NOT.
type UnaryExpr struct {
	Expr   Expr
	Op     lexer.Symbol
	TokPos int32
}

func (n *UnaryExpr) node()      {}
func (n *UnaryExpr) exprNode()  {}
func (n *UnaryExpr) Pos() int32 { return n.TokPos }

// SetFuncKind names a SQL-92 set function.
type SetFuncKind uint8

const (
	SetFuncCount SetFuncKind = iota
	SetFuncAvg
	SetFuncMax
	SetFuncMin
	SetFuncSum
)

func (k SetFuncKind) String() string {
	switch k {
	case SetFuncCount:
		return "COUNT"
	case SetFuncAvg:
		return "AVG"
	case SetFuncMax:
		return "MAX"
	case SetFuncMin:
		return "MIN"
	default:
		return "SUM"
	}
}

// SetFunc is a set function invocation: COUNT(*), SUM([DISTINCT] expr), etc.
type SetFunc struct {
	Kind     SetFuncKind
	Distinct bool
	Star     bool // COUNT(*)
	Arg      Expr
	TokPos   int32
}

func (n *SetFunc) node()      {}
func (n *SetFunc) exprNode()  {}
func (n *SetFunc) Pos() int32 { return n.TokPos }

// FuncCall is a scalar function invocation such as COALESCE or NULLIF.
type FuncCall struct {
	Name   *Ident
	Args   []Expr
	TokPos int32
}

func (n *FuncCall) node()      {}
func (n *FuncCall) exprNode()  {}
func (n *FuncCall) Pos() int32 { return n.TokPos }

// CaseExpr is CASE ... END, simple (Operand set) or searched.
type CaseExpr struct {
	Operand Expr
	Whens   []WhenClause
	Else    Expr
	TokPos  int32
}

// WhenClause is one WHEN ... THEN ... arm.
type WhenClause struct {
	Cond, Result Expr
}

func (n *CaseExpr) node()      {}
func (n *CaseExpr) exprNode()  {}
func (n *CaseExpr) Pos() int32 { return n.TokPos }

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	Expr   Expr
	Type   *DataType
	TokPos int32
}

func (n *CastExpr) node()      {}
func (n *CastExpr) exprNode()  {}
func (n *CastExpr) Pos() int32 { return n.TokPos }

// SubqueryExpr is a parenthesized scalar subquery.
type SubqueryExpr struct {
	Query  *SelectStmt
	TokPos int32
}

func (n *SubqueryExpr) node()      {}
func (n *SubqueryExpr) exprNode()  {}
func (n *SubqueryExpr) Pos() int32 { return n.TokPos }

// ---- Predicates ----

// BetweenExpr is expr [NOT] BETWEEN lo AND hi.
type BetweenExpr struct {
	Expr   Expr
	Lo, Hi Expr
	Not    bool
	TokPos int32
}

func (n *BetweenExpr) node()      {}
func (n *BetweenExpr) exprNode()  {}
func (n *BetweenExpr) Pos() int32 { return n.TokPos }

// InExpr is expr [NOT] IN (list) or expr [NOT] IN (subquery).
type InExpr struct {
	Expr   Expr
	List   []Expr
	Query  *SelectStmt
	Not    bool
	TokPos int32
}

func (n *InExpr) node()      {}
func (n *InExpr) exprNode()  {}
func (n *InExpr) Pos() int32 { return n.TokPos }

// LikeExpr is expr [NOT] LIKE pattern [ESCAPE esc].
type LikeExpr struct {
	Expr, Pattern, Escape Expr
	Not                   bool
	TokPos                int32
}

func (n *LikeExpr) node()      {}
func (n *LikeExpr) exprNode()  {}
func (n *LikeExpr) Pos() int32 { return n.TokPos }

// IsNullExpr is expr IS [NOT] NULL.
type IsNullExpr struct {
	Expr   Expr
	Not    bool
	TokPos int32
}

func (n *IsNullExpr) node()      {}
func (n *IsNullExpr) exprNode()  {}
func (n *IsNullExpr) Pos() int32 { return n.TokPos }

// ExistsExpr is EXISTS (subquery).
type ExistsExpr struct {
	Query  *SelectStmt
	TokPos int32
}

func (n *ExistsExpr) node()      {}
func (n *ExistsExpr) exprNode()  {}
func (n *ExistsExpr) Pos() int32 { return n.TokPos }

// ---- Data types ----

// DataTypeKind tags the data type descriptor family member.
type DataTypeKind uint8

const (
	TypeChar DataTypeKind = iota
	TypeVarChar
	TypeNChar
	TypeNVarChar
	TypeBit
	TypeVarBit
	TypeInt
	TypeSmallInt
	TypeNumeric
	TypeFloat
	TypeDouble
	TypeDate
	TypeTime
	TypeTimestamp
	TypeInterval
)

func (k DataTypeKind) String() string {
	switch k {
	case TypeChar:
		return "CHAR"
	case TypeVarChar:
		return "VARCHAR"
	case TypeNChar:
		return "NCHAR"
	case TypeNVarChar:
		return "NCHAR VARYING"
	case TypeBit:
		return "BIT"
	case TypeVarBit:
		return "BIT VARYING"
	case TypeInt:
		return "INT"
	case TypeSmallInt:
		return "SMALLINT"
	case TypeNumeric:
		return "NUMERIC"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE PRECISION"
	case TypeDate:
		return "DATE"
	case TypeTime:
		return "TIME"
	case TypeTimestamp:
		return "TIMESTAMP"
	default:
		return "INTERVAL"
	}
}

// IntervalUnit is the datetime field of an interval type.
type IntervalUnit uint8

const (
	UnitYear IntervalUnit = iota
	UnitMonth
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
)

func (u IntervalUnit) String() string {
	switch u {
	case UnitYear:
		return "YEAR"
	case UnitMonth:
		return "MONTH"
	case UnitDay:
		return "DAY"
	case UnitHour:
		return "HOUR"
	case UnitMinute:
		return "MINUTE"
	default:
		return "SECOND"
	}
}

// DataType is a SQL-92 data type descriptor. Length applies to the string
// families, Precision/Scale to the numeric families, Precision alone to the
// datetime and interval families. Zero means unspecified.
type DataType struct {
	Kind         DataTypeKind
	Length       int
	Precision    int
	Scale        int
	WithTimeZone bool
	Charset      *Ident
	IntervalUnit IntervalUnit
	TokPos       int32
}

func (n *DataType) node()      {}
func (n *DataType) Pos() int32 { return n.TokPos }

// ---- Table references ----

// TableRef is a table reference in a FROM clause.
type TableRef interface {
	Node
	tableRefNode()
}

// SimpleTable is a named table with optional correlation name.
type SimpleTable struct {
	Name  *QualifiedName
	Alias *Ident
}

func (n *SimpleTable) node()         {}
func (n *SimpleTable) tableRefNode() {}
func (n *SimpleTable) Pos() int32    { return n.Name.Pos() }

// DerivedTable is (query) alias.
type DerivedTable struct {
	Query  *SelectStmt
	Alias  *Ident
	TokPos int32
}

func (n *DerivedTable) node()         {}
func (n *DerivedTable) tableRefNode() {}
func (n *DerivedTable) Pos() int32    { return n.TokPos }

// JoinKind tags the join flavor.
type JoinKind uint8

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	CrossJoin
	NaturalJoin
)

func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "NATURAL JOIN"
	}
}

// JoinTable is a joined table; joins are left-associative.
type JoinTable struct {
	Left, Right TableRef
	Kind        JoinKind
	On          Expr
	Using       []*Ident
	TokPos      int32
}

func (n *JoinTable) node()         {}
func (n *JoinTable) tableRefNode() {}
func (n *JoinTable) Pos() int32    { return n.TokPos }

// ---- Query expressions ----

// SetOp is a set operation joining query terms.
type SetOp uint8

const (
	Union SetOp = iota
	Except
	Intersect
)

func (o SetOp) String() string {
	switch o {
	case Union:
		return "UNION"
	case Except:
		return "EXCEPT"
	default:
		return "INTERSECT"
	}
}

// SetOperation chains a further query term onto a SelectStmt.
type SetOperation struct {
	Op    SetOp
	All   bool
	Right *SelectStmt
}

// SelectColumn is one item of a select list.
type SelectColumn struct {
	Expr  Expr
	Alias *Ident
	Star  bool
}

// OrderByItem is one ORDER BY sort key.
type OrderByItem struct {
	Expr Expr
	Desc bool
}

// SelectStmt is a query expression. It doubles as the <query expression>
// node embedded in INSERT ... SELECT, derived tables, and subqueries.
type SelectStmt struct {
	Distinct bool
	Columns  []SelectColumn
	From     []TableRef
	Where    Expr
	GroupBy  []Expr
	Having   Expr
	OrderBy  []OrderByItem
	SetOp    *SetOperation
	TokPos   int32
}

func (n *SelectStmt) node()      {}
func (n *SelectStmt) stmtNode()  {}
func (n *SelectStmt) Pos() int32 { return n.TokPos }

// ---- Constraints ----

// ConstraintKind tags a column or table constraint.
type ConstraintKind uint8

const (
	NotNullConstraint ConstraintKind = iota
	UniqueConstraint
	PrimaryKeyConstraint
	ReferencesConstraint
	ForeignKeyConstraint
	CheckConstraint
)

func (k ConstraintKind) String() string {
	switch k {
	case NotNullConstraint:
		return "NOT NULL"
	case UniqueConstraint:
		return "UNIQUE"
	case PrimaryKeyConstraint:
		return "PRIMARY KEY"
	case ReferencesConstraint:
		return "REFERENCES"
	case ForeignKeyConstraint:
		return "FOREIGN KEY"
	default:
		return "CHECK"
	}
}

// MatchKind is the referential MATCH option.
type MatchKind uint8

const (
	MatchNone MatchKind = iota
	MatchFull
	MatchPartial
)

// References is a referential constraint target.
type References struct {
	Table   *QualifiedName
	Columns []*Ident
	Match   MatchKind
}

// ColumnConstraint is a constraint attached to a column definition.
type ColumnConstraint struct {
	Name   *Ident
	Kind   ConstraintKind
	Refs   *References
	Check  Expr
	TokPos int32
}

func (n *ColumnConstraint) node()      {}
func (n *ColumnConstraint) Pos() int32 { return n.TokPos }

// TableConstraint is a table-level constraint element.
type TableConstraint struct {
	Name    *Ident
	Kind    ConstraintKind
	Columns []*Ident
	Refs    *References
	Check   Expr
	TokPos  int32
}

func (n *TableConstraint) node()      {}
func (n *TableConstraint) Pos() int32 { return n.TokPos }

// DefaultClause is a column DEFAULT: a literal, NULL, or a value
// specification such as USER or CURRENT_TIMESTAMP.
type DefaultClause struct {
	Value  Expr
	TokPos int32
}

// ColumnDef defines a table column.
type ColumnDef struct {
	Name        *Ident
	Type        *DataType
	Default     *DefaultClause
	Constraints []*ColumnConstraint
	Collate     *Ident
	TokPos      int32
}

func (n *ColumnDef) node()      {}
func (n *ColumnDef) Pos() int32 { return n.TokPos }

// ---- DDL statements ----

// CreateSchemaStmt represents CREATE SCHEMA.
type CreateSchemaStmt struct {
	Name           *Ident // nil for the AUTHORIZATION-only form
	Authorization  *Ident
	DefaultCharset *Ident
	TokPos         int32
}

func (n *CreateSchemaStmt) node()      {}
func (n *CreateSchemaStmt) stmtNode()  {}
func (n *CreateSchemaStmt) Pos() int32 { return n.TokPos }

// TableType distinguishes normal from temporary tables.
type TableType uint8

const (
	TableTypeNormal TableType = iota
	TableTypeTemporaryGlobal
	TableTypeTemporaryLocal
)

func (t TableType) String() string {
	switch t {
	case TableTypeTemporaryGlobal:
		return "GLOBAL TEMPORARY"
	case TableTypeTemporaryLocal:
		return "LOCAL TEMPORARY"
	default:
		return "NORMAL"
	}
}

// CommitAction is the ON COMMIT behavior of a temporary table.
type CommitAction uint8

const (
	CommitActionNone CommitAction = iota
	CommitActionDelete
	CommitActionPreserve
)

// CreateTableStmt represents CREATE [{GLOBAL|LOCAL} TEMPORARY] TABLE.
type CreateTableStmt struct {
	Type        TableType
	Name        *QualifiedName
	Columns     []*ColumnDef
	Constraints []*TableConstraint
	OnCommit    CommitAction
	TokPos      int32
}

func (n *CreateTableStmt) node()      {}
func (n *CreateTableStmt) stmtNode()  {}
func (n *CreateTableStmt) Pos() int32 { return n.TokPos }

// CreateViewStmt represents CREATE VIEW.
type CreateViewStmt struct {
	Name        *QualifiedName
	Columns     []*Ident
	Query       *SelectStmt
	CheckOption bool
	TokPos      int32
}

func (n *CreateViewStmt) node()      {}
func (n *CreateViewStmt) stmtNode()  {}
func (n *CreateViewStmt) Pos() int32 { return n.TokPos }

// DropBehavior is the SQL-92 <drop behavior>.
type DropBehavior uint8

const (
	DropUnspecified DropBehavior = iota
	DropCascade
	DropRestrict
)

// DropSchemaStmt represents DROP SCHEMA.
type DropSchemaStmt struct {
	Name     *Ident
	Behavior DropBehavior
	TokPos   int32
}

func (n *DropSchemaStmt) node()      {}
func (n *DropSchemaStmt) stmtNode()  {}
func (n *DropSchemaStmt) Pos() int32 { return n.TokPos }

// DropTableStmt represents DROP TABLE.
type DropTableStmt struct {
	Name     *QualifiedName
	Behavior DropBehavior
	TokPos   int32
}

func (n *DropTableStmt) node()      {}
func (n *DropTableStmt) stmtNode()  {}
func (n *DropTableStmt) Pos() int32 { return n.TokPos }

// DropViewStmt represents DROP VIEW.
type DropViewStmt struct {
	Name     *QualifiedName
	Behavior DropBehavior
	TokPos   int32
}

func (n *DropViewStmt) node()      {}
func (n *DropViewStmt) stmtNode()  {}
func (n *DropViewStmt) Pos() int32 { return n.TokPos }

// ---- DML statements ----

// InsertStmt represents INSERT ... VALUES and INSERT ... DEFAULT VALUES.
type InsertStmt struct {
	Table         *QualifiedName
	Columns       []*Ident
	Rows          [][]Expr
	DefaultValues bool
	TokPos        int32
}

func (n *InsertStmt) node()      {}
func (n *InsertStmt) stmtNode()  {}
func (n *InsertStmt) Pos() int32 { return n.TokPos }

// InsertSelectStmt represents INSERT ... <query expression>.
type InsertSelectStmt struct {
	Table   *QualifiedName
	Columns []*Ident
	Query   *SelectStmt
	TokPos  int32
}

func (n *InsertSelectStmt) node()      {}
func (n *InsertSelectStmt) stmtNode()  {}
func (n *InsertSelectStmt) Pos() int32 { return n.TokPos }

// Assignment is one SET item of an UPDATE statement.
type Assignment struct {
	Column *Ident
	Value  Expr
}

// UpdateStmt represents UPDATE ... SET ... [WHERE ...].
type UpdateStmt struct {
	Table  *QualifiedName
	Set    []Assignment
	Where  Expr
	TokPos int32
}

func (n *UpdateStmt) node()      {}
func (n *UpdateStmt) stmtNode()  {}
func (n *UpdateStmt) Pos() int32 { return n.TokPos }

// DeleteStmt represents DELETE FROM ... [WHERE ...].
type DeleteStmt struct {
	Table  *QualifiedName
	Where  Expr
	TokPos int32
}

func (n *DeleteStmt) node()      {}
func (n *DeleteStmt) stmtNode()  {}
func (n *DeleteStmt) Pos() int32 { return n.TokPos }
