package sql92

import (
	"fmt"

	"github.com/oarkflow/sql92/ast"
	"github.com/oarkflow/sql92/lexer"
)

type FindingSeverity string

const (
	SeverityInfo     FindingSeverity = "info"
	SeverityWarning  FindingSeverity = "warning"
	SeverityCritical FindingSeverity = "critical"
)

type AnalysisFinding struct {
	Severity       FindingSeverity
	Code           string
	Problem        string
	Recommendation string
	StatementIndex int
}

type AnalysisReport struct {
	Valid          bool
	StatementCount int
	// Tables lists, in first-use order and by unqualified name, the tables
	// that statements define, target, name in FROM clauses (including
	// derived tables and set-operation branches) or name in REFERENCES
	// clauses. Tables named only inside subqueries of conditions or
	// expressions are not listed.
	Tables   []string
	Findings []AnalysisFinding
}

// AnalyzeSQL parses the input and reports statement-level findings: missing
// WHERE clauses on destructive statements, SELECT *, cartesian joins, and
// duplicate-eliminating set operations.
func AnalyzeSQL(sql string) AnalysisReport {
	report := AnalysisReport{}
	stmts, err := ParseStatements(sql)
	if err != nil {
		report.Valid = false
		addFinding(&report, SeverityCritical, "PARSE_ERROR", err.Error(), "Fix the SQL syntax at the reported offset and re-run.", -1)
		return report
	}
	report.Valid = true
	report.StatementCount = len(stmts)

	seen := map[string]bool{}
	for i, stmt := range stmts {
		analyzeStatement(stmt, i, &report, seen)
	}
	return report
}

func analyzeStatement(stmt Statement, idx int, report *AnalysisReport, seen map[string]bool) {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		analyzeSelect(s, idx, report, seen)
	case *ast.InsertStmt:
		recordTable(report, seen, s.Table)
		if len(s.Rows) > 1000 {
			addFinding(report, SeverityInfo, "BULK_INSERT_SIZE", "Very large VALUES clause detected; this can increase lock time and memory pressure.", "Split into smaller batches.", idx)
		}
	case *ast.InsertSelectStmt:
		recordTable(report, seen, s.Table)
		analyzeSelect(s.Query, idx, report, seen)
	case *ast.UpdateStmt:
		recordTable(report, seen, s.Table)
		if s.Where == nil {
			addFinding(report, SeverityCritical, "UPDATE_WITHOUT_WHERE", "UPDATE statement has no WHERE clause and will affect all rows.", "Add a WHERE predicate or confirm a full-table update is intended.", idx)
		}
	case *ast.DeleteStmt:
		recordTable(report, seen, s.Table)
		if s.Where == nil {
			addFinding(report, SeverityCritical, "DELETE_WITHOUT_WHERE", "DELETE statement has no WHERE clause and will remove all rows.", "Add a WHERE predicate.", idx)
		}
	case *ast.CreateTableStmt:
		recordTable(report, seen, s.Name)
		for _, c := range s.Columns {
			for _, cc := range c.Constraints {
				if cc.Kind == ast.ReferencesConstraint && cc.Refs != nil {
					recordTable(report, seen, cc.Refs.Table)
				}
			}
		}
		for _, tc := range s.Constraints {
			if tc.Kind == ast.ForeignKeyConstraint && tc.Refs != nil {
				recordTable(report, seen, tc.Refs.Table)
			}
		}
	case *ast.CreateViewStmt:
		recordTable(report, seen, s.Name)
		analyzeSelect(s.Query, idx, report, seen)
	case *ast.DropTableStmt:
		recordTable(report, seen, s.Name)
	case *ast.DropViewStmt:
		recordTable(report, seen, s.Name)
	}
}

func analyzeSelect(s *ast.SelectStmt, idx int, report *AnalysisReport, seen map[string]bool) {
	if s == nil {
		return
	}
	for _, c := range s.Columns {
		if c.Star {
			addFinding(report, SeverityWarning, "SELECT_STAR", "Query uses SELECT *; this can read unnecessary columns and break clients if the schema changes.", "Select the explicit columns the caller needs.", idx)
			break
		}
	}
	for _, tr := range s.From {
		analyzeTableRef(tr, idx, report, seen)
	}
	if s.Where != nil {
		analyzeExpr(s.Where, idx, report)
	}
	for op := s.SetOp; op != nil; op = op.Right.SetOp {
		if op.Op == ast.Union && !op.All {
			addFinding(report, SeverityInfo, "UNION_DISTINCT_COST", "UNION performs duplicate elimination, which can add sort overhead on large inputs.", "Use UNION ALL when duplicate removal is not required.", idx)
		}
		analyzeSelect(op.Right, idx, report, seen)
		if op.Right.SetOp != nil {
			break
		}
	}
}

func analyzeTableRef(tr ast.TableRef, idx int, report *AnalysisReport, seen map[string]bool) {
	switch t := tr.(type) {
	case *ast.SimpleTable:
		recordTable(report, seen, t.Name)
	case *ast.DerivedTable:
		analyzeSelect(t.Query, idx, report, seen)
	case *ast.JoinTable:
		if t.Kind == ast.CrossJoin {
			addFinding(report, SeverityWarning, "CROSS_JOIN", "CROSS JOIN can create a cartesian product and explode row counts.", "Use an INNER or LEFT JOIN with an explicit join predicate when cardinality matters.", idx)
		}
		analyzeTableRef(t.Left, idx, report, seen)
		analyzeTableRef(t.Right, idx, report, seen)
	}
}

func analyzeExpr(e ast.Expr, idx int, report *AnalysisReport) {
	switch x := e.(type) {
	case *ast.BinaryExpr:
		if x.Op == lexer.SymOr {
			addFinding(report, SeverityInfo, "OR_PREDICATE", "OR predicate can reduce index selectivity.", "Consider splitting into UNION ALL branches.", idx)
		}
		analyzeExpr(x.Left, idx, report)
		analyzeExpr(x.Right, idx, report)
	case *ast.UnaryExpr:
		analyzeExpr(x.Expr, idx, report)
	case *ast.LikeExpr:
		if lit, ok := x.Pattern.(*ast.Literal); ok && len(lit.Raw) >= 2 && lit.Raw[1] == '%' {
			addFinding(report, SeverityInfo, "LIKE_LEADING_WILDCARD", "LIKE pattern starts with a wildcard; index seeks are usually not possible.", "Anchor the pattern or use a dedicated text index.", idx)
		}
	case *ast.BetweenExpr:
		analyzeExpr(x.Expr, idx, report)
	case *ast.InExpr:
		analyzeExpr(x.Expr, idx, report)
	}
}

func recordTable(report *AnalysisReport, seen map[string]bool, name *ast.QualifiedName) {
	if name == nil {
		return
	}
	n := name.Name()
	if n == "" || seen[n] {
		return
	}
	seen[n] = true
	report.Tables = append(report.Tables, n)
}

func addFinding(report *AnalysisReport, sev FindingSeverity, code, problem, recommendation string, idx int) {
	report.Findings = append(report.Findings, AnalysisFinding{
		Severity:       sev,
		Code:           code,
		Problem:        problem,
		Recommendation: recommendation,
		StatementIndex: idx,
	})
}

func (r AnalysisReport) String() string {
	if !r.Valid {
		if len(r.Findings) == 0 {
			return "invalid SQL"
		}
		return fmt.Sprintf("invalid SQL: %s", r.Findings[0].Problem)
	}
	if len(r.Findings) == 0 {
		return fmt.Sprintf("valid SQL (%d statements), no findings", r.StatementCount)
	}
	return fmt.Sprintf("valid SQL (%d statements), %d finding(s)", r.StatementCount, len(r.Findings))
}
