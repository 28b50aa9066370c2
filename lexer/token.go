// Package lexer provides a streaming, zero-allocation lexer for ANSI SQL-92.
// It classifies source bytes into tokens by trying a fixed priority order of
// sub-tokenizers: block comment, punctuator, literal, keyword, identifier.
// All token lexemes are sub-slices of the caller's input buffer.
package lexer

// Kind is the coarse classification of a token.
type Kind uint8

const (
	KindKeyword Kind = iota
	KindIdentifier
	KindLiteral
	KindPunctuator
	KindComment
	KindEOS
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "keyword"
	case KindIdentifier:
		return "identifier"
	case KindLiteral:
		return "literal"
	case KindPunctuator:
		return "punctuator"
	case KindComment:
		return "comment"
	case KindEOS:
		return "eos"
	default:
		return "error"
	}
}

// Symbol is the fine-grained tag of a token: a specific keyword, a punctuator,
// a literal subkind, or a structural marker.
type Symbol uint16

const (
	// Structural markers
	SymError Symbol = iota
	SymEOS
	SymComment
	SymIdentifier

	// Punctuators
	SymSemicolon // ;
	SymComma     // ,
	SymLParen    // (
	SymRParen    // )
	SymPeriod    // .
	SymAsterisk  // *
	SymPlus      // +
	SymMinus     // -
	SymSolidus   // /
	SymEqual     // =
	SymNotEqual  // <>
	SymLT        // <
	SymGT        // >
	SymLTE       // <=
	SymGTE       // >=
	SymConcat    // ||
	SymQuestion  // ?

	// Literal subkinds
	SymLitUnsignedInteger
	SymLitSignedInteger
	SymLitUnsignedNumeric
	SymLitSignedNumeric
	SymLitApproxNumeric
	SymLitCharString
	SymLitNationalString
	SymLitBitString
	SymLitHexString

	// Keywords
	kwStart // marker
	SymAll
	SymAnd
	SymAny
	SymAs
	SymAsc
	SymAuthorization
	SymAvg
	SymBetween
	SymBit
	SymBy
	SymCascade
	SymCase
	SymCast
	SymChar
	SymCharacter
	SymCheck
	SymCoalesce
	SymCollate
	SymColumn
	SymCommit
	SymConstraint
	SymCount
	SymCreate
	SymCross
	SymCurrentDate
	SymCurrentTime
	SymCurrentTimestamp
	SymCurrentUser
	SymDate
	SymDay
	SymDec
	SymDecimal
	SymDefault
	SymDelete
	SymDesc
	SymDistinct
	SymDouble
	SymDrop
	SymElse
	SymEnd
	SymEscape
	SymExcept
	SymExists
	SymFloat
	SymForeign
	SymFrom
	SymFull
	SymGlobal
	SymGrant
	SymGroup
	SymHaving
	SymHour
	SymIn
	SymInner
	SymInsert
	SymInt
	SymInteger
	SymIntersect
	SymInterval
	SymInto
	SymIs
	SymJoin
	SymKey
	SymLeft
	SymLike
	SymLocal
	SymMatch
	SymMax
	SymMin
	SymMinute
	SymMonth
	SymNational
	SymNatural
	SymNChar
	SymNot
	SymNull
	SymNullIf
	SymNumeric
	SymOn
	SymOption
	SymOr
	SymOrder
	SymOuter
	SymPartial
	SymPrecision
	SymPreserve
	SymPrimary
	SymPrivileges
	SymPublic
	SymReal
	SymReferences
	SymRestrict
	SymRight
	SymRows
	SymSchema
	SymSecond
	SymSelect
	SymSessionUser
	SymSet
	SymSmallInt
	SymSome
	SymSum
	SymSystemUser
	SymTable
	SymTemporary
	SymThen
	SymTime
	SymTimestamp
	SymTo
	SymUnion
	SymUnique
	SymUpdate
	SymUser
	SymUsing
	SymValues
	SymVarBit
	SymVarChar
	SymVarying
	SymView
	SymWhen
	SymWhere
	SymWith
	SymWork
	SymYear
	SymZone
	kwEnd // marker
)

// IsKeyword reports whether s tags a SQL keyword.
func (s Symbol) IsKeyword() bool { return s > kwStart && s < kwEnd }

// IsLiteral reports whether s tags a literal subkind.
func (s Symbol) IsLiteral() bool {
	return s >= SymLitUnsignedInteger && s <= SymLitHexString
}

// String returns the human-readable symbol name used in diagnostics,
// e.g. "CREATE", "RPAREN", "<identifier>".
func (s Symbol) String() string {
	if int(s) < len(symbolNames) {
		if n := symbolNames[s]; n != "" {
			return n
		}
	}
	return "UNKNOWN"
}

// symbolNames is the process-wide read-only symbol name table.
var symbolNames = [...]string{
	SymError:      "ERROR",
	SymEOS:        "EOS",
	SymComment:    "COMMENT",
	SymIdentifier: "<identifier>",

	SymSemicolon: "SEMICOLON",
	SymComma:     "COMMA",
	SymLParen:    "LPAREN",
	SymRParen:    "RPAREN",
	SymPeriod:    "PERIOD",
	SymAsterisk:  "ASTERISK",
	SymPlus:      "PLUS",
	SymMinus:     "MINUS",
	SymSolidus:   "SOLIDUS",
	SymEqual:     "EQUAL",
	SymNotEqual:  "NOT_EQUAL",
	SymLT:        "LESS_THAN",
	SymGT:        "GREATER_THAN",
	SymLTE:       "LESS_THAN_OR_EQUAL",
	SymGTE:       "GREATER_THAN_OR_EQUAL",
	SymConcat:    "CONCATENATION",
	SymQuestion:  "QUESTION_MARK",

	SymLitUnsignedInteger: "<unsigned integer literal>",
	SymLitSignedInteger:   "<signed integer literal>",
	SymLitUnsignedNumeric: "<unsigned numeric literal>",
	SymLitSignedNumeric:   "<signed numeric literal>",
	SymLitApproxNumeric:   "<approximate numeric literal>",
	SymLitCharString:      "<character string literal>",
	SymLitNationalString:  "<national character string literal>",
	SymLitBitString:       "<bit string literal>",
	SymLitHexString:       "<hex string literal>",

	SymAll:              "ALL",
	SymAnd:              "AND",
	SymAny:              "ANY",
	SymAs:               "AS",
	SymAsc:              "ASC",
	SymAuthorization:    "AUTHORIZATION",
	SymAvg:              "AVG",
	SymBetween:          "BETWEEN",
	SymBit:              "BIT",
	SymBy:               "BY",
	SymCascade:          "CASCADE",
	SymCase:             "CASE",
	SymCast:             "CAST",
	SymChar:             "CHAR",
	SymCharacter:        "CHARACTER",
	SymCheck:            "CHECK",
	SymCoalesce:         "COALESCE",
	SymCollate:          "COLLATE",
	SymColumn:           "COLUMN",
	SymCommit:           "COMMIT",
	SymConstraint:       "CONSTRAINT",
	SymCount:            "COUNT",
	SymCreate:           "CREATE",
	SymCross:            "CROSS",
	SymCurrentDate:      "CURRENT_DATE",
	SymCurrentTime:      "CURRENT_TIME",
	SymCurrentTimestamp: "CURRENT_TIMESTAMP",
	SymCurrentUser:      "CURRENT_USER",
	SymDate:             "DATE",
	SymDay:              "DAY",
	SymDec:              "DEC",
	SymDecimal:          "DECIMAL",
	SymDefault:          "DEFAULT",
	SymDelete:           "DELETE",
	SymDesc:             "DESC",
	SymDistinct:         "DISTINCT",
	SymDouble:           "DOUBLE",
	SymDrop:             "DROP",
	SymElse:             "ELSE",
	SymEnd:              "END",
	SymEscape:           "ESCAPE",
	SymExcept:           "EXCEPT",
	SymExists:           "EXISTS",
	SymFloat:            "FLOAT",
	SymForeign:          "FOREIGN",
	SymFrom:             "FROM",
	SymFull:             "FULL",
	SymGlobal:           "GLOBAL",
	SymGrant:            "GRANT",
	SymGroup:            "GROUP",
	SymHaving:           "HAVING",
	SymHour:             "HOUR",
	SymIn:               "IN",
	SymInner:            "INNER",
	SymInsert:           "INSERT",
	SymInt:              "INT",
	SymInteger:          "INTEGER",
	SymIntersect:        "INTERSECT",
	SymInterval:         "INTERVAL",
	SymInto:             "INTO",
	SymIs:               "IS",
	SymJoin:             "JOIN",
	SymKey:              "KEY",
	SymLeft:             "LEFT",
	SymLike:             "LIKE",
	SymLocal:            "LOCAL",
	SymMatch:            "MATCH",
	SymMax:              "MAX",
	SymMin:              "MIN",
	SymMinute:           "MINUTE",
	SymMonth:            "MONTH",
	SymNational:         "NATIONAL",
	SymNatural:          "NATURAL",
	SymNChar:            "NCHAR",
	SymNot:              "NOT",
	SymNull:             "NULL",
	SymNullIf:           "NULLIF",
	SymNumeric:          "NUMERIC",
	SymOn:               "ON",
	SymOption:           "OPTION",
	SymOr:               "OR",
	SymOrder:            "ORDER",
	SymOuter:            "OUTER",
	SymPartial:          "PARTIAL",
	SymPrecision:        "PRECISION",
	SymPreserve:         "PRESERVE",
	SymPrimary:          "PRIMARY",
	SymPrivileges:       "PRIVILEGES",
	SymPublic:           "PUBLIC",
	SymReal:             "REAL",
	SymReferences:       "REFERENCES",
	SymRestrict:         "RESTRICT",
	SymRight:            "RIGHT",
	SymRows:             "ROWS",
	SymSchema:           "SCHEMA",
	SymSecond:           "SECOND",
	SymSelect:           "SELECT",
	SymSessionUser:      "SESSION_USER",
	SymSet:              "SET",
	SymSmallInt:         "SMALLINT",
	SymSome:             "SOME",
	SymSum:              "SUM",
	SymSystemUser:       "SYSTEM_USER",
	SymTable:            "TABLE",
	SymTemporary:        "TEMPORARY",
	SymThen:             "THEN",
	SymTime:             "TIME",
	SymTimestamp:        "TIMESTAMP",
	SymTo:               "TO",
	SymUnion:            "UNION",
	SymUnique:           "UNIQUE",
	SymUpdate:           "UPDATE",
	SymUser:             "USER",
	SymUsing:            "USING",
	SymValues:           "VALUES",
	SymVarBit:           "VARBIT",
	SymVarChar:          "VARCHAR",
	SymVarying:          "VARYING",
	SymView:             "VIEW",
	SymWhen:             "WHEN",
	SymWhere:            "WHERE",
	SymWith:             "WITH",
	SymWork:             "WORK",
	SymYear:             "YEAR",
	SymZone:             "ZONE",
}

// Token is a single lexed SQL token. Raw is the exact lexeme bytes, borrowed
// from the source buffer; it is valid for as long as the buffer is.
type Token struct {
	Raw    []byte
	Kind   Kind
	Symbol Symbol
	// Pos is the byte offset of the lexeme's first character.
	Pos int32
}

// End returns the byte offset one past the lexeme's last character.
func (t Token) End() int32 { return t.Pos + int32(len(t.Raw)) }

// String renders the token for diagnostics: the symbol name plus the lexeme
// for identifiers and literals.
func (t Token) String() string {
	switch t.Kind {
	case KindIdentifier, KindLiteral:
		return t.Symbol.String() + " '" + string(t.Raw) + "'"
	default:
		return t.Symbol.String()
	}
}
