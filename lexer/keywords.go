package lexer

// The keyword table maps lowercase SQL-92 keywords to their symbols.
// Lookup is two-level: first by length bucket, then a linear scan of the
// (short) bucket. The lexer lowercases the candidate into a fixed-size
// scratch buffer held in the Lexer before lookup, so recognition performs
// zero heap allocations.

type kwEntry struct {
	word string
	sym  Symbol
}

var keywordsByLen [24][]kwEntry

func init() {
	words := []kwEntry{
		{"all", SymAll},
		{"and", SymAnd},
		{"any", SymAny},
		{"as", SymAs},
		{"asc", SymAsc},
		{"authorization", SymAuthorization},
		{"avg", SymAvg},
		{"between", SymBetween},
		{"bit", SymBit},
		{"by", SymBy},
		{"cascade", SymCascade},
		{"case", SymCase},
		{"cast", SymCast},
		{"char", SymChar},
		{"character", SymCharacter},
		{"check", SymCheck},
		{"coalesce", SymCoalesce},
		{"collate", SymCollate},
		{"column", SymColumn},
		{"commit", SymCommit},
		{"constraint", SymConstraint},
		{"count", SymCount},
		{"create", SymCreate},
		{"cross", SymCross},
		{"current_date", SymCurrentDate},
		{"current_time", SymCurrentTime},
		{"current_timestamp", SymCurrentTimestamp},
		{"current_user", SymCurrentUser},
		{"date", SymDate},
		{"day", SymDay},
		{"dec", SymDec},
		{"decimal", SymDecimal},
		{"default", SymDefault},
		{"delete", SymDelete},
		{"desc", SymDesc},
		{"distinct", SymDistinct},
		{"double", SymDouble},
		{"drop", SymDrop},
		{"else", SymElse},
		{"end", SymEnd},
		{"escape", SymEscape},
		{"except", SymExcept},
		{"exists", SymExists},
		{"float", SymFloat},
		{"foreign", SymForeign},
		{"from", SymFrom},
		{"full", SymFull},
		{"global", SymGlobal},
		{"grant", SymGrant},
		{"group", SymGroup},
		{"having", SymHaving},
		{"hour", SymHour},
		{"in", SymIn},
		{"inner", SymInner},
		{"insert", SymInsert},
		{"int", SymInt},
		{"integer", SymInteger},
		{"intersect", SymIntersect},
		{"interval", SymInterval},
		{"into", SymInto},
		{"is", SymIs},
		{"join", SymJoin},
		{"key", SymKey},
		{"left", SymLeft},
		{"like", SymLike},
		{"local", SymLocal},
		{"match", SymMatch},
		{"max", SymMax},
		{"min", SymMin},
		{"minute", SymMinute},
		{"month", SymMonth},
		{"national", SymNational},
		{"natural", SymNatural},
		{"nchar", SymNChar},
		{"not", SymNot},
		{"null", SymNull},
		{"nullif", SymNullIf},
		{"numeric", SymNumeric},
		{"on", SymOn},
		{"option", SymOption},
		{"or", SymOr},
		{"order", SymOrder},
		{"outer", SymOuter},
		{"partial", SymPartial},
		{"precision", SymPrecision},
		{"preserve", SymPreserve},
		{"primary", SymPrimary},
		{"privileges", SymPrivileges},
		{"public", SymPublic},
		{"real", SymReal},
		{"references", SymReferences},
		{"restrict", SymRestrict},
		{"right", SymRight},
		{"rows", SymRows},
		{"schema", SymSchema},
		{"second", SymSecond},
		{"select", SymSelect},
		{"session_user", SymSessionUser},
		{"set", SymSet},
		{"smallint", SymSmallInt},
		{"some", SymSome},
		{"sum", SymSum},
		{"system_user", SymSystemUser},
		{"table", SymTable},
		{"temporary", SymTemporary},
		{"then", SymThen},
		{"time", SymTime},
		{"timestamp", SymTimestamp},
		{"to", SymTo},
		{"union", SymUnion},
		{"unique", SymUnique},
		{"update", SymUpdate},
		{"user", SymUser},
		{"using", SymUsing},
		{"values", SymValues},
		{"varbit", SymVarBit},
		{"varchar", SymVarChar},
		{"varying", SymVarying},
		{"view", SymView},
		{"when", SymWhen},
		{"where", SymWhere},
		{"with", SymWith},
		{"work", SymWork},
		{"year", SymYear},
		{"zone", SymZone},
	}
	for _, e := range words {
		l := len(e.word)
		if l < len(keywordsByLen) {
			keywordsByLen[l] = append(keywordsByLen[l], e)
		}
	}
}

// lookupKeyword returns the symbol for a keyword, or SymIdentifier when the
// candidate is not a keyword. val must already be lowercase.
func lookupKeyword(val []byte) Symbol {
	l := len(val)
	if l == 0 || l >= len(keywordsByLen) {
		return SymIdentifier
	}
	bucket := keywordsByLen[l]
	for i := range bucket {
		if bytesEqualString(val, bucket[i].word) {
			return bucket[i].sym
		}
	}
	return SymIdentifier
}

func bytesEqualString(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		if b[i] != s[i] {
			return false
		}
	}
	return true
}
