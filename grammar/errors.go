package grammar

import "fmt"

// ParseErrorKind discriminates the CypherParsingError taxonomy spec section
// 6.3/7 names. Parsing stops at the first one raised: unlike validation
// errors these never accumulate.
type ParseErrorKind string

const (
	// Lexical/structural failures raised by the lexer or as a catch-all by
	// the parser when nothing more specific applies.
	KindNomParsingError     ParseErrorKind = "NomParsingError"
	KindUnexpectedEndOfInput ParseErrorKind = "UnexpectedEndOfInput"
	KindExpectedToken       ParseErrorKind = "ExpectedToken"
	KindInvalidSyntax       ParseErrorKind = "InvalidSyntax"

	// Clause-order failures. MissingRequiredClause and the "<clause>AfterReturn"
	// / ReturnBeforeOtherClauses kinds come from a pass over the fully parsed
	// clause list (see clauseorder.go); the kinds for a stray WHERE, ORDER BY,
	// SKIP, or LIMIT come from the parser itself (strayClauseError).
	KindMissingRequiredClause    ParseErrorKind = "MissingRequiredClause"
	KindInvalidClauseOrder       ParseErrorKind = "InvalidClauseOrder"
	KindWhereBeforeMatch         ParseErrorKind = "WhereBeforeMatch"
	KindReturnAfterReturn        ParseErrorKind = "ReturnAfterReturn"
	KindOrderByBeforeReturn      ParseErrorKind = "OrderByBeforeReturn"
	KindSkipBeforeReturn         ParseErrorKind = "SkipBeforeReturn"
	KindLimitBeforeReturn        ParseErrorKind = "LimitBeforeReturn"
	KindReturnBeforeOtherClauses ParseErrorKind = "ReturnBeforeOtherClauses"
	KindMatchAfterReturn         ParseErrorKind = "MatchAfterReturn"
	KindDeleteAfterReturn        ParseErrorKind = "DeleteAfterReturn"
	KindSetAfterReturn           ParseErrorKind = "SetAfterReturn"
	KindWhereAfterReturn         ParseErrorKind = "WhereAfterReturn"
	KindWithAfterReturn          ParseErrorKind = "WithAfterReturn"
	KindUnwindAfterReturn        ParseErrorKind = "UnwindAfterReturn"

	// ParsingUndefinedVariable is part of the taxonomy but is not raised by
	// this parser; undefined variables are reported by the semantic pass as
	// validator.KindUndefinedVariable.
	KindParsingUndefinedVariable ParseErrorKind = "ParsingUndefinedVariable"
)

// ParseError is raised by the lexer, parser, or clause-order check. Parsing
// is fail-fast: the first ParseError aborts the whole parse.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at line %d, column %d", e.Kind, e.Message, e.Line, e.Column)
}

func newParseError(kind ParseErrorKind, pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}
