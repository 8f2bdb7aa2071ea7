// Package validator runs the semantic pass: given a parsed query and a
// schema, it checks every label, relationship type, property access, and
// direction the query uses against what the schema declares, and flags
// variables used before they are bound. Unlike grammar.ParseError,
// ValidationError never aborts the pass: every issue in the query is
// collected and returned together.
package validator

import (
	"fmt"

	"github.com/neo4j-field/cypher-guard/grammar"
)

// ValidationErrorKind discriminates the semantic error taxonomy.
type ValidationErrorKind string

const (
	KindInvalidNodeLabel            ValidationErrorKind = "InvalidNodeLabel"
	KindInvalidRelationshipType     ValidationErrorKind = "InvalidRelationshipType"
	KindInvalidNodeProperty         ValidationErrorKind = "InvalidNodeProperty"
	KindInvalidRelationshipProperty ValidationErrorKind = "InvalidRelationshipProperty"
	KindInvalidPropertyAccess       ValidationErrorKind = "InvalidPropertyAccess"
	KindInvalidPropertyType         ValidationErrorKind = "InvalidPropertyType"
	KindInvalidRelationshipDirection ValidationErrorKind = "InvalidRelationshipDirection"
	KindUndefinedVariable           ValidationErrorKind = "UndefinedVariable"
)

// ValidationError is one semantic problem found in the query.
type ValidationError struct {
	Kind    ValidationErrorKind
	Message string
	Line    int
	Column  int
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s at line %d, column %d", e.Kind, e.Message, e.Line, e.Column)
}

func newError(kind ValidationErrorKind, pos grammar.Position, format string, args ...any) ValidationError {
	return ValidationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}
