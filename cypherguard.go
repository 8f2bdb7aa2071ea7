// Package cypherguard is the single embedding surface for the rest of this
// module: a host application (a language binding, a CLI, a notebook) talks
// to the validator exclusively through the functions in this file. Nothing
// here does I/O or logging — that is the embedder's job, as spec.md's
// external-collaborators list makes explicit.
package cypherguard

import (
	"github.com/neo4j-field/cypher-guard/grammar"
	"github.com/neo4j-field/cypher-guard/schema"
	"github.com/neo4j-field/cypher-guard/validator"
)

// ValidationError is the semantic-error type validate returns. It is a
// re-export of validator.ValidationError so embedders never need to import
// the validator package directly.
type ValidationError = validator.ValidationError

// ParseError is the syntax-error type check_syntax and validate return on a
// malformed query. It is a re-export of grammar.ParseError.
type ParseError = grammar.ParseError

// Validate parses query and checks it against sch. It never returns an
// error for a semantic problem — every one found is collected into the
// returned slice, which is empty (never nil) for a query with no issues.
// A syntax problem instead short-circuits the whole call: the returned
// slice is nil and err is a *ParseError.
func Validate(query string, sch *schema.Schema) ([]ValidationError, error) {
	return validator.Validate(query, sch)
}

// CheckSyntax reports whether query parses, returning a *ParseError
// describing the first problem found if it does not.
func CheckSyntax(query string) (bool, error) {
	if _, err := grammar.Parse(query); err != nil {
		return false, err
	}
	return true, nil
}

// HasParserErrors is CheckSyntax with the error discarded, for callers that
// only need a yes/no answer and never want a raised error.
func HasParserErrors(query string) bool {
	ok, _ := CheckSyntax(query)
	return !ok
}

// IsRead reports whether query contains no write clause. A query that fails
// to parse is neither a read nor a write and reports false.
func IsRead(query string) bool {
	q, err := grammar.Parse(query)
	if err != nil {
		return false
	}
	return !containsWriteClause(q)
}

// IsWrite reports whether query contains a CREATE, MERGE, SET, or DELETE
// clause. A query that fails to parse reports false.
func IsWrite(query string) bool {
	q, err := grammar.Parse(query)
	if err != nil {
		return false
	}
	return containsWriteClause(q)
}

func containsWriteClause(q *grammar.Query) bool {
	for _, c := range q.Clauses {
		switch c.(type) {
		case *grammar.CreateClause, *grammar.MergeClause, *grammar.SetClause, *grammar.DeleteClause:
			return true
		}
	}
	return false
}
