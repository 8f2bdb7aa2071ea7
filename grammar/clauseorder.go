package grammar

// checkClauseOrder runs after a full parse and enforces the ordering rules
// that span more than one clause. Rules that are already structurally
// enforced by the grammar (WHERE, ORDER BY, SKIP, and LIMIT can only ever be
// parsed attached to a MATCH/WITH/RETURN clause, never as a clause of their
// own) never need a check here: the parser itself rejects a stray WHERE/
// ORDER BY/SKIP/LIMIT keyword where a clause is expected, via the more
// specific kinds in parser.go's strayClauseError.
//
// A query that opens with RETURN followed by another read clause (MATCH,
// WITH, or UNWIND) is ReturnBeforeOtherClauses, distinct from the general
// "<clause>AfterReturn" kinds below: it flags a query that never did
// anything before returning, rather than one that kept going after
// finishing its projection.
//
// CREATE and MERGE are permitted after RETURN: a second RETURN, or a MATCH,
// WITH, UNWIND, DELETE, or SET after RETURN, are not.
func checkClauseOrder(q *Query) error {
	if len(q.Clauses) == 0 {
		return newParseError(KindMissingRequiredClause, q.NodePos, "query has no clauses")
	}

	if _, ok := q.Clauses[0].(*ReturnClause); ok && len(q.Clauses) > 1 {
		switch q.Clauses[1].(type) {
		case *MatchClause, *WithClause, *UnwindClause:
			return newParseError(KindReturnBeforeOtherClauses, q.Clauses[1].Pos(),
				"a query cannot open with RETURN followed by another read clause")
		}
	}

	seenReturn := false
	for _, c := range q.Clauses {
		if seenReturn {
			switch c.(type) {
			case *CreateClause, *MergeClause:
				// allowed
			case *ReturnClause:
				return newParseError(KindReturnAfterReturn, c.Pos(), "a query may contain at most one RETURN clause")
			case *MatchClause:
				return newParseError(KindMatchAfterReturn, c.Pos(), "MATCH cannot follow RETURN")
			case *DeleteClause:
				return newParseError(KindDeleteAfterReturn, c.Pos(), "DELETE cannot follow RETURN")
			case *SetClause:
				return newParseError(KindSetAfterReturn, c.Pos(), "SET cannot follow RETURN")
			case *WithClause:
				return newParseError(KindWithAfterReturn, c.Pos(), "WITH cannot follow RETURN")
			case *UnwindClause:
				return newParseError(KindUnwindAfterReturn, c.Pos(), "UNWIND cannot follow RETURN")
			}
		}
		if _, ok := c.(*ReturnClause); ok {
			seenReturn = true
		}
	}
	return nil
}
