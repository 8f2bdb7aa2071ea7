package validator

import (
	"github.com/neo4j-field/cypher-guard/grammar"
	"github.com/neo4j-field/cypher-guard/schema"
)

type validator struct {
	sch  *schema.Schema
	errs []ValidationError
}

// Validate parses query and checks it against sch. A syntax problem is
// returned as the error (a *grammar.ParseError); semantic problems never
// abort the pass and are all returned together in the []ValidationError
// slice, which is empty (not nil-checked by callers) when the query is
// valid against sch.
func Validate(query string, sch *schema.Schema) ([]ValidationError, error) {
	q, err := grammar.Parse(query)
	if err != nil {
		return nil, err
	}
	v := &validator{sch: sch}
	sc := newScope()
	for _, c := range q.Clauses {
		sc = v.visitClause(c, sc)
	}
	if v.errs == nil {
		return []ValidationError{}, nil
	}
	return v.errs, nil
}

func (v *validator) visitClause(c grammar.Clause, sc *scope) *scope {
	switch cl := c.(type) {
	case *grammar.MatchClause:
		sc = v.bindPattern(cl.Pattern, sc)
		if cl.Where != nil {
			v.checkExpr(cl.Where, sc)
		}
		return sc
	case *grammar.CreateClause:
		return v.bindPattern(cl.Pattern, sc)
	case *grammar.MergeClause:
		sc = v.bindChain(cl.Pattern, sc)
		for _, action := range cl.MergeActions {
			v.checkSetClause(action.Set, sc)
		}
		return sc
	case *grammar.WithClause:
		return v.visitWith(cl, sc)
	case *grammar.UnwindClause:
		v.checkExpr(cl.Expr, sc)
		return sc.withBinding(cl.Alias, binding{kind: bindGeneric})
	case *grammar.SetClause:
		v.checkSetClause(cl, sc)
		return sc
	case *grammar.DeleteClause:
		for _, t := range cl.Targets {
			v.checkExpr(t, sc)
		}
		return sc
	case *grammar.ReturnClause:
		v.visitReturn(cl, sc)
		return sc
	default:
		return sc
	}
}

// ----------------------------------------------------------------------------
// Pattern binding
// ----------------------------------------------------------------------------

func (v *validator) bindPattern(pattern *grammar.Pattern, sc *scope) *scope {
	if pattern == nil {
		return sc
	}
	for _, chain := range pattern.Elements {
		sc = v.bindChain(chain, sc)
	}
	return sc
}

func (v *validator) bindChain(chain *grammar.PatternChain, sc *scope) *scope {
	if chain == nil {
		return sc
	}
	fromLabels := v.checkNode(chain.Head, sc)
	if chain.Head.Var != "" {
		sc = sc.withBinding(chain.Head.Var, binding{kind: bindNode, labels: fromLabels})
	}

	for _, link := range chain.Links {
		switch {
		case link.Rel != nil:
			relLabels := v.checkRel(link.Rel, sc)
			if link.Rel.Var != "" {
				sc = sc.withBinding(link.Rel.Var, binding{kind: bindRelationship, labels: relLabels})
			}
			toLabels := v.checkNode(link.Node, sc)
			v.checkDirection(link.Rel, fromLabels, toLabels)
			if link.Node.Var != "" {
				sc = sc.withBinding(link.Node.Var, binding{kind: bindNode, labels: toLabels})
			}
			fromLabels = toLabels
		case link.QPP != nil:
			innerSc := v.bindChain(link.QPP.Inner, sc)
			if link.QPP.Where != nil {
				v.checkExpr(link.QPP.Where, innerSc)
			}
			toLabels := v.checkNode(link.Node, sc)
			if link.Node.Var != "" {
				sc = sc.withBinding(link.Node.Var, binding{kind: bindNode, labels: toLabels})
			}
			fromLabels = toLabels
		}
	}
	return sc
}

func (v *validator) checkNode(node *grammar.NodePattern, sc *scope) []string {
	if node == nil {
		return nil
	}
	var labels []string
	if node.Labels != nil {
		labels = node.Labels.Names()
		for _, l := range labels {
			if !v.sch.HasLabel(l) {
				v.errs = append(v.errs, newError(KindInvalidNodeLabel, node.Pos(), "unknown node label %q", l))
			}
		}
	} else if node.Var != "" {
		if b, ok := sc.lookup(node.Var); ok {
			labels = b.labels
		}
	}
	if labels == nil {
		// No declared label and no prior binding: check the variable
		// against every known label rather than skipping it outright.
		labels = v.sch.AllLabels()
	}

	v.checkPropertyMap(node.Properties, labels, true, sc)

	if node.Where != nil {
		innerSc := sc
		if node.Var != "" {
			innerSc = sc.withBinding(node.Var, binding{kind: bindNode, labels: labels})
		}
		v.checkExpr(node.Where, innerSc)
	}
	return labels
}

func (v *validator) checkRel(rel *grammar.RelPattern, sc *scope) []string {
	if rel == nil {
		return nil
	}
	labels := rel.RelTypes
	for _, rt := range labels {
		if !v.sch.HasRelType(rt) {
			v.errs = append(v.errs, newError(KindInvalidRelationshipType, rel.Pos(), "unknown relationship type %q", rt))
		}
	}
	if len(labels) == 0 && rel.Var != "" {
		if b, ok := sc.lookup(rel.Var); ok {
			labels = b.labels
		}
	}
	if len(labels) == 0 {
		// No declared type and no prior binding: check the variable
		// against every known relationship type rather than skipping it.
		labels = v.sch.AllRelTypes()
	}
	v.checkPropertyMap(rel.Properties, labels, false, sc)
	return labels
}

func (v *validator) checkPropertyMap(pm *grammar.PropertyMap, labels []string, isNode bool, sc *scope) {
	if pm == nil {
		return
	}
	for _, pair := range pm.Pairs {
		v.checkExpr(pair.Value, sc)
		if pm.Parameter != "" || len(labels) == 0 {
			continue
		}
		v.checkPropertyDeclared(pair.Key, labels, isNode, pair.NodePos)
		if propType, ok := v.propertyTypeAcrossLabels(pair.Key, labels, isNode); ok {
			if litType, ok := inferLiteralType(pair.Value); ok && !typeCompatible(propType, litType) {
				v.errs = append(v.errs, newError(KindInvalidPropertyType, pair.Value.Pos(),
					"property %q expects %s, got %s", pair.Key, propType, litType))
			}
		}
	}
}

func (v *validator) checkPropertyDeclared(name string, labels []string, isNode bool, pos grammar.Position) {
	for _, l := range labels {
		var ok bool
		if isNode {
			_, ok = v.sch.NodeProperty(l, name)
		} else {
			_, ok = v.sch.RelProperty(l, name)
		}
		if ok {
			return
		}
	}
	if isNode {
		v.errs = append(v.errs, newError(KindInvalidNodeProperty, pos, "property %q is not declared on any of %v", name, labels))
	} else {
		v.errs = append(v.errs, newError(KindInvalidRelationshipProperty, pos, "property %q is not declared on any of %v", name, labels))
	}
}

func (v *validator) propertyTypeAcrossLabels(name string, labels []string, isNode bool) (schema.PropertyType, bool) {
	for _, l := range labels {
		if isNode {
			if p, ok := v.sch.NodeProperty(l, name); ok {
				return p.Neo4jType, true
			}
		} else {
			if p, ok := v.sch.RelProperty(l, name); ok {
				return p.Neo4jType, true
			}
		}
	}
	return "", false
}

// checkDirection validates a relationship's declared type(s) against the
// permitted (start, type, end) triples, when both endpoints' labels are
// statically known. An undirected pattern ("-[...]-") is accepted if either
// orientation is permitted.
func (v *validator) checkDirection(rel *grammar.RelPattern, fromLabels, toLabels []string) {
	if len(rel.RelTypes) == 0 || len(fromLabels) == 0 || len(toLabels) == 0 {
		return
	}
	for _, rt := range rel.RelTypes {
		perms := v.sch.RelationshipsOfType(rt)
		if len(perms) == 0 {
			continue
		}
		ok := false
		for _, perm := range perms {
			switch rel.Direction {
			case grammar.DirRight:
				if labelsContain(fromLabels, perm.Start) && labelsContain(toLabels, perm.End) {
					ok = true
				}
			case grammar.DirLeft:
				if labelsContain(toLabels, perm.Start) && labelsContain(fromLabels, perm.End) {
					ok = true
				}
			default: // DirEither
				if (labelsContain(fromLabels, perm.Start) && labelsContain(toLabels, perm.End)) ||
					(labelsContain(toLabels, perm.Start) && labelsContain(fromLabels, perm.End)) {
					ok = true
				}
			}
			if ok {
				break
			}
		}
		if !ok {
			v.errs = append(v.errs, newError(KindInvalidRelationshipDirection, rel.Pos(),
				"relationship type %q does not connect %v to %v", rt, fromLabels, toLabels))
		}
	}
}

func labelsContain(labels []string, target string) bool {
	for _, l := range labels {
		if l == target {
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// SET / WITH / RETURN / expressions
// ----------------------------------------------------------------------------

func (v *validator) checkSetClause(sc2 *grammar.SetClause, sc *scope) {
	if sc2 == nil {
		return
	}
	for _, item := range sc2.Items {
		switch it := item.(type) {
		case *grammar.SetPropertyItem:
			v.checkExpr(it.Target, sc)
			v.checkExpr(it.Value, sc)
		case *grammar.SetVariableItem:
			if _, ok := sc.lookup(it.Var); !ok {
				v.errs = append(v.errs, newError(KindUndefinedVariable, it.Pos(), "undefined variable %q", it.Var))
			}
			v.checkExpr(it.Value, sc)
		case *grammar.SetLabelItem:
			if _, ok := sc.lookup(it.Var); !ok {
				v.errs = append(v.errs, newError(KindUndefinedVariable, it.Pos(), "undefined variable %q", it.Var))
			}
			for _, l := range it.Labels {
				if !v.sch.HasLabel(l) {
					v.errs = append(v.errs, newError(KindInvalidNodeLabel, it.Pos(), "unknown node label %q", l))
				}
			}
		}
	}
}

func (v *validator) visitWith(c *grammar.WithClause, sc *scope) *scope {
	if c.Star {
		v.checkOrderBy(c.OrderBy, sc)
		if c.Where != nil {
			v.checkExpr(c.Where, sc)
		}
		if c.Skip != nil {
			v.checkExpr(c.Skip, sc)
		}
		if c.Limit != nil {
			v.checkExpr(c.Limit, sc)
		}
		return sc
	}

	projected := map[string]binding{}
	for _, item := range c.Projections {
		v.checkExpr(item.Expr, sc)
		name := item.Alias
		if name == "" {
			if ve, ok := item.Expr.(*grammar.VarExpr); ok {
				name = ve.Name
			}
		}
		if name == "" {
			continue
		}
		projected[name] = inferProjectionBinding(item.Expr, sc)
	}

	next := sc.projectOnly(projected)
	if c.Where != nil {
		v.checkExpr(c.Where, next)
	}
	v.checkOrderBy(c.OrderBy, next)
	if c.Skip != nil {
		v.checkExpr(c.Skip, next)
	}
	if c.Limit != nil {
		v.checkExpr(c.Limit, next)
	}
	return next
}

func inferProjectionBinding(expr grammar.Expression, sc *scope) binding {
	if ve, ok := expr.(*grammar.VarExpr); ok {
		if b, ok := sc.lookup(ve.Name); ok {
			return b
		}
	}
	return binding{kind: bindGeneric}
}

func (v *validator) visitReturn(c *grammar.ReturnClause, sc *scope) {
	if c.Star {
		v.checkOrderBy(c.OrderBy, sc)
		return
	}
	for _, item := range c.Projections {
		v.checkExpr(item.Expr, sc)
	}
	v.checkOrderBy(c.OrderBy, sc)
	if c.Skip != nil {
		v.checkExpr(c.Skip, sc)
	}
	if c.Limit != nil {
		v.checkExpr(c.Limit, sc)
	}
}

func (v *validator) checkOrderBy(items []*grammar.OrderItem, sc *scope) {
	for _, it := range items {
		v.checkExpr(it.Expr, sc)
	}
}

// checkExpr walks an expression tree flagging undefined variables and
// invalid property accesses. A nil expression or a nil scope makes it a
// no-op.
func (v *validator) checkExpr(expr grammar.Expression, sc *scope) {
	if expr == nil || sc == nil {
		return
	}
	switch e := expr.(type) {
	case *grammar.VarExpr:
		if e.Name == "*" {
			return
		}
		if _, ok := sc.lookup(e.Name); !ok {
			v.errs = append(v.errs, newError(KindUndefinedVariable, e.Pos(), "undefined variable %q", e.Name))
		}
	case *grammar.ParameterExpr, *grammar.LiteralExpr:
		// nothing to check
	case *grammar.PropertyAccessExpr:
		v.checkPropertyAccess(e, sc)
	case *grammar.IndexExpr:
		v.checkExpr(e.Base, sc)
		v.checkExpr(e.Index, sc)
	case *grammar.ListExpr:
		for _, item := range e.Items {
			v.checkExpr(item, sc)
		}
	case *grammar.MapExpr:
		for _, pair := range e.Pairs {
			v.checkExpr(pair.Value, sc)
		}
	case *grammar.FunctionCallExpr:
		for _, arg := range e.Args {
			v.checkExpr(arg, sc)
		}
	case *grammar.BinaryExpr:
		v.checkExpr(e.Left, sc)
		v.checkExpr(e.Right, sc)
		v.checkComparisonTypes(e, sc)
	case *grammar.UnaryExpr:
		v.checkExpr(e.Operand, sc)
	case *grammar.InExpr:
		v.checkExpr(e.Left, sc)
		v.checkExpr(e.Right, sc)
	case *grammar.IsNullExpr:
		v.checkExpr(e.Expr, sc)
	case *grammar.CaseWhenExpr:
		if e.Input != nil {
			v.checkExpr(e.Input, sc)
		}
		for _, branch := range e.Whens {
			v.checkExpr(branch.When, sc)
			v.checkExpr(branch.Then, sc)
		}
		if e.Else != nil {
			v.checkExpr(e.Else, sc)
		}
	case *grammar.PatternExpr:
		v.bindChain(e.Pattern, sc)
	}
}

func (v *validator) checkPropertyAccess(e *grammar.PropertyAccessExpr, sc *scope) {
	v.checkExpr(e.Base, sc)
	ve, ok := e.Base.(*grammar.VarExpr)
	if !ok {
		return
	}
	b, ok := sc.lookup(ve.Name)
	if !ok || b.kind == bindGeneric || len(b.labels) == 0 {
		return
	}
	for _, l := range b.labels {
		var exists bool
		if b.kind == bindNode {
			_, exists = v.sch.NodeProperty(l, e.Key)
		} else {
			_, exists = v.sch.RelProperty(l, e.Key)
		}
		if exists {
			return
		}
	}
	v.errs = append(v.errs, newError(KindInvalidPropertyAccess, e.Pos(), "property %q is not declared on %v", e.Key, b.labels))
}

// checkComparisonTypes applies §4.4's type-compatibility rules to a
// PropertyAccess op Literal (or op parameter, op datetime()/point()) style
// comparison. Only the comparison operators carry a meaningful type check;
// arithmetic and boolean operators are left alone.
func (v *validator) checkComparisonTypes(e *grammar.BinaryExpr, sc *scope) {
	if !comparisonOperators[e.Op] {
		return
	}
	if pa, propType, ok := v.propertyAccessType(e.Left, sc); ok {
		if otherType, ok := inferOperandType(e.Right); ok && !typeCompatible(propType, otherType) {
			v.errs = append(v.errs, newError(KindInvalidPropertyType, e.Pos(),
				"property %q expects %s, got %s", pa.Key, propType, otherType))
		}
	}
	if pa, propType, ok := v.propertyAccessType(e.Right, sc); ok {
		if otherType, ok := inferOperandType(e.Left); ok && !typeCompatible(propType, otherType) {
			v.errs = append(v.errs, newError(KindInvalidPropertyType, e.Pos(),
				"property %q expects %s, got %s", pa.Key, propType, otherType))
		}
	}
}

// propertyAccessType resolves a property access to its declared type, when
// its base variable is bound with statically known labels and the property
// is declared on at least one of them.
func (v *validator) propertyAccessType(expr grammar.Expression, sc *scope) (*grammar.PropertyAccessExpr, schema.PropertyType, bool) {
	pa, ok := expr.(*grammar.PropertyAccessExpr)
	if !ok {
		return nil, "", false
	}
	ve, ok := pa.Base.(*grammar.VarExpr)
	if !ok {
		return nil, "", false
	}
	b, ok := sc.lookup(ve.Name)
	if !ok || b.kind == bindGeneric || len(b.labels) == 0 {
		return nil, "", false
	}
	propType, ok := v.propertyTypeAcrossLabels(pa.Key, b.labels, b.kind == bindNode)
	if !ok {
		return nil, "", false
	}
	return pa, propType, true
}
