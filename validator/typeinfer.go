package validator

import (
	"strings"

	"github.com/neo4j-field/cypher-guard/grammar"
	"github.com/neo4j-field/cypher-guard/schema"
)

// inferLiteralType returns the schema.PropertyType a literal expression
// statically has, and false if expr is not a literal (e.g. a variable,
// function call, or parameter) that this pass can reason about at all.
// Parameters are deliberately excluded: their runtime value is unknown
// until query execution, so no property-type check is ever raised against
// one.
func inferLiteralType(expr grammar.Expression) (schema.PropertyType, bool) {
	lit, ok := expr.(*grammar.LiteralExpr)
	if !ok {
		return "", false
	}
	switch lit.Kind {
	case grammar.LitString:
		return schema.TypeString, true
	case grammar.LitInt:
		return schema.TypeInteger, true
	case grammar.LitFloat:
		return schema.TypeFloat, true
	case grammar.LitBool:
		return schema.TypeBoolean, true
	default:
		return "", false
	}
}

// typeCompatible reports whether a literal of kind got may be assigned to a
// property declared as want. INTEGER widens to FLOAT (an integer literal is
// a valid value for a FLOAT-typed property); no other implicit conversion is
// permitted.
func typeCompatible(want, got schema.PropertyType) bool {
	if want == got {
		return true
	}
	if want == schema.TypeFloat && got == schema.TypeInteger {
		return true
	}
	return false
}

// comparisonOperators are the operators whose operands are meaningful to
// compare against a property's declared type. Arithmetic and boolean
// operators never compare a property to a literal in a way §4.4 constrains.
var comparisonOperators = map[string]bool{
	"=": true, "<>": true, "<": true, ">": true, "<=": true, ">=": true,
}

// inferOperandType returns the schema.PropertyType an operand to a
// comparison statically has, and false when the operand's value cannot be
// reasoned about at validation time (a variable, parameter, NULL, or any
// function call other than datetime()/point()). Parameters and NULL are
// deliberately excluded from the result: the former's value is unknown until
// execution, and NULL compares as unequal to every type without it being a
// type error.
func inferOperandType(expr grammar.Expression) (schema.PropertyType, bool) {
	switch e := expr.(type) {
	case *grammar.LiteralExpr:
		if e.Kind == grammar.LitNull {
			return "", false
		}
		return inferLiteralType(e)
	case *grammar.ParameterExpr:
		return "", false
	case *grammar.FunctionCallExpr:
		switch strings.ToLower(e.Name) {
		case "datetime":
			return schema.TypeDateTime, true
		case "point":
			return schema.TypePoint, true
		default:
			return "", false
		}
	default:
		return "", false
	}
}
