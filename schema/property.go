// Package schema is the data model for the database schema a query is
// validated against: node/relationship property shapes, the permitted
// (start, rel type, end) triples, and descriptive metadata.
//
// Schema is pure data. Nothing in this package touches the filesystem,
// a network socket, or a log: construction (FromDict / New) either succeeds
// with an immutable, read-only-safe Schema, or fails with a descriptive
// error. Once built, a *Schema is safe to share across goroutines.
package schema

import "fmt"

// PropertyType is the closed set of scalar/collection types a Property may
// declare.
type PropertyType string

const (
	TypeString   PropertyType = "STRING"
	TypeInteger  PropertyType = "INTEGER"
	TypeFloat    PropertyType = "FLOAT"
	TypeBoolean  PropertyType = "BOOLEAN"
	TypePoint    PropertyType = "POINT"
	TypeDateTime PropertyType = "DATE_TIME"
	TypeList     PropertyType = "LIST"
)

// ParsePropertyType canonicalizes a neo4j_type spelling, accepting the
// DATETIME alias for DATE_TIME.
func ParsePropertyType(s string) (PropertyType, error) {
	switch s {
	case "STRING":
		return TypeString, nil
	case "INTEGER":
		return TypeInteger, nil
	case "FLOAT":
		return TypeFloat, nil
	case "BOOLEAN":
		return TypeBoolean, nil
	case "POINT":
		return TypePoint, nil
	case "DATE_TIME", "DATETIME":
		return TypeDateTime, nil
	case "LIST":
		return TypeList, nil
	default:
		return "", fmt.Errorf("schema: unknown neo4j_type %q", s)
	}
}

// Property describes a single property on a node label or relationship type.
type Property struct {
	Name               string
	Neo4jType          PropertyType
	EnumValues         []string
	MinValue           *float64
	MaxValue           *float64
	DistinctValueCount *int
	ExampleValues      []string
}

// String renders a Property the way the original implementation's
// __str__ does, e.g. "name: STRING".
func (p Property) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Neo4jType)
}

// PropertyFromDict builds a Property from a nested-dictionary representation.
// Only "name" and "neo4j_type" are required; all other keys are optional and
// default to their zero value when absent.
func PropertyFromDict(d map[string]any) (Property, error) {
	name, ok := stringField(d, "name")
	if !ok || name == "" {
		return Property{}, fmt.Errorf("schema: property missing non-empty \"name\"")
	}

	typeStr, ok := stringField(d, "neo4j_type")
	if !ok {
		return Property{}, fmt.Errorf("schema: property %q missing \"neo4j_type\"", name)
	}
	neo4jType, err := ParsePropertyType(typeStr)
	if err != nil {
		return Property{}, fmt.Errorf("schema: property %q: %w", name, err)
	}

	prop := Property{Name: name, Neo4jType: neo4jType}

	if raw, ok := d["enum_values"]; ok && raw != nil {
		vals, err := stringSlice(raw)
		if err != nil {
			return Property{}, fmt.Errorf("schema: property %q enum_values: %w", name, err)
		}
		prop.EnumValues = vals
	}
	if v, ok := floatField(d, "min_value"); ok {
		prop.MinValue = &v
	}
	if v, ok := floatField(d, "max_value"); ok {
		prop.MaxValue = &v
	}
	if v, ok := intField(d, "distinct_value_count"); ok {
		prop.DistinctValueCount = &v
	}
	if raw, ok := d["example_values"]; ok && raw != nil {
		vals, err := stringSlice(raw)
		if err != nil {
			return Property{}, fmt.Errorf("schema: property %q example_values: %w", name, err)
		}
		prop.ExampleValues = vals
	}

	return prop, nil
}

// ToDict renders a Property back to its nested-dictionary form, omitting
// fields that were never set.
func (p Property) ToDict() map[string]any {
	d := map[string]any{
		"name":       p.Name,
		"neo4j_type": string(p.Neo4jType),
	}
	if p.EnumValues != nil {
		d["enum_values"] = anySlice(p.EnumValues)
	}
	if p.MinValue != nil {
		d["min_value"] = *p.MinValue
	}
	if p.MaxValue != nil {
		d["max_value"] = *p.MaxValue
	}
	if p.DistinctValueCount != nil {
		d["distinct_value_count"] = *p.DistinctValueCount
	}
	if p.ExampleValues != nil {
		d["example_values"] = anySlice(p.ExampleValues)
	}
	return d
}
