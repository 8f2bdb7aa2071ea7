package schema

import "fmt"

// Constraint describes a database constraint. It does not affect validation
// decisions; it is carried through Schema round-trips for callers that want
// to introspect it.
type Constraint struct {
	ID             int
	Name           string
	ConstraintType string
	EntityType     string // "NODE" or "RELATIONSHIP"
	LabelsOrTypes  []string
	Properties     []string
	OwnedIndex     *string
	PropertyType   *string
}

// ConstraintFromDict builds a Constraint from its dict form.
func ConstraintFromDict(d map[string]any) (Constraint, error) {
	id, ok := intField(d, "id")
	if !ok {
		return Constraint{}, fmt.Errorf("schema: constraint missing required key \"id\"")
	}
	name, err := requireString(d, "name", "constraint")
	if err != nil {
		return Constraint{}, err
	}
	constraintType, err := requireString(d, "constraint_type", "constraint")
	if err != nil {
		return Constraint{}, err
	}
	entityType, err := requireString(d, "entity_type", "constraint")
	if err != nil {
		return Constraint{}, err
	}
	labelsOrTypes, err := stringSlice(orEmpty(d["labels_or_types"]))
	if err != nil {
		return Constraint{}, fmt.Errorf("schema: constraint %q labels_or_types: %w", name, err)
	}
	properties, err := stringSlice(orEmpty(d["properties"]))
	if err != nil {
		return Constraint{}, fmt.Errorf("schema: constraint %q properties: %w", name, err)
	}

	c := Constraint{
		ID:             id,
		Name:           name,
		ConstraintType: constraintType,
		EntityType:     entityType,
		LabelsOrTypes:  labelsOrTypes,
		Properties:     properties,
	}
	if s, ok := stringField(d, "owned_index"); ok {
		c.OwnedIndex = &s
	}
	if s, ok := stringField(d, "property_type"); ok {
		c.PropertyType = &s
	}
	return c, nil
}

// ToDict renders a Constraint back to its dict form.
func (c Constraint) ToDict() map[string]any {
	d := map[string]any{
		"id":              c.ID,
		"name":            c.Name,
		"constraint_type": c.ConstraintType,
		"entity_type":     c.EntityType,
		"labels_or_types": anySlice(c.LabelsOrTypes),
		"properties":      anySlice(c.Properties),
	}
	if c.OwnedIndex != nil {
		d["owned_index"] = *c.OwnedIndex
	} else {
		d["owned_index"] = nil
	}
	if c.PropertyType != nil {
		d["property_type"] = *c.PropertyType
	} else {
		d["property_type"] = nil
	}
	return d
}

// Index describes a database index. Like Constraint, it is carried through
// round-trips without affecting validation.
type Index struct {
	Label             string
	Properties        []string
	Size              int
	IndexType         string
	ValuesSelectivity float64
	DistinctValues    int
}

// IndexFromDict builds an Index from its dict form.
func IndexFromDict(d map[string]any) (Index, error) {
	label, err := requireString(d, "label", "index")
	if err != nil {
		return Index{}, err
	}
	properties, err := stringSlice(orEmpty(d["properties"]))
	if err != nil {
		return Index{}, fmt.Errorf("schema: index %q properties: %w", label, err)
	}
	size, _ := intField(d, "size")
	indexType, _ := stringField(d, "index_type")
	selectivity, _ := floatField(d, "values_selectivity")
	distinct, _ := intField(d, "distinct_values")

	return Index{
		Label:             label,
		Properties:        properties,
		Size:              size,
		IndexType:         indexType,
		ValuesSelectivity: selectivity,
		DistinctValues:    distinct,
	}, nil
}

// ToDict renders an Index back to its dict form.
func (i Index) ToDict() map[string]any {
	return map[string]any{
		"label":              i.Label,
		"properties":         anySlice(i.Properties),
		"size":               i.Size,
		"index_type":         i.IndexType,
		"values_selectivity": i.ValuesSelectivity,
		"distinct_values":    i.DistinctValues,
	}
}

// Metadata carries descriptive constraint/index information through a Schema.
// It never affects a validation decision.
type Metadata struct {
	Constraints []Constraint
	Indexes     []Index
}

// MetadataFromDict accepts both the singular ("constraint"/"index") and
// plural ("constraints"/"indexes") spellings documented in spec section 6.1.
func MetadataFromDict(d map[string]any) (Metadata, error) {
	if d == nil {
		return Metadata{}, nil
	}

	constraintDicts, err := firstDictSlice(d, "constraints", "constraint")
	if err != nil {
		return Metadata{}, err
	}
	indexDicts, err := firstDictSlice(d, "indexes", "index")
	if err != nil {
		return Metadata{}, err
	}

	constraints := make([]Constraint, 0, len(constraintDicts))
	for _, cd := range constraintDicts {
		c, err := ConstraintFromDict(cd)
		if err != nil {
			return Metadata{}, err
		}
		constraints = append(constraints, c)
	}

	indexes := make([]Index, 0, len(indexDicts))
	for _, id := range indexDicts {
		idx, err := IndexFromDict(id)
		if err != nil {
			return Metadata{}, err
		}
		indexes = append(indexes, idx)
	}

	return Metadata{Constraints: constraints, Indexes: indexes}, nil
}

// firstDictSlice tries each key in order and returns the first one present.
func firstDictSlice(d map[string]any, keys ...string) ([]map[string]any, error) {
	for _, k := range keys {
		if _, ok := d[k]; ok {
			return dictSlice(d, k)
		}
	}
	return nil, nil
}

// ToDict renders Metadata using the plural key spelling, matching the
// original implementation's canonicalization (see DESIGN.md).
func (m Metadata) ToDict() map[string]any {
	constraints := make([]any, len(m.Constraints))
	for i, c := range m.Constraints {
		constraints[i] = c.ToDict()
	}
	indexes := make([]any, len(m.Indexes))
	for i, idx := range m.Indexes {
		indexes[i] = idx.ToDict()
	}
	return map[string]any{
		"constraints": constraints,
		"indexes":     indexes,
	}
}

func orEmpty(v any) any {
	if v == nil {
		return []any{}
	}
	return v
}
