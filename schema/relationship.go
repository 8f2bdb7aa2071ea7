package schema

import "fmt"

// RelationshipPattern is one permitted (start label, relationship type, end
// label) triple. Relationships are directed: start is always the source of
// the arrow.
type RelationshipPattern struct {
	Start   string
	End     string
	RelType string
}

// String renders a RelationshipPattern as a small Cypher fragment, e.g.
// "(:Person)-[:KNOWS]->(:Person)".
func (r RelationshipPattern) String() string {
	return fmt.Sprintf("(:%s)-[:%s]->(:%s)", r.Start, r.RelType, r.End)
}

// RelationshipPatternFromDict builds a RelationshipPattern from its dict form.
// All three keys are required.
func RelationshipPatternFromDict(d map[string]any) (RelationshipPattern, error) {
	start, err := requireString(d, "start", "relationship pattern")
	if err != nil {
		return RelationshipPattern{}, err
	}
	end, err := requireString(d, "end", "relationship pattern")
	if err != nil {
		return RelationshipPattern{}, err
	}
	relType, err := requireString(d, "rel_type", "relationship pattern")
	if err != nil {
		return RelationshipPattern{}, err
	}
	return RelationshipPattern{Start: start, End: end, RelType: relType}, nil
}

// ToDict renders a RelationshipPattern back to its dict form.
func (r RelationshipPattern) ToDict() map[string]any {
	return map[string]any{
		"start":    r.Start,
		"end":      r.End,
		"rel_type": r.RelType,
	}
}
