package schema

import "fmt"

// LabelProperties is an ordered list of properties declared for one node
// label or relationship type. ToDict emits each label's properties in the
// order of Properties; the labels themselves are read by FromDict and
// written by ToDict as Go maps, so their order is not preserved.
type LabelProperties struct {
	Label      string
	Properties []Property
}

// Schema is the container of everything a query is checked against: which
// node labels and relationship types exist, what properties each declares,
// which (start, rel type, end) triples are permitted, and descriptive
// metadata that does not affect validation.
//
// A *Schema is immutable after construction and safe to use concurrently
// from multiple goroutines without additional synchronization.
type Schema struct {
	NodeProps     []LabelProperties
	RelProps      []LabelProperties
	Relationships []RelationshipPattern
	Metadata      Metadata

	// Derived indexes, computed once at construction time.
	nodePropsByLabel map[string]map[string]Property
	relPropsByType   map[string]map[string]Property
	propertyLabels   map[string]map[string]bool // property name -> set of labels/rel-types declaring it
	knownLabels      map[string]bool
	knownRelTypes    map[string]bool
	relByType        map[string][]RelationshipPattern
}

// New builds a Schema from already-parsed components and validates the
// invariants documented in spec section 3: unique property names per label,
// and (tolerantly) labels/rel-types referenced only by Relationships are
// treated as known with an empty property set.
func New(nodeProps, relProps []LabelProperties, relationships []RelationshipPattern, metadata Metadata) (*Schema, error) {
	for _, lp := range nodeProps {
		if err := checkUniqueProperties(lp.Label, lp.Properties); err != nil {
			return nil, err
		}
	}
	for _, lp := range relProps {
		if err := checkUniqueProperties(lp.Label, lp.Properties); err != nil {
			return nil, err
		}
	}

	s := &Schema{
		NodeProps:     nodeProps,
		RelProps:      relProps,
		Relationships: relationships,
		Metadata:      metadata,
	}
	s.buildIndexes()
	return s, nil
}

func checkUniqueProperties(label string, props []Property) error {
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if seen[p.Name] {
			return fmt.Errorf("schema: duplicate property %q on %q", p.Name, label)
		}
		seen[p.Name] = true
	}
	return nil
}

func (s *Schema) buildIndexes() {
	s.nodePropsByLabel = make(map[string]map[string]Property, len(s.NodeProps))
	s.relPropsByType = make(map[string]map[string]Property, len(s.RelProps))
	s.propertyLabels = make(map[string]map[string]bool)
	s.knownLabels = make(map[string]bool, len(s.NodeProps))
	s.knownRelTypes = make(map[string]bool, len(s.RelProps))
	s.relByType = make(map[string][]RelationshipPattern)

	for _, lp := range s.NodeProps {
		s.knownLabels[lp.Label] = true
		byName := make(map[string]Property, len(lp.Properties))
		for _, p := range lp.Properties {
			byName[p.Name] = p
			s.addPropertyLabel(p.Name, lp.Label)
		}
		s.nodePropsByLabel[lp.Label] = byName
	}
	for _, lp := range s.RelProps {
		s.knownRelTypes[lp.Label] = true
		byName := make(map[string]Property, len(lp.Properties))
		for _, p := range lp.Properties {
			byName[p.Name] = p
			s.addPropertyLabel(p.Name, lp.Label)
		}
		s.relPropsByType[lp.Label] = byName
	}

	// A label/rel-type referenced only in `relationships` is still known,
	// just with no declared properties (spec section 3 invariant).
	for _, r := range s.Relationships {
		if !s.knownLabels[r.Start] {
			s.knownLabels[r.Start] = true
			s.nodePropsByLabel[r.Start] = map[string]Property{}
		}
		if !s.knownLabels[r.End] {
			s.knownLabels[r.End] = true
			s.nodePropsByLabel[r.End] = map[string]Property{}
		}
		if !s.knownRelTypes[r.RelType] {
			s.knownRelTypes[r.RelType] = true
			s.relPropsByType[r.RelType] = map[string]Property{}
		}
		s.relByType[r.RelType] = append(s.relByType[r.RelType], r)
	}
}

func (s *Schema) addPropertyLabel(property, label string) {
	set, ok := s.propertyLabels[property]
	if !ok {
		set = make(map[string]bool)
		s.propertyLabels[property] = set
	}
	set[label] = true
}

// HasLabel reports whether label is declared (directly, or implicitly via a
// relationships entry).
func (s *Schema) HasLabel(label string) bool { return s.knownLabels[label] }

// HasRelType reports whether relType is declared.
func (s *Schema) HasRelType(relType string) bool { return s.knownRelTypes[relType] }

// AllLabels returns every known node label.
func (s *Schema) AllLabels() []string { return keys(s.knownLabels) }

// AllRelTypes returns every known relationship type.
func (s *Schema) AllRelTypes() []string { return keys(s.knownRelTypes) }

// NodeProperty looks up a declared property on a node label.
func (s *Schema) NodeProperty(label, name string) (Property, bool) {
	byName, ok := s.nodePropsByLabel[label]
	if !ok {
		return Property{}, false
	}
	p, ok := byName[name]
	return p, ok
}

// RelProperty looks up a declared property on a relationship type.
func (s *Schema) RelProperty(relType, name string) (Property, bool) {
	byName, ok := s.relPropsByType[relType]
	if !ok {
		return Property{}, false
	}
	p, ok := byName[name]
	return p, ok
}

// LabelsWithProperty returns every node label or relationship type that
// declares a property of this name (the inverse index spec section 9 calls
// for, precomputed at construction so InvalidPropertyAccess checks are O(1)
// per access).
func (s *Schema) LabelsWithProperty(name string) map[string]bool {
	return s.propertyLabels[name]
}

// RelationshipsOfType returns the permitted (start, end) pairs for relType.
func (s *Schema) RelationshipsOfType(relType string) []RelationshipPattern {
	return s.relByType[relType]
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// FromDict builds a Schema from the nested-dictionary representation
// documented in spec section 6.1. Keys "node_props", "rel_props",
// "relationships", and "metadata" are all optional; an absent key behaves as
// if it were empty.
func FromDict(d map[string]any) (*Schema, error) {
	nodeProps, err := labelPropertiesFromDict(d, "node_props")
	if err != nil {
		return nil, err
	}
	relProps, err := labelPropertiesFromDict(d, "rel_props")
	if err != nil {
		return nil, err
	}

	var relationships []RelationshipPattern
	if raw, ok := d["relationships"]; ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("schema: \"relationships\" must be a list, got %T", raw)
		}
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schema: relationship entry must be an object, got %T", item)
			}
			rel, err := RelationshipPatternFromDict(m)
			if err != nil {
				return nil, err
			}
			relationships = append(relationships, rel)
		}
	}

	var metadata Metadata
	if raw, ok := d["metadata"]; ok && raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema: \"metadata\" must be an object, got %T", raw)
		}
		metadata, err = MetadataFromDict(m)
		if err != nil {
			return nil, err
		}
	}

	return New(nodeProps, relProps, relationships, metadata)
}

// labelPropertiesFromDict reads a `{Label: [Property, ...]}` mapping. The
// labels come out in Go map iteration order, which is not stable between
// calls; each label's properties keep their list order. Callers that need a
// fixed label order in NodeProps/RelProps should build a Schema with New
// directly from an ordered []LabelProperties.
func labelPropertiesFromDict(d map[string]any, key string) ([]LabelProperties, error) {
	raw, ok := d[key]
	if !ok || raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema: %q must be an object, got %T", key, raw)
	}

	var out []LabelProperties
	for label, propsRaw := range m {
		items, ok := propsRaw.([]any)
		if !ok {
			return nil, fmt.Errorf("schema: %q.%q must be a list, got %T", key, label, propsRaw)
		}
		props := make([]Property, 0, len(items))
		for _, item := range items {
			pd, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schema: %q.%q element must be an object, got %T", key, label, item)
			}
			p, err := PropertyFromDict(pd)
			if err != nil {
				return nil, fmt.Errorf("schema: %q.%q: %w", key, label, err)
			}
			props = append(props, p)
		}
		out = append(out, LabelProperties{Label: label, Properties: props})
	}
	return out, nil
}

// ToDict renders a Schema back to its nested-dictionary form.
func (s *Schema) ToDict() map[string]any {
	nodeProps := make(map[string]any, len(s.NodeProps))
	for _, lp := range s.NodeProps {
		nodeProps[lp.Label] = propertyDicts(lp.Properties)
	}
	relProps := make(map[string]any, len(s.RelProps))
	for _, lp := range s.RelProps {
		relProps[lp.Label] = propertyDicts(lp.Properties)
	}
	relationships := make([]any, len(s.Relationships))
	for i, r := range s.Relationships {
		relationships[i] = r.ToDict()
	}

	return map[string]any{
		"node_props":    nodeProps,
		"rel_props":     relProps,
		"relationships": relationships,
		"metadata":      s.Metadata.ToDict(),
	}
}

func propertyDicts(props []Property) []any {
	out := make([]any, len(props))
	for i, p := range props {
		out[i] = p.ToDict()
	}
	return out
}
