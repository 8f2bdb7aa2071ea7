package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neo4j-field/cypher-guard/schema"
)

// loadSchemaFile reads a schema description from disk. YAML is the primary
// format (the way analysis.LoadSchema reads a teacher .scaf.yaml file); JSON
// decodes through the same yaml.Unmarshal call, since YAML is a superset of
// JSON for the map[string]any shape schema.FromDict consumes.
func loadSchemaFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is an explicit CLI argument
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	var d map[string]any
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing schema file %s: %w", path, err)
	}

	sch, err := schema.FromDict(d)
	if err != nil {
		return nil, fmt.Errorf("building schema from %s: %w", path, err)
	}
	return sch, nil
}

// writeSchemaFile round-trips sch back out as YAML, the way
// analysis.WriteSchema renders a TypeSchema.
func writeSchemaFile(w *os.File, sch *schema.Schema) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(sch.ToDict())
}
