package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neo4j-field/cypher-guard/schema"
)

// loadSchemaFile mirrors cmd/cypherguard's schema loader: YAML (a superset
// of JSON for this shape) decoded into the map[string]any schema.FromDict
// consumes.
func loadSchemaFile(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the schema-path field
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
