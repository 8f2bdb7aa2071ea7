package cypherguard

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neo4j-field/cypher-guard/grammar"
	"github.com/neo4j-field/cypher-guard/schema"
)

func personMovieSchema(t *testing.T) *schema.Schema {
	t.Helper()
	nodeProps := []schema.LabelProperties{
		{Label: "Person", Properties: []schema.Property{
			{Name: "name", Neo4jType: schema.TypeString},
			{Name: "age", Neo4jType: schema.TypeInteger},
		}},
	}
	relProps := []schema.LabelProperties{
		{Label: "KNOWS", Properties: []schema.Property{
			{Name: "since", Neo4jType: schema.TypeInteger},
		}},
	}
	relationships := []schema.RelationshipPattern{
		{Start: "Person", RelType: "KNOWS", End: "Person"},
	}
	s, err := schema.New(nodeProps, relProps, relationships, schema.Metadata{})
	require.NoError(t, err)
	return s
}

func TestValidateReturnsEmptyForValidQuery(t *testing.T) {
	sch := personMovieSchema(t)
	errs, err := Validate(`MATCH (a:Person)-[r:KNOWS]->(b:Person) RETURN a.name, r.since`, sch)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateQuantifiedPathPatternIsAccepted(t *testing.T) {
	sch := personMovieSchema(t)
	errs, err := Validate(`MATCH ((a:Person)-[r:KNOWS]->(b:Person)){2,4} RETURN a.name, b.name`, sch)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestCheckSyntaxAcceptsWellFormedQuery(t *testing.T) {
	ok, err := CheckSyntax(`MATCH (n:Person) RETURN n`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, HasParserErrors(`MATCH (n:Person) RETURN n`))
}

func TestCheckSyntaxRejectsReturnBeforeOtherClauses(t *testing.T) {
	_, err := CheckSyntax(`RETURN n MATCH (n:Person)`)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, grammar.KindReturnBeforeOtherClauses, pe.Kind)
	assert.True(t, HasParserErrors(`RETURN n MATCH (n:Person)`))
}

func TestCheckSyntaxRejectsWhereAfterReturn(t *testing.T) {
	_, err := CheckSyntax(`MATCH (n:Person) RETURN n WHERE n.age > 30`)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, grammar.KindWhereAfterReturn, pe.Kind)
}

func TestCheckSyntaxRejectsWhereBeforeMatch(t *testing.T) {
	_, err := CheckSyntax(`WHERE n.age > 30 MATCH (n:Person) RETURN n`)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, grammar.KindWhereBeforeMatch, pe.Kind)
}

func TestIsReadAndIsWriteClassifyClauses(t *testing.T) {
	assert.True(t, IsRead(`MATCH (n:Person) RETURN n`))
	assert.False(t, IsWrite(`MATCH (n:Person) RETURN n`))

	assert.True(t, IsWrite(`CREATE (n:Person {name: "Ada"})`))
	assert.False(t, IsRead(`CREATE (n:Person {name: "Ada"})`))

	assert.True(t, IsWrite(`MATCH (n:Person) SET n.age = 30`))
	assert.True(t, IsWrite(`MATCH (n:Person) DETACH DELETE n`))
	assert.True(t, IsWrite(`MERGE (n:Person {name: "Ada"})`))
}

func TestIsReadIsWriteFalseOnMalformedQuery(t *testing.T) {
	assert.False(t, IsRead(`MATCH (n:Person RETURN n`))
	assert.False(t, IsWrite(`MATCH (n:Person RETURN n`))
}

// transportationSchema loads testdata/transportation_schema.json, a
// Station/Stop schema whose CALLS_AT relationship type declares an empty
// property list, while NEXT and LINK each declare a FLOAT distance.
func transportationSchema(t *testing.T) *schema.Schema {
	t.Helper()
	data, err := os.ReadFile("testdata/transportation_schema.json")
	require.NoError(t, err)

	var d map[string]any
	require.NoError(t, json.Unmarshal(data, &d))

	sch, err := schema.FromDict(d)
	require.NoError(t, err)
	return sch
}

func TestValidateQuantifiedPathPatternOverStationLinks(t *testing.T) {
	sch := transportationSchema(t)
	errs, err := Validate(`
		MATCH (start:Station {name: 'London Blackfriars'})
		      ((s:Station)-[:LINK]->(e:Station)){1,3}
		      (end:Station {name: 'North Dulwich'})
		RETURN start, end
	`, sch)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateQuantifiedPathPatternOverStopsBetweenStations(t *testing.T) {
	sch := transportationSchema(t)
	errs, err := Validate(`
		MATCH (:Station {name: 'Denmark Hill'})<-[:CALLS_AT]-(first:Stop)
		      ((s:Stop)-[:NEXT]->(e:Stop)){1,3}
		      (last:Stop)-[:CALLS_AT]->(:Station {name: 'Clapham Junction'})
		RETURN first, last
	`, sch)
	require.NoError(t, err)
	assert.Empty(t, errs)
}

func TestValidateAcceptsReversedArrowOnSymmetricRelationship(t *testing.T) {
	sch := transportationSchema(t)
	errs, err := Validate(`MATCH (s:Station)<-[:LINK]-(t:Station) RETURN s, t`, sch)
	require.NoError(t, err)
	assert.Empty(t, errs)
}
