package owlxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
)

const sampleDoc = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Ontology rdf:about="http://example.org/onto"/>

  <owl:ObjectProperty rdf:about="http://example.org#partOf">
    <rdf:type rdf:resource="http://www.w3.org/2002/07/owl#TransitiveProperty"/>
  </owl:ObjectProperty>

  <owl:Class rdf:about="http://example.org#Animal"/>

  <owl:Class rdf:about="http://example.org#Dog">
    <rdfs:subClassOf rdf:resource="http://example.org#Animal"/>
  </owl:Class>

  <owl:Class rdf:about="http://example.org#Paw">
    <rdfs:subClassOf>
      <owl:Restriction>
        <owl:onProperty rdf:resource="http://example.org#partOf"/>
        <owl:someValuesFrom rdf:resource="http://example.org#Dog"/>
      </owl:Restriction>
    </rdfs:subClassOf>
  </owl:Class>
</rdf:RDF>`

func TestParsePopulatesClassesAndSubsumption(t *testing.T) {
	b := ontology.NewBuilder(iri.New(iri.DefaultConfig()))
	res, err := Parse(strings.NewReader(sampleDoc), b)
	require.NoError(t, err)

	_, ok := b.Onto.Entities.Get("http://example.org#Animal")
	assert.True(t, ok)
	_, ok = b.Onto.Entities.Get("http://example.org#Dog")
	assert.True(t, ok)
	_, ok = b.Onto.Entities.Get("http://example.org#partOf")
	assert.True(t, ok)

	assert.Equal(t, 3, b.Onto.Axioms.Len())
	assert.NotEmpty(t, res.Statements)
}
