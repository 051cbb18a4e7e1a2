package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/reasoner"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "obo", detectFormat("chebi.obo", "auto"))
	assert.Equal(t, "owl", detectFormat("chebi.owl", "auto"))
	assert.Equal(t, "owl", detectFormat("chebi.rdf", "auto"))
	assert.Equal(t, "", detectFormat("chebi.txt", "auto"))
	assert.Equal(t, "obo", detectFormat("chebi.owl", "obo"))
}

func TestSplitArgs(t *testing.T) {
	assert.Nil(t, splitArgs(""))
	assert.Equal(t, []string{"http://x#A"}, splitArgs("http://x#A"))
	assert.Equal(t, []string{"http://x#A", "http://x#B"}, splitArgs("http://x#A,http://x#B"))
}

func TestDispatchQueryConsistentAndSubclassof(t *testing.T) {
	b := ontology.NewBuilder(iri.New(iri.DefaultConfig()))
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(animal)})
	require.NoError(t, err)

	r := reasoner.New(b.Onto)

	res, code, err := dispatchQuery(r, "consistent", "")
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	require.NotNil(t, res.Bool)
	assert.True(t, *res.Bool)

	res, code, err = dispatchQuery(r, "subclassof", "http://example.org#Dog,http://example.org#Animal")
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.True(t, *res.Bool)

	_, code, err = dispatchQuery(r, "subclassof", "http://example.org#Dog")
	assert.Error(t, err)
	assert.Equal(t, exitInvocation, code)

	_, _, err = dispatchQuery(r, "bogus", "")
	assert.Error(t, err)
}
