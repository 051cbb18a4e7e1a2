package ql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

func newTestBuilder() *ontology.Builder {
	return ontology.NewBuilder(iri.New(iri.DefaultConfig()))
}

func TestReachabilityChain(t *testing.T) {
	b := newTestBuilder()
	animal, _ := b.Class("http://example.org#Animal")
	mammal, _ := b.Class("http://example.org#Mammal")
	dog, _ := b.Class("http://example.org#Dog")

	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(mammal), Sup: ontology.Atomic(animal)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(mammal)})
	require.NoError(t, err)

	g := BuildGraph(b.Onto)
	assert.True(t, g.Subsumes(Key(ontology.Atomic(dog)), Key(ontology.Atomic(animal))))
	assert.False(t, g.Subsumes(Key(ontology.Atomic(animal)), Key(ontology.Atomic(dog))))

	h := g.BuildHierarchy(b.Onto)
	assert.ElementsMatch(t, []string{mammal.Key()}, h.DirectParents[dog.Key()])
	assert.ElementsMatch(t, []string{animal.Key()}, h.DirectParents[mammal.Key()])
}

// TestDomainEdge checks that a domain axiom on a role derives a basic
// concept inclusion through the ∃R.⊤ pseudo-node.
func TestDomainEdge(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(dog),
		Sup: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent), Filler: classexpr.Top{}},
	})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ObjectPropertyDomain{Property: property.Atom(hasParent), Domain: ontology.Atomic(animal)})
	require.NoError(t, err)

	g := BuildGraph(b.Onto)
	assert.True(t, g.Subsumes(Key(ontology.Atomic(dog)), Key(ontology.Atomic(animal))))
}

// TestRoleInclusionDerivesExistentialInclusion checks R ⊑ S deriving
// ∃R.⊤ ⊑ ∃S.⊤, including across inverses.
func TestRoleInclusionDerivesExistentialInclusion(t *testing.T) {
	b := newTestBuilder()
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")
	hasAncestor, _ := b.ObjectProperty("http://example.org#hasAncestor")

	_, err := b.AddAxiom(axiom.SubObjectPropertyOf{Sub: property.Atom(hasParent), Sup: property.Atom(hasAncestor)})
	require.NoError(t, err)

	g := BuildGraph(b.Onto)
	assert.True(t, g.Subsumes(existsKey(property.Atom(hasParent)), existsKey(property.Atom(hasAncestor))))
	assert.True(t, g.Subsumes(existsKey(property.Atom(hasParent).Inv()), existsKey(property.Atom(hasAncestor).Inv())))
}

// TestUnsatisfiablePropagates checks Cat ⊑ ⊥ is reported unsatisfiable.
func TestUnsatisfiablePropagates(t *testing.T) {
	b := newTestBuilder()
	cat, _ := b.Class("http://example.org#Cat")

	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(cat), Sup: classexpr.Bottom{}})
	require.NoError(t, err)

	g := BuildGraph(b.Onto)
	assert.True(t, g.Unsatisfiable(Key(ontology.Atomic(cat))))
}
