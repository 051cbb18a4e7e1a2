package validate

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

func TestELAcceptsProfileShapedOntology(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(dog),
		Sup: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent), Filler: ontology.Atomic(animal)},
	})
	require.NoError(t, err)

	r := EL(b.Onto)
	assert.True(t, r.Valid)
	assert.Empty(t, r.Violations)
}

func TestELRejectsUnion(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	cat, _ := b.Class("http://example.org#Cat")
	pet, _ := b.Class("http://example.org#Pet")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.Union{Operands: []classexpr.Expr{ontology.Atomic(dog), ontology.Atomic(cat)}},
		Sup: ontology.Atomic(pet),
	})
	require.NoError(t, err)

	r := EL(b.Onto)
	assert.False(t, r.Valid)
	require.Len(t, r.Violations, 1)
}

func TestELRejectsInverseObjectProperty(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(dog),
		Sup: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent).Inv(), Filler: ontology.Atomic(animal)},
	})
	require.NoError(t, err)

	r := EL(b.Onto)
	assert.False(t, r.Valid)
}

func TestQLAcceptsBasicConceptSubsumption(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(dog),
		Sup: classexpr.Intersection{Operands: []classexpr.Expr{
			ontology.Atomic(animal),
			classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent), Filler: classexpr.Top{}},
		}},
	})
	require.NoError(t, err)

	r := QL(b.Onto)
	assert.True(t, r.Valid)
}

func TestQLRejectsQualifiedExistentialOnSubclassSide(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent), Filler: ontology.Atomic(animal)},
		Sup: ontology.Atomic(dog),
	})
	require.NoError(t, err)

	r := QL(b.Onto)
	assert.False(t, r.Valid)
}

func TestQLRejectsRoleChain(t *testing.T) {
	b := newTestBuilder()
	p, _ := b.ObjectProperty("http://example.org#p")
	q, _ := b.ObjectProperty("http://example.org#q")
	s, _ := b.ObjectProperty("http://example.org#s")

	_, err := b.AddAxiom(axiom.SubPropertyChainOf{
		Chain: property.Chain{property.Atom(p), property.Atom(q)},
		Sup:   property.Atom(s),
	})
	require.NoError(t, err)

	r := QL(b.Onto)
	assert.False(t, r.Valid)
}

func TestRLAcceptsUnionOnSubclassSide(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	cat, _ := b.Class("http://example.org#Cat")
	pet, _ := b.Class("http://example.org#Pet")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.Union{Operands: []classexpr.Expr{ontology.Atomic(dog), ontology.Atomic(cat)}},
		Sup: ontology.Atomic(pet),
	})
	require.NoError(t, err)

	r := RL(b.Onto)
	assert.True(t, r.Valid)
}

func TestRLRejectsUnqualifiedCardinalityAboveOne(t *testing.T) {
	b := newTestBuilder()
	person, _ := b.Class("http://example.org#Person")
	hasChild, _ := b.ObjectProperty("http://example.org#hasChild")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(person),
		Sup: classexpr.NewObjectMaxCardinality(2, property.Atom(hasChild), nil),
	})
	require.NoError(t, err)

	r := RL(b.Onto)
	assert.False(t, r.Valid)
}

func TestRLRejectsUniversalOnSubclassSide(t *testing.T) {
	b := newTestBuilder()
	person, _ := b.Class("http://example.org#Person")
	animal, _ := b.Class("http://example.org#Animal")
	hasPet, _ := b.ObjectProperty("http://example.org#hasPet")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.ObjectAllValuesFrom{Property: property.Atom(hasPet), Filler: ontology.Atomic(animal)},
		Sup: ontology.Atomic(person),
	})
	require.NoError(t, err)

	r := RL(b.Onto)
	assert.False(t, r.Valid)
}
