package tableau

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

func newTestBuilder() *ontology.Builder {
	return ontology.NewBuilder(iri.New(iri.DefaultConfig()))
}

func mustAddAxiom(t *testing.T, b *ontology.Builder, ax axiom.Axiom) {
	t.Helper()
	_, err := b.AddAxiom(ax)
	require.NoError(t, err)
}

// TestSimpleTaxonomyIsConsistent exercises scenario S1 from spec.md §8: a
// plain subclass chain with an asserted instance has no clash.
func TestSimpleTaxonomyIsConsistent(t *testing.T) {
	b := newTestBuilder()
	animal, _ := b.Class("http://example.org#Animal")
	mammal, _ := b.Class("http://example.org#Mammal")
	dog, _ := b.Class("http://example.org#Dog")
	rex, _ := b.NamedIndividual("http://example.org#Rex")

	mustAddAxiom(t, b, axiom.SubClassOf{Sub: ontology.Atomic(mammal), Sup: ontology.Atomic(animal)})
	mustAddAxiom(t, b, axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(mammal)})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: rex, Class: ontology.Atomic(dog)})

	eng := New(b.Onto, DefaultConfig())
	defer eng.Release()
	_, seedClash := eng.SeedABox(b.Onto)
	require.Nil(t, seedClash)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Satisfiable)
}

// TestDisjointnessClash exercises scenario S2: an individual asserted into
// two pairwise-disjoint classes is unsatisfiable.
func TestDisjointnessClash(t *testing.T) {
	b := newTestBuilder()
	a, _ := b.Class("http://example.org#A")
	c, _ := b.Class("http://example.org#B")
	ind, _ := b.NamedIndividual("http://example.org#X")

	mustAddAxiom(t, b, axiom.DisjointClasses{Members: []classexpr.Expr{ontology.Atomic(a), ontology.Atomic(c)}})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: ind, Class: ontology.Atomic(a)})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: ind, Class: ontology.Atomic(c)})

	eng := New(b.Onto, DefaultConfig())
	defer eng.Release()
	_, seedClash := eng.SeedABox(b.Onto)
	require.Nil(t, seedClash)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
	require.NotNil(t, res.Clash)
}

// TestExistentialWitnessCreatesSuccessor exercises rule 2: ∃R.C on a node
// with no matching R-neighbour spawns a fresh successor labeled C.
func TestExistentialWitnessCreatesSuccessor(t *testing.T) {
	b := newTestBuilder()
	person, _ := b.Class("http://example.org#Person")
	pet, _ := b.Class("http://example.org#Pet")
	hasPet, _ := b.ObjectProperty("http://example.org#hasPet")
	alice, _ := b.NamedIndividual("http://example.org#Alice")

	restriction := classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasPet), Filler: ontology.Atomic(pet)}
	mustAddAxiom(t, b, axiom.SubClassOf{Sub: ontology.Atomic(person), Sup: restriction})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: alice, Class: ontology.Atomic(person)})

	eng := New(b.Onto, DefaultConfig())
	defer eng.Release()
	nodes, seedClash := eng.SeedABox(b.Onto)
	require.Nil(t, seedClash)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)

	aliceNode := nodes[alice.Key()]
	witnesses := eng.Graph().RNeighbours(aliceNode, property.Atom(hasPet))
	require.Len(t, witnesses, 1)
	assert.True(t, eng.Graph().Node(witnesses[0]).Labels.Contains(ontology.Atomic(pet)))
}

// TestQualifiedCardinalityClash exercises scenario S4: a ≤1 R.C
// restriction with two pairwise-distinct R-neighbours both satisfying C is
// unsatisfiable.
func TestQualifiedCardinalityClash(t *testing.T) {
	b := newTestBuilder()
	person, _ := b.Class("http://example.org#Person")
	pet, _ := b.Class("http://example.org#Pet")
	hasPet, _ := b.ObjectProperty("http://example.org#hasPet")
	alice, _ := b.NamedIndividual("http://example.org#Alice")
	fido, _ := b.NamedIndividual("http://example.org#Fido")
	rex, _ := b.NamedIndividual("http://example.org#Rex")

	maxCard := classexpr.NewObjectMaxCardinality(1, property.Atom(hasPet), ontology.Atomic(pet))
	mustAddAxiom(t, b, axiom.SubClassOf{Sub: ontology.Atomic(person), Sup: maxCard})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: alice, Class: ontology.Atomic(person)})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: fido, Class: ontology.Atomic(pet)})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: rex, Class: ontology.Atomic(pet)})
	mustAddAxiom(t, b, axiom.ObjectPropertyAssertion{Property: property.Atom(hasPet), Source: alice, Target: fido})
	mustAddAxiom(t, b, axiom.ObjectPropertyAssertion{Property: property.Atom(hasPet), Source: alice, Target: rex})
	mustAddAxiom(t, b, axiom.DifferentIndividuals{Members: []entity.Individual{fido, rex}})

	eng := New(b.Onto, DefaultConfig())
	defer eng.Release()
	_, seedClash := eng.SeedABox(b.Onto)
	require.Nil(t, seedClash)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
}

// TestMinCardinalityCreatesDistinctWitnesses exercises rule 7: ≥2 R spawns
// two pairwise-distinct fresh successors when no R-neighbours exist yet.
func TestMinCardinalityCreatesDistinctWitnesses(t *testing.T) {
	b := newTestBuilder()
	person, _ := b.Class("http://example.org#Person")
	hasChild, _ := b.ObjectProperty("http://example.org#hasChild")
	alice, _ := b.NamedIndividual("http://example.org#Alice")

	minCard := classexpr.NewObjectMinCardinality(2, property.Atom(hasChild), nil)
	mustAddAxiom(t, b, axiom.SubClassOf{Sub: ontology.Atomic(person), Sup: minCard})
	mustAddAxiom(t, b, axiom.ClassAssertion{Individual: alice, Class: ontology.Atomic(person)})

	eng := New(b.Onto, DefaultConfig())
	defer eng.Release()
	nodes, seedClash := eng.SeedABox(b.Onto)
	require.Nil(t, seedClash)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	require.True(t, res.Satisfiable)

	aliceNode := nodes[alice.Key()]
	children := eng.Graph().RNeighbours(aliceNode, property.Atom(hasChild))
	require.Len(t, children, 2)
	assert.True(t, eng.Graph().AreDistinct(children[0], children[1]))
}
