package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/tableau"
)

func newTestBuilder() *ontology.Builder {
	return ontology.NewBuilder(iri.New(iri.DefaultConfig()))
}

// TestSimpleTaxonomy exercises scenario S1 from spec.md §8: Dog ⊑ Mammal ⊑
// Animal classifies into a linear chain with no equivalences.
func TestSimpleTaxonomy(t *testing.T) {
	b := newTestBuilder()
	animal, _ := b.Class("http://example.org#Animal")
	mammal, _ := b.Class("http://example.org#Mammal")
	dog, _ := b.Class("http://example.org#Dog")

	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(mammal), Sup: ontology.Atomic(animal)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(mammal)})
	require.NoError(t, err)

	h, err := New(b.Onto, tableau.DefaultConfig()).Classify()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{mammal.Key()}, h.DirectParents[dog.Key()])
	assert.ElementsMatch(t, []string{animal.Key()}, h.DirectParents[mammal.Key()])
	assert.Empty(t, h.DirectParents[animal.Key()])
	assert.ElementsMatch(t, []string{dog.Key()}, h.DirectChildren[mammal.Key()])
	assert.False(t, h.Unsatisfiable[dog.Key()])
}

// TestEquivalentClassesGroup confirms mutually subsuming classes land in
// the same equivalence group and neither is reported as the other's direct
// parent.
func TestEquivalentClassesGroup(t *testing.T) {
	b := newTestBuilder()
	person, _ := b.Class("http://example.org#Person")
	human, _ := b.Class("http://example.org#Human")

	_, err := b.AddAxiom(axiom.EquivalentClasses{Members: []classexpr.Expr{
		ontology.Atomic(person), ontology.Atomic(human),
	}})
	require.NoError(t, err)

	h, err := New(b.Onto, tableau.DefaultConfig()).Classify()
	require.NoError(t, err)

	var rep string
	for r, members := range h.Equivalences {
		if contains(members, person.Key()) {
			rep = r
			break
		}
	}
	require.NotEmpty(t, rep)
	assert.ElementsMatch(t, []string{person.Key(), human.Key()}, h.Equivalences[rep])
	assert.Empty(t, h.DirectParents[person.Key()])
}

// TestUnsatisfiableClassFromDisjointness exercises scenario S4's simpler
// cousin: a class asserted a subclass of two disjoint classes is
// unsatisfiable.
func TestUnsatisfiableClassFromDisjointness(t *testing.T) {
	b := newTestBuilder()
	a, _ := b.Class("http://example.org#A")
	d, _ := b.Class("http://example.org#D")
	c, _ := b.Class("http://example.org#C")

	_, err := b.AddAxiom(axiom.DisjointClasses{Members: []classexpr.Expr{ontology.Atomic(a), ontology.Atomic(d)}})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(c), Sup: ontology.Atomic(a)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(c), Sup: ontology.Atomic(d)})
	require.NoError(t, err)

	h, err := New(b.Onto, tableau.DefaultConfig()).Classify()
	require.NoError(t, err)

	assert.True(t, h.Unsatisfiable[c.Key()])
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
