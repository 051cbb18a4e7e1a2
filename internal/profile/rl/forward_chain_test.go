package rl

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

// TestDomainRangeExistential exercises prp-dom/prp-rng plus cls-svf2: Rex is
// asserted hasParent Fido, hasParent has domain Dog and range Animal, and
// ∃hasParent.Animal ⊑ WorkingDog should let the existential-left rule derive
// WorkingDog for Rex once Fido's Animal type lands.
func TestDomainRangeExistential(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	workingDog, _ := b.Class("http://example.org#WorkingDog")
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")
	rex, _ := b.NamedIndividual("http://example.org#Rex")
	fido, _ := b.NamedIndividual("http://example.org#Fido")

	_, err := b.AddAxiom(axiom.ObjectPropertyDomain{Property: property.Atom(hasParent), Domain: ontology.Atomic(dog)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ObjectPropertyRange{Property: property.Atom(hasParent), Range: ontology.Atomic(animal)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent), Filler: ontology.Atomic(animal)},
		Sup: ontology.Atomic(workingDog),
	})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ObjectPropertyAssertion{Property: property.Atom(hasParent), Source: rex, Target: fido})
	require.NoError(t, err)

	rules, facts := Compile(b.Onto)
	Materialize(rules, facts)

	assert.True(t, facts.HasType(rex.Key(), dog.Key()), "Rex should be typed Dog via prp-dom on hasParent")
	assert.True(t, facts.HasType(fido.Key(), animal.Key()), "Fido should be typed Animal via prp-rng on hasParent")
	assert.True(t, facts.HasType(rex.Key(), workingDog.Key()), "Rex should be typed WorkingDog once Fido is known Animal (cls-svf2)")
}

// TestTransitivePropertyChain exercises prp-trp: a ancestorOf b, b ancestorOf
// c, ancestorOf transitive, should derive a ancestorOf c.
func TestTransitivePropertyChain(t *testing.T) {
	b := newTestBuilder()
	ancestorOf, _ := b.ObjectProperty("http://example.org#ancestorOf")
	a, _ := b.NamedIndividual("http://example.org#A")
	bInd, _ := b.NamedIndividual("http://example.org#B")
	c, _ := b.NamedIndividual("http://example.org#C")

	_, err := b.AddAxiom(axiom.NewTransitiveObjectProperty(property.Atom(ancestorOf)))
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ObjectPropertyAssertion{Property: property.Atom(ancestorOf), Source: a, Target: bInd})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ObjectPropertyAssertion{Property: property.Atom(ancestorOf), Source: bInd, Target: c})
	require.NoError(t, err)

	rules, facts := Compile(b.Onto)
	Materialize(rules, facts)

	found := false
	for _, e := range facts.roleOf[a.Key()] {
		if e.Role == ancestorOf.Key() && e.Other == c.Key() {
			found = true
		}
	}
	assert.True(t, found, "ancestorOf(A,C) should be derived via prp-trp")
}

// TestSubPropertyAndInverse exercises prp-spo1 and prp-inv together: p ⊑ q,
// p inverse of r; an asserted p-edge should yield both a q-edge (subprop)
// and an r-edge in the opposite direction (inverse).
func TestSubPropertyAndInverse(t *testing.T) {
	b := newTestBuilder()
	p, _ := b.ObjectProperty("http://example.org#p")
	q, _ := b.ObjectProperty("http://example.org#q")
	r, _ := b.ObjectProperty("http://example.org#r")
	x, _ := b.NamedIndividual("http://example.org#X")
	y, _ := b.NamedIndividual("http://example.org#Y")

	_, err := b.AddAxiom(axiom.SubObjectPropertyOf{Sub: property.Atom(p), Sup: property.Atom(q)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.InverseObjectProperties{P: property.Atom(p), Q: property.Atom(r)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ObjectPropertyAssertion{Property: property.Atom(p), Source: x, Target: y})
	require.NoError(t, err)

	rules, facts := Compile(b.Onto)
	Materialize(rules, facts)

	hasQ := false
	for _, e := range facts.roleOf[x.Key()] {
		if e.Role == q.Key() && e.Other == y.Key() {
			hasQ = true
		}
	}
	assert.True(t, hasQ, "X q Y should be derived from X p Y via prp-spo1")

	hasRInverse := false
	for _, e := range facts.roleOf[y.Key()] {
		if e.Role == r.Key() && e.Other == x.Key() {
			hasRInverse = true
		}
	}
	assert.True(t, hasRInverse, "Y r X should be derived from X p Y via prp-inv")
}

// TestConjunctionRule exercises cls-int1: Dog ⊓ Pet ⊑ HappyDog, with an
// individual asserted both Dog and Pet.
func TestConjunctionRule(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	pet, _ := b.Class("http://example.org#Pet")
	happyDog, _ := b.Class("http://example.org#HappyDog")
	rex, _ := b.NamedIndividual("http://example.org#Rex")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.Intersection{Operands: []classexpr.Expr{ontology.Atomic(dog), ontology.Atomic(pet)}},
		Sup: ontology.Atomic(happyDog),
	})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ClassAssertion{Individual: rex, Class: ontology.Atomic(dog)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ClassAssertion{Individual: rex, Class: ontology.Atomic(pet)})
	require.NoError(t, err)

	rules, facts := Compile(b.Onto)
	Materialize(rules, facts)

	assert.True(t, facts.HasType(rex.Key(), happyDog.Key()))
}

// TestHasValueRules exercises cls-hv1/cls-hv2: Dog ⊑ ∃hasOwner.{Alice}
// derives the role fact, and the converse superclass-position has-value
// derives a class fact from an existing role fact.
func TestHasValueRules(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	ownedByAlice, _ := b.Class("http://example.org#OwnedByAlice")
	hasOwner, _ := b.ObjectProperty("http://example.org#hasOwner")
	rex, _ := b.NamedIndividual("http://example.org#Rex")
	fido, _ := b.NamedIndividual("http://example.org#Fido")
	alice, _ := b.NamedIndividual("http://example.org#Alice")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(dog),
		Sup: classexpr.ObjectHasValue{Property: property.Atom(hasOwner), Individual: alice},
	})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.ObjectHasValue{Property: property.Atom(hasOwner), Individual: alice},
		Sup: ontology.Atomic(ownedByAlice),
	})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ClassAssertion{Individual: rex, Class: ontology.Atomic(dog)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.ObjectPropertyAssertion{Property: property.Atom(hasOwner), Source: fido, Target: alice})
	require.NoError(t, err)

	rules, facts := Compile(b.Onto)
	Materialize(rules, facts)

	hasEdge := false
	for _, e := range facts.roleOf[rex.Key()] {
		if e.Role == hasOwner.Key() && e.Other == alice.Key() {
			hasEdge = true
		}
	}
	assert.True(t, hasEdge, "Rex hasOwner Alice should be derived via cls-hv1")
	assert.True(t, facts.HasType(fido.Key(), ownedByAlice.Key()), "Fido should be typed OwnedByAlice via cls-hv2")
}
