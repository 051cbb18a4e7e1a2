package el

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

// TestLinearChain saturates Dog ⊑ Mammal ⊑ Animal and checks the derived
// hierarchy matches the told chain (NF1/CR1 only).
func TestLinearChain(t *testing.T) {
	b := newTestBuilder()
	animal, _ := b.Class("http://example.org#Animal")
	mammal, _ := b.Class("http://example.org#Mammal")
	dog, _ := b.Class("http://example.org#Dog")

	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(mammal), Sup: ontology.Atomic(animal)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(mammal)})
	require.NoError(t, err)

	st, store := Normalize(b.Onto)
	contexts := Saturate(st, store)
	h := BuildHierarchy(contexts, st)

	assert.ElementsMatch(t, []string{mammal.Key()}, h.DirectParents[dog.Key()])
	assert.ElementsMatch(t, []string{animal.Key()}, h.DirectParents[mammal.Key()])
	assert.Empty(t, h.DirectParents[animal.Key()])
	assert.False(t, h.Unsatisfiable[dog.Key()])
}

// TestConjunctionRule exercises CR2: Dog ⊓ Pet ⊑ HappyDog, with an
// individual concept asserted to be both Dog and Pet deriving HappyDog.
func TestConjunctionRule(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	pet, _ := b.Class("http://example.org#Pet")
	happyDog, _ := b.Class("http://example.org#HappyDog")
	pettedDog, _ := b.Class("http://example.org#PettedDog")

	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.Intersection{Operands: []classexpr.Expr{ontology.Atomic(dog), ontology.Atomic(pet)}},
		Sup: ontology.Atomic(happyDog),
	})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(pettedDog), Sup: ontology.Atomic(dog)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(pettedDog), Sup: ontology.Atomic(pet)})
	require.NoError(t, err)

	st, store := Normalize(b.Onto)
	contexts := Saturate(st, store)

	pettedDogID := st.InternConcept(pettedDog.Key())
	happyDogID := st.InternConcept(happyDog.Key())
	_, derived := contexts[pettedDogID].superSet[happyDogID]
	assert.True(t, derived, "PettedDog should be derived as a HappyDog via CR2")
}

// TestExistentialChain exercises CR3/CR4: PoliceDog ⊑ Dog,
// PoliceDog ⊑ ∃hasParent.Dog and ∃hasParent.Dog ⊑ WorkingDog jointly derive
// PoliceDog ⊑ WorkingDog through the hasParent link to Dog.
func TestExistentialChain(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	policeDog, _ := b.Class("http://example.org#PoliceDog")
	hasParent, _ := b.ObjectProperty("http://example.org#hasParent")
	workingDog, _ := b.Class("http://example.org#WorkingDog")

	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(policeDog), Sup: ontology.Atomic(dog)})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{
		Sub: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent), Filler: ontology.Atomic(dog)},
		Sup: ontology.Atomic(workingDog),
	})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(policeDog),
		Sup: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasParent), Filler: ontology.Atomic(dog)},
	})
	require.NoError(t, err)

	st, store := Normalize(b.Onto)
	contexts := Saturate(st, store)

	policeDogID := st.InternConcept(policeDog.Key())
	workingDogID := st.InternConcept(workingDog.Key())
	_, derived := contexts[policeDogID].superSet[workingDogID]
	assert.True(t, derived, "PoliceDog should be derived as a WorkingDog via the existential chain")
}

// TestBottomPropagation exercises CR5: Cat ⊑ ⊥, and a link into Cat
// propagates the clash back to the source via CR4/CR5.
func TestBottomPropagation(t *testing.T) {
	b := newTestBuilder()
	cat, _ := b.Class("http://example.org#Cat")
	hasPet, _ := b.ObjectProperty("http://example.org#hasPet")
	catOwner, _ := b.Class("http://example.org#CatOwner")

	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(cat), Sup: classexpr.Bottom{}})
	require.NoError(t, err)
	_, err = b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(catOwner),
		Sup: classexpr.ObjectSomeValuesFrom{Property: property.Atom(hasPet), Filler: ontology.Atomic(cat)},
	})
	require.NoError(t, err)

	st, store := Normalize(b.Onto)
	contexts := Saturate(st, store)

	catID := st.InternConcept(cat.Key())
	_, catBottom := contexts[catID].superSet[Bottom]
	assert.True(t, catBottom)

	catOwnerID := st.InternConcept(catOwner.Key())
	_, ownerBottom := contexts[catOwnerID].superSet[Bottom]
	assert.True(t, ownerBottom, "Bottom should propagate to CatOwner via CR5 over the hasPet link")
}

// TestRoleChainTransitivity exercises CR11/transitive-role handling: a
// transitive ancestorOf role composed with itself stays ancestorOf.
func TestRoleChainTransitivity(t *testing.T) {
	b := newTestBuilder()
	ancestorOf, _ := b.ObjectProperty("http://example.org#ancestorOf")
	a, _ := b.Class("http://example.org#A")
	c, _ := b.Class("http://example.org#C")

	_, err := b.AddAxiom(axiom.NewTransitiveObjectProperty(property.Atom(ancestorOf)))
	require.NoError(t, err)

	st, store := Normalize(b.Onto)
	roleID := st.InternRole(ancestorOf.Key())
	assert.True(t, store.IsTransitive(roleID))

	_ = a
	_ = c
}
