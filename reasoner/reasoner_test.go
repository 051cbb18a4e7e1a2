package reasoner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
)

func newTestBuilder() *ontology.Builder {
	return ontology.NewBuilder(iri.New(iri.DefaultConfig()))
}

func TestSubsumptionAndConsistency(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(animal)})
	require.NoError(t, err)

	r := New(b.Onto)

	ok, err := r.IsSubClassOf("http://example.org#Dog", "http://example.org#Animal")
	require.NoError(t, err)
	assert.True(t, ok, "Dog should be a subclass of Animal")

	ok, err = r.IsSubClassOf("http://example.org#Animal", "http://example.org#Dog")
	require.NoError(t, err)
	assert.False(t, ok, "Animal should not be a subclass of Dog")

	consistent, err := r.IsConsistent()
	require.NoError(t, err)
	assert.True(t, consistent)

	sat, err := r.IsSatisfiable("http://example.org#Dog")
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestUnsatisfiableClassViaDisjointness(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	_, err := b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(dog),
		Sup: classexpr.Complement{Operand: ontology.Atomic(dog)},
	})
	require.NoError(t, err)

	r := New(b.Onto)
	sat, err := r.IsSatisfiable("http://example.org#Dog")
	require.NoError(t, err)
	assert.False(t, sat, "Dog ⊑ ¬Dog should make Dog unsatisfiable")
}

func TestClassifyBuildsDirectHierarchy(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")
	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(animal)})
	require.NoError(t, err)

	r := New(b.Onto)
	h, err := r.Classify()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://example.org#Animal"}, h.DirectParents["http://example.org#Dog"])
	assert.Equal(t, []string{"http://example.org#Dog"}, h.DirectChildren["http://example.org#Animal"])
	assert.False(t, h.Unsatisfiable["http://example.org#Dog"])
}

func TestInstancesOfAndTypesOf(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	rex, _ := b.NamedIndividual("http://example.org#Rex")
	_, err := b.AddAxiom(axiom.ClassAssertion{Individual: rex, Class: ontology.Atomic(dog)})
	require.NoError(t, err)

	r := New(b.Onto)

	instances, err := r.InstancesOf("http://example.org#Dog")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://example.org#Rex"}, instances)

	types, err := r.TypesOf("http://example.org#Rex")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://example.org#Dog"}, types)
}

func TestUnknownIriIsInvalidIriError(t *testing.T) {
	b := newTestBuilder()
	r := New(b.Onto)

	_, err := r.IsSatisfiable("http://example.org#Ghost")
	require.Error(t, err)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, InvalidIRI, rerr.Kind)
}

func TestValidateProfileRejectsUnknownName(t *testing.T) {
	b := newTestBuilder()
	r := New(b.Onto)

	_, err := r.ValidateProfile("OWL-Full")
	require.Error(t, err)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, UnsupportedConstruct, rerr.Kind)
}

func TestValidateProfileAcceptsEmptyOntology(t *testing.T) {
	b := newTestBuilder()
	r := New(b.Onto)

	report, err := r.ValidateProfile("EL")
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Equal(t, "EL", report.Profile)
}

func TestValidateAllProfilesRunsConcurrently(t *testing.T) {
	b := newTestBuilder()
	r := New(b.Onto)

	reports, err := r.ValidateAllProfiles()
	require.NoError(t, err)
	require.Len(t, reports, 3)
	for _, name := range []string{"EL", "QL", "RL"} {
		rep, ok := reports[name]
		require.True(t, ok, "missing report for %s", name)
		assert.True(t, rep.Valid)
	}
}

func TestOntologyVersionChangesCacheResult(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	r := New(b.Onto)

	sat, err := r.IsSatisfiable("http://example.org#Dog")
	require.NoError(t, err)
	assert.True(t, sat)

	_, err = b.AddAxiom(axiom.SubClassOf{
		Sub: ontology.Atomic(dog),
		Sup: classexpr.Complement{Operand: ontology.Atomic(dog)},
	})
	require.NoError(t, err)

	sat, err = r.IsSatisfiable("http://example.org#Dog")
	require.NoError(t, err)
	assert.False(t, sat, "mutating the ontology must bust the cached satisfiability result")
}
