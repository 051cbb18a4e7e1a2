package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/arena"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

func testClass(t *testing.T, in *iri.Interner, name string) entity.Class {
	t.Helper()
	h, err := in.Intern(name)
	require.NoError(t, err)
	return entity.Class{IRI: h}
}

func TestAddLabelDetectsBottomClash(t *testing.T) {
	a := arena.Acquire()
	defer a.Release()
	g := New(a)
	n := g.NewNode()

	outcome, clash := g.AddLabel(n.ID, classexpr.Bottom{})
	assert.Equal(t, Clashed, outcome)
	require.NotNil(t, clash)
	assert.Equal(t, ClashBottom, clash.Kind)
}

func TestAddLabelDetectsComplementClash(t *testing.T) {
	a := arena.Acquire()
	defer a.Release()
	g := New(a)
	in := iri.New(iri.DefaultConfig())
	c := testClass(t, in, "http://example.org#C")

	n := g.NewNode()
	outcome, clash := g.AddLabel(n.ID, classexpr.Atomic{Class: c})
	assert.Equal(t, Added, outcome)
	assert.Nil(t, clash)

	outcome, clash = g.AddLabel(n.ID, classexpr.Complement{Operand: classexpr.Atomic{Class: c}})
	assert.Equal(t, Clashed, outcome)
	require.NotNil(t, clash)
	assert.Equal(t, ClashComplement, clash.Kind)
}

func TestAddLabelIsIdempotent(t *testing.T) {
	a := arena.Acquire()
	defer a.Release()
	g := New(a)
	in := iri.New(iri.DefaultConfig())
	c := testClass(t, in, "http://example.org#C")
	n := g.NewNode()

	outcome, _ := g.AddLabel(n.ID, classexpr.Atomic{Class: c})
	assert.Equal(t, Added, outcome)
	outcome, _ = g.AddLabel(n.ID, classexpr.Atomic{Class: c})
	assert.Equal(t, AlreadyPresent, outcome)
}

func TestMergeUnionsLabelsAndRehomesEdges(t *testing.T) {
	a := arena.Acquire()
	defer a.Release()
	g := New(a)
	in := iri.New(iri.DefaultConfig())
	c1 := testClass(t, in, "http://example.org#C1")
	c2 := testClass(t, in, "http://example.org#C2")
	opIRI, err := in.Intern("http://example.org#r")
	require.NoError(t, err)
	r := property.Atom(entity.ObjectProperty{IRI: opIRI})

	n1 := g.NewNode(classexpr.Atomic{Class: c1})
	n2 := g.NewNode(classexpr.Atomic{Class: c2})
	n3 := g.NewNode()
	g.AddEdge(n2.ID, n3.ID, r)

	receipt, clash := g.Merge(n1.ID, n2.ID)
	require.Nil(t, clash)
	assert.Equal(t, n1.ID, receipt.Into)

	merged := g.Node(n1.ID)
	assert.True(t, merged.Labels.Contains(classexpr.Atomic{Class: c1}))
	assert.True(t, merged.Labels.Contains(classexpr.Atomic{Class: c2}))

	succ := g.Successors(n1.ID, r)
	require.Len(t, succ, 1)
	assert.Equal(t, g.Representative(n3.ID), succ[0])

	// n2's handle now resolves to n1's node.
	assert.Equal(t, g.Node(n1.ID), g.Node(n2.ID))
}

func TestRNeighboursFoldsInverse(t *testing.T) {
	a := arena.Acquire()
	defer a.Release()
	g := New(a)
	in := iri.New(iri.DefaultConfig())
	opIRI, err := in.Intern("http://example.org#r")
	require.NoError(t, err)
	r := property.Atom(entity.ObjectProperty{IRI: opIRI})

	x := g.NewNode()
	y := g.NewNode()
	g.AddEdge(x.ID, y.ID, r)

	assert.Equal(t, []arena.NodeHandle{y.ID}, g.RNeighbours(x.ID, r))
	assert.Equal(t, []arena.NodeHandle{x.ID}, g.RNeighbours(y.ID, r.Inv()))
}

func TestNominalCollisionClash(t *testing.T) {
	a := arena.Acquire()
	defer a.Release()
	g := New(a)
	in := iri.New(iri.DefaultConfig())
	ind1IRI, err := in.Intern("http://example.org#a")
	require.NoError(t, err)
	ind2IRI, err := in.Intern("http://example.org#b")
	require.NoError(t, err)
	ind1 := entity.NamedIndividual{IRI: ind1IRI}
	ind2 := entity.NamedIndividual{IRI: ind2IRI}

	n := g.NewNode()
	outcome, clash := g.AddLabel(n.ID, classexpr.Nominal{Individuals: []entity.Individual{ind1}})
	assert.Equal(t, Added, outcome)
	assert.Nil(t, clash)

	outcome, clash = g.AddLabel(n.ID, classexpr.Nominal{Individuals: []entity.Individual{ind2}})
	assert.Equal(t, Clashed, outcome)
	require.NotNil(t, clash)
	assert.Equal(t, ClashNominalCollision, clash.Kind)
}
