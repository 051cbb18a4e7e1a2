package tableau

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// TestIsBlockedBySubsetAncestor exercises the subset-blocking strategy
// directly: a descendant whose label set is a subset of its parent's is
// blocked, and a fresh root with no parent never is.
func TestIsBlockedBySubsetAncestor(t *testing.T) {
	b := newTestBuilder()
	c, _ := b.Class("http://example.org#C")
	d, _ := b.Class("http://example.org#D")
	hasPet, err := b.ObjectProperty("http://example.org#hasPet")
	require.NoError(t, err)
	cExpr := ontology.Atomic(c)
	dExpr := ontology.Atomic(d)

	eng := New(b.Onto, DefaultConfig())
	defer eng.Release()

	root, clash := eng.NewRootNode(cExpr, dExpr)
	require.Nil(t, clash)
	assert.False(t, eng.isBlocked(root), "a node with no parent is never blocked")

	child, clash := eng.addExistentialWitness(root, property.Atom(hasPet), cExpr)
	require.Nil(t, clash)
	assert.True(t, eng.isBlocked(child), "child's label set C is a subset of the root's {C, D}")
}

// TestIsBlockedRequiresSubset confirms a descendant carrying a label the
// ancestor lacks is not blocked.
func TestIsBlockedRequiresSubset(t *testing.T) {
	b := newTestBuilder()
	c, _ := b.Class("http://example.org#C")
	e, _ := b.Class("http://example.org#E")
	hasPet, err := b.ObjectProperty("http://example.org#hasPet")
	require.NoError(t, err)
	cExpr := ontology.Atomic(c)
	eExpr := ontology.Atomic(e)

	eng := New(b.Onto, DefaultConfig())
	defer eng.Release()

	root, clash := eng.NewRootNode(cExpr)
	require.Nil(t, clash)

	child, clash := eng.addExistentialWitness(root, property.Atom(hasPet), nil)
	require.Nil(t, clash)
	_, addClash := eng.Graph().AddLabel(child, eExpr)
	require.Nil(t, addClash)

	assert.False(t, eng.isBlocked(child), "child carries E, which the root does not")
}
