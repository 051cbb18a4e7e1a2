package cache

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classify"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/profile/validate"
)

func newTestOnto() *ontology.Ontology {
	return ontology.NewBuilder(iri.New(iri.DefaultConfig())).Onto
}

func newTestBuilder() *ontology.Builder {
	return ontology.NewBuilder(iri.New(iri.DefaultConfig()))
}

func TestResolveCachesByKey(t *testing.T) {
	c := NewDefault()
	onto := newTestOnto()
	key := ConsistencyKey(onto)

	var calls int32
	compute := func() (bool, error) {
		atomic.AddInt32(&calls, 1)
		return true, nil
	}

	v1, err := c.Bool(key, compute)
	require.NoError(t, err)
	assert.True(t, v1)

	v2, err := c.Bool(key, compute)
	require.NoError(t, err)
	assert.True(t, v2)
	assert.EqualValues(t, 1, calls, "second call should hit the cache, not recompute")
}

// TestOntologyVersionInvalidatesKey checks that mutating the ontology
// changes the key a caller would look up, so a stale cached value is
// never served after a mutation.
func TestOntologyVersionInvalidatesKey(t *testing.T) {
	b := newTestBuilder()
	dog, _ := b.Class("http://example.org#Dog")
	animal, _ := b.Class("http://example.org#Animal")

	before := ClassifyKey(b.Onto)

	_, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(dog), Sup: ontology.Atomic(animal)})
	require.NoError(t, err)

	after := ClassifyKey(b.Onto)
	assert.NotEqual(t, before, after, "adding an axiom should bump the version stamp and change the cache key")
}

// TestSingleflightCollapsesConcurrentMisses checks that N concurrent
// Resolve calls against the same never-before-seen key run compute once.
func TestSingleflightCollapsesConcurrentMisses(t *testing.T) {
	c := NewDefault()
	onto := newTestOnto()
	key := SatisfiabilityKey(onto, "http://example.org#Dog")

	var calls int32
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]bool, 16)

	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := c.Bool(key, func() (bool, error) {
				atomic.AddInt32(&calls, 1)
				return true, nil
			})
			require.NoError(t, err)
			results[i] = v
		}()
	}
	close(start)
	wg.Wait()

	for _, v := range results {
		assert.True(t, v)
	}
	assert.LessOrEqual(t, calls, int32(2), "singleflight should collapse nearly all concurrent identical misses")
}

// TestHierarchyRoundTripsThroughColdTier checks that a Hierarchy passed
// through the cold tier's encoding (encodeHierarchy, then decodeHierarchy)
// comes back with the same parents and children.
func TestHierarchyRoundTripsThroughColdTier(t *testing.T) {
	c := NewDefault()
	onto := newTestOnto()
	key := ClassifyKey(onto)

	h := &classify.Hierarchy{
		DirectParents:  map[string][]string{"Dog": {"Mammal"}},
		DirectChildren: map[string][]string{"Mammal": {"Dog"}},
		Equivalences:   map[string][]string{"Dog": {"Dog"}},
		Unsatisfiable:  map[string]bool{},
	}

	_, err := c.Hierarchy(key, func() (*classify.Hierarchy, error) { return h, nil })
	require.NoError(t, err)

	data, err := encodeHierarchy(h)
	require.NoError(t, err)
	decoded, err := decodeHierarchy(data)
	require.NoError(t, err)
	assert.Equal(t, h.DirectParents, decoded.DirectParents)
	assert.Equal(t, h.DirectChildren, decoded.DirectChildren)
}

// TestDemoteDropsLowPriorityReports checks that a low-violation invalid
// Report is not worth demoting to the cold tier.
func TestDemoteDropsLowPriorityReports(t *testing.T) {
	c := NewDefault()
	key := Key{Op: "ValidateProfile", Arg: "EL", Version: 1}

	lowPriority := validate.Report{Valid: false, Violations: []validate.Violation{{AxiomKey: "a", Clause: "x"}}}
	c.demote(key, lowPriority)
	_, ok := c.coldReport[key]
	assert.False(t, ok, "a small violation count should not be worth compressing")

	validReport := validate.Report{Valid: true}
	c.demote(key, validReport)
	_, ok = c.coldReport[key]
	assert.True(t, ok, "a Valid report is always worth keeping around compressed")
}
