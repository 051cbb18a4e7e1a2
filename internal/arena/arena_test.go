package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlesBumpAllocate(t *testing.T) {
	a := Acquire()
	defer a.Release()

	n0 := a.NewNodeHandle()
	n1 := a.NewNodeHandle()
	e0 := a.NewEdgeHandle()

	assert.Equal(t, NodeHandle(0), n0)
	assert.Equal(t, NodeHandle(1), n1)
	assert.Equal(t, EdgeHandle(0), e0)
	assert.Equal(t, 2, a.NodeCount())
	assert.Equal(t, 1, a.EdgeCount())
}

func TestAcquireResetsCounters(t *testing.T) {
	a := Acquire()
	a.NewNodeHandle()
	a.NewNodeHandle()
	a.Release()

	b := Acquire()
	defer b.Release()
	assert.Equal(t, 0, b.NodeCount())
	assert.Equal(t, NodeHandle(0), b.NewNodeHandle())
}

func TestAcquireAssignsDistinctRunIDs(t *testing.T) {
	a := Acquire()
	id1 := a.RunID
	a.Release()

	b := Acquire()
	defer b.Release()
	assert.NotEqual(t, id1, b.RunID)
}
