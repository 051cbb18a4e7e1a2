// Package arena implements the bump allocator a reasoning run uses for
// completion-graph nodes and edges (spec C3). Nodes/edges are referenced by
// small integer handles; back-references never cross into raw pointers, so
// the whole arena releases in O(1) regardless of graph shape (spec.md §9).
package arena

import (
	"sync"

	"github.com/google/uuid"
)

// NodeHandle and EdgeHandle are arena-local integer indices.
type NodeHandle int32
type EdgeHandle int32

// Arena is a private, per-run bump allocator. Concurrent runs each acquire
// their own Arena from the pool below; no mutable state crosses runs.
type Arena struct {
	// RunID correlates log lines for one reasoning run (ambient logging,
	// SPEC_FULL.md §4.3); it never participates in addressing.
	RunID uuid.UUID

	nextNode NodeHandle
	nextEdge EdgeHandle
}

var pool = sync.Pool{New: func() any { return &Arena{} }}

// Acquire obtains an Arena from the process pool, resetting its counters
// and assigning a fresh run ID.
func Acquire() *Arena {
	a := pool.Get().(*Arena)
	a.RunID = uuid.New()
	a.nextNode = 0
	a.nextEdge = 0
	return a
}

// Release returns the Arena to the pool for reuse. Callers must not
// retain any NodeHandle/EdgeHandle derived from this Arena afterward; the
// completion graph built on top of it is expected to be dropped in the
// same scope (spec.md §4.3, testable property 8).
func (a *Arena) Release() {
	pool.Put(a)
}

// NewNodeHandle allocates the next node index in O(1).
func (a *Arena) NewNodeHandle() NodeHandle {
	h := a.nextNode
	a.nextNode++
	return h
}

// NewEdgeHandle allocates the next edge index in O(1).
func (a *Arena) NewEdgeHandle() EdgeHandle {
	h := a.nextEdge
	a.nextEdge++
	return h
}

// NodeCount and EdgeCount report the number of handles issued so far,
// used by the engine's ResourceExhausted{Nodes} budget check.
func (a *Arena) NodeCount() int { return int(a.nextNode) }
func (a *Arena) EdgeCount() int { return int(a.nextEdge) }
