package graph

import "github.com/anusornc/owl2-reasoner-sub000/internal/arena"

// unionFind implements node identification under Merge with path
// compression and union by rank, grounded on the same index-over-slice
// discipline the teacher's reasoner.SymbolTable uses for concept IDs
// (reasoner/index.go), generalized from string interning to node-identity
// folding.
type unionFind struct {
	parent []arena.NodeHandle
	rank   []uint8
}

func newUnionFind() *unionFind {
	return &unionFind{}
}

func (u *unionFind) makeSet(h arena.NodeHandle) {
	for int(h) >= len(u.parent) {
		u.parent = append(u.parent, arena.NodeHandle(len(u.parent)))
		u.rank = append(u.rank, 0)
	}
	u.parent[h] = h
}

// find returns h's representative, compressing the path traversed.
func (u *unionFind) find(h arena.NodeHandle) arena.NodeHandle {
	root := h
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[h] != root {
		next := u.parent[h]
		u.parent[h] = root
		h = next
	}
	return root
}

// union merges the sets containing a and b. a's representative always
// survives as the new root, matching Graph.Merge's documented into/from
// semantics; rank only decides which subtree gets relinked under it.
func (u *unionFind) union(a, b arena.NodeHandle) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}
