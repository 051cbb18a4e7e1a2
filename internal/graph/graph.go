// Package graph implements the completion graph (spec C4): nodes labeled
// with class expressions, edges labeled with object-property expressions,
// datatype successors, and the merge/clash-detection operations the
// tableau engine drives.
package graph

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/arena"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/datatype"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// BlockStatus records a node's blocking state (spec C4, C6).
type BlockStatus struct {
	Blocked  bool
	BlockedBy arena.NodeHandle
	Strategy string // name of the blocking strategy that fired, for tracing
}

// DatatypeSuccessor hangs a (data-property, literal-or-constraint) pair off
// a node; it is not a full graph node (spec.md §3).
type DatatypeSuccessor struct {
	Property property.DataProperty
	Literal  *datatype.Literal  // set when asserting a concrete value
	Range    datatype.Expr      // set when asserting ∃/∀ R.D
}

// Node is a completion-graph vertex.
type Node struct {
	ID         arena.NodeHandle
	Labels     *LabelSet
	Individual entity.Individual // nil for anonymous tableau nodes
	Block      BlockStatus
	Parent     arena.NodeHandle
	HasParent  bool
	DataSucc   []DatatypeSuccessor
	Distinct   map[arena.NodeHandle]bool // nodes this one is asserted ≠ to
}

// Edge is a directed, property-expression-labeled arc.
type Edge struct {
	ID       arena.EdgeHandle
	From, To arena.NodeHandle
	Property property.ObjectExpr
}

// AddOutcome reports the result of AddLabel (spec.md §4.4).
type AddOutcome uint8

const (
	Added AddOutcome = iota
	AlreadyPresent
	Clashed
)

// ClashKind enumerates the clash shapes spec.md §4.5 names.
type ClashKind uint8

const (
	ClashBottom ClashKind = iota
	ClashComplement
	ClashNominalCollision
	ClashCardinality
	ClashDatatypeEmpty
	ClashNegativePropertyAssertion
	ClashHasKeyCollision
)

// ClashInfo describes a detected contradiction, including the label/edge
// additions implicated so the backtracker can compute a support set.
type ClashInfo struct {
	Kind    ClashKind
	Node    arena.NodeHandle
	Detail  string
	Support []classexpr.Expr
}

// Graph is the per-run completion graph, built inside one Arena.
type Graph struct {
	arena *arena.Arena
	nodes []*Node
	edges []*Edge

	// succIndex[from] lists edge indices leaving `from`, for O(successors)
	// iteration; predIndex is the mirror for predecessors.
	succIndex map[arena.NodeHandle][]int
	predIndex map[arena.NodeHandle][]int

	uf *unionFind

	// nominalOf maps an individual's Key() to the representative node
	// asserted {a}, enforcing "nominal labels force node identification".
	nominalOf map[string]arena.NodeHandle
}

// New allocates an empty completion graph over a.
func New(a *arena.Arena) *Graph {
	return &Graph{
		arena:     a,
		succIndex: make(map[arena.NodeHandle][]int),
		predIndex: make(map[arena.NodeHandle][]int),
		uf:        newUnionFind(),
		nominalOf: make(map[string]arena.NodeHandle),
	}
}

// NewNode creates a node with an optional initial label set, O(1).
func (g *Graph) NewNode(initial ...classexpr.Expr) *Node {
	h := g.arena.NewNodeHandle()
	n := &Node{ID: h, Labels: NewLabelSet(), Distinct: make(map[arena.NodeHandle]bool)}
	for _, e := range initial {
		n.Labels.Add(e)
	}
	g.nodes = append(g.nodes, n)
	g.uf.makeSet(h)
	return n
}

// Node returns the live node for h, resolving through the union-find
// representative table so callers never observe a displaced node.
func (g *Graph) Node(h arena.NodeHandle) *Node {
	rep := g.uf.find(h)
	return g.nodes[rep]
}

// NodeCount returns the number of nodes created (including ones later
// merged away), matching Arena.NodeCount for budget checks.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// AddLabel adds expr to x's label set, detecting the clash kinds spec.md
// §4.4 names: ⊥, C and ¬C both present, and distinct-nominal collision.
// Cardinality and datatype clashes require broader context and are
// detected by the tableau engine, which calls AddLabel only after it has
// independently ruled those out for the expression being added.
func (g *Graph) AddLabel(h arena.NodeHandle, expr classexpr.Expr) (AddOutcome, *ClashInfo) {
	n := g.Node(h)

	if _, isBottom := expr.(classexpr.Bottom); isBottom {
		n.Labels.Add(expr)
		return Clashed, &ClashInfo{Kind: ClashBottom, Node: n.ID, Detail: "⊥ asserted", Support: []classexpr.Expr{expr}}
	}

	if n.Labels.Contains(expr) {
		return AlreadyPresent, nil
	}

	if comp, ok := expr.(classexpr.Complement); ok {
		if n.Labels.Contains(comp.Operand) {
			n.Labels.Add(expr)
			return Clashed, &ClashInfo{Kind: ClashComplement, Node: n.ID,
				Detail: "complementary labels " + comp.Operand.String() + " and " + expr.String(),
				Support: []classexpr.Expr{comp.Operand, expr}}
		}
	} else {
		negated := classexpr.Complement{Operand: expr}
		if n.Labels.Contains(negated) {
			n.Labels.Add(expr)
			return Clashed, &ClashInfo{Kind: ClashComplement, Node: n.ID,
				Detail: "complementary labels " + expr.String() + " and " + negated.String(),
				Support: []classexpr.Expr{expr, negated}}
		}
	}

	if nom, ok := expr.(classexpr.Nominal); ok && len(nom.Individuals) == 1 {
		key := nom.Individuals[0].Key()
		if existing, seen := g.nominalOf[key]; seen && g.uf.find(existing) != g.uf.find(n.ID) {
			// Two nodes both claim the same nominal identity: this is not
			// itself a clash (it triggers the nominal merge rule, CR10 in
			// spec.md §4.5), but asserting two *distinct* nominals on the
			// *same* node is.
		}
		for _, other := range n.Labels.All() {
			if otherNom, ok := other.(classexpr.Nominal); ok && len(otherNom.Individuals) == 1 {
				if otherNom.Individuals[0].Key() != key {
					n.Labels.Add(expr)
					return Clashed, &ClashInfo{Kind: ClashNominalCollision, Node: n.ID,
						Detail: "node already carries distinct nominal " + otherNom.Individuals[0].Key(),
						Support: []classexpr.Expr{other, expr}}
				}
			}
		}
		g.nominalOf[key] = n.ID
	}

	n.Labels.Add(expr)
	return Added, nil
}

// AddEdge adds a directed, property-labeled arc, eliding exact duplicates.
func (g *Graph) AddEdge(from, to arena.NodeHandle, prop property.ObjectExpr) *Edge {
	from, to = g.uf.find(from), g.uf.find(to)
	for _, idx := range g.succIndex[from] {
		e := g.edges[idx]
		if e.To == to && e.Property == prop {
			return e
		}
	}
	h := g.arena.NewEdgeHandle()
	e := &Edge{ID: h, From: from, To: to, Property: prop}
	idx := len(g.edges)
	g.edges = append(g.edges, e)
	g.succIndex[from] = append(g.succIndex[from], idx)
	g.predIndex[to] = append(g.predIndex[to], idx)
	return e
}

// MergeReceipt records what Merge changed, for rollback by the backtracker.
type MergeReceipt struct {
	Into, From    arena.NodeHandle
	RehomedEdges  []arena.EdgeHandle
	AddedLabels   []classexpr.Expr
}

// Merge folds from into into: labels unioned (re-checking for clash),
// incident edges re-homed, union-find updated so future Node() calls on
// either handle resolve to into.
func (g *Graph) Merge(into, from arena.NodeHandle) (*MergeReceipt, *ClashInfo) {
	intoN, fromN := g.Node(into), g.Node(from)
	if intoN.ID == fromN.ID {
		return &MergeReceipt{Into: into, From: from}, nil
	}

	receipt := &MergeReceipt{Into: into, From: from}
	for _, l := range fromN.Labels.All() {
		outcome, clash := g.AddLabel(intoN.ID, l)
		if outcome == Clashed {
			return receipt, clash
		}
		if outcome == Added {
			receipt.AddedLabels = append(receipt.AddedLabels, l)
		}
	}

	for _, idx := range g.succIndex[fromN.ID] {
		e := g.edges[idx]
		e.From = intoN.ID
		g.succIndex[intoN.ID] = append(g.succIndex[intoN.ID], idx)
		receipt.RehomedEdges = append(receipt.RehomedEdges, e.ID)
	}
	for _, idx := range g.predIndex[fromN.ID] {
		e := g.edges[idx]
		e.To = intoN.ID
		g.predIndex[intoN.ID] = append(g.predIndex[intoN.ID], idx)
	}
	delete(g.succIndex, fromN.ID)
	delete(g.predIndex, fromN.ID)

	g.uf.union(intoN.ID, fromN.ID)
	return receipt, nil
}

// Successors returns the target nodes reachable from h via prop.
func (g *Graph) Successors(h arena.NodeHandle, prop property.ObjectExpr) []arena.NodeHandle {
	h = g.uf.find(h)
	var out []arena.NodeHandle
	for _, idx := range g.succIndex[h] {
		e := g.edges[idx]
		if e.Property == prop {
			out = append(out, g.uf.find(e.To))
		}
	}
	return out
}

// Predecessors returns the source nodes with an edge labeled prop into h.
func (g *Graph) Predecessors(h arena.NodeHandle, prop property.ObjectExpr) []arena.NodeHandle {
	h = g.uf.find(h)
	var out []arena.NodeHandle
	for _, idx := range g.predIndex[h] {
		e := g.edges[idx]
		if e.Property == prop {
			out = append(out, g.uf.find(e.From))
		}
	}
	return out
}

// RNeighbours returns every node reachable from h via prop, folding the
// inverse direction when prop.Inverse is set (spec.md §4.4).
func (g *Graph) RNeighbours(h arena.NodeHandle, prop property.ObjectExpr) []arena.NodeHandle {
	if prop.Inverse {
		return g.Predecessors(h, prop.Inv())
	}
	return g.Successors(h, prop)
}

// AllEdgesFrom returns every outgoing edge of h, any property.
func (g *Graph) AllEdgesFrom(h arena.NodeHandle) []*Edge {
	h = g.uf.find(h)
	out := make([]*Edge, 0, len(g.succIndex[h]))
	for _, idx := range g.succIndex[h] {
		out = append(out, g.edges[idx])
	}
	return out
}

// AllEdgesTo returns every incoming edge of h, any property.
func (g *Graph) AllEdgesTo(h arena.NodeHandle) []*Edge {
	h = g.uf.find(h)
	out := make([]*Edge, 0, len(g.predIndex[h]))
	for _, idx := range g.predIndex[h] {
		out = append(out, g.edges[idx])
	}
	return out
}

// AddDatatypeSuccessor hangs a datatype successor off h.
func (g *Graph) AddDatatypeSuccessor(h arena.NodeHandle, ds DatatypeSuccessor) {
	n := g.Node(h)
	n.DataSucc = append(n.DataSucc, ds)
}

// MarkDistinct records that x and y must denote different individuals,
// used by the ≥n-cardinality rule's "mutually distinct" requirement.
func (g *Graph) MarkDistinct(x, y arena.NodeHandle) {
	x, y = g.uf.find(x), g.uf.find(y)
	g.Node(x).Distinct[y] = true
	g.Node(y).Distinct[x] = true
}

// AreDistinct reports whether x and y were marked distinct.
func (g *Graph) AreDistinct(x, y arena.NodeHandle) bool {
	x, y = g.uf.find(x), g.uf.find(y)
	return g.Node(x).Distinct[y]
}

// Representative resolves h through the union-find table, for callers that
// hold a stale handle across a Merge.
func (g *Graph) Representative(h arena.NodeHandle) arena.NodeHandle { return g.uf.find(h) }

// Snapshot is an opaque copy of graph state, taken before trying a
// non-deterministic rule's alternative (spec.md §4.6 choice points) so a
// failed branch can be rolled back without replaying the whole run.
type Snapshot struct {
	nodes     []*Node
	edges     []*Edge
	succIndex map[arena.NodeHandle][]int
	predIndex map[arena.NodeHandle][]int
	ufParent  []arena.NodeHandle
	ufRank    []uint8
	nominalOf map[string]arena.NodeHandle
}

func cloneNode(n *Node) *Node {
	cp := *n
	cp.Labels = &LabelSet{
		keys:  append([]string(nil), n.Labels.keys...),
		exprs: append([]classexpr.Expr(nil), n.Labels.exprs...),
	}
	cp.DataSucc = append([]DatatypeSuccessor(nil), n.DataSucc...)
	cp.Distinct = make(map[arena.NodeHandle]bool, len(n.Distinct))
	for k, v := range n.Distinct {
		cp.Distinct[k] = v
	}
	return &cp
}

func cloneIndex(idx map[arena.NodeHandle][]int) map[arena.NodeHandle][]int {
	cp := make(map[arena.NodeHandle][]int, len(idx))
	for k, v := range idx {
		cp[k] = append([]int(nil), v...)
	}
	return cp
}

// Snapshot captures the full graph state. O(graph size); called once per
// choice point, not per rule application.
func (g *Graph) Snapshot() *Snapshot {
	nodes := make([]*Node, len(g.nodes))
	for i, n := range g.nodes {
		nodes[i] = cloneNode(n)
	}
	edges := make([]*Edge, len(g.edges))
	for i, e := range g.edges {
		cp := *e
		edges[i] = &cp
	}
	nominalOf := make(map[string]arena.NodeHandle, len(g.nominalOf))
	for k, v := range g.nominalOf {
		nominalOf[k] = v
	}
	return &Snapshot{
		nodes:     nodes,
		edges:     edges,
		succIndex: cloneIndex(g.succIndex),
		predIndex: cloneIndex(g.predIndex),
		ufParent:  append([]arena.NodeHandle(nil), g.uf.parent...),
		ufRank:    append([]uint8(nil), g.uf.rank...),
		nominalOf: nominalOf,
	}
}

// Restore replays a Snapshot over the current graph, undoing every label,
// edge, and merge applied since it was taken.
func (g *Graph) Restore(s *Snapshot) {
	g.nodes = make([]*Node, len(s.nodes))
	for i, n := range s.nodes {
		g.nodes[i] = cloneNode(n)
	}
	g.edges = make([]*Edge, len(s.edges))
	for i, e := range s.edges {
		cp := *e
		g.edges[i] = &cp
	}
	g.succIndex = cloneIndex(s.succIndex)
	g.predIndex = cloneIndex(s.predIndex)
	g.uf.parent = append([]arena.NodeHandle(nil), s.ufParent...)
	g.uf.rank = append([]uint8(nil), s.ufRank...)
	g.nominalOf = make(map[string]arena.NodeHandle, len(s.nominalOf))
	for k, v := range s.nominalOf {
		g.nominalOf[k] = v
	}
}
