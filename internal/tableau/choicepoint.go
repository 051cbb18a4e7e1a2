package tableau

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/arena"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/graph"
)

// choiceKind discriminates the two non-deterministic rule families
// spec.md §4.5 names: disjunction and cardinality-merge resolution.
type choiceKind uint8

const (
	choiceDisjunction choiceKind = iota
	choiceCardinalityMerge
)

// choicePoint is one entry of the backtracking stack (spec.md §4.6): the
// node+expression that induced it, its untried alternatives, and a
// pre-alternative graph snapshot for rollback.
type choicePoint struct {
	Kind    choiceKind
	Node    arena.NodeHandle
	Induced classexpr.Expr

	disjunctionOperands []classexpr.Expr
	mergePairs          [][2]arena.NodeHandle

	Tried    int // index of the alternative currently applied
	Snapshot *graph.Snapshot
}

func (cp *choicePoint) numAlternatives() int {
	switch cp.Kind {
	case choiceDisjunction:
		return len(cp.disjunctionOperands)
	case choiceCardinalityMerge:
		return len(cp.mergePairs)
	default:
		return 0
	}
}

// nextChoicePoint scans for the first non-deterministic opportunity, node
// id ascending, disjunctions before cardinality-merge choices at the same
// node (spec.md §4.5's rule-ordering policy applied to choice selection).
func (e *Engine) nextChoicePoint() (*choicePoint, bool) {
	for i := 0; i < e.g.NodeCount(); i++ {
		h := arena.NodeHandle(i)
		node := e.g.Node(h)
		if node.ID != h || node.Block.Blocked {
			continue
		}
		for _, l := range node.Labels.All() {
			u, ok := l.(classexpr.Union)
			if !ok {
				continue
			}
			satisfied := false
			for _, op := range u.Operands {
				if node.Labels.Contains(op) {
					satisfied = true
					break
				}
			}
			if !satisfied {
				return &choicePoint{Kind: choiceDisjunction, Node: h, Induced: l, disjunctionOperands: u.Operands}, true
			}
		}
	}
	for i := 0; i < e.g.NodeCount(); i++ {
		h := arena.NodeHandle(i)
		node := e.g.Node(h)
		if node.ID != h || node.Block.Blocked {
			continue
		}
		for _, l := range node.Labels.All() {
			card, ok := l.(classexpr.ObjectCardinality)
			if !ok {
				continue
			}
			if card.Kind() != classexpr.KindObjectMaxCardinality && card.Kind() != classexpr.KindObjectExactCardinality {
				continue
			}
			matching := e.matchingRNeighbours(h, card)
			if len(matching) <= card.N {
				continue
			}
			pairs := e.mergeablePairs(matching)
			if len(pairs) > 0 {
				return &choicePoint{Kind: choiceCardinalityMerge, Node: h, Induced: l, mergePairs: pairs}, true
			}
		}
	}
	return nil, false
}

func (e *Engine) matchingRNeighbours(h arena.NodeHandle, card classexpr.ObjectCardinality) []arena.NodeHandle {
	var out []arena.NodeHandle
	for _, y := range e.g.RNeighbours(h, card.Property) {
		if card.Filler == nil || e.g.Node(y).Labels.Contains(card.Filler) {
			out = append(out, y)
		}
	}
	return out
}

// mergeablePairs returns every pair of neighbours not already marked
// mutually distinct (merging a distinct pair is unsound and is instead
// reported as a clash by clash.go's cardinality check).
func (e *Engine) mergeablePairs(neighbours []arena.NodeHandle) [][2]arena.NodeHandle {
	var pairs [][2]arena.NodeHandle
	for i := range neighbours {
		for j := range neighbours {
			if i >= j {
				continue
			}
			if !e.g.AreDistinct(neighbours[i], neighbours[j]) {
				pairs = append(pairs, [2]arena.NodeHandle{neighbours[i], neighbours[j]})
			}
		}
	}
	return pairs
}

// tryChoicePoint snapshots the graph, pushes cp onto the stack, and
// applies its first alternative.
func (e *Engine) tryChoicePoint(cp *choicePoint) *graph.ClashInfo {
	cp.Snapshot = e.g.Snapshot()
	e.cps = append(e.cps, cp)
	return e.applyAlternative(cp)
}

// applyAlternative applies cp's alternative at index cp.Tried.
func (e *Engine) applyAlternative(cp *choicePoint) *graph.ClashInfo {
	switch cp.Kind {
	case choiceDisjunction:
		_, clash := e.g.AddLabel(cp.Node, cp.disjunctionOperands[cp.Tried])
		return clash
	case choiceCardinalityMerge:
		pair := cp.mergePairs[cp.Tried]
		_, clash := e.g.Merge(pair[0], pair[1])
		return clash
	default:
		return nil
	}
}
