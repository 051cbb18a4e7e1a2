package tableau

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/arena"
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/datatype"
	"github.com/anusornc/owl2-reasoner-sub000/internal/graph"
)

// detectStructuralClashes checks the clash kinds that span more than a
// single label addition and so cannot be caught inline by
// graph.Graph.AddLabel: cardinality violated by n+1 pairwise-distinct
// witnesses, an empty datatype constraint, a contradicted negative
// property assertion, and a HasKey collision (spec.md §4.5's clash-kind
// list, last four entries).
func (e *Engine) detectStructuralClashes() *graph.ClashInfo {
	if c := e.detectCardinalityClash(); c != nil {
		return c
	}
	if c := e.detectDatatypeClash(); c != nil {
		return c
	}
	if c := e.detectNegativeAssertionClash(); c != nil {
		return c
	}
	if c := e.detectHasKeyClash(); c != nil {
		return c
	}
	return nil
}

func (e *Engine) detectCardinalityClash() *graph.ClashInfo {
	for i := 0; i < e.g.NodeCount(); i++ {
		h := arena.NodeHandle(i)
		node := e.g.Node(h)
		if node.ID != h {
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
			if len(e.mergeablePairs(matching)) == 0 {
				return &graph.ClashInfo{Kind: graph.ClashCardinality, Node: h,
					Detail: "cardinality bound violated by pairwise-distinct witnesses", Support: []classexpr.Expr{l}}
			}
		}
	}
	return nil
}

// detectDatatypeClash aggregates every datatype successor sharing a
// property on a node into a single datatype.Expr and asks the per-base
// solver whether the intersection is satisfiable.
func (e *Engine) detectDatatypeClash() *graph.ClashInfo {
	for i := 0; i < e.g.NodeCount(); i++ {
		h := arena.NodeHandle(i)
		node := e.g.Node(h)
		if node.ID != h {
			continue
		}
		byProp := make(map[string][]datatype.Expr)
		for _, ds := range node.DataSucc {
			key := ds.Property.Key()
			if ds.Range != nil {
				byProp[key] = append(byProp[key], ds.Range)
			}
			if ds.Literal != nil {
				byProp[key] = append(byProp[key], datatype.OneOf{Literals: []datatype.Literal{*ds.Literal}})
			}
		}
		for propKey, exprs := range byProp {
			if len(exprs) < 2 {
				continue
			}
			combined := datatype.Intersection{Operands: exprs}
			ok, _ := datatype.Satisfiable(combined)
			if !ok {
				return &graph.ClashInfo{Kind: graph.ClashDatatypeEmpty, Node: h,
					Detail: "datatype constraints on " + propKey + " have no common value"}
			}
		}
	}
	return nil
}

func (e *Engine) detectNegativeAssertionClash() *graph.ClashInfo {
	for _, na := range e.negObjAssertions {
		src, tgt := e.g.Representative(na.Source), e.g.Representative(na.Target)
		for _, y := range e.g.RNeighbours(src, na.Property) {
			if e.g.Representative(y) == tgt {
				return &graph.ClashInfo{Kind: graph.ClashNegativePropertyAssertion, Node: src,
					Detail: "negative object property assertion contradicted by an asserted edge"}
			}
		}
	}
	for _, na := range e.negDataAssertions {
		src := e.g.Representative(na.Source)
		node := e.g.Node(src)
		for _, ds := range node.DataSucc {
			if ds.Property.Key() == na.Property.Key() && ds.Literal != nil && ds.Literal.Lexical == na.Literal {
				return &graph.ClashInfo{Kind: graph.ClashNegativePropertyAssertion, Node: src,
					Detail: "negative data property assertion contradicted by an asserted value"}
			}
		}
	}
	return nil
}

// detectHasKeyClash implements the consistency-only HasKey semantics
// decided in DESIGN.md: two individuals agreeing on every key property
// but already asserted DifferentIndividuals is a clash; HasKey never
// forces a merge and never feeds classification.
func (e *Engine) detectHasKeyClash() *graph.ClashInfo {
	for _, hk := range e.hasKeys {
		var candidates []arena.NodeHandle
		for i := 0; i < e.g.NodeCount(); i++ {
			h := arena.NodeHandle(i)
			node := e.g.Node(h)
			if node.ID != h {
				continue
			}
			if node.Labels.Contains(hk.Class) {
				candidates = append(candidates, h)
			}
		}
		for i := range candidates {
			for j := range candidates {
				if i >= j {
					continue
				}
				x, y := candidates[i], candidates[j]
				if !e.g.AreDistinct(x, y) {
					continue
				}
				if e.agreesOnKey(x, y, hk) {
					return &graph.ClashInfo{Kind: graph.ClashHasKeyCollision, Node: x,
						Detail: "individuals agree on every HasKey property but are asserted distinct"}
				}
			}
		}
	}
	return nil
}

func (e *Engine) agreesOnKey(x, y arena.NodeHandle, hk axiom.HasKey) bool {
	for _, p := range hk.ObjectProps {
		if !sameNeighbourSet(e.g.RNeighbours(x, p), e.g.RNeighbours(y, p), e.g) {
			return false
		}
	}
	for _, dp := range hk.DataProps {
		if !sameDataValues(e.g.Node(x).DataSucc, e.g.Node(y).DataSucc, dp.Key()) {
			return false
		}
	}
	return true
}

func sameNeighbourSet(a, b []arena.NodeHandle, g interface {
	Representative(arena.NodeHandle) arena.NodeHandle
}) bool {
	if len(a) != len(b) {
		return false
	}
	repsA := make(map[arena.NodeHandle]bool, len(a))
	for _, n := range a {
		repsA[g.Representative(n)] = true
	}
	for _, n := range b {
		if !repsA[g.Representative(n)] {
			return false
		}
	}
	return true
}

func sameDataValues(a, b []graph.DatatypeSuccessor, propKey string) bool {
	var va, vb []string
	for _, ds := range a {
		if ds.Property.Key() == propKey && ds.Literal != nil {
			va = append(va, ds.Literal.Lexical)
		}
	}
	for _, ds := range b {
		if ds.Property.Key() == propKey && ds.Literal != nil {
			vb = append(vb, ds.Literal.Lexical)
		}
	}
	if len(va) != len(vb) {
		return false
	}
	for _, v := range va {
		found := false
		for _, w := range vb {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
