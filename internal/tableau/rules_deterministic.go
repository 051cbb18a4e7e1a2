package tableau

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/arena"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/datatype"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/graph"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// saturateDeterministic applies the deterministic rules (spec.md §4.5,
// items 1, 2, 3, 4, 5, 6, 7, 8, 9, 10) to every open node until a full
// pass makes no further change, or a clash is found.
func (e *Engine) saturateDeterministic() (progressed bool, clash *graph.ClashInfo) {
	changed := true
	for changed {
		changed = false
		if c := e.applyNominalMerges(); c != nil {
			return true, c
		}
		for i := 0; i < e.g.NodeCount(); i++ {
			h := arena.NodeHandle(i)
			node := e.g.Node(h)
			if node.ID != h {
				continue // merged away; its representative is processed instead
			}
			localChanged, c := e.applyDeterministicRules(h)
			if c != nil {
				return true, c
			}
			if localChanged {
				changed = true
				progressed = true
			}
		}
	}
	return progressed, nil
}

// isBlocked walks h's ancestor chain applying the run's selected blocking
// strategy, caching the verdict on the node (spec.md §4.6).
func (e *Engine) isBlocked(h arena.NodeHandle) bool {
	node := e.g.Node(h)
	if node.Block.Blocked {
		return true
	}
	if !node.HasParent {
		return false
	}
	anc := node.Parent
	for {
		if e.strategy.Blocks(e.g, h, anc) {
			node.Block.Blocked = true
			node.Block.BlockedBy = anc
			node.Block.Strategy = e.strategy.Name()
			return true
		}
		ancNode := e.g.Node(anc)
		if !ancNode.HasParent {
			return false
		}
		anc = ancNode.Parent
	}
}

// addExistentialWitness creates a fresh R-successor of h labeled filler
// (plus the internalized GCIs every node carries), honoring property
// inversion. filler may be nil for an unqualified restriction.
func (e *Engine) addExistentialWitness(h arena.NodeHandle, prop property.ObjectExpr, filler classexpr.Expr) (arena.NodeHandle, *graph.ClashInfo) {
	y := e.g.NewNode()
	y.Parent = h
	y.HasParent = true
	if clash := e.applyGCIs(y.ID); clash != nil {
		return y.ID, clash
	}
	if prop.Inverse {
		e.g.AddEdge(y.ID, h, prop.Inv())
	} else {
		e.g.AddEdge(h, y.ID, prop)
	}
	if filler != nil {
		if _, clash := e.g.AddLabel(y.ID, filler); clash != nil {
			return y.ID, clash
		}
	}
	return y.ID, nil
}

func (e *Engine) applyDeterministicRules(h arena.NodeHandle) (changed bool, clash *graph.ClashInfo) {
	node := e.g.Node(h)
	if node.Block.Blocked {
		return false, nil
	}

	labels := append([]classexpr.Expr(nil), node.Labels.All()...)
	for _, l := range labels {
		switch v := l.(type) {

		case classexpr.Intersection: // rule 1
			for _, op := range v.Operands {
				outcome, c := e.g.AddLabel(h, op)
				if c != nil {
					return changed, c
				}
				if outcome == graph.Added {
					changed = true
				}
			}

		case classexpr.ObjectSomeValuesFrom: // rule 2
			if e.isBlocked(h) {
				continue
			}
			if e.hasRNeighbourWithFiller(h, v.Property, v.Filler) {
				continue
			}
			_, c := e.addExistentialWitness(h, v.Property, v.Filler)
			if c != nil {
				return changed, c
			}
			changed = true

		case classexpr.ObjectAllValuesFrom: // rules 3 and 4
			for _, sub := range e.rbox.subRoles(v.Property) {
				for _, y := range e.g.RNeighbours(h, sub) {
					outcome, c := e.g.AddLabel(y, v.Filler)
					if c != nil {
						return changed, c
					}
					if outcome == graph.Added {
						changed = true
					}
					if e.rbox.isTransitive(sub) {
						outcome2, c2 := e.g.AddLabel(y, v)
						if c2 != nil {
							return changed, c2
						}
						if outcome2 == graph.Added {
							changed = true
						}
					}
				}
			}

		case classexpr.ObjectHasValue: // treated as ∃R.{a}
			target := classexpr.Nominal{Individuals: []entity.Individual{v.Individual}}
			if e.hasRNeighbourWithFiller(h, v.Property, target) {
				continue
			}
			_, c := e.addExistentialWitness(h, v.Property, target)
			if c != nil {
				return changed, c
			}
			changed = true

		case classexpr.ObjectHasSelf: // rule 5
			if !e.hasSelfEdge(h, v.Property) {
				e.g.AddEdge(h, h, v.Property)
				changed = true
			}

		case classexpr.ObjectCardinality:
			if v.Kind() == classexpr.KindObjectMinCardinality { // rule 7
				c, didChange := e.applyMinCardinality(h, v)
				if c != nil {
					return changed, c
				}
				if didChange {
					changed = true
				}
			}

		case classexpr.DataSomeValuesFrom: // datatype analogue of rule 2
			if !e.hasDataSuccessorWithRange(h, v.Property, v.Filler) {
				e.g.AddDatatypeSuccessor(h, graph.DatatypeSuccessor{Property: v.Property, Range: v.Filler})
				changed = true
			}

		case classexpr.DataAllValuesFrom: // datatype analogue of rule 3
			if !e.hasDataSuccessorWithRange(h, v.Property, v.Filler) {
				e.g.AddDatatypeSuccessor(h, graph.DatatypeSuccessor{Property: v.Property, Range: v.Filler})
				changed = true
			}

		case classexpr.DataCardinality: // datatype analogue of rule 7, min only
			if v.Kind() == classexpr.KindDataMinCardinality {
				if e.applyMinDataCardinality(h, v) {
					changed = true
				}
			}
		}
	}

	e.applyChainRule(h)
	if localChanged, c := e.applyCharacteristics(h); c != nil {
		return changed, c
	} else if localChanged {
		changed = true
	}
	if localChanged, c := e.applyDomainRange(h); c != nil {
		return changed, c
	} else if localChanged {
		changed = true
	}

	return changed, nil
}

func (e *Engine) hasRNeighbourWithFiller(h arena.NodeHandle, prop property.ObjectExpr, filler classexpr.Expr) bool {
	for _, y := range e.g.RNeighbours(h, prop) {
		if e.g.Node(y).Labels.Contains(filler) {
			return true
		}
	}
	return false
}

// hasDataSuccessorWithRange reports whether h already carries a data
// successor on prop constrained by the same datatype expression, so
// DataSomeValuesFrom/DataAllValuesFrom don't re-add an equivalent
// constraint on every saturation pass.
func (e *Engine) hasDataSuccessorWithRange(h arena.NodeHandle, prop property.DataProperty, filler datatype.Expr) bool {
	for _, ds := range e.g.Node(h).DataSucc {
		if ds.Property.Key() == prop.Key() && ds.Range != nil && ds.Range.Key() == filler.Key() {
			return true
		}
	}
	return false
}

// applyMinDataCardinality implements the data-property analogue of rule 7:
// if fewer than n literal successors matching the filler exist, the
// shortfall is recorded as an additional constrained data successor.
// Distinctness of literal values is left to detectDatatypeClash, which
// already treats every OneOf-constrained successor as a demanded value.
func (e *Engine) applyMinDataCardinality(h arena.NodeHandle, card classexpr.DataCardinality) bool {
	matching := 0
	for _, ds := range e.g.Node(h).DataSucc {
		if ds.Property.Key() != card.Property.Key() {
			continue
		}
		if card.Filler == nil || (ds.Range != nil && ds.Range.Key() == card.Filler.Key()) {
			matching++
		}
	}
	if matching >= card.N {
		return false
	}
	for i := matching; i < card.N; i++ {
		e.g.AddDatatypeSuccessor(h, graph.DatatypeSuccessor{Property: card.Property, Range: card.Filler})
	}
	return true
}

func (e *Engine) hasSelfEdge(h arena.NodeHandle, prop property.ObjectExpr) bool {
	for _, edge := range e.g.AllEdgesFrom(h) {
		if edge.To == h && edge.Property == prop {
			return true
		}
	}
	return false
}

// applyMinCardinality implements rule 7 (>=n R.C): if fewer than n
// pairwise-distinct R-neighbours carry the filler, the shortfall is
// created as fresh, mutually distinct nodes.
func (e *Engine) applyMinCardinality(h arena.NodeHandle, card classexpr.ObjectCardinality) (*graph.ClashInfo, bool) {
	var matching []arena.NodeHandle
	for _, y := range e.g.RNeighbours(h, card.Property) {
		if card.Filler == nil || e.g.Node(y).Labels.Contains(card.Filler) {
			matching = append(matching, y)
		}
	}
	if len(matching) >= card.N {
		return nil, false
	}
	shortfall := card.N - len(matching)
	fresh := make([]arena.NodeHandle, 0, shortfall)
	for i := 0; i < shortfall; i++ {
		y, c := e.addExistentialWitness(h, card.Property, card.Filler)
		if c != nil {
			return c, true
		}
		fresh = append(fresh, y)
	}
	all := append(append([]arena.NodeHandle(nil), matching...), fresh...)
	for i := range all {
		for j := range all {
			if i < j {
				e.g.MarkDistinct(all[i], all[j])
			}
		}
	}
	return nil, true
}

// applyChainRule implements rule 6: for each P1 o ... o Pn <= Q and a
// witnessed path of that shape starting at h, add a Q edge to the path's
// end.
func (e *Engine) applyChainRule(h arena.NodeHandle) {
	for _, chainAx := range e.rbox.chains {
		ends := e.walkChain(h, chainAx.Chain)
		for _, end := range ends {
			e.g.AddEdge(h, end, chainAx.Sup)
		}
	}
}

func (e *Engine) walkChain(h arena.NodeHandle, chain property.Chain) []arena.NodeHandle {
	frontier := []arena.NodeHandle{h}
	for _, p := range chain {
		var next []arena.NodeHandle
		for _, n := range frontier {
			next = append(next, e.g.RNeighbours(n, p)...)
		}
		frontier = next
		if len(frontier) == 0 {
			return nil
		}
	}
	return frontier
}

// applyCharacteristics implements rule 8: Functional/InverseFunctional
// force a merge of successors/predecessors sharing an edge; Reflexive
// adds a universal self-edge; Symmetric mirrors every edge.
// Irreflexive/Asymmetric violations are reported as clashes.
func (e *Engine) applyCharacteristics(h arena.NodeHandle) (bool, *graph.ClashInfo) {
	changed := false
	for _, prop := range e.rbox.functional {
		succ := e.g.Successors(h, prop)
		if len(succ) > 1 {
			_, clash := e.g.Merge(succ[0], succ[1])
			if clash != nil {
				return changed, clash
			}
			changed = true
		}
	}
	for _, prop := range e.rbox.invFunctional {
		pred := e.g.Predecessors(h, prop)
		if len(pred) > 1 {
			_, clash := e.g.Merge(pred[0], pred[1])
			if clash != nil {
				return changed, clash
			}
			changed = true
		}
	}
	for _, prop := range e.rbox.reflexive {
		if !e.hasSelfEdge(h, prop) {
			e.g.AddEdge(h, h, prop)
			changed = true
		}
	}
	for key, prop := range e.rbox.irreflexive {
		if e.hasSelfEdge(h, prop) {
			return changed, &graph.ClashInfo{Kind: graph.ClashNegativePropertyAssertion, Node: h,
				Detail: "irreflexive property " + key + " asserted reflexively"}
		}
	}
	for _, prop := range e.rbox.symmetric {
		for _, edge := range e.g.AllEdgesFrom(h) {
			if edge.Property.Key() != prop.Key() {
				continue
			}
			if !e.hasEdgeBetween(edge.To, h, prop) {
				e.g.AddEdge(edge.To, h, prop)
				changed = true
			}
		}
	}
	for key, prop := range e.rbox.asymmetric {
		for _, edge := range e.g.AllEdgesFrom(h) {
			if edge.Property.Key() == prop.Key() && e.hasEdgeBetween(edge.To, h, prop) {
				return changed, &graph.ClashInfo{Kind: graph.ClashNegativePropertyAssertion, Node: h,
					Detail: "asymmetric property " + key + " asserted in both directions"}
			}
		}
	}
	return changed, nil
}

func (e *Engine) hasEdgeBetween(from, to arena.NodeHandle, prop property.ObjectExpr) bool {
	for _, edge := range e.g.AllEdgesFrom(from) {
		if edge.To == to && edge.Property.Key() == prop.Key() {
			return true
		}
	}
	return false
}

// applyDomainRange implements rule 9: every edge out of h propagates its
// property's domain classes to h and, symmetrically, every edge into h
// propagates range classes to h.
func (e *Engine) applyDomainRange(h arena.NodeHandle) (bool, *graph.ClashInfo) {
	changed := false
	for _, edge := range e.g.AllEdgesFrom(h) {
		for _, d := range e.rbox.domain[edge.Property.Key()] {
			outcome, clash := e.g.AddLabel(h, d)
			if clash != nil {
				return changed, clash
			}
			if outcome == graph.Added {
				changed = true
			}
		}
	}
	for _, edge := range e.g.AllEdgesTo(h) {
		for _, r := range e.rbox.rng[edge.Property.Key()] {
			outcome, clash := e.g.AddLabel(h, r)
			if clash != nil {
				return changed, clash
			}
			if outcome == graph.Added {
				changed = true
			}
		}
	}
	return changed, nil
}

// applyNominalMerges implements rule 10: any two distinct nodes both
// carrying a singleton nominal label for the same individual are merged.
func (e *Engine) applyNominalMerges() *graph.ClashInfo {
	seen := make(map[string]arena.NodeHandle)
	for i := 0; i < e.g.NodeCount(); i++ {
		h := arena.NodeHandle(i)
		node := e.g.Node(h)
		if node.ID != h {
			continue
		}
		for _, l := range node.Labels.All() {
			nom, ok := l.(classexpr.Nominal)
			if !ok || len(nom.Individuals) != 1 {
				continue
			}
			key := nom.Individuals[0].Key()
			if existing, found := seen[key]; found && e.g.Representative(existing) != e.g.Representative(h) {
				_, clash := e.g.Merge(existing, h)
				if clash != nil {
					return clash
				}
				return nil // restart on the next saturation pass
			}
			seen[key] = h
		}
	}
	return nil
}
