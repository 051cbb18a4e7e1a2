// Package ql implements the OWL 2 QL profile fast path (spec.md §4.7):
// subsumption between "basic concepts" reduces to reachability over a
// normalised role/concept graph, avoiding the tableau entirely.
package ql

import (
	"sort"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classify"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// Graph is the basic-concept reachability graph: nodes are basic-concept
// keys, edges are told or role-derived direct inclusions, negative holds
// told disjointness pairs (from a Complement superclass or DisjointClasses),
// and C ⊑ D holds iff D is reachable from C or C is itself unsatisfiable.
type Graph struct {
	edges    map[string][]string
	negative map[string][]string
}

// Key returns the basic-concept key for e, or "" if e is not a QL basic
// concept (atomic class, owl:Thing, owl:Nothing, or an unqualified
// existential ∃R.owl:Thing).
func Key(e classexpr.Expr) string {
	switch v := e.(type) {
	case classexpr.Atomic:
		return "C:" + v.Class.Key()
	case classexpr.Top:
		return "⊤"
	case classexpr.Bottom:
		return "⊥"
	case classexpr.ObjectSomeValuesFrom:
		if _, ok := v.Filler.(classexpr.Top); ok {
			return "∃" + v.Property.Key() + ".⊤"
		}
	}
	return ""
}

func classKey(c entity.Class) string { return "C:" + c.Key() }
func existsKey(p property.ObjectExpr) string { return "∃" + p.Key() + ".⊤" }

// BuildGraph compiles onto (already confirmed QL-valid by
// internal/profile/validate.QL) into a basic-concept reachability graph.
func BuildGraph(onto *ontology.Ontology) *Graph {
	g := &Graph{edges: make(map[string][]string), negative: make(map[string][]string)}
	addEdge := func(from, to string) {
		if from == "" || to == "" || from == to {
			return
		}
		g.edges[from] = append(g.edges[from], to)
	}
	addNegative := func(a, b string) {
		if a == "" || b == "" {
			return
		}
		g.negative[a] = append(g.negative[a], b)
		g.negative[b] = append(g.negative[b], a)
	}
	// addConstraint registers what sup contributes to from's superclass
	// constraints: an Intersection decomposes conjunct by conjunct, a
	// Complement records a told disjointness pair instead of an edge
	// (qlSuperConcept admits both on a GCI's superclass side), and
	// anything else is a plain basic-concept inclusion edge.
	var addConstraint func(from string, sup classexpr.Expr)
	addConstraint = func(from string, sup classexpr.Expr) {
		switch v := sup.(type) {
		case classexpr.Intersection:
			for _, operand := range v.Operands {
				addConstraint(from, operand)
			}
		case classexpr.Complement:
			addNegative(from, Key(v.Operand))
		default:
			addEdge(from, Key(v))
		}
	}

	roleEdges := make(map[string][]string)
	addRoleEdge := func(from, to property.ObjectExpr) {
		roleEdges[from.Key()] = append(roleEdges[from.Key()], to.Key())
		roleEdges[from.Inv().Key()] = append(roleEdges[from.Inv().Key()], to.Inv().Key())
	}

	for _, ax := range onto.Axioms.ByKind(axiom.KindSubObjectPropertyOf) {
		a := ax.(axiom.SubObjectPropertyOf)
		addRoleEdge(a.Sub, a.Sup)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentObjectProperties) {
		a := ax.(axiom.EquivalentObjectProperties)
		for i := range a.Members {
			for j := range a.Members {
				if i != j {
					addRoleEdge(a.Members[i], a.Members[j])
				}
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindInverseObjectProperties) {
		a := ax.(axiom.InverseObjectProperties)
		addRoleEdge(a.P, a.Q.Inv())
		addRoleEdge(a.Q.Inv(), a.P)
	}

	for r, supers := range closeRoles(roleEdges) {
		for _, s := range supers {
			addEdge("∃"+r+".⊤", "∃"+s+".⊤")
		}
	}

	for _, ax := range onto.Axioms.ByKind(axiom.KindSubClassOf) {
		a := ax.(axiom.SubClassOf)
		addConstraint(Key(a.Sub), a.Sup)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentClasses) {
		a := ax.(axiom.EquivalentClasses)
		for i := range a.Members {
			for j := range a.Members {
				if i != j {
					addEdge(Key(a.Members[i]), Key(a.Members[j]))
				}
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindDisjointClasses) {
		a := ax.(axiom.DisjointClasses)
		for i := range a.Members {
			for j := range a.Members {
				if i != j {
					addNegative(Key(a.Members[i]), Key(a.Members[j]))
				}
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyDomain) {
		a := ax.(axiom.ObjectPropertyDomain)
		addConstraint(existsKey(a.Property), a.Domain)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyRange) {
		a := ax.(axiom.ObjectPropertyRange)
		addConstraint(existsKey(a.Property.Inv()), a.Range)
	}

	return g
}

// closeRoles computes the transitive closure of the role-inclusion graph
// (role chains are not permitted in QL, so this never needs to account
// for composition, only plain inclusion/equivalence edges).
func closeRoles(edges map[string][]string) map[string][]string {
	closure := make(map[string][]string, len(edges))
	for r := range edges {
		seen := map[string]bool{r: true}
		stack := append([]string(nil), edges[r]...)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[n] {
				continue
			}
			seen[n] = true
			closure[r] = append(closure[r], n)
			stack = append(stack, edges[n]...)
		}
	}
	return closure
}

// reachableSet returns from plus every basic concept reachable from it by
// told or derived inclusion edges.
func (g *Graph) reachableSet(from string) map[string]bool {
	seen := map[string]bool{from: true}
	stack := append([]string(nil), g.edges[from]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, g.edges[n]...)
	}
	return seen
}

// clashes reports whether reachable contains owl:Nothing or both members of
// a told disjointness pair, i.e. whether the concept it was reached from is
// unsatisfiable.
func (g *Graph) clashes(reachable map[string]bool) bool {
	if reachable["⊥"] {
		return true
	}
	for b1, disjointWith := range g.negative {
		if !reachable[b1] {
			continue
		}
		for _, b2 := range disjointWith {
			if reachable[b2] {
				return true
			}
		}
	}
	return false
}

// Subsumes reports whether sup is reachable from sub (C ⊑ D), including
// vacuously when sub is itself unsatisfiable (ex falso quodlibet).
func (g *Graph) Subsumes(sub, sup string) bool {
	if sub == sup {
		return true
	}
	reachable := g.reachableSet(sub)
	if reachable[sup] {
		return true
	}
	return g.clashes(reachable)
}

// Unsatisfiable reports whether c reaches owl:Nothing or a told
// disjointness clash.
func (g *Graph) Unsatisfiable(c string) bool { return g.clashes(g.reachableSet(c)) }

// BuildHierarchy derives the named-class subsumption hierarchy by pairwise
// reachability, in the same shape internal/classify and internal/profile/el
// produce, so all three classification paths are interchangeable.
func (g *Graph) BuildHierarchy(onto *ontology.Ontology) *classify.Hierarchy {
	var classes []entity.Class
	for _, e := range onto.Entities.All() {
		if c, ok := e.(entity.Class); ok {
			classes = append(classes, c)
		}
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].Key() < classes[j].Key() })

	h := &classify.Hierarchy{
		DirectParents:  make(map[string][]string),
		DirectChildren: make(map[string][]string),
		Equivalences:   make(map[string][]string),
		Unsatisfiable:  make(map[string]bool),
	}

	parent := make(map[string]string, len(classes))
	var find func(string) string
	find = func(k string) string {
		if parent[k] != k {
			parent[k] = find(parent[k])
		}
		return parent[k]
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}
	for _, c := range classes {
		parent[classKey(c)] = classKey(c)
	}
	for _, c := range classes {
		ck := classKey(c)
		for _, d := range classes {
			dk := classKey(d)
			if ck == dk {
				continue
			}
			if g.Subsumes(ck, dk) && g.Subsumes(dk, ck) {
				union(ck, dk)
			}
		}
	}

	groupMembers := make(map[string][]entity.Class)
	for _, c := range classes {
		rep := find(classKey(c))
		groupMembers[rep] = append(groupMembers[rep], c)
	}
	repOf := make(map[string]string, len(classes))
	for rep, members := range groupMembers {
		keys := make([]string, len(members))
		var repClassKey string
		for i, m := range members {
			keys[i] = m.Key()
			repOf[classKey(m)] = rep
			if classKey(m) == rep {
				repClassKey = m.Key()
			}
		}
		sort.Strings(keys)
		h.Equivalences[repClassKey] = keys
	}

	for _, c := range classes {
		ck := classKey(c)
		if g.Unsatisfiable(ck) {
			h.Unsatisfiable[c.Key()] = true
		}

		group := groupMembers[repOf[ck]]
		inGroup := make(map[string]bool, len(group))
		for _, m := range group {
			inGroup[classKey(m)] = true
		}

		var candidates []entity.Class
		for _, d := range classes {
			dk := classKey(d)
			if dk == ck || inGroup[dk] {
				continue
			}
			if g.Subsumes(ck, dk) {
				candidates = append(candidates, d)
			}
		}

		var direct []string
		for _, b := range candidates {
			bk := classKey(b)
			isDirect := true
			for _, other := range candidates {
				ok := classKey(other)
				if ok == bk {
					continue
				}
				if g.Subsumes(ok, bk) {
					isDirect = false
					break
				}
			}
			if isDirect {
				direct = append(direct, b.Key())
			}
		}
		sort.Strings(direct)

		h.DirectParents[c.Key()] = direct
		for _, p := range direct {
			h.DirectChildren[p] = append(h.DirectChildren[p], c.Key())
		}
	}

	return h
}
