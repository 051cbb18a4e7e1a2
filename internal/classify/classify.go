// Package classify implements the two-phase enhanced-traversal
// classification algorithm (spec C7): a quick told-subsumption pass seeds a
// provisional DAG, then a refinement pass confirms or rejects each
// candidate edge with a direct tableau subsumption test, pruning
// descendants of a rejected candidate.
package classify

import (
	"context"
	"sort"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/tableau"
)

// Hierarchy is the transitive reduction of named-class subsumption plus
// equivalence groups (spec.md §6 Reasoner::classify()).
type Hierarchy struct {
	DirectParents  map[string][]string
	DirectChildren map[string][]string
	Equivalences   map[string][]string // representative key -> every member key, including itself
	Unsatisfiable  map[string]bool
}

// Classifier runs classification against one ontology snapshot. A fresh
// tableau.Engine is built per subsumption test (spec.md §4.5's "fresh
// completion graph per check" contract); cfg bounds each of those runs.
type Classifier struct {
	onto *ontology.Ontology
	cfg  tableau.Config

	supersOf map[string]map[string]bool // memoized per-class confirmed-subsumer sets
}

// New constructs a Classifier over onto.
func New(onto *ontology.Ontology, cfg tableau.Config) *Classifier {
	return &Classifier{onto: onto, cfg: cfg, supersOf: make(map[string]map[string]bool)}
}

// Classify computes the full named-class hierarchy.
func (c *Classifier) Classify() (*Hierarchy, error) {
	classes := namedClasses(c.onto)
	roots, toldChildren := toldGraph(c.onto, classes)

	for _, cls := range classes {
		supers, err := c.confirmedSubsumers(cls, roots, toldChildren)
		if err != nil {
			return nil, err
		}
		c.supersOf[cls.Key()] = supers
	}

	unsat := make(map[string]bool)
	for _, cls := range classes {
		sat, err := c.satisfiable(cls)
		if err != nil {
			return nil, err
		}
		if !sat {
			unsat[cls.Key()] = true
		}
	}

	groups := c.equivalenceGroups(classes)
	repOf := make(map[string]string, len(classes))
	for rep, members := range groups {
		for _, m := range members {
			repOf[m] = rep
		}
	}

	h := &Hierarchy{
		DirectParents:  make(map[string][]string),
		DirectChildren: make(map[string][]string),
		Equivalences:   groups,
		Unsatisfiable:  unsat,
	}

	for _, cls := range classes {
		key := cls.Key()
		supers := c.supersOf[key]
		group := groups[repOf[key]]
		inGroup := make(map[string]bool, len(group))
		for _, m := range group {
			inGroup[m] = true
		}

		var candidates []string
		for s := range supers {
			if s == key || inGroup[s] {
				continue
			}
			candidates = append(candidates, s)
		}
		sort.Strings(candidates)

		var direct []string
		for _, b := range candidates {
			isDirect := true
			for _, s := range candidates {
				if s == b {
					continue
				}
				if c.supersOf[s][b] {
					isDirect = false
					break
				}
			}
			if isDirect {
				direct = append(direct, b)
			}
		}

		h.DirectParents[key] = direct
		for _, p := range direct {
			h.DirectChildren[p] = append(h.DirectChildren[p], key)
		}
	}

	return h, nil
}

// equivalenceGroups merges classes with mutual subsumption into groups,
// keyed by the lexicographically smallest member.
func (c *Classifier) equivalenceGroups(classes []entity.Class) map[string][]string {
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

	for _, cls := range classes {
		parent[cls.Key()] = cls.Key()
	}
	for _, cls := range classes {
		a := cls.Key()
		for b := range c.supersOf[a] {
			if b == a {
				continue
			}
			if c.supersOf[b][a] {
				union(a, b)
			}
		}
	}

	groups := make(map[string][]string)
	for _, cls := range classes {
		rep := find(cls.Key())
		groups[rep] = append(groups[rep], cls.Key())
	}
	for rep := range groups {
		sort.Strings(groups[rep])
	}
	return groups
}

// confirmedSubsumers performs the refinement phase (spec.md §4.7 item 2)
// for one target class: breadth-first from the told-subsumption roots,
// descending into a node's told children only once that node is confirmed
// to subsume target (monotonic pruning — a rejected candidate's
// descendants are never tested via that edge).
func (c *Classifier) confirmedSubsumers(target entity.Class, roots []entity.Class, toldChildren map[string][]entity.Class) (map[string]bool, error) {
	confirmed := make(map[string]bool)
	visited := make(map[string]bool)
	queue := append([]entity.Class(nil), roots...)

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if visited[n.Key()] {
			continue
		}
		visited[n.Key()] = true

		ok, err := c.subsumes(n, target)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		confirmed[n.Key()] = true
		queue = append(queue, toldChildren[n.Key()]...)
	}
	return confirmed, nil
}

// subsumes tests sup ⊑-confirms sub (i.e. sub ⊑ sup) by checking
// unsatisfiability of sub ⊓ ¬sup over a fresh completion graph (spec.md
// §4.7 item 2, §8 testable property 4).
func (c *Classifier) subsumes(sup, sub entity.Class) (bool, error) {
	eng := tableau.New(c.onto, c.cfg)
	defer eng.Release()

	_, clash := eng.NewRootNode(
		classexpr.Atomic{Class: sub},
		classexpr.Complement{Operand: classexpr.Atomic{Class: sup}},
	)
	if clash != nil {
		return true, nil
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		return false, err
	}
	return !res.Satisfiable, nil
}

// satisfiable tests whether cls alone is satisfiable, used to populate
// Hierarchy.Unsatisfiable (spec.md §8 scenario S4).
func (c *Classifier) satisfiable(cls entity.Class) (bool, error) {
	eng := tableau.New(c.onto, c.cfg)
	defer eng.Release()

	_, clash := eng.NewRootNode(classexpr.Atomic{Class: cls})
	if clash != nil {
		return false, nil
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		return false, err
	}
	return res.Satisfiable, nil
}

// namedClasses returns every Class entity registered in onto, sorted by key
// for deterministic traversal order (spec.md §5 "ordering guarantees").
func namedClasses(onto *ontology.Ontology) []entity.Class {
	var out []entity.Class
	for _, e := range onto.Entities.All() {
		if cls, ok := e.(entity.Class); ok {
			out = append(out, cls)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// toldGraph builds the provisional told-subsumption DAG (spec.md §4.7 item
// 1) from SubClassOf and EquivalentClasses axioms whose operands are
// atomic classes; roots are classes with no told superclass. EquivalentClasses
// edges are added to children for BFS traversal but never mark
// hasToldSuper: two mutually-told-equivalent classes have no hierarchical
// relation between them, so a cycle of only such edges must not exclude
// both of its members from the root set (they would otherwise never be
// reached by confirmedSubsumers's root-seeded BFS).
func toldGraph(onto *ontology.Ontology, classes []entity.Class) (roots []entity.Class, children map[string][]entity.Class) {
	hasToldSuper := make(map[string]bool, len(classes))
	children = make(map[string][]entity.Class)

	addEdge := func(sub, sup entity.Class, hierarchical bool) {
		children[sup.Key()] = append(children[sup.Key()], sub)
		if hierarchical {
			hasToldSuper[sub.Key()] = true
		}
	}

	for _, ax := range onto.Axioms.ByKind(axiom.KindSubClassOf) {
		a := ax.(axiom.SubClassOf)
		sub, subOK := a.Sub.(classexpr.Atomic)
		sup, supOK := a.Sup.(classexpr.Atomic)
		if subOK && supOK {
			addEdge(sub.Class, sup.Class, true)
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentClasses) {
		a := ax.(axiom.EquivalentClasses)
		var atoms []entity.Class
		for _, m := range a.Members {
			if at, ok := m.(classexpr.Atomic); ok {
				atoms = append(atoms, at.Class)
			}
		}
		for i := range atoms {
			for j := range atoms {
				if i != j {
					addEdge(atoms[i], atoms[j], false)
				}
			}
		}
	}

	for _, cls := range classes {
		if !hasToldSuper[cls.Key()] {
			roots = append(roots, cls)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Key() < roots[j].Key() })
	for k := range children {
		sort.Slice(children[k], func(i, j int) bool { return children[k][i].Key() < children[k][j].Key() })
	}
	return roots, children
}
