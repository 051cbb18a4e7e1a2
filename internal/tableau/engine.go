// Package tableau implements the SROIQ(D) expansion engine (spec C5):
// goal-driven rule application over a completion graph, blocking, and
// dependency-directed backtracking (spec C6).
package tableau

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/anusornc/owl2-reasoner-sub000/internal/arena"
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/blocking"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/graph"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// Config bounds one reasoning run (spec.md §5 resource model).
type Config struct {
	MaxNodes int // 0 means no explicit cap beyond blocking's own bound
}

// DefaultConfig returns conservative run limits suitable for interactive use.
func DefaultConfig() Config { return Config{MaxNodes: 200000} }

// Engine runs the expansion rules over one completion graph, built fresh
// for each CheckConsistency/CheckSatisfiable call (spec.md §4.5).
type Engine struct {
	arena    *arena.Arena
	g        *graph.Graph
	strategy blocking.Strategy
	rbox     *roleBox
	gcis     []classexpr.Expr
	hasKeys  []axiom.HasKey

	negObjAssertions  []negObjAssertion
	negDataAssertions []negDataAssertion

	cps []*choicePoint

	cfg       Config
	cancelled atomic.Bool
}

type negObjAssertion struct {
	Property       property.ObjectExpr
	Source, Target arena.NodeHandle
}

type negDataAssertion struct {
	Property property.DataProperty
	Source   arena.NodeHandle
	Literal  string
}

// Result is the outcome of one expansion run.
type Result struct {
	Satisfiable bool
	Clash       *graph.ClashInfo // nil when Satisfiable
	NodesUsed   int
}

// ResourceExhaustedError reports that a run exceeded its node budget
// (spec.md §5, §7).
type ResourceExhaustedError struct{ Limit int }

func (e *ResourceExhaustedError) Error() string {
	return fmt.Sprintf("resource exhausted: node budget %d exceeded", e.Limit)
}

// New constructs an Engine over a fresh arena and completion graph,
// compiling the ontology's RBox and internalizing its TBox GCIs once.
func New(onto *ontology.Ontology, cfg Config) *Engine {
	a := arena.Acquire()
	e := &Engine{
		arena: a,
		g:     graph.New(a),
		rbox:  buildRoleBox(onto),
		cfg:   cfg,
	}
	e.gcis = internalizeGCIs(onto)
	for _, ax := range onto.Axioms.ByKind(axiom.KindHasKey) {
		e.hasKeys = append(e.hasKeys, ax.(axiom.HasKey))
	}
	e.strategy = blocking.Select(computeExpressivity(onto))
	return e
}

// Release returns the Engine's arena to the pool. The Engine (and any
// graph.NodeHandle derived from it) must not be used afterward.
func (e *Engine) Release() { e.arena.Release() }

// Graph exposes the completion graph for callers that need to inspect the
// final model (e.g. to report a satisfying assignment).
func (e *Engine) Graph() *graph.Graph { return e.g }

// Cancel requests cooperative early termination; Run observes it at the
// next rule-selection step (spec.md §5).
func (e *Engine) Cancel() { e.cancelled.Store(true) }

// internalizeGCIs compiles SubClassOf/EquivalentClasses/DisjointClasses/
// DisjointUnion into the standard tableau trick of a label (¬Sub ⊔ Sup)
// added to every node, so general concept inclusions hold everywhere in
// the completion graph without a separate propagation pass.
func internalizeGCIs(onto *ontology.Ontology) []classexpr.Expr {
	var out []classexpr.Expr
	for _, ax := range onto.Axioms.ByKind(axiom.KindSubClassOf) {
		a := ax.(axiom.SubClassOf)
		out = append(out, classexpr.Union{Operands: []classexpr.Expr{
			classexpr.Complement{Operand: a.Sub}, a.Sup,
		}})
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentClasses) {
		a := ax.(axiom.EquivalentClasses)
		for i := range a.Members {
			for j := range a.Members {
				if i == j {
					continue
				}
				out = append(out, classexpr.Union{Operands: []classexpr.Expr{
					classexpr.Complement{Operand: a.Members[i]}, a.Members[j],
				}})
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindDisjointClasses) {
		a := ax.(axiom.DisjointClasses)
		for i := range a.Members {
			for j := range a.Members {
				if i >= j {
					continue
				}
				out = append(out, classexpr.Union{Operands: []classexpr.Expr{
					classexpr.Complement{Operand: a.Members[i]}, classexpr.Complement{Operand: a.Members[j]},
				}})
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindDisjointUnion) {
		a := ax.(axiom.DisjointUnion)
		cls := classexpr.Atomic{Class: a.Class}
		out = append(out, classexpr.Union{Operands: []classexpr.Expr{
			classexpr.Complement{Operand: cls}, classexpr.Union{Operands: a.Members},
		}})
		for i := range a.Members {
			for j := range a.Members {
				if i >= j {
					continue
				}
				out = append(out, classexpr.Union{Operands: []classexpr.Expr{
					classexpr.Complement{Operand: a.Members[i]}, classexpr.Complement{Operand: a.Members[j]},
				}})
			}
		}
	}
	return out
}

// applyGCIs adds every internalized GCI disjunction to h's label set, the
// decomposition of the disjunction itself happening later via the
// ⊔-rule (spec.md §4.5 rule list item 1's "told" analogue).
func (e *Engine) applyGCIs(h arena.NodeHandle) *graph.ClashInfo {
	for _, gci := range e.gcis {
		_, clash := e.g.AddLabel(h, gci)
		if clash != nil {
			return clash
		}
	}
	return nil
}

// NewRootNode creates a fresh node, seeding initial through AddLabel (so two
// mutually complementary initial expressions clash immediately rather than
// sitting unchecked in the same label set) and internalizing the GCIs.
func (e *Engine) NewRootNode(initial ...classexpr.Expr) (arena.NodeHandle, *graph.ClashInfo) {
	n := e.g.NewNode()
	for _, expr := range initial {
		if _, clash := e.g.AddLabel(n.ID, expr); clash != nil {
			return n.ID, clash
		}
	}
	if clash := e.applyGCIs(n.ID); clash != nil {
		return n.ID, clash
	}
	return n.ID, nil
}

// SeedABox materializes every ABox assertion as graph state: named
// individuals become nodes, ClassAssertion/ObjectPropertyAssertion/
// DataPropertyAssertion populate labels/edges/datatype successors,
// SameIndividual merges nodes, DifferentIndividuals marks them distinct,
// and negative assertions are recorded for clash.go's post-hoc check
// (spec.md §4.7 "all named-individual nominals are seeded before
// expansion").
func (e *Engine) SeedABox(onto *ontology.Ontology) (map[string]arena.NodeHandle, *graph.ClashInfo) {
	nodes := make(map[string]arena.NodeHandle)
	ensure := func(ind entity.Individual) arena.NodeHandle {
		if h, ok := nodes[ind.Key()]; ok {
			return h
		}
		h, _ := e.NewRootNode(classexpr.Nominal{Individuals: []entity.Individual{ind}})
		nodes[ind.Key()] = h
		return h
	}

	for _, ax := range onto.Axioms.ByKind(axiom.KindClassAssertion) {
		a := ax.(axiom.ClassAssertion)
		h := ensure(a.Individual)
		if _, clash := e.g.AddLabel(h, a.Class); clash != nil {
			return nodes, clash
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyAssertion) {
		a := ax.(axiom.ObjectPropertyAssertion)
		e.g.AddEdge(ensure(a.Source), ensure(a.Target), a.Property)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindDataPropertyAssertion) {
		a := ax.(axiom.DataPropertyAssertion)
		lit := a.Target
		e.g.AddDatatypeSuccessor(ensure(a.Source), graph.DatatypeSuccessor{Property: a.Property, Literal: &lit})
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindNegativeObjectPropertyAssertion) {
		a := ax.(axiom.NegativeObjectPropertyAssertion)
		e.negObjAssertions = append(e.negObjAssertions, negObjAssertion{
			Property: a.Property, Source: ensure(a.Source), Target: ensure(a.Target),
		})
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindNegativeDataPropertyAssertion) {
		a := ax.(axiom.NegativeDataPropertyAssertion)
		e.negDataAssertions = append(e.negDataAssertions, negDataAssertion{
			Property: a.Property, Source: ensure(a.Source), Literal: a.Target.Lexical,
		})
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindSameIndividual) {
		a := ax.(axiom.SameIndividual)
		if len(a.Members) == 0 {
			continue
		}
		first := ensure(a.Members[0])
		for _, m := range a.Members[1:] {
			if _, clash := e.g.Merge(first, ensure(m)); clash != nil {
				return nodes, clash
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindDifferentIndividuals) {
		a := ax.(axiom.DifferentIndividuals)
		for i := range a.Members {
			for j := range a.Members {
				if i >= j {
					continue
				}
				e.g.MarkDistinct(ensure(a.Members[i]), ensure(a.Members[j]))
			}
		}
	}
	return nodes, nil
}

// Run saturates the completion graph: deterministic rules to fixpoint,
// then non-deterministic choices with dependency-directed backtracking,
// until the graph is Closed (satisfiable) or every choice point is
// exhausted (unsatisfiable). Cooperative cancellation is checked once per
// outer iteration (spec.md §5).
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if e.cancelled.Load() {
			return nil, context.Canceled
		}
		if e.cfg.MaxNodes > 0 && e.g.NodeCount() > e.cfg.MaxNodes {
			return nil, &ResourceExhaustedError{Limit: e.cfg.MaxNodes}
		}

		progressed, clash := e.saturateDeterministic()
		if clash != nil {
			if ok := e.backtrack(clash); ok {
				continue
			}
			return &Result{Satisfiable: false, Clash: clash, NodesUsed: e.g.NodeCount()}, nil
		}
		if progressed {
			continue
		}

		if clash := e.detectStructuralClashes(); clash != nil {
			if ok := e.backtrack(clash); ok {
				continue
			}
			return &Result{Satisfiable: false, Clash: clash, NodesUsed: e.g.NodeCount()}, nil
		}

		cp, found := e.nextChoicePoint()
		if !found {
			return &Result{Satisfiable: true, NodesUsed: e.g.NodeCount()}, nil
		}
		clash = e.tryChoicePoint(cp)
		if clash != nil {
			if ok := e.backtrack(clash); ok {
				continue
			}
			return &Result{Satisfiable: false, Clash: clash, NodesUsed: e.g.NodeCount()}, nil
		}
	}
}

// computeExpressivity scans the ontology's axioms and the class
// expressions they carry for the features that decide blocking strategy
// selection (spec.md §4.6): inverse roles, nominals, and qualified
// cardinality restrictions.
func computeExpressivity(onto *ontology.Ontology) blocking.Expressivity {
	var exp blocking.Expressivity
	if len(onto.Axioms.ByKind(axiom.KindInverseObjectProperties)) > 0 {
		exp.HasInverseRoles = true
	}
	walk := func(e classexpr.Expr) {
		walkExpr(e, &exp)
	}
	for _, ax := range onto.Axioms.All() {
		switch a := ax.(type) {
		case axiom.SubClassOf:
			walk(a.Sub)
			walk(a.Sup)
		case axiom.EquivalentClasses:
			for _, m := range a.Members {
				walk(m)
			}
		case axiom.DisjointClasses:
			for _, m := range a.Members {
				walk(m)
			}
		case axiom.ClassAssertion:
			walk(a.Class)
		}
	}
	return exp
}

func walkExpr(e classexpr.Expr, exp *blocking.Expressivity) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case classexpr.Nominal:
		exp.HasNominals = true
	case classexpr.Intersection:
		for _, o := range v.Operands {
			walkExpr(o, exp)
		}
	case classexpr.Union:
		for _, o := range v.Operands {
			walkExpr(o, exp)
		}
	case classexpr.Complement:
		walkExpr(v.Operand, exp)
	case classexpr.ObjectSomeValuesFrom:
		if v.Property.Inverse {
			exp.HasInverseRoles = true
		}
		walkExpr(v.Filler, exp)
	case classexpr.ObjectAllValuesFrom:
		if v.Property.Inverse {
			exp.HasInverseRoles = true
		}
		walkExpr(v.Filler, exp)
	case classexpr.ObjectHasValue:
		if v.Property.Inverse {
			exp.HasInverseRoles = true
		}
	case classexpr.ObjectHasSelf:
		if v.Property.Inverse {
			exp.HasInverseRoles = true
		}
	case classexpr.ObjectCardinality:
		if v.Property.Inverse {
			exp.HasInverseRoles = true
		}
		if v.Filler != nil {
			exp.HasQualifiedCardinality = true
			walkExpr(v.Filler, exp)
		}
	}
}
