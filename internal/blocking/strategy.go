// Package blocking implements the five node-blocking strategies spec.md
// §4.6 names (subset, equality, pair-wise, dynamic, nominal-aware), each
// deciding whether an ancestor node's label set lets the tableau engine
// stop expanding a descendant.
package blocking

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/arena"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/graph"
)

// Strategy decides whether candidate is blocked by ancestor, given the
// completion graph they both live in.
type Strategy interface {
	Name() string
	Blocks(g *graph.Graph, candidate, ancestor arena.NodeHandle) bool
}

// Subset blocking: candidate is blocked if its label set is a subset of
// ancestor's. Sound for SH-family logics without inverse roles or
// nominals (spec.md §4.6).
type Subset struct{}

func (Subset) Name() string { return "subset" }

func (Subset) Blocks(g *graph.Graph, candidate, ancestor arena.NodeHandle) bool {
	c, a := g.Node(candidate), g.Node(ancestor)
	return c.Labels.SubsetOf(a.Labels)
}

// Equality blocking: candidate is blocked only if its label set exactly
// matches ancestor's. Required once inverse roles are present, where
// subset blocking is unsound.
type Equality struct{}

func (Equality) Name() string { return "equality" }

func (Equality) Blocks(g *graph.Graph, candidate, ancestor arena.NodeHandle) bool {
	c, a := g.Node(candidate), g.Node(ancestor)
	return c.Labels.Equal(a.Labels)
}

// Pairwise blocking: candidate is blocked by ancestor only if their direct
// predecessors also carry equal label sets, avoiding the unsoundness
// equality/subset blocking alone exhibit under inverse roles combined with
// number restrictions (spec.md §4.6).
type Pairwise struct{}

func (Pairwise) Name() string { return "pairwise" }

func (Pairwise) Blocks(g *graph.Graph, candidate, ancestor arena.NodeHandle) bool {
	c, a := g.Node(candidate), g.Node(ancestor)
	if !c.Labels.Equal(a.Labels) {
		return false
	}
	if !c.HasParent || !a.HasParent {
		return c.HasParent == a.HasParent
	}
	cp, ap := g.Node(c.Parent), g.Node(a.Parent)
	return cp.Labels.Equal(ap.Labels)
}

// Dynamic wraps another strategy and is recomputed on every label addition
// rather than once when a node is first created, required once
// qualified cardinality restrictions let a node's label set grow after
// blocking has already been checked once (spec.md §4.6 "dynamic
// blocking"). The wrapping itself carries no extra state: soundness comes
// from the *caller* re-invoking Blocks after every AddLabel instead of
// caching the verdict, which Dynamic documents by name.
type Dynamic struct {
	Inner Strategy
}

func (d Dynamic) Name() string { return "dynamic(" + d.Inner.Name() + ")" }

func (d Dynamic) Blocks(g *graph.Graph, candidate, ancestor arena.NodeHandle) bool {
	return d.Inner.Blocks(g, candidate, ancestor)
}

// NominalAware wraps another strategy and refuses to block any node that
// carries a nominal label (directly or transitively forced via a Merge),
// since nominal nodes must stay available for the merging rules to act on
// (spec.md §4.5's CR10-style nominal rule, §4.6).
type NominalAware struct {
	Inner Strategy
}

func (n NominalAware) Name() string { return "nominal-aware(" + n.Inner.Name() + ")" }

func (n NominalAware) Blocks(g *graph.Graph, candidate, ancestor arena.NodeHandle) bool {
	if hasNominalLabel(g, candidate) || hasNominalLabel(g, ancestor) {
		return false
	}
	return n.Inner.Blocks(g, candidate, ancestor)
}

func hasNominalLabel(g *graph.Graph, h arena.NodeHandle) bool {
	node := g.Node(h)
	for _, l := range node.Labels.All() {
		if l.Kind() == classexpr.KindNominal {
			return true
		}
	}
	return false
}
