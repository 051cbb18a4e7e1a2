// Package property implements the SROIQ(D) property-expression algebra:
// atomic object properties, their inverses, atomic data properties, and
// property chains (spec.md §3).
package property

import "github.com/anusornc/owl2-reasoner-sub000/internal/entity"

// ObjectExpr is an object property expression: either an atomic property or
// the inverse of one.
type ObjectExpr struct {
	Atomic   entity.ObjectProperty
	Inverse  bool
}

// Key returns a structural key suitable for map indexing.
func (p ObjectExpr) Key() string {
	if p.Inverse {
		return "Inv(" + p.Atomic.Key() + ")"
	}
	return p.Atomic.Key()
}

// Inv returns the inverse of p (Inv(Inv(R)) collapses back to R).
func (p ObjectExpr) Inv() ObjectExpr {
	return ObjectExpr{Atomic: p.Atomic, Inverse: !p.Inverse}
}

// Atom builds a non-inverted object property expression.
func Atom(p entity.ObjectProperty) ObjectExpr { return ObjectExpr{Atomic: p} }

// DataProperty is an atomic data property expression (data properties have
// no inverse in SROIQ(D)).
type DataProperty struct{ Atomic entity.DataProperty }

func (p DataProperty) Key() string { return p.Atomic.Key() }

// Chain is P1 ∘ P2 ∘ ... ∘ Pn, used only as the LHS of a sub-property-chain
// axiom (spec.md §3).
type Chain []ObjectExpr

func (c Chain) Key() string {
	s := ""
	for i, p := range c {
		if i > 0 {
			s += "∘"
		}
		s += p.Key()
	}
	return s
}
