// Package classexpr implements the SROIQ(D) class-expression algebra
// (spec.md §3): a closed set of tagged variants whose equality and index
// keys are structural key strings built from each variant's parts.
package classexpr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anusornc/owl2-reasoner-sub000/internal/datatype"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// Kind discriminates class-expression variants.
type Kind uint8

const (
	KindAtomic Kind = iota
	KindTop
	KindBottom
	KindNominal
	KindIntersection
	KindUnion
	KindComplement
	KindObjectSomeValuesFrom
	KindObjectAllValuesFrom
	KindObjectHasValue
	KindObjectHasSelf
	KindObjectMinCardinality
	KindObjectMaxCardinality
	KindObjectExactCardinality
	KindDataSomeValuesFrom
	KindDataAllValuesFrom
	KindDataMinCardinality
	KindDataMaxCardinality
	KindDataExactCardinality
)

// Expr is implemented by every class-expression variant. The unexported
// marker method closes the algebra to this package; key() builds, on each
// call, the structural key string used for identity and indexing.
type Expr interface {
	Kind() Kind
	key() string
	String() string
	isExpr()
}

// Atomic is a named class.
type Atomic struct{ Class entity.Class }

func (Atomic) Kind() Kind      { return KindAtomic }
func (a Atomic) key() string   { return "C:" + a.Class.Key() }
func (a Atomic) String() string { return a.Class.IRI.LocalName() }
func (Atomic) isExpr()         {}

// Top is owl:Thing.
type Top struct{}

func (Top) Kind() Kind      { return KindTop }
func (Top) key() string     { return "⊤" }
func (Top) String() string  { return "⊤" }
func (Top) isExpr()         {}

// Bottom is owl:Nothing.
type Bottom struct{}

func (Bottom) Kind() Kind     { return KindBottom }
func (Bottom) key() string    { return "⊥" }
func (Bottom) String() string { return "⊥" }
func (Bottom) isExpr()        {}

// Nominal denotes the singleton (or small finite) set of individuals {a,...}.
type Nominal struct{ Individuals []entity.Individual }

func (Nominal) Kind() Kind { return KindNominal }
func (n Nominal) key() string {
	keys := make([]string, len(n.Individuals))
	for i, ind := range n.Individuals {
		keys[i] = ind.Key()
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ",") + "}"
}
func (n Nominal) String() string { return n.key() }
func (Nominal) isExpr()          {}

// Intersection is a conjunction of >= 2 class expressions.
type Intersection struct{ Operands []Expr }

func (Intersection) Kind() Kind { return KindIntersection }
func (c Intersection) key() string {
	parts := make([]string, len(c.Operands))
	for i, o := range c.Operands {
		parts[i] = o.key()
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, "⊓") + ")"
}
func (c Intersection) String() string { return c.key() }
func (Intersection) isExpr()          {}

// Union is a disjunction of >= 2 class expressions.
type Union struct{ Operands []Expr }

func (Union) Kind() Kind { return KindUnion }
func (u Union) key() string {
	parts := make([]string, len(u.Operands))
	for i, o := range u.Operands {
		parts[i] = o.key()
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, "⊔") + ")"
}
func (u Union) String() string { return u.key() }
func (Union) isExpr()          {}

// Complement is ¬C.
type Complement struct{ Operand Expr }

func (Complement) Kind() Kind      { return KindComplement }
func (c Complement) key() string   { return "¬" + c.Operand.key() }
func (c Complement) String() string { return c.key() }
func (Complement) isExpr()         {}

// ObjectSomeValuesFrom is ∃R.C.
type ObjectSomeValuesFrom struct {
	Property property.ObjectExpr
	Filler   Expr
}

func (ObjectSomeValuesFrom) Kind() Kind { return KindObjectSomeValuesFrom }
func (e ObjectSomeValuesFrom) key() string {
	return fmt.Sprintf("∃%s.%s", e.Property.Key(), e.Filler.key())
}
func (e ObjectSomeValuesFrom) String() string { return e.key() }
func (ObjectSomeValuesFrom) isExpr()          {}

// ObjectAllValuesFrom is ∀R.C.
type ObjectAllValuesFrom struct {
	Property property.ObjectExpr
	Filler   Expr
}

func (ObjectAllValuesFrom) Kind() Kind { return KindObjectAllValuesFrom }
func (e ObjectAllValuesFrom) key() string {
	return fmt.Sprintf("∀%s.%s", e.Property.Key(), e.Filler.key())
}
func (e ObjectAllValuesFrom) String() string { return e.key() }
func (ObjectAllValuesFrom) isExpr()          {}

// ObjectHasValue is ∃R.{a}.
type ObjectHasValue struct {
	Property   property.ObjectExpr
	Individual entity.Individual
}

func (ObjectHasValue) Kind() Kind { return KindObjectHasValue }
func (e ObjectHasValue) key() string {
	return fmt.Sprintf("∃%s.{%s}", e.Property.Key(), e.Individual.Key())
}
func (e ObjectHasValue) String() string { return e.key() }
func (ObjectHasValue) isExpr()          {}

// ObjectHasSelf is ∃R.Self.
type ObjectHasSelf struct{ Property property.ObjectExpr }

func (ObjectHasSelf) Kind() Kind        { return KindObjectHasSelf }
func (e ObjectHasSelf) key() string     { return fmt.Sprintf("∃%s.Self", e.Property.Key()) }
func (e ObjectHasSelf) String() string  { return e.key() }
func (ObjectHasSelf) isExpr()           {}

// ObjectCardinality covers min/max/exact, qualified (Filler != nil) or
// unqualified (Filler == nil, treated as ⊤).
type ObjectCardinality struct {
	N        int
	Property property.ObjectExpr
	Filler   Expr // nil means unqualified (⊤)
	kind     Kind
}

// NewObjectMinCardinality builds ≥n R(.C).
func NewObjectMinCardinality(n int, p property.ObjectExpr, filler Expr) ObjectCardinality {
	return ObjectCardinality{N: n, Property: p, Filler: filler, kind: KindObjectMinCardinality}
}

// NewObjectMaxCardinality builds ≤n R(.C).
func NewObjectMaxCardinality(n int, p property.ObjectExpr, filler Expr) ObjectCardinality {
	return ObjectCardinality{N: n, Property: p, Filler: filler, kind: KindObjectMaxCardinality}
}

// NewObjectExactCardinality builds =n R(.C).
func NewObjectExactCardinality(n int, p property.ObjectExpr, filler Expr) ObjectCardinality {
	return ObjectCardinality{N: n, Property: p, Filler: filler, kind: KindObjectExactCardinality}
}

func (c ObjectCardinality) Kind() Kind { return c.kind }
func (c ObjectCardinality) key() string {
	fillerKey := "⊤"
	if c.Filler != nil {
		fillerKey = c.Filler.key()
	}
	op := map[Kind]string{KindObjectMinCardinality: "≥", KindObjectMaxCardinality: "≤", KindObjectExactCardinality: "="}[c.kind]
	return fmt.Sprintf("%s%d%s.%s", op, c.N, c.Property.Key(), fillerKey)
}
func (c ObjectCardinality) String() string { return c.key() }
func (ObjectCardinality) isExpr()          {}

// DataSomeValuesFrom is ∃R.D for a data property R and datatype expr D.
type DataSomeValuesFrom struct {
	Property property.DataProperty
	Filler   datatype.Expr
}

func (DataSomeValuesFrom) Kind() Kind { return KindDataSomeValuesFrom }
func (e DataSomeValuesFrom) key() string {
	return fmt.Sprintf("∃%s.%s", e.Property.Key(), e.Filler.Key())
}
func (e DataSomeValuesFrom) String() string { return e.key() }
func (DataSomeValuesFrom) isExpr()          {}

// DataAllValuesFrom is ∀R.D.
type DataAllValuesFrom struct {
	Property property.DataProperty
	Filler   datatype.Expr
}

func (DataAllValuesFrom) Kind() Kind { return KindDataAllValuesFrom }
func (e DataAllValuesFrom) key() string {
	return fmt.Sprintf("∀%s.%s", e.Property.Key(), e.Filler.Key())
}
func (e DataAllValuesFrom) String() string { return e.key() }
func (DataAllValuesFrom) isExpr()          {}

// DataCardinality covers (n,R,D) data cardinality restrictions.
type DataCardinality struct {
	N        int
	Property property.DataProperty
	Filler   datatype.Expr // nil means unqualified
	kind     Kind
}

func NewDataMinCardinality(n int, p property.DataProperty, filler datatype.Expr) DataCardinality {
	return DataCardinality{N: n, Property: p, Filler: filler, kind: KindDataMinCardinality}
}
func NewDataMaxCardinality(n int, p property.DataProperty, filler datatype.Expr) DataCardinality {
	return DataCardinality{N: n, Property: p, Filler: filler, kind: KindDataMaxCardinality}
}
func NewDataExactCardinality(n int, p property.DataProperty, filler datatype.Expr) DataCardinality {
	return DataCardinality{N: n, Property: p, Filler: filler, kind: KindDataExactCardinality}
}

func (c DataCardinality) Kind() Kind { return c.kind }
func (c DataCardinality) key() string {
	fillerKey := "⊤"
	if c.Filler != nil {
		fillerKey = c.Filler.Key()
	}
	op := map[Kind]string{KindDataMinCardinality: "≥", KindDataMaxCardinality: "≤", KindDataExactCardinality: "="}[c.kind]
	return fmt.Sprintf("%s%d%s.%s", op, c.N, c.Property.Key(), fillerKey)
}
func (c DataCardinality) String() string { return c.key() }
func (DataCardinality) isExpr()          {}

// Key exposes the structural hash key for use by axiom/graph indices.
func Key(e Expr) string { return e.key() }

// Equal reports structural equality.
func Equal(a, b Expr) bool { return a.key() == b.key() }
