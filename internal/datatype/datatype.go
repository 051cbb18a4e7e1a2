// Package datatype implements the SROIQ(D) datatype-expression algebra and
// the per-datatype facet constraint solvers used by the tableau's datatype
// reasoning (spec.md §3, §4.5).
package datatype

import (
	"sort"
	"strings"
)

// Base identifies one of the fixed XSD datatypes the core understands.
type Base string

const (
	XSDString   Base = "xsd:string"
	XSDInteger  Base = "xsd:integer"
	XSDDecimal  Base = "xsd:decimal"
	XSDBoolean  Base = "xsd:boolean"
	XSDDateTime Base = "xsd:dateTime"
	XSDFloat    Base = "xsd:float"
	XSDDouble   Base = "xsd:double"
)

// FacetKind enumerates the fixed facet set from spec.md §3.
type FacetKind uint8

const (
	MinInclusive FacetKind = iota
	MaxInclusive
	MinExclusive
	MaxExclusive
	Length
	MinLength
	MaxLength
	Pattern
	TotalDigits
	FractionDigits
)

// Facet is one restriction clause: kind + lexical bound (interpreted by the
// matching Base's solver).
type Facet struct {
	Kind  FacetKind
	Value string
}

// Literal is a datatype value in its lexical form, paired with its
// datatype. Lexical content for opaque literal kinds (HTML/XML) is compared
// byte-for-byte per spec.md §9's open-question decision.
type Literal struct {
	Lexical  string
	Datatype Base
}

// Expr is implemented by every datatype-expression variant.
type Expr interface {
	Key() string
	isDatatypeExpr()
}

// Atomic is a bare datatype IRI (xsd:string, xsd:integer, ...).
type Atomic struct{ Base Base }

func (a Atomic) Key() string     { return string(a.Base) }
func (Atomic) isDatatypeExpr()    {}

// Restriction is a base datatype narrowed by a finite facet list.
type Restriction struct {
	Base   Base
	Facets []Facet
}

func (r Restriction) Key() string {
	parts := make([]string, len(r.Facets))
	for i, f := range r.Facets {
		parts[i] = facetKey(f)
	}
	sort.Strings(parts)
	return string(r.Base) + "[" + strings.Join(parts, ",") + "]"
}
func (Restriction) isDatatypeExpr() {}

func facetKey(f Facet) string {
	names := [...]string{"minInclusive", "maxInclusive", "minExclusive", "maxExclusive",
		"length", "minLength", "maxLength", "pattern", "totalDigits", "fractionDigits"}
	name := "facet"
	if int(f.Kind) < len(names) {
		name = names[f.Kind]
	}
	return name + "=" + f.Value
}

// Complement is ¬D.
type Complement struct{ Operand Expr }

func (c Complement) Key() string  { return "¬" + c.Operand.Key() }
func (Complement) isDatatypeExpr() {}

// Union is D1 ⊔ D2 ⊔ ...
type Union struct{ Operands []Expr }

func (u Union) Key() string {
	parts := make([]string, len(u.Operands))
	for i, o := range u.Operands {
		parts[i] = o.Key()
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, "⊔") + ")"
}
func (Union) isDatatypeExpr() {}

// Intersection is D1 ⊓ D2 ⊓ ...
type Intersection struct{ Operands []Expr }

func (i Intersection) Key() string {
	parts := make([]string, len(i.Operands))
	for idx, o := range i.Operands {
		parts[idx] = o.Key()
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, "⊓") + ")"
}
func (Intersection) isDatatypeExpr() {}

// OneOf is a finite enumeration of literals.
type OneOf struct{ Literals []Literal }

func (o OneOf) Key() string {
	parts := make([]string, len(o.Literals))
	for i, l := range o.Literals {
		parts[i] = string(l.Datatype) + ":" + l.Lexical
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}
func (OneOf) isDatatypeExpr() {}
