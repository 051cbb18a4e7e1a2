// Package axiom implements the SROIQ(D) axiom types (spec.md §3) and the
// content-addressed, entity-indexed store that iterates them by shape,
// signature, or kind (spec C2).
package axiom

import (
	"sort"
	"strings"

	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/datatype"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// Kind enumerates every axiom type in spec.md §3.
type Kind uint8

const (
	KindSubClassOf Kind = iota
	KindEquivalentClasses
	KindDisjointClasses
	KindDisjointUnion
	KindSubObjectPropertyOf
	KindSubPropertyChainOf
	KindEquivalentObjectProperties
	KindInverseObjectProperties
	KindDisjointObjectProperties
	KindObjectPropertyDomain
	KindObjectPropertyRange
	KindFunctionalObjectProperty
	KindInverseFunctionalObjectProperty
	KindReflexiveObjectProperty
	KindIrreflexiveObjectProperty
	KindSymmetricObjectProperty
	KindAsymmetricObjectProperty
	KindTransitiveObjectProperty
	KindSubDataPropertyOf
	KindEquivalentDataProperties
	KindDisjointDataProperties
	KindDataPropertyDomain
	KindDataPropertyRange
	KindFunctionalDataProperty
	KindClassAssertion
	KindObjectPropertyAssertion
	KindNegativeObjectPropertyAssertion
	KindDataPropertyAssertion
	KindNegativeDataPropertyAssertion
	KindSameIndividual
	KindDifferentIndividuals
	KindHasKey
)

// Annotations is an opaque bag, never interpreted by the core (spec.md §3).
type Annotations map[string][]string

// Axiom is implemented by every axiom type.
type Axiom interface {
	Kind() Kind
	Key() string        // structural hash key, used for dedup (I3)
	Signature() []string // entity keys mentioned, used for C2's per-entity index
	GetAnnotations() Annotations
}

func sortedJoin(parts []string) string {
	cp := append([]string(nil), parts...)
	sort.Strings(cp)
	return strings.Join(cp, ",")
}

// --- Class axioms ---

type SubClassOf struct {
	Sub, Sup classexpr.Expr
	Ann      Annotations
}

func (a SubClassOf) Kind() Kind { return KindSubClassOf }
func (a SubClassOf) Key() string {
	return "SubClassOf(" + a.Sub.String() + "," + a.Sup.String() + ")"
}
func (a SubClassOf) Signature() []string { return exprSignature(a.Sub, a.Sup) }
func (a SubClassOf) GetAnnotations() Annotations { return a.Ann }

type EquivalentClasses struct {
	Members []classexpr.Expr
	Ann     Annotations
}

func (a EquivalentClasses) Kind() Kind { return KindEquivalentClasses }
func (a EquivalentClasses) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.String()
	}
	return "EquivalentClasses(" + sortedJoin(parts) + ")"
}
func (a EquivalentClasses) Signature() []string { return exprSignature(a.Members...) }
func (a EquivalentClasses) GetAnnotations() Annotations { return a.Ann }

type DisjointClasses struct {
	Members []classexpr.Expr
	Ann     Annotations
}

func (a DisjointClasses) Kind() Kind { return KindDisjointClasses }
func (a DisjointClasses) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.String()
	}
	return "DisjointClasses(" + sortedJoin(parts) + ")"
}
func (a DisjointClasses) Signature() []string { return exprSignature(a.Members...) }
func (a DisjointClasses) GetAnnotations() Annotations { return a.Ann }

type DisjointUnion struct {
	Class   entity.Class
	Members []classexpr.Expr
	Ann     Annotations
}

func (a DisjointUnion) Kind() Kind { return KindDisjointUnion }
func (a DisjointUnion) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.String()
	}
	return "DisjointUnion(" + a.Class.Key() + "," + sortedJoin(parts) + ")"
}
func (a DisjointUnion) Signature() []string {
	return append([]string{a.Class.Key()}, exprSignature(a.Members...)...)
}
func (a DisjointUnion) GetAnnotations() Annotations { return a.Ann }

// --- Object property axioms ---

type SubObjectPropertyOf struct {
	Sub, Sup property.ObjectExpr
	Ann      Annotations
}

func (a SubObjectPropertyOf) Kind() Kind { return KindSubObjectPropertyOf }
func (a SubObjectPropertyOf) Key() string {
	return "SubObjectPropertyOf(" + a.Sub.Key() + "," + a.Sup.Key() + ")"
}
func (a SubObjectPropertyOf) Signature() []string { return []string{a.Sub.Key(), a.Sup.Key()} }
func (a SubObjectPropertyOf) GetAnnotations() Annotations { return a.Ann }

type SubPropertyChainOf struct {
	Chain property.Chain
	Sup   property.ObjectExpr
	Ann   Annotations
}

func (a SubPropertyChainOf) Kind() Kind { return KindSubPropertyChainOf }
func (a SubPropertyChainOf) Key() string {
	return "SubPropertyChainOf(" + a.Chain.Key() + "," + a.Sup.Key() + ")"
}
func (a SubPropertyChainOf) Signature() []string {
	sig := make([]string, 0, len(a.Chain)+1)
	for _, p := range a.Chain {
		sig = append(sig, p.Key())
	}
	return append(sig, a.Sup.Key())
}
func (a SubPropertyChainOf) GetAnnotations() Annotations { return a.Ann }

type EquivalentObjectProperties struct {
	Members []property.ObjectExpr
	Ann     Annotations
}

func (a EquivalentObjectProperties) Kind() Kind { return KindEquivalentObjectProperties }
func (a EquivalentObjectProperties) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.Key()
	}
	return "EquivalentObjectProperties(" + sortedJoin(parts) + ")"
}
func (a EquivalentObjectProperties) Signature() []string { return propSignature(a.Members...) }
func (a EquivalentObjectProperties) GetAnnotations() Annotations { return a.Ann }

type InverseObjectProperties struct {
	P, Q property.ObjectExpr
	Ann  Annotations
}

func (a InverseObjectProperties) Kind() Kind { return KindInverseObjectProperties }
func (a InverseObjectProperties) Key() string {
	return "InverseObjectProperties(" + a.P.Key() + "," + a.Q.Key() + ")"
}
func (a InverseObjectProperties) Signature() []string { return []string{a.P.Key(), a.Q.Key()} }
func (a InverseObjectProperties) GetAnnotations() Annotations { return a.Ann }

type DisjointObjectProperties struct {
	Members []property.ObjectExpr
	Ann     Annotations
}

func (a DisjointObjectProperties) Kind() Kind { return KindDisjointObjectProperties }
func (a DisjointObjectProperties) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.Key()
	}
	return "DisjointObjectProperties(" + sortedJoin(parts) + ")"
}
func (a DisjointObjectProperties) Signature() []string { return propSignature(a.Members...) }
func (a DisjointObjectProperties) GetAnnotations() Annotations { return a.Ann }

type ObjectPropertyDomain struct {
	Property property.ObjectExpr
	Domain   classexpr.Expr
	Ann      Annotations
}

func (a ObjectPropertyDomain) Kind() Kind { return KindObjectPropertyDomain }
func (a ObjectPropertyDomain) Key() string {
	return "ObjectPropertyDomain(" + a.Property.Key() + "," + a.Domain.String() + ")"
}
func (a ObjectPropertyDomain) Signature() []string {
	return append([]string{a.Property.Key()}, exprSignature(a.Domain)...)
}
func (a ObjectPropertyDomain) GetAnnotations() Annotations { return a.Ann }

type ObjectPropertyRange struct {
	Property property.ObjectExpr
	Range    classexpr.Expr
	Ann      Annotations
}

func (a ObjectPropertyRange) Kind() Kind { return KindObjectPropertyRange }
func (a ObjectPropertyRange) Key() string {
	return "ObjectPropertyRange(" + a.Property.Key() + "," + a.Range.String() + ")"
}
func (a ObjectPropertyRange) Signature() []string {
	return append([]string{a.Property.Key()}, exprSignature(a.Range)...)
}
func (a ObjectPropertyRange) GetAnnotations() Annotations { return a.Ann }

// ObjectPropertyCharacteristic covers the seven unary characteristics from
// spec.md §3: Functional, InverseFunctional, Reflexive, Irreflexive,
// Symmetric, Asymmetric, Transitive.
type ObjectPropertyCharacteristic struct {
	Property property.ObjectExpr
	kind     Kind
	Ann      Annotations
}

func NewFunctionalObjectProperty(p property.ObjectExpr) ObjectPropertyCharacteristic {
	return ObjectPropertyCharacteristic{Property: p, kind: KindFunctionalObjectProperty}
}
func NewInverseFunctionalObjectProperty(p property.ObjectExpr) ObjectPropertyCharacteristic {
	return ObjectPropertyCharacteristic{Property: p, kind: KindInverseFunctionalObjectProperty}
}
func NewReflexiveObjectProperty(p property.ObjectExpr) ObjectPropertyCharacteristic {
	return ObjectPropertyCharacteristic{Property: p, kind: KindReflexiveObjectProperty}
}
func NewIrreflexiveObjectProperty(p property.ObjectExpr) ObjectPropertyCharacteristic {
	return ObjectPropertyCharacteristic{Property: p, kind: KindIrreflexiveObjectProperty}
}
func NewSymmetricObjectProperty(p property.ObjectExpr) ObjectPropertyCharacteristic {
	return ObjectPropertyCharacteristic{Property: p, kind: KindSymmetricObjectProperty}
}
func NewAsymmetricObjectProperty(p property.ObjectExpr) ObjectPropertyCharacteristic {
	return ObjectPropertyCharacteristic{Property: p, kind: KindAsymmetricObjectProperty}
}
func NewTransitiveObjectProperty(p property.ObjectExpr) ObjectPropertyCharacteristic {
	return ObjectPropertyCharacteristic{Property: p, kind: KindTransitiveObjectProperty}
}

func (a ObjectPropertyCharacteristic) Kind() Kind { return a.kind }
func (a ObjectPropertyCharacteristic) Key() string {
	return characteristicName(a.kind) + "(" + a.Property.Key() + ")"
}
func (a ObjectPropertyCharacteristic) Signature() []string { return []string{a.Property.Key()} }
func (a ObjectPropertyCharacteristic) GetAnnotations() Annotations { return a.Ann }

func characteristicName(k Kind) string {
	switch k {
	case KindFunctionalObjectProperty:
		return "FunctionalObjectProperty"
	case KindInverseFunctionalObjectProperty:
		return "InverseFunctionalObjectProperty"
	case KindReflexiveObjectProperty:
		return "ReflexiveObjectProperty"
	case KindIrreflexiveObjectProperty:
		return "IrreflexiveObjectProperty"
	case KindSymmetricObjectProperty:
		return "SymmetricObjectProperty"
	case KindAsymmetricObjectProperty:
		return "AsymmetricObjectProperty"
	case KindTransitiveObjectProperty:
		return "TransitiveObjectProperty"
	default:
		return "ObjectPropertyCharacteristic"
	}
}

// --- Data property axioms (analogues of the object-property set) ---

type SubDataPropertyOf struct {
	Sub, Sup property.DataProperty
	Ann      Annotations
}

func (a SubDataPropertyOf) Kind() Kind { return KindSubDataPropertyOf }
func (a SubDataPropertyOf) Key() string {
	return "SubDataPropertyOf(" + a.Sub.Key() + "," + a.Sup.Key() + ")"
}
func (a SubDataPropertyOf) Signature() []string { return []string{a.Sub.Key(), a.Sup.Key()} }
func (a SubDataPropertyOf) GetAnnotations() Annotations { return a.Ann }

type EquivalentDataProperties struct {
	Members []property.DataProperty
	Ann     Annotations
}

func (a EquivalentDataProperties) Kind() Kind { return KindEquivalentDataProperties }
func (a EquivalentDataProperties) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.Key()
	}
	return "EquivalentDataProperties(" + sortedJoin(parts) + ")"
}
func (a EquivalentDataProperties) Signature() []string { return dataPropSignature(a.Members...) }
func (a EquivalentDataProperties) GetAnnotations() Annotations { return a.Ann }

type DisjointDataProperties struct {
	Members []property.DataProperty
	Ann     Annotations
}

func (a DisjointDataProperties) Kind() Kind { return KindDisjointDataProperties }
func (a DisjointDataProperties) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.Key()
	}
	return "DisjointDataProperties(" + sortedJoin(parts) + ")"
}
func (a DisjointDataProperties) Signature() []string { return dataPropSignature(a.Members...) }
func (a DisjointDataProperties) GetAnnotations() Annotations { return a.Ann }

type DataPropertyDomain struct {
	Property property.DataProperty
	Domain   classexpr.Expr
	Ann      Annotations
}

func (a DataPropertyDomain) Kind() Kind { return KindDataPropertyDomain }
func (a DataPropertyDomain) Key() string {
	return "DataPropertyDomain(" + a.Property.Key() + "," + a.Domain.String() + ")"
}
func (a DataPropertyDomain) Signature() []string {
	return append([]string{a.Property.Key()}, exprSignature(a.Domain)...)
}
func (a DataPropertyDomain) GetAnnotations() Annotations { return a.Ann }

type DataPropertyRange struct {
	Property property.DataProperty
	Range    datatype.Expr
	Ann      Annotations
}

func (a DataPropertyRange) Kind() Kind { return KindDataPropertyRange }
func (a DataPropertyRange) Key() string {
	return "DataPropertyRange(" + a.Property.Key() + "," + a.Range.Key() + ")"
}
func (a DataPropertyRange) Signature() []string { return []string{a.Property.Key()} }
func (a DataPropertyRange) GetAnnotations() Annotations { return a.Ann }

type FunctionalDataProperty struct {
	Property property.DataProperty
	Ann      Annotations
}

func (a FunctionalDataProperty) Kind() Kind { return KindFunctionalDataProperty }
func (a FunctionalDataProperty) Key() string {
	return "FunctionalDataProperty(" + a.Property.Key() + ")"
}
func (a FunctionalDataProperty) Signature() []string { return []string{a.Property.Key()} }
func (a FunctionalDataProperty) GetAnnotations() Annotations { return a.Ann }

// --- ABox axioms ---

type ClassAssertion struct {
	Individual entity.Individual
	Class      classexpr.Expr
	Ann        Annotations
}

func (a ClassAssertion) Kind() Kind { return KindClassAssertion }
func (a ClassAssertion) Key() string {
	return "ClassAssertion(" + a.Individual.Key() + "," + a.Class.String() + ")"
}
func (a ClassAssertion) Signature() []string {
	return append([]string{a.Individual.Key()}, exprSignature(a.Class)...)
}
func (a ClassAssertion) GetAnnotations() Annotations { return a.Ann }

type ObjectPropertyAssertion struct {
	Property property.ObjectExpr
	Source   entity.Individual
	Target   entity.Individual
	Ann      Annotations
}

func (a ObjectPropertyAssertion) Kind() Kind { return KindObjectPropertyAssertion }
func (a ObjectPropertyAssertion) Key() string {
	return "ObjectPropertyAssertion(" + a.Property.Key() + "," + a.Source.Key() + "," + a.Target.Key() + ")"
}
func (a ObjectPropertyAssertion) Signature() []string {
	return []string{a.Property.Key(), a.Source.Key(), a.Target.Key()}
}
func (a ObjectPropertyAssertion) GetAnnotations() Annotations { return a.Ann }

type NegativeObjectPropertyAssertion struct {
	Property property.ObjectExpr
	Source   entity.Individual
	Target   entity.Individual
	Ann      Annotations
}

func (a NegativeObjectPropertyAssertion) Kind() Kind { return KindNegativeObjectPropertyAssertion }
func (a NegativeObjectPropertyAssertion) Key() string {
	return "NegativeObjectPropertyAssertion(" + a.Property.Key() + "," + a.Source.Key() + "," + a.Target.Key() + ")"
}
func (a NegativeObjectPropertyAssertion) Signature() []string {
	return []string{a.Property.Key(), a.Source.Key(), a.Target.Key()}
}
func (a NegativeObjectPropertyAssertion) GetAnnotations() Annotations { return a.Ann }

type DataPropertyAssertion struct {
	Property property.DataProperty
	Source   entity.Individual
	Target   datatype.Literal
	Ann      Annotations
}

func (a DataPropertyAssertion) Kind() Kind { return KindDataPropertyAssertion }
func (a DataPropertyAssertion) Key() string {
	return "DataPropertyAssertion(" + a.Property.Key() + "," + a.Source.Key() + "," + a.Target.Lexical + ")"
}
func (a DataPropertyAssertion) Signature() []string {
	return []string{a.Property.Key(), a.Source.Key()}
}
func (a DataPropertyAssertion) GetAnnotations() Annotations { return a.Ann }

type NegativeDataPropertyAssertion struct {
	Property property.DataProperty
	Source   entity.Individual
	Target   datatype.Literal
	Ann      Annotations
}

func (a NegativeDataPropertyAssertion) Kind() Kind { return KindNegativeDataPropertyAssertion }
func (a NegativeDataPropertyAssertion) Key() string {
	return "NegativeDataPropertyAssertion(" + a.Property.Key() + "," + a.Source.Key() + "," + a.Target.Lexical + ")"
}
func (a NegativeDataPropertyAssertion) Signature() []string {
	return []string{a.Property.Key(), a.Source.Key()}
}
func (a NegativeDataPropertyAssertion) GetAnnotations() Annotations { return a.Ann }

type SameIndividual struct {
	Members []entity.Individual
	Ann     Annotations
}

func (a SameIndividual) Kind() Kind { return KindSameIndividual }
func (a SameIndividual) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.Key()
	}
	return "SameIndividual(" + sortedJoin(parts) + ")"
}
func (a SameIndividual) Signature() []string { return individualSignature(a.Members...) }
func (a SameIndividual) GetAnnotations() Annotations { return a.Ann }

type DifferentIndividuals struct {
	Members []entity.Individual
	Ann     Annotations
}

func (a DifferentIndividuals) Kind() Kind { return KindDifferentIndividuals }
func (a DifferentIndividuals) Key() string {
	parts := make([]string, len(a.Members))
	for i, m := range a.Members {
		parts[i] = m.Key()
	}
	return "DifferentIndividuals(" + sortedJoin(parts) + ")"
}
func (a DifferentIndividuals) Signature() []string { return individualSignature(a.Members...) }
func (a DifferentIndividuals) GetAnnotations() Annotations { return a.Ann }

// HasKey: per spec.md's open-question decision (DESIGN.md), this axiom is a
// consistency-only constraint — it never feeds classification.
type HasKey struct {
	Class          classexpr.Expr
	ObjectProps    []property.ObjectExpr
	DataProps      []property.DataProperty
	Ann            Annotations
}

func (a HasKey) Kind() Kind { return KindHasKey }
func (a HasKey) Key() string {
	op := make([]string, len(a.ObjectProps))
	for i, p := range a.ObjectProps {
		op[i] = p.Key()
	}
	dp := make([]string, len(a.DataProps))
	for i, p := range a.DataProps {
		dp[i] = p.Key()
	}
	return "HasKey(" + a.Class.String() + ";" + sortedJoin(op) + ";" + sortedJoin(dp) + ")"
}
func (a HasKey) Signature() []string {
	sig := exprSignature(a.Class)
	sig = append(sig, propSignature(a.ObjectProps...)...)
	sig = append(sig, dataPropSignature(a.DataProps...)...)
	return sig
}
func (a HasKey) GetAnnotations() Annotations { return a.Ann }

// --- signature helpers ---

func exprSignature(exprs ...classexpr.Expr) []string {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		switch v := e.(type) {
		case classexpr.Atomic:
			out = append(out, v.Class.Key())
		case classexpr.Top, classexpr.Bottom:
			// built in, not registered entities
		default:
			out = append(out, e.String())
		}
	}
	return out
}

func propSignature(props ...property.ObjectExpr) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Key()
	}
	return out
}

func dataPropSignature(props ...property.DataProperty) []string {
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.Key()
	}
	return out
}

func individualSignature(inds ...entity.Individual) []string {
	out := make([]string, len(inds))
	for i, ind := range inds {
		out[i] = ind.Key()
	}
	return out
}
