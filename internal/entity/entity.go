// Package entity implements the five OWL 2 entity variants (spec C1).
// Entities are value-like and compared structurally over their IRI; a Kind
// discriminator backs a plain switch instead of virtual dispatch, per
// spec.md's "no virtual dispatch in hot paths" design note.
package entity

import "github.com/anusornc/owl2-reasoner-sub000/internal/iri"

// Kind discriminates entity variants.
type Kind uint8

const (
	KindClass Kind = iota
	KindObjectProperty
	KindDataProperty
	KindNamedIndividual
	KindAnonymousIndividual
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "Class"
	case KindObjectProperty:
		return "ObjectProperty"
	case KindDataProperty:
		return "DataProperty"
	case KindNamedIndividual:
		return "NamedIndividual"
	case KindAnonymousIndividual:
		return "AnonymousIndividual"
	default:
		return "Unknown"
	}
}

// Entity is implemented by all five variants. Equality is structural over
// the identifying IRI (or, for anonymous individuals, the local label).
type Entity interface {
	Kind() Kind
	// Key returns a value suitable for map-keying and equality comparison.
	Key() string
}

// Class is an OWL class entity.
type Class struct{ IRI *iri.IRI }

func (Class) Kind() Kind    { return KindClass }
func (c Class) Key() string { return c.IRI.Full() }

// ObjectProperty is an OWL object property entity.
type ObjectProperty struct{ IRI *iri.IRI }

func (ObjectProperty) Kind() Kind    { return KindObjectProperty }
func (p ObjectProperty) Key() string { return p.IRI.Full() }

// DataProperty is an OWL data property entity.
type DataProperty struct{ IRI *iri.IRI }

func (DataProperty) Kind() Kind    { return KindDataProperty }
func (p DataProperty) Key() string { return p.IRI.Full() }

// NamedIndividual is an OWL named individual entity.
type NamedIndividual struct{ IRI *iri.IRI }

func (NamedIndividual) Kind() Kind    { return KindNamedIndividual }
func (i NamedIndividual) Key() string { return i.IRI.Full() }

// AnonymousIndividual carries a locally unique label instead of an IRI.
type AnonymousIndividual struct{ Label string }

func (AnonymousIndividual) Kind() Kind      { return KindAnonymousIndividual }
func (a AnonymousIndividual) Key() string   { return "_:" + a.Label }
func (a AnonymousIndividual) String() string { return "_:" + a.Label }

// Individual is implemented by both NamedIndividual and AnonymousIndividual,
// letting ABox axioms and nominal class expressions refer to either.
type Individual interface {
	Entity
	isIndividual()
}

func (NamedIndividual) isIndividual()     {}
func (AnonymousIndividual) isIndividual() {}
