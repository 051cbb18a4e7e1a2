package ontology

import (
	"fmt"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
)

// Builder is the API external parsers (OBO, OWL/RDF-XML, ...) use to
// populate an Ontology, validating local well-formedness (I1-I3) and
// returning typed errors (spec.md §6, §7).
type Builder struct {
	Onto     *Ontology
	Interner *iri.Interner
}

// NewBuilder constructs a Builder over a fresh Ontology using the given
// interner (pass iri.Default() for the process-wide singleton).
func NewBuilder(in *iri.Interner) *Builder {
	return &Builder{Onto: New(nil), Interner: in}
}

// SetID interns iriText as the ontology's identifying IRI.
func (b *Builder) SetID(iriText string) error {
	h, err := b.Interner.Intern(iriText)
	if err != nil {
		return fmt.Errorf("ontology id: %w", err)
	}
	b.Onto.IRI = h
	return nil
}

// Class interns name and registers (or returns the existing) Class entity.
func (b *Builder) Class(name string) (entity.Class, error) {
	h, err := b.Interner.Intern(name)
	if err != nil {
		return entity.Class{}, err
	}
	c := entity.Class{IRI: h}
	b.Onto.RegisterEntity(c)
	return c, nil
}

// ObjectProperty interns name and registers an ObjectProperty entity.
func (b *Builder) ObjectProperty(name string) (entity.ObjectProperty, error) {
	h, err := b.Interner.Intern(name)
	if err != nil {
		return entity.ObjectProperty{}, err
	}
	p := entity.ObjectProperty{IRI: h}
	b.Onto.RegisterEntity(p)
	return p, nil
}

// DataProperty interns name and registers a DataProperty entity.
func (b *Builder) DataProperty(name string) (entity.DataProperty, error) {
	h, err := b.Interner.Intern(name)
	if err != nil {
		return entity.DataProperty{}, err
	}
	p := entity.DataProperty{IRI: h}
	b.Onto.RegisterEntity(p)
	return p, nil
}

// NamedIndividual interns name and registers a NamedIndividual entity.
func (b *Builder) NamedIndividual(name string) (entity.NamedIndividual, error) {
	h, err := b.Interner.Intern(name)
	if err != nil {
		return entity.NamedIndividual{}, err
	}
	i := entity.NamedIndividual{IRI: h}
	b.Onto.RegisterEntity(i)
	return i, nil
}

// AnonymousIndividual registers an anonymous individual under the given
// locally-unique label.
func (b *Builder) AnonymousIndividual(label string) entity.AnonymousIndividual {
	a := entity.AnonymousIndividual{Label: label}
	b.Onto.RegisterEntity(a)
	return a
}

// Atomic wraps a Class entity as an atomic class expression.
func Atomic(c entity.Class) classexpr.Expr { return classexpr.Atomic{Class: c} }

// AddAxiom validates structural preconditions (MalformedAxiom), then
// delegates to Ontology.AddAxiom (which enforces I1).
func (b *Builder) AddAxiom(ax axiom.Axiom) (bool, error) {
	if err := checkWellFormed(ax); err != nil {
		return false, &MalformedAxiomError{Detail: err.Error()}
	}
	return b.Onto.AddAxiom(ax)
}

// checkWellFormed rejects the structural preconditions called out in
// spec.md §7 (e.g. 0/1-arity conjunction/disjunction, empty cardinality
// member lists).
func checkWellFormed(ax axiom.Axiom) error {
	switch a := ax.(type) {
	case axiom.EquivalentClasses:
		if len(a.Members) < 2 {
			return fmt.Errorf("EquivalentClasses requires >= 2 members, got %d", len(a.Members))
		}
	case axiom.DisjointClasses:
		if len(a.Members) < 2 {
			return fmt.Errorf("DisjointClasses requires >= 2 members, got %d", len(a.Members))
		}
	case axiom.DisjointUnion:
		if len(a.Members) < 2 {
			return fmt.Errorf("DisjointUnion requires >= 2 members, got %d", len(a.Members))
		}
	case axiom.SameIndividual:
		if len(a.Members) < 2 {
			return fmt.Errorf("SameIndividual requires >= 2 members, got %d", len(a.Members))
		}
	case axiom.DifferentIndividuals:
		if len(a.Members) < 2 {
			return fmt.Errorf("DifferentIndividuals requires >= 2 members, got %d", len(a.Members))
		}
	case axiom.SubPropertyChainOf:
		if len(a.Chain) < 2 {
			return fmt.Errorf("SubPropertyChainOf requires a chain of >= 2 properties, got %d", len(a.Chain))
		}
	}
	switch e := exprOf(ax).(type) {
	case classexpr.Intersection:
		if len(e.Operands) < 2 {
			return fmt.Errorf("intersection requires >= 2 operands, got %d", len(e.Operands))
		}
	case classexpr.Union:
		if len(e.Operands) < 2 {
			return fmt.Errorf("union requires >= 2 operands, got %d", len(e.Operands))
		}
	}
	return nil
}

// exprOf extracts a top-level class expression from axiom kinds that carry
// exactly one, for the malformed-conjunction/disjunction check above. Most
// axiom kinds carry none, in which case exprOf returns nil and the switch
// in checkWellFormed is a no-op.
func exprOf(ax axiom.Axiom) classexpr.Expr {
	switch a := ax.(type) {
	case axiom.SubClassOf:
		return a.Sup
	case axiom.ClassAssertion:
		return a.Class
	default:
		return nil
	}
}

// MalformedAxiomError reports an axiom that violates a core structural
// precondition (spec.md §7's MalformedAxiom).
type MalformedAxiomError struct{ Detail string }

func (e *MalformedAxiomError) Error() string { return "malformed axiom: " + e.Detail }
