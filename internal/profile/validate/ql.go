package validate

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
)

// QL validates onto against the OWL 2 QL profile grammar: "basic concepts"
// (atomic classes, owl:Thing, owl:Nothing, and unqualified existentials
// ∃R.owl:Thing) on the subclass side, intersections and negated basic
// concepts additionally permitted on the superclass side, and no role
// chains, transitivity, or functionality characteristics — the
// restrictions that let subsumption reduce to reachability over a
// normalised role/concept graph (spec.md §4.7).
func QL(onto *ontology.Ontology) Report {
	var violations []Violation
	add := func(ax axiom.Axiom, clause string) {
		violations = append(violations, Violation{AxiomKey: ax.Key(), Clause: clause})
	}

	for _, ax := range onto.Axioms.All() {
		switch a := ax.(type) {
		case axiom.SubClassOf:
			if !qlBasicConcept(a.Sub) {
				add(a, "subclass is not a QL basic concept: "+a.Sub.String())
			}
			if !qlSuperConcept(a.Sup) {
				add(a, "superclass is not a QL-admissible expression: "+a.Sup.String())
			}
		case axiom.EquivalentClasses:
			for _, m := range a.Members {
				if !qlBasicConcept(m) {
					add(a, "equivalence member is not a QL basic concept: "+m.String())
				}
			}
		case axiom.DisjointClasses:
			for _, m := range a.Members {
				if !qlBasicConcept(m) {
					add(a, "disjointness member is not a QL basic concept: "+m.String())
				}
			}
		case axiom.DisjointUnion:
			add(a, "DisjointUnion decomposes through a union, not permitted in QL")
		case axiom.SubPropertyChainOf:
			add(a, "role chains are not permitted in QL")
		case axiom.ObjectPropertyCharacteristic:
			switch a.Kind() {
			case axiom.KindTransitiveObjectProperty,
				axiom.KindFunctionalObjectProperty,
				axiom.KindInverseFunctionalObjectProperty:
				add(a, "this object property characteristic is not permitted in QL")
			}
		case axiom.FunctionalDataProperty:
			add(a, "FunctionalDataProperty is not permitted in QL")
		case axiom.HasKey:
			add(a, "HasKey is not permitted in QL")
		case axiom.ObjectPropertyDomain:
			if !qlSuperConcept(a.Domain) {
				add(a, "domain is not a QL-admissible expression: "+a.Domain.String())
			}
		case axiom.ObjectPropertyRange:
			if !qlSuperConcept(a.Range) {
				add(a, "range is not a QL-admissible expression: "+a.Range.String())
			}
		case axiom.DataPropertyDomain:
			if !qlSuperConcept(a.Domain) {
				add(a, "domain is not a QL-admissible expression: "+a.Domain.String())
			}
		case axiom.ClassAssertion:
			if !qlBasicConcept(a.Class) {
				add(a, "asserted class is not a QL basic concept: "+a.Class.String())
			}
		}
	}

	return report(violations)
}

// qlBasicConcept reports whether e is a QL "basic concept": an atomic
// class, owl:Thing, owl:Nothing, or an unqualified existential ∃R.⊤.
func qlBasicConcept(e classexpr.Expr) bool {
	switch v := e.(type) {
	case classexpr.Atomic, classexpr.Top, classexpr.Bottom:
		return true
	case classexpr.ObjectSomeValuesFrom:
		_, top := v.Filler.(classexpr.Top)
		return top
	default:
		return false
	}
}

// qlSuperConcept additionally admits intersections of QL-admissible
// expressions and the negation of a basic concept (the shape QL uses to
// express disjointness).
func qlSuperConcept(e classexpr.Expr) bool {
	if qlBasicConcept(e) {
		return true
	}
	switch v := e.(type) {
	case classexpr.Intersection:
		for _, o := range v.Operands {
			if !qlSuperConcept(o) {
				return false
			}
		}
		return true
	case classexpr.Complement:
		return qlBasicConcept(v.Operand)
	default:
		return false
	}
}
