package validate

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
)

// RL validates onto against the OWL 2 RL profile grammar: subclass
// expressions admit union and qualified existentials, superclass
// expressions admit universal restrictions and unqualified ≤0/≤1
// cardinality, and neither side admits complement or general nominals —
// the asymmetric left/right grammar that lets subsumption compile to a
// fixed Datalog-style rule set (spec.md §4.7).
func RL(onto *ontology.Ontology) Report {
	var violations []Violation
	add := func(ax axiom.Axiom, clause string) {
		violations = append(violations, Violation{AxiomKey: ax.Key(), Clause: clause})
	}

	for _, ax := range onto.Axioms.All() {
		switch a := ax.(type) {
		case axiom.SubClassOf:
			if !rlLeftConcept(a.Sub) {
				add(a, "subclass is not an RL-admissible expression: "+a.Sub.String())
			}
			if !rlRightConcept(a.Sup) {
				add(a, "superclass is not an RL-admissible expression: "+a.Sup.String())
			}
		case axiom.EquivalentClasses:
			for _, m := range a.Members {
				if !rlLeftConcept(m) || !rlRightConcept(m) {
					add(a, "equivalence member is not RL-admissible on both sides: "+m.String())
				}
			}
		case axiom.DisjointClasses:
			for _, m := range a.Members {
				if !rlLeftConcept(m) {
					add(a, "disjointness member is not RL-admissible: "+m.String())
				}
			}
		case axiom.DisjointUnion:
			add(a, "DisjointUnion is not permitted in RL")
		case axiom.ObjectPropertyDomain:
			if !rlRightConcept(a.Domain) {
				add(a, "domain is not RL-admissible: "+a.Domain.String())
			}
		case axiom.ObjectPropertyRange:
			if !rlRightConcept(a.Range) {
				add(a, "range is not RL-admissible: "+a.Range.String())
			}
		case axiom.DataPropertyDomain:
			if !rlRightConcept(a.Domain) {
				add(a, "domain is not RL-admissible: "+a.Domain.String())
			}
		case axiom.ClassAssertion:
			if !rlLeftConcept(a.Class) {
				add(a, "asserted class is not RL-admissible: "+a.Class.String())
			}
		}
	}

	return report(violations)
}

// rlLeftConcept admits the subclass-position grammar: atomic classes,
// intersection, union, qualified existentials, has-value, and data
// existentials.
func rlLeftConcept(e classexpr.Expr) bool {
	switch v := e.(type) {
	case classexpr.Atomic, classexpr.Top, classexpr.Bottom:
		return true
	case classexpr.Intersection:
		return allOK(v.Operands, rlLeftConcept)
	case classexpr.Union:
		return allOK(v.Operands, rlLeftConcept)
	case classexpr.ObjectSomeValuesFrom:
		return rlLeftConcept(v.Filler)
	case classexpr.ObjectHasValue:
		return true
	case classexpr.DataSomeValuesFrom:
		return true
	default:
		return false
	}
}

// rlRightConcept admits the superclass-position grammar: atomic classes,
// intersection, universal restrictions, has-value, data universals, and
// unqualified ≤0/≤1 cardinality.
func rlRightConcept(e classexpr.Expr) bool {
	switch v := e.(type) {
	case classexpr.Atomic, classexpr.Top, classexpr.Bottom:
		return true
	case classexpr.Intersection:
		return allOK(v.Operands, rlRightConcept)
	case classexpr.ObjectAllValuesFrom:
		return rlRightConcept(v.Filler)
	case classexpr.ObjectHasValue:
		return true
	case classexpr.DataAllValuesFrom:
		return true
	case classexpr.ObjectCardinality:
		return v.Kind() == classexpr.KindObjectMaxCardinality && v.N <= 1 && v.Filler == nil
	case classexpr.DataCardinality:
		return v.Kind() == classexpr.KindDataMaxCardinality && v.N <= 1 && v.Filler == nil
	default:
		return false
	}
}

func allOK(exprs []classexpr.Expr, pred func(classexpr.Expr) bool) bool {
	for _, e := range exprs {
		if !pred(e) {
			return false
		}
	}
	return true
}
