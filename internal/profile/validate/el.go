package validate

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// EL validates onto against the OWL 2 EL profile grammar: class
// expressions restricted to owl:Thing, owl:Nothing, atomic classes,
// intersections, existentials (object and data), and has-value
// restrictions; no unions, complements, universal restrictions,
// cardinality restrictions, or general nominals; no inverse object
// properties; property characteristics restricted to Reflexive and
// Transitive (spec.md §4.7).
func EL(onto *ontology.Ontology) Report {
	var violations []Violation
	add := func(ax axiom.Axiom, clause string) {
		violations = append(violations, Violation{AxiomKey: ax.Key(), Clause: clause})
	}
	checkExpr := func(ax axiom.Axiom, e classexpr.Expr, where string) {
		if !elExprOK(e) {
			add(ax, where+" is not an EL class expression: "+e.String())
		}
	}
	checkProp := func(ax axiom.Axiom, p property.ObjectExpr, where string) {
		if p.Inverse {
			add(ax, where+" uses an inverse object property, not permitted in EL")
		}
	}

	for _, ax := range onto.Axioms.All() {
		switch a := ax.(type) {
		case axiom.SubClassOf:
			checkExpr(a, a.Sub, "subclass")
			checkExpr(a, a.Sup, "superclass")
		case axiom.EquivalentClasses:
			for i, m := range a.Members {
				checkExpr(a, m, memberLabel(i))
			}
		case axiom.DisjointClasses:
			for i, m := range a.Members {
				checkExpr(a, m, memberLabel(i))
			}
		case axiom.DisjointUnion:
			add(a, "DisjointUnion decomposes through a union, not permitted in EL")
		case axiom.SubObjectPropertyOf:
			checkProp(a, a.Sub, "subproperty")
			checkProp(a, a.Sup, "superproperty")
		case axiom.SubPropertyChainOf:
			for i, p := range a.Chain {
				checkProp(a, p, memberLabel(i))
			}
			checkProp(a, a.Sup, "chain superproperty")
		case axiom.EquivalentObjectProperties:
			for i, p := range a.Members {
				checkProp(a, p, memberLabel(i))
			}
		case axiom.InverseObjectProperties:
			add(a, "InverseObjectProperties is not permitted in EL")
		case axiom.DisjointObjectProperties:
			add(a, "DisjointObjectProperties is not permitted in EL")
		case axiom.ObjectPropertyDomain:
			checkProp(a, a.Property, "property")
			checkExpr(a, a.Domain, "domain")
		case axiom.ObjectPropertyRange:
			checkProp(a, a.Property, "property")
			checkExpr(a, a.Range, "range")
		case axiom.ObjectPropertyCharacteristic:
			switch a.Kind() {
			case axiom.KindReflexiveObjectProperty, axiom.KindTransitiveObjectProperty:
				// permitted
			default:
				add(a, "this object property characteristic is not permitted in EL")
			}
		case axiom.DataPropertyDomain:
			checkExpr(a, a.Domain, "domain")
		case axiom.ClassAssertion:
			checkExpr(a, a.Class, "class")
		case axiom.ObjectPropertyAssertion:
			checkProp(a, a.Property, "property")
		case axiom.NegativeObjectPropertyAssertion:
			checkProp(a, a.Property, "property")
		case axiom.HasKey:
			checkExpr(a, a.Class, "keyed class")
			for i, p := range a.ObjectProps {
				checkProp(a, p, memberLabel(i))
			}
		}
	}

	return report(violations)
}

func memberLabel(i int) string {
	labels := []string{"first operand", "second operand", "third operand"}
	if i < len(labels) {
		return labels[i]
	}
	return "an operand"
}

// elExprOK reports whether e is built entirely from EL-admissible
// constructors.
func elExprOK(e classexpr.Expr) bool {
	switch v := e.(type) {
	case classexpr.Atomic, classexpr.Top, classexpr.Bottom:
		return true
	case classexpr.Intersection:
		for _, o := range v.Operands {
			if !elExprOK(o) {
				return false
			}
		}
		return true
	case classexpr.ObjectSomeValuesFrom:
		return !v.Property.Inverse && elExprOK(v.Filler)
	case classexpr.ObjectHasValue:
		return !v.Property.Inverse
	case classexpr.DataSomeValuesFrom:
		return true
	default:
		return false
	}
}
