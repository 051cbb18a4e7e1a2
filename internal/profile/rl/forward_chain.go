// Package rl implements the OWL 2 RL profile fast path (spec.md §4.7):
// TBox axioms compile to a fixed Datalog-style rule set and the ABox is
// closed under those rules by naive forward chaining, grounded on the
// semi-naive forward-evaluation shape of the vendored kevinawalsh/datalog
// engine found in the retrieved corpus — this package reimplements that
// evaluation strategy over a rule set compiled from the ontology rather
// than depending on the vendored engine directly.
package rl

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
)

type hasValueFact struct {
	Role string
	Ind  string
}

type existRule struct {
	Filler string
	Result string
}

type univRule struct {
	Role   string
	Result string
}

type conjRule struct {
	Others []string
	Result string
}

// RuleSet is the compiled form of an RL-valid ontology's TBox: one field
// per fixed rule shape from the OWL 2 RL ruleset (cax-sco, prp-dom,
// prp-rng, prp-spo1, prp-inv, prp-symp, prp-trp, cls-hv1/2, cls-svf2,
// cls-int1, and the universal-restriction analogue of cls-avf).
type RuleSet struct {
	subClassOf  map[string][]string
	domain      map[string]string
	rangeOf     map[string]string
	subProp     map[string][]string
	inverse     map[string][]string
	symmetric   map[string]bool
	transitive  map[string]bool
	hasValueSub map[string][]hasValueFact
	hasValueSup map[hasValueFact][]string
	existLeft   map[string][]existRule
	univRight   map[string][]univRule
	conjunction map[string][]conjRule
}

func newRuleSet() *RuleSet {
	return &RuleSet{
		subClassOf:  make(map[string][]string),
		domain:      make(map[string]string),
		rangeOf:     make(map[string]string),
		subProp:     make(map[string][]string),
		inverse:     make(map[string][]string),
		symmetric:   make(map[string]bool),
		transitive:  make(map[string]bool),
		hasValueSub: make(map[string][]hasValueFact),
		hasValueSup: make(map[hasValueFact][]string),
		existLeft:   make(map[string][]existRule),
		univRight:   make(map[string][]univRule),
		conjunction: make(map[string][]conjRule),
	}
}

type roleEdge struct{ Role, Other string }

// Facts is the mutable ABox fact base: named-individual class membership
// and role-assertion edges, indexed both forward and backward.
type Facts struct {
	classOf map[string]map[string]bool
	roleOf  map[string][]roleEdge
	roleIn  map[string][]roleEdge
}

func newFacts() *Facts {
	return &Facts{
		classOf: make(map[string]map[string]bool),
		roleOf:  make(map[string][]roleEdge),
		roleIn:  make(map[string][]roleEdge),
	}
}

// HasType reports whether ind is known to be a member of class.
func (f *Facts) HasType(ind, class string) bool { return f.classOf[ind][class] }

// TypesOf returns every class key ind is known to be a member of.
func (f *Facts) TypesOf(ind string) []string {
	out := make([]string, 0, len(f.classOf[ind]))
	for c := range f.classOf[ind] {
		out = append(out, c)
	}
	return out
}

// InstancesOf returns every individual known to be a member of class.
func (f *Facts) InstancesOf(class string) []string {
	var out []string
	for ind, classes := range f.classOf {
		if classes[class] {
			out = append(out, ind)
		}
	}
	return out
}

func atomicKey(e classexpr.Expr) (string, bool) {
	a, ok := e.(classexpr.Atomic)
	if !ok {
		return "", false
	}
	return a.Class.Key(), true
}

// Compile reads an ontology already confirmed RL-valid (see
// internal/profile/validate) into a RuleSet plus the seed Facts drawn
// from its ABox assertions.
func Compile(onto *ontology.Ontology) (*RuleSet, *Facts) {
	rules := newRuleSet()
	facts := newFacts()

	for _, ax := range onto.Axioms.ByKind(axiom.KindSubClassOf) {
		a := ax.(axiom.SubClassOf)
		compileSubClassOf(rules, a.Sub, a.Sup)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentClasses) {
		a := ax.(axiom.EquivalentClasses)
		for i := range a.Members {
			for j := range a.Members {
				if i != j {
					compileSubClassOf(rules, a.Members[i], a.Members[j])
				}
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyDomain) {
		a := ax.(axiom.ObjectPropertyDomain)
		if !a.Property.Inverse {
			if c, ok := atomicKey(a.Domain); ok {
				rules.domain[a.Property.Key()] = c
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyRange) {
		a := ax.(axiom.ObjectPropertyRange)
		if !a.Property.Inverse {
			if c, ok := atomicKey(a.Range); ok {
				rules.rangeOf[a.Property.Key()] = c
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindSubObjectPropertyOf) {
		a := ax.(axiom.SubObjectPropertyOf)
		if !a.Sub.Inverse && !a.Sup.Inverse {
			rules.subProp[a.Sub.Key()] = append(rules.subProp[a.Sub.Key()], a.Sup.Key())
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentObjectProperties) {
		a := ax.(axiom.EquivalentObjectProperties)
		for i := range a.Members {
			for j := range a.Members {
				if i != j && !a.Members[i].Inverse && !a.Members[j].Inverse {
					rules.subProp[a.Members[i].Key()] = append(rules.subProp[a.Members[i].Key()], a.Members[j].Key())
				}
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindInverseObjectProperties) {
		a := ax.(axiom.InverseObjectProperties)
		rules.inverse[a.P.Key()] = append(rules.inverse[a.P.Key()], a.Q.Key())
		rules.inverse[a.Q.Key()] = append(rules.inverse[a.Q.Key()], a.P.Key())
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindSymmetricObjectProperty) {
		a := ax.(axiom.ObjectPropertyCharacteristic)
		rules.symmetric[a.Property.Key()] = true
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindTransitiveObjectProperty) {
		a := ax.(axiom.ObjectPropertyCharacteristic)
		rules.transitive[a.Property.Key()] = true
	}

	for _, ax := range onto.Axioms.ByKind(axiom.KindClassAssertion) {
		a := ax.(axiom.ClassAssertion)
		if c, ok := atomicKey(a.Class); ok {
			addClassFact(facts, a.Individual.Key(), c)
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyAssertion) {
		a := ax.(axiom.ObjectPropertyAssertion)
		if a.Property.Inverse {
			addRoleFact(facts, a.Target.Key(), a.Property.Atomic.Key(), a.Source.Key())
		} else {
			addRoleFact(facts, a.Source.Key(), a.Property.Key(), a.Target.Key())
		}
	}

	return rules, facts
}

// compileSubClassOf registers the rule(s) that sub ⊑ sup contributes,
// decomposing unions and intersections the way normalizeGCI does for EL
// (internal/profile/el/normalize.go), adapted to the RL left/right
// grammar instead of EL's.
func compileSubClassOf(rules *RuleSet, sub, sup classexpr.Expr) {
	if inter, ok := sup.(classexpr.Intersection); ok {
		for _, operand := range inter.Operands {
			compileSubClassOf(rules, sub, operand)
		}
		return
	}

	switch s := sub.(type) {
	case classexpr.Union:
		for _, operand := range s.Operands {
			compileSubClassOf(rules, operand, sup)
		}
		return
	case classexpr.Intersection:
		keys := make([]string, 0, len(s.Operands))
		for _, operand := range s.Operands {
			if k, ok := atomicKey(operand); ok {
				keys = append(keys, k)
			}
		}
		if len(keys) != len(s.Operands) {
			return // a non-atomic conjunct: outside this fast path's rule shapes
		}
		supKey, ok := atomicOrSkip(sup)
		if !ok {
			return
		}
		for i, k := range keys {
			others := make([]string, 0, len(keys)-1)
			others = append(others, keys[:i]...)
			others = append(others, keys[i+1:]...)
			rules.conjunction[k] = append(rules.conjunction[k], conjRule{Others: others, Result: supKey})
		}
		return
	case classexpr.ObjectSomeValuesFrom:
		fillerKey, ok := atomicKey(s.Filler)
		if !ok || s.Property.Inverse {
			return
		}
		supKey, ok := atomicOrSkip(sup)
		if !ok {
			return
		}
		rules.existLeft[s.Property.Key()] = append(rules.existLeft[s.Property.Key()], existRule{Filler: fillerKey, Result: supKey})
		return
	case classexpr.ObjectHasValue:
		if s.Property.Inverse {
			return
		}
		supKey, ok := atomicOrSkip(sup)
		if !ok {
			return
		}
		fact := hasValueFact{Role: s.Property.Key(), Ind: s.Individual.Key()}
		rules.hasValueSup[fact] = append(rules.hasValueSup[fact], supKey)
		return
	}

	switch s := sup.(type) {
	case classexpr.ObjectAllValuesFrom:
		resultKey, ok := atomicKey(s.Filler)
		if !ok || s.Property.Inverse {
			return
		}
		subKey, ok := atomicKey(sub)
		if !ok {
			return
		}
		rules.univRight[subKey] = append(rules.univRight[subKey], univRule{Role: s.Property.Key(), Result: resultKey})
		return
	case classexpr.ObjectHasValue:
		if s.Property.Inverse {
			return
		}
		subKey, ok := atomicKey(sub)
		if !ok {
			return
		}
		rules.hasValueSub[subKey] = append(rules.hasValueSub[subKey], hasValueFact{Role: s.Property.Key(), Ind: s.Individual.Key()})
		return
	}

	subKey, subOK := atomicKey(sub)
	supKey, supOK := atomicOrSkip(sup)
	if subOK && supOK {
		rules.subClassOf[subKey] = append(rules.subClassOf[subKey], supKey)
	}
}

// atomicOrSkip resolves sup to a class key for rule shapes whose RHS must
// be a plain named class (owl:Thing has no useful key here and is
// dropped, since every individual is trivially its member).
func atomicOrSkip(e classexpr.Expr) (string, bool) {
	if _, isTop := e.(classexpr.Top); isTop {
		return "", false
	}
	return atomicKey(e)
}

func addClassFact(f *Facts, ind, class string) bool {
	if f.classOf[ind] == nil {
		f.classOf[ind] = make(map[string]bool)
	}
	if f.classOf[ind][class] {
		return false
	}
	f.classOf[ind][class] = true
	return true
}

func addRoleFact(f *Facts, src, role, tgt string) bool {
	for _, e := range f.roleOf[src] {
		if e.Role == role && e.Other == tgt {
			return false
		}
	}
	f.roleOf[src] = append(f.roleOf[src], roleEdge{role, tgt})
	f.roleIn[tgt] = append(f.roleIn[tgt], roleEdge{role, src})
	return true
}

type classWork struct{ Ind, Class string }
type roleWork struct{ Src, Role, Tgt string }

// Materialize closes facts under rules by naive forward chaining until no
// rule produces a new fact (spec.md §4.7's "forward-chained Datalog-style
// rule application").
func Materialize(rules *RuleSet, facts *Facts) {
	var classQueue []classWork
	var roleQueue []roleWork

	addClass := func(ind, class string) {
		if addClassFact(facts, ind, class) {
			classQueue = append(classQueue, classWork{ind, class})
		}
	}
	addRole := func(src, role, tgt string) {
		if addRoleFact(facts, src, role, tgt) {
			roleQueue = append(roleQueue, roleWork{src, role, tgt})
		}
	}

	for ind, classes := range facts.classOf {
		for c := range classes {
			classQueue = append(classQueue, classWork{ind, c})
		}
	}
	for src, edges := range facts.roleOf {
		for _, e := range edges {
			roleQueue = append(roleQueue, roleWork{src, e.Role, e.Other})
		}
	}

	for len(classQueue) > 0 || len(roleQueue) > 0 {
		for len(classQueue) > 0 {
			w := classQueue[0]
			classQueue = classQueue[1:]

			for _, sup := range rules.subClassOf[w.Class] {
				addClass(w.Ind, sup)
			}
			for _, hv := range rules.hasValueSub[w.Class] {
				addRole(w.Ind, hv.Role, hv.Ind)
			}
			for _, cr := range rules.conjunction[w.Class] {
				all := true
				for _, other := range cr.Others {
					if !facts.classOf[w.Ind][other] {
						all = false
						break
					}
				}
				if all {
					addClass(w.Ind, cr.Result)
				}
			}
			for _, e := range facts.roleIn[w.Ind] {
				for _, er := range rules.existLeft[e.Role] {
					if er.Filler == w.Class {
						addClass(e.Other, er.Result)
					}
				}
			}
			for _, e := range facts.roleOf[w.Ind] {
				for _, ur := range rules.univRight[w.Class] {
					if ur.Role == e.Role {
						addClass(e.Other, ur.Result)
					}
				}
			}
		}

		for len(roleQueue) > 0 {
			w := roleQueue[0]
			roleQueue = roleQueue[1:]

			if c, ok := rules.domain[w.Role]; ok {
				addClass(w.Src, c)
			}
			if c, ok := rules.rangeOf[w.Role]; ok {
				addClass(w.Tgt, c)
			}
			for _, sup := range rules.subProp[w.Role] {
				addRole(w.Src, sup, w.Tgt)
			}
			if rules.symmetric[w.Role] {
				addRole(w.Tgt, w.Role, w.Src)
			}
			for _, inv := range rules.inverse[w.Role] {
				addRole(w.Tgt, inv, w.Src)
			}
			if rules.transitive[w.Role] {
				for _, e := range facts.roleOf[w.Tgt] {
					if e.Role == w.Role {
						addRole(w.Src, w.Role, e.Other)
					}
				}
				for _, e := range facts.roleIn[w.Src] {
					if e.Role == w.Role {
						addRole(e.Other, w.Role, w.Tgt)
					}
				}
			}
			for _, c := range rules.hasValueSup[hasValueFact{Role: w.Role, Ind: w.Tgt}] {
				addClass(w.Src, c)
			}
			for _, er := range rules.existLeft[w.Role] {
				if facts.classOf[w.Tgt][er.Filler] {
					addClass(w.Src, er.Result)
				}
			}
			for c := range facts.classOf[w.Src] {
				for _, ur := range rules.univRight[c] {
					if ur.Role == w.Role {
						addClass(w.Tgt, ur.Result)
					}
				}
			}
		}
	}
}
