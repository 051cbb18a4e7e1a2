package el

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
)

// Normalize converts an ontology already confirmed EL-valid (see
// internal/profile/validate) into a SymbolTable and AxiomStore in the six
// canonical normal forms, adapting the shape of OBO relationship/
// intersection_of extraction to the generic axiom.Axiom/classexpr.Expr
// model: atomic SubClassOf becomes NF1, SubClassOf with an
// ObjectSomeValuesFrom operand becomes NF3/NF4, and intersections on the
// subclass side are decomposed with fresh concepts exactly as the
// teacher's normalizeIntersection does for OBO's intersection_of.
func Normalize(onto *ontology.Ontology) (*SymbolTable, *AxiomStore) {
	st := NewSymbolTable()
	store := NewAxiomStore(st)

	internAll(onto, st)
	store.Grow(st.ConceptCount())
	store.GrowRoles(st.RoleCount())

	for _, ax := range onto.Axioms.ByKind(axiom.KindTransitiveObjectProperty) {
		a := ax.(axiom.ObjectPropertyCharacteristic)
		store.SetTransitive(st.InternRole(a.Property.Key()))
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindReflexiveObjectProperty) {
		a := ax.(axiom.ObjectPropertyCharacteristic)
		store.SetReflexive(st.InternRole(a.Property.Key()))
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindSubObjectPropertyOf) {
		a := ax.(axiom.SubObjectPropertyOf)
		store.AddRoleSub(st.InternRole(a.Sub.Key()), st.InternRole(a.Sup.Key()))
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindSubPropertyChainOf) {
		a := ax.(axiom.SubPropertyChainOf)
		if len(a.Chain) == 2 {
			store.AddRoleChain(st.InternRole(a.Chain[0].Key()), st.InternRole(a.Chain[1].Key()), st.InternRole(a.Sup.Key()))
		}
	}

	for _, ax := range onto.Axioms.ByKind(axiom.KindSubClassOf) {
		a := ax.(axiom.SubClassOf)
		normalizeGCI(st, store, a.Sub, a.Sup)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentClasses) {
		a := ax.(axiom.EquivalentClasses)
		for i := range a.Members {
			for j := range a.Members {
				if i != j {
					normalizeGCI(st, store, a.Members[i], a.Members[j])
				}
			}
		}
	}

	store.Grow(st.ConceptCount())
	store.GrowRoles(st.RoleCount())
	return st, store
}

// internAll pre-registers every class and object property mentioned so
// concept/role IDs are stable before any fresh concept is minted.
func internAll(onto *ontology.Ontology, st *SymbolTable) {
	for _, e := range onto.Entities.All() {
		switch v := e.(type) {
		case entity.Class:
			st.InternConcept(v.Key())
		case entity.ObjectProperty:
			st.InternRole(v.Key())
		}
	}
}

// normalizeGCI adds sub ⊑ sup in normal form, decomposing an Intersection
// on the subclass side and an Intersection on the superclass side (C ⊑
// A⊓B splits into C⊑A, C⊑B), skipping any shape the EL profile does not
// admit (the validator is responsible for rejecting those ontologies
// before Normalize is ever called).
func normalizeGCI(st *SymbolTable, store *AxiomStore, sub, sup classexpr.Expr) {
	if inter, ok := sup.(classexpr.Intersection); ok {
		for _, operand := range inter.Operands {
			normalizeGCI(st, store, sub, operand)
		}
		return
	}

	supID, supOK := elConceptRef(st, sup)
	if !supOK {
		return
	}

	if inter, ok := sub.(classexpr.Intersection); ok {
		conjuncts := make([]ConceptID, 0, len(inter.Operands))
		for _, operand := range inter.Operands {
			conjuncts = append(conjuncts, elLeftConjunct(st, store, operand))
		}
		foldConjunction(st, store, conjuncts, supID)
		return
	}

	if some, ok := sub.(classexpr.ObjectSomeValuesFrom); ok {
		fillerID, ok := elConceptRef(st, some.Filler)
		if !ok {
			return
		}
		store.Grow(st.ConceptCount())
		store.GrowRoles(st.RoleCount())
		store.AddExistLeft(st.InternRole(some.Property.Key()), fillerID, supID)
		return
	}

	subID, ok := elConceptRef(st, sub)
	if !ok {
		return
	}
	if some, ok := sup.(classexpr.ObjectSomeValuesFrom); ok {
		fillerID, ok := elConceptRef(st, some.Filler)
		if !ok {
			return
		}
		store.Grow(st.ConceptCount())
		store.GrowRoles(st.RoleCount())
		store.AddExistRight(subID, st.InternRole(some.Property.Key()), fillerID)
		return
	}
	store.AddSubsumption(subID, supID)
}

// elLeftConjunct resolves one operand of an intersection appearing on a
// GCI's subclass side to a ConceptID, introducing a fresh concept and an
// NF4 entry when the operand is itself an existential (mirrors the
// teacher's differentia handling in normalizeIntersection).
func elLeftConjunct(st *SymbolTable, store *AxiomStore, operand classexpr.Expr) ConceptID {
	if some, ok := operand.(classexpr.ObjectSomeValuesFrom); ok {
		fillerID, ok := elConceptRef(st, some.Filler)
		if !ok {
			fillerID = Top
		}
		fresh := st.FreshConcept()
		store.Grow(st.ConceptCount())
		store.GrowRoles(st.RoleCount())
		store.AddExistLeft(st.InternRole(some.Property.Key()), fillerID, fresh)
		return fresh
	}
	id, ok := elConceptRef(st, operand)
	if !ok {
		return st.FreshConcept()
	}
	return id
}

// foldConjunction builds the binary decomposition ((c0 ⊓ c1) ⊓ c2) ⊓ ...
// ⊑ target, introducing fresh intermediate concepts.
func foldConjunction(st *SymbolTable, store *AxiomStore, conjuncts []ConceptID, target ConceptID) {
	if len(conjuncts) == 0 {
		return
	}
	if len(conjuncts) == 1 {
		store.AddSubsumption(conjuncts[0], target)
		return
	}
	acc := conjuncts[0]
	for i := 1; i < len(conjuncts); i++ {
		result := target
		if i != len(conjuncts)-1 {
			result = st.FreshConcept()
			store.Grow(st.ConceptCount())
		}
		store.AddConjunction(acc, conjuncts[i], result)
		acc = result
	}
}

// elConceptRef resolves an EL-admissible class expression (Atomic, Top,
// Bottom) to a ConceptID; anything else is outside the profile and the
// caller should skip the enclosing axiom.
func elConceptRef(st *SymbolTable, e classexpr.Expr) (ConceptID, bool) {
	switch v := e.(type) {
	case classexpr.Atomic:
		return st.InternConcept(v.Class.Key()), true
	case classexpr.Top:
		return Top, true
	case classexpr.Bottom:
		return Bottom, true
	default:
		return 0, false
	}
}
