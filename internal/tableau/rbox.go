package tableau

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/datatype"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

// roleBox is the compiled RBox: role hierarchy, characteristics, chains,
// and domain/range, precomputed once per run so the expansion rules never
// re-scan the axiom index (spec.md §4.5 rules 4, 6, 8, 9).
type roleBox struct {
	directSub  map[string][]property.ObjectExpr // R -> immediate subs (incl. equivalence siblings)
	transitive map[string]bool

	// The following carry the property.ObjectExpr itself, not just a
	// bool, since rules_deterministic.go needs the value (not only its
	// key) to drive Graph edge operations.
	reflexive     map[string]property.ObjectExpr
	irreflexive   map[string]property.ObjectExpr
	symmetric     map[string]property.ObjectExpr
	asymmetric    map[string]property.ObjectExpr
	functional    map[string]property.ObjectExpr
	invFunctional map[string]property.ObjectExpr

	inverseOf map[string]property.ObjectExpr
	domain    map[string][]classexpr.Expr
	rng       map[string][]classexpr.Expr
	chains    []axiom.SubPropertyChainOf

	dataFunctional map[string]bool
	dataDomain     map[string][]classexpr.Expr
	dataRange      map[string][]datatype.Expr
}

func buildRoleBox(onto *ontology.Ontology) *roleBox {
	rb := &roleBox{
		directSub:      make(map[string][]property.ObjectExpr),
		transitive:     make(map[string]bool),
		reflexive:      make(map[string]property.ObjectExpr),
		irreflexive:    make(map[string]property.ObjectExpr),
		symmetric:      make(map[string]property.ObjectExpr),
		asymmetric:     make(map[string]property.ObjectExpr),
		functional:     make(map[string]property.ObjectExpr),
		invFunctional:  make(map[string]property.ObjectExpr),
		inverseOf:      make(map[string]property.ObjectExpr),
		domain:         make(map[string][]classexpr.Expr),
		rng:            make(map[string][]classexpr.Expr),
		dataFunctional: make(map[string]bool),
		dataDomain:     make(map[string][]classexpr.Expr),
		dataRange:      make(map[string][]datatype.Expr),
	}

	for _, ax := range onto.Axioms.ByKind(axiom.KindSubObjectPropertyOf) {
		a := ax.(axiom.SubObjectPropertyOf)
		rb.directSub[a.Sup.Key()] = append(rb.directSub[a.Sup.Key()], a.Sub)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindEquivalentObjectProperties) {
		a := ax.(axiom.EquivalentObjectProperties)
		for _, p := range a.Members {
			for _, q := range a.Members {
				if p.Key() != q.Key() {
					rb.directSub[p.Key()] = append(rb.directSub[p.Key()], q)
				}
			}
		}
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindInverseObjectProperties) {
		a := ax.(axiom.InverseObjectProperties)
		rb.inverseOf[a.P.Key()] = a.Q
		rb.inverseOf[a.Q.Key()] = a.P
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindTransitiveObjectProperty) {
		rb.transitive[ax.(axiom.ObjectPropertyCharacteristic).Property.Key()] = true
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindReflexiveObjectProperty) {
		p := ax.(axiom.ObjectPropertyCharacteristic).Property
		rb.reflexive[p.Key()] = p
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindIrreflexiveObjectProperty) {
		p := ax.(axiom.ObjectPropertyCharacteristic).Property
		rb.irreflexive[p.Key()] = p
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindSymmetricObjectProperty) {
		p := ax.(axiom.ObjectPropertyCharacteristic).Property
		rb.symmetric[p.Key()] = p
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindAsymmetricObjectProperty) {
		p := ax.(axiom.ObjectPropertyCharacteristic).Property
		rb.asymmetric[p.Key()] = p
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindFunctionalObjectProperty) {
		p := ax.(axiom.ObjectPropertyCharacteristic).Property
		rb.functional[p.Key()] = p
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindInverseFunctionalObjectProperty) {
		p := ax.(axiom.ObjectPropertyCharacteristic).Property
		rb.invFunctional[p.Key()] = p
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyDomain) {
		a := ax.(axiom.ObjectPropertyDomain)
		rb.domain[a.Property.Key()] = append(rb.domain[a.Property.Key()], a.Domain)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindObjectPropertyRange) {
		a := ax.(axiom.ObjectPropertyRange)
		rb.rng[a.Property.Key()] = append(rb.rng[a.Property.Key()], a.Range)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindSubPropertyChainOf) {
		rb.chains = append(rb.chains, ax.(axiom.SubPropertyChainOf))
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindFunctionalDataProperty) {
		rb.dataFunctional[ax.(axiom.FunctionalDataProperty).Property.Key()] = true
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindDataPropertyDomain) {
		a := ax.(axiom.DataPropertyDomain)
		rb.dataDomain[a.Property.Key()] = append(rb.dataDomain[a.Property.Key()], a.Domain)
	}
	for _, ax := range onto.Axioms.ByKind(axiom.KindDataPropertyRange) {
		a := ax.(axiom.DataPropertyRange)
		rb.dataRange[a.Property.Key()] = append(rb.dataRange[a.Property.Key()], a.Range)
	}

	return rb
}

// subRoles returns p and every role q with q ⊑* p (q equal to or
// transitively below p in the role hierarchy), used by the ∀- and
// ∀⁺-rules: an edge labeled R only ever sits at R's own asserted role, so a
// ∀P.C label constrains exactly the neighbours reached via P or any
// sub-role of P, never via P's super-roles.
func (rb *roleBox) subRoles(p property.ObjectExpr) []property.ObjectExpr {
	seen := map[string]bool{p.Key(): true}
	out := []property.ObjectExpr{p}
	queue := []property.ObjectExpr{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sub := range rb.directSub[cur.Key()] {
			if !seen[sub.Key()] {
				seen[sub.Key()] = true
				out = append(out, sub)
				queue = append(queue, sub)
			}
		}
	}
	return out
}

// isTransitive reports whether p itself is declared transitive; roles
// equivalent to p are not consulted.
func (rb *roleBox) isTransitive(p property.ObjectExpr) bool { return rb.transitive[p.Key()] }
