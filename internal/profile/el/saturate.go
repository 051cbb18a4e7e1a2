package el

// Context holds the saturation state for a single concept.
type Context struct {
	id ConceptID

	// superSet is S(C): the set of all derived superclasses.
	superSet map[ConceptID]struct{}

	// linkMap[r] lists D such that (C, D) ∈ R(r) (forward links).
	linkMap [][]ConceptID
	// predMap[r] lists E such that (E, C) ∈ R(r) (reverse links).
	predMap [][]ConceptID
}

// Has reports whether id ∈ S(C), i.e. whether Saturate derived id as a
// superclass of this context's concept.
func (c Context) Has(id ConceptID) bool {
	_, ok := c.superSet[id]
	return ok
}

type workItem struct {
	concept ConceptID
	added   ConceptID
}

type linkItem struct {
	source ConceptID
	role   RoleID
	target ConceptID
}

// Saturate runs the single-threaded EL completion algorithm (spec.md
// §4.7): applies CR1-CR5, CR10, CR11 to a worklist fixpoint. No choice
// points are ever created, which is what makes this fast path polynomial
// instead of running the general tableau.
func Saturate(st *SymbolTable, store *AxiomStore) []Context {
	n := st.ConceptCount()
	nr := st.RoleCount()

	contexts := make([]Context, n)
	for c := ConceptID(0); c < ConceptID(n); c++ {
		contexts[c].id = c
		contexts[c].superSet = make(map[ConceptID]struct{}, 8)
		contexts[c].linkMap = make([][]ConceptID, nr)
		contexts[c].predMap = make([][]ConceptID, nr)
	}

	worklist := make([]workItem, 0, n*2)
	linkWorklist := make([]linkItem, 0, n)

	for c := ConceptID(0); c < ConceptID(n); c++ {
		contexts[c].superSet[c] = struct{}{}
		contexts[c].superSet[Top] = struct{}{}
		worklist = append(worklist, workItem{c, c})
		worklist = append(worklist, workItem{c, Top})
	}

	for len(worklist) > 0 || len(linkWorklist) > 0 {
		for len(worklist) > 0 {
			item := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]

			c := item.concept
			d := item.added

			// CR1: D ∈ S(C), D ⊑ E in store ⇒ E ∈ S(C).
			if int(d) < len(store.subToSups) {
				for _, e := range store.subToSups[d] {
					if _, exists := contexts[c].superSet[e]; !exists {
						contexts[c].superSet[e] = struct{}{}
						worklist = append(worklist, workItem{c, e})
					}
				}
			}

			// CR2: D, D' ∈ S(C) and D ⊓ D' ⊑ E ⇒ E ∈ S(C).
			if int(d) < len(store.conjIndex) && store.conjIndex[d] != nil {
				for d2, results := range store.conjIndex[d] {
					if _, exists := contexts[c].superSet[d2]; exists {
						for _, e := range results {
							if _, exists2 := contexts[c].superSet[e]; !exists2 {
								contexts[c].superSet[e] = struct{}{}
								worklist = append(worklist, workItem{c, e})
							}
						}
					}
				}
			}

			// CR3: D ⊑ ∃R.B ⇒ link (C, B) via R.
			if int(d) < len(store.existRight) {
				for _, rf := range store.existRight[d] {
					if addLink(&contexts[c], &contexts[rf.Fill], rf.Role) {
						linkWorklist = append(linkWorklist, linkItem{c, rf.Role, rf.Fill})
					}
				}
			}

			// CR4 backward: D just added to S(C); for predecessor E with
			// (E,C) via R, check ∃R.D ⊑ F.
			for r := RoleID(0); r < RoleID(nr); r++ {
				for _, pred := range contexts[c].predMap[r] {
					if int(r) < len(store.existLeft) && store.existLeft[r] != nil {
						if sups, ok := store.existLeft[r][d]; ok {
							for _, f := range sups {
								if _, exists := contexts[pred].superSet[f]; !exists {
									contexts[pred].superSet[f] = struct{}{}
									worklist = append(worklist, workItem{pred, f})
								}
							}
						}
					}
				}
			}
		}

		for len(linkWorklist) > 0 {
			li := linkWorklist[len(linkWorklist)-1]
			linkWorklist = linkWorklist[:len(linkWorklist)-1]

			c := li.source
			r := li.role
			d := li.target

			// CR4 forward: (C,D) ∈ R, E ∈ S(D), ∃R.E ⊑ F.
			if int(r) < len(store.existLeft) && store.existLeft[r] != nil {
				for e := range contexts[d].superSet {
					if sups, ok := store.existLeft[r][e]; ok {
						for _, f := range sups {
							if _, exists := contexts[c].superSet[f]; !exists {
								contexts[c].superSet[f] = struct{}{}
								worklist = append(worklist, workItem{c, f})
							}
						}
					}
				}
			}

			// CR5: ⊥ ∈ S(D) ⇒ ⊥ ∈ S(C).
			if _, hasBottom := contexts[d].superSet[Bottom]; hasBottom {
				if _, exists := contexts[c].superSet[Bottom]; !exists {
					contexts[c].superSet[Bottom] = struct{}{}
					worklist = append(worklist, workItem{c, Bottom})
				}
			}

			// CR10: R ⊑ S ⇒ link (C,D) via S.
			if int(r) < len(store.roleSubs) {
				for _, s := range store.roleSubs[r] {
					if addLink(&contexts[c], &contexts[d], s) {
						linkWorklist = append(linkWorklist, linkItem{c, s, d})
					}
				}
			}

			// CR11 (predecessor side): (E,C) via R1, R1∘R ⊑ S ⇒ link (E,D) via S.
			for r1 := RoleID(0); r1 < RoleID(nr); r1++ {
				if int(r1) < len(store.roleChains) && store.roleChains[r1] != nil {
					if chains, ok := store.roleChains[r1][r]; ok {
						for _, pred := range contexts[c].predMap[r1] {
							for _, s := range chains {
								if addLink(&contexts[pred], &contexts[d], s) {
									linkWorklist = append(linkWorklist, linkItem{pred, s, d})
								}
							}
						}
					}
				}
			}

			// CR11 (successor side): (C,D) via R, (D,E) via R2, R∘R2 ⊑ S.
			if int(r) < len(store.roleChains) && store.roleChains[r] != nil {
				for r2, chains := range store.roleChains[r] {
					for _, e := range contexts[d].linkMap[r2] {
						for _, s := range chains {
							if addLink(&contexts[c], &contexts[e], s) {
								linkWorklist = append(linkWorklist, linkItem{c, s, e})
							}
						}
					}
				}
			}
		}
	}

	return contexts
}

// addLink records (source,target) in R(role) both ways, reporting whether
// it was new.
func addLink(source, target *Context, role RoleID) bool {
	for _, existing := range source.linkMap[role] {
		if existing == target.id {
			return false
		}
	}
	source.linkMap[role] = append(source.linkMap[role], target.id)
	target.predMap[role] = append(target.predMap[role], source.id)
	return true
}
