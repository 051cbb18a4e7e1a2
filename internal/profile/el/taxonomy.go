package el

import (
	"sort"

	"github.com/anusornc/owl2-reasoner-sub000/internal/classify"
)

// BuildHierarchy extracts the direct (non-redundant) subsumption hierarchy
// from saturated contexts by transitive reduction, in the same shape
// internal/classify's general tableau path produces, so a caller can use
// either interchangeably once the ontology is confirmed EL-valid (spec.md
// §4.7's "fast path output must coincide with the general result").
func BuildHierarchy(contexts []Context, st *SymbolTable) *classify.Hierarchy {
	n := st.ConceptCount()
	h := &classify.Hierarchy{
		DirectParents:  make(map[string][]string),
		DirectChildren: make(map[string][]string),
		Equivalences:   make(map[string][]string),
		Unsatisfiable:  make(map[string]bool),
	}

	bottomSubsumed := make(map[ConceptID]bool)
	for c := ConceptID(2); c < ConceptID(n); c++ {
		if _, ok := contexts[c].superSet[Bottom]; ok {
			bottomSubsumed[c] = true
		}
	}

	parent := make(map[ConceptID]ConceptID, n)
	var find func(ConceptID) ConceptID
	find = func(c ConceptID) ConceptID {
		if parent[c] != c {
			parent[c] = find(parent[c])
		}
		return parent[c]
	}
	union := func(a, b ConceptID) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}
	for c := ConceptID(2); c < ConceptID(n); c++ {
		if st.ConceptKey(c) == "" {
			continue
		}
		parent[c] = c
	}
	for c := ConceptID(2); c < ConceptID(n); c++ {
		if st.ConceptKey(c) == "" {
			continue
		}
		for s := range contexts[c].superSet {
			if s == c || s == Top || s == Bottom || st.ConceptKey(s) == "" {
				continue
			}
			if _, ok := contexts[s].superSet[c]; ok {
				union(c, s)
			}
		}
	}
	groupMembers := make(map[ConceptID][]ConceptID)
	for c := ConceptID(2); c < ConceptID(n); c++ {
		if st.ConceptKey(c) == "" {
			continue
		}
		rep := find(c)
		groupMembers[rep] = append(groupMembers[rep], c)
	}
	repOf := make(map[ConceptID]ConceptID, n)
	for rep, members := range groupMembers {
		for _, m := range members {
			repOf[m] = rep
		}
		keys := make([]string, len(members))
		for i, m := range members {
			keys[i] = st.ConceptKey(m)
		}
		sort.Strings(keys)
		h.Equivalences[st.ConceptKey(rep)] = keys
	}

	for c := ConceptID(2); c < ConceptID(n); c++ {
		key := st.ConceptKey(c)
		if key == "" {
			continue
		}
		if bottomSubsumed[c] {
			h.Unsatisfiable[key] = true
		}

		supers := contexts[c].superSet
		group := groupMembers[repOf[c]]
		inGroup := make(map[ConceptID]bool, len(group))
		for _, m := range group {
			inGroup[m] = true
		}

		var candidates []ConceptID
		for s := range supers {
			if s == c || s == Top || s == Bottom || inGroup[s] || st.ConceptKey(s) == "" {
				continue
			}
			candidates = append(candidates, s)
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

		var direct []string
		for _, b := range candidates {
			isDirect := true
			for _, s := range candidates {
				if s == b {
					continue
				}
				if _, ok := contexts[s].superSet[b]; ok {
					isDirect = false
					break
				}
			}
			if isDirect {
				direct = append(direct, st.ConceptKey(b))
			}
		}

		h.DirectParents[key] = direct
		for _, p := range direct {
			h.DirectChildren[p] = append(h.DirectChildren[p], key)
		}
	}

	return h
}
