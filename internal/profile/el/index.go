// Package el implements the OWL 2 EL profile fast path (spec.md §4.7):
// completion-based saturation over six normal forms, no choice points,
// polynomial in ontology size.
package el

// ConceptID is an integer identifier for a named concept.
type ConceptID uint32

// RoleID is an integer identifier for an object property (role).
type RoleID uint32

const (
	Top    ConceptID = 0 // owl:Thing
	Bottom ConceptID = 1 // owl:Nothing
)

// SymbolTable maps entity keys (IRIs) to dense integer IDs for the
// saturator's inner loop.
type SymbolTable struct {
	conceptToID map[string]ConceptID
	idToConcept []string
	roleToID    map[string]RoleID
	idToRole    []string
}

func NewSymbolTable() *SymbolTable {
	concepts := make([]string, 2, 256)
	concepts[Top] = "owl:Thing"
	concepts[Bottom] = "owl:Nothing"

	st := &SymbolTable{
		conceptToID: make(map[string]ConceptID, 256),
		idToConcept: concepts,
		roleToID:    make(map[string]RoleID, 16),
		idToRole:    make([]string, 0, 16),
	}
	st.conceptToID["owl:Thing"] = Top
	st.conceptToID["owl:Nothing"] = Bottom
	return st
}

// InternConcept returns the ConceptID for key, creating one if needed.
func (st *SymbolTable) InternConcept(key string) ConceptID {
	if id, ok := st.conceptToID[key]; ok {
		return id
	}
	id := ConceptID(len(st.idToConcept))
	st.conceptToID[key] = id
	st.idToConcept = append(st.idToConcept, key)
	return id
}

// InternRole returns the RoleID for key, creating one if needed.
func (st *SymbolTable) InternRole(key string) RoleID {
	if id, ok := st.roleToID[key]; ok {
		return id
	}
	id := RoleID(len(st.idToRole))
	st.roleToID[key] = id
	st.idToRole = append(st.idToRole, key)
	return id
}

func (st *SymbolTable) ConceptCount() int { return len(st.idToConcept) }
func (st *SymbolTable) RoleCount() int    { return len(st.idToRole) }

// ConceptKey returns the entity key that id was interned from ("owl:Thing"
// and "owl:Nothing" for Top/Bottom), or "" for fresh concepts.
func (st *SymbolTable) ConceptKey(id ConceptID) string {
	if int(id) < len(st.idToConcept) {
		return st.idToConcept[id]
	}
	return ""
}

// RoleKey returns the entity key that id was interned from.
func (st *SymbolTable) RoleKey(id RoleID) string {
	if int(id) < len(st.idToRole) {
		return st.idToRole[id]
	}
	return ""
}

// FreshConcept creates an anonymous concept (used for intersection/
// existential-left normalization), with no entity key.
func (st *SymbolTable) FreshConcept() ConceptID {
	id := ConceptID(len(st.idToConcept))
	st.idToConcept = append(st.idToConcept, "")
	return id
}
