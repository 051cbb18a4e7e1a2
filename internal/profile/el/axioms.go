package el

// RoleFiller pairs a role with its filler concept.
type RoleFiller struct {
	Role RoleID
	Fill ConceptID
}

// AxiomStore holds normalized axioms indexed for the six EL completion
// rules (spec.md §4.7):
//
//	NF1: A ⊑ B            (atomic subsumption)             -> CR1
//	NF2: A1 ⊓ A2 ⊑ B      (conjunction on the left)        -> CR2
//	NF3: A ⊑ ∃R.B          (existential on the right)       -> CR3
//	NF4: ∃R.A ⊑ B          (existential on the left)        -> CR4
//	NF5: R ⊑ S             (role subsumption)               -> CR10
//	NF6: R1 ∘ R2 ⊑ S      (role composition / chain)       -> CR11
type AxiomStore struct {
	subToSups  [][]ConceptID
	conjIndex  []map[ConceptID][]ConceptID
	existRight [][]RoleFiller
	existLeft  []map[ConceptID][]ConceptID
	roleSubs   [][]RoleID
	roleChains []map[RoleID][]RoleID

	transitive []bool
	reflexive  []bool
}

// NewAxiomStore allocates an AxiomStore sized for st.
func NewAxiomStore(st *SymbolTable) *AxiomStore {
	nc := st.ConceptCount()
	nr := st.RoleCount()
	return &AxiomStore{
		subToSups:  make([][]ConceptID, nc),
		conjIndex:  make([]map[ConceptID][]ConceptID, nc),
		existRight: make([][]RoleFiller, nc),
		existLeft:  make([]map[ConceptID][]ConceptID, nr),
		roleSubs:   make([][]RoleID, nr),
		roleChains: make([]map[RoleID][]RoleID, nr),
		transitive: make([]bool, nr),
		reflexive:  make([]bool, nr),
	}
}

// Grow expands all concept-indexed slices to accommodate nc concepts
// (e.g. fresh concepts introduced during normalization).
func (s *AxiomStore) Grow(nc int) {
	for len(s.subToSups) < nc {
		s.subToSups = append(s.subToSups, nil)
	}
	for len(s.conjIndex) < nc {
		s.conjIndex = append(s.conjIndex, nil)
	}
	for len(s.existRight) < nc {
		s.existRight = append(s.existRight, nil)
	}
}

// GrowRoles expands all role-indexed slices to accommodate nr roles.
func (s *AxiomStore) GrowRoles(nr int) {
	for len(s.existLeft) < nr {
		s.existLeft = append(s.existLeft, nil)
	}
	for len(s.roleSubs) < nr {
		s.roleSubs = append(s.roleSubs, nil)
	}
	for len(s.roleChains) < nr {
		s.roleChains = append(s.roleChains, nil)
	}
	for len(s.transitive) < nr {
		s.transitive = append(s.transitive, false)
	}
	for len(s.reflexive) < nr {
		s.reflexive = append(s.reflexive, false)
	}
}

func (s *AxiomStore) AddSubsumption(sub, sup ConceptID) {
	s.subToSups[sub] = append(s.subToSups[sub], sup)
}

func (s *AxiomStore) AddConjunction(left1, left2, right ConceptID) {
	if s.conjIndex[left1] == nil {
		s.conjIndex[left1] = make(map[ConceptID][]ConceptID, 4)
	}
	s.conjIndex[left1][left2] = append(s.conjIndex[left1][left2], right)

	if left1 != left2 {
		if s.conjIndex[left2] == nil {
			s.conjIndex[left2] = make(map[ConceptID][]ConceptID, 4)
		}
		s.conjIndex[left2][left1] = append(s.conjIndex[left2][left1], right)
	}
}

func (s *AxiomStore) AddExistRight(sub ConceptID, role RoleID, fill ConceptID) {
	s.existRight[sub] = append(s.existRight[sub], RoleFiller{Role: role, Fill: fill})
}

func (s *AxiomStore) AddExistLeft(role RoleID, fill ConceptID, sup ConceptID) {
	if s.existLeft[role] == nil {
		s.existLeft[role] = make(map[ConceptID][]ConceptID, 4)
	}
	s.existLeft[role][fill] = append(s.existLeft[role][fill], sup)
}

func (s *AxiomStore) AddRoleSub(sub, sup RoleID) {
	s.roleSubs[sub] = append(s.roleSubs[sub], sup)
}

func (s *AxiomStore) AddRoleChain(left1, left2, right RoleID) {
	if s.roleChains[left1] == nil {
		s.roleChains[left1] = make(map[RoleID][]RoleID, 4)
	}
	s.roleChains[left1][left2] = append(s.roleChains[left1][left2], right)
}

// SetTransitive marks r transitive, equivalent to the chain r∘r ⊑ r.
func (s *AxiomStore) SetTransitive(r RoleID) {
	s.transitive[r] = true
	s.AddRoleChain(r, r, r)
}

func (s *AxiomStore) SetReflexive(r RoleID) { s.reflexive[r] = true }

func (s *AxiomStore) IsTransitive(r RoleID) bool {
	return int(r) < len(s.transitive) && s.transitive[r]
}
