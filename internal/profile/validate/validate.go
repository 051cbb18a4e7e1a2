// Package validate implements the EL/QL/RL profile validators (spec.md
// §4.7): pure functions of the axiom set that check the syntactic
// constraints from the OWL 2 Profiles specification and report either
// Valid or a list of violations.
package validate

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
)

// Violation names the axiom and the clause of the profile grammar it
// breaches.
type Violation struct {
	AxiomKey string
	Clause   string
}

// Report is the outcome of one profile validator run.
type Report struct {
	Valid      bool
	Violations []Violation
}

func report(violations []Violation) Report {
	return Report{Valid: len(violations) == 0, Violations: violations}
}
