package reasoner

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/classify"
	"github.com/anusornc/owl2-reasoner-sub000/internal/profile/validate"
)

// Hierarchy is the named-class taxonomy returned by Classify.
type Hierarchy = classify.Hierarchy

// ProfileReport is the outcome of ValidateProfile: which OWL 2 profile was
// checked, whether the ontology conforms, and the violations found.
type ProfileReport struct {
	Profile    string
	Valid      bool
	Violations []validate.Violation
}
