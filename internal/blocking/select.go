package blocking

// Expressivity summarizes the ontology features that decide which
// blocking strategy stays sound (spec.md §4.6). The tableau engine
// computes this once per run, from the axiom set, before expansion
// starts.
type Expressivity struct {
	HasInverseRoles       bool
	HasNominals           bool
	HasQualifiedCardinality bool
}

// Select picks the weakest sound strategy for expr, preferring cheap
// subset blocking and only escalating when a feature requires it:
// inverse roles force equality or pairwise blocking, nominals force
// nominal-aware wrapping, and qualified cardinality restrictions force
// dynamic re-evaluation (spec.md §4.6).
func Select(expr Expressivity) Strategy {
	var base Strategy = Subset{}
	switch {
	case expr.HasInverseRoles && expr.HasQualifiedCardinality:
		base = Pairwise{}
	case expr.HasInverseRoles:
		base = Equality{}
	}

	if expr.HasQualifiedCardinality {
		base = Dynamic{Inner: base}
	}
	if expr.HasNominals {
		base = NominalAware{Inner: base}
	}
	return base
}
