package datatype

import "fmt"

// Completeness reports whether a satisfiability verdict is exact or was
// widened for soundness, per spec.md §9's open question on xsd:float/double.
type Completeness struct {
	Exact  bool
	Reason string // populated iff !Exact
}

func exact() Completeness                { return Completeness{Exact: true} }
func approximate(reason string) Completeness { return Completeness{Exact: false, Reason: reason} }

// Satisfiable decides whether a datatype expression denotes a non-empty
// value set, per spec.md §4.5's datatype constraint solver contract.
func Satisfiable(e Expr) (bool, Completeness) {
	switch v := e.(type) {
	case Atomic:
		return true, exact()
	case Restriction:
		return satisfiableRestriction(v)
	case Complement:
		sat, c := Satisfiable(v.Operand)
		// Complementing a non-trivial restriction can't be decided exactly
		// by the per-facet solvers below without full interval-complement
		// machinery; widen to preserve soundness rather than risk a false
		// "unsatisfiable".
		if _, ok := v.Operand.(Atomic); ok {
			return !sat, c
		}
		return true, approximate("complement of a facet restriction is over-approximated to satisfiable")
	case Union:
		return satisfiableUnion(v)
	case Intersection:
		return satisfiableIntersection(v)
	case OneOf:
		return len(v.Literals) > 0, exact()
	default:
		return false, approximate(fmt.Sprintf("unrecognized datatype expression %T", e))
	}
}

func satisfiableRestriction(r Restriction) (bool, Completeness) {
	switch r.Base {
	case XSDInteger, XSDDecimal:
		return satisfiableNumeric(r)
	case XSDFloat, XSDDouble:
		sat, _ := satisfiableNumeric(Restriction{Base: XSDDecimal, Facets: r.Facets})
		return sat, approximate(fmt.Sprintf("%s facets widened to decimal interval arithmetic", r.Base))
	case XSDString:
		return satisfiableString(r)
	case XSDBoolean:
		return satisfiableBoolean(r)
	case XSDDateTime:
		return satisfiableTemporal(r)
	default:
		return true, approximate(fmt.Sprintf("no dedicated solver for base %s, assuming satisfiable", r.Base))
	}
}

func satisfiableUnion(u Union) (bool, Completeness) {
	allExact := true
	for _, op := range u.Operands {
		sat, c := Satisfiable(op)
		if !c.Exact {
			allExact = false
		}
		if sat {
			if allExact {
				return true, exact()
			}
			return true, approximate("union satisfied by an over-approximated operand")
		}
	}
	if allExact {
		return false, exact()
	}
	return false, approximate("union of unsatisfiable operands, some over-approximated")
}

func satisfiableIntersection(in Intersection) (bool, Completeness) {
	if len(in.Operands) == 0 {
		return true, exact()
	}
	allExact := true
	sameBase, restrictions := true, make([]Restriction, 0, len(in.Operands))
	var base Base
	for i, op := range in.Operands {
		sat, c := Satisfiable(op)
		if !c.Exact {
			allExact = false
		}
		if !sat {
			return false, c
		}
		if r, ok := op.(Restriction); ok {
			if i == 0 {
				base = r.Base
			} else if r.Base != base {
				sameBase = false
			}
			restrictions = append(restrictions, r)
		} else {
			sameBase = false
		}
	}
	if sameBase && len(restrictions) == len(in.Operands) {
		merged := Restriction{Base: base}
		for _, r := range restrictions {
			merged.Facets = append(merged.Facets, r.Facets...)
		}
		return satisfiableRestriction(merged)
	}
	if allExact {
		return true, exact()
	}
	return true, approximate("intersection of mixed-base operands over-approximated to satisfiable")
}
