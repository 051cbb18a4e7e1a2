package datatype

import (
	"math/big"
	"strconv"
)

// satisfiableNumeric checks a conjunction of interval facets over xsd:integer
// or xsd:decimal using exact rational arithmetic (math/big.Rat); no
// arbitrary-precision interval library appears anywhere in the retrieved
// corpus, so big.Rat is the justified standard-library choice (DESIGN.md).
func satisfiableNumeric(r Restriction) (bool, Completeness) {
	var lo, hi *big.Rat
	loInclusive, hiInclusive := true, true
	var totalDigits, fractionDigits *int

	for _, f := range r.Facets {
		switch f.Kind {
		case MinInclusive:
			v, ok := parseRat(f.Value)
			if !ok {
				return true, approximate("unparsable minInclusive bound")
			}
			if lo == nil || v.Cmp(lo) > 0 || (v.Cmp(lo) == 0 && !loInclusive) {
				lo, loInclusive = v, true
			}
		case MinExclusive:
			v, ok := parseRat(f.Value)
			if !ok {
				return true, approximate("unparsable minExclusive bound")
			}
			if lo == nil || v.Cmp(lo) >= 0 {
				lo, loInclusive = v, false
			}
		case MaxInclusive:
			v, ok := parseRat(f.Value)
			if !ok {
				return true, approximate("unparsable maxInclusive bound")
			}
			if hi == nil || v.Cmp(hi) < 0 || (v.Cmp(hi) == 0 && !hiInclusive) {
				hi, hiInclusive = v, true
			}
		case MaxExclusive:
			v, ok := parseRat(f.Value)
			if !ok {
				return true, approximate("unparsable maxExclusive bound")
			}
			if hi == nil || v.Cmp(hi) <= 0 {
				hi, hiInclusive = v, false
			}
		case TotalDigits:
			n, err := strconv.Atoi(f.Value)
			if err == nil {
				totalDigits = &n
			}
		case FractionDigits:
			n, err := strconv.Atoi(f.Value)
			if err == nil {
				fractionDigits = &n
			}
		}
	}

	if lo != nil && hi != nil {
		cmp := lo.Cmp(hi)
		if cmp > 0 {
			return false, exact()
		}
		if cmp == 0 && !(loInclusive && hiInclusive) {
			return false, exact()
		}
	}

	// totalDigits/fractionDigits narrow the representable grid rather than
	// the interval; a full decimal-grid intersection against an open
	// interval is not attempted here.
	if totalDigits != nil || fractionDigits != nil {
		return true, approximate("totalDigits/fractionDigits interaction with interval bounds is over-approximated")
	}

	return true, exact()
}

func parseRat(s string) (*big.Rat, bool) {
	r := new(big.Rat)
	_, ok := r.SetString(s)
	return r, ok
}
