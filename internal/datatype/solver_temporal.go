package datatype

import "time"

const rfc3339NanoLayout = time.RFC3339Nano

// satisfiableTemporal checks interval facets over xsd:dateTime using
// time.Time arithmetic (stdlib; no temporal-interval library appears in the
// retrieved corpus, DESIGN.md).
func satisfiableTemporal(r Restriction) (bool, Completeness) {
	var lo, hi *time.Time
	loInclusive, hiInclusive := true, true

	parse := func(s string) (time.Time, bool) {
		t, err := time.Parse(rfc3339NanoLayout, s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}

	for _, f := range r.Facets {
		switch f.Kind {
		case MinInclusive:
			if t, ok := parse(f.Value); ok {
				lo, loInclusive = &t, true
			} else {
				return true, approximate("unparsable minInclusive dateTime")
			}
		case MinExclusive:
			if t, ok := parse(f.Value); ok {
				lo, loInclusive = &t, false
			} else {
				return true, approximate("unparsable minExclusive dateTime")
			}
		case MaxInclusive:
			if t, ok := parse(f.Value); ok {
				hi, hiInclusive = &t, true
			} else {
				return true, approximate("unparsable maxInclusive dateTime")
			}
		case MaxExclusive:
			if t, ok := parse(f.Value); ok {
				hi, hiInclusive = &t, false
			} else {
				return true, approximate("unparsable maxExclusive dateTime")
			}
		}
	}

	if lo != nil && hi != nil {
		if lo.After(*hi) {
			return false, exact()
		}
		if lo.Equal(*hi) && !(loInclusive && hiInclusive) {
			return false, exact()
		}
	}
	return true, exact()
}
