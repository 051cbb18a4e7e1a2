package datatype

import (
	"regexp"
	"strconv"
)

// satisfiableString checks length and pattern facets over xsd:string. No
// string-constraint library appears in the retrieved corpus, so stdlib
// regexp is the justified choice (DESIGN.md).
func satisfiableString(r Restriction) (bool, Completeness) {
	minLen, maxLen := 0, -1
	var patterns []string

	for _, f := range r.Facets {
		switch f.Kind {
		case Length:
			if n, err := strconv.Atoi(f.Value); err == nil {
				minLen, maxLen = n, n
			}
		case MinLength:
			if n, err := strconv.Atoi(f.Value); err == nil && n > minLen {
				minLen = n
			}
		case MaxLength:
			if n, err := strconv.Atoi(f.Value); err == nil && (maxLen < 0 || n < maxLen) {
				maxLen = n
			}
		case Pattern:
			patterns = append(patterns, f.Value)
		}
	}

	if maxLen >= 0 && minLen > maxLen {
		return false, exact()
	}

	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return true, approximate("unparsable pattern facet, assuming satisfiable")
		}
	}
	if len(patterns) > 1 {
		// Intersecting multiple arbitrary regular languages for emptiness is
		// undecidable in general with Go's RE2 engine; widen conservatively.
		return true, approximate("multiple pattern facets conjoined, emptiness over-approximated to satisfiable")
	}

	return true, exact()
}
