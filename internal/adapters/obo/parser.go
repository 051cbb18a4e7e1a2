// Package obo adapts OBO-format flat-file ontologies (ChEBI's native
// format) into the SROIQ(D) Ontology aggregate, following the OBO Foundry's
// standard OBO-to-OWL mapping: is_a becomes SubClassOf, a relationship line
// becomes an existential restriction, and intersection_of becomes an
// EquivalentClasses definition.
package obo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

const scannerBufferSize = 1 << 20 // 1 MB, OBO comment/def lines can be long

// obofoundryBase is the canonical OBO Foundry PURL prefix; "CHEBI:12345"
// becomes "http://purl.obolibrary.org/obo/CHEBI_12345".
const obofoundryBase = "http://purl.obolibrary.org/obo/"

func toIRI(oboID string) string {
	return obofoundryBase + strings.Replace(oboID, ":", "_", 1)
}

// internPool avoids duplicate string allocations for repeated relationship
// type names and namespaces, mirroring the teacher's OBO scanner.
type internPool struct{ m map[string]string }

func newInternPool() *internPool { return &internPool{m: make(map[string]string, 64)} }

func (p *internPool) get(s string) string {
	if v, ok := p.m[s]; ok {
		return v
	}
	p.m[s] = s
	return s
}

type rawTerm struct {
	id             string
	name, def      string
	comment        string
	isObsolete     bool
	synonyms       []string
	xrefs          []string
	isA            []string // target OBO IDs
	relationships  []rawRelationship
	intersectionOf []rawIntersectionPart
}

type rawRelationship struct {
	relType  string
	targetID string
}

type rawIntersectionPart struct {
	relType  string // empty for a plain genus
	targetID string
}

type rawTypedef struct {
	id                         string
	name                       string
	isTransitive, isReflexive bool
}

// Parse reads an OBO document from r and populates b with the classes,
// object properties, and axioms it describes. Obsolete terms are skipped
// entirely, matching the teacher's ChEBI ingestion behavior.
func Parse(r io.Reader, b *ontology.Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)
	pool := newInternPool()

	var terms []rawTerm
	var typedefs []rawTypedef

	for scanner.Scan() {
		switch line := scanner.Text(); {
		case line == "[Term]":
			terms = append(terms, parseTerm(scanner, pool))
		case line == "[Typedef]":
			typedefs = append(typedefs, parseTypedef(scanner, pool))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("obo: scanning: %w", err)
	}

	properties := make(map[string]entity.ObjectProperty, len(typedefs))
	for _, td := range typedefs {
		p, err := b.ObjectProperty(toIRI(td.id))
		if err != nil {
			return fmt.Errorf("obo: typedef %s: %w", td.id, err)
		}
		properties[td.id] = p
		if td.isTransitive {
			if _, err := b.AddAxiom(axiom.NewTransitiveObjectProperty(property.Atom(p))); err != nil {
				return fmt.Errorf("obo: typedef %s transitive: %w", td.id, err)
			}
		}
		if td.isReflexive {
			if _, err := b.AddAxiom(axiom.NewReflexiveObjectProperty(property.Atom(p))); err != nil {
				return fmt.Errorf("obo: typedef %s reflexive: %w", td.id, err)
			}
		}
	}

	// Register every non-obsolete class before emitting axioms, so a
	// forward reference (is_a to a term not yet seen) still resolves.
	classes := make(map[string]entity.Class, len(terms))
	for _, t := range terms {
		if t.isObsolete {
			continue
		}
		cls, err := b.Class(toIRI(t.id))
		if err != nil {
			return fmt.Errorf("obo: term %s: %w", t.id, err)
		}
		classes[t.id] = cls
	}

	propertyFor := func(relType string) (entity.ObjectProperty, error) {
		if p, ok := properties[relType]; ok {
			return p, nil
		}
		// Typedef-less relationship type (common for is_a's implicit
		// subsumption and for ad hoc relationship names ChEBI never
		// declares a [Typedef] for): intern it as an object property on
		// first use.
		return b.ObjectProperty(toIRI(relType))
	}

	for _, t := range terms {
		if t.isObsolete {
			continue
		}
		cls := classes[t.id]

		for _, targetID := range t.isA {
			target, ok := classes[targetID]
			if !ok {
				continue // target is obsolete or unknown; skip the edge
			}
			if _, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(cls), Sup: ontology.Atomic(target)}); err != nil {
				return fmt.Errorf("obo: term %s is_a %s: %w", t.id, targetID, err)
			}
		}

		for _, rel := range t.relationships {
			target, ok := classes[rel.targetID]
			if !ok {
				continue
			}
			p, err := propertyFor(rel.relType)
			if err != nil {
				return fmt.Errorf("obo: term %s relationship %s: %w", t.id, rel.relType, err)
			}
			restriction := classexpr.ObjectSomeValuesFrom{Property: property.Atom(p), Filler: ontology.Atomic(target)}
			if _, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(cls), Sup: restriction}); err != nil {
				return fmt.Errorf("obo: term %s relationship %s: %w", t.id, rel.relType, err)
			}
		}

		if len(t.intersectionOf) > 0 {
			operands := make([]classexpr.Expr, 0, len(t.intersectionOf))
			ok := true
			for _, part := range t.intersectionOf {
				target, present := classes[part.targetID]
				if !present {
					ok = false
					break
				}
				if part.relType == "" {
					operands = append(operands, ontology.Atomic(target))
					continue
				}
				p, err := propertyFor(part.relType)
				if err != nil {
					return fmt.Errorf("obo: term %s intersection_of %s: %w", t.id, part.relType, err)
				}
				operands = append(operands, classexpr.ObjectSomeValuesFrom{Property: property.Atom(p), Filler: ontology.Atomic(target)})
			}
			if ok && len(operands) > 0 {
				eq := axiom.EquivalentClasses{Members: []classexpr.Expr{ontology.Atomic(cls), classexpr.Intersection{Operands: operands}}}
				if _, err := b.AddAxiom(eq); err != nil {
					return fmt.Errorf("obo: term %s intersection_of: %w", t.id, err)
				}
			}
		}
	}

	return nil
}

func parseTerm(scanner *bufio.Scanner, pool *internPool) rawTerm {
	var t rawTerm
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		switch key {
		case "id":
			t.id = val
		case "name":
			t.name = val
		case "def":
			t.def = parseQuoted(val)
		case "comment":
			t.comment = val
		case "synonym":
			t.synonyms = append(t.synonyms, parseQuoted(val))
		case "xref":
			t.xrefs = append(t.xrefs, val)
		case "is_a":
			id, _, _ := strings.Cut(val, " ! ")
			t.isA = append(t.isA, id)
		case "relationship":
			t.relationships = append(t.relationships, parseRelationship(val, pool))
		case "intersection_of":
			t.intersectionOf = append(t.intersectionOf, parseIntersectionOf(val, pool))
		case "is_obsolete":
			t.isObsolete = val == "true"
		}
	}
	return t
}

func parseTypedef(scanner *bufio.Scanner, pool *internPool) rawTypedef {
	var td rawTypedef
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		switch key {
		case "id":
			td.id = pool.get(val)
		case "name":
			td.name = val
		case "is_transitive":
			td.isTransitive = val == "true"
		case "is_reflexive":
			td.isReflexive = val == "true"
		}
	}
	return td
}

func parseQuoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start < 0 {
		return s
	}
	start++
	end := strings.IndexByte(s[start:], '"')
	if end < 0 {
		return s[start:]
	}
	return s[start : start+end]
}

// parseRelationship parses: "type CHEBI:12345 ! name"
func parseRelationship(val string, pool *internPool) rawRelationship {
	parts := strings.SplitN(val, " ", 3)
	if len(parts) < 2 {
		return rawRelationship{}
	}
	idAndName := parts[1]
	if len(parts) == 3 {
		idAndName = parts[1] + " " + parts[2]
	}
	id, _, _ := strings.Cut(idAndName, " ! ")
	return rawRelationship{relType: pool.get(parts[0]), targetID: id}
}

// parseIntersectionOf parses: "CHEBI:12345" (genus) or
// "relationship CHEBI:12345" (differentia).
func parseIntersectionOf(val string, pool *internPool) rawIntersectionPart {
	v, _, _ := strings.Cut(val, " ! ")
	v = strings.TrimSpace(v)
	parts := strings.SplitN(v, " ", 2)
	if len(parts) == 1 {
		return rawIntersectionPart{targetID: parts[0]}
	}
	return rawIntersectionPart{relType: pool.get(parts[0]), targetID: parts[1]}
}
