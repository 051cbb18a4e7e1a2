// Package owlxml adapts OWL/RDF-XML documents (ChEBI's OWL release, and OWL
// 2 ontologies generally) into the SROIQ(D) Ontology aggregate. It keeps the
// teacher's streaming encoding/xml decode structure but, instead of
// populating a flat Term/Relationship struct, emits real classes, object
// properties, and axioms via an ontology.Builder, and records every
// recognized RDF/XML triple as a gonum rdf.Statement for provenance.
package owlxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/graph/formats/rdf"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/property"
)

const (
	nsOWL  = "http://www.w3.org/2002/07/owl#"
	nsRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	nsRDFS = "http://www.w3.org/2000/01/rdf-schema#"
)

// Result carries the Ontology side effects of Parse plus the raw RDF
// triples recognized along the way, kept for provenance and debugging —
// the Builder calls never read these back, they are derived independently
// from the same XML attributes.
type Result struct {
	Statements []rdf.Statement
}

// restriction holds an in-progress owl:Restriction (onProperty/someValuesFrom)
// nested inside an rdfs:subClassOf or owl:intersectionOf member.
type restriction struct {
	onProperty     string
	someValuesFrom string
}

func (r restriction) complete() bool { return r.onProperty != "" && r.someValuesFrom != "" }

// Parse reads an OWL/RDF-XML ontology from r and populates b with its
// classes, object properties, and axioms.
func Parse(r io.Reader, b *ontology.Builder) (*Result, error) {
	decoder := xml.NewDecoder(r)
	res := &Result{}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("owlxml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case matchElement(se, nsOWL, "Class"):
			if err := parseClass(decoder, se, b, res); err != nil {
				return res, err
			}
		case matchElement(se, nsOWL, "Ontology"):
			if err := parseOntologyHeader(decoder, se, b); err != nil {
				return res, err
			}
		case matchElement(se, nsOWL, "ObjectProperty"):
			if err := parseObjectProperty(decoder, se, b, res); err != nil {
				return res, err
			}
		case matchElement(se, nsRDF, "RDF"):
			// container element, descend
		default:
			decoder.Skip()
		}
	}

	return res, nil
}

func matchElement(se xml.StartElement, ns, local string) bool {
	return se.Name.Space == ns && se.Name.Local == local
}

func getAttr(se xml.StartElement, ns, local string) string {
	for _, a := range se.Attr {
		if a.Name.Space == ns && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// record adds a provenance triple to res, validating each term as a real
// IRI via gonum's rdf package. Malformed IRIs abort the whole parse — an
// RDF/XML document whose terms don't round-trip as IRIs is malformed.
func record(res *Result, subject, predicate, object string) error {
	s, err := rdf.NewIRITerm(subject)
	if err != nil {
		return fmt.Errorf("owlxml: subject %q: %w", subject, err)
	}
	p, err := rdf.NewIRITerm(predicate)
	if err != nil {
		return fmt.Errorf("owlxml: predicate %q: %w", predicate, err)
	}
	o, err := rdf.NewIRITerm(object)
	if err != nil {
		return fmt.Errorf("owlxml: object %q: %w", object, err)
	}
	res.Statements = append(res.Statements, rdf.Statement{Subject: s, Predicate: p, Object: o})
	return nil
}

func parseOntologyHeader(decoder *xml.Decoder, se xml.StartElement, b *ontology.Builder) error {
	about := getAttr(se, nsRDF, "about")
	if about != "" {
		if err := b.SetID(about); err != nil {
			return fmt.Errorf("owlxml: ontology id %s: %w", about, err)
		}
	}
	depth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			return nil
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
			decoder.Skip()
			depth--
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

func parseClass(decoder *xml.Decoder, se xml.StartElement, b *ontology.Builder, res *Result) error {
	about := getAttr(se, nsRDF, "about")
	if about == "" {
		decoder.Skip()
		return nil
	}
	cls, err := b.Class(about)
	if err != nil {
		return fmt.Errorf("owlxml: class %s: %w", about, err)
	}

	var intersectionMembers []string
	var equivalentClassRes string

	for {
		tok, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("owlxml: class %s: %w", about, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDFS, "subClassOf"):
				target := getAttr(el, nsRDF, "resource")
				if target != "" {
					decoder.Skip()
					if err := record(res, about, nsRDFS+"subClassOf", target); err != nil {
						return err
					}
					sup, err := b.Class(target)
					if err != nil {
						return fmt.Errorf("owlxml: class %s subClassOf %s: %w", about, target, err)
					}
					if _, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(cls), Sup: ontology.Atomic(sup)}); err != nil {
						return fmt.Errorf("owlxml: class %s subClassOf %s: %w", about, target, err)
					}
					continue
				}
				rel, err := parseRestriction(decoder)
				if err != nil {
					return err
				}
				if !rel.complete() {
					continue
				}
				expr, err := restrictionExpr(b, rel)
				if err != nil {
					return fmt.Errorf("owlxml: class %s subClassOf restriction: %w", about, err)
				}
				if _, err := b.AddAxiom(axiom.SubClassOf{Sub: ontology.Atomic(cls), Sup: expr}); err != nil {
					return fmt.Errorf("owlxml: class %s subClassOf restriction: %w", about, err)
				}
			case matchElement(el, nsOWL, "equivalentClass"):
				target := getAttr(el, nsRDF, "resource")
				if target != "" {
					equivalentClassRes = target
					decoder.Skip()
					continue
				}
				members, err := parseIntersectionOf(decoder)
				if err != nil {
					return err
				}
				intersectionMembers = members
			case matchElement(el, nsOWL, "disjointWith"):
				target := getAttr(el, nsRDF, "resource")
				decoder.Skip()
				if target == "" {
					continue
				}
				other, err := b.Class(target)
				if err != nil {
					return fmt.Errorf("owlxml: class %s disjointWith %s: %w", about, target, err)
				}
				dis := axiom.DisjointClasses{Members: []classexpr.Expr{ontology.Atomic(cls), ontology.Atomic(other)}}
				if _, err := b.AddAxiom(dis); err != nil {
					return fmt.Errorf("owlxml: class %s disjointWith %s: %w", about, target, err)
				}
			case el.Name.Local == "deprecated":
				val := readCharData(decoder)
				if val == "true" {
					// Deprecated classes still get an entity (references may
					// point at it) but no further axioms are worth trusting.
					return nil
				}
			default:
				decoder.Skip()
			}
		case xml.EndElement:
			if equivalentClassRes != "" {
				other, err := b.Class(equivalentClassRes)
				if err != nil {
					return fmt.Errorf("owlxml: class %s equivalentClass %s: %w", about, equivalentClassRes, err)
				}
				eq := axiom.EquivalentClasses{Members: []classexpr.Expr{ontology.Atomic(cls), ontology.Atomic(other)}}
				if _, err := b.AddAxiom(eq); err != nil {
					return fmt.Errorf("owlxml: class %s equivalentClass: %w", about, err)
				}
			}
			if len(intersectionMembers) > 0 {
				operands := make([]classexpr.Expr, 0, len(intersectionMembers))
				for _, m := range intersectionMembers {
					mc, err := b.Class(m)
					if err != nil {
						return fmt.Errorf("owlxml: class %s intersectionOf %s: %w", about, m, err)
					}
					operands = append(operands, ontology.Atomic(mc))
				}
				eq := axiom.EquivalentClasses{Members: []classexpr.Expr{ontology.Atomic(cls), classexpr.Intersection{Operands: operands}}}
				if _, err := b.AddAxiom(eq); err != nil {
					return fmt.Errorf("owlxml: class %s intersectionOf: %w", about, err)
				}
			}
			return nil
		}
	}
}

// parseRestriction parses the owl:Restriction nested inside an
// rdfs:subClassOf that carries no direct rdf:resource.
func parseRestriction(decoder *xml.Decoder) (restriction, error) {
	var rel restriction
	depth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			return rel, fmt.Errorf("owlxml: restriction: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case matchElement(el, nsOWL, "Restriction"):
				// The wrapper itself: descend into its children rather than
				// skipping its subtree.
			case matchElement(el, nsOWL, "onProperty"):
				rel.onProperty = getAttr(el, nsRDF, "resource")
				decoder.Skip()
				depth--
			case matchElement(el, nsOWL, "someValuesFrom"):
				rel.someValuesFrom = getAttr(el, nsRDF, "resource")
				decoder.Skip()
				depth--
			default:
				decoder.Skip()
				depth--
			}
		case xml.EndElement:
			depth--
			if depth < 0 {
				return rel, nil
			}
		}
	}
}

// parseIntersectionOf walks an owl:intersectionOf list and returns the
// member class IRIs in list order. It accepts the rdf:parseType="Collection"
// abbreviated form (owl:Class elements nested directly) most tooling emits,
// and the fully expanded rdf:first/rdf:rest blank-node chain.
func parseIntersectionOf(decoder *xml.Decoder) ([]string, error) {
	var members []string
	depth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			return members, fmt.Errorf("owlxml: intersectionOf: %w", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case matchElement(el, nsOWL, "Class"):
				if res := getAttr(el, nsRDF, "about"); res != "" {
					members = append(members, res)
				}
				decoder.Skip()
				depth--
			case matchElement(el, nsRDF, "Description"), el.Name.Local == "Description":
				// full-form list cell, descend into rdf:first/rdf:rest
			case matchElement(el, nsRDF, "first"):
				if res := getAttr(el, nsRDF, "resource"); res != "" {
					members = append(members, res)
				}
				decoder.Skip()
				depth--
			case matchElement(el, nsRDF, "rest"):
				if getAttr(el, nsRDF, "resource") == nsRDF+"nil" {
					decoder.Skip()
					depth--
				}
				// otherwise descend into the next list cell
			default:
				decoder.Skip()
				depth--
			}
		case xml.EndElement:
			depth--
			if depth < 0 {
				return members, nil
			}
		}
	}
}

func restrictionExpr(b *ontology.Builder, rel restriction) (classexpr.Expr, error) {
	p, err := b.ObjectProperty(rel.onProperty)
	if err != nil {
		return nil, err
	}
	filler, err := b.Class(rel.someValuesFrom)
	if err != nil {
		return nil, err
	}
	return classexpr.ObjectSomeValuesFrom{Property: property.Atom(p), Filler: ontology.Atomic(filler)}, nil
}

func parseObjectProperty(decoder *xml.Decoder, se xml.StartElement, b *ontology.Builder, res *Result) error {
	about := getAttr(se, nsRDF, "about")
	if about == "" {
		decoder.Skip()
		return nil
	}
	p, err := b.ObjectProperty(about)
	if err != nil {
		return fmt.Errorf("owlxml: object property %s: %w", about, err)
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("owlxml: object property %s: %w", about, err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch {
			case matchElement(el, nsRDF, "type"):
				target := getAttr(el, nsRDF, "resource")
				decoder.Skip()
				if target == "" {
					continue
				}
				if err := record(res, about, nsRDF+"type", target); err != nil {
					return err
				}
				switch target {
				case nsOWL + "TransitiveProperty":
					if _, err := b.AddAxiom(axiom.NewTransitiveObjectProperty(property.Atom(p))); err != nil {
						return fmt.Errorf("owlxml: object property %s transitive: %w", about, err)
					}
				case nsOWL + "ReflexiveProperty":
					if _, err := b.AddAxiom(axiom.NewReflexiveObjectProperty(property.Atom(p))); err != nil {
						return fmt.Errorf("owlxml: object property %s reflexive: %w", about, err)
					}
				case nsOWL + "FunctionalProperty":
					if _, err := b.AddAxiom(axiom.NewFunctionalObjectProperty(property.Atom(p))); err != nil {
						return fmt.Errorf("owlxml: object property %s functional: %w", about, err)
					}
				}
			case matchElement(el, nsRDFS, "subPropertyOf"):
				target := getAttr(el, nsRDF, "resource")
				decoder.Skip()
				if target == "" {
					continue
				}
				sup, err := b.ObjectProperty(target)
				if err != nil {
					return fmt.Errorf("owlxml: object property %s subPropertyOf %s: %w", about, target, err)
				}
				if _, err := b.AddAxiom(axiom.SubObjectPropertyOf{Sub: property.Atom(p), Sup: property.Atom(sup)}); err != nil {
					return fmt.Errorf("owlxml: object property %s subPropertyOf %s: %w", about, target, err)
				}
			default:
				decoder.Skip()
			}
		case xml.EndElement:
			return nil
		}
	}
}

func readCharData(decoder *xml.Decoder) string {
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return sb.String()
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			inner := readCharData(decoder)
			if inner != "" {
				sb.WriteString(inner)
			}
		case xml.EndElement:
			return sb.String()
		}
	}
}
