// Package ontology implements the Ontology aggregate (spec.md §3) and the
// builder external parsers use to populate it (spec C6 "inbound" contract).
package ontology

import (
	"sync"
	"sync/atomic"

	"github.com/anusornc/owl2-reasoner-sub000/internal/axiom"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/iri"
)

// Ontology aggregates an IRI + optional version IRI, imports, entities, and
// axioms, with invariants I1 (every entity in an axiom is registered),
// I2 (each axiom appears exactly once per signature bucket, enforced by
// axiom.Index), and I3 (structural dedup, also enforced by axiom.Index).
type Ontology struct {
	mu sync.RWMutex

	IRI        *iri.IRI
	VersionIRI *iri.IRI
	Imports    map[string]*iri.IRI // keyed by IRI.Full()

	Entities *entity.Store
	Axioms   *axiom.Index

	// version is incremented on every mutation (add/remove axiom or
	// entity), used by the reasoner's cache to invalidate stale entries
	// (spec.md §4.7, §7 "cache coherence").
	version uint64
}

// New constructs an empty ontology identified by id (may be nil for an
// anonymous ontology).
func New(id *iri.IRI) *Ontology {
	return &Ontology{
		IRI:      id,
		Imports:  make(map[string]*iri.IRI),
		Entities: entity.NewStore(),
		Axioms:   axiom.NewIndex(),
	}
}

// Version returns the current invalidation stamp.
func (o *Ontology) Version() uint64 { return atomic.LoadUint64(&o.version) }

func (o *Ontology) bumpVersion() { atomic.AddUint64(&o.version, 1) }

// AddImport registers a directly imported ontology IRI.
func (o *Ontology) AddImport(id *iri.IRI) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Imports[id.Full()] = id
	o.bumpVersion()
}

// RegisterEntity records e as introduced by this ontology (I1's supply
// side); Builder.AddAxiom checks the demand side.
func (o *Ontology) RegisterEntity(e entity.Entity) {
	o.Entities.GetOrAdd(e.Key(), func() entity.Entity { return e })
}

// HasEntity reports whether an entity with this key has been registered.
func (o *Ontology) HasEntity(key string) bool {
	_, ok := o.Entities.Get(key)
	return ok
}

// AddAxiom inserts ax if every entity in its signature is registered (I1)
// and it is not already present (I3, delegated to axiom.Index.Add).
// Returns (added, error): added mirrors axiom.Index.Add's dedup signal.
func (o *Ontology) AddAxiom(ax axiom.Axiom) (bool, error) {
	for _, key := range ax.Signature() {
		if !o.HasEntity(key) {
			return false, &InvariantError{Invariant: "I1", Detail: "axiom mentions unregistered entity " + key}
		}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	added := o.Axioms.Add(ax)
	if added {
		o.bumpVersion()
	}
	return added, nil
}

// RemoveAxiom deletes the axiom with the given structural key and
// invalidates the version stamp so dependent caches are dropped.
func (o *Ontology) RemoveAxiom(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	removed := o.Axioms.Remove(key)
	if removed {
		o.bumpVersion()
	}
	return removed
}

// InvariantError reports a violated builder invariant (I1-I3).
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string { return e.Invariant + ": " + e.Detail }
