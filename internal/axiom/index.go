package axiom

import "sync"

// Index is the content-addressed, entity-indexed axiom store (spec C2).
// Structural hashing on Axiom.Key() guarantees dedup on insert (I3); a
// secondary index per entity signature key lists every axiom mentioning
// that entity so "all axioms mentioning C" is O(k) in the result size.
type Index struct {
	mu sync.RWMutex

	byKey    map[string]Axiom
	byEntity map[string][]string // entity key -> axiom keys mentioning it
	byKind   map[Kind][]string   // axiom kind -> axiom keys
	order    []string            // insertion order, for deterministic iteration
}

// NewIndex allocates an empty axiom index.
func NewIndex() *Index {
	return &Index{
		byKey:    make(map[string]Axiom, 1024),
		byEntity: make(map[string][]string, 1024),
		byKind:   make(map[Kind][]string, 32),
	}
}

// Add inserts ax, returning false if an axiom with the same structural key
// is already present (no-op per spec.md §4.2).
func (idx *Index) Add(ax Axiom) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	key := ax.Key()
	if _, exists := idx.byKey[key]; exists {
		return false
	}
	idx.byKey[key] = ax
	idx.order = append(idx.order, key)
	idx.byKind[ax.Kind()] = append(idx.byKind[ax.Kind()], key)
	for _, e := range ax.Signature() {
		idx.byEntity[e] = append(idx.byEntity[e], key)
	}
	return true
}

// Remove deletes the axiom with the given structural key, if present.
// Callers are responsible for invalidating dependent caches afterward
// (spec.md §4.2, §7).
func (idx *Index) Remove(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	ax, ok := idx.byKey[key]
	if !ok {
		return false
	}
	delete(idx.byKey, key)
	idx.order = removeString(idx.order, key)
	idx.byKind[ax.Kind()] = removeString(idx.byKind[ax.Kind()], key)
	for _, e := range ax.Signature() {
		idx.byEntity[e] = removeString(idx.byEntity[e], key)
	}
	return true
}

func removeString(ss []string, target string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of distinct axioms stored.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.byKey)
}

// All returns every axiom in insertion order.
func (idx *Index) All() []Axiom {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	out := make([]Axiom, 0, len(idx.order))
	for _, k := range idx.order {
		out = append(out, idx.byKey[k])
	}
	return out
}

// ByKind returns every axiom of the given kind, in insertion order.
func (idx *Index) ByKind(k Kind) []Axiom {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	keys := idx.byKind[k]
	out := make([]Axiom, 0, len(keys))
	for _, key := range keys {
		out = append(out, idx.byKey[key])
	}
	return out
}

// ByEntity returns every axiom whose signature mentions the given entity
// key, in insertion order.
func (idx *Index) ByEntity(entityKey string) []Axiom {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	keys := idx.byEntity[entityKey]
	out := make([]Axiom, 0, len(keys))
	for _, key := range keys {
		out = append(out, idx.byKey[key])
	}
	return out
}

// Contains reports whether an axiom with this structural key is present.
func (idx *Index) Contains(key string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.byKey[key]
	return ok
}
