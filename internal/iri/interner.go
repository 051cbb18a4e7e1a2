package iri

import (
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidIri is wrapped into the core error taxonomy (reasoner.ErrInvalidIri)
// whenever strict-mode validation rejects a textual IRI.
var ErrInvalidIri = errors.New("invalid iri")

const defaultShards = 16

// shardEntry is the authoritative, refcounted record for one interned IRI.
type shardEntry struct {
	iri  *IRI
	refs int32
}

type shard struct {
	mu    sync.Mutex
	items map[string]*shardEntry
	// recency is a bounded LRU used purely to pick eviction candidates;
	// the authoritative liveness data is refs on shardEntry.
	recency *lru.Cache[string, *shardEntry]
}

// Config controls interner behaviour (spec C1).
type Config struct {
	// MaxPerShard bounds the LRU recency tracker per shard. The aggregate
	// default across all shards matches spec.md's "default 10000".
	MaxPerShard int
	// StrictRFC3987 rejects textual IRIs that fail the grammar check.
	StrictRFC3987 bool
}

// DefaultConfig returns spec.md's documented defaults.
func DefaultConfig() Config {
	return Config{MaxPerShard: 10000 / defaultShards, StrictRFC3987: false}
}

// Interner is the sharded, lock-free-at-the-shard-level (per shard: a
// single mutex; across shards: fully independent) process-wide IRI store.
type Interner struct {
	cfg    Config
	shards [defaultShards]*shard
}

// New constructs an Interner. Most callers should use the process-wide
// Default singleton instead; New exists for isolated test fixtures.
func New(cfg Config) *Interner {
	if cfg.MaxPerShard <= 0 {
		cfg.MaxPerShard = 1
	}
	in := &Interner{cfg: cfg}
	for i := range in.shards {
		s := &shard{items: make(map[string]*shardEntry, cfg.MaxPerShard)}
		cache, err := lru.NewWithEvict[string, *shardEntry](cfg.MaxPerShard, s.onEvicted)
		if err != nil {
			// Only returns an error for size <= 0, which New() above prevents.
			panic(fmt.Sprintf("iri: lru.NewWithEvict: %v", err))
		}
		s.recency = cache
		in.shards[i] = s
	}
	return in
}

func (s *shard) onEvicted(key string, e *shardEntry) {
	// The LRU only holds this as a recency hint; an entry with live
	// references stays authoritative in s.items and is simply no longer
	// tracked for eviction until it is re-touched by the next Intern call.
	if atomic.LoadInt32(&e.refs) <= 0 {
		delete(s.items, key)
	}
}

func (in *Interner) shardFor(text string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return in.shards[h.Sum32()%uint32(len(in.shards))]
}

// Intern returns the canonical IRI for text, creating one on first use and
// incrementing its reference count. Intern validates text against the
// RFC 3987 grammar subset in StrictRFC3987 mode.
func (in *Interner) Intern(text string) (*IRI, error) {
	if in.cfg.StrictRFC3987 && !isValidIRIGrammar(text) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIri, text)
	}
	s := in.shardFor(text)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[text]; ok {
		atomic.AddInt32(&e.refs, 1)
		s.recency.Add(text, e)
		return e.iri, nil
	}

	handle := &IRI{full: text, split: splitIRI(text)}
	e := &shardEntry{iri: handle, refs: 1}
	s.items[text] = e
	s.recency.Add(text, e)
	return handle, nil
}

// Release decrements the reference count for an interned IRI. Once the
// count reaches zero the entry becomes eligible for eviction.
func (in *Interner) Release(h *IRI) {
	if h == nil {
		return
	}
	s := in.shardFor(h.full)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.items[h.full]; ok {
		if atomic.AddInt32(&e.refs, -1) <= 0 {
			delete(s.items, h.full)
		}
	}
}

// Len returns the total number of live (refcount > 0) interned IRIs.
func (in *Interner) Len() int {
	total := 0
	for _, s := range in.shards {
		s.mu.Lock()
		total += len(s.items)
		s.mu.Unlock()
	}
	return total
}

var (
	defaultMu   sync.Mutex
	defaultInst = New(DefaultConfig())
)

// Default returns the process-wide interner singleton.
func Default() *Interner {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultInst
}

// Intern interns text against the process-wide singleton.
func Intern(text string) (*IRI, error) { return Default().Intern(text) }

// ResetInterner replaces the process-wide singleton with a fresh, empty one.
// Intended for test isolation only (spec.md §9).
func ResetInterner() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultInst = New(DefaultConfig())
}

// irisPattern approximates the RFC 3987 IRI production closely enough to
// reject the malformed inputs the core's callers are expected to pass:
// a scheme, ":", and a non-empty hierarchical part, with no raw whitespace
// or angle brackets.
var irisPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:[^\s<>"{}|\\^` + "`" + `]+$`)

func isValidIRIGrammar(text string) bool {
	return irisPattern.MatchString(text)
}
