// Package cache implements the three-tier reasoning-result cache from
// spec.md §4.7: a primary TTL'd LRU, a singleflight-guarded hot path that
// collapses concurrent identical queries into one computation, and a cold
// tier that keeps compressed high-value results evicted from the primary
// tier instead of discarding them outright.
package cache

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/anusornc/owl2-reasoner-sub000/internal/classify"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/profile/validate"
)

const (
	defaultSize     = 4096
	defaultTTL      = 10 * time.Minute
	coldOverflow    = 256
	reportKeepShare = 4 // a Report below this many violations is cheap to recompute
)

// Key identifies one cached reasoning result: the operation name, a
// structural argument key, and the ontology's invalidation stamp, so a
// mutation to the ontology never serves a stale answer.
type Key struct {
	Op      string
	Arg     string
	Version uint64
}

func SubsumptionKey(onto *ontology.Ontology, sub, sup string) Key {
	return Key{Op: "IsSubClassOf", Arg: sub + "⊑" + sup, Version: onto.Version()}
}

func SatisfiabilityKey(onto *ontology.Ontology, class string) Key {
	return Key{Op: "IsSatisfiable", Arg: class, Version: onto.Version()}
}

func ConsistencyKey(onto *ontology.Ontology) Key {
	return Key{Op: "IsConsistent", Version: onto.Version()}
}

func ClassifyKey(onto *ontology.Ontology) Key {
	return Key{Op: "Classify", Version: onto.Version()}
}

func InstancesKey(onto *ontology.Ontology, class string) Key {
	return Key{Op: "InstancesOf", Arg: class, Version: onto.Version()}
}

func TypesKey(onto *ontology.Ontology, ind string) Key {
	return Key{Op: "TypesOf", Arg: ind, Version: onto.Version()}
}

func ProfileKey(onto *ontology.Ontology, profile string) Key {
	return Key{Op: "ValidateProfile", Arg: profile, Version: onto.Version()}
}

func (k Key) string() string {
	return k.Op + "|" + k.Arg + "|" + strconv.FormatUint(k.Version, 10)
}

// Cache is the three-tier result cache. The zero value is not usable; build
// one with New.
type Cache struct {
	primary *expirable.LRU[Key, any]
	group   singleflight.Group

	mu            sync.Mutex
	coldHierarchy map[Key][]byte
	coldReport    map[Key][]byte
}

// New builds a Cache with the given primary-tier size and TTL. Pass 0 for
// size or ttl to use the package defaults.
func New(size int, ttl time.Duration) *Cache {
	if size == 0 {
		size = defaultSize
	}
	if ttl == 0 {
		ttl = defaultTTL
	}
	c := &Cache{
		coldHierarchy: make(map[Key][]byte),
		coldReport:    make(map[Key][]byte),
	}
	c.primary = expirable.NewLRU[Key, any](size, c.demote, ttl)
	return c
}

// NewDefault builds a Cache with the package's default size and TTL.
func NewDefault() *Cache { return New(defaultSize, defaultTTL) }

// demote runs synchronously on primary-tier eviction (by size or TTL). A
// Hierarchy is always worth keeping compressed; a Report is kept only if
// it is Valid or violation-heavy enough that recomputing it isn't cheap.
func (c *Cache) demote(key Key, value any) {
	switch v := value.(type) {
	case *classify.Hierarchy:
		data, err := encodeHierarchy(v)
		if err != nil {
			return
		}
		c.mu.Lock()
		evictOneIfFull(c.coldHierarchy)
		c.coldHierarchy[key] = data
		c.mu.Unlock()
	case validate.Report:
		if !v.Valid && len(v.Violations) < reportKeepShare {
			return
		}
		data, err := encodeReport(v)
		if err != nil {
			return
		}
		c.mu.Lock()
		evictOneIfFull(c.coldReport)
		c.coldReport[key] = data
		c.mu.Unlock()
	}
}

func evictOneIfFull(tier map[Key][]byte) {
	if len(tier) < coldOverflow {
		return
	}
	for k := range tier {
		delete(tier, k)
		break
	}
}

func (c *Cache) thaw(key Key) (any, bool) {
	c.mu.Lock()
	hData, hOK := c.coldHierarchy[key]
	rData, rOK := c.coldReport[key]
	c.mu.Unlock()

	if hOK {
		if h, err := decodeHierarchy(hData); err == nil {
			return h, true
		}
	}
	if rOK {
		if r, err := decodeReport(rData); err == nil {
			return r, true
		}
	}
	return nil, false
}

// Resolve returns the cached value for key, computing it with compute if
// absent from both tiers. Concurrent identical computations are collapsed
// into one call via singleflight so a burst of repeated queries against
// the same ontology version shares one tableau run.
func (c *Cache) Resolve(key Key, compute func() (any, error)) (any, error) {
	if v, ok := c.primary.Get(key); ok {
		return v, nil
	}
	if v, ok := c.thaw(key); ok {
		c.primary.Add(key, v)
		return v, nil
	}

	v, err, _ := c.group.Do(key.string(), func() (any, error) {
		if v, ok := c.primary.Get(key); ok {
			return v, nil
		}
		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.primary.Add(key, result)
		return result, nil
	})
	return v, err
}

// Bool resolves a boolean-valued operation (is_consistent, is_satisfiable,
// is_subclass_of). Booleans are cheap enough to recompute that they never
// get a cold tier.
func (c *Cache) Bool(key Key, compute func() (bool, error)) (bool, error) {
	v, err := c.Resolve(key, func() (any, error) { return compute() })
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (c *Cache) Hierarchy(key Key, compute func() (*classify.Hierarchy, error)) (*classify.Hierarchy, error) {
	v, err := c.Resolve(key, func() (any, error) {
		h, err := compute()
		if err != nil {
			return nil, err
		}
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*classify.Hierarchy), nil
}

func (c *Cache) ProfileReport(key Key, compute func() (validate.Report, error)) (validate.Report, error) {
	v, err := c.Resolve(key, func() (any, error) { return compute() })
	if err != nil {
		return validate.Report{}, err
	}
	return v.(validate.Report), nil
}

// StringSlice resolves an operation returning a sorted key list
// (instances_of, types_of).
func (c *Cache) StringSlice(key Key, compute func() ([]string, error)) ([]string, error) {
	v, err := c.Resolve(key, func() (any, error) { return compute() })
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func encodeHierarchy(h *classify.Hierarchy) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(h); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeHierarchy(data []byte) (*classify.Hierarchy, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	var h classify.Hierarchy
	if err := gob.NewDecoder(gz).Decode(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

func encodeReport(r validate.Report) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(r); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeReport(data []byte) (validate.Report, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return validate.Report{}, err
	}
	defer gz.Close()
	var r validate.Report
	if err := gob.NewDecoder(gz).Decode(&r); err != nil {
		return validate.Report{}, err
	}
	return r, nil
}
