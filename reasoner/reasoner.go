package reasoner

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anusornc/owl2-reasoner-sub000/internal/cache"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/classify"
	"github.com/anusornc/owl2-reasoner-sub000/internal/config"
	"github.com/anusornc/owl2-reasoner-sub000/internal/entity"
	"github.com/anusornc/owl2-reasoner-sub000/internal/ontology"
	"github.com/anusornc/owl2-reasoner-sub000/internal/profile/el"
	"github.com/anusornc/owl2-reasoner-sub000/internal/profile/ql"
	"github.com/anusornc/owl2-reasoner-sub000/internal/profile/rl"
	"github.com/anusornc/owl2-reasoner-sub000/internal/profile/validate"
	"github.com/anusornc/owl2-reasoner-sub000/internal/tableau"
)

// Reasoner is the public facade over one ontology snapshot (spec.md §6).
// When the ontology validates against EL, QL, or RL and cfg.ProfileFastPath
// is set, Classify/IsSubClassOf/IsSatisfiable/hasType dispatch into
// internal/profile/{el,ql,rl} instead of the general tableau; every other
// path builds a fresh tableau.Engine per check. Results are memoized
// through a three-tier result cache keyed by the ontology's invalidation
// stamp.
type Reasoner struct {
	onto  *ontology.Ontology
	cfg   config.ReasoningConfig
	cache *cache.Cache
	log   *zap.Logger

	rlMu    sync.Mutex
	rlVer   uint64
	rlFacts *rl.Facts
}

// Option configures a Reasoner at construction time.
type Option func(*Reasoner)

// WithConfig overrides the default tuning knobs (tableau node budget,
// per-operation timeout, cache size/TTL).
func WithConfig(cfg config.ReasoningConfig) Option {
	return func(r *Reasoner) { r.cfg = cfg }
}

// WithLogger attaches a structured logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reasoner) { r.log = l }
}

// New builds a Reasoner over onto. The ontology is not copied: callers must
// not mutate it concurrently with in-flight reasoning calls.
func New(onto *ontology.Ontology, opts ...Option) *Reasoner {
	r := &Reasoner{onto: onto, cfg: config.Default(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = cache.New(r.cfg.CacheSize, r.cfg.CacheTTL)
	return r
}

func (r *Reasoner) newEngine() *tableau.Engine {
	return tableau.New(r.onto, r.cfg.Tableau())
}

func (r *Reasoner) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.cfg.Timeout)
}

// translateRunErr maps a tableau.Engine.Run error into the reasoner's own
// error taxonomy (spec.md §7).
func translateRunErr(err error) error {
	if err == nil {
		return nil
	}
	var resErr *tableau.ResourceExhaustedError
	if errors.As(err, &resErr) {
		return newError(ResourceExhausted, resErr.Error(), err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newError(Timeout, "operation exceeded configured timeout", err)
	}
	if errors.Is(err, context.Canceled) {
		return newError(Cancelled, "operation cancelled", err)
	}
	return err
}

func (r *Reasoner) classFor(iriStr string) (entity.Class, error) {
	e, ok := r.onto.Entities.Get(iriStr)
	if !ok {
		return entity.Class{}, newError(InvalidIRI, iriStr, errNotFound)
	}
	cls, ok := e.(entity.Class)
	if !ok {
		return entity.Class{}, newError(InvalidIRI, iriStr+" is not a class", errNotFound)
	}
	return cls, nil
}

func (r *Reasoner) individualFor(iriStr string) (entity.Individual, error) {
	e, ok := r.onto.Entities.Get(iriStr)
	if !ok {
		return nil, newError(InvalidIRI, iriStr, errNotFound)
	}
	ind, ok := e.(entity.Individual)
	if !ok {
		return nil, newError(InvalidIRI, iriStr+" is not an individual", errNotFound)
	}
	return ind, nil
}

func namedClasses(onto *ontology.Ontology) []entity.Class {
	var out []entity.Class
	for _, e := range onto.Entities.All() {
		if cls, ok := e.(entity.Class); ok {
			out = append(out, cls)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// fastProfile reports the first of EL, QL that the ontology validates
// against, checked in that order since EL's completion is the cheaper of
// the two. Returns "" if neither fast path applies or the knob is off.
func (r *Reasoner) fastProfile() string {
	if !r.cfg.ProfileFastPath {
		return ""
	}
	if rep, err := r.ValidateProfile("EL"); err == nil && rep.Valid {
		return "EL"
	}
	if rep, err := r.ValidateProfile("QL"); err == nil && rep.Valid {
		return "QL"
	}
	return ""
}

// fastSatisfiable answers IsSatisfiable via the EL or QL fast path. handled
// is false when neither profile applies and the caller must fall back to
// the tableau.
func (r *Reasoner) fastSatisfiable(cls entity.Class) (result, handled bool) {
	switch r.fastProfile() {
	case "EL":
		st, store := el.Normalize(r.onto)
		contexts := el.Saturate(st, store)
		id := st.InternConcept(cls.Key())
		return !contexts[id].Has(el.Bottom), true
	case "QL":
		g := ql.BuildGraph(r.onto)
		return !g.Unsatisfiable(ql.Key(classexpr.Atomic{Class: cls})), true
	default:
		return false, false
	}
}

// fastSubClassOf answers IsSubClassOf via the EL or QL fast path.
func (r *Reasoner) fastSubClassOf(sub, sup entity.Class) (result, handled bool) {
	switch r.fastProfile() {
	case "EL":
		st, store := el.Normalize(r.onto)
		contexts := el.Saturate(st, store)
		subID := st.InternConcept(sub.Key())
		supID := st.InternConcept(sup.Key())
		return contexts[subID].Has(supID), true
	case "QL":
		g := ql.BuildGraph(r.onto)
		return g.Subsumes(ql.Key(classexpr.Atomic{Class: sub}), ql.Key(classexpr.Atomic{Class: sup})), true
	default:
		return false, false
	}
}

// fastClassify answers Classify via the EL or QL fast path, returning nil
// when neither profile applies.
func (r *Reasoner) fastClassify() *classify.Hierarchy {
	switch r.fastProfile() {
	case "EL":
		st, store := el.Normalize(r.onto)
		contexts := el.Saturate(st, store)
		return el.BuildHierarchy(contexts, st)
	case "QL":
		return ql.BuildGraph(r.onto).BuildHierarchy(r.onto)
	default:
		return nil
	}
}

// rlFactsFor returns the RL fast path's materialized ABox closure, rebuilding
// it only when the ontology has changed since the last call. RL's forward
// chaining is sound but, unlike the tableau, never detects ABox
// inconsistency, so it under-approximates hasType on an inconsistent
// ontology rather than entailing everything by ex falso quodlibet; that
// tradeoff is intrinsic to the profile's polytime materialization, not a
// gap in this wiring.
func (r *Reasoner) rlFactsFor() *rl.Facts {
	r.rlMu.Lock()
	defer r.rlMu.Unlock()
	v := r.onto.Version()
	if r.rlFacts != nil && r.rlVer == v {
		return r.rlFacts
	}
	rules, facts := rl.Compile(r.onto)
	rl.Materialize(rules, facts)
	r.rlVer = v
	r.rlFacts = facts
	return facts
}

func namedIndividuals(onto *ontology.Ontology) []entity.Individual {
	var out []entity.Individual
	for _, e := range onto.Entities.All() {
		if ind, ok := e.(entity.Individual); ok {
			out = append(out, ind)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// IsConsistent checks whether the whole ontology (ABox seeded over the
// internalized TBox) admits a model.
func (r *Reasoner) IsConsistent() (result bool, err error) {
	defer recoverInvariant(&err)
	key := cache.ConsistencyKey(r.onto)
	v, err := r.cache.Bool(key, func() (bool, error) {
		ctx, cancel := r.context()
		defer cancel()

		eng := r.newEngine()
		defer eng.Release()
		if _, clash := eng.SeedABox(r.onto); clash != nil {
			return false, nil
		}
		res, err := eng.Run(ctx)
		if err != nil {
			return false, translateRunErr(err)
		}
		return res.Satisfiable, nil
	})
	if err != nil {
		r.log.Error("consistency check failed", zap.Error(err))
		return false, err
	}
	r.log.Debug("consistency check", zap.Bool("consistent", v))
	return v, nil
}

// IsSatisfiable checks whether classIRI can have any instance at all, in
// isolation from the asserted ABox.
func (r *Reasoner) IsSatisfiable(classIRI string) (result bool, err error) {
	defer recoverInvariant(&err)
	cls, err := r.classFor(classIRI)
	if err != nil {
		return false, err
	}
	key := cache.SatisfiabilityKey(r.onto, classIRI)
	return r.cache.Bool(key, func() (bool, error) {
		if ok, handled := r.fastSatisfiable(cls); handled {
			return ok, nil
		}
		ctx, cancel := r.context()
		defer cancel()

		eng := r.newEngine()
		defer eng.Release()
		_, clash := eng.NewRootNode(classexpr.Atomic{Class: cls})
		if clash != nil {
			return false, nil
		}
		res, err := eng.Run(ctx)
		if err != nil {
			return false, translateRunErr(err)
		}
		return res.Satisfiable, nil
	})
}

// IsSubClassOf checks subIRI ⊑ supIRI by testing unsatisfiability of
// sub ⊓ ¬sup over a fresh completion graph.
func (r *Reasoner) IsSubClassOf(subIRI, supIRI string) (result bool, err error) {
	defer recoverInvariant(&err)
	sub, err := r.classFor(subIRI)
	if err != nil {
		return false, err
	}
	sup, err := r.classFor(supIRI)
	if err != nil {
		return false, err
	}
	key := cache.SubsumptionKey(r.onto, subIRI, supIRI)
	return r.cache.Bool(key, func() (bool, error) {
		if ok, handled := r.fastSubClassOf(sub, sup); handled {
			return ok, nil
		}
		ctx, cancel := r.context()
		defer cancel()

		eng := r.newEngine()
		defer eng.Release()
		_, clash := eng.NewRootNode(
			classexpr.Atomic{Class: sub},
			classexpr.Complement{Operand: classexpr.Atomic{Class: sup}},
		)
		if clash != nil {
			return true, nil
		}
		res, err := eng.Run(ctx)
		if err != nil {
			return false, translateRunErr(err)
		}
		return !res.Satisfiable, nil
	})
}

// EquivalentClasses returns every named class equivalent to classIRI
// (including classIRI itself), derived from the cached hierarchy.
func (r *Reasoner) EquivalentClasses(classIRI string) (result []string, err error) {
	defer recoverInvariant(&err)
	if _, err := r.classFor(classIRI); err != nil {
		return nil, err
	}
	h, err := r.Classify()
	if err != nil {
		return nil, err
	}
	for _, members := range h.Equivalences {
		for _, m := range members {
			if m == classIRI {
				out := append([]string(nil), members...)
				sort.Strings(out)
				return out, nil
			}
		}
	}
	return []string{classIRI}, nil
}

// Classify computes the full named-class hierarchy (spec.md §4.7).
func (r *Reasoner) Classify() (hierarchy *Hierarchy, err error) {
	defer recoverInvariant(&err)
	r.log.Info("classifying ontology", zap.Uint64("version", r.onto.Version()))
	key := cache.ClassifyKey(r.onto)
	h, err := r.cache.Hierarchy(key, func() (*classify.Hierarchy, error) {
		if h := r.fastClassify(); h != nil {
			return h, nil
		}
		c := classify.New(r.onto, r.cfg.Tableau())
		h, err := c.Classify()
		if err != nil {
			return nil, translateRunErr(err)
		}
		return h, nil
	})
	if err != nil {
		r.log.Error("classification failed", zap.Error(err))
		return nil, err
	}
	return h, nil
}

// hasType checks whether ind is entailed to be a member of cls by asserting
// ¬cls on ind's node and checking for a clash. An ABox that is already
// inconsistent before the check entails every type, per ex falso quodlibet
// (spec.md §8 "consistency monotonicity"), so a clash from SeedABox itself
// short-circuits to true rather than false or an error.
func (r *Reasoner) hasType(ctx context.Context, ind entity.Individual, cls entity.Class) (bool, error) {
	if r.cfg.ProfileFastPath {
		if rep, err := r.ValidateProfile("RL"); err == nil && rep.Valid {
			return r.rlFactsFor().HasType(ind.Key(), cls.Key()), nil
		}
	}

	eng := r.newEngine()
	defer eng.Release()

	nodes, clash := eng.SeedABox(r.onto)
	if clash != nil {
		return true, nil
	}
	h, ok := nodes[ind.Key()]
	if !ok {
		h, clash = eng.NewRootNode(classexpr.Nominal{Individuals: []entity.Individual{ind}})
		if clash != nil {
			return true, nil
		}
	}
	if _, clash := eng.Graph().AddLabel(h, classexpr.Complement{Operand: classexpr.Atomic{Class: cls}}); clash != nil {
		return true, nil
	}
	res, err := eng.Run(ctx)
	if err != nil {
		return false, translateRunErr(err)
	}
	return !res.Satisfiable, nil
}

// InstancesOf returns every named individual entailed to be a member of
// classIRI, sorted by IRI.
func (r *Reasoner) InstancesOf(classIRI string) (result []string, err error) {
	defer recoverInvariant(&err)
	cls, err := r.classFor(classIRI)
	if err != nil {
		return nil, err
	}
	key := cache.InstancesKey(r.onto, classIRI)
	return r.cache.StringSlice(key, func() ([]string, error) {
		ctx, cancel := r.context()
		defer cancel()

		var out []string
		for _, ind := range namedIndividuals(r.onto) {
			ok, err := r.hasType(ctx, ind, cls)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, ind.Key())
			}
		}
		sort.Strings(out)
		return out, nil
	})
}

// TypesOf returns every named class entailed to contain individualIRI,
// sorted by IRI.
func (r *Reasoner) TypesOf(individualIRI string) (result []string, err error) {
	defer recoverInvariant(&err)
	ind, err := r.individualFor(individualIRI)
	if err != nil {
		return nil, err
	}
	key := cache.TypesKey(r.onto, individualIRI)
	return r.cache.StringSlice(key, func() ([]string, error) {
		ctx, cancel := r.context()
		defer cancel()

		var out []string
		for _, cls := range namedClasses(r.onto) {
			ok, err := r.hasType(ctx, ind, cls)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, cls.Key())
			}
		}
		sort.Strings(out)
		return out, nil
	})
}

// ValidateProfile checks the ontology against one of "EL", "QL", or "RL"
// (spec.md §6). Unknown profile names are an UnsupportedConstruct error.
func (r *Reasoner) ValidateProfile(profile string) (report ProfileReport, err error) {
	defer recoverInvariant(&err)
	var validator func(*ontology.Ontology) validate.Report
	switch profile {
	case "EL":
		validator = validate.EL
	case "QL":
		validator = validate.QL
	case "RL":
		validator = validate.RL
	default:
		return ProfileReport{}, newError(UnsupportedConstruct, "unknown profile "+profile, nil)
	}

	key := cache.ProfileKey(r.onto, profile)
	rep, err := r.cache.ProfileReport(key, func() (validate.Report, error) {
		return validator(r.onto), nil
	})
	if err != nil {
		return ProfileReport{}, err
	}
	return ProfileReport{Profile: profile, Valid: rep.Valid, Violations: rep.Violations}, nil
}

// ValidateAllProfiles checks EL, QL, and RL concurrently, returning one
// report per profile keyed by its name.
func (r *Reasoner) ValidateAllProfiles() (reports map[string]ProfileReport, err error) {
	defer recoverInvariant(&err)
	var (
		mu  sync.Mutex
		g   errgroup.Group
		out = make(map[string]ProfileReport, 3)
	)
	for _, profile := range []string{"EL", "QL", "RL"} {
		profile := profile
		g.Go(func() error {
			rep, err := r.ValidateProfile(profile)
			if err != nil {
				return err
			}
			mu.Lock()
			out[profile] = rep
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
