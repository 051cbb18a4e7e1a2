package graph

import (
	"sort"

	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
)

// LabelSet is a node's set of class-expression labels, kept as a slice
// sorted by structural key so membership is a binary search and iteration
// is deterministic (needed for reproducible blocking comparisons, spec.md
// §4.6).
type LabelSet struct {
	keys  []string
	exprs []classexpr.Expr
}

// NewLabelSet returns an empty label set.
func NewLabelSet() *LabelSet {
	return &LabelSet{}
}

// Add inserts expr if not already present, keeping keys/exprs sorted in
// lockstep. No-op if expr is already a member.
func (ls *LabelSet) Add(expr classexpr.Expr) bool {
	k := classexpr.Key(expr)
	i := sort.SearchStrings(ls.keys, k)
	if i < len(ls.keys) && ls.keys[i] == k {
		return false
	}
	ls.keys = append(ls.keys, "")
	copy(ls.keys[i+1:], ls.keys[i:])
	ls.keys[i] = k

	ls.exprs = append(ls.exprs, nil)
	copy(ls.exprs[i+1:], ls.exprs[i:])
	ls.exprs[i] = expr
	return true
}

// Contains reports whether expr is a member, by structural key.
func (ls *LabelSet) Contains(expr classexpr.Expr) bool {
	k := classexpr.Key(expr)
	i := sort.SearchStrings(ls.keys, k)
	return i < len(ls.keys) && ls.keys[i] == k
}

// All returns the labels in sorted-key order.
func (ls *LabelSet) All() []classexpr.Expr { return ls.exprs }

// Len reports the number of labels.
func (ls *LabelSet) Len() int { return len(ls.exprs) }

// SubsetOf reports whether every label of ls also appears in other, the
// comparison subset-blocking (spec.md §4.6) performs between a candidate
// blocked node and its potential blocker.
func (ls *LabelSet) SubsetOf(other *LabelSet) bool {
	j := 0
	for _, k := range ls.keys {
		for j < len(other.keys) && other.keys[j] < k {
			j++
		}
		if j >= len(other.keys) || other.keys[j] != k {
			return false
		}
	}
	return true
}

// Equal reports whether ls and other carry exactly the same labels, the
// comparison equality-blocking performs.
func (ls *LabelSet) Equal(other *LabelSet) bool {
	if len(ls.keys) != len(other.keys) {
		return false
	}
	for i, k := range ls.keys {
		if other.keys[i] != k {
			return false
		}
	}
	return true
}
