package tableau

import (
	"github.com/anusornc/owl2-reasoner-sub000/internal/classexpr"
	"github.com/anusornc/owl2-reasoner-sub000/internal/graph"
)

func supportKeySet(clash *graph.ClashInfo) map[string]bool {
	keys := make(map[string]bool, len(clash.Support))
	for _, se := range clash.Support {
		keys[classexpr.Key(se)] = true
	}
	return keys
}

// backtrack implements dependency-directed backtracking (spec.md §4.6):
// choice points irrelevant to the clash's support are popped without
// retrying (their decisions did not contribute to the contradiction); the
// most recent relevant one has its next alternative tried, after
// restoring the graph to the snapshot taken just before it first fired.
// Returns false once every choice point is exhausted, meaning the branch
// is unsatisfiable.
func (e *Engine) backtrack(clash *graph.ClashInfo) bool {
	for len(e.cps) > 0 {
		cp := e.cps[len(e.cps)-1]
		keys := supportKeySet(clash)
		relevant := len(clash.Support) == 0 ||
			keys[classexpr.Key(cp.Induced)] ||
			e.g.Representative(cp.Node) == e.g.Representative(clash.Node)
		if !relevant {
			e.cps = e.cps[:len(e.cps)-1]
			continue
		}

		e.g.Restore(cp.Snapshot)
		for cp.Tried+1 < cp.numAlternatives() {
			cp.Tried++
			next := e.applyAlternative(cp)
			if next == nil {
				return true
			}
			e.g.Restore(cp.Snapshot)
			clash = next
		}
		e.cps = e.cps[:len(e.cps)-1]
	}
	return false
}
