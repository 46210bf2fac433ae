package store

import (
	"github.com/emberkv/ember/pkg/pattern"
	"github.com/emberkv/ember/pkg/reactive"
)

// patternDep pairs an invalidation handle with its compiled matcher so
// dispatch can test keys without recompiling.
type patternDep struct {
	dep     *reactive.Dep
	matcher *pattern.Matcher
}

// dependKey records a reactive read of a single key. The key's invalidation
// handle is created lazily, and only when a listener is actually tracking.
// Untracked reads never allocate.
func (s *Store) dependKey(key string) {
	if reactive.CurrentListener() == nil {
		return
	}
	dep, ok := s.keyDeps[key]
	if !ok {
		dep = reactive.NewDep()
		s.keyDeps[key] = dep
	}
	dep.Depend()
}

// dependPattern records a reactive read scoped to a pattern. One handle
// exists per distinct pattern string, created lazily under tracking.
func (s *Store) dependPattern(m *pattern.Matcher) {
	if reactive.CurrentListener() == nil {
		return
	}
	pd, ok := s.patternDeps[m.Pattern()]
	if !ok {
		pd = &patternDep{dep: reactive.NewDep(), matcher: m}
		s.patternDeps[m.Pattern()] = pd
	}
	pd.dep.Depend()
}

// invalidateKey invalidates the key's handle. On removal, a handle left with
// no dependents is garbage-collected: the next reactive read recreates it.
func (s *Store) invalidateKey(key string, removed bool) {
	dep, ok := s.keyDeps[key]
	if !ok {
		return
	}
	dep.Changed()
	if removed && !dep.HasDependents() {
		delete(s.keyDeps, key)
	}
}

// invalidatePatterns invalidates every pattern handle whose pattern matches
// the key, garbage-collecting handles left dependent-free. Called for added
// and removed events only: a changed value does not alter membership, so
// pattern-scoped reads are unaffected.
func (s *Store) invalidatePatterns(key string) {
	for pat, pd := range s.patternDeps {
		if !pd.matcher.Match(key) {
			continue
		}
		pd.dep.Changed()
		if !pd.dep.HasDependents() {
			delete(s.patternDeps, pat)
		}
	}
}
