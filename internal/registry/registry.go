// Package registry holds the run-scoped store of claimed (identifier, version)
// pairs used for duplicate detection across all candidate classes of one
// analysis run.
package registry

import (
	"sort"
	"sync"
)

type claim struct {
	owner string
}

// VersionRegistry maps serialization identifiers to the set of versions
// already claimed during the current run, remembering which class claimed
// each pair first. Safe for concurrent use; Register is a single atomic
// insert-if-absent, so callers never need a read-then-write sequence.
//
// A registry must be created fresh per analysis run and discarded afterwards:
// stale entries would produce false duplicate reports across unrelated runs.
type VersionRegistry struct {
	mu       sync.Mutex
	versions map[string]map[int64]claim
}

func New() *VersionRegistry {
	return &VersionRegistry{
		versions: make(map[string]map[int64]claim),
	}
}

// Register claims (id, version) for owner. It reports whether the pair was
// newly inserted; when the pair is already taken, the first claimant's name
// is returned and the registry is left untouched (first writer wins).
func (r *VersionRegistry) Register(id string, version int64, owner string) (prevOwner string, inserted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.versions[id]
	if !ok {
		set = make(map[int64]claim)
		r.versions[id] = set
	}
	if prev, taken := set[version]; taken {
		return prev.owner, false
	}
	set[version] = claim{owner: owner}
	return "", true
}

// Versions returns a sorted snapshot of the versions claimed for id.
func (r *VersionRegistry) Versions(id string) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.versions[id]
	if !ok {
		return nil
	}
	out := make([]int64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the total number of claimed (id, version) pairs.
func (r *VersionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, set := range r.versions {
		total += len(set)
	}
	return total
}
