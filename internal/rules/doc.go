// Package rules implements the migratable-class validation rules.
//
// Validation of a candidate class runs in two stages. Classify decides
// whether the class is in scope at all (implements the migratable
// capability) and locates its serialized-id annotation. Evaluate then runs a
// fail-fast chain over the annotation's parameters and finishes with an
// atomic duplicate-version registration against the run's VersionRegistry.
//
// Classify and the parameter checks are pure; only the final registration
// touches shared state, and it does so through a single insert-if-absent
// operation. Distinct classes can therefore be checked concurrently without
// any additional locking.
//
// At most one diagnostic is emitted per class and run: the chain stops at the
// first failed check.
package rules
