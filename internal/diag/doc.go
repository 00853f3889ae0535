// Package diag defines the diagnostic model shared by the snapshot loader and
// the rule engine.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the loader and the migratable-class rules.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt, whereas orchestration
// lives in internal/driver and the CLI layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Class – name of the candidate class the finding is about.
//   - Field – annotation parameter name, when the finding concerns one.
//   - Origin – host-supplied declaration location, carried through verbatim.
//   - Notes – optional secondary origins/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "first
// registered by ...") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Producers should use a diag.Reporter to decouple emission from storage.
// BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication, merging, and bounded collection.
//
// Keep the data model deterministic: any new fields should avoid side effects,
// so the CLI and future tooling can safely serialise diagnostics for caching
// and testing.
package diag
