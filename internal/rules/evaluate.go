package rules

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"migralint/internal/diag"
	"migralint/internal/registry"
	"migralint/internal/symbols"
)

// Evaluate runs the annotation parameter checks and the duplicate-version
// registration for one in-scope class. The chain is fail-fast: the first
// failed check emits its diagnostic and stops, so at most one diagnostic is
// produced per call.
//
// Checks 1–4 are pure; only the final registration mutates shared state, via
// the registry's atomic insert-if-absent. The insert result is the duplicate
// signal — there is no separate read.
func Evaluate(class symbols.Class, ann symbols.Annotation, reg *registry.VersionRegistry, r diag.Reporter, cfg Config) bool {
	// 1. id must be present.
	idValue, ok := ann.Arg(FieldID)
	if !ok {
		report(r, missingField(class, FieldID, cfg))
		return false
	}

	// 2. id must stringify to something non-empty. Coercion is deliberately
	// permissive: any value kind is accepted, only its text form matters.
	id := idValue.Text()
	if id == "" {
		report(r, invalidField(class, FieldID, cfg))
		return false
	}

	// 3. version must be present.
	verValue, ok := ann.Arg(FieldVersion)
	if !ok {
		report(r, missingField(class, FieldVersion, cfg))
		return false
	}

	// 4. version must be a non-negative integer. The snapshot loader rejects
	// non-integer version values at decode time; a non-integer reaching this
	// point is reported rather than ignored.
	version, ok := verValue.AsInt()
	if !ok || version < 0 {
		report(r, invalidField(class, FieldVersion, cfg))
		return false
	}

	// 5. claim (id, version) for this run. Identifiers are NFC-normalized so
	// that host dumps differing only in Unicode normalization still collide.
	owner, inserted := reg.Register(norm.NFC.String(id), version, class.Name)
	if !inserted {
		d := diag.New(cfg.severity(diag.MigDuplicateVersion), diag.MigDuplicateVersion, class.Name,
			fmt.Sprintf("Class '%s' has duplicate version for the serialized-id annotation.", class.Name)).
			WithOrigin(class.Origin)
		if owner != "" && owner != class.Name {
			d = d.WithNote(symbols.Origin{}, fmt.Sprintf("version %d of '%s' first claimed by class '%s'", version, id, owner))
		}
		report(r, d)
		return false
	}
	return true
}

func missingField(class symbols.Class, field string, cfg Config) diag.Diagnostic {
	return diag.New(cfg.severity(diag.MigMissingField), diag.MigMissingField, class.Name,
		fmt.Sprintf("Class '%s' has missing annotation parameter %s.", class.Name, field)).
		WithField(field).
		WithOrigin(class.Origin)
}

func invalidField(class symbols.Class, field string, cfg Config) diag.Diagnostic {
	return diag.New(cfg.severity(diag.MigInvalidField), diag.MigInvalidField, class.Name,
		fmt.Sprintf("Class '%s' has incorrect annotation parameter %s.", class.Name, field)).
		WithField(field).
		WithOrigin(class.Origin)
}

func report(r diag.Reporter, d diag.Diagnostic) {
	if r != nil {
		r.Report(d)
	}
}
