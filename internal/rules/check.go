package rules

import (
	"fmt"

	"migralint/internal/diag"
	"migralint/internal/registry"
	"migralint/internal/symbols"
)

// Outcome summarizes how one candidate class fared.
type Outcome uint8

const (
	// OutcomeSkipped means the class was out of scope; nothing was emitted.
	OutcomeSkipped Outcome = iota
	// OutcomeFlagged means exactly one diagnostic was emitted.
	OutcomeFlagged
	// OutcomePassed means the class validated and its (id, version) pair is
	// now claimed in the registry.
	OutcomePassed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFlagged:
		return "flagged"
	case OutcomePassed:
		return "passed"
	}
	return "unknown"
}

// Options configure a validation pass over candidate classes.
type Options struct {
	Reporter diag.Reporter
	Registry *registry.VersionRegistry
	Config   Config
}

// Check validates a single candidate class: classification first, then the
// evaluator chain. Every terminal state is final for the candidate — no
// retries, and no effect on other candidates except through the registry.
func Check(class symbols.Class, opts Options) Outcome {
	res := Classify(class, opts.Config)
	switch res.Kind {
	case OutOfScope:
		return OutcomeSkipped
	case MissingAnnotation:
		d := diag.New(opts.Config.severity(diag.MigMissingAnnotation), diag.MigMissingAnnotation, class.Name,
			fmt.Sprintf("Class '%s' needs to have the serialized-id annotation.", class.Name)).
			WithOrigin(class.Origin)
		report(opts.Reporter, d)
		return OutcomeFlagged
	}

	reg := opts.Registry
	if reg == nil {
		reg = registry.New()
	}
	if Evaluate(class, res.Annotation, reg, opts.Reporter, opts.Config) {
		return OutcomePassed
	}
	return OutcomeFlagged
}

// CheckAll validates classes sequentially against a shared registry.
func CheckAll(classes []symbols.Class, opts Options) (passed, flagged, skipped int) {
	for _, class := range classes {
		switch Check(class, opts) {
		case OutcomePassed:
			passed++
		case OutcomeFlagged:
			flagged++
		default:
			skipped++
		}
	}
	return passed, flagged, skipped
}
