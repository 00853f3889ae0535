package rules

import "migralint/internal/symbols"

// Classification is the outcome of the scope check for one candidate class.
type Classification uint8

const (
	// OutOfScope means the class does not implement the migratable
	// capability; no diagnostic is due and evaluation stops silently.
	OutOfScope Classification = iota
	// MissingAnnotation means the class is in scope but carries no
	// serialized-id annotation.
	MissingAnnotation
	// HasAnnotation means the class is in scope and the first matching
	// annotation was found.
	HasAnnotation
)

func (c Classification) String() string {
	switch c {
	case OutOfScope:
		return "out-of-scope"
	case MissingAnnotation:
		return "missing-annotation"
	case HasAnnotation:
		return "has-annotation"
	}
	return "unknown"
}

// ClassifyResult bundles the classification with the annotation it found.
// Annotation is meaningful only when Kind == HasAnnotation.
type ClassifyResult struct {
	Kind       Classification
	Annotation symbols.Annotation
}

// Classify decides whether class is subject to validation. Pure function of
// its input: capability membership is an exact, case-sensitive match, and
// when several annotations of the configured type are attached only the
// first one in declaration order is consulted.
func Classify(class symbols.Class, cfg Config) ClassifyResult {
	if !class.Implements(cfg.capability()) {
		return ClassifyResult{Kind: OutOfScope}
	}
	ann, ok := class.FindAnnotation(cfg.annotation())
	if !ok {
		return ClassifyResult{Kind: MissingAnnotation}
	}
	return ClassifyResult{Kind: HasAnnotation, Annotation: ann}
}
