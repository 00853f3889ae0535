// Package testkit provides fixtures and invariant checks shared by tests.
package testkit

import (
	"fmt"

	"migralint/internal/rules"
	"migralint/internal/symbols"
)

// CheckClassInvariants runs a minimal set of structural invariants on a
// decoded candidate class:
// 1) the class has a name
// 2) capability names are non-empty
// 3) every annotation has a type name and well-kinded argument values
func CheckClassInvariants(c symbols.Class) error {
	if c.Name == "" {
		return fmt.Errorf("class without name")
	}
	for i, capName := range c.Capabilities {
		if capName == "" {
			return fmt.Errorf("class %q: empty capability #%d", c.Name, i)
		}
	}
	for _, ann := range c.Annotations {
		if ann.TypeName == "" {
			return fmt.Errorf("class %q: annotation without type name", c.Name)
		}
		for arg, val := range ann.Args {
			switch val.Kind {
			case symbols.ValueMissing, symbols.ValueString, symbols.ValueInt:
				// well-kinded
			default:
				return fmt.Errorf("class %q: argument %q of @%s has unknown kind %d",
					c.Name, arg, ann.TypeName, val.Kind)
			}
		}
	}
	return nil
}

// MigratableClass builds a class implementing the default capability with a
// default serialized-id annotation carrying the given id and version.
func MigratableClass(name, id string, version int64) symbols.Class {
	return symbols.Class{
		Name:         name,
		Capabilities: []string{rules.DefaultCapability},
		Annotations: []symbols.Annotation{{
			TypeName: rules.DefaultAnnotation,
			Args: map[string]symbols.Value{
				rules.FieldID:      symbols.StringValue(id),
				rules.FieldVersion: symbols.IntValue(version),
			},
		}},
	}
}

// AnnotatedClass builds a class with explicit capabilities and annotations.
func AnnotatedClass(name string, caps []string, anns ...symbols.Annotation) symbols.Class {
	return symbols.Class{
		Name:         name,
		Capabilities: caps,
		Annotations:  anns,
	}
}
