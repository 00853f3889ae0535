package rules

import "migralint/internal/diag"

// Default marker names. Hosts targeting a different serialization framework
// can override both via the project manifest.
const (
	DefaultCapability = "IMigratable"
	DefaultAnnotation = "SerializedIdAttribute"
)

// Annotation parameter names consulted by the evaluator.
const (
	FieldID      = "id"
	FieldVersion = "version"
)

// Config controls which markers the rules look for and how findings are
// ranked.
type Config struct {
	// Capability is the marker interface name; matching is exact and
	// case-sensitive.
	Capability string
	// Annotation is the serialized-id annotation type name.
	Annotation string
	// Severities overrides the default Error severity per rule code.
	Severities map[diag.Code]diag.Severity
}

// DefaultConfig returns the stock marker names with every rule at Error.
func DefaultConfig() Config {
	return Config{
		Capability: DefaultCapability,
		Annotation: DefaultAnnotation,
	}
}

func (c Config) capability() string {
	if c.Capability == "" {
		return DefaultCapability
	}
	return c.Capability
}

func (c Config) annotation() string {
	if c.Annotation == "" {
		return DefaultAnnotation
	}
	return c.Annotation
}

func (c Config) severity(code diag.Code) diag.Severity {
	if sev, ok := c.Severities[code]; ok {
		return sev
	}
	return diag.SevError
}
