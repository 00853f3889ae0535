package symbols

import "strconv"

// Origin records where a class declaration lives in the host's sources.
// The host resolves it; migralint only carries it through to diagnostics.
// A zero Origin means "unknown location".
type Origin struct {
	File string
	Line uint32
	Col  uint32
}

// IsZero reports whether no location information is attached.
func (o Origin) IsZero() bool {
	return o.File == "" && o.Line == 0 && o.Col == 0
}

func (o Origin) String() string {
	if o.File == "" {
		return "<unknown>"
	}
	if o.Line == 0 {
		return o.File
	}
	return o.File + ":" + strconv.FormatUint(uint64(o.Line), 10) + ":" + strconv.FormatUint(uint64(o.Col), 10)
}

// ValueKind discriminates annotation argument values.
type ValueKind uint8

const (
	// ValueMissing marks an argument that was declared without a usable value
	// (e.g. an explicit null in the host's dump).
	ValueMissing ValueKind = iota
	ValueString
	ValueInt
)

func (k ValueKind) String() string {
	switch k {
	case ValueMissing:
		return "missing"
	case ValueString:
		return "string"
	case ValueInt:
		return "int"
	}
	return "unknown"
}

// Value is a single annotation argument value.
type Value struct {
	Kind ValueKind
	Str  string
	Int  int64
}

// StringValue builds a string-kinded Value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// IntValue builds an integer-kinded Value.
func IntValue(i int64) Value { return Value{Kind: ValueInt, Int: i} }

// MissingValue builds a missing-kinded Value.
func MissingValue() Value { return Value{Kind: ValueMissing} }

// Text returns the permissive string form of the value: strings as-is,
// integers formatted, missing values as "".
func (v Value) Text() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	}
	return ""
}

// AsInt returns the integer payload and whether the value is integer-kinded.
func (v Value) AsInt() (int64, bool) {
	if v.Kind != ValueInt {
		return 0, false
	}
	return v.Int, true
}

// Annotation is one metadata entry syntactically attached to a class.
// Argument keys are unique.
type Annotation struct {
	TypeName string
	Args     map[string]Value
}

// Arg looks up a named argument.
func (a Annotation) Arg(name string) (Value, bool) {
	v, ok := a.Args[name]
	return v, ok
}

// Class describes one candidate class as resolved by the host:
// Capabilities contains the transitive set of implemented capability names,
// Annotations exactly the metadata attached to the declaration itself.
type Class struct {
	Name         string
	Capabilities []string
	Annotations  []Annotation
	Origin       Origin
}

// Implements reports whether the class implements the capability.
// Matching is exact and case-sensitive.
func (c Class) Implements(capability string) bool {
	for _, name := range c.Capabilities {
		if name == capability {
			return true
		}
	}
	return false
}

// FindAnnotation returns the first annotation with the given type name, in
// declaration order. Later duplicates are never consulted.
func (c Class) FindAnnotation(typeName string) (Annotation, bool) {
	for _, ann := range c.Annotations {
		if ann.TypeName == typeName {
			return ann, true
		}
	}
	return Annotation{}, false
}
