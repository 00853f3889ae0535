// Package snapshot reads class snapshot files — the JSON dumps a compiler
// host exports for every class declaration it resolves. A snapshot carries
// fully resolved capability sets and the annotations syntactically attached
// to each class; migralint never parses the host language itself.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"

	"migralint/internal/symbols"
)

// Schema is the snapshot format version this build understands.
const Schema = 1

// Ext is the snapshot file extension the driver looks for.
const Ext = ".migra.json"

// Digest - фиксированный 256 битный хеш содержимого снапшота
type Digest [32]byte

var (
	// ErrBadSchema indicates an unsupported snapshot schema version.
	ErrBadSchema = errors.New("unsupported snapshot schema")
	// ErrBadClass indicates a malformed class entry.
	ErrBadClass = errors.New("malformed class entry")
	// ErrBadArg indicates an annotation argument of an unsupported kind.
	ErrBadArg = errors.New("unsupported annotation argument")
)

// Snapshot is one decoded snapshot file.
type Snapshot struct {
	Schema   int
	Producer string
	Classes  []symbols.Class
	Digest   Digest
}

type fileJSON struct {
	Schema   int         `json:"schema"`
	Producer string      `json:"producer,omitempty"`
	Classes  []classJSON `json:"classes"`
}

type classJSON struct {
	Name         string           `json:"name"`
	Capabilities []string         `json:"capabilities,omitempty"`
	Annotations  []annotationJSON `json:"annotations,omitempty"`
	File         string           `json:"file,omitempty"`
	Line         int64            `json:"line,omitempty"`
	Col          int64            `json:"col,omitempty"`
}

type annotationJSON struct {
	Type string                     `json:"type"`
	Args map[string]json.RawMessage `json:"args,omitempty"`
}

// Load reads and decodes a snapshot file.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot %q: %w", path, err)
	}
	snap, err := Decode(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Decode parses raw snapshot bytes. The loader is strict at the boundary:
// unknown schema versions and non-string, non-integer annotation arguments
// are rejected here so the rule evaluator can rely on well-formed values.
func Decode(data []byte) (Snapshot, error) {
	var file fileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if file.Schema != Schema {
		return Snapshot{}, fmt.Errorf("%w: got %d, want %d", ErrBadSchema, file.Schema, Schema)
	}

	classes := make([]symbols.Class, 0, len(file.Classes))
	for i, cj := range file.Classes {
		class, err := decodeClass(cj)
		if err != nil {
			return Snapshot{}, fmt.Errorf("class #%d: %w", i, err)
		}
		classes = append(classes, class)
	}

	return Snapshot{
		Schema:   file.Schema,
		Producer: file.Producer,
		Classes:  classes,
		Digest:   sha256.Sum256(data),
	}, nil
}

// DecodeFrom is Decode over a stream.
func DecodeFrom(r io.Reader) (Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

func decodeClass(cj classJSON) (symbols.Class, error) {
	if cj.Name == "" {
		return symbols.Class{}, fmt.Errorf("%w: missing name", ErrBadClass)
	}

	origin := symbols.Origin{File: cj.File}
	line, err := safecast.Convert[uint32](cj.Line)
	if err != nil {
		return symbols.Class{}, fmt.Errorf("%w: line out of range for %q", ErrBadClass, cj.Name)
	}
	col, err := safecast.Convert[uint32](cj.Col)
	if err != nil {
		return symbols.Class{}, fmt.Errorf("%w: col out of range for %q", ErrBadClass, cj.Name)
	}
	origin.Line, origin.Col = line, col

	anns := make([]symbols.Annotation, 0, len(cj.Annotations))
	for _, aj := range cj.Annotations {
		if aj.Type == "" {
			return symbols.Class{}, fmt.Errorf("%w: annotation without type on %q", ErrBadClass, cj.Name)
		}
		args := make(map[string]symbols.Value, len(aj.Args))
		for name, raw := range aj.Args {
			val, err := decodeValue(raw)
			if err != nil {
				return symbols.Class{}, fmt.Errorf("%w: %q of @%s on %q", ErrBadArg, name, aj.Type, cj.Name)
			}
			args[name] = val
		}
		anns = append(anns, symbols.Annotation{TypeName: aj.Type, Args: args})
	}

	return symbols.Class{
		Name:         cj.Name,
		Capabilities: cj.Capabilities,
		Annotations:  anns,
		Origin:       origin,
	}, nil
}

// decodeValue accepts JSON strings, integers and null. Anything else (floats,
// booleans, arrays, objects) is a host contract violation and rejected.
func decodeValue(raw json.RawMessage) (symbols.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return symbols.Value{}, err
	}
	switch tv := v.(type) {
	case nil:
		return symbols.MissingValue(), nil
	case string:
		return symbols.StringValue(tv), nil
	case json.Number:
		i, err := tv.Int64()
		if err != nil {
			return symbols.Value{}, fmt.Errorf("non-integer number %q", tv.String())
		}
		return symbols.IntValue(i), nil
	}
	return symbols.Value{}, fmt.Errorf("unsupported kind %T", v)
}
