// Package schema builds and validates JSON Schemas for tool parameters.
//
// Tool argument schemas are declared with the builder functions and
// compiled once at registration time; the registry then validates every
// incoming argument map before the tool handler runs:
//
//	schema.Object(map[string]*schema.Property{
//	    "expression": schema.String("Arithmetic expression to evaluate"),
//	}, "expression")
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema pairs the raw map representation (advertised to the model)
// with a compiled validator (applied to incoming arguments).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the schema as a map, suitable for serialization into a
// tool catalog or provider request.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate checks args against the compiled schema. A nil Schema
// accepts everything.
func (s *Schema) Validate(args map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	// The validator wants JSON-decoded values; round-trip to normalize
	// Go-native types (e.g. int) the way json.Unmarshal would.
	encoded, err := json.Marshal(args)
	if err != nil {
		return &ValidationError{Err: err}
	}
	decoded, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return &ValidationError{Err: err}
	}
	if err := s.compiled.Validate(decoded); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a schema validation failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Compile compiles a raw schema map into a validating Schema.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like Compile but panics on error. Tool schemas are
// fixed at process start, so a failure here is a programming error.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Object builds an object schema from named properties. Names passed as
// trailing arguments are marked required. Unknown properties are
// rejected so a misspelled argument fails validation instead of being
// silently dropped.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	raw := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		raw["required"] = required
	}
	return raw
}

// Property is a single object property under construction.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
}

func (p *Property) build() map[string]any {
	m := map[string]any{"type": p.typ}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	return m
}

// String builds a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer builds an integer property. Validation rejects non-integral
// numbers, so "2.5" never reaches a handler expecting an int.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number builds a floating-point property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean builds a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Enum restricts the property to the given values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum allowed value for numeric properties.
func (p *Property) Min(v float64) *Property {
	p.minimum = &v
	return p
}

// Max sets the maximum allowed value for numeric properties.
func (p *Property) Max(v float64) *Property {
	p.maximum = &v
	return p
}
