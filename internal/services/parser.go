package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParseResult holds either the parsed value or the fallback. Err explains
// why the fallback was used.
type ParseResult[T any] struct {
	Value    T
	Fallback bool
	Err      error
}

type parseConfig struct {
	schema *gojsonschema.Schema
}

type ParseOption func(*parseConfig)

// WithSchema additionally requires the document to satisfy schema.
func WithSchema(schema *gojsonschema.Schema) ParseOption {
	return func(c *parseConfig) {
		c.schema = schema
	}
}

// Parse decodes model output into T. It never fails: malformed input
// yields fallback with Fallback set.
func Parse[T any](raw string, fallback T, opts ...ParseOption) ParseResult[T] {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := stripCodeFence(raw)

	if cfg.schema != nil {
		if err := validateDocument(cfg.schema, doc); err != nil {
			return ParseResult[T]{Value: fallback, Fallback: true, Err: err}
		}
	}

	var value *T
	if err := json.Unmarshal([]byte(doc), &value); err != nil {
		return ParseResult[T]{Value: fallback, Fallback: true, Err: fmt.Errorf("%w: %v", ErrParseFailure, err)}
	}
	if value == nil {
		return ParseResult[T]{Value: fallback, Fallback: true, Err: fmt.Errorf("%w: null document", ErrParseFailure)}
	}

	return ParseResult[T]{Value: *value}
}

// ParseOrDefault returns the parsed value or fallback.
func ParseOrDefault[T any](raw string, fallback T, opts ...ParseOption) T {
	return Parse(raw, fallback, opts...).Value
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// SchemaError lists the fields that failed validation.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: schema violations: %s", ErrParseFailure, strings.Join(e.Fields, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrParseFailure
}

func validateDocument(schema *gojsonschema.Schema, doc string) error {
	result, err := schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return errors.Join(ErrParseFailure, err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Fields: make([]string, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Fields = append(schemaErr.Fields, field+": "+desc.Description())
	}
	return schemaErr
}
