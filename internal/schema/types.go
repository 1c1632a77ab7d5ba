package schema

import (
	"errors"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
)

// PRIMITIVE prefixes a custom primitive in a schematype tag.
const PRIMITIVE = "primitive"

// IsPrimitiveType determines whether the type name is a JSON schema type.
func IsPrimitiveType(typeName string) bool {
	switch typeName {
	case domain.STRING, domain.NUMBER, domain.INTEGER, domain.BOOLEAN, domain.ARRAY, domain.OBJECT:
		return true
	}
	return false
}

// PrimitiveSchema builds a primitive schema.
func PrimitiveSchema(refType string) *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{refType}}}
}

// BuildCustomSchema builds the schema spelled by a schematype tag, e.g.
// "array,integer" or "object,string".
func BuildCustomSchema(types []string) (*spec.Schema, error) {
	if len(types) == 0 {
		return nil, nil
	}

	switch types[0] {
	case PRIMITIVE:
		if len(types) == 1 {
			return nil, errors.New("need primitive type after primitive")
		}
		return BuildCustomSchema(types[1:])
	case domain.ARRAY:
		if len(types) == 1 {
			return nil, errors.New("need array item type after array")
		}
		schema, err := BuildCustomSchema(types[1:])
		if err != nil {
			return nil, err
		}
		return spec.ArrayProperty(schema), nil
	case domain.OBJECT:
		if len(types) == 1 {
			return PrimitiveSchema(types[0]), nil
		}
		schema, err := BuildCustomSchema(types[1:])
		if err != nil {
			return nil, err
		}
		return spec.MapProperty(schema), nil
	default:
		if !IsPrimitiveType(types[0]) {
			return nil, errors.New(types[0] + " is not basic types")
		}
		return PrimitiveSchema(types[0]), nil
	}
}

// Nullable adds "null" to the types of schema. Schemas without a type already
// accept null.
func Nullable(schema *spec.Schema) *spec.Schema {
	if len(schema.Type) == 0 || schema.Type.Contains(domain.NULL) {
		return schema
	}
	schema.Type = append(schema.Type, domain.NULL)
	return schema
}

// IsNullable reports whether schema accepts null.
func IsNullable(schema *spec.Schema) bool {
	return schema != nil && (len(schema.Type) == 0 || schema.Type.Contains(domain.NULL))
}

// MergeSchema flattens the properties of src into dst, keeping dst's own
// properties on conflict.
func MergeSchema(dst *spec.Schema, src *spec.Schema) *spec.Schema {
	if src == nil {
		return dst
	}
	for name, prop := range src.Properties {
		if _, ok := dst.Properties[name]; ok {
			continue
		}
		dst.SetProperty(name, prop)
		for _, required := range src.Required {
			if required == name {
				dst.AddRequired(name)
			}
		}
	}
	return dst
}

func splitTrimmed(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
