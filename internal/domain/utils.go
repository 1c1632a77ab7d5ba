package domain

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"
)

const (
	// ARRAY represent a array value.
	ARRAY = "array"
	// OBJECT represent a object value.
	OBJECT = "object"
	// BOOLEAN represent a boolean value.
	BOOLEAN = "boolean"
	// INTEGER represent a integer value.
	INTEGER = "integer"
	// NUMBER represent a number value.
	NUMBER = "number"
	// STRING represent a string value.
	STRING = "string"
	// NULL represent a null value.
	NULL = "null"
)

// IsGolangPrimitiveType checks if a type is a Go primitive type.
func IsGolangPrimitiveType(typeName string) bool {
	switch typeName {
	case "uint",
		"int",
		"uint8",
		"int8",
		"uint16",
		"int16",
		"byte",
		"uint32",
		"int32",
		"rune",
		"uint64",
		"int64",
		"float32",
		"float64",
		"bool",
		"string":
		return true
	}

	return false
}

// IsWellKnownType checks if a qualified type maps to a fixed schema.
func IsWellKnownType(typeName string) bool {
	_, ok := wellKnownSchemas[strings.TrimPrefix(typeName, "*")]
	return ok
}

var wellKnownSchemas = map[string]func() *spec.Schema{
	"time.Time":       func() *spec.Schema { return spec.DateTimeProperty() },
	"time.Duration":   func() *spec.Schema { return spec.StrFmtProperty("duration") },
	"uuid.UUID":       func() *spec.Schema { return spec.StrFmtProperty("uuid") },
	"url.URL":         func() *spec.Schema { return spec.StrFmtProperty("uri") },
	"net.IP":          func() *spec.Schema { return spec.StrFmtProperty("ipv4") },
	"mail.Address":    func() *spec.Schema { return spec.StrFmtProperty("email") },
	"json.RawMessage": func() *spec.Schema { return &spec.Schema{} },
	"json.Number":     func() *spec.Schema { return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{NUMBER}}} },
}

// TransToValidPrimitiveSchema transfer golang basic and well-known types to a JSON
// schema with format considered. Unknown names yield nil.
func TransToValidPrimitiveSchema(typeName string) *spec.Schema {
	cleanType := strings.TrimPrefix(typeName, "*")

	switch cleanType {
	case "int", "uint":
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{INTEGER}}}
	case "uint8", "int8", "uint16", "int16", "byte", "int32", "uint32", "rune":
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{INTEGER}, Format: "int32"}}
	case "uint64", "int64":
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{INTEGER}, Format: "int64"}}
	case "float32":
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{NUMBER}, Format: "float"}}
	case "float64":
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{NUMBER}, Format: "double"}}
	case "bool":
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{BOOLEAN}}}
	case "string":
		return &spec.Schema{SchemaProps: spec.SchemaProps{Type: []string{STRING}}}
	}
	if build, ok := wellKnownSchemas[cleanType]; ok {
		return build()
	}
	return nil
}

// EvaluateConstExpr evaluates the literal constant expressions used by enum
// declarations. Anything else yields nil.
func EvaluateConstExpr(expr ast.Expr, iota int) interface{} {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.Ident:
		switch e.Name {
		case "iota":
			return iota
		case "true":
			return true
		case "false":
			return false
		}
	case *ast.BasicLit:
		switch e.Kind {
		case token.INT:
			if x, err := strconv.ParseInt(e.Value, 0, 64); err == nil {
				return int(x)
			}
		case token.FLOAT:
			if x, err := strconv.ParseFloat(e.Value, 64); err == nil {
				return x
			}
		case token.STRING:
			if s, err := strconv.Unquote(e.Value); err == nil {
				return s
			}
		case token.CHAR:
			if s, err := strconv.Unquote(e.Value); err == nil && len(s) > 0 {
				return int([]rune(s)[0])
			}
		}
	case *ast.ParenExpr:
		return EvaluateConstExpr(e.X, iota)
	case *ast.CallExpr:
		// typed conversion such as Level(1)
		if len(e.Args) == 1 {
			return EvaluateConstExpr(e.Args[0], iota)
		}
	case *ast.BinaryExpr:
		x, xok := EvaluateConstExpr(e.X, iota).(int)
		y, yok := EvaluateConstExpr(e.Y, iota).(int)
		if !xok || !yok {
			return nil
		}
		switch e.Op {
		case token.ADD:
			return x + y
		case token.SUB:
			return x - y
		case token.MUL:
			return x * y
		case token.SHL:
			return x << uint(y)
		}
	}
	return nil
}

func fullTypeName(parts ...string) string {
	return strings.Join(parts, ".")
}
