package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/parser/marker"
	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// payload is the inferred message payload of an operation method.
type payload struct {
	schema *spec.Schema
	// def is the named type behind the payload, nil for parameter objects and
	// unregistered types.
	def *domain.TypeSpecDef
}

type param struct {
	name string
	typ  ast.Expr
}

// inferPayload picks the payload schema of method: an explicit type, else the
// single non-context parameter, else an object of every parameter.
func (g *Generator) inferPayload(method *domain.MethodDef, mm *marker.MethodMarker) (*payload, error) {
	if explicit := explicitPayload(mm); explicit != "" {
		return g.typePayload(explicit, method.File)
	}

	params := methodParams(method)
	if len(params) == 1 && !mm.Excluded[params[0].name] {
		return g.exprPayload(params[0].typ, method.File)
	}

	object := &spec.Schema{}
	object.Typed(domain.OBJECT, "")
	for _, p := range params {
		if mm.Excluded[p.name] {
			continue
		}
		prop, err := g.schemas.SchemaFor(p.typ, method.File)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.name, err)
		}
		raw, hasDefault := mm.Defaults[p.name]
		if hasDefault {
			value, err := schema.ParseValue(raw, prop)
			if err != nil {
				return nil, fmt.Errorf("parameter %s default: %v: %w", p.name, err, asyncapi.ErrConfiguration)
			}
			prop.WithDefault(value)
		}
		name := schema.ApplyNamingStrategy(p.name, g.schemas.PropNamingStrategy())
		object.SetProperty(name, *prop)
		if mm.Required[p.name] || !schema.IsNullableExpr(p.typ) || !hasDefault {
			object.AddRequired(name)
		}
	}
	return &payload{schema: object}, nil
}

// headersSchema resolves an explicit headers type name.
func (g *Generator) headersSchema(typeName string, file *ast.File) (*spec.Schema, error) {
	p, err := g.typePayload(typeName, file)
	if err != nil {
		return nil, fmt.Errorf("headers: %w", err)
	}
	if len(p.schema.Type) > 0 && !p.schema.Type.Contains(domain.OBJECT) {
		return nil, fmt.Errorf("headers type %s is not a struct: %w", typeName, asyncapi.ErrConfiguration)
	}
	return p.schema, nil
}

func explicitPayload(mm *marker.MethodMarker) string {
	if mm.Operation != nil && mm.Operation.Payload != "" {
		return mm.Operation.Payload
	}
	if mm.Message != nil {
		return mm.Message.Payload
	}
	return ""
}

// typePayload resolves a type written in an annotation, as if it were written in file.
func (g *Generator) typePayload(typeName string, file *ast.File) (*payload, error) {
	expr, err := parser.ParseExpr(typeName)
	if err != nil {
		return nil, fmt.Errorf("type %q: %v: %w", typeName, err, asyncapi.ErrConfiguration)
	}
	return g.exprPayload(expr, file)
}

func (g *Generator) exprPayload(expr ast.Expr, file *ast.File) (*payload, error) {
	s, err := g.schemas.SchemaFor(expr, file)
	if err != nil {
		return nil, err
	}
	p := &payload{schema: s}
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch expr.(type) {
	case *ast.Ident, *ast.SelectorExpr:
		p.def = g.schemas.Resolve(expr, file)
	}
	return p, nil
}

// methodParams lists the parameters of method other than context.Context.
// Unnamed parameters are called arg0, arg1, ...
func methodParams(method *domain.MethodDef) []param {
	var out []param
	if method.Decl.Type.Params == nil {
		return out
	}
	index := 0
	for _, field := range method.Decl.Type.Params.List {
		if isContext(field.Type, method.File) {
			index += max(1, len(field.Names))
			continue
		}
		if len(field.Names) == 0 {
			out = append(out, param{name: "arg" + strconv.Itoa(index), typ: field.Type})
			index++
			continue
		}
		for _, name := range field.Names {
			if name.Name != "_" {
				out = append(out, param{name: name.Name, typ: field.Type})
			}
			index++
		}
	}
	return out
}

func isContext(expr ast.Expr, file *ast.File) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Context" {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		if path != "context" {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name == pkg.Name
		}
		return pkg.Name == "context"
	}
	return false
}
