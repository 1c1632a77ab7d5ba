// Package schema infers JSON schemas of message payloads and headers from Go type
// expressions, resolving named types through the type registry.
package schema

import (
	"fmt"
	"go/ast"
	"path"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// TypeResolver provides type lookup functionality.
type TypeResolver interface {
	FindTypeSpec(typeName string, file *ast.File) *domain.TypeSpecDef
}

// Service builds schemas from Go type expressions.
type Service struct {
	resolver           TypeResolver
	propNamingStrategy string
}

// NewService creates a schema service resolving named types with resolver.
func NewService(resolver TypeResolver) *Service {
	return &Service{
		resolver:           resolver,
		propNamingStrategy: CamelCase,
	}
}

// SetPropNamingStrategy sets the property naming strategy used for fields
// without a json name.
func (s *Service) SetPropNamingStrategy(strategy string) {
	if strategy == "" {
		strategy = CamelCase
	}
	s.propNamingStrategy = strategy
}

// PropNamingStrategy returns the property naming strategy.
func (s *Service) PropNamingStrategy() string {
	return s.propNamingStrategy
}

// SchemaFor returns the schema of the type expression expr as written in file.
func (s *Service) SchemaFor(expr ast.Expr, file *ast.File) (*spec.Schema, error) {
	return s.schemaFor(expr, file, map[*domain.TypeSpecDef]bool{})
}

// TypeSchema returns the schema of a registered type declaration.
func (s *Service) TypeSchema(def *domain.TypeSpecDef) (*spec.Schema, error) {
	if def == nil || def.TypeSpec == nil {
		return nil, fmt.Errorf("type definition is nil: %w", asyncapi.ErrInvalidArgument)
	}
	return s.typeSchema(def, map[*domain.TypeSpecDef]bool{})
}

// Resolve returns the registered declaration behind expr, dereferencing pointers.
func (s *Service) Resolve(expr ast.Expr, file *ast.File) *domain.TypeSpecDef {
	name := TypeName(expr)
	if name == "" || s.resolver == nil {
		return nil
	}
	return s.resolver.FindTypeSpec(name, file)
}

// IsNullableExpr reports whether values of the type expression may be nil.
func IsNullableExpr(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.StarExpr, *ast.InterfaceType:
		return true
	case *ast.Ident:
		return t.Name == "any"
	}
	return false
}

// TypeName returns the name a type expression refers to, such as "Event" or
// "model.Event", dropping pointers and type arguments. Unnamed types yield "".
func TypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return TypeName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return pkg.Name + "." + t.Sel.Name
		}
	case *ast.IndexExpr:
		return TypeName(t.X)
	case *ast.IndexListExpr:
		return TypeName(t.X)
	}
	return ""
}

func (s *Service) schemaFor(expr ast.Expr, file *ast.File, visiting map[*domain.TypeSpecDef]bool) (*spec.Schema, error) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		schema, err := s.schemaFor(t.X, file, visiting)
		if err != nil {
			return nil, err
		}
		return Nullable(schema), nil
	case *ast.ParenExpr:
		return s.schemaFor(t.X, file, visiting)
	case *ast.Ident:
		if t.Name == "any" {
			return &spec.Schema{}, nil
		}
		if schema := domain.TransToValidPrimitiveSchema(t.Name); schema != nil {
			return schema, nil
		}
		return s.namedSchema(t.Name, file, visiting)
	case *ast.SelectorExpr:
		if qualified := qualifiedName(t, file); domain.IsWellKnownType(qualified) {
			return domain.TransToValidPrimitiveSchema(qualified), nil
		}
		return s.namedSchema(TypeName(t), file, visiting)
	case *ast.IndexExpr, *ast.IndexListExpr:
		return s.namedSchema(TypeName(t), file, visiting)
	case *ast.InterfaceType:
		return &spec.Schema{}, nil
	case *ast.ArrayType:
		if elt, ok := t.Elt.(*ast.Ident); ok && (elt.Name == "byte" || elt.Name == "uint8") {
			return spec.StrFmtProperty("byte"), nil
		}
		items, err := s.schemaFor(t.Elt, file, visiting)
		if err != nil {
			return nil, err
		}
		array := spec.ArrayProperty(items)
		if t.Len != nil {
			if lit, ok := t.Len.(*ast.BasicLit); ok {
				if n, err := strconv.ParseInt(lit.Value, 0, 64); err == nil {
					array.WithMinItems(n).WithMaxItems(n)
				}
			}
		}
		return array, nil
	case *ast.MapType:
		values, err := s.schemaFor(t.Value, file, visiting)
		if err != nil {
			return nil, err
		}
		return spec.MapProperty(values), nil
	case *ast.StructType:
		return s.structSchema(t, file, visiting)
	}
	return nil, fmt.Errorf("type %T cannot be described by a schema: %w", expr, asyncapi.ErrConfiguration)
}

func (s *Service) namedSchema(name string, file *ast.File, visiting map[*domain.TypeSpecDef]bool) (*spec.Schema, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("type %s: %w", name, asyncapi.ErrNotFound)
	}
	def := s.resolver.FindTypeSpec(name, file)
	if def == nil {
		return nil, fmt.Errorf("type %s: %w", name, asyncapi.ErrNotFound)
	}
	return s.typeSchema(def, visiting)
}

func (s *Service) typeSchema(def *domain.TypeSpecDef, visiting map[*domain.TypeSpecDef]bool) (*spec.Schema, error) {
	if visiting[def] {
		// recursive types are cut at the second visit
		return PrimitiveSchema(domain.OBJECT).WithDescription(def.Name()), nil
	}
	visiting[def] = true
	defer delete(visiting, def)

	schema, err := s.schemaFor(def.TypeSpec.Type, def.File, visiting)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.TypeName(), err)
	}
	if len(def.Enums) > 0 {
		values := make([]interface{}, 0, len(def.Enums))
		for _, e := range def.Enums {
			values = append(values, e.Value)
		}
		schema.WithEnum(values...)
	}
	if schema.Description == "" && def.Doc != nil {
		schema.WithDescription(docText(def.Doc))
	}
	return schema, nil
}

func (s *Service) structSchema(st *ast.StructType, file *ast.File, visiting map[*domain.TypeSpecDef]bool) (*spec.Schema, error) {
	schema := PrimitiveSchema(domain.OBJECT)
	schema.Properties = spec.SchemaProperties{}
	if st.Fields == nil {
		return schema, nil
	}

	var embedded []*spec.Schema
	for _, field := range st.Fields.List {
		f := newStructField(field)
		if f.ignored {
			continue
		}

		if len(field.Names) == 0 && f.name == "" {
			inner, err := s.schemaFor(field.Type, file, visiting)
			if err != nil {
				return nil, err
			}
			embedded = append(embedded, inner)
			continue
		}

		names := []string{f.name}
		if f.name == "" {
			names = names[:0]
			for _, ident := range field.Names {
				if ident.IsExported() {
					names = append(names, ApplyNamingStrategy(ident.Name, s.propNamingStrategy))
				}
			}
		} else if len(field.Names) > 0 && !field.Names[0].IsExported() {
			continue
		}

		for _, name := range names {
			prop, err := s.fieldSchema(field, f, file, visiting)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			schema.SetProperty(name, *prop)
			if f.isRequired(field.Type) {
				schema.AddRequired(name)
			}
		}
	}

	for _, inner := range embedded {
		MergeSchema(schema, inner)
	}
	return schema, nil
}

func (s *Service) fieldSchema(field *ast.Field, f *structField, file *ast.File, visiting map[*domain.TypeSpecDef]bool) (*spec.Schema, error) {
	var prop *spec.Schema
	if f.schemaType != nil {
		custom, err := BuildCustomSchema(f.schemaType)
		if err != nil {
			return nil, err
		}
		prop = custom
	} else {
		inferred, err := s.schemaFor(field.Type, file, visiting)
		if err != nil {
			return nil, err
		}
		prop = inferred
	}

	if err := f.apply(prop); err != nil {
		return nil, err
	}
	if doc := docText(field.Doc); doc != "" {
		prop.Description = doc
	} else if doc := docText(field.Comment); doc != "" {
		prop.Description = doc
	}
	return prop, nil
}

// qualifiedName spells a selector by the base of its import path, so that
// aliased imports still match well-known types.
func qualifiedName(sel *ast.SelectorExpr, file *ast.File) string {
	pkg, ok := sel.X.(*ast.Ident)
	if !ok {
		return ""
	}
	if file != nil {
		for _, imp := range file.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if (imp.Name != nil && imp.Name.Name == pkg.Name) || (imp.Name == nil && path.Base(importPath) == pkg.Name) {
				return path.Base(importPath) + "." + sel.Sel.Name
			}
		}
	}
	return pkg.Name + "." + sel.Sel.Name
}

func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(cg.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "@") {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
