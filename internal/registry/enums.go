package registry

import (
	"go/ast"
	"go/constant"
	"go/types"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
)

func (s *Service) collectConstVariables(astFile *ast.File, packagePath string, generalDeclaration *ast.GenDecl) {
	pkg, ok := s.packages[packagePath]
	if !ok {
		pkg = domain.NewPackageDefinitions(astFile.Name.Name, packagePath)
		s.packages[packagePath] = pkg
	}

	// implicit repetition: a spec without values repeats the previous type and values
	var lastType ast.Expr
	var lastValues []ast.Expr
	for i, astSpec := range generalDeclaration.Specs {
		valueSpec, ok := astSpec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		typ, values := valueSpec.Type, valueSpec.Values
		if len(values) > 0 {
			lastType, lastValues = typ, values
		} else if typ == nil {
			typ, values = lastType, lastValues
		}
		pkg.AddConst(astFile, valueSpec, typ, values, i)
	}
}

// evaluateAllConstVariables replaces syntactic values with type-checked ones when
// the package was loaded through go/packages.
func (s *Service) evaluateAllConstVariables() {
	for _, pkg := range s.packages {
		if pkg.Package == nil || pkg.Package.Types == nil {
			continue
		}
		scope := pkg.Package.Types.Scope()
		for _, cv := range pkg.OrderedConst {
			obj, ok := scope.Lookup(cv.Name.Name).(*types.Const)
			if !ok {
				continue
			}
			cv.Value = constantValue(obj.Val())
		}
	}
}

func constantValue(v constant.Value) interface{} {
	switch v.Kind() {
	case constant.Int:
		if i, ok := constant.Int64Val(v); ok {
			return int(i)
		}
	case constant.Float:
		f, _ := constant.Float64Val(v)
		return f
	case constant.String:
		return constant.StringVal(v)
	case constant.Bool:
		return constant.BoolVal(v)
	}
	return nil
}

func (s *Service) collectConstEnums() {
	for _, pkg := range s.packages {
		for _, constVar := range pkg.OrderedConst {
			ident, ok := constVar.Type.(*ast.Ident)
			if !ok || domain.IsGolangPrimitiveType(ident.Name) {
				continue
			}
			typeDef, ok := pkg.TypeDefinitions[ident.Name]
			if !ok || constVar.Value == nil {
				continue
			}
			if constVar.Name.Name == "_" {
				continue
			}
			typeDef.Enums = append(typeDef.Enums, domain.EnumValue{
				Key:     constVar.Name.Name,
				Value:   constVar.Value,
				Comment: constComment(constVar.Comment),
			})
		}
	}
}
