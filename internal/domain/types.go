// Package domain contains the types shared by the loader, the registry and the
// generator: parsed files, type declarations, their methods and package tables.
package domain

import (
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ParseFlag determines what to parse.
type ParseFlag int

const (
	// ParseNone parse nothing
	ParseNone ParseFlag = 0x00
	// ParseModels parse type declarations
	ParseModels ParseFlag = 0x01
	// ParseOperations parse marked methods
	ParseOperations ParseFlag = 0x02
	// ParseAll parse operations and models
	ParseAll = ParseOperations | ParseModels
)

// AstFileInfo information of an ast.File.
type AstFileInfo struct {
	// FileSet the FileSet object which is used to parse this go source file
	FileSet *token.FileSet

	// File ast.File
	File *ast.File

	// Path the path of the ast.File
	Path string

	// PackagePath package import path of the ast.File
	PackagePath string

	// ParseFlag determine what to parse
	ParseFlag ParseFlag
}

// TypeSpecDef the whole information of a typeSpec.
type TypeSpecDef struct {
	// ast file where TypeSpec is
	File *ast.File

	// the TypeSpec of this type definition
	TypeSpec *ast.TypeSpec

	// Doc is the comment group of the declaration; for a single spec in a
	// parenthesis-less declaration it is the GenDecl doc.
	Doc *ast.CommentGroup

	// Enums collected from typed constants of this type
	Enums []EnumValue

	// path of package starting from under ${GOPATH}/src or from module path in go.mod
	PkgPath string

	NotUnique bool
}

// Name the name of the typeSpec.
func (t *TypeSpecDef) Name() string {
	if t.TypeSpec != nil && t.TypeSpec.Name != nil {
		return t.TypeSpec.Name.Name
	}

	return ""
}

// TypeName the type name of the typeSpec, qualified by package name or, when the
// package name is ambiguous, by the sanitized package path.
func (t *TypeSpecDef) TypeName() string {
	var names []string
	if t.NotUnique {
		pkgPath := strings.Map(func(r rune) rune {
			if r == '\\' || r == '/' || r == '.' {
				return '_'
			}
			return r
		}, t.PkgPath)
		names = append(names, pkgPath)
	} else if t.File != nil {
		names = append(names, t.File.Name.Name)
	}
	names = append(names, t.Name())
	return fullTypeName(names...)
}

// FullPath return the full path of the typeSpec.
func (t *TypeSpecDef) FullPath() string {
	return t.PkgPath + "." + t.Name()
}

// MethodDef is a method declared on a registered type.
type MethodDef struct {
	// Decl is the method declaration.
	Decl *ast.FuncDecl

	// File is the file declaring the method.
	File *ast.File

	// Receiver is the registered receiver type.
	Receiver *TypeSpecDef
}

// Name returns the method name.
func (m *MethodDef) Name() string {
	return m.Decl.Name.Name
}

// EnumValue is one typed constant of an enum-like type.
type EnumValue struct {
	Key     string
	Value   interface{}
	Comment string
}

// ConstVariable a model to record a const variable.
type ConstVariable struct {
	Name    *ast.Ident
	Type    ast.Expr
	Value   interface{}
	Comment *ast.CommentGroup
	File    *ast.File
	Pkg     *PackageDefinitions
}

// PackageDefinitions files and definition in a package.
type PackageDefinitions struct {
	// files in this package, map key is file's absolute path
	Files map[string]*ast.File

	// definitions in this package, map key is typeName
	TypeDefinitions map[string]*TypeSpecDef

	// const variables in order in this package
	OrderedConst []*ConstVariable

	// package name
	Name string

	// package path
	Path string

	Package *packages.Package
}

// NewPackageDefinitions new a PackageDefinitions object
func NewPackageDefinitions(name, pkgPath string) *PackageDefinitions {
	return &PackageDefinitions{
		Name:            name,
		Path:            pkgPath,
		Files:           make(map[string]*ast.File),
		TypeDefinitions: make(map[string]*TypeSpecDef),
	}
}

// AddFile add a file
func (pkg *PackageDefinitions) AddFile(path string, file *ast.File) *PackageDefinitions {
	pkg.Files[path] = file
	return pkg
}

// AddTypeSpec add a type spec.
func (pkg *PackageDefinitions) AddTypeSpec(name string, typeSpec *TypeSpecDef) *PackageDefinitions {
	pkg.TypeDefinitions[name] = typeSpec
	return pkg
}

// AddConst records the typed constants of a value spec. iota is the position of
// the spec in its declaration block.
func (pkg *PackageDefinitions) AddConst(astFile *ast.File, valueSpec *ast.ValueSpec, typ ast.Expr, values []ast.Expr, iota int) *PackageDefinitions {
	for i := 0; i < len(valueSpec.Names); i++ {
		var expr ast.Expr
		if i < len(values) {
			expr = values[i]
		}
		comment := valueSpec.Comment
		if comment == nil {
			comment = valueSpec.Doc
		}
		pkg.OrderedConst = append(pkg.OrderedConst, &ConstVariable{
			Name:    valueSpec.Names[i],
			Type:    typ,
			Value:   EvaluateConstExpr(expr, iota),
			Comment: comment,
			File:    astFile,
			Pkg:     pkg,
		})
	}
	return pkg
}
