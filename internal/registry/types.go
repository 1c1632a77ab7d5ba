package registry

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/neuroglia-io/asyncapi-sub001/internal/console"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"golang.org/x/tools/go/packages"
)

// ParseTypes registers every type declaration, typed constant and method of the
// collected files.
func (s *Service) ParseTypes() error {
	var decls []*ast.FuncDecl
	var declFiles []*ast.File
	err := s.RangeFiles(func(info *domain.AstFileInfo) error {
		s.parseTypesFromFile(info.File, info.PackagePath)
		for _, decl := range info.File.Decls {
			if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil && len(fn.Recv.List) == 1 {
				decls = append(decls, fn)
				declFiles = append(declFiles, info.File)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.removeAllNotUniqueTypes()
	s.evaluateAllConstVariables()
	s.collectConstEnums()

	for i, fn := range decls {
		s.registerMethod(declFiles[i], fn)
	}

	s.debug.Printf("registered %d types in %d packages", len(s.uniqueDefinitions), len(s.packages))
	return nil
}

func (s *Service) parseTypesFromFile(astFile *ast.File, packagePath string) {
	for _, astDeclaration := range astFile.Decls {
		generalDeclaration, ok := astDeclaration.(*ast.GenDecl)
		if !ok {
			continue
		}
		switch generalDeclaration.Tok {
		case token.TYPE:
			for _, astSpec := range generalDeclaration.Specs {
				typeSpec, ok := astSpec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil && !generalDeclaration.Lparen.IsValid() {
					doc = generalDeclaration.Doc
				}
				s.registerTypeSpec(&domain.TypeSpecDef{
					PkgPath:  packagePath,
					File:     astFile,
					TypeSpec: typeSpec,
					Doc:      doc,
				})
			}
		case token.CONST:
			s.collectConstVariables(astFile, packagePath, generalDeclaration)
		}
	}
}

func (s *Service) registerTypeSpec(typeSpecDef *domain.TypeSpecDef) {
	fullName := typeSpecDef.TypeName()

	anotherTypeDef, ok := s.uniqueDefinitions[fullName]
	if ok {
		if anotherTypeDef == nil {
			typeSpecDef.NotUnique = true
			s.uniqueDefinitions[typeSpecDef.TypeName()] = typeSpecDef
		} else if typeSpecDef.PkgPath != anotherTypeDef.PkgPath {
			// same package name, different import paths: key both by path
			s.uniqueDefinitions[fullName] = nil
			anotherTypeDef.NotUnique = true
			s.uniqueDefinitions[anotherTypeDef.TypeName()] = anotherTypeDef

			typeSpecDef.NotUnique = true
			s.uniqueDefinitions[typeSpecDef.TypeName()] = typeSpecDef
		}
	} else {
		s.uniqueDefinitions[fullName] = typeSpecDef
	}

	pkg := s.packages[typeSpecDef.PkgPath]
	if pkg == nil {
		pkg = domain.NewPackageDefinitions(typeSpecDef.File.Name.Name, typeSpecDef.PkgPath)
		s.packages[typeSpecDef.PkgPath] = pkg
	}
	if _, ok := pkg.TypeDefinitions[typeSpecDef.Name()]; !ok {
		pkg.AddTypeSpec(typeSpecDef.Name(), typeSpecDef)
	}
}

func (s *Service) registerMethod(file *ast.File, fn *ast.FuncDecl) {
	info, ok := s.files[file]
	if !ok {
		return
	}
	pkg := s.packages[info.PackagePath]
	if pkg == nil {
		return
	}
	receiver, ok := pkg.TypeDefinitions[receiverTypeName(fn.Recv.List[0].Type)]
	if !ok {
		return
	}
	s.methods[receiver] = append(s.methods[receiver], &domain.MethodDef{
		Decl:     fn,
		File:     file,
		Receiver: receiver,
	})
}

func (s *Service) removeAllNotUniqueTypes() {
	for key, ud := range s.uniqueDefinitions {
		if ud == nil {
			delete(s.uniqueDefinitions, key)
		}
	}
}

// Types returns every registered type ordered by package path and name.
func (s *Service) Types() []*domain.TypeSpecDef {
	out := make([]*domain.TypeSpecDef, 0, len(s.uniqueDefinitions))
	for _, def := range s.uniqueDefinitions {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FullPath() < out[j].FullPath()
	})
	return out
}

// MethodsOf returns the methods declared on def, in source order.
func (s *Service) MethodsOf(def *domain.TypeSpecDef) []*domain.MethodDef {
	methods := append([]*domain.MethodDef(nil), s.methods[def]...)
	sort.SliceStable(methods, func(i, j int) bool {
		return methods[i].Decl.Pos() < methods[j].Decl.Pos()
	})
	return methods
}

// FindTypeSpec finds TypeSpecDef by type name, as written in file.
func (s *Service) FindTypeSpec(typeName string, file *ast.File) *domain.TypeSpecDef {
	if domain.IsGolangPrimitiveType(typeName) {
		return nil
	}

	if file == nil {
		return s.uniqueDefinitions[typeName]
	}

	parts := strings.Split(strings.Split(typeName, "[")[0], ".")
	if len(parts) > 1 {
		pkgPaths, externalPkgPaths := s.findPackagePathFromImports(parts[0], file)
		if len(externalPkgPaths) == 0 || s.parseDependency == domain.ParseNone {
			if typeDef, ok := s.uniqueDefinitions[typeName]; ok {
				return typeDef
			}
		}
		return s.findTypeSpecFromPackagePaths(pkgPaths, externalPkgPaths, parts[1])
	}

	if typeDef, ok := s.uniqueDefinitions[fullTypeName(file.Name.Name, parts[0])]; ok {
		return typeDef
	}

	pkgPaths, externalPkgPaths := s.findPackagePathFromImports("", file)
	return s.findTypeSpecFromPackagePaths(pkgPaths, externalPkgPaths, parts[0])
}

func (s *Service) findTypeSpec(pkgPath string, typeName string) *domain.TypeSpecDef {
	if pd, found := s.packages[pkgPath]; found {
		if typeSpec, ok := pd.TypeDefinitions[typeName]; ok {
			return typeSpec
		}
	}
	return nil
}

// CheckTypeSpec reports, through the console logger, payload types whose JSON
// encoding is customized and may not match the inferred schema.
func (s *Service) CheckTypeSpec(typeSpecDef *domain.TypeSpecDef) bool {
	if typeSpecDef == nil {
		return false
	}

	packageDefinition := s.packages[typeSpecDef.PkgPath]
	if packageDefinition == nil || packageDefinition.Package == nil || packageDefinition.Package.TypesInfo == nil {
		return false
	}
	pkg := packageDefinition.Package
	obj := pkg.TypesInfo.ObjectOf(typeSpecDef.TypeSpec.Name)
	if obj == nil {
		s.debug.Printf("warning: %s has no type information", typeSpecDef.TypeSpec.Name.Name)
		return false
	}
	return s.checkJSONMarshal(pkg, obj)
}

func (s *Service) checkJSONMarshal(pkg *packages.Package, obj types.Object) bool {
	for _, typ := range []types.Type{obj.Type(), types.NewPointer(obj.Type())} {
		if types.NewMethodSet(typ).Lookup(pkg.Types, "MarshalJSON") != nil {
			console.Logger.Debug("warning: %s.%s has MarshalJSON method, inferred schema may differ from the payload", pkg.PkgPath, obj.Name())
			return true
		}
	}
	return false
}
