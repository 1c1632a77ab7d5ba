package registry

import (
	"strings"

	"golang.org/x/tools/go/packages"
)

// loadExternalPackage registers the types of an imported package that was not part
// of the loaded search directories.
func (s *Service) loadExternalPackage(importPath string) error {
	if pkg, ok := s.packages[importPath]; ok && len(pkg.TypeDefinitions) > 0 {
		return nil
	}

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
	}, importPath)
	if err != nil {
		return err
	}

	for _, pkg := range pkgs {
		pkgPath := strings.TrimPrefix(pkg.PkgPath, "vendor/")
		for i, astFile := range pkg.Syntax {
			path := ""
			if i < len(pkg.CompiledGoFiles) {
				path = pkg.CompiledGoFiles[i]
			}
			if err := s.CollectAstFile(pkg.Fset, pkgPath, path, astFile, s.parseDependency); err != nil {
				return err
			}
			s.parseTypesFromFile(astFile, pkgPath)
		}
	}
	s.AddPackages(pkgs)
	s.removeAllNotUniqueTypes()

	return nil
}
