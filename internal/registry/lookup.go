package registry

import (
	"go/ast"
	"strings"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
)

// findPackagePathFromImports finds the import paths file may refer to as pkg.
// An empty pkg matches dot imports and the file's own package.
func (s *Service) findPackagePathFromImports(pkg string, file *ast.File) (matchedPkgPaths, externalPkgPaths []string) {
	if file == nil {
		return
	}

	if strings.ContainsRune(pkg, '.') {
		pkg = strings.Split(pkg, ".")[0]
	}

	matchLastPathPart := func(pkgPath string) bool {
		paths := strings.Split(pkgPath, "/")
		return paths[len(paths)-1] == pkg
	}

	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		if imp.Name != nil {
			switch {
			case imp.Name.Name == pkg:
				// explicit alias wins over everything else
				if _, ok := s.packages[path]; ok {
					return []string{path}, nil
				}
				return nil, []string{path}
			case imp.Name.Name == "." && pkg == "":
				if _, ok := s.packages[path]; ok {
					matchedPkgPaths = append(matchedPkgPaths, path)
				} else {
					externalPkgPaths = append(externalPkgPaths, path)
				}
			}
			continue
		}
		if pkg == "" {
			continue
		}
		if pd, ok := s.packages[path]; ok {
			if pd.Name == pkg {
				matchedPkgPaths = append(matchedPkgPaths, path)
			}
		} else if matchLastPathPart(path) {
			externalPkgPaths = append(externalPkgPaths, path)
		}
	}

	if pkg == "" || file.Name.Name == pkg {
		if fi, ok := s.files[file]; ok {
			matchedPkgPaths = append(matchedPkgPaths, fi.PackagePath)
		}
	}

	return
}

func (s *Service) findTypeSpecFromPackagePaths(matchedPkgPaths, externalPkgPaths []string, name string) *domain.TypeSpecDef {
	if s.parseDependency > 0 {
		for _, pkgPath := range externalPkgPaths {
			if err := s.loadExternalPackage(pkgPath); err != nil {
				s.debug.Printf("warning: load %s: %v", pkgPath, err)
				continue
			}
			if typeDef := s.findTypeSpec(pkgPath, name); typeDef != nil {
				return typeDef
			}
		}
	}

	for _, pkgPath := range matchedPkgPaths {
		if typeDef := s.findTypeSpec(pkgPath, name); typeDef != nil {
			return typeDef
		}
	}

	return nil
}
