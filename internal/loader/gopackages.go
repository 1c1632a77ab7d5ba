package loader

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"golang.org/x/tools/go/packages"
)

// LoadWithGoPackages loads the packages below searchDirs using go/packages.
func (s *Service) LoadWithGoPackages(searchDirs []string) (*LoadResult, error) {
	mode := packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedImports |
		packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo
	if s.parseDependency > 0 {
		mode |= packages.NeedDeps
	}

	patterns := make([]string, 0, len(searchDirs))
	for _, dir := range searchDirs {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, absDir+"/...")
	}

	fset := token.NewFileSet()
	pkgs, err := packages.Load(&packages.Config{
		Mode: mode,
		Fset: fset,
	}, patterns...)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, fmt.Errorf("load package %s: %w", pkg.PkgPath, e)
		}
	}

	result := newLoadResult()
	result.Packages = pkgs

	seen := make(map[string]struct{})
	if err := s.walkPackages(pkgs, fset, result, pkgs, seen); err != nil {
		return nil, err
	}

	s.debug.Printf("loaded %d files from %d packages", len(result.Files), len(pkgs))
	return result, nil
}

func (s *Service) walkPackages(pkgs []*packages.Package, fset *token.FileSet, result *LoadResult, rootPkgs []*packages.Package, pkgSeen map[string]struct{}) error {
	for _, pkg := range pkgs {
		if s.skipPackageByPrefix(pkg.PkgPath) {
			continue
		}
		if _, ok := pkgSeen[pkg.PkgPath]; ok {
			continue
		}
		pkgSeen[pkg.PkgPath] = struct{}{}

		parseFlag := domain.ParseAll
		if !contains(rootPkgs, pkg) {
			parseFlag = s.parseDependency
		}

		for i, file := range pkg.CompiledGoFiles {
			if i >= len(pkg.Syntax) {
				break
			}
			fileInfo, err := os.Stat(file)
			if err != nil {
				return err
			}
			if s.shouldSkipDir(file, fileInfo) != nil || s.shouldSkipFile(file) {
				continue
			}

			result.Files[pkg.Syntax[i]] = &domain.AstFileInfo{
				File:        pkg.Syntax[i],
				Path:        file,
				PackagePath: pkg.PkgPath,
				ParseFlag:   parseFlag,
				FileSet:     fset,
			}
		}

		if s.parseDependency > 0 {
			imports := make([]*packages.Package, 0, len(pkg.Imports))
			for _, dep := range pkg.Imports {
				imports = append(imports, dep)
			}
			if err := s.walkPackages(imports, fset, result, rootPkgs, pkgSeen); err != nil {
				return err
			}
		}
	}
	return nil
}

func contains(pkgs []*packages.Package, pkg *packages.Package) bool {
	for _, p := range pkgs {
		if p == pkg {
			return true
		}
	}
	return false
}
