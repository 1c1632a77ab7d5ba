// Package registry provides centralized management of type and package registries.
// It handles type discovery, method indexing and lookup across Go packages.
package registry

import (
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"golang.org/x/tools/go/packages"
)

// Service manages package, type and method registries for document generation.
type Service struct {
	files             map[*ast.File]*domain.AstFileInfo
	packages          map[string]*domain.PackageDefinitions
	uniqueDefinitions map[string]*domain.TypeSpecDef
	methods           map[*domain.TypeSpecDef][]*domain.MethodDef
	parseDependency   domain.ParseFlag
	debug             Debugger
}

// NewService creates a new registry service.
func NewService() *Service {
	return &Service{
		files:             make(map[*ast.File]*domain.AstFileInfo),
		packages:          make(map[string]*domain.PackageDefinitions),
		uniqueDefinitions: make(map[string]*domain.TypeSpecDef),
		methods:           make(map[*domain.TypeSpecDef][]*domain.MethodDef),
		debug:             noOpDebugger{},
	}
}

// SetParseDependency sets the parse dependency flag.
func (s *Service) SetParseDependency(flag domain.ParseFlag) {
	s.parseDependency = flag
}

// SetDebugger sets the debugger.
func (s *Service) SetDebugger(debug Debugger) {
	if debug != nil {
		s.debug = debug
	}
}

// CollectAstFile collects an ast.File.
func (s *Service) CollectAstFile(fileSet *token.FileSet, packageDir, path string, astFile *ast.File, flag domain.ParseFlag) error {
	if astFile == nil {
		return fmt.Errorf("collect %s: nil file", path)
	}

	// files outside any package cannot be addressed by import path
	if packageDir == "" {
		return nil
	}

	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if pkg, ok := s.packages[packageDir]; ok {
		if _, exists := pkg.Files[path]; exists {
			return nil
		}
		pkg.AddFile(path, astFile)
	} else {
		s.packages[packageDir] = domain.NewPackageDefinitions(astFile.Name.Name, packageDir).AddFile(path, astFile)
	}

	s.files[astFile] = &domain.AstFileInfo{
		FileSet:     fileSet,
		File:        astFile,
		Path:        path,
		PackagePath: packageDir,
		ParseFlag:   flag,
	}

	return nil
}

// RangeFiles iterates over files in alphabetic order.
func (s *Service) RangeFiles(handle func(info *domain.AstFileInfo) error) error {
	sortedFiles := make([]*domain.AstFileInfo, 0, len(s.files))
	for _, info := range s.files {
		// vendored and GOROOT files never declare AsyncAPI types
		if strings.HasPrefix(info.PackagePath, "vendor") ||
			(runtime.GOROOT() != "" && strings.HasPrefix(info.Path, runtime.GOROOT()+string(filepath.Separator))) {
			continue
		}
		sortedFiles = append(sortedFiles, info)
	}

	sort.Slice(sortedFiles, func(i, j int) bool {
		return sortedFiles[i].Path < sortedFiles[j].Path
	})

	for _, info := range sortedFiles {
		if err := handle(info); err != nil {
			return err
		}
	}

	return nil
}

// AddPackages attaches type-checked packages to the registered package definitions.
func (s *Service) AddPackages(pkgs []*packages.Package) {
	for _, pkg := range pkgs {
		pkgDef, ok := s.packages[pkg.PkgPath]
		if !ok || pkgDef.Package != nil {
			continue
		}
		pkgDef.Package = pkg
		imports := make([]*packages.Package, 0, len(pkg.Imports))
		for _, dep := range pkg.Imports {
			imports = append(imports, dep)
		}
		s.AddPackages(imports)
	}
}

// UniqueDefinitions returns the unique type definitions map.
func (s *Service) UniqueDefinitions() map[string]*domain.TypeSpecDef {
	return s.uniqueDefinitions
}

// Packages returns the packages map.
func (s *Service) Packages() map[string]*domain.PackageDefinitions {
	return s.packages
}

// Files returns the files map.
func (s *Service) Files() map[*ast.File]*domain.AstFileInfo {
	return s.files
}

// FileInfo returns the registration of file.
func (s *Service) FileInfo(file *ast.File) (*domain.AstFileInfo, bool) {
	info, ok := s.files[file]
	return info, ok
}
