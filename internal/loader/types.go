// Package loader discovers Go source files, by walking search directories or through
// golang.org/x/tools/go/packages, and parses them for the registry.
package loader

import (
	"go/ast"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"golang.org/x/tools/go/packages"
)

// Service handles loading Go packages and their AST files
type Service struct {
	parseVendor     bool
	parseInternal   bool
	excludes        map[string]struct{}
	packagePrefix   []string
	parseExtension  string
	parseDependency domain.ParseFlag
	debug           Debugger
}

// Debugger interface for logging
type Debugger interface {
	Printf(format string, v ...interface{})
}

// LoadResult contains the results of loading packages
type LoadResult struct {
	Files    map[*ast.File]*domain.AstFileInfo
	Packages []*packages.Package
}

func newLoadResult() *LoadResult {
	return &LoadResult{Files: make(map[*ast.File]*domain.AstFileInfo)}
}

// Merge adds the files of other to r.
func (r *LoadResult) Merge(other *LoadResult) {
	if other == nil {
		return
	}
	for file, info := range other.Files {
		r.Files[file] = info
	}
	r.Packages = append(r.Packages, other.Packages...)
}

// Option is a functional option for configuring Service
type Option func(*Service)

type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
