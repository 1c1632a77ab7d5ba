package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KyleBanks/depth"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
)

// LoadDependencies loads the sources of the packages imported by dirs, up to
// maxDepth levels, so payload types declared in dependencies can be resolved.
func (s *Service) LoadDependencies(dirs []string, maxDepth int) (*LoadResult, error) {
	result := newLoadResult()
	if s.parseDependency == domain.ParseNone {
		return result, nil
	}

	dirImported := make(map[string]struct{})
	for _, dir := range dirs {
		absDir, err := filepath.Abs(dir)
		if err == nil {
			dirImported[absDir] = struct{}{}
		}
	}

	for index, dir := range dirs {
		var t depth.Tree
		t.ResolveInternal = true
		t.MaxDepth = maxDepth

		pkgName, err := getPkgName(dir)
		if err != nil {
			if index == 0 {
				return nil, err
			}
			continue
		}

		err = t.Resolve(pkgName)
		if err != nil {
			return nil, fmt.Errorf("pkg %s cannot find all dependencies, %s", pkgName, err)
		}

		for i := 0; i < len(t.Root.Deps); i++ {
			err := s.loadFromDepth(&t.Root.Deps[i], dirImported, result)
			if err != nil {
				return nil, err
			}
		}
	}

	s.debug.Printf("loaded %d dependency files", len(result.Files))
	return result, nil
}

// loadFromDepth loads dependencies from depth tree
func (s *Service) loadFromDepth(pkg *depth.Pkg, dirImported map[string]struct{}, result *LoadResult) error {
	ignoreInternal := pkg.Internal && !s.parseInternal
	if ignoreInternal || !pkg.Resolved || pkg.Raw == nil {
		return nil
	}

	if s.skipPackageByPrefix(pkg.Raw.ImportPath) {
		return nil
	}

	srcDir := pkg.Raw.Dir
	if _, ok := dirImported[srcDir]; ok {
		return nil
	}
	dirImported[srcDir] = struct{}{}

	files, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if f.IsDir() {
			continue
		}

		path := filepath.Join(srcDir, f.Name())
		if err := s.parseFile(pkg.Raw.ImportPath, path, nil, s.parseDependency, result); err != nil {
			return err
		}
	}

	for i := 0; i < len(pkg.Deps); i++ {
		if err := s.loadFromDepth(&pkg.Deps[i], dirImported, result); err != nil {
			return err
		}
	}

	return nil
}
