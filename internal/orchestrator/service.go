// Package orchestrator coordinates the loader, the registry and the generator to
// produce the AsyncAPI documents of every marked type found in Go source.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/generator"
	"github.com/neuroglia-io/asyncapi-sub001/internal/loader"
	"github.com/neuroglia-io/asyncapi-sub001/internal/registry"
	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

// Service coordinates all services to generate AsyncAPI documents.
type Service struct {
	loader    *loader.Service
	registry  *registry.Service
	schemas   *schema.Service
	generator *generator.Generator
	config    *Config
	loaded    bool
}

// Config holds orchestrator configuration options.
type Config struct {
	ParseVendor        bool
	ParseInternal      bool
	ParseDependency    domain.ParseFlag
	ParseDepth         int
	ParseGoPackages    bool
	PropNamingStrategy string
	Excludes           map[string]struct{}
	PackagePrefix      []string
	ParseExtension     string
	// Types restricts generation to the named types, matched against the bare or
	// the package qualified type name. Empty means every marked type.
	Types []string
	// Versions lists the AsyncAPI major versions generated for each type.
	Versions         []int
	GeneratorOptions []generator.Option
	Debug            Debugger
}

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// New creates a new orchestrator service with the given configuration.
func New(config *Config) *Service {
	if config == nil {
		config = &Config{}
	}

	if config.PropNamingStrategy == "" {
		config.PropNamingStrategy = schema.CamelCase
	}
	if config.Excludes == nil {
		config.Excludes = make(map[string]struct{})
	}
	if config.ParseExtension == "" {
		config.ParseExtension = ".go"
	}
	if len(config.Versions) == 0 {
		config.Versions = []int{3}
	}
	if config.Debug == nil {
		config.Debug = noOpDebugger{}
	}

	loaderService := loader.NewService(
		loader.WithParseVendor(config.ParseVendor),
		loader.WithParseInternal(config.ParseInternal),
		loader.WithParseDependency(config.ParseDependency),
		loader.WithExcludes(config.Excludes),
		loader.WithPackagePrefix(config.PackagePrefix),
		loader.WithParseExtension(config.ParseExtension),
		loader.WithDebugger(config.Debug),
	)

	registryService := registry.NewService()
	registryService.SetParseDependency(config.ParseDependency)
	registryService.SetDebugger(config.Debug)

	schemaService := schema.NewService(registryService)
	schemaService.SetPropNamingStrategy(config.PropNamingStrategy)

	options := append([]generator.Option{generator.WithDebugger(config.Debug)}, config.GeneratorOptions...)

	return &Service{
		loader:    loaderService,
		registry:  registryService,
		schemas:   schemaService,
		generator: generator.New(registryService, schemaService, options...),
		config:    config,
	}
}

// Load loads the Go files below searchDirs, with their dependencies when
// configured, and registers their declarations.
func (s *Service) Load(searchDirs []string) error {
	s.config.Debug.Printf("Orchestrator: loading %d search dirs", len(searchDirs))

	var result *loader.LoadResult
	var err error
	if s.config.ParseGoPackages {
		result, err = s.loader.LoadWithGoPackages(searchDirs)
		if err != nil {
			return fmt.Errorf("failed to load packages with go/packages: %w", err)
		}
	} else {
		result, err = s.loader.LoadSearchDirs(searchDirs)
		if err != nil {
			return fmt.Errorf("failed to load search directories: %w", err)
		}
		if s.config.ParseDepth > 0 && s.config.ParseDependency != domain.ParseNone {
			deps, err := s.loader.LoadDependencies(searchDirs, s.config.ParseDepth)
			if err != nil {
				return fmt.Errorf("failed to load dependencies: %w", err)
			}
			result.Merge(deps)
		}
	}
	return s.register(result)
}

// LoadSource registers a single in-memory source file under packagePath.
func (s *Service) LoadSource(packagePath, path string, src interface{}) error {
	result, err := s.loader.LoadSource(packagePath, path, src)
	if err != nil {
		return err
	}
	return s.register(result)
}

func (s *Service) register(result *loader.LoadResult) error {
	if s.loaded {
		return fmt.Errorf("sources must be loaded before generating: %w", asyncapi.ErrConfiguration)
	}
	for astFile, fileInfo := range result.Files {
		err := s.registry.CollectAstFile(fileInfo.FileSet, fileInfo.PackagePath, fileInfo.Path, astFile, fileInfo.ParseFlag)
		if err != nil {
			return fmt.Errorf("failed to collect AST file %s: %w", fileInfo.Path, err)
		}
	}
	s.registry.AddPackages(result.Packages)
	s.config.Debug.Printf("Orchestrator: collected %d files", len(result.Files))
	return nil
}

// Generate builds the documents of every marked type for every configured
// version. Types are generated one at a time; a failing type is recorded in the
// result and does not prevent the others. The returned error is only set when
// ctx ends or the registry cannot be built.
func (s *Service) Generate(ctx context.Context) (*Result, error) {
	if !s.loaded {
		if err := s.registry.ParseTypes(); err != nil {
			return nil, fmt.Errorf("failed to parse types: %w", err)
		}
		s.loaded = true
	}

	candidates, missing := s.candidates()
	marked, failures, err := s.scan(ctx, candidates)
	if err != nil {
		return nil, err
	}
	failures = append(failures, s.unmatched(candidates, marked, failures, missing)...)
	sortFailures(failures)
	s.config.Debug.Printf("Orchestrator: found %d marked types", len(marked))

	result := &Result{Failures: failures}
	for _, def := range marked {
		for _, major := range s.config.Versions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			doc, err := s.generator.Generate(def, major)
			if err != nil {
				s.config.Debug.Printf("Orchestrator: %s v%d: %v", def.TypeName(), major, err)
				result.Failures = append(result.Failures, &Failure{Type: def.TypeName(), Major: major, Err: err})
				continue
			}
			result.Documents = append(result.Documents, &Document{Type: def, Major: major, Spec: doc})
		}
	}
	return result, nil
}

// Parse loads searchDirs and generates their documents.
func (s *Service) Parse(ctx context.Context, searchDirs []string) (*Result, error) {
	if err := s.Load(searchDirs); err != nil {
		return nil, err
	}
	return s.Generate(ctx)
}

// candidates lists the registered types selected by the Types filter, and the
// requested names that match no registered type.
func (s *Service) candidates() ([]*domain.TypeSpecDef, []string) {
	all := s.registry.Types()
	if len(s.config.Types) == 0 {
		return all, nil
	}
	found := make(map[string]bool, len(s.config.Types))
	for _, name := range s.config.Types {
		found[name] = false
	}
	var out []*domain.TypeSpecDef
	for _, def := range all {
		_, byName := found[def.Name()]
		_, byTypeName := found[def.TypeName()]
		if byName {
			found[def.Name()] = true
		}
		if byTypeName {
			found[def.TypeName()] = true
		}
		if byName || byTypeName {
			out = append(out, def)
		}
	}
	var missing []string
	for _, name := range s.config.Types {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	return out, missing
}

// unmatched reports the explicitly requested types that cannot be generated:
// names matching no type, and types without the @AsyncAPI marker. Without a
// Types filter unmarked types are simply skipped.
func (s *Service) unmatched(candidates, marked []*domain.TypeSpecDef, failures []*Failure, missing []string) []*Failure {
	if len(s.config.Types) == 0 {
		return nil
	}
	var out []*Failure
	for _, name := range missing {
		out = append(out, &Failure{
			Type: name,
			Err:  fmt.Errorf("no type named %q: %w", name, asyncapi.ErrConfiguration),
		})
	}

	reported := make(map[string]bool, len(marked)+len(failures))
	for _, def := range marked {
		reported[def.TypeName()] = true
	}
	for _, f := range failures {
		reported[f.Type] = true
	}
	for _, def := range candidates {
		if reported[def.TypeName()] {
			continue
		}
		out = append(out, &Failure{
			Type: def.TypeName(),
			Err:  fmt.Errorf("%s is not marked with @AsyncAPI: %w", def.Name(), asyncapi.ErrConfiguration),
		})
	}
	return out
}

// Registry returns the registry service for external access.
func (s *Service) Registry() *registry.Service {
	return s.registry
}

// Document is a generated document and the type it describes.
type Document struct {
	Type  *domain.TypeSpecDef
	Major int
	// Spec is a *v2.Document or a *v3.Document.
	Spec interface{}
}

// Failure is the error of one type and version.
type Failure struct {
	Type string
	// Major is 0 when the type annotations could not be read.
	Major int
	Err   error
}

func (f *Failure) Error() string {
	if f.Major == 0 {
		return fmt.Sprintf("%s: %v", f.Type, f.Err)
	}
	return fmt.Sprintf("%s (v%d): %v", f.Type, f.Major, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Result holds the outcome of a generation run.
type Result struct {
	Documents []*Document
	Failures  []*Failure
}

// Err joins every failure, or returns nil when all types were generated.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Find returns the document of the named type and version.
func (r *Result) Find(typeName string, major int) *Document {
	for _, d := range r.Documents {
		if d.Major == major && (d.Type.Name() == typeName || d.Type.TypeName() == typeName) {
			return d
		}
	}
	return nil
}

func sortFailures(failures []*Failure) {
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].Type < failures[j].Type
	})
}
