package loader

import "github.com/neuroglia-io/asyncapi-sub001/internal/domain"

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		excludes:        make(map[string]struct{}),
		packagePrefix:   []string{},
		parseExtension:  ".go",
		parseDependency: domain.ParseNone,
		debug:           &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithParseVendor sets whether to parse vendor directories
func WithParseVendor(parse bool) Option {
	return func(s *Service) {
		s.parseVendor = parse
	}
}

// WithParseInternal sets whether standard library dependencies are parsed
func WithParseInternal(parse bool) Option {
	return func(s *Service) {
		s.parseInternal = parse
	}
}

// WithExcludes sets excluded directories, as absolute paths
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		if excludes != nil {
			s.excludes = excludes
		}
	}
}

// WithPackagePrefix sets package path prefixes to filter
func WithPackagePrefix(prefixes []string) Option {
	return func(s *Service) {
		s.packagePrefix = prefixes
	}
}

// WithParseExtension sets the file extension to parse
func WithParseExtension(ext string) Option {
	return func(s *Service) {
		if ext != "" {
			s.parseExtension = ext
		}
	}
}

// WithParseDependency sets the dependency parsing flag
func WithParseDependency(flag domain.ParseFlag) Option {
	return func(s *Service) {
		s.parseDependency = flag
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}
