// Package config holds the generator configuration, read from an optional YAML
// file and the ASYNCAPI_GEN_ environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	env "github.com/caarlos0/env/v11"
	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ASYNCAPI_GEN_"

// Output types.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds the generator configuration.
type Config struct {
	// SearchDirs are walked for Go sources.
	SearchDirs []string `yaml:"searchDirs" env:"SEARCH_DIRS"`
	// Excludes are directories skipped while walking.
	Excludes []string `yaml:"excludes" env:"EXCLUDES"`
	// OutputDir receives the generated documents.
	OutputDir string `yaml:"outputDir" env:"OUTPUT_DIR"`
	// OutputTypes lists the serializations written: json, yaml.
	OutputTypes []string `yaml:"outputTypes" env:"OUTPUT_TYPES"`
	// Versions lists the AsyncAPI major versions generated: 2, 3.
	Versions []int `yaml:"versions" env:"VERSIONS"`
	// Types restricts generation to the named types (Name or pkg.Name). Empty means
	// every type carrying @AsyncAPI.
	Types []string `yaml:"types" env:"TYPES"`

	PropertyStrategy string   `yaml:"propertyStrategy" env:"PROPERTY_STRATEGY"`
	ParseVendor      bool     `yaml:"parseVendor" env:"PARSE_VENDOR"`
	ParseInternal    bool     `yaml:"parseInternal" env:"PARSE_INTERNAL"`
	ParseDependency  bool     `yaml:"parseDependency" env:"PARSE_DEPENDENCY"`
	ParseDepth       int      `yaml:"parseDepth" env:"PARSE_DEPTH"`
	ParseGoPackages  bool     `yaml:"parseGoPackages" env:"PARSE_GO_PACKAGES"`
	PackagePrefix    []string `yaml:"packagePrefix" env:"PACKAGE_PREFIX"`

	DisableExamples bool `yaml:"disableExamples" env:"DISABLE_EXAMPLES"`
	// ExampleSeed seeds example synthesis; 0 seeds from the clock.
	ExampleSeed        int64  `yaml:"exampleSeed" env:"EXAMPLE_SEED"`
	DefaultContentType string `yaml:"defaultContentType" env:"DEFAULT_CONTENT_TYPE"`

	// Servers and SecuritySchemes are added to every generated document.
	Servers         []ServerConfig         `yaml:"servers" env:"-"`
	SecuritySchemes []SecuritySchemeConfig `yaml:"securitySchemes" env:"-"`

	Debug bool `yaml:"debug" env:"DEBUG"`
	Quiet bool `yaml:"quiet" env:"QUIET"`
}

// ServerConfig declares a server.
type ServerConfig struct {
	Name            string   `yaml:"name"`
	Host            string   `yaml:"host"`
	Pathname        string   `yaml:"pathname"`
	Protocol        string   `yaml:"protocol"`
	ProtocolVersion string   `yaml:"protocolVersion"`
	Description     string   `yaml:"description"`
	Security        []string `yaml:"security"`
	// Bindings maps a protocol name to its free-form binding object.
	Bindings map[string]map[string]interface{} `yaml:"bindings"`
}

// SecuritySchemeConfig declares a security scheme component.
type SecuritySchemeConfig struct {
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type"`
	Description      string   `yaml:"description"`
	In               string   `yaml:"in"`
	ParamName        string   `yaml:"paramName"`
	Scheme           string   `yaml:"scheme"`
	BearerFormat     string   `yaml:"bearerFormat"`
	OpenIDConnectURL string   `yaml:"openIdConnectUrl"`
	Scopes           []string `yaml:"scopes"`
	// Flow names the oauth2 flow: implicit, password, clientCredentials or
	// authorizationCode.
	Flow             string `yaml:"flow"`
	AuthorizationURL string `yaml:"authorizationUrl"`
	TokenURL         string `yaml:"tokenUrl"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		SearchDirs:       []string{"./"},
		OutputDir:        "./docs",
		OutputTypes:      []string{OutputJSON, OutputYAML},
		Versions:         []int{3},
		PropertyStrategy: schema.CamelCase,
		ParseDepth:       100,
	}
}

// Load reads the configuration: defaults, then the YAML file at path when set,
// then the environment.
func Load(path string) (*Config, error) {
	return LoadWithEnvironment(path, nil)
}

// LoadWithEnvironment is Load reading variables from environ instead of the
// process environment when environ is non-nil.
func LoadWithEnvironment(path string, environ map[string]string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if len(c.SearchDirs) == 0 {
		return fmt.Errorf("no search directory: %w", asyncapi.ErrConfiguration)
	}
	if len(c.Versions) == 0 {
		return fmt.Errorf("no AsyncAPI version requested: %w", asyncapi.ErrConfiguration)
	}
	for _, v := range c.Versions {
		if v != 2 && v != 3 {
			return fmt.Errorf("unsupported AsyncAPI major version %d: %w", v, asyncapi.ErrConfiguration)
		}
	}
	for _, t := range c.OutputTypes {
		if t != OutputJSON && t != OutputYAML {
			return fmt.Errorf("unsupported output type %q: %w", t, asyncapi.ErrConfiguration)
		}
	}
	switch c.PropertyStrategy {
	case schema.CamelCase, schema.SnakeCase, schema.PascalCase:
	default:
		return fmt.Errorf("unknown property strategy %q: %w", c.PropertyStrategy, asyncapi.ErrConfiguration)
	}
	if c.ParseDepth < 0 {
		return fmt.Errorf("negative parse depth: %w", asyncapi.ErrConfiguration)
	}
	seen := map[string]bool{}
	for _, s := range c.Servers {
		if s.Name == "" || s.Host == "" || s.Protocol == "" {
			return fmt.Errorf("server %q needs a name, a host and a protocol: %w", s.Name, asyncapi.ErrConfiguration)
		}
		if seen[s.Name] {
			return fmt.Errorf("server %q declared twice: %w", s.Name, asyncapi.ErrConfiguration)
		}
		seen[s.Name] = true
	}
	for _, s := range c.SecuritySchemes {
		if s.Name == "" || !asyncapi.IsSecuritySchemeType(s.Type) {
			return fmt.Errorf("security scheme %q has type %q: %w", s.Name, s.Type, asyncapi.ErrConfiguration)
		}
		switch s.Flow {
		case "", "implicit", "password", "clientCredentials", "authorizationCode":
		default:
			return fmt.Errorf("security scheme %q has unknown flow %q: %w", s.Name, s.Flow, asyncapi.ErrConfiguration)
		}
	}
	return nil
}
