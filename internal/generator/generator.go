// Package generator builds AsyncAPI documents from Go types annotated with
// @AsyncAPI and from the operation annotations of their methods.
package generator

import (
	"fmt"
	"go/ast"

	"github.com/neuroglia-io/asyncapi-sub001/internal/config"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/example"
)

// Registry provides the type declarations the generator reads.
type Registry interface {
	FindTypeSpec(typeName string, file *ast.File) *domain.TypeSpecDef
	MethodsOf(def *domain.TypeSpecDef) []*domain.MethodDef
	CheckTypeSpec(def *domain.TypeSpecDef) bool
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// Generator turns marked types into AsyncAPI documents.
type Generator struct {
	registry        Registry
	schemas         *schema.Service
	examples        *example.Generator
	disableExamples bool
	servers         []config.ServerConfig
	securitySchemes []config.SecuritySchemeConfig
	contentType     string
	debug           Debugger
}

// Option configures a Generator.
type Option func(*Generator)

// WithExampleGenerator sets the synthesizer used for message examples.
func WithExampleGenerator(examples *example.Generator) Option {
	return func(g *Generator) {
		if examples != nil {
			g.examples = examples
		}
	}
}

// WithoutExamples disables message examples.
func WithoutExamples() Option {
	return func(g *Generator) {
		g.disableExamples = true
	}
}

// WithServers adds servers to every generated document.
func WithServers(servers ...config.ServerConfig) Option {
	return func(g *Generator) {
		g.servers = append(g.servers, servers...)
	}
}

// WithSecuritySchemes adds security scheme components to every generated document.
func WithSecuritySchemes(schemes ...config.SecuritySchemeConfig) Option {
	return func(g *Generator) {
		g.securitySchemes = append(g.securitySchemes, schemes...)
	}
}

// WithDefaultContentType sets the content type of documents whose type declares none.
func WithDefaultContentType(contentType string) Option {
	return func(g *Generator) {
		g.contentType = contentType
	}
}

// WithDebugger sets the debugger.
func WithDebugger(debug Debugger) Option {
	return func(g *Generator) {
		if debug != nil {
			g.debug = debug
		}
	}
}

// New creates a generator reading types from registry and inferring schemas with schemas.
func New(registry Registry, schemas *schema.Service, options ...Option) *Generator {
	g := &Generator{
		registry: registry,
		schemas:  schemas,
		debug:    noOpDebugger{},
	}
	for _, option := range options {
		option(g)
	}
	if g.examples == nil {
		g.examples = example.New()
	}
	return g
}

// Generate builds the document of def for the AsyncAPI major version 2 or 3.
func (g *Generator) Generate(def *domain.TypeSpecDef, major int) (interface{}, error) {
	switch major {
	case 2:
		return g.GenerateV2(def)
	case 3:
		return g.GenerateV3(def)
	}
	return nil, fmt.Errorf("unsupported AsyncAPI major version %d: %w", major, asyncapi.ErrConfiguration)
}

func (g *Generator) documentContentType(model *apiModel) string {
	if model.info.DefaultContentType != "" {
		return model.info.DefaultContentType
	}
	return g.contentType
}

func (g *Generator) documentTitle(model *apiModel) string {
	if model.info.Title != "" {
		return model.info.Title
	}
	return Humanize(model.def.Name())
}

func (g *Generator) documentVersion(model *apiModel) string {
	if model.info.Version != "" {
		return model.info.Version
	}
	return defaultAPIVersion
}

func (g *Generator) documentDescription(model *apiModel) string {
	if model.info.Description != "" {
		return model.info.Description
	}
	return model.doc
}

const defaultAPIVersion = "1.0.0"
