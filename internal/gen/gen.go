// Package gen runs a generation from a configuration and writes the resulting
// AsyncAPI documents to the output directory.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/neuroglia-io/asyncapi-sub001/internal/config"
	"github.com/neuroglia-io/asyncapi-sub001/internal/console"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/generator"
	"github.com/neuroglia-io/asyncapi-sub001/internal/orchestrator"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/example"
	"sigs.k8s.io/yaml"
)

type genTypeWriter func(outputDir string, doc *orchestrator.Document) (string, error)

// Gen presents a generate tool for AsyncAPI documents.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		debug:      log.New(os.Stdout, "", log.LstdFlags),
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		config.OutputJSON: gen.writeJSON,
		config.OutputYAML: gen.writeYAML,
		"yml":             gen.writeYAML,
	}

	return &gen
}

// SetDebugger replaces the debugger, which defaults to a standard logger on stdout.
func (g *Gen) SetDebugger(debug Debugger) {
	if debug != nil {
		g.debug = debug
	}
}

// Build generates the documents described by cfg and writes them to
// cfg.OutputDir. Documents of the types that succeeded are written even when
// other types fail; the failures are then returned joined.
func (g *Gen) Build(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !cfg.ParseGoPackages {
		for _, searchDir := range cfg.SearchDirs {
			if _, err := os.Stat(searchDir); os.IsNotExist(err) {
				return fmt.Errorf("dir: %s does not exist", searchDir)
			}
		}
	}

	excludes, err := parseExcludes(cfg.Excludes)
	if err != nil {
		return err
	}

	console.Logger.Debug("Generate AsyncAPI documents....")

	orc := orchestrator.New(&orchestrator.Config{
		ParseVendor:        cfg.ParseVendor,
		ParseInternal:      cfg.ParseInternal,
		ParseDependency:    parseDependency(cfg.ParseDependency),
		ParseDepth:         cfg.ParseDepth,
		ParseGoPackages:    cfg.ParseGoPackages,
		PropNamingStrategy: cfg.PropertyStrategy,
		Excludes:           excludes,
		PackagePrefix:      cfg.PackagePrefix,
		Types:              cfg.Types,
		Versions:           cfg.Versions,
		GeneratorOptions:   generatorOptions(cfg),
		Debug:              g.debug,
	})

	result, err := orc.Parse(ctx, cfg.SearchDirs)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return err
	}

	for _, doc := range result.Documents {
		for _, outputType := range cfg.OutputTypes {
			outputType = strings.ToLower(strings.TrimSpace(outputType))
			typeWriter, ok := g.outputTypeMap[outputType]
			if !ok {
				log.Printf("output type '%s' not supported", outputType)
				continue
			}
			if _, err := typeWriter(cfg.OutputDir, doc); err != nil {
				return err
			}
		}
	}

	for _, failure := range result.Failures {
		console.Logger.Error("%v", failure)
	}
	return result.Err()
}

// FileName returns the base name of the files of doc, without extension.
func FileName(doc *orchestrator.Document) string {
	return fmt.Sprintf("%s.asyncapi.v%d", doc.Type.Name(), doc.Major)
}

func (g *Gen) writeJSON(outputDir string, doc *orchestrator.Document) (string, error) {
	jsonFileName := filepath.Join(outputDir, FileName(doc)+".json")

	b, err := g.jsonIndent(doc.Spec)
	if err != nil {
		return "", err
	}

	if err := g.writeFile(b, jsonFileName); err != nil {
		return "", err
	}

	console.Logger.Debug("create %s", jsonFileName)
	return jsonFileName, nil
}

func (g *Gen) writeYAML(outputDir string, doc *orchestrator.Document) (string, error) {
	yamlFileName := filepath.Join(outputDir, FileName(doc)+".yaml")

	b, err := g.json(doc.Spec)
	if err != nil {
		return "", err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return "", fmt.Errorf("cannot covert json to yaml error: %s", err)
	}

	if err := g.writeFile(y, yamlFileName); err != nil {
		return "", err
	}

	console.Logger.Debug("create %s", yamlFileName)
	return yamlFileName, nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}

// generatorOptions maps the example, server and security settings of cfg.
func generatorOptions(cfg *config.Config) []generator.Option {
	options := []generator.Option{
		generator.WithServers(cfg.Servers...),
		generator.WithSecuritySchemes(cfg.SecuritySchemes...),
		generator.WithDefaultContentType(cfg.DefaultContentType),
	}
	if cfg.DisableExamples {
		options = append(options, generator.WithoutExamples())
	}
	if cfg.ExampleSeed != 0 {
		options = append(options, generator.WithExampleGenerator(example.New(example.WithSeed(cfg.ExampleSeed))))
	}
	return options
}

func parseDependency(enabled bool) domain.ParseFlag {
	if enabled {
		return domain.ParseModels
	}
	return domain.ParseNone
}

// parseExcludes converts excluded directories to the absolute paths the loader
// compares against.
func parseExcludes(excludes []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	for _, exclude := range excludes {
		exclude = strings.TrimSpace(exclude)
		if exclude == "" {
			continue
		}
		abs, err := filepath.Abs(exclude)
		if err != nil {
			return nil, err
		}
		result[abs] = struct{}{}
	}
	return result, nil
}
