package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/neuroglia-io/asyncapi-sub001/internal/config"
	"github.com/neuroglia-io/asyncapi-sub001/internal/console"
	"github.com/neuroglia-io/asyncapi-sub001/internal/gen"
	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
)

const (
	configFlag             = "config"
	searchDirFlag          = "dir"
	excludeFlag            = "exclude"
	outputFlag             = "output"
	outputTypesFlag        = "outputTypes"
	versionsFlag           = "asyncapiVersions"
	typesFlag              = "types"
	propertyStrategyFlag   = "propertyStrategy"
	parseVendorFlag        = "parseVendor"
	parseInternalFlag      = "parseInternal"
	parseDependencyFlag    = "parseDependency"
	parseDepthFlag         = "parseDepth"
	parseGoPackagesFlag    = "parseGoPackages"
	packagePrefixFlag      = "packagePrefix"
	disableExamplesFlag    = "disableExamples"
	exampleSeedFlag        = "exampleSeed"
	defaultContentTypeFlag = "defaultContentType"
	quietFlag              = "quiet"
	debugFlag              = "debug"
)

var configFileFlag = &cli.StringFlag{
	Name:    configFlag,
	Aliases: []string{"c"},
	Usage:   "YAML configuration file; flags and " + config.EnvPrefix + "* variables override it",
}

var initFlags = []cli.Flag{
	configFileFlag,
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories you want to parse, comma separated",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories when searching, comma separated",
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for the generated documents",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "json,yaml",
		Usage:   "Output types of generated files like json,yaml",
	},
	&cli.IntSliceFlag{
		Name:    versionsFlag,
		Aliases: []string{"av"},
		Value:   cli.NewIntSlice(3),
		Usage:   "AsyncAPI major versions to generate, 2 and/or 3",
	},
	&cli.StringFlag{
		Name:    typesFlag,
		Aliases: []string{"t"},
		Usage:   "Generate only the named @AsyncAPI types, comma separated",
	},
	&cli.StringFlag{
		Name:    propertyStrategyFlag,
		Aliases: []string{"p"},
		Value:   schema.CamelCase,
		Usage:   "Property Naming Strategy like " + schema.SnakeCase + "," + schema.CamelCase + "," + schema.PascalCase,
	},
	&cli.BoolFlag{
		Name:  parseVendorFlag,
		Usage: "Parse go files in 'vendor' folder, disabled by default",
	},
	&cli.BoolFlag{
		Name:  parseInternalFlag,
		Usage: "Parse go files in internal packages, disabled by default",
	},
	&cli.BoolFlag{
		Name:    parseDependencyFlag,
		Aliases: []string{"pd"},
		Usage:   "Parse payload types declared in dependencies, disabled by default",
	},
	&cli.IntFlag{
		Name:  parseDepthFlag,
		Value: 100,
		Usage: "Dependency parse depth",
	},
	&cli.BoolFlag{
		Name:  parseGoPackagesFlag,
		Usage: "Parse Go sources by golang.org/x/tools/go/packages, disabled by default",
	},
	&cli.StringFlag{
		Name:  packagePrefixFlag,
		Usage: "Parse only packages whose import path match the given prefix, comma separated",
	},
	&cli.BoolFlag{
		Name:  disableExamplesFlag,
		Usage: "Do not synthesize message examples",
	},
	&cli.Int64Flag{
		Name:  exampleSeedFlag,
		Usage: "Seed of the example synthesizer, 0 seeds from the clock",
	},
	&cli.StringFlag{
		Name:  defaultContentTypeFlag,
		Usage: "Default content type of documents whose type declares none",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

// loadConfig reads the configuration file and environment, then applies the
// flags set on the command line.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(configFlag))
	if err != nil {
		return nil, err
	}

	if ctx.IsSet(searchDirFlag) {
		cfg.SearchDirs = splitList(ctx.String(searchDirFlag))
	}
	if ctx.IsSet(excludeFlag) {
		cfg.Excludes = splitList(ctx.String(excludeFlag))
	}
	if ctx.IsSet(outputFlag) {
		cfg.OutputDir = ctx.String(outputFlag)
	}
	if ctx.IsSet(outputTypesFlag) {
		cfg.OutputTypes = splitList(ctx.String(outputTypesFlag))
	}
	if ctx.IsSet(versionsFlag) {
		cfg.Versions = ctx.IntSlice(versionsFlag)
	}
	if ctx.IsSet(typesFlag) {
		cfg.Types = splitList(ctx.String(typesFlag))
	}
	if ctx.IsSet(propertyStrategyFlag) {
		cfg.PropertyStrategy = ctx.String(propertyStrategyFlag)
	}
	if ctx.IsSet(parseVendorFlag) {
		cfg.ParseVendor = ctx.Bool(parseVendorFlag)
	}
	if ctx.IsSet(parseInternalFlag) {
		cfg.ParseInternal = ctx.Bool(parseInternalFlag)
	}
	if ctx.IsSet(parseDependencyFlag) {
		cfg.ParseDependency = ctx.Bool(parseDependencyFlag)
	}
	if ctx.IsSet(parseDepthFlag) {
		cfg.ParseDepth = ctx.Int(parseDepthFlag)
	}
	if ctx.IsSet(parseGoPackagesFlag) {
		cfg.ParseGoPackages = ctx.Bool(parseGoPackagesFlag)
	}
	if ctx.IsSet(packagePrefixFlag) {
		cfg.PackagePrefix = splitList(ctx.String(packagePrefixFlag))
	}
	if ctx.IsSet(disableExamplesFlag) {
		cfg.DisableExamples = ctx.Bool(disableExamplesFlag)
	}
	if ctx.IsSet(exampleSeedFlag) {
		cfg.ExampleSeed = ctx.Int64(exampleSeedFlag)
	}
	if ctx.IsSet(defaultContentTypeFlag) {
		cfg.DefaultContentType = ctx.String(defaultContentTypeFlag)
	}
	if ctx.IsSet(quietFlag) {
		cfg.Quiet = ctx.Bool(quietFlag)
	}
	if ctx.IsSet(debugFlag) {
		cfg.Debug = ctx.Bool(debugFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// builder runs a generation; replaced in tests.
type builder func(ctx context.Context, cfg *config.Config) error

func buildDocuments(ctx context.Context, cfg *config.Config) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	if cfg.Quiet {
		logger = log.New(io.Discard, "", log.LstdFlags)
	}
	if cfg.Debug {
		console.Logger.DebugLevel = console.LevelDebug
	}

	g := gen.New()
	g.SetDebugger(logger)
	return g.Build(ctx, cfg)
}

func newApp(build builder, stdout io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "asyncapi-gen"
	app.Version = gen.Version
	app.Usage = "Automatically generate AsyncAPI documents from annotated Go types."
	app.Writer = stdout
	app.Commands = []*cli.Command{
		{
			Name:    "init",
			Aliases: []string{"i"},
			Usage:   "Generate AsyncAPI documents",
			Flags:   initFlags,
			Action: func(ctx *cli.Context) error {
				cfg, err := loadConfig(ctx)
				if err != nil {
					return err
				}
				return build(ctx.Context, cfg)
			},
		},
		{
			Name:  "config",
			Usage: "Print the effective configuration",
			Flags: initFlags,
			Action: func(ctx *cli.Context) error {
				cfg, err := loadConfig(ctx)
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(ctx.App.Writer)
				enc.SetIndent(2)
				if err := enc.Encode(cfg); err != nil {
					return fmt.Errorf("encode configuration: %w", err)
				}
				return enc.Close()
			},
		},
	}
	return app
}

func main() {
	if err := newApp(buildDocuments, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
