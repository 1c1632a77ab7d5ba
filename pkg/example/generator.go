// Package example synthesizes illustrative values for JSON-Schema shaped payloads.
package example

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
)

const (
	defaultArrayLength = 3
	arrayLengthCap     = 5
	maxArrayLength     = 100
	integerUpperBound  = 100
	numberUpperBound   = 10
)

// Placeholders returned for string formats.
const (
	PlaceholderEmail       = "user@example.com"
	PlaceholderHostname    = "example.com"
	PlaceholderIPv4        = "192.0.2.1"
	PlaceholderIPv6        = "2001:db8::1"
	PlaceholderURI         = "https://example.com"
	PlaceholderURIRef      = "/resources/1"
	PlaceholderURITemplate = "https://example.com/{id}"
	PlaceholderRegex       = "^[a-z]+$"
	PlaceholderDuration    = "PT1S"
	PlaceholderString      = "string"
	PlaceholderUUID        = "3fa85f64-5717-4562-b3fc-2c963f66afa6"
)

var (
	defaultObjectOnce   sync.Once
	defaultObjectSchema *spec.Schema
)

// DefaultObjectSchema returns the stand-in shape used for objects and array items
// that declare nothing. The schema is shared and must not be mutated.
func DefaultObjectSchema() *spec.Schema {
	defaultObjectOnce.Do(func() {
		defaultObjectSchema = &spec.Schema{
			SchemaProps: spec.SchemaProps{
				Type: spec.StringOrArray{"object"},
				Properties: spec.SchemaProperties{
					"property1": *spec.StringProperty(),
					"property2": *spec.Int32Property(),
					"property3": *spec.BoolProperty(),
				},
			},
		}
	})
	return defaultObjectSchema
}

// Generator synthesizes example values. A Generator is not safe for concurrent use.
type Generator struct {
	rand *rand.Rand
	now  func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed seeds the random source so output is reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rand = r
		}
	}
}

// WithClock sets the clock used for date-time values.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New creates a Generator. Without WithSeed or WithRand it is seeded from the clock.
func New(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.rand == nil {
		g.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

var (
	sharedMu  sync.Mutex
	sharedGen *Generator
)

// Generate synthesizes an example with a process-wide generator.
func Generate(schema *spec.Schema, requiredPropertiesOnly bool) (interface{}, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedGen == nil {
		sharedGen = New()
	}
	return sharedGen.Generate(schema, requiredPropertiesOnly)
}

// Generate returns a value structurally consistent with schema. When
// requiredPropertiesOnly is set, objects only carry their required properties.
func (g *Generator) Generate(schema *spec.Schema, requiredPropertiesOnly bool) (interface{}, error) {
	if schema == nil {
		return nil, fmt.Errorf("generate example: schema is nil: %w", asyncapi.ErrInvalidArgument)
	}
	return g.generate(schema, requiredPropertiesOnly), nil
}

func (g *Generator) generate(schema *spec.Schema, requiredOnly bool) interface{} {
	if v, ok := schema.ExtraProps["const"]; ok {
		return v
	}
	if len(schema.Enum) > 0 {
		return schema.Enum[0]
	}
	if v, ok := firstExample(schema); ok {
		return v
	}

	switch valueType(schema) {
	case "array":
		return g.array(schema, requiredOnly)
	case "boolean":
		return g.rand.Intn(2) == 1
	case "integer":
		return int64(g.rand.Intn(integerUpperBound))
	case "number":
		return g.number(schema)
	case "object":
		return g.object(schema, requiredOnly)
	case "string":
		return g.str(schema)
	default:
		return nil
	}
}

func firstExample(schema *spec.Schema) (interface{}, bool) {
	if raw, ok := schema.ExtraProps["examples"]; ok {
		if list, ok := raw.([]interface{}); ok && len(list) > 0 {
			return list[0], true
		}
	}
	if schema.Example != nil {
		return schema.Example, true
	}
	return nil, false
}

// valueType returns the first declared type other than null.
func valueType(schema *spec.Schema) string {
	for _, t := range schema.Type {
		if t != "null" {
			return t
		}
	}
	return ""
}

func (g *Generator) array(schema *spec.Schema, requiredOnly bool) []interface{} {
	length := defaultArrayLength
	if schema.MinItems != nil && *schema.MinItems > 0 {
		length = maxArrayLength
		if *schema.MinItems < maxArrayLength {
			length = int(*schema.MinItems)
		}
	}
	// maxItems below the cap wins even over a larger minItems.
	if schema.MaxItems != nil && *schema.MaxItems < arrayLengthCap {
		length = int(*schema.MaxItems)
	}
	if length < 0 {
		length = 0
	}

	items := DefaultObjectSchema()
	if schema.Items != nil && schema.Items.Schema != nil {
		items = schema.Items.Schema
	} else if schema.Items != nil && len(schema.Items.Schemas) > 0 {
		items = &schema.Items.Schemas[0]
	}

	out := make([]interface{}, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, g.generate(items, requiredOnly))
	}
	return out
}

// number draws from [minItems, maxItems), defaulting to [0, 10).
func (g *Generator) number(schema *spec.Schema) float64 {
	lo, hi := 0.0, float64(numberUpperBound)
	if schema.MinItems != nil {
		lo = float64(*schema.MinItems)
	}
	if schema.MaxItems != nil {
		hi = float64(*schema.MaxItems)
	}
	v := lo + g.rand.Float64()*(hi-lo)
	return math.Round(v*100) / 100
}

func (g *Generator) object(schema *spec.Schema, requiredOnly bool) map[string]interface{} {
	if len(schema.Properties) == 0 {
		if requiredOnly {
			return map[string]interface{}{}
		}
		schema = DefaultObjectSchema()
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	out := make(map[string]interface{}, len(schema.Properties))
	for _, name := range asyncapi.SortedKeys(schema.Properties) {
		if requiredOnly && !required[name] {
			continue
		}
		prop := schema.Properties[name]
		out[name] = g.generate(&prop, requiredOnly)
	}
	return out
}

func (g *Generator) str(schema *spec.Schema) string {
	switch schema.Format {
	case "":
		return PlaceholderString
	case "date-time":
		return g.now().Format(time.RFC3339Nano)
	case "duration":
		return PlaceholderDuration
	case "email", "idn-email":
		return PlaceholderEmail
	case "hostname", "idn-hostname":
		return PlaceholderHostname
	case "ipv4":
		return PlaceholderIPv4
	case "ipv6":
		return PlaceholderIPv6
	case "uri", "iri":
		return PlaceholderURI
	case "uri-reference", "iri-reference":
		return PlaceholderURIRef
	case "uri-template":
		return PlaceholderURITemplate
	case "regex", "regular-expression":
		return PlaceholderRegex
	case "uuid":
		return PlaceholderUUID
	default:
		return PlaceholderString
	}
}
