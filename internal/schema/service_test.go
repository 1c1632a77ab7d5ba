package schema

import (
	"encoding/json"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileResolver resolves the types declared in a single parsed file.
type fileResolver struct {
	file  *ast.File
	types map[string]*domain.TypeSpecDef
}

func newFileResolver(t *testing.T, src string) *fileResolver {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "events.go", src, parser.ParseComments)
	require.NoError(t, err)

	r := &fileResolver{file: file, types: map[string]*domain.TypeSpecDef{}}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, s := range gen.Specs {
			ts := s.(*ast.TypeSpec)
			r.types[ts.Name.Name] = &domain.TypeSpecDef{File: file, TypeSpec: ts, Doc: gen.Doc, PkgPath: "example.com/events"}
		}
	}
	return r
}

func (r *fileResolver) FindTypeSpec(typeName string, _ *ast.File) *domain.TypeSpecDef {
	return r.types[typeName]
}

const eventsSrc = `package events

import (
	"encoding/json"
	stdtime "time"

	"github.com/google/uuid"
)

// LightMeasuredEvent carries a measurement.
type LightMeasuredEvent struct {
	ID     int          ` + "`json:\"id\"`" + `
	Lumens int          ` + "`json:\"lumens\" validate:\"min=0,max=1000\"`" + `
	SentAt stdtime.Time ` + "`json:\"sentAt\"`" + `
}

// Level of a light.
type Level string

type Envelope struct {
	Base
	// Kind of envelope.
	Kind     Level             ` + "`json:\"kind\" validate:\"oneof=low high\"`" + `
	TraceID  uuid.UUID         ` + "`json:\"traceId\"`" + `
	Note     *string           ` + "`json:\"note\"`" + `
	Tags     []string          ` + "`json:\"tags,omitempty\" example:\"a,b\" validate:\"max=3\"`" + `
	Labels   map[string]int    ` + "`json:\"labels\" validate:\"required\"`" + `
	Raw      json.RawMessage   ` + "`json:\"raw\"`" + `
	Data     []byte            ` + "`json:\"data\"`" + `
	Timeout  stdtime.Duration  ` + "`json:\"timeout\"`" + `
	Count    int64             ` + "`json:\"count\" minimum:\"1\" maximum:\"5\" default:\"2\"`" + `
	Hidden   string            ` + "`json:\"-\"`" + `
	Custom   string            ` + "`json:\"custom\" schematype:\"array,integer\"`" + `
	Email    string            ` + "`json:\"email\" validate:\"email\"`" + `
	Payload  any               ` + "`json:\"payload\"`" + `
	secret   string
	Children []*Envelope       ` + "`json:\"children\"`" + `
	NoTag    bool
}

type Base struct {
	Version string ` + "`json:\"version\"`" + `
}
`

func TestService_SchemaFor(t *testing.T) {
	r := newFileResolver(t, eventsSrc)
	svc := NewService(r)

	t.Run("light measured event", func(t *testing.T) {
		schema, err := svc.TypeSchema(r.types["LightMeasuredEvent"])

		require.NoError(t, err)
		assert.Equal(t, spec.StringOrArray{"object"}, schema.Type)
		assert.Equal(t, []string{"id", "lumens", "sentAt"}, schema.Required)
		assert.Equal(t, "LightMeasuredEvent carries a measurement.", schema.Description)
		assert.Equal(t, "date-time", schema.Properties["sentAt"].Format)
		lumens := schema.Properties["lumens"]
		require.NotNil(t, lumens.Minimum)
		assert.Equal(t, 0.0, *lumens.Minimum)
		assert.Equal(t, 1000.0, *lumens.Maximum)
	})

	schema, err := svc.TypeSchema(r.types["Envelope"])
	require.NoError(t, err)
	props := schema.Properties

	t.Run("required fields", func(t *testing.T) {
		assert.ElementsMatch(t, []string{
			"kind", "traceId", "labels", "raw", "data", "timeout", "count",
			"custom", "email", "children", "noTag", "version",
		}, schema.Required)
	})

	t.Run("field types", func(t *testing.T) {
		tests := []struct {
			prop   string
			types  spec.StringOrArray
			format string
		}{
			{"kind", spec.StringOrArray{"string"}, ""},
			{"traceId", spec.StringOrArray{"string"}, "uuid"},
			{"note", spec.StringOrArray{"string", "null"}, ""},
			{"tags", spec.StringOrArray{"array"}, ""},
			{"labels", spec.StringOrArray{"object"}, ""},
			{"data", spec.StringOrArray{"string"}, "byte"},
			{"timeout", spec.StringOrArray{"string"}, "duration"},
			{"count", spec.StringOrArray{"integer"}, "int64"},
			{"custom", spec.StringOrArray{"array"}, ""},
			{"email", spec.StringOrArray{"string"}, "email"},
			{"children", spec.StringOrArray{"array"}, ""},
			{"noTag", spec.StringOrArray{"boolean"}, ""},
			{"version", spec.StringOrArray{"string"}, ""},
		}
		for _, tt := range tests {
			t.Run(tt.prop, func(t *testing.T) {
				prop, ok := props[tt.prop]
				require.True(t, ok)
				assert.Equal(t, tt.types, prop.Type)
				assert.Equal(t, tt.format, prop.Format)
			})
		}
	})

	t.Run("untyped schemas", func(t *testing.T) {
		assert.Empty(t, props["raw"].Type)
		assert.Empty(t, props["payload"].Type)
	})

	t.Run("skipped fields", func(t *testing.T) {
		assert.NotContains(t, props, "hidden")
		assert.NotContains(t, props, "Hidden")
		assert.NotContains(t, props, "secret")
	})

	t.Run("tags", func(t *testing.T) {
		assert.Equal(t, []interface{}{"low", "high"}, props["kind"].Enum)
		assert.Equal(t, "Kind of envelope.", props["kind"].Description)
		assert.Equal(t, []interface{}{"a", "b"}, props["tags"].Example)
		require.NotNil(t, props["tags"].MaxItems)
		assert.Equal(t, int64(3), *props["tags"].MaxItems)
		assert.Equal(t, int64(2), props["count"].Default)
		assert.Equal(t, 1.0, *props["count"].Minimum)
		assert.Equal(t, 5.0, *props["count"].Maximum)
		assert.Equal(t, spec.StringOrArray{"integer"}, props["custom"].Items.Schema.Type)
		assert.Equal(t, spec.StringOrArray{"integer"}, props["labels"].AdditionalProperties.Schema.Type)
	})

	t.Run("recursion is cut", func(t *testing.T) {
		items := props["children"].Items.Schema
		assert.Equal(t, spec.StringOrArray{"object", "null"}, items.Type)
		assert.Empty(t, items.Properties)
	})

	t.Run("serializes", func(t *testing.T) {
		_, err := json.Marshal(schema)
		assert.NoError(t, err)
	})
}

func TestService_Errors(t *testing.T) {
	r := newFileResolver(t, `package events

type Broken struct {
	Missing Unknown
	Fn      func()
}

type Callback struct {
	Fn func()
}
`)
	svc := NewService(r)

	_, err := svc.TypeSchema(r.types["Broken"])
	assert.True(t, errors.Is(err, asyncapi.ErrNotFound), "got %v", err)

	_, err = svc.TypeSchema(r.types["Callback"])
	assert.ErrorIs(t, err, asyncapi.ErrConfiguration)

	_, err = svc.TypeSchema(nil)
	assert.ErrorIs(t, err, asyncapi.ErrInvalidArgument)
}

func TestService_UUIDTagValues(t *testing.T) {
	r := newFileResolver(t, `package events

import "github.com/google/uuid"

type Device struct {
	ID     uuid.UUID `+"`json:\"id\" example:\"{6BA7B810-9DAD-11D1-80B4-00C04FD430C8}\"`"+`
	Owner  string    `+"`json:\"owner\" format:\"uuid\" default:\"urn:uuid:6ba7b811-9dad-11d1-80b4-00c04fd430c8\"`"+`
	Parent string    `+"`json:\"parent\" validate:\"uuid\" enums:\"6BA7B812-9DAD-11D1-80B4-00C04FD430C8\"`"+`
	Name   string    `+"`json:\"name\" example:\"{not-a-uuid}\"`"+`
}

type BadDevice struct {
	ID uuid.UUID `+"`json:\"id\" example:\"device-1\"`"+`
}
`)
	svc := NewService(r)

	t.Run("canonicalizes uuid values", func(t *testing.T) {
		schema, err := svc.TypeSchema(r.types["Device"])
		require.NoError(t, err)

		props := schema.Properties
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", props["id"].Example)
		assert.Equal(t, "6ba7b811-9dad-11d1-80b4-00c04fd430c8", props["owner"].Default)
		assert.Equal(t, "uuid", props["parent"].Format)
		assert.Equal(t, []interface{}{"6ba7b812-9dad-11d1-80b4-00c04fd430c8"}, props["parent"].Enum)
		assert.Equal(t, "{not-a-uuid}", props["name"].Example)
	})

	t.Run("rejects values that are not uuids", func(t *testing.T) {
		_, err := svc.TypeSchema(r.types["BadDevice"])

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"device-1" is not a uuid`)
	})

	t.Run("parameter defaults", func(t *testing.T) {
		value, err := ParseValue("{6BA7B813-9DAD-11D1-80B4-00C04FD430C8}", spec.StrFmtProperty("uuid"))
		require.NoError(t, err)
		assert.Equal(t, "6ba7b813-9dad-11d1-80b4-00c04fd430c8", value)

		_, err = ParseValue("light-1", spec.StrFmtProperty("uuid"))
		assert.Error(t, err)
	})
}

func TestService_NamingStrategy(t *testing.T) {
	r := newFileResolver(t, `package events

type Reading struct {
	SensorID string
	RawValue float64
}
`)
	tests := []struct {
		strategy string
		want     []string
	}{
		{CamelCase, []string{"sensorID", "rawValue"}},
		{SnakeCase, []string{"sensor_id", "raw_value"}},
		{PascalCase, []string{"SensorID", "RawValue"}},
	}
	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			svc := NewService(r)
			svc.SetPropNamingStrategy(tt.strategy)

			schema, err := svc.TypeSchema(r.types["Reading"])

			require.NoError(t, err)
			assert.Equal(t, tt.want, schema.Required)
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"Event", "Event"},
		{"*Event", "Event"},
		{"model.Event", "model.Event"},
		{"Page[Event]", "Page"},
		{"[]Event", ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, TypeName(expr))
		})
	}
}

func TestIsNullableExpr(t *testing.T) {
	for src, want := range map[string]bool{
		"*int":           true,
		"any":            true,
		"interface{}":    true,
		"int":            false,
		"[]string":       false,
		"time.Time":      false,
		"map[string]int": false,
	} {
		expr, err := parser.ParseExpr(src)
		require.NoError(t, err)
		assert.Equal(t, want, IsNullableExpr(expr), src)
	}
}

func TestBuildCustomSchema(t *testing.T) {
	tests := []struct {
		name    string
		types   []string
		want    spec.StringOrArray
		wantErr bool
	}{
		{"primitive", []string{"string"}, spec.StringOrArray{"string"}, false},
		{"primitive keyword", []string{"primitive", "integer"}, spec.StringOrArray{"integer"}, false},
		{"array", []string{"array", "string"}, spec.StringOrArray{"array"}, false},
		{"object", []string{"object", "string"}, spec.StringOrArray{"object"}, false},
		{"bare object", []string{"object"}, spec.StringOrArray{"object"}, false},
		{"array without items", []string{"array"}, nil, true},
		{"unknown", []string{"User"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := BuildCustomSchema(tt.types)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, schema.Type)
		})
	}
}

func TestNullable(t *testing.T) {
	s := Nullable(PrimitiveSchema("string"))
	assert.Equal(t, spec.StringOrArray{"string", "null"}, s.Type)
	assert.Equal(t, spec.StringOrArray{"string", "null"}, Nullable(s).Type)
	assert.True(t, IsNullable(s))
	assert.True(t, IsNullable(&spec.Schema{}))
	assert.False(t, IsNullable(PrimitiveSchema("integer")))
}

func TestNaming(t *testing.T) {
	tests := []struct {
		in, camel, snake string
	}{
		{"OnLightMeasured", "onLightMeasured", "on_light_measured"},
		{"ID", "id", "id"},
		{"URLPath", "urlPath", "url_path"},
		{"lumens", "lumens", "lumens"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.camel, ToLowerCamelCase(tt.in))
			assert.Equal(t, tt.snake, ToSnakeCase(tt.in))
		})
	}
}
