package generator

import (
	"encoding/json"
	"fmt"
	"go/parser"
	"go/token"
	"testing"
	"time"

	"github.com/go-openapi/spec"
	"github.com/neuroglia-io/asyncapi-sub001/internal/config"
	"github.com/neuroglia-io/asyncapi-sub001/internal/domain"
	"github.com/neuroglia-io/asyncapi-sub001/internal/registry"
	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	v2 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v2"
	v3 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v3"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/example"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lightsSrc = `package lights

import (
	"context"
	"time"
)

// LightMeasuredEvent is emitted when a streetlight measures light.
type LightMeasuredEvent struct {
	Id     int       ` + "`json:\"id\"`" + `
	Lumens int       ` + "`json:\"lumens\"`" + `
	SentAt time.Time ` + "`json:\"sentAt\"`" + `
}

// DimCommand asks a streetlight to dim.
// @Message.Name dimLight
// @Message.ContentType json
type DimCommand struct {
	Percentage int ` + "`json:\"percentage\" validate:\"min=0,max=100\"`" + `
}

// Headers travel with commands.
type Headers struct {
	TraceID string ` + "`json:\"traceId\"`" + `
}

// StreetlightsAPI controls the streetlights of the city.
// @AsyncAPI
// @Title Streetlights API
// @Version 1.0.0
// @Tags lights
// @Server production mqtt test.mosquitto.org:1883 Test broker
// @SecurityScheme user userPassword
// @OperationBindings qos mqtt qos=1
type StreetlightsAPI struct{}

// OnLightMeasured receives light measurements.
// @Channel light/measured
// @Channel.Description Light measurements
// @Operation receive
func (a *StreetlightsAPI) OnLightMeasured(e LightMeasuredEvent) {}

// DimLightAsync dims a light.
// @Channel light/{streetlightId}/dim
// @Channel.Parameter streetlightId Id of the streetlight
// @Operation send
// @Operation.Headers Headers
// @Operation.Bindings qos
// @Operation.Security user
// @Operation.Tags dimming
func (a *StreetlightsAPI) DimLightAsync(ctx context.Context, cmd DimCommand) error { return nil }

// Report sends a report.
// @Channel reports
// @Operation send
// @Param.Exclude verbose
// @Param.Default note none
func (a *StreetlightsAPI) Report(ctx context.Context, lightID string, level int, note *string, verbose bool) {}

// Remeasure receives measurements again.
// @Channel light/measured
// @Operation receive
// @Operation.Id remeasured
// @Operation.Message lightMeasuredEvent
func (a *StreetlightsAPI) Remeasure() {}

// Helper is not an operation.
func (a *StreetlightsAPI) Helper() {}

// Unmarked has no marker.
type Unmarked struct{}

// Publish is annotated on an unmarked type.
// @Channel x
// @Operation send
func (Unmarked) Publish(e LightMeasuredEvent) {}
`

type recorder struct {
	lines []string
}

func (r *recorder) Printf(format string, v ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, v...))
}

var fixedClock = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

func newRegistry(t *testing.T, src string) *registry.Service {
	t.Helper()
	reg := registry.NewService()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "/src/lights/lights.go", src, parser.ParseComments)
	require.NoError(t, err)
	require.NoError(t, reg.CollectAstFile(fset, "example.com/lights", "/src/lights/lights.go", file, domain.ParseAll))
	require.NoError(t, reg.ParseTypes())
	return reg
}

func newGenerator(t *testing.T, src string, options ...Option) (*Generator, *registry.Service) {
	t.Helper()
	reg := newRegistry(t, src)
	options = append([]Option{WithExampleGenerator(example.New(example.WithSeed(7), example.WithClock(fixedClock)))}, options...)
	return New(reg, schema.NewService(reg), options...), reg
}

func typeDef(t *testing.T, reg *registry.Service, name string) *domain.TypeSpecDef {
	t.Helper()
	def := reg.FindTypeSpec("lights."+name, nil)
	require.NotNil(t, def, name)
	return def
}

func TestGenerateV3(t *testing.T) {
	debug := &recorder{}
	gen, reg := newGenerator(t, lightsSrc, WithDebugger(debug))

	doc, err := gen.GenerateV3(typeDef(t, reg, "StreetlightsAPI"))
	require.NoError(t, err)

	t.Run("info", func(t *testing.T) {
		assert.Equal(t, asyncapi.Version3, doc.AsyncAPI)
		assert.Equal(t, "Streetlights API", doc.Info.Title)
		assert.Equal(t, "1.0.0", doc.Info.Version)
		assert.Equal(t, "StreetlightsAPI controls the streetlights of the city.", doc.Info.Description)
		require.Len(t, doc.Info.Tags, 1)
		assert.Equal(t, "lights", doc.Info.Tags[0].Name)
		require.Contains(t, doc.Servers, "production")
		assert.Equal(t, "test.mosquitto.org:1883", doc.Servers["production"].Host)
		assert.Equal(t, "mqtt", doc.Servers["production"].Protocol)
		assert.Equal(t, "Test broker", doc.Servers["production"].Description)
	})

	t.Run("light measured scenario", func(t *testing.T) {
		require.Contains(t, doc.Channels, "light/measured")
		ch := doc.Channels["light/measured"]
		assert.Equal(t, "Light measurements", ch.Description)
		require.Len(t, ch.Messages, 1)
		assert.Equal(t, "#/components/messages/lightMeasuredEvent", ch.Messages["lightMeasuredEvent"].Ref)

		op := doc.Operations["onLightMeasured"]
		require.NotNil(t, op)
		assert.Equal(t, v3.ActionReceive, op.Action)
		assert.Equal(t, "#/channels/light~1measured", op.Channel.Ref)
		require.Len(t, op.Messages, 1)
		assert.Equal(t, "#/channels/light~1measured/messages/lightMeasuredEvent", op.Messages[0].Ref)
		assert.Equal(t, "OnLightMeasured receives light measurements.", op.Description)
		assert.Equal(t, op.Description, op.Summary)

		msg := doc.Components.Messages["lightMeasuredEvent"]
		require.NotNil(t, msg)
		assert.Equal(t, "Light Measured Event", msg.Title)
		assert.Equal(t, "#/components/schemas/LightMeasuredEvent", msg.Payload.Ref.String())

		payload := doc.Components.Schemas["LightMeasuredEvent"]
		require.NotNil(t, payload)
		assert.ElementsMatch(t, []string{"id", "lumens", "sentAt"}, payload.Required)

		require.Len(t, msg.Examples, 2)
		assert.Equal(t, ExampleMinimal, msg.Examples[0].Name)
		assert.Equal(t, ExampleExtended, msg.Examples[1].Name)
		minimal, ok := msg.Examples[0].Payload.(map[string]interface{})
		require.True(t, ok)
		keys := make([]string, 0, len(minimal))
		for k := range minimal {
			keys = append(keys, k)
		}
		assert.ElementsMatch(t, []string{"id", "lumens", "sentAt"}, keys)
	})

	t.Run("message reference shares the channel message", func(t *testing.T) {
		op := doc.Operations["remeasured"]
		require.NotNil(t, op)
		require.Len(t, op.Messages, 1)
		assert.Equal(t, "#/channels/light~1measured/messages/lightMeasuredEvent", op.Messages[0].Ref)
	})

	t.Run("payload type message identity and headers", func(t *testing.T) {
		ch := doc.Channels["light/{streetlightId}/dim"]
		require.NotNil(t, ch)
		require.NotNil(t, ch.Address)
		assert.Equal(t, "light/{streetlightId}/dim", *ch.Address)
		require.Contains(t, ch.Parameters, "streetlightId")
		assert.Equal(t, "Id of the streetlight", ch.Parameters["streetlightId"].Description)

		op := doc.Operations["dimLight"]
		require.NotNil(t, op)
		assert.Equal(t, v3.ActionSend, op.Action)
		require.Len(t, op.Tags, 1)
		assert.Equal(t, "dimming", op.Tags[0].Name)
		require.Len(t, op.Security, 1)
		assert.Equal(t, "#/components/securitySchemes/user", op.Security[0].Ref)
		require.NotNil(t, op.Bindings)
		assert.Equal(t, "#/components/operationBindings/qos", op.Bindings.Ref())

		msg := doc.Components.Messages["dimLight"]
		require.NotNil(t, msg)
		assert.Equal(t, "application/json", msg.ContentType)
		require.NotNil(t, msg.Headers)
		assert.Contains(t, msg.Headers.Properties, "traceId")
		assert.NotNil(t, msg.Examples[0].Headers)

		assert.Equal(t, asyncapi.SecurityUserPassword, doc.Components.SecuritySchemes["user"].Type)
		assert.Equal(t, 1, doc.Components.OperationBindings["qos"].Len())
	})

	t.Run("parameter object payload", func(t *testing.T) {
		msg := doc.Components.Messages["reportMessage"]
		require.NotNil(t, msg)
		require.NotNil(t, msg.Payload)
		assert.Empty(t, msg.Payload.Ref.String())
		assert.Len(t, msg.Payload.Properties, 3)
		assert.NotContains(t, msg.Payload.Properties, "verbose")
		assert.ElementsMatch(t, []string{"lightID", "level"}, msg.Payload.Required)
		assert.Equal(t, "none", msg.Payload.Properties["note"].Default)
	})

	t.Run("examples conform to their schemas", func(t *testing.T) {
		for _, line := range debug.lines {
			assert.NotContains(t, line, "does not match")
			assert.NotContains(t, line, "does not compile")
		}
	})
}

func TestGenerateV2(t *testing.T) {
	gen, reg := newGenerator(t, lightsSrc)

	doc, err := gen.GenerateV2(typeDef(t, reg, "StreetlightsAPI"))
	require.NoError(t, err)

	assert.Equal(t, asyncapi.Version2, doc.AsyncAPI)
	assert.Equal(t, "test.mosquitto.org:1883", doc.Servers["production"].URL)

	t.Run("receive maps to publish", func(t *testing.T) {
		ch := doc.Channels["light/measured"]
		require.NotNil(t, ch)
		assert.Nil(t, ch.Subscribe)
		require.NotNil(t, ch.Publish)
		assert.Equal(t, "onLightMeasured", ch.Publish.OperationID)
		require.NotNil(t, ch.Publish.Message)
		assert.Empty(t, ch.Publish.Message.OneOf)
		assert.Equal(t, "#/components/messages/lightMeasuredEvent", ch.Publish.Message.Ref)
	})

	t.Run("send maps to subscribe", func(t *testing.T) {
		ch := doc.Channels["light/{streetlightId}/dim"]
		require.NotNil(t, ch)
		assert.Nil(t, ch.Publish)
		require.NotNil(t, ch.Subscribe)
		assert.Equal(t, "dimLight", ch.Subscribe.OperationID)
		require.Len(t, ch.Subscribe.Security, 1)
		assert.Contains(t, ch.Subscribe.Security[0], "user")
		require.Contains(t, ch.Parameters, "streetlightId")
		assert.True(t, ch.Parameters["streetlightId"].Schema.Type.Contains("string"))
	})

	t.Run("components", func(t *testing.T) {
		msg := doc.Components.Messages["lightMeasuredEvent"]
		require.NotNil(t, msg)
		assert.Equal(t, "lightMeasuredEvent", msg.MessageID)
		assert.ElementsMatch(t, []string{"id", "lumens", "sentAt"}, doc.Components.Schemas["LightMeasuredEvent"].Required)
	})
}

func TestGenerateV2_ChannelAddress(t *testing.T) {
	t.Run("channels are keyed by their address", func(t *testing.T) {
		gen, reg := newGenerator(t, `package lights

// @AsyncAPI
type API struct{}

// @Channel dim
// @Channel.Address light/{id}/dim
// @Operation send
func (API) Dim(v int) {}
`)
		def := typeDef(t, reg, "API")

		doc, err := gen.GenerateV2(def)
		require.NoError(t, err)
		assert.NotContains(t, doc.Channels, "dim")
		ch := doc.Channels["light/{id}/dim"]
		require.NotNil(t, ch)
		assert.Contains(t, ch.Parameters, "id")
		require.NotNil(t, ch.Subscribe)
		assert.Equal(t, "dim", ch.Subscribe.OperationID)

		v3doc, err := gen.GenerateV3(def)
		require.NoError(t, err)
		require.Contains(t, v3doc.Channels, "dim")
		assert.Equal(t, "light/{id}/dim", *v3doc.Channels["dim"].Address)
	})

	t.Run("channels sharing an address", func(t *testing.T) {
		gen, reg := newGenerator(t, `package lights

// @AsyncAPI
type API struct{}

// @Channel a
// @Channel.Address shared
// @Operation send
func (API) Send(v int) {}

// @Channel b
// @Channel.Address shared
// @Operation receive
func (API) Receive(v int) {}
`)
		def := typeDef(t, reg, "API")

		_, err := gen.GenerateV2(def)
		assert.ErrorIs(t, err, asyncapi.ErrConfiguration)

		_, err = gen.GenerateV3(def)
		assert.NoError(t, err)
	})
}

func TestGenerate_Errors(t *testing.T) {
	gen, reg := newGenerator(t, lightsSrc)

	t.Run("missing marker", func(t *testing.T) {
		for _, major := range []int{2, 3} {
			doc, err := gen.Generate(typeDef(t, reg, "Unmarked"), major)
			assert.ErrorIs(t, err, asyncapi.ErrConfiguration)
			assert.Nil(t, doc)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := gen.Generate(typeDef(t, reg, "StreetlightsAPI"), 4)
		assert.ErrorIs(t, err, asyncapi.ErrConfiguration)
	})

	t.Run("nil definition", func(t *testing.T) {
		_, err := gen.GenerateV3(nil)
		assert.ErrorIs(t, err, asyncapi.ErrInvalidArgument)
	})

	tests := []struct {
		name    string
		methods string
		err     error
	}{
		{
			name: "unknown message reference",
			methods: `
// @Channel a
// @Operation send
// @Operation.Message nothing
func (API) Send() {}
`,
			err: asyncapi.ErrConfiguration,
		},
		{
			name: "duplicate operation id",
			methods: `
// @Channel a
// @Operation send
func (API) Send(v int) {}

// @Channel b
// @Operation receive
// @Operation.Id send
func (API) Other(v int) {}
`,
			err: asyncapi.ErrConfiguration,
		},
		{
			name: "operation without channel",
			methods: `
// @Operation send
func (API) Send(v int) {}
`,
			err: asyncapi.ErrConfiguration,
		},
		{
			name: "no operation",
			methods: `
func (API) Send(v int) {}
`,
			err: asyncapi.ErrConfiguration,
		},
		{
			name: "unknown action",
			methods: `
// @Channel a
// @Operation fly
func (API) Send(v int) {}
`,
			err: asyncapi.ErrConfiguration,
		},
		{
			name: "unknown payload type",
			methods: `
// @Channel a
// @Operation send
// @Operation.Payload Missing
func (API) Send() {}
`,
			err: asyncapi.ErrNotFound,
		},
		{
			name: "unresolved bindings reference",
			methods: `
// @Channel a
// @Operation send
// @Operation.Bindings missing
func (API) Send(v int) {}
`,
			err: asyncapi.ErrDocumentValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package lights\n\n// @AsyncAPI\ntype API struct{}\n" + tt.methods
			gen, reg := newGenerator(t, src)

			_, err := gen.GenerateV3(typeDef(t, reg, "API"))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestGenerate_ConfiguredServersAndSchemes(t *testing.T) {
	gen, reg := newGenerator(t, lightsSrc,
		WithoutExamples(),
		WithDefaultContentType("application/json"),
		WithServers(config.ServerConfig{
			Name:     "production",
			Host:     "broker.example.com:8883",
			Protocol: "secure-mqtt",
			Security: []string{"oauth"},
			Bindings: map[string]map[string]interface{}{"mqtt": {"clientId": "lights"}},
		}),
		WithSecuritySchemes(config.SecuritySchemeConfig{
			Name:     "oauth",
			Type:     asyncapi.SecurityOAuth2,
			Flow:     "clientCredentials",
			TokenURL: "https://auth.example.com/token",
			Scopes:   []string{"lights:write"},
		}),
	)
	def := typeDef(t, reg, "StreetlightsAPI")

	t.Run("v3", func(t *testing.T) {
		doc, err := gen.GenerateV3(def)
		require.NoError(t, err)

		assert.Equal(t, "application/json", doc.DefaultContentType)
		server := doc.Servers["production"]
		require.NotNil(t, server)
		assert.Equal(t, "broker.example.com:8883", server.Host)
		require.Len(t, server.Security, 1)
		assert.Equal(t, "#/components/securitySchemes/oauth", server.Security[0].Ref)
		assert.Equal(t, 1, server.Bindings.Len())

		oauth := doc.Components.SecuritySchemes["oauth"]
		require.NotNil(t, oauth)
		require.NotNil(t, oauth.Flows.ClientCredentials)
		assert.Contains(t, oauth.Flows.ClientCredentials.AvailableScopes, "lights:write")
		assert.Empty(t, doc.Components.Messages["lightMeasuredEvent"].Examples)
	})

	t.Run("v2", func(t *testing.T) {
		doc, err := gen.GenerateV2(def)
		require.NoError(t, err)

		oauth := doc.Components.SecuritySchemes["oauth"]
		require.NotNil(t, oauth)
		assert.Contains(t, oauth.Flows.ClientCredentials.Scopes, "lights:write")
	})

	t.Run("unsupported binding protocol", func(t *testing.T) {
		gen, reg := newGenerator(t, lightsSrc, WithServers(config.ServerConfig{
			Name: "x", Host: "h", Protocol: "p",
			Bindings: map[string]map[string]interface{}{"carrier-pigeon": {}},
		}))

		_, err := gen.GenerateV3(typeDef(t, reg, "StreetlightsAPI"))
		assert.ErrorIs(t, err, asyncapi.ErrUnsupportedProtocol)
	})
}

func TestGenerate_Deterministic(t *testing.T) {
	render := func() string {
		gen, reg := newGenerator(t, lightsSrc)
		doc, err := gen.GenerateV3(typeDef(t, reg, "StreetlightsAPI"))
		require.NoError(t, err)
		data, err := json.Marshal(doc)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, render(), render())
}

func TestGenerate_SharedMessageTypeAcrossSlots(t *testing.T) {
	src := `package lights

// Event happens.
type Event struct {
	Name string ` + "`json:\"name\"`" + `
}

// @AsyncAPI
type API struct{}

// @Channel events
// @Operation send
func (API) Emit(e Event) {}

// @Channel events
// @Operation send
func (API) EmitAgain(e *Event) {}

// @Channel events
// @Operation send
func (API) Count(n int) {}
`
	gen, reg := newGenerator(t, src, WithoutExamples())
	def := typeDef(t, reg, "API")

	doc2, err := gen.GenerateV2(def)
	require.NoError(t, err)
	sub := doc2.Channels["events"].Subscribe
	require.NotNil(t, sub)
	assert.Equal(t, "emit", sub.OperationID)
	require.Len(t, sub.Message.OneOf, 2)
	assert.Equal(t, "#/components/messages/event", sub.Message.OneOf[0].Ref)
	assert.Equal(t, "#/components/messages/countMessage", sub.Message.OneOf[1].Ref)

	doc3, err := gen.GenerateV3(def)
	require.NoError(t, err)
	assert.Len(t, doc3.Operations, 3)
	assert.Len(t, doc3.Channels["events"].Messages, 2)
	assert.Equal(t, []string{"integer"}, []string(doc3.Components.Messages["countMessage"].Payload.Type))
}

func TestNaming(t *testing.T) {
	tests := []struct {
		in, operationID, message, human string
	}{
		{"OnLightMeasured", "onLightMeasured", "onLightMeasured", "On Light Measured"},
		{"DimLightAsync", "dimLight", "dimLightAsync", "Dim Light Async"},
		{"Async", "async", "async", "Async"},
		{"LightMeasuredEvent", "lightMeasuredEvent", "lightMeasuredEvent", "Light Measured Event"},
		{"URLChanged", "urlChanged", "urlChanged", "Url Changed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.operationID, OperationID(tt.in))
			assert.Equal(t, tt.message, MessageName(tt.in))
			assert.Equal(t, tt.human, Humanize(tt.in))
		})
	}
}

func TestValidateSchemas(t *testing.T) {
	bad := &spec.Schema{SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{"nonsense"}}}
	good := spec.StringProperty()

	t.Run("v3", func(t *testing.T) {
		doc := &v3.Document{
			Components: &v3.Components{
				Schemas:  map[string]*spec.Schema{"Bad": bad, "Good": good},
				Messages: map[string]*v3.Message{"ref": {Payload: spec.RefSchema("#/components/schemas/Bad")}},
			},
			Channels: map[string]*v3.Channel{
				"a": {Messages: map[string]*v3.Message{"inline": {Headers: bad}}},
			},
		}

		violations := ValidateV3Schemas(doc)
		require.Len(t, violations, 2)
		assert.Equal(t, "channels.a.messages.inline.headers", violations[1].Path)
		assert.Equal(t, "components.schemas.Bad", violations[0].Path)
	})

	t.Run("v2 one of", func(t *testing.T) {
		doc := &v2.Document{
			Channels: map[string]*v2.Channel{
				"a": {Publish: &v2.Operation{Message: &v2.Message{OneOf: []*v2.Message{
					{Payload: good},
					{Payload: bad},
				}}}},
			},
		}

		violations := ValidateV2Schemas(doc)
		require.Len(t, violations, 1)
		assert.Equal(t, "channels.a.publish.message.oneOf.1.payload", violations[0].Path)
	})
}
