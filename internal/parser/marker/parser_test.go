package marker

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/bindings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docOf parses src and returns the doc comment of the first declaration.
func docOf(t *testing.T, src string) *ast.CommentGroup {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "src.go", "package p\n\n"+src, parser.ParseComments)
	require.NoError(t, err)
	require.NotEmpty(t, file.Decls)
	switch d := file.Decls[0].(type) {
	case *ast.GenDecl:
		return d.Doc
	case *ast.FuncDecl:
		return d.Doc
	}
	t.Fatalf("unexpected declaration %T", file.Decls[0])
	return nil
}

func TestIsMarked(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected bool
	}{
		{"marker", "// API.\n// @AsyncAPI\ntype API struct{}", true},
		{"marker with id", "// @asyncapi lights\ntype API struct{}", true},
		{"malformed annotations without marker", "// @Server audit\n// @Message.Nope x\ntype Audit struct{}", false},
		{"marker mentioned in text", "// Audit is not an @AsyncAPIType.\ntype Audit struct{}", false},
		{"no doc", "type Audit struct{}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsMarked(docOf(t, tt.src)))
		})
	}
}

func TestParseType(t *testing.T) {
	t.Run("document metadata", func(t *testing.T) {
		doc := docOf(t, `// StreetlightsAPI manages the city lights.
// @AsyncAPI streetlights
// @Title Streetlights API
// @Version 1.0.0
// @Description first line
// @Description second line
// @TermsOfService https://example.com/terms
// @License.Name Apache 2.0
// @License.URL https://www.apache.org/licenses/LICENSE-2.0
// @Contact.Name Lights team
// @Contact.URL https://example.com
// @Contact.Email lights@example.com
// @Tags lights, city
// @ExternalDocs https://example.com/docs
// @DefaultContentType json
type StreetlightsAPI struct{}`)

		m, err := ParseType(doc)

		require.NoError(t, err)
		assert.True(t, m.Marked)
		assert.Equal(t, "streetlights", m.ID)
		assert.Equal(t, "Streetlights API", m.Title)
		assert.Equal(t, "1.0.0", m.Version)
		assert.Equal(t, "first line\nsecond line", m.Description)
		assert.Equal(t, "https://example.com/terms", m.TermsOfService)
		assert.Equal(t, "Apache 2.0", m.LicenseName)
		assert.Equal(t, "https://www.apache.org/licenses/LICENSE-2.0", m.LicenseURL)
		assert.Equal(t, "Lights team", m.ContactName)
		assert.Equal(t, "lights@example.com", m.ContactEmail)
		assert.Equal(t, []string{"lights", "city"}, m.Tags)
		assert.Equal(t, "application/json", m.DefaultContentType)
		assert.Nil(t, m.Message)
	})

	t.Run("unmarked type", func(t *testing.T) {
		m, err := ParseType(docOf(t, "// Plain type.\ntype Plain struct{}"))

		require.NoError(t, err)
		assert.False(t, m.Marked)
	})

	t.Run("servers security and bindings", func(t *testing.T) {
		doc := docOf(t, `// @AsyncAPI
// @Server production mqtt test.mosquitto.org:1883 Test broker
// @SecurityScheme user userPassword Broker credentials
// @ChannelBindings queues amqp is=queue exclusive=true
// @ServerBindings broker kafka schemaRegistryUrl=https://registry.example.com
type API struct{}`)

		m, err := ParseType(doc)

		require.NoError(t, err)
		assert.Equal(t, []ServerMarker{{Name: "production", Protocol: "mqtt", Host: "test.mosquitto.org:1883", Description: "Test broker"}}, m.Servers)
		assert.Equal(t, []SecuritySchemeMarker{{Name: "user", Type: "userPassword", Description: "Broker credentials"}}, m.SecuritySchemes)
		require.Len(t, m.Bindings, 2)
		assert.Equal(t, bindings.KindChannel, m.Bindings[0].Kind)
		assert.Equal(t, bindings.AMQP, m.Bindings[0].Protocol)
		assert.Equal(t, map[string]interface{}{"is": "queue", "exclusive": true}, m.Bindings[0].Properties)
		assert.Equal(t, bindings.KindServer, m.Bindings[1].Kind)
	})

	t.Run("payload message identity", func(t *testing.T) {
		doc := docOf(t, `// Command dims a light.
// @Message.Name dimLight
// @Message.Title Dim light
// @Message.ContentType application/cloudevents+json
type Command struct{}`)

		m, err := ParseType(doc)

		require.NoError(t, err)
		require.NotNil(t, m.Message)
		assert.Equal(t, "dimLight", m.Message.Name)
		assert.Equal(t, "Dim light", m.Message.Title)
		assert.Equal(t, "application/cloudevents+json", m.Message.ContentType)
	})

	errorTests := []struct {
		name string
		line string
		want error
	}{
		{"server without host", "// @Server production mqtt", asyncapi.ErrConfiguration},
		{"unknown scheme type", "// @SecurityScheme user basic", asyncapi.ErrConfiguration},
		{"unknown protocol", "// @ChannelBindings c carrier-pigeon", asyncapi.ErrUnsupportedProtocol},
		{"malformed binding property", "// @ChannelBindings c amqp is", asyncapi.ErrConfiguration},
		{"unknown content type", "// @DefaultContentType yaml-ish", asyncapi.ErrConfiguration},
		{"unknown message attribute", "// @Message.Color red", asyncapi.ErrConfiguration},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseType(docOf(t, tt.line+"\ntype T struct{}"))
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestParseMethod(t *testing.T) {
	t.Run("channel and operation", func(t *testing.T) {
		doc := docOf(t, `// OnLightMeasured informs about lighting conditions.
// @Channel light/measured
// @Channel.Address smartylighting/{streetlightId}/lighting/measured
// @Channel.Description Light measurements
// @Channel.Servers production, staging
// @Channel.Parameter streetlightId The ID of the streetlight.
// @Operation publish
// @Operation.Id receiveLight
// @Operation.Tags lights
// @Operation.Security oauth[read, write] || user
// @Param.Exclude ctx
func (API) OnLightMeasured(e Event) {}`)

		m, err := ParseMethod(doc)

		require.NoError(t, err)
		assert.Equal(t, "OnLightMeasured informs about lighting conditions.", m.Doc)
		assert.Equal(t, "light/measured", m.Channel.Name)
		assert.Equal(t, "light/measured", m.ChannelName())
		assert.Equal(t, "smartylighting/{streetlightId}/lighting/measured", m.Channel.Address)
		assert.Equal(t, []string{"production", "staging"}, m.Channel.Servers)
		assert.Equal(t, []ParameterMarker{{Name: "streetlightId", Description: "The ID of the streetlight."}}, m.Channel.Parameters)
		require.NotNil(t, m.Operation)
		assert.Equal(t, ActionReceive, m.Operation.Action)
		assert.Equal(t, "receiveLight", m.Operation.ID)
		assert.Equal(t, []string{"lights"}, m.Operation.Tags)
		assert.Equal(t, map[string][]string{"oauth": {"read", "write"}, "user": {}}, m.Operation.Security)
		assert.True(t, m.Excluded["ctx"])
		assert.Nil(t, m.Message)
	})

	t.Run("operation channel overrides method channel", func(t *testing.T) {
		m, err := ParseMethod(docOf(t, `// @Channel a
// @Operation send
// @Operation.Channel b
func (API) Do() {}`))

		require.NoError(t, err)
		assert.Equal(t, "b", m.ChannelName())
	})

	t.Run("parameters and message", func(t *testing.T) {
		m, err := ParseMethod(docOf(t, `// @Channel c
// @Operation receive
// @Param.Required id
// @Param.Default note none
// @Message.Name reading
// @Message.Description one
// @Message.Description two
func (API) Do(id *int, note *string) {}`))

		require.NoError(t, err)
		assert.True(t, m.Required["id"])
		assert.Equal(t, "none", m.Defaults["note"])
		require.NotNil(t, m.Message)
		assert.Equal(t, "reading", m.Message.Name)
		assert.Equal(t, "one\ntwo", m.Message.Description)
	})

	t.Run("method without operation", func(t *testing.T) {
		m, err := ParseMethod(docOf(t, "// Helper does things.\nfunc (API) Helper() {}"))

		require.NoError(t, err)
		assert.Nil(t, m.Operation)
	})

	errorTests := []struct {
		name string
		doc  string
	}{
		{"unknown action", "// @Operation fly"},
		{"attributes without action", "// @Operation.Id x"},
		{"message and payload", "// @Operation send\n// @Operation.Message m\n// @Operation.Payload T"},
		{"unknown channel attribute", "// @Channel.Colour blue"},
		{"default without value", "// @Param.Default x"},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMethod(docOf(t, tt.doc+"\nfunc (API) Do() {}"))
			assert.ErrorIs(t, err, asyncapi.ErrConfiguration)
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"send", ActionSend},
		{"Subscribe", ActionSend},
		{"receive", ActionReceive},
		{"PUBLISH", ActionReceive},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocText(t *testing.T) {
	doc := docOf(t, `/*
 * Reading is a sensor reading.
 * @Message.Name reading
 */
type Reading struct{}`)

	assert.Equal(t, "Reading is a sensor reading.", DocText(doc))
	assert.Equal(t, "", DocText(nil))
}

func TestFieldsByAnySpace(t *testing.T) {
	assert.Equal(t, []string{"@Server", "a  b c"}, fieldsByAnySpace("@Server  a  b c", 2))
	assert.Equal(t, []string{"a", "b", "c"}, fieldsByAnySpace("a\tb  c", 0))
	assert.Empty(t, fieldsByAnySpace("   ", 2))
}
