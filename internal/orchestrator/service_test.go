package orchestrator

import (
	"context"
	"fmt"
	"testing"

	"github.com/neuroglia-io/asyncapi-sub001/internal/generator"
	"github.com/neuroglia-io/asyncapi-sub001/internal/schema"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	v2 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v2"
	v3 "github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi/v3"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/example"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	lines []string
}

func (r *recorder) Printf(format string, v ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, v...))
}

const ordersSrc = `package orders

// OrderPlaced is published when an order is placed.
type OrderPlaced struct {
	OrderID string ` + "`json:\"orderId\"`" + `
	Total   float64 ` + "`json:\"total\"`" + `
}

// OrdersAPI publishes order events.
// @AsyncAPI
// @Title Orders API
type OrdersAPI struct{}

// Placed announces a new order.
// @Channel orders/placed
// @Operation send
func (OrdersAPI) Placed(e OrderPlaced) {}

// BillingAPI receives order events.
// @AsyncAPI
// @Title Billing API
type BillingAPI struct{}

// OnPlaced bills an order.
// @Channel orders/placed
// @Operation receive
func (BillingAPI) OnPlaced(e OrderPlaced) {}

// Invalid declares a server without a host.
// @AsyncAPI
// @Server production
type Invalid struct{}

// Audit is not an API; its annotations are never read.
// @Server audit
type Audit struct{}
`

func newOrders(t *testing.T, config *Config) *Service {
	t.Helper()
	if config.GeneratorOptions == nil {
		config.GeneratorOptions = []generator.Option{generator.WithExampleGenerator(example.New(example.WithSeed(1)))}
	}
	svc := New(config)
	require.NoError(t, svc.LoadSource("example.com/orders", "/src/orders/orders.go", ordersSrc))
	return svc
}

func TestNew(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		svc := New(nil)

		require.NotNil(t, svc)
		assert.NotNil(t, svc.loader)
		assert.NotNil(t, svc.registry)
		assert.NotNil(t, svc.generator)
		assert.Equal(t, schema.CamelCase, svc.config.PropNamingStrategy)
		assert.Equal(t, ".go", svc.config.ParseExtension)
		assert.Equal(t, []int{3}, svc.config.Versions)
	})

	t.Run("keeps custom config", func(t *testing.T) {
		config := &Config{PropNamingStrategy: schema.SnakeCase, Versions: []int{2, 3}}

		svc := New(config)

		assert.Same(t, config, svc.config)
		assert.Equal(t, schema.SnakeCase, svc.schemas.PropNamingStrategy())
	})
}

func TestService_Generate(t *testing.T) {
	t.Run("generates every marked type for every version", func(t *testing.T) {
		svc := newOrders(t, &Config{Versions: []int{2, 3}})

		result, err := svc.Generate(context.Background())
		require.NoError(t, err)

		require.Len(t, result.Documents, 4)
		assert.Equal(t, "BillingAPI", result.Documents[0].Type.Name())
		assert.Equal(t, 2, result.Documents[0].Major)
		assert.Equal(t, "OrdersAPI", result.Documents[2].Type.Name())

		billing, ok := result.Find("BillingAPI", 2).Spec.(*v2.Document)
		require.True(t, ok)
		assert.NotNil(t, billing.Channels["orders/placed"].Publish)

		orders, ok := result.Find("orders.OrdersAPI", 3).Spec.(*v3.Document)
		require.True(t, ok)
		assert.Equal(t, v3.ActionSend, orders.Operations["placed"].Action)
		assert.Contains(t, orders.Components.Messages, "orderPlaced")
	})

	t.Run("isolates failing types", func(t *testing.T) {
		debug := &recorder{}
		svc := newOrders(t, &Config{Debug: debug})

		result, err := svc.Generate(context.Background())
		require.NoError(t, err)

		assert.Len(t, result.Documents, 2)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "orders.Invalid", result.Failures[0].Type)
		assert.Equal(t, 0, result.Failures[0].Major)
		assert.ErrorIs(t, result.Err(), asyncapi.ErrConfiguration)
		assert.Nil(t, result.Find("Invalid", 3))
	})

	t.Run("filters types", func(t *testing.T) {
		svc := newOrders(t, &Config{Types: []string{"OrdersAPI"}})

		result, err := svc.Generate(context.Background())
		require.NoError(t, err)

		require.Len(t, result.Documents, 1)
		assert.Equal(t, "OrdersAPI", result.Documents[0].Type.Name())
		assert.NoError(t, result.Err())
	})

	t.Run("ignores annotations of unmarked types", func(t *testing.T) {
		svc := newOrders(t, &Config{})

		result, err := svc.Generate(context.Background())
		require.NoError(t, err)

		for _, f := range result.Failures {
			assert.NotEqual(t, "orders.Audit", f.Type)
		}
	})

	t.Run("rejects requested types without the marker", func(t *testing.T) {
		svc := newOrders(t, &Config{Types: []string{"OrderPlaced", "Audit"}})

		result, err := svc.Generate(context.Background())
		require.NoError(t, err)

		assert.Empty(t, result.Documents)
		require.Len(t, result.Failures, 2)
		assert.Equal(t, "orders.Audit", result.Failures[0].Type)
		assert.Equal(t, "orders.OrderPlaced", result.Failures[1].Type)
		for _, f := range result.Failures {
			assert.Equal(t, 0, f.Major)
			assert.ErrorIs(t, f, asyncapi.ErrConfiguration)
		}
		assert.ErrorIs(t, result.Err(), asyncapi.ErrConfiguration)
	})

	t.Run("rejects requested names matching no type", func(t *testing.T) {
		svc := newOrders(t, &Config{Types: []string{"OrdersAPI", "ShippingAPI"}})

		result, err := svc.Generate(context.Background())
		require.NoError(t, err)

		require.Len(t, result.Documents, 1)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "ShippingAPI", result.Failures[0].Type)
		assert.ErrorIs(t, result.Err(), asyncapi.ErrConfiguration)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		svc := newOrders(t, &Config{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := svc.Generate(ctx)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, result)
	})

	t.Run("rejects sources loaded after generation", func(t *testing.T) {
		svc := newOrders(t, &Config{})
		_, err := svc.Generate(context.Background())
		require.NoError(t, err)

		err = svc.LoadSource("example.com/late", "/src/late/late.go", "package late\n")
		assert.ErrorIs(t, err, asyncapi.ErrConfiguration)
	})
}

func TestService_Parse(t *testing.T) {
	t.Run("batch keeps generating after a failing type", func(t *testing.T) {
		svc := New(&Config{Versions: []int{2, 3}})

		result, err := svc.Parse(context.Background(), []string{"../../testdata/batch"})
		require.NoError(t, err)

		require.Len(t, result.Documents, 2)
		assert.NotNil(t, result.Find("SensorAPI", 2))
		assert.NotNil(t, result.Find("SensorAPI", 3))

		require.Len(t, result.Failures, 2)
		for _, f := range result.Failures {
			assert.Contains(t, f.Type, "BrokenAPI")
			assert.ErrorIs(t, f, asyncapi.ErrConfiguration)
		}
	})

	t.Run("resolves payload types across packages", func(t *testing.T) {
		svc := New(&Config{})

		result, err := svc.Parse(context.Background(), []string{"../../testdata/streetlights"})
		require.NoError(t, err)
		require.NoError(t, result.Err())

		doc, ok := result.Find("StreetlightsAPI", 3).Spec.(*v3.Document)
		require.True(t, ok)
		assert.Equal(t, "Streetlights API", doc.Info.Title)
		require.Contains(t, doc.Components.Messages, "dimLight")
		assert.Equal(t, "Dim light", doc.Components.Messages["dimLight"].Title)
		require.Contains(t, doc.Components.Schemas, "Command")
		assert.ElementsMatch(t, []string{"streetlightId", "percentage"}, doc.Components.Schemas["Command"].Required)
		assert.Len(t, doc.Components.Schemas["LightMeasuredEvent"].Required, 3)
	})

	t.Run("fails on a missing search dir", func(t *testing.T) {
		_, err := New(nil).Parse(context.Background(), []string{"/non/existent"})

		assert.Error(t, err)
	})
}
