package streetlights

import (
	"context"
	"time"

	"github.com/neuroglia-io/asyncapi-sub001/testdata/streetlights/dimming"
)

// LightMeasuredEvent carries the lumens measured by a streetlight.
type LightMeasuredEvent struct {
	// ID of the streetlight.
	ID     int       `json:"id"`
	Lumens int       `json:"lumens" validate:"min=0"`
	SentAt time.Time `json:"sentAt"`
	// Note is optional free text.
	Note *string `json:"note,omitempty"`
}

// StreetlightsAPI manages the city lights.
// @AsyncAPI streetlights
// @Title Streetlights API
// @Version 1.0.0
// @Description The Smartylighting Streetlights API allows you
// @Description to remotely manage the city lights.
// @License.Name Apache 2.0
// @License.URL https://www.apache.org/licenses/LICENSE-2.0
// @Tags lights, city
// @Server production mqtt test.mosquitto.org:1883 Test broker
type StreetlightsAPI struct{}

// OnLightMeasured informs about environmental lighting conditions of a particular streetlight.
// @Channel light/measured
// @Channel.Description Light measurements
// @Operation receive
func (StreetlightsAPI) OnLightMeasured(e LightMeasuredEvent) {}

// DimLightAsync dims a streetlight.
// @Channel light/dim
// @Operation send
// @Operation.Tags dimming
func (StreetlightsAPI) DimLightAsync(ctx context.Context, cmd dimming.Command) error {
	return nil
}

// Unmarked exposes methods without being an AsyncAPI type.
type Unmarked struct{}

// Publish sends a measurement.
// @Channel light/measured
// @Operation send
func (Unmarked) Publish(e LightMeasuredEvent) {}
