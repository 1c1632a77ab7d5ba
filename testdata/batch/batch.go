package batch

// Reading is a sensor reading.
type Reading struct {
	Value float64 `json:"value"`
}

// SensorAPI is well formed.
// @AsyncAPI
// @Title Sensor API
// @Version 0.1.0
type SensorAPI struct{}

// OnReading receives readings.
// @Channel sensors/readings
// @Operation receive
func (SensorAPI) OnReading(r Reading) {}

// BrokenAPI declares an action no version supports.
// @AsyncAPI
// @Title Broken API
// @Version 0.1.0
type BrokenAPI struct{}

// Fly is not a messaging action.
// @Channel sensors/broken
// @Operation fly
func (BrokenAPI) Fly(r Reading) {}
