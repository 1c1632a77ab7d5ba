package dimming

// Command asks a streetlight to change its intensity.
// @Message.Name dimLight
// @Message.Title Dim light
type Command struct {
	StreetlightID string `json:"streetlightId" validate:"required"`
	Percentage    int    `json:"percentage" validate:"min=0,max=100"`
}
