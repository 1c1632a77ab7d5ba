package asyncapi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentRef(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#/components/messages/lightMeasuredEvent", ComponentRef(ComponentMessages, "lightMeasuredEvent"))
	assert.Equal(t, "#/channels/light~1measured", ChannelRef("light/measured"))
	assert.Equal(t, "#/channels/light~1measured/messages/a~0b", ChannelMessageRef("light/measured", "a~b"))
	assert.Equal(t, []string{"channels", "light/measured", "messages", "a~b"},
		RefSegments(ChannelMessageRef("light/measured", "a~b")))
}

func TestValidateRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"component", "#/components/schemas/User", false},
		{"external", "https://example.com/schemas.json#/User", false},
		{"empty", "", true},
		{"fragment without pointer", "#User", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRef(tt.ref)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestIsValidComponentKey(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidComponentKey("light.measured-v1_x"))
	assert.False(t, IsValidComponentKey("light/measured"))
	assert.False(t, IsValidComponentKey(""))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("document", []Violation{
		Violationf("info.title", "is required"),
		{Message: "at least one channel is required"},
	})

	assert.True(t, errors.Is(err, ErrDocumentValidation))
	assert.Contains(t, err.Error(), "2 violation(s)")
	assert.Contains(t, err.Error(), "info.title: is required")
}

func TestUnresolvedRefs(t *testing.T) {
	t.Parallel()

	doc := map[string]interface{}{
		"channels": map[string]interface{}{
			"light/measured": map[string]interface{}{
				"messages": map[string]interface{}{
					"lightMeasured": map[string]interface{}{"$ref": "#/components/messages/lightMeasured"},
				},
			},
		},
		"operations": map[string]interface{}{
			"onLightMeasured": map[string]interface{}{
				"channel":  map[string]interface{}{"$ref": "#/channels/light~1measured"},
				"messages": []interface{}{map[string]interface{}{"$ref": "#/channels/light~1measured/messages/lightMeasured"}},
				"traits":   []interface{}{map[string]interface{}{"$ref": "#/components/operationTraits/missing"}},
			},
		},
		"components": map[string]interface{}{
			"messages": map[string]interface{}{
				"lightMeasured": map[string]interface{}{"payload": map[string]interface{}{"type": "object"}},
			},
		},
	}

	violations := UnresolvedRefs(doc)
	if assert.Len(t, violations, 1) {
		assert.Equal(t, "operations.onLightMeasured.traits.0", violations[0].Path)
		assert.Contains(t, violations[0].Message, "#/components/operationTraits/missing")
	}
}
