package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestTemplate() Template {
	return Template{
		ID:            "t1",
		Name:          "Corporate Presentation",
		ThumbnailURL:  "https://example.com/thumb.png",
		ThumbnailHint: "office meeting",
		Layers: []Layer{
			{
				ID:   "l1",
				Name: "Main Title",
				Type: LayerText,
				Properties: map[string]Property{
					"content":  {Value: StringValue("Hello"), Kind: KindText, Label: "Content"},
					"fontSize": {Value: NumberValue(64), Kind: KindSlider, Label: "Font Size"},
					"color":    {Value: StringValue("#ffffff"), Kind: KindColor, Label: "Color"},
				},
			},
			{
				ID:   "l2",
				Name: "Background",
				Type: LayerImage,
				Properties: map[string]Property{
					"source": {Value: StringValue("https://example.com/bg.png"), Kind: KindFile, Label: "Source"},
				},
			},
		},
	}
}

func TestTemplateValidate(t *testing.T) {
	assert.NoError(t, validTestTemplate().Validate())
}

func TestTemplateValidateMissingID(t *testing.T) {
	tpl := validTestTemplate()
	tpl.ID = ""
	err := tpl.Validate()
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
}

func TestTemplateValidateDuplicateLayerIDs(t *testing.T) {
	tpl := validTestTemplate()
	tpl.Layers[1].ID = tpl.Layers[0].ID
	err := tpl.Validate()
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
}

func TestTemplateValidateBadProperty(t *testing.T) {
	tpl := validTestTemplate()
	prop := tpl.Layers[0].Properties["fontSize"]
	prop.Value = StringValue("sixty-four")
	tpl.Layers[0].Properties["fontSize"] = prop

	err := tpl.Validate()
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
}

func TestTemplateValidateMissingExpectedKeyIsNotAnError(t *testing.T) {
	// A text layer without "content" means the feature is not applicable,
	// not an invalid layer.
	tpl := validTestTemplate()
	delete(tpl.Layers[0].Properties, "content")
	assert.NoError(t, tpl.Validate())
}

func TestTemplateCloneIsDeep(t *testing.T) {
	tpl := validTestTemplate()
	clone := tpl.Clone()

	prop := clone.Layers[0].Properties["content"]
	prop.Value = StringValue("Changed")
	clone.Layers[0].Properties["content"] = prop

	original, _ := tpl.Layers[0].Properties["content"]
	assert.Equal(t, StringValue("Hello"), original.Value)
}

func TestTemplateDecodesFromClientJSON(t *testing.T) {
	raw := `{
		"id": "t1",
		"name": "Social Story",
		"thumbnailUrl": "https://example.com/t.png",
		"thumbnailHint": "neon city",
		"layers": [
			{
				"id": "l1",
				"name": "Headline",
				"type": "text",
				"properties": {
					"content": {"value": "New Arrival!", "kind": "text", "label": "Content"},
					"fontSize": {"value": 48, "kind": "slider", "label": "Font Size", "options": {"min": 12, "max": 96}},
					"textAlign": {"value": "center", "kind": "toggleGroup", "label": "Text Align", "options": {"items": [{"value": "left", "label": "Left"}, {"value": "center", "label": "Center"}]}}
				}
			}
		]
	}`

	var tpl Template
	require.NoError(t, json.Unmarshal([]byte(raw), &tpl))
	require.NoError(t, tpl.Validate())

	content, ok := tpl.Layers[0].StringProperty("content")
	require.True(t, ok)
	assert.Equal(t, "New Arrival!", content)

	size, ok := tpl.Layers[0].NumberProperty("fontSize")
	require.True(t, ok)
	assert.Equal(t, 48.0, size)
}

func TestLayerZIndex(t *testing.T) {
	layer := Layer{
		ID:   "l1",
		Type: LayerText,
		Properties: map[string]Property{
			"zIndex": {Value: NumberValue(5), Kind: KindNumber, Label: "Z"},
		},
	}
	z, ok := layer.ZIndex()
	require.True(t, ok)
	assert.Equal(t, 5.0, z)

	_, ok = Layer{ID: "l2", Type: LayerShape}.ZIndex()
	assert.False(t, ok)
}

func TestRenderStatusTerminal(t *testing.T) {
	assert.False(t, RenderSubmitted.IsTerminal())
	assert.False(t, RenderQueued.IsTerminal())
	assert.False(t, RenderRendering.IsTerminal())
	assert.True(t, RenderDone.IsTerminal())
	assert.True(t, RenderFailed.IsTerminal())
}
