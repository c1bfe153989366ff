package aiflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocanvas/api-gateway/models"
)

// fakeGenerator returns a canned response, optionally derived from the input.
type fakeGenerator struct {
	respond func(preamble, input string) (string, error)
	lastIn  string
}

func (g *fakeGenerator) Generate(_ context.Context, preamble, input string) (string, error) {
	g.lastIn = input
	return g.respond(preamble, input)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func sampleTemplate() models.Template {
	return models.Template{
		ID:   "t1",
		Name: "Promo",
		Layers: []models.Layer{
			{
				ID:   "l1",
				Name: "Headline",
				Type: models.LayerText,
				Properties: map[string]models.Property{
					"content": {Value: models.StringValue("Hello"), Kind: models.KindText, Label: "Content"},
				},
			},
		},
	}
}

func editedJSON(t *testing.T, content string) string {
	t.Helper()
	tpl := sampleTemplate()
	tpl.Layers[0].Properties["content"] = models.Property{
		Value: models.StringValue(content), Kind: models.KindText, Label: "Content",
	}
	data, err := json.Marshal(tpl)
	require.NoError(t, err)
	return string(data)
}

func TestEditTemplateAppliesReplacement(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		return editedJSON(t, "Goodbye"), nil
	}}
	flows := NewFlows(gen, quietLogger())

	got, err := flows.EditTemplate(context.Background(), sampleTemplate(), "change the headline to Goodbye")
	require.NoError(t, err)

	content, _ := got.Layers[0].StringProperty("content")
	assert.Equal(t, "Goodbye", content)
	assert.Contains(t, gen.lastIn, "change the headline to Goodbye")
	assert.Contains(t, gen.lastIn, `"t1"`)
}

func TestEditTemplateStripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		return "Here is the result:\n```json\n" + editedJSON(t, "Fenced") + "\n```\nLet me know!", nil
	}}
	flows := NewFlows(gen, quietLogger())

	got, err := flows.EditTemplate(context.Background(), sampleTemplate(), "cmd")
	require.NoError(t, err)
	content, _ := got.Layers[0].StringProperty("content")
	assert.Equal(t, "Fenced", content)
}

func TestEditTemplateRestoresDroppedID(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		tpl := sampleTemplate()
		tpl.ID = ""
		data, _ := json.Marshal(tpl)
		return string(data), nil
	}}
	flows := NewFlows(gen, quietLogger())

	got, err := flows.EditTemplate(context.Background(), sampleTemplate(), "cmd")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}

func TestEditTemplateRejectsNonJSON(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		return "I'm sorry, I cannot do that.", nil
	}}
	flows := NewFlows(gen, quietLogger())

	before := sampleTemplate()
	got, err := flows.EditTemplate(context.Background(), before, "cmd")
	assert.True(t, errors.Is(err, models.ErrInvalidTemplate))
	assert.Equal(t, before, got)
}

func TestEditTemplateRejectsInvalidReplacement(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		return `{"id":"t1","name":"Promo","layers":[{"id":"","name":"Broken","type":"text","properties":{}}]}`, nil
	}}
	flows := NewFlows(gen, quietLogger())

	before := sampleTemplate()
	got, err := flows.EditTemplate(context.Background(), before, "cmd")
	assert.True(t, errors.Is(err, models.ErrInvalidTemplate))
	assert.Equal(t, before, got)
}

func TestEditTemplatePropagatesGeneratorError(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		return "", fmt.Errorf("%w: model overloaded", models.ErrServiceUnavailable)
	}}
	flows := NewFlows(gen, quietLogger())

	before := sampleTemplate()
	got, err := flows.EditTemplate(context.Background(), before, "cmd")
	assert.True(t, errors.Is(err, models.ErrServiceUnavailable))
	assert.Equal(t, before, got)
}

func TestEditTemplateUnconfiguredGenerator(t *testing.T) {
	flows := NewFlows(Unconfigured{}, quietLogger())

	before := sampleTemplate()
	got, err := flows.EditTemplate(context.Background(), before, "cmd")
	assert.True(t, errors.Is(err, models.ErrConfiguration))
	assert.Equal(t, before, got)
}

func TestProcessTemplateFile(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, input string) (string, error) {
		assert.Contains(t, input, "summer-sale.mp4")
		return `{"name":"Summer Sale","thumbnailUrl":"https://placehold.co/320x180","thumbnailHint":"summer sale","layers":[
			{"id":"l1","name":"Title","type":"text","properties":{"content":{"value":"Summer Sale","kind":"text","label":"Content"}}},
			{"id":"l2","name":"Background","type":"image","properties":{"source":{"value":"https://placehold.co/1920x1080","kind":"file","label":"Source"}}}
		]}`, nil
	}}
	flows := NewFlows(gen, quietLogger())

	got, err := flows.ProcessTemplateFile(context.Background(), "summer-sale.mp4")
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "Summer Sale", got.Name)
	require.Len(t, got.Layers, 2)
	require.NoError(t, got.Validate())
}

func TestProcessTemplateFileNameFallback(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		return `{"layers":[{"id":"l1","name":"Title","type":"text","properties":{}}]}`, nil
	}}
	flows := NewFlows(gen, quietLogger())

	got, err := flows.ProcessTemplateFile(context.Background(), "clip.mov")
	require.NoError(t, err)
	assert.Equal(t, "clip.mov", got.Name)
}

func TestProcessTemplateFileRejectsInvalid(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, _ string) (string, error) {
		return `{"name":"Bad","layers":[{"id":"l1","name":"Broken","type":"sticker","properties":{}}]}`, nil
	}}
	flows := NewFlows(gen, quietLogger())

	_, err := flows.ProcessTemplateFile(context.Background(), "bad.mp4")
	assert.True(t, errors.Is(err, models.ErrInvalidTemplate))
}

func TestRecommendAssets(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, input string) (string, error) {
		assert.Contains(t, input, "Number of recommendations per asset type: 2")
		return "```json\n" + `{"fontRecommendations":["Inter","Oswald"],"stockVideoRecommendations":["beach b-roll"],"imageRecommendations":["sunset"]}` + "\n```", nil
	}}
	flows := NewFlows(gen, quietLogger())

	recs, err := flows.RecommendAssets(context.Background(), "travel vlog intro", "energetic", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inter", "Oswald"}, recs.FontRecommendations)
	assert.Equal(t, []string{"beach b-roll"}, recs.StockVideoRecommendations)
	assert.Equal(t, []string{"sunset"}, recs.ImageRecommendations)
}

func TestRecommendAssetsDefaultsCount(t *testing.T) {
	gen := &fakeGenerator{respond: func(_, input string) (string, error) {
		assert.Contains(t, input, "Number of recommendations per asset type: 3")
		return `{"fontRecommendations":[],"stockVideoRecommendations":[],"imageRecommendations":[]}`, nil
	}}
	flows := NewFlows(gen, quietLogger())

	_, err := flows.RecommendAssets(context.Background(), "d", "s", 0)
	require.NoError(t, err)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", `Sure! {"a":1} Hope that helps.`, `{"a":1}`},
		{"whitespace", "\n  {\"a\":1}  \n", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSON(tc.in))
		})
	}
}
