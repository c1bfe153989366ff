package aiflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"videocanvas/api-gateway/internal/editor"
	"videocanvas/api-gateway/models"
)

const editPreamble = `You are an expert video editing assistant. You will be given a JSON object representing a video template and a natural-language command. Apply the command to the template and respond with ONLY the modified JSON object for the entire template, conforming to the same schema. Do not add any conversational text.`

const processPreamble = `You simulate a video template file processor. Given a filename, respond with ONLY a JSON object for a plausible template: fields id, name (derived from the filename), thumbnailUrl (a placeholder image URL), thumbnailHint (two words), and layers (at least two, each with id, name, type of text|image|shape, and a properties map of {value, kind, label, options?}).`

const recommendPreamble = `You recommend creative assets for video projects. Respond with ONLY a JSON object with fields fontRecommendations, stockVideoRecommendations and imageRecommendations, each an array of strings.`

// Flows runs the generative use cases against an injected Generator.
type Flows struct {
	gen Generator
	log *logrus.Logger
}

// NewFlows creates the flow runner.
func NewFlows(gen Generator, log *logrus.Logger) *Flows {
	return &Flows{gen: gen, log: log}
}

// EditTemplate applies a free-text command to a template via the generative
// service. Whatever template the service returns becomes the candidate
// replacement; it is validated before acceptance and the prior template is
// returned unchanged on any failure. One attempt per command, no retry.
func (f *Flows) EditTemplate(ctx context.Context, t models.Template, command string) (models.Template, error) {
	serialized, err := json.Marshal(t)
	if err != nil {
		return t, fmt.Errorf("failed to serialize template: %w", err)
	}

	input := fmt.Sprintf("USER COMMAND:\n%q\n\nCURRENT TEMPLATE:\n%s", command, serialized)
	out, err := f.gen.Generate(ctx, editPreamble, input)
	if err != nil {
		return t, err
	}

	var replacement models.Template
	if err := json.Unmarshal([]byte(extractJSON(out)), &replacement); err != nil {
		f.log.WithField("error", err.Error()).Warn("AI edit response did not decode to a template")
		return t, fmt.Errorf("%w: response was not a template: %v", models.ErrInvalidTemplate, err)
	}
	// The model occasionally drops the id; the edit never changes identity.
	if replacement.ID == "" {
		replacement.ID = t.ID
	}
	return editor.ReplaceTemplate(t, replacement)
}

// ProcessTemplateFile synthesizes a template from an imported filename.
func (f *Flows) ProcessTemplateFile(ctx context.Context, fileName string) (models.Template, error) {
	out, err := f.gen.Generate(ctx, processPreamble, "Filename: "+fileName)
	if err != nil {
		return models.Template{}, err
	}

	var t models.Template
	if err := json.Unmarshal([]byte(extractJSON(out)), &t); err != nil {
		return models.Template{}, fmt.Errorf("%w: response was not a template: %v", models.ErrInvalidTemplate, err)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Name == "" {
		t.Name = fileName
	}
	if err := t.Validate(); err != nil {
		return models.Template{}, err
	}
	return t, nil
}

// AssetRecommendations is the structured output of RecommendAssets.
type AssetRecommendations struct {
	FontRecommendations       []string `json:"fontRecommendations"`
	StockVideoRecommendations []string `json:"stockVideoRecommendations"`
	ImageRecommendations      []string `json:"imageRecommendations"`
}

// RecommendAssets suggests fonts, stock videos, and images for a project
// description.
func (f *Flows) RecommendAssets(ctx context.Context, projectDescription, desiredStyle string, numRecommendations int) (AssetRecommendations, error) {
	if numRecommendations <= 0 {
		numRecommendations = 3
	}
	input := fmt.Sprintf("Project description: %s\nDesired style: %s\nNumber of recommendations per asset type: %d",
		projectDescription, desiredStyle, numRecommendations)

	out, err := f.gen.Generate(ctx, recommendPreamble, input)
	if err != nil {
		return AssetRecommendations{}, err
	}

	var recs AssetRecommendations
	if err := json.Unmarshal([]byte(extractJSON(out)), &recs); err != nil {
		return AssetRecommendations{}, fmt.Errorf("%w: response was not a recommendation set: %v", models.ErrServiceUnavailable, err)
	}
	return recs, nil
}

// extractJSON strips markdown code fences and surrounding chatter that chat
// models wrap around JSON payloads.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	s = strings.TrimSpace(s)
	// Fall back to the outermost braces when the model added prose anyway.
	if !strings.HasPrefix(s, "{") {
		if start := strings.Index(s, "{"); start >= 0 {
			if end := strings.LastIndex(s, "}"); end > start {
				s = s[start : end+1]
			}
		}
	}
	return s
}
