// Package aiflow wraps the generative-AI collaborator behind structured-in,
// structured-out flows: natural-language template edits, template synthesis
// from imported filenames, and asset recommendations.
package aiflow

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"videocanvas/api-gateway/models"
)

// Generator abstracts the generative service: a system prompt plus a
// structured input produce a structured (JSON) text output.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, input string) (string, error)
}

const defaultChatModel = "command-r-plus"

// CohereGenerator implements Generator with the Cohere chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator builds a generator from the given API key. Fails with
// models.ErrConfiguration when no key is supplied.
func NewCohereGenerator(apiKey, model string) (*CohereGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: generative AI key is not configured", models.ErrConfiguration)
	}
	if model == "" {
		model = defaultChatModel
	}
	httpClient := &http.Client{Timeout: 60 * time.Second}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereGenerator{client: client, model: model}, nil
}

// Unconfigured is the Generator used when no AI credential is present. Every
// call reports the missing configuration instead of a transport failure.
type Unconfigured struct{}

// Generate always fails with models.ErrConfiguration.
func (Unconfigured) Generate(ctx context.Context, systemPrompt, input string) (string, error) {
	return "", fmt.Errorf("%w: generative AI key is not configured", models.ErrConfiguration)
}

// Generate sends one chat request and returns the model's text. Transport and
// quota failures surface as models.ErrServiceUnavailable.
func (g *CohereGenerator) Generate(ctx context.Context, systemPrompt, input string) (string, error) {
	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Message:  input,
		Preamble: &systemPrompt,
		Model:    &g.model,
	})
	if err != nil {
		return "", fmt.Errorf("%w: generative service error: %v", models.ErrServiceUnavailable, err)
	}
	if resp == nil || resp.Text == "" {
		return "", fmt.Errorf("%w: generative service returned an empty response", models.ErrServiceUnavailable)
	}
	return resp.Text, nil
}
