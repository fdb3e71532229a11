package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements Client with the Gemini API. System entries are
// folded into the system instruction since Gemini has no system role.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, creds Credentials) (Client, error) {
	if creds.APIKey == "" {
		return nil, errors.New("gemini api key must be provided")
	}
	cfg := &genai.ClientConfig{
		APIKey:     creds.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClientOrDefault(creds.HTTPClient),
	}
	if creds.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: creds.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("at least one message must be provided")
	}
	var (
		system   []*genai.Part
		contents []*genai.Content
	)
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, genai.NewPartFromText(m.Content))
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	temp := float32(params.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromParts(system, genai.RoleUser)
	}

	res, err := c.client.Models.GenerateContent(ctx, params.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return res.Text(), nil
}

var _ Client = (*GeminiClient)(nil)
