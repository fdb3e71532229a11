package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient implements Client with the OpenAI chat completions API.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient is a Factory. Retries are disabled: one call per turn.
func NewOpenAIClient(_ context.Context, creds Credentials) (Client, error) {
	if creds.APIKey == "" {
		return nil, errors.New("openai api key must be provided")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(creds.APIKey),
		option.WithHTTPClient(httpClientOrDefault(creds.HTTPClient)),
		option.WithMaxRetries(0),
	}
	if creds.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(creds.BaseURL))
	}
	return &OpenAIClient{client: openai.NewClient(opts...)}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("at least one message must be provided")
	}
	req := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(params.Model),
		Messages:    make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
		Temperature: openai.Float(params.Temperature),
	}
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			req.Messages = append(req.Messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			req.Messages = append(req.Messages, openai.AssistantMessage(m.Content))
		default:
			req.Messages = append(req.Messages, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Client = (*OpenAIClient)(nil)
