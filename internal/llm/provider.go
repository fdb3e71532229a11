// Package llm is the port to chat-completion providers and its adapters.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of a chat-completion request.
type Message struct {
	Role    Role
	Content string
}

// Params are the generation knobs of one request.
type Params struct {
	Model       string
	Temperature float64
}

// Client submits an ordered list of messages and returns the text of the
// first candidate completion, or "" when the provider returned no content.
type Client interface {
	Complete(ctx context.Context, messages []Message, params Params) (string, error)
}

// Credentials carry what a provider needs to build a client.
type Credentials struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Factory builds a client for one call.
type Factory func(ctx context.Context, creds Credentials) (Client, error)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderEcho   = "echo"
)

const defaultHTTPTimeout = 60 * time.Second

// NewFactory returns the factory for the named provider.
func NewFactory(provider string) (Factory, error) {
	switch provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient, nil
	case ProviderGemini:
		return NewGeminiClient, nil
	case ProviderEcho:
		return NewEchoClient, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

func httpClientOrDefault(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}
