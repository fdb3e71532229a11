package llm

import (
	"context"
	"fmt"
	"strings"
)

// EchoClient is an offline provider for local development. It answers with
// a fixed-shape plan that quotes the last user entry.
type EchoClient struct{}

func NewEchoClient(_ context.Context, _ Credentials) (Client, error) {
	return &EchoClient{}, nil
}

func (c *EchoClient) Complete(ctx context.Context, messages []Message, params Params) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var last string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			last = messages[i].Content
			break
		}
	}
	firstLine, _, _ := strings.Cut(last, "\n")
	return fmt.Sprintf("Plan (%s, offline echo):\n- Received: %s\n- Configure a real provider for generated plans.", params.Model, firstLine), nil
}

var _ Client = (*EchoClient)(nil)
