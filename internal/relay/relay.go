// Package relay runs one chat turn: validate the request, compile the
// system prompt, make exactly one provider call and classify the outcome.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kazz187/agentstudio/internal/llm"
	"github.com/kazz187/agentstudio/internal/prompt"
	"github.com/kazz187/agentstudio/internal/studio"
	"github.com/kazz187/agentstudio/pkg/cerr"
	"github.com/kazz187/agentstudio/pkg/clog"
	"github.com/kazz187/agentstudio/pkg/panicerr"
)

const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.2
	DefaultTimeout     = 60 * time.Second
)

// Config is the deployment-level configuration of the relay. APIKey may be
// empty; calls then fail with a configuration error.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

type Response struct {
	Message string `json:"message"`
}

type Relay struct {
	cfg     Config
	factory llm.Factory
}

func New(cfg Config, factory llm.Factory) *Relay {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Relay{cfg: cfg, factory: factory}
}

// Chat handles one turn. Errors are *cerr.Error values whose code tells the
// configuration, validation and relay-failure cases apart; see Kind.
func (r *Relay) Chat(ctx context.Context, req *studio.ChatRequest) (*Response, error) {
	if r.cfg.APIKey == "" {
		return nil, newConfigurationError()
	}

	if violations := studio.ValidateChatRequest(req); len(violations) > 0 {
		return nil, newValidationError(violations)
	}

	messages := BuildMessages(req)

	clog.AddProvider(ctx, r.cfg.Provider, r.cfg.Model)
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	text, err := panicerr.Call(ctx, func(ctx context.Context) (string, error) {
		client, err := r.factory(ctx, llm.Credentials{
			APIKey:     r.cfg.APIKey,
			BaseURL:    r.cfg.BaseURL,
			HTTPClient: r.cfg.HTTPClient,
		})
		if err != nil {
			return "", fmt.Errorf("build %s client: %w", r.cfg.Provider, err)
		}
		return client.Complete(ctx, messages, llm.Params{
			Model:       r.cfg.Model,
			Temperature: r.cfg.Temperature,
		})
	})
	if err != nil {
		slog.ErrorContext(ctx, "agent relay failed", "provider", r.cfg.Provider, "model", r.cfg.Model, "error", err)
		return nil, newRelayFailure(err)
	}
	return &Response{Message: text}, nil
}

// BuildMessages assembles the model request for a validated chat request:
// the compiled system prompt, the caller's history in order, then the
// wrapped user prompt.
func BuildMessages(req *studio.ChatRequest) []llm.Message {
	messages := make([]llm.Message, 0, len(req.Messages)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: prompt.Compile(req.Snapshot)})
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: llm.Role(m.Role), Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt.Turn(req.UserPrompt)})
	return messages
}

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindConfiguration
	KindValidation
	KindRelayFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindRelayFailure:
		return "relay_failure"
	default:
		return "unknown"
	}
}

const (
	msgConfiguration = "model provider credential is not configured"
	msgValidation    = "invalid request"
	msgRelayFailure  = "failed to generate a response from the agent"
)

// ErrMissingCredential is the underlying cause of configuration errors.
var ErrMissingCredential = errors.New("provider api key is empty")

func newConfigurationError() error {
	return cerr.NewError(cerr.Unavailable, msgConfiguration, ErrMissingCredential)
}

func newValidationError(violations []studio.Violation) error {
	e := cerr.NewError(cerr.InvalidArgument, msgValidation, nil)
	for _, v := range violations {
		e.AddViolation(v.Field, v.Rule, v.Message)
	}
	return e
}

func newRelayFailure(err error) error {
	return cerr.NewError(cerr.Internal, msgRelayFailure, err)
}

// Kind classifies an error returned by Chat.
func Kind(err error) ErrorKind {
	switch cerr.CodeOf(err) {
	case cerr.OK:
		return KindNone
	case cerr.Unavailable:
		return KindConfiguration
	case cerr.InvalidArgument:
		return KindValidation
	default:
		return KindRelayFailure
	}
}
