package relay

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/agentstudio/internal/llm"
	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/internal/prompt"
	"github.com/kazz187/agentstudio/internal/studio"
	"github.com/kazz187/agentstudio/pkg/cerr"
)

type fakeProvider struct {
	mu            sync.Mutex
	factoryCalls  int
	completeCalls int
	factoryErr    error
	reply         string
	err           error
	panicWith     any
	block         bool
	gotMessages   []llm.Message
	gotParams     llm.Params
	gotCreds      llm.Credentials
}

func (f *fakeProvider) Factory(_ context.Context, creds llm.Credentials) (llm.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.factoryCalls++
	f.gotCreds = creds
	if f.factoryErr != nil {
		return nil, f.factoryErr
	}
	return f, nil
}

func (f *fakeProvider) Complete(ctx context.Context, messages []llm.Message, params llm.Params) (string, error) {
	f.mu.Lock()
	f.completeCalls++
	f.gotMessages = messages
	f.gotParams = params
	f.mu.Unlock()
	if f.panicWith != nil {
		panic(f.panicWith)
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func testConfig() Config {
	return Config{Provider: "fake", APIKey: "sk-test", Model: "gpt-4o-mini", Temperature: 0.2}
}

func validRequest() *studio.ChatRequest {
	atlas := preset.Atlas()
	return &studio.ChatRequest{
		Snapshot:   atlas.Snapshot,
		Messages:   atlas.IntroMessages,
		UserPrompt: "Draft a renewal plan for Acme",
	}
}

func TestRelay_HappyPath(t *testing.T) {
	fp := &fakeProvider{reply: "Plan: ..."}
	r := New(testConfig(), fp.Factory)

	resp, err := r.Chat(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, &Response{Message: "Plan: ..."}, resp)
	assert.Equal(t, 1, fp.factoryCalls)
	assert.Equal(t, 1, fp.completeCalls)
	assert.Equal(t, llm.Params{Model: "gpt-4o-mini", Temperature: 0.2}, fp.gotParams)
	assert.Equal(t, "sk-test", fp.gotCreds.APIKey)
}

func TestRelay_DispatchesSystemHistoryThenWrappedPrompt(t *testing.T) {
	fp := &fakeProvider{reply: "ok"}
	r := New(testConfig(), fp.Factory)
	req := validRequest()
	req.Messages = append(req.Messages,
		studio.Message{Role: studio.RoleUser, Content: "What about Q3?"},
		studio.Message{Role: studio.RoleAssistant, Content: "Q3 focuses on renewals."},
	)

	_, err := r.Chat(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, fp.gotMessages, 5)
	assert.Equal(t, llm.Message{Role: llm.RoleSystem, Content: prompt.Compile(req.Snapshot)}, fp.gotMessages[0])
	assert.Equal(t, llm.RoleAssistant, fp.gotMessages[1].Role)
	assert.Equal(t, req.Messages[0].Content, fp.gotMessages[1].Content)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "What about Q3?"}, fp.gotMessages[2])
	assert.Equal(t, llm.Message{Role: llm.RoleAssistant, Content: "Q3 focuses on renewals."}, fp.gotMessages[3])

	last := fp.gotMessages[4]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.Contains(t, last.Content, "Draft a renewal plan for Acme")
	assert.Contains(t, last.Content, "action plan with bullet points")
	assert.Contains(t, last.Content, "suggested automations to trigger")
	assert.Contains(t, last.Content, "quantify the projected impact")
}

func TestRelay_EmptyCompletionIsRelayedAsEmptyMessage(t *testing.T) {
	fp := &fakeProvider{reply: ""}
	r := New(testConfig(), fp.Factory)

	resp, err := r.Chat(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "", resp.Message)
	assert.Equal(t, KindNone, Kind(err))
}

func TestRelay_MissingCredential(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	cfg := testConfig()
	cfg.APIKey = ""
	r := New(cfg, fp.Factory)

	// Even an invalid request reports the configuration problem first.
	resp, err := r.Chat(context.Background(), &studio.ChatRequest{})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, KindConfiguration, Kind(err))
	assert.True(t, cerr.IsCode(err, cerr.Unavailable))
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Zero(t, fp.factoryCalls)
	assert.Zero(t, fp.completeCalls)
}

func TestRelay_RejectsMalformedTone(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	r := New(testConfig(), fp.Factory)
	req := validRequest()
	req.Snapshot.Persona.Tone = "Sarcastic"

	_, err := r.Chat(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, KindValidation, Kind(err))

	var ce *cerr.Error
	require.True(t, errors.As(err, &ce))
	require.Len(t, ce.Violations, 1)
	assert.Equal(t, "snapshot.persona.tone", ce.Violations[0].Field)
	assert.Equal(t, studio.RuleEnum, ce.Violations[0].Rule)
	assert.Zero(t, fp.factoryCalls)
	assert.Zero(t, fp.completeCalls)
}

func TestRelay_RejectsEmptyHistory(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	r := New(testConfig(), fp.Factory)
	req := validRequest()
	req.Messages = nil

	_, err := r.Chat(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, KindValidation, Kind(err))
	assert.Zero(t, fp.completeCalls)
}

func TestRelay_ProviderFailureIsGeneric(t *testing.T) {
	fp := &fakeProvider{err: errors.New("401 invalid api key sk-test at https://internal.example")}
	r := New(testConfig(), fp.Factory)

	resp, err := r.Chat(context.Background(), validRequest())
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, KindRelayFailure, Kind(err))
	assert.Equal(t, 1, fp.completeCalls)

	var ce *cerr.Error
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, msgRelayFailure, ce.Msg)
	assert.NotContains(t, ce.Msg, "sk-test")
	assert.Empty(t, ce.Violations)
}

func TestRelay_FactoryFailureIsRelayFailure(t *testing.T) {
	fp := &fakeProvider{factoryErr: errors.New("bad base url")}
	r := New(testConfig(), fp.Factory)

	_, err := r.Chat(context.Background(), validRequest())
	assert.Equal(t, KindRelayFailure, Kind(err))
	assert.Zero(t, fp.completeCalls)
}

func TestRelay_ProviderPanicIsRelayFailure(t *testing.T) {
	fp := &fakeProvider{panicWith: "nil map write"}
	r := New(testConfig(), fp.Factory)

	_, err := r.Chat(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, KindRelayFailure, Kind(err))
}

func TestRelay_TimeoutBoundsProviderCall(t *testing.T) {
	fp := &fakeProvider{block: true}
	cfg := testConfig()
	cfg.Timeout = 50 * time.Millisecond
	r := New(cfg, fp.Factory)

	start := time.Now()
	_, err := r.Chat(context.Background(), validRequest())
	require.Error(t, err)
	assert.Equal(t, KindRelayFailure, Kind(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRelay_DoesNotMutateRequest(t *testing.T) {
	fp := &fakeProvider{reply: "ok"}
	r := New(testConfig(), fp.Factory)
	req := validRequest()
	before := req.Snapshot.Clone()
	beforeMessages := append([]studio.Message(nil), req.Messages...)

	_, err := r.Chat(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, before, req.Snapshot)
	assert.Equal(t, beforeMessages, req.Messages)
}

func TestNewDefaults(t *testing.T) {
	r := New(Config{APIKey: "k"}, (&fakeProvider{}).Factory)
	assert.Equal(t, DefaultModel, r.cfg.Model)
	assert.Equal(t, DefaultTimeout, r.cfg.Timeout)
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindNone, Kind(nil))
	assert.Equal(t, KindRelayFailure, Kind(errors.New("raw")))
	assert.Equal(t, "validation", KindValidation.String())
	assert.True(t, strings.HasPrefix(newRelayFailure(errors.New("x")).Error(), "[internal]"))
}
