package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/agentstudio/internal/llm"
	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/internal/relay"
	"github.com/kazz187/agentstudio/internal/studio"
	"github.com/kazz187/agentstudio/pkg/cerr"
)

type staticRepository struct{}

func (staticRepository) Get(_ context.Context, name string) (*preset.Preset, error) {
	if name != preset.AtlasName {
		return nil, cerr.NewError(cerr.NotFound, "preset not found", nil)
	}
	return preset.Atlas(), nil
}

func (staticRepository) List(_ context.Context) ([]*preset.Preset, error) {
	return []*preset.Preset{preset.Atlas()}, nil
}

func newTestAPI(t *testing.T, apiKey string) *apiClient {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(cerr.NewJSONResponseChiMiddleware())
		relay.NewServer(relay.New(relay.Config{Provider: llm.ProviderEcho, APIKey: apiKey}, llm.NewEchoClient)).Routes(r)
		preset.NewServer(staticRepository{}).Routes(r)
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return newAPIClient(ts.URL+"/", 5*time.Second)
}

func TestAPIClient_Presets(t *testing.T) {
	c := newTestAPI(t, "offline")
	ctx := context.Background()

	list, err := c.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, preset.AtlasName, list[0].Name)

	p, err := c.GetPreset(ctx, preset.AtlasName)
	require.NoError(t, err)
	assert.Equal(t, "Atlas", p.Snapshot.Persona.Codename)

	_, err = c.GetPreset(ctx, "missing")
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestAPIClient_Chat(t *testing.T) {
	c := newTestAPI(t, "offline")
	atlas := preset.Atlas()

	reply, err := c.Chat(context.Background(), &studio.ChatRequest{
		Snapshot:   atlas.Snapshot,
		Messages:   atlas.IntroMessages,
		UserPrompt: "Plan my week",
	})
	require.NoError(t, err)
	assert.Contains(t, reply, "Plan my week")
}

func TestAPIClient_ChatErrors(t *testing.T) {
	atlas := preset.Atlas()

	_, err := newTestAPI(t, "offline").Chat(context.Background(), &studio.ChatRequest{Snapshot: atlas.Snapshot})
	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "messages must contain at least 1 item")

	_, err = newTestAPI(t, "").Chat(context.Background(), &studio.ChatRequest{})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "model provider credential is not configured", apiErr.Error())
}
