package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/internal/relay"
	"github.com/kazz187/agentstudio/internal/studio"
)

// apiError is the JSON error envelope written by the server.
type apiError struct {
	Status     int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Violations []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"violations"`
}

func (e *apiError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	details := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		details[i] = fmt.Sprintf("%s %s", v.Field, v.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(details, "; "))
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string, timeout time.Duration) *apiClient {
	return &apiClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *apiClient) Chat(ctx context.Context, req *studio.ChatRequest) (string, error) {
	var resp relay.Response
	if err := c.do(ctx, http.MethodPost, "/api/agent", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *apiClient) ListPresets(ctx context.Context) ([]preset.Summary, error) {
	var resp preset.ListPresetsResponse
	if err := c.do(ctx, http.MethodGet, "/api/presets", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Presets, nil
}

func (c *apiClient) GetPreset(ctx context.Context, name string) (*preset.Preset, error) {
	var resp preset.GetPresetResponse
	if err := c.do(ctx, http.MethodGet, "/api/presets/"+url.PathEscape(name), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Preset, nil
}

func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach %s: %w", c.baseURL, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		apiErr := &apiError{Status: res.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("server returned %s", res.Status)
		}
		return apiErr
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
