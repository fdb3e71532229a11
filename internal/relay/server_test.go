package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/agentstudio/internal/studio"
	"github.com/kazz187/agentstudio/pkg/cerr"
)

type errorBody struct {
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	Violations []cerr.Violation `json:"violations"`
}

func newTestRouter(r *Relay) http.Handler {
	router := chi.NewRouter()
	router.Use(cerr.NewJSONResponseChiMiddleware())
	NewServer(r).Routes(router)
	return router
}

func postAgent(t *testing.T, h http.Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/agent", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestServer_Chat(t *testing.T) {
	fp := &fakeProvider{reply: "Plan: ..."}
	h := newTestRouter(New(testConfig(), fp.Factory))

	rec := postAgent(t, h, mustJSON(t, validRequest()))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Plan: ..."}`, rec.Body.String())
}

func TestServer_ChatValidationError(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	h := newTestRouter(New(testConfig(), fp.Factory))
	req := validRequest()
	req.Snapshot.Persona.Tone = "Sarcastic"
	req.UserPrompt = ""

	rec := postAgent(t, h, mustJSON(t, req))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_argument", body.Code)
	assert.Equal(t, msgValidation, body.Message)
	require.Len(t, body.Violations, 2)
	assert.Equal(t, "snapshot.persona.tone", body.Violations[0].Field)
	assert.Equal(t, "userPrompt", body.Violations[1].Field)
	assert.Zero(t, fp.completeCalls)
}

func TestServer_ChatMalformedJSON(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	h := newTestRouter(New(testConfig(), fp.Factory))

	rec := postAgent(t, h, []byte(`{"snapshot":`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_argument", body.Code)
	require.Len(t, body.Violations, 1)
	assert.Equal(t, "json", body.Violations[0].Rule)
	assert.Zero(t, fp.factoryCalls)
}

func TestServer_ChatMissingCredential(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	cfg := testConfig()
	cfg.APIKey = ""
	h := newTestRouter(New(cfg, fp.Factory))

	rec := postAgent(t, h, []byte(`not even json`))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body.Code)
	assert.Equal(t, msgConfiguration, body.Message)
	assert.Zero(t, fp.factoryCalls)
}

func TestServer_ChatProviderFailureHidesDetails(t *testing.T) {
	fp := &fakeProvider{err: errors.New("upstream 429: quota exceeded for org-secret")}
	h := newTestRouter(New(testConfig(), fp.Factory))

	rec := postAgent(t, h, mustJSON(t, validRequest()))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "org-secret")
	assert.NotContains(t, rec.Body.String(), "429")

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal", body.Code)
	assert.Equal(t, msgRelayFailure, body.Message)
	assert.Empty(t, body.Violations)
}

func TestServer_ChatTypeMismatchKeepsFieldPath(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	h := newTestRouter(New(testConfig(), fp.Factory))

	body := strings.Replace(string(mustJSON(t, validRequest())), `"enabled":true`, `"enabled":"yes"`, 1)
	rec := postAgent(t, h, []byte(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "snapshot.objectives.enabled", resp.Violations[0].Field)
	assert.Equal(t, studio.RuleType, resp.Violations[0].Rule)
	assert.Zero(t, fp.factoryCalls)
}

func TestServer_ChatMissingEnabledFlag(t *testing.T) {
	fp := &fakeProvider{reply: "never"}
	h := newTestRouter(New(testConfig(), fp.Factory))

	body := strings.Replace(string(mustJSON(t, validRequest())), `,"enabled":false`, ``, 1)
	rec := postAgent(t, h, []byte(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "snapshot.objectives[3].enabled", resp.Violations[0].Field)
	assert.Equal(t, studio.RuleRequired, resp.Violations[0].Rule)
	assert.Zero(t, fp.factoryCalls)
}
