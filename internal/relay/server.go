package relay

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/agentstudio/internal/studio"
	"github.com/kazz187/agentstudio/pkg/cerr"
)

// maxRequestBytes bounds the decoded chat payload.
const maxRequestBytes = 1 << 20

type Server struct {
	relay *Relay
}

func NewServer(relay *Relay) *Server {
	return &Server{relay: relay}
}

func (s *Server) Routes(r chi.Router) {
	r.Post("/agent", s.Chat)
}

func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	// A missing credential is reported before the body is even read.
	if s.relay.cfg.APIKey == "" {
		cerr.SetJSONError(ctx, newConfigurationError())
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		cerr.SetJSONError(ctx, cerr.NewError(cerr.InvalidArgument, msgValidation, fmt.Errorf("read request: %w", err)).
			AddViolation("", studio.RuleJSON, fmt.Sprintf("request body must be at most %d bytes", maxRequestBytes)))
		return
	}
	req, violations := studio.DecodeChatRequest(data)
	if req == nil {
		cerr.SetJSONError(ctx, newValidationError(violations))
		return
	}
	if len(violations) > 0 {
		cerr.SetJSONError(ctx, newValidationError(append(violations, studio.ValidateChatRequest(req)...)))
		return
	}

	resp, err := s.relay.Chat(ctx, req)
	cerr.SetJSONResult(ctx, resp, err)
}
