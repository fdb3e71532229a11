package preset

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/agentstudio/internal/studio"
	"github.com/kazz187/agentstudio/pkg/cerr"
)

type Server struct {
	repo Repository
}

func NewServer(repo Repository) *Server {
	return &Server{repo: repo}
}

type ListPresetsResponse struct {
	Presets []Summary `json:"presets"`
}

type GetPresetResponse struct {
	Preset *Preset `json:"preset"`
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/presets", s.ListPresets)
	r.Get("/presets/{name}", s.GetPreset)
}

func (s *Server) ListPresets(_ http.ResponseWriter, r *http.Request) {
	presets, err := s.repo.List(r.Context())
	if err != nil {
		cerr.SetJSONError(r.Context(), err)
		return
	}
	summaries := make([]Summary, len(presets))
	for i, p := range presets {
		summaries[i] = p.Summary()
	}
	cerr.SetJSONResponse(r.Context(), &ListPresetsResponse{Presets: summaries})
}

func (s *Server) GetPreset(_ http.ResponseWriter, r *http.Request) {
	p, err := s.repo.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		cerr.SetJSONError(r.Context(), err)
		return
	}
	p.IntroMessages = stampMessages(p.IntroMessages)
	cerr.SetJSONResponse(r.Context(), &GetPresetResponse{Preset: p})
}

// stampMessages gives authored intro messages fresh ids and timestamps so
// each loaded conversation starts with unique entries.
func stampMessages(in []studio.Message) []studio.Message {
	out := make([]studio.Message, len(in))
	for i, m := range in {
		out[i] = studio.NewMessage(m.Role, m.Content)
	}
	return out
}
