package preset

import "github.com/kazz187/agentstudio/internal/studio"

// Preset is a named starting configuration for the studio: the snapshot the
// presentation layer loads plus the messages that open the conversation.
type Preset struct {
	Name          string           `json:"name" yaml:"name"`
	Title         string           `json:"title" yaml:"title"`
	Description   string           `json:"description" yaml:"description"`
	Snapshot      studio.Snapshot  `json:"snapshot" yaml:"snapshot"`
	IntroMessages []studio.Message `json:"introMessages" yaml:"intro_messages"`
}

// Summary is the listing view of a preset.
type Summary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (p *Preset) Summary() Summary {
	return Summary{Name: p.Name, Title: p.Title, Description: p.Description}
}

// Validate checks everything a chat turn will later send: the snapshot and
// the intro messages that seed the history.
func (p *Preset) Validate() []studio.Violation {
	vs := studio.ValidateSnapshot(&p.Snapshot)
	return append(vs, studio.ValidateMessages("intro_messages", p.IntroMessages)...)
}
