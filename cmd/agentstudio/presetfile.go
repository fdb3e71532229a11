package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/internal/studio"
)

// loadPresetFile reads a preset in the same YAML layout the server reads
// from storage. A file without intro messages gets a default greeting so
// the conversation never starts empty.
func loadPresetFile(path string) (*preset.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var p preset.Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(p.IntroMessages) == 0 {
		p.IntroMessages = []studio.Message{{
			Role:    studio.RoleAssistant,
			Content: fmt.Sprintf("Hi there! I'm %s. What should we work on?", p.Snapshot.Persona.Codename),
		}}
	}
	if vs := p.Validate(); len(vs) > 0 {
		msgs := make([]string, len(vs))
		for i, v := range vs {
			msgs[i] = v.String()
		}
		return nil, fmt.Errorf("invalid preset %s:\n  %s", path, strings.Join(msgs, "\n  "))
	}
	return &p, nil
}
