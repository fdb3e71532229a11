package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kazz187/agentstudio/internal/preset"
	"github.com/kazz187/agentstudio/internal/studio"
)

func TestCompile_Deterministic(t *testing.T) {
	s := preset.Atlas().Snapshot
	assert.Equal(t, Compile(s), Compile(s))
	assert.Equal(t, Compile(s), Compile(s.Clone()))
}

func TestCompile_Header(t *testing.T) {
	out := Compile(preset.Atlas().Snapshot)

	assert.True(t, strings.HasPrefix(out, "You are Atlas, an AI sales agent built for the B2B SaaS industry."))
	assert.Contains(t, out, "Tone: Professional. ")
	assert.Contains(t, out, "Voice: Advisor. ")
	assert.Contains(t, out, "1. Pipeline acceleration strategy\n2. Customer expansion playbooks\n")
	assert.Contains(t, out, "1. Never promise incentives without approval\n")
	assert.Contains(t, out, "Response guidelines:")
}

func TestCompile_OnlyEnabledEntries(t *testing.T) {
	s := preset.Atlas().Snapshot
	out := Compile(s)

	for _, o := range s.Objectives {
		if o.Enabled {
			assert.Contains(t, out, o.Title, o.ID)
		} else {
			assert.NotContains(t, out, o.Title, o.ID)
		}
	}
	for _, in := range s.Integrations {
		if in.Enabled {
			assert.Contains(t, out, in.Name, in.ID)
		} else {
			assert.NotContains(t, out, in.Name, in.ID)
		}
	}
	for _, a := range s.Automations {
		if a.Enabled {
			assert.Contains(t, out, a.Title, a.ID)
			assert.Contains(t, out, "trigger: "+a.Trigger)
		} else {
			assert.NotContains(t, out, a.Title, a.ID)
		}
	}
	assert.Contains(t, out, "- Warm outbound at scale [Revenue, High priority] success metric: Meetings booked / rep\n")
}

func TestCompile_NoneEnabled(t *testing.T) {
	s := preset.Atlas().Snapshot
	for i := range s.Objectives {
		s.Objectives[i].Enabled = false
	}
	s.Integrations = nil
	s.Automations = []studio.Automation{}

	out := Compile(s)
	assert.Equal(t, 3, strings.Count(out, noneEnabled))
	assert.NotContains(t, out, "Warm outbound at scale")
}

func TestCompile_ToggleChangesOutput(t *testing.T) {
	s := preset.Atlas().Snapshot
	toggled := s
	toggled.Objectives = studio.ToggleObjective(s.Objectives, "support")

	assert.NotContains(t, Compile(s), "Tier-1 ticket automation")
	assert.Contains(t, Compile(toggled), "Tier-1 ticket automation")
}

func TestCompile_DoesNotMutateSnapshot(t *testing.T) {
	s := preset.Atlas().Snapshot
	before := s.Clone()
	_ = Compile(s)
	assert.Equal(t, before, s)
}

func TestCompile_NeverEmpty(t *testing.T) {
	assert.NotEmpty(t, Compile(studio.Snapshot{}))
}

func TestTurn(t *testing.T) {
	out := Turn("Build a Q3 plan")
	assert.True(t, strings.HasPrefix(out, "You are responding to the following input from the buyer: Build a Q3 plan."))
	assert.Contains(t, out, "action plan with bullet points")
}
