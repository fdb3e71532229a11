package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func objectiveFixture() []Objective {
	return []Objective{
		{ID: "pipeline", Title: "Warm outbound at scale", Enabled: true},
		{ID: "renewals", Title: "Proactive renewal success plans", Enabled: true},
		{ID: "support", Title: "Tier-1 ticket automation", Enabled: false},
	}
}

func enabledIDs(list []Objective) []string {
	var ids []string
	for _, o := range EnabledObjectives(list) {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestToggleObjective(t *testing.T) {
	list := objectiveFixture()

	toggled := ToggleObjective(list, "support")
	assert.Equal(t, []string{"pipeline", "renewals", "support"}, enabledIDs(toggled))
	// input is untouched
	assert.False(t, list[2].Enabled)
}

func TestToggleObjective_TwiceRestoresEnabledSet(t *testing.T) {
	list := objectiveFixture()
	for _, id := range []string{"pipeline", "renewals", "support"} {
		twice := ToggleObjective(ToggleObjective(list, id), id)
		assert.Equal(t, enabledIDs(list), enabledIDs(twice), "id=%s", id)
	}
}

func TestToggleObjective_UnknownID(t *testing.T) {
	list := objectiveFixture()
	assert.Equal(t, list, ToggleObjective(list, "nope"))
}

func TestToggleIntegrationAndAutomation(t *testing.T) {
	integrations := []Integration{{ID: "slack", Enabled: true}, {ID: "notion"}}
	integrations = ToggleIntegration(integrations, "notion")
	assert.Len(t, EnabledIntegrations(integrations), 2)
	integrations = ToggleIntegration(integrations, "slack")
	assert.Equal(t, []Integration{{ID: "notion", Enabled: true}}, EnabledIntegrations(integrations))

	automations := []Automation{{ID: "renewal-radar", Enabled: true}}
	automations = ToggleAutomation(automations, "renewal-radar")
	assert.Empty(t, EnabledAutomations(automations))
	automations = ToggleAutomation(automations, "renewal-radar")
	assert.Len(t, EnabledAutomations(automations), 1)
}

func TestSnapshotClone(t *testing.T) {
	s := validRequest().Snapshot
	c := s.Clone()
	c.Persona.Competencies[0] = "changed"
	c.Objectives[0].Enabled = false

	assert.Equal(t, "Pipeline acceleration strategy", s.Persona.Competencies[0])
	assert.True(t, s.Objectives[0].Enabled)
}
