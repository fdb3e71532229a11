// Package prompt renders an agent configuration snapshot into the system
// prompt placed in front of every model call.
package prompt

import (
	"fmt"
	"strings"

	"github.com/kazz187/agentstudio/internal/studio"
)

const noneEnabled = "None enabled."

var toneGuides = map[studio.Tone]string{
	studio.ToneProfessional:   "Polished and precise. Lead with the business outcome, avoid slang.",
	studio.ToneConversational: "Warm and plain-spoken. Short sentences, speak to the buyer directly.",
	studio.ToneAnalytical:     "Data-first. Cite the metric behind every recommendation and state assumptions.",
	studio.TonePlayful:        "Upbeat and energetic, but never at the expense of accuracy.",
}

var voiceGuides = map[studio.Voice]string{
	studio.VoiceExecutive: "Speak as an executive sponsor: strategy, risk and return on investment.",
	studio.VoiceAdvisor:   "Speak as a trusted advisor: recommend, explain trade-offs, suggest next steps.",
	studio.VoiceOperator:  "Speak as a hands-on operator: concrete steps, owners and timelines.",
}

const responseGuidelines = `Response guidelines:
- Stay inside the guardrails above at all times; refuse politely when a request would break one.
- Only recommend automations and integrations listed as enabled above.
- Tie every recommendation back to at least one active objective and its success metric.
- Prefer bullet points and quantify projected impact where possible.`

// Compile renders s into a system prompt. The output depends only on s:
// only enabled objectives, integrations and automations are rendered, and
// s is never modified.
func Compile(s studio.Snapshot) string {
	var b strings.Builder
	p := s.Persona

	fmt.Fprintf(&b, "You are %s, an AI sales agent built for the %s industry.\n", p.Codename, p.Industry)
	fmt.Fprintf(&b, "Tone: %s. %s\n", p.Tone, toneGuides[p.Tone])
	fmt.Fprintf(&b, "Voice: %s. %s\n", p.Voice, voiceGuides[p.Voice])

	b.WriteString("\nCore competencies:\n")
	writeNumbered(&b, p.Competencies)

	b.WriteString("\nGuardrails (never violate):\n")
	writeNumbered(&b, p.Guardrails)

	b.WriteString("\nActive objectives:\n")
	objectives := studio.EnabledObjectives(s.Objectives)
	for _, o := range objectives {
		fmt.Fprintf(&b, "- %s [%s, %s priority] success metric: %s\n", o.Title, o.Category, o.Priority, o.SuccessMetric)
	}
	if len(objectives) == 0 {
		b.WriteString(noneEnabled + "\n")
	}

	b.WriteString("\nConnected integrations:\n")
	integrations := studio.EnabledIntegrations(s.Integrations)
	for _, in := range integrations {
		fmt.Fprintf(&b, "- %s (%s): %s\n", in.Name, in.Category, in.Description)
	}
	if len(integrations) == 0 {
		b.WriteString(noneEnabled + "\n")
	}

	b.WriteString("\nEnabled automations:\n")
	automations := studio.EnabledAutomations(s.Automations)
	for _, a := range automations {
		fmt.Fprintf(&b, "- %s: %s\n", a.Title, a.Description)
		fmt.Fprintf(&b, "  trigger: %s | action: %s | metric: %s\n", a.Trigger, a.Action, a.Metric)
	}
	if len(automations) == 0 {
		b.WriteString(noneEnabled + "\n")
	}

	b.WriteString("\n")
	b.WriteString(responseGuidelines)
	return b.String()
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

// Turn wraps the buyer's input with the fixed instruction suffix sent as the
// final user entry of every model request.
func Turn(userPrompt string) string {
	return fmt.Sprintf("You are responding to the following input from the buyer: %s.\n"+
		"Remember the active objectives and automations as configured. "+
		"Provide an action plan with bullet points, suggested automations to trigger, "+
		"and quantify the projected impact where possible.", userPrompt)
}
