package studio

import "time"

type Tone string

const (
	ToneProfessional   Tone = "Professional"
	ToneConversational Tone = "Conversational"
	ToneAnalytical     Tone = "Analytical"
	TonePlayful        Tone = "Playful"
)

var Tones = []Tone{ToneProfessional, ToneConversational, ToneAnalytical, TonePlayful}

type Voice string

const (
	VoiceExecutive Voice = "Executive"
	VoiceAdvisor   Voice = "Advisor"
	VoiceOperator  Voice = "Operator"
)

var Voices = []Voice{VoiceExecutive, VoiceAdvisor, VoiceOperator}

type ObjectiveCategory string

const (
	ObjectiveRevenue    ObjectiveCategory = "Revenue"
	ObjectiveOperations ObjectiveCategory = "Operations"
	ObjectiveSupport    ObjectiveCategory = "Support"
	ObjectiveMarketing  ObjectiveCategory = "Marketing"
)

var ObjectiveCategories = []ObjectiveCategory{ObjectiveRevenue, ObjectiveOperations, ObjectiveSupport, ObjectiveMarketing}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

type IntegrationCategory string

const (
	IntegrationCRM       IntegrationCategory = "CRM"
	IntegrationSupport   IntegrationCategory = "Support"
	IntegrationMarketing IntegrationCategory = "Marketing"
	IntegrationData      IntegrationCategory = "Data"
)

var IntegrationCategories = []IntegrationCategory{IntegrationCRM, IntegrationSupport, IntegrationMarketing, IntegrationData}

type Role string

const (
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
	RoleSystem    Role = "system"
)

var Roles = []Role{RoleAssistant, RoleUser, RoleSystem}

type Persona struct {
	Codename     string   `json:"codename" yaml:"codename"`
	Industry     string   `json:"industry" yaml:"industry"`
	Tone         Tone     `json:"tone" yaml:"tone"`
	Voice        Voice    `json:"voice" yaml:"voice"`
	Competencies []string `json:"competencies" yaml:"competencies"`
	Guardrails   []string `json:"guardrails" yaml:"guardrails"`
}

type Objective struct {
	ID            string            `json:"id" yaml:"id"`
	Title         string            `json:"title" yaml:"title"`
	Category      ObjectiveCategory `json:"category" yaml:"category"`
	SuccessMetric string            `json:"successMetric" yaml:"success_metric"`
	Priority      Priority          `json:"priority" yaml:"priority"`
	Enabled       bool              `json:"enabled" yaml:"enabled"`
}

type Integration struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Category    IntegrationCategory `json:"category" yaml:"category"`
	Description string              `json:"description" yaml:"description"`
	Enabled     bool                `json:"enabled" yaml:"enabled"`
}

type Automation struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Trigger     string `json:"trigger" yaml:"trigger"`
	Action      string `json:"action" yaml:"action"`
	Metric      string `json:"metric" yaml:"metric"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

// Snapshot is a point-in-time copy of the agent configuration. It is passed
// by value; nothing in this module mutates a snapshot it was handed.
type Snapshot struct {
	Persona      Persona       `json:"persona" yaml:"persona"`
	Objectives   []Objective   `json:"objectives" yaml:"objectives"`
	Integrations []Integration `json:"integrations" yaml:"integrations"`
	Automations  []Automation  `json:"automations" yaml:"automations"`
}

type Message struct {
	ID        string    `json:"id,omitempty" yaml:"id"`
	Role      Role      `json:"role" yaml:"role"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"createdAt,omitzero" yaml:"created_at"`
}

// ChatRequest is the payload of one chat turn.
type ChatRequest struct {
	Snapshot   Snapshot  `json:"snapshot"`
	Messages   []Message `json:"messages"`
	UserPrompt string    `json:"userPrompt"`
}

// Clone returns a deep copy so the caller can keep editing its own state
// while the copy is in flight.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Persona.Competencies = append([]string(nil), s.Persona.Competencies...)
	out.Persona.Guardrails = append([]string(nil), s.Persona.Guardrails...)
	out.Objectives = append([]Objective(nil), s.Objectives...)
	out.Integrations = append([]Integration(nil), s.Integrations...)
	out.Automations = append([]Automation(nil), s.Automations...)
	return out
}
