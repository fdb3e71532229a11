package studio

import (
	"fmt"
	"slices"
	"strings"
)

const (
	RuleRequired = "required"
	RuleMinItems = "min_items"
	RuleEnum     = "enum"
)

// Violation is one field that failed validation. Field is a dotted path
// with list indexes, e.g. "snapshot.objectives[2].priority".
type Violation struct {
	Field   string
	Rule    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type validator struct {
	violations []Violation
}

func (v *validator) add(field, rule, msg string) {
	v.violations = append(v.violations, Violation{Field: field, Rule: rule, Message: msg})
}

func (v *validator) required(field, value string) {
	if value == "" {
		v.add(field, RuleRequired, "must not be empty")
	}
}

func (v *validator) nonEmptyList(field string, n int) {
	if n == 0 {
		v.add(field, RuleMinItems, "must contain at least 1 item")
	}
}

func checkEnum[T ~string](v *validator, field string, value T, allowed []T) {
	if slices.Contains(allowed, value) {
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	v.add(field, RuleEnum, fmt.Sprintf("must be one of %s", strings.Join(names, ", ")))
}

// ValidateChatRequest checks every field of req and returns all violations
// found, in field order. A nil result means the request is valid.
func ValidateChatRequest(req *ChatRequest) []Violation {
	v := &validator{}
	if req == nil {
		v.add("", RuleRequired, "request body is required")
		return v.violations
	}
	validateSnapshot(v, "snapshot", &req.Snapshot)
	validateMessages(v, "messages", req.Messages)
	v.required("userPrompt", req.UserPrompt)
	return v.violations
}

// ValidateMessages checks a history that will be sent as the messages of a
// chat request: at least one entry, each with a known role and content.
func ValidateMessages(field string, msgs []Message) []Violation {
	v := &validator{}
	validateMessages(v, field, msgs)
	return v.violations
}

func validateMessages(v *validator, field string, msgs []Message) {
	v.nonEmptyList(field, len(msgs))
	for i, m := range msgs {
		f := fmt.Sprintf("%s[%d]", field, i)
		checkEnum(v, f+".role", m.Role, Roles)
		v.required(f+".content", m.Content)
	}
}

// ValidateSnapshot checks a snapshot on its own, e.g. one loaded from a file.
func ValidateSnapshot(s *Snapshot) []Violation {
	v := &validator{}
	validateSnapshot(v, "snapshot", s)
	return v.violations
}

func validateSnapshot(v *validator, prefix string, s *Snapshot) {
	p := prefix + ".persona"
	v.required(p+".codename", s.Persona.Codename)
	v.required(p+".industry", s.Persona.Industry)
	checkEnum(v, p+".tone", s.Persona.Tone, Tones)
	checkEnum(v, p+".voice", s.Persona.Voice, Voices)
	v.nonEmptyList(p+".competencies", len(s.Persona.Competencies))
	for i, c := range s.Persona.Competencies {
		v.required(fmt.Sprintf("%s.competencies[%d]", p, i), c)
	}
	v.nonEmptyList(p+".guardrails", len(s.Persona.Guardrails))
	for i, g := range s.Persona.Guardrails {
		v.required(fmt.Sprintf("%s.guardrails[%d]", p, i), g)
	}

	for i, o := range s.Objectives {
		field := fmt.Sprintf("%s.objectives[%d]", prefix, i)
		v.required(field+".id", o.ID)
		checkEnum(v, field+".category", o.Category, ObjectiveCategories)
		checkEnum(v, field+".priority", o.Priority, Priorities)
	}
	for i, in := range s.Integrations {
		field := fmt.Sprintf("%s.integrations[%d]", prefix, i)
		v.required(field+".id", in.ID)
		checkEnum(v, field+".category", in.Category, IntegrationCategories)
	}
	for i, a := range s.Automations {
		v.required(fmt.Sprintf("%s.automations[%d].id", prefix, i), a.ID)
	}
}
