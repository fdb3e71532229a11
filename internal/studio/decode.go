package studio

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
)

const (
	RuleJSON = "json"
	RuleType = "type"
)

// enabledFlags mirrors the toggleable lists of a snapshot so that a missing
// "enabled" key can be told apart from an explicit false.
type enabledFlags struct {
	Snapshot struct {
		Objectives   []struct{ Enabled *bool `json:"enabled"` } `json:"objectives"`
		Integrations []struct{ Enabled *bool `json:"enabled"` } `json:"integrations"`
		Automations  []struct{ Enabled *bool `json:"enabled"` } `json:"automations"`
	} `json:"snapshot"`
}

// DecodeChatRequest parses a JSON chat request. Malformed JSON and type
// mismatches are reported as a single violation and a nil request; missing
// "enabled" flags are reported alongside the decoded request.
func DecodeChatRequest(data []byte) (*ChatRequest, []Violation) {
	var req ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, []Violation{decodeViolation(err)}
	}

	var flags enabledFlags
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, []Violation{decodeViolation(err)}
	}
	v := &validator{}
	for i, o := range flags.Snapshot.Objectives {
		if o.Enabled == nil {
			v.add(fmt.Sprintf("snapshot.objectives[%d].enabled", i), RuleRequired, "must be set")
		}
	}
	for i, in := range flags.Snapshot.Integrations {
		if in.Enabled == nil {
			v.add(fmt.Sprintf("snapshot.integrations[%d].enabled", i), RuleRequired, "must be set")
		}
	}
	for i, a := range flags.Snapshot.Automations {
		if a.Enabled == nil {
			v.add(fmt.Sprintf("snapshot.automations[%d].enabled", i), RuleRequired, "must be set")
		}
	}
	return &req, v.violations
}

func decodeViolation(err error) Violation {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Violation{
			Field:   typeErr.Field,
			Rule:    RuleType,
			Message: fmt.Sprintf("must be %s, got %s", jsonKind(typeErr.Type), typeErr.Value),
		}
	}
	return Violation{
		Field:   "",
		Rule:    RuleJSON,
		Message: "request body must be a JSON object matching the chat request schema",
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "a number"
	default:
		return t.String()
	}
}
