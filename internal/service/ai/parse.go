package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/prathimenon/synthetic-user-simulator/internal/model/persona"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/simulation"
)

const defaultFriction = 5

// extractJSON locates the JSON object in a model response that may carry
// leading or trailing prose, using the first "{" and last "}".
func extractJSON(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("missing json object")
	}
	return trimmed[start : end+1], nil
}

type personaPayload struct {
	Personas []personaFields `json:"personas"`
}

type personaFields struct {
	Name       string   `json:"name"`
	Bio        string   `json:"bio"`
	Traits     []string `json:"traits"`
	Tendencies []string `json:"tendencies"`
}

// parsePersonaPayload decodes a persona batch response and assigns fresh
// zero-based IDs in response order. Missing fields get local defaults;
// an unlocatable or invalid JSON object is an error.
func parsePersonaPayload(content string) ([]persona.Persona, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var payload personaPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, err
	}

	personas := make([]persona.Persona, 0, len(payload.Personas))
	for i, p := range payload.Personas {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = fmt.Sprintf("Persona %d", i+1)
		}
		traits := p.Traits
		if traits == nil {
			traits = []string{}
		}
		tendencies := p.Tendencies
		if tendencies == nil {
			tendencies = []string{}
		}
		personas = append(personas, persona.Persona{
			ID:         i,
			Name:       name,
			Bio:        p.Bio,
			Traits:     traits,
			Tendencies: tendencies,
		})
	}
	return personas, nil
}

type decisionPayload struct {
	Action    string `json:"action"`
	Friction  any    `json:"friction"`
	Reasoning string `json:"reasoning"`
}

// parseDecisionPayload decodes a step decision response into an event for
// the given step. Missing fields recover locally; friction is clamped into
// [1,10] whatever the model returned.
func parseDecisionPayload(content string, stepID int) (simulation.StepEvent, error) {
	raw, err := extractJSON(content)
	if err != nil {
		return simulation.StepEvent{}, err
	}

	var payload decisionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return simulation.StepEvent{}, err
	}

	return simulation.StepEvent{
		StepID:    stepID,
		Action:    parseAction(payload.Action),
		Friction:  clampFriction(coerceFriction(payload.Friction)),
		Reasoning: payload.Reasoning,
	}, nil
}

func parseAction(raw string) simulation.Action {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hesitate":
		return simulation.ActionHesitate
	case "drop":
		return simulation.ActionDrop
	default:
		return simulation.ActionContinue
	}
}

// coerceFriction accepts whatever JSON shape the model put in the friction
// field: numbers are truncated, numeric strings parsed, anything else
// falls back to the default.
func coerceFriction(raw any) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(n)
		}
		return defaultFriction
	default:
		return defaultFriction
	}
}

func clampFriction(val int) int {
	if val < 1 {
		return 1
	}
	if val > 10 {
		return 10
	}
	return val
}
