package simulation

import (
	"time"

	"github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/persona"
)

// Action is a persona's reaction at a single step.
type Action string

const (
	ActionContinue Action = "continue"
	ActionHesitate Action = "hesitate"
	ActionDrop     Action = "drop"
)

// StepEvent records one persona's reaction to one step. Friction is always
// within [1,10] by the time the event exists.
type StepEvent struct {
	StepID    int    `json:"stepId"`
	Action    Action `json:"action"`
	Friction  int    `json:"friction"`
	Reasoning string `json:"reasoning"`
}

// Run is the trace of one persona through the flow. Events is an in-order
// prefix of the step sequence; at most the last event is a drop.
type Run struct {
	Persona    persona.Persona `json:"persona"`
	Events     []StepEvent     `json:"events"`
	Converted  bool            `json:"converted"`
	DropStepID *int            `json:"dropStepId,omitempty"`
}

// StepStats aggregates all events that referenced one step.
type StepStats struct {
	Name        string  `json:"name"`
	Views       int     `json:"views"`
	Drops       int     `json:"drops"`
	DropRate    float64 `json:"dropRate"`
	AvgFriction float64 `json:"avgFriction"`
}

// PersonaOutcome summarizes one run for display. DropStep is the name of
// the step the persona dropped at, empty when it converted.
type PersonaOutcome struct {
	Name      string `json:"name"`
	Converted bool   `json:"converted"`
	DropStep  string `json:"dropStep,omitempty"`
}

// Summary is the derived aggregate over a batch of runs.
type Summary struct {
	ConversionRate  float64           `json:"conversionRate"`
	StepStats       map[int]StepStats `json:"stepStats"`
	PersonaOutcomes []PersonaOutcome  `json:"personaOutcomes"`
}

// Result bundles everything one simulate invocation produced.
type Result struct {
	ID        string            `json:"id"`
	Steps     []flow.Step       `json:"steps"`
	Personas  []persona.Persona `json:"personas"`
	Runs      []Run             `json:"runs"`
	Summary   Summary           `json:"summary"`
	CreatedAt time.Time         `json:"createdAt"`
}
