package simulation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/persona"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/simulation"
)

var ErrResultNotFound = errors.New("simulation result not found")

// PersonaGenerator produces a persona batch for a described flow.
type PersonaGenerator interface {
	GeneratePersonas(ctx context.Context, flowDescription string, count int) ([]persona.Persona, error)
}

// StepDecider decides one persona's reaction to one step.
type StepDecider interface {
	DecideStep(ctx context.Context, p persona.Persona, step flow.Step) (simulation.StepEvent, error)
}

// Event is one progress notification emitted while a simulation runs.
type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload,omitempty"`
	Timestamp string `json:"timestamp"`
}

func newEvent(eventType string, payload any) Event {
	return Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// Service runs simulations and keeps finished results in memory for the
// lifetime of the process. Runs execute strictly sequentially, one persona
// and one step at a time, in persona input order.
type Service struct {
	generator PersonaGenerator
	decider   StepDecider

	mu      sync.RWMutex
	results map[string]simulation.Result
}

// NewService wires the generation seams into a simulation service.
func NewService(generator PersonaGenerator, decider StepDecider) *Service {
	return &Service{
		generator: generator,
		decider:   decider,
		results:   make(map[string]simulation.Result),
	}
}

// Simulate generates a persona batch for the parsed steps, traverses each
// persona through the flow, and aggregates the outcome. Any generation or
// parse failure aborts the whole action; no partial results are kept.
// observe, when non-nil, receives progress events synchronously between
// the sequential model calls.
func (s *Service) Simulate(ctx context.Context, steps []flow.Step, count int, observe func(Event)) (simulation.Result, error) {
	emit := observe
	if emit == nil {
		emit = func(Event) {}
	}

	personas, err := s.generator.GeneratePersonas(ctx, flow.Describe(steps), count)
	if err != nil {
		return simulation.Result{}, err
	}
	emit(newEvent("personas", personas))

	runs := make([]simulation.Run, 0, len(personas))
	for _, p := range personas {
		run, err := s.traverse(ctx, p, steps, emit)
		if err != nil {
			return simulation.Result{}, err
		}
		runs = append(runs, run)
		emit(newEvent("run_complete", run))
	}

	result := simulation.Result{
		ID:        uuid.NewString(),
		Steps:     steps,
		Personas:  personas,
		Runs:      runs,
		Summary:   Summarize(runs, steps),
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.results[result.ID] = result
	s.mu.Unlock()

	emit(newEvent("summary", result.Summary))
	log.Printf("[simulate] id=%s personas=%d steps=%d conversion=%.2f",
		result.ID, len(personas), len(steps), result.Summary.ConversionRate)
	return result, nil
}

// Traverse walks one persona through the ordered steps, stopping at the
// first drop. An empty step sequence yields an empty, non-converted run.
func (s *Service) Traverse(ctx context.Context, p persona.Persona, steps []flow.Step) (simulation.Run, error) {
	return s.traverse(ctx, p, steps, func(Event) {})
}

func (s *Service) traverse(ctx context.Context, p persona.Persona, steps []flow.Step, emit func(Event)) (simulation.Run, error) {
	events := make([]simulation.StepEvent, 0, len(steps))
	var dropStepID *int

	for _, step := range steps {
		event, err := s.decider.DecideStep(ctx, p, step)
		if err != nil {
			return simulation.Run{}, fmt.Errorf("persona %q at step %d: %w", p.Name, step.ID, err)
		}
		events = append(events, event)
		emit(newEvent("step", map[string]any{"persona": p.Name, "event": event}))

		if event.Action == simulation.ActionDrop {
			id := step.ID
			dropStepID = &id
			break
		}
	}

	return simulation.Run{
		Persona:    p,
		Events:     events,
		Converted:  dropStepID == nil && len(steps) > 0,
		DropStepID: dropStepID,
	}, nil
}

// Get retrieves a stored simulation result by identifier.
func (s *Service) Get(id string) (simulation.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		return simulation.Result{}, ErrResultNotFound
	}
	return result, nil
}
