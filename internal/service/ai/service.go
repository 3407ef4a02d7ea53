package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/prathimenon/synthetic-user-simulator/internal/config"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/flow"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/persona"
	"github.com/prathimenon/synthetic-user-simulator/internal/model/simulation"
)

// ErrNotConfigured is returned when no model credential is available.
// It is raised at construction time, before any request is attempted.
var ErrNotConfigured = errors.New("ark credentials are not configured")

// Service drives both generation operations against the chat model:
// producing a persona batch and deciding one persona's reaction to one
// step. Both chains are compiled once and reused for the session.
type Service struct {
	chatModel     model.ChatModel
	personaChain  compose.Runnable[map[string]any, *schema.Message]
	decisionChain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the chat model and compiles the persona and decision
// chains.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	personaChain, err := buildChain(ctx, chatModel, personaSystemPrompt, personaUserPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile persona chain: %w", err)
	}

	decisionChain, err := buildChain(ctx, chatModel, decisionSystemPrompt, decisionUserPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compile decision chain: %w", err)
	}

	return &Service{
		chatModel:     chatModel,
		personaChain:  personaChain,
		decisionChain: decisionChain,
	}, nil
}

func buildChain(ctx context.Context, chatModel model.ChatModel, system, user string) (compose.Runnable[map[string]any, *schema.Message], error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	return chain.Compile(ctx)
}

// GeneratePersonas asks the model for count distinct personas suited to
// the described flow. IDs are assigned in response order.
func (s *Service) GeneratePersonas(ctx context.Context, flowDescription string, count int) ([]persona.Persona, error) {
	if count < 1 {
		return nil, fmt.Errorf("persona count must be positive, got %d", count)
	}

	input := map[string]any{
		"count":            count,
		"flow_description": flowDescription,
	}

	msg, err := s.personaChain.Invoke(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("persona generation failed: %w", err)
	}

	personas, err := parsePersonaPayload(msg.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse persona response: %w", err)
	}

	log.Printf("[ai] generated %d personas (requested %d)", len(personas), count)
	return personas, nil
}

// DecideStep asks the model how one persona reacts to one step. The model
// is an opaque oracle here: only the output shape is validated, never its
// reproducibility.
func (s *Service) DecideStep(ctx context.Context, p persona.Persona, step flow.Step) (simulation.StepEvent, error) {
	input := map[string]any{
		"persona_name":       p.Name,
		"persona_bio":        p.Bio,
		"persona_traits":     strings.Join(p.Traits, ", "),
		"persona_tendencies": strings.Join(p.Tendencies, ", "),
		"step_name":          step.Name,
		"step_type":          string(step.Type),
		"step_description":   step.Description,
	}

	msg, err := s.decisionChain.Invoke(ctx, input)
	if err != nil {
		return simulation.StepEvent{}, fmt.Errorf("step decision failed: %w", err)
	}

	event, err := parseDecisionPayload(msg.Content, step.ID)
	if err != nil {
		return simulation.StepEvent{}, fmt.Errorf("failed to parse decision response: %w", err)
	}

	return event, nil
}
