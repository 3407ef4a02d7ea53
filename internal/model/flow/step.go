package flow

import (
	"fmt"
	"strings"
)

// StepType classifies what a flow step asks of the user.
type StepType string

const (
	TypeInfo     StepType = "info"
	TypeDecision StepType = "decision"
	TypeForm     StepType = "form"
	TypePaywall  StepType = "paywall"
	TypeCTA      StepType = "cta"
)

// Step is one position in a linear product flow. ID matches the step's
// zero-based position in the parsed sequence.
type Step struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        StepType `json:"type"`
}

// Parse turns free-text flow input into an ordered step sequence, one
// candidate step per non-blank line. Lines containing " - " split into
// name and description; anything else becomes a description with a
// synthesized name. Malformed input never errors.
func Parse(text string) []Step {
	var steps []Step
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		i := len(steps)
		var name, descPart string
		if idx := strings.Index(line, " - "); idx >= 0 {
			name = strings.TrimSpace(strings.TrimLeft(line[:idx], "0123456789. "))
			descPart = line[idx+len(" - "):]
		} else {
			descPart = line
		}
		if name == "" {
			name = fmt.Sprintf("Step %d", i+1)
		}

		steps = append(steps, Step{
			ID:          i,
			Name:        name,
			Description: strings.TrimSpace(descPart),
			Type:        TypeDecision, // step-type classification is future work
		})
	}
	return steps
}

// Describe renders the steps as "name: description" lines, the form the
// persona generator prompt expects.
func Describe(steps []Step) string {
	lines := make([]string, 0, len(steps))
	for _, s := range steps {
		lines = append(lines, fmt.Sprintf("%s: %s", s.Name, s.Description))
	}
	return strings.Join(lines, "\n")
}

// Sample provides the default onboarding flow shown to new clients.
func Sample() string {
	return `1. Landing Page - Hero section with value prop and primary CTA: 'Get Started'
2. Sign Up Form - Email, password, and marketing opt-in checkbox
3. Plan Selection - Choose between Basic, Pro, and Premium plans
4. Checkout - Enter payment details and confirm subscription
`
}
