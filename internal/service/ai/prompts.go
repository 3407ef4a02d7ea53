package ai

// Prompt templates use eino FString placeholders, so the expected output
// shape is described in prose rather than as a literal JSON example.

const personaSystemPrompt = "You are helping design synthetic user personas for UX testing. " +
	"You create realistic but fictional users with varied motivations, attention spans, " +
	"risk tolerance, tech savviness, and constraints."

const personaUserPrompt = "Create {count} distinct user personas for the following product flow.\n\n" +
	"Flow description:\n{flow_description}\n\n" +
	"Return STRICT JSON only: a single JSON object with one key, \"personas\", holding a list of persona objects. " +
	"Each persona object has the fields: name (string), bio (short paragraph), " +
	"traits (list of strings), tendencies (list of behavior strings). " +
	"Do not output anything besides the JSON object."

const decisionSystemPrompt = "You are simulating how a specific user behaves in a product flow. " +
	"You must decide if they CONTINUE, HESITATE, or DROP at each step."

const decisionUserPrompt = "Persona:\n" +
	"Name: {persona_name}\n" +
	"Bio: {persona_bio}\n" +
	"Traits: {persona_traits}\n" +
	"Tendencies: {persona_tendencies}\n\n" +
	"Step:\n" +
	"Name: {step_name}\n" +
	"Type: {step_type}\n" +
	"Description: {step_description}\n\n" +
	"Answer with STRICT JSON only: a single JSON object with the fields " +
	"action (one of \"continue\", \"hesitate\", \"drop\"), " +
	"friction (an integer from 1 to 10), and " +
	"reasoning (one or two short sentences). " +
	"Do not output anything besides the JSON object."
