// internal/agentic/prompt.go
package agentic

// VerificationRefusal is the fixed reply for identity/lookup questions.
// The classifier is deliberately over-broad here: refusing a benign
// question is acceptable, fabricating a person or a link is not.
const VerificationRefusal = "I can't look up or verify people, profiles, or links, " +
	"and I don't share URLs that haven't come from a verified source. " +
	"I don't know based on available information."

// englishOnlyInput appends the output-policy reminder to every message
// that reaches a model backend.
func englishOnlyInput(message string) string {
	return message + "\n\n" +
		"Policy reminders:\n" +
		"- Respond in English only.\n" +
		"- If unsure, say: I don't know based on available information.\n" +
		"- Do not fabricate facts or profile links.\n" +
		"- Do not output URLs unless they are verified tool outputs."
}
