package usecase

import (
	"fmt"
	"strings"

	"github.com/satriahrh/persona-chat/domain"
)

// ComposePrompt renders a personality and an ordered message history into
// the effective system prompt for one model call. It is a pure string
// assembly: deterministic, no tokenization, no truncation. History is
// rendered in the order given; callers pass it ascending by creation time.
//
// The new user message is deliberately absent here: it rides as the user
// turn of the model call, not inside the system text.
func ComposePrompt(p domain.Personality, history []domain.Message) string {
	var b strings.Builder
	b.WriteString(p.SystemPrompt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Tone: %d/10 (higher is more friendly)\n", p.Tone)
	fmt.Fprintf(&b, "Verbosity: %d/10 (higher is more detailed)\n", p.Verbosity)
	fmt.Fprintf(&b, "Creativity: %d/10 (higher is more creative)\n", p.Creativity)
	fmt.Fprintf(&b, "Formality: %d/10 (higher is more formal)\n", p.Formality)
	b.WriteString("\nConversation History:\n")
	for _, m := range history {
		b.WriteString(strings.ToUpper(string(m.Role)))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return b.String()
}
