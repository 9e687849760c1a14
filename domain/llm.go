package domain

import "context"

// Llm abstracts the external chat-completion provider. One call submits a
// two-turn exchange: the effective prompt as the system turn and the user
// message as the user turn.
//
// Implementations return ErrUpstream (wrapped) when the call itself fails
// and ErrEmptyResponse when the model answered with nothing usable. The
// success path returns trimmed text. No retries at this layer.
type Llm interface {
	Generate(ctx context.Context, systemPrompt, userMessage string, temperature float64) (string, error)
}
