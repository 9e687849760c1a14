package llm

import (
	"context"
	"fmt"
	"strings"

	openaiapi "github.com/sashabaranov/go-openai"

	"github.com/satriahrh/persona-chat/domain"
)

// OpenAIClient is the default model gateway. One Generate call maps to one
// chat completion: the effective prompt as the system turn, the user
// message as the user turn.
type OpenAIClient struct {
	api   *openaiapi.Client
	model string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		api:   openaiapi.NewClient(apiKey),
		model: model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userMessage string, temperature float64) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openaiapi.ChatCompletionRequest{
		Model:       c.model,
		Temperature: float32(temperature),
		Messages: []openaiapi.ChatCompletionMessage{
			{Role: openaiapi.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openaiapi.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", domain.ErrEmptyResponse
	}
	return text, nil
}
