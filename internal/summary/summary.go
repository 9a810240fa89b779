// Package summary generates short AI book summaries through the OpenAI API.
package summary

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Service wraps the OpenAI client. A Service built without an API key is
// valid but reports itself unavailable.
type Service struct {
	client *openai.Client
}

// New creates a summary service. An empty apiKey yields a disabled service.
func New(apiKey string) *Service {
	if apiKey == "" {
		return &Service{}
	}
	return &Service{client: openai.NewClient(apiKey)}
}

// Available reports whether the service has an API key configured.
func (s *Service) Available() bool {
	return s.client != nil
}

// Summarize asks the model for a short bullet-point summary of the book.
func (s *Service) Summarize(ctx context.Context, title, author string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("summary service is not configured")
	}
	if author == "" {
		author = "Unknown Author"
	}

	prompt := fmt.Sprintf(
		"Summarize the book '%s' by %s in 3-4 distinct bullet points. Keep it concise, engaging, and under 100 words total.",
		title, author)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT3Dot5Turbo,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no summary returned")
	}
	return resp.Choices[0].Message.Content, nil
}
