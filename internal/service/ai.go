package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/prompt"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// AIService talks to OpenRouter through its OpenAI-compatible API.
type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(cfg *config.Config) *AIService {
	clientCfg := openai.DefaultConfig(cfg.OpenRouterKey)
	clientCfg.BaseURL = openRouterBaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: config.AIRequestTimeout}

	return &AIService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.AIModel,
	}
}

// Complete sends the built prompt to the model and returns the analysis text.
func (s *AIService) Complete(ctx context.Context, userPrompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
				return "", fmt.Errorf("%w: %v", domain.ErrAIRateLimited, err)
			}
			return "", fmt.Errorf("%w: api error %d: %v", domain.ErrAIUnavailable, apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", domain.ErrAIUnavailable)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: blank completion", domain.ErrAIUnavailable)
	}
	return text, nil
}
