package aiquiz

import (
	"context"

	"github.com/saulo-duarte/quizard-lambda/internal/config"
)

type AIQuizContainer struct {
	Handler *Handler
}

func NewAIQuizContainer(provider Provider) *AIQuizContainer {
	service := NewService(provider)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Handler: handler,
	}
}

// DefaultProvider builds the Gemini provider, or nil when it is not
// configured or cannot be created.
func DefaultProvider(ctx context.Context) Provider {
	provider, err := NewGeminiProvider(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Question generation disabled")
		return nil
	}
	return provider
}
