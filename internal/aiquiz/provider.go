package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/saulo-duarte/quizard-lambda/internal/config"
)

const defaultModel = "gemini-2.0-flash"

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]DraftQuestion, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider returns nil when GEMINI_API_KEY is not set.
func NewGeminiProvider(ctx context.Context) (Provider, error) {
	key := config.Getenv("GEMINI_API_KEY", "")
	if key == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{
		client: client,
		model:  config.Getenv("GEMINI_MODEL", defaultModel),
	}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]DraftQuestion, error) {
	log := config.WithContext(ctx).WithField("model", p.model)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		log.WithError(err).Error("Gemini request failed")
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("Gemini raw response:\n%s", raw)

	questions, err := parseQuestions(raw)
	if err != nil {
		log.WithError(err).Error("Could not decode Gemini response")
		return nil, err
	}
	return questions, nil
}

func parseQuestions(raw string) ([]DraftQuestion, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return nil, errors.New("empty model response")
	}
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "` \n")

	var questions []DraftQuestion
	if err := json.Unmarshal([]byte(clean), &questions); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return questions, nil
}
