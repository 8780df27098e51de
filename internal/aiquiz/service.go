package aiquiz

import (
	"context"
	"fmt"
	"strings"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
)

var (
	ErrNotConfigured = fmt.Errorf("question generation is not configured: %w", apperror.ErrInvalid)
	ErrNoQuestions   = fmt.Errorf("no usable questions were generated: %w", apperror.ErrInvalid)
)

type Service interface {
	GenerateQuestions(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

type service struct {
	provider Provider
}

func NewService(provider Provider) Service {
	return &service{provider: provider}
}

func (s *service) GenerateQuestions(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if s.provider == nil {
		return nil, ErrNotConfigured
	}

	req = normalize(req)
	log := config.WithContext(ctx).WithField("topic", req.Topic)

	drafts, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(req))
	if err != nil {
		log.WithError(err).Error("Failed to generate questions")
		return nil, err
	}

	questions := usable(drafts, req.Count)
	if len(questions) == 0 {
		log.WithField("received", len(drafts)).Warn("Model returned no usable questions")
		return nil, ErrNoQuestions
	}

	log.WithField("count", len(questions)).Info("Questions generated")
	return &GenerateResponse{
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Questions:  questions,
	}, nil
}

// usable drops drafts that could not be saved as questions and caps the
// result at limit.
func usable(drafts []DraftQuestion, limit int) []DraftQuestion {
	out := make([]DraftQuestion, 0, len(drafts))
	for _, d := range drafts {
		d.Text = strings.TrimSpace(d.Text)
		if d.Text == "" || len(d.Options) < 2 {
			continue
		}
		if d.CorrectOption < 0 || d.CorrectOption >= len(d.Options) {
			continue
		}
		out = append(out, d)
		if len(out) == limit {
			break
		}
	}
	return out
}
