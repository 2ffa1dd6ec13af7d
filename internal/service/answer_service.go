package service

import (
	"context"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const answerModelName = "models/gemini-1.5-pro"

const replyAnswersUnavailable = "General question answering is not available."

// AnswerService отвечает на общие (не календарные) вопросы через Gemini.
// Без API-ключа работает в деградированном режиме: на любой вопрос
// возвращает фиксированный ответ о недоступности.
type AnswerService struct {
	model  *genai.GenerativeModel
	logger *zap.Logger
}

// NewAnswerService создаёт сервис. Пустой apiKey — не ошибка.
func NewAnswerService(ctx context.Context, apiKey string, logger *zap.Logger) (*AnswerService, error) {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, general question answering disabled")
		return &AnswerService{logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &AnswerService{
		model:  client.GenerativeModel(answerModelName),
		logger: logger,
	}, nil
}

// Answer возвращает ответ модели на свободный вопрос пользователя
func (s *AnswerService) Answer(ctx context.Context, question string) (string, error) {
	if s.model == nil {
		return replyAnswersUnavailable, nil
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
