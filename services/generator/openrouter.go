package generator

import (
	"context"
	"fmt"
	"log"

	"quizgen/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenRouterService generates questions through an OpenAI-compatible chat
// completions endpoint (OpenRouter by default).
type OpenRouterService struct {
	llm llms.Model
}

func NewOpenRouterService(apiKey, baseURL, model string) (*OpenRouterService, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI-compatible client: %w", err)
	}

	return &OpenRouterService{llm: llm}, nil
}

func (s *OpenRouterService) GenerateQuestions(ctx context.Context, sourceText string, amount int, quizType models.QuizType) ([]models.GeneratedQuestion, error) {
	prompt := buildPrompt(sourceText, amount, quizType)

	log.Printf("[INFO] Calling LLM for quiz generation (%d questions, type %s)", amount, quizType)
	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt,
		llms.WithTemperature(0.7),
		llms.WithJSONMode(),
	)
	if err != nil {
		log.Printf("[ERROR] Failed to generate LLM response: %v", err)
		return nil, fmt.Errorf("failed to generate LLM response: %w", err)
	}

	questions, err := parseQuestions(completion)
	if err != nil {
		log.Printf("[ERROR] Model output did not match the question-list shape: %v", err)
		return nil, err
	}

	log.Printf("[INFO] Successfully generated %d questions", len(questions))
	return questions, nil
}
