package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizgen/models"

	"github.com/samber/lo"
)

type questionList struct {
	Questions []models.GeneratedQuestion `json:"questions"`
}

// parseQuestions decodes a model completion into the expected question-list
// shape. Models occasionally wrap JSON in markdown fences even in JSON mode,
// so those are stripped before decoding.
func parseQuestions(content string) ([]models.GeneratedQuestion, error) {
	var list questionList
	if err := json.Unmarshal([]byte(stripCodeFences(content)), &list); err != nil {
		return nil, fmt.Errorf("failed to parse model output as JSON: %w", err)
	}

	if err := validateQuestions(list.Questions); err != nil {
		return nil, err
	}
	return list.Questions, nil
}

func validateQuestions(questions []models.GeneratedQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("model returned no questions")
	}

	for i := range questions {
		question := &questions[i]
		if strings.TrimSpace(question.QuestionText) == "" {
			return fmt.Errorf("question %d has empty text", i+1)
		}
		if len(question.AnswerChoices) == 0 {
			return fmt.Errorf("question %d has no answer choices", i+1)
		}
		if !lo.Contains(question.AnswerChoices, question.CorrectAnswer) {
			return fmt.Errorf("question %d: correct answer %q is not among the answer choices", i+1, question.CorrectAnswer)
		}
		if strings.TrimSpace(question.Explanation) == "" {
			question.Explanation = models.DefaultExplanation
		}
	}
	return nil
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
