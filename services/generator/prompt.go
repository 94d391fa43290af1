package generator

import (
	"fmt"

	"quizgen/models"
)

// MaxSourceTextChars caps how much source text is sent to the model.
const MaxSourceTextChars = 15000

const QUIZ_PROMPT_TEMPLATE = `Generate a %d-question %s quiz based on the text below.
Output purely valid JSON.

IMPORTANT:
- For Multiple Choice, provide 4 options.
- For True/False, provide exactly ["True", "False"] as answerChoices.

Structure:
{
  "questions": [
    {
      "questionText": "...",
      "answerChoices": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "The string of the correct option",
      "explanation": "Why this is correct."
    }
  ]
}

Text to analyze:
"%s"`

// promptTypeInstruction rewrites the Hybrid mode into an instruction the
// model can follow; the other types read naturally as-is.
func promptTypeInstruction(quizType models.QuizType) string {
	if quizType == models.QuizTypeHybrid {
		return "mix of Multiple Choice and True/False questions"
	}
	return string(quizType)
}

func buildPrompt(sourceText string, amount int, quizType models.QuizType) string {
	return fmt.Sprintf(QUIZ_PROMPT_TEMPLATE, amount, promptTypeInstruction(quizType), truncateText(sourceText, MaxSourceTextChars))
}

func truncateText(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
