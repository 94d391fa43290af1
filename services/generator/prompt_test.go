package generator

import (
	"strings"
	"testing"

	"quizgen/models"
)

func TestPromptTypeInstruction(t *testing.T) {
	tests := []struct {
		name     string
		quizType models.QuizType
		want     string
	}{
		{name: "multiple choice passes through", quizType: models.QuizTypeMultipleChoice, want: "Multiple Choice"},
		{name: "true/false passes through", quizType: models.QuizTypeTrueFalse, want: "True/False"},
		{name: "hybrid is rewritten", quizType: models.QuizTypeHybrid, want: "mix of Multiple Choice and True/False questions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := promptTypeInstruction(tt.quizType); got != tt.want {
				t.Errorf("promptTypeInstruction() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestBuildPromptTruncatesSourceText(t *testing.T) {
	long := strings.Repeat("é", MaxSourceTextChars+500)
	prompt := buildPrompt(long, 5, models.QuizTypeMultipleChoice)

	if strings.Contains(prompt, long) {
		t.Error("prompt contains the full untruncated text")
	}
	if !strings.Contains(prompt, strings.Repeat("é", MaxSourceTextChars)) {
		t.Error("prompt lost the first 15,000 characters of the text")
	}
	if !strings.Contains(prompt, "5-question") {
		t.Error("prompt lost the question amount")
	}
}

func TestBuildPromptKeepsShortText(t *testing.T) {
	prompt := buildPrompt("Volcanoes erupt.", 3, models.QuizTypeHybrid)

	if !strings.Contains(prompt, "Volcanoes erupt.") {
		t.Error("prompt lost the source text")
	}
	if !strings.Contains(prompt, "mix of Multiple Choice and True/False questions") {
		t.Error("prompt lost the hybrid instruction")
	}
	if strings.Contains(prompt, "Hybrid") {
		t.Error("prompt must not contain the literal type name for hybrid quizzes")
	}
}
