package models

import "time"

type QuizType string

const (
	QuizTypeMultipleChoice QuizType = "Multiple Choice"
	QuizTypeTrueFalse      QuizType = "True/False"
	QuizTypeHybrid         QuizType = "Hybrid"
)

// ValidQuizType reports whether t is one of the supported quiz types.
func ValidQuizType(t QuizType) bool {
	switch t {
	case QuizTypeMultipleChoice, QuizTypeTrueFalse, QuizTypeHybrid:
		return true
	}
	return false
}

type QuizStatus string

const (
	QuizStatusInProgress QuizStatus = "in_progress"
	QuizStatusCompleted  QuizStatus = "completed"
)

// DefaultExplanation is stored when the model omits an explanation.
const DefaultExplanation = "No explanation provided."

// Question lives only inside its parent quiz; it is never stored on its own.
type Question struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"questionText"`
	AnswerChoices []string `json:"answerChoices"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	UserAnswer    *string  `json:"userAnswer"`
	IsCorrect     *bool    `json:"isCorrect"`
}

// Answered reports whether the user has already submitted an answer.
func (q *Question) Answered() bool {
	return q.UserAnswer != nil
}

// Quiz is the root aggregate. Questions keep their creation order; Score is
// always recomputed from the questions, never set independently.
type Quiz struct {
	ID            int        `json:"id"`
	Topic         string     `json:"topic"`
	Type          QuizType   `json:"type"`
	QuestionCount int        `json:"questionCount"`
	Questions     []Question `json:"questions"`
	Score         float64    `json:"score"`
	Status        QuizStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// QuizSummary is the history-listing view: no question bodies.
type QuizSummary struct {
	ID            int        `json:"id"`
	Topic         string     `json:"topic"`
	Type          QuizType   `json:"type"`
	QuestionCount int        `json:"questionCount"`
	Score         float64    `json:"score"`
	Status        QuizStatus `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// GeneratedQuestion is the shape the question generator must produce.
type GeneratedQuestion struct {
	QuestionText  string   `json:"questionText"`
	AnswerChoices []string `json:"answerChoices"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type SubmitAnswerRequest struct {
	UserAnswer string `json:"userAnswer"`
}

// AnswerFeedback is returned after each submission so the client can render
// immediate feedback and later replay the quiz in review mode.
type AnswerFeedback struct {
	IsCorrect     bool    `json:"isCorrect"`
	CorrectAnswer string  `json:"correctAnswer"`
	Explanation   string  `json:"explanation"`
	CurrentScore  float64 `json:"currentScore"`
}

type GenerateQuizResponse struct {
	QuizID int `json:"quizId"`
}
