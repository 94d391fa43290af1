package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"quizgen/db"
	"quizgen/models"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// QuestionGenerator produces quiz questions from source text.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, sourceText string, amount int, quizType models.QuizType) ([]models.GeneratedQuestion, error)
}

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	ExtractText(originalName, mimeType string, data []byte) (string, error)
}

// QuizService owns the quiz lifecycle: generation and answer submission.
type QuizService struct {
	repo      db.QuizRepository
	generator QuestionGenerator
	extractor TextExtractor
}

func NewQuizService(repo db.QuizRepository, generator QuestionGenerator, extractor TextExtractor) *QuizService {
	return &QuizService{
		repo:      repo,
		generator: generator,
		extractor: extractor,
	}
}

// GenerateQuizParams carries the generation form. FilePath points at the
// temporary upload on disk; it is removed on every exit path.
type GenerateQuizParams struct {
	Topic    string
	Type     models.QuizType
	Amount   int
	FilePath string
	FileName string
	FileMIME string
}

// GenerateQuiz resolves the source text (uploaded file wins over the topic
// string), asks the generator for questions and persists the new quiz in a
// single write. Nothing is stored if generation fails.
func (s *QuizService) GenerateQuiz(ctx context.Context, params GenerateQuizParams) (int, error) {
	log.Printf("[INFO] Starting quiz generation (type=%s, amount=%d)", params.Type, params.Amount)

	if params.FilePath != "" {
		// The temp upload must not outlive this request, whatever happens.
		// Registered before validation so rejected requests clean up too.
		defer func() {
			if err := os.Remove(params.FilePath); err != nil {
				log.Printf("[ERROR] Failed to remove temp upload %s: %v", params.FilePath, err)
			}
		}()
	}

	if !models.ValidQuizType(params.Type) {
		return 0, models.ErrInvalidQuizType
	}
	if params.Amount <= 0 {
		return 0, models.ErrInvalidAmount
	}

	topic := strings.TrimSpace(params.Topic)
	textToProcess := topic

	if params.FilePath != "" {
		data, err := os.ReadFile(params.FilePath)
		if err != nil {
			return 0, fmt.Errorf("failed to read uploaded file: %w", err)
		}

		extracted, err := s.extractor.ExtractText(params.FileName, params.FileMIME, data)
		if err != nil {
			log.Printf("[ERROR] Text extraction failed for %s: %v", params.FileName, err)
			extracted = ""
		}
		textToProcess = extracted
		topic = params.FileName
	}

	if strings.TrimSpace(textToProcess) == "" {
		log.Printf("[ERROR] No source text resolved for quiz generation")
		return 0, models.ErrNoSourceText
	}

	generated, err := s.generator.GenerateQuestions(ctx, textToProcess, params.Amount, params.Type)
	if err != nil {
		log.Printf("[ERROR] Question generation failed: %v", err)
		return 0, fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	if topic == "" {
		topic = "Custom Topic"
	}

	quiz := &models.Quiz{
		Topic:         topic,
		Type:          params.Type,
		QuestionCount: params.Amount,
		Questions:     buildQuestions(generated),
		Score:         0,
		Status:        models.QuizStatusInProgress,
	}

	if err := s.repo.CreateQuiz(quiz); err != nil {
		log.Printf("[ERROR] Failed to persist generated quiz: %v", err)
		return 0, fmt.Errorf("failed to save quiz: %w", err)
	}

	log.Printf("[INFO] Successfully created quiz %d with %d questions", quiz.ID, len(quiz.Questions))
	return quiz.ID, nil
}

// SubmitAnswer records the user's answer for one question and recomputes the
// quiz score over all questions. A retry with the same answer replays the
// stored feedback; a different answer for an answered question is rejected.
func (s *QuizService) SubmitAnswer(quizID int, questionID, userAnswer string) (*models.AnswerFeedback, error) {
	log.Printf("[INFO] Submitting answer for quiz %d question %s", quizID, questionID)

	var feedback *models.AnswerFeedback

	_, err := s.repo.MutateQuiz(quizID, func(quiz *models.Quiz) error {
		question := findQuestion(quiz, questionID)
		if question == nil {
			return models.ErrQuestionNotFound
		}

		if question.Answered() {
			if *question.UserAnswer != userAnswer {
				return models.ErrAlreadyAnswered
			}
			// Idempotent retry: same answer, same feedback, no rescore.
			feedback = &models.AnswerFeedback{
				IsCorrect:     question.IsCorrect != nil && *question.IsCorrect,
				CorrectAnswer: question.CorrectAnswer,
				Explanation:   question.Explanation,
				CurrentScore:  quiz.Score,
			}
			return nil
		}

		answer := userAnswer
		isCorrect := userAnswer == question.CorrectAnswer
		question.UserAnswer = &answer
		question.IsCorrect = &isCorrect

		quiz.Score = recalculateScore(quiz.Questions)
		if lo.EveryBy(quiz.Questions, func(q models.Question) bool { return q.Answered() }) {
			quiz.Status = models.QuizStatusCompleted
		}

		feedback = &models.AnswerFeedback{
			IsCorrect:     isCorrect,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
			CurrentScore:  quiz.Score,
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] Answer submission failed for quiz %d: %v", quizID, err)
		return nil, err
	}

	log.Printf("[INFO] Recorded answer for quiz %d question %s (correct=%v)", quizID, questionID, feedback.IsCorrect)
	return feedback, nil
}

func buildQuestions(generated []models.GeneratedQuestion) []models.Question {
	return lo.Map(generated, func(q models.GeneratedQuestion, _ int) models.Question {
		explanation := q.Explanation
		if strings.TrimSpace(explanation) == "" {
			explanation = models.DefaultExplanation
		}
		return models.Question{
			ID:            uuid.NewString(),
			QuestionText:  q.QuestionText,
			AnswerChoices: q.AnswerChoices,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   explanation,
		}
	})
}

func findQuestion(quiz *models.Quiz, questionID string) *models.Question {
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			return &quiz.Questions[i]
		}
	}
	return nil
}

// recalculateScore derives the running score from scratch: unanswered
// questions count against it, exactly like the final score would.
func recalculateScore(questions []models.Question) float64 {
	if len(questions) == 0 {
		return 0
	}
	correct := lo.CountBy(questions, func(q models.Question) bool {
		return q.IsCorrect != nil && *q.IsCorrect
	})
	return roundScore(100 * float64(correct) / float64(len(questions)))
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
