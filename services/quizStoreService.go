package services

import (
	"fmt"
	"log"
	"strings"

	"quizgen/db"
	"quizgen/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

const (
	// DefaultHistoryLimit matches the history page size.
	DefaultHistoryLimit = 20
	// maxHistoryLimit bounds how many rows a single listing can pull.
	maxHistoryLimit = 100
)

// QuizStoreService serves the history side: fetching, listing and deleting
// stored quizzes.
type QuizStoreService struct {
	repo db.QuizRepository
}

func NewQuizStoreService(repo db.QuizRepository) *QuizStoreService {
	return &QuizStoreService{repo: repo}
}

func (s *QuizStoreService) GetQuizByID(id int) (*models.Quiz, error) {
	log.Printf("[INFO] Starting get quiz by ID %d", id)

	if id <= 0 {
		return nil, models.ErrQuizNotFound
	}

	quiz, err := s.repo.GetQuizByID(id)
	if err != nil {
		log.Printf("[ERROR] Failed to get quiz by ID %d: %v", id, err)
		return nil, err
	}

	log.Printf("[INFO] Successfully retrieved quiz with ID %d", id)
	return quiz, nil
}

// ListRecent returns quiz summaries newest-first. A non-empty search term
// filters topics fuzzily, so small typos still find the quiz.
func (s *QuizStoreService) ListRecent(limit int, search string) ([]*models.QuizSummary, error) {
	log.Printf("[INFO] Starting history listing (limit=%d, search=%q)", limit, search)

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	fetchLimit := limit
	search = strings.TrimSpace(search)
	if search != "" {
		// Filtering happens after the fetch, so pull a wider window first.
		fetchLimit = maxHistoryLimit
	}

	summaries, err := s.repo.ListRecent(fetchLimit)
	if err != nil {
		log.Printf("[ERROR] Failed to list quizzes: %v", err)
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	if search != "" {
		summaries = lo.Filter(summaries, func(summary *models.QuizSummary, _ int) bool {
			return fuzzy.MatchFold(search, summary.Topic)
		})
		if len(summaries) > limit {
			summaries = summaries[:limit]
		}
	}

	log.Printf("[INFO] History listing returned %d quizzes", len(summaries))
	return summaries, nil
}

func (s *QuizStoreService) DeleteQuiz(id int) error {
	log.Printf("[INFO] Starting delete quiz with ID %d", id)

	if id <= 0 {
		return models.ErrQuizNotFound
	}

	if err := s.repo.DeleteQuiz(id); err != nil {
		log.Printf("[ERROR] Failed to delete quiz ID %d: %v", id, err)
		return err
	}

	log.Printf("[INFO] Successfully deleted quiz with ID %d", id)
	return nil
}

// ClearHistory deletes every stored quiz. There is no undo.
func (s *QuizStoreService) ClearHistory() (int64, error) {
	log.Printf("[INFO] Starting clear history")

	deleted, err := s.repo.DeleteAllQuizzes()
	if err != nil {
		log.Printf("[ERROR] Failed to clear history: %v", err)
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	log.Printf("[INFO] Cleared history, deleted %d quizzes", deleted)
	return deleted, nil
}
