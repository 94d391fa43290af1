package services

import (
	"errors"
	"testing"
	"time"

	"quizgen/db"
	"quizgen/models"
)

func seedQuiz(t *testing.T, repo db.QuizRepository, topic string, score float64) int {
	t.Helper()

	quiz := &models.Quiz{
		Topic:         topic,
		Type:          models.QuizTypeMultipleChoice,
		QuestionCount: 1,
		Questions: []models.Question{
			{
				ID:            topic + "-q1",
				QuestionText:  "Placeholder?",
				AnswerChoices: []string{"A", "B", "C", "D"},
				CorrectAnswer: "A",
				Explanation:   models.DefaultExplanation,
			},
		},
		Score:  score,
		Status: models.QuizStatusInProgress,
	}
	if err := repo.CreateQuiz(quiz); err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}
	return quiz.ID
}

func TestListRecentOrderAndLimit(t *testing.T) {
	now := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	repo := db.NewMemoryQuizRepositoryWithClock(clock)
	service := NewQuizStoreService(repo)

	topics := []string{"Volcanoes", "Photosynthesis", "Roman Empire"}
	for _, topic := range topics {
		seedQuiz(t, repo, topic, 0)
	}

	summaries, err := service.ListRecent(0, "")
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("len(summaries) = %d, expected 3", len(summaries))
	}
	if summaries[0].Topic != "Roman Empire" || summaries[2].Topic != "Volcanoes" {
		t.Errorf("summaries not newest-first: %q ... %q", summaries[0].Topic, summaries[2].Topic)
	}

	limited, err := service.ListRecent(2, "")
	if err != nil {
		t.Fatalf("ListRecent(2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, expected 2", len(limited))
	}
}

func TestListRecentFuzzySearch(t *testing.T) {
	repo := db.NewMemoryQuizRepository()
	service := NewQuizStoreService(repo)

	seedQuiz(t, repo, "Volcanoes of the Pacific", 80)
	seedQuiz(t, repo, "Photosynthesis", 50)

	tests := []struct {
		name       string
		search     string
		wantTopics int
	}{
		{name: "exact word", search: "Volcanoes", wantTopics: 1},
		{name: "case insensitive", search: "volcanoes", wantTopics: 1},
		{name: "subsequence typo tolerance", search: "vlcano", wantTopics: 1},
		{name: "no match", search: "blockchain", wantTopics: 0},
		{name: "empty search returns all", search: "", wantTopics: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries, err := service.ListRecent(0, tt.search)
			if err != nil {
				t.Fatalf("ListRecent() error = %v", err)
			}
			if len(summaries) != tt.wantTopics {
				t.Errorf("len(summaries) = %d, expected %d", len(summaries), tt.wantTopics)
			}
		})
	}
}

func TestDeleteQuiz(t *testing.T) {
	repo := db.NewMemoryQuizRepository()
	service := NewQuizStoreService(repo)

	keepID := seedQuiz(t, repo, "Keep me", 0)
	dropID := seedQuiz(t, repo, "Drop me", 0)

	if err := service.DeleteQuiz(dropID); err != nil {
		t.Fatalf("DeleteQuiz() error = %v", err)
	}

	if err := service.DeleteQuiz(dropID); !errors.Is(err, models.ErrQuizNotFound) {
		t.Errorf("DeleteQuiz(deleted id) error = %v, expected ErrQuizNotFound", err)
	}
	if err := service.DeleteQuiz(999); !errors.Is(err, models.ErrQuizNotFound) {
		t.Errorf("DeleteQuiz(unknown id) error = %v, expected ErrQuizNotFound", err)
	}

	if _, err := service.GetQuizByID(keepID); err != nil {
		t.Errorf("GetQuizByID(kept id) error = %v, other quizzes must be untouched", err)
	}
}

func TestClearHistory(t *testing.T) {
	repo := db.NewMemoryQuizRepository()
	service := NewQuizStoreService(repo)

	seedQuiz(t, repo, "One", 0)
	seedQuiz(t, repo, "Two", 0)

	deleted, err := service.ClearHistory()
	if err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, expected 2", deleted)
	}

	summaries, err := service.ListRecent(0, "")
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("len(summaries) = %d after clear, expected 0", len(summaries))
	}
}

func TestGetQuizByIDErrors(t *testing.T) {
	repo := db.NewMemoryQuizRepository()
	service := NewQuizStoreService(repo)

	if _, err := service.GetQuizByID(0); !errors.Is(err, models.ErrQuizNotFound) {
		t.Errorf("GetQuizByID(0) error = %v, expected ErrQuizNotFound", err)
	}
	if _, err := service.GetQuizByID(42); !errors.Is(err, models.ErrQuizNotFound) {
		t.Errorf("GetQuizByID(42) error = %v, expected ErrQuizNotFound", err)
	}
}
