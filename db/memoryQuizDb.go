package db

import (
	"sort"
	"sync"
	"time"

	"quizgen/models"
)

// MemoryQuizRepository is an in-process QuizRepository used by tests and for
// running the service without Postgres. The mutex gives MutateQuiz the same
// single-writer guarantee the SQL implementation gets from row locking.
type MemoryQuizRepository struct {
	mu      sync.Mutex
	nextID  int
	quizzes map[int]*models.Quiz
	now     func() time.Time
}

func NewMemoryQuizRepository() *MemoryQuizRepository {
	return &MemoryQuizRepository{
		nextID:  1,
		quizzes: make(map[int]*models.Quiz),
		now:     time.Now,
	}
}

// NewMemoryQuizRepositoryWithClock is test-only for deterministic timestamps.
func NewMemoryQuizRepositoryWithClock(now func() time.Time) *MemoryQuizRepository {
	repo := NewMemoryQuizRepository()
	repo.now = now
	return repo
}

func (r *MemoryQuizRepository) CreateQuiz(quiz *models.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	quiz.ID = r.nextID
	r.nextID++
	quiz.CreatedAt = r.now()

	stored := cloneQuiz(quiz)
	r.quizzes[quiz.ID] = stored
	return nil
}

func (r *MemoryQuizRepository) GetQuizByID(id int) (*models.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, models.ErrQuizNotFound
	}
	return cloneQuiz(quiz), nil
}

func (r *MemoryQuizRepository) ListRecent(limit int) ([]*models.QuizSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*models.Quiz, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		all = append(all, quiz)
	}

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	summaries := make([]*models.QuizSummary, 0, len(all))
	for _, quiz := range all {
		summaries = append(summaries, &models.QuizSummary{
			ID:            quiz.ID,
			Topic:         quiz.Topic,
			Type:          quiz.Type,
			QuestionCount: quiz.QuestionCount,
			Score:         quiz.Score,
			Status:        quiz.Status,
			CreatedAt:     quiz.CreatedAt,
		})
	}

	return summaries, nil
}

func (r *MemoryQuizRepository) MutateQuiz(id int, mutate func(*models.Quiz) error) (*models.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quiz, ok := r.quizzes[id]
	if !ok {
		return nil, models.ErrQuizNotFound
	}

	working := cloneQuiz(quiz)
	if err := mutate(working); err != nil {
		return nil, err
	}

	r.quizzes[id] = cloneQuiz(working)
	return working, nil
}

func (r *MemoryQuizRepository) DeleteQuiz(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quizzes[id]; !ok {
		return models.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	return nil
}

func (r *MemoryQuizRepository) DeleteAllQuizzes() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := int64(len(r.quizzes))
	r.quizzes = make(map[int]*models.Quiz)
	return deleted, nil
}

func (r *MemoryQuizRepository) Close() error {
	return nil
}

func cloneQuiz(quiz *models.Quiz) *models.Quiz {
	copied := *quiz
	copied.Questions = make([]models.Question, len(quiz.Questions))
	for i, question := range quiz.Questions {
		q := question
		if question.UserAnswer != nil {
			answer := *question.UserAnswer
			q.UserAnswer = &answer
		}
		if question.IsCorrect != nil {
			correct := *question.IsCorrect
			q.IsCorrect = &correct
		}
		q.AnswerChoices = append([]string(nil), question.AnswerChoices...)
		copied.Questions[i] = q
	}
	return &copied
}
