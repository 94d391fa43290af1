package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"quizgen/models"

	_ "github.com/lib/pq"
)

// QuizRepository persists quiz aggregates with their embedded questions.
// MutateQuiz serializes read-modify-write cycles per quiz so concurrent
// answer submissions cannot clobber each other.
type QuizRepository interface {
	CreateQuiz(quiz *models.Quiz) error
	GetQuizByID(id int) (*models.Quiz, error)
	ListRecent(limit int) ([]*models.QuizSummary, error)
	MutateQuiz(id int, mutate func(*models.Quiz) error) (*models.Quiz, error)
	DeleteQuiz(id int) error
	DeleteAllQuizzes() (int64, error)
	Close() error
}

type PostgresQuizRepository struct {
	db *sql.DB
}

const createQuizzesTable = `
	CREATE TABLE IF NOT EXISTS quizzes (
		id SERIAL PRIMARY KEY,
		topic TEXT NOT NULL,
		quiz_type TEXT NOT NULL,
		question_count INT NOT NULL,
		questions JSONB NOT NULL,
		score DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'in_progress',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

func NewPostgresQuizRepository(databaseURL string) (*PostgresQuizRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(createQuizzesTable); err != nil {
		return nil, fmt.Errorf("failed to ensure quizzes table: %w", err)
	}

	return &PostgresQuizRepository{db: db}, nil
}

func (r *PostgresQuizRepository) CreateQuiz(quiz *models.Quiz) error {
	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}

	query := `
		INSERT INTO quizzes (topic, quiz_type, question_count, questions, score, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	row := r.db.QueryRow(query, quiz.Topic, string(quiz.Type), quiz.QuestionCount,
		questionsJSON, quiz.Score, string(quiz.Status))

	if err := row.Scan(&quiz.ID, &quiz.CreatedAt); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	return nil
}

func (r *PostgresQuizRepository) GetQuizByID(id int) (*models.Quiz, error) {
	query := `
		SELECT id, topic, quiz_type, question_count, questions, score, status, created_at
		FROM quizzes
		WHERE id = $1`

	return scanQuiz(r.db.QueryRow(query, id))
}

func (r *PostgresQuizRepository) ListRecent(limit int) ([]*models.QuizSummary, error) {
	query := `
		SELECT id, topic, quiz_type, question_count, score, status, created_at
		FROM quizzes
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	summaries := make([]*models.QuizSummary, 0)
	for rows.Next() {
		summary := &models.QuizSummary{}
		err := rows.Scan(&summary.ID, &summary.Topic, &summary.Type, &summary.QuestionCount,
			&summary.Score, &summary.Status, &summary.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over quizzes: %w", err)
	}

	return summaries, nil
}

// MutateQuiz locks the quiz row, applies mutate and writes back questions,
// score and status in the same transaction.
func (r *PostgresQuizRepository) MutateQuiz(id int, mutate func(*models.Quiz) error) (*models.Quiz, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT id, topic, quiz_type, question_count, questions, score, status, created_at
		FROM quizzes
		WHERE id = $1
		FOR UPDATE`

	quiz, err := scanQuiz(tx.QueryRow(query, id))
	if err != nil {
		return nil, err
	}

	if err := mutate(quiz); err != nil {
		return nil, err
	}

	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal questions: %w", err)
	}

	update := `UPDATE quizzes SET questions = $1, score = $2, status = $3 WHERE id = $4`
	if _, err := tx.Exec(update, questionsJSON, quiz.Score, string(quiz.Status), id); err != nil {
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit quiz update: %w", err)
	}

	return quiz, nil
}

func (r *PostgresQuizRepository) DeleteQuiz(id int) error {
	result, err := r.db.Exec("DELETE FROM quizzes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrQuizNotFound
	}

	return nil
}

func (r *PostgresQuizRepository) DeleteAllQuizzes() (int64, error) {
	result, err := r.db.Exec("DELETE FROM quizzes")
	if err != nil {
		return 0, fmt.Errorf("failed to delete quizzes: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *PostgresQuizRepository) Close() error {
	return r.db.Close()
}

func scanQuiz(row *sql.Row) (*models.Quiz, error) {
	quiz := &models.Quiz{}
	var questionsJSON []byte

	err := row.Scan(&quiz.ID, &quiz.Topic, &quiz.Type, &quiz.QuestionCount,
		&questionsJSON, &quiz.Score, &quiz.Status, &quiz.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	return quiz, nil
}
