package models

import "errors"

var (
	// ErrQuizNotFound is returned when a quiz id does not resolve.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound is returned when a question id does not belong to the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoSourceText means neither the topic nor the uploaded file yielded usable text.
	ErrNoSourceText = errors.New("no source text provided")
	// ErrInvalidQuizType is returned for an unrecognized quiz type.
	ErrInvalidQuizType = errors.New("invalid quiz type")
	// ErrInvalidAmount is returned for a non-positive question count.
	ErrInvalidAmount = errors.New("question amount must be greater than 0")
	// ErrAlreadyAnswered is returned when a question already carries a different answer.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrGenerationFailed wraps any question generator failure, including unparseable output.
	ErrGenerationFailed = errors.New("failed to generate quiz")
)
