package quiz

import (
	"context"

	domain "campus/internal/domain/quiz"
)

// Store persists Quiz state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Quiz, error)
	Save(ctx context.Context, value domain.Quiz) error
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string) ([]domain.Quiz, error)
}

// ResultStore persists graded quiz attempts.
type ResultStore interface {
	Save(ctx context.Context, value domain.Result) error
	GetByStudentAndQuiz(ctx context.Context, studentID, quizID string) (domain.Result, error)
	ListByStudent(ctx context.Context, studentID string) ([]domain.Result, error)
}
